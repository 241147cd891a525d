// Command natal prints charts and comparisons in the terminal and manages
// saved profiles.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Unforced-Dev/natal-engine-sub000/internal/config"
	"github.com/Unforced-Dev/natal-engine-sub000/internal/engine"
	"github.com/Unforced-Dev/natal-engine-sub000/internal/ephemeris"
	"github.com/Unforced-Dev/natal-engine-sub000/internal/persistence"
)

// app carries what every subcommand needs. It is built in the root
// PersistentPreRunE so flags are already parsed.
type app struct {
	cfg    *config.Config
	engine *engine.Engine
	out    io.Writer

	asJSON    bool
	dbPath    string
	rulesPath string
	verbose   bool

	db *persistence.DB
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	a := &app{out: out}

	root := &cobra.Command{
		Use:   "natal",
		Short: "Natal charts: astrology, Human Design, Gene Keys and Vedic",
		Long: `Births are given as DATE[,HOUR[,OFFSET[,LAT,LON]]], for example
1948-04-09,0.233,-5 or 2000-01-01,12,0,51.5,-0.13. HOUR is local decimal
time and OFFSET the UTC offset in hours. A saved profile can be used instead
with @<id> or @<name>.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.db != nil {
				a.db.Close()
			}
		},
	}
	root.SetOut(out)

	flags := root.PersistentFlags()
	flags.BoolVar(&a.asJSON, "json", false, "print raw JSON instead of a summary")
	flags.StringVar(&a.dbPath, "db", "", "profile database (default $NATAL_DB_PATH or data/natal.db)")
	flags.StringVar(&a.rulesPath, "rules", "", "YAML rules file (default $NATAL_RULES)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "log engine diagnostics to stderr")

	root.AddCommand(
		a.chartCmd("astrology", "Tropical natal chart with aspects", a.astrology),
		a.chartCmd("humandesign", "Human Design bodygraph summary", a.humanDesign),
		a.chartCmd("genekeys", "Gene Keys hologenetic profile", a.geneKeys),
		a.chartCmd("vedic", "Sidereal chart, nakshatras and dashas", a.vedic),
		a.compareCmd(),
		a.profilesCmd(),
	)
	return root
}

func (a *app) setup() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	a.cfg = cfg
	if a.dbPath == "" {
		a.dbPath = cfg.DBPath
	}
	if a.rulesPath == "" {
		a.rulesPath = cfg.RulesPath
	}

	level := slog.LevelWarn
	if a.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	rules, err := config.LoadRules(a.rulesPath)
	if err != nil {
		return err
	}
	provider, err := ephemeris.Select(cfg.EphemerisURL, cfg.CacheSize)
	if err != nil {
		return err
	}
	a.engine = engine.New(provider,
		engine.WithAspects(rules.Aspects),
		engine.WithCompat(rules.Compat),
		engine.WithSolver(rules.Solver),
		engine.WithLogger(logger),
	)
	return a.engine.Validate()
}

// store opens the profile database on first use.
func (a *app) store() (*persistence.DB, error) {
	if a.db != nil {
		return a.db, nil
	}
	if dir := filepath.Dir(a.dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}
	db, err := persistence.Open(a.dbPath)
	if err != nil {
		return nil, err
	}
	a.db = db
	return db, nil
}

// birth resolves a command-line birth argument.
func (a *app) birth(arg string) (engine.Birth, error) {
	if ref, ok := strings.CutPrefix(arg, "@"); ok {
		db, err := a.store()
		if err != nil {
			return engine.Birth{}, err
		}
		p, err := findProfile(db, ref)
		if err != nil {
			return engine.Birth{}, err
		}
		return p.Birth, nil
	}
	return parseBirth(arg)
}

// parseBirth reads DATE[,HOUR[,OFFSET[,LAT,LON]]].
func parseBirth(s string) (engine.Birth, error) {
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	b := engine.Birth{Date: parts[0]}

	num := func(i int, sentinel error, name string) (float64, error) {
		v, err := strconv.ParseFloat(parts[i], 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %s %q", sentinel, name, parts[i])
		}
		return v, nil
	}

	var err error
	switch len(parts) {
	case 1, 2, 3, 5:
	case 4:
		return b, fmt.Errorf("%w: latitude and longitude must be given together", engine.ErrInvalidLocation)
	default:
		return b, fmt.Errorf("%w: too many fields in %q", engine.ErrInvalidDate, s)
	}
	if len(parts) > 1 {
		if b.Hour, err = num(1, engine.ErrInvalidTime, "hour"); err != nil {
			return b, err
		}
	}
	if len(parts) > 2 {
		if b.UTCOffset, err = num(2, engine.ErrInvalidTime, "offset"); err != nil {
			return b, err
		}
	}
	if len(parts) == 5 {
		lat, err := num(3, engine.ErrInvalidLocation, "latitude")
		if err != nil {
			return b, err
		}
		lon, err := num(4, engine.ErrInvalidLocation, "longitude")
		if err != nil {
			return b, err
		}
		b.Latitude, b.Longitude = &lat, &lon
	}
	return b, b.Validate()
}

// findProfile matches an exact ID first, then a unique name.
func findProfile(db *persistence.DB, ref string) (persistence.Profile, error) {
	p, err := db.GetProfile(ref)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, persistence.ErrNotFound) {
		return p, err
	}
	all, err := db.ListProfiles()
	if err != nil {
		return persistence.Profile{}, err
	}
	var matches []persistence.Profile
	for _, p := range all {
		if strings.EqualFold(p.Name, ref) {
			matches = append(matches, p)
		}
	}
	switch len(matches) {
	case 0:
		return persistence.Profile{}, fmt.Errorf("profile %q: %w", ref, persistence.ErrNotFound)
	case 1:
		return matches[0], nil
	}
	return persistence.Profile{}, fmt.Errorf("profile name %q is ambiguous (%d matches), use the id", ref, len(matches))
}

func (a *app) chartCmd(name, short string, render func(engine.Birth) (any, string, error)) *cobra.Command {
	return &cobra.Command{
		Use:   name + " BIRTH",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.birth(args[0])
			if err != nil {
				return err
			}
			raw, text, err := render(b)
			if err != nil {
				return err
			}
			return a.print(raw, text)
		},
	}
}

func (a *app) print(raw any, text string) error {
	if a.asJSON {
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		return enc.Encode(raw)
	}
	_, err := fmt.Fprintln(a.out, text)
	return err
}

func (a *app) astrology(b engine.Birth) (any, string, error) {
	c, err := a.engine.AstrologyChart(b)
	if err != nil {
		return nil, "", err
	}
	return c, renderAstrology(c), nil
}

func (a *app) humanDesign(b engine.Birth) (any, string, error) {
	c, err := a.engine.HumanDesignChart(b)
	if err != nil {
		return nil, "", err
	}
	return c, renderHumanDesign(c), nil
}

func (a *app) geneKeys(b engine.Birth) (any, string, error) {
	p, err := a.engine.GeneKeysProfile(b)
	if err != nil {
		return nil, "", err
	}
	return p, renderGeneKeys(p), nil
}

func (a *app) vedic(b engine.Birth) (any, string, error) {
	c, err := a.engine.VedicChart(b)
	if err != nil {
		return nil, "", err
	}
	return c, renderVedic(c), nil
}
