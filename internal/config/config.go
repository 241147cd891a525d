// Package config loads process settings from the environment (optionally
// seeded by a .env file) and the optional YAML rules file.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/Unforced-Dev/natal-engine-sub000/internal/aspects"
	"github.com/Unforced-Dev/natal-engine-sub000/internal/compat"
	"github.com/Unforced-Dev/natal-engine-sub000/internal/humandesign"
)

// Config holds everything natald needs at startup.
type Config struct {
	Port         int
	DBPath       string
	AdminKey     string // empty disables mutating endpoints
	CacheSize    int
	EphemerisURL string // empty selects the built-in orbital provider
	RulesPath    string
	CORSOrigins  []string
	LogLevel     slog.Level
}

// Load reads .env (if present) and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:         8080,
		DBPath:       firstNonEmpty(os.Getenv("NATAL_DB_PATH"), "data/natal.db"),
		AdminKey:     strings.TrimSpace(os.Getenv("NATAL_ADMIN_KEY")),
		CacheSize:    4096,
		EphemerisURL: strings.TrimSpace(os.Getenv("NATAL_EPHEMERIS_URL")),
		RulesPath:    strings.TrimSpace(os.Getenv("NATAL_RULES")),
		CORSOrigins:  splitList(os.Getenv("CORS_ORIGINS")),
	}

	if v := strings.TrimSpace(os.Getenv("NATAL_PORT")); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 || port > 65535 {
			return nil, fmt.Errorf("NATAL_PORT %q: not a valid port", v)
		}
		cfg.Port = port
	}
	if v := strings.TrimSpace(os.Getenv("NATAL_CACHE_SIZE")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("NATAL_CACHE_SIZE %q: want a non-negative integer", v)
		}
		cfg.CacheSize = n
	}
	level, err := ParseLevel(os.Getenv("NATAL_LOG_LEVEL"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	return cfg, nil
}

// ParseLevel maps debug|info|warn|error to a slog level. Empty is info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("log level %q: want debug, info, warn or error", s)
}

// Rules are the injectable rule tables. Keys absent from the file keep the
// built-in values.
type Rules struct {
	Aspects aspects.Table            `yaml:"aspects"`
	Compat  compat.Config            `yaml:"compat"`
	Solver  humandesign.SolverConfig `yaml:"-"`

	SolverOverrides struct {
		MaxIterations int     `yaml:"max_iterations"`
		Tolerance     float64 `yaml:"tolerance"`
	} `yaml:"solver"`
}

// DefaultRules returns the built-in rule set.
func DefaultRules() *Rules {
	return &Rules{
		Aspects: append(aspects.Table(nil), aspects.Default...),
		Compat:  compat.DefaultConfig,
		Solver:  humandesign.DefaultSolver,
	}
}

// LoadRules reads a YAML rules file over the defaults. An empty path
// returns the defaults.
func LoadRules(path string) (*Rules, error) {
	rules := DefaultRules()
	if path == "" {
		return rules, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules: %w", err)
	}
	if err := yaml.Unmarshal(data, rules); err != nil {
		return nil, fmt.Errorf("parse rules: %w", err)
	}

	// Zero means unset; anything else is applied and then validated.
	if n := rules.SolverOverrides.MaxIterations; n != 0 {
		rules.Solver.MaxIterations = n
	}
	if tol := rules.SolverOverrides.Tolerance; tol != 0 {
		rules.Solver.Tolerance = tol
	}

	if err := rules.Aspects.Validate(); err != nil {
		return nil, fmt.Errorf("rules %s: aspects: %w", path, err)
	}
	if err := rules.Compat.Validate(); err != nil {
		return nil, fmt.Errorf("rules %s: compat: %w", path, err)
	}
	if err := rules.Solver.Validate(); err != nil {
		return nil, fmt.Errorf("rules %s: solver: %w", path, err)
	}
	return rules, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
