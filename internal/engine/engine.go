// Package engine is the calculation boundary: it validates birth data,
// resolves it to a UTC moment and drives each chart system with injected
// rule tables and a position provider.
package engine

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/Unforced-Dev/natal-engine-sub000/internal/aspects"
	"github.com/Unforced-Dev/natal-engine-sub000/internal/astrology"
	"github.com/Unforced-Dev/natal-engine-sub000/internal/compat"
	"github.com/Unforced-Dev/natal-engine-sub000/internal/ephemeris"
	"github.com/Unforced-Dev/natal-engine-sub000/internal/genekeys"
	"github.com/Unforced-Dev/natal-engine-sub000/internal/humandesign"
	"github.com/Unforced-Dev/natal-engine-sub000/internal/vedic"
)

// Engine computes charts. It holds no per-request state, so one Engine is
// safe to share across goroutines as long as its provider is.
type Engine struct {
	provider ephemeris.Provider
	aspects  aspects.Table
	hd       *humandesign.Tables
	solver   humandesign.SolverConfig
	compat   compat.Config
	logger   *slog.Logger
}

// Option customizes an Engine.
type Option func(*Engine)

// WithAspects replaces the aspect relation table.
func WithAspects(t aspects.Table) Option {
	return func(e *Engine) { e.aspects = t }
}

// WithHumanDesignTables replaces the Human Design rule set.
func WithHumanDesignTables(t *humandesign.Tables) Option {
	return func(e *Engine) { e.hd = t }
}

// WithSolver replaces the design-moment solver settings.
func WithSolver(cfg humandesign.SolverConfig) Option {
	return func(e *Engine) { e.solver = cfg }
}

// WithCompat replaces the comparison scoring.
func WithCompat(cfg compat.Config) Option {
	return func(e *Engine) { e.compat = cfg }
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// New creates an Engine over a position provider.
func New(p ephemeris.Provider, opts ...Option) *Engine {
	e := &Engine{
		provider: p,
		aspects:  aspects.Default,
		hd:       humandesign.Default,
		solver:   humandesign.DefaultSolver,
		compat:   compat.DefaultConfig,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Validate checks the injected rule tables.
func (e *Engine) Validate() error {
	if err := e.aspects.Validate(); err != nil {
		return fmt.Errorf("aspect table: %w", err)
	}
	if err := e.hd.Validate(); err != nil {
		return fmt.Errorf("human design tables: %w", err)
	}
	if err := e.compat.Validate(); err != nil {
		return fmt.Errorf("compat config: %w", err)
	}
	if err := e.solver.Validate(); err != nil {
		return fmt.Errorf("design solver: %w", err)
	}
	return nil
}

// Provider returns the position provider in use.
func (e *Engine) Provider() ephemeris.Provider { return e.provider }

// RulesVersion identifies the Human Design rule set.
func (e *Engine) RulesVersion() string { return e.hd.Version }

// Position returns the raw position of one body.
func (e *Engine) Position(b ephemeris.Body, t time.Time) (ephemeris.Position, error) {
	return e.provider.Position(b, t.UTC())
}

// AstrologyChart computes the tropical natal chart.
func (e *Engine) AstrologyChart(b Birth) (*astrology.Chart, error) {
	t, err := b.Moment()
	if err != nil {
		return nil, err
	}
	loc, err := b.Location()
	if err != nil {
		return nil, err
	}
	chart, err := astrology.Calculate(e.provider, t, loc, e.aspects)
	if err != nil {
		return nil, fmt.Errorf("astrology chart: %w", err)
	}
	e.logger.Debug("astrology chart calculated", "moment", t, "angles", chart.Angles.Status)
	return chart, nil
}

// HumanDesignChart computes the Human Design chart. Location is not used.
func (e *Engine) HumanDesignChart(b Birth) (*humandesign.Chart, error) {
	t, err := b.Moment()
	if err != nil {
		return nil, err
	}
	chart, err := humandesign.Calculate(e.provider, t, e.hd, e.solver)
	if err != nil {
		return nil, fmt.Errorf("human design chart: %w", err)
	}
	if !chart.DesignMoment.Converged {
		e.logger.Warn("design moment did not converge",
			"birth", t,
			"residual", chart.DesignMoment.Residual,
			"iterations", chart.DesignMoment.Iterations,
		)
	}
	e.logger.Debug("human design chart calculated", "moment", t, "type", chart.Type.Name)
	return chart, nil
}

// GeneKeysProfile derives the Gene Keys profile for a birth.
func (e *Engine) GeneKeysProfile(b Birth) (*genekeys.Profile, error) {
	hd, err := e.HumanDesignChart(b)
	if err != nil {
		return nil, err
	}
	return genekeys.Calculate(hd)
}

// VedicChart computes the sidereal chart.
func (e *Engine) VedicChart(b Birth) (*vedic.Chart, error) {
	t, err := b.Moment()
	if err != nil {
		return nil, err
	}
	loc, err := b.Location()
	if err != nil {
		return nil, err
	}
	chart, err := vedic.Calculate(e.provider, t, loc)
	if err != nil {
		return nil, fmt.Errorf("vedic chart: %w", err)
	}
	e.logger.Debug("vedic chart calculated", "moment", t, "moon_nakshatra", chart.MoonNakshatra.Name)
	return chart, nil
}

// CompareAstrology scores two natal charts.
func (e *Engine) CompareAstrology(a, b *astrology.Chart) (*compat.AstrologyResult, error) {
	return compat.Astrology(a, b, e.aspects, e.compat)
}

// CompareHumanDesign compares two Human Design charts.
func (e *Engine) CompareHumanDesign(a, b *humandesign.Chart) (*compat.HumanDesignResult, error) {
	return compat.HumanDesign(a, b, e.hd)
}

// CompareGeneKeys compares two Gene Keys profiles.
func (e *Engine) CompareGeneKeys(a, b *genekeys.Profile) (*compat.GeneKeysResult, error) {
	return compat.GeneKeys(a, b)
}

// CompareVedic matches two sidereal charts.
func (e *Engine) CompareVedic(a, b *vedic.Chart) (*compat.VedicResult, error) {
	return compat.Vedic(a, b)
}
