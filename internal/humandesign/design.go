package humandesign

import (
	"fmt"
	"math"
	"time"

	"github.com/Unforced-Dev/natal-engine-sub000/internal/ephemeris"
	"github.com/Unforced-Dev/natal-engine-sub000/internal/wheel"
)

// SolverConfig tunes the design-moment search.
type SolverConfig struct {
	Arc           float64       // solar arc between design and birth, degrees
	InitialOffset time.Duration // first guess, before birth
	MaxIterations int
	Tolerance     float64 // stop when |error| drops below this, degrees
	MeanMotion    float64 // average solar motion used for the step, degrees/day
	StepQuantum   time.Duration
}

// DefaultSolver steps in whole minutes. At 0.9856°/day a minute moves the
// Sun about 0.0007°, fine enough to land inside the 0.01° tolerance.
var DefaultSolver = SolverConfig{
	Arc:           88,
	InitialOffset: 89 * 24 * time.Hour,
	MaxIterations: 20,
	Tolerance:     0.01,
	MeanMotion:    0.9856,
	StepQuantum:   time.Minute,
}

// Validate checks the search can make progress. With no iteration budget
// there is no guess to return, and the step size divides by MeanMotion.
func (c SolverConfig) Validate() error {
	switch {
	case c.MaxIterations <= 0:
		return fmt.Errorf("max iterations %d must be positive", c.MaxIterations)
	case !(c.Tolerance > 0):
		return fmt.Errorf("tolerance %v must be positive", c.Tolerance)
	case !(c.MeanMotion > 0) || math.IsInf(c.MeanMotion, 0):
		return fmt.Errorf("mean motion %v must be positive and finite", c.MeanMotion)
	case !(c.Arc > 0 && c.Arc < 360):
		return fmt.Errorf("arc %v must be in (0, 360)", c.Arc)
	case c.StepQuantum < 0:
		return fmt.Errorf("step quantum %s must not be negative", c.StepQuantum)
	}
	return nil
}

// DesignSolution is the outcome of a search. When Converged is false the
// Moment is the best guess seen, never the last one tried.
type DesignSolution struct {
	Moment       time.Time `json:"moment"`
	SunLongitude float64   `json:"sun_longitude"`
	Target       float64   `json:"target"`
	Residual     float64   `json:"residual"` // signed, target minus actual
	Iterations   int       `json:"iterations"`
	Converged    bool      `json:"converged"`
}

// SolveDesignMoment finds the moment before birth when the Sun stood Arc
// degrees behind birthSun. Non-convergence is reported on the solution, not
// as an error; provider failures and an unusable config are.
func SolveDesignMoment(p ephemeris.Provider, birth time.Time, birthSun float64, cfg SolverConfig) (DesignSolution, error) {
	if err := cfg.Validate(); err != nil {
		return DesignSolution{}, fmt.Errorf("design solver: %w", err)
	}
	target := wheel.Normalize(birthSun - cfg.Arc)
	guess := birth.UTC().Add(-cfg.InitialOffset)
	quantum := cfg.StepQuantum
	if quantum <= 0 {
		quantum = time.Minute
	}
	perQuantum := cfg.MeanMotion * quantum.Hours() / 24 // degrees per quantum

	var best DesignSolution
	haveBest := false

	for i := 1; i <= cfg.MaxIterations; i++ {
		pos, err := p.Position(ephemeris.Sun, guess)
		if err != nil {
			return DesignSolution{}, fmt.Errorf("design sun at %s: %w", guess.Format(time.RFC3339), err)
		}
		errDeg := wheel.SignedDelta(pos.Longitude, target)

		if !haveBest || math.Abs(errDeg) < math.Abs(best.Residual) {
			best = DesignSolution{
				Moment:       guess,
				SunLongitude: pos.Longitude,
				Target:       target,
				Residual:     errDeg,
			}
			haveBest = true
		}
		best.Iterations = i

		if math.Abs(errDeg) < cfg.Tolerance {
			best.Converged = true
			return best, nil
		}

		steps := math.Round(errDeg / perQuantum)
		if steps == 0 {
			// Stalled short of the target: nudge one quantum toward it.
			steps = math.Copysign(1, errDeg)
		}
		guess = guess.Add(time.Duration(steps) * quantum)
	}
	return best, nil
}
