// Package wheel maps ecliptic longitudes onto discrete wheels: zodiac signs,
// Human Design gates, lunar mansions. A wheel is N equal-width units starting
// at a rotational offset, each split into equal sub-units.
package wheel

import (
	"fmt"
	"math"
)

// boundaryEpsilon absorbs floating-point error at unit seams so a longitude
// sitting exactly on a boundary resolves to the next unit, never the previous.
const boundaryEpsilon = 1e-9

// Config describes one wheel. Configs are package-level values and must not
// be mutated after construction.
type Config struct {
	Name     string
	Units    int     // number of equal-width units around 360°
	SubUnits int     // sub-units (lines, degrees, padas) per unit
	Offset   float64 // longitude where raw slot 0 begins

	// Order maps raw slot index to the public unit identifier.
	// Nil means the identifier is the slot index itself.
	Order []int

	// Labels are indexed by raw slot index. Optional.
	Labels []string
}

// Activation is a longitude resolved against a wheel.
type Activation struct {
	Index     int     `json:"index"`     // raw slot, [0, Units)
	Unit      int     `json:"unit"`      // public identifier
	SubUnit   int     `json:"sub_unit"`  // 1-based, [1, SubUnits]
	Degree    float64 `json:"degree"`    // position inside the unit, [0, Width)
	Longitude float64 `json:"longitude"` // normalized source longitude
}

// Width returns the angular width of a unit in degrees.
func (c Config) Width() float64 {
	return 360.0 / float64(c.Units)
}

// SubWidth returns the angular width of a sub-unit in degrees.
func (c Config) SubWidth() float64 {
	return c.Width() / float64(c.SubUnits)
}

// Label returns the label for a raw slot index, or "Unknown".
func (c Config) Label(index int) string {
	if index < 0 || index >= len(c.Labels) {
		return "Unknown"
	}
	return c.Labels[index]
}

// Validate checks the structural invariants of a wheel.
func (c Config) Validate() error {
	if c.Units <= 0 {
		return fmt.Errorf("wheel %q: units must be positive", c.Name)
	}
	if c.SubUnits <= 0 {
		return fmt.Errorf("wheel %q: sub-units must be positive", c.Name)
	}
	if c.Order != nil {
		if len(c.Order) != c.Units {
			return fmt.Errorf("wheel %q: order has %d entries, want %d", c.Name, len(c.Order), c.Units)
		}
		seen := make(map[int]bool, len(c.Order))
		for _, id := range c.Order {
			if seen[id] {
				return fmt.Errorf("wheel %q: unit %d appears twice in order", c.Name, id)
			}
			seen[id] = true
		}
	}
	if c.Labels != nil && len(c.Labels) != c.Units {
		return fmt.Errorf("wheel %q: %d labels for %d units", c.Name, len(c.Labels), c.Units)
	}
	return nil
}

// Map resolves a longitude against the wheel. It is total: any finite input
// yields an activation.
func Map(longitude float64, c Config) Activation {
	lon := Normalize(longitude)
	adjusted := Normalize(lon - c.Offset)
	width := c.Width()

	raw := int(math.Floor(adjusted/width + boundaryEpsilon))
	degree := adjusted - float64(raw)*width
	if degree < 0 {
		// adjusted sat a hair below a seam and the guard pushed it forward.
		degree = 0
	}
	index := raw % c.Units

	sub := int(math.Floor(degree/c.SubWidth()+boundaryEpsilon)) + 1
	if sub > c.SubUnits {
		sub = c.SubUnits
	}

	unit := index
	if c.Order != nil {
		unit = c.Order[index]
	}

	return Activation{
		Index:     index,
		Unit:      unit,
		SubUnit:   sub,
		Degree:    degree,
		Longitude: lon,
	}
}

// IndexOf returns the raw slot for a public unit identifier, or -1.
func (c Config) IndexOf(unit int) int {
	if c.Order == nil {
		if unit >= 0 && unit < c.Units {
			return unit
		}
		return -1
	}
	for i, id := range c.Order {
		if id == unit {
			return i
		}
	}
	return -1
}

// Start returns the longitude where the unit with the given public
// identifier begins, and false if the unit is not on the wheel.
func (c Config) Start(unit int) (float64, bool) {
	i := c.IndexOf(unit)
	if i < 0 {
		return 0, false
	}
	return Normalize(c.Offset + float64(i)*c.Width()), true
}

// Opposite returns the public identifier of the unit directly across the
// wheel. Only meaningful for wheels with an even unit count.
func (c Config) Opposite(unit int) int {
	i := c.IndexOf(unit)
	if i < 0 {
		return -1
	}
	j := (i + c.Units/2) % c.Units
	if c.Order != nil {
		return c.Order[j]
	}
	return j
}
