// Package aspects resolves named angular relationships between longitudes.
//
// A Table is an ordered rule list evaluated top to bottom with early exit:
// the first relation whose orb is within tolerance wins, even if a later
// relation would match more tightly. Table order is therefore part of the
// rule set and is tested as such.
package aspects

import (
	"fmt"
	"math"

	"github.com/Unforced-Dev/natal-engine-sub000/internal/wheel"
)

// Relation is one named angular relationship.
type Relation struct {
	Name    string  `json:"name" yaml:"name"`
	Symbol  string  `json:"symbol,omitempty" yaml:"symbol"`
	Angle   float64 `json:"angle" yaml:"angle"`     // target separation, 0–180
	Orb     float64 `json:"orb" yaml:"orb"`         // tolerance in degrees
	Harmony float64 `json:"harmony" yaml:"harmony"` // -1 (tense) to +1 (easy)
	Minor   bool    `json:"minor,omitempty" yaml:"minor"`
}

// Table is an ordered list of relations.
type Table []Relation

// Default is the built-in relation table, majors first.
var Default = Table{
	{Name: "conjunction", Symbol: "☌", Angle: 0, Orb: 8, Harmony: 0.5},
	{Name: "opposition", Symbol: "☍", Angle: 180, Orb: 8, Harmony: -0.5},
	{Name: "trine", Symbol: "△", Angle: 120, Orb: 8, Harmony: 1.0},
	{Name: "square", Symbol: "□", Angle: 90, Orb: 7, Harmony: -0.8},
	{Name: "sextile", Symbol: "⚹", Angle: 60, Orb: 6, Harmony: 0.7},
	{Name: "quincunx", Symbol: "⚻", Angle: 150, Orb: 3, Harmony: -0.3, Minor: true},
	{Name: "semi-sextile", Symbol: "⚺", Angle: 30, Orb: 2, Harmony: 0.2, Minor: true},
	{Name: "semi-square", Symbol: "∠", Angle: 45, Orb: 2, Harmony: -0.3, Minor: true},
	{Name: "sesquiquadrate", Symbol: "⚼", Angle: 135, Orb: 2, Harmony: -0.3, Minor: true},
	{Name: "quintile", Symbol: "Q", Angle: 72, Orb: 2, Harmony: 0.4, Minor: true},
}

// Validate checks every relation is well-formed and names are unique.
func (t Table) Validate() error {
	if len(t) == 0 {
		return fmt.Errorf("aspect table is empty")
	}
	seen := make(map[string]bool, len(t))
	for _, r := range t {
		if r.Name == "" {
			return fmt.Errorf("aspect relation without a name")
		}
		if seen[r.Name] {
			return fmt.Errorf("aspect %q listed twice", r.Name)
		}
		seen[r.Name] = true
		if r.Angle < 0 || r.Angle > 180 {
			return fmt.Errorf("aspect %q: angle %v outside [0,180]", r.Name, r.Angle)
		}
		if r.Orb < 0 {
			return fmt.Errorf("aspect %q: negative orb", r.Name)
		}
	}
	return nil
}

// Lookup returns the relation with the given name.
func (t Table) Lookup(name string) (Relation, bool) {
	for _, r := range t {
		if r.Name == name {
			return r, true
		}
	}
	return Relation{}, false
}

// Match is the outcome of resolving one pair of longitudes.
type Match struct {
	Relation   Relation
	Separation float64 // short-way separation, 0–180
	Orb        float64 // |Separation - Relation.Angle|
}

// Find resolves the relation between two longitudes. Minor relations are
// skipped unless includeMinor is set.
func (t Table) Find(a, b float64, includeMinor bool) (Match, bool) {
	sep := wheel.Separation(a, b)
	for _, r := range t {
		if r.Minor && !includeMinor {
			continue
		}
		orb := math.Abs(sep - r.Angle)
		if orb <= r.Orb {
			return Match{Relation: r, Separation: sep, Orb: orb}, true
		}
	}
	return Match{}, false
}
