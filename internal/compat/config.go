// Package compat compares two charts of the same system and scores the
// relationship.
package compat

import (
	"fmt"
	"math"
)

// KeyPair is a named body pairing that is always surfaced first in
// synastry and carries its own weight in the score.
type KeyPair struct {
	Name   string  `yaml:"name" json:"name"`
	A      string  `yaml:"a" json:"a"`
	B      string  `yaml:"b" json:"b"`
	Weight float64 `yaml:"weight" json:"weight"`
}

// Matches reports whether bodies x and y form the pair, in either order.
func (k KeyPair) Matches(x, y string) bool {
	return (x == k.A && y == k.B) || (x == k.B && y == k.A)
}

// Config holds the scoring knobs. It can be overridden from the rules file.
type Config struct {
	Baseline     float64   `yaml:"baseline" json:"baseline"`
	ElementScale float64   `yaml:"element_scale" json:"element_scale"`
	KeyScale     float64   `yaml:"key_scale" json:"key_scale"`
	MeanScale    float64   `yaml:"mean_scale" json:"mean_scale"`
	OtherWeight  float64   `yaml:"other_weight" json:"other_weight"`
	IncludeMinor bool      `yaml:"include_minor" json:"include_minor"`
	KeyPairs     []KeyPair `yaml:"key_pairs" json:"key_pairs"`
}

// DefaultConfig is the built-in scoring. Key weights plus OtherWeight sum
// to one.
var DefaultConfig = Config{
	Baseline:     50,
	ElementScale: 10,
	KeyScale:     40,
	MeanScale:    20,
	OtherWeight:  0.1,
	KeyPairs: []KeyPair{
		{"sun-moon", "Sun", "Moon", 0.3},
		{"venus-mars", "Venus", "Mars", 0.25},
		{"moon-moon", "Moon", "Moon", 0.2},
		{"sun-sun", "Sun", "Sun", 0.15},
	},
}

// Validate checks the weights stay within one so no single bucket can
// swamp the baseline.
func (c Config) Validate() error {
	sum := c.OtherWeight
	for _, k := range c.KeyPairs {
		if k.Weight < 0 {
			return fmt.Errorf("key pair %s: negative weight", k.Name)
		}
		sum += k.Weight
	}
	if sum > 1+1e-9 {
		return fmt.Errorf("key weights sum to %.3f, want at most 1", sum)
	}
	return nil
}

func clamp(score float64) float64 {
	return math.Max(0, math.Min(100, score))
}

// band turns a score into a short verdict.
func band(score float64) string {
	switch {
	case score >= 75:
		return "Highly compatible"
	case score >= 60:
		return "Compatible"
	case score >= 45:
		return "Mixed"
	default:
		return "Challenging"
	}
}
