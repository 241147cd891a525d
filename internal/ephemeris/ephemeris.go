// Package ephemeris supplies geocentric ecliptic positions of the Sun, Moon,
// planets and lunar node, plus the horizon angles of an observer.
// Positions are referred to the mean equinox of date, in decimal degrees.
package ephemeris

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrUnknownBody is returned for a body the provider cannot compute.
var ErrUnknownBody = errors.New("unknown body")

// Body identifies a tracked celestial point.
type Body uint8

const (
	Sun Body = iota
	Moon
	Mercury
	Venus
	Mars
	Jupiter
	Saturn
	Uranus
	Neptune
	Pluto
	NorthNode // mean ascending lunar node
)

// Bodies is the canonical iteration order. Every all-pairs scan walks it.
var Bodies = []Body{Sun, Moon, Mercury, Venus, Mars, Jupiter, Saturn, Uranus, Neptune, Pluto, NorthNode}

var bodyNames = [...]string{
	Sun:       "Sun",
	Moon:      "Moon",
	Mercury:   "Mercury",
	Venus:     "Venus",
	Mars:      "Mars",
	Jupiter:   "Jupiter",
	Saturn:    "Saturn",
	Uranus:    "Uranus",
	Neptune:   "Neptune",
	Pluto:     "Pluto",
	NorthNode: "North Node",
}

// Name returns the display name of the body.
func (b Body) Name() string {
	if int(b) < len(bodyNames) {
		return bodyNames[b]
	}
	return "Unknown"
}

func (b Body) String() string { return b.Name() }

// Slug returns the lower-case wire identifier ("north_node").
func (b Body) Slug() string {
	return strings.ReplaceAll(strings.ToLower(b.Name()), " ", "_")
}

// ParseBody resolves a wire identifier or display name.
func ParseBody(s string) (Body, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	for _, b := range Bodies {
		if s == b.Slug() || s == strings.ToLower(b.Name()) {
			return b, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownBody, s)
}

// Position is a geocentric ecliptic position. DistanceKm is zero when the
// provider does not report it.
type Position struct {
	Longitude  float64 `json:"longitude"`
	Latitude   float64 `json:"latitude"`
	DistanceKm float64 `json:"distance_km,omitempty"`
}

// Provider computes ecliptic positions. Implementations must be pure
// functions of (body, moment) so results can be memoized.
type Provider interface {
	Position(b Body, t time.Time) (Position, error)
}

// Location is an observer on the Earth's surface. Longitude is east-positive.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Validate checks the coordinates are on the globe.
func (l Location) Validate() error {
	if l.Latitude < -90 || l.Latitude > 90 {
		return fmt.Errorf("latitude %v out of range", l.Latitude)
	}
	if l.Longitude < -180 || l.Longitude > 180 {
		return fmt.Errorf("longitude %v out of range", l.Longitude)
	}
	return nil
}

// SouthNode returns the point opposite the given north node longitude.
func SouthNode(north float64) float64 {
	return normalize(north + 180)
}
