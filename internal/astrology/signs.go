// Package astrology builds tropical natal charts: sign placements, whole-sign
// houses, angles, natal aspects and element/modality balance.
package astrology

import "github.com/Unforced-Dev/natal-engine-sub000/internal/wheel"

// Element of a sign.
type Element uint8

const (
	Fire Element = iota
	Earth
	Air
	Water
)

// Elements in canonical order.
var Elements = []Element{Fire, Earth, Air, Water}

// Name returns the display name.
func (e Element) Name() string {
	switch e {
	case Fire:
		return "Fire"
	case Earth:
		return "Earth"
	case Air:
		return "Air"
	case Water:
		return "Water"
	default:
		return "Unknown"
	}
}

// Modality of a sign.
type Modality uint8

const (
	Cardinal Modality = iota
	Fixed
	Mutable
)

// Modalities in canonical order.
var Modalities = []Modality{Cardinal, Fixed, Mutable}

// Name returns the display name.
func (m Modality) Name() string {
	switch m {
	case Cardinal:
		return "Cardinal"
	case Fixed:
		return "Fixed"
	case Mutable:
		return "Mutable"
	default:
		return "Unknown"
	}
}

// SignName returns the zodiac sign name for a sign index 0–11.
func SignName(index int) string {
	return wheel.Zodiac.Label(index)
}

// SignElement returns the element of a sign index. Elements cycle
// fire, earth, air, water from Aries.
func SignElement(index int) Element {
	return Element(((index % 4) + 4) % 4)
}

// SignModality returns the modality of a sign index.
func SignModality(index int) Modality {
	return Modality(((index % 3) + 3) % 3)
}

// signRulers uses modern rulerships for the outer signs.
var signRulers = [12]string{
	"Mars", "Venus", "Mercury", "Moon", "Sun", "Mercury",
	"Venus", "Pluto", "Jupiter", "Saturn", "Uranus", "Neptune",
}

// SignRuler returns the modern ruling planet of a sign index.
func SignRuler(index int) string {
	if index < 0 || index >= len(signRulers) {
		return "Unknown"
	}
	return signRulers[index]
}

// ElementHarmony scores how two elements get along: same element 1,
// complementary (fire/air, earth/water) 0.5, anything else -0.5.
func ElementHarmony(a, b Element) float64 {
	if a == b {
		return 1
	}
	complementary := func(x, y Element) bool {
		return (x == Fire && y == Air) || (x == Earth && y == Water)
	}
	if complementary(a, b) || complementary(b, a) {
		return 0.5
	}
	return -0.5
}
