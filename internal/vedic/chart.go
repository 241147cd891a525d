// Package vedic builds sidereal (Jyotish) charts: Lahiri-corrected
// placements, rashi and nakshatra positions, the lagna and the Vimshottari
// dasha timeline.
package vedic

import (
	"fmt"
	"time"

	"github.com/Unforced-Dev/natal-engine-sub000/internal/astrology"
	"github.com/Unforced-Dev/natal-engine-sub000/internal/ephemeris"
	"github.com/Unforced-Dev/natal-engine-sub000/internal/wheel"
)

// Lahiri ayanamsa at J2000 and its annual precession.
const (
	lahiriJ2000    = 23.853
	lahiriPerYear  = 50.279 / 3600
	daysPerJulianY = 365.25
)

// Ayanamsa returns the Lahiri ayanamsa for a moment, in degrees.
func Ayanamsa(t time.Time) float64 {
	years := (ephemeris.JulianDay(t) - ephemeris.J2000) / daysPerJulianY
	return lahiriJ2000 + years*lahiriPerYear
}

// Sidereal converts a tropical longitude using the ayanamsa.
func Sidereal(tropical, ayanamsa float64) float64 {
	return wheel.Normalize(tropical - ayanamsa)
}

// Node graha names.
const (
	Rahu = "Rahu"
	Ketu = "Ketu"
)

// grahas is the traditional nine in weekday order, nodes last.
var grahas = []struct {
	name string
	body ephemeris.Body
}{
	{"Sun", ephemeris.Sun},
	{"Moon", ephemeris.Moon},
	{"Mars", ephemeris.Mars},
	{"Mercury", ephemeris.Mercury},
	{"Jupiter", ephemeris.Jupiter},
	{"Venus", ephemeris.Venus},
	{"Saturn", ephemeris.Saturn},
	{Rahu, ephemeris.NorthNode},
}

// Nakshatra is a position inside one of the 27 lunar mansions.
type Nakshatra struct {
	Index  int     `json:"index"`
	Name   string  `json:"name"`
	Pada   int     `json:"pada"`
	Lord   string  `json:"lord"`
	Degree float64 `json:"degree"` // offset inside the mansion
}

// Placement is one graha on the sidereal zodiac.
type Placement struct {
	Graha      string    `json:"graha"`
	Tropical   float64   `json:"tropical"`
	Longitude  float64   `json:"longitude"`
	RashiIndex int       `json:"rashi_index"`
	Rashi      string    `json:"rashi"`
	Sign       string    `json:"sign"` // western name of the same sign
	Degree     float64   `json:"degree"`
	Formatted  string    `json:"formatted"`
	Nakshatra  Nakshatra `json:"nakshatra"`
	House      int       `json:"house,omitempty"`
}

// Chart is a sidereal natal chart.
type Chart struct {
	Moment        time.Time              `json:"moment"`
	Ayanamsa      float64                `json:"ayanamsa"`
	Placements    []Placement            `json:"placements"`
	LagnaStatus   astrology.AnglesStatus `json:"lagna_status"`
	Lagna         *Placement             `json:"lagna,omitempty"`
	MoonNakshatra Nakshatra              `json:"moon_nakshatra"`
	Dashas        []Dasha                `json:"dashas"`
}

// Placement returns the placement of a graha.
func (c *Chart) Placement(graha string) (Placement, bool) {
	for _, p := range c.Placements {
		if p.Graha == graha {
			return p, true
		}
	}
	return Placement{}, false
}

// Moon returns the Moon placement, which drives dashas and matching.
func (c *Chart) Moon() Placement {
	p, _ := c.Placement("Moon")
	return p
}

// Calculate builds a sidereal chart for the UTC moment t. A nil location
// leaves the lagna and houses out.
func Calculate(p ephemeris.Provider, t time.Time, loc *ephemeris.Location) (*Chart, error) {
	t = t.UTC()
	ayan := Ayanamsa(t)
	chart := &Chart{
		Moment:      t,
		Ayanamsa:    ayan,
		LagnaStatus: astrology.AnglesNoLocation,
	}

	for _, g := range grahas {
		pos, err := p.Position(g.body, t)
		if err != nil {
			return nil, fmt.Errorf("position of %s: %w", g.name, err)
		}
		chart.Placements = append(chart.Placements, place(g.name, pos.Longitude, ayan))
		if g.body == ephemeris.NorthNode {
			chart.Placements = append(chart.Placements, place(Ketu, ephemeris.SouthNode(pos.Longitude), ayan))
		}
	}

	if loc != nil {
		h := ephemeris.HorizonAngles(t, *loc)
		lagna := place("Lagna", h.Ascendant, ayan)
		lagna.House = 1
		chart.Lagna = &lagna
		chart.LagnaStatus = astrology.AnglesComputed
		for i := range chart.Placements {
			chart.Placements[i].House = (chart.Placements[i].RashiIndex-lagna.RashiIndex+12)%12 + 1
		}
	}

	moon := chart.Moon()
	chart.MoonNakshatra = moon.Nakshatra
	chart.Dashas = Vimshottari(t, moon.Nakshatra)
	return chart, nil
}

func place(name string, tropical, ayanamsa float64) Placement {
	lon := Sidereal(tropical, ayanamsa)
	sign := wheel.Map(lon, wheel.Zodiac)
	return Placement{
		Graha:      name,
		Tropical:   wheel.Normalize(tropical),
		Longitude:  lon,
		RashiIndex: sign.Index,
		Rashi:      RashiName(sign.Index),
		Sign:       wheel.Zodiac.Label(sign.Index),
		Degree:     sign.Degree,
		Formatted:  fmt.Sprintf("%s %s", wheel.DMS(sign.Degree), RashiName(sign.Index)),
		Nakshatra:  NakshatraOf(lon),
	}
}

// NakshatraOf resolves a sidereal longitude to its lunar mansion.
func NakshatraOf(sidereal float64) Nakshatra {
	a := wheel.Map(sidereal, wheel.Nakshatras)
	return Nakshatra{
		Index:  a.Index,
		Name:   wheel.Nakshatras.Label(a.Index),
		Pada:   a.SubUnit,
		Lord:   NakshatraLord(a.Index),
		Degree: a.Degree,
	}
}
