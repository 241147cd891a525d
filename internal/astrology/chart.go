package astrology

import (
	"fmt"
	"math"
	"time"

	"github.com/Unforced-Dev/natal-engine-sub000/internal/aspects"
	"github.com/Unforced-Dev/natal-engine-sub000/internal/ephemeris"
	"github.com/Unforced-Dev/natal-engine-sub000/internal/wheel"
)

// SouthNode is the display name of the point opposite the north node.
const SouthNode = "South Node"

// retrogradeWindow is the half-width of the difference used to detect
// apparent backward motion.
const retrogradeWindow = 12 * time.Hour

// Placement is one point resolved onto the zodiac.
type Placement struct {
	Body       string  `json:"body"`
	Longitude  float64 `json:"longitude"`
	Latitude   float64 `json:"latitude"`
	DistanceKm float64 `json:"distance_km,omitempty"`
	SignIndex  int     `json:"sign_index"`
	Sign       string  `json:"sign"`
	Degree     float64 `json:"degree"`
	Formatted  string  `json:"formatted"`
	Element    string  `json:"element"`
	Modality   string  `json:"modality"`
	Retrograde bool    `json:"retrograde"`
	House      int     `json:"house,omitempty"` // 0 when houses are unavailable
}

// AnglesStatus distinguishes why angles are present or absent.
type AnglesStatus string

const (
	AnglesComputed   AnglesStatus = "computed"
	AnglesNoLocation AnglesStatus = "no_location"
)

// Angles are the horizon and meridian points. Both are nil unless Status is
// AnglesComputed.
type Angles struct {
	Status    AnglesStatus `json:"status"`
	Ascendant *Placement   `json:"ascendant,omitempty"`
	Midheaven *Placement   `json:"midheaven,omitempty"`
}

// House is one whole-sign house.
type House struct {
	Number    int    `json:"number"`
	SignIndex int    `json:"sign_index"`
	Sign      string `json:"sign"`
	Ruler     string `json:"ruler"`
}

// MoonPhase describes the Sun–Moon elongation.
type MoonPhase struct {
	Name         string  `json:"name"`
	Elongation   float64 `json:"elongation"`
	Illumination float64 `json:"illumination"`
}

// Chart is an immutable natal chart.
type Chart struct {
	Moment          time.Time           `json:"moment"`
	Location        *ephemeris.Location `json:"location,omitempty"`
	Placements      []Placement         `json:"placements"`
	Angles          Angles              `json:"angles"`
	Houses          []House             `json:"houses,omitempty"`
	Aspects         []aspects.Aspect    `json:"aspects"`
	Elements        map[string]int      `json:"elements"`
	Modalities      map[string]int      `json:"modalities"`
	DominantElement string              `json:"dominant_element"`
	MoonPhase       MoonPhase           `json:"moon_phase"`
}

// Placement returns the placement for a body name.
func (c *Chart) Placement(body string) (Placement, bool) {
	for _, p := range c.Placements {
		if p.Body == body {
			return p, true
		}
	}
	return Placement{}, false
}

// Points returns the placements as aspect points, in placement order.
// Angles are appended when computed.
func (c *Chart) Points() []aspects.Point {
	points := make([]aspects.Point, 0, len(c.Placements)+2)
	for _, p := range c.Placements {
		points = append(points, aspects.Point{Name: p.Body, Longitude: p.Longitude})
	}
	if c.Angles.Status == AnglesComputed {
		points = append(points,
			aspects.Point{Name: c.Angles.Ascendant.Body, Longitude: c.Angles.Ascendant.Longitude},
			aspects.Point{Name: c.Angles.Midheaven.Body, Longitude: c.Angles.Midheaven.Longitude},
		)
	}
	return points
}

// HasHouses reports whether whole-sign houses were computed.
func (c *Chart) HasHouses() bool {
	return c.Angles.Status == AnglesComputed
}

// Calculate builds a chart for the UTC moment t. A nil location yields a
// chart without angles or houses; that is not an error.
func Calculate(p ephemeris.Provider, t time.Time, loc *ephemeris.Location, table aspects.Table) (*Chart, error) {
	t = t.UTC()
	chart := &Chart{
		Moment:     t,
		Elements:   make(map[string]int, 4),
		Modalities: make(map[string]int, 3),
		Angles:     Angles{Status: AnglesNoLocation},
	}

	for _, body := range ephemeris.Bodies {
		pos, err := p.Position(body, t)
		if err != nil {
			return nil, fmt.Errorf("position of %s: %w", body.Name(), err)
		}
		retro, err := isRetrograde(p, body, t)
		if err != nil {
			return nil, err
		}
		pl := place(body.Name(), pos)
		pl.Retrograde = retro
		chart.Placements = append(chart.Placements, pl)

		if body == ephemeris.NorthNode {
			south := place(SouthNode, ephemeris.Position{Longitude: ephemeris.SouthNode(pos.Longitude)})
			south.Retrograde = retro
			chart.Placements = append(chart.Placements, south)
		}
	}

	if loc != nil {
		l := *loc
		chart.Location = &l
		h := ephemeris.HorizonAngles(t, l)
		asc := place("Ascendant", ephemeris.Position{Longitude: h.Ascendant})
		mc := place("Midheaven", ephemeris.Position{Longitude: h.Midheaven})
		chart.Angles = Angles{Status: AnglesComputed, Ascendant: &asc, Midheaven: &mc}
		chart.Houses = wholeSignHouses(asc.SignIndex)
		for i := range chart.Placements {
			chart.Placements[i].House = houseOf(chart.Placements[i].SignIndex, asc.SignIndex)
		}
		mc.House = houseOf(mc.SignIndex, asc.SignIndex)
		asc.House = 1
	}

	for _, pl := range chart.Placements {
		if !isPlanet(pl.Body) {
			continue
		}
		chart.Elements[pl.Element]++
		chart.Modalities[pl.Modality]++
	}
	chart.DominantElement = dominantElement(chart.Elements)

	sun, _ := chart.Placement(ephemeris.Sun.Name())
	moon, _ := chart.Placement(ephemeris.Moon.Name())
	chart.MoonPhase = moonPhase(sun.Longitude, moon.Longitude)

	chart.Aspects = table.Within(chart.Points(), false)
	return chart, nil
}

func place(name string, pos ephemeris.Position) Placement {
	a := wheel.Map(pos.Longitude, wheel.Zodiac)
	return Placement{
		Body:       name,
		Longitude:  a.Longitude,
		Latitude:   pos.Latitude,
		DistanceKm: pos.DistanceKm,
		SignIndex:  a.Index,
		Sign:       SignName(a.Index),
		Degree:     a.Degree,
		Formatted:  fmt.Sprintf("%s %s", wheel.DMS(a.Degree), SignName(a.Index)),
		Element:    SignElement(a.Index).Name(),
		Modality:   SignModality(a.Index).Name(),
	}
}

// isRetrograde compares positions half a day either side of t. The Sun and
// Moon never station; the mean node always moves backward.
func isRetrograde(p ephemeris.Provider, body ephemeris.Body, t time.Time) (bool, error) {
	switch body {
	case ephemeris.Sun, ephemeris.Moon:
		return false, nil
	case ephemeris.NorthNode:
		return true, nil
	}
	before, err := p.Position(body, t.Add(-retrogradeWindow))
	if err != nil {
		return false, fmt.Errorf("position of %s: %w", body.Name(), err)
	}
	after, err := p.Position(body, t.Add(retrogradeWindow))
	if err != nil {
		return false, fmt.Errorf("position of %s: %w", body.Name(), err)
	}
	return wheel.SignedDelta(before.Longitude, after.Longitude) < 0, nil
}

func isPlanet(name string) bool {
	for _, b := range ephemeris.Bodies {
		if b != ephemeris.NorthNode && b.Name() == name {
			return true
		}
	}
	return false
}

func wholeSignHouses(ascSign int) []House {
	houses := make([]House, 12)
	for i := range houses {
		sign := (ascSign + i) % 12
		houses[i] = House{
			Number:    i + 1,
			SignIndex: sign,
			Sign:      SignName(sign),
			Ruler:     SignRuler(sign),
		}
	}
	return houses
}

func houseOf(sign, ascSign int) int {
	return (sign-ascSign+12)%12 + 1
}

func dominantElement(counts map[string]int) string {
	best, bestCount := "Unknown", -1
	for _, e := range Elements {
		if n := counts[e.Name()]; n > bestCount {
			best, bestCount = e.Name(), n
		}
	}
	return best
}

var phaseNames = [8]string{
	"New Moon", "Waxing Crescent", "First Quarter", "Waxing Gibbous",
	"Full Moon", "Waning Gibbous", "Last Quarter", "Waning Crescent",
}

func moonPhase(sun, moon float64) MoonPhase {
	elong := wheel.Normalize(moon - sun)
	idx := int(math.Floor((elong+22.5)/45)) % 8
	return MoonPhase{
		Name:         phaseNames[idx],
		Elongation:   elong,
		Illumination: (1 - math.Cos(elong*math.Pi/180)) / 2,
	}
}
