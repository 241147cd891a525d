package vedic

import (
	"time"

	"github.com/Unforced-Dev/natal-engine-sub000/internal/wheel"
)

// cycleYears is the length of one full Vimshottari cycle.
const cycleYears = 120

// Dasha is one planetary period. Antardashas are only populated on
// maha-dashas.
type Dasha struct {
	Lord        string    `json:"lord"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Years       float64   `json:"years"`
	Antardashas []Dasha   `json:"antardashas,omitempty"`
}

// Contains reports whether t falls in [Start, End).
func (d Dasha) Contains(t time.Time) bool {
	return !t.Before(d.Start) && t.Before(d.End)
}

func years(y float64) time.Duration {
	return time.Duration(y * daysPerJulianY * 24 * float64(time.Hour))
}

// Vimshottari lays out the nine maha-dashas from birth. The first period
// belongs to the Moon's nakshatra lord and is shortened by the part of the
// mansion the Moon has already crossed.
func Vimshottari(birth time.Time, moon Nakshatra) []Dasha {
	first := lordIndex(moon.Lord)
	if first < 0 {
		return nil
	}
	traversed := moon.Degree / wheel.Nakshatras.Width()
	elapsed := dashaYears[dashaLords[first]] * traversed

	// The first period notionally began before birth.
	start := birth.Add(-years(elapsed))
	out := make([]Dasha, 0, len(dashaLords))
	for k := 0; k < len(dashaLords); k++ {
		lord := dashaLords[(first+k)%len(dashaLords)]
		full := dashaYears[lord]
		end := start.Add(years(full))
		d := Dasha{
			Lord:        lord,
			Start:       start,
			End:         end,
			Years:       full,
			Antardashas: antardashas(lord, start, birth),
		}
		if k == 0 {
			d.Start = birth
			d.Years = full - elapsed
		}
		out = append(out, d)
		start = end
	}
	return out
}

// antardashas splits a maha-dasha in proportion to each lord's years,
// starting with the maha-dasha lord itself. Sub-periods before notBefore
// are dropped and the one straddling it is clipped.
func antardashas(maha string, start, notBefore time.Time) []Dasha {
	first := lordIndex(maha)
	var out []Dasha
	for k := 0; k < len(dashaLords); k++ {
		lord := dashaLords[(first+k)%len(dashaLords)]
		y := dashaYears[maha] * dashaYears[lord] / cycleYears
		end := start.Add(years(y))
		if end.After(notBefore) {
			d := Dasha{Lord: lord, Start: start, End: end, Years: y}
			if start.Before(notBefore) {
				d.Start = notBefore
				d.Years = end.Sub(notBefore).Hours() / 24 / daysPerJulianY
			}
			out = append(out, d)
		}
		start = end
	}
	return out
}

// DashaAt returns the maha-dasha and antardasha running at t.
func (c *Chart) DashaAt(t time.Time) (maha, antar Dasha, ok bool) {
	for _, d := range c.Dashas {
		if !d.Contains(t) {
			continue
		}
		for _, sub := range d.Antardashas {
			if sub.Contains(t) {
				return d, sub, true
			}
		}
		return d, Dasha{}, true
	}
	return Dasha{}, Dasha{}, false
}
