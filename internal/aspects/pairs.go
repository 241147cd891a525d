package aspects

// Point is a named longitude taking part in an aspect scan.
type Point struct {
	Name      string
	Longitude float64
}

// Aspect is a resolved relation between two named points.
type Aspect struct {
	BodyA      string  `json:"body_a"`
	BodyB      string  `json:"body_b"`
	Name       string  `json:"aspect"`
	Symbol     string  `json:"symbol,omitempty"`
	Angle      float64 `json:"angle"`
	Separation float64 `json:"separation"`
	Orb        float64 `json:"orb"`
	Harmony    float64 `json:"harmony"`
}

func newAspect(a, b Point, m Match) Aspect {
	return Aspect{
		BodyA:      a.Name,
		BodyB:      b.Name,
		Name:       m.Relation.Name,
		Symbol:     m.Relation.Symbol,
		Angle:      m.Relation.Angle,
		Separation: m.Separation,
		Orb:        m.Orb,
		Harmony:    m.Relation.Harmony,
	}
}

// Between scans every (a, b) pair across two point lists, a-major. The
// result order is the scan order, so identical inputs give identical output.
func (t Table) Between(as, bs []Point, includeMinor bool) []Aspect {
	var out []Aspect
	for _, a := range as {
		for _, b := range bs {
			if m, ok := t.Find(a.Longitude, b.Longitude, includeMinor); ok {
				out = append(out, newAspect(a, b, m))
			}
		}
	}
	return out
}

// Within scans every unordered pair i<j of one point list.
func (t Table) Within(points []Point, includeMinor bool) []Aspect {
	var out []Aspect
	for i := 0; i < len(points); i++ {
		for j := i + 1; j < len(points); j++ {
			if m, ok := t.Find(points[i].Longitude, points[j].Longitude, includeMinor); ok {
				out = append(out, newAspect(points[i], points[j], m))
			}
		}
	}
	return out
}
