package compat

import (
	"errors"
	"fmt"

	"github.com/Unforced-Dev/natal-engine-sub000/internal/vedic"
)

// Koota is one scored factor of Ashtakoota matching.
type Koota struct {
	Name   string  `json:"name"`
	Points float64 `json:"points"`
	Max    float64 `json:"max"`
	Detail string  `json:"detail"`
}

// VedicResult is a Moon-based Ashtakoota match over six of the eight
// kootas. Vashya and Yoni are not scored.
type VedicResult struct {
	Kootas     []Koota `json:"kootas"`
	Total      float64 `json:"total"`
	Max        float64 `json:"max"`
	Percentage float64 `json:"percentage"`
	Verdict    string  `json:"verdict"`
}

// kootaRule scores one factor from the two Moon placements.
type kootaRule struct {
	name  string
	max   float64
	score func(a, b vedic.Placement) (float64, string)
}

var kootaRules = []kootaRule{
	{"Varna", 1, varna},
	{"Tara", 3, tara},
	{"Graha Maitri", 5, grahaMaitri},
	{"Gana", 6, gana},
	{"Bhakoot", 7, bhakoot},
	{"Nadi", 8, nadi},
}

// Vedic matches two sidereal charts by their Moons.
func Vedic(a, b *vedic.Chart) (*VedicResult, error) {
	if a == nil || b == nil {
		return nil, errors.New("compare vedic: nil chart")
	}
	ma, mb := a.Moon(), b.Moon()
	res := &VedicResult{}
	for _, r := range kootaRules {
		pts, detail := r.score(ma, mb)
		res.Kootas = append(res.Kootas, Koota{Name: r.name, Points: pts, Max: r.max, Detail: detail})
		res.Total += pts
		res.Max += r.max
	}
	res.Percentage = 100 * res.Total / res.Max
	switch {
	case res.Percentage >= 75:
		res.Verdict = "Excellent"
	case res.Percentage >= 50:
		res.Verdict = "Good"
	case res.Percentage >= 33:
		res.Verdict = "Average"
	default:
		res.Verdict = "Challenging"
	}
	return res, nil
}

// varna scores equal ranks fully and adjacent ranks by half, so the
// match reads the same in either direction.
func varna(a, b vedic.Placement) (float64, string) {
	ra, rb := vedic.VarnaOf(a.RashiIndex), vedic.VarnaOf(b.RashiIndex)
	detail := vedic.VarnaName(ra) + " / " + vedic.VarnaName(rb)
	switch d := ra - rb; {
	case d == 0:
		return 1, detail
	case d == 1 || d == -1:
		return 0.5, detail
	}
	return 0, detail
}

// tara counts nakshatras from each Moon to the other; counts falling on
// the 3rd, 5th or 7th star of a nine-star cycle are inauspicious.
func tara(a, b vedic.Placement) (float64, string) {
	good := func(from, to int) bool {
		n := (to-from+27)%27 + 1
		switch n % 9 {
		case 3, 5, 7:
			return false
		}
		return true
	}
	pts := 0.0
	if good(a.Nakshatra.Index, b.Nakshatra.Index) {
		pts += 1.5
	}
	if good(b.Nakshatra.Index, a.Nakshatra.Index) {
		pts += 1.5
	}
	return pts, a.Nakshatra.Name + " / " + b.Nakshatra.Name
}

func grahaMaitri(a, b vedic.Placement) (float64, string) {
	la, lb := vedic.RashiLord(a.RashiIndex), vedic.RashiLord(b.RashiIndex)
	detail := la + " / " + lb
	if la == lb {
		return 5, detail
	}
	ab, ba := vedic.Relation(la, lb), vedic.Relation(lb, la)
	switch ab + ba {
	case 2:
		return 5, detail
	case 1:
		return 4, detail
	case 0:
		if ab == vedic.Neutral {
			return 3, detail
		}
		return 1, detail // friend one way, enemy the other
	case -1:
		return 0.5, detail
	}
	return 0, detail
}

func gana(a, b vedic.Placement) (float64, string) {
	ga, gb := vedic.GanaOf(a.Nakshatra.Index), vedic.GanaOf(b.Nakshatra.Index)
	detail := ga.Name() + " / " + gb.Name()
	switch {
	case ga == gb:
		return 6, detail
	case (ga == vedic.Deva && gb == vedic.Manushya) || (ga == vedic.Manushya && gb == vedic.Deva):
		return 5, detail
	case ga == vedic.Deva || gb == vedic.Deva:
		return 1, detail
	}
	return 0, detail
}

// bhakoot penalizes 2/12, 5/9 and 6/8 sign relationships between Moons.
func bhakoot(a, b vedic.Placement) (float64, string) {
	n := (b.RashiIndex-a.RashiIndex+12)%12 + 1
	detail := fmt.Sprintf("%d/%d", n, (a.RashiIndex-b.RashiIndex+12)%12+1)
	switch n {
	case 2, 12, 5, 9, 6, 8:
		return 0, detail
	}
	return 7, detail
}

func nadi(a, b vedic.Placement) (float64, string) {
	na, nb := vedic.NadiOf(a.Nakshatra.Index), vedic.NadiOf(b.Nakshatra.Index)
	detail := na.Name() + " / " + nb.Name()
	if na == nb {
		return 0, detail
	}
	return 8, detail
}
