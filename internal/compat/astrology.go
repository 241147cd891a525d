package compat

import (
	"errors"
	"sort"

	"github.com/Unforced-Dev/natal-engine-sub000/internal/aspects"
	"github.com/Unforced-Dev/natal-engine-sub000/internal/astrology"
)

// KeyConnection is the first aspect found for a key pair, if any.
type KeyConnection struct {
	Name   string          `json:"name"`
	Weight float64         `json:"weight"`
	Aspect *aspects.Aspect `json:"aspect,omitempty"`
}

// AstrologyResult is a synastry comparison.
type AstrologyResult struct {
	Aspects        []aspects.Aspect `json:"aspects"`
	KeyConnections []KeyConnection  `json:"key_connections"`
	ElementHarmony float64          `json:"element_harmony"`
	MeanHarmony    float64          `json:"mean_harmony"`
	Score          float64          `json:"score"`
	Verdict        string           `json:"verdict"`
}

// Astrology compares two natal charts. Aspects are scanned with A's points
// as the outer loop, then ordered key pairs first and by orb within each
// group.
func Astrology(a, b *astrology.Chart, table aspects.Table, cfg Config) (*AstrologyResult, error) {
	if a == nil || b == nil {
		return nil, errors.New("compare astrology: nil chart")
	}
	scanned := table.Between(a.Points(), b.Points(), cfg.IncludeMinor)

	res := &AstrologyResult{KeyConnections: keyConnections(scanned, cfg.KeyPairs)}

	sunA, _ := a.Placement("Sun")
	sunB, _ := b.Placement("Sun")
	res.ElementHarmony = astrology.ElementHarmony(
		astrology.SignElement(sunA.SignIndex), astrology.SignElement(sunB.SignIndex))

	var keyed float64
	for _, kc := range res.KeyConnections {
		if kc.Aspect != nil {
			keyed += kc.Weight * kc.Aspect.Harmony
		}
	}
	var all, other float64
	otherN := 0
	for _, asp := range scanned {
		all += asp.Harmony
		if !isKeyPair(asp, cfg.KeyPairs) {
			other += asp.Harmony
			otherN++
		}
	}
	if otherN > 0 {
		keyed += cfg.OtherWeight * other / float64(otherN)
	}
	if len(scanned) > 0 {
		res.MeanHarmony = all / float64(len(scanned))
	}

	res.Score = clamp(cfg.Baseline +
		res.ElementHarmony*cfg.ElementScale +
		keyed*cfg.KeyScale +
		res.MeanHarmony*cfg.MeanScale)
	res.Verdict = band(res.Score)

	res.Aspects = append([]aspects.Aspect(nil), scanned...)
	sort.SliceStable(res.Aspects, func(i, j int) bool {
		ki, kj := isKeyPair(res.Aspects[i], cfg.KeyPairs), isKeyPair(res.Aspects[j], cfg.KeyPairs)
		if ki != kj {
			return ki
		}
		return res.Aspects[i].Orb < res.Aspects[j].Orb
	})
	return res, nil
}

// keyConnections keeps, per key pair, the first aspect in scan order.
func keyConnections(scanned []aspects.Aspect, pairs []KeyPair) []KeyConnection {
	out := make([]KeyConnection, len(pairs))
	for i, kp := range pairs {
		out[i] = KeyConnection{Name: kp.Name, Weight: kp.Weight}
		for j := range scanned {
			if kp.Matches(scanned[j].BodyA, scanned[j].BodyB) {
				asp := scanned[j]
				out[i].Aspect = &asp
				break
			}
		}
	}
	return out
}

func isKeyPair(asp aspects.Aspect, pairs []KeyPair) bool {
	for _, kp := range pairs {
		if kp.Matches(asp.BodyA, asp.BodyB) {
			return true
		}
	}
	return false
}
