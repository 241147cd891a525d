package compat

import (
	"errors"
	"sort"

	"github.com/Unforced-Dev/natal-engine-sub000/internal/genekeys"
)

// SharedKey is a key that appears in both profiles.
type SharedKey struct {
	Key      int      `json:"key"`
	Gift     string   `json:"gift"`
	ASpheres []string `json:"a_spheres"`
	BSpheres []string `json:"b_spheres"`
}

// PartnerLink joins a key of A with its programming partner held by B.
type PartnerLink struct {
	AKey int `json:"a_key"`
	BKey int `json:"b_key"`
}

// SphereMatch is the same key in the same sphere of both profiles.
type SphereMatch struct {
	Sphere string `json:"sphere"`
	Key    int    `json:"key"`
}

// GeneKeysResult compares two hologenetic profiles.
type GeneKeysResult struct {
	Shared        []SharedKey   `json:"shared"`
	Partners      []PartnerLink `json:"partners"`
	SphereMatches []SphereMatch `json:"sphere_matches"`
	Score         float64       `json:"score"`
	Verdict       string        `json:"verdict"`
}

// GeneKeys compares two profiles by their keys.
func GeneKeys(a, b *genekeys.Profile) (*GeneKeysResult, error) {
	if a == nil || b == nil {
		return nil, errors.New("compare gene keys: nil profile")
	}
	res := &GeneKeysResult{}

	spheresOf := func(p *genekeys.Profile, key int) []string {
		var out []string
		for _, s := range p.Spheres {
			if s.Key.Number == key {
				out = append(out, s.Name)
			}
		}
		return out
	}
	for _, k := range a.Keys {
		if b.HasKey(k) {
			res.Shared = append(res.Shared, SharedKey{
				Key:      k,
				Gift:     genekeys.Lookup(k).Gift,
				ASpheres: spheresOf(a, k),
				BSpheres: spheresOf(b, k),
			})
		}
		if partner := genekeys.Lookup(k).Partner; partner > 0 && b.HasKey(partner) {
			res.Partners = append(res.Partners, PartnerLink{AKey: k, BKey: partner})
		}
	}
	sort.Slice(res.Partners, func(i, j int) bool { return res.Partners[i].AKey < res.Partners[j].AKey })

	for _, sa := range a.Spheres {
		if sb, ok := b.Sphere(sa.Name); ok && sb.Key.Number == sa.Key.Number {
			res.SphereMatches = append(res.SphereMatches, SphereMatch{Sphere: sa.Name, Key: sa.Key.Number})
		}
	}

	res.Score = clamp(50 +
		6*float64(len(res.Shared)) +
		4*float64(len(res.Partners)) +
		8*float64(len(res.SphereMatches)))
	res.Verdict = band(res.Score)
	return res, nil
}
