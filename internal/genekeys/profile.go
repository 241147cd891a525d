package genekeys

import (
	"errors"
	"fmt"
	"sort"

	"github.com/Unforced-Dev/natal-engine-sub000/internal/humandesign"
)

// Sequence names.
const (
	ActivationSequence = "Activation"
	VenusSequence      = "Venus"
	PearlSequence      = "Pearl"
)

// Side selects which moment of the chart feeds a sphere.
type Side uint8

const (
	Personality Side = iota
	Design
)

func (s Side) Name() string {
	switch s {
	case Personality:
		return "Personality"
	case Design:
		return "Design"
	default:
		return "Unknown"
	}
}

// SphereDef binds a sphere to the activation it reads.
type SphereDef struct {
	Name     string
	Sequence string
	Side     Side
	Body     string
}

// Spheres is the hologenetic profile in reading order.
var Spheres = []SphereDef{
	{"Life's Work", ActivationSequence, Personality, "Sun"},
	{"Evolution", ActivationSequence, Personality, humandesign.Earth},
	{"Radiance", ActivationSequence, Design, "Sun"},
	{"Purpose", ActivationSequence, Design, humandesign.Earth},
	{"Attraction", VenusSequence, Design, "Moon"},
	{"IQ", VenusSequence, Personality, "Venus"},
	{"EQ", VenusSequence, Personality, "Mars"},
	{"SQ", VenusSequence, Design, "Venus"},
	{"Core", VenusSequence, Design, "Mars"},
	{"Vocation", PearlSequence, Design, "Mars"},
	{"Culture", PearlSequence, Design, "Jupiter"},
	{"Pearl", PearlSequence, Personality, "Jupiter"},
}

// Sphere is one resolved position of the profile.
type Sphere struct {
	Name     string `json:"name"`
	Sequence string `json:"sequence"`
	Source   string `json:"source"` // e.g. "Design Moon"
	Line     int    `json:"line"`
	Key      Key    `json:"key"`
}

// Profile is a complete hologenetic profile.
type Profile struct {
	Spheres []Sphere `json:"spheres"`
	Keys    []int    `json:"keys"` // distinct keys, ascending
}

// Sphere returns the sphere with the given name.
func (p *Profile) Sphere(name string) (Sphere, bool) {
	for _, s := range p.Spheres {
		if s.Name == name {
			return s, true
		}
	}
	return Sphere{}, false
}

// Sequence returns the spheres of one sequence in reading order.
func (p *Profile) Sequence(name string) []Sphere {
	var out []Sphere
	for _, s := range p.Spheres {
		if s.Sequence == name {
			out = append(out, s)
		}
	}
	return out
}

// HasKey reports whether key n appears in any sphere.
func (p *Profile) HasKey(n int) bool {
	i := sort.SearchInts(p.Keys, n)
	return i < len(p.Keys) && p.Keys[i] == n
}

// Calculate derives the profile from a Human Design chart.
func Calculate(hd *humandesign.Chart) (*Profile, error) {
	if hd == nil {
		return nil, errors.New("gene keys: nil chart")
	}
	profile := &Profile{Spheres: make([]Sphere, 0, len(Spheres))}
	seen := make(map[int]bool)
	for _, def := range Spheres {
		var (
			a  humandesign.Activation
			ok bool
		)
		if def.Side == Personality {
			a, ok = hd.PersonalityActivation(def.Body)
		} else {
			a, ok = hd.DesignActivation(def.Body)
		}
		if !ok {
			return nil, fmt.Errorf("gene keys: sphere %s: no %s %s activation", def.Name, def.Side.Name(), def.Body)
		}
		profile.Spheres = append(profile.Spheres, Sphere{
			Name:     def.Name,
			Sequence: def.Sequence,
			Source:   def.Side.Name() + " " + def.Body,
			Line:     a.Line,
			Key:      Lookup(a.Gate),
		})
		if !seen[a.Gate] {
			seen[a.Gate] = true
			profile.Keys = append(profile.Keys, a.Gate)
		}
	}
	sort.Ints(profile.Keys)
	return profile, nil
}
