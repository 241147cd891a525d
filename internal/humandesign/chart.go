package humandesign

import (
	"fmt"
	"time"

	"github.com/Unforced-Dev/natal-engine-sub000/internal/ephemeris"
	"github.com/Unforced-Dev/natal-engine-sub000/internal/wheel"
)

// Derived point names.
const (
	Earth     = "Earth"
	SouthNode = "South Node"
)

// ActivationBodies is the canonical order of the thirteen activations.
var ActivationBodies = []string{
	"Sun", Earth, "North Node", SouthNode, "Moon", "Mercury", "Venus",
	"Mars", "Jupiter", "Saturn", "Uranus", "Neptune", "Pluto",
}

// Activation is one body resolved onto the gate wheel.
type Activation struct {
	Body      string  `json:"body"`
	Longitude float64 `json:"longitude"`
	Gate      int     `json:"gate"`
	Line      int     `json:"line"`
	Center    string  `json:"center"`
}

// Chart is a resolved Human Design chart. It is built once by Calculate and
// has no mutators.
type Chart struct {
	Birth        time.Time      `json:"birth"`
	DesignMoment DesignSolution `json:"design_moment"`
	Personality  []Activation   `json:"personality"`
	Design       []Activation   `json:"design"`
	Graph        Graph          `json:"graph"`
	Undefined    []Center       `json:"undefined_centers"`
	Type         Type           `json:"type"`
	Authority    Authority      `json:"authority"`
	Profile      Profile        `json:"profile"`
	Definition   string         `json:"definition"`
	Cross        Cross          `json:"incarnation_cross"`
	RulesVersion string         `json:"rules_version"`
}

// PersonalityActivation returns the personality activation of a body.
func (c *Chart) PersonalityActivation(body string) (Activation, bool) {
	return findActivation(c.Personality, body)
}

// DesignActivation returns the design activation of a body.
func (c *Chart) DesignActivation(body string) (Activation, bool) {
	return findActivation(c.Design, body)
}

func findActivation(list []Activation, body string) (Activation, bool) {
	for _, a := range list {
		if a.Body == body {
			return a, true
		}
	}
	return Activation{}, false
}

// Calculate resolves a chart for the UTC birth moment.
func Calculate(p ephemeris.Provider, birth time.Time, t *Tables, solver SolverConfig) (*Chart, error) {
	birth = birth.UTC()
	personality, err := Activate(p, birth, t)
	if err != nil {
		return nil, fmt.Errorf("personality activations: %w", err)
	}

	sun := personality[0]
	solution, err := SolveDesignMoment(p, birth, sun.Longitude, solver)
	if err != nil {
		return nil, err
	}
	design, err := Activate(p, solution.Moment, t)
	if err != nil {
		return nil, fmt.Errorf("design activations: %w", err)
	}

	g := ResolveGraph(personality, design, t)
	typ, auth := Classify(g, t)
	profile := ProfileOf(personality[0].Line, design[0].Line, t)

	return &Chart{
		Birth:        birth,
		DesignMoment: solution,
		Personality:  personality,
		Design:       design,
		Graph:        g,
		Undefined:    g.UndefinedCenters(),
		Type:         typ,
		Authority:    auth,
		Profile:      profile,
		Definition:   DefinitionOf(g),
		Cross:        CrossOf(profile.Angle, personality[0].Gate, personality[1].Gate, design[0].Gate, design[1].Gate, t),
		RulesVersion: t.Version,
	}, nil
}

// Activate maps every body at moment m onto the gate wheel, in
// ActivationBodies order. Earth and the south node are the points opposite
// the Sun and the north node.
func Activate(p ephemeris.Provider, m time.Time, t *Tables) ([]Activation, error) {
	lon := make(map[string]float64, len(ActivationBodies))
	for _, b := range ephemeris.Bodies {
		pos, err := p.Position(b, m)
		if err != nil {
			return nil, fmt.Errorf("position of %s: %w", b.Name(), err)
		}
		lon[b.Name()] = pos.Longitude
	}
	lon[Earth] = wheel.Normalize(lon["Sun"] + 180)
	lon[SouthNode] = ephemeris.SouthNode(lon["North Node"])

	out := make([]Activation, 0, len(ActivationBodies))
	for _, body := range ActivationBodies {
		a := wheel.Map(lon[body], t.Wheel)
		center := Unknown
		if c, ok := t.GateCenter[a.Unit]; ok {
			center = c.Name()
		}
		out = append(out, Activation{
			Body:      body,
			Longitude: a.Longitude,
			Gate:      a.Unit,
			Line:      a.SubUnit,
			Center:    center,
		})
	}
	return out, nil
}
