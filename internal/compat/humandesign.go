package compat

import (
	"errors"
	"fmt"

	"github.com/Unforced-Dev/natal-engine-sub000/internal/humandesign"
)

// ElectromagneticPair is a channel completed jointly, each person holding
// exactly one of its gates.
type ElectromagneticPair struct {
	Channel string `json:"channel"`
	Name    string `json:"name"`
	AGate   int    `json:"a_gate"`
	BGate   int    `json:"b_gate"`
}

// ChannelLink describes a channel one or both people already carry.
type ChannelLink struct {
	Channel string `json:"channel"`
	Name    string `json:"name"`
	Holder  string `json:"holder"` // "A", "B" or "both"
}

// Composite is the bodygraph of the two charts' gates combined.
type Composite struct {
	Gates          []int                `json:"gates"`
	Channels       []string             `json:"channels"`
	DefinedCenters []humandesign.Center `json:"defined_centers"`
	Type           string               `json:"type"`
}

// HumanDesignResult is a connection chart comparison.
type HumanDesignResult struct {
	TypePair        string                `json:"type_pair"`
	Electromagnetic []ElectromagneticPair `json:"electromagnetic"`
	Companionship   []ChannelLink         `json:"companionship"`
	Dominance       []ChannelLink         `json:"dominance"`
	Compromise      []ChannelLink         `json:"compromise"`
	Composite       Composite             `json:"composite"`
	ConnectionTheme string                `json:"connection_theme"` // defined-undefined, e.g. "7-2"
	ThemeName       string                `json:"theme_name"`
	Score           float64               `json:"score"`
	Verdict         string                `json:"verdict"`
}

var themeNames = map[string]string{
	"9-0": "Nowhere to Go",
	"8-1": "Work",
	"7-2": "Fun",
	"6-3": "Hard Work",
}

// HumanDesign compares two charts channel by channel.
func HumanDesign(a, b *humandesign.Chart, t *humandesign.Tables) (*HumanDesignResult, error) {
	if a == nil || b == nil {
		return nil, errors.New("compare human design: nil chart")
	}
	res := &HumanDesignResult{TypePair: a.Type.Name + " / " + b.Type.Name}

	ga, gb := a.Graph, b.Graph
	for _, ch := range t.Channels {
		a1, a2 := ga.HasGate(ch.GateA), ga.HasGate(ch.GateB)
		b1, b2 := gb.HasGate(ch.GateA), gb.HasGate(ch.GateB)
		completeA, completeB := a1 && a2, b1 && b2

		switch {
		case a1 && !a2 && b2 && !b1:
			res.Electromagnetic = append(res.Electromagnetic, ElectromagneticPair{ch.Key(), ch.Name, ch.GateA, ch.GateB})
		case a2 && !a1 && b1 && !b2:
			res.Electromagnetic = append(res.Electromagnetic, ElectromagneticPair{ch.Key(), ch.Name, ch.GateB, ch.GateA})
		case completeA && completeB:
			res.Companionship = append(res.Companionship, ChannelLink{ch.Key(), ch.Name, "both"})
		case completeA && !b1 && !b2:
			res.Dominance = append(res.Dominance, ChannelLink{ch.Key(), ch.Name, "A"})
		case completeB && !a1 && !a2:
			res.Dominance = append(res.Dominance, ChannelLink{ch.Key(), ch.Name, "B"})
		case completeA:
			res.Compromise = append(res.Compromise, ChannelLink{ch.Key(), ch.Name, "A"})
		case completeB:
			res.Compromise = append(res.Compromise, ChannelLink{ch.Key(), ch.Name, "B"})
		}
	}

	union := append(append([]int(nil), ga.Gates...), gb.Gates...)
	comp := humandesign.ResolveGates(union, t)
	typ, _ := humandesign.Classify(comp, t)
	res.Composite = Composite{
		Gates:          comp.Gates,
		DefinedCenters: comp.DefinedCenters,
		Type:           typ.Name,
	}
	for _, ch := range comp.ActiveChannels {
		res.Composite.Channels = append(res.Composite.Channels, ch.Key())
	}

	defined := len(comp.DefinedCenters)
	res.ConnectionTheme = fmt.Sprintf("%d-%d", defined, len(humandesign.Centers)-defined)
	res.ThemeName = humandesign.Unknown
	if name, ok := themeNames[res.ConnectionTheme]; ok {
		res.ThemeName = name
	}

	res.Score = clamp(40 +
		10*float64(len(res.Electromagnetic)) +
		5*float64(len(res.Companionship)) +
		3*float64(len(res.Compromise)) +
		2*float64(len(res.Dominance)))
	res.Verdict = band(res.Score)
	return res, nil
}
