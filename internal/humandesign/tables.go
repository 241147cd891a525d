package humandesign

import (
	"fmt"

	"github.com/Unforced-Dev/natal-engine-sub000/internal/wheel"
)

// Angle names of the incarnation cross geometry.
const (
	RightAngle    = "Right Angle"
	Juxtaposition = "Juxtaposition"
	LeftAngle     = "Left Angle"
	Unknown       = "Unknown"
)

// AuthorityRule maps a defined center to an authority name. Rules are
// checked in order; the first defined center wins.
type AuthorityRule struct {
	Center Center
	Name   string
}

// Tables is a versioned rule set. The engine never reads package globals
// directly; it is handed a *Tables so alternate rule sets can be swapped in.
type Tables struct {
	Version    string
	Wheel      wheel.Config
	Channels   []Channel
	GateCenter map[int]Center

	Motors     []Center
	Drive      Center // defines the Generator family
	Expression Center // the center motors must reach to manifest

	Authorities      []AuthorityRule
	DefaultAuthority string // no rule matched but something is defined
	EmptyAuthority   string // nothing defined at all

	ProfileNames  map[string]string // "5/1" -> "Heretic / Investigator"
	ProfileAngles map[string]string // "5/1" -> LeftAngle

	RightAngleCrosses    map[int]string // personality Sun gate -> cross theme
	JuxtapositionCrosses map[int]string
	LeftAngleCrosses     map[int]string
}

// Default is the standard rule set.
var Default = &Tables{
	Version:    "rave-2024.1",
	Wheel:      wheel.Gates,
	Channels:   defaultChannels,
	GateCenter: defaultGateCenters(),

	Motors:     []Center{Sacral, SolarPlexus, Heart, Root},
	Drive:      Sacral,
	Expression: Throat,

	Authorities: []AuthorityRule{
		{SolarPlexus, "Emotional"},
		{Sacral, "Sacral"},
		{Spleen, "Splenic"},
		{Heart, "Ego"},
		{G, "Self-Projected"},
	},
	DefaultAuthority: "Mental",
	EmptyAuthority:   "Lunar",

	ProfileNames: map[string]string{
		"1/3": "Investigator / Martyr",
		"1/4": "Investigator / Opportunist",
		"2/4": "Hermit / Opportunist",
		"2/5": "Hermit / Heretic",
		"3/5": "Martyr / Heretic",
		"3/6": "Martyr / Role Model",
		"4/6": "Opportunist / Role Model",
		"4/1": "Opportunist / Investigator",
		"5/1": "Heretic / Investigator",
		"5/2": "Heretic / Hermit",
		"6/2": "Role Model / Hermit",
		"6/3": "Role Model / Martyr",
	},
	ProfileAngles: map[string]string{
		"1/3": RightAngle, "1/4": RightAngle, "2/4": RightAngle, "2/5": RightAngle,
		"3/5": RightAngle, "3/6": RightAngle, "4/6": RightAngle,
		"4/1": Juxtaposition,
		"5/1": LeftAngle, "5/2": LeftAngle, "6/2": LeftAngle, "6/3": LeftAngle,
	},

	RightAngleCrosses:    rightAngleCrosses(),
	JuxtapositionCrosses: juxtapositionCrosses,
	LeftAngleCrosses:     leftAngleCrosses(),
}

var defaultChannels = []Channel{
	{1, 8, "Inspiration", [2]Center{G, Throat}},
	{2, 14, "The Beat", [2]Center{G, Sacral}},
	{3, 60, "Mutation", [2]Center{Sacral, Root}},
	{4, 63, "Logic", [2]Center{Ajna, Head}},
	{5, 15, "Rhythm", [2]Center{Sacral, G}},
	{6, 59, "Mating", [2]Center{SolarPlexus, Sacral}},
	{7, 31, "The Alpha", [2]Center{G, Throat}},
	{9, 52, "Concentration", [2]Center{Sacral, Root}},
	{10, 20, "Awakening", [2]Center{G, Throat}},
	{10, 34, "Exploration", [2]Center{G, Sacral}},
	{10, 57, "Perfected Form", [2]Center{G, Spleen}},
	{11, 56, "Curiosity", [2]Center{Ajna, Throat}},
	{12, 22, "Openness", [2]Center{Throat, SolarPlexus}},
	{13, 33, "The Prodigal", [2]Center{G, Throat}},
	{16, 48, "The Wavelength", [2]Center{Throat, Spleen}},
	{17, 62, "Acceptance", [2]Center{Ajna, Throat}},
	{18, 58, "Judgment", [2]Center{Spleen, Root}},
	{19, 49, "Synthesis", [2]Center{Root, SolarPlexus}},
	{20, 34, "Charisma", [2]Center{Throat, Sacral}},
	{20, 57, "The Brainwave", [2]Center{Throat, Spleen}},
	{21, 45, "Money", [2]Center{Heart, Throat}},
	{23, 43, "Structuring", [2]Center{Throat, Ajna}},
	{24, 61, "Awareness", [2]Center{Ajna, Head}},
	{25, 51, "Initiation", [2]Center{G, Heart}},
	{26, 44, "Surrender", [2]Center{Heart, Spleen}},
	{27, 50, "Preservation", [2]Center{Sacral, Spleen}},
	{28, 38, "Struggle", [2]Center{Spleen, Root}},
	{29, 46, "Discovery", [2]Center{Sacral, G}},
	{30, 41, "Recognition", [2]Center{SolarPlexus, Root}},
	{32, 54, "Transformation", [2]Center{Spleen, Root}},
	{34, 57, "Power", [2]Center{Sacral, Spleen}},
	{35, 36, "Transitoriness", [2]Center{Throat, SolarPlexus}},
	{37, 40, "Community", [2]Center{SolarPlexus, Heart}},
	{39, 55, "Emoting", [2]Center{Root, SolarPlexus}},
	{42, 53, "Maturation", [2]Center{Sacral, Root}},
	{47, 64, "Abstraction", [2]Center{Ajna, Head}},
}

func defaultGateCenters() map[int]Center {
	groups := map[Center][]int{
		Head:        {64, 61, 63},
		Ajna:        {47, 24, 4, 17, 43, 11},
		Throat:      {62, 23, 56, 35, 12, 45, 33, 8, 31, 20, 16},
		G:           {7, 1, 13, 25, 46, 2, 15, 10},
		Heart:       {21, 40, 26, 51},
		SolarPlexus: {6, 37, 22, 36, 30, 55, 49},
		Spleen:      {48, 57, 44, 50, 32, 28, 18},
		Sacral:      {5, 14, 29, 59, 9, 3, 42, 27, 34},
		Root:        {53, 60, 52, 19, 39, 41, 58, 38, 54},
	}
	out := make(map[int]Center, 64)
	for c, gates := range groups {
		for _, g := range gates {
			out[g] = c
		}
	}
	return out
}

// rightAngleCrosses: each theme is shared by the four gates of one quarter
// of the wheel's cross geometry.
func rightAngleCrosses() map[int]string {
	themes := []struct {
		name  string
		gates [4]int
	}{
		{"the Sphinx", [4]int{1, 2, 7, 13}},
		{"Explanation", [4]int{4, 49, 23, 43}},
		{"Laws", [4]int{3, 50, 60, 56}},
		{"Eden", [4]int{6, 36, 11, 12}},
		{"the Vessel of Love", [4]int{10, 15, 25, 46}},
		{"Maya", [4]int{32, 42, 61, 62}},
		{"Planning", [4]int{37, 40, 9, 16}},
		{"Tension", [4]int{38, 39, 48, 21}},
		{"Rulership", [4]int{22, 47, 26, 45}},
		{"Contagion", [4]int{8, 14, 29, 30}},
		{"Consciousness", [4]int{63, 64, 35, 5}},
		{"the Unexpected", [4]int{28, 27, 41, 31}},
		{"Service", [4]int{17, 18, 52, 58}},
		{"Penetration", [4]int{51, 57, 53, 54}},
		{"the Sleeping Phoenix", [4]int{20, 34, 55, 59}},
		{"the Four Ways", [4]int{24, 44, 19, 33}},
	}
	out := make(map[int]string, 64)
	for _, th := range themes {
		for _, g := range th.gates {
			out[g] = th.name
		}
	}
	return out
}

// leftAngleCrosses: each theme belongs to one Sun/Earth opposition pair.
func leftAngleCrosses() map[int]string {
	pairs := []struct {
		name string
		a, b int
	}{
		{"Defiance", 1, 2},
		{"Masks", 7, 13},
		{"Revolution", 4, 49},
		{"Industry", 29, 30},
		{"Spirit", 55, 59},
		{"Migration", 37, 40},
		{"Dominion", 63, 64},
		{"Informing", 22, 47},
		{"the Plane", 6, 36},
		{"Healing", 25, 46},
		{"Upheaval", 17, 18},
		{"Endeavour", 21, 48},
		{"the Clarion", 51, 57},
		{"Limitation", 32, 42},
		{"Wishes", 3, 50},
		{"Alignment", 27, 28},
		{"Incarnation", 24, 44},
		{"Dedication", 23, 43},
		{"Uncertainty", 8, 14},
		{"Duality", 20, 34},
		{"Identification", 9, 16},
		{"Separation", 5, 35},
		{"Confrontation", 26, 45},
		{"Education", 11, 12},
		{"Prevention", 10, 15},
		{"Demands", 52, 58},
		{"Individualism", 38, 39},
		{"Cycles", 53, 54},
		{"Obscuration", 61, 62},
		{"Distraction", 56, 60},
		{"the Alpha", 31, 41},
		{"Refinement", 19, 33},
	}
	out := make(map[int]string, 64)
	for _, p := range pairs {
		out[p.a] = p.name
		out[p.b] = p.name
	}
	return out
}

var juxtapositionCrosses = map[int]string{
	1: "Self-Expression", 2: "the Driver", 3: "Mutation", 4: "Formulization",
	5: "Habits", 6: "Conflict", 7: "Interaction", 8: "Contribution",
	9: "Focus", 10: "Behavior", 11: "Ideas", 12: "Articulation",
	13: "Listening", 14: "Empowering", 15: "Extremes", 16: "Experimentation",
	17: "Opinions", 18: "Correction", 19: "Need", 20: "the Now",
	21: "Control", 22: "Grace", 23: "Assimilation", 24: "Rationalization",
	25: "Innocence", 26: "the Trickster", 27: "Caring", 28: "Risks",
	29: "Commitment", 30: "Fates", 31: "Influence", 32: "Conservation",
	33: "Retreat", 34: "Power", 35: "Experience", 36: "Crisis",
	37: "Bargains", 38: "Opposition", 39: "Provocation", 40: "Denial",
	41: "Fantasy", 42: "Completion", 43: "Insight", 44: "Alertness",
	45: "Possession", 46: "Serendipity", 47: "Oppression", 48: "Depth",
	49: "Principles", 50: "Values", 51: "Shock", 52: "Stillness",
	53: "Beginnings", 54: "Ambition", 55: "Moods", 56: "Stimulation",
	57: "Intuition", 58: "Vitality", 59: "Strategy", 60: "Limitation",
	61: "Thinking", 62: "Detail", 63: "Doubts", 64: "Confusion",
}

// Validate checks the structural invariants of a rule set: every gate has a
// center, every channel's centers agree with its gates, and the channels
// cover all gates on the wheel.
func (t *Tables) Validate() error {
	if err := t.Wheel.Validate(); err != nil {
		return err
	}
	covered := make(map[int]bool, t.Wheel.Units)
	seen := make(map[string]bool, len(t.Channels))
	for _, ch := range t.Channels {
		if seen[ch.Key()] {
			return fmt.Errorf("channel %s listed twice", ch.Key())
		}
		seen[ch.Key()] = true
		for i, g := range []int{ch.GateA, ch.GateB} {
			c, ok := t.GateCenter[g]
			if !ok {
				return fmt.Errorf("channel %s: gate %d has no center", ch.Key(), g)
			}
			if c != ch.Centers[i] {
				return fmt.Errorf("channel %s: gate %d belongs to %s, channel says %s", ch.Key(), g, c, ch.Centers[i])
			}
			covered[g] = true
		}
	}
	for i := 0; i < t.Wheel.Units; i++ {
		g := t.Wheel.Order[i]
		if !covered[g] {
			return fmt.Errorf("gate %d is not an endpoint of any channel", g)
		}
	}
	for _, m := range t.Motors {
		if m == t.Expression {
			return fmt.Errorf("expression center %s cannot be a motor", m)
		}
	}
	return nil
}

// ChannelsFor returns every channel with gate as an endpoint, in table order.
func (t *Tables) ChannelsFor(gate int) []Channel {
	var out []Channel
	for _, ch := range t.Channels {
		if ch.Has(gate) {
			out = append(out, ch)
		}
	}
	return out
}

// IsMotor reports whether c is one of the rule set's motors.
func (t *Tables) IsMotor(c Center) bool {
	for _, m := range t.Motors {
		if m == c {
			return true
		}
	}
	return false
}
