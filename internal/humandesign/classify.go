package humandesign

import "fmt"

// Type names.
const (
	Manifestor           = "Manifestor"
	ManifestingGenerator = "Manifesting Generator"
	Generator            = "Generator"
	Reflector            = "Reflector"
	Projector            = "Projector"
)

// Type is the energy-type classification of a graph.
type Type struct {
	Name      string `json:"name"`
	Strategy  string `json:"strategy"`
	Signature string `json:"signature"`
	NotSelf   string `json:"not_self"`
}

var typeThemes = map[string]Type{
	Manifestor:           {Manifestor, "To Inform", "Peace", "Anger"},
	ManifestingGenerator: {ManifestingGenerator, "To Respond", "Satisfaction", "Frustration"},
	Generator:            {Generator, "To Respond", "Satisfaction", "Frustration"},
	Reflector:            {Reflector, "Wait a Lunar Cycle", "Surprise", "Disappointment"},
	Projector:            {Projector, "Wait for the Invitation", "Success", "Bitterness"},
}

// typeRule is one row of the type decision list.
type typeRule struct {
	name  string
	match func(g Graph, t *Tables) bool
}

// typeRules are evaluated top to bottom; the first match wins. The last rule
// always matches so classification is total.
var typeRules = []typeRule{
	{Manifestor, func(g Graph, t *Tables) bool {
		return !g.IsDefined(t.Drive) && motorToExpression(g, t)
	}},
	{ManifestingGenerator, func(g Graph, t *Tables) bool {
		return g.IsDefined(t.Drive) && motorToExpression(g, t)
	}},
	{Generator, func(g Graph, t *Tables) bool {
		return g.IsDefined(t.Drive)
	}},
	{Reflector, func(g Graph, _ *Tables) bool {
		return len(g.DefinedCenters) == 0
	}},
	{Projector, func(Graph, *Tables) bool { return true }},
}

// TypeOrder returns the type rule names in evaluation order.
func TypeOrder() []string {
	out := make([]string, len(typeRules))
	for i, r := range typeRules {
		out[i] = r.name
	}
	return out
}

func motorToExpression(g Graph, t *Tables) bool {
	for _, m := range t.Motors {
		if g.Connected(m, t.Expression) {
			return true
		}
	}
	return false
}

// Authority is the decision-making authority of a graph.
type Authority struct {
	Name   string `json:"name"`
	Center string `json:"center,omitempty"` // empty for the fallback authorities
}

// Classify derives type and authority. It never fails; the empty graph is a
// Reflector with the empty-graph authority.
func Classify(g Graph, t *Tables) (Type, Authority) {
	typ := typeThemes[Projector]
	for _, r := range typeRules {
		if r.match(g, t) {
			typ = typeThemes[r.name]
			break
		}
	}
	return typ, authorityOf(g, t)
}

func authorityOf(g Graph, t *Tables) Authority {
	if len(g.DefinedCenters) == 0 {
		return Authority{Name: t.EmptyAuthority}
	}
	for _, r := range t.Authorities {
		if g.IsDefined(r.Center) {
			return Authority{Name: r.Name, Center: r.Center.Name()}
		}
	}
	return Authority{Name: t.DefaultAuthority}
}

// Profile pairs the personality and design Sun lines.
type Profile struct {
	Personality int    `json:"personality"`
	Design      int    `json:"design"`
	Name        string `json:"name"`
	Angle       string `json:"angle"`
}

// Key renders the profile as "5/1".
func (p Profile) Key() string {
	return fmt.Sprintf("%d/%d", p.Personality, p.Design)
}

// ProfileOf looks up a line pair. Pairs missing from the tables get the
// Unknown name and angle instead of a guessed default.
func ProfileOf(personalityLine, designLine int, t *Tables) Profile {
	p := Profile{Personality: personalityLine, Design: designLine, Name: Unknown, Angle: Unknown}
	if name, ok := t.ProfileNames[p.Key()]; ok {
		p.Name = name
	}
	if angle, ok := t.ProfileAngles[p.Key()]; ok {
		p.Angle = angle
	}
	return p
}

var definitionNames = []string{
	"No Definition",
	"Single Definition",
	"Split Definition",
	"Triple Split Definition",
	"Quadruple Split Definition",
}

// DefinitionOf names the number of disconnected islands of definition.
func DefinitionOf(g Graph) string {
	n := len(g.Components())
	if n >= len(definitionNames) {
		return Unknown
	}
	return definitionNames[n]
}
