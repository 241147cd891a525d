// Package humandesign resolves Human Design charts: activations at the
// personality and design moments, the channel/center graph, type,
// authority, profile, definition and incarnation cross.
package humandesign

import "fmt"

// Center is one of the nine aggregation nodes of the bodygraph.
type Center uint8

const (
	Head Center = iota
	Ajna
	Throat
	G
	Heart
	SolarPlexus
	Spleen
	Sacral
	Root
)

// Centers in canonical (top to bottom) order.
var Centers = []Center{Head, Ajna, Throat, G, Heart, SolarPlexus, Spleen, Sacral, Root}

// Name returns the display name of the center.
func (c Center) Name() string {
	switch c {
	case Head:
		return "Head"
	case Ajna:
		return "Ajna"
	case Throat:
		return "Throat"
	case G:
		return "G"
	case Heart:
		return "Heart"
	case SolarPlexus:
		return "Solar Plexus"
	case Spleen:
		return "Spleen"
	case Sacral:
		return "Sacral"
	case Root:
		return "Root"
	default:
		return "Unknown"
	}
}

func (c Center) String() string { return c.Name() }

// MarshalText renders the center by name in JSON and YAML.
func (c Center) MarshalText() ([]byte, error) {
	if c.Name() == "Unknown" {
		return nil, fmt.Errorf("unknown center %d", c)
	}
	return []byte(c.Name()), nil
}

// UnmarshalText parses a center name.
func (c *Center) UnmarshalText(b []byte) error {
	for _, x := range Centers {
		if x.Name() == string(b) {
			*c = x
			return nil
		}
	}
	return fmt.Errorf("unknown center %q", string(b))
}

// Channel joins two gates and thereby two centers.
type Channel struct {
	GateA   int       `json:"gate_a"`
	GateB   int       `json:"gate_b"`
	Name    string    `json:"name"`
	Centers [2]Center `json:"centers"`
}

// Key renders the channel as "10-20".
func (ch Channel) Key() string {
	return fmt.Sprintf("%d-%d", ch.GateA, ch.GateB)
}

// Has reports whether gate is one of the channel's endpoints.
func (ch Channel) Has(gate int) bool {
	return ch.GateA == gate || ch.GateB == gate
}

// Other returns the endpoint opposite gate, or 0.
func (ch Channel) Other(gate int) int {
	switch gate {
	case ch.GateA:
		return ch.GateB
	case ch.GateB:
		return ch.GateA
	}
	return 0
}
