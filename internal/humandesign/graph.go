package humandesign

import "sort"

// Graph is the resolved bodygraph: which gates are present, which channels
// they complete, and which centers those channels define.
type Graph struct {
	Gates          []int     `json:"gates"`
	ActiveChannels []Channel `json:"active_channels"`
	DefinedCenters []Center  `json:"defined_centers"`

	defined map[Center]bool
	gates   map[int]bool
}

// ResolveGraph unions the gates of both moments and activates every channel
// whose two gates are both present, regardless of which moment supplied them.
func ResolveGraph(personality, design []Activation, t *Tables) Graph {
	gates := make([]int, 0, len(personality)+len(design))
	for _, a := range personality {
		gates = append(gates, a.Gate)
	}
	for _, a := range design {
		gates = append(gates, a.Gate)
	}
	return ResolveGates(gates, t)
}

// ResolveGates builds a graph from a bare gate set. Duplicates are ignored.
func ResolveGates(gates []int, t *Tables) Graph {
	g := Graph{
		defined: make(map[Center]bool),
		gates:   make(map[int]bool, len(gates)),
	}
	for _, n := range gates {
		if !g.gates[n] {
			g.gates[n] = true
			g.Gates = append(g.Gates, n)
		}
	}
	sort.Ints(g.Gates)

	for _, ch := range t.Channels {
		if g.gates[ch.GateA] && g.gates[ch.GateB] {
			g.ActiveChannels = append(g.ActiveChannels, ch)
			g.defined[ch.Centers[0]] = true
			g.defined[ch.Centers[1]] = true
		}
	}
	for _, c := range Centers {
		if g.defined[c] {
			g.DefinedCenters = append(g.DefinedCenters, c)
		}
	}
	return g
}

// HasGate reports whether gate is present.
func (g Graph) HasGate(gate int) bool { return g.gates[gate] }

// IsDefined reports whether center c is defined.
func (g Graph) IsDefined(c Center) bool { return g.defined[c] }

// UndefinedCenters returns the open centers in canonical order.
func (g Graph) UndefinedCenters() []Center {
	var out []Center
	for _, c := range Centers {
		if !g.defined[c] {
			out = append(out, c)
		}
	}
	return out
}

// HasChannel reports whether the channel between gates a and b is active.
func (g Graph) HasChannel(a, b int) bool {
	for _, ch := range g.ActiveChannels {
		if ch.Has(a) && ch.Has(b) && a != b {
			return true
		}
	}
	return false
}

func (g Graph) adjacency() map[Center][]Center {
	adj := make(map[Center][]Center)
	for _, ch := range g.ActiveChannels {
		a, b := ch.Centers[0], ch.Centers[1]
		adj[a] = append(adj[a], b)
		adj[b] = append(adj[b], a)
	}
	return adj
}

// Connected reports whether a chain of active channels links from to any of
// the targets. A center is trivially connected to itself only when defined.
func (g Graph) Connected(from Center, targets ...Center) bool {
	if !g.defined[from] {
		return false
	}
	want := make(map[Center]bool, len(targets))
	for _, t := range targets {
		want[t] = true
	}
	adj := g.adjacency()
	seen := map[Center]bool{from: true}
	queue := []Center{from}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if want[c] {
			return true
		}
		for _, n := range adj[c] {
			if !seen[n] {
				seen[n] = true
				queue = append(queue, n)
			}
		}
	}
	return false
}

// Components groups the defined centers into connected islands. Islands and
// their members come out in canonical center order.
func (g Graph) Components() [][]Center {
	adj := g.adjacency()
	seen := make(map[Center]bool)
	var out [][]Center
	for _, start := range g.DefinedCenters {
		if seen[start] {
			continue
		}
		members := map[Center]bool{start: true}
		seen[start] = true
		queue := []Center{start}
		for len(queue) > 0 {
			c := queue[0]
			queue = queue[1:]
			for _, n := range adj[c] {
				if !seen[n] {
					seen[n] = true
					members[n] = true
					queue = append(queue, n)
				}
			}
		}
		var island []Center
		for _, c := range Centers {
			if members[c] {
				island = append(island, c)
			}
		}
		out = append(out, island)
	}
	return out
}
