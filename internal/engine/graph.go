package engine

import (
	"github.com/tburgert/circuitry/internal/circuit"
	"github.com/tburgert/circuitry/internal/geom"
)

// graph is an undirected adjacency mapping over grid points. Every vertex the
// circuit can energize has an entry, even when edgeless, so isolated sources
// remain visitable.
type graph map[geom.Point][]geom.Point

// pointSet is the energized-point set of one solve iteration.
type pointSet map[geom.Point]struct{}

func (s pointSet) has(p geom.Point) bool {
	_, ok := s[p]
	return ok
}

func (s pointSet) equal(o pointSet) bool {
	if len(s) != len(o) {
		return false
	}
	for p := range s {
		if !o.has(p) {
			return false
		}
	}
	return true
}

// buildGraph constructs the adjacency mapping for one solver iteration.
//
// It is a pure function of the circuit's geometry and the energized set from
// the previous iteration: wires contribute both directions of their edge,
// node and clock positions are registered as vertices, and each transistor
// contributes a source-drain edge when it conducts under the given energized
// set. Any geometry is legal; the result is a valid, possibly disconnected
// graph.
func buildGraph(c *circuit.Circuit, energized pointSet) graph {
	g := make(graph)

	touch := func(p geom.Point) {
		if _, ok := g[p]; !ok {
			g[p] = nil
		}
	}
	link := func(a, b geom.Point) {
		g[a] = append(g[a], b)
		g[b] = append(g[b], a)
	}

	for _, w := range c.Wires {
		link(w.Start, w.End)
	}
	for _, n := range c.Nodes {
		touch(n.Position)
	}
	for _, ck := range c.Clocks {
		touch(ck.Position)
	}
	for _, t := range c.Transistors {
		source, drain := t.Terminals()
		touch(t.Position)
		touch(source)
		touch(drain)
		if t.ConductsWith(energized.has(t.Position)) {
			link(source, drain)
		}
	}

	return g
}

// activeSources collects the positions that are energized independent of
// reachability: on input nodes and on clocks.
func activeSources(c *circuit.Circuit) []geom.Point {
	var sources []geom.Point
	for _, n := range c.Nodes {
		if n.Kind == circuit.NodeInput && n.On {
			sources = append(sources, n.Position)
		}
	}
	for _, ck := range c.Clocks {
		if ck.On {
			sources = append(sources, ck.Position)
		}
	}
	return sources
}
