package engine

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/tburgert/circuitry/internal/circuit"
	"github.com/tburgert/circuitry/internal/geom"
)

// genPoint produces grid-aligned points in a small window so random circuits
// actually intersect.
func genPoint() gopter.Gen {
	return gopter.CombineGens(gen.IntRange(-5, 5), gen.IntRange(-5, 5)).
		Map(func(vs []interface{}) geom.Point {
			return geom.Pt(vs[0].(int)*geom.GridSpacing, vs[1].(int)*geom.GridSpacing)
		})
}

// genWires produces a random wire list as start/end point pairs.
func genWires() gopter.Gen {
	pair := gopter.CombineGens(genPoint(), genPoint()).
		Map(func(vs []interface{}) [2]geom.Point {
			return [2]geom.Point{vs[0].(geom.Point), vs[1].(geom.Point)}
		})
	return gen.SliceOf(pair)
}

func wireCircuit(pairs [][2]geom.Point) *circuit.Circuit {
	c := circuit.New()
	for _, p := range pairs {
		if p[0] == p[1] {
			continue
		}
		c.Wires = append(c.Wires, &circuit.Wire{Start: p[0], End: p[1]})
	}
	return c
}

// TestPropagateProperties checks the reachability invariants the solver leans
// on for arbitrary wire geometry.
func TestPropagateProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	// Every source is energized, wired or not.
	properties.Property("sources are always energized", prop.ForAll(
		func(pairs [][2]geom.Point, sources []geom.Point) bool {
			g := buildGraph(wireCircuit(pairs), nil)
			energized := propagate(g, sources)
			for _, s := range sources {
				if !energized.has(s) {
					return false
				}
			}
			return true
		},
		genWires(),
		gen.SliceOf(genPoint()),
	))

	// The energized set is closed under adjacency: no edge crosses its
	// boundary outward.
	properties.Property("energized set is closed under wire edges", prop.ForAll(
		func(pairs [][2]geom.Point, sources []geom.Point) bool {
			g := buildGraph(wireCircuit(pairs), nil)
			energized := propagate(g, sources)
			for p := range energized {
				for _, q := range g[p] {
					if !energized.has(q) {
						return false
					}
				}
			}
			return true
		},
		genWires(),
		gen.SliceOf(genPoint()),
	))

	// Adding a source never de-energizes anything.
	properties.Property("propagation is monotone in sources", prop.ForAll(
		func(pairs [][2]geom.Point, sources []geom.Point, extra geom.Point) bool {
			g := buildGraph(wireCircuit(pairs), nil)
			base := propagate(g, sources)
			grown := propagate(g, append(sources, extra))
			for p := range base {
				if !grown.has(p) {
					return false
				}
			}
			return true
		},
		genWires(),
		gen.SliceOf(genPoint()),
		genPoint(),
	))

	// Source order is irrelevant: reachability is a set property.
	properties.Property("source order does not change the result", prop.ForAll(
		func(pairs [][2]geom.Point, sources []geom.Point) bool {
			g := buildGraph(wireCircuit(pairs), nil)
			forward := propagate(g, sources)
			reversed := make([]geom.Point, len(sources))
			for i, s := range sources {
				reversed[len(sources)-1-i] = s
			}
			backward := propagate(g, reversed)
			return forward.equal(backward)
		},
		genWires(),
		gen.SliceOf(genPoint()),
	))

	// No sources, nothing energized.
	properties.Property("empty sources energize nothing", prop.ForAll(
		func(pairs [][2]geom.Point) bool {
			g := buildGraph(wireCircuit(pairs), nil)
			return len(propagate(g, nil)) == 0
		},
		genWires(),
	))

	properties.TestingRun(t)
}

func TestPropagate_ChainReachability(t *testing.T) {
	// A straight chain of wires: a source at one end reaches every joint.
	c := circuit.New()
	const n = 12
	for i := 0; i < n; i++ {
		c.Wires = append(c.Wires, &circuit.Wire{
			Start: geom.Pt(i*geom.GridSpacing, 0),
			End:   geom.Pt((i+1)*geom.GridSpacing, 0),
		})
	}

	g := buildGraph(c, nil)
	energized := propagate(g, []geom.Point{geom.Pt(0, 0)})

	if len(energized) != n+1 {
		t.Fatalf("expected %d energized points, got %d", n+1, len(energized))
	}
	for i := 0; i <= n; i++ {
		if !energized.has(geom.Pt(i*geom.GridSpacing, 0)) {
			t.Errorf("joint %d not energized", i)
		}
	}
}
