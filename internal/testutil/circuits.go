// Package testutil provides small deterministic circuits shared by engine,
// harness and store tests.
package testutil

import (
	"github.com/tburgert/circuitry/internal/circuit"
	"github.com/tburgert/circuitry/internal/geom"
)

const g = geom.GridSpacing

// StraightWire is an input at (0,0) wired to an output two grid units to the
// right.
type StraightWire struct {
	Circuit *circuit.Circuit
	In      *circuit.Node
	Out     *circuit.Node
}

// NewStraightWire builds the simplest observable circuit: in -- wire -- out.
func NewStraightWire() *StraightWire {
	c := circuit.New()
	in := c.AddNode(geom.Pt(0, 0), circuit.NodeInput)
	out := c.AddNode(geom.Pt(2*g, 0), circuit.NodeOutput)
	c.AddWire(geom.Pt(0, 0), geom.Pt(g, 0))
	c.AddWire(geom.Pt(g, 0), geom.Pt(2*g, 0))
	return &StraightWire{Circuit: c, In: in, Out: out}
}

// GatedLamp is a transistor between a supply input and an output node, with a
// separate input driving the gate.
//
//	supply(0,0) --- source(1,0) [T at (2,0)] drain(3,0) --- out(4,0)
//	                         gate input (2,2) wired down to (2,0)
type GatedLamp struct {
	Circuit *circuit.Circuit
	Supply  *circuit.Node
	Gate    *circuit.Node
	Out     *circuit.Node
	T       *circuit.Transistor
}

// NewGatedLamp builds a gated lamp with the given transistor kind.
func NewGatedLamp(kind circuit.TransistorKind) *GatedLamp {
	c := circuit.New()
	supply := c.AddNode(geom.Pt(0, 0), circuit.NodeInput)
	gate := c.AddNode(geom.Pt(2*g, 2*g), circuit.NodeInput)
	out := c.AddNode(geom.Pt(4*g, 0), circuit.NodeOutput)
	t := c.AddTransistor(geom.Pt(2*g, 0), kind, circuit.Horizontal)

	c.AddWire(geom.Pt(0, 0), geom.Pt(g, 0))         // supply -> source
	c.AddWire(geom.Pt(2*g, 2*g), geom.Pt(2*g, 0))   // gate input -> gate point
	c.AddWire(geom.Pt(3*g, 0), geom.Pt(4*g, 0))     // drain -> out
	return &GatedLamp{Circuit: c, Supply: supply, Gate: gate, Out: out, T: t}
}

// NewFeedbackLoop wires a transistor's drain back to its own gate, with the
// source fed from a permanently-on input.
//
//	supply(0,0) --- source(1,0) [T at (2,0)] drain(3,0)
//	     drain (3,0) -> (3,2) -> (2,2) -> gate (2,0)
//
// With a p-type transistor this is an inverter feeding itself: the canonical
// period-2 oscillator. With an n-type it settles off after the cold start.
func NewFeedbackLoop(kind circuit.TransistorKind) *circuit.Circuit {
	c := circuit.New()
	supply := c.AddNode(geom.Pt(0, 0), circuit.NodeInput)
	supply.On = true
	c.AddTransistor(geom.Pt(2*g, 0), kind, circuit.Horizontal)

	c.AddWire(geom.Pt(0, 0), geom.Pt(g, 0))
	c.AddWire(geom.Pt(3*g, 0), geom.Pt(3*g, 2*g))
	c.AddWire(geom.Pt(3*g, 2*g), geom.Pt(2*g, 2*g))
	c.AddWire(geom.Pt(2*g, 2*g), geom.Pt(2*g, 0))
	return c
}

// NewRelayRing builds a three-transistor ring (two n-type relays and one
// p-type inverter) whose cold-start trajectory cycles with period six: it
// neither converges nor forms a 2-cycle, so a tick can only end at the
// iteration cap.
//
// Each transistor's source hangs off a common always-on supply rail; each
// drain is routed to the next transistor's gate through dedicated corridors
// that share no grid points with any other segment.
func NewRelayRing() *circuit.Circuit {
	c := circuit.New()
	supply := c.AddNode(geom.Pt(0, 0), circuit.NodeInput)
	supply.On = true

	// Supply rail down the x=1 column.
	c.AddWire(geom.Pt(0, 0), geom.Pt(g, 0))
	c.AddWire(geom.Pt(g, 0), geom.Pt(g, 2*g))
	c.AddWire(geom.Pt(g, 2*g), geom.Pt(g, 4*g))

	// t1, t2 relay the signal; t3 inverts it.
	c.AddTransistor(geom.Pt(2*g, 0), circuit.NType, circuit.Horizontal)    // gate (2,0)
	c.AddTransistor(geom.Pt(2*g, 2*g), circuit.NType, circuit.Horizontal)  // gate (2,2)
	c.AddTransistor(geom.Pt(2*g, 4*g), circuit.PType, circuit.Horizontal)  // gate (2,4)

	// drain t1 (3,0) -> gate t2 (2,2)
	c.AddWire(geom.Pt(3*g, 0), geom.Pt(4*g, 0))
	c.AddWire(geom.Pt(4*g, 0), geom.Pt(4*g, g))
	c.AddWire(geom.Pt(4*g, g), geom.Pt(2*g, g))
	c.AddWire(geom.Pt(2*g, g), geom.Pt(2*g, 2*g))

	// drain t2 (3,2) -> gate t3 (2,4)
	c.AddWire(geom.Pt(3*g, 2*g), geom.Pt(4*g, 2*g))
	c.AddWire(geom.Pt(4*g, 2*g), geom.Pt(4*g, 3*g))
	c.AddWire(geom.Pt(4*g, 3*g), geom.Pt(2*g, 3*g))
	c.AddWire(geom.Pt(2*g, 3*g), geom.Pt(2*g, 4*g))

	// drain t3 (3,4) -> gate t1 (2,0), routed wide around everything else.
	c.AddWire(geom.Pt(3*g, 4*g), geom.Pt(5*g, 4*g))
	c.AddWire(geom.Pt(5*g, 4*g), geom.Pt(5*g, -g))
	c.AddWire(geom.Pt(5*g, -g), geom.Pt(2*g, -g))
	c.AddWire(geom.Pt(2*g, -g), geom.Pt(2*g, 0))
	return c
}

// ClockedLamp is a clock wired straight to an output node.
type ClockedLamp struct {
	Circuit *circuit.Circuit
	Clock   *circuit.Clock
	Out     *circuit.Node
}

// NewClockedLamp builds a clock with the given frequency driving an output.
func NewClockedLamp(frequency int) *ClockedLamp {
	c := circuit.New()
	ck := c.AddClock(geom.Pt(0, 0), frequency)
	out := c.AddNode(geom.Pt(g, 0), circuit.NodeOutput)
	c.AddWire(geom.Pt(0, 0), geom.Pt(g, 0))
	return &ClockedLamp{Circuit: c, Clock: ck, Out: out}
}
