package circuit

import "github.com/tburgert/circuitry/internal/geom"

// NodeKind distinguishes input terminals (user-toggled sources) from output
// terminals (state fully derived by the solver).
type NodeKind string

const (
	NodeInput  NodeKind = "input"
	NodeOutput NodeKind = "output"
)

// TransistorKind selects the conduction rule. An n-type transistor conducts
// when its gate point is energized; a p-type conducts when it is not.
type TransistorKind string

const (
	NType TransistorKind = "n-type"
	PType TransistorKind = "p-type"
)

// Orientation is the axis along which a transistor's source and drain
// terminals are derived from its gate position.
type Orientation string

const (
	Horizontal Orientation = "horizontal"
	Vertical   Orientation = "vertical"
)

// DefaultClockFrequency is the number of ticks per clock half-period when a
// clock is placed without an explicit frequency.
const DefaultClockFrequency = 16

// Wire is an always-conducting edge between two grid points.
//
// On is a derived cache: recomputed wholesale by every solve as "either
// endpoint is energized". It exists for readers (renderers, CLIs) and never
// feeds back into the solve.
type Wire struct {
	Start geom.Point `yaml:"start"`
	End   geom.Point `yaml:"end"`
	On    bool       `yaml:"-"`
}

// Node is an input or output terminal at a single grid point.
//
// For input nodes On is externally mutable and acts as a signal source. For
// output nodes On is overwritten by every solve and must never be set by
// callers.
type Node struct {
	Position geom.Point `yaml:"position"`
	Kind     NodeKind   `yaml:"kind"`
	On       bool       `yaml:"on,omitempty"`
}

// Toggle flips an input node's state. Output nodes ignore toggles - their
// state belongs to the solver.
func (n *Node) Toggle() {
	if n.Kind == NodeInput {
		n.On = !n.On
	}
}

// Transistor is a switch between two derived terminal points, gated by the
// signal at its own position.
//
// Conducting is a derived cache, recomputed by every solve from the gate
// point's membership in the energized set.
type Transistor struct {
	Position    geom.Point     `yaml:"position"`
	Kind        TransistorKind `yaml:"kind"`
	Orientation Orientation    `yaml:"orientation"`
	Conducting  bool           `yaml:"-"`
}

// Terminals returns the source and drain points, offset one grid unit from
// the gate along the orientation axis.
func (t *Transistor) Terminals() (source, drain geom.Point) {
	if t.Orientation == Vertical {
		return t.Position.Add(0, -geom.GridSpacing), t.Position.Add(0, geom.GridSpacing)
	}
	return t.Position.Add(-geom.GridSpacing, 0), t.Position.Add(geom.GridSpacing, 0)
}

// Rotate flips the orientation axis, moving the derived terminals from the
// x axis to the y axis or back.
func (t *Transistor) Rotate() {
	if t.Orientation == Vertical {
		t.Orientation = Horizontal
	} else {
		t.Orientation = Vertical
	}
}

// ConductsWith reports whether the transistor conducts given the energized
// state of its gate point.
func (t *Transistor) ConductsWith(gateEnergized bool) bool {
	if t.Kind == PType {
		return !gateEnergized
	}
	return gateEnergized
}

// Clock is a periodic signal source. While On, its position is energized
// independent of reachability.
type Clock struct {
	Position geom.Point `yaml:"position"`
	// Frequency is the number of ticks per half-period: the clock toggles
	// once every Frequency ticks.
	Frequency    int  `yaml:"frequency"`
	On           bool `yaml:"-"`
	PhaseCounter int  `yaml:"-"`
}

// Advance moves the clock forward by one simulation tick, toggling On and
// resetting the phase counter once a half-period has elapsed. It is called
// exactly once per outer tick, never per solver iteration.
func (c *Clock) Advance() {
	freq := c.Frequency
	if freq <= 0 {
		freq = DefaultClockFrequency
	}
	c.PhaseCounter++
	if c.PhaseCounter >= freq {
		c.On = !c.On
		c.PhaseCounter = 0
	}
}
