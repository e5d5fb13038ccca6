package circuit

import "github.com/tburgert/circuitry/internal/geom"

// Circuit is the aggregate owner of all placed components.
//
// Components never reference each other: every relationship is positional,
// resolved through shared Point values by the solver's graph builder. Deleting
// a component is plain removal from its slice - nothing can dangle.
//
// A Circuit is not safe for concurrent mutation. The intended discipline is
// single-writer: one goroutine edits the circuit and calls the engine's Tick;
// independent circuits may be driven from independent goroutines.
type Circuit struct {
	Wires       []*Wire       `yaml:"wires,omitempty"`
	Nodes       []*Node       `yaml:"nodes,omitempty"`
	Transistors []*Transistor `yaml:"transistors,omitempty"`
	Clocks      []*Clock      `yaml:"clocks,omitempty"`
}

// New returns an empty circuit.
func New() *Circuit {
	return &Circuit{}
}

// AddWire places a wire between two points and returns it. The end point is
// aligned to the start's row or column, matching the editor's horizontal-or-
// vertical drawing rule. The engine itself tolerates arbitrary geometry; the
// alignment only mirrors how wires come into existence.
func (c *Circuit) AddWire(start, end geom.Point) *Wire {
	w := &Wire{Start: start, End: AlignWireEnd(start, end)}
	c.Wires = append(c.Wires, w)
	return w
}

// AddNode places an input or output terminal.
func (c *Circuit) AddNode(p geom.Point, kind NodeKind) *Node {
	n := &Node{Position: p, Kind: kind}
	c.Nodes = append(c.Nodes, n)
	return n
}

// AddTransistor places a transistor with its gate at p.
func (c *Circuit) AddTransistor(p geom.Point, kind TransistorKind, o Orientation) *Transistor {
	t := &Transistor{Position: p, Kind: kind, Orientation: o}
	c.Transistors = append(c.Transistors, t)
	return t
}

// AddClock places a clock source. A non-positive frequency falls back to
// DefaultClockFrequency on advance.
func (c *Circuit) AddClock(p geom.Point, frequency int) *Clock {
	ck := &Clock{Position: p, Frequency: frequency}
	c.Clocks = append(c.Clocks, ck)
	return ck
}

// NodeAt returns the first node placed at p, or nil.
func (c *Circuit) NodeAt(p geom.Point) *Node {
	for _, n := range c.Nodes {
		if n.Position == p {
			return n
		}
	}
	return nil
}

// TransistorAt returns the first transistor whose gate sits at p, or nil.
func (c *Circuit) TransistorAt(p geom.Point) *Transistor {
	for _, t := range c.Transistors {
		if t.Position == p {
			return t
		}
	}
	return nil
}

// ClockAt returns the first clock placed at p, or nil.
func (c *Circuit) ClockAt(p geom.Point) *Clock {
	for _, ck := range c.Clocks {
		if ck.Position == p {
			return ck
		}
	}
	return nil
}

// ToggleInputAt flips the input node at p. Returns false when there is no
// input node there.
func (c *Circuit) ToggleInputAt(p geom.Point) bool {
	n := c.NodeAt(p)
	if n == nil || n.Kind != NodeInput {
		return false
	}
	n.Toggle()
	return true
}

// RemoveNodeAt deletes the first node at p. Reports whether one was removed.
func (c *Circuit) RemoveNodeAt(p geom.Point) bool {
	for i, n := range c.Nodes {
		if n.Position == p {
			c.Nodes = append(c.Nodes[:i], c.Nodes[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveTransistorAt deletes the first transistor gated at p.
func (c *Circuit) RemoveTransistorAt(p geom.Point) bool {
	for i, t := range c.Transistors {
		if t.Position == p {
			c.Transistors = append(c.Transistors[:i], c.Transistors[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveClockAt deletes the first clock at p.
func (c *Circuit) RemoveClockAt(p geom.Point) bool {
	for i, ck := range c.Clocks {
		if ck.Position == p {
			c.Clocks = append(c.Clocks[:i], c.Clocks[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveWire deletes the first wire with the given endpoints, in either
// direction.
func (c *Circuit) RemoveWire(start, end geom.Point) bool {
	for i, w := range c.Wires {
		if (w.Start == start && w.End == end) || (w.Start == end && w.End == start) {
			c.Wires = append(c.Wires[:i], c.Wires[i+1:]...)
			return true
		}
	}
	return false
}

// Translate moves every component by (dx, dy). Positions are replaced, not
// mutated in place, preserving Point value semantics.
func (c *Circuit) Translate(dx, dy int) {
	for _, w := range c.Wires {
		w.Start = w.Start.Add(dx, dy)
		w.End = w.End.Add(dx, dy)
	}
	for _, n := range c.Nodes {
		n.Position = n.Position.Add(dx, dy)
	}
	for _, t := range c.Transistors {
		t.Position = t.Position.Add(dx, dy)
	}
	for _, ck := range c.Clocks {
		ck.Position = ck.Position.Add(dx, dy)
	}
}

// Clone returns a deep copy of the circuit, including derived state.
func (c *Circuit) Clone() *Circuit {
	out := &Circuit{}
	out.Merge(c, 0, 0)
	return out
}

// Merge appends deep copies of src's components, shifted by (dx, dy). This is
// the data half of the editor's copy/paste: the pasted components share no
// storage with the originals.
func (c *Circuit) Merge(src *Circuit, dx, dy int) {
	for _, w := range src.Wires {
		cp := *w
		cp.Start = cp.Start.Add(dx, dy)
		cp.End = cp.End.Add(dx, dy)
		c.Wires = append(c.Wires, &cp)
	}
	for _, n := range src.Nodes {
		cp := *n
		cp.Position = cp.Position.Add(dx, dy)
		c.Nodes = append(c.Nodes, &cp)
	}
	for _, t := range src.Transistors {
		cp := *t
		cp.Position = cp.Position.Add(dx, dy)
		c.Transistors = append(c.Transistors, &cp)
	}
	for _, ck := range src.Clocks {
		cp := *ck
		cp.Position = cp.Position.Add(dx, dy)
		c.Clocks = append(c.Clocks, &cp)
	}
}

// AlignWireEnd projects end onto start's row or column, whichever is closer,
// matching the editor's horizontal-or-vertical wire rule.
func AlignWireEnd(start, end geom.Point) geom.Point {
	dx := end.X - start.X
	if dx < 0 {
		dx = -dx
	}
	dy := end.Y - start.Y
	if dy < 0 {
		dy = -dy
	}
	if dx > dy {
		return geom.Point{X: end.X, Y: start.Y}
	}
	return geom.Point{X: start.X, Y: end.Y}
}
