package circuit

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tburgert/circuitry/internal/geom"
)

func TestTransistorTerminals(t *testing.T) {
	horizontal := &Transistor{Position: geom.Pt(200, 300), Kind: NType, Orientation: Horizontal}
	source, drain := horizontal.Terminals()
	assert.Equal(t, geom.Pt(100, 300), source)
	assert.Equal(t, geom.Pt(300, 300), drain)

	vertical := &Transistor{Position: geom.Pt(200, 300), Kind: NType, Orientation: Vertical}
	source, drain = vertical.Terminals()
	assert.Equal(t, geom.Pt(200, 200), source)
	assert.Equal(t, geom.Pt(200, 400), drain)
}

func TestTransistorRotate(t *testing.T) {
	tr := &Transistor{Position: geom.Pt(0, 0), Kind: NType, Orientation: Horizontal}

	tr.Rotate()
	assert.Equal(t, Vertical, tr.Orientation)
	tr.Rotate()
	assert.Equal(t, Horizontal, tr.Orientation)
}

func TestConductsWith(t *testing.T) {
	n := &Transistor{Kind: NType}
	assert.False(t, n.ConductsWith(false))
	assert.True(t, n.ConductsWith(true))

	p := &Transistor{Kind: PType}
	assert.True(t, p.ConductsWith(false))
	assert.False(t, p.ConductsWith(true))
}

func TestNodeToggle(t *testing.T) {
	in := &Node{Kind: NodeInput}
	in.Toggle()
	assert.True(t, in.On)
	in.Toggle()
	assert.False(t, in.On)

	out := &Node{Kind: NodeOutput}
	out.Toggle()
	assert.False(t, out.On, "output state belongs to the solver, not callers")
}

func TestClockAdvance(t *testing.T) {
	ck := &Clock{Frequency: 3}

	var states []bool
	for i := 0; i < 9; i++ {
		ck.Advance()
		states = append(states, ck.On)
	}
	assert.Equal(t, []bool{
		false, false, true,
		true, true, false,
		false, false, true,
	}, states)
	assert.Equal(t, 0, ck.PhaseCounter)
}

func TestClockAdvanceDefaultFrequency(t *testing.T) {
	ck := &Clock{} // frequency unset

	for i := 0; i < DefaultClockFrequency-1; i++ {
		ck.Advance()
		assert.False(t, ck.On, "clock toggled early at tick %d", i+1)
	}
	ck.Advance()
	assert.True(t, ck.On)

	// A nonsense frequency gets the same fallback.
	broken := &Clock{Frequency: -5}
	for i := 0; i < DefaultClockFrequency; i++ {
		broken.Advance()
	}
	assert.True(t, broken.On)
}
