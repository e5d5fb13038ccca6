package engine

import (
	"log/slog"

	"github.com/tburgert/circuitry/internal/circuit"
	"github.com/tburgert/circuitry/internal/geom"
)

// DefaultMaxIterations bounds the fixed-point solve of a single tick. The cap
// is the only latency bound: a feedback cycle longer than period 2 is not
// detected and runs until the cap trips.
const DefaultMaxIterations = 10000

// Engine runs the per-tick fixed-point solve for a circuit.
//
// An Engine holds no reference to any circuit between ticks; it allocates its
// transient graph and energized set per call. One engine may serve many
// circuits, but a single circuit must not be mutated (by an editor or another
// Tick) while a Tick on it is in flight.
type Engine struct {
	maxIterations int
	last          Result
}

// Option configures an Engine.
type Option func(*Engine)

// WithMaxIterations overrides the per-tick iteration cap.
// Use small values in tests that exercise the cap; the default suits
// interactive use.
func WithMaxIterations(n int) Option {
	return func(e *Engine) {
		e.maxIterations = n
	}
}

// New creates an engine with the default iteration cap.
func New(opts ...Option) *Engine {
	e := &Engine{maxIterations: DefaultMaxIterations}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Tick advances the circuit by one simulation step: clocks move forward one
// tick, then the solver iterates graph build + propagation to a fixed point.
//
// On return the circuit's derived caches (Wire.On, output Node.On,
// Transistor.Conducting) reflect the final energized set, whatever the
// status. Tick never fails: oscillation and the iteration cap are reported
// through Result.Status, not through an error, because callers tick every
// frame and must keep running.
func (e *Engine) Tick(c *circuit.Circuit) Result {
	for _, ck := range c.Clocks {
		ck.Advance()
	}

	// Sources are fixed for the duration of the tick: the solve only
	// rewrites derived state, never input or clock flags.
	sources := activeSources(c)

	// Iteration 0 evaluates transistor conduction against an empty set.
	// Cold-start semantics are load-bearing: a transistor gated by a point
	// that only energizes after a propagation pass starts the tick
	// non-conducting (n-type) or conducting (p-type).
	energized := make(pointSet)
	var prev, prevPrev *signature
	iterations := 0
	status := Converged

	for {
		g := buildGraph(c, energized)
		energized = propagate(g, sources)
		applyStates(c, energized)
		iterations++

		sig := &signature{energized: energized, conducting: conductingVector(c)}
		if sig.equal(prev) {
			status = Converged
			break
		}
		if sig.equal(prevPrev) {
			// The solve is flipping between two states. Stop on the most
			// recent one; the circuit stays at well-defined values.
			status = Oscillating
			break
		}
		if iterations > e.maxIterations {
			status = IterationLimitExceeded
			break
		}
		prevPrev, prev = prev, sig
	}

	e.last = Result{
		Status:     status,
		Iterations: iterations,
		OnPoints:   energized,
	}

	switch status {
	case Converged:
		slog.Debug("tick solved",
			"status", status.String(),
			"iterations", iterations,
			"energized", len(energized),
		)
	default:
		slog.Warn("tick did not converge",
			"status", status.String(),
			"iterations", iterations,
			"energized", len(energized),
		)
	}

	return e.last
}

// Last returns the most recent tick's result.
func (e *Engine) Last() Result {
	return e.last
}

// OnPoints returns the energized set of the most recent tick. The map is
// shared with the engine's snapshot; treat it as read-only.
func (e *Engine) OnPoints() map[geom.Point]struct{} {
	return e.last.OnPoints
}

// MaxIterations returns the configured per-tick iteration cap.
func (e *Engine) MaxIterations() int {
	return e.maxIterations
}

// applyStates recomputes every derived cache from the energized set. The
// rewrite is wholesale, never incremental - partial updates are where
// staleness bugs live.
func applyStates(c *circuit.Circuit, energized pointSet) {
	for _, t := range c.Transistors {
		t.Conducting = t.ConductsWith(energized.has(t.Position))
	}
	for _, w := range c.Wires {
		w.On = energized.has(w.Start) || energized.has(w.End)
	}
	for _, n := range c.Nodes {
		if n.Kind == circuit.NodeOutput {
			n.On = energized.has(n.Position)
		}
	}
}

// conductingVector snapshots transistor conduction in declaration order for
// the solve signature.
func conductingVector(c *circuit.Circuit) []bool {
	if len(c.Transistors) == 0 {
		return nil
	}
	v := make([]bool, len(c.Transistors))
	for i, t := range c.Transistors {
		v[i] = t.Conducting
	}
	return v
}

// signature captures one iteration's full solver state. Two equal signatures
// in a row mean a fixed point; a signature equal to the one two iterations
// back means a 2-cycle.
type signature struct {
	energized  pointSet
	conducting []bool
}

func (s *signature) equal(o *signature) bool {
	if o == nil {
		return false
	}
	if len(s.conducting) != len(o.conducting) {
		return false
	}
	for i := range s.conducting {
		if s.conducting[i] != o.conducting[i] {
			return false
		}
	}
	return s.energized.equal(o.energized)
}
