// Package harness runs simulation scenarios against real circuits.
//
// A scenario names a circuit file and a sequence of steps; each step toggles
// input nodes, runs ticks through the actual engine, and checks the resulting
// status and output states. Every tick is also recorded to a fresh in-memory
// trace store, so a harness run exercises the same persistence path the CLI
// uses.
//
// The per-tick trace a run produces is deterministic, which makes it suitable
// for golden file comparison; see RunWithGolden.
package harness

import (
	"context"
	"fmt"
	"sort"

	"github.com/tburgert/circuitry/internal/circfile"
	"github.com/tburgert/circuitry/internal/circuit"
	"github.com/tburgert/circuitry/internal/engine"
	"github.com/tburgert/circuitry/internal/store"
)

// TickTrace is one tick's observable outcome.
type TickTrace struct {
	Tick       int           `json:"tick"`
	Status     string        `json:"status"`
	Iterations int           `json:"iterations"`
	Outputs    []OutputState `json:"outputs,omitempty"`
}

// OutputState is one output node's state after a tick.
type OutputState struct {
	X  int  `json:"x"`
	Y  int  `json:"y"`
	On bool `json:"on"`
}

// Result is the outcome of running a scenario.
type Result struct {
	// Passed reports whether every expectation held.
	Passed bool

	// Errors lists expectation failures, one message each. Operational
	// failures (unreadable circuit, toggling a missing input) are returned
	// as errors from Run instead.
	Errors []string

	// Trace holds one entry per tick, in order.
	Trace []TickTrace
}

// Run executes a scenario and returns its result.
//
// Each run loads the circuit fresh, drives it through a new engine and records
// every tick into a fresh in-memory store, so scenarios are fully isolated
// from each other.
func Run(scenario *Scenario) (*Result, error) {
	c, err := circfile.Load(scenario.Circuit)
	if err != nil {
		return nil, fmt.Errorf("loading scenario circuit: %w", err)
	}

	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	ctx := context.Background()
	circuitID, err := st.SaveCircuit(ctx, scenario.Name, c)
	if err != nil {
		return nil, fmt.Errorf("saving scenario circuit: %w", err)
	}

	eng := engine.New()
	result := &Result{Passed: true}
	tick := 0

	for i, step := range scenario.Steps {
		for _, p := range step.Toggle {
			if !c.ToggleInputAt(p) {
				return nil, fmt.Errorf("steps[%d]: no input node at (%d, %d)", i, p.X, p.Y)
			}
		}

		ticks := step.Ticks
		if ticks == 0 {
			ticks = 1
		}

		var res engine.Result
		for n := 0; n < ticks; n++ {
			tick++
			res = eng.Tick(c)
			result.Trace = append(result.Trace, TickTrace{
				Tick:       tick,
				Status:     res.Status.String(),
				Iterations: res.Iterations,
				Outputs:    outputStates(c),
			})
			if err := st.RecordTick(ctx, circuitID, tick, res); err != nil {
				return nil, fmt.Errorf("recording tick %d: %w", tick, err)
			}
		}

		if step.Expect != nil {
			checkExpect(result, i, step.Expect, res, c)
		}
	}

	result.Passed = len(result.Errors) == 0
	return result, nil
}

// checkExpect validates one step's expectations against the state after its
// last tick, appending a message per failure.
func checkExpect(result *Result, step int, expect *Expect, res engine.Result, c *circuit.Circuit) {
	if expect.Status != "" && expect.Status != res.Status.String() {
		result.Errors = append(result.Errors,
			fmt.Sprintf("steps[%d]: expected status %q, got %q", step, expect.Status, res.Status))
	}
	for _, want := range expect.Outputs {
		n := c.NodeAt(want.At)
		if n == nil || n.Kind != circuit.NodeOutput {
			result.Errors = append(result.Errors,
				fmt.Sprintf("steps[%d]: no output node at (%d, %d)", step, want.At.X, want.At.Y))
			continue
		}
		if n.On != want.On {
			result.Errors = append(result.Errors,
				fmt.Sprintf("steps[%d]: output (%d, %d) is %v, expected %v",
					step, want.At.X, want.At.Y, n.On, want.On))
		}
	}
}

// outputStates snapshots every output node, ordered by position for
// deterministic traces.
func outputStates(c *circuit.Circuit) []OutputState {
	var outs []OutputState
	for _, n := range c.Nodes {
		if n.Kind == circuit.NodeOutput {
			outs = append(outs, OutputState{X: n.Position.X, Y: n.Position.Y, On: n.On})
		}
	}
	sort.Slice(outs, func(i, j int) bool {
		if outs[i].X != outs[j].X {
			return outs[i].X < outs[j].X
		}
		return outs[i].Y < outs[j].Y
	})
	return outs
}
