// Package engine resolves a circuit's boolean signal state.
//
// The engine turns a static set of wires and switch-like transistors into a
// converged assignment of on/off states, once per simulation tick.
//
// ARCHITECTURE:
//
// Tick pipeline:
//  1. Advance every clock by one tick (exactly once, regardless of how many
//     solver iterations follow).
//  2. Build the connectivity graph: wires are unconditional edges, conducting
//     transistors are conditional source-drain edges. Conduction is evaluated
//     against the energized set of the PREVIOUS iteration - the empty set on
//     the first iteration of a tick (cold start).
//  3. Propagate from active sources (on input nodes and on clocks) by plain
//     reachability.
//  4. Recompute the derived caches (wire on, output node on, transistor
//     conducting) wholesale from the fresh energized set.
//  5. Repeat until the (energized set, conducting vector) signature repeats.
//
// Because transistor conduction depends on the energized set and the energized
// set depends on which transistors conduct, the solve is a mutual fixed point.
// A signature equal to the previous iteration means convergence; equal to the
// one before that means a period-2 oscillation. Longer cycles are not detected
// and run into the iteration cap instead. Neither outcome is an error: the
// tick always returns a well-defined state plus a Status.
//
// Determinism: propagation is pure reachability, so the result depends only on
// the graph and the source set, never on traversal order. The whole tick is
// synchronous and touches only the circuit passed in; independent circuits may
// be ticked from independent goroutines.
package engine
