package engine

import "github.com/tburgert/circuitry/internal/geom"

// Status classifies how a tick's fixed-point solve ended.
//
// Neither Oscillating nor IterationLimitExceeded is an error: both leave the
// circuit at the last-computed, well-defined state. Callers should surface
// them (log line, warning indicator) and keep ticking.
type Status int

const (
	// Converged means the solve reached a stable fixed point - the common
	// combinational-logic case.
	Converged Status = iota

	// Oscillating means the solve alternated between exactly two signatures.
	// Only period-2 cycles are detected; longer feedback cycles exhaust the
	// iteration cap instead.
	Oscillating

	// IterationLimitExceeded means no fixed point or 2-cycle was found
	// within the iteration cap.
	IterationLimitExceeded
)

// String returns the status name used in logs and CLI output.
func (s Status) String() string {
	switch s {
	case Converged:
		return "converged"
	case Oscillating:
		return "oscillating"
	case IterationLimitExceeded:
		return "iteration-limit-exceeded"
	default:
		return "unknown"
	}
}

// Result is the outcome of one tick.
type Result struct {
	Status Status

	// Iterations is the number of solve passes the tick performed.
	Iterations int

	// OnPoints is the energized set the tick ended on. It is shared with the
	// engine's internal snapshot; treat it as read-only.
	OnPoints map[geom.Point]struct{}
}
