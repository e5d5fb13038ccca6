package store

import (
	"context"
	"fmt"
	"time"

	"github.com/tburgert/circuitry/internal/engine"
)

// TickRecord is one row of a circuit's recorded tick trace.
type TickRecord struct {
	Tick       int
	Status     engine.Status
	Iterations int
	Energized  int
	RecordedAt time.Time
}

// RecordTick appends one tick result to the trace of the circuit with the
// given ID.
func (s *Store) RecordTick(ctx context.Context, circuitID string, tick int, res engine.Result) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO ticks (circuit_id, tick, status, iterations, energized)
		VALUES (?, ?, ?, ?, ?)
	`, circuitID, tick, res.Status.String(), res.Iterations, len(res.OnPoints))
	if err != nil {
		return fmt.Errorf("recording tick %d: %w", tick, err)
	}
	return nil
}

// Trace returns a circuit's recorded ticks in tick order.
func (s *Store) Trace(ctx context.Context, circuitID string) ([]TickRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT tick, status, iterations, energized, recorded_at
		FROM ticks
		WHERE circuit_id = ?
		ORDER BY tick, id
	`, circuitID)
	if err != nil {
		return nil, fmt.Errorf("reading trace: %w", err)
	}
	defer rows.Close()

	var records []TickRecord
	for rows.Next() {
		var rec TickRecord
		var status, recorded string
		if err := rows.Scan(&rec.Tick, &status, &rec.Iterations, &rec.Energized, &recorded); err != nil {
			return nil, fmt.Errorf("scanning trace row: %w", err)
		}
		rec.Status = parseStatus(status)
		rec.RecordedAt, _ = time.Parse(time.RFC3339Nano, recorded)
		records = append(records, rec)
	}
	return records, rows.Err()
}

func parseStatus(s string) engine.Status {
	switch s {
	case engine.Oscillating.String():
		return engine.Oscillating
	case engine.IterationLimitExceeded.String():
		return engine.IterationLimitExceeded
	default:
		return engine.Converged
	}
}
