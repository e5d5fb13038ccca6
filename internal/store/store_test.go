package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tburgert/circuitry/internal/circuit"
	"github.com/tburgert/circuitry/internal/engine"
	"github.com/tburgert/circuitry/internal/geom"
	"github.com/tburgert/circuitry/internal/testutil"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "circuits.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenAppliesPragmas(t *testing.T) {
	s := newTestStore(t)

	assert.NoError(t, s.verifyPragma("journal_mode", "wal"))
	assert.NoError(t, s.verifyPragma("foreign_keys", "1"))
	assert.NoError(t, s.verifyPragma("busy_timeout", "5000"))
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "circuits.db")

	s1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()

	var version int
	require.NoError(t, s2.db.QueryRow("PRAGMA user_version").Scan(&version))
	assert.Equal(t, currentSchemaVersion, version)
}

func TestSaveLoadCircuit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	lamp := testutil.NewGatedLamp(circuit.NType)
	lamp.Supply.On = true

	id, err := s.SaveCircuit(ctx, "lamp", lamp.Circuit)
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	got, err := s.LoadCircuit(ctx, "lamp")
	require.NoError(t, err)
	assert.Len(t, got.Transistors, 1)

	in := got.NodeAt(geom.Pt(0, 0))
	require.NotNil(t, in)
	assert.True(t, in.On, "input state persists")
}

func TestSaveOverwritesByName(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := circuit.New()
	first.AddNode(geom.Pt(0, 0), circuit.NodeInput)
	id1, err := s.SaveCircuit(ctx, "scratch", first)
	require.NoError(t, err)

	second := circuit.New()
	second.AddNode(geom.Pt(0, 0), circuit.NodeInput)
	second.AddNode(geom.Pt(100, 0), circuit.NodeOutput)
	id2, err := s.SaveCircuit(ctx, "scratch", second)
	require.NoError(t, err)

	assert.Equal(t, id1, id2, "overwriting keeps the original ID")

	got, err := s.LoadCircuit(ctx, "scratch")
	require.NoError(t, err)
	assert.Len(t, got.Nodes, 2)

	infos, err := s.ListCircuits(ctx)
	require.NoError(t, err)
	assert.Len(t, infos, 1)
}

func TestNameNormalization(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// "é" precomposed vs "e" + combining acute: one circuit, not two.
	_, err := s.SaveCircuit(ctx, "café", circuit.New())
	require.NoError(t, err)
	_, err = s.SaveCircuit(ctx, "café", circuit.New())
	require.NoError(t, err)

	infos, err := s.ListCircuits(ctx)
	require.NoError(t, err)
	assert.Len(t, infos, 1)

	_, err = s.LoadCircuit(ctx, "café")
	assert.NoError(t, err)
}

func TestSaveRejectsEmptyName(t *testing.T) {
	s := newTestStore(t)
	_, err := s.SaveCircuit(context.Background(), "   ", circuit.New())
	assert.Error(t, err)
}

func TestLoadMissing(t *testing.T) {
	s := newTestStore(t)
	_, err := s.LoadCircuit(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteCircuit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.SaveCircuit(ctx, "doomed", circuit.New())
	require.NoError(t, err)

	require.NoError(t, s.DeleteCircuit(ctx, "doomed"))
	assert.ErrorIs(t, s.DeleteCircuit(ctx, "doomed"), ErrNotFound)

	_, err = s.LoadCircuit(ctx, "doomed")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTraceRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.SaveCircuit(ctx, "traced", circuit.New())
	require.NoError(t, err)

	results := []engine.Result{
		{Status: engine.Converged, Iterations: 2, OnPoints: map[geom.Point]struct{}{geom.Pt(0, 0): {}}},
		{Status: engine.Oscillating, Iterations: 3},
		{Status: engine.IterationLimitExceeded, Iterations: 10001},
	}
	for i, res := range results {
		require.NoError(t, s.RecordTick(ctx, id, i+1, res))
	}

	trace, err := s.Trace(ctx, id)
	require.NoError(t, err)
	require.Len(t, trace, 3)

	assert.Equal(t, 1, trace[0].Tick)
	assert.Equal(t, engine.Converged, trace[0].Status)
	assert.Equal(t, 1, trace[0].Energized)
	assert.Equal(t, engine.Oscillating, trace[1].Status)
	assert.Equal(t, engine.IterationLimitExceeded, trace[2].Status)
	assert.Equal(t, 10001, trace[2].Iterations)
}

func TestDeleteCascadesTrace(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.SaveCircuit(ctx, "traced", circuit.New())
	require.NoError(t, err)
	require.NoError(t, s.RecordTick(ctx, id, 1, engine.Result{Status: engine.Converged, Iterations: 1}))

	require.NoError(t, s.DeleteCircuit(ctx, "traced"))

	var count int
	require.NoError(t, s.db.QueryRow("SELECT COUNT(*) FROM ticks").Scan(&count))
	assert.Zero(t, count, "trace rows cascade with their circuit")
}
