package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/sortplay/internal/algorithm"
	"github.com/roach88/sortplay/internal/op"
)

func TestReadRecording_NotFound(t *testing.T) {
	s := createTestStore(t)

	_, err := s.ReadRecording(context.Background(), "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)

	_, err = s.ReadSummary(context.Background(), "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestListRecordings_Empty(t *testing.T) {
	s := createTestStore(t)

	list, err := s.ListRecordings(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestListRecordings_OrderedBySeq(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	for _, r := range []struct {
		id  string
		seq int64
	}{{"c", 3}, {"a", 1}, {"b", 2}} {
		_, err := s.WriteRecording(ctx, createTestRecording(r.id, r.seq))
		require.NoError(t, err)
	}

	list, err := s.ListRecordings(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "a", list[0].ID)
	assert.Equal(t, "b", list[1].ID)
	assert.Equal(t, "c", list[2].ID)
}

func TestListRecordingsFor(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	_, err := s.WriteRecording(ctx, createTestRecording("rev", 1))
	require.NoError(t, err)
	_, err = s.WriteRecording(ctx, recordEngine(t, algorithm.Gnome, 8, 3, "gnome", 5))
	require.NoError(t, err)

	list, err := s.ListRecordingsFor(ctx, algorithm.Gnome)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "gnome", list[0].ID)
	assert.Equal(t, "gnome", list[0].Algorithm)

	list, err = s.ListRecordingsFor(ctx, algorithm.Cycle)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestReadOperations_Window(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	_, err := s.WriteRecording(ctx, createTestRecording("rec-1", 1))
	require.NoError(t, err)

	ops, err := s.ReadOperations(ctx, "rec-1", 2, 2)
	require.NoError(t, err)
	assert.Equal(t, []op.Operation{op.Compare(), op.Write(0, 3)}, ops)

	ops, err = s.ReadOperations(ctx, "rec-1", 10, -1)
	require.NoError(t, err)
	assert.Equal(t, []op.Operation{}, ops)
}

func TestGetLastSeq(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	seq, err := s.GetLastSeq(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), seq)

	_, err = s.WriteRecording(ctx, createTestRecording("a", 4))
	require.NoError(t, err)
	_, err = s.WriteRecording(ctx, createTestRecording("b", 9))
	require.NoError(t, err)

	seq, err = s.GetLastSeq(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(9), seq)
}

func TestReadRecording_UnknownAlgorithm(t *testing.T) {
	s := createTestStore(t)
	_, err := s.db.Exec(`
		INSERT INTO recordings (id, algorithm, size, seed, initial_values, operation_count, log_hash, seq)
		VALUES ('r', 'bogo', 0, 0, '[]', 0, 'h', 1)
	`)
	require.NoError(t, err)

	_, err = s.ReadRecording(context.Background(), "r")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bogo")
}
