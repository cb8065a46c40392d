package store

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/sortplay/internal/algorithm"
	"github.com/roach88/sortplay/internal/engine"
	"github.com/roach88/sortplay/internal/op"
)

// createTestStore creates a new store in a temporary directory.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

// verifyPragma reports an error unless PRAGMA name reads back as want.
func (s *Store) verifyPragma(name, want string) error {
	var got string
	if err := s.db.QueryRow("PRAGMA " + name).Scan(&got); err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if got != want {
		return fmt.Errorf("%s = %q, want %q", name, got, want)
	}
	return nil
}

// createTestRecording builds a small hand-written recording: reverse of
// [1, 2, 3] with a leading compare.
func createTestRecording(id string, seq int64) engine.Recording {
	return engine.Recording{
		ID:        id,
		Seq:       seq,
		Algorithm: algorithm.Reverse,
		Seed:      42,
		Initial:   []int{1, 2, 3},
		Operations: []op.Operation{
			op.Read(0), op.Read(1), op.Compare(),
			op.Write(0, 3), op.Write(1, 2), op.Write(2, 1),
		},
	}
}

// recordEngine records id over a shuffled array of size using a real engine.
// The returned recording has the given ID and seq.
func recordEngine(t *testing.T, id algorithm.ID, size int, seed int64, recID string, seq int64) engine.Recording {
	t.Helper()
	e := engine.New(size,
		engine.WithSeed(seed),
		engine.WithClock(engine.NewClockAt(seq-2)),
		engine.WithIDGenerator(engine.NewFixedGenerator("shuffle", recID)),
	)
	e.Shuffle()
	e.Flush()
	e.Select(id)
	return e.Recording()
}
