package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/roach88/sortplay/internal/algorithm"
	"github.com/roach88/sortplay/internal/engine"
	"github.com/roach88/sortplay/internal/store"
	"github.com/roach88/sortplay/internal/testutil"
)

// execute runs cmd with args and returns what it wrote to stdout.
func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

// decodeData decodes the data field of a JSON CLIResponse into v.
func decodeData(t *testing.T, out string, v any) CLIResponse {
	t.Helper()
	var raw struct {
		CLIResponse
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &raw), "output: %s", out)
	if v != nil {
		require.NoError(t, json.Unmarshal(raw.Data, v))
	}
	return raw.CLIResponse
}

// seedDatabase stores one sort recording per algorithm, each over a freshly
// shuffled array of size 8. IDs come out as rec-2, rec-4, ...
func seedDatabase(t *testing.T, algs ...algorithm.ID) (string, []engine.Recording) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()

	eng := engine.New(8,
		engine.WithSeed(3),
		engine.WithIDGenerator(testutil.NewSequentialIDs("rec")),
		engine.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)

	var recs []engine.Recording
	for _, id := range algs {
		eng.Shuffle()
		eng.Flush()
		eng.Select(id)
		eng.Flush()

		rec := eng.Recording()
		_, err := st.WriteRecording(context.Background(), rec)
		require.NoError(t, err)
		recs = append(recs, rec)
	}
	return dbPath, recs
}
