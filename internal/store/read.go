package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/sortplay/internal/algorithm"
	"github.com/roach88/sortplay/internal/engine"
	"github.com/roach88/sortplay/internal/op"
)

// Summary is a recording header without its operations.
type Summary struct {
	ID             string `json:"id"`
	Algorithm      string `json:"algorithm"`
	Size           int    `json:"size"`
	Seed           int64  `json:"seed"`
	OperationCount int    `json:"operation_count"`
	LogHash        string `json:"log_hash"`
	Seq            int64  `json:"seq"`
}

const summaryColumns = `id, algorithm, size, seed, operation_count, log_hash, seq`

type scanner interface {
	Scan(dest ...any) error
}

func scanSummary(row scanner) (Summary, error) {
	var s Summary
	err := row.Scan(&s.ID, &s.Algorithm, &s.Size, &s.Seed, &s.OperationCount, &s.LogHash, &s.Seq)
	return s, err
}

// ListRecordings returns every recording header.
// Results are ordered deterministically: ORDER BY seq ASC, id COLLATE BINARY ASC.
//
// Returns an empty slice (not nil) if the store is empty.
func (s *Store) ListRecordings(ctx context.Context) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+summaryColumns+`
		FROM recordings
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query recordings: %w", err)
	}
	return collectSummaries(rows)
}

// ListRecordingsFor returns the headers of recordings of one algorithm,
// ordered like ListRecordings.
func (s *Store) ListRecordingsFor(ctx context.Context, id algorithm.ID) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+summaryColumns+`
		FROM recordings
		WHERE algorithm = ?
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, id.String())
	if err != nil {
		return nil, fmt.Errorf("query recordings for %s: %w", id, err)
	}
	return collectSummaries(rows)
}

func collectSummaries(rows *sql.Rows) ([]Summary, error) {
	defer rows.Close()

	summaries := []Summary{}
	for rows.Next() {
		sum, err := scanSummary(rows)
		if err != nil {
			return nil, fmt.Errorf("scan recording: %w", err)
		}
		summaries = append(summaries, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recordings: %w", err)
	}
	return summaries, nil
}

// ReadSummary retrieves a single recording header by ID.
// Returns sql.ErrNoRows if not found.
func (s *Store) ReadSummary(ctx context.Context, id string) (Summary, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+summaryColumns+`
		FROM recordings
		WHERE id = ?
	`, id)
	return scanSummary(row)
}

// ReadRecording retrieves a recording and its full operation log.
// Returns sql.ErrNoRows if not found.
func (s *Store) ReadRecording(ctx context.Context, id string) (engine.Recording, error) {
	var (
		rec     engine.Recording
		name    string
		initial string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, algorithm, seed, initial_values, seq
		FROM recordings
		WHERE id = ?
	`, id).Scan(&rec.ID, &name, &rec.Seed, &initial, &rec.Seq)
	if err != nil {
		return engine.Recording{}, err
	}

	alg, err := parseAlgorithm(name)
	if err != nil {
		return engine.Recording{}, fmt.Errorf("read recording %s: %w", id, err)
	}
	rec.Algorithm = alg

	rec.Initial, err = unmarshalValues(initial)
	if err != nil {
		return engine.Recording{}, fmt.Errorf("read recording %s: %w", id, err)
	}

	rec.Operations, err = s.ReadOperations(ctx, id, 0, -1)
	if err != nil {
		return engine.Recording{}, err
	}
	return rec, nil
}

// ReadOperations returns up to limit operations of a recording starting at
// position offset. A negative limit means no limit.
//
// Returns an empty slice (not nil) past the end of the log.
func (s *Store) ReadOperations(ctx context.Context, id string, offset, limit int) ([]op.Operation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT kind, idx, value
		FROM operations
		WHERE recording_id = ? AND seq >= ?
		ORDER BY seq ASC
		LIMIT ?
	`, id, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("query operations for %s: %w", id, err)
	}
	defer rows.Close()

	ops := []op.Operation{}
	for rows.Next() {
		var (
			kind       string
			idx, value sql.NullInt64
		)
		if err := rows.Scan(&kind, &idx, &value); err != nil {
			return nil, fmt.Errorf("scan operation: %w", err)
		}
		o, err := operationFromColumns(kind, idx, value)
		if err != nil {
			return nil, fmt.Errorf("operation %d of %s: %w", offset+len(ops), id, err)
		}
		ops = append(ops, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate operations: %w", err)
	}
	return ops, nil
}

// GetLastSeq returns the highest recording seq, or 0 if the store is empty.
// Used to resume the engine clock after a restart.
func (s *Store) GetLastSeq(ctx context.Context) (int64, error) {
	var seq sql.NullInt64
	if err := s.db.QueryRowContext(ctx, `SELECT MAX(seq) FROM recordings`).Scan(&seq); err != nil {
		return 0, fmt.Errorf("get last seq: %w", err)
	}
	if !seq.Valid {
		return 0, nil
	}
	return seq.Int64, nil
}

func parseAlgorithm(name string) (algorithm.ID, error) {
	if name == algorithm.None.String() {
		return algorithm.None, nil
	}
	id, ok := algorithm.Parse(name)
	if !ok {
		return algorithm.None, fmt.Errorf("unknown algorithm %q", name)
	}
	return id, nil
}
