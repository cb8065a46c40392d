package store

import (
	"context"
	"fmt"

	"github.com/roach88/sortplay/internal/engine"
)

// WriteRecording inserts a recording and its operations in one transaction.
// Uses ON CONFLICT(id) DO NOTHING for idempotency - a recording whose ID is
// already stored is silently ignored and its operations are not rewritten.
//
// Returns inserted=false when the ID already existed.
func (s *Store) WriteRecording(ctx context.Context, rec engine.Recording) (inserted bool, err error) {
	hash, err := rec.Hash()
	if err != nil {
		return false, fmt.Errorf("write recording: %w", err)
	}

	initial, err := marshalValues(rec.Initial)
	if err != nil {
		return false, fmt.Errorf("write recording: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("write recording: begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO recordings
		(id, algorithm, size, seed, initial_values, operation_count, log_hash, seq)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		rec.ID,
		rec.Algorithm.String(),
		rec.Size(),
		rec.Seed,
		initial,
		len(rec.Operations),
		hash,
		rec.Seq,
	)
	if err != nil {
		return false, fmt.Errorf("write recording %s: %w", rec.ID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("write recording %s: rows affected: %w", rec.ID, err)
	}
	if n == 0 {
		return false, nil
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO operations (recording_id, seq, kind, idx, value)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return false, fmt.Errorf("write recording %s: prepare: %w", rec.ID, err)
	}
	defer stmt.Close()

	for i, o := range rec.Operations {
		kind, idx, value, err := operationColumns(o)
		if err != nil {
			return false, fmt.Errorf("write recording %s: operation %d: %w", rec.ID, i, err)
		}
		if _, err := stmt.ExecContext(ctx, rec.ID, i, kind, idx, value); err != nil {
			return false, fmt.Errorf("write recording %s: operation %d: %w", rec.ID, i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("write recording %s: commit: %w", rec.ID, err)
	}
	return true, nil
}

// DeleteRecording removes a recording and, by cascade, its operations.
// Deleting a missing ID is not an error.
func (s *Store) DeleteRecording(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM recordings WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete recording %s: %w", id, err)
	}
	return nil
}
