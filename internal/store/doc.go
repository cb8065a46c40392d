// Package store provides SQLite-backed durable storage for recordings.
//
// A recording is stored as one header row plus one row per operation:
//   - recordings: algorithm, size, seed, initial values (canonical JSON),
//     operation count, log hash and seq
//   - operations: (recording_id, seq) -> kind, idx, value
//
// # Ordering
//
//   - Recordings are ordered by seq (logical clock), never by timestamps
//   - All list queries include: ORDER BY seq ASC, id COLLATE BINARY ASC
//   - Operations are ordered by their position in the log
//
// # Idempotency
//
// WriteRecording uses ON CONFLICT(id) DO NOTHING. Writing the same recording
// twice leaves exactly one copy. The header and its operations are written in
// one transaction, so a reader never sees a header without its log.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait up to 5s for locks
//   - foreign_keys=ON: Operations cascade with their recording
package store
