// Package op defines the recorded operation model.
//
// An Operation is one atomic access an algorithm performed against its work
// buffer: a Read of an index, a Write of a value to an index, or one of the
// two payload-free markers Compare and Swap. A Log is the ordered sequence
// produced by one recording pass. It is append-only while recording and
// frozen afterwards.
//
// GROUPING:
//
// Markers never appear alone. Every Compare is immediately preceded by the
// two Reads of the compared cells. Every Swap is immediately preceded by
// Read(i), Read(j), Write(i, old j), Write(j, old i). Counters and any
// "last operation" indicator downstream depend on this grouping, and
// Log.CheckPairing verifies it.
//
// IDENTITY:
//
// MarshalCanonical produces deterministic JSON (sorted keys, NFC strings, no
// floats) and LogHash hashes a recording with domain separation, so the same
// algorithm run over the same initial values always yields the same hash.
package op
