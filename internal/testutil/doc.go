// Package testutil provides deterministic helpers shared by tests and the
// scenario harness: sequential recording IDs, scripted randomness and
// permutation builders.
package testutil
