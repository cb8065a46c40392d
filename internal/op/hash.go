package op

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// DomainRecording separates recording hashes from any other SHA-256 use.
// The version suffix allows the encoding to change later.
const DomainRecording = "sortplay/recording/v1"

// hashWithDomain computes SHA256(domain + 0x00 + data).
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// LogHash computes the content address of a recording.
//
// The same algorithm over the same initial values always records the same
// operations, so two recordings with equal hashes replay identically.
func LogHash(algorithm string, initial []int, ops []Operation) (string, error) {
	obj := map[string]any{
		"algorithm":  algorithm,
		"size":       len(initial),
		"initial":    initial,
		"operations": ops,
	}

	canonical, err := MarshalCanonical(obj)
	if err != nil {
		return "", fmt.Errorf("LogHash: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainRecording, canonical), nil
}

// MustLogHash is like LogHash but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustLogHash(algorithm string, initial []int, ops []Operation) string {
	h, err := LogHash(algorithm, initial, ops)
	if err != nil {
		panic(err)
	}
	return h
}
