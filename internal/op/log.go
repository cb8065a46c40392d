package op

import "fmt"

// Counts tallies operations by kind.
type Counts struct {
	Reads    int `json:"reads"`
	Writes   int `json:"writes"`
	Compares int `json:"compares"`
	Swaps    int `json:"swaps"`
}

// Total returns the sum of all four counters.
func (c Counts) Total() int {
	return c.Reads + c.Writes + c.Compares + c.Swaps
}

// Add increments the counter for k.
func (c *Counts) Add(k Kind) {
	switch k {
	case KindRead:
		c.Reads++
	case KindWrite:
		c.Writes++
	case KindCompare:
		c.Compares++
	case KindSwap:
		c.Swaps++
	}
}

// Log is the ordered operation sequence of one recording pass.
//
// INVARIANTS:
//   - Append is only legal before Freeze
//   - entries never change once appended
//
// The zero value is an empty, unfrozen log.
type Log struct {
	ops    []Operation
	frozen bool
}

// NewLog returns an empty log with room for capacity operations.
func NewLog(capacity int) *Log {
	return &Log{ops: make([]Operation, 0, capacity)}
}

// FromOperations builds a frozen log from already-recorded operations.
// The slice is copied.
func FromOperations(ops []Operation) *Log {
	l := &Log{ops: make([]Operation, len(ops)), frozen: true}
	copy(l.ops, ops)
	return l
}

// Append adds o to the end of the log. Panics if the log is frozen.
func (l *Log) Append(o Operation) {
	if l.frozen {
		panic("op: append to frozen log")
	}
	l.ops = append(l.ops, o)
}

// Freeze makes the log read-only.
func (l *Log) Freeze() {
	l.frozen = true
}

// Frozen reports whether Freeze has been called.
func (l *Log) Frozen() bool {
	return l.frozen
}

// Reset empties the log and makes it appendable again, keeping capacity.
func (l *Log) Reset() {
	clear(l.ops)
	l.ops = l.ops[:0]
	l.frozen = false
}

// Len returns the number of recorded operations.
func (l *Log) Len() int {
	return len(l.ops)
}

// At returns the operation at position i.
func (l *Log) At(i int) Operation {
	return l.ops[i]
}

// Operations returns a copy of the recorded operations.
func (l *Log) Operations() []Operation {
	out := make([]Operation, len(l.ops))
	copy(out, l.ops)
	return out
}

// Counts tallies the log by kind.
func (l *Log) Counts() Counts {
	var c Counts
	for _, o := range l.ops {
		c.Add(o.Kind)
	}
	return c
}

// PairingError reports a marker that is not preceded by its required group.
type PairingError struct {
	Position int
	Kind     Kind
	Reason   string
}

// Error implements the error interface.
func (e *PairingError) Error() string {
	return fmt.Sprintf("%s at position %d: %s", e.Kind, e.Position, e.Reason)
}

// CheckPairing verifies the Compare and Swap grouping invariant.
//
// Compare must follow Read, Read. Swap must follow Read(i), Read(j),
// Write(i, _), Write(j, _).
func (l *Log) CheckPairing() error {
	return CheckPairing(l.ops)
}

// CheckPairing verifies the grouping invariant over a raw operation slice.
func CheckPairing(ops []Operation) error {
	for pos, o := range ops {
		switch o.Kind {
		case KindCompare:
			if pos < 2 {
				return &PairingError{Position: pos, Kind: o.Kind, Reason: "fewer than two preceding operations"}
			}
			if ops[pos-2].Kind != KindRead || ops[pos-1].Kind != KindRead {
				return &PairingError{Position: pos, Kind: o.Kind, Reason: fmt.Sprintf("preceded by %s, %s", ops[pos-2], ops[pos-1])}
			}

		case KindSwap:
			if pos < 4 {
				return &PairingError{Position: pos, Kind: o.Kind, Reason: "fewer than four preceding operations"}
			}
			ri, rj, wi, wj := ops[pos-4], ops[pos-3], ops[pos-2], ops[pos-1]
			if ri.Kind != KindRead || rj.Kind != KindRead || wi.Kind != KindWrite || wj.Kind != KindWrite {
				return &PairingError{Position: pos, Kind: o.Kind, Reason: fmt.Sprintf("preceded by %s, %s, %s, %s", ri, rj, wi, wj)}
			}
			if wi.Index != ri.Index || wj.Index != rj.Index {
				return &PairingError{Position: pos, Kind: o.Kind, Reason: fmt.Sprintf("writes %s, %s do not target reads %s, %s", wi, wj, ri, rj)}
			}
		}
	}
	return nil
}
