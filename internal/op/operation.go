package op

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Kind identifies the variant of an Operation.
type Kind uint8

const (
	// KindRead records an inspection of one cell.
	KindRead Kind = iota + 1
	// KindWrite records a store of a value into one cell.
	KindWrite
	// KindCompare marks a three-way comparison of the two preceding reads.
	KindCompare
	// KindSwap marks an exchange carried out by the two preceding writes.
	KindSwap
)

// String returns the variant name used on the wire and in the store.
func (k Kind) String() string {
	switch k {
	case KindRead:
		return "Read"
	case KindWrite:
		return "Write"
	case KindCompare:
		return "Compare"
	case KindSwap:
		return "Swap"
	default:
		return "unknown"
	}
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "Read":
		return KindRead, nil
	case "Write":
		return KindWrite, nil
	case "Compare":
		return KindCompare, nil
	case "Swap":
		return KindSwap, nil
	default:
		return 0, fmt.Errorf("unknown operation kind %q", s)
	}
}

// Operation is one recorded access.
//
// Index is meaningful for Read and Write; Value only for Write. Both are zero
// for the markers.
type Operation struct {
	Kind  Kind
	Index int
	Value int
}

// Read returns a Read operation for index.
func Read(index int) Operation {
	return Operation{Kind: KindRead, Index: index}
}

// Write returns a Write operation storing value at index.
func Write(index, value int) Operation {
	return Operation{Kind: KindWrite, Index: index, Value: value}
}

// Compare returns the Compare marker.
func Compare() Operation {
	return Operation{Kind: KindCompare}
}

// Swap returns the Swap marker.
func Swap() Operation {
	return Operation{Kind: KindSwap}
}

// String renders the operation as "Read(3)", "Write(3, 5)", "Compare" or "Swap".
func (o Operation) String() string {
	switch o.Kind {
	case KindRead:
		return fmt.Sprintf("Read(%d)", o.Index)
	case KindWrite:
		return fmt.Sprintf("Write(%d, %d)", o.Index, o.Value)
	default:
		return o.Kind.String()
	}
}

// wire returns the externally tagged transport form:
//
//	{"Read": 3}  {"Write": [3, 5]}  "Compare"  "Swap"
func (o Operation) wire() (any, error) {
	switch o.Kind {
	case KindRead:
		return map[string]any{"Read": o.Index}, nil
	case KindWrite:
		return map[string]any{"Write": []any{o.Index, o.Value}}, nil
	case KindCompare, KindSwap:
		return o.Kind.String(), nil
	default:
		return nil, fmt.Errorf("unknown operation kind %d", o.Kind)
	}
}

// MarshalJSON encodes the operation in its transport form.
func (o Operation) MarshalJSON() ([]byte, error) {
	w, err := o.wire()
	if err != nil {
		return nil, err
	}
	return MarshalCanonical(w)
}

// UnmarshalJSON decodes the transport form produced by MarshalJSON.
func (o *Operation) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return fmt.Errorf("decode operation: %w", err)
		}
		k, err := ParseKind(name)
		if err != nil {
			return err
		}
		if k != KindCompare && k != KindSwap {
			return fmt.Errorf("decode operation: %s requires a payload", k)
		}
		*o = Operation{Kind: k}
		return nil
	}

	var tagged map[string]json.RawMessage
	if err := json.Unmarshal(data, &tagged); err != nil {
		return fmt.Errorf("decode operation: %w", err)
	}
	if len(tagged) != 1 {
		return fmt.Errorf("decode operation: expected exactly one variant, got %d", len(tagged))
	}

	if raw, ok := tagged["Read"]; ok {
		var index int
		if err := json.Unmarshal(raw, &index); err != nil {
			return fmt.Errorf("decode Read: %w", err)
		}
		*o = Read(index)
		return nil
	}
	if raw, ok := tagged["Write"]; ok {
		var pair []int
		if err := json.Unmarshal(raw, &pair); err != nil {
			return fmt.Errorf("decode Write: %w", err)
		}
		if len(pair) != 2 {
			return fmt.Errorf("decode Write: expected [index, value], got %d elements", len(pair))
		}
		*o = Write(pair[0], pair[1])
		return nil
	}
	for k := range tagged {
		return fmt.Errorf("decode operation: unknown variant %q", k)
	}
	return nil
}
