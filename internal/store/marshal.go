package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/roach88/sortplay/internal/op"
)

// marshalValues serializes initial values to canonical JSON.
// A nil slice is stored as [] so the column is never NULL.
func marshalValues(values []int) (string, error) {
	if values == nil {
		values = []int{}
	}
	data, err := op.MarshalCanonical(values)
	if err != nil {
		return "", fmt.Errorf("marshal values: %w", err)
	}
	return string(data), nil
}

// unmarshalValues deserializes initial values.
func unmarshalValues(data string) ([]int, error) {
	var values []int
	if err := json.Unmarshal([]byte(data), &values); err != nil {
		return nil, fmt.Errorf("unmarshal values: %w", err)
	}
	if values == nil {
		values = []int{}
	}
	return values, nil
}

// operationColumns splits an operation into its kind, idx and value columns.
// Compare and Swap carry no index; only Write carries a value.
func operationColumns(o op.Operation) (kind string, idx, value sql.NullInt64, err error) {
	switch o.Kind {
	case op.KindRead:
		idx = sql.NullInt64{Int64: int64(o.Index), Valid: true}
	case op.KindWrite:
		idx = sql.NullInt64{Int64: int64(o.Index), Valid: true}
		value = sql.NullInt64{Int64: int64(o.Value), Valid: true}
	case op.KindCompare, op.KindSwap:
	default:
		return "", idx, value, fmt.Errorf("unknown operation kind %d", o.Kind)
	}
	return o.Kind.String(), idx, value, nil
}

// operationFromColumns is the inverse of operationColumns.
func operationFromColumns(kind string, idx, value sql.NullInt64) (op.Operation, error) {
	k, err := op.ParseKind(kind)
	if err != nil {
		return op.Operation{}, err
	}

	switch k {
	case op.KindRead:
		if !idx.Valid {
			return op.Operation{}, fmt.Errorf("Read without idx")
		}
		return op.Read(int(idx.Int64)), nil
	case op.KindWrite:
		if !idx.Valid || !value.Valid {
			return op.Operation{}, fmt.Errorf("Write without idx or value")
		}
		return op.Write(int(idx.Int64), int(value.Int64)), nil
	case op.KindCompare:
		return op.Compare(), nil
	default:
		return op.Swap(), nil
	}
}
