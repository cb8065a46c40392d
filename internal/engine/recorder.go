package engine

import (
	"github.com/roach88/sortplay/internal/algorithm"
	"github.com/roach88/sortplay/internal/op"
)

// recorder implements algorithm.Primitives over the work buffer.
//
// Every primitive appends to log in the exact order the accesses happen.
// The visible array is never touched.
type recorder struct {
	name   string
	buffer []int
	log    *op.Log
	quota  *QuotaEnforcer
}

var _ algorithm.Primitives = (*recorder)(nil)

func (r *recorder) emit(o op.Operation) {
	if err := r.quota.Check(r.name); err != nil {
		panic(err)
	}
	r.log.Append(o)
}

func (r *recorder) check(i int) {
	if i < 0 || i >= len(r.buffer) {
		panic(NewIndexError(r.name, i, len(r.buffer)))
	}
}

// Read records Read(i) and returns the buffer value.
func (r *recorder) Read(i int) int {
	r.check(i)
	r.emit(op.Read(i))
	return r.buffer[i]
}

// Write records Write(i, value) and stores it in the buffer.
func (r *recorder) Write(i, value int) {
	r.check(i)
	r.emit(op.Write(i, value))
	r.buffer[i] = value
}

// Swap records Read(i), Read(j), Write(i, b[j]), Write(j, b[i]), Swap.
func (r *recorder) Swap(i, j int) {
	vi := r.Read(i)
	vj := r.Read(j)
	r.Write(i, vj)
	r.Write(j, vi)
	r.emit(op.Swap())
}

// Compare records Read(i), Read(j), Compare.
func (r *recorder) Compare(i, j int) algorithm.Ordering {
	vi := r.Read(i)
	vj := r.Read(j)
	r.emit(op.Compare())
	switch {
	case vi < vj:
		return algorithm.Less
	case vi > vj:
		return algorithm.Greater
	default:
		return algorithm.Equal
	}
}

func (r *recorder) Greater(i, j int) bool { return r.Compare(i, j) == algorithm.Greater }
func (r *recorder) Less(i, j int) bool    { return r.Compare(i, j) == algorithm.Less }
func (r *recorder) Equal(i, j int) bool   { return r.Compare(i, j) == algorithm.Equal }
