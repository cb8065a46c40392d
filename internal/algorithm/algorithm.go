// Package algorithm holds the catalogue of instrumented sorts and transforms.
//
// Every procedure is expressed only in terms of Primitives. Algorithms never
// see the values directly, so the operation log a recorder builds from
// these calls is a complete trace of what the algorithm did.
//
// Procedures must leave the buffer sorted ascending (transforms excepted),
// touch only indices in [0, size), and treat size 0 and 1 as no-ops.
package algorithm

import "strings"

// Ordering is the result of a three-way comparison.
type Ordering int

const (
	Less    Ordering = -1
	Equal   Ordering = 0
	Greater Ordering = 1
)

// Primitives is the instrumented access surface handed to algorithms.
//
// Read, Write, Swap and Compare each append their operations to the log
// being recorded. Greater, Less and Equal are boolean views of Compare and
// record exactly what Compare records.
type Primitives interface {
	Read(i int) int
	Write(i, value int)
	Swap(i, j int)
	Compare(i, j int) Ordering
	Greater(i, j int) bool
	Less(i, j int) bool
	Equal(i, j int) bool
}

// Source supplies randomness to transforms. *math/rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

// Func is one catalogue entry.
type Func func(p Primitives, size int, rng Source)

// ID identifies a catalogue entry.
type ID int

const (
	// None is the initial selection; it records nothing.
	None ID = iota
	Bubble
	Cocktail
	Selection
	Insertion
	Gnome
	Cycle
	Heap
	Shell
	OddEven
	QuickSort
	Shuffle
	Reverse
)

type entry struct {
	name      string
	run       Func
	transform bool
}

// catalogue is indexed by ID; order here is the order All reports.
var catalogue = [...]entry{
	None:      {name: "none", run: func(Primitives, int, Source) {}},
	Bubble:    {name: "bubble", run: bubble},
	Cocktail:  {name: "cocktail", run: cocktail},
	Selection: {name: "selection", run: selection},
	Insertion: {name: "insertion", run: insertion},
	Gnome:     {name: "gnome", run: gnome},
	Cycle:     {name: "cycle", run: cycle},
	Heap:      {name: "heap", run: heap},
	Shell:     {name: "shell", run: shell},
	OddEven:   {name: "oddEven", run: oddEven},
	QuickSort: {name: "quickSort", run: quickSort},
	Shuffle:   {name: "shuffle", run: shuffle, transform: true},
	Reverse:   {name: "reverse", run: reverse, transform: true},
}

// String returns the selection name ("bubble", "oddEven", ...).
func (id ID) String() string {
	if !id.Valid() {
		return "unknown"
	}
	return catalogue[id].name
}

// Valid reports whether id names a catalogue entry.
func (id ID) Valid() bool {
	return id >= None && int(id) < len(catalogue)
}

// IsTransform reports whether id rearranges rather than sorts.
func (id ID) IsTransform() bool {
	return id.Valid() && catalogue[id].transform
}

// All returns every selectable entry: the sorts followed by the transforms.
func All() []ID {
	ids := make([]ID, 0, len(catalogue)-1)
	for id := Bubble; int(id) < len(catalogue); id++ {
		ids = append(ids, id)
	}
	return ids
}

// Sorts returns the sorting entries only.
func Sorts() []ID {
	var ids []ID
	for _, id := range All() {
		if !id.IsTransform() {
			ids = append(ids, id)
		}
	}
	return ids
}

// Parse resolves a selection name. Matching ignores case and the
// separators '-' and '_', so "oddEven", "odd-even" and "ODD_EVEN" agree.
func Parse(name string) (ID, bool) {
	want := normalize(name)
	for _, id := range All() {
		if normalize(catalogue[id].name) == want {
			return id, true
		}
	}
	return None, false
}

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("-", "", "_", "").Replace(s)
}

// Run executes the entry for id against p. Panics on an invalid id.
func Run(id ID, p Primitives, size int, rng Source) {
	if !id.Valid() {
		panic("algorithm: invalid id")
	}
	catalogue[id].run(p, size, rng)
}
