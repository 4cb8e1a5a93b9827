// Package constants implements the deduplicated, immutable literal table
// indexed by a stable integer (spec §3 "Constants pool").
package constants

import (
	"github.com/abacilang/abaci/internal/types"
	"github.com/abacilang/abaci/internal/values"
)

// entry pairs a stored Value with its Type, exactly as spec §3 describes.
type entry struct {
	value values.Value
	typ   types.Type
}

// Pool is an ordered, append-only sequence of (Value, Type) pairs. Add
// scans linearly for an equal prior entry (by kind and, for heap objects, by
// deep content) and returns the existing index instead of growing the pool,
// dropping the just-allocated heap duplicate (spec §3, §8 "adding an equal
// literal does not grow the pool").
type Pool struct {
	entries []entry
}

// New returns an empty Pool.
func New() *Pool { return &Pool{} }

// Add inserts (v, t) if no equal entry exists yet, returning the stable
// index either way.
func (p *Pool) Add(v values.Value, t types.Type) int {
	for i, e := range p.entries {
		if types.Equal(e.typ, t) && valueEqual(e.value, v) {
			return i
		}
	}
	p.entries = append(p.entries, entry{value: v, typ: t})
	return len(p.entries) - 1
}

// Get returns the (Value, Type) pair stored at idx. It panics on an
// out-of-range idx: the compiler only ever emits indexes it obtained from
// Add, so an out-of-range request is an internal inconsistency (spec §7
// "Compiler internal inconsistency"), not a user-facing error.
func (p *Pool) Get(idx int) (values.Value, types.Type) {
	e := p.entries[idx]
	return e.value, e.typ
}

// Len reports the number of distinct constants currently stored.
func (p *Pool) Len() int { return len(p.entries) }

// valueEqual implements "equal by kind and by deep content for heap
// objects" (spec §3). Scalars compare by their stored bit pattern; heap
// objects reuse the runtime library's own equality helpers so the pool's
// notion of "equal" never drifts from the language's `==` semantics.
func valueEqual(a, b values.Value) bool {
	if a.Kind.Raw() != b.Kind.Raw() {
		return false
	}
	if a.Obj == nil && b.Obj == nil {
		return a.I == b.I && a.F == b.F
	}
	if a.Obj == nil || b.Obj == nil {
		return false
	}
	return values.ValueEqual(a, b)
}
