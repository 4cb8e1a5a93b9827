package symbols

import (
	"github.com/abacilang/abaci/internal/types"
	"github.com/abacilang/abaci/internal/values"
)

// globalsInitialCap is the starting capacity of the globals raw array.
const globalsInitialCap = 16

// GlobalScope is the process-wide symbol table. Unlike LocalScope it has no
// enclosing link and no separate slot object: its values live directly in a
// single raw array that grows geometrically (doubling) so that pointer
// stability is preserved for JIT-compiled code that caches the array base
// across a growth event only within one access, always re-loading it
// through the runtime Context on the next (spec §5 "Resource discipline").
type GlobalScope struct {
	byName map[string]*Slot
	order  []*Slot
	array  []values.Value
}

// NewGlobalScope returns an empty GlobalScope with its raw array
// pre-sized to globalsInitialCap.
func NewGlobalScope() *GlobalScope {
	return &GlobalScope{
		byName: make(map[string]*Slot),
		array:  make([]values.Value, 0, globalsInitialCap),
	}
}

// Declare binds name to a fresh global Slot and appends a None value to the
// backing array, growing it by doubling if at capacity (spec §5).
func (g *GlobalScope) Declare(name string, t types.Type) (*Slot, error) {
	if _, exists := g.byName[name]; exists {
		return nil, &ErrVariableExists{Name: name}
	}
	slot := &Slot{Name: name, Type: t, Index: len(g.order)}
	g.order = append(g.order, slot)
	g.byName[name] = slot
	g.growAndAppend(values.None)
	return slot, nil
}

func (g *GlobalScope) growAndAppend(v values.Value) {
	if len(g.array) == cap(g.array) {
		next := make([]values.Value, len(g.array), maxInt(globalsInitialCap, cap(g.array)*2))
		copy(next, g.array)
		g.array = next
	}
	g.array = append(g.array, v)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Lookup finds a global by name (the `getIndex(name)` form of spec §3;
// GlobalScope has no enclosing scope so this is equivalent to
// LookupLocal).
func (g *GlobalScope) Lookup(name string) (*Slot, bool) {
	slot, ok := g.byName[name]
	return slot, ok
}

// Slots returns every global binding in declaration order.
func (g *GlobalScope) Slots() []*Slot { return g.order }

// Get reads the current value stored at a global's index.
func (g *GlobalScope) Get(index int) values.Value { return g.array[index] }

// Set overwrites the value stored at a global's index.
func (g *GlobalScope) Set(index int, v values.Value) { g.array[index] = v }

// Array exposes the raw backing slice; compiled code reaches it only
// through Context.GlobalsArray so that a growth event is always observed (spec
// §5).
func (g *GlobalScope) Array() []values.Value { return g.array }
