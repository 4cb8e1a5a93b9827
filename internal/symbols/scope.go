// Package symbols implements the lexical stack of local scopes and the
// process-wide global scope (spec §3 "Symbol tables"), grounded on the
// teacher's internal/semantic/symbol_table.go lookup-chain design and
// internal/interp/environment.go's slot/value separation.
package symbols

import "github.com/abacilang/abaci/internal/types"

// Slot is a mutable binding cell: one per declared local or global
// variable. The code generator allocates the backing storage (an IR
// stack slot for locals, an index into the globals array for globals);
// Slot here only carries compile-time bookkeeping (the type and whether
// the binding is a compile-time constant).
type Slot struct {
	Name  string
	Type  types.Type
	Index int
}

// LocalScope is an ordered sequence of (Slot) bindings plus a name→index
// map and a non-owning back-pointer to the enclosing scope (spec §3, §9
// "Backward references for lexical scopes").
type LocalScope struct {
	parent *LocalScope
	order  []*Slot
	byName map[string]*Slot
}

// NewLocalScope creates a scope nested inside parent (nil for a function's
// outermost scope).
func NewLocalScope(parent *LocalScope) *LocalScope {
	return &LocalScope{parent: parent, byName: make(map[string]*Slot)}
}

// Parent returns the enclosing scope, or nil at the outermost scope.
func (s *LocalScope) Parent() *LocalScope { return s.parent }

// Declare binds name to a fresh Slot in this scope. It returns an error if
// name is already declared in this exact scope (spec §7 VariableExists);
// shadowing an enclosing scope's binding is allowed.
func (s *LocalScope) Declare(name string, t types.Type) (*Slot, error) {
	if _, exists := s.byName[name]; exists {
		return nil, &ErrVariableExists{Name: name}
	}
	slot := &Slot{Name: name, Type: t, Index: len(s.order)}
	s.order = append(s.order, slot)
	s.byName[name] = slot
	return slot, nil
}

// Lookup walks this scope and its enclosing scopes for name (the
// `getIndex(name)` form of spec §3).
func (s *LocalScope) Lookup(name string) (*Slot, bool) {
	for scope := s; scope != nil; scope = scope.parent {
		if slot, ok := scope.byName[name]; ok {
			return slot, true
		}
	}
	return nil, false
}

// LookupLocal looks up name only in this exact scope, not enclosing scopes
// (the `getIndex(name, thisScopeOnly)` form of spec §3).
func (s *LocalScope) LookupLocal(name string) (*Slot, bool) {
	slot, ok := s.byName[name]
	return slot, ok
}

// Slots returns the scope's bindings in declaration order, used by the
// code generator to emit LIFO destroy sequences on scope exit (spec §4.4).
func (s *LocalScope) Slots() []*Slot { return s.order }

// ErrVariableExists is the static error for re-declaring a name already
// bound in the same scope (spec §7).
type ErrVariableExists struct{ Name string }

func (e *ErrVariableExists) Error() string { return "VariableExists: " + e.Name }
