// Package values implements abaci's runtime support library: the tagged
// Value representation, heap objects, and the clone/destroy/compare/concat/
// index/convert/format helpers the code generator calls into (spec §3,
// §4.6). It is the Go-idiomatic analogue of the teacher's
// internal/interp/runtime package, generalized from DWScript's full value
// model down to abaci's closed eight-kind set.
package values

import "github.com/abacilang/abaci/internal/types"

// Value is a runtime slot: a boolean, a signed integer, a float, or a
// pointer to a HeapObject, always paired at compile time with its
// types.Type. Unlike the original's packed 64-bit union, Go has no
// type-punned storage, so Value carries its own raw Kind tag, required
// because the bytecode VM's stack is untyped at the Go level and must be
// able to dispatch on a value's kind at run time (spec §3, §4.6).
type Value struct {
	Kind types.Kind
	I    int64   // Boolean (0/1) and Integer
	F    float64 // Floating
	Obj  HeapObject
}

// None is the zero value, the canonical `None` result.
var None = Value{Kind: types.None}

// NewBool, NewInt, and NewFloat construct scalar values.
func NewBool(b bool) Value {
	var i int64
	if b {
		i = 1
	}
	return Value{Kind: types.Boolean, I: i}
}

func NewInt(i int64) Value { return Value{Kind: types.Integer, I: i} }

func NewFloat(f float64) Value { return Value{Kind: types.Floating, F: f} }

// Bool reports the boolean interpretation of a Boolean-kind Value.
func (v Value) Bool() bool { return v.I != 0 }

// IsHeap reports whether v's raw kind stores data via Obj.
func (v Value) IsHeap() bool { return v.Kind.Raw().IsHeap() }
