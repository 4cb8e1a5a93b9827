package values

import "github.com/abacilang/abaci/internal/types"

// HeapObject is implemented by the four heap-allocated kinds: Complex,
// String, Instance, List (spec §3). Each carries Clone, a deep copy used to
// preserve the single-owner invariant when a value is read out of a
// variable or field (spec "Invariants").
type HeapObject interface {
	Clone() HeapObject
	clsTag() string
}

// Complex holds a complex number's real and imaginary parts.
type Complex struct {
	Real, Imag float64
}

func (c *Complex) Clone() HeapObject { cp := *c; return &cp }
func (c *Complex) clsTag() string    { return "Complex" }

// MakeComplex allocates a new Complex heap object and wraps it as a Value,
// the Go analogue of the runtime helper `makeComplex(r,i)` (spec §4.6).
func MakeComplex(real, imag float64) Value {
	return Value{Kind: types.Complex, Obj: &Complex{Real: real, Imag: imag}}
}

// String holds UTF-8 bytes (never NUL-terminated) plus a precomputed
// codepoint length.
type String struct {
	Bytes      []byte
	Codepoints int
}

func (s *String) Clone() HeapObject {
	b := make([]byte, len(s.Bytes))
	copy(b, s.Bytes)
	return &String{Bytes: b, Codepoints: s.Codepoints}
}
func (s *String) clsTag() string { return "String" }

// Instance holds a class instance's field values, positional per the class
// template's declaration order, plus the owning class name.
type Instance struct {
	ClassName string
	Fields    []Value
}

func (inst *Instance) Clone() HeapObject {
	fields := make([]Value, len(inst.Fields))
	for i, f := range inst.Fields {
		fields[i] = Clone(f)
	}
	return &Instance{ClassName: inst.ClassName, Fields: fields}
}
func (inst *Instance) clsTag() string { return "Instance" }

// MakeInstance allocates a new Instance with n zero-initialized field slots,
// the Go analogue of `makeInstance(c,n)` (spec §4.6).
func MakeInstance(className string, fieldCount int) Value {
	return Value{Kind: types.Instance, Obj: &Instance{
		ClassName: className,
		Fields:    make([]Value, fieldCount),
	}}
}

// List holds an ordered sequence of Values, all of the list's declared
// element type.
type List struct {
	Elements []Value
}

func (l *List) Clone() HeapObject {
	els := make([]Value, len(l.Elements))
	for i, e := range l.Elements {
		els[i] = Clone(e)
	}
	return &List{Elements: els}
}
func (l *List) clsTag() string { return "List" }

// MakeList allocates a new List with n zero-initialized (None) elements,
// the Go analogue of `makeList(n)` (spec §4.6).
func MakeList(n int) Value {
	return Value{Kind: types.List, Obj: &List{Elements: make([]Value, n)}}
}
