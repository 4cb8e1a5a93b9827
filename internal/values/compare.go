package values

import (
	"bytes"

	"github.com/abacilang/abaci/internal/types"
)

// CompareString is a byte-equal predicate (spec §4.6 compareString). The
// teacher's JIT symbol table mistakenly re-binds compareString to
// concatString; spec §9 flags this as a bug to avoid reproducing, so this
// routes to its own implementation.
func CompareString(a, b Value) bool {
	sa := a.Obj.(*String)
	sb := b.Obj.(*String)
	return bytes.Equal(sa.Bytes, sb.Bytes)
}

// CompareComplex compares two complex values field-wise, the only
// comparison complex supports besides `!=` (spec §4.2 table).
func CompareComplex(a, b Value) bool {
	ca := a.Obj.(*Complex)
	cb := b.Obj.(*Complex)
	return ca.Real == cb.Real && ca.Imag == cb.Imag
}

// CompareList reports deep equality of two lists of the same element type.
// Not part of the operator table (List only supports `+`); it is reached
// through ValueEqual.
func CompareList(a, b Value) bool {
	la := a.Obj.(*List)
	lb := b.Obj.(*List)
	if len(la.Elements) != len(lb.Elements) {
		return false
	}
	for i := range la.Elements {
		if !ValueEqual(la.Elements[i], lb.Elements[i]) {
			return false
		}
	}
	return true
}

// ValueEqual dispatches `==` across any two values of identical raw kind;
// the constants pool uses it to recognize an already-interned literal.
func ValueEqual(a, b Value) bool {
	switch a.Kind.Raw() {
	case types.Boolean:
		return a.I == b.I
	case types.Integer:
		return a.I == b.I
	case types.Floating:
		return a.F == b.F
	case types.Complex:
		return CompareComplex(a, b)
	case types.String:
		return CompareString(a, b)
	case types.List:
		return CompareList(a, b)
	default:
		return false
	}
}
