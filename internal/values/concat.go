package values

import "github.com/abacilang/abaci/internal/types"

// ConcatString returns a new String with the concatenated bytes and
// recomputed codepoint length (spec §4.6 concatString).
func ConcatString(a, b Value) Value {
	sa := a.Obj.(*String)
	sb := b.Obj.(*String)
	buf := make([]byte, 0, len(sa.Bytes)+len(sb.Bytes))
	buf = append(buf, sa.Bytes...)
	buf = append(buf, sb.Bytes...)
	return Value{Kind: types.String, Obj: &String{Bytes: buf, Codepoints: sa.Codepoints + sb.Codepoints}}
}

// ConcatList returns a new List with b's elements appended after clones of
// a's elements, backing the `+` (concat) operator on List (spec §4.2 table,
// §8 "!(L + [e]) == !L + 1").
func ConcatList(a, b Value) Value {
	la := a.Obj.(*List)
	lb := b.Obj.(*List)
	els := make([]Value, 0, len(la.Elements)+len(lb.Elements))
	for _, e := range la.Elements {
		els = append(els, Clone(e))
	}
	for _, e := range lb.Elements {
		els = append(els, Clone(e))
	}
	return Value{Kind: types.List, Obj: &List{Elements: els}}
}
