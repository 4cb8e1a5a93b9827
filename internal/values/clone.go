package values

// Clone deep-copies v, the runtime contract behind every variable/field
// read (spec "Invariants": "reading a variable into an expression position
// produces a clone"). Scalars are copied by value already; heap objects
// recurse through HeapObject.Clone.
func Clone(v Value) Value {
	if v.Obj == nil {
		return v
	}
	return Value{Kind: v.Kind, I: v.I, F: v.F, Obj: v.Obj.Clone()}
}
