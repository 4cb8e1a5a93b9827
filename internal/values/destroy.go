package values

// Destroy is the release point of the code generator's temporaries/
// scope-exit discipline (spec §4.4 "Destroy every temporary in LIFO
// order"). Go's garbage collector reclaims the backing memory, so Destroy
// only recurses through Instance and List contents; it does not modify v
// or its heap object, and a value read after being destroyed is not
// detected.
func Destroy(v Value) {
	if v.Obj == nil {
		return
	}
	switch obj := v.Obj.(type) {
	case *Instance:
		for _, f := range obj.Fields {
			Destroy(f)
		}
	case *List:
		for _, e := range obj.Elements {
			Destroy(e)
		}
	}
}
