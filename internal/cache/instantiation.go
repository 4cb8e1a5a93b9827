package cache

import "github.com/abacilang/abaci/internal/types"

// Mangle computes the stable key an instantiation is recorded under. An
// instantiation that is still mid-inference (its return type has not been
// observed yet) is recorded under that key as a `(mangledName -> None)`
// placeholder, inserted before the type pass recurses into the callee body
// to break infinite recursion (spec §4.2 "Function call", step 1).
func Mangle(name string, argTypes []types.Type) (string, error) {
	return types.Mangle(name, argTypes)
}

// Instantiated reports whether mangledName already has a recorded return
// type (including a not-yet-resolved placeholder).
func (c *Cache) Instantiated(mangledName string) (types.Type, bool) {
	t, ok := c.instances[mangledName]
	return t, ok
}

// BeginInstantiation records the `(mangledName -> None)` placeholder used to
// break recursion while the type pass is still inferring the callee's
// return type (spec §4.2 step 1), and queues the instantiation for codegen
// (spec §2 "the code generator must see the exact same set of
// instantiations the type pass installed").
func (c *Cache) BeginInstantiation(mangledName string) {
	c.instances[mangledName] = types.NoneType
	c.pending = append(c.pending, mangledName)
}

// ResolveInstantiation replaces the placeholder with the observed return
// type (spec §4.2 step 4).
func (c *Cache) ResolveInstantiation(mangledName string, returnType types.Type) {
	c.instances[mangledName] = returnType
}

// Pending returns every mangled name queued for codegen since the last
// Drain, in the order the type pass installed them.
func (c *Cache) Pending() []string {
	out := make([]string, len(c.pending))
	copy(out, c.pending)
	return out
}

// Drain clears the pending-instantiation queue: the JIT driver calls this
// once the current submission's module has emitted every queued
// instantiation, so the next submission starts from a clean queue while the
// resolved return types remain cached for later lookups (spec §4.5 step 5).
func (c *Cache) Drain() {
	c.pending = nil
}
