package cache

import (
	"fmt"
	"plugin"

	"github.com/abacilang/abaci/internal/types"
	"github.com/abacilang/abaci/internal/values"
)

// NativeFn is the ABI a native function symbol must satisfy to be callable
// from generated code: it receives already-typed argument values and
// returns a single result value or an error (spec §6 "Native-function
// loader").
type NativeFn func(args []values.Value) (values.Value, error)

// NativeFunction is a loaded native helper: its declared signature plus the
// resolved Go function value that the VM's CALLNATIVE opcode invokes (spec
// §3 "native-function descriptors", §6 `addNativeFunction`).
type NativeFunction struct {
	Name       string
	Library    string
	Symbol     string
	ParamKinds []types.Kind
	ResultKind types.Kind
	Fn         NativeFn
}

// AddNativeFunction implements `addNativeFunction(library, symbol,
// paramKinds, resultKind)` (spec §6): it opens the shared object named by
// library (the empty string resolves to the host process's own exported
// plugin symbols), looks up symbol, and requires it to have Go type
// NativeFn. This is out of scope for the core per spec §1, but a complete
// CLI needs a concrete mechanism; Go's standard `plugin` package is used
// because it is the only portable dynamic-symbol-loading facility in the
// standard toolchain playing the role of the original's dlopen/dlsym (or
// LoadLibrary/GetProcAddress) pair; see DESIGN.md for why no third-party
// alternative fits better.
func (c *Cache) AddNativeFunction(name, library, symbol string, paramKinds []types.Kind, resultKind types.Kind) (*NativeFunction, error) {
	if c.NameExists(name) {
		return nil, fmt.Errorf("BadNativeFn: name %q already bound", name)
	}
	if library == "" {
		return nil, fmt.Errorf("BadLibrary: empty library path is not supported by plugin-based loading")
	}
	p, err := plugin.Open(library)
	if err != nil {
		return nil, fmt.Errorf("BadLibrary: %w", err)
	}
	sym, err := p.Lookup(symbol)
	if err != nil {
		return nil, fmt.Errorf("BadNativeFn: %w", err)
	}
	fn, ok := sym.(NativeFn)
	if !ok {
		if fnPtr, ok2 := sym.(*NativeFn); ok2 {
			fn = *fnPtr
		} else {
			return nil, fmt.Errorf("BadNativeFn: symbol %q does not have type cache.NativeFn", symbol)
		}
	}
	nf := &NativeFunction{
		Name: name, Library: library, Symbol: symbol,
		ParamKinds: paramKinds, ResultKind: resultKind, Fn: fn,
	}
	c.natives[name] = nf
	return nf, nil
}

// Native looks up a previously loaded native function descriptor.
func (c *Cache) Native(name string) (*NativeFunction, bool) {
	nf, ok := c.natives[name]
	return nf, ok
}
