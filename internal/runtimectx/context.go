// Package runtimectx implements the process-wide runtime context the JIT
// driver links generated code against (spec §6 "Runtime context layout").
package runtimectx

import (
	"bufio"
	"io"

	"github.com/abacilang/abaci/internal/cache"
	"github.com/abacilang/abaci/internal/constants"
	"github.com/abacilang/abaci/internal/symbols"
)

// Context is the single process-wide global the JIT driver resolves
// external symbols against (spec §5 "a single process-wide context global
// resolved at link time"). Field order follows spec §6's fixed layout:
// `{ globalsArrayPointer, inputStreamHandle, outputStreamHandle,
// constantsPointer, globalsSymbolsPointer, cachePointer }`. The original's
// globalsArrayPointer/globalsSymbolsPointer split exists because its
// compiled code indexes a raw value array while a separate symbol table
// carries names and types; here both resolve to the same *symbols.
// GlobalScope; a bytecode VM instruction only ever carries an index,
// so there is no raw-pointer/metadata split left to preserve, and holding
// one Go value for both avoids two handles that could drift out of sync.
type Context struct {
	GlobalsArray   *symbols.GlobalScope
	Input          *bufio.Reader // buffered so successive userInput calls resume where the last one left off
	Output         io.Writer
	Constants      *constants.Pool
	GlobalsSymbols *symbols.GlobalScope
	Cache          *cache.Cache
}

// New builds a fresh Context wired to one session's shared state. The same
// Context is reused across every submission in a REPL session so that
// globals and instantiations persist (spec §4.5 "the module has absorbed
// them").
func New(globals *symbols.GlobalScope, pool *constants.Pool, c *cache.Cache, input io.Reader, output io.Writer) *Context {
	return &Context{
		GlobalsArray:   globals,
		Input:          bufio.NewReader(input),
		Output:         output,
		Constants:      pool,
		GlobalsSymbols: globals,
		Cache:          c,
	}
}
