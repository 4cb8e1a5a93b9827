// Package jit implements the compiler driver spec §4.5 describes: for one
// submission (a whole file, or one interactive-prompt chunk) it runs the
// lexer, parser, type pass, and code generator in sequence and hands the
// resulting internal/ir.Program to internal/vm for execution, against a
// runtime context shared across every submission in the session.
//
// Grounded on the teacher's own top-level compile pipeline (lex → parse →
// analyze → generate → run, threaded through one shared session), with a
// bytecode backend: "link the module, resolve runtime symbols" (spec §4.5 steps 6-7)
// becomes, here, "hand the ir.Program and the already-resolved
// runtimectx.Context to vm.New"; there is no separate link step because
// the bytecode VM interprets internal/ir.Program directly rather than
// machine code that needs runtime-symbol addresses patched in.
package jit

import (
	"fmt"
	"io"

	"github.com/abacilang/abaci/internal/cache"
	"github.com/abacilang/abaci/internal/codegen"
	"github.com/abacilang/abaci/internal/constants"
	"github.com/abacilang/abaci/internal/ir"
	"github.com/abacilang/abaci/internal/lexer"
	"github.com/abacilang/abaci/internal/parser"
	"github.com/abacilang/abaci/internal/runtimectx"
	"github.com/abacilang/abaci/internal/symbols"
	"github.com/abacilang/abaci/internal/typeinfer"
	"github.com/abacilang/abaci/internal/vm"
)

// Session holds everything that persists across submissions within one CLI
// invocation or one REPL run (spec §4.5 "the module has absorbed them; next
// submission recomputes" and spec §5 "globals... never shrinks"): the
// shared cache, the process-wide globals, the session-wide constants pool,
// and the type checker, all reused submission to submission so that a
// function defined in an earlier submission stays callable, and a global
// declared earlier stays bound.
type Session struct {
	Cache     *cache.Cache
	Globals   *symbols.GlobalScope
	Constants *constants.Pool
	Checker   *typeinfer.Checker
	Ctx       *runtimectx.Context
}

// NewSession builds a fresh session wired against input/output streams
// (spec §6 "Runtime context layout"). file is used only for error messages
// (empty in REPL mode, the source path in file mode).
func NewSession(file string, input io.Reader, output io.Writer) *Session {
	c := cache.New()
	globals := symbols.NewGlobalScope()
	pool := constants.New()
	ctx := runtimectx.New(globals, pool, c, input, output)
	checker := typeinfer.New(c, globals, "", file)
	return &Session{
		Cache:     c,
		Globals:   globals,
		Constants: pool,
		Checker:   checker,
		Ctx:       ctx,
	}
}

// Run compiles and executes one submission's source text (spec §4.5 steps
// 1-7, run against the session's persistent cache/globals/checker rather
// than fresh ones). A parse error returns a *ParseError with no execution
// attempted; a type or runtime error propagates as returned by the type
// pass, code generator, or VM.
func (s *Session) Run(source string) error {
	l := lexer.New(source)
	p := parser.New(l)
	stmts := p.ParseProgram()
	if parseErrs := p.Errors(); len(parseErrs) > 0 {
		return &ParseError{Messages: parseErrs}
	}

	s.Checker.SetSource(source)
	if err := s.Checker.CheckProgram(stmts); err != nil {
		return err
	}

	program := ir.NewProgram(s.Constants)
	gen := codegen.New(s.Checker, program, p.Constants())
	if err := gen.EmitSubmission(stmts); err != nil {
		return fmt.Errorf("jit: code generation failed: %w", err)
	}
	s.Cache.Drain()

	machine := vm.New(program, s.Ctx)
	if err := machine.Run(); err != nil {
		return err
	}
	return nil
}

// ParseError wraps the parser's accumulated error list (spec §7 "Parser
// error... REPL skips to end of input").
type ParseError struct {
	Messages []string
}

func (e *ParseError) Error() string {
	out := ""
	for i, m := range e.Messages {
		if i > 0 {
			out += "\n"
		}
		out += m
	}
	return out
}
