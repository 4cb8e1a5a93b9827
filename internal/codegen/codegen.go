// Package codegen implements the code generator that lowers a type-checked
// program into internal/ir bytecode (spec §4.3/§4.4 "IR code generator").
// It is the second of the two cooperating walkers spec §2 describes: where
// internal/typeinfer assigns every expression a type and drives monomorphic
// instantiation, this package re-walks the identical AST shapes, in the
// identical scope-nesting order, emitting one instruction stream per
// instantiation plus the top-level `program` entry point.
//
// Grounded on the teacher's internal/bytecode package's compiler/environment
// split, simplified for this language's closed grammar: frame slots are
// allocated monotonically and never reused within one chunk (the teacher's
// scope-depth slot recycling is not worth the bookkeeping here), and field/
// method resolution is not re-derived: it calls back into
// typeinfer.ResolveField so the generator can never disagree with what the
// type pass already validated.
package codegen

import (
	"fmt"

	"github.com/abacilang/abaci/internal/ast"
	"github.com/abacilang/abaci/internal/constants"
	"github.com/abacilang/abaci/internal/ir"
	"github.com/abacilang/abaci/internal/typeinfer"
	"github.com/abacilang/abaci/internal/types"
)

// Generator drives one submission's worth of code generation against a
// shared Checker and Program (spec §4.5 steps 3-4).
type Generator struct {
	checker    *typeinfer.Checker
	program    *ir.Program
	sourcePool *constants.Pool
}

// New returns a Generator that emits instantiations and the top-level
// program chunk into program, remapping literal references out of
// sourcePool (the submission's own parser-owned constants pool) into
// program.Constants, the session-wide shared pool (spec §3: a REPL session
// keeps one persistent pool across submissions even though every
// parser.New call starts a fresh, submission-local one).
func New(checker *typeinfer.Checker, program *ir.Program, sourcePool *constants.Pool) *Generator {
	return &Generator{checker: checker, program: program, sourcePool: sourcePool}
}

// EmitSubmission emits every instantiation queued by the type pass since the
// last call (cache.Pending()), then the submission's own top-level `program`
// chunk (spec §4.5 steps 3-4). It does not drain the pending queue; the JIT
// driver does that once the submission's module is fully emitted.
func (g *Generator) EmitSubmission(stmts ast.StmtList) error {
	for _, mangled := range g.checker.Cache().Pending() {
		if _, ok := g.program.Functions[mangled]; ok {
			continue
		}
		site, ok := g.checker.Site(mangled)
		if !ok {
			return fmt.Errorf("codegen: no instantiation site recorded for %q", mangled)
		}
		info, ok := g.checker.InstantiationInfo(mangled)
		if !ok {
			return fmt.Errorf("codegen: no instantiation info recorded for %q", mangled)
		}
		chunk, err := g.emitInstantiation(mangled, site, info)
		if err != nil {
			return err
		}
		g.program.Functions[mangled] = chunk
	}

	chunk, err := g.emitProgramChunk(stmts, g.checker.ProgramInfo())
	if err != nil {
		return err
	}
	g.program.Functions["program"] = chunk
	return nil
}

// frameEnv is one lexical scope's name→slot bindings, chained to its
// enclosing scope. It mirrors symbols.LocalScope's shape but is codegen's
// own structure: the type pass's scopes are ephemeral to its own walk and
// discarded once CheckProgram returns, so the generator rebuilds an
// equivalent chain while re-walking the same AST in the same order (spec §2
// "the code generator must see the exact same... decisions").
type frameEnv struct {
	parent *frameEnv
	slots  map[string]int32
	order  []string
}

func newEnv(parent *frameEnv) *frameEnv {
	return &frameEnv{parent: parent, slots: make(map[string]int32)}
}

func (e *frameEnv) declare(name string, slot int32) {
	e.slots[name] = slot
	e.order = append(e.order, name)
}

func (e *frameEnv) lookup(name string) (int32, bool) {
	for s := e; s != nil; s = s.parent {
		if idx, ok := s.slots[name]; ok {
			return idx, true
		}
	}
	return 0, false
}

// builder holds the state for emitting one Chunk's instructions.
type builder struct {
	checker    *typeinfer.Checker
	program    *ir.Program
	sourcePool *constants.Pool
	info       *typeinfer.Info
	chunk      *ir.Chunk

	nextSlot int32
	env      *frameEnv // current innermost scope; nil at the program's own top level
	funcBase *frameEnv // the function/method's own parameter scope; nil for the program chunk
}

func (b *builder) emit(op ir.Opcode, a, operandB int32) int {
	b.chunk.Instructions = append(b.chunk.Instructions, ir.Instruction{Op: op, A: a, B: operandB})
	return len(b.chunk.Instructions) - 1
}

func (b *builder) here() int { return len(b.chunk.Instructions) }

func (b *builder) patch(idx, target int) { b.chunk.Instructions[idx].A = int32(target) }

// declareLocal allocates a fresh frame slot for a named binding in the
// current scope.
func (b *builder) declareLocal(name string) int32 {
	slot := b.allocTemp()
	b.env.declare(name, slot)
	return slot
}

// allocTemp allocates a fresh, unnamed scratch frame slot (used for boolean
// chains and case scrutinees: values that need a stable home across several
// instructions but are never referenced by a surface-syntax name).
func (b *builder) allocTemp() int32 {
	slot := b.nextSlot
	b.nextSlot++
	if int(slot)+1 > b.chunk.NumSlots {
		b.chunk.NumSlots = int(slot) + 1
	}
	return slot
}

func (b *builder) lookupLocal(name string) (int32, bool) {
	if b.env == nil {
		return 0, false
	}
	return b.env.lookup(name)
}

// emitInstantiation compiles one monomorphic function or method body (spec
// §4.5 step 3): its own parameter scope (preceded by an implicit `this`
// binding for methods), its body, and the fallthrough exit that returns
// values.None when no return statement fires at runtime.
func (g *Generator) emitInstantiation(mangled string, site *typeinfer.Site, info *typeinfer.Info) (*ir.Chunk, error) {
	paramCount := len(site.ParamNames)
	if site.IsMethod {
		paramCount++
	}
	chunk := &ir.Chunk{
		Name:         mangled,
		ParamCount:   paramCount,
		ReturnsValue: !types.Equal(site.ReturnType, types.NoneType),
	}
	b := &builder{checker: g.checker, program: g.program, sourcePool: g.sourcePool, info: info, chunk: chunk}

	base := newEnv(nil)
	slot := int32(0)
	if site.IsMethod {
		base.declare("this", slot)
		slot++
	}
	for _, name := range site.ParamNames {
		base.declare(name, slot)
		slot++
	}
	b.nextSlot = slot
	chunk.NumSlots = int(slot)
	b.env = base
	b.funcBase = base

	if err := b.genStmtList(site.Body); err != nil {
		return nil, err
	}
	if !endsInReturn(site.Body) {
		destroyScope(b, base)
		b.emit(ir.OpReturnVoid, 0, 0)
	}
	return chunk, nil
}

// emitProgramChunk compiles one submission's top-level statement list (spec
// §4.5 step 4): declarations land in the session-wide globals rather than a
// frame, and the chunk always ends with an explicit void return (a bare
// `return` can never type-check at this level, so no earlier one can have
// already exited the chunk).
func (g *Generator) emitProgramChunk(stmts ast.StmtList, info *typeinfer.Info) (*ir.Chunk, error) {
	chunk := &ir.Chunk{Name: "program"}
	b := &builder{checker: g.checker, program: g.program, sourcePool: g.sourcePool, info: info, chunk: chunk}
	if err := b.genStmtList(stmts); err != nil {
		return nil, err
	}
	b.emit(ir.OpReturnVoid, 0, 0)
	return chunk, nil
}

// endsInReturn reports whether stmts' literal last statement is a return,
// i.e. whether every bytecode path emitted for this list already exits the
// chunk before falling off the end, the same test typeinfer's ReturnAtEnd
// rule enforces statically (spec §7).
func endsInReturn(stmts ast.StmtList) bool {
	if len(stmts) == 0 {
		return false
	}
	_, ok := stmts[len(stmts)-1].(*ast.ReturnStmt)
	return ok
}

// destroyScope emits a destroy for every local e declared directly (not in
// an ancestor), in reverse declaration order (spec §4.4 "Block exit").
func destroyScope(b *builder, e *frameEnv) {
	for i := len(e.order) - 1; i >= 0; i-- {
		b.emit(ir.OpDestroySlot, e.slots[e.order[i]], 0)
	}
}

func rawKindOf(t types.Type) types.Kind { return types.KindOf(t).Raw() }

// combinedKind mirrors typeinfer.combineBinary's promotion choice at the
// Kind level: composites and strings participate reflexively (already
// validated identical by the type pass), scalars promote toward the
// lattice's higher side.
func combinedKind(lk, rk types.Kind) types.Kind {
	if lk == types.String || rk == types.String {
		return types.String
	}
	if lk == types.Instance || lk == types.List {
		return lk
	}
	if rk == types.Instance || rk == types.List {
		return rk
	}
	promoted, ok := types.Promote(lk, rk)
	if !ok {
		return lk
	}
	return promoted
}

// emitPromotion inserts the numeric-widening instruction needed to bring a
// value already on top of the stack from from to to, if any (spec §3
// promotion table).
func (b *builder) emitPromotion(from, to types.Kind) {
	if from == to {
		return
	}
	switch {
	case to == types.Complex && (from == types.Integer || from == types.Floating):
		b.emit(ir.OpConvertToComplex, 0, 0)
	case to == types.Floating && from == types.Integer:
		b.emit(ir.OpConvertToFloat, 0, 0)
	}
}
