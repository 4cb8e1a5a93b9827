package codegen

import (
	"fmt"

	"github.com/abacilang/abaci/internal/ast"
	"github.com/abacilang/abaci/internal/ir"
	"github.com/abacilang/abaci/internal/typeinfer"
	"github.com/abacilang/abaci/internal/types"
)

// genStmtList emits one block's statements in order (spec §4.4 "Block
// entry"). It does not open or close a scope itself; callers that need a
// fresh nested scope use genNestedBlock instead.
func (b *builder) genStmtList(stmts ast.StmtList) error {
	for _, s := range stmts {
		if err := b.genStmt(s); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) genStmt(s ast.Stmt) error {
	switch n := s.(type) {
	case *ast.PrintStmt:
		return b.genPrint(n)
	case *ast.InitStmt:
		return b.genInit(n)
	case *ast.AssignStmt:
		return b.genAssign(n)
	case *ast.FieldAssignStmt:
		return b.genFieldAssign(n)
	case *ast.IndexAssignStmt:
		return b.genIndexAssign(n)
	case *ast.IfStmt:
		return b.genIf(n)
	case *ast.WhileStmt:
		return b.genWhile(n)
	case *ast.RepeatStmt:
		return b.genRepeat(n)
	case *ast.CaseStmt:
		return b.genCase(n)
	case *ast.FunctionDecl, *ast.ClassDecl:
		return nil // templates only; bodies are emitted per-instantiation
	case *ast.ReturnStmt:
		return b.genReturn(n)
	case *ast.ExprStmt:
		if err := b.genExpr(n.Expr); err != nil {
			return err
		}
		b.emit(ir.OpPop, 0, 0)
		return nil
	default:
		return fmt.Errorf("codegen: unhandled statement node %T", s)
	}
}

// genPrint lowers `print a, b, c` / `print a, b, c;` (spec §6): each item is
// printed with a comma separator between items (not after the last), and a
// trailing newline unless Suppress (a trailing `;`) was parsed; a trailing
// `,` never sets Suppress.
func (b *builder) genPrint(n *ast.PrintStmt) error {
	for i, item := range n.Items {
		if i > 0 {
			b.emit(ir.OpPrintComma, 0, 0)
		}
		if err := b.genExpr(item); err != nil {
			return err
		}
		b.emit(ir.OpPrintValue, 0, 0)
	}
	if !n.Suppress {
		b.emit(ir.OpPrintLn, 0, 0)
	}
	return nil
}

// genInit lowers `let name = expr` / `let name <- expr` (spec §4.4
// "Initialization"): at the program's own top level the binding lands in
// the session globals (already declared there by the type pass); anywhere
// else it gets a fresh frame slot.
func (b *builder) genInit(n *ast.InitStmt) error {
	if err := b.genExpr(n.Value); err != nil {
		return err
	}
	if b.env == nil {
		slot, ok := b.checker.Globals().Lookup(n.Name)
		if !ok {
			return fmt.Errorf("codegen: global %q not declared by the type pass", n.Name)
		}
		b.emit(ir.OpStoreInitGlobal, int32(slot.Index), 0)
		return nil
	}
	slot := b.declareLocal(n.Name)
	b.emit(ir.OpStoreInitLocal, slot, 0)
	return nil
}

// genAssign lowers `name <- expr` reassigning an existing mutable binding
// (spec §4.4 "Assignment").
func (b *builder) genAssign(n *ast.AssignStmt) error {
	if err := b.genExpr(n.Value); err != nil {
		return err
	}
	if slot, ok := b.lookupLocal(n.Name); ok {
		b.emit(ir.OpStoreAssignLocal, slot, 0)
		return nil
	}
	slot, ok := b.checker.Globals().Lookup(n.Name)
	if !ok {
		return fmt.Errorf("codegen: undeclared variable %q reached codegen", n.Name)
	}
	b.emit(ir.OpStoreAssignGlobal, int32(slot.Index), 0)
	return nil
}

// genFieldAssign lowers `a.b.c <- expr` (spec §4.4 "Field assignment"): the
// instance chain up to (not including) the last field is loaded by
// reference, the new value is evaluated, and OpSetField destroys the old
// field value before adopting the new one.
func (b *builder) genFieldAssign(n *ast.FieldAssignStmt) error {
	prefix := n.Fields[:len(n.Fields)-1]
	last := n.Fields[len(n.Fields)-1]
	if err := b.genFieldChainRefTo(n.Receiver, prefix); err != nil {
		return err
	}
	t, err := b.resolveChainType(n.Receiver, prefix)
	if err != nil {
		return err
	}
	idx, _, ok := typeinfer.ResolveField(b.checker.Cache(), t, last)
	if !ok {
		return fmt.Errorf("codegen: field %q not found on %s", last, types.DisplayName(t))
	}
	if err := b.genExpr(n.Value); err != nil {
		return err
	}
	b.emit(ir.OpSetField, int32(idx), 0)
	return nil
}

// genIndexAssign lowers `list[idx] <- expr`: the list is loaded by
// reference, then the index, then the value, matching OpSetIndex's pop
// order (value, index, list).
func (b *builder) genIndexAssign(n *ast.IndexAssignStmt) error {
	if err := b.genReceiverExpr(n.List); err != nil {
		return err
	}
	if err := b.genExpr(n.Index); err != nil {
		return err
	}
	if err := b.genExpr(n.Value); err != nil {
		return err
	}
	b.emit(ir.OpSetIndex, 0, 0)
	return nil
}

// genNestedBlock emits stmts inside a fresh child scope, destroying its
// locals on normal fallthrough exit. When stmts' literal last statement is
// a return, the block's own destroy is skipped: OpReturnValue/OpReturnVoid
// unconditionally stops the chunk before any enclosing block's destroy code
// would run, and the return statement's own destroy walk already covers
// every enclosing scope up to the function's parameter scope.
func (b *builder) genNestedBlock(stmts ast.StmtList) error {
	parent := b.env
	b.env = newEnv(parent)
	if err := b.genStmtList(stmts); err != nil {
		return err
	}
	if !endsInReturn(stmts) {
		destroyScope(b, b.env)
	}
	b.env = parent
	return nil
}

func (b *builder) genIf(n *ast.IfStmt) error {
	if err := b.genExpr(n.Cond); err != nil {
		return err
	}
	jumpToElse := b.emit(ir.OpJumpIfFalse, 0, 0)
	if err := b.genNestedBlock(n.Then); err != nil {
		return err
	}
	if n.Else == nil {
		b.patch(jumpToElse, b.here())
		return nil
	}
	jumpToEnd := b.emit(ir.OpJump, 0, 0)
	b.patch(jumpToElse, b.here())
	if err := b.genNestedBlock(n.Else); err != nil {
		return err
	}
	b.patch(jumpToEnd, b.here())
	return nil
}

func (b *builder) genWhile(n *ast.WhileStmt) error {
	condStart := b.here()
	if err := b.genExpr(n.Cond); err != nil {
		return err
	}
	jumpToEnd := b.emit(ir.OpJumpIfFalse, 0, 0)
	if err := b.genNestedBlock(n.Body); err != nil {
		return err
	}
	b.emit(ir.OpJump, int32(condStart), 0)
	b.patch(jumpToEnd, b.here())
	return nil
}

// genRepeat lowers `repeat body until cond`. Unlike every other block form,
// the until-condition is evaluated while the body's own scope is still
// alive (typeinfer.checkStmt's RepeatStmt case checks Cond against the
// body's own bodyScope), so this cannot reuse genNestedBlock: the body's
// scope is opened, its statements and then its condition are emitted in
// that scope, and only afterward (unless the body ended in return) is the
// scope's own destroy code emitted.
func (b *builder) genRepeat(n *ast.RepeatStmt) error {
	bodyStart := b.here()
	parent := b.env
	b.env = newEnv(parent)
	if err := b.genStmtList(n.Body); err != nil {
		return err
	}
	if err := b.genExpr(n.Cond); err != nil {
		return err
	}
	bodyEndsInReturn := endsInReturn(n.Body)
	if !bodyEndsInReturn {
		destroyScope(b, b.env)
	}
	b.env = parent
	jumpToEnd := b.emit(ir.OpJumpIfTrue, 0, 0)
	b.emit(ir.OpJump, int32(bodyStart), 0)
	b.patch(jumpToEnd, b.here())
	return nil
}

// genCase lowers `case scrutinee when e1 b1 when e2 b2 ... else be endcase`
// (spec §4.4): the scrutinee is evaluated once into a scratch slot that
// lives in the case's own frameEnv (not a bare allocTemp slot), so that an
// arm body ending in `return` destroys it the same way genReturn destroys
// any other enclosing scope. Each arm clone-loads it, evaluates its own
// `when` expression, compares with the same operand-promotion rule a binary
// `==` uses, and jumps past the arm body when the comparison fails.
func (b *builder) genCase(n *ast.CaseStmt) error {
	if err := b.genExpr(n.Scrutinee); err != nil {
		return err
	}
	scrutineeKind := rawKindOf(b.info.TypeOf(n.Scrutinee))

	parent := b.env
	b.env = newEnv(parent)
	scrutineeSlot := b.allocTemp()
	b.env.declare("$scrutinee", scrutineeSlot)
	b.emit(ir.OpStoreInitLocal, scrutineeSlot, 0)

	var jumpsToEnd []int
	for _, arm := range n.Arms {
		b.emit(ir.OpLoadLocal, scrutineeSlot, 0)
		whenKind := rawKindOf(b.info.TypeOf(arm.When))
		combined := combinedKind(scrutineeKind, whenKind)
		b.emitPromotion(scrutineeKind, combined)
		if err := b.genExpr(arm.When); err != nil {
			return err
		}
		b.emitPromotion(whenKind, combined)
		b.emit(ir.OpBinary, ir.BinaryOpOperand(types.Eq), ir.KindOperand(combined))

		jumpToNext := b.emit(ir.OpJumpIfFalse, 0, 0)
		if err := b.genNestedBlock(arm.Body); err != nil {
			return err
		}
		jumpsToEnd = append(jumpsToEnd, b.emit(ir.OpJump, 0, 0))
		b.patch(jumpToNext, b.here())
	}
	if n.Else != nil {
		if err := b.genNestedBlock(n.Else); err != nil {
			return err
		}
	}
	end := b.here()
	for _, j := range jumpsToEnd {
		b.patch(j, end)
	}
	// Reached only by an arm (or else) that fell through rather than
	// returning; an arm ending in return already destroyed this scope
	// through genReturn's own walk up the env chain.
	destroyScope(b, b.env)
	b.env = parent
	return nil
}

// genReturn lowers `return expr` / bare `return` (spec §7 ReturnAtEnd: it is
// always its block's literal last statement). The return expression is
// evaluated first, since it may reference locals about to be destroyed;
// then every enclosing scope up to (but excluding) the function's own
// parameter scope is destroyed in LIFO order. The asymmetry with normal
// block-exit (which destroys everything including its own top scope) exists
// because the caller's OpCall site still owns the argument values that were
// moved into the parameter scope's slots for the call's duration.
func (b *builder) genReturn(n *ast.ReturnStmt) error {
	hasValue := n.Value != nil
	if hasValue {
		if err := b.genExpr(n.Value); err != nil {
			return err
		}
	}

	for e := b.env; e != nil && e != b.funcBase; e = e.parent {
		destroyScope(b, e)
	}
	if hasValue {
		b.emit(ir.OpReturnValue, 0, 0)
	} else {
		b.emit(ir.OpReturnVoid, 0, 0)
	}
	return nil
}
