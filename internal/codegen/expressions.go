package codegen

import (
	"fmt"

	"github.com/abacilang/abaci/internal/ast"
	"github.com/abacilang/abaci/internal/cache"
	"github.com/abacilang/abaci/internal/ir"
	"github.com/abacilang/abaci/internal/typeinfer"
	"github.com/abacilang/abaci/internal/types"
	"github.com/abacilang/abaci/internal/values"
)

// trueValue is the seed value for a boolean-chain's AND-reduction
// accumulator (spec §4.3 "Boolean chains").
func trueValue() values.Value { return values.NewBool(true) }

// genExpr emits e as a freshly owned value left on top of the stack (spec
// §4.3 "Expression-node variant"). Every case here mirrors the matching
// branch of typeinfer.exprTypeUncached so the two walkers never disagree
// about which AST shape they are looking at.
func (b *builder) genExpr(e ast.Expr) error {
	switch n := e.(type) {
	case *ast.Literal:
		return b.genLiteral(n)
	case *ast.Variable:
		return b.loadVariable(n.Name, true)
	case *ast.OperatorExpr:
		return b.genOperator(n)
	case *ast.CallExpr:
		return b.genCall(n)
	case *ast.FieldChain:
		return b.genFieldChain(n)
	case *ast.MethodCallExpr:
		return b.genMethodCall(n)
	case *ast.InputExpr:
		b.emit(ir.OpUserInput, 0, 0)
		return nil
	case *ast.TypeConvExpr:
		return b.genTypeConv(n)
	case *ast.ListLiteral:
		return b.genListLiteral(n)
	case *ast.IndexExpr:
		return b.genIndex(n)
	default:
		return fmt.Errorf("codegen: unhandled expression node %T", e)
	}
}

// genLiteral remaps a literal out of the submission's own parser-local
// constants pool into the session-wide pool the emitted program shares
// (spec §3 "Constants pool" persists across submissions; a fresh parser.New
// call does not).
func (b *builder) genLiteral(n *ast.Literal) error {
	v, t := b.sourcePool.Get(n.Index)
	idx := b.program.Constants.Add(v, t)
	b.emit(ir.OpLoadConst, int32(idx), 0)
	return nil
}

// loadVariable resolves name against the current frame scope, falling back
// to the session globals (spec §3 "Variable references look up the current
// scope chain and return the global array index otherwise"). clone selects
// between a cloned, independently-owned load and a bare reference load
// (used by receiver/assignment-target paths that never materialize an
// extra owned copy).
func (b *builder) loadVariable(name string, clone bool) error {
	if slot, ok := b.lookupLocal(name); ok {
		if clone {
			b.emit(ir.OpLoadLocal, slot, 0)
		} else {
			b.emit(ir.OpLoadLocalRef, slot, 0)
		}
		return nil
	}
	slot, ok := b.checker.Globals().Lookup(name)
	if !ok {
		return fmt.Errorf("codegen: undeclared variable %q reached codegen", name)
	}
	if clone {
		b.emit(ir.OpLoadGlobal, int32(slot.Index), 0)
	} else {
		b.emit(ir.OpLoadGlobalRef, int32(slot.Index), 0)
	}
	return nil
}

// genReceiverExpr pushes e by reference wherever that is possible without
// changing observable behavior: a bare variable or a field chain is loaded
// without cloning, since the caller (a method-call receiver, or the prefix
// of an assignment target) never outlives the statement that pushed it.
// Anything else already produces a fresh, uniquely-owned temporary, which is
// safe to treat as a reference too.
func (b *builder) genReceiverExpr(e ast.Expr) error {
	switch n := e.(type) {
	case *ast.Variable:
		return b.loadVariable(n.Name, false)
	case *ast.FieldChain:
		return b.genFieldChainRefTo(n.Receiver, n.Fields)
	default:
		return b.genExpr(e)
	}
}

// genFieldChainRefTo loads receiver by reference, then walks every field in
// fields by reference, with no clone at any hop (spec §4.3 "Field access
// chain"). It is the shared core of method-call receiver resolution and
// field-assignment target resolution.
func (b *builder) genFieldChainRefTo(receiver ast.Expr, fields []string) error {
	if err := b.genReceiverExpr(receiver); err != nil {
		return err
	}
	t, err := b.resolveChainType(receiver, nil)
	if err != nil {
		return err
	}
	for _, f := range fields {
		idx, ft, ok := typeinfer.ResolveField(b.checker.Cache(), t, f)
		if !ok {
			return fmt.Errorf("codegen: field %q not found on %s", f, types.DisplayName(t))
		}
		b.emit(ir.OpGetFieldRef, int32(idx), 0)
		t = ft
	}
	return nil
}

// genFieldChain emits a value-producing field chain (spec §4.3): every hop
// but the last is a reference walk, and the last hop clones so the result is
// independently owned.
func (b *builder) genFieldChain(n *ast.FieldChain) error {
	if len(n.Fields) == 0 {
		return b.genExpr(n.Receiver)
	}
	if err := b.genFieldChainRefTo(n.Receiver, n.Fields[:len(n.Fields)-1]); err != nil {
		return err
	}
	t, err := b.resolveChainType(n.Receiver, n.Fields[:len(n.Fields)-1])
	if err != nil {
		return err
	}
	last := n.Fields[len(n.Fields)-1]
	idx, _, ok := typeinfer.ResolveField(b.checker.Cache(), t, last)
	if !ok {
		return fmt.Errorf("codegen: field %q not found on %s", last, types.DisplayName(t))
	}
	b.emit(ir.OpGetFieldClone, int32(idx), 0)
	return nil
}

// resolveChainType recomputes the type of a receiver after walking through
// fields, the same way typeinfer.resolveFieldChainType does. It is needed
// because typeinfer.Info only records a type per expression AST node, not
// per intermediate field-chain hop, so the generator re-derives each hop's
// type using the identical ResolveField calls the type pass made.
func (b *builder) resolveChainType(receiver ast.Expr, fields []string) (types.Type, error) {
	t := b.info.TypeOf(receiver)
	for _, f := range fields {
		_, ft, ok := typeinfer.ResolveField(b.checker.Cache(), t, f)
		if !ok {
			return types.Type{}, fmt.Errorf("codegen: field %q not found on %s", f, types.DisplayName(t))
		}
		t = ft
	}
	return t, nil
}

// genCall lowers a bare `name(args...)` call: a class construction or a
// monomorphic function call (spec §4.2 "Class construction"/"Function
// call").
func (b *builder) genCall(n *ast.CallExpr) error {
	if _, ok := b.checker.Cache().Class(n.Name); ok {
		for _, a := range n.Args {
			if err := b.genExpr(a); err != nil {
				return err
			}
		}
		classIdx := b.program.InternClassName(n.Name)
		b.emit(ir.OpMakeInstance, classIdx, int32(len(n.Args)))
		return nil
	}

	argTypes := make([]types.Type, len(n.Args))
	for i, a := range n.Args {
		if err := b.genExpr(a); err != nil {
			return err
		}
		argTypes[i] = b.info.TypeOf(a)
	}
	mangled, err := cache.Mangle(n.Name, argTypes)
	if err != nil {
		return fmt.Errorf("codegen: mangling %s: %w", n.Name, err)
	}
	target := b.program.InternCallTarget(mangled)
	b.emit(ir.OpCall, target, 0)
	return nil
}

// genMethodCall lowers `receiver.f1.f2.method(args...)` (spec §4.2 "Method
// call"): the receiver chain is pushed by reference (a method may mutate
// its receiver through `this`), followed by the arguments, then a call to
// the mangled instantiation keyed by (receiverType, argTypes...).
func (b *builder) genMethodCall(n *ast.MethodCallExpr) error {
	if err := b.genFieldChainRefTo(n.Receiver, n.Fields); err != nil {
		return err
	}
	receiverType, err := b.resolveChainType(n.Receiver, n.Fields)
	if err != nil {
		return err
	}
	inst, ok := receiverType.AsInstance()
	if !ok {
		return fmt.Errorf("codegen: method call receiver %s is not an instance", types.DisplayName(receiverType))
	}

	argTypes := make([]types.Type, len(n.Args))
	for i, a := range n.Args {
		if err := b.genExpr(a); err != nil {
			return err
		}
		argTypes[i] = b.info.TypeOf(a)
	}
	allTypes := append([]types.Type{receiverType}, argTypes...)
	mangled, err := cache.Mangle(inst.ClassName+"."+n.MethodName, allTypes)
	if err != nil {
		return fmt.Errorf("codegen: mangling %s.%s: %w", inst.ClassName, n.MethodName, err)
	}
	target := b.program.InternCallTarget(mangled)
	b.emit(ir.OpCall, target, 0)
	return nil
}

// genIndex lowers `list[idx]` (spec §4.3 "field-list index" variant): the
// list is loaded by reference (OpIndexClone never mutates or destroys it),
// the index is evaluated, and the element is cloned off.
func (b *builder) genIndex(n *ast.IndexExpr) error {
	if err := b.genReceiverExpr(n.List); err != nil {
		return err
	}
	if err := b.genExpr(n.Index); err != nil {
		return err
	}
	b.emit(ir.OpIndexClone, 0, 0)
	return nil
}

// genTypeConv lowers a conversion expression `T(e)` (spec §4.2 "Type
// conversion"). real()/imag() cannot route through the generic
// values.ToType path (it has no Complex source case for a Floating-erased
// target), so they get their own dedicated opcodes.
func (b *builder) genTypeConv(n *ast.TypeConvExpr) error {
	if err := b.genExpr(n.Arg); err != nil {
		return err
	}
	switch n.Target.Raw() {
	case types.Real:
		b.emit(ir.OpRealPart, 0, 0)
	case types.Imag:
		b.emit(ir.OpImagPart, 0, 0)
	default:
		srcKind := rawKindOf(b.info.TypeOf(n.Arg))
		b.emit(ir.OpTypeConv, ir.KindOperand(n.Target), ir.KindOperand(srcKind))
	}
	return nil
}

// genListLiteral lowers `[e1, e2, ...]` (spec §3 list values): elements are
// evaluated left to right, each already an owned value OpMakeList simply
// adopts.
func (b *builder) genListLiteral(n *ast.ListLiteral) error {
	for _, el := range n.Elements {
		if err := b.genExpr(el); err != nil {
			return err
		}
	}
	b.emit(ir.OpMakeList, int32(len(n.Elements)), 0)
	return nil
}

// genOperator dispatches a unary, left/right-assoc, or boolean-chain
// operator application (spec §4.2 table, §4.3 "Boolean chains").
func (b *builder) genOperator(n *ast.OperatorExpr) error {
	switch n.Assoc {
	case ast.UnaryAssoc:
		if err := b.genExpr(n.Operands[0]); err != nil {
			return err
		}
		k := rawKindOf(b.info.TypeOf(n.Operands[0]))
		b.emit(ir.OpUnary, ir.UnaryOpOperand(n.UnaryOp), ir.KindOperand(k))
		return nil

	case ast.BooleanAssoc:
		return b.genBooleanChain(n)

	default: // LeftAssoc, RightAssoc
		return b.genFoldChain(n)
	}
}

// genFoldChain handles both LeftAssoc (a+b+c, evaluated left to right) and
// RightAssoc (a**b, exactly two operands) the same way: push the first
// operand, then for each subsequent operand, promote the running
// accumulator already on top of the stack, push and promote the next
// operand, combine, and track the new accumulator Kind purely at compile
// time (the stack never holds more than the two values about to combine).
func (b *builder) genFoldChain(n *ast.OperatorExpr) error {
	if err := b.genExpr(n.Operands[0]); err != nil {
		return err
	}
	accKind := rawKindOf(b.info.TypeOf(n.Operands[0]))
	for i, op := range n.Ops {
		right := n.Operands[i+1]
		rightKind := rawKindOf(b.info.TypeOf(right))
		combined := combinedKind(accKind, rightKind)

		b.emitPromotion(accKind, combined)
		if err := b.genExpr(right); err != nil {
			return err
		}
		b.emitPromotion(rightKind, combined)

		b.emit(ir.OpBinary, ir.BinaryOpOperand(op), ir.KindOperand(combined))
		accKind = types.BinaryResultKind(combined, op)
	}
	return nil
}

// genBooleanChain lowers a pairwise chain like `a < b < c` (spec §4.3
// "Boolean chains"): every operand is evaluated exactly once and shared
// between its two adjacent comparisons. Since the VM has no stack-dup
// opcode, each operand is stashed in its own scratch frame slot instead; an
// accumulator slot seeded to true is AND-reduced with each pairwise
// comparison's result.
func (b *builder) genBooleanChain(n *ast.OperatorExpr) error {
	operandSlots := make([]int32, len(n.Operands))
	operandKinds := make([]types.Kind, len(n.Operands))
	for i, operand := range n.Operands {
		if err := b.genExpr(operand); err != nil {
			return err
		}
		operandKinds[i] = rawKindOf(b.info.TypeOf(operand))
		slot := b.allocTemp()
		b.emit(ir.OpStoreInitLocal, slot, 0)
		operandSlots[i] = slot
	}

	trueIdx := b.program.Constants.Add(trueValue(), types.BooleanType)
	accSlot := b.allocTemp()
	b.emit(ir.OpLoadConst, int32(trueIdx), 0)
	b.emit(ir.OpStoreInitLocal, accSlot, 0)

	for i, op := range n.Ops {
		lk, rk := operandKinds[i], operandKinds[i+1]
		combined := combinedKind(lk, rk)

		b.emit(ir.OpLoadLocal, operandSlots[i], 0)
		b.emitPromotion(lk, combined)
		b.emit(ir.OpLoadLocal, operandSlots[i+1], 0)
		b.emitPromotion(rk, combined)
		b.emit(ir.OpBinary, ir.BinaryOpOperand(op), ir.KindOperand(combined))

		b.emit(ir.OpLoadLocal, accSlot, 0)
		b.emit(ir.OpBinary, ir.BinaryOpOperand(types.BitAnd), ir.KindOperand(types.Boolean))
		b.emit(ir.OpStoreAssignLocal, accSlot, 0)
	}

	b.emit(ir.OpLoadLocal, accSlot, 0)
	b.emit(ir.OpDestroySlot, accSlot, 0)
	for i := len(operandSlots) - 1; i >= 0; i-- {
		b.emit(ir.OpDestroySlot, operandSlots[i], 0)
	}
	return nil
}
