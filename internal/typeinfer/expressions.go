package typeinfer

import (
	"github.com/abacilang/abaci/internal/ast"
	"github.com/abacilang/abaci/internal/cache"
	"github.com/abacilang/abaci/internal/errs"
	"github.com/abacilang/abaci/internal/symbols"
	"github.com/abacilang/abaci/internal/types"
)

// exprType is the expression evaluator half of the two cooperating walkers
// (spec §4.2): it yields a types.Type for e, recording it in info so the
// code generator can look the decision back up rather than recomputing it.
func (c *Checker) exprType(e ast.Expr, scope *symbols.LocalScope, info *Info) (types.Type, error) {
	t, err := c.exprTypeUncached(e, scope, info)
	if err != nil {
		return types.Type{}, err
	}
	return info.record(e, t), nil
}

func (c *Checker) exprTypeUncached(e ast.Expr, scope *symbols.LocalScope, info *Info) (types.Type, error) {
	switch n := e.(type) {
	case *ast.Literal:
		return types.Scalar(n.Kind), nil
	case *ast.Variable:
		slot, ok := c.lookupSlot(scope, n.Name)
		if !ok {
			return types.Type{}, c.errf(errs.VariableNotExist, n.P, "undeclared variable %q", n.Name)
		}
		return types.RemoveConst(slot.Type), nil
	case *ast.OperatorExpr:
		return c.typeOperator(n, scope, info)
	case *ast.CallExpr:
		return c.typeCallExpr(n, scope, info)
	case *ast.FieldChain:
		return c.resolveFieldChainType(n.Receiver, n.Fields, scope, info, n.P)
	case *ast.MethodCallExpr:
		return c.typeMethodCall(n, scope, info)
	case *ast.InputExpr:
		return types.StringType, nil
	case *ast.TypeConvExpr:
		return c.typeConv(n, scope, info)
	case *ast.ListLiteral:
		return c.typeListLiteral(n, scope, info)
	case *ast.IndexExpr:
		return c.typeIndex(n, scope, info)
	default:
		return types.Type{}, c.internalErrorf(e.Pos(), "typeinfer: unhandled expression node %T", e)
	}
}

func (c *Checker) typeOperator(n *ast.OperatorExpr, scope *symbols.LocalScope, info *Info) (types.Type, error) {
	switch n.Assoc {
	case ast.UnaryAssoc:
		operand, err := c.exprType(n.Operands[0], scope, info)
		if err != nil {
			return types.Type{}, err
		}
		k := types.KindOf(operand).Raw()
		if !types.UnaryAllowed(k, n.UnaryOp) {
			return types.Type{}, c.errf(errs.BadOperatorForType, n.P, "operator not defined for type %s", types.DisplayName(operand))
		}
		return types.Scalar(types.UnaryResultKind(k, n.UnaryOp)), nil

	case ast.RightAssoc:
		left, err := c.exprType(n.Operands[0], scope, info)
		if err != nil {
			return types.Type{}, err
		}
		right, err := c.exprType(n.Operands[1], scope, info)
		if err != nil {
			return types.Type{}, err
		}
		return c.combineBinary(left, right, n.Ops[0], n.P)

	case ast.BooleanAssoc:
		first, err := c.exprType(n.Operands[0], scope, info)
		if err != nil {
			return types.Type{}, err
		}
		prev := first
		for i, op := range n.Ops {
			next, err := c.exprType(n.Operands[i+1], scope, info)
			if err != nil {
				return types.Type{}, err
			}
			if _, err := c.combineBinary(prev, next, op, n.P); err != nil {
				return types.Type{}, err
			}
			prev = next
		}
		return types.BooleanType, nil

	default: // LeftAssoc
		acc, err := c.exprType(n.Operands[0], scope, info)
		if err != nil {
			return types.Type{}, err
		}
		for i, op := range n.Ops {
			next, err := c.exprType(n.Operands[i+1], scope, info)
			if err != nil {
				return types.Type{}, err
			}
			acc, err = c.combineBinary(acc, next, op, n.P)
			if err != nil {
				return types.Type{}, err
			}
		}
		return acc, nil
	}
}

// combineBinary validates and types a single binary operator application
// (spec §4.2 table, §3 promotion lattice): composites and strings only
// participate reflexively; scalars promote toward the lattice's higher
// side before the operator-validity table is consulted.
func (c *Checker) combineBinary(l, r types.Type, op types.BinaryOperator, pos ast.Position) (types.Type, error) {
	if l.IsComposite() || r.IsComposite() {
		if !types.Equal(l, r) {
			return types.Type{}, c.errf(errs.BadOperatorForType, pos, "operand types %s and %s are not identical", types.DisplayName(l), types.DisplayName(r))
		}
		lk := types.KindOf(l).Raw()
		if !types.BinaryAllowed(lk, op) {
			return types.Type{}, c.errf(errs.BadOperatorForType, pos, "operator not defined for type %s", types.DisplayName(l))
		}
		return types.RemoveConst(l), nil
	}
	lk, rk := types.KindOf(l).Raw(), types.KindOf(r).Raw()
	if lk == types.String || rk == types.String {
		if lk != rk {
			return types.Type{}, c.errf(errs.BadOperatorForType, pos, "cannot combine %s with %s", types.DisplayName(l), types.DisplayName(r))
		}
		if !types.BinaryAllowed(types.String, op) {
			return types.Type{}, c.errf(errs.BadOperatorForType, pos, "operator not defined for string")
		}
		return types.Scalar(types.BinaryResultKind(types.String, op)), nil
	}
	promoted, ok := types.Promote(lk, rk)
	if !ok {
		return types.Type{}, c.errf(errs.BadOperatorForType, pos, "cannot combine %s with %s", types.DisplayName(l), types.DisplayName(r))
	}
	if !types.BinaryAllowed(promoted, op) {
		return types.Type{}, c.errf(errs.BadOperatorForType, pos, "operator not defined for type %s", promoted)
	}
	return types.Scalar(types.BinaryResultKind(promoted, op)), nil
}

func (c *Checker) typeConv(n *ast.TypeConvExpr, scope *symbols.LocalScope, info *Info) (types.Type, error) {
	argType, err := c.exprType(n.Arg, scope, info)
	if err != nil {
		return types.Type{}, err
	}
	if _, ok := types.ValidConversions[n.Target.Raw()]; !ok {
		return types.Type{}, c.errf(errs.BadConvTarget, n.P, "invalid conversion target %s", n.Target.Raw())
	}
	if !types.CanConvert(n.Target, types.KindOf(argType)) {
		return types.Type{}, c.errf(errs.BadConvType, n.P, "cannot convert %s to %s", types.DisplayName(argType), n.Target.Raw())
	}
	return types.Scalar(types.ConversionResultKind(n.Target)), nil
}

func (c *Checker) typeListLiteral(n *ast.ListLiteral, scope *symbols.LocalScope, info *Info) (types.Type, error) {
	if len(n.Elements) == 0 {
		if !n.HasHint {
			return types.Type{}, c.errf(errs.EmptyListNeedsType, n.P, "empty list literal needs an explicit element type, e.g. [int]")
		}
		return types.NewListType(n.ElementTypeHint), nil
	}
	elemType, err := c.exprType(n.Elements[0], scope, info)
	if err != nil {
		return types.Type{}, err
	}
	elemType = types.RemoveConst(elemType)
	for _, el := range n.Elements[1:] {
		t, err := c.exprType(el, scope, info)
		if err != nil {
			return types.Type{}, err
		}
		if !types.Equal(t, elemType) {
			return types.Type{}, c.errf(errs.ListTypeMismatch, n.P, "list element type %s does not match %s", types.DisplayName(t), types.DisplayName(elemType))
		}
	}
	return types.NewListType(elemType), nil
}

func (c *Checker) typeIndex(n *ast.IndexExpr, scope *symbols.LocalScope, info *Info) (types.Type, error) {
	listType, err := c.exprType(n.List, scope, info)
	if err != nil {
		return types.Type{}, err
	}
	lt, ok := listType.AsList()
	if !ok {
		return types.Type{}, c.errf(errs.BadObject, n.P, "cannot index non-list type %s", types.DisplayName(listType))
	}
	idxType, err := c.exprType(n.Index, scope, info)
	if err != nil {
		return types.Type{}, err
	}
	if types.KindOf(idxType).Raw() != types.Integer {
		return types.Type{}, c.errf(errs.IndexNotInt, n.P, "list index must be an integer, got %s", types.DisplayName(idxType))
	}
	return lt.ElementType, nil
}

// resolveFieldChainType walks a receiver expression through a sequence of
// plain member accesses (spec §4.2 "Method call": "the receiver's chain of
// member accesses is resolved left-to-right; each member must be an
// Instance with the named field"). It is exported-shaped (callable from the
// code generator) via ResolveField below, which repeats the identical
// index/type resolution the type pass already performed so the generator
// never has to thread an extra side table for field indices.
func (c *Checker) resolveFieldChainType(receiver ast.Expr, fields []string, scope *symbols.LocalScope, info *Info, pos ast.Position) (types.Type, error) {
	t, err := c.exprType(receiver, scope, info)
	if err != nil {
		return types.Type{}, err
	}
	for _, f := range fields {
		idx, ft, err := c.fieldLookup(t, f, pos)
		if err != nil {
			return types.Type{}, err
		}
		_ = idx
		t = ft
	}
	return t, nil
}

func (c *Checker) fieldLookup(receiverType types.Type, fieldName string, pos ast.Position) (int, types.Type, error) {
	inst, ok := receiverType.AsInstance()
	if !ok {
		return 0, types.Type{}, c.errf(errs.BadObject, pos, "field access on non-instance type %s", types.DisplayName(receiverType))
	}
	ct, ok := c.cache.Class(inst.ClassName)
	if !ok {
		return 0, types.Type{}, c.internalErrorf(pos, "typeinfer: class template %q missing for instantiated type", inst.ClassName)
	}
	idx := ct.FieldIndex(fieldName)
	if idx < 0 || idx >= len(inst.FieldTypes) {
		return 0, types.Type{}, c.errf(errs.BadObject, pos, "class %s has no field %q", inst.ClassName, fieldName)
	}
	return idx, inst.FieldTypes[idx], nil
}

// ResolveField is the code generator's entry point into the same field
// resolution rule the type pass uses, so field-chain lowering (spec §4.3
// "Field access chain") never needs a disjoint implementation that could
// drift from what the type pass already validated.
func ResolveField(c *cache.Cache, receiverType types.Type, fieldName string) (int, types.Type, bool) {
	inst, ok := receiverType.AsInstance()
	if !ok {
		return 0, types.Type{}, false
	}
	ct, ok := c.Class(inst.ClassName)
	if !ok {
		return 0, types.Type{}, false
	}
	idx := ct.FieldIndex(fieldName)
	if idx < 0 || idx >= len(inst.FieldTypes) {
		return 0, types.Type{}, false
	}
	return idx, inst.FieldTypes[idx], true
}
