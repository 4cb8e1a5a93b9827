package typeinfer

import (
	"github.com/abacilang/abaci/internal/ast"
	"github.com/abacilang/abaci/internal/errs"
	"github.com/abacilang/abaci/internal/symbols"
	"github.com/abacilang/abaci/internal/types"
)

// checkStmtList type-checks one block's statements in order against one
// LocalScope (nil at the program's own top level, where declarations land
// in globals instead; spec §4.4 "every block, including the top level, has
// its own scope"). topLevel gates the two forms only legal at a
// submission's outermost level: function/class declarations (already
// pre-registered by CheckProgram) and bare re-declaration of globals across
// submissions.
func (c *Checker) checkStmtList(stmts ast.StmtList, scope *symbols.LocalScope, fs *funcState, info *Info, topLevel bool) error {
	for idx, s := range stmts {
		isLast := idx == len(stmts)-1
		if err := c.checkStmt(s, scope, fs, info, topLevel, isLast); err != nil {
			return err
		}
	}
	return nil
}

func (c *Checker) checkStmt(s ast.Stmt, scope *symbols.LocalScope, fs *funcState, info *Info, topLevel, isLast bool) error {
	switch n := s.(type) {
	case *ast.PrintStmt:
		for _, it := range n.Items {
			if _, err := c.exprType(it, scope, info); err != nil {
				return err
			}
		}
		return nil

	case *ast.InitStmt:
		return c.checkInit(n, scope, info)

	case *ast.AssignStmt:
		return c.checkAssign(n, scope, info)

	case *ast.FieldAssignStmt:
		return c.checkFieldAssign(n, scope, info)

	case *ast.IndexAssignStmt:
		return c.checkIndexAssign(n, scope, info)

	case *ast.IfStmt:
		if _, err := c.exprType(n.Cond, scope, info); err != nil {
			return err
		}
		thenScope := symbols.NewLocalScope(scope)
		if err := c.checkStmtList(n.Then, thenScope, fs, info, false); err != nil {
			return err
		}
		if n.Else != nil {
			elseScope := symbols.NewLocalScope(scope)
			if err := c.checkStmtList(n.Else, elseScope, fs, info, false); err != nil {
				return err
			}
		}
		return nil

	case *ast.WhileStmt:
		if _, err := c.exprType(n.Cond, scope, info); err != nil {
			return err
		}
		bodyScope := symbols.NewLocalScope(scope)
		return c.checkStmtList(n.Body, bodyScope, fs, info, false)

	case *ast.RepeatStmt:
		bodyScope := symbols.NewLocalScope(scope)
		if err := c.checkStmtList(n.Body, bodyScope, fs, info, false); err != nil {
			return err
		}
		// the until-condition can still see the body's bindings (spec §4.4
		// "repeat...until" evaluates its condition after the body executes,
		// in the body's own scope).
		_, err := c.exprType(n.Cond, bodyScope, info)
		return err

	case *ast.CaseStmt:
		return c.checkCase(n, scope, fs, info)

	case *ast.FunctionDecl:
		if !topLevel {
			return c.errf(errs.FunctionTopLevel, n.P, "function declarations are only allowed at the top level")
		}
		return nil // pre-registered by CheckProgram; bodies check lazily on call

	case *ast.ClassDecl:
		if !topLevel {
			return c.errf(errs.FunctionTopLevel, n.P, "class declarations are only allowed at the top level")
		}
		return nil // pre-registered by CheckProgram

	case *ast.ReturnStmt:
		return c.checkReturn(n, scope, fs, info, isLast)

	case *ast.ExprStmt:
		_, err := c.exprType(n.Expr, scope, info)
		return err

	default:
		return c.internalErrorf(s.Pos(), "typeinfer: unhandled statement node %T", s)
	}
}

func (c *Checker) checkInit(n *ast.InitStmt, scope *symbols.LocalScope, info *Info) error {
	valueType, err := c.exprType(n.Value, scope, info)
	if err != nil {
		return err
	}
	declType := types.RemoveConst(valueType)
	if n.Constant {
		declType = types.AddConst(declType)
	}
	if _, err := c.declareVar(scope, n.Name, declType); err != nil {
		if _, ok := err.(*symbols.ErrVariableExists); ok {
			return c.errf(errs.VariableExists, n.P, "variable %q already declared", n.Name)
		}
		return c.internalErrorf(n.P, "declaring %s: %s", n.Name, err.Error())
	}
	return nil
}

func (c *Checker) checkAssign(n *ast.AssignStmt, scope *symbols.LocalScope, info *Info) error {
	slot, ok := c.lookupSlot(scope, n.Name)
	if !ok {
		return c.errf(errs.VariableNotExist, n.P, "undeclared variable %q", n.Name)
	}
	if types.IsConstant(slot.Type) {
		return c.errf(errs.NoConstantAssign, n.P, "cannot assign to constant %q", n.Name)
	}
	valueType, err := c.exprType(n.Value, scope, info)
	if err != nil {
		return err
	}
	if !types.Equal(valueType, slot.Type) {
		return c.errf(errs.VariableType, n.P, "cannot assign %s to %q of type %s", types.DisplayName(valueType), n.Name, types.DisplayName(slot.Type))
	}
	return nil
}

func (c *Checker) checkFieldAssign(n *ast.FieldAssignStmt, scope *symbols.LocalScope, info *Info) error {
	receiverType, err := c.resolveFieldChainType(n.Receiver, n.Fields[:len(n.Fields)-1], scope, info, n.P)
	if err != nil {
		return err
	}
	lastField := n.Fields[len(n.Fields)-1]
	_, fieldType, err := c.fieldLookup(receiverType, lastField, n.P)
	if err != nil {
		return err
	}
	valueType, err := c.exprType(n.Value, scope, info)
	if err != nil {
		return err
	}
	if !types.Equal(valueType, fieldType) {
		return c.errf(errs.VariableType, n.P, "cannot assign %s to field %q of type %s", types.DisplayName(valueType), lastField, types.DisplayName(fieldType))
	}
	return nil
}

func (c *Checker) checkIndexAssign(n *ast.IndexAssignStmt, scope *symbols.LocalScope, info *Info) error {
	listType, err := c.exprType(n.List, scope, info)
	if err != nil {
		return err
	}
	lt, ok := listType.AsList()
	if !ok {
		return c.errf(errs.BadObject, n.P, "cannot index non-list type %s", types.DisplayName(listType))
	}
	idxType, err := c.exprType(n.Index, scope, info)
	if err != nil {
		return err
	}
	if types.KindOf(idxType).Raw() != types.Integer {
		return c.errf(errs.IndexNotInt, n.P, "list index must be an integer, got %s", types.DisplayName(idxType))
	}
	valueType, err := c.exprType(n.Value, scope, info)
	if err != nil {
		return err
	}
	if !types.Equal(valueType, lt.ElementType) {
		return c.errf(errs.ListAssignMismatch, n.P, "cannot assign %s into list of %s", types.DisplayName(valueType), types.DisplayName(lt.ElementType))
	}
	return nil
}

func (c *Checker) checkCase(n *ast.CaseStmt, scope *symbols.LocalScope, fs *funcState, info *Info) error {
	scrutineeType, err := c.exprType(n.Scrutinee, scope, info)
	if err != nil {
		return err
	}
	for _, arm := range n.Arms {
		whenType, err := c.exprType(arm.When, scope, info)
		if err != nil {
			return err
		}
		if _, err := c.combineBinary(scrutineeType, whenType, types.Eq, n.P); err != nil {
			return err
		}
		armScope := symbols.NewLocalScope(scope)
		if err := c.checkStmtList(arm.Body, armScope, fs, info, false); err != nil {
			return err
		}
	}
	if n.Else != nil {
		elseScope := symbols.NewLocalScope(scope)
		if err := c.checkStmtList(n.Else, elseScope, fs, info, false); err != nil {
			return err
		}
	}
	return nil
}

func (c *Checker) checkReturn(n *ast.ReturnStmt, scope *symbols.LocalScope, fs *funcState, info *Info, isLast bool) error {
	if !fs.inFunction {
		return c.errf(errs.ReturnOnlyInFunction, n.P, "return is only valid inside a function or method body")
	}
	if !isLast {
		return c.errf(errs.ReturnAtEnd, n.P, "return must be the last statement in its block")
	}
	returnType := types.NoneType
	if n.Value != nil {
		t, err := c.exprType(n.Value, scope, info)
		if err != nil {
			return err
		}
		returnType = types.RemoveConst(t)
	}
	if fs.returnType == nil {
		fs.returnType = &returnType
		return nil
	}
	if !types.Equal(*fs.returnType, returnType) {
		return c.errf(errs.FunctionTypeSet, n.P, "function returns both %s and %s", types.DisplayName(*fs.returnType), types.DisplayName(returnType))
	}
	return nil
}
