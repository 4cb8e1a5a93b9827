package typeinfer

import (
	"github.com/abacilang/abaci/internal/ast"
	"github.com/abacilang/abaci/internal/cache"
	"github.com/abacilang/abaci/internal/errs"
	"github.com/abacilang/abaci/internal/symbols"
	"github.com/abacilang/abaci/internal/types"
)

// typeCallExpr resolves a bare `name(args...)` call: either a class
// construction (spec §4.2 "Class construction") or a function call driving
// monomorphic instantiation (spec §4.2 "Function call").
func (c *Checker) typeCallExpr(e *ast.CallExpr, scope *symbols.LocalScope, info *Info) (types.Type, error) {
	argTypes, err := c.exprTypes(e.Args, scope, info)
	if err != nil {
		return types.Type{}, err
	}
	if ct, ok := c.cache.Class(e.Name); ok {
		if len(ct.Fields) != len(argTypes) {
			return types.Type{}, c.errf(errs.WrongArgs, e.P, "class %s expects %d field value(s), got %d", e.Name, len(ct.Fields), len(argTypes))
		}
		fieldTypes := make([]types.Type, len(argTypes))
		for i, t := range argTypes {
			fieldTypes[i] = types.RemoveConst(t)
		}
		return types.NewInstanceType(e.Name, fieldTypes), nil
	}
	if ft, ok := c.cache.Function(e.Name); ok {
		return c.instantiateFunction(ft, argTypes, e.P)
	}
	return types.Type{}, c.errf(errs.CallableNotExist, e.P, "no function or class named %q", e.Name)
}

// typeMethodCall resolves `receiver.f1.f2.method(args...)` (spec §4.2
// "Method call"): the field chain up to the method name must bottom out on
// an Instance, whose class template must declare the named method.
func (c *Checker) typeMethodCall(e *ast.MethodCallExpr, scope *symbols.LocalScope, info *Info) (types.Type, error) {
	receiverType, err := c.resolveFieldChainType(e.Receiver, e.Fields, scope, info, e.P)
	if err != nil {
		return types.Type{}, err
	}
	inst, ok := receiverType.AsInstance()
	if !ok {
		return types.Type{}, c.errf(errs.BadObject, e.P, "method call on non-instance type %s", types.DisplayName(receiverType))
	}
	ct, ok := c.cache.Class(inst.ClassName)
	if !ok {
		return types.Type{}, c.internalErrorf(e.P, "typeinfer: class template %q missing for instantiated type", inst.ClassName)
	}
	methodDecl, ok := ct.LookupMethod(e.MethodName)
	if !ok {
		return types.Type{}, c.errf(errs.CallableNotExist, e.P, "class %s has no method %q", inst.ClassName, e.MethodName)
	}
	argTypes, err := c.exprTypes(e.Args, scope, info)
	if err != nil {
		return types.Type{}, err
	}
	return c.instantiateMethod(inst.ClassName, e.MethodName, methodDecl, receiverType, argTypes, e.P)
}

func (c *Checker) exprTypes(exprs []ast.Expr, scope *symbols.LocalScope, info *Info) ([]types.Type, error) {
	out := make([]types.Type, len(exprs))
	for i, a := range exprs {
		t, err := c.exprType(a, scope, info)
		if err != nil {
			return nil, err
		}
		out[i] = t
	}
	return out, nil
}

// instantiateFunction drives the placeholder-then-resolve instantiation
// protocol (spec §4.2 "Function call" steps 1-4): mangle the call-site
// signature, short-circuit on an existing (possibly still-placeholder)
// entry to break recursion, otherwise check the body in a fresh parameter
// scope and resolve the placeholder to the observed return type.
func (c *Checker) instantiateFunction(ft *cache.FunctionTemplate, argTypes []types.Type, pos ast.Position) (types.Type, error) {
	if len(ft.Params) != len(argTypes) {
		return types.Type{}, c.errf(errs.WrongArgs, pos, "function %s expects %d argument(s), got %d", ft.Name, len(ft.Params), len(argTypes))
	}
	mangled, err := cache.Mangle(ft.Name, argTypes)
	if err != nil {
		return types.Type{}, c.internalErrorf(pos, "mangling %s: %s", ft.Name, err.Error())
	}
	if rt, ok := c.cache.Instantiated(mangled); ok {
		return rt, nil
	}
	c.cache.BeginInstantiation(mangled)

	fnScope := symbols.NewLocalScope(nil)
	for i, p := range ft.Params {
		if _, err := fnScope.Declare(p.Name, types.AddConst(types.RemoveConst(argTypes[i]))); err != nil {
			return types.Type{}, c.internalErrorf(p.P, "declaring parameter %s: %s", p.Name, err.Error())
		}
	}
	fs := &funcState{inFunction: true}
	bodyInfo := newInfo()
	if err := c.checkStmtList(ft.Body, fnScope, fs, bodyInfo, false); err != nil {
		return types.Type{}, err
	}
	returnType := types.NoneType
	if fs.returnType != nil {
		returnType = *fs.returnType
	}
	c.cache.ResolveInstantiation(mangled, returnType)
	c.instInfo[mangled] = bodyInfo
	paramTypes := make([]types.Type, len(ft.Params))
	paramNames := make([]string, len(ft.Params))
	for i, p := range ft.Params {
		paramNames[i] = p.Name
		paramTypes[i] = types.AddConst(types.RemoveConst(argTypes[i]))
	}
	c.instSites[mangled] = &Site{
		FunctionName: ft.Name, Body: ft.Body,
		ParamNames: paramNames, ParamTypes: paramTypes,
		ReturnType: returnType,
	}
	return returnType, nil
}

// instantiateMethod instantiates a method body the same way, but with an
// extra leading binding named "this" bound (as a constant) to the receiver
// type (spec §4.5 step 3 names the VM-level slot `_this`; the method body's
// surface syntax refers to it explicitly as `this.field`, decided here since
// the distilled spec leaves the exact implicit-vs-explicit receiver syntax
// an open question).
func (c *Checker) instantiateMethod(className, methodName string, methodDecl *ast.FunctionDecl, receiverType types.Type, argTypes []types.Type, pos ast.Position) (types.Type, error) {
	if len(methodDecl.Params) != len(argTypes) {
		return types.Type{}, c.errf(errs.WrongArgs, pos, "method %s.%s expects %d argument(s), got %d", className, methodName, len(methodDecl.Params), len(argTypes))
	}
	allTypes := append([]types.Type{receiverType}, argTypes...)
	mangled, err := cache.Mangle(className+"."+methodName, allTypes)
	if err != nil {
		return types.Type{}, c.internalErrorf(pos, "mangling %s.%s: %s", className, methodName, err.Error())
	}
	if rt, ok := c.cache.Instantiated(mangled); ok {
		return rt, nil
	}
	c.cache.BeginInstantiation(mangled)

	fnScope := symbols.NewLocalScope(nil)
	if _, err := fnScope.Declare("this", types.AddConst(types.RemoveConst(receiverType))); err != nil {
		return types.Type{}, c.internalErrorf(pos, "declaring receiver binding: %s", err.Error())
	}
	for i, p := range methodDecl.Params {
		if _, err := fnScope.Declare(p.Name, types.AddConst(types.RemoveConst(argTypes[i]))); err != nil {
			return types.Type{}, c.internalErrorf(p.P, "declaring parameter %s: %s", p.Name, err.Error())
		}
	}
	fs := &funcState{inFunction: true}
	bodyInfo := newInfo()
	if err := c.checkStmtList(methodDecl.Body, fnScope, fs, bodyInfo, false); err != nil {
		return types.Type{}, err
	}
	returnType := types.NoneType
	if fs.returnType != nil {
		returnType = *fs.returnType
	}
	c.cache.ResolveInstantiation(mangled, returnType)
	c.instInfo[mangled] = bodyInfo
	paramTypes := make([]types.Type, len(methodDecl.Params))
	paramNames := make([]string, len(methodDecl.Params))
	for i, p := range methodDecl.Params {
		paramNames[i] = p.Name
		paramTypes[i] = types.AddConst(types.RemoveConst(argTypes[i]))
	}
	c.instSites[mangled] = &Site{
		IsMethod: true, ClassName: className, FunctionName: methodName, Body: methodDecl.Body,
		ParamNames: paramNames, ParamTypes: paramTypes,
		ReceiverType: types.AddConst(types.RemoveConst(receiverType)),
		ReturnType:   returnType,
	}
	return returnType, nil
}
