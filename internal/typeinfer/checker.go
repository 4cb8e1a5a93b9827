// Package typeinfer implements the two-pass type inference engine (spec §4
// "Compiler pipeline", step "Type pass"): it walks a parsed program once,
// assigning a types.Type to every expression, validating every statement,
// and driving the function/class cache's placeholder-then-resolve
// instantiation protocol for every call site it encounters.
//
// It is grounded on the teacher's internal/semantic package's single-pass,
// scope-threaded checker shape, generalized from DWScript's declared-type
// system to abaci's call-site monomorphization: there are no parameter-type
// annotations to read, so a call's argument types drive instantiation
// instead of being checked against a pre-declared signature.
package typeinfer

import (
	"fmt"

	"github.com/abacilang/abaci/internal/ast"
	"github.com/abacilang/abaci/internal/cache"
	"github.com/abacilang/abaci/internal/errs"
	"github.com/abacilang/abaci/internal/symbols"
	"github.com/abacilang/abaci/internal/types"
)

// Checker holds the state threaded through one program's (or one
// instantiation's) type pass: the shared cache, the process-wide globals,
// and the source text used to render errors.
type Checker struct {
	cache   *cache.Cache
	globals *symbols.GlobalScope
	source  string
	file    string

	programInfo *Info
	instInfo    map[string]*Info
	instSites   map[string]*Site
}

// Site records everything the code generator needs to recompile an
// instantiation's own parameter scope without re-deriving it from the
// mangled name (spec §4.1's mangling is one-way, so the call-site argument
// types that drove instantiation must be carried alongside the mangled key
// rather than decoded back out of it). IsMethod selects whether ParamNames
// is preceded by an implicit `this` binding of type ReceiverType.
type Site struct {
	IsMethod     bool
	ClassName    string // set when IsMethod
	FunctionName string // the bare function name, or the method name when IsMethod
	Body         ast.StmtList
	ParamNames   []string
	ParamTypes   []types.Type // const-qualified parameter types, in fnScope declaration order (receiver excluded)
	ReceiverType types.Type   // valid when IsMethod
	ReturnType   types.Type
}

// New returns a Checker wired against a shared cache and global scope. The
// same Checker is reused across an entire REPL/CLI session so that function
// instantiations and global declarations persist across submissions (spec
// §4.5 "the module has absorbed them").
func New(c *cache.Cache, globals *symbols.GlobalScope, source, file string) *Checker {
	return &Checker{
		cache: c, globals: globals, source: source, file: file,
		instInfo:  make(map[string]*Info),
		instSites: make(map[string]*Site),
	}
}

// ProgramInfo returns the expression-type side table for the most recent
// CheckProgram call (spec §4.5 step 4, emitting the top-level `program`
// function).
func (c *Checker) ProgramInfo() *Info { return c.programInfo }

// InstantiationInfo returns the expression-type side table recorded while
// resolving the named instantiation's return type (spec §4.2 "Function
// call" steps 1-4). The code generator consumes this directly instead of
// re-deriving types, so it is guaranteed to see the exact same instantiation
// set and typing decisions the type pass made (spec §2).
func (c *Checker) InstantiationInfo(mangled string) (*Info, bool) {
	info, ok := c.instInfo[mangled]
	return info, ok
}

// Site returns the recorded instantiation site for a mangled name, so the
// code generator can rebuild the same parameter scope and frame layout the
// type pass used to check the body (spec §2's invariant that codegen sees
// exactly what the type pass installed, extended to cover the scope shape
// itself, not just per-expression types).
func (c *Checker) Site(mangled string) (*Site, bool) {
	s, ok := c.instSites[mangled]
	return s, ok
}

// SetSource replaces the source text used to render error messages,
// letting one Checker be reused across submissions in a REPL/CLI session
// that each carry different source text (spec §4.5 "the module has
// absorbed them; next submission recomputes").
func (c *Checker) SetSource(source string) { c.source = source }

// Cache exposes the shared function/class cache, used by the code generator
// to enumerate pending instantiations and their templates (spec §4.5).
func (c *Checker) Cache() *cache.Cache { return c.cache }

// Globals exposes the process-wide global scope.
func (c *Checker) Globals() *symbols.GlobalScope { return c.globals }

// funcState tracks the in-progress return type of the function or method
// body currently being checked. It is created fresh per instantiation (not
// held on the Checker) so that a call nested inside one function's body
// does not let its own return tracking bleed into the caller's.
type funcState struct {
	inFunction bool
	returnType *types.Type
}

// CheckProgram type-checks one top-level submission: it pre-registers every
// top-level function/class declaration (so forward references resolve),
// then walks the full statement list against the process-wide globals
// (spec §4.5 step 2 "Run the type pass across the submission's statements").
func (c *Checker) CheckProgram(stmts ast.StmtList) error {
	for _, s := range stmts {
		switch d := s.(type) {
		case *ast.FunctionDecl:
			if _, err := c.cache.DeclareFunction(d); err != nil {
				return c.wrapRegisterErr(err, errs.FunctionExists, d.P)
			}
		case *ast.ClassDecl:
			if _, err := c.cache.DeclareClass(d); err != nil {
				return c.wrapRegisterErr(err, errs.ClassExists, d.P)
			}
		}
	}
	fs := &funcState{inFunction: false}
	info := newInfo()
	err := c.checkStmtList(stmts, nil, fs, info, true)
	c.programInfo = info
	return err
}

func (c *Checker) wrapRegisterErr(err error, kind errs.Kind, pos ast.Position) error {
	if _, ok := err.(*cache.ErrAlreadyExists); ok {
		return c.errf(kind, pos, "%s", err.Error())
	}
	return c.errf(errs.InternalInconsistency, pos, "%s", err.Error())
}

// declareVar declares name in scope, or in the globals when scope is nil
// (only the outermost program-level statement list passes a nil scope;
// every nested block, including one at top level, has its own LocalScope).
func (c *Checker) declareVar(scope *symbols.LocalScope, name string, t types.Type) (*symbols.Slot, error) {
	if scope != nil {
		return scope.Declare(name, t)
	}
	return c.globals.Declare(name, t)
}

// lookupSlot resolves name against the local scope chain first, falling
// back to globals (spec §3 "Variable references look up the current scope
// chain and return the ... declared type").
func (c *Checker) lookupSlot(scope *symbols.LocalScope, name string) (*symbols.Slot, bool) {
	if scope != nil {
		if slot, ok := scope.Lookup(name); ok {
			return slot, true
		}
	}
	return c.globals.Lookup(name)
}

func (c *Checker) errf(kind errs.Kind, pos ast.Position, format string, args ...interface{}) error {
	return errs.New(kind, errs.Position{Line: pos.Line, Column: pos.Column}, fmt.Sprintf(format, args...), c.source, c.file)
}

func (c *Checker) internalErrorf(pos ast.Position, format string, args ...interface{}) error {
	return c.errf(errs.InternalInconsistency, pos, format, args...)
}
