// Package cache implements the function/class cache (spec §3 "Function/
// class cache"): class templates, function templates, the monomorphic
// instantiation table the type pass and code generator share, and the
// optional native-function loader. It is the only channel the type pass and
// the code generator communicate through (spec §2).
package cache

import (
	"fmt"

	"github.com/abacilang/abaci/internal/ast"
	"github.com/abacilang/abaci/internal/types"
)

// ClassTemplate records a `class name(fields) methods endclass` declaration:
// fields in declaration order and the method bodies keyed by name (spec §3
// "Class template").
type ClassTemplate struct {
	Name    string
	Fields  []ast.Parameter
	Methods map[string]*ast.FunctionDecl
}

// FunctionTemplate records a `fn name(params) body endfn` declaration:
// parameter names in order and the body statement list (spec §3 "Function
// template").
type FunctionTemplate struct {
	Name   string
	Params []ast.Parameter
	Body   ast.StmtList
}

// ErrAlreadyExists is returned when a class or function name is registered
// twice (spec §3 "Registration fails if the name exists", surfacing as the
// `ClassExists`/`FunctionExists` error kinds of spec §7).
type ErrAlreadyExists struct {
	Kind string // "class" or "function"
	Name string
}

func (e *ErrAlreadyExists) Error() string {
	return fmt.Sprintf("%s %q already exists", e.Kind, e.Name)
}

// Cache is the shared function/class cache: class templates, function
// templates, and the instantiation table keyed by mangled name (spec §3).
type Cache struct {
	classes   map[string]*ClassTemplate
	functions map[string]*FunctionTemplate
	instances map[string]types.Type // mangled name -> return type
	pending   []string              // instantiations added since the last Drain, in insertion order
	natives   map[string]*NativeFunction
}

// New returns an empty Cache.
func New() *Cache {
	return &Cache{
		classes:   make(map[string]*ClassTemplate),
		functions: make(map[string]*FunctionTemplate),
		instances: make(map[string]types.Type),
		natives:   make(map[string]*NativeFunction),
	}
}

// DeclareClass registers a class template, failing if the name is already
// taken by a class, function, or native function.
func (c *Cache) DeclareClass(decl *ast.ClassDecl) (*ClassTemplate, error) {
	if c.NameExists(decl.Name) {
		return nil, &ErrAlreadyExists{Kind: "class", Name: decl.Name}
	}
	methods := make(map[string]*ast.FunctionDecl, len(decl.Methods))
	for _, m := range decl.Methods {
		methods[m.Name] = m
	}
	t := &ClassTemplate{Name: decl.Name, Fields: decl.Fields, Methods: methods}
	c.classes[decl.Name] = t
	return t, nil
}

// DeclareFunction registers a function template, failing if the name is
// already taken.
func (c *Cache) DeclareFunction(decl *ast.FunctionDecl) (*FunctionTemplate, error) {
	if c.NameExists(decl.Name) {
		return nil, &ErrAlreadyExists{Kind: "function", Name: decl.Name}
	}
	t := &FunctionTemplate{Name: decl.Name, Params: decl.Params, Body: decl.Body}
	c.functions[decl.Name] = t
	return t, nil
}

// NameExists reports whether name is already bound to a class, function, or
// native function template.
func (c *Cache) NameExists(name string) bool {
	if _, ok := c.classes[name]; ok {
		return true
	}
	if _, ok := c.functions[name]; ok {
		return true
	}
	if _, ok := c.natives[name]; ok {
		return true
	}
	return false
}

// Class looks up a registered class template.
func (c *Cache) Class(name string) (*ClassTemplate, bool) {
	t, ok := c.classes[name]
	return t, ok
}

// Function looks up a registered function template.
func (c *Cache) Function(name string) (*FunctionTemplate, bool) {
	t, ok := c.functions[name]
	return t, ok
}

// LookupMethod resolves a method name on a class template.
func (t *ClassTemplate) LookupMethod(name string) (*ast.FunctionDecl, bool) {
	m, ok := t.Methods[name]
	return m, ok
}

// FieldIndex returns the declaration-order index of a field, or -1.
func (t *ClassTemplate) FieldIndex(name string) int {
	for i, f := range t.Fields {
		if f.Name == name {
			return i
		}
	}
	return -1
}
