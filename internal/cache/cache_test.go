package cache

import (
	"testing"

	"github.com/abacilang/abaci/internal/ast"
	"github.com/abacilang/abaci/internal/types"
)

func TestDeclareClassRejectsDuplicate(t *testing.T) {
	c := New()
	decl := &ast.ClassDecl{Name: "Point", Fields: []ast.Parameter{{Name: "x"}, {Name: "y"}}}
	if _, err := c.DeclareClass(decl); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := c.DeclareClass(decl); err == nil {
		t.Fatal("expected ErrAlreadyExists on duplicate class name")
	}
}

func TestDeclareFunctionRejectsDuplicate(t *testing.T) {
	c := New()
	decl := &ast.FunctionDecl{Name: "f", Params: []ast.Parameter{{Name: "a"}}}
	if _, err := c.DeclareFunction(decl); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := c.DeclareFunction(decl); err == nil {
		t.Fatal("expected ErrAlreadyExists on duplicate function name")
	}
}

func TestClassAndFunctionShareNamespace(t *testing.T) {
	c := New()
	if _, err := c.DeclareFunction(&ast.FunctionDecl{Name: "shared"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := c.DeclareClass(&ast.ClassDecl{Name: "shared"}); err == nil {
		t.Fatal("expected class declaration to fail against an existing function name")
	}
}

func TestInstantiationPlaceholderThenResolve(t *testing.T) {
	c := New()
	key, err := Mangle("difference", []types.Type{types.IntegerType, types.IntegerType})
	if err != nil {
		t.Fatalf("mangle: %v", err)
	}
	c.BeginInstantiation(key)
	rt, ok := c.Instantiated(key)
	if !ok || !types.Equal(rt, types.NoneType) {
		t.Fatalf("expected placeholder None return type, got %+v ok=%v", rt, ok)
	}
	c.ResolveInstantiation(key, types.IntegerType)
	rt, ok = c.Instantiated(key)
	if !ok || !types.Equal(rt, types.IntegerType) {
		t.Fatalf("expected resolved Integer return type, got %+v", rt)
	}
	if len(c.Pending()) != 1 || c.Pending()[0] != key {
		t.Fatalf("expected one pending instantiation, got %+v", c.Pending())
	}
	c.Drain()
	if len(c.Pending()) != 0 {
		t.Fatal("expected Drain to clear the pending queue")
	}
	if _, ok := c.Instantiated(key); !ok {
		t.Fatal("Drain must not forget the resolved return type")
	}
}

func TestClassTemplateFieldIndex(t *testing.T) {
	c := New()
	ct, err := c.DeclareClass(&ast.ClassDecl{
		Name:   "Point",
		Fields: []ast.Parameter{{Name: "x"}, {Name: "y"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ct.FieldIndex("y") != 1 {
		t.Fatalf("got %d", ct.FieldIndex("y"))
	}
	if ct.FieldIndex("z") != -1 {
		t.Fatalf("expected -1 for missing field")
	}
}
