package symbols

import (
	"strconv"
	"testing"

	"github.com/abacilang/abaci/internal/types"
	"github.com/abacilang/abaci/internal/values"
)

func TestLocalScopeShadowing(t *testing.T) {
	outer := NewLocalScope(nil)
	outer.Declare("x", types.IntegerType)
	inner := NewLocalScope(outer)
	if _, err := inner.Declare("x", types.FloatingType); err != nil {
		t.Fatalf("shadowing an outer binding should be allowed: %v", err)
	}
	slot, ok := inner.Lookup("x")
	if !ok || !types.Equal(slot.Type, types.FloatingType) {
		t.Fatal("inner lookup should resolve to the shadowing binding")
	}
}

func TestLocalScopeDuplicateRejected(t *testing.T) {
	s := NewLocalScope(nil)
	s.Declare("x", types.IntegerType)
	if _, err := s.Declare("x", types.IntegerType); err == nil {
		t.Fatal("expected VariableExists on duplicate declaration in same scope")
	}
}

func TestLocalScopeLookupLocalDoesNotWalk(t *testing.T) {
	outer := NewLocalScope(nil)
	outer.Declare("x", types.IntegerType)
	inner := NewLocalScope(outer)
	if _, ok := inner.LookupLocal("x"); ok {
		t.Fatal("LookupLocal must not see enclosing scopes")
	}
}

func TestGlobalScopeGrowsByDoubling(t *testing.T) {
	g := NewGlobalScope()
	for i := 0; i < globalsInitialCap+5; i++ {
		slot, err := g.Declare(rname(i), types.IntegerType)
		if err != nil {
			t.Fatal(err)
		}
		g.Set(slot.Index, values.NewInt(int64(i)))
	}
	for i := 0; i < globalsInitialCap+5; i++ {
		if g.Get(i).I != int64(i) {
			t.Fatalf("global %d lost its value after growth", i)
		}
	}
}

func rname(i int) string {
	return "g" + strconv.Itoa(i)
}
