package constants

import (
	"testing"

	"github.com/abacilang/abaci/internal/types"
	"github.com/abacilang/abaci/internal/values"
)

func TestAddDedup(t *testing.T) {
	p := New()
	i1 := p.Add(values.NewInt(42), types.IntegerType)
	i2 := p.Add(values.NewInt(42), types.IntegerType)
	if i1 != i2 {
		t.Fatalf("duplicate literal got distinct indexes %d, %d", i1, i2)
	}
	if p.Len() != 1 {
		t.Fatalf("pool grew on duplicate add: len=%d", p.Len())
	}
}

func TestAddDistinctByKind(t *testing.T) {
	p := New()
	i1 := p.Add(values.NewInt(1), types.IntegerType)
	i2 := p.Add(values.NewFloat(1), types.FloatingType)
	if i1 == i2 {
		t.Fatal("different kinds must not collapse to the same index")
	}
}

func TestGetRoundTrip(t *testing.T) {
	p := New()
	s, _ := values.MakeString([]byte("hi"))
	idx := p.Add(s, types.StringType)
	got, typ := p.Get(idx)
	if !types.Equal(typ, types.StringType) {
		t.Fatal("type mismatch on round trip")
	}
	if values.FormatValue(got) != "hi" {
		t.Fatalf("value mismatch: %q", values.FormatValue(got))
	}
}

func TestAddDedupDeepHeapContent(t *testing.T) {
	p := New()
	a, _ := values.MakeString([]byte("same"))
	b, _ := values.MakeString([]byte("same"))
	i1 := p.Add(a, types.StringType)
	i2 := p.Add(b, types.StringType)
	if i1 != i2 {
		t.Fatal("equal-content strings should dedup by deep content")
	}
}
