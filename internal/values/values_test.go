package values

import (
	"testing"

	"github.com/abacilang/abaci/internal/types"
)

func TestCloneIndependence(t *testing.T) {
	a := MakeInstance("c", 2)
	inst := a.Obj.(*Instance)
	inst.Fields[0] = NewInt(1)
	b := Clone(a)
	bInst := b.Obj.(*Instance)
	bInst.Fields[0] = NewInt(9)
	if inst.Fields[0].I != 1 {
		t.Fatal("clone must not alias the original instance's fields")
	}
}

func TestMakeStringRejectsInvalidUTF8(t *testing.T) {
	_, err := MakeString([]byte{0xff, 0xfe})
	if err != ErrBadString {
		t.Fatalf("expected ErrBadString, got %v", err)
	}
}

func TestConcatString(t *testing.T) {
	a, _ := MakeString([]byte("foo"))
	b, _ := MakeString([]byte("bar"))
	c := ConcatString(a, b)
	if string(c.Obj.(*String).Bytes) != "foobar" {
		t.Fatalf("got %q", c.Obj.(*String).Bytes)
	}
}

func TestFormatComplex(t *testing.T) {
	v := MakeComplex(3, 4)
	if got := FormatValue(v); got != "3+4j" {
		t.Fatalf("FormatValue = %q, want 3+4j", got)
	}
	v2 := MakeComplex(0, 2)
	if got := FormatValue(v2); got != "0+2j" {
		t.Fatalf("FormatValue = %q, want 0+2j", got)
	}
	v3 := MakeComplex(5, 0)
	if got := FormatValue(v3); got != "5" {
		t.Fatalf("FormatValue = %q, want 5", got)
	}
}

func TestToTypeIntLiteralForms(t *testing.T) {
	s, _ := MakeString([]byte("0x1F"))
	got, err := ToType(types.Integer, s)
	if err != nil || got.I != 31 {
		t.Fatalf("int(0x1F) = %v,%v want 31", got.I, err)
	}
	s2, _ := MakeString([]byte("0b1010"))
	got2, _ := ToType(types.Integer, s2)
	if got2.I != 10 {
		t.Fatalf("int(0b1010) = %v want 10", got2.I)
	}
	s3, _ := MakeString([]byte("0755"))
	got3, _ := ToType(types.Integer, s3)
	if got3.I != 493 {
		t.Fatalf("int(0755) = %v want 493", got3.I)
	}
}

func TestToTypeComplexLiteral(t *testing.T) {
	s, _ := MakeString([]byte("3+4j"))
	v, err := ToType(types.Complex, s)
	if err != nil {
		t.Fatal(err)
	}
	c := v.Obj.(*Complex)
	if c.Real != 3 || c.Imag != 4 {
		t.Fatalf("complex(\"3+4j\") = %+v", c)
	}
	s2, _ := MakeString([]byte("2j"))
	v2, _ := ToType(types.Complex, s2)
	c2 := v2.Obj.(*Complex)
	if c2.Real != 0 || c2.Imag != 2 {
		t.Fatalf("complex(\"2j\") = %+v", c2)
	}
}

func TestStrIntRoundTrip(t *testing.T) {
	n := NewInt(123)
	s, err := ToType(types.String, n)
	if err != nil {
		t.Fatal(err)
	}
	back, err := ToType(types.Integer, s)
	if err != nil || back.I != 123 {
		t.Fatalf("round trip failed: %v %v", back.I, err)
	}
}

func TestResolveIndexNegative(t *testing.T) {
	i, err := ResolveIndex(-1, 5)
	if err != nil || i != 4 {
		t.Fatalf("ResolveIndex(-1,5) = %d,%v want 4,nil", i, err)
	}
	_, err = ResolveIndex(5, 5)
	if err != ErrIndexOutOfRange {
		t.Fatalf("expected out of range at idx==len")
	}
}

func TestListConcatLength(t *testing.T) {
	l := MakeList(0)
	e := NewInt(7)
	lst := ConcatList(l, Value{Kind: types.List, Obj: &List{Elements: []Value{e}}})
	if len(lst.Obj.(*List).Elements) != 1 {
		t.Fatal("expected length 1")
	}
	got, err := ListElementAt(lst, 0)
	if err != nil || got.I != 7 {
		t.Fatalf("ListElementAt = %v,%v", got, err)
	}
}
