package types

import "testing"

func TestKindRawStripsConstant(t *testing.T) {
	k := Integer.WithConst()
	if k.Raw() != Integer {
		t.Fatalf("Raw() = %v, want Integer", k.Raw())
	}
	if !k.IsConst() {
		t.Fatal("expected IsConst() true")
	}
}

func TestEqualIgnoresConstness(t *testing.T) {
	a := Scalar(Integer.WithConst())
	b := Scalar(Integer)
	if !Equal(a, b) {
		t.Fatal("Equal should ignore the Constant bit")
	}
}

func TestPromoteLattice(t *testing.T) {
	cases := []struct {
		a, b, want Kind
	}{
		{Boolean, Integer, Integer},
		{Integer, Floating, Floating},
		{Floating, Complex, Complex},
		{Integer, Integer, Integer},
	}
	for _, c := range cases {
		got, ok := Promote(c.a, c.b)
		if !ok || got != c.want {
			t.Errorf("Promote(%v,%v) = %v,%v want %v", c.a, c.b, got, ok, c.want)
		}
	}
}

func TestInstanceTypeEquality(t *testing.T) {
	a := NewInstanceType("Point", []Type{IntegerType, IntegerType})
	b := NewInstanceType("Point", []Type{IntegerType, IntegerType})
	c := NewInstanceType("Point", []Type{FloatingType, IntegerType})
	if !Equal(a, b) {
		t.Fatal("expected equal instance types")
	}
	if Equal(a, c) {
		t.Fatal("expected unequal instance types")
	}
}

func TestListTypeDisplayName(t *testing.T) {
	lt := NewListType(IntegerType)
	if DisplayName(lt) != "[int]" {
		t.Fatalf("DisplayName = %q", DisplayName(lt))
	}
}

func TestMangleScalar(t *testing.T) {
	name, err := Mangle("difference", []Type{IntegerType, IntegerType})
	if err != nil {
		t.Fatal(err)
	}
	want := "difference." + itoa(int(Integer)) + "." + itoa(int(Integer))
	if name != want {
		t.Fatalf("Mangle = %q, want %q", name, want)
	}
}

func TestMangleInjective(t *testing.T) {
	n1, _ := Mangle("difference", []Type{IntegerType, IntegerType})
	n2, _ := Mangle("difference", []Type{FloatingType, FloatingType})
	if n1 == n2 {
		t.Fatal("distinct argument types must mangle distinctly")
	}
}

func TestMangleApostropheByte(t *testing.T) {
	name, err := Mangle("f'", nil)
	if err != nil {
		t.Fatal(err)
	}
	if name != "f.27" {
		t.Fatalf("Mangle(\"f'\") = %q, want f.27", name)
	}
}

func TestMangleInstanceClassName(t *testing.T) {
	pt := NewInstanceType("Point", []Type{IntegerType})
	name, err := Mangle("area", []Type{pt})
	if err != nil {
		t.Fatal(err)
	}
	if name != "area.Point" {
		t.Fatalf("Mangle = %q", name)
	}
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	neg := i < 0
	if neg {
		i = -i
	}
	var buf [20]byte
	pos := len(buf)
	for i > 0 {
		pos--
		buf[pos] = byte('0' + i%10)
		i /= 10
	}
	if neg {
		pos--
		buf[pos] = '-'
	}
	return string(buf[pos:])
}
