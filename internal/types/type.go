package types

import "strings"

// Type is either a bare scalar Kind or a pointer to a composite descriptor
// (InstanceType, ListType). It mirrors the C++ original's
// std::variant<AbaciValue::Type, std::shared_ptr<TypeBase>> (spec §3).
type Type struct {
	scalar    Kind
	composite composite
}

// composite is implemented by *InstanceType and *ListType.
type composite interface {
	isConstant() bool
	withConstant(bool) composite
	displayName() string
	equal(composite) bool
}

// Scalar builds a bare-scalar Type from a Kind.
func Scalar(k Kind) Type { return Type{scalar: k} }

// NoneType, BooleanType, ... are the canonical bare-scalar singletons.
var (
	NoneType     = Scalar(None)
	BooleanType  = Scalar(Boolean)
	IntegerType  = Scalar(Integer)
	FloatingType = Scalar(Floating)
	ComplexType  = Scalar(Complex)
	StringType   = Scalar(String)
	RealType     = Scalar(Real)
	ImagType     = Scalar(Imag)
)

// InstanceType describes a nominal record class: its name and the ordered
// field types established at class-template registration (spec §3).
type InstanceType struct {
	ClassName  string
	FieldTypes []Type
	constFlag  bool
}

func (t *InstanceType) isConstant() bool { return t.constFlag }
func (t *InstanceType) withConstant(c bool) composite {
	cp := *t
	cp.constFlag = c
	return &cp
}
func (t *InstanceType) displayName() string {
	var sb strings.Builder
	sb.WriteString(t.ClassName)
	sb.WriteByte('(')
	for i, ft := range t.FieldTypes {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(DisplayName(ft))
	}
	sb.WriteByte(')')
	return sb.String()
}
func (t *InstanceType) equal(other composite) bool {
	o, ok := other.(*InstanceType)
	if !ok || o.ClassName != t.ClassName || len(o.FieldTypes) != len(t.FieldTypes) {
		return false
	}
	for i := range t.FieldTypes {
		if !Equal(t.FieldTypes[i], o.FieldTypes[i]) {
			return false
		}
	}
	return true
}

// ListType describes a homogeneous list's element type (spec §3).
type ListType struct {
	ElementType Type
	constFlag   bool
}

func (t *ListType) isConstant() bool { return t.constFlag }
func (t *ListType) withConstant(c bool) composite {
	cp := *t
	cp.constFlag = c
	return &cp
}
func (t *ListType) displayName() string {
	return "[" + DisplayName(t.ElementType) + "]"
}
func (t *ListType) equal(other composite) bool {
	o, ok := other.(*ListType)
	return ok && Equal(t.ElementType, o.ElementType)
}

// NewInstanceType builds a Type wrapping an InstanceType descriptor.
func NewInstanceType(className string, fieldTypes []Type) Type {
	return Type{composite: &InstanceType{ClassName: className, FieldTypes: fieldTypes}}
}

// NewListType builds a Type wrapping a ListType descriptor.
func NewListType(elem Type) Type {
	return Type{composite: &ListType{ElementType: elem}}
}

// IsComposite reports whether t wraps InstanceType or ListType rather than a
// bare scalar Kind.
func (t Type) IsComposite() bool { return t.composite != nil }

// AsInstance returns the InstanceType descriptor and true if t is one.
func (t Type) AsInstance() (*InstanceType, bool) {
	it, ok := t.composite.(*InstanceType)
	return it, ok
}

// AsList returns the ListType descriptor and true if t is one.
func (t Type) AsList() (*ListType, bool) {
	lt, ok := t.composite.(*ListType)
	return lt, ok
}

// KindOf strips the Constant bit and returns the raw scalar Kind: Instance
// or List for composites (spec §4.1 kindOf).
func KindOf(t Type) Kind {
	if t.composite != nil {
		if _, ok := t.composite.(*InstanceType); ok {
			k := Instance
			if t.composite.isConstant() {
				k |= Constant
			}
			return k
		}
		k := List
		if t.composite.isConstant() {
			k |= Constant
		}
		return k
	}
	return t.scalar
}

// DisplayName renders a human-readable type name (spec §4.1).
func DisplayName(t Type) string {
	if t.composite != nil {
		return t.composite.displayName()
	}
	names := map[Kind]string{
		None: "None", Boolean: "bool", Integer: "int", Floating: "float",
		Complex: "complex", String: "str", Real: "real", Imag: "imag",
	}
	if n, ok := names[t.scalar.Raw()]; ok {
		return n
	}
	return t.scalar.Raw().String()
}

// IsConstant reports whether t carries the Constant modifier.
func IsConstant(t Type) bool {
	if t.composite != nil {
		return t.composite.isConstant()
	}
	return t.scalar.IsConst()
}

// AddConst returns a copy of t with the Constant modifier set.
func AddConst(t Type) Type {
	if t.composite != nil {
		return Type{composite: t.composite.withConstant(true)}
	}
	return Type{scalar: t.scalar.WithConst()}
}

// RemoveConst returns a copy of t with the Constant modifier cleared.
func RemoveConst(t Type) Type {
	if t.composite != nil {
		return Type{composite: t.composite.withConstant(false)}
	}
	return Type{scalar: t.scalar.WithoutConst()}
}

// Equal reports type equality ignoring the Constant modifier (spec §4.1).
func Equal(a, b Type) bool {
	if a.composite != nil || b.composite != nil {
		if a.composite == nil || b.composite == nil {
			return false
		}
		return a.composite.equal(b.composite)
	}
	return a.scalar.Raw() == b.scalar.Raw()
}
