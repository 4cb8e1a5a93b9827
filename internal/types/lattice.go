package types

// Lattice ordering: Boolean ≤ Integer ≤ Floating ≤ Complex. Mixed scalar
// operations promote toward the higher side (spec §3).

// Promote returns the higher of two scalar kinds on the promotion lattice.
// When either kind is not on the lattice (String, Instance, List, None,
// Real, Imag), ok is true only if the two raw kinds are equal (that kind is
// returned); otherwise ok is false (callers should treat that as a static
// error).
func Promote(a, b Kind) (Kind, bool) {
	ra, rb := a.Raw(), b.Raw()
	rankA, rankB := ra.rank(), rb.rank()
	if rankA < 0 || rankB < 0 {
		if ra == rb {
			return ra, true
		}
		return None, false
	}
	if rankA >= rankB {
		return ra, true
	}
	return rb, true
}

// LessOrEqual reports whether a ≤ b on the promotion lattice.
func LessOrEqual(a, b Kind) bool {
	ra, rb := a.rank(), b.rank()
	return ra >= 0 && rb >= 0 && ra <= rb
}

// ValidConversions lists, for each scalar Kind, the source kinds that a
// type-conversion expression T(e) accepts (spec §4.2 type conversion table).
var ValidConversions = map[Kind][]Kind{
	Integer:  {Boolean, Integer, Floating, String},
	Floating: {Boolean, Integer, Floating, String},
	Complex:  {Integer, Floating, Complex, String},
	String:   {Boolean, Integer, Floating, Complex, String},
	Real:     {Complex},
	Imag:     {Complex},
}

// CanConvert reports whether a conversion expression targeting `to` accepts
// a source value of raw kind `from`.
func CanConvert(to, from Kind) bool {
	for _, k := range ValidConversions[to.Raw()] {
		if k == from.Raw() {
			return true
		}
	}
	return false
}

// ConversionResultKind returns the Kind a conversion target erases to for
// storage purposes: Real and Imag both erase to Floating (spec §3).
func ConversionResultKind(target Kind) Kind {
	switch target.Raw() {
	case Real, Imag:
		return Floating
	default:
		return target.Raw()
	}
}

// BinaryOperator and UnaryOperator name operator tokens independent of the
// parser's token representation, used by both the type-inference table and
// the code generator's opcode dispatch (spec §4.2 table, §4.3).
type BinaryOperator int

const (
	Add BinaryOperator = iota
	Sub
	Mul
	Div    // / always promotes to Floating
	IDiv   // // integer division
	Mod    // %
	Pow    // ** right-assoc
	BitAnd
	BitOr
	BitXor
	Eq
	Ne
	Lt
	Le
	Gt
	Ge
	And
	Or
	Concat // string/list +
)

type UnaryOperator int

const (
	Neg UnaryOperator = iota
	Not
	BitNot
)

// BinaryAllowed reports whether op is a legal binary operator for the given
// raw operand kind, per the table in spec §4.2. Both operands must already
// have been reconciled via Promote before this check is meaningful.
func BinaryAllowed(k Kind, op BinaryOperator) bool {
	raw := k.Raw()
	switch raw {
	case Boolean:
		switch op {
		case BitAnd, BitXor, BitOr, Eq, Ne:
			return true
		}
	case Integer:
		switch op {
		case Add, Sub, Mul, Mod, IDiv, BitAnd, BitXor, BitOr, Div, Pow,
			Eq, Ne, Lt, Le, Gt, Ge:
			return true
		}
	case Floating:
		switch op {
		case Add, Sub, Mul, Div, Pow, Eq, Ne, Lt, Le, Gt, Ge:
			return true
		}
	case Complex:
		switch op {
		case Add, Sub, Mul, Div, Pow, Eq, Ne:
			return true
		}
	case String:
		switch op {
		case Add, Eq, Ne, Concat:
			return true
		}
	case List:
		return op == Add || op == Concat
	}
	return false
}

// UnaryAllowed reports whether op is a legal unary operator for the given
// raw operand kind, per the table in spec §4.2.
func UnaryAllowed(k Kind, op UnaryOperator) bool {
	switch k.Raw() {
	case Boolean:
		return op == Not || op == BitNot
	case Integer:
		return op == Neg || op == Not || op == BitNot
	case Floating:
		return op == Neg || op == Not
	case Complex:
		return op == Neg
	default:
		return false
	}
}

// BinaryResultKind returns the result Kind of applying op to two operands
// already promoted to raw kind k (spec §3 promotion table: Integer÷Integer
// and Integer**Integer both promote to Floating; relational/equality/
// boolean operators always yield Boolean).
func BinaryResultKind(k Kind, op BinaryOperator) Kind {
	switch op {
	case Eq, Ne, Lt, Le, Gt, Ge, And, Or:
		return Boolean
	case Div:
		if k.Raw() == Integer {
			return Floating
		}
		return k.Raw()
	case Pow:
		if k.Raw() == Integer {
			return Floating
		}
		return k.Raw()
	default:
		return k.Raw()
	}
}

// UnaryResultKind returns the result Kind of applying op to an operand of
// raw kind k. `not` always yields Boolean.
func UnaryResultKind(k Kind, op UnaryOperator) Kind {
	if op == Not {
		return Boolean
	}
	return k.Raw()
}
