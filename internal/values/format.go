package values

import (
	"fmt"
	"strconv"

	"github.com/abacilang/abaci/internal/types"
)

// BooleanKeywords are the language's printed spellings for true/false.
// Kept as a variable (rather than inlined in FormatValue) so a localization
// layer can override it, mirroring the teacher's approach of keeping
// user-facing keyword spellings out of the hot formatting path (spec §6
// "Instance printing uses a localizable template").
var BooleanKeywords = [2]string{"false", "true"}

// InstanceTemplate is the localizable `<Instance of CLASSNAME>` template
// (spec §6).
var InstanceTemplate = "<Instance of %s>"

// FormatValue renders v for `print`, matching spec §6's wire/format rules:
// floats and complex use 10-significant-digit general format; complex with
// zero imaginary prints only the real part; complex with non-zero
// imaginary appends an explicit-sign imaginary part and the `j` suffix.
func FormatValue(v Value) string {
	switch v.Kind.Raw() {
	case types.None:
		return "None"
	case types.Boolean:
		return BooleanKeywords[v.I&1]
	case types.Integer:
		return strconv.FormatInt(v.I, 10)
	case types.Floating:
		return formatFloat(v.F)
	case types.Complex:
		c := v.Obj.(*Complex)
		if c.Imag == 0 {
			return formatFloat(c.Real)
		}
		sign := "+"
		imag := c.Imag
		if imag < 0 {
			sign = "-"
			imag = -imag
		}
		return formatFloat(c.Real) + sign + formatFloat(imag) + "j"
	case types.String:
		return string(v.Obj.(*String).Bytes)
	case types.Instance:
		return fmt.Sprintf(InstanceTemplate, v.Obj.(*Instance).ClassName)
	case types.List:
		l := v.Obj.(*List)
		out := "["
		for i, e := range l.Elements {
			if i > 0 {
				out += ", "
			}
			out += FormatValue(e)
		}
		return out + "]"
	default:
		return ""
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', 10, 64)
}

// PrintComma is the field separator `print` inserts between comma-separated
// items: a single space (spec §4.6).
const PrintComma = " "

// PrintLn is the record terminator `print` emits unless the statement ends
// in a trailing `;` (spec §6); a trailing `,` does not suppress it.
const PrintLn = "\n"

// OpComplex implements the runtime helper `opComplex(op,a,b)`: `+ - * /`
// complex arithmetic, with b == nil meaning unary minus (spec §4.6).
func OpComplex(op types.BinaryOperator, a Value, b *Value) (Value, error) {
	ca := a.Obj.(*Complex)
	if b == nil {
		return MakeComplex(-ca.Real, -ca.Imag), nil
	}
	cb := b.Obj.(*Complex)
	switch op {
	case types.Add:
		return MakeComplex(ca.Real+cb.Real, ca.Imag+cb.Imag), nil
	case types.Sub:
		return MakeComplex(ca.Real-cb.Real, ca.Imag-cb.Imag), nil
	case types.Mul:
		return MakeComplex(ca.Real*cb.Real-ca.Imag*cb.Imag, ca.Real*cb.Imag+ca.Imag*cb.Real), nil
	case types.Div:
		denom := cb.Real*cb.Real + cb.Imag*cb.Imag
		return MakeComplex(
			(ca.Real*cb.Real+ca.Imag*cb.Imag)/denom,
			(ca.Imag*cb.Real-ca.Real*cb.Imag)/denom,
		), nil
	default:
		return Value{}, fmt.Errorf("opComplex: unsupported operator %v", op)
	}
}

// ToBoolean coerces a non-boolean condition per spec §4.4: Integer != 0,
// Floating != 0.0, String length != 0.
func ToBoolean(v Value) bool {
	switch v.Kind.Raw() {
	case types.Boolean:
		return v.Bool()
	case types.Integer:
		return v.I != 0
	case types.Floating:
		return v.F != 0
	case types.String:
		return len(v.Obj.(*String).Bytes) != 0
	default:
		return false
	}
}
