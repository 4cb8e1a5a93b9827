package vm

import (
	"fmt"
	"math"

	"github.com/abacilang/abaci/internal/types"
	"github.com/abacilang/abaci/internal/values"
)

// evalBinary applies op to a and b, both already on raw kind `kind` (the
// Kind typeinfer.combineBinary settled on; see internal/ir's OpBinary
// operand doc). Integer / and ** always compute through float64 even
// though neither operand needed promotion to reach the same raw kind,
// matching spec §3's fixed Integer÷Integer→Floating, Integer**Integer→
// Floating rule.
func evalBinary(op types.BinaryOperator, kind types.Kind, a, b values.Value) (values.Value, error) {
	raw := kind.Raw()
	switch raw {
	case types.Boolean:
		switch op {
		case types.BitAnd:
			return values.NewBool(a.Bool() && b.Bool()), nil
		case types.BitOr:
			return values.NewBool(a.Bool() || b.Bool()), nil
		case types.BitXor:
			return values.NewBool(a.Bool() != b.Bool()), nil
		case types.Eq:
			return values.NewBool(a.I == b.I), nil
		case types.Ne:
			return values.NewBool(a.I != b.I), nil
		}

	case types.Integer:
		switch op {
		case types.Add:
			return values.NewInt(a.I + b.I), nil
		case types.Sub:
			return values.NewInt(a.I - b.I), nil
		case types.Mul:
			return values.NewInt(a.I * b.I), nil
		case types.Mod:
			if b.I == 0 {
				return values.Value{}, fmt.Errorf("vm: integer %% by zero")
			}
			return values.NewInt(a.I % b.I), nil
		case types.IDiv:
			if b.I == 0 {
				return values.Value{}, fmt.Errorf("vm: integer // by zero")
			}
			return values.NewInt(a.I / b.I), nil
		case types.BitAnd:
			return values.NewInt(a.I & b.I), nil
		case types.BitOr:
			return values.NewInt(a.I | b.I), nil
		case types.BitXor:
			return values.NewInt(a.I ^ b.I), nil
		case types.Div:
			return values.NewFloat(float64(a.I) / float64(b.I)), nil
		case types.Pow:
			return values.NewFloat(math.Pow(float64(a.I), float64(b.I))), nil
		case types.Eq:
			return values.NewBool(a.I == b.I), nil
		case types.Ne:
			return values.NewBool(a.I != b.I), nil
		case types.Lt:
			return values.NewBool(a.I < b.I), nil
		case types.Le:
			return values.NewBool(a.I <= b.I), nil
		case types.Gt:
			return values.NewBool(a.I > b.I), nil
		case types.Ge:
			return values.NewBool(a.I >= b.I), nil
		}

	case types.Floating:
		switch op {
		case types.Add:
			return values.NewFloat(a.F + b.F), nil
		case types.Sub:
			return values.NewFloat(a.F - b.F), nil
		case types.Mul:
			return values.NewFloat(a.F * b.F), nil
		case types.Div:
			return values.NewFloat(a.F / b.F), nil
		case types.Pow:
			return values.NewFloat(math.Pow(a.F, b.F)), nil
		case types.Eq:
			return values.NewBool(a.F == b.F), nil
		case types.Ne:
			return values.NewBool(a.F != b.F), nil
		case types.Lt:
			return values.NewBool(a.F < b.F), nil
		case types.Le:
			return values.NewBool(a.F <= b.F), nil
		case types.Gt:
			return values.NewBool(a.F > b.F), nil
		case types.Ge:
			return values.NewBool(a.F >= b.F), nil
		}

	case types.Complex:
		switch op {
		case types.Eq:
			return values.NewBool(values.CompareComplex(a, b)), nil
		case types.Ne:
			return values.NewBool(!values.CompareComplex(a, b)), nil
		default:
			return values.OpComplex(op, a, &b)
		}

	case types.String:
		switch op {
		case types.Add, types.Concat:
			return values.ConcatString(a, b), nil
		case types.Eq:
			return values.NewBool(values.CompareString(a, b)), nil
		case types.Ne:
			return values.NewBool(!values.CompareString(a, b)), nil
		}

	case types.List:
		switch op {
		case types.Add, types.Concat:
			return values.ConcatList(a, b), nil
		}
	}
	return values.Value{}, fmt.Errorf("vm: operator %v not supported for kind %s", op, raw)
}

// evalUnary applies op to a, of raw kind `kind`.
func evalUnary(op types.UnaryOperator, kind types.Kind, a values.Value) (values.Value, error) {
	raw := kind.Raw()
	switch raw {
	case types.Boolean:
		switch op {
		case types.Not, types.BitNot:
			return values.NewBool(!a.Bool()), nil
		}
	case types.Integer:
		switch op {
		case types.Neg:
			return values.NewInt(-a.I), nil
		case types.Not:
			return values.NewBool(a.I == 0), nil
		case types.BitNot:
			return values.NewInt(^a.I), nil
		}
	case types.Floating:
		switch op {
		case types.Neg:
			return values.NewFloat(-a.F), nil
		case types.Not:
			return values.NewBool(a.F == 0), nil
		}
	case types.Complex:
		if op == types.Neg {
			return values.OpComplex(types.Sub, a, nil)
		}
	}
	return values.Value{}, fmt.Errorf("vm: unary operator %v not supported for kind %s", op, raw)
}
