package values

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/abacilang/abaci/internal/types"
)

// ErrBadConv is returned for a conversion that the type pass should have
// already rejected (surfaces the `BadConvType`/`BadConvTarget` error kinds
// of spec §7 if it ever reaches the runtime).
var ErrBadConv = errors.New("BadConvType")

// ToType converts v (of its current raw kind) to the target raw kind,
// erasing Real/Imag conversion targets to Floating per spec §3. This is the
// runtime helper `toType(t,v,f)` of spec §4.6; integer literal parsing
// additionally recognizes the 0x/0b/leading-zero-octal forms documented in
// original_source/src/utility/Utility.cpp (spec §8 round-trip laws).
func ToType(target types.Kind, v Value) (Value, error) {
	targetRaw := types.ConversionResultKind(target)
	if !types.CanConvert(target, v.Kind) {
		return Value{}, fmt.Errorf("%w: cannot convert %s to %s", ErrBadConv, v.Kind.Raw(), target.Raw())
	}
	switch targetRaw {
	case types.Integer:
		return toInteger(v)
	case types.Floating:
		return toFloating(v)
	case types.Complex:
		return toComplex(v, target)
	case types.String:
		return toStringValue(v)
	default:
		return Value{}, fmt.Errorf("%w: unsupported conversion target %s", ErrBadConv, target.Raw())
	}
}

func toInteger(v Value) (Value, error) {
	switch v.Kind.Raw() {
	case types.Boolean, types.Integer:
		return NewInt(v.I), nil
	case types.Floating:
		return NewInt(int64(v.F)), nil
	case types.String:
		n, err := parseIntLiteral(string(v.Obj.(*String).Bytes))
		if err != nil {
			return Value{}, err
		}
		return NewInt(n), nil
	default:
		return Value{}, ErrBadConv
	}
}

func toFloating(v Value) (Value, error) {
	switch v.Kind.Raw() {
	case types.Boolean, types.Integer:
		return NewFloat(float64(v.I)), nil
	case types.Floating:
		return NewFloat(v.F), nil
	case types.String:
		f, err := strconv.ParseFloat(strings.TrimSpace(string(v.Obj.(*String).Bytes)), 64)
		if err != nil {
			return Value{}, fmt.Errorf("%w: %v", ErrBadConv, err)
		}
		return NewFloat(f), nil
	default:
		return Value{}, ErrBadConv
	}
}

func toComplex(v Value, target types.Kind) (Value, error) {
	switch v.Kind.Raw() {
	case types.Integer:
		return MakeComplex(float64(v.I), 0), nil
	case types.Floating:
		return MakeComplex(v.F, 0), nil
	case types.Complex:
		c := v.Obj.(*Complex)
		return MakeComplex(c.Real, c.Imag), nil
	case types.String:
		return parseComplexLiteral(string(v.Obj.(*String).Bytes))
	default:
		return Value{}, ErrBadConv
	}
}

func toStringValue(v Value) (Value, error) {
	return MakeString([]byte(FormatValue(v)))
}

// RealPart and ImagPart implement the `real`/`imag` conversions, which only
// accept Complex sources and always yield Floating (spec §4.2).
func RealPart(v Value) (Value, error) {
	if v.Kind.Raw() != types.Complex {
		return Value{}, ErrBadConv
	}
	return NewFloat(v.Obj.(*Complex).Real), nil
}

func ImagPart(v Value) (Value, error) {
	if v.Kind.Raw() != types.Complex {
		return Value{}, ErrBadConv
	}
	return NewFloat(v.Obj.(*Complex).Imag), nil
}

// parseIntLiteral recognizes decimal, "0x"/"0X" hex, "0b"/"0B" binary, and
// leading-zero octal forms, matching the round-trip laws of spec §8:
// int("0x1F")==31, int("0b1010")==10, int("0755")==493.
func parseIntLiteral(s string) (int64, error) {
	s = strings.TrimSpace(s)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	var n int64
	var err error
	switch {
	case strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X"):
		n, err = parseUintBase(s[2:], 16)
	case strings.HasPrefix(s, "0b") || strings.HasPrefix(s, "0B"):
		n, err = parseUintBase(s[2:], 2)
	case len(s) > 1 && s[0] == '0':
		n, err = parseUintBase(s[1:], 8)
	default:
		n, err = parseUintBase(s, 10)
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrBadConv, err)
	}
	if neg {
		n = -n
	}
	return n, nil
}

func parseUintBase(digits string, base int) (int64, error) {
	u, err := strconv.ParseUint(digits, base, 64)
	if err != nil {
		return 0, err
	}
	return int64(u), nil
}

// parseComplexLiteral parses the "a+bj", "bj", or "a" forms documented by
// spec §8: complex("3+4j") has real=3,imag=4; complex("2j") has real=0,
// imag=2.
func parseComplexLiteral(s string) (Value, error) {
	s = strings.TrimSpace(s)
	if !strings.HasSuffix(s, "j") && !strings.HasSuffix(s, "J") {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Value{}, fmt.Errorf("%w: %v", ErrBadConv, err)
		}
		return MakeComplex(f, 0), nil
	}
	body := s[:len(s)-1]
	// Find the split between the real part and the imaginary part: the
	// last '+' or '-' that is not the leading sign and not part of an
	// exponent (e/E) is the split point.
	splitAt := -1
	for i := len(body) - 1; i > 0; i-- {
		if body[i] == '+' || body[i] == '-' {
			prev := body[i-1]
			if prev == 'e' || prev == 'E' {
				continue
			}
			splitAt = i
			break
		}
	}
	if splitAt < 0 {
		imag, err := parseSignedFloat(body)
		if err != nil {
			return Value{}, fmt.Errorf("%w: %v", ErrBadConv, err)
		}
		return MakeComplex(0, imag), nil
	}
	realPart, imagPart := body[:splitAt], body[splitAt:]
	real, err := strconv.ParseFloat(realPart, 64)
	if err != nil {
		return Value{}, fmt.Errorf("%w: %v", ErrBadConv, err)
	}
	imag, err := parseSignedFloat(imagPart)
	if err != nil {
		return Value{}, fmt.Errorf("%w: %v", ErrBadConv, err)
	}
	return MakeComplex(real, imag), nil
}

func parseSignedFloat(s string) (float64, error) {
	switch s {
	case "+", "":
		return 1, nil
	case "-":
		return -1, nil
	}
	return strconv.ParseFloat(s, 64)
}
