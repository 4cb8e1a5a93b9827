package values

import (
	"strconv"
	"strings"
)

// ParseIntToken parses an INT token's literal text (decimal, 0x/0X hex, or
// 0b/0B binary, as produced by the lexer) into its integer value.
func ParseIntToken(lit string) (int64, error) {
	return parseIntLiteral(lit)
}

// ParseFloatOrComplexToken parses a FLOAT token's literal text. A trailing
// j/J marks an imaginary literal (spec §6 numeric suffix), which this
// returns as a Complex value with a zero real part; otherwise it returns a
// plain Floating value.
func ParseFloatOrComplexToken(lit string) (Value, error) {
	if strings.HasSuffix(lit, "j") || strings.HasSuffix(lit, "J") {
		f, err := strconv.ParseFloat(lit[:len(lit)-1], 64)
		if err != nil {
			return Value{}, err
		}
		return MakeComplex(0, f), nil
	}
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return Value{}, err
	}
	return NewFloat(f), nil
}
