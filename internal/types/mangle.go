package types

import (
	"fmt"
	"strconv"
	"strings"
)

// Mangle produces the linkage name for an instantiation of `name` over the
// given argument types, following spec §4.1 byte-by-byte so that the result
// is a valid symbol in any reasonable linker and is injective modulo type
// equality. It mirrors the original C++ `mangled()` in
// original_source/src/utility/Type.cpp.
func Mangle(name string, argTypes []Type) (string, error) {
	var sb strings.Builder
	if err := mangleIdent(&sb, name); err != nil {
		return "", err
	}
	for _, t := range argTypes {
		sb.WriteByte('.')
		if t.IsComposite() {
			inst, ok := t.AsInstance()
			if !ok {
				return "", fmt.Errorf("mangle: unsupported composite type %s", DisplayName(t))
			}
			if err := mangleIdent(&sb, inst.ClassName); err != nil {
				return "", err
			}
			continue
		}
		sb.WriteString(strconv.FormatUint(uint64(t.scalar.Raw()), 10))
	}
	return sb.String(), nil
}

// mangleIdent appends the name-encoding rule of spec §4.1 step 2: ASCII
// alphanumeric, '_', and '.' copy verbatim; "'" and any high-bit byte
// (UTF-8 continuation/lead) become '.' followed by lowercase hex; anything
// else is an error.
func mangleIdent(sb *strings.Builder, name string) error {
	for i := 0; i < len(name); i++ {
		ch := name[i]
		switch {
		case isMangleSafe(ch):
			sb.WriteByte(ch)
		case ch == '\'' || ch >= 0x80:
			sb.WriteByte('.')
			sb.WriteString(strconv.FormatUint(uint64(ch), 16))
		default:
			return fmt.Errorf("mangle: illegal byte %#x in %q", ch, name)
		}
	}
	return nil
}

func isMangleSafe(ch byte) bool {
	return (ch >= '0' && ch <= '9') ||
		(ch >= 'a' && ch <= 'z') ||
		(ch >= 'A' && ch <= 'Z') ||
		ch == '_' || ch == '.'
}
