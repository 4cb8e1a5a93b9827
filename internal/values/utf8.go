package values

import (
	"errors"
	"unicode/utf8"

	"github.com/abacilang/abaci/internal/types"
)

// ErrBadString is returned when a byte sequence is not well-formed UTF-8;
// it surfaces to the caller as the runtime `BadString` error kind (spec §7).
var ErrBadString = errors.New("BadString: malformed UTF-8")

// MakeString copies n bytes of UTF-8 and computes the codepoint length,
// rejecting any malformed byte sequence (the runtime helper `makeString`,
// spec §4.6).
func MakeString(b []byte) (Value, error) {
	if !utf8.Valid(b) {
		return Value{}, ErrBadString
	}
	cp := make([]byte, len(b))
	copy(cp, b)
	return Value{Kind: types.String, Obj: &String{Bytes: cp, Codepoints: utf8.RuneCount(cp)}}, nil
}

// runeAt returns the byte offset of the codepoint-index'th rune in b, or -1
// if idx is out of range. Used by indexing (spec §4.6 "UTF-8 length and
// indexing rely on standard continuation-byte rules").
func runeAt(b []byte, idx int) int {
	if idx < 0 {
		return -1
	}
	offset := 0
	for i := 0; i < idx; i++ {
		if offset >= len(b) {
			return -1
		}
		_, size := utf8.DecodeRune(b[offset:])
		offset += size
	}
	if offset >= len(b) {
		return -1
	}
	return offset
}
