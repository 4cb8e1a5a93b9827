package values

import (
	"errors"
	"unicode/utf8"
)

// ErrIndexOutOfRange is the runtime `IndexOutOfRange` error kind (spec §7).
var ErrIndexOutOfRange = errors.New("IndexOutOfRange")

// ResolveIndex normalizes a user index against a length: negative k
// resolves to length+k (spec §8 boundary behaviors); the resulting index is
// accepted only when 0 <= idx < length, so indexing at length itself is out
// of range for both reads and element assignment.
func ResolveIndex(idx int64, length int) (int, error) {
	i := idx
	if i < 0 {
		i += int64(length)
	}
	if i < 0 || i >= int64(length) {
		return 0, ErrIndexOutOfRange
	}
	return int(i), nil
}

// StringCodepointAt returns the rune at codepoint index idx (after
// ResolveIndex normalization) as a single-codepoint String value.
func StringCodepointAt(v Value, idx int64) (Value, error) {
	s := v.Obj.(*String)
	i, err := ResolveIndex(idx, s.Codepoints)
	if err != nil {
		return Value{}, err
	}
	off := runeAt(s.Bytes, i)
	r, _ := utf8.DecodeRune(s.Bytes[off:])
	return MakeString([]byte(string(r)))
}

// ListElementAt returns a clone of the element at idx (after
// ResolveIndex normalization).
func ListElementAt(v Value, idx int64) (Value, error) {
	l := v.Obj.(*List)
	i, err := ResolveIndex(idx, len(l.Elements))
	if err != nil {
		return Value{}, err
	}
	return Clone(l.Elements[i]), nil
}
