// Package types implements abaci's scalar kinds, composite type descriptors,
// the promotion lattice, and name mangling (spec §3, §4.1).
package types

import "fmt"

// Kind is the closed set of scalar value kinds a Value can carry, plus the
// two inference-only pseudo-kinds Real/Imag and the Constant modifier bit.
type Kind uint8

const (
	None Kind = iota
	Boolean
	Integer
	Floating
	Complex
	String
	Instance
	List

	// TypeMask isolates the raw kind from the Constant bit.
	TypeMask Kind = 0x0f

	// Real and Imag are inference-only conversion targets; they are erased
	// to Floating before any value of that kind is stored (spec §3).
	Real Kind = iota
	Imag

	// Constant is OR'd onto a raw Kind to mark an immutable binding.
	Constant Kind = 0x40
)

func (k Kind) String() string {
	switch k.Raw() {
	case None:
		return "None"
	case Boolean:
		return "Boolean"
	case Integer:
		return "Integer"
	case Floating:
		return "Floating"
	case Complex:
		return "Complex"
	case String:
		return "String"
	case Instance:
		return "Instance"
	case List:
		return "List"
	case Real:
		return "Real"
	case Imag:
		return "Imag"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Raw strips the Constant bit, returning the bare scalar kind.
func (k Kind) Raw() Kind { return k & TypeMask }

// IsConst reports whether the Constant bit is set.
func (k Kind) IsConst() bool { return k&Constant != 0 }

// WithConst returns k with the Constant bit set.
func (k Kind) WithConst() Kind { return k | Constant }

// WithoutConst returns k with the Constant bit cleared.
func (k Kind) WithoutConst() Kind { return k &^ Constant }

// IsHeap reports whether values of this raw kind are heap-allocated objects
// (as opposed to living directly in a 64-bit Value slot).
func (k Kind) IsHeap() bool {
	switch k.Raw() {
	case Complex, String, Instance, List:
		return true
	default:
		return false
	}
}

// rank places a scalar kind on the promotion lattice Boolean < Integer <
// Floating < Complex (spec §3). Kinds outside the lattice (String, None,
// Real, Imag) return -1.
func (k Kind) rank() int {
	switch k.Raw() {
	case Boolean:
		return 0
	case Integer:
		return 1
	case Floating:
		return 2
	case Complex:
		return 3
	default:
		return -1
	}
}
