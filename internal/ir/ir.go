// Package ir defines the flat, stack-oriented instruction format the code
// generator emits and the VM executes (spec §4.3/§4.4 "IR code generator").
//
// The distilled spec describes the generator producing basic-block-shaped
// IR with explicit branch/entry/exit blocks, in the mold of a real compiler
// backend. Grounded on the teacher's own `internal/bytecode` package, this
// module instead emits a flat instruction stream per function with absolute
// jump targets for control flow and backpatched labels, the same shape the
// teacher uses for its own stack VM. Function calls are not compiled to
// explicit call/return IR linked against an exit block; they recurse through
// Go's own call stack (see internal/vm), so `return` simply stops the
// current Chunk's instruction loop rather than branching to a materialized
// exit block, a deliberate simplification of spec §4.5 step 3's "entry and
// exit blocks" language that changes no observable behavior.
package ir

import (
	"github.com/abacilang/abaci/internal/constants"
	"github.com/abacilang/abaci/internal/types"
)

// Opcode tags one VM instruction. Unlike the teacher's bit-packed
// `bytecode.OpCode` (a single byte feeding a 32-bit packed Instruction),
// opcodes here are plain Go constants over a plain struct: Go has no need
// for the teacher's manual bit-packing, and the extra clarity is worth the
// few bytes per instruction a JIT-compiled-to-bytecode language does not
// notice.
type Opcode int

const (
	OpLoadConst Opcode = iota // A: constants pool index
	OpLoadLocal               // A: frame slot index; clones before pushing
	OpLoadLocalRef            // A: frame slot index; pushes without cloning
	OpLoadGlobal              // A: global slot index; clones before pushing
	OpLoadGlobalRef           // A: global slot index; pushes without cloning

	OpStoreInitLocal   // A: frame slot index; pops and adopts (fresh slot, nothing to destroy)
	OpStoreInitGlobal  // A: global slot index; pops and adopts
	OpStoreAssignLocal // A: frame slot index; destroys old value, pops and adopts
	OpStoreAssignGlobal

	OpGetFieldRef   // A: field index; pops an instance ref, pushes the field's raw value (no clone)
	OpGetFieldClone // A: field index; pops an instance ref, pushes a clone of the field's value
	OpSetField      // A: field index; pops value then instance ref; destroys old, adopts new

	OpIndexClone // pops index then list ref, pushes a clone of the element (bounds-checked)
	OpSetIndex   // pops value, index, then list ref; destroys old element, adopts new

	OpBinary // A: types.BinaryOperator, B: raw Kind both operands were promoted to
	OpUnary  // A: types.UnaryOperator, B: raw Kind of the operand

	OpConvertToFloat   // pops an Integer, pushes a Floating (numeric promotion)
	OpConvertToComplex // pops an Integer or Floating, pushes makeComplex(x, 0)
	OpToBoolean        // pops any scalar, pushes its toBoolean() coercion
	OpTypeConv         // A: target Kind, B: source raw Kind; calls the runtime toType helper
	OpRealPart         // pops a Complex, pushes its real part as a Floating
	OpImagPart         // pops a Complex, pushes its imaginary part as a Floating

	OpMakeInstance // A: index into Program.ClassNames, B: field count; pops B values (first popped is last field) and adopts them
	OpMakeList     // A: element count; pops A values (adopted, already correctly owned) into a new List

	OpJump        // A: absolute instruction index
	OpJumpIfFalse // pops a Boolean; A: absolute instruction index taken when false
	OpJumpIfTrue  // pops a Boolean; A: absolute instruction index taken when true

	OpCall // A: index into Program.CallTargets (a mangled name); pops ArgCount values as the callee's initial frame
	OpUserInput
	OpPrintValue // pops one value and writes its formatted form to ctx.Output
	OpPrintComma
	OpPrintLn

	OpDestroySlot // A: frame slot index; runtime-support no-op marker (spec §4.6 destroy*), kept for fidelity
	OpPop         // pops the top of stack and destroys it (expression-statement / discarded call result)
	OpMoveLocal   // A: dst frame slot, B: src frame slot; transfers ownership (frame[A]=frame[B], frame[B] zeroed), no clone/destroy

	OpReturnVoid
	OpReturnValue // pops the top of stack as the chunk's result
)

// Instruction is one bytecode op plus up to two immediate operands. A and B
// are interpreted per-opcode (see the Opcode doc comments above); Kind
// fields are stored via their int value so this package does not need to
// import types beyond the alias below.
type Instruction struct {
	Op Opcode
	A  int32
	B  int32
}

// Kind and operator helpers let codegen build instructions without
// sprinkling int32 casts everywhere.
func KindOperand(k types.Kind) int32            { return int32(k) }
func BinaryOpOperand(op types.BinaryOperator) int32 { return int32(op) }
func UnaryOpOperand(op types.UnaryOperator) int32   { return int32(op) }

// Chunk is one compiled function, method, or the top-level `program` entry
// point (spec §4.5 step 3/4): its instruction stream, its frame size (the
// total number of distinct local slots codegen allocated across the whole
// body, flattened across nested blocks; see internal/codegen's frame
// allocator), and whether falling off the end of Code yields a value.
type Chunk struct {
	Name         string
	Instructions []Instruction
	NumSlots     int // frame size; slots [0,ParamCount) are the callee's parameters
	ParamCount   int
	ReturnsValue bool
}

// Program is the output of one JIT-driver compile: every chunk the current
// instantiation set produced, the constants pool baked into parallel value/
// type slices, and the side tables OpMakeInstance/OpCall index into so
// instructions can carry small integers instead of embedded strings.
type Program struct {
	Functions   map[string]*Chunk // keyed by mangled name, plus "program" for the entry point
	Constants   *constants.Pool
	ClassNames  []string
	CallTargets []string
}

func NewProgram(pool *constants.Pool) *Program {
	return &Program{Functions: make(map[string]*Chunk), Constants: pool}
}

// InternClassName returns the index of name in ClassNames, appending it if
// this is the first use (spec §4.3 "Object construction").
func (p *Program) InternClassName(name string) int32 {
	for i, n := range p.ClassNames {
		if n == name {
			return int32(i)
		}
	}
	p.ClassNames = append(p.ClassNames, name)
	return int32(len(p.ClassNames) - 1)
}

// InternCallTarget returns the index of mangledName in CallTargets,
// appending it if new.
func (p *Program) InternCallTarget(mangledName string) int32 {
	for i, n := range p.CallTargets {
		if n == mangledName {
			return int32(i)
		}
	}
	p.CallTargets = append(p.CallTargets, mangledName)
	return int32(len(p.CallTargets) - 1)
}
