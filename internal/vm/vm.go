// Package vm implements the stack-based bytecode interpreter that is
// abaci's primary executable backend (spec §4.5 "JIT driver": the module
// this package executes is what the driver's step 7 "program function
// pointer" resolves to). Function and method calls recurse through Go's
// own call stack (one runChunk invocation per call) rather than a manual
// VM frame array, the same simplification internal/ir documents: spec
// §4.5's "entry/exit blocks" become, in this backend, "the Go function
// call that is already executing this Chunk returns".
package vm

import (
	"fmt"
	"io"
	"strings"

	"github.com/abacilang/abaci/internal/ir"
	"github.com/abacilang/abaci/internal/runtimectx"
	"github.com/abacilang/abaci/internal/types"
	"github.com/abacilang/abaci/internal/values"
)

// VM ties a compiled Program to the runtime Context it executes against.
type VM struct {
	Program *ir.Program
	Ctx     *runtimectx.Context
}

// New returns a VM ready to run program against ctx.
func New(program *ir.Program, ctx *runtimectx.Context) *VM {
	return &VM{Program: program, Ctx: ctx}
}

// Run executes the module's top-level entry point, the fixed-name
// `program` chunk (spec §4.5 step 4).
func (m *VM) Run() error {
	chunk, ok := m.Program.Functions["program"]
	if !ok {
		return fmt.Errorf("vm: module has no program entry point")
	}
	frame := make([]values.Value, chunk.NumSlots)
	_, err := m.runChunk(chunk, frame)
	return err
}

// runChunk executes one compiled function/method body to completion,
// returning whatever it returned via OpReturnValue, or values.None if
// execution fell off the end of the instruction stream without an explicit
// return. Spec §4.2 already accepts that a function can type-check to
// None when no non-recursive return arm fires; a path that fails to
// execute any return at runtime degrades the same way.
func (m *VM) runChunk(chunk *ir.Chunk, frame []values.Value) (values.Value, error) {
	stack := make([]values.Value, 0, 16)
	push := func(v values.Value) { stack = append(stack, v) }
	pop := func() values.Value {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return v
	}

	ip := 0
	for ip < len(chunk.Instructions) {
		instr := chunk.Instructions[ip]
		switch instr.Op {
		case ir.OpLoadConst:
			v, _ := m.Program.Constants.Get(int(instr.A))
			push(values.Clone(v))

		case ir.OpLoadLocal:
			push(values.Clone(frame[instr.A]))
		case ir.OpLoadLocalRef:
			push(frame[instr.A])
		case ir.OpLoadGlobal:
			push(values.Clone(m.Ctx.GlobalsArray.Get(int(instr.A))))
		case ir.OpLoadGlobalRef:
			push(m.Ctx.GlobalsArray.Get(int(instr.A)))

		case ir.OpStoreInitLocal:
			frame[instr.A] = pop()
		case ir.OpStoreInitGlobal:
			m.Ctx.GlobalsArray.Set(int(instr.A), pop())
		case ir.OpStoreAssignLocal:
			values.Destroy(frame[instr.A])
			frame[instr.A] = pop()
		case ir.OpStoreAssignGlobal:
			idx := int(instr.A)
			values.Destroy(m.Ctx.GlobalsArray.Get(idx))
			m.Ctx.GlobalsArray.Set(idx, pop())

		case ir.OpGetFieldRef:
			recv := pop()
			push(recv.Obj.(*values.Instance).Fields[instr.A])
		case ir.OpGetFieldClone:
			recv := pop()
			push(values.Clone(recv.Obj.(*values.Instance).Fields[instr.A]))
		case ir.OpSetField:
			v := pop()
			recv := pop()
			f := recv.Obj.(*values.Instance)
			values.Destroy(f.Fields[instr.A])
			f.Fields[instr.A] = v

		case ir.OpIndexClone:
			idx := pop()
			lst := pop()
			v, err := values.ListElementAt(lst, idx.I)
			if err != nil {
				return values.Value{}, err
			}
			push(v)
		case ir.OpSetIndex:
			v := pop()
			idx := pop()
			lst := pop()
			l := lst.Obj.(*values.List)
			i, err := values.ResolveIndex(idx.I, len(l.Elements))
			if err != nil {
				return values.Value{}, err
			}
			values.Destroy(l.Elements[i])
			l.Elements[i] = v

		case ir.OpBinary:
			b := pop()
			a := pop()
			result, err := evalBinary(types.BinaryOperator(instr.A), types.Kind(instr.B), a, b)
			values.Destroy(a)
			values.Destroy(b)
			if err != nil {
				return values.Value{}, err
			}
			push(result)
		case ir.OpUnary:
			a := pop()
			result, err := evalUnary(types.UnaryOperator(instr.A), types.Kind(instr.B), a)
			values.Destroy(a)
			if err != nil {
				return values.Value{}, err
			}
			push(result)

		case ir.OpConvertToFloat:
			v := pop()
			push(values.NewFloat(float64(v.I)))
		case ir.OpConvertToComplex:
			v := pop()
			f := v.F
			if v.Kind.Raw() == types.Integer {
				f = float64(v.I)
			}
			push(values.MakeComplex(f, 0))
		case ir.OpToBoolean:
			v := pop()
			b := values.ToBoolean(v)
			values.Destroy(v)
			push(values.NewBool(b))
		case ir.OpTypeConv:
			v := pop()
			result, err := values.ToType(types.Kind(instr.A), v)
			values.Destroy(v)
			if err != nil {
				return values.Value{}, err
			}
			push(result)
		case ir.OpRealPart:
			v := pop()
			result, err := values.RealPart(v)
			values.Destroy(v)
			if err != nil {
				return values.Value{}, err
			}
			push(result)
		case ir.OpImagPart:
			v := pop()
			result, err := values.ImagPart(v)
			values.Destroy(v)
			if err != nil {
				return values.Value{}, err
			}
			push(result)

		case ir.OpMakeInstance:
			className := m.Program.ClassNames[instr.A]
			n := int(instr.B)
			fields := make([]values.Value, n)
			for i := n - 1; i >= 0; i-- {
				fields[i] = pop()
			}
			push(values.Value{Kind: types.Instance, Obj: &values.Instance{ClassName: className, Fields: fields}})
		case ir.OpMakeList:
			n := int(instr.A)
			els := make([]values.Value, n)
			for i := n - 1; i >= 0; i-- {
				els[i] = pop()
			}
			push(values.Value{Kind: types.List, Obj: &values.List{Elements: els}})

		case ir.OpJump:
			ip = int(instr.A)
			continue
		case ir.OpJumpIfFalse:
			v := pop()
			if !v.Bool() {
				ip = int(instr.A)
				continue
			}
		case ir.OpJumpIfTrue:
			v := pop()
			if v.Bool() {
				ip = int(instr.A)
				continue
			}

		case ir.OpCall:
			name := m.Program.CallTargets[instr.A]
			callee, ok := m.Program.Functions[name]
			if !ok {
				return values.Value{}, fmt.Errorf("vm: unresolved call target %q", name)
			}
			newFrame := make([]values.Value, callee.NumSlots)
			for i := callee.ParamCount - 1; i >= 0; i-- {
				newFrame[i] = pop()
			}
			result, err := m.runChunk(callee, newFrame)
			if err != nil {
				return values.Value{}, err
			}
			if callee.ReturnsValue {
				push(result)
			}

		case ir.OpUserInput:
			line, err := m.Ctx.Input.ReadString('\n')
			if err != nil && err != io.EOF {
				return values.Value{}, err
			}
			line = strings.TrimRight(line, "\r\n")
			s, err := values.MakeString([]byte(line))
			if err != nil {
				return values.Value{}, err
			}
			push(s)

		case ir.OpPrintValue:
			v := pop()
			fmt.Fprint(m.Ctx.Output, values.FormatValue(v))
			values.Destroy(v)
		case ir.OpPrintComma:
			fmt.Fprint(m.Ctx.Output, values.PrintComma)
		case ir.OpPrintLn:
			fmt.Fprint(m.Ctx.Output, values.PrintLn)

		case ir.OpDestroySlot:
			values.Destroy(frame[instr.A])
		case ir.OpMoveLocal:
			frame[instr.A] = frame[instr.B]
			frame[instr.B] = values.Value{}
		case ir.OpPop:
			values.Destroy(pop())

		case ir.OpReturnVoid:
			return values.None, nil
		case ir.OpReturnValue:
			return pop(), nil

		default:
			return values.Value{}, fmt.Errorf("vm: unhandled opcode %v", instr.Op)
		}
		ip++
	}
	return values.None, nil
}
