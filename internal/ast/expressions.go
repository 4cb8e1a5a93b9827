package ast

import "github.com/abacilang/abaci/internal/types"

// Associativity tags the folding order operator chains use in both the
// type pass and the code generator (spec §9 "Expression-node variant").
type Associativity int

const (
	LeftAssoc Associativity = iota
	RightAssoc
	UnaryAssoc
	BooleanAssoc
)

// Literal is a constants-pool reference: its Kind and a stable index
// assigned at parse time when the literal is interned (spec §3).
type Literal struct {
	Kind  types.Kind
	Index int
	P     Position
}

func (l *Literal) Pos() Position { return l.P }
func (*Literal) exprNode()       {}

// Variable is a bare name reference, resolved against the lexical scope
// chain then the globals (spec §4.3 "Variable reference").
type Variable struct {
	Name string
	P    Position
}

func (v *Variable) Pos() Position { return v.P }
func (*Variable) exprNode()       {}

// OperatorExpr is a unary, binary, or right-assoc exponent application, or
// a boolean chain (spec §4.2 table, §4.3 "Boolean chains").
type OperatorExpr struct {
	Assoc    Associativity
	Operands []Expr // len==1 for UnaryAssoc, len>=2 otherwise
	// Ops holds len(Operands)-1 binary operator tags for LeftAssoc/
	// BooleanAssoc chains, or exactly one for RightAssoc (**), or exactly
	// one UnaryOperator (stored in UnaryOp) for UnaryAssoc.
	Ops     []types.BinaryOperator
	UnaryOp types.UnaryOperator
	P       Position
}

func (o *OperatorExpr) Pos() Position { return o.P }
func (*OperatorExpr) exprNode()       {}

// CallExpr invokes a class template (construction) or a function template
// (spec §4.2 "Function call").
type CallExpr struct {
	Name string
	Args []Expr
	P    Position
}

func (c *CallExpr) Pos() Position { return c.P }
func (*CallExpr) exprNode()       {}

// FieldChain is a sequence of member accesses off a receiver expression,
// e.g. `a.b.c` (spec §4.2 "Method call", §4.3 "Field access chain").
type FieldChain struct {
	Receiver Expr
	Fields   []string
	P        Position
}

func (f *FieldChain) Pos() Position { return f.P }
func (*FieldChain) exprNode()       {}

// MethodCallExpr is a field chain terminated by a method invocation:
// `a.b.method(args)` (spec §4.2 "Method call").
type MethodCallExpr struct {
	Receiver   Expr
	Fields     []string // member chain before the method, may be empty
	MethodName string
	Args       []Expr
	P          Position
}

func (m *MethodCallExpr) Pos() Position { return m.P }
func (*MethodCallExpr) exprNode()       {}

// InputExpr reads one line from the runtime context's input stream
// (spec §4.3 "User input").
type InputExpr struct{ P Position }

func (i *InputExpr) Pos() Position { return i.P }
func (*InputExpr) exprNode()       {}

// TypeConvExpr is a conversion expression `T(e)` (spec §4.2 "Type
// conversion"). Per spec §9's design notes the original shares this node
// via a reference-counted pointer; here it owns its child by value.
type TypeConvExpr struct {
	Target types.Kind
	Arg    Expr
	P      Position
}

func (t *TypeConvExpr) Pos() Position { return t.P }
func (*TypeConvExpr) exprNode()       {}

// ListLiteral is `[e1, e2, ...]` or the empty-list-with-annotation form
// `[int]` (spec §8 "Boundary behaviors"). ElementTypeHint is set only for
// an explicitly annotated empty list; it is types.Type{} (zero value)
// otherwise, in which case the element type is inferred from Elements.
type ListLiteral struct {
	Elements        []Expr
	ElementTypeHint types.Type
	HasHint         bool
	P               Position
}

func (l *ListLiteral) Pos() Position { return l.P }
func (*ListLiteral) exprNode()       {}

// IndexExpr is `list[idx]` or, through a field chain, `a.b[idx]`
// (spec §4.2, §4.3 "Field access chain"/index variants: "field-list
// index" in spec §9's expression-node variant list).
type IndexExpr struct {
	List  Expr
	Index Expr
	P     Position
}

func (i *IndexExpr) Pos() Position { return i.P }
func (*IndexExpr) exprNode()       {}
