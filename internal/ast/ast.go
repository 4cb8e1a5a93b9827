// Package ast defines abaci's abstract syntax tree. Per spec §9's design
// notes, statements and expressions are modeled as tagged variants (Go
// interfaces implemented by a fixed set of concrete node types) rather than
// as a virtual base class hierarchy with runtime-type-dispatched visitors:
// the type pass and the code generator each dispatch on the concrete node
// type with a Go type switch. Node shapes mirror the teacher's
// internal/ast package's struct-per-form layout.
package ast

// Position records a 1-based line/column, used for error reporting.
type Position struct {
	Line   int
	Column int
}

// Node is implemented by every AST node so the position is always
// available for diagnostics.
type Node interface {
	Pos() Position
}

// Stmt is the tagged variant over abaci's statement forms (spec §9):
// print, init (let), assign, if, while, repeat, case, function, call,
// return, expr-function, class, data-assign (field assignment),
// method-call, expression-statement.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is the tagged variant over abaci's expression forms (spec §9):
// literal, operator chain, variable, function call, field chain, method
// call, input, type conversion, list literal, list index, field-list
// index.
type Expr interface {
	Node
	exprNode()
}

// StmtList is a sequence of statements sharing one lexical scope and one
// Temporaries lifetime (spec §4.4 "Block entry").
type StmtList []Stmt

// Parameter names a function/method parameter or a class field declaration,
// both of which are just (name) pairs at parse time; their types are
// resolved later by the type pass from call-site argument types, since the
// language has no parameter-type annotations (spec §4.2 instantiation).
type Parameter struct {
	Name string
	P    Position
}

func (p Parameter) Pos() Position { return p.P }
