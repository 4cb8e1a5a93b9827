package typeinfer

import (
	"github.com/abacilang/abaci/internal/ast"
	"github.com/abacilang/abaci/internal/types"
)

// Info is the side-table the type pass hands to the code generator: the
// type resolved for every expression node, keyed by the node's own pointer
// identity (the AST is walked once by each instantiation's Checker, so the
// pointers are stable for the lifetime of one compile). This is the Go
// stand-in for the "operand stack" idiom spec §9 calls contract-equivalent
// to a direct recursive-return: the code generator never recomputes a
// type, it looks up what this pass already decided.
type Info struct {
	Types map[ast.Expr]types.Type
}

func newInfo() *Info {
	return &Info{Types: make(map[ast.Expr]types.Type)}
}

func (i *Info) record(e ast.Expr, t types.Type) types.Type {
	i.Types[e] = t
	return t
}

// TypeOf returns the type recorded for e, or None if e was never visited
// (an internal inconsistency if it happens for code the generator reaches).
func (i *Info) TypeOf(e ast.Expr) types.Type {
	if t, ok := i.Types[e]; ok {
		return t
	}
	return types.NoneType
}
