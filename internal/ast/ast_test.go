package ast

import "testing"

func TestNodePositions(t *testing.T) {
	nodes := []Node{
		&Literal{P: Position{Line: 1, Column: 2}},
		&Variable{P: Position{Line: 3, Column: 4}},
		&PrintStmt{P: Position{Line: 5, Column: 6}},
	}
	want := []Position{{1, 2}, {3, 4}, {5, 6}}
	for i, n := range nodes {
		if n.Pos() != want[i] {
			t.Errorf("node %d: Pos() = %+v, want %+v", i, n.Pos(), want[i])
		}
	}
}

func TestStmtExprTagging(t *testing.T) {
	var _ Stmt = (*PrintStmt)(nil)
	var _ Stmt = (*IfStmt)(nil)
	var _ Stmt = (*ReturnStmt)(nil)
	var _ Expr = (*CallExpr)(nil)
	var _ Expr = (*MethodCallExpr)(nil)
	var _ Expr = (*ListLiteral)(nil)
}
