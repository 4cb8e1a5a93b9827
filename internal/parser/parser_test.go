package parser

import (
	"testing"

	"github.com/abacilang/abaci/internal/ast"
	"github.com/abacilang/abaci/internal/lexer"
)

func parse(t *testing.T, src string) ast.StmtList {
	t.Helper()
	p := New(lexer.New(src))
	stmts := p.ParseProgram()
	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected parse errors for %q: %v", src, p.Errors())
	}
	return stmts
}

func TestParseLetAndPrint(t *testing.T) {
	stmts := parse(t, "let x = 5\nprint x")
	if len(stmts) != 2 {
		t.Fatalf("got %d stmts, want 2: %+v", len(stmts), stmts)
	}
	init, ok := stmts[0].(*ast.InitStmt)
	if !ok || !init.Constant || init.Name != "x" {
		t.Fatalf("got %+v", stmts[0])
	}
	if _, ok := stmts[1].(*ast.PrintStmt); !ok {
		t.Fatalf("got %+v", stmts[1])
	}
}

func TestParseMutableLet(t *testing.T) {
	stmts := parse(t, "let n <- 0")
	init := stmts[0].(*ast.InitStmt)
	if init.Constant {
		t.Fatal("expected mutable binding for <-")
	}
}

func TestParseAssignAndWhile(t *testing.T) {
	stmts := parse(t, "let n <- 0\nwhile n < 3\nn <- n + 1\nendwhile")
	w, ok := stmts[1].(*ast.WhileStmt)
	if !ok {
		t.Fatalf("got %+v", stmts[1])
	}
	if len(w.Body) != 1 {
		t.Fatalf("body len = %d", len(w.Body))
	}
	if _, ok := w.Body[0].(*ast.AssignStmt); !ok {
		t.Fatalf("got %+v", w.Body[0])
	}
}

func TestParseIfElse(t *testing.T) {
	stmts := parse(t, "if x > 0 then\nprint x\nelse\nprint 0\nendif")
	ifs, ok := stmts[0].(*ast.IfStmt)
	if !ok {
		t.Fatalf("got %+v", stmts[0])
	}
	if len(ifs.Then) != 1 || len(ifs.Else) != 1 {
		t.Fatalf("got then=%d else=%d", len(ifs.Then), len(ifs.Else))
	}
}

func TestParseRepeatUntil(t *testing.T) {
	stmts := parse(t, "repeat\nprint 1\nuntil true")
	r, ok := stmts[0].(*ast.RepeatStmt)
	if !ok || len(r.Body) != 1 {
		t.Fatalf("got %+v", stmts[0])
	}
}

func TestParseFunctionDecl(t *testing.T) {
	stmts := parse(t, "fn add(a, b)\nreturn a + b\nendfn")
	fn, ok := stmts[0].(*ast.FunctionDecl)
	if !ok || fn.Name != "add" || len(fn.Params) != 2 {
		t.Fatalf("got %+v", stmts[0])
	}
	ret, ok := fn.Body[0].(*ast.ReturnStmt)
	if !ok || ret.Value == nil {
		t.Fatalf("got %+v", fn.Body[0])
	}
}

func TestParseClassDeclWithMethod(t *testing.T) {
	stmts := parse(t, "class Point(x, y)\nfn sum()\nreturn x + y\nendfn\nendclass")
	cls, ok := stmts[0].(*ast.ClassDecl)
	if !ok || cls.Name != "Point" || len(cls.Fields) != 2 || len(cls.Methods) != 1 {
		t.Fatalf("got %+v", stmts[0])
	}
}

func TestParseExponentRightAssoc(t *testing.T) {
	stmts := parse(t, "print 2 ** 3 ** 2")
	pr := stmts[0].(*ast.PrintStmt)
	op := pr.Items[0].(*ast.OperatorExpr)
	if op.Assoc != ast.RightAssoc {
		t.Fatalf("got assoc %v", op.Assoc)
	}
	rhs, ok := op.Operands[1].(*ast.OperatorExpr)
	if !ok || rhs.Assoc != ast.RightAssoc {
		t.Fatalf("expected right operand to itself be a ** chain, got %+v", op.Operands[1])
	}
}

func TestParseFieldChainAndMethodCall(t *testing.T) {
	stmts := parse(t, "a.b.c(1, 2)")
	es := stmts[0].(*ast.ExprStmt)
	mc, ok := es.Expr.(*ast.MethodCallExpr)
	if !ok || mc.MethodName != "c" || len(mc.Fields) != 1 || mc.Fields[0] != "b" {
		t.Fatalf("got %+v", es.Expr)
	}
}

func TestParseIndexAssign(t *testing.T) {
	stmts := parse(t, "xs[0] <- 5")
	ia, ok := stmts[0].(*ast.IndexAssignStmt)
	if !ok {
		t.Fatalf("got %+v", stmts[0])
	}
	if _, ok := ia.List.(*ast.Variable); !ok {
		t.Fatalf("got list expr %+v", ia.List)
	}
}

func TestParseListLiteralAndEmptyHint(t *testing.T) {
	stmts := parse(t, "print [1, 2, 3]\nprint [int]")
	lit := stmts[0].(*ast.PrintStmt).Items[0].(*ast.ListLiteral)
	if len(lit.Elements) != 3 || lit.HasHint {
		t.Fatalf("got %+v", lit)
	}
	hint := stmts[1].(*ast.PrintStmt).Items[0].(*ast.ListLiteral)
	if !hint.HasHint || len(hint.Elements) != 0 {
		t.Fatalf("got %+v", hint)
	}
}

func TestParseTypeConversionAndInput(t *testing.T) {
	stmts := parse(t, "let x = int(input())")
	init := stmts[0].(*ast.InitStmt)
	conv, ok := init.Value.(*ast.TypeConvExpr)
	if !ok {
		t.Fatalf("got %+v", init.Value)
	}
	if _, ok := conv.Arg.(*ast.InputExpr); !ok {
		t.Fatalf("got %+v", conv.Arg)
	}
}

func TestParseCaseStmt(t *testing.T) {
	stmts := parse(t, "case n\nwhen 1\nprint 1\nwhen 2\nprint 2\nelse\nprint 0\nendcase")
	cs, ok := stmts[0].(*ast.CaseStmt)
	if !ok || len(cs.Arms) != 2 || len(cs.Else) != 1 {
		t.Fatalf("got %+v", stmts[0])
	}
}

func TestConstantsPoolDeduplicates(t *testing.T) {
	p := New(lexer.New("print 1\nprint 1"))
	p.ParseProgram()
	if p.Constants().Len() != 1 {
		t.Fatalf("expected the literal 1 to be deduplicated, pool len = %d", p.Constants().Len())
	}
}
