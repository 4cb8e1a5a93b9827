package parser

import (
	"github.com/abacilang/abaci/internal/ast"
	"github.com/abacilang/abaci/internal/lexer"
)

func (p *Parser) parseStatement() ast.Stmt {
	switch p.cur.Type {
	case lexer.PRINT:
		return p.parsePrint()
	case lexer.LET:
		return p.parseLet()
	case lexer.IF:
		return p.parseIf()
	case lexer.WHILE:
		return p.parseWhile()
	case lexer.REPEAT:
		return p.parseRepeat()
	case lexer.CASE:
		return p.parseCase()
	case lexer.FN:
		return p.parseFunction()
	case lexer.CLASS:
		return p.parseClass()
	case lexer.RETURN:
		return p.parseReturn()
	case lexer.IDENT:
		return p.parseIdentLedStatement()
	default:
		p.errorf("unexpected token %v (%q) at start of statement", p.cur.Type, p.cur.Literal)
		return nil
	}
}

// parsePrint parses `print e1, e2, ...` with an optional trailing `;` that
// suppresses the implicit newline (spec §6). A comma always separates two
// items; since the lexer does not preserve line breaks as tokens, the
// newline-suppressing form is restricted to a trailing `;` rather than a
// trailing `,`, which would otherwise be indistinguishable from "one more
// item follows".
func (p *Parser) parsePrint() ast.Stmt {
	pos := p.pos()
	p.next() // 'print'
	var items []ast.Expr
	if !p.atStatementEnd() {
		items = append(items, p.parseExpr())
		for p.cur.Type == lexer.COMMA {
			p.next()
			items = append(items, p.parseExpr())
		}
	}
	suppress := false
	if p.cur.Type == lexer.SEMI {
		suppress = true
		p.next()
	}
	return &ast.PrintStmt{Items: items, Suppress: suppress, P: pos}
}

// atStatementEnd reports whether the current token cannot begin a print
// item, i.e. it starts a new statement, closes the enclosing block, or ends
// the input.
func (p *Parser) atStatementEnd() bool {
	switch p.cur.Type {
	case lexer.EOF, lexer.IF, lexer.WHILE, lexer.FN, lexer.CLASS, lexer.REPEAT,
		lexer.CASE, lexer.LET, lexer.PRINT, lexer.RETURN, lexer.SEMI:
		return true
	}
	return p.cur.Type.IsBlockClose()
}

func (p *Parser) parseLet() ast.Stmt {
	pos := p.pos()
	p.next() // 'let'
	name := p.expect(lexer.IDENT).Literal
	constant := true
	switch p.cur.Type {
	case lexer.SINGLEEQ:
		constant = true
	case lexer.ASSIGN:
		constant = false
	default:
		p.errorf("expected '=' or '<-' after 'let %s'", name)
	}
	p.next()
	value := p.parseExpr()
	return &ast.InitStmt{Name: name, Value: value, Constant: constant, P: pos}
}

// parseIdentLedStatement disambiguates assignment, field/index assignment,
// and a bare call/method-call statement, all of which begin with IDENT.
func (p *Parser) parseIdentLedStatement() ast.Stmt {
	pos := p.pos()
	expr := p.parsePostfix(p.parsePrimaryName())
	switch p.cur.Type {
	case lexer.ASSIGN:
		p.next()
		value := p.parseExpr()
		return assignFrom(expr, value, pos)
	default:
		return &ast.ExprStmt{Expr: expr, P: pos}
	}
}

// assignFrom turns an lvalue expression (Variable, FieldChain, or
// IndexExpr) plus an RHS into the matching assignment statement form
// (spec §4.4 "Assignment" / "Field assignment").
func assignFrom(lhs ast.Expr, value ast.Expr, pos ast.Position) ast.Stmt {
	switch e := lhs.(type) {
	case *ast.Variable:
		return &ast.AssignStmt{Name: e.Name, Value: value, P: pos}
	case *ast.FieldChain:
		return &ast.FieldAssignStmt{Receiver: e.Receiver, Fields: e.Fields, Value: value, P: pos}
	case *ast.IndexExpr:
		return &ast.IndexAssignStmt{List: e.List, Index: e.Index, Value: value, P: pos}
	default:
		return &ast.ExprStmt{Expr: value, P: pos}
	}
}

func (p *Parser) parseIf() ast.Stmt {
	pos := p.pos()
	p.next() // 'if'
	cond := p.parseExpr()
	if p.cur.Type == lexer.THEN {
		p.next()
	}
	thenBody := p.parseBlock(lexer.ELSE, lexer.ENDIF)
	var elseBody ast.StmtList
	if p.cur.Type == lexer.ELSE {
		p.next()
		elseBody = p.parseBlock(lexer.ENDIF)
	}
	p.expect(lexer.ENDIF)
	return &ast.IfStmt{Cond: cond, Then: thenBody, Else: elseBody, P: pos}
}

func (p *Parser) parseWhile() ast.Stmt {
	pos := p.pos()
	p.next() // 'while'
	cond := p.parseExpr()
	body := p.parseBlock(lexer.ENDWHILE)
	p.expect(lexer.ENDWHILE)
	return &ast.WhileStmt{Cond: cond, Body: body, P: pos}
}

func (p *Parser) parseRepeat() ast.Stmt {
	pos := p.pos()
	p.next() // 'repeat'
	body := p.parseBlock(lexer.UNTIL)
	p.expect(lexer.UNTIL)
	cond := p.parseExpr()
	return &ast.RepeatStmt{Body: body, Cond: cond, P: pos}
}

func (p *Parser) parseCase() ast.Stmt {
	pos := p.pos()
	p.next() // 'case'
	scrutinee := p.parseExpr()
	var arms []ast.CaseArm
	var elseBody ast.StmtList
	for p.cur.Type == lexer.WHEN {
		p.next()
		when := p.parseExpr()
		body := p.parseBlock(lexer.WHEN, lexer.ELSE, lexer.ENDCASE)
		arms = append(arms, ast.CaseArm{When: when, Body: body})
	}
	if p.cur.Type == lexer.ELSE {
		p.next()
		elseBody = p.parseBlock(lexer.ENDCASE)
	}
	p.expect(lexer.ENDCASE)
	return &ast.CaseStmt{Scrutinee: scrutinee, Arms: arms, Else: elseBody, P: pos}
}

func (p *Parser) parseFunction() *ast.FunctionDecl {
	pos := p.pos()
	p.next() // 'fn'
	name := p.expect(lexer.IDENT).Literal
	params := p.parseParamList()
	body := p.parseBlock(lexer.ENDFN)
	p.expect(lexer.ENDFN)
	return &ast.FunctionDecl{Name: name, Params: params, Body: body, P: pos}
}

func (p *Parser) parseParamList() []ast.Parameter {
	p.expect(lexer.LPAREN)
	var params []ast.Parameter
	for p.cur.Type != lexer.RPAREN && p.cur.Type != lexer.EOF {
		pos := p.pos()
		name := p.expect(lexer.IDENT).Literal
		params = append(params, ast.Parameter{Name: name, P: pos})
		if p.cur.Type == lexer.COMMA {
			p.next()
		}
	}
	p.expect(lexer.RPAREN)
	return params
}

func (p *Parser) parseClass() ast.Stmt {
	pos := p.pos()
	p.next() // 'class'
	name := p.expect(lexer.IDENT).Literal
	fields := p.parseParamList()
	var methods []*ast.FunctionDecl
	for p.cur.Type == lexer.FN {
		methods = append(methods, p.parseFunction())
	}
	p.expect(lexer.ENDCLASS)
	return &ast.ClassDecl{Name: name, Fields: fields, Methods: methods, P: pos}
}

func (p *Parser) parseReturn() ast.Stmt {
	pos := p.pos()
	p.next() // 'return'
	if p.atStatementEnd() {
		return &ast.ReturnStmt{P: pos}
	}
	value := p.parseExpr()
	return &ast.ReturnStmt{Value: value, P: pos}
}
