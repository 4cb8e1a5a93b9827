package parser

import (
	"github.com/abacilang/abaci/internal/ast"
	"github.com/abacilang/abaci/internal/lexer"
	"github.com/abacilang/abaci/internal/types"
	"github.com/abacilang/abaci/internal/values"
)

// typeConvNames maps the lowercase conversion-call identifiers to the Kind
// they target, matching types.DisplayName's own names so `str(x)` etc. read
// back the way the type pass reports them in diagnostics.
var typeConvNames = map[string]types.Kind{
	"bool": types.Boolean, "int": types.Integer, "float": types.Floating,
	"complex": types.Complex, "str": types.String,
	"real": types.Real, "imag": types.Imag,
}

// parseExpr is the entry point of the precedence chain: or → and → not →
// comparison chain → bitor → bitxor → bitand → additive → multiplicative →
// exponent (right-assoc) → unary → postfix → primary (spec §4.2 table).
func (p *Parser) parseExpr() ast.Expr {
	return p.parseOr()
}

func (p *Parser) parseOr() ast.Expr {
	left := p.parseAnd()
	if p.cur.Type != lexer.OR {
		return left
	}
	pos := left.Pos()
	operands := []ast.Expr{left}
	var ops []types.BinaryOperator
	for p.cur.Type == lexer.OR {
		p.next()
		ops = append(ops, types.Or)
		operands = append(operands, p.parseAnd())
	}
	return &ast.OperatorExpr{Assoc: ast.LeftAssoc, Operands: operands, Ops: ops, P: pos}
}

func (p *Parser) parseAnd() ast.Expr {
	left := p.parseNot()
	if p.cur.Type != lexer.AND {
		return left
	}
	pos := left.Pos()
	operands := []ast.Expr{left}
	var ops []types.BinaryOperator
	for p.cur.Type == lexer.AND {
		p.next()
		ops = append(ops, types.And)
		operands = append(operands, p.parseNot())
	}
	return &ast.OperatorExpr{Assoc: ast.LeftAssoc, Operands: operands, Ops: ops, P: pos}
}

func (p *Parser) parseNot() ast.Expr {
	if p.cur.Type == lexer.NOT {
		pos := p.pos()
		p.next()
		operand := p.parseNot()
		return &ast.OperatorExpr{Assoc: ast.UnaryAssoc, Operands: []ast.Expr{operand}, UnaryOp: types.Not, P: pos}
	}
	return p.parseComparison()
}

// comparisonOps maps a comparison token to its operator tag. Chained
// comparisons (`a < b < c`) fold as a BooleanAssoc OperatorExpr, each pair
// evaluated and implicitly and-ed together (spec §4.3 "Boolean chains").
var comparisonOps = map[lexer.TokenType]types.BinaryOperator{
	lexer.EQ: types.Eq, lexer.NE: types.Ne,
	lexer.LT: types.Lt, lexer.LE: types.Le,
	lexer.GT: types.Gt, lexer.GE: types.Ge,
}

func (p *Parser) parseComparison() ast.Expr {
	left := p.parseBitOr()
	op, ok := comparisonOps[p.cur.Type]
	if !ok {
		return left
	}
	pos := left.Pos()
	operands := []ast.Expr{left}
	var ops []types.BinaryOperator
	for {
		op, ok = comparisonOps[p.cur.Type]
		if !ok {
			break
		}
		p.next()
		ops = append(ops, op)
		operands = append(operands, p.parseBitOr())
	}
	return &ast.OperatorExpr{Assoc: ast.BooleanAssoc, Operands: operands, Ops: ops, P: pos}
}

func (p *Parser) parseBitOr() ast.Expr {
	left := p.parseBitXor()
	if p.cur.Type != lexer.PIPE {
		return left
	}
	pos := left.Pos()
	operands := []ast.Expr{left}
	var ops []types.BinaryOperator
	for p.cur.Type == lexer.PIPE {
		p.next()
		ops = append(ops, types.BitOr)
		operands = append(operands, p.parseBitXor())
	}
	return &ast.OperatorExpr{Assoc: ast.LeftAssoc, Operands: operands, Ops: ops, P: pos}
}

func (p *Parser) parseBitXor() ast.Expr {
	left := p.parseBitAnd()
	if p.cur.Type != lexer.CARET {
		return left
	}
	pos := left.Pos()
	operands := []ast.Expr{left}
	var ops []types.BinaryOperator
	for p.cur.Type == lexer.CARET {
		p.next()
		ops = append(ops, types.BitXor)
		operands = append(operands, p.parseBitAnd())
	}
	return &ast.OperatorExpr{Assoc: ast.LeftAssoc, Operands: operands, Ops: ops, P: pos}
}

func (p *Parser) parseBitAnd() ast.Expr {
	left := p.parseAdditive()
	if p.cur.Type != lexer.AMP {
		return left
	}
	pos := left.Pos()
	operands := []ast.Expr{left}
	var ops []types.BinaryOperator
	for p.cur.Type == lexer.AMP {
		p.next()
		ops = append(ops, types.BitAnd)
		operands = append(operands, p.parseAdditive())
	}
	return &ast.OperatorExpr{Assoc: ast.LeftAssoc, Operands: operands, Ops: ops, P: pos}
}

func (p *Parser) parseAdditive() ast.Expr {
	left := p.parseMultiplicative()
	for p.cur.Type == lexer.PLUS || p.cur.Type == lexer.MINUS {
		pos := left.Pos()
		op := types.Add
		if p.cur.Type == lexer.MINUS {
			op = types.Sub
		}
		p.next()
		right := p.parseMultiplicative()
		left = &ast.OperatorExpr{Assoc: ast.LeftAssoc, Operands: []ast.Expr{left, right}, Ops: []types.BinaryOperator{op}, P: pos}
	}
	return left
}

func (p *Parser) parseMultiplicative() ast.Expr {
	left := p.parseExponent()
	for {
		var op types.BinaryOperator
		switch p.cur.Type {
		case lexer.STAR:
			op = types.Mul
		case lexer.SLASH:
			op = types.Div
		case lexer.SLASHSLASH:
			op = types.IDiv
		case lexer.PERCENT:
			op = types.Mod
		default:
			return left
		}
		pos := left.Pos()
		p.next()
		right := p.parseExponent()
		left = &ast.OperatorExpr{Assoc: ast.LeftAssoc, Operands: []ast.Expr{left, right}, Ops: []types.BinaryOperator{op}, P: pos}
	}
}

// parseExponent is right-associative: `2**3**2` parses as `2**(3**2)`.
func (p *Parser) parseExponent() ast.Expr {
	left := p.parseUnary()
	if p.cur.Type != lexer.STARSTAR {
		return left
	}
	pos := left.Pos()
	p.next()
	right := p.parseExponent()
	return &ast.OperatorExpr{Assoc: ast.RightAssoc, Operands: []ast.Expr{left, right}, Ops: []types.BinaryOperator{types.Pow}, P: pos}
}

func (p *Parser) parseUnary() ast.Expr {
	switch p.cur.Type {
	case lexer.MINUS:
		pos := p.pos()
		p.next()
		return &ast.OperatorExpr{Assoc: ast.UnaryAssoc, Operands: []ast.Expr{p.parseUnary()}, UnaryOp: types.Neg, P: pos}
	case lexer.TILDE:
		pos := p.pos()
		p.next()
		return &ast.OperatorExpr{Assoc: ast.UnaryAssoc, Operands: []ast.Expr{p.parseUnary()}, UnaryOp: types.BitNot, P: pos}
	default:
		return p.parsePostfix(p.parsePrimary())
	}
}

// parsePostfix applies `.field`/`.method(args)`/`[index]` suffixes, which
// may chain and interleave arbitrarily (`a.b[0].c(1)`), to a parsed primary.
func (p *Parser) parsePostfix(expr ast.Expr) ast.Expr {
	for {
		switch p.cur.Type {
		case lexer.DOT:
			expr = p.parseDotChain(expr)
		case lexer.LBRACKET:
			pos := p.pos()
			p.next()
			idx := p.parseExpr()
			p.expect(lexer.RBRACKET)
			expr = &ast.IndexExpr{List: expr, Index: idx, P: pos}
		default:
			return expr
		}
	}
}

// parseDotChain consumes one run of consecutive `.ident` accesses off
// receiver, folding a trailing `.ident(args)` into a MethodCallExpr and any
// leading run of plain accesses into FieldChain.Fields (spec §4.2 "Method
// call", §4.3 "Field access chain").
func (p *Parser) parseDotChain(receiver ast.Expr) ast.Expr {
	pos := p.pos()
	expr := receiver
	var fields []string
	for p.cur.Type == lexer.DOT {
		p.next()
		name := p.expect(lexer.IDENT).Literal
		if p.cur.Type == lexer.LPAREN {
			args := p.parseArgList()
			expr = &ast.MethodCallExpr{Receiver: expr, Fields: fields, MethodName: name, Args: args, P: pos}
			fields = nil
			continue
		}
		fields = append(fields, name)
	}
	if len(fields) > 0 {
		expr = &ast.FieldChain{Receiver: expr, Fields: fields, P: pos}
	}
	return expr
}

func (p *Parser) parseArgList() []ast.Expr {
	p.expect(lexer.LPAREN)
	var args []ast.Expr
	for p.cur.Type != lexer.RPAREN && p.cur.Type != lexer.EOF {
		args = append(args, p.parseExpr())
		if p.cur.Type == lexer.COMMA {
			p.next()
		}
	}
	p.expect(lexer.RPAREN)
	return args
}

func (p *Parser) parsePrimary() ast.Expr {
	pos := p.pos()
	switch p.cur.Type {
	case lexer.INT:
		lit := p.cur.Literal
		p.next()
		n, err := values.ParseIntToken(lit)
		if err != nil {
			p.errorf("bad integer literal %q: %v", lit, err)
		}
		idx := p.pool.Add(values.NewInt(n), types.IntegerType)
		return &ast.Literal{Kind: types.Integer, Index: idx, P: pos}
	case lexer.FLOAT:
		lit := p.cur.Literal
		p.next()
		v, err := values.ParseFloatOrComplexToken(lit)
		if err != nil {
			p.errorf("bad numeric literal %q: %v", lit, err)
			v = values.NewFloat(0)
		}
		idx := p.pool.Add(v, types.Scalar(v.Kind.Raw()))
		return &ast.Literal{Kind: v.Kind.Raw(), Index: idx, P: pos}
	case lexer.STRING:
		lit := p.cur.Literal
		p.next()
		v, err := values.MakeString([]byte(lit))
		if err != nil {
			p.errorf("bad string literal: %v", err)
			v = values.Value{Kind: types.String}
		}
		idx := p.pool.Add(v, types.StringType)
		return &ast.Literal{Kind: types.String, Index: idx, P: pos}
	case lexer.TRUE, lexer.FALSE:
		b := p.cur.Type == lexer.TRUE
		p.next()
		idx := p.pool.Add(values.NewBool(b), types.BooleanType)
		return &ast.Literal{Kind: types.Boolean, Index: idx, P: pos}
	case lexer.NONE:
		p.next()
		idx := p.pool.Add(values.None, types.NoneType)
		return &ast.Literal{Kind: types.None, Index: idx, P: pos}
	case lexer.IDENT:
		return p.parseIdentPrimary()
	case lexer.LPAREN:
		p.next()
		e := p.parseExpr()
		p.expect(lexer.RPAREN)
		return e
	case lexer.LBRACKET:
		return p.parseListLiteral()
	default:
		p.errorf("unexpected token %v (%q) in expression", p.cur.Type, p.cur.Literal)
		idx := p.pool.Add(values.None, types.NoneType)
		p.next()
		return &ast.Literal{Kind: types.None, Index: idx, P: pos}
	}
}

// parseIdentPrimary resolves an identifier-led primary into a type
// conversion, the `input()` builtin, a function/class call, or a bare
// variable reference (spec §4.2 "Function call", §4.3 "User input").
func (p *Parser) parseIdentPrimary() ast.Expr {
	pos := p.pos()
	name := p.cur.Literal
	p.next()
	if kind, ok := typeConvNames[name]; ok && p.cur.Type == lexer.LPAREN {
		p.next()
		arg := p.parseExpr()
		p.expect(lexer.RPAREN)
		return &ast.TypeConvExpr{Target: kind, Arg: arg, P: pos}
	}
	if name == "input" && p.cur.Type == lexer.LPAREN {
		p.next()
		p.expect(lexer.RPAREN)
		return &ast.InputExpr{P: pos}
	}
	if p.cur.Type == lexer.LPAREN {
		return &ast.CallExpr{Name: name, Args: p.parseArgList(), P: pos}
	}
	return &ast.Variable{Name: name, P: pos}
}

// parseListLiteral handles both `[e1, e2, ...]` and the empty-list type
// annotation form `[str]` used to fix an otherwise-unknowable element type
// (spec §8 "Boundary behaviors").
func (p *Parser) parseListLiteral() ast.Expr {
	pos := p.pos()
	p.next() // '['
	if p.cur.Type == lexer.RBRACKET {
		p.next()
		return &ast.ListLiteral{P: pos}
	}
	if p.cur.Type == lexer.IDENT && p.peek.Type == lexer.RBRACKET {
		if kind, ok := typeConvNames[p.cur.Literal]; ok {
			p.next() // type name
			p.next() // ']'
			return &ast.ListLiteral{ElementTypeHint: types.Scalar(kind), HasHint: true, P: pos}
		}
	}
	var elems []ast.Expr
	elems = append(elems, p.parseExpr())
	for p.cur.Type == lexer.COMMA {
		p.next()
		if p.cur.Type == lexer.RBRACKET {
			break
		}
		elems = append(elems, p.parseExpr())
	}
	p.expect(lexer.RBRACKET)
	return &ast.ListLiteral{Elements: elems, P: pos}
}

// parsePrimaryName parses an identifier-led expression as the start of a
// statement, used by the caller to decide between an assignment form and a
// bare call/expression statement.
func (p *Parser) parsePrimaryName() ast.Expr {
	return p.parseIdentPrimary()
}
