// Package parser turns a token stream into an abaci AST. Per spec §1 the
// concrete grammar and parser are contracted out of the core; this
// recursive-descent implementation exists only to drive the type
// inference engine, code generator, and JIT driver described by spec §4.
// Its shape (cursor-style token lookahead, a flat `Errors()` list rather
// than panicking) follows the teacher's internal/parser package.
package parser

import (
	"fmt"

	"github.com/abacilang/abaci/internal/ast"
	"github.com/abacilang/abaci/internal/constants"
	"github.com/abacilang/abaci/internal/lexer"
)

// Parser consumes a lexer.Lexer and produces an ast.StmtList. It also owns
// the constants pool that Literal nodes index into, since literals are
// interned the moment the parser sees them (spec §3).
type Parser struct {
	l      *lexer.Lexer
	cur    lexer.Token
	peek   lexer.Token
	errors []string
	pool   *constants.Pool
}

// New returns a Parser positioned at the first token of src.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l, pool: constants.New()}
	p.next()
	p.next()
	return p
}

// Constants returns the pool populated by every Literal parsed so far.
func (p *Parser) Constants() *constants.Pool { return p.pool }

func (p *Parser) next() {
	p.cur = p.peek
	p.peek = p.l.Next()
}

// Errors returns every parse error accumulated so far.
func (p *Parser) Errors() []string { return p.errors }

func (p *Parser) errorf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	p.errors = append(p.errors, fmt.Sprintf("line %d:%d: %s", p.cur.Pos.Line, p.cur.Pos.Column, msg))
}

func (p *Parser) expect(tt lexer.TokenType) lexer.Token {
	tok := p.cur
	if p.cur.Type != tt {
		p.errorf("expected token %v, got %v (%q)", tt, p.cur.Type, p.cur.Literal)
	}
	p.next()
	return tok
}

func (p *Parser) pos() ast.Position {
	return ast.Position{Line: p.cur.Pos.Line, Column: p.cur.Pos.Column}
}

// ParseProgram parses a whole file or a sequence of top-level statements
// (spec §6 CLI "two modes"), returning as much of the AST as could be
// recovered; callers must check Errors() before using the result.
func (p *Parser) ParseProgram() ast.StmtList {
	var stmts ast.StmtList
	for p.cur.Type != lexer.EOF {
		stmt := p.parseStatement()
		if stmt != nil {
			stmts = append(stmts, stmt)
		} else {
			p.next() // error recovery: skip the offending token
		}
	}
	return stmts
}

// parseBlock parses statements until one of the given closing keywords
// is reached, leaving cur positioned at the closer (caller consumes it).
func (p *Parser) parseBlock(closers ...lexer.TokenType) ast.StmtList {
	var stmts ast.StmtList
	for p.cur.Type != lexer.EOF && !isOneOf(p.cur.Type, closers) {
		stmt := p.parseStatement()
		if stmt != nil {
			stmts = append(stmts, stmt)
		} else {
			p.next()
		}
	}
	return stmts
}

func isOneOf(tt lexer.TokenType, set []lexer.TokenType) bool {
	for _, s := range set {
		if tt == s {
			return true
		}
	}
	return false
}
