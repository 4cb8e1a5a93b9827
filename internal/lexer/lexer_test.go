package lexer

import "testing"

func tokens(src string) []Token {
	l := New(src)
	var out []Token
	for {
		tok := l.Next()
		out = append(out, tok)
		if tok.Type == EOF {
			return out
		}
	}
}

func TestKeywordsAndAssign(t *testing.T) {
	toks := tokens("let n <- 10")
	want := []TokenType{LET, IDENT, ASSIGN, INT, EOF}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %+v", len(toks), len(want), toks)
	}
	for i, w := range want {
		if toks[i].Type != w {
			t.Errorf("token %d: got %v want %v", i, toks[i].Type, w)
		}
	}
}

func TestComplexNumberSuffix(t *testing.T) {
	toks := tokens("4j")
	if toks[0].Type != FLOAT || toks[0].Literal != "4j" {
		t.Fatalf("got %+v", toks[0])
	}
}

func TestHexBinOctLiterals(t *testing.T) {
	toks := tokens("0x1F 0b1010")
	if toks[0].Literal != "0x1F" || toks[1].Literal != "0b1010" {
		t.Fatalf("got %+v", toks)
	}
}

func TestBlockKeywordClassification(t *testing.T) {
	if !IF.IsBlockOpen() || !ENDIF.IsBlockClose() {
		t.Fatal("if/endif must be classified as block open/close")
	}
	if LET.IsBlockOpen() || LET.IsBlockClose() {
		t.Fatal("let is not a block keyword")
	}
}

func TestStringEscapes(t *testing.T) {
	toks := tokens(`"a\nb"`)
	if toks[0].Literal != "a\nb" {
		t.Fatalf("got %q", toks[0].Literal)
	}
}

func TestCommentSkipped(t *testing.T) {
	toks := tokens("let x = 1 # trailing comment\nprint x")
	if toks[0].Type != LET {
		t.Fatalf("got %+v", toks[0])
	}
	var found bool
	for _, tk := range toks {
		if tk.Type == PRINT {
			found = true
		}
	}
	if !found {
		t.Fatal("expected print token after comment line")
	}
}
