package errs

import (
	"strings"
	"testing"
)

func TestFormatIncludesCaretAndLine(t *testing.T) {
	src := "let x = 1\nf <- f + 1\n"
	e := New(NoConstantAssign, Position{Line: 2, Column: 1}, "cannot assign to constant f", src, "prog.ab")
	out := e.Format(false)
	if !strings.Contains(out, "NoConstantAssign") {
		t.Fatalf("expected kind in output: %q", out)
	}
	if !strings.Contains(out, "f <- f + 1") {
		t.Fatalf("expected source line in output: %q", out)
	}
	if !strings.Contains(out, "^") {
		t.Fatalf("expected caret in output: %q", out)
	}
}

func TestFormatErrorsBatch(t *testing.T) {
	e1 := New(ParseError, Position{1, 1}, "unexpected token", "x", "")
	e2 := New(VariableNotExist, Position{2, 1}, "y", "x\ny", "")
	out := FormatErrors([]*CompilerError{e1, e2}, false)
	if !strings.Contains(out, "ParseError") || !strings.Contains(out, "VariableNotExist") {
		t.Fatalf("expected both kinds present: %q", out)
	}
}
