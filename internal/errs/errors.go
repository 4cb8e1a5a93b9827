package errs

import (
	"fmt"
	"strings"
)

// Position is a 1-based line/column pair; kept independent of the lexer's
// own position type so errs has no dependency on internal/lexer.
type Position struct {
	Line   int
	Column int
}

// CompilerError is a single fatal error with position and source context,
// formatted with file/line/caret the way the teacher's
// internal/errors.CompilerError does.
type CompilerError struct {
	Kind    Kind
	Message string
	Source  string
	File    string
	Pos     Position
}

// New builds a CompilerError of the given Kind.
func New(kind Kind, pos Position, message, source, file string) *CompilerError {
	return &CompilerError{Kind: kind, Message: message, Source: source, File: file, Pos: pos}
}

// Error implements the error interface.
func (e *CompilerError) Error() string { return e.Format(false) }

// Format renders the error with a file/position header, the offending
// source line, and a caret pointing at the column; `color` enables ANSI
// highlighting for terminal output (spec §6 CLI, §7 "Reported with line
// number and message").
func (e *CompilerError) Format(color bool) string {
	var sb strings.Builder
	if e.File != "" {
		fmt.Fprintf(&sb, "%s: error in %s:%d:%d: %s\n", e.Kind, e.File, e.Pos.Line, e.Pos.Column, e.Message)
	} else {
		fmt.Fprintf(&sb, "%s: error at line %d:%d: %s\n", e.Kind, e.Pos.Line, e.Pos.Column, e.Message)
	}
	line := e.sourceLine(e.Pos.Line)
	if line != "" {
		prefix := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(prefix)
		sb.WriteString(line)
		sb.WriteByte('\n')
		sb.WriteString(strings.Repeat(" ", len(prefix)+max(e.Pos.Column-1, 0)))
		if color {
			sb.WriteString("\033[1;31m^\033[0m")
		} else {
			sb.WriteByte('^')
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (e *CompilerError) sourceLine(line int) string {
	lines := strings.Split(e.Source, "\n")
	if line < 1 || line > len(lines) {
		return ""
	}
	return lines[line-1]
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// FormatErrors renders a batch of errors for REPL/CLI output (spec §6
// "REPL skips to end of input" on parse error).
func FormatErrors(errs []*CompilerError, color bool) string {
	var sb strings.Builder
	for _, e := range errs {
		sb.WriteString(e.Format(color))
	}
	return sb.String()
}
