// Package repl implements the interactive prompt mode spec §6 describes:
// "print a greeting including a version string... thereafter alternate
// prompts: `> ` when a new statement is expected, `. ` when continuation
// is needed... input ending in the 'exit' keyword terminates the REPL."
//
// The teacher's own REPL shape is not available: go-dws ships only a
// file-running `run` subcommand, no interactive loop. So this
// package is built fresh in the teacher's idiom (a small hand-written
// read loop around the same lexer/parser/jit pipeline cmd/abaci's file
// mode drives), using the block-open/close keyword pairing
// internal/lexer.TokenType.IsBlockOpen/IsBlockClose exposes specifically
// for this purpose.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/abacilang/abaci/internal/errs"
	"github.com/abacilang/abaci/internal/jit"
	"github.com/abacilang/abaci/internal/lexer"
)

// Version is the version string the greeting reports (spec §6).
const Version = "0.1.0"

// Prompt is printed when a new top-level statement is expected.
const Prompt = "> "

// ContinuePrompt is printed when the accumulated input has an unclosed
// block (spec §6 "`. ` when continuation is needed").
const ContinuePrompt = ". "

// exitKeyword terminates the REPL when it appears as a bare line (spec §6
// "an 'exit' keyword... input ending in the 'exit' keyword terminates the
// REPL").
const exitKeyword = "exit"

// REPL drives one interactive session: reading lines, detecting whether
// the accumulated buffer is a complete submission, and handing complete
// submissions to a jit.Session for compilation and execution.
type REPL struct {
	in      *bufio.Reader
	out     io.Writer
	session *jit.Session
}

// New returns a REPL reading lines from in and writing prompts/output/
// errors to out. The REPL reads its own prompt lines and the running
// program's `input` expression both read through the same *bufio.Reader
// (the REPL's own read calls pull directly from it; runtimectx wraps it a
// second time for userInput, a harmless double-wrap since both views
// bottom out on the one underlying reader, so no byte is ever buffered
// into a view the other side cannot see), so the two never race over
// separately buffered copies of the same stream.
func New(in io.Reader, out io.Writer) *REPL {
	buffered := bufio.NewReader(in)
	return &REPL{
		in:      buffered,
		out:     out,
		session: jit.NewSession("", buffered, out),
	}
}

// greeting is printed once at startup (spec §6 "print a greeting including
// a version string and an 'exit' keyword").
func (r *REPL) greeting() string {
	return fmt.Sprintf("abaci %s: type statements and press enter; type %q to quit.\n", Version, exitKeyword)
}

// Run drives the read-eval-print loop until EOF or the exit keyword.
// Returns the last execution error, if any, so the caller can choose an
// exit status; the REPL itself never exits the process.
func (r *REPL) Run() error {
	fmt.Fprint(r.out, r.greeting())

	var buf strings.Builder
	depth := 0
	var lastErr error

	prompt := func() {
		if depth > 0 {
			fmt.Fprint(r.out, ContinuePrompt)
		} else {
			fmt.Fprint(r.out, Prompt)
		}
	}

	prompt()
	for {
		line, err := r.in.ReadString('\n')
		if line == "" && err != nil {
			break
		}
		trimmed := strings.TrimRight(line, "\r\n")
		if depth == 0 && strings.TrimSpace(trimmed) == exitKeyword {
			return lastErr
		}

		buf.WriteString(trimmed)
		buf.WriteByte('\n')
		depth += blockDelta(trimmed)
		if depth < 0 {
			depth = 0
		}

		if depth == 0 {
			source := buf.String()
			buf.Reset()
			if strings.TrimSpace(source) != "" {
				if runErr := r.session.Run(source); runErr != nil {
					lastErr = runErr
					msg := formatErr(runErr)
					fmt.Fprint(r.out, msg)
					if !strings.HasSuffix(msg, "\n") {
						fmt.Fprintln(r.out)
					}
				}
			}
		}
		if err != nil {
			break
		}
		prompt()
	}
	fmt.Fprintln(r.out)
	return lastErr
}

// blockDelta tokenizes one line and returns the net change in open-block
// depth it contributes (+1 per IsBlockOpen token, -1 per IsBlockClose
// token encountered on the line).
func blockDelta(line string) int {
	l := lexer.New(line)
	delta := 0
	for {
		tok := l.Next()
		if tok.Type == lexer.EOF {
			break
		}
		switch {
		case tok.Type.IsBlockOpen():
			delta++
		case tok.Type.IsBlockClose():
			delta--
		}
	}
	return delta
}

// formatErr renders a submission error for terminal output, giving a
// *errs.CompilerError its colorized file/line/caret form (matching
// cmd/abaci's file-mode formatting) rather than its plain Error() text.
func formatErr(err error) string {
	if ce, ok := err.(*errs.CompilerError); ok {
		return ce.Format(true)
	}
	return err.Error()
}
