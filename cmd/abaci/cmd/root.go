// Package cmd wires abaci's cobra command tree (spec §6 "CLI. Two modes:
// (1) single file argument... (2) no arguments: interactive prompt"),
// grounded on the teacher's cmd/dwscript/cmd package's root-command-plus-
// version-subcommand shape.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abacilang/abaci/internal/errs"
	"github.com/abacilang/abaci/internal/jit"
	"github.com/abacilang/abaci/internal/repl"
)

// Version is reported by `abaci version` and the REPL greeting.
var Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "abaci [file]",
	Short: "abaci JIT compiler and runtime",
	Long: `abaci compiles and runs programs in the abaci language: a small
imperative, dynamically-surfaced but statically-inferred language.

Run a script file:

  abaci script.ab

Or start an interactive prompt with no arguments:

  abaci`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

// Execute runs the root command (spec §6 CLI entry point).
func Execute() error {
	return rootCmd.Execute()
}

func runRoot(_ *cobra.Command, args []string) error {
	if len(args) == 1 {
		return runFile(args[0])
	}
	return runREPL()
}

// runFile implements spec §6 mode (1): "read file into a single block,
// type-check, compile, execute; exit code 0 on success, 1 on parse or
// runtime error."
func runFile(path string) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("abaci: cannot read %s: %w", path, err)
	}
	session := jit.NewSession(path, os.Stdin, os.Stdout)
	if err := session.Run(string(source)); err != nil {
		fmt.Fprint(os.Stderr, formatCompileError(err))
		os.Exit(1)
	}
	return nil
}

// formatCompileError renders a Session.Run error the way the teacher's
// run.go does (errors.FormatErrors(..., true)): a *errs.CompilerError gets
// its colorized file/line/caret rendering, a *jit.ParseError (the parser's
// accumulated message list, spec §7) gets one line per message, and
// anything else (a bare VM runtime error with no source position) falls
// back to its plain Error() text.
func formatCompileError(err error) string {
	switch e := err.(type) {
	case *errs.CompilerError:
		return e.Format(true)
	case *jit.ParseError:
		return e.Error() + "\n"
	default:
		return err.Error() + "\n"
	}
}

// runREPL implements spec §6 mode (2): "no arguments: interactive
// prompt."
func runREPL() error {
	r := repl.New(os.Stdin, os.Stdout)
	return r.Run()
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
