package llvmir_test

import (
	"strings"
	"testing"

	"github.com/abacilang/abaci/internal/constants"
	"github.com/abacilang/abaci/internal/ir"
	"github.com/abacilang/abaci/internal/llvmir"
)

func TestLowerEmitsRuntimePrototypesAndContextGlobal(t *testing.T) {
	prog := ir.NewProgram(constants.New())
	prog.Functions["program"] = &ir.Chunk{Name: "program", ReturnsValue: false}

	m := llvmir.Lower(prog)
	text := m.String()

	if !strings.Contains(text, "@"+llvmir.ContextGlobalName) {
		t.Fatalf("expected %q global in module, got:\n%s", llvmir.ContextGlobalName, text)
	}
	if !strings.Contains(text, "declare") || !strings.Contains(text, "@makeComplex") {
		t.Fatalf("expected runtime prototypes declared, got:\n%s", text)
	}
	if !strings.Contains(text, "@program") {
		t.Fatalf("expected a @program function, got:\n%s", text)
	}
}

func TestLowerFunctionArityMatchesChunk(t *testing.T) {
	prog := ir.NewProgram(constants.New())
	prog.Functions["program"] = &ir.Chunk{Name: "program", ReturnsValue: false}
	prog.Functions["difference.2.2"] = &ir.Chunk{
		Name: "difference.2.2", ParamCount: 2, ReturnsValue: true,
	}

	m := llvmir.Lower(prog)

	paramCount := -1
	for _, f := range m.Funcs {
		if f.Name() == "difference.2.2" {
			paramCount = len(f.Params)
		}
	}
	if paramCount != 2 {
		t.Fatalf("expected difference.2.2 to have 2 params, got %d", paramCount)
	}
}
