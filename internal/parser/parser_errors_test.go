package parser_test

import (
	"strings"
	"testing"

	"github.com/funvibe/funbf/internal/config"
	"github.com/funvibe/funbf/internal/diagnostics"
	"github.com/funvibe/funbf/internal/parser"
	"github.com/funvibe/funbf/internal/pipeline"
)

// parseWithErrors runs the parser in strict mode and returns all diagnostic errors.
func parseWithErrors(input string) []*diagnostics.DiagnosticError {
	ctx := pipeline.NewPipelineContext(input)
	ctx.FilePath = "test.bf"
	ctx.Config = &config.Config{TapeSize: 10, CellBits: 8, EOF: config.EOFZero, Strict: true}
	pp := &parser.ParserProcessor{}
	ctx = pp.Process(ctx)
	return ctx.Errors
}

// expectError asserts an error with the given code.
func expectError(t *testing.T, input string, code diagnostics.ErrorCode) *diagnostics.DiagnosticError {
	t.Helper()
	errs := parseWithErrors(input)
	if len(errs) == 0 {
		t.Fatalf("expected error %s, but got none\ninput: %s", code, input)
	}
	for _, e := range errs {
		if e.Code == code {
			return e
		}
	}
	var msgs []string
	for _, e := range errs {
		msgs = append(msgs, e.Error())
	}
	t.Fatalf("expected error %s, got:\n%s\ninput: %s", code, strings.Join(msgs, "\n"), input)
	return nil
}

// ---------------------------------------------------------------------------
// P001: '[' never closed
// ---------------------------------------------------------------------------

func TestP001_UnclosedLoop(t *testing.T) {
	err := expectError(t, "+[-", diagnostics.ErrP001)
	if err.Token.Line != 1 || err.Token.Column != 2 {
		t.Errorf("reported at %s, want 1:2", err.Token.Pos())
	}
	if err.File != "test.bf" {
		t.Errorf("file = %q, want test.bf", err.File)
	}
}

func TestP001_EachUnclosedLoopReported(t *testing.T) {
	errs := parseWithErrors("[[\n[]")
	if len(errs) != 2 {
		t.Fatalf("got %d errors, want 2", len(errs))
	}
	// Inner loops finish first.
	if errs[0].Token.Column != 2 || errs[1].Token.Column != 1 {
		t.Errorf("positions = %s, %s; want 1:2, 1:1", errs[0].Token.Pos(), errs[1].Token.Pos())
	}
}

// ---------------------------------------------------------------------------
// P002: ']' with nothing to close
// ---------------------------------------------------------------------------

func TestP002_StrayClose(t *testing.T) {
	err := expectError(t, "+\n-]", diagnostics.ErrP002)
	if err.Token.Line != 2 || err.Token.Column != 2 {
		t.Errorf("reported at %s, want 2:2", err.Token.Pos())
	}
}

func TestStrict_NoProgramOnError(t *testing.T) {
	ctx := pipeline.NewPipelineContext("[")
	ctx.Config.Strict = true
	ctx = (&parser.ParserProcessor{}).Process(ctx)
	if ctx.AstRoot != nil {
		t.Error("AstRoot should be nil when parsing fails")
	}
}

func TestPermissive_NoErrors(t *testing.T) {
	ctx := pipeline.NewPipelineContext("]+[")
	ctx = (&parser.ParserProcessor{}).Process(ctx)
	if len(ctx.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", ctx.Errors)
	}
	if ctx.AstRoot == nil || len(ctx.AstRoot.Commands) != 2 {
		t.Fatalf("expected 2 commands, got %+v", ctx.AstRoot)
	}
}

func TestProcessor_SkipsAfterConfigError(t *testing.T) {
	ctx := pipeline.NewPipelineContext("+")
	ctx.Config.TapeSize = -1
	ctx = (&pipeline.ConfigProcessor{}).Process(ctx)
	ctx = (&parser.ParserProcessor{}).Process(ctx)
	if len(ctx.Errors) != 1 || ctx.Errors[0].Code != diagnostics.ErrC001 {
		t.Fatalf("errors = %v, want one C001", ctx.Errors)
	}
	if ctx.AstRoot != nil {
		t.Error("parser must not run after a configuration error")
	}
}
