package pipeline

import (
	"io"
	"log/slog"
	"os"

	"github.com/funvibe/funbf/internal/ast"
	"github.com/funvibe/funbf/internal/config"
	"github.com/funvibe/funbf/internal/diagnostics"
	"github.com/funvibe/funbf/internal/token"
	"github.com/google/uuid"
)

// Processor is one stage of the pipeline.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// ProcessorFunc adapts a plain function to Processor.
type ProcessorFunc func(ctx *PipelineContext) *PipelineContext

func (f ProcessorFunc) Process(ctx *PipelineContext) *PipelineContext { return f(ctx) }

// PipelineContext carries the state of a single run through all stages.
type PipelineContext struct {
	SourceCode string
	FilePath   string // empty for inline programs
	AstRoot    *ast.Program

	Config *config.Config

	// Program I/O
	Input  io.Reader
	Output io.Writer

	// Transpile destination. TranspilePath wins over TranspileOutput.
	TranspilePath   string
	TranspileOutput io.Writer

	Debug  bool
	RunID  string
	Logger *slog.Logger

	Errors []*diagnostics.DiagnosticError
}

func NewPipelineContext(sourceCode string) *PipelineContext {
	runID := uuid.New().String()
	if id, err := uuid.NewV7(); err == nil {
		runID = id.String()
	}
	return &PipelineContext{
		SourceCode: sourceCode,
		Config:     config.Default(),
		Input:      os.Stdin,
		Output:     os.Stdout,
		RunID:      runID,
		Logger:     slog.Default(),
	}
}

// AddError records a diagnostic, filling in the file path when missing.
func (ctx *PipelineContext) AddError(err *diagnostics.DiagnosticError) {
	if err.File == "" {
		err.File = ctx.FilePath
	}
	ctx.Errors = append(ctx.Errors, err)
}

// ConfigProcessor validates ctx.Config. It runs first so that a bad
// tape size or cell width fails the run before parsing or execution.
type ConfigProcessor struct{}

func (cp *ConfigProcessor) Process(ctx *PipelineContext) *PipelineContext {
	if ctx.Config == nil {
		ctx.Config = config.Default()
	}
	if err := ctx.Config.Validate(); err != nil {
		ctx.Errors = append(ctx.Errors, diagnostics.Wrap(diagnostics.ErrC001, token.Token{}, err))
	}
	return ctx
}

// Log returns the run logger, falling back to slog's default.
func (ctx *PipelineContext) Log() *slog.Logger {
	if ctx.Logger == nil {
		return slog.Default()
	}
	return ctx.Logger
}
