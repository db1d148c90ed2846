package backend

import (
	"errors"
	"time"

	"github.com/funvibe/funbf/internal/config"
	"github.com/funvibe/funbf/internal/diagnostics"
	"github.com/funvibe/funbf/internal/evaluator"
	"github.com/funvibe/funbf/internal/pipeline"
	"github.com/funvibe/funbf/internal/token"
)

// ExecutionProcessor implements pipeline.Processor to run a Backend
type ExecutionProcessor struct {
	Backend Backend
}

// NewExecutionProcessor creates a new pipeline step for the given backend
func NewExecutionProcessor(b Backend) *ExecutionProcessor {
	return &ExecutionProcessor{Backend: b}
}

func (p *ExecutionProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	// If previous steps failed, don't run execution
	if len(ctx.Errors) > 0 {
		return ctx
	}

	start := time.Now()
	err := p.Backend.Run(ctx)
	elapsed := time.Since(start)

	if ctx.Debug {
		attrs := []any{"backend", p.Backend.Name(), "elapsed", elapsed}
		if sc, ok := p.Backend.(StepCounter); ok {
			attrs = append(attrs, "steps", sc.Steps())
		}
		ctx.Log().Info("run finished", attrs...)
	}

	if err != nil {
		p.handleError(ctx, err)
	}
	return ctx
}

func (p *ExecutionProcessor) handleError(ctx *pipeline.PipelineContext, err error) {
	// Diagnostics produced by the backend itself (strict bracket checks
	// in the transpiler) keep their own codes.
	if diags := collectDiagnostics(err); len(diags) > 0 {
		for _, d := range diags {
			ctx.AddError(d)
		}
		return
	}

	if errors.Is(err, config.ErrInvalid) {
		ctx.AddError(diagnostics.Wrap(diagnostics.ErrC001, token.Token{}, err))
		return
	}

	var rerr *evaluator.RuntimeError
	if errors.As(err, &rerr) {
		code := diagnostics.ErrR002
		if errors.Is(err, evaluator.ErrPointerOutOfBounds) {
			code = diagnostics.ErrR001
		}
		msg := rerr.Message
		if code == diagnostics.ErrR002 && rerr.Err != nil {
			msg += ": " + rerr.Err.Error()
		}
		ctx.AddError(&diagnostics.DiagnosticError{
			Code:    code,
			Token:   rerr.Token,
			Message: msg,
			Err:     err,
		})
		return
	}

	code := diagnostics.ErrR002
	if p.Backend.Name() == config.CBackendName {
		code = diagnostics.ErrT001
	}
	ctx.AddError(diagnostics.Wrap(code, token.Token{}, err))
}

// collectDiagnostics flattens err, including errors.Join trees, into its
// diagnostic errors.
func collectDiagnostics(err error) []*diagnostics.DiagnosticError {
	if d, ok := err.(*diagnostics.DiagnosticError); ok {
		return []*diagnostics.DiagnosticError{d}
	}
	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		return nil
	}
	var out []*diagnostics.DiagnosticError
	for _, e := range joined.Unwrap() {
		out = append(out, collectDiagnostics(e)...)
	}
	return out
}
