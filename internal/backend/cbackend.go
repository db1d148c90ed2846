package backend

import (
	"github.com/funvibe/funbf/internal/config"
	"github.com/funvibe/funbf/internal/pipeline"
	"github.com/funvibe/funbf/internal/transpiler"
)

// CBackend translates the source text to C instead of running it
type CBackend struct{}

// NewC creates a new C transpiler backend
func NewC() *CBackend {
	return &CBackend{}
}

// Run writes the translation to ctx.TranspilePath, atomically, or to
// ctx.TranspileOutput. It reads the raw source, not the parsed tree.
func (b *CBackend) Run(ctx *pipeline.PipelineContext) error {
	if ctx.Config == nil {
		ctx.Config = config.Default()
	}

	opts := transpiler.OptionsFromConfig(ctx.Config)

	if ctx.TranspilePath != "" {
		ctx.Log().Debug("transpiling", "path", ctx.TranspilePath)
		return transpiler.WriteFile(ctx.TranspilePath, ctx.SourceCode, opts)
	}

	out := ctx.TranspileOutput
	if out == nil {
		out = ctx.Output
	}
	return transpiler.Emit(out, ctx.SourceCode, opts)
}

// Name returns the backend name
func (b *CBackend) Name() string {
	return config.CBackendName
}
