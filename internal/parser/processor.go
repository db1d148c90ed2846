package parser

import (
	"github.com/funvibe/funbf/internal/pipeline"
)

type ParserProcessor struct{}

func (pp *ParserProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	// Configuration errors are reported before anything else happens.
	if len(ctx.Errors) > 0 {
		return ctx
	}

	var opts []Option
	if ctx.Config != nil && ctx.Config.Strict {
		opts = append(opts, Strict())
	}

	parser := New(ctx.SourceCode, opts...)
	program := parser.ParseProgram()
	program.File = ctx.FilePath

	for _, err := range parser.Errors() {
		ctx.AddError(err)
	}
	if len(parser.Errors()) == 0 {
		ctx.AstRoot = program
	}

	return ctx
}
