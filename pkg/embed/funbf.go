// Package funbf is the embedding API: run or transpile brainfuck from Go.
//
// The boundary is deliberately small: program text, tape size (and the
// other run options), an input source and an output sink, or a sink for
// generated C source.
package funbf

import (
	"errors"
	"io"

	"github.com/funvibe/funbf/internal/ast"
	"github.com/funvibe/funbf/internal/backend"
	"github.com/funvibe/funbf/internal/config"
	"github.com/funvibe/funbf/internal/diagnostics"
	"github.com/funvibe/funbf/internal/parser"
	"github.com/funvibe/funbf/internal/pipeline"
	"github.com/funvibe/funbf/internal/prettyprinter"
)

// ErrInvalidConfig is wrapped by errors about bad options.
var ErrInvalidConfig = config.ErrInvalid

// Option changes one run setting.
type Option func(*config.Config)

// WithTapeSize sets the number of cells. The default is 30000.
func WithTapeSize(n int) Option {
	return func(c *config.Config) { c.TapeSize = n }
}

// WithCellBits sets the cell width: 8 (default), 16, 32 or 64.
func WithCellBits(bits int) Option {
	return func(c *config.Config) { c.CellBits = bits }
}

// WithStrict rejects programs with unmatched brackets.
func WithStrict() Option {
	return func(c *config.Config) { c.Strict = true }
}

// WithEOF sets what ',' stores at end of input: "zero" (default) or "unchanged".
func WithEOF(mode string) Option {
	return func(c *config.Config) { c.EOF = config.EOFMode(mode) }
}

func newContext(source string, opts []Option) *pipeline.PipelineContext {
	ctx := pipeline.NewPipelineContext(source)
	for _, opt := range opts {
		opt(ctx.Config)
	}
	return ctx
}

func run(ctx *pipeline.PipelineContext, b backend.Backend) error {
	p := pipeline.New(
		&pipeline.ConfigProcessor{},
		&parser.ParserProcessor{},
		backend.NewExecutionProcessor(b),
	)
	return joinErrors(p.Run(ctx).Errors)
}

// Run parses source and executes it, reading ',' from input and writing
// '.' to output. Output written before a runtime fault is kept.
func Run(source string, input io.Reader, output io.Writer, opts ...Option) error {
	ctx := newContext(source, opts)
	ctx.Input = input
	ctx.Output = output
	return run(ctx, backend.NewTreeWalk())
}

// Transpile writes a C program equivalent to source to dst. Nothing is
// written when it fails.
func Transpile(source string, dst io.Writer, opts ...Option) error {
	ctx := newContext(source, opts)
	ctx.TranspileOutput = dst
	p := pipeline.New(
		&pipeline.ConfigProcessor{},
		backend.NewExecutionProcessor(backend.NewC()),
	)
	return joinErrors(p.Run(ctx).Errors)
}

// Program is a parsed program that can be run many times.
type Program struct {
	tree *ast.Program
	opts []Option
}

// Parse parses source without running it.
func Parse(source string, opts ...Option) (*Program, error) {
	ctx := newContext(source, opts)
	p := pipeline.New(&pipeline.ConfigProcessor{}, &parser.ParserProcessor{})
	if err := joinErrors(p.Run(ctx).Errors); err != nil {
		return nil, err
	}
	return &Program{tree: ctx.AstRoot, opts: opts}, nil
}

// Run executes the program on a fresh tape.
func (p *Program) Run(input io.Reader, output io.Writer) error {
	ctx := newContext("", p.opts)
	ctx.Input = input
	ctx.Output = output
	ctx.AstRoot = p.tree
	ctx = (&pipeline.ConfigProcessor{}).Process(ctx)
	ctx = backend.NewExecutionProcessor(backend.NewTreeWalk()).Process(ctx)
	return joinErrors(ctx.Errors)
}

// Loops is the number of loops in the program.
func (p *Program) Loops() int {
	return ast.CountLoops(p.tree.Commands)
}

// Commands is the number of commands in the program, loops included.
func (p *Program) Commands() int {
	return ast.CountCommands(p.tree.Commands)
}

// Format returns the program in canonical layout, without comments.
func (p *Program) Format() string {
	return prettyprinter.NewCodePrinter().Print(p.tree)
}

func joinErrors(errs []*diagnostics.DiagnosticError) error {
	if len(errs) == 0 {
		return nil
	}
	if len(errs) == 1 {
		return errs[0]
	}
	joined := make([]error, len(errs))
	for i, err := range errs {
		joined[i] = err
	}
	return errors.Join(joined...)
}
