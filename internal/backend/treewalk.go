package backend

import (
	"fmt"
	"github.com/funvibe/funbf/internal/config"
	"github.com/funvibe/funbf/internal/evaluator"
	"github.com/funvibe/funbf/internal/pipeline"
)

// TreeWalkBackend runs the parsed command tree with the evaluator
type TreeWalkBackend struct {
	steps uint64
}

// NewTreeWalk creates a new tree-walk backend
func NewTreeWalk() *TreeWalkBackend {
	return &TreeWalkBackend{}
}

// Run executes the program using tree-walk interpretation.
// A fresh tape and pointer are created for every run.
func (b *TreeWalkBackend) Run(ctx *pipeline.PipelineContext) error {
	if ctx.AstRoot == nil {
		return fmt.Errorf("no program to execute")
	}

	if ctx.Config == nil {
		ctx.Config = config.Default()
	}

	machine, err := evaluator.New(ctx.Config, ctx.Input, ctx.Output)
	if err != nil {
		return err
	}

	ctx.Log().Debug("starting evaluation",
		"tape_size", machine.TapeSize(),
		"cell_bits", ctx.Config.CellBits,
		"eof", string(ctx.Config.EOF),
	)

	err = machine.Run(ctx.AstRoot)
	b.steps = machine.Steps()
	return err
}

// Name returns the backend name
func (b *TreeWalkBackend) Name() string {
	return config.TreeWalkBackendName
}

// Steps is the step count of the last run.
func (b *TreeWalkBackend) Steps() uint64 {
	return b.steps
}
