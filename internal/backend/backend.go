// Package backend provides an interface for different execution backends.
// This allows switching between the tree-walk interpreter and the C transpiler.
package backend

import (
	"github.com/funvibe/funbf/internal/config"
	"github.com/funvibe/funbf/internal/pipeline"
)

// Backend is the interface for execution backends
type Backend interface {
	// Run executes (or translates) the program held by the pipeline context
	Run(ctx *pipeline.PipelineContext) error

	// Name returns the backend name for display
	Name() string
}

// StepCounter is implemented by backends that count executed commands.
type StepCounter interface {
	Steps() uint64
}

// ForContext selects the C backend when the context has a transpile
// destination and the tree-walk interpreter otherwise.
func ForContext(ctx *pipeline.PipelineContext) Backend {
	if ctx.TranspilePath != "" || ctx.TranspileOutput != nil {
		return NewC()
	}
	return NewTreeWalk()
}

// New returns the backend registered under name, or nil.
func New(name string) Backend {
	switch name {
	case config.TreeWalkBackendName:
		return NewTreeWalk()
	case config.CBackendName:
		return NewC()
	}
	return nil
}
