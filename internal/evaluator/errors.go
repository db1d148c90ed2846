package evaluator

import (
	"errors"
	"github.com/funvibe/funbf/internal/token"
)

// ErrPointerOutOfBounds is wrapped by faults raised when '<' or '>'
// would leave the tape. The pointer never wraps around.
var ErrPointerOutOfBounds = errors.New("pointer out of bounds")

// RuntimeError aborts a run. Token is the command that failed.
type RuntimeError struct {
	Token   token.Token
	Message string
	Err     error
}

func (e *RuntimeError) Error() string {
	msg := e.Message
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Token.Line > 0 {
		return "runtime error at " + e.Token.Pos() + ": " + msg
	}
	return "runtime error: " + msg
}

func (e *RuntimeError) Unwrap() error { return e.Err }
