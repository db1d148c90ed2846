package diagnostics

import (
	"fmt"
	"github.com/funvibe/funbf/internal/token"
)

type ErrorCode string

const (
	// Configuration
	ErrC001 ErrorCode = "C001" // invalid configuration value

	// Parsing (strict mode only)
	ErrP001 ErrorCode = "P001" // '[' without matching ']'
	ErrP002 ErrorCode = "P002" // ']' without matching '['

	// Runtime
	ErrR001 ErrorCode = "R001" // data pointer left the tape
	ErrR002 ErrorCode = "R002" // program input/output failed

	// Transpilation
	ErrT001 ErrorCode = "T001" // generated source could not be written
)

var descriptions = map[ErrorCode]string{
	ErrC001: "configuration error",
	ErrP001: "unmatched '['",
	ErrP002: "unmatched ']'",
	ErrR001: "pointer out of bounds",
	ErrR002: "i/o error",
	ErrT001: "transpile error",
}

// DiagnosticError is an error with a code and a source position.
type DiagnosticError struct {
	Code    ErrorCode
	Token   token.Token
	File    string
	Message string
	Err     error // underlying cause, if any
}

func NewError(code ErrorCode, tok token.Token, msg string) *DiagnosticError {
	return &DiagnosticError{Code: code, Token: tok, Message: msg}
}

// Wrap attaches a code and position to err. The message is err's text.
func Wrap(code ErrorCode, tok token.Token, err error) *DiagnosticError {
	return &DiagnosticError{Code: code, Token: tok, Message: err.Error(), Err: err}
}

func (e *DiagnosticError) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Code, e.Message)
	if e.Message == "" {
		msg = fmt.Sprintf("[%s] %s", e.Code, descriptions[e.Code])
	}
	if e.Token.Line == 0 {
		if e.File != "" {
			return e.File + ": " + msg
		}
		return msg
	}
	if e.File != "" {
		return fmt.Sprintf("%s:%d:%d: %s", e.File, e.Token.Line, e.Token.Column, msg)
	}
	return fmt.Sprintf("%d:%d: %s", e.Token.Line, e.Token.Column, msg)
}

func (e *DiagnosticError) Unwrap() error {
	return e.Err
}

// Description is the short human name of a code.
func (c ErrorCode) Description() string {
	return descriptions[c]
}
