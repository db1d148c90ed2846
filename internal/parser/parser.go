package parser

import (
	"errors"
	"github.com/funvibe/funbf/internal/ast"
	"github.com/funvibe/funbf/internal/diagnostics"
	"github.com/funvibe/funbf/internal/lexer"
	"github.com/funvibe/funbf/internal/token"
)

// Option configures a Parser.
type Option func(*Parser)

// Strict makes unmatched brackets errors. Without it an unclosed '['
// takes the rest of the input as its body and a stray ']' is skipped.
func Strict() Option {
	return func(p *Parser) { p.strict = true }
}

// Parser builds a command tree from source text in a single left-to-right scan.
type Parser struct {
	l      *lexer.Lexer
	start  int
	strict bool
	errors []*diagnostics.DiagnosticError
}

func New(input string, opts ...Option) *Parser {
	return NewAt(input, 0, opts...)
}

// NewAt creates a parser that starts reading at byte offset start.
func NewAt(input string, start int, opts ...Option) *Parser {
	start = min(max(start, 0), len(input))
	p := &Parser{l: lexer.NewAt(input, start), start: start}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Parser) Errors() []*diagnostics.DiagnosticError {
	return p.errors
}

// Consumed is the number of bytes read since the parser's start offset.
func (p *Parser) Consumed() int {
	return p.l.Offset() - p.start
}

// ParseProgram parses the whole input. Stray ']' characters end nothing
// at the top level: they are consumed (or reported in strict mode) and
// parsing carries on.
func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{}
	for {
		cmds, end := p.parseBlock()
		program.Commands = append(program.Commands, cmds...)
		if end.Type == token.EOF {
			return program
		}
		if p.strict {
			p.addError(diagnostics.ErrP002, end, "unexpected ']' with no open loop")
		}
	}
}

// ParseBlock parses one nesting level: it stops after the first ']' it
// is not nested in, or at end of input.
func (p *Parser) ParseBlock() []ast.Command {
	cmds, _ := p.parseBlock()
	return cmds
}

func (p *Parser) parseBlock() ([]ast.Command, token.Token) {
	var cmds []ast.Command
	for {
		tok := p.l.NextToken()
		switch tok.Type {
		case token.EOF, token.RBRACKET:
			return cmds, tok
		case token.MOVE_RIGHT:
			cmds = append(cmds, &ast.MoveRight{Token: tok})
		case token.MOVE_LEFT:
			cmds = append(cmds, &ast.MoveLeft{Token: tok})
		case token.INCREMENT:
			cmds = append(cmds, &ast.Increment{Token: tok})
		case token.DECREMENT:
			cmds = append(cmds, &ast.Decrement{Token: tok})
		case token.OUTPUT:
			cmds = append(cmds, &ast.Output{Token: tok})
		case token.INPUT:
			cmds = append(cmds, &ast.Input{Token: tok})
		case token.LBRACKET:
			cmds = append(cmds, p.parseLoop(tok))
		}
	}
}

func (p *Parser) parseLoop(open token.Token) *ast.Loop {
	body, end := p.parseBlock()
	loop := &ast.Loop{Token: open, Body: body, Closed: end.Type == token.RBRACKET}
	if !loop.Closed && p.strict {
		p.addError(diagnostics.ErrP001, open, "loop opened here is never closed")
	}
	return loop
}

func (p *Parser) addError(code diagnostics.ErrorCode, tok token.Token, msg string) {
	p.errors = append(p.errors, diagnostics.NewError(code, tok, msg))
}

// Parse parses a complete program.
func Parse(input string, opts ...Option) (*ast.Program, error) {
	p := New(input, opts...)
	program := p.ParseProgram()
	if err := joinErrors(p.errors); err != nil {
		return nil, err
	}
	return program, nil
}

// ParseFrom parses one nesting level of input starting at byte offset
// start. It returns the commands, the number of bytes consumed (the
// closing ']' included) and, in strict mode, unmatched-bracket errors.
func ParseFrom(input string, start int, opts ...Option) ([]ast.Command, int, error) {
	p := NewAt(input, start, opts...)
	cmds := p.ParseBlock()
	return cmds, p.Consumed(), joinErrors(p.errors)
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
