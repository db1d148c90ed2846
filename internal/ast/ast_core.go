package ast

import (
	"github.com/funvibe/funbf/internal/token"
)

// Node is the base interface for all AST nodes.
type Node interface {
	TokenLiteral() string
	Accept(v Visitor)
}

// Command is one node of the command tree. Loop is the only variant
// with children; the others are leaves.
type Command interface {
	Node
	commandNode()
	GetToken() token.Token
}

// Program is the root node of every AST our parser produces.
type Program struct {
	File     string // Source file path
	Commands []Command
}

func (p *Program) Accept(v Visitor) { v.VisitProgram(p) }
func (p *Program) TokenLiteral() string {
	if len(p.Commands) > 0 {
		return p.Commands[0].TokenLiteral()
	} else {
		return ""
	}
}

// MoveRight advances the data pointer: >
type MoveRight struct {
	Token token.Token
}

func (c *MoveRight) Accept(v Visitor)      { v.VisitMoveRight(c) }
func (c *MoveRight) commandNode()          {}
func (c *MoveRight) TokenLiteral() string  { return c.Token.Lexeme }
func (c *MoveRight) GetToken() token.Token { return c.Token }

// MoveLeft moves the data pointer back: <
type MoveLeft struct {
	Token token.Token
}

func (c *MoveLeft) Accept(v Visitor)      { v.VisitMoveLeft(c) }
func (c *MoveLeft) commandNode()          {}
func (c *MoveLeft) TokenLiteral() string  { return c.Token.Lexeme }
func (c *MoveLeft) GetToken() token.Token { return c.Token }

// Increment adds one to the current cell: +
type Increment struct {
	Token token.Token
}

func (c *Increment) Accept(v Visitor)      { v.VisitIncrement(c) }
func (c *Increment) commandNode()          {}
func (c *Increment) TokenLiteral() string  { return c.Token.Lexeme }
func (c *Increment) GetToken() token.Token { return c.Token }

// Decrement subtracts one from the current cell: -
type Decrement struct {
	Token token.Token
}

func (c *Decrement) Accept(v Visitor)      { v.VisitDecrement(c) }
func (c *Decrement) commandNode()          {}
func (c *Decrement) TokenLiteral() string  { return c.Token.Lexeme }
func (c *Decrement) GetToken() token.Token { return c.Token }

// Output writes the current cell as one byte: .
type Output struct {
	Token token.Token
}

func (c *Output) Accept(v Visitor)      { v.VisitOutput(c) }
func (c *Output) commandNode()          {}
func (c *Output) TokenLiteral() string  { return c.Token.Lexeme }
func (c *Output) GetToken() token.Token { return c.Token }

// Input reads one byte into the current cell: ,
type Input struct {
	Token token.Token
}

func (c *Input) Accept(v Visitor)      { v.VisitInput(c) }
func (c *Input) commandNode()          {}
func (c *Input) TokenLiteral() string  { return c.Token.Lexeme }
func (c *Input) GetToken() token.Token { return c.Token }

// Loop repeats Body while the current cell is non-zero: [ ... ]
type Loop struct {
	Token token.Token // The '[' token
	Body  []Command
	// Closed is false when the source ended before the matching ']'.
	Closed bool
}

func (c *Loop) Accept(v Visitor)      { v.VisitLoop(c) }
func (c *Loop) commandNode()          {}
func (c *Loop) TokenLiteral() string  { return c.Token.Lexeme }
func (c *Loop) GetToken() token.Token { return c.Token }

// Visitor dispatches on the concrete node type.
type Visitor interface {
	VisitProgram(p *Program)
	VisitMoveRight(c *MoveRight)
	VisitMoveLeft(c *MoveLeft)
	VisitIncrement(c *Increment)
	VisitDecrement(c *Decrement)
	VisitOutput(c *Output)
	VisitInput(c *Input)
	VisitLoop(c *Loop)
}
