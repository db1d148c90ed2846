package token

import "fmt"

type TokenType string

const (
	ILLEGAL TokenType = "ILLEGAL"
	EOF     TokenType = "EOF"

	MOVE_RIGHT TokenType = ">"
	MOVE_LEFT  TokenType = "<"
	INCREMENT  TokenType = "+"
	DECREMENT  TokenType = "-"
	OUTPUT     TokenType = "."
	INPUT      TokenType = ","
	LBRACKET   TokenType = "["
	RBRACKET   TokenType = "]"
)

var commands = map[byte]TokenType{
	'>': MOVE_RIGHT,
	'<': MOVE_LEFT,
	'+': INCREMENT,
	'-': DECREMENT,
	'.': OUTPUT,
	',': INPUT,
	'[': LBRACKET,
	']': RBRACKET,
}

// LookupCommand reports the token type of a command character.
// Every other character is a comment.
func LookupCommand(ch byte) (TokenType, bool) {
	t, ok := commands[ch]
	return t, ok
}

type Token struct {
	Type   TokenType
	Lexeme string
	Offset int // byte offset of the token in the source
	Line   int
	Column int
}

// Pos formats the token position as line:column.
func (t Token) Pos() string {
	return fmt.Sprintf("%d:%d", t.Line, t.Column)
}

func (t Token) String() string {
	return fmt.Sprintf("%s at %s", t.Type, t.Pos())
}
