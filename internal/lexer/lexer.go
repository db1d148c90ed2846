package lexer

import (
	"github.com/funvibe/funbf/internal/token"
	"unicode/utf8"
)

// Lexer turns source text into a lazy stream of command tokens.
// Characters outside the command set are comments and never surface as tokens.
type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           rune // current char under examination
	line         int  // current line number
	column       int  // current column number
}

func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

// NewAt starts lexing at a byte offset into input. Line and column
// numbers still count from the start of input.
func NewAt(input string, offset int) *Lexer {
	l := New(input)
	for l.position < offset && l.ch != 0 {
		l.readChar()
	}
	return l
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}

	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = len(l.input)
		l.column++
		return
	}

	r, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
	if r == 0 {
		// NUL bytes are comments like any other character; keep them
		// distinguishable from end of input.
		r = utf8.RuneError
	}
	l.ch = r
	l.position = l.readPosition
	l.readPosition += w
	l.column++
}

// NextToken returns the next command token, or an EOF token once the
// input is exhausted. Repeated calls after EOF keep returning EOF.
func (l *Lexer) NextToken() token.Token {
	l.skipComments()

	if l.ch == 0 {
		return token.Token{Type: token.EOF, Offset: len(l.input), Line: l.line, Column: l.column}
	}

	tokType, _ := token.LookupCommand(byte(l.ch))
	tok := token.Token{
		Type:   tokType,
		Lexeme: string(l.ch),
		Offset: l.position,
		Line:   l.line,
		Column: l.column,
	}
	l.readChar()
	return tok
}

// Offset is the number of input bytes consumed so far.
func (l *Lexer) Offset() int {
	if l.position > len(l.input) {
		return len(l.input)
	}
	return l.position
}

func (l *Lexer) skipComments() {
	for l.ch != 0 && !isCommand(l.ch) {
		l.readChar()
	}
}

func isCommand(ch rune) bool {
	if ch >= utf8.RuneSelf {
		return false
	}
	_, ok := token.LookupCommand(byte(ch))
	return ok
}

// Tokens lexes the whole input. The trailing EOF token is not included.
func Tokens(input string) []token.Token {
	l := New(input)
	var toks []token.Token
	for {
		tok := l.NextToken()
		if tok.Type == token.EOF {
			return toks
		}
		toks = append(toks, tok)
	}
}
