package lexer

import (
	"testing"

	"github.com/funvibe/funbf/internal/token"
)

func TestNextToken(t *testing.T) {
	input := "+ comment >\n[-]é."

	tests := []struct {
		expectedType   token.TokenType
		expectedLine   int
		expectedColumn int
		expectedOffset int
	}{
		{token.INCREMENT, 1, 1, 0},
		{token.MOVE_RIGHT, 1, 11, 10},
		{token.LBRACKET, 2, 1, 12},
		{token.DECREMENT, 2, 2, 13},
		{token.RBRACKET, 2, 3, 14},
		{token.OUTPUT, 2, 5, 17},
		{token.EOF, 2, 6, 18},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - type wrong. expected=%q, got=%q", i, tt.expectedType, tok.Type)
		}
		if tok.Line != tt.expectedLine || tok.Column != tt.expectedColumn {
			t.Errorf("tests[%d] - position wrong. expected=%d:%d, got=%s", i, tt.expectedLine, tt.expectedColumn, tok.Pos())
		}
		if tok.Offset != tt.expectedOffset {
			t.Errorf("tests[%d] - offset wrong. expected=%d, got=%d", i, tt.expectedOffset, tok.Offset)
		}
	}

	if tok := l.NextToken(); tok.Type != token.EOF {
		t.Errorf("NextToken after EOF = %q, want EOF", tok.Type)
	}
}

func TestNulIsComment(t *testing.T) {
	toks := Tokens("+\x00+")
	if len(toks) != 2 {
		t.Fatalf("got %d tokens, want 2", len(toks))
	}
}

func TestNewAt(t *testing.T) {
	l := NewAt("ab\n+-", 4)
	tok := l.NextToken()
	if tok.Type != token.DECREMENT || tok.Line != 2 || tok.Column != 2 {
		t.Errorf("first token = %v, want - at 2:2", tok)
	}
	if l.Offset() != 5 {
		t.Errorf("offset = %d, want 5", l.Offset())
	}
}

func TestTokens(t *testing.T) {
	toks := Tokens("no commands here")
	if len(toks) != 0 {
		t.Errorf("got %d tokens, want 0", len(toks))
	}
	toks = Tokens("[,.]")
	if len(toks) != 4 {
		t.Fatalf("got %d tokens, want 4", len(toks))
	}
	if toks[1].Type != token.INPUT || toks[1].Lexeme != "," {
		t.Errorf("tokens[1] = %v, want ','", toks[1])
	}
}
