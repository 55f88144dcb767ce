/*
File: loxscript/lexer/lexer_test.go
*/
package lexer

import (
	"bytes"
	"testing"

	"github.com/akashmaji946/loxscript/diag"
	"github.com/stretchr/testify/assert"
)

func scan(src string) ([]Token, *diag.Reporter) {
	var buf bytes.Buffer
	r := diag.New(&buf)
	return New(src, r).ScanTokens(), r
}

func TestScanTokens_Operators(t *testing.T) {
	tokens, r := scan("( ) { } , . - + ; * / ^ : ? ! != = == < <= > >=")
	assert.False(t, r.HadError)
	want := []TokenType{
		LEFT_PAREN, RIGHT_PAREN, LEFT_BRACE, RIGHT_BRACE, COMMA, DOT,
		MINUS, PLUS, SEMICOLON, STAR, SLASH, CARET, COLON, QUESTION,
		BANG, BANG_EQUAL, EQUAL, EQUAL_EQUAL, LESS, LESS_EQUAL,
		GREATER, GREATER_EQUAL, EOF,
	}
	assert.Equal(t, len(want), len(tokens))
	for i, tt := range want {
		assert.Equal(t, tt, tokens[i].Type, "token %d", i)
	}
}

func TestScanTokens_Keywords(t *testing.T) {
	tokens, _ := scan("and break class echo else false fn for if let nil or return super this true while")
	want := []TokenType{AND, BREAK, CLASS, ECHO, ELSE, FALSE, FN, FOR, IF,
		LET, NIL, OR, RETURN, SUPER, THIS, TRUE, WHILE, EOF}
	assert.Equal(t, len(want), len(tokens))
	for i, tt := range want {
		assert.Equal(t, tt, tokens[i].Type)
	}
}

func TestScanTokens_NumbersAndStrings(t *testing.T) {
	tokens, r := scan(`123 3.14 "hello" 'world'`)
	assert.False(t, r.HadError)
	assert.Equal(t, NUMBER, tokens[0].Type)
	assert.Equal(t, 123.0, tokens[0].Literal)
	assert.Equal(t, NUMBER, tokens[1].Type)
	assert.Equal(t, 3.14, tokens[1].Literal)
	assert.Equal(t, STRING, tokens[2].Type)
	assert.Equal(t, "hello", tokens[2].Literal)
	assert.Equal(t, STRING, tokens[3].Type)
	assert.Equal(t, "world", tokens[3].Literal)
}

func TestScanTokens_Identifiers(t *testing.T) {
	tokens, _ := scan("x _y $z @w #v myVar2")
	for _, tok := range tokens[:6] {
		assert.Equal(t, IDENTIFIER, tok.Type)
	}
}

func TestScanTokens_UnterminatedString(t *testing.T) {
	_, r := scan(`"never closed`)
	assert.True(t, r.HadError)
}

func TestScanTokens_LineComment(t *testing.T) {
	tokens, _ := scan("1 // a comment\n2")
	assert.Equal(t, NUMBER, tokens[0].Type)
	assert.Equal(t, NUMBER, tokens[1].Type)
	assert.Equal(t, 2, tokens[1].Line)
}

func TestScanTokens_UnexpectedCharacter(t *testing.T) {
	_, r := scan("`")
	assert.True(t, r.HadError)
}

func TestScanTokens_IllegalStopsGracefullyWithEOF(t *testing.T) {
	tokens, _ := scan("1 ` 2")
	assert.Equal(t, EOF, tokens[len(tokens)-1].Type)
}

type consumeCase struct {
	input string
	types []TokenType
}

func TestScanTokens_TableDriven(t *testing.T) {
	cases := []consumeCase{
		{"let x = 1;", []TokenType{LET, IDENTIFIER, EQUAL, NUMBER, SEMICOLON, EOF}},
		{"fn f() {}", []TokenType{FN, IDENTIFIER, LEFT_PAREN, RIGHT_PAREN, LEFT_BRACE, RIGHT_BRACE, EOF}},
	}
	for _, c := range cases {
		tokens, _ := scan(c.input)
		if len(tokens) != len(c.types) {
			t.Fatalf("input %q: got %d tokens, want %d", c.input, len(tokens), len(c.types))
		}
		for i, want := range c.types {
			if tokens[i].Type != want {
				t.Errorf("input %q token %d: got %s, want %s", c.input, i, tokens[i].Type, want)
			}
		}
	}
}
