package token

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/JeffThomas/lexx-go/lexx"
	"github.com/JeffThomas/lexx-go/matchers"
)

// Sentinel errors returned by Lex.
var (
	// ErrEmptyInput indicates the input contained no tokens.
	ErrEmptyInput = errors.New("empty input")

	// ErrUnexpectedCharacter indicates a rune that is neither a number nor an operator.
	ErrUnexpectedCharacter = errors.New("unexpected character")

	// ErrMalformedNumber indicates a numeric literal that does not parse as a float64.
	ErrMalformedNumber = errors.New("malformed number")
)

// SyntaxError reports where lexing failed.
type SyntaxError struct {
	// Pos is the byte offset of the offending text.
	Pos int
	// Text is the offending text.
	Text string
	// Err is ErrUnexpectedCharacter or ErrMalformedNumber.
	Err error
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("offset %d: %v: %q", e.Pos, e.Err, e.Text)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// Lex splits an infix expression such as "2 + 3*4" into tokens.
// Numbers are decimal literals and operators are the single runes + - * /.
// A sign is always an operator; unary minus is not supported.
func Lex(input string) ([]string, error) {
	lx := lexx.NewDefaultLexx(input)

	var (
		tokens []string
		offset int
	)
	for {
		tok, err := lx.GetNextToken()
		if err != nil {
			pos, text := nextRune(input, offset)
			return nil, &SyntaxError{Pos: pos, Text: text, Err: ErrUnexpectedCharacter}
		}
		if tok == nil {
			break
		}

		pos := locate(input, offset, tok)
		offset = pos + len(tok.Value)

		parts, err := split(tok.Value, pos)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, parts...)
	}

	if len(tokens) == 0 {
		return nil, ErrEmptyInput
	}
	return tokens, nil
}

// split validates one lexer token and returns the calculator tokens it holds.
func split(text string, pos int) ([]string, error) {
	switch {
	case strings.TrimSpace(text) == "":
		return nil, nil
	case isOperator(text):
		return []string{text}, nil
	case text[0] == '+' || text[0] == '-':
		// Signed literal: the sign is an operator of its own.
		rest, err := split(text[1:], pos+1)
		if err != nil {
			return nil, err
		}
		return append([]string{text[:1]}, rest...), nil
	case looksNumeric(text):
		if !IsNumber(text) {
			return nil, &SyntaxError{Pos: pos, Text: text, Err: ErrMalformedNumber}
		}
		return []string{text}, nil
	default:
		return nil, &SyntaxError{Pos: pos, Text: text, Err: ErrUnexpectedCharacter}
	}
}

// locate returns the byte offset of tok in input, searching from offset.
func locate(input string, offset int, tok *matchers.Token) int {
	if i := strings.Index(input[offset:], tok.Value); i >= 0 {
		return offset + i
	}
	return offset
}

// nextRune returns the first non-space rune at or after offset.
func nextRune(input string, offset int) (int, string) {
	for i, r := range input[offset:] {
		if !unicode.IsSpace(r) {
			return offset + i, string(r)
		}
	}
	return len(input), ""
}

func isOperator(s string) bool {
	switch s {
	case "+", "-", "*", "/":
		return true
	default:
		return false
	}
}

func looksNumeric(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsDigit(r) || r == '.'
}
