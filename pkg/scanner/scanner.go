// Package scanner implements the Lox lexical scanner.
package scanner

import (
	"fmt"
	"strconv"

	"github.com/golox-lang/golox/pkg/diagnostics"
	"github.com/golox-lang/golox/pkg/token"
)

var keywords = map[string]token.Type{
	"and":    token.And,
	"class":  token.Class,
	"else":   token.Else,
	"false":  token.False,
	"for":    token.For,
	"fun":    token.Fun,
	"if":     token.If,
	"nil":    token.Nil,
	"or":     token.Or,
	"print":  token.Print,
	"return": token.Return,
	"super":  token.Super,
	"this":   token.This,
	"true":   token.True,
	"var":    token.Var,
	"while":  token.While,
}

// Scanner walks the source text once, left to right, emitting tokens.
// Lexical errors go to the reporter and scanning continues with the next
// character, so one pass can surface several errors.
type Scanner struct {
	source   string
	reporter diagnostics.Reporter
	tokens   []token.Token

	start   int // offset of the lexeme being scanned
	current int
	line    int
}

// New creates a Scanner for the given source. A nil reporter discards errors.
func New(source string, reporter diagnostics.Reporter) *Scanner {
	if reporter == nil {
		reporter = diagnostics.ReporterFunc(func(diagnostics.Diagnostic) {})
	}
	return &Scanner{
		source:   source,
		reporter: reporter,
		line:     1,
	}
}

// Scan tokenizes source in one call. Equivalent to New(source, reporter)
// followed by ScanTokens.
func Scan(source string, reporter diagnostics.Reporter) []token.Token {
	return New(source, reporter).ScanTokens()
}

// ScanTokens scans the whole input and returns the token sequence,
// terminated by exactly one EOF token.
func (s *Scanner) ScanTokens() []token.Token {
	for !s.atEnd() {
		s.start = s.current
		s.scanToken()
	}

	s.tokens = append(s.tokens, token.Token{Type: token.EOF, Line: s.line})
	return s.tokens
}

func (s *Scanner) scanToken() {
	c := s.advance()
	switch c {
	case '(':
		s.addToken(token.LeftParen)
	case ')':
		s.addToken(token.RightParen)
	case '{':
		s.addToken(token.LeftBrace)
	case '}':
		s.addToken(token.RightBrace)
	case ',':
		s.addToken(token.Comma)
	case '.':
		s.addToken(token.Dot)
	case '-':
		s.addToken(token.Minus)
	case '+':
		s.addToken(token.Plus)
	case ';':
		s.addToken(token.Semicolon)
	case '*':
		s.addToken(token.Star)

	case '!':
		if s.match('=') {
			s.addToken(token.BangEqual)
		} else {
			s.addToken(token.Bang)
		}
	case '=':
		if s.match('=') {
			s.addToken(token.EqualEqual)
		} else {
			s.addToken(token.Equal)
		}
	case '<':
		if s.match('=') {
			s.addToken(token.LessEqual)
		} else {
			s.addToken(token.Less)
		}
	case '>':
		if s.match('=') {
			s.addToken(token.GreaterEqual)
		} else {
			s.addToken(token.Greater)
		}

	case '/':
		// Line comment, block comment, and division are one exclusive
		// three-way choice.
		if s.match('/') {
			s.lineComment()
		} else if s.match('*') {
			s.blockComment()
		} else {
			s.addToken(token.Slash)
		}

	case ' ', '\r', '\t':
		// discard
	case '\n':
		s.line++

	case '"':
		s.string()

	default:
		if isDigit(c) {
			s.number()
		} else if isAlpha(c) {
			s.identifier()
		} else {
			s.error(fmt.Sprintf("Unexpected character '%c'.", c))
		}
	}
}

func (s *Scanner) lineComment() {
	for s.peek() != '\n' && !s.atEnd() {
		s.advance()
	}
}

func (s *Scanner) blockComment() {
	for {
		if s.atEnd() {
			s.error("Unterminated block comment.")
			return
		}
		if s.peek() == '*' && s.peekNext() == '/' {
			s.advance() // *
			s.advance() // /
			return
		}
		if s.peek() == '\n' {
			s.line++
		}
		s.advance()
	}
}

func (s *Scanner) string() {
	// The opening quote's line; multi-line strings report where they began.
	startLine := s.line
	for s.peek() != '"' && !s.atEnd() {
		if s.peek() == '\n' {
			s.line++
		}
		s.advance()
	}

	if s.atEnd() {
		s.reporter.Report(diagnostics.New(diagnostics.Lex, startLine, "Unterminated string."))
		return
	}

	s.advance() // closing quote

	value := s.source[s.start+1 : s.current-1]
	s.addLiteral(token.String, value, startLine)
}

func (s *Scanner) number() {
	for isDigit(s.peek()) {
		s.advance()
	}

	// Fractional part only when a digit follows the dot, so a trailing '.'
	// is left for the parser.
	if s.peek() == '.' && isDigit(s.peekNext()) {
		s.advance()
		for isDigit(s.peek()) {
			s.advance()
		}
	}

	value, _ := strconv.ParseFloat(s.source[s.start:s.current], 64)
	s.addLiteral(token.Number, value, s.line)
}

func (s *Scanner) identifier() {
	for isAlphaNumeric(s.peek()) {
		s.advance()
	}

	text := s.source[s.start:s.current]
	if typ, ok := keywords[text]; ok {
		s.addToken(typ)
		return
	}
	s.addToken(token.Identifier)
}

func (s *Scanner) atEnd() bool {
	return s.current >= len(s.source)
}

func (s *Scanner) advance() byte {
	c := s.source[s.current]
	s.current++
	return c
}

func (s *Scanner) match(expected byte) bool {
	if s.atEnd() || s.source[s.current] != expected {
		return false
	}
	s.current++
	return true
}

func (s *Scanner) peek() byte {
	if s.atEnd() {
		return 0
	}
	return s.source[s.current]
}

func (s *Scanner) peekNext() byte {
	if s.current+1 >= len(s.source) {
		return 0
	}
	return s.source[s.current+1]
}

func (s *Scanner) addToken(typ token.Type) {
	s.tokens = append(s.tokens, token.Token{
		Type:   typ,
		Lexeme: s.source[s.start:s.current],
		Line:   s.line,
	})
}

func (s *Scanner) addLiteral(typ token.Type, literal any, line int) {
	s.tokens = append(s.tokens, token.Token{
		Type:    typ,
		Lexeme:  s.source[s.start:s.current],
		Literal: literal,
		Line:    line,
	})
}

func (s *Scanner) error(msg string) {
	s.reporter.Report(diagnostics.New(diagnostics.Lex, s.line, msg))
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isAlphaNumeric(c byte) bool {
	return isAlpha(c) || isDigit(c)
}
