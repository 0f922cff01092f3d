package toml

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Lexer splits TOML input into tokens, one line-oriented statement at a time
type Lexer struct {
	input []byte
	pos   int
	line  int
	col   int
}

func NewLexer(input []byte) *Lexer {
	return &Lexer{input: input, line: 1, col: 1}
}

// NextToken returns the next token, TokenEOF at end of input
func (l *Lexer) NextToken() Token {
	l.skipBlank()
	start := Pos{Line: l.line, Col: l.col}
	if l.pos >= len(l.input) {
		return Token{Type: TokenEOF, Pos: start}
	}

	ch := l.peek()
	if typ, ok := punctuation[ch]; ok {
		l.advance()
		return Token{Type: typ, Literal: string(ch), Pos: start}
	}

	switch {
	case ch == '#':
		return l.comment(start)
	case ch == '"':
		return l.basicString(start)
	case ch == '\'':
		return l.literalString(start)
	case isBare(ch) || ch == '+':
		return l.bare(start)
	}
	l.advance()
	return Token{Type: TokenError, Literal: "unexpected character " + strconv.QuoteRune(ch), Pos: start}
}

var punctuation = map[rune]TokenType{
	'\n': TokenNewline,
	'=':  TokenEqual,
	'.':  TokenDot,
	',':  TokenComma,
	'[':  TokenLBracket,
	']':  TokenRBracket,
	'{':  TokenLBrace,
	'}':  TokenRBrace,
}

func (l *Lexer) advance() rune {
	if l.pos >= len(l.input) {
		return 0
	}
	r, w := utf8.DecodeRune(l.input[l.pos:])
	l.pos += w
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return r
}

func (l *Lexer) peek() rune {
	if l.pos >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRune(l.input[l.pos:])
	return r
}

func (l *Lexer) skipBlank() {
	for l.pos < len(l.input) {
		switch l.peek() {
		case ' ', '\t', '\r':
			l.advance()
		default:
			return
		}
	}
}

func (l *Lexer) comment(start Pos) Token {
	l.advance()
	from := l.pos
	for l.pos < len(l.input) && l.peek() != '\n' {
		l.advance()
	}
	return Token{Type: TokenComment, Literal: string(l.input[from:l.pos]), Pos: start}
}

func (l *Lexer) basicString(start Pos) Token {
	l.advance()
	var sb strings.Builder
	for l.pos < len(l.input) {
		ch := l.advance()
		switch ch {
		case '\n':
			return Token{Type: TokenError, Literal: "newline in string", Pos: start}
		case '"':
			return Token{Type: TokenString, Literal: sb.String(), Pos: start}
		case '\\':
			r, ok := l.escape()
			if !ok {
				return Token{Type: TokenError, Literal: "invalid escape", Pos: start}
			}
			sb.WriteRune(r)
		default:
			sb.WriteRune(ch)
		}
	}
	return Token{Type: TokenError, Literal: "unterminated string", Pos: start}
}

func (l *Lexer) escape() (rune, bool) {
	switch l.advance() {
	case 'n':
		return '\n', true
	case 't':
		return '\t', true
	case 'r':
		return '\r', true
	case '"':
		return '"', true
	case '\\':
		return '\\', true
	case 'u':
		if l.pos+4 > len(l.input) {
			return 0, false
		}
		code, err := strconv.ParseUint(string(l.input[l.pos:l.pos+4]), 16, 32)
		if err != nil {
			return 0, false
		}
		for i := 0; i < 4; i++ {
			l.advance()
		}
		return rune(code), true
	}
	return 0, false
}

func (l *Lexer) literalString(start Pos) Token {
	l.advance()
	from := l.pos
	for l.pos < len(l.input) {
		switch l.peek() {
		case '\n':
			return Token{Type: TokenError, Literal: "newline in string", Pos: start}
		case '\'':
			lit := string(l.input[from:l.pos])
			l.advance()
			return Token{Type: TokenString, Literal: lit, Pos: start}
		}
		l.advance()
	}
	return Token{Type: TokenError, Literal: "unterminated string", Pos: start}
}

// bare reads a bare key, boolean or number
// A dot continues the run only after a digit, so a.b stays three tokens while 1.5 is one
func (l *Lexer) bare(start Pos) Token {
	from := l.pos
	for l.pos < len(l.input) {
		ch := l.peek()
		if isBare(ch) || ch == '+' {
			l.advance()
			continue
		}
		if ch == '.' && l.pos > from && isDigit(rune(l.input[l.pos-1])) && isNumeric(string(l.input[from:l.pos])) {
			l.advance()
			continue
		}
		break
	}
	lit := string(l.input[from:l.pos])
	return Token{Type: classify(lit), Literal: lit, Pos: start}
}

func classify(lit string) TokenType {
	switch lit {
	case "true", "false":
		return TokenBool
	case "inf", "+inf", "-inf", "nan", "+nan", "-nan":
		return TokenFloat
	}
	if !isNumeric(lit) {
		return TokenIdent
	}
	digits := strings.TrimLeft(lit, "+-")
	if len(digits) > 2 && digits[0] == '0' && strings.ContainsRune("xob", rune(digits[1])) {
		return TokenInteger
	}
	if strings.ContainsAny(lit, ".eE") {
		return TokenFloat
	}
	return TokenInteger
}

// isNumeric reports whether lit starts like a number and carries no letters besides exponents and base prefixes
func isNumeric(lit string) bool {
	s := strings.TrimLeft(lit, "+-")
	if s == "" || !isDigit(rune(s[0])) {
		return false
	}
	if len(s) > 2 && s[0] == '0' && strings.ContainsRune("xob", rune(s[1])) {
		return true
	}
	for _, r := range s {
		if isAlpha(r) && r != 'e' && r != 'E' {
			return false
		}
	}
	return true
}

func isBare(r rune) bool {
	return isAlpha(r) || isDigit(r) || r == '_' || r == '-'
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
