package toml

import (
	"fmt"
	"strconv"
	"strings"
)

// scanner walks the source bytes and produces tokens. It lexes the
// subset preset files use: bare and quoted keys, decimal integers and
// floats, booleans, basic strings, brackets and comments. Hex, octal,
// dates and multi-line strings are out of scope and fail loudly.
type scanner struct {
	src  []byte
	pos  int
	line int
}

func newScanner(src []byte) *scanner {
	return &scanner{src: src, line: 1}
}

// scan returns the next token. Comments are consumed here and never
// reach the parser.
func (s *scanner) scan() token {
	s.skipBlank()

	if s.pos >= len(s.src) {
		return token{kind: kindEOF, line: s.line}
	}

	c := s.src[s.pos]
	switch c {
	case '\n':
		tok := token{kind: kindNewline, line: s.line}
		s.pos++
		s.line++
		return tok
	case '=':
		return s.single(kindEquals)
	case '.':
		return s.single(kindDot)
	case ',':
		return s.single(kindComma)
	case '[':
		return s.single(kindLBracket)
	case ']':
		return s.single(kindRBracket)
	case '"':
		return s.scanString()
	}

	if isDigit(c) || c == '+' || c == '-' {
		return s.scanNumber()
	}
	if isWordByte(c) {
		return s.scanWord()
	}
	s.pos++
	return s.errorf("unexpected character %q", c)
}

func (s *scanner) single(k kind) token {
	tok := token{kind: k, text: string(s.src[s.pos]), line: s.line}
	s.pos++
	return tok
}

func (s *scanner) errorf(format string, args ...any) token {
	return token{kind: kindError, text: fmt.Sprintf(format, args...), line: s.line}
}

// skipBlank eats spaces, tabs, carriage returns and comments. Newlines
// stay significant: they terminate statements.
func (s *scanner) skipBlank() {
	for s.pos < len(s.src) {
		switch s.src[s.pos] {
		case ' ', '\t', '\r':
			s.pos++
		case '#':
			for s.pos < len(s.src) && s.src[s.pos] != '\n' {
				s.pos++
			}
		default:
			return
		}
	}
}

// scanString decodes a basic double-quoted string, applying escapes in
// one pass.
func (s *scanner) scanString() token {
	line := s.line
	s.pos++ // opening quote
	var b strings.Builder

	for s.pos < len(s.src) {
		c := s.src[s.pos]
		switch c {
		case '"':
			s.pos++
			return token{kind: kindString, text: b.String(), line: line}
		case '\n':
			return s.errorf("newline inside string")
		case '\\':
			s.pos++
			if s.pos >= len(s.src) {
				return s.errorf("unterminated string")
			}
			esc := s.src[s.pos]
			s.pos++
			switch esc {
			case '"':
				b.WriteByte('"')
			case '\\':
				b.WriteByte('\\')
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			case 'u':
				if s.pos+4 > len(s.src) {
					return s.errorf("truncated \\u escape")
				}
				n, err := strconv.ParseUint(string(s.src[s.pos:s.pos+4]), 16, 32)
				if err != nil {
					return s.errorf("bad \\u escape %q", s.src[s.pos:s.pos+4])
				}
				b.WriteRune(rune(n))
				s.pos += 4
			default:
				return s.errorf("unsupported escape \\%c", esc)
			}
		default:
			b.WriteByte(c)
			s.pos++
		}
	}
	return s.errorf("unterminated string")
}

// scanNumber reads a signed decimal literal and classifies it by
// shape: anything carrying a dot or an exponent is a float. The parser
// owns the strconv conversion and its error.
func (s *scanner) scanNumber() token {
	start := s.pos
	s.pos++ // sign or first digit
	for s.pos < len(s.src) && isNumberByte(s.src[s.pos]) {
		s.pos++
	}

	text := string(s.src[start:s.pos])
	if strings.ContainsAny(text, ".eE") {
		return token{kind: kindFloat, text: text, line: s.line}
	}
	return token{kind: kindInt, text: text, line: s.line}
}

func (s *scanner) scanWord() token {
	start := s.pos
	for s.pos < len(s.src) && isWordByte(s.src[s.pos]) {
		s.pos++
	}

	text := string(s.src[start:s.pos])
	if text == "true" || text == "false" {
		return token{kind: kindBool, text: text, line: s.line}
	}
	return token{kind: kindWord, text: text, line: s.line}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isWordByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || isDigit(c) || c == '_' || c == '-'
}

func isNumberByte(c byte) bool {
	return isDigit(c) || c == '.' || c == 'e' || c == 'E' || c == '+' || c == '-' || c == '_'
}
