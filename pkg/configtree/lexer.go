package configtree

import (
	"fmt"
	"strings"
)

// tokenType represents the type of a lexer token.
type tokenType int

const (
	tokenLBrace     tokenType = iota // {
	tokenRBrace                      // }
	tokenNewline                     // statement terminator
	tokenIdentifier                  // unquoted word
	tokenString                      // "quoted string"
	tokenEOF
	tokenError
)

func (t tokenType) String() string {
	switch t {
	case tokenLBrace:
		return "'{'"
	case tokenRBrace:
		return "'}'"
	case tokenNewline:
		return "end of line"
	case tokenIdentifier:
		return "identifier"
	case tokenString:
		return "string"
	case tokenEOF:
		return "EOF"
	case tokenError:
		return "error"
	default:
		return "unknown"
	}
}

// token is a single lexer token.
type token struct {
	Type   tokenType
	Value  string
	Line   int
	Column int
}

func (t token) String() string {
	if t.Type == tokenIdentifier || t.Type == tokenString {
		return fmt.Sprintf("%s(%q)", t.Type, t.Value)
	}
	return t.Type.String()
}

// lexer tokenizes configuration text. Newlines terminate statements and are
// reported as tokens; runs of blank lines collapse to one.
type lexer struct {
	input  string
	pos    int
	line   int
	column int
}

func newLexer(input string) *lexer {
	return &lexer{
		input:  input,
		line:   1,
		column: 1,
	}
}

// next returns the next token, advancing the position.
func (l *lexer) next() token {
	l.skipBlanksAndComments()

	if l.pos >= len(l.input) {
		return token{Type: tokenEOF, Line: l.line, Column: l.column}
	}

	ch := l.input[l.pos]
	line, col := l.line, l.column

	switch ch {
	case '{':
		l.advance()
		return token{Type: tokenLBrace, Value: "{", Line: line, Column: col}
	case '}':
		l.advance()
		return token{Type: tokenRBrace, Value: "}", Line: line, Column: col}
	case '\n':
		for l.pos < len(l.input) && (l.input[l.pos] == '\n' || l.input[l.pos] == '\r') {
			l.advance()
		}
		return token{Type: tokenNewline, Line: line, Column: col}
	case '"':
		return l.readString(line, col)
	default:
		if isIdentChar(ch) {
			return l.readIdentifier(line, col)
		}
		l.advance()
		return token{
			Type:   tokenError,
			Value:  fmt.Sprintf("unexpected character: %c", ch),
			Line:   line,
			Column: col,
		}
	}
}

func (l *lexer) advance() {
	if l.pos < len(l.input) {
		if l.input[l.pos] == '\n' {
			l.line++
			l.column = 1
		} else {
			l.column++
		}
		l.pos++
	}
}

// skipBlanksAndComments skips horizontal whitespace and comments, but never
// consumes a newline: newlines terminate statements. A comment runs to the
// end of its line and leaves the newline for the caller.
func (l *lexer) skipBlanksAndComments() {
	for l.pos < len(l.input) {
		ch := l.input[l.pos]

		if ch == ' ' || ch == '\t' || ch == '\r' {
			l.advance()
			continue
		}

		// Line comment: # ... \n
		if ch == '#' {
			for l.pos < len(l.input) && l.input[l.pos] != '\n' {
				l.advance()
			}
			continue
		}

		// Block comment: /* ... */
		if ch == '/' && l.pos+1 < len(l.input) && l.input[l.pos+1] == '*' {
			l.advance() // /
			l.advance() // *
			for l.pos+1 < len(l.input) {
				if l.input[l.pos] == '*' && l.input[l.pos+1] == '/' {
					l.advance() // *
					l.advance() // /
					break
				}
				l.advance()
			}
			continue
		}

		// Line comment: // ... \n
		if ch == '/' && l.pos+1 < len(l.input) && l.input[l.pos+1] == '/' {
			for l.pos < len(l.input) && l.input[l.pos] != '\n' {
				l.advance()
			}
			continue
		}

		break
	}
}

// readString reads a double-quoted string, decoding the escape sequences
// \n \r \t \f \b \\ and \". Input text is pre-escaped by EscapeBackslash,
// so every backslash the lexer sees starts a well-formed sequence.
func (l *lexer) readString(line, col int) token {
	l.advance() // opening quote
	var b strings.Builder
	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		if ch == '\\' && l.pos+1 < len(l.input) {
			l.advance()
			switch l.input[l.pos] {
			case '"':
				b.WriteByte('"')
			case '\\':
				b.WriteByte('\\')
			case 'n':
				b.WriteByte('\n')
			case 'r':
				b.WriteByte('\r')
			case 't':
				b.WriteByte('\t')
			case 'f':
				b.WriteByte('\f')
			case 'b':
				b.WriteByte('\b')
			default:
				b.WriteByte('\\')
				b.WriteByte(l.input[l.pos])
			}
			l.advance()
			continue
		}
		if ch == '"' {
			l.advance()
			return token{Type: tokenString, Value: b.String(), Line: line, Column: col}
		}
		b.WriteByte(ch)
		l.advance()
	}
	return token{Type: tokenError, Value: "unterminated string", Line: line, Column: col}
}

func (l *lexer) readIdentifier(line, col int) token {
	start := l.pos
	for l.pos < len(l.input) && isIdentChar(l.input[l.pos]) {
		l.pos++
		l.column++
	}
	return token{Type: tokenIdentifier, Value: l.input[start:l.pos], Line: line, Column: col}
}

// isIdentChar returns true if ch is valid in an unquoted word. Node names
// and values can contain letters, digits, hyphens, underscores, dots,
// slashes, colons, asterisks, plus signs, commas, equals signs, and at
// signs. This handles prefixes (10.0.1.0/24), interface names (eth0.10),
// MAC addresses, and wildcards. Anything else must be quoted.
func isIdentChar(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') ||
		(ch >= 'A' && ch <= 'Z') ||
		(ch >= '0' && ch <= '9') ||
		ch == '-' || ch == '_' || ch == '.' ||
		ch == '/' || ch == ':' || ch == '*' || ch == '+' ||
		ch == ',' || ch == '=' || ch == '@' || ch == '%' ||
		ch == '!' || ch == '&' || ch == '~' || ch == '^'
}

// EscapeBackslash doubles every backslash that does not begin one of the
// escape sequences \b \f \n \r \t \\ \", so that text handed to the parser
// contains only well-formed sequences. A trailing bare backslash is doubled
// as well.
func EscapeBackslash(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ch != '\\' {
			b.WriteByte(ch)
			continue
		}
		if i+1 < len(s) {
			switch s[i+1] {
			case 'b', 'f', 'n', 'r', 't', '"':
				b.WriteByte('\\')
				b.WriteByte(s[i+1])
				i++
				continue
			case '\\':
				b.WriteString(`\\`)
				i++
				continue
			}
		}
		b.WriteString(`\\`)
	}
	return b.String()
}
