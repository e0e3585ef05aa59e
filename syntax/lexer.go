package syntax

type tokenType int

const (
	tokEOF tokenType = iota
	tokTerm           // newline or ';', terminates a statement
	tokInt            // 123
	tokSymbol         // :user
	tokString         // "..." or '...'
	tokIdent          // create, times
	tokConst          // Factory
	tokLabel          // admin: (keyword-argument key)
	tokDo             // do
	tokEnd            // end
	tokDot            // .
	tokComma          // ,
	tokLParen         // (
	tokRParen         // )
	tokLBrace         // {
	tokRBrace         // }
	tokPipe           // |
)

// token is a single lexical token with its half-open byte range in the input.
type token struct {
	typ   tokenType
	text  string
	start int
	end   int
}

// lexer scans a source buffer into tokens. Comments and horizontal
// whitespace are skipped; newlines are kept as statement terminators.
type lexer struct {
	src []byte
	pos int
}

func newLexer(src []byte) *lexer {
	return &lexer{src: src}
}

func (l *lexer) tokenize() []token {
	var tokens []token
	for l.pos < len(l.src) {
		start := l.pos
		c := l.src[l.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\r':
			l.pos++

		case c == '#':
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.pos++
			}

		case c == '\n' || c == ';':
			l.pos++
			tokens = append(tokens, token{tokTerm, string(c), start, l.pos})

		case c == '.':
			l.pos++
			tokens = append(tokens, token{tokDot, ".", start, l.pos})

		case c == ',':
			l.pos++
			tokens = append(tokens, token{tokComma, ",", start, l.pos})

		case c == '(':
			l.pos++
			tokens = append(tokens, token{tokLParen, "(", start, l.pos})

		case c == ')':
			l.pos++
			tokens = append(tokens, token{tokRParen, ")", start, l.pos})

		case c == '{':
			l.pos++
			tokens = append(tokens, token{tokLBrace, "{", start, l.pos})

		case c == '}':
			l.pos++
			tokens = append(tokens, token{tokRBrace, "}", start, l.pos})

		case c == '|':
			l.pos++
			tokens = append(tokens, token{tokPipe, "|", start, l.pos})

		case c == ':' && l.pos+1 < len(l.src) && isNameStart(l.src[l.pos+1]):
			l.pos++
			name := l.scanName()
			tokens = append(tokens, token{tokSymbol, name, start, l.pos})

		case c == '"' || c == '\'':
			text, ok := l.scanString(c)
			if !ok {
				// unterminated string: emit what we have and stop
				tokens = append(tokens, token{tokString, text, start, l.pos})
				tokens = append(tokens, token{typ: tokEOF, start: l.pos, end: l.pos})
				return tokens
			}
			tokens = append(tokens, token{tokString, text, start, l.pos})

		case isDigit(c):
			for l.pos < len(l.src) && (isDigit(l.src[l.pos]) || l.src[l.pos] == '_') {
				l.pos++
			}
			tokens = append(tokens, token{tokInt, string(l.src[start:l.pos]), start, l.pos})

		case isNameStart(c):
			name := l.scanName()
			typ := tokIdent
			switch {
			case name == "do":
				typ = tokDo
			case name == "end":
				typ = tokEnd
			case c >= 'A' && c <= 'Z':
				typ = tokConst
			}
			// a name directly followed by ':' (not '::') is a keyword-argument label
			if (typ == tokIdent || typ == tokConst) && l.pos < len(l.src) &&
				l.src[l.pos] == ':' && (l.pos+1 >= len(l.src) || l.src[l.pos+1] != ':') {
				l.pos++
				tokens = append(tokens, token{tokLabel, name, start, l.pos})
				continue
			}
			tokens = append(tokens, token{typ, name, start, l.pos})

		default:
			// unknown byte: skip it so the lexer stays total over any input
			l.pos++
		}
	}
	tokens = append(tokens, token{typ: tokEOF, start: l.pos, end: l.pos})
	return tokens
}

// scanName consumes an identifier-shaped run, including a trailing '?' or '!'
// (predicate and bang method names).
func (l *lexer) scanName() string {
	start := l.pos
	for l.pos < len(l.src) && isNameChar(l.src[l.pos]) {
		l.pos++
	}
	if l.pos < len(l.src) && (l.src[l.pos] == '?' || l.src[l.pos] == '!') {
		l.pos++
	}
	return string(l.src[start:l.pos])
}

// scanString consumes a quoted string and returns its inner content. The
// opening quote is at the current position. Escapes are kept verbatim; only
// an escaped closing quote keeps the scan going.
func (l *lexer) scanString(quote byte) (string, bool) {
	l.pos++ // opening quote
	start := l.pos
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if c == '\\' && l.pos+1 < len(l.src) {
			l.pos += 2
			continue
		}
		if c == quote {
			content := string(l.src[start:l.pos])
			l.pos++ // closing quote
			return content, true
		}
		if c == '\n' {
			break
		}
		l.pos++
	}
	return string(l.src[start:l.pos]), false
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isNameStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isNameChar(c byte) bool {
	return isNameStart(c) || isDigit(c)
}
