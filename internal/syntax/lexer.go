package syntax

// Lexer scans Decaf source into tokens. It never fails: malformed input is
// reported as Unknown or UntermString tokens.
type Lexer struct {
	src  []byte
	cur  int
	line int
	col  int
}

// NewLexer creates a lexer positioned at the start of src.
func NewLexer(src []byte) *Lexer {
	return &Lexer{src: src, line: 1, col: 1}
}

// Tokenize lexes all of src, excluding the trailing Eof token.
func Tokenize(src []byte) []Token {
	lx := NewLexer(src)
	var toks []Token
	for {
		tok := lx.Next()
		if tok.Kind == Eof {
			return toks
		}
		toks = append(toks, tok)
	}
}

// Next returns the next token. After the end of input it keeps returning Eof.
func (l *Lexer) Next() Token {
	l.skipTrivia()
	if l.cur >= len(l.src) {
		return Token{Kind: Eof, Line: l.line, Col: l.col}
	}

	start, line, col := l.cur, l.line, l.col
	c := l.src[l.cur]

	var kind TokenKind
	switch {
	case isIdentStart(c):
		for l.cur < len(l.src) && isIdentPart(l.src[l.cur]) {
			l.advance()
		}
		kind = Id
		if kw, ok := keywords[string(l.src[start:l.cur])]; ok {
			kind = kw
		}
	case isDigit(c):
		for l.cur < len(l.src) && isDigit(l.src[l.cur]) {
			l.advance()
		}
		kind = IntLit
	case c == '"':
		kind = l.scanString()
	default:
		kind = l.scanOperator()
	}

	return Token{Kind: kind, Line: line, Col: col, Text: string(l.src[start:l.cur])}
}

func (l *Lexer) advance() {
	if l.src[l.cur] == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	l.cur++
}

func (l *Lexer) peek(off int) byte {
	if l.cur+off < len(l.src) {
		return l.src[l.cur+off]
	}
	return 0
}

func (l *Lexer) skipTrivia() {
	for l.cur < len(l.src) {
		switch c := l.src[l.cur]; {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			l.advance()
		case c == '/' && l.peek(1) == '/':
			for l.cur < len(l.src) && l.src[l.cur] != '\n' {
				l.advance()
			}
		default:
			return
		}
	}
}

// scanString consumes a string literal. A string that hits a newline or the
// end of input before its closing quote becomes UntermString.
func (l *Lexer) scanString() TokenKind {
	l.advance() // opening quote
	for l.cur < len(l.src) {
		switch l.src[l.cur] {
		case '"':
			l.advance()
			return StringLit
		case '\n':
			return UntermString
		case '\\':
			l.advance()
			if l.cur < len(l.src) && l.src[l.cur] != '\n' {
				l.advance()
			}
		default:
			l.advance()
		}
	}
	return UntermString
}

func (l *Lexer) scanOperator() TokenKind {
	c := l.src[l.cur]
	two := func(next byte, long, short TokenKind) TokenKind {
		l.advance()
		if l.cur < len(l.src) && l.src[l.cur] == next {
			l.advance()
			return long
		}
		return short
	}

	switch c {
	case '=':
		return two('=', Eq, OpAssign)
	case '!':
		return two('=', Ne, Not)
	case '<':
		return two('=', Le, Lt)
	case '>':
		return two('=', Ge, Gt)
	case '&':
		return two('&', And, Unknown)
	case '|':
		return two('|', Or, Unknown)
	}

	l.advance()
	switch c {
	case '+':
		return Plus
	case '-':
		return Minus
	case '*':
		return Mul
	case '/':
		return Div
	case '%':
		return Mod
	case '(':
		return LPar
	case ')':
		return RPar
	case '{':
		return LBrc
	case '}':
		return RBrc
	case '[':
		return LBrk
	case ']':
		return RBrk
	case ';':
		return Semi
	case ',':
		return Comma
	case '.':
		return Dot
	default:
		return Unknown
	}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

// IsIdentByte reports whether c may appear inside an identifier.
func IsIdentByte(c byte) bool {
	return isIdentPart(c)
}
