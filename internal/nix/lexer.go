package nix

type tokKind int

const (
	tokEOF tokKind = iota
	tokIdent
	tokInt
	tokFloat
	tokString
	tokIndentString
	tokPath
	tokLBrace
	tokRBrace
	tokLBracket
	tokRBracket
	tokLParen
	tokRParen
	tokSemi
	tokAssign
	tokDot
	tokComma
	tokColon
	tokQuestion
	tokAt
	tokEllipsis
	tokDollarBrace
	tokOp
	tokLet
	tokIn
	tokRec
	tokInherit
	tokWith
	tokIf
	tokThen
	tokElse
	tokAssert
	tokOr
	tokInvalid
)

var keywords = map[string]tokKind{
	"let":     tokLet,
	"in":      tokIn,
	"rec":     tokRec,
	"inherit": tokInherit,
	"with":    tokWith,
	"if":      tokIf,
	"then":    tokThen,
	"else":    tokElse,
	"assert":  tokAssert,
	"or":      tokOr,
}

type token struct {
	kind  tokKind
	text  string
	start int
	end   int
	pos   Position
}

type lexer struct {
	src       []byte
	off       int
	line      int
	lineStart int
}

func newLexer(src []byte) *lexer {
	return &lexer{src: src, line: 1}
}

func (l *lexer) position() Position {
	return Position{Line: l.line, Column: l.off - l.lineStart + 1}
}

func (l *lexer) peek() byte {
	if l.off >= len(l.src) {
		return 0
	}
	return l.src[l.off]
}

func (l *lexer) peekAt(n int) byte {
	if l.off+n >= len(l.src) {
		return 0
	}
	return l.src[l.off+n]
}

func (l *lexer) advance() {
	if l.off < len(l.src) {
		if l.src[l.off] == '\n' {
			l.line++
			l.lineStart = l.off + 1
		}
		l.off++
	}
}

func (l *lexer) advanceN(n int) {
	for i := 0; i < n; i++ {
		l.advance()
	}
}

// lex tokenizes the whole input. Lexing never fails: bytes that fit no
// token class become tokInvalid tokens for the parser to diagnose.
func lex(src []byte) []token {
	l := newLexer(src)
	var toks []token
	for {
		tok := l.next()
		toks = append(toks, tok)
		if tok.kind == tokEOF {
			return toks
		}
	}
}

func (l *lexer) next() token {
	l.skipTrivia()
	start := l.off
	pos := l.position()

	mk := func(kind tokKind) token {
		return token{kind: kind, text: string(l.src[start:l.off]), start: start, end: l.off, pos: pos}
	}

	c := l.peek()
	switch {
	case l.off >= len(l.src):
		return token{kind: tokEOF, start: start, end: start, pos: pos}
	case isIdentStart(c):
		l.lexIdent()
		t := mk(tokIdent)
		if kw, ok := keywords[t.text]; ok {
			t.kind = kw
		}
		return t
	case c >= '0' && c <= '9':
		return l.lexNumber(start, pos)
	case c == '"':
		l.lexQuotedString()
		return mk(tokString)
	case c == '\'' && l.peekAt(1) == '\'':
		l.lexIndentString()
		return mk(tokIndentString)
	case l.atPathStart():
		l.lexPath()
		return mk(tokPath)
	case c == '<' && l.atSearchPath():
		l.lexSearchPath()
		return mk(tokPath)
	}

	// Punctuation and operators, longest match first.
	three := l.sliceAhead(3)
	if three == "..." {
		l.advanceN(3)
		return mk(tokEllipsis)
	}
	two := l.sliceAhead(2)
	switch two {
	case "${":
		l.advanceN(2)
		return mk(tokDollarBrace)
	case "++", "//", "==", "!=", "<=", ">=", "&&", "||", "->":
		l.advanceN(2)
		return mk(tokOp)
	}

	l.advance()
	switch c {
	case '{':
		return mk(tokLBrace)
	case '}':
		return mk(tokRBrace)
	case '[':
		return mk(tokLBracket)
	case ']':
		return mk(tokRBracket)
	case '(':
		return mk(tokLParen)
	case ')':
		return mk(tokRParen)
	case ';':
		return mk(tokSemi)
	case '=':
		return mk(tokAssign)
	case '.':
		return mk(tokDot)
	case ',':
		return mk(tokComma)
	case ':':
		return mk(tokColon)
	case '?':
		return mk(tokQuestion)
	case '@':
		return mk(tokAt)
	case '+', '-', '*', '/', '<', '>', '!':
		return mk(tokOp)
	}
	return mk(tokInvalid)
}

func (l *lexer) skipTrivia() {
	for l.off < len(l.src) {
		c := l.peek()
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			l.advance()
		case c == '#':
			for l.off < len(l.src) && l.peek() != '\n' {
				l.advance()
			}
		case c == '/' && l.peekAt(1) == '*':
			l.advanceN(2)
			for l.off < len(l.src) && !(l.peek() == '*' && l.peekAt(1) == '/') {
				l.advance()
			}
			l.advanceN(2)
		default:
			return
		}
	}
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9') || c == '-' || c == '\''
}

func (l *lexer) lexIdent() {
	for l.off < len(l.src) && isIdentPart(l.peek()) {
		l.advance()
	}
}

func (l *lexer) lexNumber(start int, pos Position) token {
	kind := tokInt
	for l.off < len(l.src) && l.peek() >= '0' && l.peek() <= '9' {
		l.advance()
	}
	if l.peek() == '.' && l.peekAt(1) >= '0' && l.peekAt(1) <= '9' {
		kind = tokFloat
		l.advance()
		for l.off < len(l.src) && l.peek() >= '0' && l.peek() <= '9' {
			l.advance()
		}
	}
	if l.peek() == 'e' || l.peek() == 'E' {
		n := 1
		if l.peekAt(1) == '+' || l.peekAt(1) == '-' {
			n = 2
		}
		if c := l.peekAt(n); c >= '0' && c <= '9' {
			kind = tokFloat
			l.advanceN(n)
			for l.off < len(l.src) && l.peek() >= '0' && l.peek() <= '9' {
				l.advance()
			}
		}
	}
	return token{kind: kind, text: string(l.src[start:l.off]), start: start, end: l.off, pos: pos}
}

// lexQuotedString consumes a "..." string including embedded ${...}
// interpolations, which may themselves contain nested strings.
func (l *lexer) lexQuotedString() {
	l.advance() // opening quote
	for l.off < len(l.src) {
		switch {
		case l.peek() == '\\':
			l.advanceN(2)
		case l.peek() == '$' && l.peekAt(1) == '{':
			l.advanceN(2)
			l.skipInterpolation()
		case l.peek() == '"':
			l.advance()
			return
		default:
			l.advance()
		}
	}
}

// lexIndentString consumes a ''...'' string. ''' escapes a literal ''
// and ''$ escapes interpolation.
func (l *lexer) lexIndentString() {
	l.advanceN(2) // opening ''
	for l.off < len(l.src) {
		switch {
		case l.peek() == '\'' && l.peekAt(1) == '\'':
			if l.peekAt(2) == '\'' || l.peekAt(2) == '$' {
				l.advanceN(3)
				continue
			}
			l.advanceN(2)
			return
		case l.peek() == '$' && l.peekAt(1) == '{':
			l.advanceN(2)
			l.skipInterpolation()
		default:
			l.advance()
		}
	}
}

// skipInterpolation consumes the body of a ${...} up to its closing
// brace, balancing nested braces and skipping over nested strings.
func (l *lexer) skipInterpolation() {
	depth := 1
	for l.off < len(l.src) && depth > 0 {
		switch {
		case l.peek() == '"':
			l.lexQuotedString()
		case l.peek() == '\'' && l.peekAt(1) == '\'':
			l.lexIndentString()
		case l.peek() == '{':
			depth++
			l.advance()
		case l.peek() == '}':
			depth--
			l.advance()
		default:
			l.advance()
		}
	}
}

func (l *lexer) atPathStart() bool {
	c := l.peek()
	if c == '.' && l.peekAt(1) == '/' {
		return true
	}
	if c == '.' && l.peekAt(1) == '.' && l.peekAt(2) == '/' {
		return true
	}
	if c == '~' && l.peekAt(1) == '/' {
		return true
	}
	if c == '/' && isPathChar(l.peekAt(1)) {
		return true
	}
	return false
}

func isPathChar(c byte) bool {
	return isIdentPart(c) || c == '.' || c == '/' || c == '+'
}

func (l *lexer) lexPath() {
	for l.off < len(l.src) && isPathChar(l.peek()) {
		l.advance()
	}
}

func (l *lexer) atSearchPath() bool {
	// <nixpkgs> style lookup path: '<' then path chars then '>'.
	i := 1
	for isPathChar(l.peekAt(i)) {
		i++
	}
	return i > 1 && l.peekAt(i) == '>'
}

func (l *lexer) lexSearchPath() {
	l.advance() // '<'
	for l.off < len(l.src) && l.peek() != '>' {
		l.advance()
	}
	l.advance() // '>'
}

func (l *lexer) sliceAhead(n int) string {
	if l.off+n > len(l.src) {
		return ""
	}
	return string(l.src[l.off : l.off+n])
}
