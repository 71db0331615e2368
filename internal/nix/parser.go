package nix

import "fmt"

// Parse builds a syntax tree for src. It never fails outright: regions
// that cannot be parsed become KindError nodes and a ParseError is
// recorded for each, so callers can extract from the healthy parts of a
// partially malformed file.
func Parse(src []byte) *Tree {
	p := &parser{src: src, toks: lex(src)}
	root := &Node{Kind: KindRoot, Start: Position{Line: 1, Column: 1}}
	if p.current().kind != tokEOF {
		root.Children = append(root.Children, p.parseExpr())
	}
	for p.current().kind != tokEOF {
		// Trailing garbage after the top-level expression.
		root.Children = append(root.Children, p.errorNode("unexpected token after expression"))
	}
	root.EndByte = len(src)
	return &Tree{Root: root, Errors: p.errs}
}

type parser struct {
	src  []byte
	toks []token
	pos  int
	errs []ParseError
}

func (p *parser) current() token { return p.tokenAt(0) }

func (p *parser) tokenAt(n int) token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1] // EOF
	}
	return p.toks[p.pos+n]
}

func (p *parser) bump() token {
	t := p.current()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *parser) at(kind tokKind) bool { return p.current().kind == kind }

func (p *parser) expect(kind tokKind, what string) bool {
	if p.at(kind) {
		p.bump()
		return true
	}
	p.recordError(fmt.Sprintf("expected %s", what))
	return false
}

func (p *parser) recordError(msg string) {
	t := p.current()
	p.errs = append(p.errs, ParseError{Message: msg, Line: t.pos.Line, Column: t.pos.Column})
}

// errorNode records a diagnostic and consumes the offending token so
// the parser always makes progress.
func (p *parser) errorNode(msg string) *Node {
	p.recordError(msg)
	t := p.current()
	n := &Node{Kind: KindError, StartByte: t.start, EndByte: t.end, Start: t.pos}
	if !p.at(tokEOF) {
		p.bump()
	}
	return n
}

func (p *parser) node(kind Kind, startTok token, children ...*Node) *Node {
	n := &Node{Kind: kind, Children: children, StartByte: startTok.start, Start: startTok.pos}
	n.EndByte = p.prevEnd(startTok)
	return n
}

func (p *parser) prevEnd(startTok token) int {
	if p.pos == 0 {
		return startTok.end
	}
	return p.toks[p.pos-1].end
}

func (p *parser) parseExpr() *Node {
	switch p.current().kind {
	case tokLet:
		return p.parseLet()
	case tokWith:
		start := p.bump()
		scope := p.parseExpr()
		p.expect(tokSemi, "';' after with scope")
		body := p.parseExpr()
		return p.node(KindWith, start, scope, body)
	case tokAssert:
		start := p.bump()
		cond := p.parseExpr()
		p.expect(tokSemi, "';' after assert condition")
		body := p.parseExpr()
		return p.node(KindAssert, start, cond, body)
	case tokIf:
		start := p.bump()
		cond := p.parseExpr()
		p.expect(tokThen, "'then'")
		thenExpr := p.parseExpr()
		p.expect(tokElse, "'else'")
		elseExpr := p.parseExpr()
		return p.node(KindIf, start, cond, thenExpr, elseExpr)
	case tokIdent:
		// Simple lambda: x: body  or  x @ { ... }: body
		if p.tokenAt(1).kind == tokColon {
			start := p.bump()
			param := &Node{Kind: KindIdent, StartByte: start.start, EndByte: start.end, Start: start.pos}
			p.bump() // ':'
			body := p.parseExpr()
			return p.node(KindLambda, start, param, body)
		}
		if p.tokenAt(1).kind == tokAt && p.tokenAt(2).kind == tokLBrace {
			return p.parseLambdaWithPattern()
		}
	case tokLBrace:
		if p.lambdaPatternAhead() {
			return p.parseLambdaWithPattern()
		}
	}
	return p.parseOpExpr()
}

// lambdaPatternAhead reports whether the '{' at the current position
// opens a function pattern ({ a, b ? x, ... }: body) rather than an
// attribute set. It scans to the matching brace and checks for ':' or
// '@' directly after it.
func (p *parser) lambdaPatternAhead() bool {
	depth := 0
	for i := 0; ; i++ {
		t := p.tokenAt(i)
		switch t.kind {
		case tokEOF:
			return false
		case tokLBrace:
			depth++
		case tokRBrace:
			depth--
			if depth == 0 {
				next := p.tokenAt(i + 1).kind
				return next == tokColon || next == tokAt
			}
		}
	}
}

func (p *parser) parseLambdaWithPattern() *Node {
	start := p.current()
	var children []*Node
	if p.at(tokIdent) {
		t := p.bump()
		children = append(children, &Node{Kind: KindIdent, StartByte: t.start, EndByte: t.end, Start: t.pos})
		p.expect(tokAt, "'@'")
	}
	children = append(children, p.parsePattern())
	if p.at(tokAt) {
		p.bump()
		if p.at(tokIdent) {
			t := p.bump()
			children = append(children, &Node{Kind: KindIdent, StartByte: t.start, EndByte: t.end, Start: t.pos})
		}
	}
	p.expect(tokColon, "':' after function pattern")
	children = append(children, p.parseExpr())
	return p.node(KindLambda, start, children...)
}

func (p *parser) parsePattern() *Node {
	start := p.current()
	p.expect(tokLBrace, "'{'")
	var children []*Node
	for !p.at(tokRBrace) && !p.at(tokEOF) {
		switch p.current().kind {
		case tokIdent:
			t := p.bump()
			entry := &Node{Kind: KindIdent, StartByte: t.start, EndByte: t.end, Start: t.pos}
			children = append(children, entry)
			if p.at(tokQuestion) {
				p.bump()
				p.parseExpr() // default value, structure not retained
			}
		case tokEllipsis:
			p.bump()
		case tokComma:
			p.bump()
		default:
			children = append(children, p.errorNode("unexpected token in function pattern"))
		}
	}
	p.expect(tokRBrace, "'}' closing function pattern")
	return p.node(KindPattern, start, children...)
}

func (p *parser) parseLet() *Node {
	start := p.bump() // 'let'
	var children []*Node
	for !p.at(tokIn) && !p.at(tokEOF) {
		children = append(children, p.parseBinding(tokIn))
	}
	p.expect(tokIn, "'in' closing let bindings")
	children = append(children, p.parseExpr())
	return p.node(KindLetIn, start, children...)
}

var binaryOps = map[string]bool{
	"+": true, "-": true, "*": true, "/": true,
	"++": true, "//": true, "==": true, "!=": true,
	"<": true, ">": true, "<=": true, ">=": true,
	"&&": true, "||": true, "->": true,
}

func (p *parser) atBinaryOp() bool {
	return p.at(tokOp) && binaryOps[p.current().text]
}

// parseOpExpr parses chains of operands joined by binary operators.
// Operator precedence is deliberately not modelled: the tree only needs
// to expose structure, and a flat operand list under one node keeps raw
// text recoverable.
func (p *parser) parseOpExpr() *Node {
	start := p.current()
	first := p.parseApply()
	if !p.atBinaryOp() && !p.at(tokQuestion) {
		return first
	}
	children := []*Node{first}
	for p.atBinaryOp() || p.at(tokQuestion) {
		if p.at(tokQuestion) {
			p.bump()
			children = append(children, p.parseAttrPath())
			continue
		}
		p.bump()
		children = append(children, p.parseApply())
	}
	return p.node(KindBinaryOp, start, children...)
}

func (p *parser) parseApply() *Node {
	start := p.current()
	if p.at(tokOp) && (p.current().text == "!" || p.current().text == "-") {
		p.bump()
		operand := p.parseApply()
		return p.node(KindUnaryOp, start, operand)
	}
	first := p.parseSelect()
	if !p.atAtomStart() {
		return first
	}
	children := []*Node{first}
	for p.atAtomStart() {
		children = append(children, p.parseSelect())
	}
	return p.node(KindApply, start, children...)
}

func (p *parser) atAtomStart() bool {
	switch p.current().kind {
	case tokIdent, tokInt, tokFloat, tokString, tokIndentString, tokPath,
		tokLBracket, tokLParen, tokRec:
		return true
	case tokLBrace:
		// A '{' in argument position is an attrset argument unless it
		// opens a lambda pattern, which cannot appear unparenthesized
		// here.
		return !p.lambdaPatternAhead()
	}
	return false
}

func (p *parser) parseSelect() *Node {
	start := p.current()
	base := p.parseAtom()
	if !p.at(tokDot) {
		return base
	}
	p.bump()
	path := p.parseAttrPath()
	children := []*Node{base, path}
	if p.at(tokOr) {
		p.bump()
		children = append(children, p.parseAtom())
	}
	return p.node(KindSelect, start, children...)
}

func (p *parser) parseAtom() *Node {
	t := p.current()
	switch t.kind {
	case tokLBrace:
		return p.parseAttrSet(t)
	case tokRec:
		start := p.bump()
		if !p.at(tokLBrace) {
			return p.errorNode("expected '{' after rec")
		}
		set := p.parseAttrSet(p.current())
		set.StartByte = start.start
		set.Start = start.pos
		return set
	case tokLBracket:
		start := p.bump()
		var elems []*Node
		for !p.at(tokRBracket) && !p.at(tokEOF) {
			elems = append(elems, p.parseSelect())
		}
		p.expect(tokRBracket, "']' closing list")
		return p.node(KindList, start, elems...)
	case tokLParen:
		start := p.bump()
		inner := p.parseExpr()
		p.expect(tokRParen, "')' closing parenthesis")
		return p.node(KindParen, start, inner)
	case tokIdent:
		p.bump()
		return &Node{Kind: KindIdent, StartByte: t.start, EndByte: t.end, Start: t.pos}
	case tokInt:
		p.bump()
		return &Node{Kind: KindInteger, StartByte: t.start, EndByte: t.end, Start: t.pos}
	case tokFloat:
		p.bump()
		return &Node{Kind: KindFloat, StartByte: t.start, EndByte: t.end, Start: t.pos}
	case tokString:
		p.bump()
		return &Node{Kind: KindString, StartByte: t.start, EndByte: t.end, Start: t.pos}
	case tokIndentString:
		p.bump()
		return &Node{Kind: KindIndentString, StartByte: t.start, EndByte: t.end, Start: t.pos}
	case tokPath:
		p.bump()
		return &Node{Kind: KindPath, StartByte: t.start, EndByte: t.end, Start: t.pos}
	case tokDollarBrace:
		return p.parseDynamic()
	case tokLet, tokWith, tokIf, tokAssert:
		// Keyword expressions reached through operand position.
		return p.parseExpr()
	}
	return p.errorNode(fmt.Sprintf("unexpected token %q", t.text))
}

func (p *parser) parseDynamic() *Node {
	start := p.bump() // '${'
	inner := p.parseExpr()
	p.expect(tokRBrace, "'}' closing interpolation")
	return p.node(KindDynamic, start, inner)
}

func (p *parser) parseAttrSet(start token) *Node {
	p.bump() // '{'
	var children []*Node
	for !p.at(tokRBrace) && !p.at(tokEOF) {
		if p.at(tokInherit) {
			children = append(children, p.parseInherit())
			continue
		}
		children = append(children, p.parseBinding(tokRBrace))
	}
	p.expect(tokRBrace, "'}' closing attribute set")
	return p.node(KindAttrSet, start, children...)
}

func (p *parser) parseInherit() *Node {
	start := p.bump() // 'inherit'
	var children []*Node
	if p.at(tokLParen) {
		p.bump()
		children = append(children, p.parseExpr())
		p.expect(tokRParen, "')' closing inherit source")
	}
	for p.at(tokIdent) || p.at(tokString) {
		t := p.bump()
		kind := KindIdent
		if t.kind == tokString {
			kind = KindString
		}
		children = append(children, &Node{Kind: kind, StartByte: t.start, EndByte: t.end, Start: t.pos})
	}
	p.expect(tokSemi, "';' after inherit")
	return p.node(KindInherit, start, children...)
}

// parseBinding parses one `attr.path = value;` binding. On failure it
// resynchronizes at the next ';' (or the closing token) so a broken
// binding never takes its healthy siblings down with it.
func (p *parser) parseBinding(closing tokKind) *Node {
	start := p.current()
	if !p.atAttrNameStart() {
		n := p.errorNode("expected attribute name")
		p.recoverTo(closing)
		return n
	}
	path := p.parseAttrPath()
	if !p.at(tokAssign) {
		p.recordError("expected '=' in binding")
		p.recoverTo(closing)
		return p.node(KindError, start, path)
	}
	p.bump() // '='
	value := p.parseExpr()
	if !p.expect(tokSemi, "';' terminating binding") {
		p.recoverTo(closing)
	}
	return p.node(KindAttrPathValue, start, path, value)
}

func (p *parser) atAttrNameStart() bool {
	switch p.current().kind {
	case tokIdent, tokString, tokDollarBrace, tokOr:
		return true
	}
	return false
}

func (p *parser) parseAttrPath() *Node {
	start := p.current()
	var segs []*Node
	segs = append(segs, p.parseAttrName())
	for p.at(tokDot) {
		p.bump()
		segs = append(segs, p.parseAttrName())
	}
	return p.node(KindAttrPath, start, segs...)
}

func (p *parser) parseAttrName() *Node {
	t := p.current()
	switch t.kind {
	case tokIdent, tokOr:
		p.bump()
		return &Node{Kind: KindIdent, StartByte: t.start, EndByte: t.end, Start: t.pos}
	case tokString:
		p.bump()
		return &Node{Kind: KindString, StartByte: t.start, EndByte: t.end, Start: t.pos}
	case tokDollarBrace:
		return p.parseDynamic()
	}
	return p.errorNode("expected attribute name segment")
}

// recoverTo skips tokens until just past the next ';', or stops before
// the closing token / EOF.
func (p *parser) recoverTo(closing tokKind) {
	for !p.at(tokEOF) {
		switch p.current().kind {
		case tokSemi:
			p.bump()
			return
		case closing, tokRBrace:
			return
		}
		p.bump()
	}
}
