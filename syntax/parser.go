package syntax

import "fmt"

// ParseError reports a syntax error with its position in the source file.
type ParseError struct {
	Filename string
	Line     int
	Column   int
	Msg      string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.Filename, e.Line, e.Column, e.Msg)
}

// Parse builds a syntax tree from a source buffer. The resulting File owns
// the tree; nodes reference the buffer only through byte spans.
func Parse(filename string, src []byte) (*File, error) {
	p := &parser{
		filename: filename,
		src:      src,
		tokens:   newLexer(src).tokenize(),
	}
	stmts, err := p.parseStmts(func(t tokenType) bool { return false })
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.typ != tokEOF {
		return nil, p.errorAt(tok, "unexpected %q", tok.text)
	}
	return newFile(filename, src, seqNode(stmts)), nil
}

type parser struct {
	filename string
	src      []byte
	tokens   []token
	pos      int
}

func (p *parser) peek() token { return p.tokens[p.pos] }

func (p *parser) next() token {
	tok := p.tokens[p.pos]
	if tok.typ != tokEOF {
		p.pos++
	}
	return tok
}

func (p *parser) at(t tokenType) bool { return p.tokens[p.pos].typ == t }

func (p *parser) expect(t tokenType, what string) (token, error) {
	tok := p.peek()
	if tok.typ != t {
		return tok, p.errorAt(tok, "expected %s, found %q", what, tok.text)
	}
	return p.next(), nil
}

func (p *parser) errorAt(tok token, format string, args ...any) error {
	line, col := 1, tok.start+1
	for i := 0; i < tok.start && i < len(p.src); i++ {
		if p.src[i] == '\n' {
			line++
			col = tok.start - i
		}
	}
	return &ParseError{Filename: p.filename, Line: line, Column: col, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) skipTerms() {
	for p.at(tokTerm) {
		p.next()
	}
}

// parseStmts parses statements separated by newlines or semicolons until EOF
// or a token accepted by stop.
func (p *parser) parseStmts(stop func(tokenType) bool) ([]*Node, error) {
	var stmts []*Node
	for {
		p.skipTerms()
		tok := p.peek()
		if tok.typ == tokEOF || stop(tok.typ) {
			return stmts, nil
		}
		stmt, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
		tok = p.peek()
		if tok.typ == tokEOF || tok.typ == tokTerm || stop(tok.typ) {
			continue
		}
		return nil, p.errorAt(tok, "expected end of statement, found %q", tok.text)
	}
}

func (p *parser) parseExpr() (*Node, error) {
	node, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.at(tokDot):
			p.next()
			sel, err := p.expect(tokIdent, "method name")
			if err != nil {
				return nil, err
			}
			selNode := atom(KindIdent, sel)
			args, parens, end, err := p.parseCallArgs(sel.end)
			if err != nil {
				return nil, err
			}
			node = sendNode(node, selNode, args, parens, Span{node.span.Start, end})

		case p.at(tokLBrace) || p.at(tokDo):
			call := node
			// a bare identifier taking a block is a receiverless call
			if call.kind == KindIdent {
				call = sendNode(nil, call, nil, false, call.span)
			}
			if call.kind != KindSend {
				return node, nil
			}
			block, err := p.parseBlock(call)
			if err != nil {
				return nil, err
			}
			node = block

		default:
			return node, nil
		}
	}
}

func (p *parser) parsePrimary() (*Node, error) {
	tok := p.peek()
	switch tok.typ {
	case tokInt:
		return atom(KindInt, p.next()), nil
	case tokSymbol:
		return atom(KindSym, p.next()), nil
	case tokString:
		return atom(KindStr, p.next()), nil
	case tokConst:
		return atom(KindConst, p.next()), nil
	case tokIdent:
		ident := p.next()
		selNode := atom(KindIdent, ident)
		if p.at(tokLParen) || bareArgStart(p.peek().typ) {
			args, parens, end, err := p.parseCallArgs(ident.end)
			if err != nil {
				return nil, err
			}
			return sendNode(nil, selNode, args, parens, Span{ident.start, end}), nil
		}
		return selNode, nil
	case tokLParen:
		lp := p.next()
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		rp, err := p.expect(tokRParen, `")"`)
		if err != nil {
			return nil, err
		}
		// the grouping owns its parentheses
		inner.span = Span{lp.start, rp.end}
		return inner, nil
	default:
		return nil, p.errorAt(tok, "expected expression, found %q", tok.text)
	}
}

// parseCallArgs parses an argument list after a selector ending at selEnd.
// It accepts either a parenthesized list, a bare (paren-free) list, or no
// arguments at all, and reports which style the call site used.
func (p *parser) parseCallArgs(selEnd int) (args []*Node, parens bool, end int, err error) {
	switch {
	case p.at(tokLParen):
		p.next()
		p.skipTerms()
		if !p.at(tokRParen) {
			args, err = p.parseArgList()
			if err != nil {
				return nil, false, 0, err
			}
		}
		p.skipTerms()
		rp, err := p.expect(tokRParen, `")"`)
		if err != nil {
			return nil, false, 0, err
		}
		return args, true, rp.end, nil

	case bareArgStart(p.peek().typ):
		args, err = p.parseArgList()
		if err != nil {
			return nil, false, 0, err
		}
		return args, false, args[len(args)-1].span.End, nil

	default:
		return nil, false, selEnd, nil
	}
}

func (p *parser) parseArgList() ([]*Node, error) {
	var args []*Node
	for {
		arg, err := p.parseArg()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if !p.at(tokComma) {
			return args, nil
		}
		p.next()
		p.skipTerms()
	}
}

func (p *parser) parseArg() (*Node, error) {
	if p.at(tokLabel) {
		label := p.next()
		key := &Node{kind: KindSym, value: label.text, span: Span{label.start, label.end}}
		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &Node{
			kind:     KindPair,
			children: []*Node{key, value},
			span:     Span{label.start, value.span.End},
		}, nil
	}
	return p.parseExpr()
}

func (p *parser) parseBlock(call *Node) (*Node, error) {
	opener := p.next() // '{' or 'do'
	braced := opener.typ == tokLBrace
	if !braced {
		p.skipTerms()
	}

	params := &Node{kind: KindParams, span: Span{opener.end, opener.end}}
	if p.at(tokPipe) {
		lp := p.next()
		var decls []*Node
		for p.at(tokIdent) {
			decls = append(decls, atom(KindIdent, p.next()))
			if p.at(tokComma) {
				p.next()
			}
		}
		rp, err := p.expect(tokPipe, `"|"`)
		if err != nil {
			return nil, err
		}
		params = &Node{kind: KindParams, children: decls, span: Span{lp.start, rp.end}}
	}

	closerType, closerWhat := tokRBrace, `"}"`
	if !braced {
		closerType, closerWhat = tokEnd, `"end"`
	}
	stmts, err := p.parseStmts(func(t tokenType) bool { return t == closerType })
	if err != nil {
		return nil, err
	}
	closer, err := p.expect(closerType, closerWhat)
	if err != nil {
		return nil, err
	}

	return &Node{
		kind:     KindBlock,
		children: []*Node{call, params, seqNode(stmts)},
		span:     Span{call.span.Start, closer.end},
	}, nil
}

// seqNode folds a statement list into a body node: nil when empty, the lone
// statement when singular, a KindBegin node otherwise. Keeping the
// one-statement case unwrapped lets rules distinguish "exactly one
// statement" structurally.
func seqNode(stmts []*Node) *Node {
	switch len(stmts) {
	case 0:
		return nil
	case 1:
		return stmts[0]
	default:
		return &Node{
			kind:     KindBegin,
			children: stmts,
			span:     Span{stmts[0].span.Start, stmts[len(stmts)-1].span.End},
		}
	}
}

func atom(k Kind, tok token) *Node {
	return &Node{kind: k, value: tok.text, span: Span{tok.start, tok.end}}
}

func sendNode(recv, sel *Node, args []*Node, parens bool, span Span) *Node {
	children := make([]*Node, 0, 2+len(args))
	children = append(children, recv, sel)
	children = append(children, args...)
	return &Node{kind: KindSend, children: children, span: span, parens: parens}
}

func bareArgStart(t tokenType) bool {
	switch t {
	case tokInt, tokSymbol, tokString, tokIdent, tokConst, tokLabel:
		return true
	default:
		return false
	}
}
