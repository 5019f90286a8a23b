package parser

import (
	"slices"
	"strings"

	"fortio.org/safecast"

	"verusyn/internal/ast"
	"verusyn/internal/diag"
	"verusyn/internal/token"
)

// mark is a cursor position; sub > 0 means part of toks[pos] is consumed.
type mark struct {
	pos int
	sub int
}

func (m mark) less(o mark) bool {
	return m.pos < o.pos || (m.pos == o.pos && m.sub < o.sub)
}

func (p *Parser) mark() mark {
	return mark{pos: p.pos, sub: p.sub}
}

func (p *Parser) reset(m mark) {
	p.pos, p.sub = m.pos, m.sub
}

// peek returns the current token, or the unconsumed tail of a split one.
func (p *Parser) peek() token.Token {
	tok := p.toks[p.pos]
	if p.sub == 0 {
		return tok
	}
	return splitTail(tok, p.sub)
}

// nth returns the token n positions after the current one (n >= 1).
func (p *Parser) nth(n int) token.Token {
	i := min(p.pos+n, len(p.toks)-1)
	return p.toks[i]
}

func splitTail(tok token.Token, n int) token.Token {
	text := tok.Text[n:]
	kind, _ := token.LookupPunct(text)
	sp := tok.Span
	sp.Start += textLen(n)
	return token.Token{Kind: kind, Span: sp, Text: text}
}

// textLen converts a length within one token's text; tokens come from a
// file that already fits in uint32.
func textLen(n int) uint32 {
	l, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(err)
	}
	return l
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.peek().Kind)
}

// atWord reports whether the current token is the contextual word w.
func (p *Parser) atWord(w string) bool {
	return p.peek().IsWord(w)
}

// advance consumes the current token. EOF is never consumed.
func (p *Parser) advance() token.Token {
	tok := p.peek()
	if tok.Kind == token.EOF {
		return tok
	}
	p.pos++
	p.sub = 0
	return tok
}

// bump consumes the current token as a child.
func (p *Parser) bump(tag ast.Tag) ast.Child {
	return ast.TokChild(tag, p.advance())
}

func (p *Parser) eat(k token.Kind) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	return token.Token{}, false
}

func (p *Parser) expect(k token.Kind) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	p.fail(k.String())
	return token.Token{}, false
}

// expectClose expects a closing delimiter; at EOF the failure is an
// unclosed delimiter pointing back at open.
func (p *Parser) expectClose(k token.Kind, open token.Token) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	if p.at(token.EOF) {
		p.failNote(diag.SynUnclosedDelimiter, k.String(), diag.Note{
			Span: open.Span,
			Msg:  "unclosed " + open.Kind.String() + " opened here",
		})
		return token.Token{}, false
	}
	p.fail(k.String())
	return token.Token{}, false
}

func (p *Parser) eatWord(w string) (token.Token, bool) {
	if p.atWord(w) {
		return p.advance(), true
	}
	return token.Token{}, false
}

// eatGlued consumes k, splitting a longer operator that starts with it:
// ">>" yields ">" and leaves ">", "&&" yields "&" and leaves "&".
func (p *Parser) eatGlued(k token.Kind) (token.Token, bool) {
	tok := p.peek()
	if tok.Kind == k {
		return p.advance(), true
	}
	want := token.PunctText(k)
	if want == "" || !tok.Kind.IsPunct() || len(tok.Text) <= len(want) || !strings.HasPrefix(tok.Text, want) {
		return token.Token{}, false
	}
	if _, ok := token.LookupPunct(tok.Text[len(want):]); !ok {
		return token.Token{}, false
	}
	head := tok
	head.Kind = k
	head.Text = want
	head.Span.End = head.Span.Start + textLen(len(want))
	p.sub += len(want)
	return head, true
}

// atGlued reports whether eatGlued(k) would succeed.
func (p *Parser) atGlued(k token.Kind) bool {
	tok := p.peek()
	if tok.Kind == k {
		return true
	}
	want := token.PunctText(k)
	if want == "" || !tok.Kind.IsPunct() || len(tok.Text) <= len(want) || !strings.HasPrefix(tok.Text, want) {
		return false
	}
	_, ok := token.LookupPunct(tok.Text[len(want):])
	return ok
}

func (p *Parser) expectGlued(k token.Kind) (token.Token, bool) {
	if tok, ok := p.eatGlued(k); ok {
		return tok, true
	}
	p.fail(k.String())
	return token.Token{}, false
}

// finish allocates a node spanning its children.
func (p *Parser) finish(kind ast.Kind, ch []ast.Child) ast.NodeID {
	return p.tree.NewNode(kind, ch, p.peek().Span)
}

// expectIdent consumes an identifier. A reserved keyword in its place is
// reported as such.
func (p *Parser) expectIdent(what string) (token.Token, bool) {
	tok := p.peek()
	if tok.Kind == token.Ident {
		return p.advance(), true
	}
	if tok.Kind.IsKeyword() {
		p.failCode(diag.SynReservedKeyword, what)
		return token.Token{}, false
	}
	p.fail(what)
	return token.Token{}, false
}

// sepList parses `item (sep item)* sep?` until closing (not consumed).
func (p *Parser) sepList(closing token.Kind, tag ast.Tag, item func() (ast.NodeID, bool)) ([]ast.Child, bool) {
	var ch []ast.Child
	for !p.atGlued(closing) {
		id, ok := item()
		if !ok {
			return nil, false
		}
		ch = append(ch, ast.NodeChild(tag, id))
		comma, ok := p.eat(token.Comma)
		if !ok {
			break
		}
		ch = append(ch, ast.TokChild(ast.TagNone, comma))
	}
	return ch, true
}
