package parser

import (
	"verusyn/internal/ast"
	"verusyn/internal/diag"
	"verusyn/internal/token"
)

// patMode selects the pattern entry point.
type patMode uint8

const (
	// patTop allows a trailing range and `|` alternation.
	patTop patMode = iota
	// patNoTop is the restricted form used for parameters.
	patNoTop
)

func (p *Parser) parsePattern(mode patMode) (ast.NodeID, bool) {
	return p.memoized(memoPattern, uint8(mode), func() (ast.NodeID, bool) {
		if !p.enter(rulePattern) {
			return ast.NoNodeID, false
		}
		defer p.leave()
		if mode == patNoTop {
			return p.parseSinglePattern()
		}
		return p.parseAltPattern()
	})
}

// parseAltPattern parses `|? p (| p)*` where each p may end in a range.
func (p *Parser) parseAltPattern() (ast.NodeID, bool) {
	var ch []ast.Child
	if p.at(token.Pipe) {
		ch = append(ch, p.bump(ast.TagOp))
	}
	for {
		pat, ok := p.parseRangePattern()
		if !ok {
			return ast.NoNodeID, false
		}
		ch = append(ch, ast.NodeChild(ast.TagElem, pat))
		bar, ok := p.eat(token.Pipe)
		if !ok {
			break
		}
		ch = append(ch, ast.TokChild(ast.TagOp, bar))
	}
	if len(ch) == 1 {
		return ch[0].Node, true
	}
	return p.finish(ast.KindOrPat, ch), true
}

// parseRangePattern parses a single pattern optionally followed by
// `..`, `..=` or `...` and an upper bound.
func (p *Parser) parseRangePattern() (ast.NodeID, bool) {
	lo, ok := p.parseSinglePattern()
	if !ok {
		return ast.NoNodeID, false
	}
	if !p.atOr(token.DotDot, token.DotDotEq, token.DotDotDot) {
		return lo, true
	}
	switch p.tree.Kind(lo) {
	case ast.KindLitPat, ast.KindPathPat, ast.KindIdentPat:
	default:
		return lo, true
	}
	ch := []ast.Child{ast.NodeChild(ast.TagLhs, lo), p.bump(ast.TagOp)}
	if p.atRangeBound() {
		hi, ok := p.parseSinglePattern()
		if !ok {
			return ast.NoNodeID, false
		}
		ch = append(ch, ast.NodeChild(ast.TagRhs, hi))
	}
	return p.finish(ast.KindRangePat, ch), true
}

func (p *Parser) atRangeBound() bool {
	tok := p.peek()
	return tok.IsLiteral() || tok.Kind == token.Minus || p.atPathStart(pathExpr)
}

func (p *Parser) parseSinglePattern() (ast.NodeID, bool) {
	tok := p.peek()
	switch tok.Kind {
	case token.Underscore:
		return p.finish(ast.KindWildcardPat, []ast.Child{p.bump(ast.TagNone)}), true
	case token.DotDot:
		return p.finish(ast.KindRestPat, []ast.Child{p.bump(ast.TagNone)}), true
	case token.Amp, token.AndAnd:
		amp, _ := p.eatGlued(token.Amp)
		ch := []ast.Child{ast.TokChild(ast.TagOp, amp)}
		if p.at(token.KwMut) {
			ch = append(ch, p.bump(ast.TagKeyword))
		}
		inner, ok := p.parseSinglePattern()
		if !ok {
			return ast.NoNodeID, false
		}
		ch = append(ch, ast.NodeChild(ast.TagPattern, inner))
		return p.finish(ast.KindRefPat, ch), true
	case token.LParen:
		return p.parseTuplePattern()
	case token.LBracket:
		return p.parseDelimitedPatterns(ast.KindSlicePat, token.RBracket, nil)
	case token.Minus:
		if !p.nth(1).IsLiteral() {
			p.failCode(diag.SynExpectPattern, "literal")
			return ast.NoNodeID, false
		}
		return p.finish(ast.KindLitPat, []ast.Child{p.bump(ast.TagOp), p.bump(ast.TagNone)}), true
	case token.KwBox:
		ch := []ast.Child{p.bump(ast.TagKeyword)}
		inner, ok := p.parseSinglePattern()
		if !ok {
			return ast.NoNodeID, false
		}
		ch = append(ch, ast.NodeChild(ast.TagPattern, inner))
		return p.finish(ast.KindBoxPat, ch), true
	case token.KwRef, token.KwMut:
		return p.parseIdentPattern(nil)
	case token.KwConst:
		if p.nth(1).Kind == token.LBrace {
			ch := []ast.Child{p.bump(ast.TagKeyword)}
			blk, ok := p.parseBlock()
			if !ok {
				return ast.NoNodeID, false
			}
			ch = append(ch, ast.NodeChild(ast.TagBody, blk))
			return p.finish(ast.KindConstBlockPat, ch), true
		}
	}
	if tok.IsLiteral() {
		return p.finish(ast.KindLitPat, []ast.Child{p.bump(ast.TagNone)}), true
	}
	if p.atPathStart(pathExpr) {
		return p.parsePathPattern()
	}
	if tok.Kind.IsKeyword() {
		p.failCode(diag.SynReservedKeyword, "pattern")
		return ast.NoNodeID, false
	}
	p.failCode(diag.SynExpectPattern, "pattern")
	return ast.NoNodeID, false
}

// parseIdentPattern parses `ref? mut? name (@ pattern)?`.
func (p *Parser) parseIdentPattern(ch []ast.Child) (ast.NodeID, bool) {
	if p.at(token.KwRef) {
		ch = append(ch, p.bump(ast.TagKeyword))
	}
	if p.at(token.KwMut) {
		ch = append(ch, p.bump(ast.TagKeyword))
	}
	name, ok := p.expectIdent("binding name")
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.TokChild(ast.TagName, name))
	if p.at(token.At) {
		ch = append(ch, p.bump(ast.TagOp))
		sub, ok := p.parseSinglePattern()
		if !ok {
			return ast.NoNodeID, false
		}
		ch = append(ch, ast.NodeChild(ast.TagPattern, sub))
	}
	return p.finish(ast.KindIdentPat, ch), true
}

// parseTuplePattern parses `()`, `(p)` and `(p, ...)`.
func (p *Parser) parseTuplePattern() (ast.NodeID, bool) {
	open := p.advance()
	ch := []ast.Child{ast.TokChild(ast.TagNone, open)}
	elems := 0
	trailingComma := false
	for !p.at(token.RParen) {
		pat, ok := p.parsePattern(patTop)
		if !ok {
			return ast.NoNodeID, false
		}
		ch = append(ch, ast.NodeChild(ast.TagElem, pat))
		elems++
		comma, ok := p.eat(token.Comma)
		trailingComma = ok
		if !ok {
			break
		}
		ch = append(ch, ast.TokChild(ast.TagNone, comma))
	}
	closeTok, ok := p.expectClose(token.RParen, open)
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.TokChild(ast.TagNone, closeTok))
	if elems == 1 && !trailingComma {
		return p.finish(ast.KindParenPat, ch), true
	}
	return p.finish(ast.KindTuplePat, ch), true
}

// parseDelimitedPatterns parses `open p, p, ... close` after ch.
func (p *Parser) parseDelimitedPatterns(kind ast.Kind, closing token.Kind, ch []ast.Child) (ast.NodeID, bool) {
	open := p.advance()
	ch = append(ch, ast.TokChild(ast.TagNone, open))
	elems, ok := p.sepList(closing, ast.TagElem, func() (ast.NodeID, bool) {
		return p.parsePattern(patTop)
	})
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, elems...)
	closeTok, ok := p.expectClose(closing, open)
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.TokChild(ast.TagNone, closeTok))
	return p.finish(kind, ch), true
}

// parsePathPattern parses binding, path, tuple-struct, record and macro
// patterns, which all start with a path.
func (p *Parser) parsePathPattern() (ast.NodeID, bool) {
	tok := p.peek()
	// a lone identifier not followed by `::`, `(`, `{` or `!` binds a name
	if tok.Kind == token.Ident {
		switch p.nth(1).Kind {
		case token.PathSep, token.LParen, token.LBrace, token.Bang:
		default:
			return p.parseIdentPattern(nil)
		}
	}

	path, ok := p.parsePath(pathExpr)
	if !ok {
		return ast.NoNodeID, false
	}
	ch := []ast.Child{ast.NodeChild(ast.TagPath, path)}
	switch {
	case p.at(token.LParen):
		return p.parseDelimitedPatterns(ast.KindTupleStructPat, token.RParen, ch)
	case p.at(token.LBrace):
		return p.parseRecordPattern(ch)
	case p.at(token.Bang) && p.nth(1).Kind.IsOpenDelim():
		ch = append(ch, p.bump(ast.TagNone))
		tt, ok := p.parseTokenTree()
		if !ok {
			return ast.NoNodeID, false
		}
		ch = append(ch, ast.NodeChild(ast.TagArg, tt))
		return p.finish(ast.KindMacroPat, ch), true
	}
	return p.finish(ast.KindPathPat, ch), true
}

// parseRecordPattern parses `{ a, b: p, ref mut c, 0: p, .. }`.
func (p *Parser) parseRecordPattern(ch []ast.Child) (ast.NodeID, bool) {
	open := p.advance()
	ch = append(ch, ast.TokChild(ast.TagNone, open))
	fields, ok := p.sepList(token.RBrace, ast.TagField, p.parseFieldPattern)
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, fields...)
	closeTok, ok := p.expectClose(token.RBrace, open)
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.TokChild(ast.TagNone, closeTok))
	return p.finish(ast.KindRecordPat, ch), true
}

func (p *Parser) parseFieldPattern() (ast.NodeID, bool) {
	ch, ok := p.parseOuterAttrs()
	if !ok {
		return ast.NoNodeID, false
	}
	if p.at(token.DotDot) {
		ch = append(ch, p.bump(ast.TagNone))
		return p.finish(ast.KindRestPat, ch), true
	}
	if p.atOr(token.Ident, token.IntLit) && p.nth(1).Kind == token.Colon {
		ch = append(ch, p.bump(ast.TagName), p.bump(ast.TagNone))
		pat, ok := p.parsePattern(patTop)
		if !ok {
			return ast.NoNodeID, false
		}
		ch = append(ch, ast.NodeChild(ast.TagPattern, pat))
		return p.finish(ast.KindFieldPat, ch), true
	}
	if p.at(token.KwBox) {
		ch = append(ch, p.bump(ast.TagKeyword))
	}
	bind, ok := p.parseIdentPattern(nil)
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.NodeChild(ast.TagPattern, bind))
	return p.finish(ast.KindFieldPat, ch), true
}
