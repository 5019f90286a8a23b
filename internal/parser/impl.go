package parser

import (
	"verusyn/internal/ast"
	"verusyn/internal/token"
)

// parseImpl parses `[unsafe] impl<G> [const] [!]Trait for Type [where ..] { items }`
// and inherent `impl<G> Type { items }`.
func (p *Parser) parseImpl(ch []ast.Child) (ast.NodeID, bool) {
	if !p.enter(ruleImpl) {
		return ast.NoNodeID, false
	}
	defer p.leave()

	for p.atWord("default") || p.at(token.KwUnsafe) {
		ch = append(ch, p.bump(ast.TagKeyword))
	}
	ch, ok := p.expectKeyword(ch, token.KwImpl)
	if !ok {
		return ast.NoNodeID, false
	}
	// `impl <T as X>::Y` has no generics; `impl<T>` does.
	if p.atGlued(token.Lt) && !p.looksLikeQualifiedSelf() {
		g, ok := p.parseGenericParams()
		if !ok {
			return ast.NoNodeID, false
		}
		ch = append(ch, ast.NodeChild(ast.TagGenerics, g))
	}
	if p.at(token.KwConst) {
		ch = append(ch, p.bump(ast.TagKeyword))
	}
	var neg []ast.Child
	if p.at(token.Bang) {
		neg = append(neg, p.bump(ast.TagOp))
	}
	first, ok := p.parseType()
	if !ok {
		return ast.NoNodeID, false
	}
	if p.at(token.KwFor) {
		ch = append(ch, neg...)
		ch = append(ch, ast.NodeChild(ast.TagTrait, first), p.bump(ast.TagKeyword))
		self, ok := p.parseType()
		if !ok {
			return ast.NoNodeID, false
		}
		ch = append(ch, ast.NodeChild(ast.TagSelfType, self))
	} else {
		if len(neg) > 0 {
			p.fail("'for'")
			return ast.NoNodeID, false
		}
		ch = append(ch, ast.NodeChild(ast.TagSelfType, first))
	}
	ch, ok = p.parseOptWhere(ch)
	if !ok {
		return ast.NoNodeID, false
	}
	items, ok := p.parseAssocItems()
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.NodeChild(ast.TagBody, items))
	return p.finish(ast.KindImpl, ch), true
}

// looksLikeQualifiedSelf reports whether `<` opens `<T as Trait>`.
func (p *Parser) looksLikeQualifiedSelf() bool {
	depth := 0
	for i := p.pos; i < len(p.toks); i++ {
		switch p.toks[i].Kind {
		case token.Lt:
			depth++
		case token.Gt:
			depth--
			if depth == 0 {
				return i+1 < len(p.toks) && p.toks[i+1].Kind == token.PathSep
			}
		case token.KwAs:
			if depth == 1 {
				return true
			}
		case token.LBrace, token.Semi, token.EOF:
			return false
		}
	}
	return false
}

// parseAssocItems parses `{ #![..] items }` of an impl or trait.
func (p *Parser) parseAssocItems() (ast.NodeID, bool) {
	ch, ok := p.parseItemBody(nil)
	if !ok {
		return ast.NoNodeID, false
	}
	return p.finish(ast.KindAssocItems, ch), true
}

// parseTrait parses `[unsafe] [auto] trait Name<G> [: Bounds] [where ..] { items }`
// and the alias form `trait Name<G> = Bounds;`.
func (p *Parser) parseTrait(ch []ast.Child) (ast.NodeID, bool) {
	if !p.enter(ruleTrait) {
		return ast.NoNodeID, false
	}
	defer p.leave()

	for p.at(token.KwUnsafe) || p.atWord("auto") {
		ch = append(ch, p.bump(ast.TagKeyword))
	}
	ch, ok := p.expectKeyword(ch, token.KwTrait)
	if !ok {
		return ast.NoNodeID, false
	}
	name, ok := p.expectIdent("trait name")
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.TokChild(ast.TagName, name))
	ch, ok = p.parseOptGenerics(ch)
	if !ok {
		return ast.NoNodeID, false
	}

	if p.at(token.Eq) {
		ch = append(ch, p.bump(ast.TagNone))
		b, ok := p.parseBounds()
		if !ok {
			return ast.NoNodeID, false
		}
		ch = append(ch, ast.NodeChild(ast.TagBound, b))
		ch, ok = p.parseOptWhere(ch)
		if !ok {
			return ast.NoNodeID, false
		}
		semi, ok := p.expectSemi()
		if !ok {
			return ast.NoNodeID, false
		}
		ch = append(ch, ast.TokChild(ast.TagNone, semi))
		return p.finish(ast.KindTraitAlias, ch), true
	}

	if p.at(token.Colon) {
		ch = append(ch, p.bump(ast.TagNone))
		if p.atBoundStart() {
			b, ok := p.parseBounds()
			if !ok {
				return ast.NoNodeID, false
			}
			ch = append(ch, ast.NodeChild(ast.TagBound, b))
		}
	}
	ch, ok = p.parseOptWhere(ch)
	if !ok {
		return ast.NoNodeID, false
	}
	items, ok := p.parseAssocItems()
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.NodeChild(ast.TagBody, items))
	return p.finish(ast.KindTrait, ch), true
}
