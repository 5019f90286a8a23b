package parser

import (
	"verusyn/internal/ast"
	"verusyn/internal/token"
)

// parseGenericParams parses `<'a: 'b, T: Bound = Default, const N: usize>`.
func (p *Parser) parseGenericParams() (ast.NodeID, bool) {
	if !p.enter(ruleGenerics) {
		return ast.NoNodeID, false
	}
	defer p.leave()

	open, ok := p.expectGlued(token.Lt)
	if !ok {
		return ast.NoNodeID, false
	}
	ch := []ast.Child{ast.TokChild(ast.TagNone, open)}
	params, ok := p.sepList(token.Gt, ast.TagParams, p.parseGenericParam)
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, params...)
	closeTok, ok := p.expectGlued(token.Gt)
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.TokChild(ast.TagNone, closeTok))
	return p.finish(ast.KindGenericParams, ch), true
}

func (p *Parser) parseGenericParam() (ast.NodeID, bool) {
	ch, ok := p.parseOuterAttrs()
	if !ok {
		return ast.NoNodeID, false
	}
	switch {
	case p.at(token.Lifetime):
		ch = append(ch, p.bump(ast.TagName))
		if p.at(token.Colon) {
			ch = append(ch, p.bump(ast.TagNone))
			for p.at(token.Lifetime) {
				ch = append(ch, p.bump(ast.TagBound))
				plus, ok := p.eat(token.Plus)
				if !ok {
					break
				}
				ch = append(ch, ast.TokChild(ast.TagNone, plus))
			}
		}
		return p.finish(ast.KindLifetimeParam, ch), true

	case p.at(token.KwConst):
		ch = append(ch, p.bump(ast.TagKeyword))
		name, ok := p.expectIdent("const parameter name")
		if !ok {
			return ast.NoNodeID, false
		}
		ch = append(ch, ast.TokChild(ast.TagName, name))
		colon, ok := p.expect(token.Colon)
		if !ok {
			return ast.NoNodeID, false
		}
		ch = append(ch, ast.TokChild(ast.TagNone, colon))
		ty, ok := p.parseType()
		if !ok {
			return ast.NoNodeID, false
		}
		ch = append(ch, ast.NodeChild(ast.TagType, ty))
		if p.at(token.Eq) {
			ch = append(ch, p.bump(ast.TagNone))
			def, ok := p.parseConstArg()
			if !ok {
				return ast.NoNodeID, false
			}
			ch = append(ch, ast.NodeChild(ast.TagValue, def))
		}
		return p.finish(ast.KindConstParam, ch), true
	}

	name, ok := p.expectIdent("generic parameter")
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.TokChild(ast.TagName, name))
	if p.at(token.Colon) {
		ch = append(ch, p.bump(ast.TagNone))
		if !p.atGlued(token.Gt) && !p.atOr(token.Comma, token.Eq) {
			b, ok := p.parseBounds()
			if !ok {
				return ast.NoNodeID, false
			}
			ch = append(ch, ast.NodeChild(ast.TagBound, b))
		}
	}
	if p.at(token.Eq) {
		ch = append(ch, p.bump(ast.TagNone))
		def, ok := p.parseType()
		if !ok {
			return ast.NoNodeID, false
		}
		ch = append(ch, ast.NodeChild(ast.TagValue, def))
	}
	return p.finish(ast.KindTypeParam, ch), true
}

// parseBounds parses `Bound + 'a + ?Sized + for<'b> Fn(&'b T)`.
func (p *Parser) parseBounds() (ast.NodeID, bool) {
	if !p.enter(ruleBounds) {
		return ast.NoNodeID, false
	}
	defer p.leave()

	var ch []ast.Child
	for {
		b, ok := p.parseBound()
		if !ok {
			return ast.NoNodeID, false
		}
		ch = append(ch, b...)
		plus, ok := p.eat(token.Plus)
		if !ok {
			break
		}
		ch = append(ch, ast.TokChild(ast.TagNone, plus))
		if !p.atBoundStart() {
			break
		}
	}
	return p.finish(ast.KindBounds, ch), true
}

func (p *Parser) atBoundStart() bool {
	switch p.peek().Kind {
	case token.Lifetime, token.Question, token.Tilde, token.LParen, token.KwFor:
		return true
	}
	return p.atPathStart(pathType)
}

func (p *Parser) parseBound() ([]ast.Child, bool) {
	switch {
	case p.at(token.Lifetime):
		return []ast.Child{p.bump(ast.TagBound)}, true
	case p.at(token.LParen):
		open := p.advance()
		inner, ok := p.parseBound()
		if !ok {
			return nil, false
		}
		closeTok, ok := p.expectClose(token.RParen, open)
		if !ok {
			return nil, false
		}
		ch := append([]ast.Child{ast.TokChild(ast.TagNone, open)}, inner...)
		return append(ch, ast.TokChild(ast.TagNone, closeTok)), true
	}

	var ch []ast.Child
	// ?Sized, ~const Trait
	if p.at(token.Question) {
		ch = append(ch, p.bump(ast.TagOp))
	} else if p.at(token.Tilde) && p.nth(1).Kind == token.KwConst {
		ch = append(ch, p.bump(ast.TagOp), p.bump(ast.TagKeyword))
	}
	var binder ast.NodeID
	if p.at(token.KwFor) {
		b, ok := p.parseForBinder()
		if !ok {
			return nil, false
		}
		binder = b
	}
	path, ok := p.parsePath(pathType)
	if !ok {
		return nil, false
	}
	ty := p.finish(ast.KindPathType, []ast.Child{ast.NodeChild(ast.TagPath, path)})
	if binder.IsValid() {
		ty = p.finish(ast.KindForType, []ast.Child{
			ast.NodeChild(ast.TagGenerics, binder),
			ast.NodeChild(ast.TagType, ty),
		})
	}
	return append(ch, ast.NodeChild(ast.TagBound, ty)), true
}

// parseForBinder parses `for<'a, 'b>`.
func (p *Parser) parseForBinder() (ast.NodeID, bool) {
	ch := []ast.Child{p.bump(ast.TagKeyword)}
	params, ok := p.parseGenericParams()
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.NodeChild(ast.TagGenerics, params))
	return p.finish(ast.KindForBinder, ch), true
}

// parseWhereClause parses `where T: A + B, 'a: 'b, for<'c> F: Fn(&'c u8),`.
// The clause ends before `{`, `;`, `=` or a Verus clause keyword.
func (p *Parser) parseWhereClause() (ast.NodeID, bool) {
	if !p.enter(ruleWhere) {
		return ast.NoNodeID, false
	}
	defer p.leave()

	ch := []ast.Child{p.bump(ast.TagKeyword)}
	for p.atWherePredStart() {
		pred, ok := p.parseWherePred()
		if !ok {
			return ast.NoNodeID, false
		}
		ch = append(ch, ast.NodeChild(ast.TagElem, pred))
		comma, ok := p.eat(token.Comma)
		if !ok {
			break
		}
		ch = append(ch, ast.TokChild(ast.TagNone, comma))
	}
	return p.finish(ast.KindWhereClause, ch), true
}

func (p *Parser) atWherePredStart() bool {
	if p.atOr(token.LBrace, token.Semi, token.Eq, token.EOF) || p.atClauseWord() {
		return false
	}
	return true
}

func (p *Parser) parseWherePred() (ast.NodeID, bool) {
	var ch []ast.Child
	if p.at(token.Lifetime) {
		ch = append(ch, p.bump(ast.TagType))
		colon, ok := p.expect(token.Colon)
		if !ok {
			return ast.NoNodeID, false
		}
		ch = append(ch, ast.TokChild(ast.TagNone, colon))
		for p.at(token.Lifetime) {
			ch = append(ch, p.bump(ast.TagBound))
			plus, ok := p.eat(token.Plus)
			if !ok {
				break
			}
			ch = append(ch, ast.TokChild(ast.TagNone, plus))
		}
		return p.finish(ast.KindWherePred, ch), true
	}

	if p.at(token.KwFor) {
		binder, ok := p.parseForBinder()
		if !ok {
			return ast.NoNodeID, false
		}
		ch = append(ch, ast.NodeChild(ast.TagGenerics, binder))
	}
	ty, ok := p.parseType()
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.NodeChild(ast.TagType, ty))
	colon, ok := p.expect(token.Colon)
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.TokChild(ast.TagNone, colon))
	if p.atBoundStart() {
		b, ok := p.parseBounds()
		if !ok {
			return ast.NoNodeID, false
		}
		ch = append(ch, ast.NodeChild(ast.TagBound, b))
	}
	return p.finish(ast.KindWherePred, ch), true
}
