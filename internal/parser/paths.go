package parser

import (
	"verusyn/internal/ast"
	"verusyn/internal/token"
)

// pathStyle selects how generic arguments attach to path segments.
type pathStyle uint8

const (
	// pathMod: plain `a::b::c` (attributes, visibility, use trees).
	pathMod pathStyle = iota
	// pathExpr: generics only through a turbofish `f::<T>`.
	pathExpr
	// pathType: `Vec<T>`, `Fn(A) -> B` and turbofish forms.
	pathType
)

func isSegmentStart(k token.Kind) bool {
	switch k {
	case token.Ident, token.KwSelfValue, token.KwSelfType, token.KwSuper, token.KwCrate:
		return true
	}
	return false
}

// atPathStart reports whether a path can begin here.
func (p *Parser) atPathStart(style pathStyle) bool {
	tok := p.peek()
	if isSegmentStart(tok.Kind) {
		return true
	}
	if tok.Kind == token.PathSep {
		return isSegmentStart(p.nth(1).Kind)
	}
	return style != pathMod && (tok.Kind == token.Lt || tok.Kind == token.Shl)
}

// parsePath parses `[<T as Tr>::]? [::]? seg (:: seg)*`.
func (p *Parser) parsePath(style pathStyle) (ast.NodeID, bool) {
	if !p.enter(rulePath) {
		return ast.NoNodeID, false
	}
	defer p.leave()

	var ch []ast.Child
	if style != pathMod && p.atGlued(token.Lt) {
		qself, ok := p.parseQualifiedSelf()
		if !ok {
			return ast.NoNodeID, false
		}
		ch = append(ch, ast.NodeChild(ast.TagSelfType, qself))
		sep, ok := p.expect(token.PathSep)
		if !ok {
			return ast.NoNodeID, false
		}
		ch = append(ch, ast.TokChild(ast.TagNone, sep))
	} else if p.at(token.PathSep) {
		ch = append(ch, p.bump(ast.TagNone))
	}

	for {
		seg, ok := p.parsePathSegment(style)
		if !ok {
			return ast.NoNodeID, false
		}
		ch = append(ch, ast.NodeChild(ast.TagElem, seg))
		if !p.at(token.PathSep) || !isSegmentStart(p.nth(1).Kind) {
			break
		}
		ch = append(ch, p.bump(ast.TagNone))
	}
	return p.finish(ast.KindPath, ch), true
}

func (p *Parser) parsePathSegment(style pathStyle) (ast.NodeID, bool) {
	tok := p.peek()
	if !isSegmentStart(tok.Kind) {
		if tok.Kind.IsKeyword() {
			p.expectIdent("path segment")
		} else {
			p.fail("path segment")
		}
		return ast.NoNodeID, false
	}
	ch := []ast.Child{p.bump(ast.TagName)}
	if style == pathMod {
		return p.finish(ast.KindPathSegment, ch), true
	}

	// turbofish
	if p.at(token.PathSep) && (p.nth(1).Kind == token.Lt || p.nth(1).Kind == token.Shl) {
		ch = append(ch, p.bump(ast.TagNone))
		args, ok := p.parseGenericArgs()
		if !ok {
			return ast.NoNodeID, false
		}
		ch = append(ch, ast.NodeChild(ast.TagArg, args))
		return p.finish(ast.KindPathSegment, ch), true
	}
	if style != pathType {
		return p.finish(ast.KindPathSegment, ch), true
	}

	switch {
	case p.atGlued(token.Lt):
		// `a < b` after a cast is a comparison, so generic arguments are optional
		m := p.mark()
		args, ok := p.parseGenericArgs()
		if ok {
			ch = append(ch, ast.NodeChild(ast.TagArg, args))
		} else {
			p.reset(m)
		}
	case p.at(token.LParen) && isFnTraitName(tok.Text):
		args, ok := p.parseParenArgs()
		if !ok {
			return ast.NoNodeID, false
		}
		ch = append(ch, ast.NodeChild(ast.TagArg, args))
	}
	return p.finish(ast.KindPathSegment, ch), true
}

// isFnTraitName lists the traits written with parenthesised sugar.
func isFnTraitName(name string) bool {
	switch name {
	case "Fn", "FnMut", "FnOnce", "FnSpec", "FnDef", "spec_fn", "proof_fn":
		return true
	}
	return false
}

// parseParenArgs parses `(A, B) -> C` after a Fn-like trait name.
func (p *Parser) parseParenArgs() (ast.NodeID, bool) {
	open := p.advance()
	ch := []ast.Child{ast.TokChild(ast.TagNone, open)}
	args, ok := p.sepList(token.RParen, ast.TagArg, p.parseType)
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, args...)
	closeTok, ok := p.expectClose(token.RParen, open)
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.TokChild(ast.TagNone, closeTok))
	if p.at(token.RArrow) {
		ch = append(ch, p.bump(ast.TagNone))
		ret, ok := p.parseType()
		if !ok {
			return ast.NoNodeID, false
		}
		ch = append(ch, ast.NodeChild(ast.TagRet, ret))
	}
	return p.finish(ast.KindParenArgs, ch), true
}

// parseQualifiedSelf parses `<T as Trait>` or `<T>`.
func (p *Parser) parseQualifiedSelf() (ast.NodeID, bool) {
	open, ok := p.expectGlued(token.Lt)
	if !ok {
		return ast.NoNodeID, false
	}
	ch := []ast.Child{ast.TokChild(ast.TagNone, open)}
	ty, ok := p.parseType()
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.NodeChild(ast.TagType, ty))
	if p.at(token.KwAs) {
		ch = append(ch, p.bump(ast.TagKeyword))
		tr, ok := p.parsePath(pathType)
		if !ok {
			return ast.NoNodeID, false
		}
		ch = append(ch, ast.NodeChild(ast.TagTrait, tr))
	}
	closeTok, ok := p.expectGlued(token.Gt)
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.TokChild(ast.TagNone, closeTok))
	return p.finish(ast.KindQualifiedSelf, ch), true
}

// parseGenericArgs parses `<arg, ...>`; `>>` and `>=` are split as needed.
func (p *Parser) parseGenericArgs() (ast.NodeID, bool) {
	if !p.enter(ruleGenericArgs) {
		return ast.NoNodeID, false
	}
	defer p.leave()

	open, ok := p.expectGlued(token.Lt)
	if !ok {
		return ast.NoNodeID, false
	}
	ch := []ast.Child{ast.TokChild(ast.TagNone, open)}
	args, ok := p.sepList(token.Gt, ast.TagArg, p.parseGenericArg)
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, args...)
	closeTok, ok := p.expectGlued(token.Gt)
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.TokChild(ast.TagNone, closeTok))
	return p.finish(ast.KindGenericArgs, ch), true
}

func (p *Parser) parseGenericArg() (ast.NodeID, bool) {
	tok := p.peek()
	switch {
	case tok.Kind == token.Lifetime:
		return p.finish(ast.KindLifetimeArg, []ast.Child{p.bump(ast.TagNone)}), true
	case tok.Kind == token.Ident && p.nth(1).Kind == token.Eq:
		ch := []ast.Child{p.bump(ast.TagName), p.bump(ast.TagNone)}
		ty, ok := p.parseType()
		if !ok {
			return ast.NoNodeID, false
		}
		ch = append(ch, ast.NodeChild(ast.TagType, ty))
		return p.finish(ast.KindAssocBinding, ch), true
	case tok.Kind == token.Ident && p.nth(1).Kind == token.Colon:
		ch := []ast.Child{p.bump(ast.TagName), p.bump(ast.TagNone)}
		b, ok := p.parseBounds()
		if !ok {
			return ast.NoNodeID, false
		}
		ch = append(ch, ast.NodeChild(ast.TagBound, b))
		return p.finish(ast.KindAssocBound, ch), true
	case tok.IsLiteral() || tok.Kind == token.Minus || tok.Kind == token.LBrace:
		return p.parseConstArg()
	}
	return p.parseType()
}

// parseConstArg parses a const generic argument: literal, -literal or block.
func (p *Parser) parseConstArg() (ast.NodeID, bool) {
	if p.at(token.LBrace) {
		return p.parseBlock()
	}
	if p.at(token.Minus) {
		op := p.bump(ast.TagOp)
		if !p.peek().IsLiteral() {
			p.fail("literal")
			return ast.NoNodeID, false
		}
		lit := p.finish(ast.KindLitExpr, []ast.Child{p.bump(ast.TagNone)})
		return p.finish(ast.KindUnaryExpr, []ast.Child{op, ast.NodeChild(ast.TagOperand, lit)}), true
	}
	return p.finish(ast.KindLitExpr, []ast.Child{p.bump(ast.TagNone)}), true
}
