package parser

import (
	"verusyn/internal/ast"
	"verusyn/internal/diag"
	"verusyn/internal/token"
)

// parseType parses any type form. Results are memoised per position.
func (p *Parser) parseType() (ast.NodeID, bool) {
	return p.memoized(memoType, 0, p.parseTypeUncached)
}

func (p *Parser) parseTypeUncached() (ast.NodeID, bool) {
	if !p.enter(ruleType) {
		return ast.NoNodeID, false
	}
	defer p.leave()

	tok := p.peek()
	switch tok.Kind {
	case token.LParen:
		return p.parseTupleType()
	case token.LBracket:
		return p.parseArrayOrSliceType()
	case token.Amp, token.AndAnd:
		return p.parseRefType()
	case token.Star:
		return p.parsePtrType()
	case token.Bang:
		return p.finish(ast.KindNeverType, []ast.Child{p.bump(ast.TagNone)}), true
	case token.Underscore:
		return p.finish(ast.KindInferType, []ast.Child{p.bump(ast.TagNone)}), true
	case token.KwDyn:
		return p.parseBoundsType(ast.KindDynType)
	case token.KwImpl:
		return p.parseBoundsType(ast.KindImplType)
	case token.KwFn, token.KwUnsafe, token.KwExtern:
		return p.parseFnPtrType(nil)
	case token.KwFor:
		binder, ok := p.parseForBinder()
		if !ok {
			return ast.NoNodeID, false
		}
		ch := []ast.Child{ast.NodeChild(ast.TagGenerics, binder)}
		var inner ast.NodeID
		if p.atOr(token.KwFn, token.KwUnsafe, token.KwExtern) {
			inner, ok = p.parseFnPtrType(nil)
		} else {
			inner, ok = p.parsePathOrMacroType()
		}
		if !ok {
			return ast.NoNodeID, false
		}
		ch = append(ch, ast.NodeChild(ast.TagType, inner))
		return p.finish(ast.KindForType, ch), true
	}
	if p.atPathStart(pathType) {
		return p.parsePathOrMacroType()
	}
	if tok.Kind.IsKeyword() {
		p.failCode(diag.SynReservedKeyword, "type")
		return ast.NoNodeID, false
	}
	p.failCode(diag.SynExpectType, "type")
	return ast.NoNodeID, false
}

// parseTupleType parses `()`, `(T)` and `(A, B, ...)`.
func (p *Parser) parseTupleType() (ast.NodeID, bool) {
	open := p.advance()
	ch := []ast.Child{ast.TokChild(ast.TagNone, open)}
	elems := 0
	trailingComma := false
	for !p.at(token.RParen) {
		ty, ok := p.parseType()
		if !ok {
			return ast.NoNodeID, false
		}
		ch = append(ch, ast.NodeChild(ast.TagElem, ty))
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
		return p.finish(ast.KindParenType, ch), true
	}
	return p.finish(ast.KindTupleType, ch), true
}

// parseArrayOrSliceType parses `[T]` and `[T; N]`.
func (p *Parser) parseArrayOrSliceType() (ast.NodeID, bool) {
	open := p.advance()
	ch := []ast.Child{ast.TokChild(ast.TagNone, open)}
	elem, ok := p.parseType()
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.NodeChild(ast.TagElem, elem))
	kind := ast.KindSliceType
	if p.at(token.Semi) {
		kind = ast.KindArrayType
		ch = append(ch, p.bump(ast.TagNone))
		n, ok := p.parseExpr(0)
		if !ok {
			return ast.NoNodeID, false
		}
		ch = append(ch, ast.NodeChild(ast.TagLen, n))
	}
	closeTok, ok := p.expectClose(token.RBracket, open)
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.TokChild(ast.TagNone, closeTok))
	return p.finish(kind, ch), true
}

// parseRefType parses `&'a mut T`; `&&T` is split into two references.
func (p *Parser) parseRefType() (ast.NodeID, bool) {
	amp, _ := p.eatGlued(token.Amp)
	ch := []ast.Child{ast.TokChild(ast.TagOp, amp)}
	if p.at(token.Lifetime) {
		ch = append(ch, p.bump(ast.TagLabel))
	}
	if p.at(token.KwMut) {
		ch = append(ch, p.bump(ast.TagKeyword))
	}
	inner, ok := p.parseType()
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.NodeChild(ast.TagType, inner))
	return p.finish(ast.KindRefType, ch), true
}

// parsePtrType parses `*const T` and `*mut T`.
func (p *Parser) parsePtrType() (ast.NodeID, bool) {
	ch := []ast.Child{p.bump(ast.TagOp)}
	if !p.atOr(token.KwConst, token.KwMut) {
		p.fail("'const' or 'mut'")
		return ast.NoNodeID, false
	}
	ch = append(ch, p.bump(ast.TagKeyword))
	inner, ok := p.parseType()
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.NodeChild(ast.TagType, inner))
	return p.finish(ast.KindPtrType, ch), true
}

// parseBoundsType parses `dyn Bounds` and `impl Bounds`.
func (p *Parser) parseBoundsType(kind ast.Kind) (ast.NodeID, bool) {
	ch := []ast.Child{p.bump(ast.TagKeyword)}
	b, ok := p.parseBounds()
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.NodeChild(ast.TagBound, b))
	return p.finish(kind, ch), true
}

// parseFnPtrType parses `unsafe extern "C" fn(A, B) -> R`.
func (p *Parser) parseFnPtrType(ch []ast.Child) (ast.NodeID, bool) {
	if p.at(token.KwUnsafe) {
		ch = append(ch, p.bump(ast.TagKeyword))
	}
	if p.at(token.KwExtern) {
		abi, ok := p.parseAbi()
		if !ok {
			return ast.NoNodeID, false
		}
		ch = append(ch, ast.NodeChild(ast.TagNone, abi))
	}
	fnTok, ok := p.expect(token.KwFn)
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.TokChild(ast.TagKeyword, fnTok))
	open, ok := p.expect(token.LParen)
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.TokChild(ast.TagNone, open))
	params, ok := p.sepList(token.RParen, ast.TagParams, p.parseFnPtrParam)
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, params...)
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
	return p.finish(ast.KindFnPtrType, ch), true
}

// parseFnPtrParam parses `T`, `name: T` or `_: T`.
func (p *Parser) parseFnPtrParam() (ast.NodeID, bool) {
	var ch []ast.Child
	if p.atOr(token.Ident, token.Underscore) && p.nth(1).Kind == token.Colon {
		ch = append(ch, p.bump(ast.TagName), p.bump(ast.TagNone))
	}
	ty, ok := p.parseType()
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.NodeChild(ast.TagType, ty))
	return p.finish(ast.KindParam, ch), true
}

// parsePathOrMacroType parses a path type or a type macro `m!(...)`.
func (p *Parser) parsePathOrMacroType() (ast.NodeID, bool) {
	path, ok := p.parsePath(pathType)
	if !ok {
		return ast.NoNodeID, false
	}
	ch := []ast.Child{ast.NodeChild(ast.TagPath, path)}
	if p.at(token.Bang) && p.nth(1).Kind.IsOpenDelim() {
		ch = append(ch, p.bump(ast.TagNone))
		tt, ok := p.parseTokenTree()
		if !ok {
			return ast.NoNodeID, false
		}
		ch = append(ch, ast.NodeChild(ast.TagArg, tt))
		return p.finish(ast.KindMacroType, ch), true
	}
	return p.finish(ast.KindPathType, ch), true
}
