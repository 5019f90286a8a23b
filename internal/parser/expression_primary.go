package parser

import (
	"verusyn/internal/ast"
	"verusyn/internal/diag"
	"verusyn/internal/token"
)

// parsePrimary parses the innermost expression forms. Paths are tried
// last, after every keyword-led form.
func (p *Parser) parsePrimary(mode exprMode) (ast.NodeID, bool) {
	tok := p.peek()
	if tok.IsLiteral() {
		return p.finish(ast.KindLitExpr, []ast.Child{p.bump(ast.TagNone)}), true
	}
	switch tok.Kind {
	case token.LParen:
		return p.parseParenOrTuple()
	case token.LBracket:
		return p.parseArrayExpr()
	case token.LBrace:
		return p.parseBlock()
	case token.Lifetime:
		if p.nth(1).Kind == token.Colon {
			return p.parseLabeled()
		}
	case token.KwUnsafe:
		if p.nth(1).Kind == token.LBrace {
			return p.parseKeywordBlock(ast.KindUnsafeBlock)
		}
	case token.KwAsync:
		return p.parseAsync(mode)
	case token.KwIf:
		return p.parseIf()
	case token.KwWhile:
		return p.parseWhile(nil)
	case token.KwFor:
		return p.parseFor(nil)
	case token.KwLoop:
		return p.parseLoop(nil)
	case token.KwMatch:
		return p.parseMatch()
	case token.Pipe, token.OrOr, token.KwMove:
		return p.parseClosure(mode, nil)
	case token.KwReturn, token.KwYield:
		return p.parseJump(ast.KindReturnExpr, mode)
	case token.KwBreak:
		return p.parseJump(ast.KindBreakExpr, mode)
	case token.KwContinue:
		ch := []ast.Child{p.bump(ast.TagKeyword)}
		if p.at(token.Lifetime) {
			ch = append(ch, p.bump(ast.TagLabel))
		}
		return p.finish(ast.KindContinueExpr, ch), true
	case token.KwForall, token.KwExists, token.KwChoose:
		return p.parseQuantifier(mode)
	case token.KwAssert:
		return p.parseAssert()
	case token.KwAssume:
		return p.parseAssume()
	case token.KwBox:
		op := p.bump(ast.TagKeyword)
		operand, ok := p.parseUnary(mode)
		if !ok {
			return ast.NoNodeID, false
		}
		return p.finish(ast.KindUnaryExpr, []ast.Child{op, ast.NodeChild(ast.TagOperand, operand)}), true
	}
	if p.atPathStart(pathExpr) {
		return p.parsePathExpr(mode)
	}
	p.expectExpression()
	return ast.NoNodeID, false
}

// parseParenOrTuple parses `()`, `(e)` and `(e, ...)`.
func (p *Parser) parseParenOrTuple() (ast.NodeID, bool) {
	open := p.advance()
	ch := []ast.Child{ast.TokChild(ast.TagNone, open)}
	elems := 0
	trailingComma := false
	for !p.at(token.RParen) {
		e, ok := p.parseExpr(0)
		if !ok {
			return ast.NoNodeID, false
		}
		ch = append(ch, ast.NodeChild(ast.TagElem, e))
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
		return p.finish(ast.KindParenExpr, ch), true
	}
	return p.finish(ast.KindTupleExpr, ch), true
}

// parseArrayExpr parses `[a, b]` and `[e; n]`.
func (p *Parser) parseArrayExpr() (ast.NodeID, bool) {
	open := p.advance()
	ch := []ast.Child{ast.TokChild(ast.TagNone, open)}
	kind := ast.KindArrayExpr
	if !p.at(token.RBracket) {
		first, ok := p.parseExpr(0)
		if !ok {
			return ast.NoNodeID, false
		}
		ch = append(ch, ast.NodeChild(ast.TagElem, first))
		switch {
		case p.at(token.Semi):
			kind = ast.KindArrayRepeat
			ch = append(ch, p.bump(ast.TagNone))
			n, ok := p.parseExpr(0)
			if !ok {
				return ast.NoNodeID, false
			}
			ch = append(ch, ast.NodeChild(ast.TagLen, n))
		case p.at(token.Comma):
			ch = append(ch, p.bump(ast.TagNone))
			rest, ok := p.sepList(token.RBracket, ast.TagElem, func() (ast.NodeID, bool) {
				return p.parseExpr(0)
			})
			if !ok {
				return ast.NoNodeID, false
			}
			ch = append(ch, rest...)
		}
	}
	closeTok, ok := p.expectClose(token.RBracket, open)
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.TokChild(ast.TagNone, closeTok))
	return p.finish(kind, ch), true
}

// parseKeywordBlock parses `unsafe { ... }`.
func (p *Parser) parseKeywordBlock(kind ast.Kind) (ast.NodeID, bool) {
	ch := []ast.Child{p.bump(ast.TagKeyword)}
	body, ok := p.parseBlock()
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.NodeChild(ast.TagBody, body))
	return p.finish(kind, ch), true
}

// parseAsync parses `async [move] { ... }` and async closures.
func (p *Parser) parseAsync(mode exprMode) (ast.NodeID, bool) {
	ch := []ast.Child{p.bump(ast.TagKeyword)}
	if p.atOr(token.Pipe, token.OrOr) || (p.at(token.KwMove) && p.nth(1).Kind != token.LBrace) {
		return p.parseClosure(mode, ch)
	}
	if p.at(token.KwMove) {
		ch = append(ch, p.bump(ast.TagKeyword))
	}
	body, ok := p.parseBlock()
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.NodeChild(ast.TagBody, body))
	return p.finish(ast.KindAsyncBlock, ch), true
}

// parseJump parses `return [e]`, `yield [e]` and `break ['label] [e]`.
func (p *Parser) parseJump(kind ast.Kind, mode exprMode) (ast.NodeID, bool) {
	ch := []ast.Child{p.bump(ast.TagKeyword)}
	if kind == ast.KindBreakExpr && p.at(token.Lifetime) {
		ch = append(ch, p.bump(ast.TagLabel))
	}
	if !p.canStartExpr() || (p.at(token.LBrace) && mode&modeNoStruct != 0) {
		return p.finish(kind, ch), true
	}
	val, ok := p.parseExpr(mode)
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.NodeChild(ast.TagValue, val))
	return p.finish(kind, ch), true
}

// parseClosure parses `[move] |params| [-> T] [requires ..] [ensures ..] body`.
func (p *Parser) parseClosure(mode exprMode, ch []ast.Child) (ast.NodeID, bool) {
	if !p.enter(ruleClosure) {
		return ast.NoNodeID, false
	}
	defer p.leave()

	if p.at(token.KwMove) {
		ch = append(ch, p.bump(ast.TagKeyword))
	}
	params, ok := p.parseClosureParams()
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.NodeChild(ast.TagParams, params))
	needBlock := false
	if p.at(token.RArrow) {
		ch = append(ch, p.bump(ast.TagNone))
		ret, ok := p.parseType()
		if !ok {
			return ast.NoNodeID, false
		}
		ch = append(ch, ast.NodeChild(ast.TagRet, ret))
		needBlock = true
	}
	n := len(ch)
	ch, ok = p.parseFnClauses(ch)
	if !ok {
		return ast.NoNodeID, false
	}
	if len(ch) > n {
		needBlock = true
	}
	var body ast.NodeID
	if needBlock {
		body, ok = p.parseBlock()
	} else {
		body, ok = p.parseExpr(mode &^ modeNoAssign)
	}
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.NodeChild(ast.TagBody, body))
	return p.finish(ast.KindClosure, ch), true
}

// parseClosureParams parses `|a, b: T, tracked c|` or `||`.
func (p *Parser) parseClosureParams() (ast.NodeID, bool) {
	if p.at(token.OrOr) {
		return p.finish(ast.KindClosureParams, []ast.Child{p.bump(ast.TagNone)}), true
	}
	open, ok := p.expect(token.Pipe)
	if !ok {
		return ast.NoNodeID, false
	}
	ch := []ast.Child{ast.TokChild(ast.TagNone, open)}
	params, ok := p.sepList(token.Pipe, ast.TagParams, p.parseClosureParam)
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, params...)
	closeTok, ok := p.expectGlued(token.Pipe)
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.TokChild(ast.TagNone, closeTok))
	return p.finish(ast.KindClosureParams, ch), true
}

// parseClosureParam parses `[tracked] pat [: T]`.
func (p *Parser) parseClosureParam() (ast.NodeID, bool) {
	ch, ok := p.parseOuterAttrs()
	if !ok {
		return ast.NoNodeID, false
	}
	if isDataModeWord(p.peek()) && p.nth(1).Kind != token.Colon && p.nth(1).Kind != token.Comma && p.nth(1).Kind != token.Pipe {
		ch = append(ch, ast.NodeChild(ast.TagMode, p.parseDataMode()))
	}
	pat, ok := p.parsePattern(patNoTop)
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.NodeChild(ast.TagPattern, pat))
	if p.at(token.Colon) {
		ch = append(ch, p.bump(ast.TagNone))
		ty, ok := p.parseType()
		if !ok {
			return ast.NoNodeID, false
		}
		ch = append(ch, ast.NodeChild(ast.TagType, ty))
	}
	return p.finish(ast.KindParam, ch), true
}

// parsePathExpr parses a path and what may follow it directly: a macro
// invocation `m!(...)` or a struct literal `P { ... }`.
func (p *Parser) parsePathExpr(mode exprMode) (ast.NodeID, bool) {
	path, ok := p.parsePath(pathExpr)
	if !ok {
		return ast.NoNodeID, false
	}
	ch := []ast.Child{ast.NodeChild(ast.TagPath, path)}
	switch {
	case p.at(token.Bang) && p.nth(1).Kind.IsOpenDelim():
		ch = append(ch, p.bump(ast.TagNone))
		tt, ok := p.parseTokenTree()
		if !ok {
			return ast.NoNodeID, false
		}
		ch = append(ch, ast.NodeChild(ast.TagArg, tt))
		return p.finish(ast.KindMacroCall, ch), true

	case p.at(token.LBrace) && mode&modeNoStruct == 0:
		m := p.mark()
		lit, ok := p.parseStructLit(ch)
		if ok {
			return lit, true
		}
		p.reset(m)

	case p.at(token.LBrace) && p.looksLikeStructBody():
		// Record the hint at the field colon, where the block parse of
		// the braces will fail.
		at := mark{pos: p.pos + 2}
		p.failAt(at, diag.SynStructInCondition, "expression without a struct literal", []diag.Note{{
			Span: p.peek().Span,
			Msg:  "struct literals must be parenthesized here",
		}})
	}
	return p.finish(ast.KindPathExpr, ch), true
}

// looksLikeStructBody reports whether `{` opens `{ ident:` or `{ ..`.
func (p *Parser) looksLikeStructBody() bool {
	next := p.nth(1)
	if next.Kind == token.Ident || next.Kind == token.IntLit {
		return p.nth(2).Kind == token.Colon
	}
	return false
}

// parseStructLit parses `{ a: e, b, 0: e, ..base }` after a path.
func (p *Parser) parseStructLit(ch []ast.Child) (ast.NodeID, bool) {
	if !p.enter(ruleStructLit) {
		return ast.NoNodeID, false
	}
	defer p.leave()

	open := p.advance()
	ch = append(ch, ast.TokChild(ast.TagNone, open))
	fields, ok := p.sepList(token.RBrace, ast.TagField, p.parseFieldInit)
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, fields...)
	closeTok, ok := p.expectClose(token.RBrace, open)
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.TokChild(ast.TagNone, closeTok))
	return p.finish(ast.KindStructLit, ch), true
}

func (p *Parser) parseFieldInit() (ast.NodeID, bool) {
	if p.at(token.DotDot) {
		ch := []ast.Child{p.bump(ast.TagNone)}
		if !p.at(token.RBrace) {
			base, ok := p.parseExpr(0)
			if !ok {
				return ast.NoNodeID, false
			}
			ch = append(ch, ast.NodeChild(ast.TagBase, base))
		}
		return p.finish(ast.KindStructBase, ch), true
	}
	ch, ok := p.parseOuterAttrs()
	if !ok {
		return ast.NoNodeID, false
	}
	if p.atOr(token.Ident, token.IntLit) && p.nth(1).Kind == token.Colon {
		ch = append(ch, p.bump(ast.TagName), p.bump(ast.TagNone))
		val, ok := p.parseExpr(0)
		if !ok {
			return ast.NoNodeID, false
		}
		ch = append(ch, ast.NodeChild(ast.TagValue, val))
		return p.finish(ast.KindFieldInit, ch), true
	}
	name, ok := p.expectIdent("field name")
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.TokChild(ast.TagName, name))
	return p.finish(ast.KindFieldInit, ch), true
}
