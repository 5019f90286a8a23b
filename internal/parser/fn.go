package parser

import (
	"verusyn/internal/ast"
	"verusyn/internal/token"
)

// parseFn parses a function item after attributes and visibility:
//
//	[open|closed] [broadcast] [default] [const] [async] [unsafe] [extern "abi"]
//	[spec|proof|exec] fn name<G>(params) [-> ret] [where ..] clauses (body | ;)
func (p *Parser) parseFn(ch []ast.Child) (ast.NodeID, bool) {
	if !p.enter(ruleFn) {
		return ast.NoNodeID, false
	}
	defer p.leave()

	ch, ok := p.parseFnQualifiers(ch)
	if !ok {
		return ast.NoNodeID, false
	}
	ch, ok = p.expectKeyword(ch, token.KwFn)
	if !ok {
		return ast.NoNodeID, false
	}
	name, ok := p.expectIdent("function name")
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.TokChild(ast.TagName, name))
	ch, ok = p.parseOptGenerics(ch)
	if !ok {
		return ast.NoNodeID, false
	}
	params, ok := p.parseParamList()
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.NodeChild(ast.TagParams, params))
	if p.at(token.RArrow) {
		ret, ok := p.parseRetType()
		if !ok {
			return ast.NoNodeID, false
		}
		ch = append(ch, ast.NodeChild(ast.TagRet, ret))
	}
	ch, ok = p.parseOptWhere(ch)
	if !ok {
		return ast.NoNodeID, false
	}
	ch, ok = p.parseFnClauses(ch)
	if !ok {
		return ast.NoNodeID, false
	}
	if semi, ok := p.eat(token.Semi); ok {
		ch = append(ch, ast.TokChild(ast.TagNone, semi))
		return p.finish(ast.KindFn, ch), true
	}
	body, ok := p.parseBlock()
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.NodeChild(ast.TagBody, body))
	return p.finish(ast.KindFn, ch), true
}

// parseFnQualifiers parses everything between visibility and `fn`.
func (p *Parser) parseFnQualifiers(ch []ast.Child) ([]ast.Child, bool) {
	for {
		tok := p.peek()
		switch {
		case tok.IsWord("open") || tok.IsWord("closed"):
			pub, ok := p.parsePublish()
			if !ok {
				return nil, false
			}
			ch = append(ch, ast.NodeChild(ast.TagPublish, pub))
		case isFnModeWord(tok):
			mode, ok := p.parseFnMode()
			if !ok {
				return nil, false
			}
			ch = append(ch, ast.NodeChild(ast.TagMode, mode))
		case tok.IsWord("broadcast") || tok.IsWord("default"):
			ch = append(ch, p.bump(ast.TagKeyword))
		case tok.Kind == token.KwConst || tok.Kind == token.KwAsync || tok.Kind == token.KwUnsafe:
			ch = append(ch, p.bump(ast.TagKeyword))
		case tok.Kind == token.KwExtern:
			abi, ok := p.parseAbi()
			if !ok {
				return nil, false
			}
			ch = append(ch, ast.NodeChild(ast.TagNone, abi))
		default:
			return ch, true
		}
	}
}

// parseParamList parses `(self, a: T, tracked b: U)`.
func (p *Parser) parseParamList() (ast.NodeID, bool) {
	if !p.enter(ruleParams) {
		return ast.NoNodeID, false
	}
	defer p.leave()

	open, ok := p.expect(token.LParen)
	if !ok {
		return ast.NoNodeID, false
	}
	ch := []ast.Child{ast.TokChild(ast.TagNone, open)}
	params, ok := p.sepList(token.RParen, ast.TagParams, p.parseParam)
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, params...)
	closeTok, ok := p.expectClose(token.RParen, open)
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.TokChild(ast.TagNone, closeTok))
	return p.finish(ast.KindParamList, ch), true
}

// parseParam parses one function parameter, including the `self` forms
// and the `tracked` modifier.
func (p *Parser) parseParam() (ast.NodeID, bool) {
	ch, ok := p.parseOuterAttrs()
	if !ok {
		return ast.NoNodeID, false
	}
	if isDataModeWord(p.peek()) && p.nth(1).Kind != token.Colon {
		ch = append(ch, ast.NodeChild(ast.TagMode, p.parseDataMode()))
	}
	if p.atSelfParam() {
		return p.parseSelfParam(ch)
	}
	if p.at(token.DotDotDot) {
		ch = append(ch, p.bump(ast.TagNone))
		return p.finish(ast.KindParam, ch), true
	}
	pat, ok := p.parsePattern(patNoTop)
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.NodeChild(ast.TagPattern, pat))
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
	return p.finish(ast.KindParam, ch), true
}

// atSelfParam recognises `self`, `mut self`, `&self`, `&mut self`,
// `&'a self` and `&'a mut self`.
func (p *Parser) atSelfParam() bool {
	tok := p.peek()
	switch tok.Kind {
	case token.KwSelfValue:
		return p.nth(1).Kind != token.PathSep
	case token.KwMut:
		return p.nth(1).Kind == token.KwSelfValue
	case token.Amp:
		k1, k2, k3 := p.nth(1).Kind, p.nth(2).Kind, p.nth(3).Kind
		switch k1 {
		case token.KwSelfValue:
			return true
		case token.KwMut:
			return k2 == token.KwSelfValue
		case token.Lifetime:
			return k2 == token.KwSelfValue || (k2 == token.KwMut && k3 == token.KwSelfValue)
		}
	}
	return false
}

func (p *Parser) parseSelfParam(ch []ast.Child) (ast.NodeID, bool) {
	if p.at(token.Amp) {
		ch = append(ch, p.bump(ast.TagOp))
		if p.at(token.Lifetime) {
			ch = append(ch, p.bump(ast.TagLabel))
		}
	}
	if p.at(token.KwMut) {
		ch = append(ch, p.bump(ast.TagKeyword))
	}
	ch = append(ch, p.bump(ast.TagName))
	if p.at(token.Colon) {
		ch = append(ch, p.bump(ast.TagNone))
		ty, ok := p.parseType()
		if !ok {
			return ast.NoNodeID, false
		}
		ch = append(ch, ast.NodeChild(ast.TagType, ty))
	}
	return p.finish(ast.KindSelfParam, ch), true
}

// parseRetType parses `-> T`, `-> tracked T` and `-> (name: T)`.
func (p *Parser) parseRetType() (ast.NodeID, bool) {
	if !p.enter(ruleRet) {
		return ast.NoNodeID, false
	}
	defer p.leave()

	ch := []ast.Child{p.bump(ast.TagNone)}
	if p.atWord("tracked") && p.nth(1).Kind != token.PathSep {
		ch = append(ch, ast.NodeChild(ast.TagMode, p.parseDataMode()))
	}
	if p.at(token.LParen) && p.nth(1).Kind == token.Ident && p.nth(2).Kind == token.Colon {
		open := p.advance()
		ch = append(ch, ast.TokChild(ast.TagNone, open), p.bump(ast.TagName), p.bump(ast.TagNone))
		ty, ok := p.parseType()
		if !ok {
			return ast.NoNodeID, false
		}
		ch = append(ch, ast.NodeChild(ast.TagType, ty))
		closeTok, ok := p.expectClose(token.RParen, open)
		if !ok {
			return ast.NoNodeID, false
		}
		ch = append(ch, ast.TokChild(ast.TagNone, closeTok))
		return p.finish(ast.KindRetType, ch), true
	}
	ty, ok := p.parseType()
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.NodeChild(ast.TagType, ty))
	return p.finish(ast.KindRetType, ch), true
}
