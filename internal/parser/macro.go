package parser

import (
	"verusyn/internal/ast"
	"verusyn/internal/token"
)

// parseMacroRules parses `macro_rules! name { .. }`. The body is kept as a
// token tree; `;` is required after `(..)` and `[..]` bodies.
func (p *Parser) parseMacroRules(ch []ast.Child) (ast.NodeID, bool) {
	if !p.enter(ruleMacro) {
		return ast.NoNodeID, false
	}
	defer p.leave()

	ch = append(ch, p.bump(ast.TagKeyword), p.bump(ast.TagNone))
	name, ok := p.expectIdent("macro name")
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.TokChild(ast.TagName, name))
	return p.finishMacroBody(ast.KindMacroRules, ch)
}

// parseMacroItem parses a macro invocation in item position:
// `path! [name] tt [;]`.
func (p *Parser) parseMacroItem(ch []ast.Child) (ast.NodeID, bool) {
	if !p.enter(ruleMacro) {
		return ast.NoNodeID, false
	}
	defer p.leave()

	path, ok := p.parsePath(pathMod)
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.NodeChild(ast.TagPath, path))
	bang, ok := p.expect(token.Bang)
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.TokChild(ast.TagNone, bang))
	if p.at(token.Ident) {
		ch = append(ch, p.bump(ast.TagName))
	}
	return p.finishMacroBody(ast.KindMacroItem, ch)
}

func (p *Parser) finishMacroBody(kind ast.Kind, ch []ast.Child) (ast.NodeID, bool) {
	braced := p.at(token.LBrace)
	tt, ok := p.parseTokenTree()
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.NodeChild(ast.TagBody, tt))
	if braced {
		if semi, ok := p.eat(token.Semi); ok {
			ch = append(ch, ast.TokChild(ast.TagNone, semi))
		}
		return p.finish(kind, ch), true
	}
	semi, ok := p.expectSemi()
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.TokChild(ast.TagNone, semi))
	return p.finish(kind, ch), true
}

// parseMacro2 parses `macro name { .. }` and `macro name(..) { .. }`.
func (p *Parser) parseMacro2(ch []ast.Child) (ast.NodeID, bool) {
	if !p.enter(ruleMacro) {
		return ast.NoNodeID, false
	}
	defer p.leave()

	ch = append(ch, p.bump(ast.TagKeyword))
	name, ok := p.expectIdent("macro name")
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.TokChild(ast.TagName, name))
	if p.at(token.LParen) {
		params, ok := p.parseTokenTree()
		if !ok {
			return ast.NoNodeID, false
		}
		ch = append(ch, ast.NodeChild(ast.TagParams, params))
		if !p.at(token.LBrace) {
			p.fail("'{'")
			return ast.NoNodeID, false
		}
	}
	body, ok := p.parseTokenTree()
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.NodeChild(ast.TagBody, body))
	return p.finish(ast.KindMacro2, ch), true
}
