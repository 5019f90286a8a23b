package parser

import (
	"verusyn/internal/ast"
	"verusyn/internal/token"
)

// parseUse parses `[broadcast] use tree;`.
func (p *Parser) parseUse(ch []ast.Child) (ast.NodeID, bool) {
	if !p.enter(ruleUse) {
		return ast.NoNodeID, false
	}
	defer p.leave()

	if p.atWord("broadcast") {
		ch = append(ch, p.bump(ast.TagKeyword))
	}
	ch, ok := p.expectKeyword(ch, token.KwUse)
	if !ok {
		return ast.NoNodeID, false
	}
	tree, ok := p.parseUseTree()
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.NodeChild(ast.TagBody, tree))
	semi, ok := p.expectSemi()
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.TokChild(ast.TagNone, semi))
	return p.finish(ast.KindUse, ch), true
}

// parseUseTree parses one of
//
//	path [as name]
//	[path] :: *
//	[path] :: { tree, ... }
//	*
//	{ tree, ... }
func (p *Parser) parseUseTree() (ast.NodeID, bool) {
	var ch []ast.Child
	switch {
	case p.at(token.Star):
		ch = append(ch, p.bump(ast.TagOp))
		return p.finish(ast.KindUseTree, ch), true
	case p.at(token.LBrace):
		g, ok := p.parseUseGroup()
		if !ok {
			return ast.NoNodeID, false
		}
		ch = append(ch, ast.NodeChild(ast.TagBody, g))
		return p.finish(ast.KindUseTree, ch), true
	case p.at(token.PathSep) && (p.nth(1).Kind == token.Star || p.nth(1).Kind == token.LBrace):
		ch = append(ch, p.bump(ast.TagNone))
		return p.finishUseTree(ch)
	}

	path, ok := p.parsePath(pathMod)
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.NodeChild(ast.TagPath, path))
	if p.at(token.PathSep) {
		ch = append(ch, p.bump(ast.TagNone))
		return p.finishUseTree(ch)
	}
	if p.at(token.KwAs) {
		rename, ok := p.parseRename()
		if !ok {
			return ast.NoNodeID, false
		}
		ch = append(ch, ast.NodeChild(ast.TagName, rename))
	}
	return p.finish(ast.KindUseTree, ch), true
}

// finishUseTree parses the `*` or `{..}` after a trailing `::`.
func (p *Parser) finishUseTree(ch []ast.Child) (ast.NodeID, bool) {
	switch {
	case p.at(token.Star):
		ch = append(ch, p.bump(ast.TagOp))
	case p.at(token.LBrace):
		g, ok := p.parseUseGroup()
		if !ok {
			return ast.NoNodeID, false
		}
		ch = append(ch, ast.NodeChild(ast.TagBody, g))
	default:
		p.fail("'*' or '{'")
		return ast.NoNodeID, false
	}
	return p.finish(ast.KindUseTree, ch), true
}

func (p *Parser) parseUseGroup() (ast.NodeID, bool) {
	open := p.advance()
	ch := []ast.Child{ast.TokChild(ast.TagNone, open)}
	trees, ok := p.sepList(token.RBrace, ast.TagElem, p.parseUseTree)
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, trees...)
	closeTok, ok := p.expectClose(token.RBrace, open)
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.TokChild(ast.TagNone, closeTok))
	return p.finish(ast.KindUseGroup, ch), true
}

// parseRename parses `as name` or `as _`.
func (p *Parser) parseRename() (ast.NodeID, bool) {
	kw, ok := p.expect(token.KwAs)
	if !ok {
		return ast.NoNodeID, false
	}
	ch := []ast.Child{ast.TokChild(ast.TagKeyword, kw)}
	if p.at(token.Underscore) {
		ch = append(ch, p.bump(ast.TagName))
		return p.finish(ast.KindRename, ch), true
	}
	name, ok := p.expectIdent("name")
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.TokChild(ast.TagName, name))
	return p.finish(ast.KindRename, ch), true
}
