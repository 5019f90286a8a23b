package parser

import (
	"verusyn/internal/ast"
	"verusyn/internal/token"
)

func (p *Parser) atOuterAttr() bool {
	return p.at(token.Pound) && p.nth(1).Kind == token.LBracket
}

func (p *Parser) atInnerAttr() bool {
	return p.at(token.Pound) && p.nth(1).Kind == token.Bang && p.nth(2).Kind == token.LBracket
}

// parseOuterAttrs parses `#[...]*`, each tagged TagAttr.
func (p *Parser) parseOuterAttrs() ([]ast.Child, bool) {
	var ch []ast.Child
	for p.atOuterAttr() {
		id, ok := p.parseAttr(false)
		if !ok {
			return nil, false
		}
		ch = append(ch, ast.NodeChild(ast.TagAttr, id))
	}
	return ch, true
}

// parseInnerAttrs parses `#![...]*`, each tagged TagAttr.
func (p *Parser) parseInnerAttrs() ([]ast.Child, bool) {
	var ch []ast.Child
	for p.atInnerAttr() {
		id, ok := p.parseAttr(true)
		if !ok {
			return nil, false
		}
		ch = append(ch, ast.NodeChild(ast.TagAttr, id))
	}
	return ch, true
}

// parseAttr parses one attribute. `#[trigger]` and `#![trigger a, b]`
// become KindTriggerAttr; anything else is `path`, `path(tt)` or
// `path = expr` inside a KindAttr.
func (p *Parser) parseAttr(inner bool) (ast.NodeID, bool) {
	if !p.enter(ruleAttr) {
		return ast.NoNodeID, false
	}
	defer p.leave()

	ch := []ast.Child{p.bump(ast.TagNone)} // '#'
	if inner {
		ch = append(ch, p.bump(ast.TagNone)) // '!'
	}
	open, ok := p.expect(token.LBracket)
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.TokChild(ast.TagNone, open))

	kind := ast.KindAttr
	if p.atWord("trigger") {
		kind = ast.KindTriggerAttr
		ch = append(ch, p.bump(ast.TagKeyword))
		exprs, ok := p.sepList(token.RBracket, ast.TagTrigger, func() (ast.NodeID, bool) {
			return p.parseExpr(0)
		})
		if !ok {
			return ast.NoNodeID, false
		}
		ch = append(ch, exprs...)
	} else {
		path, ok := p.parsePath(pathMod)
		if !ok {
			return ast.NoNodeID, false
		}
		ch = append(ch, ast.NodeChild(ast.TagPath, path))
		switch {
		case p.atOr(token.LParen, token.LBracket, token.LBrace):
			tt, ok := p.parseTokenTree()
			if !ok {
				return ast.NoNodeID, false
			}
			ch = append(ch, ast.NodeChild(ast.TagArg, tt))
		case p.at(token.Eq):
			ch = append(ch, p.bump(ast.TagNone))
			val, ok := p.parseExpr(0)
			if !ok {
				return ast.NoNodeID, false
			}
			ch = append(ch, ast.NodeChild(ast.TagValue, val))
		}
	}

	closeTok, ok := p.expectClose(token.RBracket, open)
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.TokChild(ast.TagNone, closeTok))
	return p.finish(kind, ch), true
}

// parseTokenTree parses a delimited token group. Nested groups become
// nested KindTokenTree nodes; contents are not interpreted.
func (p *Parser) parseTokenTree() (ast.NodeID, bool) {
	if !p.enter(ruleTokenTree) {
		return ast.NoNodeID, false
	}
	defer p.leave()

	var closing token.Kind
	switch p.peek().Kind {
	case token.LParen:
		closing = token.RParen
	case token.LBracket:
		closing = token.RBracket
	case token.LBrace:
		closing = token.RBrace
	default:
		p.fail("delimited token tree")
		return ast.NoNodeID, false
	}
	open := p.advance()
	ch := []ast.Child{ast.TokChild(ast.TagNone, open)}
	for !p.at(closing) {
		switch p.peek().Kind {
		case token.EOF:
			p.expectClose(closing, open)
			return ast.NoNodeID, false
		case token.LParen, token.LBracket, token.LBrace:
			sub, ok := p.parseTokenTree()
			if !ok {
				return ast.NoNodeID, false
			}
			ch = append(ch, ast.NodeChild(ast.TagNone, sub))
		case token.RParen, token.RBracket, token.RBrace:
			p.fail(closing.String())
			return ast.NoNodeID, false
		default:
			ch = append(ch, p.bump(ast.TagNone))
		}
	}
	ch = append(ch, p.bump(ast.TagNone))
	return p.finish(ast.KindTokenTree, ch), true
}
