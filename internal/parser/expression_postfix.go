package parser

import (
	"verusyn/internal/ast"
	"verusyn/internal/token"
)

// parsePostfix parses a primary expression followed by `.field`, `.0`,
// `.method::<T>(args)`, `(args)`, `[index]`, `?`, `@` and `.await`.
func (p *Parser) parsePostfix(mode exprMode) (ast.NodeID, bool) {
	expr, ok := p.parsePrimary(mode)
	if !ok {
		return ast.NoNodeID, false
	}
	return p.parsePostfixOps(expr)
}

// parsePostfixOps applies postfix operators to expr.
func (p *Parser) parsePostfixOps(expr ast.NodeID) (ast.NodeID, bool) {
	for {
		var ok bool
		switch p.peek().Kind {
		case token.Dot:
			expr, ok = p.parseDotSuffix(expr)
		case token.LParen:
			expr, ok = p.parseCall(expr)
		case token.LBracket:
			expr, ok = p.parseIndex(expr)
		case token.Question:
			expr = p.finish(ast.KindTryExpr, []ast.Child{ast.NodeChild(ast.TagOperand, expr), p.bump(ast.TagOp)})
			ok = true
		case token.At:
			expr = p.finish(ast.KindViewExpr, []ast.Child{ast.NodeChild(ast.TagOperand, expr), p.bump(ast.TagOp)})
			ok = true
		default:
			return expr, true
		}
		if !ok {
			return ast.NoNodeID, false
		}
	}
}

func (p *Parser) parseDotSuffix(recv ast.NodeID) (ast.NodeID, bool) {
	ch := []ast.Child{ast.NodeChild(ast.TagReceiver, recv), p.bump(ast.TagNone)}
	tok := p.peek()
	switch {
	case tok.Kind == token.KwAwait:
		ch = append(ch, p.bump(ast.TagKeyword))
		return p.finish(ast.KindAwaitExpr, ch), true
	case tok.Kind == token.IntLit:
		ch = append(ch, p.bump(ast.TagName))
		return p.finish(ast.KindFieldExpr, ch), true
	case tok.Kind == token.Ident:
	default:
		p.expectIdent("field or method name")
		return ast.NoNodeID, false
	}

	ch = append(ch, p.bump(ast.TagName))
	isMethod := false
	if p.at(token.PathSep) && p.nth(1).Kind == token.Lt {
		ch = append(ch, p.bump(ast.TagNone))
		args, ok := p.parseGenericArgs()
		if !ok {
			return ast.NoNodeID, false
		}
		ch = append(ch, ast.NodeChild(ast.TagArg, args))
		isMethod = true
	}
	if p.at(token.LParen) {
		args, ok := p.parseArgList()
		if !ok {
			return ast.NoNodeID, false
		}
		ch = append(ch, ast.NodeChild(ast.TagArg, args))
		return p.finish(ast.KindMethodCall, ch), true
	}
	if isMethod {
		p.fail("'('")
		return ast.NoNodeID, false
	}
	return p.finish(ast.KindFieldExpr, ch), true
}

func (p *Parser) parseCall(callee ast.NodeID) (ast.NodeID, bool) {
	args, ok := p.parseArgList()
	if !ok {
		return ast.NoNodeID, false
	}
	return p.finish(ast.KindCallExpr, []ast.Child{
		ast.NodeChild(ast.TagCallee, callee),
		ast.NodeChild(ast.TagArg, args),
	}), true
}

// parseArgList parses `(e, e, ...)` into a KindArgList.
func (p *Parser) parseArgList() (ast.NodeID, bool) {
	open := p.advance()
	ch := []ast.Child{ast.TokChild(ast.TagNone, open)}
	args, ok := p.sepList(token.RParen, ast.TagArg, func() (ast.NodeID, bool) {
		return p.parseExpr(0)
	})
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, args...)
	closeTok, ok := p.expectClose(token.RParen, open)
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.TokChild(ast.TagNone, closeTok))
	return p.finish(ast.KindArgList, ch), true
}

func (p *Parser) parseIndex(base ast.NodeID) (ast.NodeID, bool) {
	open := p.advance()
	ch := []ast.Child{ast.NodeChild(ast.TagBase, base), ast.TokChild(ast.TagNone, open)}
	idx, ok := p.parseExpr(0)
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.NodeChild(ast.TagIndex, idx))
	closeTok, ok := p.expectClose(token.RBracket, open)
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.TokChild(ast.TagNone, closeTok))
	return p.finish(ast.KindIndexExpr, ch), true
}
