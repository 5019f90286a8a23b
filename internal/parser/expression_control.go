package parser

import (
	"verusyn/internal/ast"
	"verusyn/internal/token"
)

// parseCondition parses an `if`/`while` condition: `let pat = e` or a
// no-struct expression.
func (p *Parser) parseCondition() (ast.NodeID, bool) {
	if !p.at(token.KwLet) {
		return p.parseExpr(modeNoStruct)
	}
	ch := []ast.Child{p.bump(ast.TagKeyword)}
	pat, ok := p.parsePattern(patTop)
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.NodeChild(ast.TagPattern, pat))
	eq, ok := p.expect(token.Eq)
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.TokChild(ast.TagNone, eq))
	val, ok := p.parseExpr(modeNoStruct)
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.NodeChild(ast.TagInit, val))
	return p.finish(ast.KindLetCond, ch), true
}

// parseIf parses `if cond { } [else if ... | else { }]`.
func (p *Parser) parseIf() (ast.NodeID, bool) {
	if !p.enter(ruleIf) {
		return ast.NoNodeID, false
	}
	defer p.leave()

	ch := []ast.Child{p.bump(ast.TagKeyword)}
	cond, ok := p.parseCondition()
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.NodeChild(ast.TagCond, cond))
	then, ok := p.parseBlock()
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.NodeChild(ast.TagThen, then))
	if !p.at(token.KwElse) {
		return p.finish(ast.KindIfExpr, ch), true
	}
	ch = append(ch, p.bump(ast.TagKeyword))
	var els ast.NodeID
	if p.at(token.KwIf) {
		els, ok = p.parseIf()
	} else {
		els, ok = p.parseBlock()
	}
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.NodeChild(ast.TagElse, els))
	return p.finish(ast.KindIfExpr, ch), true
}

// parseWhile parses `while cond [loop clauses] { }`; ch holds a label.
func (p *Parser) parseWhile(ch []ast.Child) (ast.NodeID, bool) {
	if !p.enter(ruleWhile) {
		return ast.NoNodeID, false
	}
	defer p.leave()

	ch = append(ch, p.bump(ast.TagKeyword))
	cond, ok := p.parseCondition()
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.NodeChild(ast.TagCond, cond))
	return p.finishLoop(ast.KindWhileExpr, ch)
}

// parseFor parses `for pat in iter [loop clauses] { }`.
func (p *Parser) parseFor(ch []ast.Child) (ast.NodeID, bool) {
	if !p.enter(ruleFor) {
		return ast.NoNodeID, false
	}
	defer p.leave()

	ch = append(ch, p.bump(ast.TagKeyword))
	pat, ok := p.parsePattern(patTop)
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.NodeChild(ast.TagPattern, pat))
	in, ok := p.expect(token.KwIn)
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.TokChild(ast.TagKeyword, in))
	iter, ok := p.parseExpr(modeNoStruct)
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.NodeChild(ast.TagIter, iter))
	return p.finishLoop(ast.KindForExpr, ch)
}

// parseLoop parses `loop [loop clauses] { }`.
func (p *Parser) parseLoop(ch []ast.Child) (ast.NodeID, bool) {
	if !p.enter(ruleLoop) {
		return ast.NoNodeID, false
	}
	defer p.leave()

	ch = append(ch, p.bump(ast.TagKeyword))
	return p.finishLoop(ast.KindLoopExpr, ch)
}

func (p *Parser) finishLoop(kind ast.Kind, ch []ast.Child) (ast.NodeID, bool) {
	ch, ok := p.parseLoopClauses(ch)
	if !ok {
		return ast.NoNodeID, false
	}
	body, ok := p.parseBlock()
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.NodeChild(ast.TagBody, body))
	return p.finish(kind, ch), true
}

// parseLabeled parses `'label: loop|while|for|{ }`.
func (p *Parser) parseLabeled() (ast.NodeID, bool) {
	ch := []ast.Child{p.bump(ast.TagLabel), p.bump(ast.TagNone)}
	switch p.peek().Kind {
	case token.KwLoop:
		return p.parseLoop(ch)
	case token.KwWhile:
		return p.parseWhile(ch)
	case token.KwFor:
		return p.parseFor(ch)
	case token.LBrace:
		body, ok := p.parseBlock()
		if !ok {
			return ast.NoNodeID, false
		}
		ch = append(ch, ast.NodeChild(ast.TagBody, body))
		return p.finish(ast.KindLabeledBlock, ch), true
	}
	p.fail("loop or block after label")
	return ast.NoNodeID, false
}

// parseMatch parses `match scrutinee { arms }`.
func (p *Parser) parseMatch() (ast.NodeID, bool) {
	if !p.enter(ruleMatch) {
		return ast.NoNodeID, false
	}
	defer p.leave()

	ch := []ast.Child{p.bump(ast.TagKeyword)}
	scrut, ok := p.parseExpr(modeNoStruct)
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.NodeChild(ast.TagScrutinee, scrut))
	open, ok := p.expect(token.LBrace)
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.TokChild(ast.TagNone, open))
	attrs, ok := p.parseInnerAttrs()
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, attrs...)
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		arm, ok := p.parseMatchArm()
		if !ok {
			return ast.NoNodeID, false
		}
		ch = append(ch, ast.NodeChild(ast.TagArm, arm))
	}
	closeTok, ok := p.expectClose(token.RBrace, open)
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.TokChild(ast.TagNone, closeTok))
	return p.finish(ast.KindMatchExpr, ch), true
}

// parseMatchArm parses `pat [if guard] => body [,]`. The comma may be
// left out after a block-like body and before the closing brace.
func (p *Parser) parseMatchArm() (ast.NodeID, bool) {
	ch, ok := p.parseOuterAttrs()
	if !ok {
		return ast.NoNodeID, false
	}
	pat, ok := p.parsePattern(patTop)
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.NodeChild(ast.TagPattern, pat))
	if p.at(token.KwIf) {
		ch = append(ch, p.bump(ast.TagKeyword))
		guard, ok := p.parseExpr(0)
		if !ok {
			return ast.NoNodeID, false
		}
		ch = append(ch, ast.NodeChild(ast.TagGuard, guard))
	}
	arrow, ok := p.expect(token.FatArrow)
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.TokChild(ast.TagNone, arrow))
	body, blockLike, ok := p.parseBlockLikeOrExpr(0)
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.NodeChild(ast.TagBody, body))
	switch {
	case p.at(token.Comma):
		ch = append(ch, p.bump(ast.TagNone))
	case p.at(token.RBrace) || blockLike:
	default:
		p.fail("',' or '}'")
		return ast.NoNodeID, false
	}
	return p.finish(ast.KindMatchArm, ch), true
}

// isBlockLike reports whether id ends in a block and may stand as a
// statement without a terminating `;`.
func isBlockLike(t *ast.Tree, id ast.NodeID) bool {
	switch t.Kind(id) {
	case ast.KindBlock, ast.KindUnsafeBlock, ast.KindAsyncBlock, ast.KindLabeledBlock,
		ast.KindIfExpr, ast.KindWhileExpr, ast.KindForExpr, ast.KindLoopExpr,
		ast.KindMatchExpr, ast.KindAssertForall, ast.KindProofBlock:
		return true
	case ast.KindAssertExpr:
		return t.ChildNode(id, ast.TagBody).IsValid()
	case ast.KindMacroCall:
		tt := t.ChildNode(id, ast.TagArg)
		n := t.Node(tt)
		return n != nil && len(n.Children) > 0 && n.Children[0].Tok.Kind == token.LBrace
	}
	return false
}

// atBlockLikeStart reports whether an expression with a block starts here.
func (p *Parser) atBlockLikeStart() bool {
	switch p.peek().Kind {
	case token.LBrace, token.KwIf, token.KwWhile, token.KwFor, token.KwLoop, token.KwMatch:
		return true
	case token.KwUnsafe:
		return p.nth(1).Kind == token.LBrace
	case token.Lifetime:
		return p.nth(1).Kind == token.Colon
	}
	return false
}

// parseBlockLikeOrExpr parses an expression in statement-like position.
// A leading block-like form ends the expression unless a method call or
// `?` continues it, so `{ } (a, b)` is two expressions, not a call.
func (p *Parser) parseBlockLikeOrExpr(mode exprMode) (ast.NodeID, bool, bool) {
	if p.atBlockLikeStart() {
		m := p.mark()
		id, ok := p.parsePrimary(mode)
		if ok && !p.atOr(token.Dot, token.Question) {
			return id, true, true
		}
		p.reset(m)
	}
	id, ok := p.parseExpr(mode)
	if !ok {
		return ast.NoNodeID, false, false
	}
	return id, isBlockLike(p.tree, id), true
}
