package parser

import (
	"verusyn/internal/ast"
	"verusyn/internal/diag"
	"verusyn/internal/token"
)

// parseBlock parses `{ #![...]* stmt* [tail] }`.
func (p *Parser) parseBlock() (ast.NodeID, bool) {
	if !p.enter(ruleBlock) {
		return ast.NoNodeID, false
	}
	defer p.leave()

	open, ok := p.expect(token.LBrace)
	if !ok {
		return ast.NoNodeID, false
	}
	ch := []ast.Child{ast.TokChild(ast.TagNone, open)}
	attrs, ok := p.parseInnerAttrs()
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, attrs...)
	for !p.at(token.RBrace) {
		if p.at(token.EOF) {
			p.expectClose(token.RBrace, open)
			return ast.NoNodeID, false
		}
		stmt, ok := p.parseStmt()
		if !ok {
			return ast.NoNodeID, false
		}
		ch = append(ch, stmt)
	}
	ch = append(ch, p.bump(ast.TagNone))
	return p.finish(ast.KindBlock, ch), true
}

// parseStmt parses one statement and returns it as a block child:
// TagStmt for statements, TagItem for nested items, TagTail for the
// trailing expression.
func (p *Parser) parseStmt() (ast.Child, bool) {
	if !p.enter(ruleStmt) {
		return ast.Child{}, false
	}
	defer p.leave()

	switch {
	case p.at(token.Semi):
		return ast.NodeChild(ast.TagStmt, p.finish(ast.KindEmptyStmt, []ast.Child{p.bump(ast.TagNone)})), true
	case p.atWord("proof") && p.nth(1).Kind == token.LBrace:
		ch := []ast.Child{p.bump(ast.TagKeyword)}
		body, ok := p.parseBlock()
		if !ok {
			return ast.Child{}, false
		}
		ch = append(ch, ast.NodeChild(ast.TagBody, body))
		return ast.NodeChild(ast.TagStmt, p.finish(ast.KindProofBlock, ch)), true
	}

	if p.atItemStart() {
		m := p.mark()
		item, ok := p.parseItem()
		if ok {
			return ast.NodeChild(ast.TagItem, item), true
		}
		if p.fatal != nil {
			return ast.Child{}, false
		}
		p.reset(m)
	}

	attrs, ok := p.parseOuterAttrs()
	if !ok {
		return ast.Child{}, false
	}
	if p.at(token.KwLet) {
		id, ok := p.parseLet(attrs)
		if !ok {
			return ast.Child{}, false
		}
		return ast.NodeChild(ast.TagStmt, id), true
	}
	return p.parseExprStmt(attrs)
}

// parseExprStmt parses an expression statement, an assignment statement or
// the block's tail expression.
func (p *Parser) parseExprStmt(ch []ast.Child) (ast.Child, bool) {
	expr, blockLike, ok := p.parseBlockLikeOrExpr(modeNoAssign)
	if !ok {
		return ast.Child{}, false
	}

	if op := p.peek(); isAssignOp(op.Kind) {
		ch = append(ch, ast.NodeChild(ast.TagLhs, expr), p.bump(ast.TagOp))
		rhs, ok := p.parseExpr(0)
		if !ok {
			return ast.Child{}, false
		}
		ch = append(ch, ast.NodeChild(ast.TagRhs, rhs))
		semi, ok := p.expectSemi()
		if !ok {
			return ast.Child{}, false
		}
		ch = append(ch, ast.TokChild(ast.TagNone, semi))
		return ast.NodeChild(ast.TagStmt, p.finish(ast.KindAssignStmt, ch)), true
	}

	if p.at(token.RBrace) {
		if len(ch) == 0 {
			return ast.NodeChild(ast.TagTail, expr), true
		}
		ch = append(ch, ast.NodeChild(ast.TagOperand, expr))
		return ast.NodeChild(ast.TagTail, p.finish(ast.KindAttrExpr, ch)), true
	}
	ch = append(ch, ast.NodeChild(ast.TagValue, expr))
	switch {
	case p.at(token.Semi):
		ch = append(ch, p.bump(ast.TagNone))
	case blockLike:
	default:
		if _, ok := p.expectSemi(); !ok {
			return ast.Child{}, false
		}
	}
	return ast.NodeChild(ast.TagStmt, p.finish(ast.KindExprStmt, ch)), true
}

func (p *Parser) expectSemi() (token.Token, bool) {
	if tok, ok := p.eat(token.Semi); ok {
		return tok, true
	}
	p.failCode(diag.SynExpectSemicolon, "';'")
	return token.Token{}, false
}

// parseLet parses `let [ghost|tracked] pat [: T] [= e [else { }]];`.
func (p *Parser) parseLet(ch []ast.Child) (ast.NodeID, bool) {
	if !p.enter(ruleLet) {
		return ast.NoNodeID, false
	}
	defer p.leave()

	ch = append(ch, p.bump(ast.TagKeyword))
	if isDataModeWord(p.peek()) && p.nth(1).Kind != token.Colon && p.nth(1).Kind != token.Eq && p.nth(1).Kind != token.Semi {
		ch = append(ch, ast.NodeChild(ast.TagMode, p.parseDataMode()))
	}
	pat, ok := p.parsePattern(patTop)
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
	if p.at(token.Eq) {
		ch = append(ch, p.bump(ast.TagNone))
		init, ok := p.parseExpr(0)
		if !ok {
			return ast.NoNodeID, false
		}
		ch = append(ch, ast.NodeChild(ast.TagInit, init))
		if p.at(token.KwElse) {
			elseCh := []ast.Child{p.bump(ast.TagKeyword)}
			blk, ok := p.parseBlock()
			if !ok {
				return ast.NoNodeID, false
			}
			elseCh = append(elseCh, ast.NodeChild(ast.TagBody, blk))
			ch = append(ch, ast.NodeChild(ast.TagElse, p.finish(ast.KindLetElse, elseCh)))
		}
	}
	semi, ok := p.expectSemi()
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.TokChild(ast.TagNone, semi))
	return p.finish(ast.KindLetStmt, ch), true
}
