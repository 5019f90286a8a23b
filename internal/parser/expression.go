package parser

import (
	"verusyn/internal/ast"
	"verusyn/internal/diag"
	"verusyn/internal/token"
)

// exprMode restricts what an expression may contain at its outermost level.
// Nested delimiters reset it.
type exprMode uint8

const (
	// modeNoStruct forbids `Path { ... }` struct literals, so that a `{`
	// after a condition opens the body.
	modeNoStruct exprMode = 1 << iota
	// modeNoAssign stops the chain before an assignment operator; statements
	// build assignments themselves.
	modeNoAssign
)

// chain is a flat operand/operator sequence: operands[i] precedes ops[i].
// An operand may be NoNodeID on either side of an open range.
type chain struct {
	operands []ast.NodeID
	ops      []token.Token
	pos      int
}

// parseExpr parses an expression: an optional `&&&`/`|||` bullet, then a
// flat chain of cast-level operands joined by binary operators, which is
// re-associated by precedence.
func (p *Parser) parseExpr(mode exprMode) (ast.NodeID, bool) {
	return p.memoized(memoExpr, uint8(mode), func() (ast.NodeID, bool) {
		if !p.enter(ruleExpr) {
			return ast.NoNodeID, false
		}
		defer p.leave()

		if p.atOr(token.AndAndAnd, token.OrOrOr) {
			ch := []ast.Child{p.bump(ast.TagOp)}
			inner, ok := p.parseExprChain(mode)
			if !ok {
				return ast.NoNodeID, false
			}
			ch = append(ch, ast.NodeChild(ast.TagOperand, inner))
			return p.finish(ast.KindBulletExpr, ch), true
		}
		return p.parseExprChain(mode)
	})
}

func (p *Parser) parseExprChain(mode exprMode) (ast.NodeID, bool) {
	c, ok := p.parseChain(mode)
	if !ok {
		return ast.NoNodeID, false
	}
	return p.climb(c, 0), true
}

// parseChain collects operands and operators without deciding grouping.
func (p *Parser) parseChain(mode exprMode) (*chain, bool) {
	c := &chain{}
	for {
		if p.atOr(token.DotDot, token.DotDotEq) {
			// prefix range `..b` or a bare `..`, only where an expression
			// starts: at the head of the chain or after an assignment.
			if n := len(c.ops); n > 0 && !isAssignOp(c.ops[n-1].Kind) {
				p.expectExpression()
				return nil, false
			}
			c.operands = append(c.operands, ast.NoNodeID)
		} else {
			operand, ok := p.parseCastExpr(mode)
			if !ok {
				return nil, false
			}
			c.operands = append(c.operands, operand)
		}

		op := p.peek()
		prec, _ := binaryPrec(op.Kind)
		if prec < 0 || (prec == precAssignment && mode&modeNoAssign != 0) {
			return c, true
		}
		if isRangeOp(op.Kind) && c.openRange() {
			p.failCode(diag.SynUnexpectedToken, "end of range")
			return nil, false
		}
		c.ops = append(c.ops, p.advance())
		if isRangeOp(op.Kind) && !p.canStartRangeEnd(mode) {
			c.operands = append(c.operands, ast.NoNodeID)
			return c, true
		}
	}
}

// openRange reports whether a range operator follows the last assignment.
// Ranges do not chain.
func (c *chain) openRange() bool {
	for i := len(c.ops) - 1; i >= 0; i-- {
		switch kind := c.ops[i].Kind; {
		case isRangeOp(kind):
			return true
		case isAssignOp(kind):
			return false
		}
	}
	return false
}

// climb re-associates c starting at c.pos with operators of at least minPrec.
func (p *Parser) climb(c *chain, minPrec int) ast.NodeID {
	lhs := c.operands[c.pos]
	for c.pos < len(c.ops) {
		op := c.ops[c.pos]
		prec, right := binaryPrec(op.Kind)
		if prec < minPrec {
			break
		}
		c.pos++
		next := prec + 1
		if right {
			next = prec
		}
		rhs := p.climb(c, next)
		lhs = p.binaryNode(lhs, op, rhs)
	}
	return lhs
}

func (p *Parser) binaryNode(lhs ast.NodeID, op token.Token, rhs ast.NodeID) ast.NodeID {
	kind := ast.KindBinaryExpr
	switch {
	case isAssignOp(op.Kind):
		kind = ast.KindAssignExpr
	case isRangeOp(op.Kind):
		kind = ast.KindRangeExpr
	}
	ch := make([]ast.Child, 0, 3)
	if lhs.IsValid() {
		ch = append(ch, ast.NodeChild(ast.TagLhs, lhs))
	}
	ch = append(ch, ast.TokChild(ast.TagOp, op))
	if rhs.IsValid() {
		ch = append(ch, ast.NodeChild(ast.TagRhs, rhs))
	}
	return p.tree.NewNode(kind, ch, op.Span)
}

// canStartRangeEnd reports whether an upper bound follows a range operator.
func (p *Parser) canStartRangeEnd(mode exprMode) bool {
	if p.at(token.LBrace) && mode&modeNoStruct != 0 {
		return false
	}
	return p.canStartExpr()
}

// canStartExpr reports whether the current token may begin an expression.
func (p *Parser) canStartExpr() bool {
	tok := p.peek()
	if tok.IsLiteral() {
		return true
	}
	switch tok.Kind {
	case token.LParen, token.LBracket, token.LBrace,
		token.Minus, token.Bang, token.Star, token.Amp, token.AndAnd,
		token.Pipe, token.OrOr, token.DotDot, token.DotDotEq,
		token.Pound, token.Lifetime, token.Lt, token.Shl,
		token.AndAndAnd, token.OrOrOr:
		return true
	case token.KwIf, token.KwWhile, token.KwFor, token.KwLoop, token.KwMatch,
		token.KwUnsafe, token.KwAsync, token.KwMove, token.KwReturn, token.KwBreak,
		token.KwContinue, token.KwForall, token.KwExists, token.KwChoose,
		token.KwAssert, token.KwAssume, token.KwBox, token.KwYield:
		return true
	}
	return p.atPathStart(pathExpr)
}

// parseCastExpr parses a unary operand followed by `as Type`, `has e` and
// `is Variant`.
func (p *Parser) parseCastExpr(mode exprMode) (ast.NodeID, bool) {
	lhs, ok := p.parseUnary(mode)
	if !ok {
		return ast.NoNodeID, false
	}
	for {
		var (
			kind ast.Kind
			rhs  ast.Child
		)
		ch := []ast.Child{ast.NodeChild(ast.TagLhs, lhs)}
		switch {
		case p.at(token.KwAs):
			kind = ast.KindCastExpr
			ch = append(ch, p.bump(ast.TagOp))
			ty, ok := p.parseType()
			if !ok {
				return ast.NoNodeID, false
			}
			rhs = ast.NodeChild(ast.TagType, ty)
		case p.atWord("has") && p.startsOperandAfterWord():
			kind = ast.KindHasExpr
			ch = append(ch, p.bump(ast.TagOp))
			elem, ok := p.parseUnary(mode)
			if !ok {
				return ast.NoNodeID, false
			}
			rhs = ast.NodeChild(ast.TagRhs, elem)
		case p.atWord("is") && isSegmentStart(p.nth(1).Kind):
			kind = ast.KindIsExpr
			ch = append(ch, p.bump(ast.TagOp))
			variant, ok := p.parsePath(pathExpr)
			if !ok {
				return ast.NoNodeID, false
			}
			rhs = ast.NodeChild(ast.TagPath, variant)
		default:
			return lhs, true
		}
		lhs = p.finish(kind, append(ch, rhs))
	}
}

// startsOperandAfterWord reports whether the token after a contextual
// operator word can begin its operand.
func (p *Parser) startsOperandAfterWord() bool {
	next := p.nth(1)
	if next.IsLiteral() || isSegmentStart(next.Kind) {
		return true
	}
	switch next.Kind {
	case token.LParen, token.LBracket, token.Minus, token.Bang, token.Star, token.Amp:
		return true
	}
	return false
}

// parseUnary parses prefix operators, expression attributes and the
// postfix chain beneath them.
func (p *Parser) parseUnary(mode exprMode) (ast.NodeID, bool) {
	if !p.enter(ruleUnary) {
		return ast.NoNodeID, false
	}
	defer p.leave()

	switch tok := p.peek(); tok.Kind {
	case token.Minus, token.Bang, token.Star:
		op := p.bump(ast.TagOp)
		operand, ok := p.parseUnary(mode)
		if !ok {
			return ast.NoNodeID, false
		}
		return p.finish(ast.KindUnaryExpr, []ast.Child{op, ast.NodeChild(ast.TagOperand, operand)}), true
	case token.Amp, token.AndAnd:
		amp, _ := p.eatGlued(token.Amp)
		ch := []ast.Child{ast.TokChild(ast.TagOp, amp)}
		if p.at(token.KwMut) {
			ch = append(ch, p.bump(ast.TagKeyword))
		}
		operand, ok := p.parseUnary(mode)
		if !ok {
			return ast.NoNodeID, false
		}
		ch = append(ch, ast.NodeChild(ast.TagOperand, operand))
		return p.finish(ast.KindRefExpr, ch), true
	case token.Pound:
		if !p.atOuterAttr() {
			break
		}
		ch, ok := p.parseOuterAttrs()
		if !ok {
			return ast.NoNodeID, false
		}
		operand, ok := p.parseUnary(mode)
		if !ok {
			return ast.NoNodeID, false
		}
		ch = append(ch, ast.NodeChild(ast.TagOperand, operand))
		return p.finish(ast.KindAttrExpr, ch), true
	}
	return p.parsePostfix(mode)
}

// expectExpression records a missing expression at the cursor.
func (p *Parser) expectExpression() {
	if p.peek().Kind.IsKeyword() {
		p.failCode(diag.SynReservedKeyword, "expression")
		return
	}
	p.failCode(diag.SynExpectExpression, "expression")
}
