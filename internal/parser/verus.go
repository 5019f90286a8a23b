package parser

import (
	"verusyn/internal/ast"
	"verusyn/internal/token"
)

// clauseWords end a comma-separated clause list and a where clause.
var clauseWords = map[string]struct{}{
	"requires":               {},
	"ensures":                {},
	"recommends":             {},
	"decreases":              {},
	"invariant":              {},
	"invariant_except_break": {},
	"opens_invariants":       {},
	"no_unwind":              {},
	"when":                   {},
	"via":                    {},
}

func (p *Parser) atClauseWord() bool {
	tok := p.peek()
	if tok.Kind != token.Ident {
		return false
	}
	_, ok := clauseWords[tok.Text]
	return ok
}

func isFnModeWord(tok token.Token) bool {
	return tok.IsWord("spec") || tok.IsWord("proof") || tok.IsWord("exec")
}

func isDataModeWord(tok token.Token) bool {
	return tok.IsWord("ghost") || tok.IsWord("tracked")
}

// parsePublish parses `open`, `closed` and `open(crate)`.
func (p *Parser) parsePublish() (ast.NodeID, bool) {
	ch := []ast.Child{p.bump(ast.TagKeyword)}
	if p.at(token.LParen) {
		open := p.advance()
		ch = append(ch, ast.TokChild(ast.TagNone, open))
		vis, ok := p.parseVisRestriction()
		if !ok {
			return ast.NoNodeID, false
		}
		ch = append(ch, vis...)
		closeTok, ok := p.expectClose(token.RParen, open)
		if !ok {
			return ast.NoNodeID, false
		}
		ch = append(ch, ast.TokChild(ast.TagNone, closeTok))
	}
	return p.finish(ast.KindPublish, ch), true
}

// parseFnMode parses `spec`, `spec(checked)`, `proof` or `exec`.
func (p *Parser) parseFnMode() (ast.NodeID, bool) {
	isSpec := p.atWord("spec")
	ch := []ast.Child{p.bump(ast.TagKeyword)}
	if isSpec && p.at(token.LParen) {
		open := p.advance()
		ch = append(ch, ast.TokChild(ast.TagNone, open))
		checked, ok := p.eatWord("checked")
		if !ok {
			p.fail("'checked'")
			return ast.NoNodeID, false
		}
		ch = append(ch, ast.TokChild(ast.TagKeyword, checked))
		closeTok, ok := p.expectClose(token.RParen, open)
		if !ok {
			return ast.NoNodeID, false
		}
		ch = append(ch, ast.TokChild(ast.TagNone, closeTok))
	}
	return p.finish(ast.KindFnMode, ch), true
}

// parseDataMode parses `ghost` or `tracked`.
func (p *Parser) parseDataMode() ast.NodeID {
	return p.finish(ast.KindDataMode, []ast.Child{p.bump(ast.TagKeyword)})
}

// parseClauseExprs parses a comma-separated list of no-struct expressions.
// A trailing comma is allowed; the list ends before a block, `;`, `}` or the
// next clause keyword.
func (p *Parser) parseClauseExprs(ch []ast.Child) ([]ast.Child, bool) {
	for {
		e, ok := p.parseExpr(modeNoStruct)
		if !ok {
			return nil, false
		}
		ch = append(ch, ast.NodeChild(ast.TagElem, e))
		comma, ok := p.eat(token.Comma)
		if !ok {
			return ch, true
		}
		ch = append(ch, ast.TokChild(ast.TagNone, comma))
		if p.atOr(token.LBrace, token.Semi, token.RBrace, token.EOF) || p.atClauseWord() {
			return ch, true
		}
	}
}

// parseExprClause parses `word e, e, ...` into a node of kind.
func (p *Parser) parseExprClause(kind ast.Kind) (ast.NodeID, bool) {
	if !p.enter(ruleClause) {
		return ast.NoNodeID, false
	}
	defer p.leave()

	ch, ok := p.parseClauseExprs([]ast.Child{p.bump(ast.TagKeyword)})
	if !ok {
		return ast.NoNodeID, false
	}
	return p.finish(kind, ch), true
}

// parseDecreases parses `decreases e, ... [when e] [via path]`.
func (p *Parser) parseDecreases() (ast.NodeID, bool) {
	if !p.enter(ruleClause) {
		return ast.NoNodeID, false
	}
	defer p.leave()

	ch, ok := p.parseClauseExprs([]ast.Child{p.bump(ast.TagKeyword)})
	if !ok {
		return ast.NoNodeID, false
	}
	if p.atWord("when") {
		ch = append(ch, p.bump(ast.TagKeyword))
		cond, ok := p.parseExpr(modeNoStruct)
		if !ok {
			return ast.NoNodeID, false
		}
		ch = append(ch, ast.NodeChild(ast.TagWhen, cond))
	}
	if p.atWord("via") {
		ch = append(ch, p.bump(ast.TagKeyword))
		path, ok := p.parsePath(pathExpr)
		if !ok {
			return ast.NoNodeID, false
		}
		ch = append(ch, ast.NodeChild(ast.TagVia, path))
	}
	return p.finish(ast.KindDecreases, ch), true
}

// parseOpensInvariants parses `opens_invariants any|none|[e, ...]|e, ...`.
func (p *Parser) parseOpensInvariants() (ast.NodeID, bool) {
	if !p.enter(ruleClause) {
		return ast.NoNodeID, false
	}
	defer p.leave()

	ch := []ast.Child{p.bump(ast.TagKeyword)}
	if p.atWord("any") || p.atWord("none") {
		ch = append(ch, p.bump(ast.TagKeyword))
		return p.finish(ast.KindOpensInvariants, ch), true
	}
	ch, ok := p.parseClauseExprs(ch)
	if !ok {
		return ast.NoNodeID, false
	}
	return p.finish(ast.KindOpensInvariants, ch), true
}

// parseNoUnwind parses `no_unwind [when e]`.
func (p *Parser) parseNoUnwind() (ast.NodeID, bool) {
	ch := []ast.Child{p.bump(ast.TagKeyword)}
	if p.atWord("when") {
		ch = append(ch, p.bump(ast.TagKeyword))
		cond, ok := p.parseExpr(modeNoStruct)
		if !ok {
			return ast.NoNodeID, false
		}
		ch = append(ch, ast.NodeChild(ast.TagWhen, cond))
	}
	return p.finish(ast.KindNoUnwind, ch), true
}

// parseFnClauses parses the requires, ensures and related clauses of a
// function signature in any order.
func (p *Parser) parseFnClauses(ch []ast.Child) ([]ast.Child, bool) {
	for {
		var (
			id  ast.NodeID
			tag ast.Tag
			ok  bool
		)
		switch {
		case p.atWord("requires"):
			id, ok = p.parseExprClause(ast.KindRequires)
			tag = ast.TagRequires
		case p.atWord("recommends"):
			id, ok = p.parseExprClause(ast.KindRecommends)
			tag = ast.TagRecommends
		case p.atWord("ensures"):
			id, ok = p.parseExprClause(ast.KindEnsures)
			tag = ast.TagEnsures
		case p.atWord("decreases"):
			id, ok = p.parseDecreases()
			tag = ast.TagDecreases
		case p.atWord("opens_invariants"):
			id, ok = p.parseOpensInvariants()
			tag = ast.TagOpensInvariants
		case p.atWord("no_unwind"):
			id, ok = p.parseNoUnwind()
			tag = ast.TagNoUnwind
		default:
			return ch, true
		}
		if !ok {
			return nil, false
		}
		ch = append(ch, ast.NodeChild(tag, id))
	}
}

// parseLoopClauses parses `invariant`, `invariant_except_break`, `ensures`
// and `decreases` ahead of a loop body.
func (p *Parser) parseLoopClauses(ch []ast.Child) ([]ast.Child, bool) {
	for {
		var (
			id  ast.NodeID
			tag ast.Tag
			ok  bool
		)
		switch {
		case p.atWord("invariant"):
			id, ok = p.parseExprClause(ast.KindInvariant)
			tag = ast.TagInvariant
		case p.atWord("invariant_except_break"):
			id, ok = p.parseExprClause(ast.KindInvariantExceptBreak)
			tag = ast.TagInvariant
		case p.atWord("ensures"):
			id, ok = p.parseExprClause(ast.KindEnsures)
			tag = ast.TagEnsures
		case p.atWord("decreases"):
			id, ok = p.parseDecreases()
			tag = ast.TagDecreases
		default:
			return ch, true
		}
		if !ok {
			return nil, false
		}
		ch = append(ch, ast.NodeChild(tag, id))
	}
}

// parseProverHint parses `(prover)` after `by`, with an optional
// `requires` clause for the hint.
func (p *Parser) parseProverHint() (ast.NodeID, bool) {
	open := p.advance()
	ch := []ast.Child{ast.TokChild(ast.TagNone, open)}
	name, ok := p.expectIdent("prover name")
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.TokChild(ast.TagName, name))
	closeTok, ok := p.expectClose(token.RParen, open)
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.TokChild(ast.TagNone, closeTok))
	if p.atWord("requires") {
		req, ok := p.parseExprClause(ast.KindRequires)
		if !ok {
			return ast.NoNodeID, false
		}
		ch = append(ch, ast.NodeChild(ast.TagRequires, req))
	}
	return p.finish(ast.KindProverHint, ch), true
}

// parseAssert parses `assert(e)` with its optional `by(prover)` and
// `by { ... }` proofs, and `assert forall|x| e [implies e2] by { ... }`.
func (p *Parser) parseAssert() (ast.NodeID, bool) {
	if !p.enter(ruleAssert) {
		return ast.NoNodeID, false
	}
	defer p.leave()

	ch := []ast.Child{p.bump(ast.TagKeyword)}
	if p.at(token.KwForall) {
		return p.parseAssertForall(ch)
	}
	open, ok := p.expect(token.LParen)
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.TokChild(ast.TagNone, open))
	cond, ok := p.parseExpr(0)
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.NodeChild(ast.TagCond, cond))
	closeTok, ok := p.expectClose(token.RParen, open)
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.TokChild(ast.TagNone, closeTok))

	if !p.atWord("by") {
		return p.finish(ast.KindAssertExpr, ch), true
	}
	ch = append(ch, p.bump(ast.TagKeyword))
	if p.at(token.LParen) {
		hint, ok := p.parseProverHint()
		if !ok {
			return ast.NoNodeID, false
		}
		ch = append(ch, ast.NodeChild(ast.TagProver, hint))
		if !p.at(token.LBrace) {
			return p.finish(ast.KindAssertExpr, ch), true
		}
	}
	body, ok := p.parseBlock()
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.NodeChild(ast.TagBody, body))
	return p.finish(ast.KindAssertExpr, ch), true
}

func (p *Parser) parseAssertForall(ch []ast.Child) (ast.NodeID, bool) {
	ch = append(ch, p.bump(ast.TagKeyword))
	params, ok := p.parseQuantParams()
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.NodeChild(ast.TagParams, params))
	attrs, ok := p.parseInnerAttrs()
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, attrs...)
	cond, ok := p.parseExpr(modeNoStruct)
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.NodeChild(ast.TagCond, cond))
	if p.atWord("implies") {
		ch = append(ch, p.bump(ast.TagKeyword))
		then, ok := p.parseExpr(modeNoStruct)
		if !ok {
			return ast.NoNodeID, false
		}
		ch = append(ch, ast.NodeChild(ast.TagThen, then))
	}
	by, ok := p.eatWord("by")
	if !ok {
		p.fail("'by'")
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.TokChild(ast.TagKeyword, by))
	body, ok := p.parseBlock()
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.NodeChild(ast.TagBody, body))
	return p.finish(ast.KindAssertForall, ch), true
}

// parseAssume parses `assume(e)`.
func (p *Parser) parseAssume() (ast.NodeID, bool) {
	ch := []ast.Child{p.bump(ast.TagKeyword)}
	open, ok := p.expect(token.LParen)
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.TokChild(ast.TagNone, open))
	cond, ok := p.parseExpr(0)
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.NodeChild(ast.TagCond, cond))
	closeTok, ok := p.expectClose(token.RParen, open)
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.TokChild(ast.TagNone, closeTok))
	return p.finish(ast.KindAssumeExpr, ch), true
}

// parseQuantifier parses `forall|x: T, y| body`, `exists|..| body` and
// `choose|..| body`. The body may open with `#![trigger ...]`.
func (p *Parser) parseQuantifier(mode exprMode) (ast.NodeID, bool) {
	if !p.enter(ruleQuantifier) {
		return ast.NoNodeID, false
	}
	defer p.leave()

	ch := []ast.Child{p.bump(ast.TagKeyword)}
	params, ok := p.parseQuantParams()
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.NodeChild(ast.TagParams, params))
	attrs, ok := p.parseInnerAttrs()
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, attrs...)
	// Quantifier bodies never take a bare struct literal.
	body, ok := p.parseExpr(mode | modeNoStruct | modeNoAssign)
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.NodeChild(ast.TagBody, body))
	return p.finish(ast.KindQuantifier, ch), true
}

// parseQuantParams parses `|x: T, y|`; `||` is an empty list.
func (p *Parser) parseQuantParams() (ast.NodeID, bool) {
	if p.at(token.OrOr) {
		return p.finish(ast.KindQuantParams, []ast.Child{p.bump(ast.TagNone)}), true
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
	return p.finish(ast.KindQuantParams, ch), true
}
