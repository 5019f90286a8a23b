package parser

import (
	"verusyn/internal/ast"
	"verusyn/internal/diag"
	"verusyn/internal/token"
)

// qualifierWords may precede `fn`, `impl`, `trait` or `const` in an item
// header.
var qualifierWords = map[string]struct{}{
	"open":      {},
	"closed":    {},
	"spec":      {},
	"proof":     {},
	"exec":      {},
	"broadcast": {},
	"default":   {},
	"auto":      {},
	"ghost":     {},
	"tracked":   {},
}

// headKeyword skips attributes, visibility and item qualifiers and returns
// the first token after them together with the token before it.
func (p *Parser) headKeyword() (token.Token, token.Token) {
	i := p.pos
	var prev token.Token
	at := func(k int) token.Token {
		return p.toks[min(k, len(p.toks)-1)]
	}
	skipGroup := func() {
		depth := 0
		for ; i < len(p.toks)-1; i++ {
			switch at(i).Kind {
			case token.LParen, token.LBracket, token.LBrace:
				depth++
			case token.RParen, token.RBracket, token.RBrace:
				depth--
				if depth == 0 {
					i++
					return
				}
			}
		}
	}
	for {
		tok := at(i)
		switch {
		case tok.Kind == token.Pound:
			i++
			if at(i).Kind == token.Bang {
				i++
			}
			skipGroup()
			continue
		case tok.Kind == token.KwPub:
			i++
			if at(i).Kind == token.LParen {
				skipGroup()
			}
			continue
		case tok.Kind == token.KwConst || tok.Kind == token.KwAsync || tok.Kind == token.KwUnsafe:
			next := at(i + 1)
			if tok.Kind == token.KwConst && (next.Kind == token.Ident || next.Kind == token.Underscore) {
				return tok, prev
			}
		case tok.Kind == token.KwExtern:
			next := at(i + 1)
			if next.Kind == token.KwCrate || next.Kind == token.LBrace {
				return tok, prev
			}
			if next.Kind.IsLiteral() {
				if at(i+2).Kind == token.LBrace {
					return tok, prev
				}
				prev = tok
				i += 2
				continue
			}
		case tok.Kind == token.Ident:
			if _, ok := qualifierWords[tok.Text]; !ok {
				return tok, prev
			}
			prev = tok
			i++
			if at(i).Kind == token.LParen && (tok.Text == "open" || tok.Text == "closed" || tok.Text == "spec") {
				skipGroup()
			}
			continue
		default:
			return tok, prev
		}
		prev = tok
		i++
	}
}

// atItemStart reports whether an item begins at the cursor.
func (p *Parser) atItemStart() bool {
	if p.atOr(token.Pound, token.KwPub) {
		return true
	}
	head, _ := p.headKeyword()
	switch head.Kind {
	case token.KwFn, token.KwStruct, token.KwEnum, token.KwTrait, token.KwImpl, token.KwMod,
		token.KwUse, token.KwStatic, token.KwType, token.KwExtern:
		return true
	case token.KwConst:
		return true
	case token.Ident:
		switch head.Text {
		case "union":
			return head.Span == p.peek().Span && p.nth(1).Kind == token.Ident
		case "macro_rules":
			return head.Span == p.peek().Span && p.nth(1).Kind == token.Bang
		case "macro":
			return head.Span == p.peek().Span && p.nth(1).Kind == token.Ident
		}
	}
	return false
}

// parseItem parses one item with its attributes and visibility. The kind
// is chosen by the first keyword after the qualifiers; a path followed by
// `!` is a macro invocation.
func (p *Parser) parseItem() (ast.NodeID, bool) {
	if !p.enter(ruleItem) {
		return ast.NoNodeID, false
	}
	defer p.leave()

	ch, ok := p.parseOuterAttrs()
	if !ok {
		return ast.NoNodeID, false
	}
	if p.at(token.KwPub) {
		vis, ok := p.parseVisibility()
		if !ok {
			return ast.NoNodeID, false
		}
		ch = append(ch, ast.NodeChild(ast.TagVis, vis))
	}

	head, prev := p.headKeyword()
	switch head.Kind {
	case token.KwFn:
		return p.parseFn(ch)
	case token.KwUse:
		return p.parseUse(ch)
	case token.KwStruct:
		return p.parseStruct(ch)
	case token.KwEnum:
		return p.parseEnum(ch)
	case token.KwType:
		return p.parseTypeAlias(ch)
	case token.KwMod:
		return p.parseMod(ch)
	case token.KwStatic:
		return p.parseStatic(ch)
	case token.KwConst:
		return p.parseConst(ch)
	case token.KwImpl:
		return p.parseImpl(ch)
	case token.KwTrait:
		return p.parseTrait(ch)
	case token.KwExtern:
		if p.nth(1).Kind == token.KwCrate {
			return p.parseExternCrate(ch)
		}
		return p.parseExternBlock(ch)
	}
	if head.Kind == token.Ident && prev.Kind == token.Invalid {
		switch {
		case head.Text == "union" && p.nth(1).Kind == token.Ident:
			return p.parseUnion(ch)
		case head.Text == "macro_rules" && p.nth(1).Kind == token.Bang:
			return p.parseMacroRules(ch)
		case head.Text == "macro" && p.nth(1).Kind == token.Ident:
			return p.parseMacro2(ch)
		}
	}
	if p.atPathStart(pathMod) {
		return p.parseMacroItem(ch)
	}
	if p.peek().Kind.IsKeyword() {
		p.failCode(diag.SynReservedKeyword, "item")
	} else {
		p.failCode(diag.SynExpectItem, "item")
	}
	return ast.NoNodeID, false
}

// parseVisibility parses `pub` and `pub(crate|self|super|in path)`.
func (p *Parser) parseVisibility() (ast.NodeID, bool) {
	if !p.enter(ruleVis) {
		return ast.NoNodeID, false
	}
	defer p.leave()

	ch := []ast.Child{p.bump(ast.TagKeyword)}
	if p.at(token.LParen) && p.atVisRestriction() {
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
	return p.finish(ast.KindVisibility, ch), true
}

// atVisRestriction reports whether `(` after `pub` restricts visibility
// rather than opening a tuple field type.
func (p *Parser) atVisRestriction() bool {
	switch p.nth(1).Kind {
	case token.KwCrate, token.KwSelfValue, token.KwSuper:
		return p.nth(2).Kind == token.RParen
	case token.KwIn:
		return true
	}
	return false
}

// parseVisRestriction parses `crate`, `self`, `super` or `in path`.
func (p *Parser) parseVisRestriction() ([]ast.Child, bool) {
	if p.at(token.KwIn) {
		ch := []ast.Child{p.bump(ast.TagKeyword)}
		path, ok := p.parsePath(pathMod)
		if !ok {
			return nil, false
		}
		return append(ch, ast.NodeChild(ast.TagPath, path)), true
	}
	if p.atOr(token.KwCrate, token.KwSelfValue, token.KwSuper) {
		return []ast.Child{p.bump(ast.TagKeyword)}, true
	}
	p.fail("'crate', 'self', 'super' or 'in'")
	return nil, false
}

// parseConst parses `[mode] const NAME: T [= e];`.
func (p *Parser) parseConst(ch []ast.Child) (ast.NodeID, bool) {
	if !p.enter(ruleConst) {
		return ast.NoNodeID, false
	}
	defer p.leave()

	if isFnModeWord(p.peek()) {
		mode, ok := p.parseFnMode()
		if !ok {
			return ast.NoNodeID, false
		}
		ch = append(ch, ast.NodeChild(ast.TagMode, mode))
	}
	kw, ok := p.expect(token.KwConst)
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.TokChild(ast.TagKeyword, kw))
	if p.at(token.Underscore) {
		ch = append(ch, p.bump(ast.TagName))
	} else {
		name, ok := p.expectIdent("constant name")
		if !ok {
			return ast.NoNodeID, false
		}
		ch = append(ch, ast.TokChild(ast.TagName, name))
	}
	return p.finishTypedValue(ast.KindConst, ch)
}

// parseStatic parses `static [mut] NAME: T [= e];`.
func (p *Parser) parseStatic(ch []ast.Child) (ast.NodeID, bool) {
	if !p.enter(ruleStatic) {
		return ast.NoNodeID, false
	}
	defer p.leave()

	ch, ok := p.expectKeyword(ch, token.KwStatic)
	if !ok {
		return ast.NoNodeID, false
	}
	if p.at(token.KwMut) {
		ch = append(ch, p.bump(ast.TagKeyword))
	}
	name, ok := p.expectIdent("static name")
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.TokChild(ast.TagName, name))
	return p.finishTypedValue(ast.KindStatic, ch)
}

// finishTypedValue parses `: T [= e] ;` for consts and statics.
func (p *Parser) finishTypedValue(kind ast.Kind, ch []ast.Child) (ast.NodeID, bool) {
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
	if p.at(token.Eq) {
		ch = append(ch, p.bump(ast.TagNone))
		val, ok := p.parseExpr(0)
		if !ok {
			return ast.NoNodeID, false
		}
		ch = append(ch, ast.NodeChild(ast.TagValue, val))
	}
	semi, ok := p.expectSemi()
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.TokChild(ast.TagNone, semi))
	return p.finish(kind, ch), true
}

// parseTypeAlias parses `type Name<G> [: Bounds] [where ..] [= T];`.
func (p *Parser) parseTypeAlias(ch []ast.Child) (ast.NodeID, bool) {
	if !p.enter(ruleTypeAlias) {
		return ast.NoNodeID, false
	}
	defer p.leave()

	ch, ok := p.expectKeyword(ch, token.KwType)
	if !ok {
		return ast.NoNodeID, false
	}
	name, ok := p.expectIdent("type name")
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.TokChild(ast.TagName, name))
	ch, ok = p.parseOptGenerics(ch)
	if !ok {
		return ast.NoNodeID, false
	}
	if p.at(token.Colon) {
		ch = append(ch, p.bump(ast.TagNone))
		b, ok := p.parseBounds()
		if !ok {
			return ast.NoNodeID, false
		}
		ch = append(ch, ast.NodeChild(ast.TagBound, b))
	}
	ch, ok = p.parseOptWhere(ch)
	if !ok {
		return ast.NoNodeID, false
	}
	if p.at(token.Eq) {
		ch = append(ch, p.bump(ast.TagNone))
		ty, ok := p.parseType()
		if !ok {
			return ast.NoNodeID, false
		}
		ch = append(ch, ast.NodeChild(ast.TagType, ty))
	}
	semi, ok := p.expectSemi()
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.TokChild(ast.TagNone, semi))
	return p.finish(ast.KindTypeAlias, ch), true
}

// parseMod parses `mod name;` and `mod name { #![..] items }`.
func (p *Parser) parseMod(ch []ast.Child) (ast.NodeID, bool) {
	if !p.enter(ruleMod) {
		return ast.NoNodeID, false
	}
	defer p.leave()

	ch, ok := p.expectKeyword(ch, token.KwMod)
	if !ok {
		return ast.NoNodeID, false
	}
	name, ok := p.expectIdent("module name")
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.TokChild(ast.TagName, name))
	if semi, ok := p.eat(token.Semi); ok {
		ch = append(ch, ast.TokChild(ast.TagNone, semi))
		return p.finish(ast.KindMod, ch), true
	}
	ch, ok = p.parseItemBody(ch)
	if !ok {
		return ast.NoNodeID, false
	}
	return p.finish(ast.KindMod, ch), true
}

// parseItemBody parses `{ #![..] items }` into the children of ch.
func (p *Parser) parseItemBody(ch []ast.Child) ([]ast.Child, bool) {
	open, ok := p.expect(token.LBrace)
	if !ok {
		return nil, false
	}
	ch = append(ch, ast.TokChild(ast.TagNone, open))
	list, ok := p.parseItemList(token.RBrace)
	if !ok {
		return nil, false
	}
	ch = append(ch, p.tree.Node(list).Children...)
	closeTok, ok := p.expectClose(token.RBrace, open)
	if !ok {
		return nil, false
	}
	return append(ch, ast.TokChild(ast.TagNone, closeTok)), true
}

// parseExternCrate parses `extern crate name [as alias];`.
func (p *Parser) parseExternCrate(ch []ast.Child) (ast.NodeID, bool) {
	if !p.enter(ruleExtern) {
		return ast.NoNodeID, false
	}
	defer p.leave()

	ch = append(ch, p.bump(ast.TagKeyword), p.bump(ast.TagKeyword))
	if p.at(token.KwSelfValue) {
		ch = append(ch, p.bump(ast.TagName))
	} else {
		name, ok := p.expectIdent("crate name")
		if !ok {
			return ast.NoNodeID, false
		}
		ch = append(ch, ast.TokChild(ast.TagName, name))
	}
	if p.at(token.KwAs) {
		rename, ok := p.parseRename()
		if !ok {
			return ast.NoNodeID, false
		}
		ch = append(ch, ast.NodeChild(ast.TagNone, rename))
	}
	semi, ok := p.expectSemi()
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.TokChild(ast.TagNone, semi))
	return p.finish(ast.KindExternCrate, ch), true
}

// parseExternBlock parses `[unsafe] extern ["abi"] { items }`.
func (p *Parser) parseExternBlock(ch []ast.Child) (ast.NodeID, bool) {
	if !p.enter(ruleExtern) {
		return ast.NoNodeID, false
	}
	defer p.leave()

	if p.at(token.KwUnsafe) {
		ch = append(ch, p.bump(ast.TagKeyword))
	}
	abi, ok := p.parseAbi()
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.NodeChild(ast.TagNone, abi))
	ch, ok = p.parseItemBody(ch)
	if !ok {
		return ast.NoNodeID, false
	}
	return p.finish(ast.KindExternBlock, ch), true
}

// parseAbi parses `extern` with an optional ABI string.
func (p *Parser) parseAbi() (ast.NodeID, bool) {
	kw, ok := p.expect(token.KwExtern)
	if !ok {
		return ast.NoNodeID, false
	}
	ch := []ast.Child{ast.TokChild(ast.TagKeyword, kw)}
	if p.atOr(token.StringLit, token.RawStringLit) {
		ch = append(ch, p.bump(ast.TagName))
	}
	return p.finish(ast.KindAbi, ch), true
}

// expectKeyword consumes keyword k as a TagKeyword child.
func (p *Parser) expectKeyword(ch []ast.Child, k token.Kind) ([]ast.Child, bool) {
	kw, ok := p.expect(k)
	if !ok {
		return nil, false
	}
	return append(ch, ast.TokChild(ast.TagKeyword, kw)), true
}

func (p *Parser) parseOptGenerics(ch []ast.Child) ([]ast.Child, bool) {
	if !p.atGlued(token.Lt) {
		return ch, true
	}
	g, ok := p.parseGenericParams()
	if !ok {
		return nil, false
	}
	return append(ch, ast.NodeChild(ast.TagGenerics, g)), true
}

func (p *Parser) parseOptWhere(ch []ast.Child) ([]ast.Child, bool) {
	if !p.at(token.KwWhere) {
		return ch, true
	}
	w, ok := p.parseWhereClause()
	if !ok {
		return nil, false
	}
	return append(ch, ast.NodeChild(ast.TagWhere, w)), true
}
