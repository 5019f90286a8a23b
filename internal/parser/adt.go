package parser

import (
	"verusyn/internal/ast"
	"verusyn/internal/token"
)

func (p *Parser) parseOptDataMode(ch []ast.Child) []ast.Child {
	if isDataModeWord(p.peek()) && p.nth(1).Kind != token.Colon {
		return append(ch, ast.NodeChild(ast.TagMode, p.parseDataMode()))
	}
	return ch
}

// parseStruct parses record, tuple and unit structs.
func (p *Parser) parseStruct(ch []ast.Child) (ast.NodeID, bool) {
	if !p.enter(ruleStruct) {
		return ast.NoNodeID, false
	}
	defer p.leave()

	ch = p.parseOptDataMode(ch)
	ch, ok := p.expectKeyword(ch, token.KwStruct)
	if !ok {
		return ast.NoNodeID, false
	}
	name, ok := p.expectIdent("struct name")
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.TokChild(ast.TagName, name))
	ch, ok = p.parseOptGenerics(ch)
	if !ok {
		return ast.NoNodeID, false
	}

	switch {
	case p.at(token.LParen):
		fields, ok := p.parseTupleFields()
		if !ok {
			return ast.NoNodeID, false
		}
		ch = append(ch, ast.NodeChild(ast.TagBody, fields))
		ch, ok = p.parseOptWhere(ch)
		if !ok {
			return ast.NoNodeID, false
		}
		semi, ok := p.expectSemi()
		if !ok {
			return ast.NoNodeID, false
		}
		ch = append(ch, ast.TokChild(ast.TagNone, semi))
	default:
		ch, ok = p.parseOptWhere(ch)
		if !ok {
			return ast.NoNodeID, false
		}
		if semi, ok := p.eat(token.Semi); ok {
			ch = append(ch, ast.TokChild(ast.TagNone, semi))
			break
		}
		fields, ok := p.parseRecordFields()
		if !ok {
			return ast.NoNodeID, false
		}
		ch = append(ch, ast.NodeChild(ast.TagBody, fields))
	}
	return p.finish(ast.KindStruct, ch), true
}

// parseUnion parses `union Name<G> [where ..] { fields }`.
func (p *Parser) parseUnion(ch []ast.Child) (ast.NodeID, bool) {
	if !p.enter(ruleUnion) {
		return ast.NoNodeID, false
	}
	defer p.leave()

	ch = append(ch, p.bump(ast.TagKeyword))
	name, ok := p.expectIdent("union name")
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.TokChild(ast.TagName, name))
	ch, ok = p.parseOptGenerics(ch)
	if !ok {
		return ast.NoNodeID, false
	}
	ch, ok = p.parseOptWhere(ch)
	if !ok {
		return ast.NoNodeID, false
	}
	fields, ok := p.parseRecordFields()
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.NodeChild(ast.TagBody, fields))
	return p.finish(ast.KindUnion, ch), true
}

// parseRecordFields parses `{ [attrs] [vis] [ghost|tracked] name: T, ... }`.
func (p *Parser) parseRecordFields() (ast.NodeID, bool) {
	open, ok := p.expect(token.LBrace)
	if !ok {
		return ast.NoNodeID, false
	}
	ch := []ast.Child{ast.TokChild(ast.TagNone, open)}
	fields, ok := p.sepList(token.RBrace, ast.TagField, func() (ast.NodeID, bool) {
		return p.parseField(true)
	})
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, fields...)
	closeTok, ok := p.expectClose(token.RBrace, open)
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.TokChild(ast.TagNone, closeTok))
	return p.finish(ast.KindRecordFields, ch), true
}

// parseTupleFields parses `( [attrs] [vis] [ghost|tracked] T, ... )`.
func (p *Parser) parseTupleFields() (ast.NodeID, bool) {
	open := p.advance()
	ch := []ast.Child{ast.TokChild(ast.TagNone, open)}
	fields, ok := p.sepList(token.RParen, ast.TagField, func() (ast.NodeID, bool) {
		return p.parseField(false)
	})
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, fields...)
	closeTok, ok := p.expectClose(token.RParen, open)
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.TokChild(ast.TagNone, closeTok))
	return p.finish(ast.KindTupleFields, ch), true
}

func (p *Parser) parseField(named bool) (ast.NodeID, bool) {
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
	if isDataModeWord(p.peek()) && (named && p.nth(1).Kind == token.Ident || !named && p.nth(1).Kind != token.PathSep && p.nth(1).Kind != token.Lt) {
		ch = append(ch, ast.NodeChild(ast.TagMode, p.parseDataMode()))
	}
	if named {
		name, ok := p.expectIdent("field name")
		if !ok {
			return ast.NoNodeID, false
		}
		ch = append(ch, ast.TokChild(ast.TagName, name))
		colon, ok := p.expect(token.Colon)
		if !ok {
			return ast.NoNodeID, false
		}
		ch = append(ch, ast.TokChild(ast.TagNone, colon))
	}
	ty, ok := p.parseType()
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.NodeChild(ast.TagType, ty))
	return p.finish(ast.KindField, ch), true
}

// parseEnum parses `enum Name<G> [where ..] { variants }`.
func (p *Parser) parseEnum(ch []ast.Child) (ast.NodeID, bool) {
	if !p.enter(ruleEnum) {
		return ast.NoNodeID, false
	}
	defer p.leave()

	ch = p.parseOptDataMode(ch)
	ch, ok := p.expectKeyword(ch, token.KwEnum)
	if !ok {
		return ast.NoNodeID, false
	}
	name, ok := p.expectIdent("enum name")
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.TokChild(ast.TagName, name))
	ch, ok = p.parseOptGenerics(ch)
	if !ok {
		return ast.NoNodeID, false
	}
	ch, ok = p.parseOptWhere(ch)
	if !ok {
		return ast.NoNodeID, false
	}
	open, ok := p.expect(token.LBrace)
	if !ok {
		return ast.NoNodeID, false
	}
	list := []ast.Child{ast.TokChild(ast.TagNone, open)}
	variants, ok := p.sepList(token.RBrace, ast.TagVariant, p.parseVariant)
	if !ok {
		return ast.NoNodeID, false
	}
	list = append(list, variants...)
	closeTok, ok := p.expectClose(token.RBrace, open)
	if !ok {
		return ast.NoNodeID, false
	}
	list = append(list, ast.TokChild(ast.TagNone, closeTok))
	ch = append(ch, ast.NodeChild(ast.TagBody, p.finish(ast.KindVariantList, list)))
	return p.finish(ast.KindEnum, ch), true
}

// parseVariant parses `Name`, `Name(T, ..)`, `Name { f: T }` and `Name = e`.
func (p *Parser) parseVariant() (ast.NodeID, bool) {
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
	name, ok := p.expectIdent("variant name")
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.TokChild(ast.TagName, name))
	switch {
	case p.at(token.LParen):
		fields, ok := p.parseTupleFields()
		if !ok {
			return ast.NoNodeID, false
		}
		ch = append(ch, ast.NodeChild(ast.TagBody, fields))
	case p.at(token.LBrace):
		fields, ok := p.parseRecordFields()
		if !ok {
			return ast.NoNodeID, false
		}
		ch = append(ch, ast.NodeChild(ast.TagBody, fields))
	}
	if p.at(token.Eq) {
		ch = append(ch, p.bump(ast.TagNone))
		disc, ok := p.parseExpr(0)
		if !ok {
			return ast.NoNodeID, false
		}
		ch = append(ch, ast.NodeChild(ast.TagValue, disc))
	}
	return p.finish(ast.KindVariant, ch), true
}
