package parser

import (
	"fmt"

	"verusyn/internal/ast"
	"verusyn/internal/diag"
)

// rule names a grammar rule on the active rule stack.
type rule uint8

const (
	ruleVerusBlock rule = iota
	ruleItem
	ruleAttr
	ruleVis
	ruleFn
	ruleParams
	ruleRet
	ruleClause
	ruleStruct
	ruleEnum
	ruleUnion
	ruleConst
	ruleStatic
	ruleTypeAlias
	ruleTrait
	ruleImpl
	ruleMod
	ruleUse
	ruleExtern
	ruleMacro
	ruleTokenTree
	ruleGenerics
	ruleWhere
	ruleBounds
	ruleBlock
	ruleStmt
	ruleLet
	ruleExpr
	ruleUnary
	rulePrimary
	ruleIf
	ruleWhile
	ruleFor
	ruleLoop
	ruleMatch
	ruleClosure
	ruleQuantifier
	ruleAssert
	ruleStructLit
	rulePath
	ruleGenericArgs
	ruleType
	rulePattern
)

var ruleNames = [...]string{
	ruleVerusBlock:  "verus_block",
	ruleItem:        "item",
	ruleAttr:        "attribute",
	ruleVis:         "visibility",
	ruleFn:          "fn",
	ruleParams:      "params",
	ruleRet:         "ret_type",
	ruleClause:      "clause",
	ruleStruct:      "struct",
	ruleEnum:        "enum",
	ruleUnion:       "union",
	ruleConst:       "const",
	ruleStatic:      "static",
	ruleTypeAlias:   "type_alias",
	ruleTrait:       "trait",
	ruleImpl:        "impl",
	ruleMod:         "mod",
	ruleUse:         "use",
	ruleExtern:      "extern",
	ruleMacro:       "macro",
	ruleTokenTree:   "token_tree",
	ruleGenerics:    "generics",
	ruleWhere:       "where_clause",
	ruleBounds:      "bounds",
	ruleBlock:       "block",
	ruleStmt:        "stmt",
	ruleLet:         "let",
	ruleExpr:        "expr",
	ruleUnary:       "unary",
	rulePrimary:     "primary",
	ruleIf:          "if",
	ruleWhile:       "while",
	ruleFor:         "for",
	ruleLoop:        "loop",
	ruleMatch:       "match",
	ruleClosure:     "closure",
	ruleQuantifier:  "quantifier",
	ruleAssert:      "assert",
	ruleStructLit:   "struct_literal",
	rulePath:        "path",
	ruleGenericArgs: "generic_args",
	ruleType:        "type",
	rulePattern:     "pattern",
}

func (r rule) String() string {
	if int(r) < len(ruleNames) {
		return ruleNames[r]
	}
	return "rule(?)"
}

// nesting reports whether entering r counts towards the depth limit.
func (r rule) nesting() bool {
	switch r {
	case ruleExpr, ruleUnary, ruleType, rulePattern, ruleBlock, ruleItem, ruleTokenTree:
		return true
	}
	return false
}

// enter pushes r on the rule stack. It fails once the nesting limit is
// exceeded, after which every enter fails and the parse unwinds.
func (p *Parser) enter(r rule) bool {
	if p.fatal != nil {
		return false
	}
	if r.nesting() {
		if p.depth >= p.opts.MaxDepth {
			tok := p.peek()
			p.fatal = diag.NewError(diag.Diagnostic{
				Severity: diag.SevError,
				Code:     diag.SynTooDeep,
				Message:  fmt.Sprintf("nesting exceeds the limit of %d", p.opts.MaxDepth),
				Primary:  tok.Span,
				Rules:    append(p.ruleNames(), r.String()),
			})
			return false
		}
		p.depth++
	}
	p.rules = append(p.rules, r)
	return true
}

func (p *Parser) leave() {
	r := p.rules[len(p.rules)-1]
	p.rules = p.rules[:len(p.rules)-1]
	if r.nesting() {
		p.depth--
	}
}

func (p *Parser) ruleNames() []string {
	out := make([]string, len(p.rules))
	for i, r := range p.rules {
		out[i] = r.String()
	}
	return out
}

type memoRule uint8

const (
	memoExpr memoRule = iota
	memoType
	memoPattern
)

type memoKey struct {
	rule memoRule
	at   mark
	mode uint8
}

type memoEntry struct {
	id  ast.NodeID
	ok  bool
	end mark
}

// memoized runs parse once per (rule, position, mode). A cached success
// moves the cursor to where the original parse ended.
func (p *Parser) memoized(r memoRule, mode uint8, parse func() (ast.NodeID, bool)) (ast.NodeID, bool) {
	if p.memo == nil {
		return parse()
	}
	key := memoKey{rule: r, at: p.mark(), mode: mode}
	if e, ok := p.memo[key]; ok {
		if e.ok {
			p.reset(e.end)
		}
		return e.id, e.ok
	}
	id, ok := parse()
	if p.fatal != nil {
		return id, ok
	}
	if !ok {
		p.reset(key.at)
	}
	p.memo[key] = memoEntry{id: id, ok: ok, end: p.mark()}
	return id, ok
}
