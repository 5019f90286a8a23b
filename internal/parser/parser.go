package parser

import (
	"verusyn/internal/ast"
	"verusyn/internal/diag"
	"verusyn/internal/source"
	"verusyn/internal/token"
)

// DefaultMaxDepth bounds nesting of expressions, types, patterns, blocks
// and items when Options.MaxDepth is zero.
const DefaultMaxDepth = 256

type Options struct {
	// MaxDepth is the nesting limit; 0 means DefaultMaxDepth.
	MaxDepth int
	// NoMemo disables memoisation of expression, type and pattern rules.
	NoMemo bool
	// Reporter receives the failure diagnostic; may be nil.
	Reporter diag.Reporter
}

// Parser is the state for parsing one token slice. It backtracks freely:
// ordered choice restores a cursor mark and tries the next alternative.
type Parser struct {
	tree *ast.Tree
	toks []token.Token // always ends with EOF
	pos  int
	sub  int // bytes of toks[pos] consumed by splitting a glued operator
	opts Options

	rules []rule
	depth int
	far   failure
	fatal *diag.Error
	memo  map[memoKey]memoEntry
}

// New creates a parser over toks, which must come from one file and end
// with EOF. Nodes are allocated in tree.
func New(tree *ast.Tree, toks []token.Token, opts Options) *Parser {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	if len(toks) == 0 || toks[len(toks)-1].Kind != token.EOF {
		var sp source.Span
		if len(toks) > 0 {
			sp = toks[len(toks)-1].Span
			sp.Start = sp.End
		}
		toks = append(toks, token.Token{Kind: token.EOF, Span: sp})
	}
	p := &Parser{
		tree: tree,
		toks: toks,
		opts: opts,
	}
	if !opts.NoMemo {
		p.memo = make(map[memoKey]memoEntry)
	}
	return p
}

// ParseVerusMacro parses `verus ! { items }` up to EOF and returns the
// KindVerusBlock node.
func (p *Parser) ParseVerusMacro() (ast.NodeID, error) {
	id, ok := p.parseVerusMacro()
	return p.finishEntry(id, ok)
}

// ParseItems parses inner attributes and items up to EOF into a
// KindItemList node.
func (p *Parser) ParseItems() (ast.NodeID, error) {
	id, ok := p.parseItemList(token.EOF)
	return p.finishEntry(id, ok)
}

// ParseExpr parses a single expression spanning all tokens.
func (p *Parser) ParseExpr() (ast.NodeID, error) {
	id, ok := p.parseExpr(0)
	return p.finishEntry(id, ok)
}

// ParseType parses a single type spanning all tokens.
func (p *Parser) ParseType() (ast.NodeID, error) {
	id, ok := p.parseType()
	return p.finishEntry(id, ok)
}

// ParsePattern parses a single top-level pattern spanning all tokens.
func (p *Parser) ParsePattern() (ast.NodeID, error) {
	id, ok := p.parsePattern(patTop)
	return p.finishEntry(id, ok)
}

// ParseBlock parses a single `{ ... }` block spanning all tokens.
func (p *Parser) ParseBlock() (ast.NodeID, error) {
	id, ok := p.parseBlock()
	return p.finishEntry(id, ok)
}

func (p *Parser) finishEntry(id ast.NodeID, ok bool) (ast.NodeID, error) {
	if ok && !p.at(token.EOF) {
		p.failCode(diag.SynTrailingInput, "end of input")
		ok = false
	}
	if ok {
		return id, nil
	}
	err := p.error()
	diag.ReportDiagnostic(p.opts.Reporter, err.Diagnostic)
	return ast.NoNodeID, err
}

func (p *Parser) parseVerusMacro() (ast.NodeID, bool) {
	if !p.enter(ruleVerusBlock) {
		return ast.NoNodeID, false
	}
	defer p.leave()

	var ch []ast.Child
	if !p.atWord("verus") {
		p.fail("'verus!'")
		return ast.NoNodeID, false
	}
	ch = append(ch, p.bump(ast.TagKeyword))
	bang, ok := p.expect(token.Bang)
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.TokChild(ast.TagNone, bang))
	open, ok := p.expect(token.LBrace)
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.TokChild(ast.TagNone, open))
	list, ok := p.parseItemList(token.RBrace)
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, p.tree.Node(list).Children...)
	closeTok, ok := p.expectClose(token.RBrace, open)
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, ast.TokChild(ast.TagNone, closeTok))
	return p.finish(ast.KindVerusBlock, ch), true
}

// parseItemList parses `#![...]* item*` until the closing kind (not consumed).
func (p *Parser) parseItemList(closing token.Kind) (ast.NodeID, bool) {
	var ch []ast.Child
	attrs, ok := p.parseInnerAttrs()
	if !ok {
		return ast.NoNodeID, false
	}
	ch = append(ch, attrs...)
	for !p.at(closing) {
		if p.at(token.EOF) {
			if closing == token.EOF {
				break
			}
			p.failCode(diag.SynUnclosedDelimiter, "'}'")
			return ast.NoNodeID, false
		}
		item, ok := p.parseItem()
		if !ok {
			return ast.NoNodeID, false
		}
		ch = append(ch, ast.NodeChild(ast.TagItem, item))
	}
	return p.finish(ast.KindItemList, ch), true
}
