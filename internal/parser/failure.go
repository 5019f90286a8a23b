package parser

import (
	"fmt"
	"strings"

	"verusyn/internal/diag"
	"verusyn/internal/token"
)

// failure is the furthest point any alternative reached before failing.
type failure struct {
	set      bool
	at       mark
	found    token.Token
	code     diag.Code
	expected []string
	rules    []string
	notes    []diag.Note
}

func (p *Parser) fail(expected string) {
	p.failAt(p.mark(), diag.SynNoAlternative, expected, nil)
}

func (p *Parser) failCode(code diag.Code, expected string) {
	p.failAt(p.mark(), code, expected, nil)
}

func (p *Parser) failNote(code diag.Code, expected string, note diag.Note) {
	p.failAt(p.mark(), code, expected, []diag.Note{note})
}

// failAt records a failure. A later position replaces the current record;
// the same position merges expectations and keeps the most specific code.
func (p *Parser) failAt(at mark, code diag.Code, expected string, notes []diag.Note) {
	if p.far.set && at.less(p.far.at) {
		return
	}
	if !p.far.set || p.far.at.less(at) {
		found := p.toks[at.pos]
		if at.sub > 0 {
			found = splitTail(found, at.sub)
		}
		p.far = failure{
			set:   true,
			at:    at,
			found: found,
			code:  code,
			rules: p.ruleNames(),
			notes: notes,
		}
	} else {
		if p.far.code == diag.SynNoAlternative && code != diag.SynNoAlternative {
			p.far.code = code
			p.far.rules = p.ruleNames()
		}
		p.far.notes = append(p.far.notes, notes...)
	}
	for _, e := range p.far.expected {
		if e == expected {
			return
		}
	}
	p.far.expected = append(p.far.expected, expected)
}

// error builds the final error: a fatal one if set, else the furthest failure.
func (p *Parser) error() *diag.Error {
	if p.fatal != nil {
		return p.fatal
	}
	f := p.far
	if !f.set {
		f.found = p.peek()
		f.code = diag.SynNoAlternative
		f.rules = p.ruleNames()
	}
	sp := f.found.Span
	return diag.NewError(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     f.code,
		Message:  fmt.Sprintf("expected %s, found %s", joinExpected(f.expected), describe(f.found)),
		Primary:  sp,
		Rules:    f.rules,
		Notes:    f.notes,
	})
}

func joinExpected(exp []string) string {
	const limit = 8
	switch {
	case len(exp) == 0:
		return "something else"
	case len(exp) == 1:
		return exp[0]
	case len(exp) > limit:
		return "one of " + strings.Join(exp[:limit], ", ") + ", ..."
	}
	return "one of " + strings.Join(exp, ", ")
}

func describe(tok token.Token) string {
	switch {
	case tok.Kind == token.EOF:
		return "end of input"
	case tok.Kind.IsKeyword():
		return "keyword " + tok.Kind.String()
	case tok.Kind == token.Ident:
		return fmt.Sprintf("identifier '%s'", tok.Text)
	}
	return fmt.Sprintf("'%s'", tok.Text)
}
