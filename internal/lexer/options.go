package lexer

import (
	"verusyn/internal/diag"
	"verusyn/internal/source"
)

type Options struct {
	// Reporter receives lexical diagnostics; may be nil.
	Reporter diag.Reporter
}

// errLex records a lexical error. Only the first error is kept as the
// lexer's failure; every error is forwarded to the Reporter.
func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	d := diag.Diagnostic{
		Severity: diag.SevError,
		Code:     code,
		Message:  msg,
		Primary:  sp,
		Rules:    []string{"lexer"},
	}
	if lx.err == nil {
		lx.err = diag.NewError(d)
	}
	diag.ReportDiagnostic(lx.opts.Reporter, d)
}
