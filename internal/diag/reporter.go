package diag

import "verusyn/internal/source"

// Reporter is the minimal contract for receiving diagnostics from a phase.
type Reporter interface {
	Report(code Code, sev Severity, primary source.Span, msg string, rules []string, notes []Note)
}

// ReportDiagnostic forwards a complete Diagnostic to r. A nil r is a no-op.
func ReportDiagnostic(r Reporter, d Diagnostic) {
	if r == nil {
		return
	}
	r.Report(d.Code, d.Severity, d.Primary, d.Message, d.Rules, d.Notes)
}

// BagReporter writes into a *Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(code Code, sev Severity, primary source.Span, msg string, rules []string, notes []Note) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(Diagnostic{
		Severity: sev, Code: code, Message: msg,
		Primary: primary, Rules: rules, Notes: notes,
	})
}
