package diag

import (
	"verusyn/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Rules    []string
	Notes    []Note
}

// Offset is the byte offset the diagnostic points at.
func (d Diagnostic) Offset() uint32 {
	return d.Primary.Start
}
