package diag

import (
	"fmt"
	"strings"
)

// Error is a failed lex or parse. It carries the full diagnostic.
type Error struct {
	Diagnostic
}

// NewError wraps d as an error value.
func NewError(d Diagnostic) *Error {
	return &Error{Diagnostic: d}
}

func (e *Error) Error() string {
	var b strings.Builder
	kind := "syntax error"
	if e.Code.IsLexical() {
		kind = "lexical error"
	}
	fmt.Fprintf(&b, "%s at byte %d: %s", kind, e.Primary.Start, e.Message)
	if len(e.Rules) > 0 {
		fmt.Fprintf(&b, " (in %s)", strings.Join(e.Rules, " > "))
	}
	return b.String()
}

// IsLexical reports whether the error came from the lexer.
func (e *Error) IsLexical() bool { return e.Code.IsLexical() }
