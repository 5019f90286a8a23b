package token

import (
	"verusyn/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is a literal, including true and false.
func (t Token) IsLiteral() bool {
	return t.Kind.IsLiteral() || t.Kind == KwTrue || t.Kind == KwFalse
}

// IsKeyword reports whether the token is a reserved keyword.
func (t Token) IsKeyword() bool { return t.Kind.IsKeyword() }

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsWord reports whether the token is the identifier w. Used for Verus
// contextual words such as "requires" or "ghost".
func (t Token) IsWord(w string) bool { return t.Kind == Ident && t.Text == w }

// HasNewlineBefore reports whether leading trivia contains a line break.
func (t Token) HasNewlineBefore() bool {
	for _, tv := range t.Leading {
		if tv.Kind == TriviaNewline {
			return true
		}
	}
	return false
}
