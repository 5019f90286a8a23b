package token

import (
	"testing"
)

func TestLookupKeyword_Positive(t *testing.T) {
	cases := map[string]Kind{
		"fn":     KwFn,
		"assert": KwAssert,
		"assume": KwAssume,
		"forall": KwForall,
		"exists": KwExists,
		"choose": KwChoose,
		"self":   KwSelfValue,
		"Self":   KwSelfType,
		"where":  KwWhere,
	}
	for lexeme, want := range cases {
		got, ok := LookupKeyword(lexeme)
		if !ok {
			t.Fatalf("LookupKeyword(%q) = !ok, want %v", lexeme, want)
		}
		if got != want {
			t.Fatalf("LookupKeyword(%q) = %v, want %v", lexeme, got, want)
		}
		if KeywordText(got) != lexeme {
			t.Fatalf("KeywordText(%v) = %q", got, KeywordText(got))
		}
	}
}

func TestLookupKeyword_Negative(t *testing.T) {
	// contextual words stay identifiers
	notKw := []string{
		"requires", "ensures", "spec", "proof", "ghost", "tracked", "open",
		"union", "default", "macro_rules", "assert2", "_assert", "Fn", "int", "nat",
	}
	for _, s := range notKw {
		if _, ok := LookupKeyword(s); ok {
			t.Fatalf("LookupKeyword(%q) returned ok=true, want false", s)
		}
	}
}
