package lexer_test

import (
	"fmt"
	"strings"
	"testing"

	"verusyn/internal/diag"
	"verusyn/internal/lexer"
	"verusyn/internal/source"
	"verusyn/internal/token"
)

// testReporter collects every diagnostic the lexer emits.
type testReporter struct {
	diagnostics []diag.Diagnostic
}

func (r *testReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, rules []string, notes []diag.Note) {
	r.diagnostics = append(r.diagnostics, diag.Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Primary:  primary,
		Rules:    rules,
		Notes:    notes,
	})
}

func (r *testReporter) codes() []diag.Code {
	out := make([]diag.Code, 0, len(r.diagnostics))
	for _, d := range r.diagnostics {
		out = append(out, d.Code)
	}
	return out
}

func makeTestLexer(input string) (*lexer.Lexer, *testReporter) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.rs", []byte(input))
	rep := &testReporter{}
	return lexer.New(fs.Get(id), lexer.Options{Reporter: rep}), rep
}

func collectAllTokens(lx *lexer.Lexer) []token.Token {
	var toks []token.Token
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
	}
}

func tokensToString(toks []token.Token) string {
	parts := make([]string, len(toks))
	for i, tok := range toks {
		parts[i] = fmt.Sprintf("%v(%q)", tok.Kind, tok.Text)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// expectTokens compares kinds without the trailing EOF.
func expectTokens(t *testing.T, input string, expected ...token.Kind) []token.Token {
	t.Helper()
	lx, rep := makeTestLexer(input)
	toks := collectAllTokens(lx)
	toks = toks[:len(toks)-1]
	if len(toks) != len(expected) {
		t.Fatalf("expected %d tokens, got %d\ninput: %q\ntokens: %s\ndiags: %v",
			len(expected), len(toks), input, tokensToString(toks), rep.codes())
	}
	for i, tok := range toks {
		if tok.Kind != expected[i] {
			t.Errorf("token %d: expected %v, got %v (text %q)", i, expected[i], tok.Kind, tok.Text)
		}
	}
	return toks
}

func expectSingleToken(t *testing.T, input string, kind token.Kind, text string) {
	t.Helper()
	lx, rep := makeTestLexer(input)
	tok := lx.Next()
	if tok.Kind != kind {
		t.Errorf("%q: expected kind %v, got %v (diags %v)", input, kind, tok.Kind, rep.codes())
	}
	if tok.Text != text {
		t.Errorf("%q: expected text %q, got %q", input, text, tok.Text)
	}
}

func TestIdentifiersAndKeywords(t *testing.T) {
	tests := []struct {
		input string
		kind  token.Kind
	}{
		{"foo", token.Ident},
		{"_bar", token.Ident},
		{"assert", token.KwAssert},
		{"assert2", token.Ident},
		{"_assert", token.Ident},
		{"forall", token.KwForall},
		{"exists", token.KwExists},
		{"choose", token.KwChoose},
		{"self", token.KwSelfValue},
		{"Self", token.KwSelfType},
		{"requires", token.Ident},
		{"ghost", token.Ident},
		{"r#match", token.Ident},
		{"_", token.Underscore},
		{"résumé", token.Ident},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expectSingleToken(t, tt.input, tt.kind, tt.input)
		})
	}
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		input string
		kind  token.Kind
	}{
		{"0", token.IntLit},
		{"1_000", token.IntLit},
		{"0xFF", token.IntLit},
		{"0o17", token.IntLit},
		{"0b1010_u8", token.IntLit},
		{"42u64", token.IntLit},
		{"7int", token.IntLit},
		{"7nat", token.IntLit},
		{"3usize", token.IntLit},
		{"1.5", token.FloatLit},
		{"1e10", token.FloatLit},
		{"2.5E-3", token.FloatLit},
		{"1f32", token.FloatLit},
		{"1.0f64", token.FloatLit},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expectSingleToken(t, tt.input, tt.kind, tt.input)
		})
	}
}

func TestNumbers_InvalidSuffix(t *testing.T) {
	for _, input := range []string{"1u7", "1.0u8", "5foo"} {
		t.Run(input, func(t *testing.T) {
			lx, rep := makeTestLexer(input)
			tok := lx.Next()
			if tok.Kind != token.Invalid {
				t.Fatalf("expected Invalid, got %v", tok.Kind)
			}
			if lx.Err() == nil || lx.Err().Code != diag.LexBadNumberSuffix {
				t.Fatalf("expected LexBadNumberSuffix, got %v", lx.Err())
			}
			if len(rep.diagnostics) != 1 {
				t.Fatalf("expected 1 diagnostic, got %v", rep.codes())
			}
		})
	}
}

func TestNumbers_RangeAndMethod(t *testing.T) {
	expectTokens(t, "0..10", token.IntLit, token.DotDot, token.IntLit)
	expectTokens(t, "1.max(2)", token.IntLit, token.Dot, token.Ident, token.LParen, token.IntLit, token.RParen)
	expectTokens(t, "1.", token.FloatLit)
}

func TestTupleIndex(t *testing.T) {
	toks := expectTokens(t, "x.0.1", token.Ident, token.Dot, token.IntLit, token.Dot, token.IntLit)
	if toks[2].Text != "0" || toks[4].Text != "1" {
		t.Fatalf("unexpected tuple fields: %s", tokensToString(toks))
	}
}

func TestRawStrings(t *testing.T) {
	tests := []struct {
		input string
		kind  token.Kind
	}{
		{`r"abc"`, token.RawStringLit},
		{`r#"a"b"#`, token.RawStringLit},
		{`r##"a"#b"##`, token.RawStringLit},
		{`r##"a"###b"##`, token.RawStringLit},
		{`br#"x"#`, token.RawByteStrLit},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expectSingleToken(t, tt.input, tt.kind, tt.input)
		})
	}
}

func TestRawString_Unterminated(t *testing.T) {
	lx, _ := makeTestLexer(`r##"a"#`)
	tok := lx.Next()
	if tok.Kind != token.Invalid {
		t.Fatalf("expected Invalid, got %v", tok.Kind)
	}
	if err := lx.Err(); err == nil || err.Code != diag.LexRawStringDelimiter {
		t.Fatalf("expected LexRawStringDelimiter, got %v", err)
	}
}

func TestStringsAndChars(t *testing.T) {
	tests := []struct {
		input string
		kind  token.Kind
	}{
		{`"hello"`, token.StringLit},
		{`"a\"b"`, token.StringLit},
		{"\"multi\nline\"", token.StringLit},
		{`b"bytes"`, token.ByteStringLit},
		{`c"cstr"`, token.CStringLit},
		{`'a'`, token.CharLit},
		{`'\n'`, token.CharLit},
		{`'\''`, token.CharLit},
		{`'é'`, token.CharLit},
		{`b'x'`, token.ByteLit},
		{`'a`, token.Lifetime},
		{`'static`, token.Lifetime},
		{`'_`, token.Lifetime},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expectSingleToken(t, tt.input, tt.kind, tt.input)
		})
	}
}

func TestLifetimeInGenerics(t *testing.T) {
	expectTokens(t, "&'a T", token.Amp, token.Lifetime, token.Ident)
	expectTokens(t, "<'a, 'b>", token.Lt, token.Lifetime, token.Comma, token.Lifetime, token.Gt)
}

func TestUnterminatedString(t *testing.T) {
	lx, rep := makeTestLexer(`"abc`)
	tok := lx.Next()
	if tok.Kind != token.Invalid {
		t.Fatalf("expected Invalid, got %v", tok.Kind)
	}
	if len(rep.diagnostics) != 1 || rep.diagnostics[0].Code != diag.LexUnterminatedString {
		t.Fatalf("unexpected diagnostics %v", rep.codes())
	}
	if rep.diagnostics[0].Primary.Start != 0 {
		t.Fatalf("expected error at 0, got %d", rep.diagnostics[0].Primary.Start)
	}
}

func TestVerusOperators(t *testing.T) {
	tests := []struct {
		input string
		kind  token.Kind
	}{
		{"==>", token.Implies},
		{"<==", token.Explies},
		{"<==>", token.Iff},
		{"===", token.EqEqEq},
		{"!==", token.NeEq},
		{"=~=", token.ExtEq},
		{"=~~=", token.ExtDeepEq},
		{"&&&", token.AndAndAnd},
		{"|||", token.OrOrOr},
		{"..=", token.DotDotEq},
		{"::", token.PathSep},
		{"->", token.RArrow},
		{"=>", token.FatArrow},
		{">>=", token.ShrEq},
		{"@", token.At},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expectSingleToken(t, tt.input, tt.kind, tt.input)
		})
	}
}

func TestOperatorsMaximalMunch(t *testing.T) {
	expectTokens(t, "a<==>b", token.Ident, token.Iff, token.Ident)
	expectTokens(t, "a<=b", token.Ident, token.Le, token.Ident)
	expectTokens(t, "a==>b<==c", token.Ident, token.Implies, token.Ident, token.Explies, token.Ident)
	expectTokens(t, "x@", token.Ident, token.At)
}

func TestTrivia(t *testing.T) {
	lx, _ := makeTestLexer("// line\n/* block /* nested */ still */ /// doc\nfoo")
	tok := lx.Next()
	if tok.Kind != token.Ident || tok.Text != "foo" {
		t.Fatalf("expected foo, got %v %q", tok.Kind, tok.Text)
	}
	var kinds []token.TriviaKind
	for _, tv := range tok.Leading {
		kinds = append(kinds, tv.Kind)
	}
	want := []token.TriviaKind{
		token.TriviaLineComment, token.TriviaNewline,
		token.TriviaBlockComment, token.TriviaSpace,
		token.TriviaDocLine, token.TriviaNewline,
	}
	if len(kinds) != len(want) {
		t.Fatalf("expected trivia %v, got %v", want, kinds)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("trivia %d: expected %v, got %v", i, want[i], kinds[i])
		}
	}
	if tok.Leading[2].Text != "/* block /* nested */ still */" {
		t.Errorf("nested comment text %q", tok.Leading[2].Text)
	}
	if !tok.HasNewlineBefore() {
		t.Error("expected newline before foo")
	}
}

func TestUnterminatedBlockComment(t *testing.T) {
	lx, rep := makeTestLexer("a /* /* */")
	toks := collectAllTokens(lx)
	if toks[len(toks)-1].Kind != token.EOF {
		t.Fatal("expected EOF")
	}
	if len(rep.diagnostics) != 1 || rep.diagnostics[0].Code != diag.LexUnterminatedBlockComment {
		t.Fatalf("unexpected diagnostics %v", rep.codes())
	}
}

func TestUnknownChar(t *testing.T) {
	lx, rep := makeTestLexer("a ` b")
	toks := collectAllTokens(lx)
	if toks[1].Kind != token.Invalid {
		t.Fatalf("expected Invalid at 1, got %s", tokensToString(toks))
	}
	if len(rep.diagnostics) != 1 || rep.diagnostics[0].Code != diag.LexUnknownChar {
		t.Fatalf("unexpected diagnostics %v", rep.codes())
	}
	if rep.diagnostics[0].Rules[0] != "lexer" {
		t.Fatalf("expected lexer rule, got %v", rep.diagnostics[0].Rules)
	}
}

func TestSpansCoverSource(t *testing.T) {
	input := "fn f(x: u8) -> u8 { x + 1 } // end\n"
	lx, _ := makeTestLexer(input)
	var b strings.Builder
	for _, tok := range collectAllTokens(lx) {
		for _, tv := range tok.Leading {
			b.WriteString(tv.Text)
		}
		b.WriteString(tok.Text)
	}
	if b.String() != input {
		t.Fatalf("round trip mismatch:\n got %q\nwant %q", b.String(), input)
	}
}

func TestTokenize_StopsAtFirstError(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.rs", []byte(`let s = "open`))
	toks, err := lexer.Tokenize(fs.Get(id), lexer.Options{})
	if err == nil {
		t.Fatal("expected error")
	}
	if len(toks) != 3 {
		t.Fatalf("expected 3 tokens before the error, got %s", tokensToString(toks))
	}
	if !strings.Contains(err.Error(), "lexical error at byte 8") {
		t.Fatalf("unexpected error text %q", err.Error())
	}
}

func TestTokenizeRange(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("xx { a } yy")
	id := fs.AddVirtual("t.rs", content)
	toks, err := lexer.TokenizeRange(fs.Get(id), 3, 8, lexer.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if got := tokensToString(toks); !strings.HasPrefix(got, `['{'("{"), Ident("a"), '}'("}")`) {
		t.Fatalf("unexpected tokens %s", got)
	}
	if toks[1].Span.Start != 5 {
		t.Fatalf("expected file coordinates, got %d", toks[1].Span.Start)
	}
}

func TestBOMIsTrivia(t *testing.T) {
	lx, rep := makeTestLexer("\xEF\xBB\xBFfn")
	tok := lx.Next()
	if tok.Kind != token.KwFn || len(rep.diagnostics) != 0 {
		t.Fatalf("expected fn without diagnostics, got %v %v", tok.Kind, rep.codes())
	}
	if len(tok.Leading) != 1 || tok.Leading[0].Span.End != 3 {
		t.Fatalf("unexpected leading trivia %+v", tok.Leading)
	}
}
