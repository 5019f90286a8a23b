package fuzztests

import (
	"testing"

	"verusyn/internal/diag"
	"verusyn/internal/lexer"
	"verusyn/internal/source"
	"verusyn/internal/token"
)

const maxFuzzInput = 1 << 16

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampSeed(input[:min(len(input), maxFuzzInput)])

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.rs", input))
		lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: diag.NewBag(64)}})

		var prevEnd uint32
		for {
			tok := lx.Next()
			if err := lx.Err(); err != nil {
				if !err.IsLexical() {
					t.Fatalf("lexer returned non-lexical error %v", err)
				}
				return
			}
			if tok.Span.Start < prevEnd || int(tok.Span.End) > len(input) {
				t.Fatalf("token %v %v out of order (previous end %d)", tok.Kind, tok.Span, prevEnd)
			}
			prevEnd = tok.Span.End
			if tok.Kind == token.EOF {
				return
			}
		}
	})
}
