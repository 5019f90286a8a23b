package fuzztests

import (
	"context"
	"errors"
	"testing"
	"time"

	"verusyn/internal/ast"
	"verusyn/internal/diag"
	"verusyn/internal/lexer"
	"verusyn/internal/parser"
	"verusyn/internal/partition"
	"verusyn/internal/source"
	"verusyn/internal/testkit"
)

// parseTimeout bounds a single input; exceeding it means a likely loop.
const parseTimeout = 5 * time.Second

type entry func(*parser.Parser) (ast.NodeID, error)

var entries = map[string]entry{
	"items":   (*parser.Parser).ParseItems,
	"expr":    (*parser.Parser).ParseExpr,
	"type":    (*parser.Parser).ParseType,
	"pattern": (*parser.Parser).ParsePattern,
	"block":   (*parser.Parser).ParseBlock,
}

func FuzzParserEntryPoints(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampSeed(input[:min(len(input), maxFuzzInput)])

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.rs", input))
		toks, err := lexer.Tokenize(file, lexer.Options{})
		if err != nil {
			return
		}
		for name, run := range entries {
			tree := ast.NewTree(file, uint(len(toks)))
			_, err := run(parser.New(tree, toks, parser.Options{MaxDepth: 128}))
			var de *diag.Error
			if err != nil && !errors.As(err, &de) {
				t.Fatalf("%s: error %T is not *diag.Error", name, err)
			}
		}
	})
}

// FuzzPartitionNoHang splits arbitrary input under a timeout and checks
// the structural invariants of every successful split.
func FuzzPartitionNoHang(f *testing.F) {
	addCorpusSeeds(f)
	f.Add([]byte("verus! { fn f() { { { { } } } } }"))
	f.Add([]byte("verus!{verus!{}}"))
	f.Add([]byte("verus! { } // verus! trailing\r\nrest"))

	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampSeed(input[:min(len(input), maxFuzzInput)])

		ctx, cancel := context.WithTimeout(context.Background(), parseTimeout)
		defer cancel()

		type outcome struct {
			sf  *ast.SourceFile
			err error
		}
		done := make(chan outcome, 1)
		go func() {
			fs := source.NewFileSet()
			file := fs.Get(fs.AddVirtual("fuzz.rs", input))
			sf, err := partition.Split(file, partition.Options{Parser: parser.Options{MaxDepth: 128}})
			done <- outcome{sf, err}
		}()

		select {
		case out := <-done:
			if out.err != nil {
				return
			}
			if got := out.sf.Reconstruct(); got != string(input) {
				t.Fatalf("reconstruct mismatch:\n got %q\nwant %q", got, input)
			}
			if err := testkit.CheckTreeInvariants(out.sf); err != nil {
				t.Fatal(err)
			}
		case <-ctx.Done():
			t.Fatalf("partition hang: took longer than %v on %d bytes", parseTimeout, len(input))
		}
	})
}
