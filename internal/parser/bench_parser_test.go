package parser_test

import (
	"bytes"
	"fmt"
	"testing"

	"verusyn/internal/ast"
	"verusyn/internal/lexer"
	"verusyn/internal/parser"
	"verusyn/internal/source"
)

func benchParse(b *testing.B, program []byte) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("bench.rs", program))
	toks, err := lexer.Tokenize(file, lexer.Options{})
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()

	for b.Loop() {
		tree := ast.NewTree(file, uint(len(toks)))
		if _, err := parser.New(tree, toks, parser.Options{}).ParseItems(); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParseShort(b *testing.B) {
	benchParse(b, []byte(`spec fn f(x: int) -> int { x + 1 }`))
}

func BenchmarkParseLarge(b *testing.B) {
	var buf bytes.Buffer
	for i := range 500 {
		fmt.Fprintf(&buf, "proof fn lemma_%d(n: nat)\n    requires n > %d,\n    ensures forall|i: int| 0 <= i < n ==> i < n,\n{\n    assert(n > 0);\n}\n", i, i)
	}
	benchParse(b, buf.Bytes())
}
