package testkit

import (
	"path/filepath"
	"strings"
	"testing"

	"verusyn/internal/ast"
	"verusyn/internal/partition"
	"verusyn/internal/source"
	"verusyn/internal/token"
)

func TestInvariantsHoldForTestdata(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("..", "..", "testdata", "verus", "*.rs"))
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) == 0 {
		t.Skip("no testdata")
	}
	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			fs := source.NewFileSet()
			id, err := fs.Load(path)
			if err != nil {
				t.Fatal(err)
			}
			sf, err := partition.Split(fs.Get(id), partition.Options{})
			if err != nil {
				t.Fatalf("split: %v", err)
			}
			if err := CheckTreeInvariants(sf); err != nil {
				t.Error(err)
			}
		})
	}
}

func TestCheckSegmentsRejectsGaps(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("gap.rs", []byte("abcdef")))
	sf := &ast.SourceFile{
		File: file,
		Segments: []ast.Segment{
			{Kind: ast.OrdinaryCode, Range: source.Span{File: file.ID, Start: 0, End: 2}, Text: "ab"},
			{Kind: ast.OrdinaryCode, Range: source.Span{File: file.ID, Start: 3, End: 6}, Text: "def"},
		},
	}
	err := CheckSegments(sf)
	if err == nil || !strings.Contains(err.Error(), "starts at 3") {
		t.Errorf("err = %v", err)
	}
}

func TestCheckTreeInvariantsRejectsDisorder(t *testing.T) {
	src := []byte("verus! { a b }")
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("bad.rs", src))
	tree := ast.NewTree(file, 0)
	tok := func(start, end uint32) token.Token {
		return token.Token{Kind: token.Ident, Span: source.Span{File: file.ID, Start: start, End: end}, Text: string(src[start:end])}
	}
	// b before a: the node span still covers both, but the order is wrong.
	block := tree.Nodes.New(ast.KindVerusBlock, source.Span{File: file.ID, Start: 0, End: 14}, []ast.Child{
		ast.TokChild(ast.TagNone, tok(11, 12)),
		ast.TokChild(ast.TagNone, tok(9, 10)),
	})
	sf := &ast.SourceFile{
		File: file,
		Tree: tree,
		Segments: []ast.Segment{
			{Kind: ast.VerusBlock, Range: source.Span{File: file.ID, Start: 0, End: 14}, Block: block},
		},
	}
	err := CheckTreeInvariants(sf)
	if err == nil || !strings.Contains(err.Error(), "overlaps") {
		t.Errorf("err = %v", err)
	}
}
