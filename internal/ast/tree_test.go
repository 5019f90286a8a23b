package ast

import (
	"testing"

	"verusyn/internal/source"
	"verusyn/internal/token"
)

func testFile(content string) *source.File {
	fs := source.NewFileSet()
	return fs.Get(fs.AddVirtual("t.rs", []byte(content)))
}

func tok(kind token.Kind, text string, start uint32) token.Token {
	return token.Token{
		Kind: kind,
		Text: text,
		Span: source.Span{Start: start, End: start + uint32(len(text))},
	}
}

// buildSum builds (BinaryExpr a + b) over "a + b".
func buildSum(t *Tree) NodeID {
	a := t.NewNode(KindPathExpr, []Child{TokChild(TagNone, tok(token.Ident, "a", 0))}, source.Span{})
	b := t.NewNode(KindPathExpr, []Child{TokChild(TagNone, tok(token.Ident, "b", 4))}, source.Span{})
	return t.NewNode(KindBinaryExpr, []Child{
		NodeChild(TagLhs, a),
		TokChild(TagOp, tok(token.Plus, "+", 2)),
		NodeChild(TagRhs, b),
	}, source.Span{})
}

func TestArena_OneBased(t *testing.T) {
	a := NewArena[int](0)
	if a.Get(0) != nil {
		t.Fatal("index 0 must be nil")
	}
	id := a.Allocate(7)
	if id != 1 || *a.Get(id) != 7 || a.Len() != 1 {
		t.Fatalf("unexpected allocation id=%d len=%d", id, a.Len())
	}
	if a.Get(2) != nil {
		t.Fatal("out of range index must be nil")
	}
}

func TestTree_SpansAndChildren(t *testing.T) {
	tr := NewTree(testFile("a + b"), 0)
	sum := buildSum(tr)
	n := tr.Node(sum)
	if n.Span.Start != 0 || n.Span.End != 5 {
		t.Fatalf("unexpected span %v", n.Span)
	}
	if got := tr.Text(sum); got != "a + b" {
		t.Fatalf("unexpected text %q", got)
	}
	lhs := tr.ChildNode(sum, TagLhs)
	if tr.Text(lhs) != "a" {
		t.Fatalf("unexpected lhs %q", tr.Text(lhs))
	}
	op, ok := tr.Child(sum, TagOp)
	if !ok || op.Tok.Text != "+" {
		t.Fatal("missing operator child")
	}
	if got := tr.Sexpr(sum); got != "(BinaryExpr lhs=(PathExpr a) + rhs=(PathExpr b))" {
		t.Fatalf("unexpected sexpr %s", got)
	}
	if tr.Count(sum) != 3 {
		t.Fatalf("expected 3 nodes, got %d", tr.Count(sum))
	}
	if tr.Find(sum, KindPathExpr) != lhs {
		t.Fatal("Find should return the first path expression")
	}
}

func TestTree_EmptyNodeUsesFallback(t *testing.T) {
	tr := NewTree(testFile("x"), 0)
	id := tr.NewNode(KindArgList, nil, source.Span{Start: 3, End: 9})
	if sp := tr.Node(id).Span; sp.Start != 3 || sp.End != 3 {
		t.Fatalf("expected empty span at 3, got %v", sp)
	}
}

func TestEqual_IgnoresSpans(t *testing.T) {
	t1 := NewTree(testFile("a + b"), 0)
	t2 := NewTree(testFile("a + b"), 0)
	x, y := buildSum(t1), buildSum(t2)
	if !Equal(t1, x, t2, y) {
		t.Fatal("expected equal trees")
	}
	// shift every token; shape is unchanged
	n := t2.Node(t2.ChildNode(y, TagLhs))
	n.Children[0].Tok.Span.Start += 10
	if !Equal(t1, x, t2, y) {
		t.Fatal("spans must not affect equality")
	}
	n.Children[0].Tok.Text = "c"
	if Equal(t1, x, t2, y) {
		t.Fatal("different token text must differ")
	}
}

func TestName_NFC(t *testing.T) {
	tr := NewTree(testFile(""), 0)
	decomposed := "é"
	id := tr.NewNode(KindFn, []Child{TokChild(TagName, tok(token.Ident, decomposed, 0))}, source.Span{})
	if got := tr.Name(id); got != "é" {
		t.Fatalf("expected composed name, got %q", got)
	}
}

func TestSourceFile_Reconstruct(t *testing.T) {
	content := "fn a() {}\nverus! { fn b() {} }\n"
	f := testFile(content)
	sf := &SourceFile{File: f, Segments: []Segment{
		{Kind: OrdinaryCode, Text: content[:10], Range: source.Span{File: f.ID, Start: 0, End: 10}},
		{Kind: VerusBlock, Range: source.Span{File: f.ID, Start: 10, End: 30}},
		{Kind: OrdinaryCode, Text: content[30:], Range: source.Span{File: f.ID, Start: 30, End: 31}},
	}}
	if got := sf.Reconstruct(); got != content {
		t.Fatalf("reconstruct mismatch: %q", got)
	}
	if len(sf.Blocks()) != 1 {
		t.Fatalf("expected one block, got %d", len(sf.Blocks()))
	}
}
