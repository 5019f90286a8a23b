package partition

import (
	"errors"
	"testing"

	"verusyn/internal/ast"
	"verusyn/internal/diag"
	"verusyn/internal/source"
)

func split(t *testing.T, src string) (*ast.SourceFile, error) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("input.rs", []byte(src)))
	return Split(file, Options{})
}

func mustSplit(t *testing.T, src string) *ast.SourceFile {
	t.Helper()
	sf, err := split(t, src)
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	return sf
}

func kinds(sf *ast.SourceFile) []ast.SegmentKind {
	out := make([]ast.SegmentKind, 0, len(sf.Segments))
	for _, s := range sf.Segments {
		out = append(out, s.Kind)
	}
	return out
}

func TestSplitRoundTrip(t *testing.T) {
	O, V := ast.OrdinaryCode, ast.VerusBlock
	tests := []struct {
		name  string
		input string
		want  []ast.SegmentKind
	}{
		{"empty", "", nil},
		{"ordinary only", "fn main() { println!(\"hi\"); }\n", []ast.SegmentKind{O}},
		{"block only", "verus! { fn f() {} }", []ast.SegmentKind{V}},
		{"block with prelude", "use vstd::prelude::*;\n\nverus! {\nspec fn one() -> int { 1 }\n} // verus!\n", []ast.SegmentKind{O, V, O}},
		{"two blocks", "verus!{ }\nfn x() {}\nverus!\n{ struct S; }", []ast.SegmentKind{V, O, V}},
		{"not followed by brace", "let v = verus!(x); verus! {}", []ast.SegmentKind{O, V}},
		{"crlf", "// a\r\nverus! {\r\n  fn f() {}\r\n}\r\n", []ast.SegmentKind{O, V, O}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sf := mustSplit(t, tt.input)
			if got := sf.Reconstruct(); got != tt.input {
				t.Errorf("reconstruct = %q, want %q", got, tt.input)
			}
			got := kinds(sf)
			if len(got) != len(tt.want) {
				t.Fatalf("segments = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("segment %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSplitAbsorbsCloseComment(t *testing.T) {
	src := "verus! {\n} // verus!\nfn after() {}\n"
	sf := mustSplit(t, src)
	if len(sf.Segments) != 2 {
		t.Fatalf("segments = %v", kinds(sf))
	}
	block := sf.Segments[0]
	if got := block.Range.Text(sf.File.Content); got != "verus! {\n} // verus!" {
		t.Errorf("block text = %q", got)
	}
	if sf.Segments[1].Text != "\nfn after() {}\n" {
		t.Errorf("ordinary text = %q", sf.Segments[1].Text)
	}

	// A comment on the next line stays in ordinary code.
	sf = mustSplit(t, "verus! {\n}\n// verus!\n")
	if got := sf.Segments[1].Text; got != "\n// verus!\n" {
		t.Errorf("ordinary text = %q", got)
	}
}

func TestSplitIsNotStringAware(t *testing.T) {
	sf := mustSplit(t, `let s = "verus! { }";`)
	if len(sf.Blocks()) != 1 {
		t.Fatalf("blocks = %d, want 1 (segments %v)", len(sf.Blocks()), kinds(sf))
	}
	if got := sf.Reconstruct(); got != `let s = "verus! { }";` {
		t.Errorf("reconstruct = %q", got)
	}
}

func TestSplitItems(t *testing.T) {
	src := `use vstd::prelude::*;
verus! {
fn f(x: int) -> (r: int) requires x > 0 ensures r > x { x + 1 }

spec fn g() -> int { 0 }
} // verus!
`
	sf := mustSplit(t, src)
	blocks := sf.Blocks()
	if len(blocks) != 1 {
		t.Fatalf("blocks = %d", len(blocks))
	}
	items := blocks[0].Items
	if len(items) != 2 {
		t.Fatalf("items = %d, want 2\n%s", len(items), sf.Tree.Sexpr(blocks[0].Block))
	}
	fn := items[0]
	if k := sf.Tree.Kind(fn); k != ast.KindFn {
		t.Fatalf("item kind = %v", k)
	}
	if got := sf.Tree.Name(fn); got != "f" {
		t.Errorf("name = %q", got)
	}
	for _, tag := range []ast.Tag{ast.TagRequires, ast.TagEnsures, ast.TagRet, ast.TagBody} {
		if !sf.Tree.ChildNode(fn, tag).IsValid() {
			t.Errorf("missing %s", tag)
		}
	}
	if k := sf.Tree.Kind(blocks[0].Block); k != ast.KindVerusBlock {
		t.Errorf("block kind = %v", k)
	}
}

func TestSplitIdempotent(t *testing.T) {
	src := "verus! {\nproof fn l(n: nat) ensures n >= 0 { }\n}\n"
	first := mustSplit(t, src)
	second := mustSplit(t, first.Reconstruct())
	a, b := first.Blocks(), second.Blocks()
	if len(a) != len(b) {
		t.Fatalf("block counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if !ast.Equal(first.Tree, a[i].Block, second.Tree, b[i].Block) {
			t.Errorf("block %d differs:\n%s\n%s", i, first.Tree.Sexpr(a[i].Block), second.Tree.Sexpr(b[i].Block))
		}
	}
}

func TestSplitErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		code   diag.Code
		offset uint32
	}{
		{"unterminated", "fn a() {}\nverus! {\nfn f() {\n", diag.SynUnterminatedVerusBlock, 10},
		{"lexical", "verus! { fn f() { let s = \"ab; } }", diag.LexUnterminatedString, 26},
		{"syntax", "verus! { fn f() { let assert = 1; } }", diag.SynReservedKeyword, 22},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := split(t, tt.input)
			var de *diag.Error
			if !errors.As(err, &de) {
				t.Fatalf("err = %v, want *diag.Error", err)
			}
			if de.Code != tt.code {
				t.Errorf("code = %v, want %v", de.Code, tt.code)
			}
			if de.Offset() != tt.offset {
				t.Errorf("offset = %d, want %d", de.Offset(), tt.offset)
			}
		})
	}
}

func TestSplitReportsToReporter(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("input.rs", []byte("verus! {")))
	bag := diag.NewBag(10)
	if _, err := Split(file, Options{Reporter: diag.BagReporter{Bag: bag}}); err == nil {
		t.Fatal("expected an error")
	}
	if bag.Len() != 1 || bag.Items()[0].Code != diag.SynUnterminatedVerusBlock {
		t.Errorf("bag = %+v", bag.Items())
	}
}
