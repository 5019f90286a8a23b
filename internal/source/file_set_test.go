package source

import "testing"

func TestFileSet_KeepsContentVerbatim(t *testing.T) {
	fs := NewFileSet()
	raw := []byte("\xEF\xBB\xBFfn a() {}\r\nfn b() {}\r\n")
	id := fs.AddVirtual("crlf.rs", raw)
	f := fs.Get(id)
	if string(f.Content) != string(raw) {
		t.Fatalf("content was rewritten")
	}
	if f.Flags&FileHasBOM == 0 || f.Flags&FileHasCRLF == 0 || f.Flags&FileVirtual == 0 {
		t.Fatalf("flags = %b", f.Flags)
	}
	if got := f.GetLine(2); got != "fn b() {}" {
		t.Fatalf("GetLine(2) = %q", got)
	}
}

func TestFileSet_Resolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.rs", []byte("ab\ncd\n\nef"))
	cases := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{1, 1}},
		{2, LineCol{1, 3}},
		{3, LineCol{2, 1}},
		{7, LineCol{4, 1}},
		{8, LineCol{4, 2}},
	}
	for _, c := range cases {
		start, _ := fs.Resolve(Span{File: id, Start: c.off, End: c.off})
		if start != c.want {
			t.Errorf("offset %d: got %+v, want %+v", c.off, start, c.want)
		}
	}
	if latest, ok := fs.GetLatest("./a.rs"); !ok || latest != id {
		t.Fatalf("GetLatest = %d, %v", latest, ok)
	}
}
