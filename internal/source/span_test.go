package source

import "testing"

func TestSpan_Cover(t *testing.T) {
	tests := []struct {
		name string
		a, b Span
		want Span
	}{
		{"disjoint", Span{Start: 2, End: 4}, Span{Start: 8, End: 9}, Span{Start: 2, End: 9}},
		{"nested", Span{Start: 0, End: 10}, Span{Start: 3, End: 4}, Span{Start: 0, End: 10}},
		{"other file is ignored", Span{File: 1, Start: 2, End: 4}, Span{File: 2, Start: 0, End: 9}, Span{File: 1, Start: 2, End: 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Cover(tt.b); got != tt.want {
				t.Fatalf("Cover = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSpan_ContainsAndText(t *testing.T) {
	outer := Span{Start: 0, End: 5}
	if !outer.Contains(Span{Start: 1, End: 5}) {
		t.Fatalf("expected containment")
	}
	if outer.Contains(Span{Start: 1, End: 6}) {
		t.Fatalf("unexpected containment")
	}
	if got := (Span{Start: 1, End: 3}).Text([]byte("hello")); got != "el" {
		t.Fatalf("Text = %q", got)
	}
	if got := (Span{Start: 1, End: 30}).Text([]byte("hello")); got != "" {
		t.Fatalf("out of range Text = %q", got)
	}
}
