package driver

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"verusyn/internal/diag"
	"verusyn/internal/observ"
	"verusyn/internal/token"
	"verusyn/internal/trace"
)

const goodFile = `use vstd::prelude::*;

verus! {
spec fn double(x: int) -> int { x * 2 }

proof fn lemma(x: int)
    ensures double(x) == x + x,
{
}
} // verus!

fn main() {}
`

const badFile = `verus! {
fn broken() { let assert = 1; }
}
`

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func TestParse(t *testing.T) {
	root := writeTree(t, map[string]string{"good.rs": goodFile, "bad.rs": badFile})

	res, err := Parse(context.Background(), filepath.Join(root, "good.rs"), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !res.OK() || res.Bag.Len() != 0 {
		t.Fatalf("good file failed: %v %v", res.Err, res.Bag.Items())
	}
	if blocks, items := res.Counts(); blocks != 1 || items != 2 {
		t.Errorf("counts = %d blocks, %d items", blocks, items)
	}
	if res.Source.Reconstruct() != goodFile {
		t.Error("reconstruction differs from input")
	}

	res, err = Parse(context.Background(), filepath.Join(root, "bad.rs"), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if res.OK() || res.Err.Code != diag.SynReservedKeyword {
		t.Fatalf("bad file: err = %v", res.Err)
	}
	if !res.Bag.HasErrors() {
		t.Error("bag has no errors")
	}

	if _, err := Parse(context.Background(), filepath.Join(root, "missing.rs"), Options{}); err == nil {
		t.Error("missing file: expected an error")
	}
}

func TestParseTracesAndTimes(t *testing.T) {
	root := writeTree(t, map[string]string{"good.rs": goodFile})
	var buf bytes.Buffer
	ctx := trace.WithTracer(context.Background(), trace.NewStreamTracer(&buf, trace.LevelDebug, trace.FormatText))
	timer := observ.NewTimer()
	if _, err := Parse(ctx, filepath.Join(root, "good.rs"), Options{Timer: timer}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"→ file:", "← partition", "{blocks=1}", "• block"} {
		if !strings.Contains(out, want) {
			t.Errorf("trace missing %q:\n%s", want, out)
		}
	}
	names := map[string]bool{}
	for _, p := range timer.Phases() {
		names[p.Name] = true
	}
	for _, want := range []string{"partition", "lex", "parse"} {
		if !names[want] {
			t.Errorf("timer missing phase %q", want)
		}
	}
}

func TestTokenize(t *testing.T) {
	root := writeTree(t, map[string]string{"good.rs": goodFile})
	path := filepath.Join(root, "good.rs")

	whole, err := Tokenize(context.Background(), path, -1, Options{})
	if err != nil || whole.Err != nil {
		t.Fatalf("whole file: %v %v", err, whole.Err)
	}
	block, err := Tokenize(context.Background(), path, 0, Options{})
	if err != nil || block.Err != nil {
		t.Fatalf("block: %v %v", err, block.Err)
	}
	if len(block.Tokens) >= len(whole.Tokens) {
		t.Errorf("block has %d tokens, whole file %d", len(block.Tokens), len(whole.Tokens))
	}
	if first := block.Tokens[0]; first.Kind != token.Ident || first.Text != "verus" {
		t.Errorf("first block token = %v %q", first.Kind, first.Text)
	}
	if last := block.Tokens[len(block.Tokens)-1]; last.Kind != token.EOF {
		t.Errorf("last token = %v", last.Kind)
	}
	if _, err := Tokenize(context.Background(), path, 3, Options{}); err == nil {
		t.Error("out-of-range block: expected an error")
	}
}

func TestCheckDir(t *testing.T) {
	root := writeTree(t, map[string]string{
		"src/good.rs":        goodFile,
		"src/nested/bad.rs":  badFile,
		"target/gen.rs":      badFile,
		"README.md":          "verus! {",
		".hidden/skipped.rs": badFile,
	})
	events := make(chan Event, 64)
	fs, results, err := CheckDir(context.Background(), root, Options{
		Jobs:    2,
		Exclude: []string{"target/**"},
		Events:  events,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("checked %d files, want 2: %+v", len(results), results)
	}
	blocks, items, failed := Totals(results)
	if blocks != 1 || items != 2 || failed != 1 {
		t.Errorf("totals = %d blocks, %d items, %d failed", blocks, items, failed)
	}
	for _, r := range results {
		if strings.HasSuffix(r.Path, "bad.rs") {
			if !r.Failed {
				t.Errorf("%s not marked failed", r.Path)
			}
			if got := diag.FormatShortDiagnostics(r.Bag.Items(), fs, false); !strings.Contains(got, "SYN2004") {
				t.Errorf("diagnostics = %q", got)
			}
		}
	}

	var seen []Event
	for ev := range events {
		seen = append(seen, ev)
	}
	if len(seen) == 0 || seen[len(seen)-1].Stage != StageParse {
		t.Errorf("events = %+v", seen)
	}
}

func TestCheckDirUsesCache(t *testing.T) {
	root := writeTree(t, map[string]string{"a.rs": goodFile, "b.rs": badFile})
	cache, err := OpenDiskCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	opts := Options{Cache: cache}

	_, first, err := CheckDir(context.Background(), root, opts)
	if err != nil {
		t.Fatal(err)
	}
	_, second, err := CheckDir(context.Background(), root, opts)
	if err != nil {
		t.Fatal(err)
	}
	for i := range second {
		if !second[i].Cached {
			t.Errorf("%s: not served from cache", second[i].Path)
		}
		if second[i].Failed != first[i].Failed || second[i].Items != first[i].Items {
			t.Errorf("%s: cached %+v, fresh %+v", second[i].Path, second[i], first[i])
		}
		if second[i].Bag.Len() != first[i].Bag.Len() {
			t.Errorf("%s: %d cached diagnostics, %d fresh", second[i].Path, second[i].Bag.Len(), first[i].Bag.Len())
		}
	}

	// A different depth limit is a different key.
	_, third, err := CheckDir(context.Background(), root, Options{Cache: cache, MaxDepth: 7})
	if err != nil {
		t.Fatal(err)
	}
	if third[0].Cached {
		t.Error("changed options hit the cache")
	}

	if err := cache.DropAll(); err != nil {
		t.Fatal(err)
	}
	_, fourth, err := CheckDir(context.Background(), root, opts)
	if err != nil {
		t.Fatal(err)
	}
	if fourth[0].Cached {
		t.Error("cache survived DropAll")
	}
}

func TestCheckDirCancelled(t *testing.T) {
	root := writeTree(t, map[string]string{"a.rs": goodFile})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := CheckDir(ctx, root, Options{}); err == nil {
		t.Error("expected cancellation error")
	}
}

func TestMatchGlob(t *testing.T) {
	tests := []struct {
		pattern, name string
		want          bool
	}{
		{"**/*.rs", "lib.rs", true},
		{"**/*.rs", "src/a/b.rs", true},
		{"**/*.rs", "src/a/b.md", false},
		{"src/*.rs", "src/a.rs", true},
		{"src/*.rs", "src/x/a.rs", false},
		{"target/**", "target/debug/x.rs", true},
		{"target/**", "target", true},
		{"src/**/gen_*.rs", "src/gen_a.rs", true},
		{"src/**/gen_*.rs", "src/a/b/gen_a.rs", true},
		{"[", "x", false},
	}
	for _, tt := range tests {
		if got := MatchGlob(tt.pattern, tt.name); got != tt.want {
			t.Errorf("MatchGlob(%q, %q) = %v, want %v", tt.pattern, tt.name, got, tt.want)
		}
	}
}

func TestListFilesRejectsBadGlob(t *testing.T) {
	root := writeTree(t, map[string]string{"a.rs": goodFile})
	if _, err := ListFiles(root, []string{"src/[.rs"}, nil); err == nil {
		t.Error("bad include: expected an error")
	}
	if _, err := ListFiles(root, nil, []string{"{a,"}); err == nil {
		t.Error("bad exclude: expected an error")
	}
	files, err := ListFiles(root, nil, nil)
	if err != nil || len(files) != 1 {
		t.Errorf("files = %v, %v", files, err)
	}
}
