package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestFindManifestWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ManifestName), "")
	file := filepath.Join(root, "src", "nested", "lib.rs")
	writeFile(t, file, "verus! {}")

	for _, start := range []string{file, filepath.Dir(file), root} {
		got, ok, err := FindManifest(start)
		if err != nil || !ok {
			t.Fatalf("FindManifest(%s) = %v, %v", start, ok, err)
		}
		if got != filepath.Join(root, ManifestName) {
			t.Errorf("FindManifest(%s) = %s", start, got)
		}
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, ManifestName)
	writeFile(t, path, `
[parse]
max_depth = 64

[cache]
enabled = true

[check]
exclude = ["gen/**"]
jobs = 4
`)
	m, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if m.Parse.MaxDepth != 64 {
		t.Errorf("max_depth = %d", m.Parse.MaxDepth)
	}
	if !m.Parse.Memoize || m.Parse.MaxDiagnostics != DefaultMaxDiagnostics {
		t.Errorf("defaults lost: %+v", m.Parse)
	}
	if !m.Cache.Enabled || m.Cache.Dir != filepath.Join(root, DefaultCacheDir) {
		t.Errorf("cache = %+v", m.Cache)
	}
	if m.Check.Jobs != 4 || len(m.Check.Exclude) != 1 || m.Check.Exclude[0] != "gen/**" {
		t.Errorf("check = %+v", m.Check)
	}
	if m.Root != root {
		t.Errorf("root = %s", m.Root)
	}
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"unknown key", "[parse]\nmax_dept = 3\n", "unknown keys"},
		{"negative depth", "[parse]\nmax_depth = -1\n", "max_depth"},
		{"bad toml", "[parse\n", "failed to parse TOML"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ManifestName)
			writeFile(t, path, tt.content)
			_, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestDiscoverWithoutManifest(t *testing.T) {
	m, ok, err := Discover(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Skip("a verusyn.toml exists above the temp dir")
	}
	if m.Parse.MaxDepth != DefaultMaxDepth {
		t.Errorf("max_depth = %d", m.Parse.MaxDepth)
	}
}

func TestCombineDependsOnParts(t *testing.T) {
	var base Digest
	a := Combine(base, []byte("depth=1"))
	b := Combine(base, []byte("depth=2"))
	if a == b {
		t.Error("different parts hash the same")
	}
	if a != Combine(base, []byte("depth=1")) {
		t.Error("hash not deterministic")
	}
}
