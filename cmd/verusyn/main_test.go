package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"verusyn/internal/diag"
	"verusyn/internal/diagfmt"
	"verusyn/internal/version"
)

var (
	basicFile    = filepath.Join("..", "..", "testdata", "verus", "basic.rs")
	reservedFile = filepath.Join("..", "..", "testdata", "errors", "reserved.rs")
	verusDir     = filepath.Join("..", "..", "testdata", "verus")
	testdataDir  = filepath.Join("..", "..", "testdata")
)

func runCLI(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = run(context.Background(), args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestSplitCommand(t *testing.T) {
	code, out, errOut := runCLI(t, "split", basicFile)
	if code != 0 {
		t.Fatalf("exit %d\n%s", code, errOut)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("split output:\n%s", out)
	}
	if !strings.HasSuffix(lines[1], "items=3 Fn:add Fn:lemma_pos Fn:count") {
		t.Errorf("block line = %q", lines[1])
	}
}

func TestParseCommandFormats(t *testing.T) {
	code, out, errOut := runCLI(t, "parse", "--format", "json", basicFile)
	if code != 0 {
		t.Fatalf("exit %d\n%s", code, errOut)
	}
	var file diagfmt.FileOutput
	if err := json.Unmarshal([]byte(out), &file); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(file.Segments) != 3 || file.Segments[1].Block == nil {
		t.Errorf("segments = %+v", file.Segments)
	}

	code, out, _ = runCLI(t, "parse", basicFile)
	if code != 0 || !strings.Contains(out, "item: Fn") {
		t.Errorf("tree output (exit %d):\n%s", code, out)
	}

	code, out, _ = runCLI(t, "parse", "--format", "yaml", "--tokens", basicFile)
	if code != 0 || !strings.Contains(out, "segments:") {
		t.Errorf("yaml output (exit %d):\n%s", code, out)
	}

	code, _, errOut = runCLI(t, "parse", "--format", "xml", basicFile)
	if code != 2 || !strings.Contains(errOut, "unknown format") {
		t.Errorf("bad format: exit %d, stderr %q", code, errOut)
	}
}

func TestParseCommandReportsErrors(t *testing.T) {
	code, out, errOut := runCLI(t, "--color", "off", "parse", reservedFile)
	if code != 1 {
		t.Fatalf("exit = %d, want 1", code)
	}
	if out != "" {
		t.Errorf("unexpected stdout:\n%s", out)
	}
	want := "reserved.rs:2:14: ERROR " + diag.SynReservedKeyword.ID()
	if !strings.Contains(errOut, want) {
		t.Errorf("stderr missing %q:\n%s", want, errOut)
	}
}

func TestTokenizeBlock(t *testing.T) {
	code, out, errOut := runCLI(t, "tokenize", "--format", "json", "--block", "0", basicFile)
	if code != 0 {
		t.Fatalf("exit %d\n%s", code, errOut)
	}
	var toks []diagfmt.TokenOutput
	if err := json.Unmarshal([]byte(out), &toks); err != nil {
		t.Fatal(err)
	}
	if len(toks) < 3 || toks[0].Text != "verus" || toks[len(toks)-1].Kind != "EOF" {
		t.Errorf("tokens: first %+v last %+v", toks[0], toks[len(toks)-1])
	}

	code, _, _ = runCLI(t, "tokenize", "--block", "5", basicFile)
	if code != 2 {
		t.Errorf("out-of-range block: exit %d, want 2", code)
	}
}

func TestCheckCommand(t *testing.T) {
	code, out, errOut := runCLI(t, "check", "--ui", "off", verusDir)
	if code != 0 {
		t.Fatalf("exit %d\n%s", code, errOut)
	}
	if !strings.Contains(out, "checked 2 files") || !strings.Contains(out, "0 failed") {
		t.Errorf("summary:\n%s", out)
	}

	code, out, errOut = runCLI(t, "check", "--format", "short", "--jobs", "2", testdataDir)
	if code != 1 {
		t.Fatalf("exit = %d, want 1\n%s", code, errOut)
	}
	if !strings.Contains(out, "checked 4 files") || !strings.Contains(out, "2 failed") {
		t.Errorf("summary:\n%s", out)
	}
	for _, want := range []string{diag.SynReservedKeyword.ID(), diag.SynUnterminatedVerusBlock.ID()} {
		if !strings.Contains(errOut, want) {
			t.Errorf("stderr missing %s:\n%s", want, errOut)
		}
	}

	code, _, _ = runCLI(t, "check", basicFile)
	if code != 2 {
		t.Errorf("check on a file: exit %d, want 2", code)
	}
}

func TestCheckCommandCache(t *testing.T) {
	cacheDir := t.TempDir()
	args := []string{"check", "--cache", "--cache-dir", cacheDir, verusDir}
	if code, _, errOut := runCLI(t, args...); code != 0 {
		t.Fatalf("first run: exit %d\n%s", code, errOut)
	}
	code, out, errOut := runCLI(t, args...)
	if code != 0 {
		t.Fatalf("second run: exit %d\n%s", code, errOut)
	}
	if !strings.Contains(out, "2 cached") {
		t.Errorf("second run summary:\n%s", out)
	}

	code, out, errOut = runCLI(t, append([]string{"check", "--clear-cache"}, args[1:]...)...)
	if code != 0 {
		t.Fatalf("cleared run: exit %d\n%s", code, errOut)
	}
	if !strings.Contains(out, "0 cached") {
		t.Errorf("cleared run summary:\n%s", out)
	}
}

func TestTimingsAndTrace(t *testing.T) {
	tracePath := filepath.Join(t.TempDir(), "trace.log")
	code, _, errOut := runCLI(t, "--timings", "--trace", tracePath, "split", basicFile)
	if code != 0 {
		t.Fatalf("exit %d\n%s", code, errOut)
	}
	if !strings.Contains(errOut, "timings:") || !strings.Contains(errOut, "partition") {
		t.Errorf("timings missing:\n%s", errOut)
	}
	data, err := os.ReadFile(tracePath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "file:") {
		t.Errorf("trace has no file span:\n%s", data)
	}

	code, _, errOut = runCLI(t, "--trace-level", "loud", "split", basicFile)
	if code != 2 || !strings.Contains(errOut, "invalid trace level") {
		t.Errorf("bad level: exit %d, stderr %q", code, errOut)
	}
}

func TestMemProfileFlag(t *testing.T) {
	memPath := filepath.Join(t.TempDir(), "mem.pprof")
	code, _, errOut := runCLI(t, "--mem-profile", memPath, "split", basicFile)
	if code != 0 {
		t.Fatalf("exit %d\n%s", code, errOut)
	}
	info, err := os.Stat(memPath)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Error("heap profile is empty")
	}
}

func TestVersionCommand(t *testing.T) {
	code, out, _ := runCLI(t, "version")
	if code != 0 || strings.TrimSpace(out) != version.String(false) {
		t.Errorf("version (exit %d) = %q", code, out)
	}
	code, out, _ = runCLI(t, "version", "--format", "json")
	var payload versionPayload
	if code != 0 || json.Unmarshal([]byte(out), &payload) != nil || payload.Tool != "verusyn" {
		t.Errorf("json version (exit %d) = %q", code, out)
	}
}

func TestReadUIMode(t *testing.T) {
	for in, want := range map[string]uiMode{"": uiModeAuto, "ON": uiModeOn, " off ": uiModeOff} {
		got, err := readUIMode(in)
		if err != nil || got != want {
			t.Errorf("readUIMode(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := readUIMode("sometimes"); err == nil {
		t.Error("expected an error")
	}
	if shouldUseTUI(uiModeAuto, &bytes.Buffer{}) {
		t.Error("a buffer is not a terminal")
	}
}
