package diagfmt

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"verusyn/internal/ast"
	"verusyn/internal/diag"
	"verusyn/internal/lexer"
	"verusyn/internal/partition"
	"verusyn/internal/source"
)

func virtual(src string) (*source.FileSet, *source.File) {
	fs := source.NewFileSet()
	return fs, fs.Get(fs.AddVirtual("input.rs", []byte(src)))
}

func spanDiag(file *source.File, start, end uint32) diag.Diagnostic {
	return diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.SynUnexpectedToken,
		Message:  "unexpected token",
		Primary:  source.Span{File: file.ID, Start: start, End: end},
		Rules:    []string{"item", "fn"},
		Notes:    []diag.Note{{Span: source.Span{File: file.ID, Start: 0, End: 1}, Msg: "started here"}},
	}
}

// caretLine returns the text after the gutter on the underline row.
func caretLine(t *testing.T, out string) string {
	t.Helper()
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "^") {
			_, after, _ := strings.Cut(line, "| ")
			return after
		}
	}
	t.Fatalf("no caret line in:\n%s", out)
	return ""
}

func TestPrettyUnderline(t *testing.T) {
	tests := []struct {
		name       string
		src        string
		start, end uint32
		want       string
	}{
		{"ascii", "let x = 1;", 4, 5, "    ^"},
		{"word", "let assert = 1;", 4, 10, "    ^~~~~~"},
		{"tab", "\tlet x = 1;", 5, 6, "\t    ^"},
		{"wide", "let 名前 = 1;", 4, 10, "    ^~~~"},
		{"empty span", "fn f(", 5, 5, "     ^"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs, file := virtual(tt.src)
			bag := diag.NewBag(10)
			bag.Add(spanDiag(file, tt.start, tt.end))
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{})
			if got := caretLine(t, buf.String()); got != tt.want {
				t.Errorf("caret line = %q, want %q\n%s", got, tt.want, buf.String())
			}
		})
	}
}

func TestPrettyFromSplit(t *testing.T) {
	fs, file := virtual("verus! { fn f() { let assert = 1; } }")
	bag := diag.NewBag(10)
	if _, err := partition.Split(file, partition.Options{Reporter: diag.BagReporter{Bag: bag}}); err == nil {
		t.Fatal("expected a syntax error")
	}
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{ShowRules: true, ShowNotes: true})
	out := buf.String()
	wantHeader := "input.rs:1:23: ERROR " + diag.SynReservedKeyword.ID() + ": "
	if !strings.HasPrefix(out, wantHeader) {
		t.Errorf("header:\n%s\nwant prefix %q", out, wantHeader)
	}
	if !strings.Contains(out, "1 | verus! { fn f() { let assert = 1; } }") {
		t.Errorf("missing source line:\n%s", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("unexpected escape codes:\n%q", out)
	}
}

func TestPrettyNotesRulesAndColor(t *testing.T) {
	fs, file := virtual("fn f(\n")
	bag := diag.NewBag(10)
	bag.Add(spanDiag(file, 3, 4))

	var plain bytes.Buffer
	Pretty(&plain, bag, fs, PrettyOpts{ShowNotes: true, ShowRules: true})
	for _, want := range []string{"= in item > fn", "= note: input.rs:1:1: started here"} {
		if !strings.Contains(plain.String(), want) {
			t.Errorf("missing %q in:\n%s", want, plain.String())
		}
	}

	var colored bytes.Buffer
	Pretty(&colored, bag, fs, PrettyOpts{Color: true})
	if !strings.Contains(colored.String(), "\x1b[") {
		t.Errorf("expected escape codes:\n%q", colored.String())
	}
	if strings.Contains(colored.String(), "note:") {
		t.Error("notes printed without ShowNotes")
	}
}

func TestPrettyContext(t *testing.T) {
	fs, file := virtual("a\nb\nc\nd\n")
	bag := diag.NewBag(10)
	bag.Add(spanDiag(file, 6, 7)) // "d"
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Context: 2})
	for _, want := range []string{"2 | b", "3 | c", "4 | d"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("missing %q in:\n%s", want, buf.String())
		}
	}
	if strings.Contains(buf.String(), "1 | a") {
		t.Errorf("too much context:\n%s", buf.String())
	}
}

func TestPrettyLoadFailure(t *testing.T) {
	bag := diag.NewBag(10)
	bag.Add(diag.Diagnostic{Severity: diag.SevError, Code: diag.IOLoadFileError, Message: "failed to load file: missing.rs"})
	var buf bytes.Buffer
	Pretty(&buf, bag, source.NewFileSet(), PrettyOpts{})
	want := "ERROR " + diag.IOLoadFileError.ID() + ": failed to load file: missing.rs\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestJSON(t *testing.T) {
	fs, file := virtual("x\nfn f(\n")
	bag := diag.NewBag(10)
	bag.Add(spanDiag(file, 5, 6))
	bag.Add(spanDiag(file, 2, 4))

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{IncludePositions: true, IncludeNotes: true, IncludeRules: true, Max: 1}); err != nil {
		t.Fatal(err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v\n%s", err, buf.String())
	}
	if out.Count != 1 || len(out.Diagnostics) != 1 {
		t.Fatalf("count = %d, want 1", out.Count)
	}
	d := out.Diagnostics[0]
	if d.Code != diag.SynUnexpectedToken.ID() || d.Severity != "ERROR" {
		t.Errorf("diagnostic = %+v", d)
	}
	if d.Location == nil || d.Location.StartLine != 2 || d.Location.StartCol != 4 || d.Location.File != "input.rs" {
		t.Errorf("location = %+v", d.Location)
	}
	if len(d.Notes) != 1 || len(d.Rules) != 2 {
		t.Errorf("notes = %v rules = %v", d.Notes, d.Rules)
	}

	out = BuildDiagnosticsOutput(bag, fs, JSONOpts{})
	if out.Count != 2 || out.Diagnostics[0].Location.StartLine != 0 || out.Diagnostics[0].Notes != nil {
		t.Errorf("plain output = %+v", out)
	}
}

func TestFormatTokens(t *testing.T) {
	fs, file := virtual("// c\nfn f() {}")
	toks, err := lexer.Tokenize(file, lexer.Options{})
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := FormatTokensPretty(&buf, toks, fs); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != len(toks) {
		t.Fatalf("got %d lines for %d tokens:\n%s", len(lines), len(toks), buf.String())
	}
	if !strings.Contains(lines[0], "at 2:1-2:3") || !strings.Contains(lines[0], "LineComment") {
		t.Errorf("first line = %q", lines[0])
	}
	if !strings.Contains(lines[len(lines)-1], "EOF") {
		t.Errorf("last line = %q", lines[len(lines)-1])
	}

	buf.Reset()
	if err := FormatTokensJSON(&buf, toks, fs); err != nil {
		t.Fatal(err)
	}
	var out []TokenOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if len(out) != len(toks) || out[0].Text != "fn" || len(out[0].Leading) != 2 || out[0].Leading[0].Text != "// c" {
		t.Errorf("json tokens = %+v", out)
	}
}

func splitFile(t *testing.T, src string) (*source.FileSet, *ast.SourceFile) {
	t.Helper()
	fs, file := virtual(src)
	sf, err := partition.Split(file, partition.Options{})
	if err != nil {
		t.Fatal(err)
	}
	return fs, sf
}

func TestFormatTreePretty(t *testing.T) {
	fs, sf := splitFile(t, "use a;\nverus! { fn f() {} }\n")
	var buf bytes.Buffer
	if err := FormatTreePretty(&buf, sf, fs, TreeOpts{Tokens: true}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"├─ ordinary 0-7 (7 bytes)", "├─ verus 7-27", "item: Fn", `name: Ident "f"`} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}

	buf.Reset()
	if err := FormatTreePretty(&buf, sf, fs, TreeOpts{}); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), `"f"`) {
		t.Errorf("tokens shown without Tokens:\n%s", buf.String())
	}
}

func TestTreeEncodings(t *testing.T) {
	fs, sf := splitFile(t, "verus! {\n// lead\nspec fn g() -> int { 1 }\n}")
	opts := TreeOpts{Tokens: true, Trivia: true, Positions: true}
	want := BuildTree(sf, fs, opts)

	var buf bytes.Buffer
	if err := FormatTreeYAML(&buf, sf, fs, opts); err != nil {
		t.Fatal(err)
	}
	var fromYAML FileOutput
	if err := yaml.Unmarshal(buf.Bytes(), &fromYAML); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(fromYAML, want) {
		t.Errorf("yaml dump differs:\n%s", buf.String())
	}

	buf.Reset()
	if err := FormatTreeMsgpack(&buf, sf, fs, opts); err != nil {
		t.Fatal(err)
	}
	var fromMsgpack FileOutput
	if err := msgpack.Unmarshal(buf.Bytes(), &fromMsgpack); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(fromMsgpack, want) {
		t.Error("msgpack dump differs")
	}

	buf.Reset()
	if err := FormatTreeJSON(&buf, sf, fs, opts); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"// lead"`) {
		t.Errorf("comment missing from json:\n%s", buf.String())
	}
}

func TestFormatSplit(t *testing.T) {
	fs, sf := splitFile(t, "use a;\nverus! {\nfn f() {}\nspec fn g() -> int { 1 }\n}\n")
	var buf bytes.Buffer
	if err := FormatSplit(&buf, sf, fs); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines:\n%s", buf.String())
	}
	if !strings.HasPrefix(lines[0], "0 ordinary 1:1-2:1") {
		t.Errorf("line 0 = %q", lines[0])
	}
	if !strings.HasSuffix(lines[1], "items=2 Fn:f Fn:g") {
		t.Errorf("line 1 = %q", lines[1])
	}
}
