package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	for _, name := range []string{"off", "error", "phase", "detail", "debug", "PHASE"} {
		l, err := ParseLevel(name)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if !strings.EqualFold(l.String(), name) {
			t.Errorf("%s round-trips to %s", name, l)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Error("expected an error for an unknown level")
	}
}

func TestLevelFiltersScopes(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelPhase, ScopeFile, true},
		{LevelPhase, ScopePhase, false},
		{LevelDetail, ScopePhase, true},
		{LevelDetail, ScopeBlock, false},
		{LevelDebug, ScopeBlock, true},
		{LevelError, ScopeBlock, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Errorf("%s.ShouldEmit(%s) = %v, want %v", tt.level, tt.scope, got, tt.want)
		}
	}
}

func TestStreamTracerText(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatText)
	root := Begin(tr, ScopeFile, "file:a.rs", 0)
	child := Begin(tr, ScopePhase, "parse", root.ID())
	child.WithExtra("blocks", "2").End("")
	Begin(tr, ScopeBlock, "block", child.ID()).End("")
	root.End("ok")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "→ file:a.rs") {
		t.Errorf("line 0 = %q", lines[0])
	}
	if !strings.Contains(lines[2], "← parse") || !strings.Contains(lines[2], "{blocks=2}") {
		t.Errorf("line 2 = %q", lines[2])
	}
	if !strings.Contains(lines[3], "(ok)") {
		t.Errorf("line 3 = %q", lines[3])
	}
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatNDJSON)
	Point(tr, ScopeDriver, "start", "x", 0)
	var ev map[string]any
	if err := json.Unmarshal(buf.Bytes(), &ev); err != nil {
		t.Fatalf("unmarshal %q: %v", buf.String(), err)
	}
	if ev["kind"] != "point" || ev["name"] != "start" || ev["detail"] != "x" {
		t.Errorf("event = %v", ev)
	}
}

func TestRingTracerWraps(t *testing.T) {
	tr := NewRingTracer(3, LevelDebug)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		Point(tr, ScopeDriver, name, "", 0)
	}
	snap := tr.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("snapshot has %d events", len(snap))
	}
	for i, want := range []string{"c", "d", "e"} {
		if snap[i].Name != want {
			t.Errorf("event %d = %s, want %s", i, snap[i].Name, want)
		}
	}
}

func TestContextPropagation(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Error("empty context should yield Nop")
	}
	tr := NewRingTracer(4, LevelDebug)
	ctx := WithParent(WithTracer(context.Background(), tr), 7)
	if FromContext(ctx) != Tracer(tr) {
		t.Error("tracer lost")
	}
	if ParentSpan(ctx) != 7 {
		t.Errorf("parent = %d", ParentSpan(ctx))
	}
}

func TestInertSpan(t *testing.T) {
	s := Begin(Nop, ScopeDriver, "x", 0)
	if s.ID() != 0 {
		t.Error("inert span has an ID")
	}
	s.WithExtra("k", "v").End("")
}
