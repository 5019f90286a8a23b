package observ

import (
	"strings"
	"sync"
	"testing"
	"time"
)

func TestTimerAccumulates(t *testing.T) {
	timer := NewTimer()
	var wg sync.WaitGroup
	for range 8 {
		wg.Go(func() {
			timer.Add("parse", time.Millisecond)
			timer.Add("lex", 2*time.Millisecond)
		})
	}
	wg.Wait()
	timer.Note("parse", "8 files")

	phases := timer.Phases()
	if len(phases) != 2 {
		t.Fatalf("phases = %d, want 2", len(phases))
	}
	byName := map[string]Phase{}
	for _, p := range phases {
		byName[p.Name] = p
	}
	if p := byName["parse"]; p.Count != 8 || p.Dur != 8*time.Millisecond || p.Note != "8 files" {
		t.Errorf("parse = %+v", p)
	}
	report := timer.Report()
	if report.TotalMS != 24 {
		t.Errorf("total = %v ms, want 24", report.TotalMS)
	}
	if s := timer.Summary(); !strings.Contains(s, "// 8 files") || !strings.Contains(s, "total") {
		t.Errorf("summary:\n%s", s)
	}
}

func TestNilTimer(t *testing.T) {
	var timer *Timer
	timer.Add("x", time.Second)
	timer.Track("y")()
	if len(timer.Phases()) != 0 {
		t.Error("nil timer recorded phases")
	}
}
