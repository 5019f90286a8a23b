package version

import (
	"strings"
	"testing"
)

func withBuild(t *testing.T, v, commit, date string) {
	t.Helper()
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	t.Cleanup(func() { Version, GitCommit, BuildDate = origVersion, origCommit, origDate })
	Version, GitCommit, BuildDate = v, commit, date
}

func TestString(t *testing.T) {
	tests := []struct {
		name    string
		version string
		commit  string
		date    string
		want    string
	}{
		{"bare", "1.2.3", "", "", "verusyn 1.2.3"},
		{"commit", "1.2.3", "abc123def4567890", "", "verusyn 1.2.3 (abc123def456)"},
		{"full", "0.1.0-dev", "abc", "2024-01-15T10:30:00Z", "verusyn 0.1.0-dev (abc, 2024-01-15T10:30:00Z)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withBuild(t, tt.version, tt.commit, tt.date)
			if got := String(false); got != tt.want {
				t.Errorf("String(false) = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStringColored(t *testing.T) {
	withBuild(t, "0.1.0-dev", "", "")
	got := String(true)
	if !strings.Contains(got, "\x1b[") {
		t.Errorf("expected escape codes in %q", got)
	}
	if !strings.HasSuffix(got, "-dev") {
		t.Errorf("suffix lost: %q", got)
	}

	// Versions that are not major.minor.patch are printed as is.
	withBuild(t, "nightly", "", "")
	if got := String(true); got != "verusyn nightly" {
		t.Errorf("String(true) = %q", got)
	}
}
