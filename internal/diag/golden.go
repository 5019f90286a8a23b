package diag

import (
	"fmt"
	"sort"
	"strings"

	"verusyn/internal/source"
)

type shortDiagnostic struct {
	Severity string
	Code     string
	Path     string
	Line     uint32
	Column   uint32
	Message  string
}

// FormatShortDiagnostics renders diagnostics one per line,
// "<severity> <CODE> <path>:<line>:<col> <message>", sorted deterministically.
// Notes follow as "note" lines when includeNotes is set. Tests use it as golden output.
func FormatShortDiagnostics(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil || len(diags) == 0 {
		return ""
	}
	rendered := make([]shortDiagnostic, 0, len(diags))
	for _, d := range diags {
		rendered = append(rendered, render(fs, d.Primary, severityLabel(d.Severity), d.Code, d.Message))
		if includeNotes {
			for _, n := range d.Notes {
				rendered = append(rendered, render(fs, n.Span, "note", d.Code, n.Msg))
			}
		}
	}
	sort.SliceStable(rendered, func(i, j int) bool {
		di, dj := rendered[i], rendered[j]
		if di.Path != dj.Path {
			return di.Path < dj.Path
		}
		if di.Line != dj.Line {
			return di.Line < dj.Line
		}
		return di.Column < dj.Column
	})
	lines := make([]string, 0, len(rendered))
	for _, r := range rendered {
		lines = append(lines, fmt.Sprintf("%s %s %s:%d:%d %s", r.Severity, r.Code, r.Path, r.Line, r.Column, r.Message))
	}
	return strings.Join(lines, "\n")
}

func render(fs *source.FileSet, sp source.Span, sev string, code Code, msg string) shortDiagnostic {
	d := shortDiagnostic{
		Severity: sev,
		Code:     code.ID(),
		Message:  sanitizeMessage(msg),
	}
	// Load failures have no file to point into.
	if code == IOLoadFileError || int(sp.File) >= fs.Len() {
		return d
	}
	start, _ := fs.Resolve(sp)
	d.Path = fs.Get(sp.File).Path
	d.Line, d.Column = start.Line, start.Col
	return d
}

func severityLabel(sev Severity) string {
	switch sev {
	case SevError:
		return "error"
	case SevWarning:
		return "warning"
	default:
		return "info"
	}
}

func sanitizeMessage(msg string) string {
	return strings.Join(strings.Fields(msg), " ")
}
