package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"verusyn/internal/diag"
	"verusyn/internal/source"
)

type palette struct {
	err, warn, info, note, code, gutter, caret *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		note:   color.New(color.FgBlue, color.Bold),
		code:   color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgRed, color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.code, p.gutter, p.caret} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty renders each diagnostic of bag as
//
//	<path>:<line>:<col>: <SEV> <CODE>: <message>
//
// followed by the source line with a ^~~~ underline under the primary
// span, then the rule stack and notes when enabled. Callers sort the bag
// first if they want positional order.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, d, fs, opts, p)
	}
}

func prettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, p palette) {
	sev := p.severity(d.Severity).Sprint(d.Severity.String())
	if !hasFile(fs, d) {
		fmt.Fprintf(w, "%s %s: %s\n", sev, p.code.Sprint(d.Code.ID()), d.Message)
		return
	}
	file := fs.Get(d.Primary.File)
	start, end := fs.Resolve(d.Primary)
	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
		displayPath(file, opts.PathMode, opts.BaseDir), start.Line, start.Col,
		sev, p.code.Sprint(d.Code.ID()), d.Message)
	snippet(w, file, start, end, opts.Context, p)

	if opts.ShowRules && len(d.Rules) > 0 {
		fmt.Fprintf(w, "  %s in %s\n", p.gutter.Sprint("="), strings.Join(d.Rules, " > "))
	}
	if opts.ShowNotes {
		for _, n := range d.Notes {
			nf := fs.Get(n.Span.File)
			ns, _ := fs.Resolve(n.Span)
			fmt.Fprintf(w, "  %s %s %s:%d:%d: %s\n",
				p.gutter.Sprint("="), p.note.Sprint("note:"),
				displayPath(nf, opts.PathMode, opts.BaseDir), ns.Line, ns.Col, n.Msg)
		}
	}
}

// hasFile reports whether d points into a loaded file. Load failures
// carry no position.
func hasFile(fs *source.FileSet, d diag.Diagnostic) bool {
	return fs != nil && d.Code != diag.IOLoadFileError && int(d.Primary.File) < fs.Len()
}

func snippet(w io.Writer, file *source.File, start, end source.LineCol, context int, p palette) {
	first := start.Line
	if context > 0 {
		first = uint32(max(1, int(start.Line)-context))
	}
	gutterWidth := len(fmt.Sprint(start.Line))
	blank := strings.Repeat(" ", gutterWidth)

	fmt.Fprintf(w, "%s %s\n", blank, p.gutter.Sprint("|"))
	for ln := first; ln <= start.Line; ln++ {
		fmt.Fprintf(w, "%s %s %s\n", p.gutter.Sprintf("%*d", gutterWidth, ln), p.gutter.Sprint("|"), file.GetLine(ln))
	}

	line := file.GetLine(start.Line)
	from := min(int(start.Col)-1, len(line))
	to := len(line)
	if end.Line == start.Line {
		to = min(int(end.Col)-1, len(line))
	}
	fmt.Fprintf(w, "%s %s %s%s\n", blank, p.gutter.Sprint("|"), padTo(line[:from]), p.caret.Sprint(underline(line[from:max(from, to)])))
}

// padTo returns blank space occupying the same columns as prefix. Tabs
// stay tabs so the caret lines up under tabbed source.
func padTo(prefix string) string {
	var b strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			b.WriteByte('\t')
			continue
		}
		b.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return b.String()
}

// underline is ^ followed by ~ up to the display width of text.
func underline(text string) string {
	width := runewidth.StringWidth(text)
	if width <= 1 {
		return "^"
	}
	return "^" + strings.Repeat("~", width-1)
}
