package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"verusyn/internal/source"
	"verusyn/internal/token"
)

// SpanOutput is a byte range, with line and column when positions are
// requested.
type SpanOutput struct {
	Start     uint32 `json:"start" yaml:"start" msgpack:"start"`
	End       uint32 `json:"end" yaml:"end" msgpack:"end"`
	StartLine uint32 `json:"start_line,omitempty" yaml:"start_line,omitempty" msgpack:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty" yaml:"start_col,omitempty" msgpack:"start_col,omitempty"`
}

func makeSpan(sp source.Span, fs *source.FileSet, positions bool) SpanOutput {
	out := SpanOutput{Start: sp.Start, End: sp.End}
	if positions && fs != nil {
		start, _ := fs.Resolve(sp)
		out.StartLine, out.StartCol = start.Line, start.Col
	}
	return out
}

type TriviaOutput struct {
	Kind string `json:"kind"`
	Text string `json:"text,omitempty"`
}

type TokenOutput struct {
	Kind    string         `json:"kind"`
	Text    string         `json:"text,omitempty"`
	Span    SpanOutput     `json:"span"`
	Leading []TriviaOutput `json:"leading,omitempty"`
}

func leadingKinds(tok token.Token) []string {
	var out []string
	for _, tr := range tok.Leading {
		out = append(out, tr.Kind.String())
	}
	return out
}

// FormatTokensPretty prints one token per line with its position and the
// kinds of its leading trivia. Output stops after EOF.
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, tok := range tokens {
		start, end := fs.Resolve(tok.Span)
		var b strings.Builder
		fmt.Fprintf(&b, "%3d: %-15s", i+1, tok.Kind.String())
		if tok.Text != "" {
			fmt.Fprintf(&b, " %q", tok.Text)
		}
		fmt.Fprintf(&b, " at %d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
		if leading := leadingKinds(tok); len(leading) > 0 {
			fmt.Fprintf(&b, " (leading: %s)", strings.Join(leading, ", "))
		}
		b.WriteByte('\n')
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// FormatTokensJSON writes the tokens as a JSON array. Trivia text is
// included for comments only.
func FormatTokensJSON(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		out := TokenOutput{
			Kind: tok.Kind.String(),
			Text: tok.Text,
			Span: makeSpan(tok.Span, fs, true),
		}
		for _, tr := range tok.Leading {
			to := TriviaOutput{Kind: tr.Kind.String()}
			if tr.IsComment() {
				to.Text = tr.Text
			}
			out.Leading = append(out.Leading, to)
		}
		output = append(output, out)
		if tok.Kind == token.EOF {
			break
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}
