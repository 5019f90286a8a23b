package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"verusyn/internal/ast"
	"verusyn/internal/source"
)

// NodeOutput is one element of a dumped syntax tree: a node with
// children, or a token leaf with Text.
type NodeOutput struct {
	Kind     string       `json:"kind" yaml:"kind" msgpack:"kind"`
	Tag      string       `json:"tag,omitempty" yaml:"tag,omitempty" msgpack:"tag,omitempty"`
	Span     SpanOutput   `json:"span" yaml:"span" msgpack:"span"`
	Text     string       `json:"text,omitempty" yaml:"text,omitempty" msgpack:"text,omitempty"`
	Comments []string     `json:"comments,omitempty" yaml:"comments,omitempty" msgpack:"comments,omitempty"`
	Children []NodeOutput `json:"children,omitempty" yaml:"children,omitempty" msgpack:"children,omitempty"`
}

type SegmentOutput struct {
	Kind  string      `json:"kind" yaml:"kind" msgpack:"kind"`
	Span  SpanOutput  `json:"span" yaml:"span" msgpack:"span"`
	Text  string      `json:"text,omitempty" yaml:"text,omitempty" msgpack:"text,omitempty"`
	Block *NodeOutput `json:"block,omitempty" yaml:"block,omitempty" msgpack:"block,omitempty"`
}

// FileOutput is the root of a tree dump.
type FileOutput struct {
	Path     string          `json:"path" yaml:"path" msgpack:"path"`
	Segments []SegmentOutput `json:"segments" yaml:"segments" msgpack:"segments"`
}

// BuildTree converts a partitioned file into its dump form. fs may be nil
// when positions are not requested.
func BuildTree(sf *ast.SourceFile, fs *source.FileSet, opts TreeOpts) FileOutput {
	out := FileOutput{Path: sf.File.Path, Segments: make([]SegmentOutput, 0, len(sf.Segments))}
	for _, seg := range sf.Segments {
		so := SegmentOutput{Kind: seg.Kind.String(), Span: makeSpan(seg.Range, fs, opts.Positions)}
		if seg.Kind == ast.OrdinaryCode {
			so.Text = seg.Text
		} else {
			node := buildNode(sf.Tree, seg.Block, ast.TagNone, fs, opts)
			so.Block = &node
		}
		out.Segments = append(out.Segments, so)
	}
	return out
}

func buildNode(tree *ast.Tree, id ast.NodeID, tag ast.Tag, fs *source.FileSet, opts TreeOpts) NodeOutput {
	n := tree.Node(id)
	out := NodeOutput{Kind: n.Kind.String(), Tag: tag.String(), Span: makeSpan(n.Span, fs, opts.Positions)}
	for _, c := range n.Children {
		if c.IsNode() {
			out.Children = append(out.Children, buildNode(tree, c.Node, c.Tag, fs, opts))
			continue
		}
		if !opts.Tokens {
			continue
		}
		leaf := NodeOutput{
			Kind: c.Tok.Kind.String(),
			Tag:  c.Tag.String(),
			Span: makeSpan(c.Tok.Span, fs, opts.Positions),
			Text: c.Tok.Text,
		}
		if opts.Trivia {
			for _, tr := range c.Tok.Leading {
				if tr.IsComment() {
					leaf.Comments = append(leaf.Comments, tr.Text)
				}
			}
		}
		out.Children = append(out.Children, leaf)
	}
	return out
}

// FormatTreePretty prints the dump as an indented tree:
//
//	VerusBlock 0-40
//	└─ item: Fn 9-38
//	   ├─ name: Ident "f" 12-13
func FormatTreePretty(w io.Writer, sf *ast.SourceFile, fs *source.FileSet, opts TreeOpts) error {
	var b strings.Builder
	file := BuildTree(sf, fs, opts)
	fmt.Fprintf(&b, "%s\n", file.Path)
	for i, seg := range file.Segments {
		last := i == len(file.Segments)-1
		branch, prefix := branches(last)
		if seg.Block == nil {
			fmt.Fprintf(&b, "%s %s %s (%d bytes)\n", branch, seg.Kind, formatSpanOutput(seg.Span), seg.Span.End-seg.Span.Start)
			continue
		}
		fmt.Fprintf(&b, "%s %s %s\n", branch, seg.Kind, formatSpanOutput(seg.Span))
		writeNode(&b, *seg.Block, prefix, true)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func branches(last bool) (branch, prefix string) {
	if last {
		return "└─", "   "
	}
	return "├─", "│  "
}

func writeNode(b *strings.Builder, n NodeOutput, prefix string, last bool) {
	branch, next := branches(last)
	b.WriteString(prefix)
	b.WriteString(branch)
	b.WriteByte(' ')
	if n.Tag != "" {
		b.WriteString(n.Tag)
		b.WriteString(": ")
	}
	b.WriteString(n.Kind)
	if n.Text != "" {
		fmt.Fprintf(b, " %q", n.Text)
	}
	b.WriteByte(' ')
	b.WriteString(formatSpanOutput(n.Span))
	for _, c := range n.Comments {
		fmt.Fprintf(b, " %q", c)
	}
	b.WriteByte('\n')
	for i, c := range n.Children {
		writeNode(b, c, prefix+next, i == len(n.Children)-1)
	}
}

func formatSpanOutput(sp SpanOutput) string {
	if sp.StartLine != 0 {
		return fmt.Sprintf("%d:%d [%d-%d]", sp.StartLine, sp.StartCol, sp.Start, sp.End)
	}
	return fmt.Sprintf("%d-%d", sp.Start, sp.End)
}

func FormatTreeJSON(w io.Writer, sf *ast.SourceFile, fs *source.FileSet, opts TreeOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildTree(sf, fs, opts))
}

func FormatTreeYAML(w io.Writer, sf *ast.SourceFile, fs *source.FileSet, opts TreeOpts) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(BuildTree(sf, fs, opts)); err != nil {
		return err
	}
	return enc.Close()
}

// FormatTreeMsgpack writes the dump in binary msgpack form, for tools
// that consume trees in bulk.
func FormatTreeMsgpack(w io.Writer, sf *ast.SourceFile, fs *source.FileSet, opts TreeOpts) error {
	return msgpack.NewEncoder(w).Encode(BuildTree(sf, fs, opts))
}

// FormatSplit prints one line per segment: its kind, byte range and,
// for verus blocks, the kind and name of every item.
func FormatSplit(w io.Writer, sf *ast.SourceFile, fs *source.FileSet) error {
	var b strings.Builder
	for i, seg := range sf.Segments {
		start, end := fs.Resolve(seg.Range)
		fmt.Fprintf(&b, "%d %-8s %d:%d-%d:%d", i, seg.Kind, start.Line, start.Col, end.Line, end.Col)
		if seg.Kind == ast.VerusBlock {
			fmt.Fprintf(&b, " items=%d", len(seg.Items))
			for _, item := range seg.Items {
				b.WriteString(" ")
				b.WriteString(sf.Tree.Kind(item).String())
				if name := sf.Tree.Name(item); name != "" {
					b.WriteString(":")
					b.WriteString(name)
				}
			}
		}
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}
