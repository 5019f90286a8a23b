package ast

import (
	"strings"

	"verusyn/internal/source"
)

type SegmentKind uint8

const (
	// OrdinaryCode is text outside any verus! block, kept verbatim.
	OrdinaryCode SegmentKind = iota
	// VerusBlock is a parsed verus! { ... } invocation.
	VerusBlock
)

func (k SegmentKind) String() string {
	if k == VerusBlock {
		return "verus"
	}
	return "ordinary"
}

// Segment is one contiguous region of a source file.
type Segment struct {
	Kind  SegmentKind
	Range source.Span
	// Text is set for OrdinaryCode and holds the region verbatim.
	Text string
	// Block is the KindVerusBlock node for a VerusBlock segment.
	Block NodeID
	// Items are the root item nodes inside the block.
	Items []NodeID
}

// SourceFile is the ordered list of segments covering a file.
type SourceFile struct {
	File     *source.File
	Tree     *Tree
	Segments []Segment
}

// Blocks returns the verus block segments in order.
func (sf *SourceFile) Blocks() []Segment {
	var out []Segment
	for _, s := range sf.Segments {
		if s.Kind == VerusBlock {
			out = append(out, s)
		}
	}
	return out
}

// Reconstruct concatenates the text of every segment. For a successful
// split it equals the original content.
func (sf *SourceFile) Reconstruct() string {
	var b strings.Builder
	b.Grow(len(sf.File.Content))
	for _, s := range sf.Segments {
		if s.Kind == OrdinaryCode {
			b.WriteString(s.Text)
			continue
		}
		b.WriteString(s.Range.Text(sf.File.Content))
	}
	return b.String()
}
