// Package testkit holds structural checks shared by tests and fuzz
// harnesses.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"verusyn/internal/ast"
)

// CheckSegments verifies that the segments of sf tile its file:
// 1) every segment lies in sf.File and is non-empty
// 2) segments are contiguous, starting at 0 and ending at the content length
// 3) ordinary segments hold their region verbatim
// 4) no two ordinary segments are adjacent
func CheckSegments(sf *ast.SourceFile) error {
	if sf == nil || sf.File == nil {
		return fmt.Errorf("nil source file")
	}
	size, err := safecast.Conv[uint32](len(sf.File.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	var pos uint32
	for i, seg := range sf.Segments {
		sp := seg.Range
		if sp.File != sf.File.ID {
			return fmt.Errorf("segment %d: file mismatch: got=%d want=%d", i, sp.File, sf.File.ID)
		}
		if sp.Empty() {
			return fmt.Errorf("segment %d is empty: %v", i, sp)
		}
		if sp.Start != pos {
			return fmt.Errorf("segment %d starts at %d, want %d", i, sp.Start, pos)
		}
		if seg.Kind == ast.OrdinaryCode {
			if seg.Text != sp.Text(sf.File.Content) {
				return fmt.Errorf("segment %d: text does not match its range", i)
			}
			if i > 0 && sf.Segments[i-1].Kind == ast.OrdinaryCode {
				return fmt.Errorf("segments %d and %d are both ordinary", i-1, i)
			}
		}
		pos = sp.End
	}
	if pos != size {
		return fmt.Errorf("segments end at %d, content has %d bytes", pos, size)
	}
	return nil
}

// CheckTreeInvariants verifies the spans of every block tree in sf:
// 1) each node's span lies within its file's content
// 2) non-empty children lie within their parent's span
// 3) non-empty children are ordered and do not overlap
// 4) each block node lies within its segment
func CheckTreeInvariants(sf *ast.SourceFile) error {
	if err := CheckSegments(sf); err != nil {
		return err
	}
	size, err := safecast.Conv[uint32](len(sf.File.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	for _, seg := range sf.Blocks() {
		block := sf.Tree.Node(seg.Block)
		if block == nil {
			return fmt.Errorf("segment %v has no block node", seg.Range)
		}
		if !seg.Range.Contains(block.Span) {
			return fmt.Errorf("block span %v is outside segment %v", block.Span, seg.Range)
		}
		if err := checkNode(sf.Tree, seg.Block, size); err != nil {
			return err
		}
	}
	return nil
}

func checkNode(tree *ast.Tree, id ast.NodeID, size uint32) error {
	n := tree.Node(id)
	if n.Span.End > size || n.Span.Start > n.Span.End {
		return fmt.Errorf("%s span %v is out of bounds (size %d)", n.Kind, n.Span, size)
	}
	var prevEnd uint32
	first := true
	for _, c := range n.Children {
		sp := tree.ChildSpan(c)
		if c.IsNode() {
			if err := checkNode(tree, c.Node, size); err != nil {
				return err
			}
		}
		if sp.Empty() {
			continue
		}
		if !n.Span.Contains(sp) {
			return fmt.Errorf("%s child %s %v is outside parent span %v", n.Kind, c.Tag, sp, n.Span)
		}
		if !first && sp.Start < prevEnd {
			return fmt.Errorf("%s child %s %v overlaps its predecessor ending at %d", n.Kind, c.Tag, sp, prevEnd)
		}
		prevEnd = sp.End
		first = false
	}
	return nil
}
