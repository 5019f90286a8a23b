package ast

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"verusyn/internal/source"
	"verusyn/internal/token"
)

// Tree owns every node built for one file.
type Tree struct {
	File  *source.File
	Nodes *Nodes
}

// NewTree creates an empty tree; capHint sizes the node arena.
func NewTree(file *source.File, capHint uint) *Tree {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Tree{File: file, Nodes: NewNodes(capHint)}
}

// NewNode allocates a node whose span covers its first and last child.
// A node without children gets the empty span at fallback.
func (t *Tree) NewNode(kind Kind, children []Child, fallback source.Span) NodeID {
	sp := fallback
	sp.End = sp.Start
	if len(children) > 0 {
		sp = t.ChildSpan(children[0]).Cover(t.ChildSpan(children[len(children)-1]))
	}
	return t.Nodes.New(kind, sp, children)
}

// Node returns the node for id or nil.
func (t *Tree) Node(id NodeID) *Node {
	return t.Nodes.Get(id)
}

// Kind returns the kind of id, KindInvalid when absent.
func (t *Tree) Kind(id NodeID) Kind {
	if n := t.Node(id); n != nil {
		return n.Kind
	}
	return KindInvalid
}

// ChildSpan is the span of a node or token child.
func (t *Tree) ChildSpan(c Child) source.Span {
	if c.IsNode() {
		if n := t.Node(c.Node); n != nil {
			return n.Span
		}
	}
	return c.Tok.Span
}

// Child returns the first child of id tagged tag.
func (t *Tree) Child(id NodeID, tag Tag) (Child, bool) {
	n := t.Node(id)
	if n == nil {
		return Child{}, false
	}
	for _, c := range n.Children {
		if c.Tag == tag {
			return c, true
		}
	}
	return Child{}, false
}

// ChildNode returns the first node child tagged tag, or NoNodeID.
func (t *Tree) ChildNode(id NodeID, tag Tag) NodeID {
	n := t.Node(id)
	if n == nil {
		return NoNodeID
	}
	for _, c := range n.Children {
		if c.Tag == tag && c.IsNode() {
			return c.Node
		}
	}
	return NoNodeID
}

// ChildNodes returns every node child tagged tag, in order.
func (t *Tree) ChildNodes(id NodeID, tag Tag) []NodeID {
	n := t.Node(id)
	if n == nil {
		return nil
	}
	var out []NodeID
	for _, c := range n.Children {
		if c.Tag == tag && c.IsNode() {
			out = append(out, c.Node)
		}
	}
	return out
}

// Tokens returns the tokens under id in source order.
func (t *Tree) Tokens(id NodeID) []token.Token {
	var out []token.Token
	t.appendTokens(&out, id)
	return out
}

func (t *Tree) appendTokens(out *[]token.Token, id NodeID) {
	n := t.Node(id)
	if n == nil {
		return
	}
	for _, c := range n.Children {
		if c.IsNode() {
			t.appendTokens(out, c.Node)
		} else {
			*out = append(*out, c.Tok)
		}
	}
}

// Text returns the source text covered by id.
func (t *Tree) Text(id NodeID) string {
	n := t.Node(id)
	if n == nil || t.File == nil {
		return ""
	}
	return n.Span.Text(t.File.Content)
}

// Name returns the NFC-normalized text of the TagName child of id, if any.
// Identifiers are compared in normalized form so that composed and
// decomposed spellings of the same name agree.
func (t *Tree) Name(id NodeID) string {
	c, ok := t.Child(id, TagName)
	if !ok {
		return ""
	}
	if c.IsNode() {
		var b strings.Builder
		for _, tok := range t.Tokens(c.Node) {
			b.WriteString(tok.Text)
		}
		return norm.NFC.String(b.String())
	}
	return norm.NFC.String(c.Tok.Text)
}
