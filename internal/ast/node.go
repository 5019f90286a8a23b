package ast

import (
	"verusyn/internal/source"
	"verusyn/internal/token"
)

// Child is one ordered element of a node: a nested node when Node is valid,
// otherwise the token Tok.
type Child struct {
	Tag  Tag
	Node NodeID
	Tok  token.Token
}

// NodeChild wraps a node reference.
func NodeChild(tag Tag, id NodeID) Child {
	return Child{Tag: tag, Node: id}
}

// TokChild wraps a token.
func TokChild(tag Tag, tok token.Token) Child {
	return Child{Tag: tag, Tok: tok}
}

func (c Child) IsNode() bool  { return c.Node.IsValid() }
func (c Child) IsToken() bool { return !c.Node.IsValid() }

type Node struct {
	Kind     Kind
	Span     source.Span
	Children []Child
}

type Nodes struct {
	Arena *Arena[Node]
}

func NewNodes(capHint uint) *Nodes {
	return &Nodes{
		Arena: NewArena[Node](capHint),
	}
}

func (n *Nodes) New(kind Kind, sp source.Span, children []Child) NodeID {
	return NodeID(n.Arena.Allocate(Node{
		Kind:     kind,
		Span:     sp,
		Children: children,
	}))
}

func (n *Nodes) Get(id NodeID) *Node {
	return n.Arena.Get(uint32(id))
}
