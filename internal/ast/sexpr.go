package ast

import "strings"

// Sexpr renders id as a compact s-expression: (Kind child ...), tokens by
// text and tagged children as tag=child.
func (t *Tree) Sexpr(id NodeID) string {
	var b strings.Builder
	t.sexpr(&b, id)
	return b.String()
}

func (t *Tree) sexpr(b *strings.Builder, id NodeID) {
	n := t.Node(id)
	if n == nil {
		b.WriteString("<nil>")
		return
	}
	b.WriteByte('(')
	b.WriteString(n.Kind.String())
	for _, c := range n.Children {
		b.WriteByte(' ')
		if c.Tag != TagNone && c.Tag != TagOp && c.Tag != TagKeyword {
			b.WriteString(c.Tag.String())
			b.WriteByte('=')
		}
		if c.IsNode() {
			t.sexpr(b, c.Node)
		} else {
			b.WriteString(c.Tok.Text)
		}
	}
	b.WriteByte(')')
}
