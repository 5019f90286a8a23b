package ast

// Equal reports whether node a of ta and node b of tb have the same shape:
// equal kinds, tags and token kinds/texts. Spans and trivia are ignored.
func Equal(ta *Tree, a NodeID, tb *Tree, b NodeID) bool {
	na, nb := ta.Node(a), tb.Node(b)
	if na == nil || nb == nil {
		return na == nil && nb == nil
	}
	if na.Kind != nb.Kind || len(na.Children) != len(nb.Children) {
		return false
	}
	for i := range na.Children {
		ca, cb := na.Children[i], nb.Children[i]
		if ca.Tag != cb.Tag || ca.IsNode() != cb.IsNode() {
			return false
		}
		if ca.IsNode() {
			if !Equal(ta, ca.Node, tb, cb.Node) {
				return false
			}
			continue
		}
		if ca.Tok.Kind != cb.Tok.Kind || ca.Tok.Text != cb.Tok.Text {
			return false
		}
	}
	return true
}

// EqualLists compares two root lists element-wise with Equal.
func EqualLists(ta *Tree, a []NodeID, tb *Tree, b []NodeID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(ta, a[i], tb, b[i]) {
			return false
		}
	}
	return true
}
