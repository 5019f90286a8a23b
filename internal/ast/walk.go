package ast

// Walk visits id and its descendants depth-first in source order.
// Returning false from fn skips the children of that node.
func (t *Tree) Walk(id NodeID, fn func(id NodeID, depth int) bool) {
	t.walk(id, 0, fn)
}

func (t *Tree) walk(id NodeID, depth int, fn func(NodeID, int) bool) {
	n := t.Node(id)
	if n == nil || !fn(id, depth) {
		return
	}
	for _, c := range n.Children {
		if c.IsNode() {
			t.walk(c.Node, depth+1, fn)
		}
	}
}

// Count returns the number of nodes reachable from id.
func (t *Tree) Count(id NodeID) int {
	n := 0
	t.Walk(id, func(NodeID, int) bool {
		n++
		return true
	})
	return n
}

// Find returns the first node of kind k under id, or NoNodeID.
func (t *Tree) Find(id NodeID, k Kind) NodeID {
	found := NoNodeID
	t.Walk(id, func(n NodeID, _ int) bool {
		if found.IsValid() {
			return false
		}
		if t.Kind(n) == k {
			found = n
			return false
		}
		return true
	})
	return found
}
