package ast

// NodeID indexes a node in a Tree. The zero value means "absent".
type NodeID uint32

const NoNodeID NodeID = 0

func (id NodeID) IsValid() bool { return id != NoNodeID }
