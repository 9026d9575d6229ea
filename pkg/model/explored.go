package model

// Pattern is a heuristic structural label attached to an explored node.
type Pattern string

const (
	PatternArrayOfNumbers Pattern = "array-of-numbers"
	PatternArrayOfArrays  Pattern = "array-of-arrays"
	PatternProductObject  Pattern = "product-object"
	PatternReactFiber     Pattern = "react-fiber"
)

// ExploredNode is one node of the tree produced by the budgeted explorer.
// Depth of every node equals its parent's depth + 1, the root's depth is 0,
// and a node at the depth limit has no children by construction. Children
// keep the original reference order of the snapshot, not discovery order.
type ExploredNode struct {
	NodeID       string          `json:"node_id"`
	Name         string          `json:"name"`
	Type         NodeType        `json:"type"`
	SelfSize     int64           `json:"self_size"`
	RetainedSize int64           `json:"retained_size"`
	Depth        int             `json:"depth"`
	Children     []*ExploredNode `json:"children,omitempty"`

	// Pattern and Summary are filled in by the pattern detector post-pass.
	Pattern Pattern `json:"pattern,omitempty"`
	Summary string  `json:"summary,omitempty"`
}

// IsSentinel reports whether the node is a synthetic budget-exhaustion leaf
// rather than a fetched heap node.
func (n *ExploredNode) IsSentinel() bool {
	return n.Type == TypeInfo
}

// Walk visits the node and all descendants in pre-order.
func (n *ExploredNode) Walk(visit func(*ExploredNode)) {
	if n == nil {
		return
	}
	visit(n)
	for _, c := range n.Children {
		c.Walk(visit)
	}
}

// CountFetched returns the number of non-sentinel nodes in the tree.
func (n *ExploredNode) CountFetched() int {
	count := 0
	n.Walk(func(en *ExploredNode) {
		if !en.IsSentinel() {
			count++
		}
	})
	return count
}
