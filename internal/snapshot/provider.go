// Package snapshot provides the object data provider contract and the
// process-wide snapshot cache that all analysis components read through.
package snapshot

import (
	"context"

	"github.com/heapscope/pkg/model"
)

// Provider parses and indexes heap snapshots. Parsing is expensive and
// amortizable; the cache guarantees it runs at most once per snapshot
// identifier within a process. Implementations must be idempotent: the same
// identifier yields the same snapshot for the lifetime of the process.
type Provider interface {
	// Snapshot loads and indexes the snapshot for the given identifier.
	// Returns errors.ErrSnapshotNotFound (wrapped) when the identifier is
	// unknown; any other error is a provider failure.
	Snapshot(ctx context.Context, snapshotID string) (*Snapshot, error)
}

// Snapshot is an indexed, immutable collection of heap nodes for one
// snapshot identifier. Lookups are O(1).
type Snapshot struct {
	id    string
	nodes map[string]*model.HeapNode
	order []string
}

// NewSnapshot builds an indexed snapshot from a node list, preserving input
// order for Nodes(). If a node carries no referrer edges, referrers are
// derived as the symmetric inverse of the other nodes' references.
func NewSnapshot(id string, nodes []*model.HeapNode) *Snapshot {
	s := &Snapshot{
		id:    id,
		nodes: make(map[string]*model.HeapNode, len(nodes)),
		order: make([]string, 0, len(nodes)),
	}

	hasReferrers := false
	for _, n := range nodes {
		if n == nil || n.ID == "" {
			continue
		}
		s.nodes[n.ID] = n
		s.order = append(s.order, n.ID)
		if len(n.Referrers) > 0 {
			hasReferrers = true
		}
	}

	if !hasReferrers {
		s.deriveReferrers()
	}
	return s
}

// deriveReferrers fills each node's referrer edges from the outgoing
// references of every other node in the snapshot. Unnamed reference edges
// are labeled with the referring node's own name.
func (s *Snapshot) deriveReferrers() {
	for _, id := range s.order {
		from := s.nodes[id]
		for _, ref := range from.References {
			target, ok := s.nodes[ref.NodeID]
			if !ok {
				continue
			}
			name := ref.Name
			if name == "" {
				name = from.Name
			}
			target.Referrers = append(target.Referrers, model.Edge{
				Name:   name,
				Type:   from.Type,
				NodeID: from.ID,
			})
		}
	}
}

// ID returns the snapshot identifier.
func (s *Snapshot) ID() string {
	return s.id
}

// Node returns the node with the given id, or nil when unknown.
func (s *Snapshot) Node(nodeID string) *model.HeapNode {
	return s.nodes[nodeID]
}

// Nodes returns all nodes in original snapshot order.
func (s *Snapshot) Nodes() []*model.HeapNode {
	result := make([]*model.HeapNode, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, s.nodes[id])
	}
	return result
}

// Len returns the number of nodes in the snapshot.
func (s *Snapshot) Len() int {
	return len(s.order)
}
