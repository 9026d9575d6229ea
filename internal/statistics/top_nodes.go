// Package statistics provides utilities for calculating heap node statistics.
package statistics

import (
	"sort"

	"github.com/heapscope/pkg/model"
)

// TopNodesCalculator ranks heap nodes by size and aggregates type histograms.
type TopNodesCalculator struct {
	topN       int
	byRetained bool
}

// TopNodesOption configures the TopNodesCalculator.
type TopNodesOption func(*TopNodesCalculator)

// WithTopN sets the number of top nodes to return.
func WithTopN(n int) TopNodesOption {
	return func(c *TopNodesCalculator) {
		c.topN = n
	}
}

// WithSelfSize ranks nodes by self size instead of retained size.
func WithSelfSize() TopNodesOption {
	return func(c *TopNodesCalculator) {
		c.byRetained = false
	}
}

// NewTopNodesCalculator creates a new TopNodesCalculator.
func NewTopNodesCalculator(opts ...TopNodesOption) *TopNodesCalculator {
	c := &TopNodesCalculator{
		topN:       15,
		byRetained: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TopNodeEntry is a single node with its share of the snapshot total.
type TopNodeEntry struct {
	ID          string
	Name        string
	Type        model.NodeType
	Size        int64
	SizePercent float64
}

// TopNodesResult aggregates ranking and type breakdown for one snapshot.
type TopNodesResult struct {
	TopNodes      []TopNodeEntry
	TotalSelfSize int64
	TypeCounts    map[model.NodeType]int
	TypeSizes     map[model.NodeType]int64
}

// Calculate ranks the nodes and builds the type histogram.
func (c *TopNodesCalculator) Calculate(nodes []*model.HeapNode) *TopNodesResult {
	result := &TopNodesResult{
		TopNodes:   make([]TopNodeEntry, 0),
		TypeCounts: make(map[model.NodeType]int),
		TypeSizes:  make(map[model.NodeType]int64),
	}

	if len(nodes) == 0 {
		return result
	}

	entries := make([]TopNodeEntry, 0, len(nodes))
	for _, node := range nodes {
		if node == nil {
			continue
		}
		result.TotalSelfSize += node.SelfSize
		result.TypeCounts[node.Type]++
		result.TypeSizes[node.Type] += node.SelfSize

		size := node.RetainedSize
		if !c.byRetained {
			size = node.SelfSize
		}
		entries = append(entries, TopNodeEntry{
			ID:   node.ID,
			Name: node.Name,
			Type: node.Type,
			Size: size,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Size != entries[j].Size {
			return entries[i].Size > entries[j].Size
		}
		return entries[i].ID < entries[j].ID
	})

	if len(entries) > c.topN {
		entries = entries[:c.topN]
	}
	for i := range entries {
		if result.TotalSelfSize > 0 {
			entries[i].SizePercent = float64(entries[i].Size) / float64(result.TotalSelfSize) * 100
		}
	}
	result.TopNodes = entries
	return result
}
