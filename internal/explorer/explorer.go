// Package explorer implements the budgeted retention-graph traversal.
package explorer

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/heapscope/internal/snapshot"
	"github.com/heapscope/pkg/model"
	"github.com/heapscope/pkg/utils"
)

// batchSize is the number of children explored concurrently within one
// batch. Batches run strictly in sequence; concurrency only overlaps lookup
// latency and never changes traversal semantics.
const batchSize = 5

// Explorer walks the reference graph outward from a start node under hard
// depth, breadth, node-count, and time budgets.
type Explorer struct {
	cache  *snapshot.Cache
	logger utils.Logger
	clock  utils.Clock
}

// New creates an Explorer. A nil clock uses the real clock.
func New(cache *snapshot.Cache, logger utils.Logger, clock utils.Clock) *Explorer {
	if logger == nil {
		logger = &utils.NullLogger{}
	}
	if clock == nil {
		clock = utils.NewRealClock()
	}
	return &Explorer{cache: cache, logger: logger, clock: clock}
}

// Explore performs a budgeted pre-order traversal from startNodeID and
// returns the explored tree. Budget exhaustion is never an error: exhausted
// branches end in sentinel leaves and the partial tree is returned. The only
// error case is a failure to admit any traversal state at all.
func (e *Explorer) Explore(ctx context.Context, snapshotID, startNodeID string, opts Options) (*model.ExploredNode, error) {
	opts = opts.Normalize()
	budget := NewBudget(e.clock, opts.TimeBudget, opts.MaxNodes)

	root := e.visit(ctx, snapshotID, startNodeID, 0, budget, opts)
	e.logger.Debug("explored %s from %s: %d nodes fetched in %v",
		snapshotID, startNodeID, budget.Visited(), budget.Elapsed())
	return root, nil
}

// visit admits one node against the budget, then fetches and expands it.
func (e *Explorer) visit(ctx context.Context, snapshotID, nodeID string, depth int, budget *Budget, opts Options) *model.ExploredNode {
	switch budget.Admit() {
	case AdmitTimeExceeded:
		return timeSentinel(depth, opts)
	case AdmitNodeLimit:
		return nodeLimitSentinel(depth, opts)
	}
	explored, node := e.fetch(ctx, snapshotID, nodeID, depth)
	if node != nil {
		e.expandChildren(ctx, snapshotID, explored, node, depth, budget, opts)
	}
	return explored
}

// fetch looks up an already-admitted node and builds its explored shell. A
// provider failure affects this lookup only; the node is rendered as unknown
// and sibling branches keep going.
func (e *Explorer) fetch(ctx context.Context, snapshotID, nodeID string, depth int) (*model.ExploredNode, *model.HeapNode) {
	node, err := e.cache.Get(ctx, snapshotID, nodeID)
	if err != nil {
		e.logger.Warn("fetch failed for node %s in %s: %v", nodeID, snapshotID, err)
		return unknownNode(nodeID, depth), nil
	}
	if node == nil {
		return unknownNode(nodeID, depth), nil
	}
	return &model.ExploredNode{
		NodeID:       node.ID,
		Name:         node.Name,
		Type:         node.Type,
		SelfSize:     node.SelfSize,
		RetainedSize: node.RetainedSize,
		Depth:        depth,
	}, node
}

// expandChildren recurses into a fetched node's children, batch by batch.
// All budget admissions and all recursion happen on the calling goroutine;
// concurrency is confined to the lookups of one batch. The set of fetched
// nodes therefore depends only on reference ordering and the budgets, never
// on fetch latency.
func (e *Explorer) expandChildren(ctx context.Context, snapshotID string, explored *model.ExploredNode, node *model.HeapNode, depth int, budget *Budget, opts Options) {
	if depth == opts.MaxDepth {
		return
	}
	if node.Type.IsPrimitive() && !opts.ShowPrimitives {
		return
	}

	refs := followableRefs(node, opts)
	if len(refs) > opts.MaxChildrenPerLevel {
		refs = refs[:opts.MaxChildrenPerLevel]
	}

	for start := 0; start < len(refs); start += batchSize {
		end := start + batchSize
		if end > len(refs) {
			end = len(refs)
		}
		batch := refs[start:end]

		// Admission is decided serially in reference order before any fetch
		// in the batch starts.
		admissions := make([]Admission, len(batch))
		for i := range batch {
			admissions[i] = budget.Admit()
		}

		shells := make([]*model.ExploredNode, len(batch))
		heapNodes := make([]*model.HeapNode, len(batch))
		g, gctx := errgroup.WithContext(ctx)
		for i := range batch {
			switch admissions[i] {
			case AdmitTimeExceeded:
				shells[i] = timeSentinel(depth+1, opts)
			case AdmitNodeLimit:
				shells[i] = nodeLimitSentinel(depth+1, opts)
			default:
				i := i
				childID := batch[i].NodeID
				g.Go(func() error {
					shells[i], heapNodes[i] = e.fetch(gctx, snapshotID, childID, depth+1)
					return nil
				})
			}
		}
		// Join the batch, then recurse in reference order.
		_ = g.Wait()
		for i := range batch {
			if heapNodes[i] != nil {
				e.expandChildren(ctx, snapshotID, shells[i], heapNodes[i], depth+1, budget, opts)
			}
		}

		explored.Children = append(explored.Children, shells...)
	}
}

// followableRefs returns the node's outgoing references that pass the
// follow filter, in original reference order. References with an absent
// target id are dropped, not represented as sentinels.
func followableRefs(node *model.HeapNode, opts Options) []model.Edge {
	refs := make([]model.Edge, 0, len(node.References))
	for _, ref := range node.References {
		if ref.NodeID == "" {
			continue
		}
		switch {
		case opts.FollowArrays && ref.Type.IsArrayLike():
			refs = append(refs, ref)
		case opts.FollowObjects && ref.Type.IsObjectLike():
			refs = append(refs, ref)
		case opts.ShowPrimitives && ref.Type.IsPrimitive():
			refs = append(refs, ref)
		}
	}
	return refs
}

func timeSentinel(depth int, opts Options) *model.ExploredNode {
	return &model.ExploredNode{
		NodeID:  "",
		Name:    "(time budget exceeded)",
		Type:    model.TypeInfo,
		Depth:   depth,
		Summary: fmt.Sprintf("Time budget of %v exceeded; branch truncated", opts.TimeBudget),
	}
}

func nodeLimitSentinel(depth int, opts Options) *model.ExploredNode {
	return &model.ExploredNode{
		NodeID:  "",
		Name:    "(node limit reached)",
		Type:    model.TypeInfo,
		Depth:   depth,
		Summary: fmt.Sprintf("Node limit of %d reached; raise maxNodes to explore further", opts.MaxNodes),
	}
}

func unknownNode(nodeID string, depth int) *model.ExploredNode {
	return &model.ExploredNode{
		NodeID: nodeID,
		Name:   "(unknown)",
		Type:   model.TypeUnknown,
		Depth:  depth,
	}
}
