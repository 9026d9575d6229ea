// Package tracer explains why an object is retained by walking its
// referrer chain back to a root.
package tracer

import (
	"context"
	"fmt"
	"strings"

	"github.com/heapscope/internal/snapshot"
	"github.com/heapscope/pkg/model"
	"github.com/heapscope/pkg/utils"
)

// maxHops bounds the referrer walk; real retainer chains rarely exceed a
// couple dozen hops, and referrer cycles must not spin forever.
const maxHops = 32

// leakThreshold is the confidence above which a trace is flagged as a
// likely leak.
const leakThreshold = 0.5

// Tracer walks referrer edges from a target node toward a root and scores
// how likely the retention is a leak.
type Tracer struct {
	cache  *snapshot.Cache
	logger utils.Logger
}

// New creates a Tracer backed by the given cache.
func New(cache *snapshot.Cache, logger utils.Logger) *Tracer {
	if logger == nil {
		logger = &utils.NullLogger{}
	}
	return &Tracer{cache: cache, logger: logger}
}

// Trace follows the first referrer edge of each node from nodeID toward a
// root (a node with no referrers, or a recognized root kind), then derives a
// leak likelihood from the path shape. An unknown node id yields a
// zero-confidence result, not an error.
func (t *Tracer) Trace(ctx context.Context, snapshotID, nodeID string) (*model.TraceResult, error) {
	target, err := t.cache.Get(ctx, snapshotID, nodeID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return &model.TraceResult{
			NodeID:      nodeID,
			Explanation: "Object not found in snapshot; nothing to trace",
			RootPath:    []string{},
			RetainerInfo: model.RetainerInfo{
				RootType: model.RootUnknown,
			},
		}, nil
	}

	path, root, detached := t.walk(ctx, snapshotID, target)
	rootType := classifyRoot(root)

	// The walk records target -> root; the reported path reads root -> target.
	reverse(path)

	info := model.RetainerInfo{
		RootType:   rootType,
		PathLength: len(path),
		IsDetached: detached,
	}
	confidence := scoreTrace(info)

	result := &model.TraceResult{
		NodeID:           nodeID,
		IsLikelyLeak:     confidence > leakThreshold,
		Confidence:       confidence,
		Explanation:      explain(target, info),
		RootPath:         path,
		ActionableAdvice: advise(info),
		RetainerInfo:     info,
	}
	t.logger.Debug("traced %s in %s: root=%s hops=%d detached=%v confidence=%.2f",
		nodeID, snapshotID, rootType, len(path), detached, confidence)
	return result, nil
}

// walk follows referrer edges until a root, a cycle, or the hop cap. It
// returns the hop descriptions (target first), the final node reached, and
// whether any hop passed through a detached indicator.
func (t *Tracer) walk(ctx context.Context, snapshotID string, target *model.HeapNode) ([]string, *model.HeapNode, bool) {
	path := []string{describe(target)}
	detached := isDetachedName(target.Name)
	seen := map[string]bool{target.ID: true}

	current := target
	for hop := 0; hop < maxHops; hop++ {
		if len(current.Referrers) == 0 {
			break
		}
		next := current.Referrers[0]
		if next.NodeID == "" || seen[next.NodeID] {
			break
		}
		seen[next.NodeID] = true

		node, err := t.cache.Get(ctx, snapshotID, next.NodeID)
		if err != nil || node == nil {
			// An unresolvable referrer ends the walk; the path so far still
			// explains the retention.
			path = append(path, fmt.Sprintf("(unresolved referrer %s)", next.NodeID))
			break
		}
		if isDetachedName(node.Name) {
			detached = true
		}
		if next.Name != "" {
			path = append(path, fmt.Sprintf("%s via %q", describe(node), next.Name))
		} else {
			path = append(path, describe(node))
		}
		current = node

		if classifyRoot(current) != model.RootUnknown {
			break
		}
	}
	return path, current, detached
}

// classifyRoot buckets the terminal node of a retainer chain.
func classifyRoot(node *model.HeapNode) model.RootType {
	if node == nil {
		return model.RootUnknown
	}
	name := strings.ToLower(node.Name)
	switch {
	case node.Name == "window" || node.Name == "global" || node.Name == "globalThis" ||
		strings.Contains(node.Name, "window.") || strings.Contains(node.Name, "global."):
		return model.RootGlobal
	case strings.Contains(node.Name, "Fiber") || node.Name == "memoizedState":
		return model.RootFramework
	case strings.Contains(name, "request") || strings.Contains(name, "response") ||
		strings.Contains(name, "xhr") || strings.Contains(name, "timeout"):
		return model.RootTransient
	case node.Type == model.TypeNative || node.Type == model.TypeHidden:
		return model.RootGCRoot
	default:
		return model.RootUnknown
	}
}

// scoreTrace derives a leak confidence in [0,1] from the chain shape. Long
// paths through detached structures raise it; transient or framework roots
// lower it.
func scoreTrace(info model.RetainerInfo) float64 {
	confidence := 0.3
	if info.IsDetached {
		confidence += 0.3
	}
	switch {
	case info.PathLength > 5:
		confidence += 0.2
	case info.PathLength > 2:
		confidence += 0.1
	}
	switch info.RootType {
	case model.RootGlobal:
		confidence += 0.2
	case model.RootGCRoot:
		confidence += 0.1
	case model.RootFramework:
		confidence -= 0.2
	case model.RootTransient:
		confidence -= 0.3
	}
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}
	return confidence
}

func explain(target *model.HeapNode, info model.RetainerInfo) string {
	base := fmt.Sprintf("%q is retained through %d hop(s) ending at a %s root",
		target.Name, info.PathLength, info.RootType)
	if info.IsDetached {
		return base + "; the chain passes through a detached structure"
	}
	return base
}

func advise(info model.RetainerInfo) string {
	if info.IsDetached {
		return "Remove the reference keeping the detached structure alive (often a stale DOM or cache entry)"
	}
	switch info.RootType {
	case model.RootGlobal:
		return "Release the global reference when the object's work is done, or scope it to its owner"
	case model.RootFramework:
		return "Framework-internal retention; usually released by the framework, verify before acting"
	case model.RootTransient:
		return "Retained by a short-lived owner; likely reclaimed on its completion, low priority"
	case model.RootGCRoot:
		return "Retained directly by the runtime; inspect the native handle keeping it alive"
	default:
		return "Inspect the retainer path and break the strongest link you control"
	}
}

func describe(node *model.HeapNode) string {
	name := node.Name
	if name == "" {
		name = "(unnamed)"
	}
	return fmt.Sprintf("%s <%s>", name, node.Type)
}

func isDetachedName(name string) bool {
	return strings.Contains(strings.ToLower(name), "detached")
}

func reverse(s []string) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
