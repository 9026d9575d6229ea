// Package advisor maps classified leak findings to actionable fix suggestions.
package advisor

import (
	"fmt"

	"github.com/heapscope/pkg/filter"
	"github.com/heapscope/pkg/model"
)

// Advisor turns container kinds and growth classes into suggested fixes.
type Advisor struct {
	filter *filter.NameFilter
}

// New creates an Advisor with the default name filter.
func New() *Advisor {
	return &Advisor{filter: filter.NewNameFilter()}
}

// SuggestFix returns the fix suggestion for a suspicious global object,
// bucketed by the stateful-container vocabulary and falling back to the
// node type.
func (a *Advisor) SuggestFix(name string, nodeType model.NodeType) string {
	switch a.filter.ContainerKind(name) {
	case filter.KindCache:
		return "Add an eviction policy or expiry (TTL/LRU) so entries do not accumulate forever"
	case filter.KindArray:
		return "Clear the collection when done or cap its length to bound growth"
	case filter.KindMap:
		return "Clear the map/set on lifecycle boundaries, or switch to an LRU-bounded structure"
	case filter.KindState:
		return "Scope the state to its owner's lifetime instead of keeping it globally reachable"
	}
	switch nodeType {
	case model.TypeArray:
		return "Clear the array when done or cap its length to bound growth"
	case model.TypeClosure:
		return "Check what the closure captures; null out references it no longer needs"
	default:
		return "Verify this object needs to stay globally reachable; release it when its work is done"
	}
}

// SuggestGrowthFix returns the fixed fix suggestion for a growth pattern class.
func (a *Advisor) SuggestGrowthFix(class model.GrowthClass) string {
	switch class {
	case model.GrowthArrays:
		return "Cap or periodically clear growing arrays; prefer ring buffers for streaming data"
	case model.GrowthListeners:
		return "Remove event listeners in teardown paths (removeEventListener, AbortController)"
	case model.GrowthClosures:
		return "Audit closures captured by long-lived callbacks and timers; drop references on completion"
	default:
		return "Investigate the growth pattern and release the retaining reference"
	}
}

// DescribeGrowth returns the human-readable description for a growth finding.
func (a *Advisor) DescribeGrowth(class model.GrowthClass, count int, totalSize int64) string {
	switch class {
	case model.GrowthArrays:
		return fmt.Sprintf("%d array object(s) exceed the suspicious-size threshold, totaling %d bytes", count, totalSize)
	case model.GrowthListeners:
		return fmt.Sprintf("%d event-listener object(s) accumulated, totaling %d bytes", count, totalSize)
	case model.GrowthClosures:
		return fmt.Sprintf("%d closure(s) retain more than the suspicious-size threshold, totaling %d bytes", count, totalSize)
	default:
		return fmt.Sprintf("%d object(s) matched, totaling %d bytes", count, totalSize)
	}
}
