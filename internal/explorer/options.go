package explorer

import "time"

// Options configures one traversal. Unset numeric limits fall back to the
// defaults via Normalize; callers usually start from DefaultOptions.
type Options struct {
	// MaxDepth is the maximum distance from the start node (root depth 0).
	MaxDepth int

	// MaxChildrenPerLevel caps how many outgoing references of a node are
	// followed, taken in original reference order.
	MaxChildrenPerLevel int

	// FollowArrays and FollowObjects gate which reference kinds are followed.
	FollowArrays  bool
	FollowObjects bool

	// ShowPrimitives includes primitive-kind nodes and their expansion; when
	// false a primitive node is still returned but its children are skipped.
	ShowPrimitives bool

	// MaxNodes caps the total number of nodes fetched across the whole tree.
	MaxNodes int

	// TimeBudget caps the wall-clock duration of the traversal. Zero is a
	// valid budget: the traversal admits the root fetch at most and renders
	// every further node as a time-budget sentinel. Negative means unset.
	TimeBudget time.Duration
}

// DefaultOptions returns the standard traversal budgets.
func DefaultOptions() Options {
	return Options{
		MaxDepth:            2,
		MaxChildrenPerLevel: 5,
		FollowArrays:        true,
		FollowObjects:       true,
		ShowPrimitives:      true,
		MaxNodes:            100,
		TimeBudget:          15 * time.Second,
	}
}

// Normalize fills unset numeric fields with defaults. Boolean options are
// taken as-is: an explicit false is meaningful. TimeBudget defaults only
// when negative, so a zero budget stays a zero budget.
func (o Options) Normalize() Options {
	def := DefaultOptions()
	if o.MaxDepth <= 0 {
		o.MaxDepth = def.MaxDepth
	}
	if o.MaxChildrenPerLevel <= 0 {
		o.MaxChildrenPerLevel = def.MaxChildrenPerLevel
	}
	if o.MaxNodes <= 0 {
		o.MaxNodes = def.MaxNodes
	}
	if o.TimeBudget < 0 {
		o.TimeBudget = def.TimeBudget
	}
	return o
}
