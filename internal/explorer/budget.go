package explorer

import (
	"sync"
	"time"

	"github.com/heapscope/pkg/utils"
)

// Admission is the outcome of asking the budget for one node fetch.
type Admission int

const (
	// AdmitOK means the node may be fetched; the visit counter was incremented.
	AdmitOK Admission = iota
	// AdmitTimeExceeded means the time budget is spent.
	AdmitTimeExceeded
	// AdmitNodeLimit means the node cap is reached.
	AdmitNodeLimit
)

// Budget is the shared mutable state of one traversal invocation. A single
// instance is passed by pointer through all recursive and concurrent
// sub-calls so the node cap and time cap apply to the whole tree. It is
// never stored globally: concurrent top-level traversals each own their own
// Budget and cannot interfere.
type Budget struct {
	mu         sync.Mutex
	clock      utils.Clock
	start      time.Time
	timeBudget time.Duration
	maxNodes   int
	visited    int
}

// NewBudget starts a budget clock for one traversal.
func NewBudget(clock utils.Clock, timeBudget time.Duration, maxNodes int) *Budget {
	if clock == nil {
		clock = utils.NewRealClock()
	}
	return &Budget{
		clock:      clock,
		start:      clock.Now(),
		timeBudget: timeBudget,
		maxNodes:   maxNodes,
	}
}

// Admit decides whether one more node may be fetched. The time check runs
// before the node-count check; only an admitted fetch increments the visit
// counter, so sentinel nodes never consume budget. Admission decisions are
// serialized: a caller deciding for a batch observes all increments made by
// earlier siblings.
func (b *Budget) Admit() Admission {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.clock.Since(b.start) > b.timeBudget {
		return AdmitTimeExceeded
	}
	if b.visited >= b.maxNodes {
		return AdmitNodeLimit
	}
	b.visited++
	return AdmitOK
}

// Visited returns the number of admitted fetches so far.
func (b *Budget) Visited() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.visited
}

// Elapsed returns the wall-clock time since the traversal started.
func (b *Budget) Elapsed() time.Duration {
	return b.clock.Since(b.start)
}
