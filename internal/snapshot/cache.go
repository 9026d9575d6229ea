package snapshot

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	apperrors "github.com/heapscope/pkg/errors"
	"github.com/heapscope/pkg/model"
	"github.com/heapscope/pkg/utils"
)

// Cache serves per-node lookups over lazily loaded snapshots. A snapshot is
// parsed/indexed at most once per identifier for the lifetime of the process;
// concurrent first lookups for the same identifier share a single warm-up.
// There is no eviction: the tool is short-lived per invocation and a bounded
// cache would be required before reuse inside a long-lived service.
type Cache struct {
	provider Provider
	logger   utils.Logger

	mu    sync.RWMutex
	warm  map[string]*Snapshot
	group singleflight.Group
}

// NewCache creates a Cache over the given provider.
func NewCache(provider Provider, logger utils.Logger) *Cache {
	if logger == nil {
		logger = &utils.NullLogger{}
	}
	return &Cache{
		provider: provider,
		logger:   logger,
		warm:     make(map[string]*Snapshot),
	}
}

// Get returns the node for (snapshotID, nodeID). An unknown snapshot or node
// id yields (nil, nil) — not found is not an error. A genuine provider
// failure is returned as an error for that lookup only.
func (c *Cache) Get(ctx context.Context, snapshotID, nodeID string) (*model.HeapNode, error) {
	snap, err := c.GetSnapshot(ctx, snapshotID)
	if err != nil {
		if apperrors.IsSnapshotNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return snap.Node(nodeID), nil
}

// GetSnapshot returns the indexed snapshot for the identifier, warming it on
// first use. Concurrent callers for the same unwarmed identifier share one
// provider load.
func (c *Cache) GetSnapshot(ctx context.Context, snapshotID string) (*Snapshot, error) {
	c.mu.RLock()
	snap, ok := c.warm[snapshotID]
	c.mu.RUnlock()
	if ok {
		return snap, nil
	}

	v, err, _ := c.group.Do(snapshotID, func() (interface{}, error) {
		// Re-check: a previous flight may have warmed it already.
		c.mu.RLock()
		existing, ok := c.warm[snapshotID]
		c.mu.RUnlock()
		if ok {
			return existing, nil
		}

		c.logger.Debug("warming snapshot %s", snapshotID)
		loaded, err := c.provider.Snapshot(ctx, snapshotID)
		if err != nil {
			return nil, err
		}
		if loaded == nil {
			return nil, apperrors.ErrSnapshotNotFound
		}

		c.mu.Lock()
		c.warm[snapshotID] = loaded
		c.mu.Unlock()
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Snapshot), nil
}

// Warm reports whether the snapshot has already been loaded.
func (c *Cache) Warm(snapshotID string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.warm[snapshotID]
	return ok
}
