// Package mock provides mock implementations for testing.
package mock

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/heapscope/internal/snapshot"
	"github.com/heapscope/pkg/model"
)

// MockProvider is a mock implementation of the snapshot.Provider interface.
type MockProvider struct {
	mock.Mock
}

// Snapshot mocks the Snapshot method.
func (m *MockProvider) Snapshot(ctx context.Context, snapshotID string) (*snapshot.Snapshot, error) {
	args := m.Called(ctx, snapshotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*snapshot.Snapshot), args.Error(1)
}

// ExpectSnapshot sets up an expectation for Snapshot.
func (m *MockProvider) ExpectSnapshot(snapshotID string, snap *snapshot.Snapshot, err error) *mock.Call {
	return m.On("Snapshot", mock.Anything, snapshotID).Return(snap, err)
}

// StaticProvider serves pre-built snapshots from memory and counts loads.
// Unknown identifiers yield (nil, nil) from the cache rather than an error.
type StaticProvider struct {
	snapshots map[string]*snapshot.Snapshot
	loads     atomic.Int64

	// Delay is applied to every load to simulate parse latency.
	Delay time.Duration

	// OnLoad, when set, runs before each load returns.
	OnLoad func(snapshotID string)
}

// NewStaticProvider creates a StaticProvider from node lists keyed by
// snapshot identifier.
func NewStaticProvider(snapshots map[string][]*model.HeapNode) *StaticProvider {
	p := &StaticProvider{snapshots: make(map[string]*snapshot.Snapshot, len(snapshots))}
	for id, nodes := range snapshots {
		p.snapshots[id] = snapshot.NewSnapshot(id, nodes)
	}
	return p
}

// Snapshot implements snapshot.Provider.
func (p *StaticProvider) Snapshot(ctx context.Context, snapshotID string) (*snapshot.Snapshot, error) {
	p.loads.Add(1)
	if p.Delay > 0 {
		select {
		case <-time.After(p.Delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if p.OnLoad != nil {
		p.OnLoad(snapshotID)
	}
	snap, ok := p.snapshots[snapshotID]
	if !ok {
		return nil, nil
	}
	return snap, nil
}

// Loads returns how many times Snapshot was called.
func (p *StaticProvider) Loads() int64 {
	return p.loads.Load()
}
