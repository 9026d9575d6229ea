package snapshot_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heapscope/internal/mock"
	"github.com/heapscope/internal/snapshot"
	"github.com/heapscope/internal/testutil"
	"github.com/heapscope/pkg/model"
	"github.com/heapscope/pkg/utils"
)

func TestCacheGet(t *testing.T) {
	provider := mock.NewStaticProvider(map[string][]*model.HeapNode{
		"snap": testutil.FanOut(1, 2),
	})
	cache := snapshot.NewCache(provider, &utils.NullLogger{})

	node, err := cache.Get(context.Background(), "snap", "root")
	require.NoError(t, err)
	require.NotNil(t, node)
	assert.Equal(t, "root", node.ID)
	assert.Len(t, node.References, 2)
}

func TestCacheGetUnknownNode(t *testing.T) {
	provider := mock.NewStaticProvider(map[string][]*model.HeapNode{
		"snap": testutil.FanOut(1, 2),
	})
	cache := snapshot.NewCache(provider, &utils.NullLogger{})

	node, err := cache.Get(context.Background(), "snap", "no-such-node")
	assert.NoError(t, err)
	assert.Nil(t, node)
}

func TestCacheGetUnknownSnapshot(t *testing.T) {
	provider := mock.NewStaticProvider(map[string][]*model.HeapNode{})
	cache := snapshot.NewCache(provider, &utils.NullLogger{})

	node, err := cache.Get(context.Background(), "missing", "root")
	assert.NoError(t, err)
	assert.Nil(t, node)
}

func TestCacheProviderErrorPropagates(t *testing.T) {
	provider := &mock.MockProvider{}
	provider.ExpectSnapshot("snap", nil, errors.New("corrupt file"))
	cache := snapshot.NewCache(provider, &utils.NullLogger{})

	_, err := cache.Get(context.Background(), "snap", "root")
	assert.Error(t, err)
}

func TestCacheLoadsSnapshotOnce(t *testing.T) {
	provider := mock.NewStaticProvider(map[string][]*model.HeapNode{
		"snap": testutil.FanOut(2, 3),
	})
	cache := snapshot.NewCache(provider, &utils.NullLogger{})

	ctx := context.Background()
	for _, id := range []string{"root", "root.0", "root.1", "root.0.0"} {
		_, err := cache.Get(ctx, "snap", id)
		require.NoError(t, err)
	}

	assert.Equal(t, int64(1), provider.Loads())
	assert.True(t, cache.Warm("snap"))
}

func TestCacheConcurrentWarmupSharesOneLoad(t *testing.T) {
	provider := mock.NewStaticProvider(map[string][]*model.HeapNode{
		"snap": testutil.FanOut(1, 2),
	})
	provider.Delay = 20 * time.Millisecond
	cache := snapshot.NewCache(provider, &utils.NullLogger{})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := cache.Get(context.Background(), "snap", "root")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), provider.Loads())
}

func TestCacheDistinctSnapshotsLoadSeparately(t *testing.T) {
	provider := mock.NewStaticProvider(map[string][]*model.HeapNode{
		"before": testutil.FanOut(1, 2),
		"after":  testutil.FanOut(1, 2),
	})
	cache := snapshot.NewCache(provider, &utils.NullLogger{})

	ctx := context.Background()
	_, err := cache.GetSnapshot(ctx, "before")
	require.NoError(t, err)
	_, err = cache.GetSnapshot(ctx, "after")
	require.NoError(t, err)

	assert.Equal(t, int64(2), provider.Loads())
	assert.True(t, cache.Warm("before"))
	assert.True(t, cache.Warm("after"))
}
