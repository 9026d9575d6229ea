package snapshot_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heapscope/internal/snapshot"
	"github.com/heapscope/internal/testutil"
	apperrors "github.com/heapscope/pkg/errors"
	"github.com/heapscope/pkg/model"
)

func TestJSONFileProviderLoadsSnapshot(t *testing.T) {
	dir := filepath.Dir(testutil.GetTestDataPath(t, "before.heap.json"))
	provider := snapshot.NewJSONFileProvider(dir)

	snap, err := provider.Snapshot(context.Background(), "before")
	require.NoError(t, err)
	assert.Equal(t, 4, snap.Len())

	root := snap.Node("1")
	require.NotNil(t, root)
	assert.Equal(t, "window", root.Name)
	assert.Equal(t, model.TypeObject, root.Type)
	require.Len(t, root.References, 2)
	assert.Equal(t, "bigCache", root.References[0].Name)
	assert.Equal(t, "2", root.References[0].NodeID)

	// Referrers are derived from the reference edges.
	cache := snap.Node("2")
	require.Len(t, cache.Referrers, 1)
	assert.Equal(t, "1", cache.Referrers[0].NodeID)
}

func TestJSONFileProviderNotFound(t *testing.T) {
	provider := snapshot.NewJSONFileProvider(t.TempDir())

	_, err := provider.Snapshot(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, apperrors.IsSnapshotNotFound(err))
}

func TestParseJSONClampsRetainedSize(t *testing.T) {
	// Retained size below self size is inconsistent input; it is raised to
	// self size rather than rejected.
	snap, err := snapshot.ParseJSON("snap", strings.NewReader(`{
		"nodes": [{"id": "1", "name": "blob", "type": "object",
			"self_size": 1024, "retained_size": 10}]
	}`))
	require.NoError(t, err)
	assert.Equal(t, int64(1024), snap.Node("1").RetainedSize)
}

func TestParseJSONUnknownType(t *testing.T) {
	snap, err := snapshot.ParseJSON("snap", strings.NewReader(`{
		"nodes": [{"id": "1", "name": "x", "type": "wasm-table", "self_size": 8}]
	}`))
	require.NoError(t, err)
	assert.Equal(t, model.TypeUnknown, snap.Node("1").Type)
}

func TestParseJSONMissingID(t *testing.T) {
	_, err := snapshot.ParseJSON("snap", strings.NewReader(`{
		"nodes": [{"name": "anonymous", "type": "object"}]
	}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing an id")
}

func TestParseJSONMalformed(t *testing.T) {
	_, err := snapshot.ParseJSON("snap", strings.NewReader(`{"nodes": [`))
	assert.Error(t, err)
}
