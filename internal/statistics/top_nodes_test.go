package statistics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heapscope/internal/testutil"
	"github.com/heapscope/pkg/model"
)

func TestCalculateRanksByRetainedSize(t *testing.T) {
	nodes := []*model.HeapNode{
		testutil.Node("1", "small", model.TypeObject, 100, 100),
		testutil.Node("2", "big", model.TypeArray, 200, 1000),
		testutil.Node("3", "mid", model.TypeObject, 300, 500),
	}

	result := NewTopNodesCalculator().Calculate(nodes)

	require.Len(t, result.TopNodes, 3)
	assert.Equal(t, "big", result.TopNodes[0].Name)
	assert.Equal(t, "mid", result.TopNodes[1].Name)
	assert.Equal(t, "small", result.TopNodes[2].Name)
	assert.Equal(t, int64(600), result.TotalSelfSize)
}

func TestCalculateBySelfSize(t *testing.T) {
	nodes := []*model.HeapNode{
		testutil.Node("1", "a", model.TypeObject, 100, 1000),
		testutil.Node("2", "b", model.TypeObject, 300, 300),
	}

	result := NewTopNodesCalculator(WithSelfSize()).Calculate(nodes)
	assert.Equal(t, "b", result.TopNodes[0].Name)
	// Share is of the self-size total.
	assert.InDelta(t, 75.0, result.TopNodes[0].SizePercent, 0.001)
}

func TestCalculateTopNTruncation(t *testing.T) {
	nodes := testutil.FanOut(2, 4)
	result := NewTopNodesCalculator(WithTopN(3)).Calculate(nodes)
	assert.Len(t, result.TopNodes, 3)
}

func TestCalculateTypeHistogram(t *testing.T) {
	nodes := []*model.HeapNode{
		testutil.Node("1", "a", model.TypeObject, 100, 100),
		testutil.Node("2", "b", model.TypeObject, 200, 200),
		testutil.Node("3", "c", model.TypeArray, 50, 50),
	}

	result := NewTopNodesCalculator().Calculate(nodes)
	assert.Equal(t, 2, result.TypeCounts[model.TypeObject])
	assert.Equal(t, int64(300), result.TypeSizes[model.TypeObject])
	assert.Equal(t, 1, result.TypeCounts[model.TypeArray])
}

func TestCalculateStableTieBreak(t *testing.T) {
	nodes := []*model.HeapNode{
		testutil.Node("b", "second", model.TypeObject, 100, 100),
		testutil.Node("a", "first", model.TypeObject, 100, 100),
	}

	result := NewTopNodesCalculator().Calculate(nodes)
	assert.Equal(t, "a", result.TopNodes[0].ID)
	assert.Equal(t, "b", result.TopNodes[1].ID)
}

func TestCalculateEmptyInput(t *testing.T) {
	result := NewTopNodesCalculator().Calculate(nil)
	assert.Empty(t, result.TopNodes)
	assert.Zero(t, result.TotalSelfSize)
	assert.Empty(t, result.TypeCounts)
}
