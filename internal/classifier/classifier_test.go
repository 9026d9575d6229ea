package classifier

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heapscope/internal/testutil"
	"github.com/heapscope/pkg/model"
	"github.com/heapscope/pkg/utils"
)

func TestClassifyLargeNamespacedCache(t *testing.T) {
	c := New(&utils.NullLogger{})
	nodes := []*model.HeapNode{
		testutil.Node("1", "window.bigCache", model.TypeObject, 2<<20, 2<<20),
	}

	report := c.Classify("snap", nodes)
	require.Len(t, report.Findings, 1)

	finding := report.Findings[0]
	// Base 50, +30 size, +20 container name, +15 namespaced, +5 object = 120,
	// clamped to the ceiling.
	assert.Equal(t, 95, finding.Confidence)
	assert.Equal(t, model.SeverityHigh, finding.Severity)
	assert.Contains(t, finding.Description, `"bigCache"`)
	assert.NotEmpty(t, finding.SuggestedFix)
	assert.Equal(t, 1, report.GlobalObjects)
}

func TestClassifyConfidenceLadder(t *testing.T) {
	c := New(&utils.NullLogger{})

	tests := []struct {
		name       string
		node       *model.HeapNode
		confidence int
	}{
		// 50 base +15 namespaced +5 object.
		{"small plain object", testutil.Node("1", "window.widget", model.TypeObject, 512, 512), 70},
		// 50 +10 (>1KB) +15 +5.
		{"medium object", testutil.Node("2", "window.widget", model.TypeObject, 2<<10, 2<<10), 80},
		// 50 +20 (>10KB) +15 +10 array.
		{"large array", testutil.Node("3", "window.rows", model.TypeArray, 20<<10, 20<<10), 95},
		// 50 +30 (>100KB) +15 +5: clamped.
		{"huge object", testutil.Node("4", "window.blob", model.TypeObject, 200<<10, 200<<10), 95},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.confidence, c.score(tt.node, c.naming.VariableName(tt.node.Name)))
		})
	}
}

func TestClassifySuspiciousGate(t *testing.T) {
	c := New(&utils.NullLogger{})

	// High confidence but tiny: not reported.
	tiny := testutil.Node("1", "window.miniCache", model.TypeObject, 512, 512)
	// Medium severity but above the size floor: reported.
	floor := testutil.Node("2", "window.sessionStore", model.TypeObject, 60<<10, 60<<10)

	report := c.Classify("snap", []*model.HeapNode{tiny, floor})
	require.Len(t, report.Findings, 1)
	assert.Equal(t, "window.sessionStore", report.Findings[0].Name)
	assert.Equal(t, 2, report.GlobalObjects)
}

func TestClassifySkipsBuiltinsAndBenignTypes(t *testing.T) {
	c := New(&utils.NullLogger{})
	nodes := []*model.HeapNode{
		testutil.Node("1", "window.console", model.TypeObject, 2<<20, 2<<20),
		testutil.Node("2", "window.localStorage", model.TypeNative, 2<<20, 2<<20),
		testutil.Node("3", "window.counter", model.TypeNumber, 2<<20, 2<<20),
		testutil.Node("4", "window", model.TypeObject, 2<<20, 2<<20),
	}

	report := c.Classify("snap", nodes)
	assert.Empty(t, report.Findings)
	assert.Equal(t, 4, report.TotalScanned)
	assert.Contains(t, report.Summary, "Healthy")
}

func TestClassifyNonGlobalIgnored(t *testing.T) {
	c := New(&utils.NullLogger{})
	nodes := []*model.HeapNode{
		testutil.Node("1", "localBuffer", model.TypeArray, 5<<20, 5<<20),
	}

	report := c.Classify("snap", nodes)
	assert.Empty(t, report.Findings)
	assert.Equal(t, 0, report.GlobalObjects)
}

func TestClassifyGlobalByReferrerEdge(t *testing.T) {
	c := New(&utils.NullLogger{})
	node := testutil.Node("1", "eventArchive", model.TypeArray, 2<<20, 2<<20)
	node.Referrers = []model.Edge{{Name: "window", NodeID: "0"}}

	report := c.Classify("snap", []*model.HeapNode{node})
	require.Len(t, report.Findings, 1)
	// 50 +30 size +20 container +10 array, no namespace bonus.
	assert.Equal(t, 95, report.Findings[0].Confidence)
}

func TestClassifySortedByRetainedSize(t *testing.T) {
	c := New(&utils.NullLogger{})
	nodes := []*model.HeapNode{
		testutil.Node("1", "window.smallCache", model.TypeObject, 2<<20, 2<<20),
		testutil.Node("2", "window.bigCache", model.TypeObject, 2<<20, 8<<20),
		testutil.Node("3", "window.midCache", model.TypeObject, 2<<20, 4<<20),
	}

	report := c.Classify("snap", nodes)
	require.Len(t, report.Findings, 3)
	assert.Equal(t, "window.bigCache", report.Findings[0].Name)
	assert.Equal(t, "window.midCache", report.Findings[1].Name)
	assert.Equal(t, "window.smallCache", report.Findings[2].Name)
}

func TestClassifyConfidenceBounds(t *testing.T) {
	c := New(&utils.NullLogger{})
	for size := int64(0); size < 32<<20; size = size*2 + 1 {
		for _, nodeType := range []model.NodeType{model.TypeObject, model.TypeArray, model.TypeClosure} {
			node := testutil.Node("1", fmt.Sprintf("window.cacheStore%d", size), nodeType, size, size)
			got := c.score(node, c.naming.VariableName(node.Name))
			assert.GreaterOrEqual(t, got, 0)
			assert.LessOrEqual(t, got, 95)
		}
	}
}

func TestClassifyEmptyInput(t *testing.T) {
	c := New(&utils.NullLogger{})
	report := c.Classify("snap", nil)
	assert.NotNil(t, report.Findings)
	assert.Empty(t, report.Findings)
	assert.Equal(t, "Healthy: no suspicious global-scope objects among 0 scanned", report.Summary)
}
