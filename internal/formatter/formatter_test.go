package formatter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heapscope/pkg/model"
	"github.com/heapscope/pkg/utils"
)

func TestRegistryDispatch(t *testing.T) {
	r := NewRegistry()

	assert.IsType(t, &TreeFormatter{}, r.Get(model.ResultExplore))
	assert.IsType(t, &GlobalScopeFormatter{}, r.Get(model.ResultGlobalScope))
	assert.IsType(t, &ComparisonFormatter{}, r.Get(model.ResultComparison))
	assert.IsType(t, &TraceFormatter{}, r.Get(model.ResultTrace))
	assert.IsType(t, &DefaultFormatter{}, r.Get(model.ResultType("bogus")))
}

func TestRegistryFormatNilResult(t *testing.T) {
	r := NewRegistry()
	assert.NotPanics(t, func() { r.Format(nil, &utils.NullLogger{}) })
	assert.Nil(t, r.FormatSummary(nil))
}

func TestTreeFormatterSummary(t *testing.T) {
	tree := &model.ExploredNode{
		NodeID: "1", Name: "root", Type: model.TypeObject,
		Children: []*model.ExploredNode{
			{NodeID: "2", Name: "samples", Type: model.TypeArray, Depth: 1,
				Pattern: model.PatternArrayOfNumbers},
			{Name: "(node limit reached)", Type: model.TypeInfo, Depth: 1},
		},
	}
	res := &model.AnalysisResult{
		RunUUID:    "run-1",
		SnapshotID: "snap",
		ResultType: model.ResultExplore,
		Tree:       tree,
	}

	summary := (&TreeFormatter{}).FormatSummary(res)
	assert.Equal(t, "run-1", summary["run_uuid"])
	assert.Equal(t, "root", summary["root"])
	assert.Equal(t, 2, summary["fetched_nodes"])

	patterns, ok := summary["patterns"].(map[string]int)
	require.True(t, ok)
	assert.Equal(t, 1, patterns[string(model.PatternArrayOfNumbers)])
}

func TestGlobalScopeFormatterSummary(t *testing.T) {
	res := &model.AnalysisResult{
		RunUUID:    "run-1",
		ResultType: model.ResultGlobalScope,
		GlobalScope: &model.GlobalScopeReport{
			TotalScanned:  12,
			GlobalObjects: 3,
			Findings:      []model.ScoredFinding{{Name: "window.cache"}},
			Summary:       "1 suspicious global-scope object(s) found",
		},
	}

	summary := (&GlobalScopeFormatter{}).FormatSummary(res)
	assert.Equal(t, 12, summary["total_scanned"])
	assert.Equal(t, 3, summary["global_objects"])
	assert.Equal(t, 1, summary["findings_count"])
}

func TestFormatDoesNotPanicOnMissingPayload(t *testing.T) {
	r := NewRegistry()
	log := &utils.NullLogger{}
	for _, resultType := range []model.ResultType{
		model.ResultExplore, model.ResultGlobalScope,
		model.ResultComparison, model.ResultTrace,
	} {
		res := &model.AnalysisResult{RunUUID: "run", ResultType: resultType}
		assert.NotPanics(t, func() { r.Format(res, log) })
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{512, "512 B"},
		{2048, "2.00 KB"},
		{3 << 20, "3.00 MB"},
		{5 << 30, "5.00 GB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatBytes(tt.bytes))
	}
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", truncateString("short", 10))
	assert.Equal(t, "abcdefg...", truncateString("abcdefghijklmn", 10))
}
