package formatter

import (
	"github.com/heapscope/pkg/model"
	"github.com/heapscope/pkg/utils"
)

// TraceFormatter formats retainer trace results.
type TraceFormatter struct{}

// SupportedTypes returns the result types this formatter supports.
func (f *TraceFormatter) SupportedTypes() []model.ResultType {
	return []model.ResultType{model.ResultTrace}
}

// Format outputs the trace result to the logger.
func (f *TraceFormatter) Format(res *model.AnalysisResult, log utils.Logger) {
	log.Info("=== Retainer Trace ===")
	log.Info("Run UUID:  %s", res.RunUUID)
	log.Info("Snapshot:  %s", res.SnapshotID)
	log.Info("")

	trace := res.Trace
	if trace == nil {
		log.Info("(No trace data available)")
		return
	}

	log.Info("Node:        %s", trace.NodeID)
	log.Info("Likely leak: %v (confidence %.2f)", trace.IsLikelyLeak, trace.Confidence)
	log.Info("Root type:   %s", trace.RetainerInfo.RootType)
	log.Info("Path length: %d", trace.RetainerInfo.PathLength)
	log.Info("Detached:    %v", trace.RetainerInfo.IsDetached)
	log.Info("")

	log.Info("=== Retainer Path (root -> target) ===")
	for i, hop := range trace.RootPath {
		log.Info("  %2d. %s", i+1, truncateString(hop, 90))
	}

	log.Info("")
	log.Info("%s", trace.Explanation)
	if trace.ActionableAdvice != "" {
		log.Info("Advice: %s", trace.ActionableAdvice)
	}
}

// FormatSummary returns a summary map for serialization.
func (f *TraceFormatter) FormatSummary(res *model.AnalysisResult) map[string]interface{} {
	summary := map[string]interface{}{
		"run_uuid":    res.RunUUID,
		"snapshot_id": res.SnapshotID,
		"result_type": string(res.ResultType),
		"duration_ms": res.Duration,
	}
	if res.Trace != nil {
		summary["node_id"] = res.Trace.NodeID
		summary["is_likely_leak"] = res.Trace.IsLikelyLeak
		summary["confidence"] = res.Trace.Confidence
		summary["root_type"] = string(res.Trace.RetainerInfo.RootType)
		summary["path_length"] = res.Trace.RetainerInfo.PathLength
	}
	return summary
}
