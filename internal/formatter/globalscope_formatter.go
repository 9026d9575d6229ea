package formatter

import (
	"github.com/heapscope/pkg/model"
	"github.com/heapscope/pkg/utils"
)

// GlobalScopeFormatter formats global-scope leak classification reports.
type GlobalScopeFormatter struct{}

// SupportedTypes returns the result types this formatter supports.
func (f *GlobalScopeFormatter) SupportedTypes() []model.ResultType {
	return []model.ResultType{model.ResultGlobalScope}
}

// Format outputs the classification report to the logger.
func (f *GlobalScopeFormatter) Format(res *model.AnalysisResult, log utils.Logger) {
	log.Info("=== Global-Scope Leak Analysis ===")
	log.Info("Run UUID:  %s", res.RunUUID)
	log.Info("Snapshot:  %s", res.SnapshotID)
	log.Info("")

	report := res.GlobalScope
	if report == nil {
		log.Info("(No classification data available)")
		return
	}

	log.Info("Scanned:        %d objects", report.TotalScanned)
	log.Info("Global objects: %d", report.GlobalObjects)
	log.Info("Findings:       %d", len(report.Findings))
	log.Info("")

	for i, finding := range report.Findings {
		if i >= 10 {
			log.Info("  ... and %d more findings", len(report.Findings)-10)
			break
		}
		log.Info("  %2d. [%s] %s (confidence %d%%)",
			i+1, finding.Severity, truncateString(finding.Name, 60), finding.Confidence)
		log.Info("      self=%s retained=%s type=%s",
			formatBytes(finding.SelfSize), formatBytes(finding.RetainedSize), finding.Type)
		if finding.SuggestedFix != "" {
			log.Info("      fix: %s", truncateString(finding.SuggestedFix, 100))
		}
	}

	log.Info("")
	log.Info("%s", report.Summary)
}

// FormatSummary returns a summary map for serialization.
func (f *GlobalScopeFormatter) FormatSummary(res *model.AnalysisResult) map[string]interface{} {
	summary := map[string]interface{}{
		"run_uuid":    res.RunUUID,
		"snapshot_id": res.SnapshotID,
		"result_type": string(res.ResultType),
		"duration_ms": res.Duration,
	}
	if res.GlobalScope != nil {
		summary["total_scanned"] = res.GlobalScope.TotalScanned
		summary["global_objects"] = res.GlobalScope.GlobalObjects
		summary["findings_count"] = len(res.GlobalScope.Findings)
		summary["summary"] = res.GlobalScope.Summary
	}
	return summary
}
