package formatter

import (
	"strings"

	"github.com/heapscope/pkg/model"
	"github.com/heapscope/pkg/utils"
)

// ComparisonFormatter formats cross-snapshot comparison reports.
type ComparisonFormatter struct{}

// SupportedTypes returns the result types this formatter supports.
func (f *ComparisonFormatter) SupportedTypes() []model.ResultType {
	return []model.ResultType{model.ResultComparison}
}

// Format outputs the comparison report to the logger.
func (f *ComparisonFormatter) Format(res *model.AnalysisResult, log utils.Logger) {
	log.Info("=== Snapshot Comparison ===")
	log.Info("Run UUID:  %s", res.RunUUID)
	log.Info("")

	report := res.Comparison
	if report == nil {
		log.Info("(No comparison data available)")
		return
	}

	log.Info("Before: %d objects", report.BeforeCount)
	log.Info("After:  %d objects", report.AfterCount)
	log.Info("")

	for _, finding := range report.Findings {
		log.Info("  [%s] %s", finding.Severity, finding.Class)
		log.Info("      %d object(s), total %s, growth %.1fx, confidence %d%%",
			finding.ObjectCount, formatBytes(finding.TotalSize), finding.GrowthFactor, finding.Confidence)
		if len(finding.Examples) > 0 {
			log.Info("      examples: %s", truncateString(strings.Join(finding.Examples, ", "), 100))
		}
	}

	if len(report.Recommendations) > 0 {
		log.Info("")
		log.Info("=== Recommendations ===")
		for _, rec := range report.Recommendations {
			log.Info("  - %s", rec)
		}
	}

	log.Info("")
	log.Info("%s", report.Summary)
}

// FormatSummary returns a summary map for serialization.
func (f *ComparisonFormatter) FormatSummary(res *model.AnalysisResult) map[string]interface{} {
	summary := map[string]interface{}{
		"run_uuid":    res.RunUUID,
		"result_type": string(res.ResultType),
		"duration_ms": res.Duration,
	}
	if res.Comparison != nil {
		summary["before_count"] = res.Comparison.BeforeCount
		summary["after_count"] = res.Comparison.AfterCount
		summary["findings_count"] = len(res.Comparison.Findings)
		summary["summary"] = res.Comparison.Summary
	}
	return summary
}
