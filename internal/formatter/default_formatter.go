package formatter

import (
	"github.com/heapscope/pkg/model"
	"github.com/heapscope/pkg/utils"
)

// DefaultFormatter handles result types without a dedicated formatter.
type DefaultFormatter struct{}

// SupportedTypes returns the result types this formatter supports.
func (f *DefaultFormatter) SupportedTypes() []model.ResultType {
	return nil
}

// Format outputs a generic view of the result to the logger.
func (f *DefaultFormatter) Format(res *model.AnalysisResult, log utils.Logger) {
	log.Info("=== Analysis Result ===")
	log.Info("Run UUID:    %s", res.RunUUID)
	log.Info("Snapshot:    %s", res.SnapshotID)
	log.Info("Type:        %s", res.ResultType)
	log.Info("Duration:    %d ms", res.Duration)
}

// FormatSummary returns a summary map for serialization.
func (f *DefaultFormatter) FormatSummary(res *model.AnalysisResult) map[string]interface{} {
	return map[string]interface{}{
		"run_uuid":    res.RunUUID,
		"snapshot_id": res.SnapshotID,
		"result_type": string(res.ResultType),
		"duration_ms": res.Duration,
	}
}
