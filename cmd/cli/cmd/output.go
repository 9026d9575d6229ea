package cmd

import (
	"context"

	"github.com/heapscope/pkg/model"
)

// emitResult renders an analysis result through the formatter registry and
// optionally persists it as a JSON report artifact.
func emitResult(result *model.AnalysisResult) error {
	svc.Formatters().Format(result, logger)

	if !saveReport {
		return nil
	}
	path, err := svc.WriteReport(context.Background(), result)
	if err != nil {
		return err
	}
	logger.Info("Report written: %s", path)
	return nil
}
