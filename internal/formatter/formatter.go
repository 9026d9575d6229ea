// Package formatter provides result formatting for different analysis types.
package formatter

import (
	"fmt"

	"github.com/heapscope/pkg/model"
	"github.com/heapscope/pkg/utils"
)

// ResultFormatter is the interface for formatting analysis results.
type ResultFormatter interface {
	// Format outputs the analysis result to the logger.
	Format(res *model.AnalysisResult, log utils.Logger)

	// FormatSummary returns a summary map for serialization.
	FormatSummary(res *model.AnalysisResult) map[string]interface{}

	// SupportedTypes returns the result types this formatter supports.
	SupportedTypes() []model.ResultType
}

// Registry manages formatter instances.
type Registry struct {
	formatters map[model.ResultType]ResultFormatter
	fallback   ResultFormatter
}

// NewRegistry creates a new formatter registry with default formatters.
func NewRegistry() *Registry {
	r := &Registry{
		formatters: make(map[model.ResultType]ResultFormatter),
		fallback:   &DefaultFormatter{},
	}

	r.Register(&TreeFormatter{})
	r.Register(&GlobalScopeFormatter{})
	r.Register(&ComparisonFormatter{})
	r.Register(&TraceFormatter{})

	return r
}

// Register registers a formatter.
func (r *Registry) Register(f ResultFormatter) {
	for _, t := range f.SupportedTypes() {
		r.formatters[t] = f
	}
}

// Get returns the formatter for a result type.
func (r *Registry) Get(resultType model.ResultType) ResultFormatter {
	if f, ok := r.formatters[resultType]; ok {
		return f
	}
	return r.fallback
}

// Format formats the analysis result using the appropriate formatter.
func (r *Registry) Format(res *model.AnalysisResult, log utils.Logger) {
	if res == nil {
		return
	}
	r.Get(res.ResultType).Format(res, log)
}

// FormatSummary returns a summary map using the appropriate formatter.
func (r *Registry) FormatSummary(res *model.AnalysisResult) map[string]interface{} {
	if res == nil {
		return nil
	}
	return r.Get(res.ResultType).FormatSummary(res)
}

// formatBytes formats bytes to human-readable string.
func formatBytes(bytes int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)

	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.2f GB", float64(bytes)/GB)
	case bytes >= MB:
		return fmt.Sprintf("%.2f MB", float64(bytes)/MB)
	case bytes >= KB:
		return fmt.Sprintf("%.2f KB", float64(bytes)/KB)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// truncateString truncates a string to maxLen characters.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
