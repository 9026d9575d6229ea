package formatter

import (
	"strings"

	"github.com/heapscope/pkg/model"
	"github.com/heapscope/pkg/utils"
)

// TreeFormatter formats explored retention trees.
type TreeFormatter struct{}

// SupportedTypes returns the result types this formatter supports.
func (f *TreeFormatter) SupportedTypes() []model.ResultType {
	return []model.ResultType{model.ResultExplore}
}

// Format outputs the explored tree to the logger, one line per node.
func (f *TreeFormatter) Format(res *model.AnalysisResult, log utils.Logger) {
	log.Info("=== Retention Tree ===")
	log.Info("Run UUID:  %s", res.RunUUID)
	log.Info("Snapshot:  %s", res.SnapshotID)
	log.Info("")

	if res.Tree == nil {
		log.Info("(No tree data available)")
		return
	}

	f.printNode(res.Tree, log)
	log.Info("")
	log.Info("Fetched nodes: %d", res.Tree.CountFetched())
}

func (f *TreeFormatter) printNode(node *model.ExploredNode, log utils.Logger) {
	indent := strings.Repeat("  ", node.Depth)
	switch {
	case node.IsSentinel():
		log.Info("%s%s", indent, node.Name)
	case node.Pattern != "":
		log.Info("%s%s <%s> self=%s retained=%s [%s]",
			indent, truncateString(node.Name, 60), node.Type,
			formatBytes(node.SelfSize), formatBytes(node.RetainedSize), node.Pattern)
	default:
		log.Info("%s%s <%s> self=%s retained=%s",
			indent, truncateString(node.Name, 60), node.Type,
			formatBytes(node.SelfSize), formatBytes(node.RetainedSize))
	}
	for _, child := range node.Children {
		f.printNode(child, log)
	}
}

// FormatSummary returns a summary map for serialization.
func (f *TreeFormatter) FormatSummary(res *model.AnalysisResult) map[string]interface{} {
	summary := map[string]interface{}{
		"run_uuid":    res.RunUUID,
		"snapshot_id": res.SnapshotID,
		"result_type": string(res.ResultType),
		"duration_ms": res.Duration,
	}
	if res.Tree != nil {
		summary["root"] = res.Tree.Name
		summary["fetched_nodes"] = res.Tree.CountFetched()
		patterns := make(map[string]int)
		res.Tree.Walk(func(n *model.ExploredNode) {
			if n.Pattern != "" {
				patterns[string(n.Pattern)]++
			}
		})
		summary["patterns"] = patterns
	}
	return summary
}
