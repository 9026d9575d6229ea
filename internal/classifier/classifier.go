// Package classifier scores global-scope objects as memory leak candidates.
package classifier

import (
	"fmt"
	"sort"

	"github.com/heapscope/internal/advisor"
	"github.com/heapscope/pkg/filter"
	"github.com/heapscope/pkg/model"
	"github.com/heapscope/pkg/utils"
)

// Size thresholds in bytes for the confidence and severity ladders.
const (
	sizeSmall      = 1 << 10   // 1KB
	sizeMedium     = 10 << 10  // 10KB
	sizeLarge      = 100 << 10 // 100KB
	sizeSuspicious = 50 << 10  // 50KB, minimum for a low-severity report
)

const (
	baseConfidence = 50
	maxConfidence  = 95
)

// Classifier scans a flat node list for suspicious global-scope objects.
type Classifier struct {
	naming  NamingHeuristics
	filter  *filter.NameFilter
	advisor *advisor.Advisor
	logger  utils.Logger
}

// New creates a Classifier with the default name-based heuristics.
func New(logger utils.Logger) *Classifier {
	return NewWithHeuristics(NewNameHeuristics(), logger)
}

// NewWithHeuristics creates a Classifier with custom global-scope heuristics.
func NewWithHeuristics(naming NamingHeuristics, logger utils.Logger) *Classifier {
	if logger == nil {
		logger = &utils.NullLogger{}
	}
	return &Classifier{
		naming:  naming,
		filter:  filter.NewNameFilter(),
		advisor: advisor.New(),
		logger:  logger,
	}
}

// Classify scans the node list and reports suspicious global-scope objects,
// sorted by retained size descending. An empty input yields an empty findings
// list and a healthy summary.
func (c *Classifier) Classify(snapshotID string, nodes []*model.HeapNode) *model.GlobalScopeReport {
	report := &model.GlobalScopeReport{
		SnapshotID:   snapshotID,
		TotalScanned: len(nodes),
		Findings:     make([]model.ScoredFinding, 0),
	}

	for _, node := range nodes {
		if node == nil || !c.naming.IsGlobalScoped(node) {
			continue
		}
		if node.Type.IsBenignGlobal() {
			continue
		}
		variable := c.naming.VariableName(node.Name)
		if c.filter.IsBuiltinGlobal(variable) {
			continue
		}
		report.GlobalObjects++

		confidence := c.score(node, variable)
		severity := model.SeverityForSize(node.SelfSize)
		if !suspicious(confidence, severity, node.SelfSize) {
			continue
		}

		report.Findings = append(report.Findings, model.ScoredFinding{
			Name:         node.Name,
			Type:         node.Type,
			SelfSize:     node.SelfSize,
			RetainedSize: node.RetainedSize,
			Confidence:   confidence,
			Severity:     severity,
			Description: fmt.Sprintf("Global-scope %s %q holds %d bytes (retains %d bytes)",
				node.Type, variable, node.SelfSize, node.RetainedSize),
			SuggestedFix: c.advisor.SuggestFix(node.Name, node.Type),
		})
	}

	sort.SliceStable(report.Findings, func(i, j int) bool {
		a, b := report.Findings[i], report.Findings[j]
		if a.RetainedSize != b.RetainedSize {
			return a.RetainedSize > b.RetainedSize
		}
		return a.Name < b.Name
	})

	report.Summary = c.summarize(report)
	c.logger.Debug("classified %s: %d scanned, %d globals, %d findings",
		snapshotID, report.TotalScanned, report.GlobalObjects, len(report.Findings))
	return report
}

// score computes the confidence ladder for a global-scope candidate.
func (c *Classifier) score(node *model.HeapNode, variable string) int {
	confidence := baseConfidence
	switch {
	case node.SelfSize > sizeLarge:
		confidence += 30
	case node.SelfSize > sizeMedium:
		confidence += 20
	case node.SelfSize > sizeSmall:
		confidence += 10
	}
	if c.filter.IsStatefulContainer(variable) {
		confidence += 20
	}
	if c.naming.IsNamespaced(node.Name) {
		confidence += 15
	}
	switch {
	case node.Type.IsArrayLike():
		confidence += 10
	case node.Type == model.TypeObject:
		confidence += 5
	}
	if confidence > maxConfidence {
		confidence = maxConfidence
	}
	if confidence < 0 {
		confidence = 0
	}
	return confidence
}

func suspicious(confidence int, severity model.Severity, selfSize int64) bool {
	if confidence <= 60 {
		return false
	}
	return severity.Rank() >= model.SeverityHigh.Rank() || selfSize > sizeSuspicious
}

func (c *Classifier) summarize(report *model.GlobalScopeReport) string {
	if len(report.Findings) == 0 {
		return fmt.Sprintf("Healthy: no suspicious global-scope objects among %d scanned", report.TotalScanned)
	}
	var critical, high int
	for _, f := range report.Findings {
		switch f.Severity {
		case model.SeverityCritical:
			critical++
		case model.SeverityHigh:
			high++
		}
	}
	return fmt.Sprintf("%d suspicious global-scope object(s) found (%d critical, %d high) among %d scanned",
		len(report.Findings), critical, high, report.TotalScanned)
}
