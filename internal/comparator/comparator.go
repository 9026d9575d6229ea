// Package comparator surfaces growth patterns between two heap snapshots.
package comparator

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/heapscope/internal/advisor"
	"github.com/heapscope/pkg/model"
	"github.com/heapscope/pkg/parallel"
	"github.com/heapscope/pkg/utils"
)

const (
	// suspiciousObjectSize is the per-object size threshold for array and
	// closure growth matching.
	suspiciousObjectSize = 50 << 10 // 50KB

	// listenerMinSize filters out trivially small listener entries.
	listenerMinSize = 100 // bytes

	// maxExamples caps the example object names carried per finding.
	maxExamples = 3

	// recommendationConfidence gates which findings produce a recommendation.
	recommendationConfidence = 70
)

// numGrowthClasses must match len(growthClasses).
const numGrowthClasses = 3

// growthClasses lists the matchers in report order. Matching is against the
// "after" snapshot alone with absolute thresholds; the "before" snapshot only
// gates whether the class grew (node ids are not stable across snapshots, so
// identity-based diffing is not possible here).
var growthClasses = []struct {
	class model.GrowthClass
	match func(*model.HeapNode) bool
	size  func(*model.HeapNode) int64
}{
	{
		class: model.GrowthArrays,
		match: func(n *model.HeapNode) bool {
			return n.Type.IsArrayLike() && n.SelfSize > suspiciousObjectSize
		},
		size: func(n *model.HeapNode) int64 { return n.SelfSize },
	},
	{
		class: model.GrowthListeners,
		match: func(n *model.HeapNode) bool {
			name := strings.ToLower(n.Name)
			return (strings.Contains(name, "eventlistener") ||
				strings.Contains(name, "listener") ||
				strings.Contains(name, "addeventlistener")) &&
				n.SelfSize > listenerMinSize
		},
		size: func(n *model.HeapNode) int64 { return n.SelfSize },
	},
	{
		class: model.GrowthClosures,
		match: func(n *model.HeapNode) bool {
			return (n.Type == model.TypeClosure || strings.Contains(strings.ToLower(n.Name), "closure")) &&
				n.RetainedSize > suspiciousObjectSize
		},
		size: func(n *model.HeapNode) int64 { return n.RetainedSize },
	},
}

// classStats accumulates per-class match statistics over one node list.
type classStats struct {
	counts   [numGrowthClasses]int
	sizes    [numGrowthClasses]int64
	examples [numGrowthClasses][]string
}

func (s classStats) merge(other classStats) classStats {
	for i := range growthClasses {
		s.counts[i] += other.counts[i]
		s.sizes[i] += other.sizes[i]
		for _, name := range other.examples[i] {
			if len(s.examples[i]) < maxExamples {
				s.examples[i] = append(s.examples[i], name)
			}
		}
	}
	return s
}

// Comparator compares a "before" and an "after" snapshot of the same
// application and reports growth pattern findings.
type Comparator struct {
	advisor *advisor.Advisor
	logger  utils.Logger
	pool    parallel.PoolConfig
}

// New creates a Comparator with the default worker pool.
func New(logger utils.Logger) *Comparator {
	if logger == nil {
		logger = &utils.NullLogger{}
	}
	return &Comparator{
		advisor: advisor.New(),
		logger:  logger,
		pool:    parallel.DefaultPoolConfig(),
	}
}

// Compare scans both node lists and reports the growth pattern classes whose
// match count increased from before to after. Identical lists therefore
// produce zero findings. Findings are sorted by aggregate size descending.
func (c *Comparator) Compare(ctx context.Context, before, after []*model.HeapNode) *model.ComparisonReport {
	report := &model.ComparisonReport{
		BeforeCount: len(before),
		AfterCount:  len(after),
		Findings:    make([]model.GrowthFinding, 0),
	}

	beforeStats := c.scan(ctx, before)
	afterStats := c.scan(ctx, after)

	for i, gc := range growthClasses {
		afterCount := afterStats.counts[i]
		beforeCount := beforeStats.counts[i]
		if afterCount == 0 || afterCount <= beforeCount {
			continue
		}

		factor := growthFactor(beforeCount, afterCount)
		totalSize := afterStats.sizes[i]
		confidence := growthConfidence(totalSize, factor)

		report.Findings = append(report.Findings, model.GrowthFinding{
			Class:        gc.class,
			ObjectCount:  afterCount,
			TotalSize:    totalSize,
			GrowthFactor: factor,
			Confidence:   confidence,
			Severity:     model.SeverityForSize(totalSize),
			Description:  c.advisor.DescribeGrowth(gc.class, afterCount, totalSize),
			SuggestedFix: c.advisor.SuggestGrowthFix(gc.class),
			Examples:     afterStats.examples[i],
		})
	}

	sort.SliceStable(report.Findings, func(i, j int) bool {
		return report.Findings[i].TotalSize > report.Findings[j].TotalSize
	})

	for _, f := range report.Findings {
		if f.Confidence > recommendationConfidence {
			report.Recommendations = append(report.Recommendations,
				fmt.Sprintf("[%s] %s", f.Class, f.SuggestedFix))
		}
	}

	report.Summary = c.summarize(report)
	c.logger.Debug("compared snapshots: %d before, %d after, %d findings",
		len(before), len(after), len(report.Findings))
	return report
}

// scan accumulates per-class match statistics over a node list in parallel
// chunks. Chunk results merge in chunk order, keeping example order stable.
func (c *Comparator) scan(ctx context.Context, nodes []*model.HeapNode) classStats {
	return parallel.ProcessChunks(ctx, nodes, c.pool,
		func(_ context.Context, chunk []*model.HeapNode) classStats {
			var stats classStats
			for _, node := range chunk {
				if node == nil {
					continue
				}
				for i, gc := range growthClasses {
					if !gc.match(node) {
						continue
					}
					stats.counts[i]++
					stats.sizes[i] += gc.size(node)
					if len(stats.examples[i]) < maxExamples {
						stats.examples[i] = append(stats.examples[i], node.Name)
					}
				}
			}
			return stats
		},
		func(results []classStats) classStats {
			var merged classStats
			for _, r := range results {
				merged = merged.merge(r)
			}
			return merged
		})
}

// growthFactor derives a growth multiple from before/after match counts.
func growthFactor(beforeCount, afterCount int) float64 {
	if beforeCount == 0 {
		return float64(afterCount)
	}
	return float64(afterCount) / float64(beforeCount)
}

// growthConfidence scores a finding from its aggregate size and growth factor.
func growthConfidence(totalSize int64, factor float64) int {
	confidence := 50
	switch {
	case totalSize > 1<<20:
		confidence += 20
	case totalSize > 100<<10:
		confidence += 10
	}
	switch {
	case factor >= 2:
		confidence += 15
	case factor > 1:
		confidence += 5
	}
	if confidence > 95 {
		confidence = 95
	}
	return confidence
}

func (c *Comparator) summarize(report *model.ComparisonReport) string {
	if len(report.Findings) == 0 {
		return fmt.Sprintf("No growth patterns detected between snapshots (%d vs %d objects)",
			report.BeforeCount, report.AfterCount)
	}
	classes := make([]string, 0, len(report.Findings))
	for _, f := range report.Findings {
		classes = append(classes, string(f.Class))
	}
	return fmt.Sprintf("%d growth pattern(s) detected: %s",
		len(report.Findings), strings.Join(classes, ", "))
}
