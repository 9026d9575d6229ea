package model

import "time"

// Severity is a coarse impact bucket derived from object size.
type Severity string

const (
	SeverityLow      Severity = "LOW"
	SeverityMedium   Severity = "MEDIUM"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
)

// rank orders severities for comparisons in reports and tests.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 3
	case SeverityHigh:
		return 2
	case SeverityMedium:
		return 1
	default:
		return 0
	}
}

// SeverityForSize buckets a byte size into a severity. The thresholds are
// exclusive lower bounds: >10MB critical, >1MB high, >100KB medium.
func SeverityForSize(size int64) Severity {
	switch {
	case size > 10<<20:
		return SeverityCritical
	case size > 1<<20:
		return SeverityHigh
	case size > 100<<10:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// ScoredFinding is a single suspicious object surfaced by the global-scope
// classifier. Findings are recomputed on every run and never persisted by
// the core itself.
type ScoredFinding struct {
	Name         string   `json:"name"`
	Type         NodeType `json:"type"`
	SelfSize     int64    `json:"self_size"`
	RetainedSize int64    `json:"retained_size"`
	Confidence   int      `json:"confidence"` // 0..95
	Severity     Severity `json:"severity"`
	Description  string   `json:"description"`
	SuggestedFix string   `json:"suggested_fix,omitempty"`
}

// GlobalScopeReport is the output of the global-scope leak classifier.
type GlobalScopeReport struct {
	SnapshotID    string          `json:"snapshot_id"`
	TotalScanned  int             `json:"total_scanned"`
	GlobalObjects int             `json:"global_objects"`
	Findings      []ScoredFinding `json:"findings"`
	Summary       string          `json:"summary"`
}

// GrowthClass identifies a cross-snapshot growth pattern class.
type GrowthClass string

const (
	GrowthArrays    GrowthClass = "array-growth"
	GrowthListeners GrowthClass = "event-listener-accumulation"
	GrowthClosures  GrowthClass = "closure-leak"
)

// GrowthFinding aggregates all objects of one growth pattern class.
type GrowthFinding struct {
	Class        GrowthClass `json:"class"`
	ObjectCount  int         `json:"object_count"`
	TotalSize    int64       `json:"total_size"`
	GrowthFactor float64     `json:"growth_factor"`
	Confidence   int         `json:"confidence"` // 0..95
	Severity     Severity    `json:"severity"`
	Description  string      `json:"description"`
	SuggestedFix string      `json:"suggested_fix"`
	Examples     []string    `json:"examples,omitempty"` // up to 3 object names
}

// ComparisonReport is the output of the cross-snapshot comparator.
type ComparisonReport struct {
	BeforeCount     int             `json:"before_count"`
	AfterCount      int             `json:"after_count"`
	Findings        []GrowthFinding `json:"findings"`
	Recommendations []string        `json:"recommendations,omitempty"`
	Summary         string          `json:"summary"`
}

// ResultType identifies which analysis produced a result.
type ResultType string

const (
	ResultExplore     ResultType = "explore"
	ResultGlobalScope ResultType = "global-scope"
	ResultComparison  ResultType = "comparison"
	ResultTrace       ResultType = "trace"
)

// AnalysisResult is the envelope handed to formatters, writers, and the
// run-history repository. Exactly one payload field is set per ResultType.
type AnalysisResult struct {
	RunUUID     string     `json:"run_uuid"`
	SnapshotID  string     `json:"snapshot_id"`
	ResultType  ResultType `json:"result_type"`
	GeneratedAt time.Time  `json:"generated_at"`
	Duration    int64      `json:"duration_ms"`

	Tree        *ExploredNode      `json:"tree,omitempty"`
	GlobalScope *GlobalScopeReport `json:"global_scope,omitempty"`
	Comparison  *ComparisonReport  `json:"comparison,omitempty"`
	Trace       *TraceResult       `json:"trace,omitempty"`
}
