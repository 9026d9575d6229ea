package model

// RootType classifies the end of a retainer chain.
type RootType string

const (
	RootGlobal    RootType = "global"    // window./global. object
	RootGCRoot    RootType = "gc-root"   // recognized GC root (native, hidden)
	RootTransient RootType = "transient" // short-lived request/response owner
	RootFramework RootType = "framework" // UI-framework internal (e.g. Fiber)
	RootUnknown   RootType = "unknown"   // no further referrers, unclassified
)

// RetainerInfo summarizes the shape of a traced retainer chain.
type RetainerInfo struct {
	RootType   RootType `json:"root_type"`
	PathLength int      `json:"path_length"`
	IsDetached bool     `json:"is_detached"`
}

// TraceResult explains why a single object is retained.
type TraceResult struct {
	NodeID           string       `json:"node_id"`
	IsLikelyLeak     bool         `json:"is_likely_leak"`
	Confidence       float64      `json:"confidence"` // 0..1
	Explanation      string       `json:"explanation"`
	RootPath         []string     `json:"root_path"` // root -> target
	ActionableAdvice string       `json:"actionable_advice"`
	RetainerInfo     RetainerInfo `json:"retainer_info"`
}
