package classifier

import (
	"strings"

	"github.com/heapscope/pkg/model"
)

// NamingHeuristics identifies global-scope membership from node names and
// edges. Name-string parsing is fragile by nature, so it is kept behind this
// interface so a structural, edge-based implementation can replace it if the
// provider ever exposes real edge names.
type NamingHeuristics interface {
	// IsGlobalScoped reports whether the node looks like a member of the
	// global scope.
	IsGlobalScoped(node *model.HeapNode) bool
	// IsNamespaced reports whether the name is explicitly prefixed with a
	// global namespace marker such as "window." or "global.".
	IsNamespaced(name string) bool
	// VariableName strips any global namespace prefix and returns the bare
	// variable name.
	VariableName(name string) string
}

// globalMarkers are edge or node names that directly identify the global object.
var globalMarkers = map[string]bool{
	"window":     true,
	"global":     true,
	"globalThis": true,
}

// nameHeuristics is the default NamingHeuristics built on name-string parsing.
type nameHeuristics struct{}

// NewNameHeuristics returns the default name-string based heuristics.
func NewNameHeuristics() NamingHeuristics {
	return nameHeuristics{}
}

func (nameHeuristics) IsGlobalScoped(node *model.HeapNode) bool {
	if node == nil {
		return false
	}
	name := node.Name
	if strings.Contains(name, "window.") || strings.Contains(name, "global.") {
		return true
	}
	if globalMarkers[name] {
		return true
	}
	for _, ref := range node.Referrers {
		if globalMarkers[ref.Name] {
			return true
		}
	}
	return false
}

func (nameHeuristics) IsNamespaced(name string) bool {
	return strings.HasPrefix(name, "window.") || strings.HasPrefix(name, "global.")
}

func (nameHeuristics) VariableName(name string) string {
	if idx := strings.Index(name, "window."); idx >= 0 {
		return name[idx+len("window."):]
	}
	if idx := strings.Index(name, "global."); idx >= 0 {
		return name[idx+len("global."):]
	}
	return name
}
