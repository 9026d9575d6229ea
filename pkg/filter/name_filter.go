// Package filter provides unified object name filtering logic for heap analysis.
// This package consolidates the allow-list of built-in globals and the
// stateful-container vocabulary used by the leak classifier.
package filter

import "strings"

// ContainerKind categorizes a name matched against the stateful-container vocabulary.
type ContainerKind int

const (
	// KindNone indicates the name matched no container vocabulary.
	KindNone ContainerKind = iota
	// KindCache indicates cache-like containers (Cache, Store, Registry, Pool).
	KindCache
	// KindArray indicates array-like containers (Buffer, Archive, Collection).
	KindArray
	// KindMap indicates keyed containers (Map, Set).
	KindMap
	// KindState indicates state holders (Manager, Config, Settings, State, Data).
	KindState
)

// String returns the string representation of the container kind.
func (k ContainerKind) String() string {
	switch k {
	case KindCache:
		return "cache"
	case KindArray:
		return "array"
	case KindMap:
		return "map"
	case KindState:
		return "state"
	default:
		return "none"
	}
}

// containerVocabulary maps the curated stateful-container terms to their kind.
// Order matters: more specific fix buckets come first.
var containerVocabulary = []struct {
	term string
	kind ContainerKind
}{
	{"Cache", KindCache},
	{"Store", KindCache},
	{"Registry", KindCache},
	{"Pool", KindCache},
	{"Buffer", KindArray},
	{"Archive", KindArray},
	{"Collection", KindArray},
	{"Map", KindMap},
	{"Set", KindMap},
	{"Manager", KindState},
	{"Config", KindState},
	{"Settings", KindState},
	{"State", KindState},
	{"Data", KindState},
}

// builtinGlobals is the allow-list of well-known benign globals that should
// never be reported as leak candidates.
var builtinGlobals = map[string]bool{
	"window":                true,
	"global":                true,
	"globalThis":            true,
	"document":              true,
	"location":              true,
	"navigator":             true,
	"history":               true,
	"console":               true,
	"performance":           true,
	"screen":                true,
	"localStorage":          true,
	"sessionStorage":        true,
	"indexedDB":             true,
	"crypto":                true,
	"fetch":                 true,
	"setTimeout":            true,
	"setInterval":           true,
	"requestAnimationFrame": true,
	"JSON":                  true,
	"Math":                  true,
	"Intl":                  true,
	"Reflect":               true,
	"Proxy":                 true,
	"Promise":               true,
	"WeakMap":               true,
	"WeakSet":               true,
	"WeakRef":               true,
}

// NameFilter classifies heap object names. It is stateless and safe for
// concurrent use.
type NameFilter struct{}

// NewNameFilter creates a NameFilter with the default vocabulary.
func NewNameFilter() *NameFilter {
	return &NameFilter{}
}

// IsBuiltinGlobal reports whether the bare variable name is a well-known
// built-in global.
func (f *NameFilter) IsBuiltinGlobal(name string) bool {
	return builtinGlobals[name]
}

// ContainerKind returns the stateful-container kind of the name, matching the
// curated vocabulary case-sensitively (container names are conventionally
// capitalized: userCache, SessionStore, dataMap).
func (f *NameFilter) ContainerKind(name string) ContainerKind {
	for _, entry := range containerVocabulary {
		if strings.Contains(name, entry.term) {
			return entry.kind
		}
	}
	// Lower-case fallback for names like "cache" or "store" used verbatim.
	lower := strings.ToLower(name)
	for _, entry := range containerVocabulary {
		if strings.Contains(lower, strings.ToLower(entry.term)) {
			return entry.kind
		}
	}
	return KindNone
}

// IsStatefulContainer reports whether the name matches any container vocabulary.
func (f *NameFilter) IsStatefulContainer(name string) bool {
	return f.ContainerKind(name) != KindNone
}
