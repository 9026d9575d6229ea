// Package model defines the core data types shared across heapscope components.
package model

// NodeType is the closed set of heap node type categories.
type NodeType string

const (
	TypeObject    NodeType = "object"
	TypeArray     NodeType = "array"
	TypeClosure   NodeType = "closure"
	TypeNumber    NodeType = "number"
	TypeString    NodeType = "string"
	TypeBoolean   NodeType = "boolean"
	TypeSymbol    NodeType = "symbol"
	TypeBigInt    NodeType = "bigint"
	TypeNull      NodeType = "null"
	TypeUndefined NodeType = "undefined"
	TypeNative    NodeType = "native"
	TypeHidden    NodeType = "hidden"

	// TypeInfo marks synthetic nodes injected by the explorer (budget sentinels).
	TypeInfo NodeType = "info"

	// TypeUnknown is used when the provider cannot resolve a node.
	TypeUnknown NodeType = "unknown"
)

// ParseNodeType maps a raw type string to a NodeType, defaulting to TypeUnknown.
func ParseNodeType(s string) NodeType {
	switch NodeType(s) {
	case TypeObject, TypeArray, TypeClosure, TypeNumber, TypeString, TypeBoolean,
		TypeSymbol, TypeBigInt, TypeNull, TypeUndefined, TypeNative, TypeHidden, TypeInfo:
		return NodeType(s)
	default:
		return TypeUnknown
	}
}

// IsArrayLike reports whether the type is followed under the followArrays option.
func (t NodeType) IsArrayLike() bool {
	return t == TypeArray
}

// IsObjectLike reports whether the type is followed under the followObjects option.
func (t NodeType) IsObjectLike() bool {
	switch t {
	case TypeObject, TypeClosure, TypeNative:
		return true
	default:
		return false
	}
}

// IsPrimitive reports whether the type is a primitive value kind.
func (t NodeType) IsPrimitive() bool {
	switch t {
	case TypeNumber, TypeString, TypeBoolean, TypeSymbol, TypeBigInt, TypeNull, TypeUndefined:
		return true
	default:
		return false
	}
}

// IsBenignGlobal reports whether the type category is excluded from
// global-scope leak classification.
func (t NodeType) IsBenignGlobal() bool {
	switch t {
	case TypeHidden, TypeNumber, TypeBoolean, TypeNull, TypeUndefined, TypeSymbol:
		return true
	default:
		return false
	}
}

// Edge is a single reference between two heap nodes. For an outgoing
// reference NodeID is the target; for a referrer edge it is the source.
type Edge struct {
	Name   string   `json:"name,omitempty"`
	Type   NodeType `json:"type,omitempty"`
	NodeID string   `json:"node_id"`
}

// HeapNode is a single retained object in a snapshot. Nodes are immutable
// once produced by the provider; retained size is always >= self size.
type HeapNode struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Type         NodeType `json:"type"`
	SelfSize     int64    `json:"self_size"`
	RetainedSize int64    `json:"retained_size"`
	References   []Edge   `json:"references,omitempty"`
	Referrers    []Edge   `json:"referrers,omitempty"`
}
