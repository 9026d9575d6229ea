// Package detector annotates explored trees with structural pattern tags.
package detector

import (
	"strings"

	"github.com/heapscope/pkg/model"
)

// Detector tags explored nodes whose local shape matches a known structural
// pattern. Tagging is a pure post-pass: it never fetches and never changes
// the tree shape.
type Detector struct{}

func New() *Detector {
	return &Detector{}
}

// Annotate walks the tree and sets Pattern and Summary on every node whose
// shape matches a rule. Rules apply to a node and its direct children only;
// the walk recurses into all children whether or not the node matched.
func (d *Detector) Annotate(tree *model.ExploredNode) {
	if tree == nil {
		return
	}
	if pattern, summary := classify(tree); pattern != "" {
		tree.Pattern = pattern
		tree.Summary = summary
	}
	for _, child := range tree.Children {
		d.Annotate(child)
	}
}

// classify evaluates the pattern rules in order and returns the first match.
func classify(node *model.ExploredNode) (model.Pattern, string) {
	if node.Type.IsArrayLike() && len(node.Children) > 5 && allChildrenTyped(node, model.TypeNumber) {
		return model.PatternArrayOfNumbers, "Large numeric array; check for unbounded metric or sample accumulation"
	}
	if len(node.Children) > 10 && allChildrenArrayLike(node) {
		return model.PatternArrayOfArrays, "Nested array structure; check for accumulating batches or buffers"
	}
	if anyChildNameContains(node, "product", "sku", "price") {
		return model.PatternProductObject, "Domain data object; check whether it should be released after use"
	}
	if strings.Contains(node.Name, "Fiber") || anyChildNamed(node, "memoizedState") {
		return model.PatternReactFiber, "UI framework internal node; usually retained by the framework, not a leak"
	}
	return "", ""
}

func allChildrenTyped(node *model.ExploredNode, t model.NodeType) bool {
	for _, child := range node.Children {
		if child.Type != t {
			return false
		}
	}
	return true
}

func allChildrenArrayLike(node *model.ExploredNode) bool {
	for _, child := range node.Children {
		if !child.Type.IsArrayLike() {
			return false
		}
	}
	return true
}

func anyChildNameContains(node *model.ExploredNode, substrings ...string) bool {
	for _, child := range node.Children {
		name := strings.ToLower(child.Name)
		for _, sub := range substrings {
			if strings.Contains(name, sub) {
				return true
			}
		}
	}
	return false
}

func anyChildNamed(node *model.ExploredNode, name string) bool {
	for _, child := range node.Children {
		if child.Name == name {
			return true
		}
	}
	return false
}
