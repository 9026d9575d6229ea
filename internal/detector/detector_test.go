package detector

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/heapscope/pkg/model"
)

func explored(name string, nodeType model.NodeType, children ...*model.ExploredNode) *model.ExploredNode {
	return &model.ExploredNode{NodeID: name, Name: name, Type: nodeType, Children: children}
}

func numberChildren(n int) []*model.ExploredNode {
	children := make([]*model.ExploredNode, n)
	for i := range children {
		children[i] = explored(fmt.Sprintf("%d", i), model.TypeNumber)
	}
	return children
}

func arrayChildren(n int) []*model.ExploredNode {
	children := make([]*model.ExploredNode, n)
	for i := range children {
		children[i] = explored(fmt.Sprintf("row%d", i), model.TypeArray)
	}
	return children
}

func TestAnnotateArrayOfNumbers(t *testing.T) {
	node := explored("samples", model.TypeArray, numberChildren(6)...)
	New().Annotate(node)
	assert.Equal(t, model.PatternArrayOfNumbers, node.Pattern)
	assert.NotEmpty(t, node.Summary)

	// Five or fewer numeric children is too small to call a pattern.
	small := explored("samples", model.TypeArray, numberChildren(5)...)
	New().Annotate(small)
	assert.Empty(t, small.Pattern)
}

func TestAnnotateArrayOfArrays(t *testing.T) {
	node := explored("batches", model.TypeObject, arrayChildren(11)...)
	New().Annotate(node)
	assert.Equal(t, model.PatternArrayOfArrays, node.Pattern)

	few := explored("batches", model.TypeObject, arrayChildren(10)...)
	New().Annotate(few)
	assert.Empty(t, few.Pattern)
}

func TestAnnotateProductObject(t *testing.T) {
	node := explored("item", model.TypeObject,
		explored("SKU", model.TypeString),
		explored("quantity", model.TypeNumber),
	)
	New().Annotate(node)
	assert.Equal(t, model.PatternProductObject, node.Pattern)
}

func TestAnnotateReactFiber(t *testing.T) {
	byName := explored("FiberNode", model.TypeObject)
	New().Annotate(byName)
	assert.Equal(t, model.PatternReactFiber, byName.Pattern)

	byChild := explored("element", model.TypeObject,
		explored("memoizedState", model.TypeObject))
	New().Annotate(byChild)
	assert.Equal(t, model.PatternReactFiber, byChild.Pattern)
}

func TestAnnotateFirstMatchWins(t *testing.T) {
	// Matches both array-of-numbers and react-fiber by name; the earlier
	// rule takes precedence.
	node := explored("FiberCache", model.TypeArray, numberChildren(8)...)
	New().Annotate(node)
	assert.Equal(t, model.PatternArrayOfNumbers, node.Pattern)
}

func TestAnnotateRecursesIntoChildren(t *testing.T) {
	inner := explored("samples", model.TypeArray, numberChildren(7)...)
	root := explored("root", model.TypeObject, inner)
	New().Annotate(root)
	assert.Empty(t, root.Pattern)
	assert.Equal(t, model.PatternArrayOfNumbers, inner.Pattern)
}

func TestAnnotateNilTree(t *testing.T) {
	assert.NotPanics(t, func() { New().Annotate(nil) })
}
