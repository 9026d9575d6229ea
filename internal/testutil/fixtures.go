// Package testutil provides utilities for testing.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/heapscope/pkg/model"
)

// GetTestDataPath returns the absolute path to a file in the testdata
// directory, searching the caller's directory and its parents.
func GetTestDataPath(t *testing.T, filename string) string {
	t.Helper()

	_, callerFile, _, ok := runtime.Caller(1)
	if !ok {
		t.Fatal("failed to get caller file path")
	}

	dir := filepath.Dir(callerFile)
	for i := 0; i < 5; i++ {
		testdataPath := filepath.Join(dir, "testdata", filename)
		if _, err := os.Stat(testdataPath); err == nil {
			return testdataPath
		}
		dir = filepath.Dir(dir)
	}

	return filepath.Join("testdata", filename)
}

// LoadFixture loads a test fixture file and returns its contents.
func LoadFixture(t *testing.T, filename string) []byte {
	t.Helper()
	path := GetTestDataPath(t, filename)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to load fixture %s: %v", filename, err)
	}
	return data
}

// Node builds a heap node for tests.
func Node(id, name string, nodeType model.NodeType, selfSize, retainedSize int64, refs ...model.Edge) *model.HeapNode {
	return &model.HeapNode{
		ID:           id,
		Name:         name,
		Type:         nodeType,
		SelfSize:     selfSize,
		RetainedSize: retainedSize,
		References:   refs,
	}
}

// Ref builds an outgoing reference edge for tests.
func Ref(name string, nodeType model.NodeType, to string) model.Edge {
	return model.Edge{Name: name, Type: nodeType, NodeID: to}
}

// FanOut builds a uniform object tree: a root with childrenPerNode children,
// each of which has childrenPerNode children, down to the given depth. Node
// ids encode their position ("root", "root.0", "root.0.1", ...) and the root
// is first in the returned list.
func FanOut(depth, childrenPerNode int) []*model.HeapNode {
	nodes := make([]*model.HeapNode, 0)
	var build func(id, name string, level int) *model.HeapNode
	build = func(id, name string, level int) *model.HeapNode {
		node := Node(id, name, model.TypeObject, 64, 64)
		nodes = append(nodes, node)
		if level < depth {
			for i := 0; i < childrenPerNode; i++ {
				child := build(fmt.Sprintf("%s.%d", id, i), fmt.Sprintf("child%d", i), level+1)
				node.References = append(node.References,
					Ref(fmt.Sprintf("ref%d", i), model.TypeObject, child.ID))
			}
		}
		return node
	}
	build("root", "root", 0)
	return nodes
}
