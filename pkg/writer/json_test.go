package writer

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type report struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestJSONWriterCompact(t *testing.T) {
	var buf bytes.Buffer
	w := NewJSONWriter[report]()

	require.NoError(t, w.Write(report{Name: "explore", Count: 7}, &buf))
	assert.Equal(t, `{"name":"explore","count":7}`+"\n", buf.String())
}

func TestJSONWriterPretty(t *testing.T) {
	var buf bytes.Buffer
	w := NewPrettyJSONWriter[report]()

	require.NoError(t, w.Write(report{Name: "explore", Count: 7}, &buf))
	assert.True(t, strings.Contains(buf.String(), "\n  \"name\""))
}

func TestJSONWriterWriteToFileCreatesDirs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reports", "nested", "out.json")

	w := NewPrettyJSONWriter[report]()
	require.NoError(t, w.WriteToFile(report{Name: "classify", Count: 3}, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got report
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, report{Name: "classify", Count: 3}, got)
}

func TestGzipJSONWriterRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.json.gz")

	w := NewGzipJSONWriter[report]()
	require.NoError(t, w.WriteToFile(report{Name: "tree", Count: 100}, path))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	gz, err := gzip.NewReader(file)
	require.NoError(t, err)
	defer gz.Close()

	var got report
	require.NoError(t, json.NewDecoder(gz).Decode(&got))
	assert.Equal(t, report{Name: "tree", Count: 100}, got)
}

func TestGzipJSONWriterInvalidLevel(t *testing.T) {
	w := &GzipJSONWriter[report]{Level: 42}
	err := w.Write(report{}, &bytes.Buffer{})
	assert.Error(t, err)
}
