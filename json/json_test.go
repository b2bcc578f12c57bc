package json

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/issuetools/youtrack-to-linear/types"
)

func TestJsonClient_Export_RoundTrip(t *testing.T) {
	logger := logrus.New()
	jsonClient := NewJsonClient(logger)
	path := filepath.Join(t.TempDir(), "issues.json")

	items := []types.RawItem{
		{"idReadable": "DEMO-1", "summary": "First", "created": float64(1700000000000)},
		{"idReadable": "DEMO-2", "summary": "Second"},
	}

	require.NoError(t, jsonClient.Export(items, path))

	read, err := jsonClient.ImportItems(path)
	require.NoError(t, err)
	require.Len(t, read, 2)
	assert.Equal(t, "DEMO-1", read[0].ID())
	assert.Equal(t, "DEMO-2", read[1].ID())
}

func TestJsonClient_Export_EmptySliceWritesEmptyArray(t *testing.T) {
	logger := logrus.New()
	jsonClient := NewJsonClient(logger)
	path := filepath.Join(t.TempDir(), "issues.json")

	require.NoError(t, jsonClient.Export([]types.RawItem{}, path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(content))
}

func TestJsonClient_Export_CreatesDirectoryAndLeavesNoTempFile(t *testing.T) {
	logger := logrus.New()
	jsonClient := NewJsonClient(logger)
	dir := filepath.Join(t.TempDir(), "nested", "output")
	path := filepath.Join(dir, "issues.json")

	require.NoError(t, jsonClient.Export([]types.RawItem{{"id": "1"}}, path))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "issues.json", entries[0].Name())
}

func TestJsonClient_ImportItems_MissingFile(t *testing.T) {
	logger := logrus.New()
	jsonClient := NewJsonClient(logger)

	_, err := jsonClient.ImportItems(filepath.Join(t.TempDir(), "absent.json"))

	assert.Error(t, err)
}

func TestJsonClient_ImportItems_MalformedFile(t *testing.T) {
	logger := logrus.New()
	jsonClient := NewJsonClient(logger)
	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := jsonClient.ImportItems(path)

	assert.Error(t, err)
}
