package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studentbot/models"
)

func writeKnowledge(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "qna.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestKnowledgeFilesLoad(t *testing.T) {
	path := writeKnowledge(t, `{"data": [
		{"q": "How do I apply?", "a": "Via the DSU portal."},
		{"q": "What is ISEE?", "a": "An economic indicator."}
	]}`)
	loader := NewKnowledgeFiles(path, path)

	items, err := loader.LoadQnA()
	require.NoError(t, err)
	assert.Equal(t, []models.KnowledgeItem{
		{Question: "How do I apply?", Answer: "Via the DSU portal."},
		{Question: "What is ISEE?", Answer: "An economic indicator."},
	}, items)

	items, err = loader.LoadKnowledge()
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestKnowledgeFilesEmptyTable(t *testing.T) {
	path := writeKnowledge(t, `{"data": []}`)
	loader := NewKnowledgeFiles(path, path)

	items, err := loader.LoadQnA()
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestKnowledgeFilesMissingFile(t *testing.T) {
	loader := NewKnowledgeFiles(filepath.Join(t.TempDir(), "absent.json"), "")

	_, err := loader.LoadQnA()
	assert.Error(t, err)
}

func TestKnowledgeFilesMalformedJSON(t *testing.T) {
	path := writeKnowledge(t, `{"data": [`)
	loader := NewKnowledgeFiles(path, path)

	_, err := loader.LoadQnA()
	assert.Error(t, err)
}
