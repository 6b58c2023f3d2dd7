package storage

import (
	"encoding/json"
	"fmt"
	"os"

	"studentbot/models"
)

// KnowledgeFiles loads the curated Q/A tables from JSON files. The files are
// re-read on every load so the answer pipeline's Reload picks up edits made
// by the content moderation panel.
type KnowledgeFiles struct {
	QnAPath       string
	KnowledgePath string
}

// NewKnowledgeFiles builds the loader.
func NewKnowledgeFiles(qnaPath, knowledgePath string) *KnowledgeFiles {
	return &KnowledgeFiles{QnAPath: qnaPath, KnowledgePath: knowledgePath}
}

type knowledgeFile struct {
	Data []models.KnowledgeItem `json:"data"`
}

// LoadQnA reads the exact-match table.
func (k *KnowledgeFiles) LoadQnA() ([]models.KnowledgeItem, error) {
	return readItems(k.QnAPath)
}

// LoadKnowledge reads the semantic-search table.
func (k *KnowledgeFiles) LoadKnowledge() ([]models.KnowledgeItem, error) {
	return readItems(k.KnowledgePath)
}

func readItems(path string) ([]models.KnowledgeItem, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("knowledge: read %s: %w", path, err)
	}
	var parsed knowledgeFile
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("knowledge: parse %s: %w", path, err)
	}
	return parsed.Data, nil
}
