package model

import (
	"encoding/json"
	"time"
)

// KnowledgeEntry stores one text chunk and its embedding for retrieval.
// ID is a deterministic hash of (filename, page, chunk index), so
// re-ingesting identical input overwrites rather than duplicates.
// Embedding is stored as a JSON array of float32 for portability.
type KnowledgeEntry struct {
	ID         string    `gorm:"primaryKey;size:32" json:"id"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	Source     string    `gorm:"size:256;not null;index" json:"source"`
	Page       int       `gorm:"not null" json:"page"`
	ChunkIndex int       `gorm:"not null" json:"chunk_index"`
	DocumentID uint      `gorm:"index" json:"document_id"`
	Embedding  string    `gorm:"type:text" json:"-"` // JSON array of float32
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// EmbeddingVector returns the parsed embedding slice; empty on parse error.
func (e *KnowledgeEntry) EmbeddingVector() []float32 {
	if e.Embedding == "" {
		return nil
	}
	var v []float32
	_ = json.Unmarshal([]byte(e.Embedding), &v)
	return v
}

// SetEmbedding stores the embedding as JSON.
func (e *KnowledgeEntry) SetEmbedding(vec []float32) {
	if len(vec) == 0 {
		e.Embedding = "[]"
		return
	}
	b, _ := json.Marshal(vec)
	e.Embedding = string(b)
}
