// Package knowledge implements the embedding-indexed chunk store behind
// policy Q&A and plan generation.
package knowledge

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"

	"go.uber.org/zap"

	"onboardhub/internal/model"
	"onboardhub/internal/repository"
)

// Embedding APIs commonly cap batch sizes, so upserts embed in small groups.
const embeddingBatchSize = 10

type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// Chunk is the input unit for Upsert. ID must be stable for identical input
// so re-ingestion replaces instead of duplicating.
type Chunk struct {
	ID         string
	Text       string
	Source     string
	Page       int
	ChunkIndex int
	DocumentID uint
}

// Result is one retrieval hit, ordered by ascending Distance.
type Result struct {
	Text       string  `json:"text"`
	Source     string  `json:"source"`
	Page       int     `json:"page"`
	ChunkIndex int     `json:"chunk_index"`
	Distance   float64 `json:"distance"`
}

// Relevance maps cosine distance to a score where 1 is an exact match.
func (r Result) Relevance() float64 {
	return 1 - r.Distance
}

// ChunkID derives the deterministic entry id from a chunk's position within
// its source document.
func ChunkID(filename string, page, chunkIndex int) string {
	sum := md5.Sum([]byte(fmt.Sprintf("%s_%d_%d", filename, page, chunkIndex)))
	return hex.EncodeToString(sum[:])
}

// Store computes embeddings internally and scores queries in process over
// the persisted entries. Concurrent batch upserts are serialized by a
// store-level mutex; within a batch the last write per id wins.
type Store struct {
	repo     *repository.KnowledgeEntryRepository
	embedder Embedder
	log      *zap.SugaredLogger

	mu sync.Mutex
}

func NewStore(repo *repository.KnowledgeEntryRepository, embedder Embedder, log *zap.SugaredLogger) *Store {
	return &Store{
		repo:     repo,
		embedder: embedder,
		log:      log,
	}
}

func (s *Store) Upsert(ctx context.Context, chunks []Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	texts := make([]string, len(chunks))
	for i := range chunks {
		texts[i] = chunks[i].Text
	}

	var embeddings [][]float32
	for i := 0; i < len(texts); i += embeddingBatchSize {
		end := i + embeddingBatchSize
		if end > len(texts) {
			end = len(texts)
		}
		batched, err := s.embedder.EmbedBatch(ctx, texts[i:end])
		if err != nil {
			return fmt.Errorf("embed chunk batch failed: %w", err)
		}
		embeddings = append(embeddings, batched...)
	}
	if len(embeddings) != len(chunks) {
		return errors.New("embedding count mismatch")
	}

	entries := make([]model.KnowledgeEntry, len(chunks))
	for i, c := range chunks {
		entries[i] = model.KnowledgeEntry{
			ID:         c.ID,
			Content:    c.Text,
			Source:     c.Source,
			Page:       c.Page,
			ChunkIndex: c.ChunkIndex,
			DocumentID: c.DocumentID,
		}
		entries[i].SetEmbedding(embeddings[i])
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.UpsertBatch(entries)
}

// Query returns up to topK entries ordered by ascending cosine distance to
// the query text. An empty index yields an empty result, not an error.
func (s *Store) Query(ctx context.Context, text string, topK int) ([]Result, error) {
	if topK <= 0 {
		topK = 5
	}

	entries, err := s.repo.ListAll()
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return []Result{}, nil
	}

	queryVec, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("embed query failed: %w", err)
	}

	results := make([]Result, len(entries))
	for i := range entries {
		results[i] = Result{
			Text:       entries[i].Content,
			Source:     entries[i].Source,
			Page:       entries[i].Page,
			ChunkIndex: entries[i].ChunkIndex,
			Distance:   1 - cosineSimilarity(queryVec, entries[i].EmbeddingVector()),
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Distance < results[j].Distance
	})

	if topK > len(results) {
		topK = len(results)
	}
	return results[:topK], nil
}

func (s *Store) DeleteBySource(source string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.DeleteBySource(source)
}

// Sources lists the distinct filenames currently indexed.
func (s *Store) Sources() ([]string, error) {
	return s.repo.ListSources()
}

func (s *Store) CountBySource(source string) (int64, error) {
	return s.repo.CountBySource(source)
}

func (s *Store) Count() (int64, error) {
	return s.repo.Count()
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA <= 0 || normB <= 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
