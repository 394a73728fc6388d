// Package ingest turns uploaded PDFs into indexed knowledge entries plus an
// advisory document record in the relational store. The two stores are
// written without a shared transaction; the document status exists for
// operators, not for retrieval correctness.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"onboardhub/internal/knowledge"
	"onboardhub/internal/model"
	"onboardhub/internal/pkg/chunker"
	"onboardhub/internal/pkg/pdfextract"
	"onboardhub/internal/repository"
)

var (
	ErrStorageUnwritable = errors.New("storage is not writable")
	ErrIngestionFailed   = errors.New("ingestion failed")
)

type PageExtractor interface {
	ExtractPages(path string) ([]pdfextract.Page, error)
}

type ChunkStore interface {
	Upsert(ctx context.Context, chunks []knowledge.Chunk) error
	CountBySource(source string) (int64, error)
}

type DocumentRegistry interface {
	Create(doc *model.Document) error
	UpdateStatus(id uint, status string) error
	List() ([]model.Document, error)
}

type Pipeline struct {
	extractor    PageExtractor
	store        ChunkStore
	docs         DocumentRegistry
	chunkSize    int
	chunkOverlap int
	log          *zap.SugaredLogger
}

func NewPipeline(
	extractor PageExtractor,
	store ChunkStore,
	docs DocumentRegistry,
	chunkSize, chunkOverlap int,
	log *zap.SugaredLogger,
) *Pipeline {
	if chunkSize <= 0 {
		chunkSize = chunker.DefaultMaxSize
	}
	if chunkOverlap < 0 {
		chunkOverlap = chunker.DefaultOverlap
	}
	return &Pipeline{
		extractor:    extractor,
		store:        store,
		docs:         docs,
		chunkSize:    chunkSize,
		chunkOverlap: chunkOverlap,
		log:          log,
	}
}

// Ingest extracts, chunks, embeds and indexes one PDF. Extraction errors
// propagate typed so callers can tell a password-protected file from a
// scanned one; the document record is only registered after extraction
// succeeds, so rejected files leave no record behind.
func (p *Pipeline) Ingest(ctx context.Context, pdfPath string) error {
	pages, err := p.extractor.ExtractPages(pdfPath)
	if err != nil {
		return err
	}

	filename := filepath.Base(pdfPath)
	doc := &model.Document{
		Filename: filename,
		FilePath: pdfPath,
		FileType: "pdf",
		Status:   model.DocumentStatusPending,
	}
	if err := p.docs.Create(doc); err != nil {
		if repository.IsUnwritable(err) {
			return fmt.Errorf("%w: register document: %v", ErrStorageUnwritable, err)
		}
		return fmt.Errorf("%w: register document: %v", ErrIngestionFailed, err)
	}

	var chunks []knowledge.Chunk
	for _, page := range pages {
		parts := chunker.Split(page.Text, p.chunkSize, p.chunkOverlap)
		for idx, part := range parts {
			chunks = append(chunks, knowledge.Chunk{
				ID:         knowledge.ChunkID(filename, page.Number, idx),
				Text:       part,
				Source:     filename,
				Page:       page.Number,
				ChunkIndex: idx,
				DocumentID: doc.ID,
			})
		}
	}

	if err := p.store.Upsert(ctx, chunks); err != nil {
		p.markStatus(doc.ID, model.DocumentStatusError)
		if repository.IsUnwritable(err) {
			return fmt.Errorf("%w: index chunks: %v", ErrStorageUnwritable, err)
		}
		return fmt.Errorf("%w: %v", ErrIngestionFailed, err)
	}

	// The chunks are durably indexed at this point; status is advisory, so a
	// failed final update downgrades to a warning.
	if err := p.docs.UpdateStatus(doc.ID, model.DocumentStatusProcessed); err != nil {
		p.log.Warnw("mark document processed failed", "document_id", doc.ID, "filename", filename, "error", err)
	}

	p.log.Infow("document ingested", "filename", filename, "pages", len(pages), "chunks", len(chunks))
	return nil
}

// markStatus is the best-effort error-status write; its own failure must
// never replace the error that triggered it.
func (p *Pipeline) markStatus(id uint, status string) {
	if err := p.docs.UpdateStatus(id, status); err != nil {
		p.log.Warnw("update document status failed", "document_id", id, "status", status, "error", err)
	}
}

// Reconcile repairs advisory document statuses that drifted from the
// knowledge store, which can happen when a crash lands between the index
// write and the final status update. Returns the number of repaired records.
func (p *Pipeline) Reconcile(ctx context.Context) (int, error) {
	docs, err := p.docs.List()
	if err != nil {
		return 0, fmt.Errorf("list documents failed: %w", err)
	}

	repaired := 0
	for _, doc := range docs {
		if ctx.Err() != nil {
			return repaired, ctx.Err()
		}
		count, err := p.store.CountBySource(doc.Filename)
		if err != nil {
			p.log.Warnw("count chunks failed during reconcile", "filename", doc.Filename, "error", err)
			continue
		}
		switch {
		case count > 0 && doc.Status == model.DocumentStatusPending:
			p.markStatus(doc.ID, model.DocumentStatusProcessed)
			repaired++
		case count == 0 && doc.Status == model.DocumentStatusProcessed:
			p.markStatus(doc.ID, model.DocumentStatusError)
			repaired++
		}
	}
	return repaired, nil
}
