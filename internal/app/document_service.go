package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"onboardhub/internal/ingest"
	"onboardhub/internal/knowledge"
	"onboardhub/internal/model"
	"onboardhub/internal/repository"
)

type DocumentService struct {
	pipeline  *ingest.Pipeline
	store     *knowledge.Store
	docRepo   *repository.DocumentRepository
	uploadDir string
	log       *zap.SugaredLogger
}

func NewDocumentService(
	pipeline *ingest.Pipeline,
	store *knowledge.Store,
	docRepo *repository.DocumentRepository,
	uploadDir string,
	log *zap.SugaredLogger,
) *DocumentService {
	return &DocumentService{
		pipeline:  pipeline,
		store:     store,
		docRepo:   docRepo,
		uploadDir: uploadDir,
		log:       log,
	}
}

// UploadAndIngest stages the uploaded file under its original name and runs
// the ingestion pipeline synchronously so extraction failures reach the
// caller. The original name matters: chunk ids are derived from it, so
// re-uploading the same file replaces its entries instead of duplicating.
func (s *DocumentService) UploadAndIngest(ctx context.Context, filename string, src io.Reader) error {
	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return fmt.Errorf("%w: create upload directory: %v", ingest.ErrStorageUnwritable, err)
	}

	dstPath := filepath.Join(s.uploadDir, filepath.Base(filename))
	dst, err := os.Create(dstPath)
	if err != nil {
		return fmt.Errorf("%w: stage upload: %v", ingest.ErrStorageUnwritable, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(dstPath)
		return fmt.Errorf("%w: write upload: %v", ingest.ErrStorageUnwritable, err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(dstPath)
		return fmt.Errorf("%w: write upload: %v", ingest.ErrStorageUnwritable, err)
	}

	return s.pipeline.Ingest(ctx, dstPath)
}

func (s *DocumentService) List() ([]model.Document, error) {
	return s.docRepo.List()
}

// Sources lists the distinct filenames currently indexed.
func (s *DocumentService) Sources() ([]string, error) {
	return s.store.Sources()
}

// Delete removes a document's knowledge entries, its records and the staged
// file. Returns false when nothing was indexed under the filename.
func (s *DocumentService) Delete(filename string) (bool, error) {
	filename = filepath.Base(filename)
	removed, err := s.store.DeleteBySource(filename)
	if err != nil {
		return false, err
	}
	if err := s.docRepo.DeleteByFilename(filename); err != nil {
		s.log.Warnw("delete document records failed", "filename", filename, "error", err)
	}
	if err := os.Remove(filepath.Join(s.uploadDir, filename)); err != nil && !os.IsNotExist(err) {
		s.log.Warnw("remove staged file failed", "filename", filename, "error", err)
	}
	if removed {
		s.log.Infow("document deleted", "filename", filename)
	}
	return removed, nil
}

// Reconcile repairs document statuses that drifted from the knowledge store.
func (s *DocumentService) Reconcile(ctx context.Context) (int, error) {
	return s.pipeline.Reconcile(ctx)
}
