package repository

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"onboardhub/internal/model"
)

type DocumentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

func (r *DocumentRepository) Create(doc *model.Document) error {
	if err := r.db.Create(doc).Error; err != nil {
		return fmt.Errorf("create document failed: %w", err)
	}
	return nil
}

// UpdateStatus moves a document through pending -> processed/error.
// processed_at is only stamped on the processed transition.
func (r *DocumentRepository) UpdateStatus(id uint, status string) error {
	updates := map[string]interface{}{
		"status":       status,
		"processed_at": nil,
	}
	if status == model.DocumentStatusProcessed {
		now := time.Now()
		updates["processed_at"] = &now
	}
	if err := r.db.Model(&model.Document{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return fmt.Errorf("update document status failed: %w", err)
	}
	return nil
}

func (r *DocumentRepository) List() ([]model.Document, error) {
	var docs []model.Document
	if err := r.db.Order("uploaded_at DESC").Find(&docs).Error; err != nil {
		return nil, fmt.Errorf("list documents failed: %w", err)
	}
	return docs, nil
}

func (r *DocumentRepository) ListByFilename(filename string) ([]model.Document, error) {
	var docs []model.Document
	if err := r.db.Where("filename = ?", filename).Order("uploaded_at DESC").Find(&docs).Error; err != nil {
		return nil, fmt.Errorf("list documents by filename failed: %w", err)
	}
	return docs, nil
}

func (r *DocumentRepository) DeleteByFilename(filename string) error {
	if err := r.db.Where("filename = ?", filename).Delete(&model.Document{}).Error; err != nil {
		return fmt.Errorf("delete documents by filename failed: %w", err)
	}
	return nil
}
