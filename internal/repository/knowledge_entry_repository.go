package repository

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"onboardhub/internal/model"
)

type KnowledgeEntryRepository struct {
	db *gorm.DB
}

func NewKnowledgeEntryRepository(db *gorm.DB) *KnowledgeEntryRepository {
	return &KnowledgeEntryRepository{db: db}
}

// UpsertBatch writes entries last-write-wins on their deterministic ids.
func (r *KnowledgeEntryRepository) UpsertBatch(entries []model.KnowledgeEntry) error {
	if len(entries) == 0 {
		return nil
	}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&entries).Error
	if err != nil {
		return fmt.Errorf("upsert knowledge entries failed: %w", err)
	}
	return nil
}

func (r *KnowledgeEntryRepository) ListAll() ([]model.KnowledgeEntry, error) {
	var entries []model.KnowledgeEntry
	if err := r.db.Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list knowledge entries failed: %w", err)
	}
	return entries, nil
}

// DeleteBySource removes every entry ingested from the given filename and
// reports whether anything was deleted.
func (r *KnowledgeEntryRepository) DeleteBySource(source string) (bool, error) {
	result := r.db.Where("source = ?", source).Delete(&model.KnowledgeEntry{})
	if result.Error != nil {
		return false, fmt.Errorf("delete knowledge entries by source failed: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *KnowledgeEntryRepository) ListSources() ([]string, error) {
	var sources []string
	err := r.db.Model(&model.KnowledgeEntry{}).Distinct("source").Pluck("source", &sources).Error
	if err != nil {
		return nil, fmt.Errorf("list knowledge sources failed: %w", err)
	}
	return sources, nil
}

func (r *KnowledgeEntryRepository) CountBySource(source string) (int64, error) {
	var count int64
	err := r.db.Model(&model.KnowledgeEntry{}).Where("source = ?", source).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count knowledge entries by source failed: %w", err)
	}
	return count, nil
}

func (r *KnowledgeEntryRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&model.KnowledgeEntry{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count knowledge entries failed: %w", err)
	}
	return count, nil
}
