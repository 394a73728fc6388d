package repository

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"onboardhub/internal/model"
)

type ReminderRepository struct {
	db *gorm.DB
}

func NewReminderRepository(db *gorm.DB) *ReminderRepository {
	return &ReminderRepository{db: db}
}

func (r *ReminderRepository) Create(reminder *model.Reminder) error {
	if err := r.db.Create(reminder).Error; err != nil {
		return fmt.Errorf("create reminder failed: %w", err)
	}
	return nil
}

// ListPendingDue returns pending reminders scheduled at or before the given
// time, oldest first.
func (r *ReminderRepository) ListPendingDue(before time.Time) ([]model.Reminder, error) {
	var reminders []model.Reminder
	err := r.db.
		Where("status = ? AND scheduled_time <= ?", model.ReminderStatusPending, before).
		Order("scheduled_time ASC").
		Find(&reminders).Error
	if err != nil {
		return nil, fmt.Errorf("list pending reminders failed: %w", err)
	}
	return reminders, nil
}

func (r *ReminderRepository) MarkSent(id uint) error {
	now := time.Now()
	err := r.db.Model(&model.Reminder{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":  model.ReminderStatusSent,
		"sent_at": &now,
	}).Error
	if err != nil {
		return fmt.Errorf("mark reminder sent failed: %w", err)
	}
	return nil
}
