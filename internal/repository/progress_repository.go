package repository

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"onboardhub/internal/model"
)

type ProgressRepository struct {
	db *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{db: db}
}

func (r *ProgressRepository) Create(task *model.ProgressTask) error {
	if err := r.db.Create(task).Error; err != nil {
		return fmt.Errorf("create progress task failed: %w", err)
	}
	return nil
}

// UpdateStatus updates by (employee_id, task_id); completed_at is stamped
// when the task is completed and cleared if it is reopened.
func (r *ProgressRepository) UpdateStatus(employeeID, taskID, status, notes string) error {
	updates := map[string]interface{}{
		"status":       status,
		"notes":        notes,
		"completed_at": nil,
	}
	if status == model.TaskStatusCompleted {
		now := time.Now()
		updates["completed_at"] = &now
	}
	result := r.db.Model(&model.ProgressTask{}).
		Where("employee_id = ? AND task_id = ?", employeeID, taskID).
		Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("update task status failed: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ProgressRepository) ListByEmployeeID(employeeID string) ([]model.ProgressTask, error) {
	var tasks []model.ProgressTask
	if err := r.db.Where("employee_id = ?", employeeID).Order("created_at ASC").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list progress tasks failed: %w", err)
	}
	return tasks, nil
}
