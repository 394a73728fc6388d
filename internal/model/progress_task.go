package model

import "time"

const (
	TaskStatusPending   = "pending"
	TaskStatusCompleted = "completed"
)

// ProgressTask is the durable per-employee task ledger, keyed by
// (employee_id, task_id) for status updates. Rows are appended per plan
// generation and are independent of the checklist snapshot stored with the
// plan.
type ProgressTask struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	EmployeeID  string     `gorm:"size:64;not null;index:idx_progress_employee_task" json:"employee_id"`
	TaskID      string     `gorm:"size:64;not null;index:idx_progress_employee_task" json:"task_id"`
	TaskName    string     `gorm:"size:512;not null" json:"task_name"`
	Status      string     `gorm:"size:16;not null;default:pending" json:"status"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Notes       string     `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}
