package model

import "time"

const EmployeeStatusActive = "active"

// Employee is referenced from plans, progress and reminders by EmployeeID,
// the external-facing key.
type Employee struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	EmployeeID string     `gorm:"size:64;not null;uniqueIndex" json:"employee_id"`
	Name       string     `gorm:"size:128;not null" json:"name"`
	Email      string     `gorm:"size:128;not null" json:"email"`
	Phone      string     `gorm:"size:32" json:"phone,omitempty"`
	Role       string     `gorm:"size:128" json:"role,omitempty"`
	Department string     `gorm:"size:128" json:"department,omitempty"`
	StartDate  *time.Time `json:"start_date,omitempty"`
	Status     string     `gorm:"size:16;not null;default:active" json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}
