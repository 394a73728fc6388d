package model

import "time"

const (
	ReminderTypeWelcome = "welcome"
	ReminderTypeTask    = "task_reminder"
	ReminderTypeGeneric = "generic"

	ReminderStatusPending = "pending"
	ReminderStatusSent    = "sent"

	ChannelEmail    = "email"
	ChannelWhatsApp = "whatsapp"
	ChannelBoth     = "both"
)

// Reminder stays pending until a delivery attempt succeeds; failed attempts
// leave it due for the next sweep.
type Reminder struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	EmployeeID    string     `gorm:"size:64;not null;index" json:"employee_id"`
	ReminderType  string     `gorm:"size:32;not null" json:"reminder_type"`
	Message       string     `gorm:"type:text;not null" json:"message"`
	ScheduledTime time.Time  `gorm:"not null;index" json:"scheduled_time"`
	SentAt        *time.Time `json:"sent_at,omitempty"`
	Status        string     `gorm:"size:16;not null;default:pending" json:"status"`
	Channel       string     `gorm:"size:16;not null;default:email" json:"channel"`
}
