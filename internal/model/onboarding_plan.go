package model

import (
	"encoding/json"
	"fmt"
	"time"

	"onboardhub/internal/planparse"
)

// OnboardingPlan is immutable once created; regenerating a plan inserts a
// new row and the latest row wins on read.
type OnboardingPlan struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	EmployeeID     string    `gorm:"size:64;not null;index" json:"employee_id"`
	PlanData       string    `gorm:"type:text;not null" json:"-"` // JSON planparse.Plan
	ChecklistItems string    `gorm:"type:text" json:"-"`          // JSON []planparse.ChecklistItem
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (p *OnboardingPlan) SetPlan(plan planparse.Plan) error {
	b, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("marshal plan data failed: %w", err)
	}
	p.PlanData = string(b)
	return nil
}

func (p *OnboardingPlan) Plan() (planparse.Plan, error) {
	var plan planparse.Plan
	if err := json.Unmarshal([]byte(p.PlanData), &plan); err != nil {
		return planparse.Plan{}, fmt.Errorf("unmarshal plan data failed: %w", err)
	}
	return plan, nil
}

func (p *OnboardingPlan) SetChecklist(items []planparse.ChecklistItem) error {
	b, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal checklist failed: %w", err)
	}
	p.ChecklistItems = string(b)
	return nil
}

func (p *OnboardingPlan) Checklist() ([]planparse.ChecklistItem, error) {
	if p.ChecklistItems == "" {
		return nil, nil
	}
	var items []planparse.ChecklistItem
	if err := json.Unmarshal([]byte(p.ChecklistItems), &items); err != nil {
		return nil, fmt.Errorf("unmarshal checklist failed: %w", err)
	}
	return items, nil
}
