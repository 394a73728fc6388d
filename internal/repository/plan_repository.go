package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"onboardhub/internal/model"
)

type PlanRepository struct {
	db *gorm.DB
}

func NewPlanRepository(db *gorm.DB) *PlanRepository {
	return &PlanRepository{db: db}
}

func (r *PlanRepository) Create(plan *model.OnboardingPlan) error {
	if err := r.db.Create(plan).Error; err != nil {
		return fmt.Errorf("create onboarding plan failed: %w", err)
	}
	return nil
}

// GetLatestByEmployeeID returns the most recently created plan; regeneration
// inserts new rows rather than editing in place.
func (r *PlanRepository) GetLatestByEmployeeID(employeeID string) (*model.OnboardingPlan, error) {
	var plan model.OnboardingPlan
	err := r.db.Where("employee_id = ?", employeeID).Order("created_at DESC, id DESC").First(&plan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query latest onboarding plan failed: %w", err)
	}
	return &plan, nil
}
