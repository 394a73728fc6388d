package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"onboardhub/internal/model"
)

type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) Create(employee *model.Employee) error {
	if err := r.db.Create(employee).Error; err != nil {
		if IsDuplicate(err) {
			return err
		}
		return fmt.Errorf("create employee failed: %w", err)
	}
	return nil
}

func (r *EmployeeRepository) GetByEmployeeID(employeeID string) (*model.Employee, error) {
	var employee model.Employee
	if err := r.db.Where("employee_id = ?", employeeID).First(&employee).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query employee failed: %w", err)
	}
	return &employee, nil
}

func (r *EmployeeRepository) List() ([]model.Employee, error) {
	var employees []model.Employee
	if err := r.db.Order("created_at DESC").Find(&employees).Error; err != nil {
		return nil, fmt.Errorf("list employees failed: %w", err)
	}
	return employees, nil
}
