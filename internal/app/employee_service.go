package app

import (
	"strings"
	"time"

	"go.uber.org/zap"

	"onboardhub/internal/model"
	"onboardhub/internal/repository"
)

// ReminderScheduler is the slice of the scheduler the employee flow needs.
type ReminderScheduler interface {
	ScheduleWelcome(employeeID string, startDate time.Time) error
}

type EmployeeService struct {
	employeeRepo *repository.EmployeeRepository
	reminders    ReminderScheduler
	log          *zap.SugaredLogger
}

func NewEmployeeService(employeeRepo *repository.EmployeeRepository, reminders ReminderScheduler, log *zap.SugaredLogger) *EmployeeService {
	return &EmployeeService{
		employeeRepo: employeeRepo,
		reminders:    reminders,
		log:          log,
	}
}

type CreateEmployeeInput struct {
	EmployeeID string
	Name       string
	Email      string
	Phone      string
	Role       string
	Department string
	StartDate  *time.Time
}

// Create registers an employee and, when a start date is known, queues the
// first-day welcome reminder. The reminder is best-effort: a scheduling
// failure does not undo the registration.
func (s *EmployeeService) Create(input CreateEmployeeInput) (*model.Employee, error) {
	employeeID := strings.TrimSpace(input.EmployeeID)
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)
	if employeeID == "" || name == "" || email == "" {
		return nil, ErrInvalidInput
	}

	employee := &model.Employee{
		EmployeeID: employeeID,
		Name:       name,
		Email:      email,
		Phone:      strings.TrimSpace(input.Phone),
		Role:       strings.TrimSpace(input.Role),
		Department: strings.TrimSpace(input.Department),
		StartDate:  input.StartDate,
		Status:     model.EmployeeStatusActive,
	}
	if err := s.employeeRepo.Create(employee); err != nil {
		if repository.IsDuplicate(err) {
			return nil, ErrEmployeeExists
		}
		return nil, err
	}

	if s.reminders != nil && input.StartDate != nil {
		if err := s.reminders.ScheduleWelcome(employeeID, *input.StartDate); err != nil {
			s.log.Warnw("schedule welcome reminder failed", "employee_id", employeeID, "error", err)
		}
	}

	return employee, nil
}

func (s *EmployeeService) Get(employeeID string) (*model.Employee, error) {
	if strings.TrimSpace(employeeID) == "" {
		return nil, ErrInvalidInput
	}
	employee, err := s.employeeRepo.GetByEmployeeID(employeeID)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, ErrEmployeeNotFound
	}
	return employee, nil
}

func (s *EmployeeService) List() ([]model.Employee, error) {
	return s.employeeRepo.List()
}
