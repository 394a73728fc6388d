package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"onboardhub/internal/model"
	"onboardhub/internal/repository"
)

type recordingScheduler struct {
	welcomed []string
}

func (r *recordingScheduler) ScheduleWelcome(employeeID string, _ time.Time) error {
	r.welcomed = append(r.welcomed, employeeID)
	return nil
}

func newEmployeeService(t *testing.T, reminders ReminderScheduler) *EmployeeService {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Employee{}))

	return NewEmployeeService(repository.NewEmployeeRepository(db), reminders, zap.NewNop().Sugar())
}

func TestEmployeeCreate_SchedulesWelcome(t *testing.T) {
	reminders := &recordingScheduler{}
	svc := newEmployeeService(t, reminders)

	start := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
	employee, err := svc.Create(CreateEmployeeInput{
		EmployeeID: "E100",
		Name:       "Jordan Smith",
		Email:      "jordan@example.com",
		Role:       "Backend Engineer",
		Department: "Platform",
		StartDate:  &start,
	})
	require.NoError(t, err)
	assert.Equal(t, model.EmployeeStatusActive, employee.Status)
	assert.Equal(t, []string{"E100"}, reminders.welcomed)
}

func TestEmployeeCreate_NoStartDateNoWelcome(t *testing.T) {
	reminders := &recordingScheduler{}
	svc := newEmployeeService(t, reminders)

	_, err := svc.Create(CreateEmployeeInput{EmployeeID: "E100", Name: "Jordan", Email: "j@example.com"})
	require.NoError(t, err)
	assert.Empty(t, reminders.welcomed)
}

func TestEmployeeCreate_DuplicateID(t *testing.T) {
	svc := newEmployeeService(t, nil)

	_, err := svc.Create(CreateEmployeeInput{EmployeeID: "E100", Name: "Jordan", Email: "j@example.com"})
	require.NoError(t, err)

	_, err = svc.Create(CreateEmployeeInput{EmployeeID: "E100", Name: "Other", Email: "o@example.com"})
	assert.ErrorIs(t, err, ErrEmployeeExists)
}

func TestEmployeeCreate_Validation(t *testing.T) {
	svc := newEmployeeService(t, nil)

	_, err := svc.Create(CreateEmployeeInput{Name: "Jordan", Email: "j@example.com"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(CreateEmployeeInput{EmployeeID: "E100", Email: "j@example.com"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(CreateEmployeeInput{EmployeeID: "E100", Name: "  ", Email: "j@example.com"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestEmployeeGet(t *testing.T) {
	svc := newEmployeeService(t, nil)

	_, err := svc.Get("missing")
	assert.ErrorIs(t, err, ErrEmployeeNotFound)

	_, err = svc.Create(CreateEmployeeInput{EmployeeID: "E100", Name: "Jordan", Email: "j@example.com"})
	require.NoError(t, err)

	employee, err := svc.Get("E100")
	require.NoError(t, err)
	assert.Equal(t, "Jordan", employee.Name)
}
