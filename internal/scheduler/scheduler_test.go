package scheduler

import (
	"context"
	"errors"
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

type fakeDeliverer struct {
	published []model.Reminder
	err       error
}

func (f *fakeDeliverer) Publish(_ context.Context, reminder model.Reminder) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, reminder)
	return nil
}

func newTestScheduler(t *testing.T, deliverer Deliverer) (*Scheduler, *repository.ReminderRepository, *repository.ProgressRepository) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Reminder{}, &model.ProgressTask{}))

	reminderRepo := repository.NewReminderRepository(db)
	progressRepo := repository.NewProgressRepository(db)
	sched := New(reminderRepo, progressRepo, deliverer, nil, time.Minute, 10*time.Minute, zap.NewNop().Sugar())
	return sched, reminderRepo, progressRepo
}

func TestSchedule_Defaults(t *testing.T) {
	sched, reminderRepo, _ := newTestScheduler(t, &fakeDeliverer{})

	id, err := sched.Schedule("emp-1", "", "do the thing", time.Now().Add(time.Hour), "")
	require.NoError(t, err)
	assert.NotZero(t, id)

	due, err := reminderRepo.ListPendingDue(time.Now().Add(2 * time.Hour))
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, model.ReminderTypeGeneric, due[0].ReminderType)
	assert.Equal(t, model.ChannelEmail, due[0].Channel)
	assert.Equal(t, model.ReminderStatusPending, due[0].Status)
}

func TestSchedule_Validation(t *testing.T) {
	sched, _, _ := newTestScheduler(t, &fakeDeliverer{})

	_, err := sched.Schedule("", model.ReminderTypeGeneric, "msg", time.Now(), model.ChannelEmail)
	assert.ErrorIs(t, err, ErrInvalidReminder)

	_, err = sched.Schedule("emp-1", model.ReminderTypeGeneric, "  ", time.Now(), model.ChannelEmail)
	assert.ErrorIs(t, err, ErrInvalidReminder)

	_, err = sched.Schedule("emp-1", model.ReminderTypeGeneric, "msg", time.Now(), "carrier-pigeon")
	assert.ErrorIs(t, err, ErrInvalidReminder)

	_, err = sched.Schedule("emp-1", "unknown-type", "msg", time.Now(), model.ChannelEmail)
	assert.ErrorIs(t, err, ErrInvalidReminder)
}

func TestSweep_DispatchesOnlyDue(t *testing.T) {
	deliverer := &fakeDeliverer{}
	sched, _, _ := newTestScheduler(t, deliverer)

	_, err := sched.Schedule("emp-1", model.ReminderTypeWelcome, "welcome", time.Now().Add(-time.Minute), model.ChannelEmail)
	require.NoError(t, err)
	_, err = sched.Schedule("emp-2", model.ReminderTypeGeneric, "later", time.Now().Add(time.Hour), model.ChannelEmail)
	require.NoError(t, err)

	sched.sweep(context.Background())

	require.Len(t, deliverer.published, 1)
	assert.Equal(t, "emp-1", deliverer.published[0].EmployeeID)
}

// A failed dispatch leaves the reminder pending so the next sweep retries.
func TestSweep_FailedDispatchStaysPending(t *testing.T) {
	deliverer := &fakeDeliverer{err: errors.New("broker down")}
	sched, reminderRepo, _ := newTestScheduler(t, deliverer)

	_, err := sched.Schedule("emp-1", model.ReminderTypeWelcome, "welcome", time.Now().Add(-time.Minute), model.ChannelEmail)
	require.NoError(t, err)

	sched.sweep(context.Background())

	due, err := reminderRepo.ListPendingDue(time.Now())
	require.NoError(t, err)
	assert.Len(t, due, 1)
}

func TestScheduleWelcome(t *testing.T) {
	sched, reminderRepo, _ := newTestScheduler(t, &fakeDeliverer{})

	start := time.Now().Add(24 * time.Hour)
	require.NoError(t, sched.ScheduleWelcome("emp-1", start))

	due, err := reminderRepo.ListPendingDue(start.Add(time.Minute))
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, model.ReminderTypeWelcome, due[0].ReminderType)
	assert.Contains(t, due[0].Message, "onboarding plan")
}

func TestScheduleTaskReminders_SkipsCompletedAndUnknown(t *testing.T) {
	sched, reminderRepo, progressRepo := newTestScheduler(t, &fakeDeliverer{})

	require.NoError(t, progressRepo.Create(&model.ProgressTask{
		EmployeeID: "emp-1", TaskID: "task_1", TaskName: "Set up laptop", Status: model.TaskStatusPending,
	}))
	require.NoError(t, progressRepo.Create(&model.ProgressTask{
		EmployeeID: "emp-1", TaskID: "task_2", TaskName: "Sign forms", Status: model.TaskStatusCompleted,
	}))

	due := time.Now().Add(48 * time.Hour)
	err := sched.ScheduleTaskReminders("emp-1", map[string]time.Time{
		"task_1":  due,
		"task_2":  due,
		"task_99": due,
	})
	require.NoError(t, err)

	reminders, err := reminderRepo.ListPendingDue(due)
	require.NoError(t, err)
	require.Len(t, reminders, 1)
	assert.Equal(t, model.ReminderTypeTask, reminders[0].ReminderType)
	assert.Contains(t, reminders[0].Message, "Set up laptop")
	assert.WithinDuration(t, due.Add(-24*time.Hour), reminders[0].ScheduledTime, time.Second)
}

func TestStartClose_Idempotent(t *testing.T) {
	sched, _, _ := newTestScheduler(t, &fakeDeliverer{})

	ctx := context.Background()
	sched.Start(ctx)
	sched.Start(ctx)
	sched.Close()
}
