package worker

import (
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

type fakeNotifier struct {
	emails   []string
	messages []string
	emailErr error
	msgErr   error
}

func (f *fakeNotifier) SendEmail(to, subject, body string) error {
	if f.emailErr != nil {
		return f.emailErr
	}
	f.emails = append(f.emails, to)
	return nil
}

func (f *fakeNotifier) SendMessage(to, body string) error {
	if f.msgErr != nil {
		return f.msgErr
	}
	f.messages = append(f.messages, to)
	return nil
}

func newTestWorker(t *testing.T, notifier *fakeNotifier) (*ReminderDeliveryWorker, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Employee{}, &model.Reminder{}))

	w := NewReminderDeliveryWorker(
		nil,
		repository.NewReminderRepository(db),
		repository.NewEmployeeRepository(db),
		notifier,
		"onboarding.reminders",
		zap.NewNop().Sugar(),
	)
	return w, db
}

func seedReminder(t *testing.T, db *gorm.DB, employee model.Employee, channel string) model.Reminder {
	t.Helper()
	require.NoError(t, db.Create(&employee).Error)
	reminder := model.Reminder{
		EmployeeID:    employee.EmployeeID,
		ReminderType:  model.ReminderTypeTask,
		Message:       "Finish your laptop setup",
		ScheduledTime: time.Now().Add(-time.Minute),
		Status:        model.ReminderStatusPending,
		Channel:       channel,
	}
	require.NoError(t, db.Create(&reminder).Error)
	return reminder
}

func reminderStatus(t *testing.T, db *gorm.DB, id uint) string {
	t.Helper()
	var reminder model.Reminder
	require.NoError(t, db.First(&reminder, id).Error)
	return reminder.Status
}

func TestDeliver_EmailMarksSent(t *testing.T) {
	notifier := &fakeNotifier{}
	w, db := newTestWorker(t, notifier)
	reminder := seedReminder(t, db, model.Employee{
		EmployeeID: "emp-001", Name: "Jordan", Email: "jordan@corp.test",
	}, model.ChannelEmail)

	require.NoError(t, w.deliver(reminder))

	assert.Equal(t, []string{"jordan@corp.test"}, notifier.emails)
	assert.Empty(t, notifier.messages)
	assert.Equal(t, model.ReminderStatusSent, reminderStatus(t, db, reminder.ID))
}

func TestDeliver_EmailFailureStaysPending(t *testing.T) {
	notifier := &fakeNotifier{emailErr: errors.New("smtp down")}
	w, db := newTestWorker(t, notifier)
	reminder := seedReminder(t, db, model.Employee{
		EmployeeID: "emp-002", Name: "Sam", Email: "sam@corp.test",
	}, model.ChannelEmail)

	assert.Error(t, w.deliver(reminder))
	assert.Equal(t, model.ReminderStatusPending, reminderStatus(t, db, reminder.ID))
}

func TestDeliver_WhatsAppRequiresPhone(t *testing.T) {
	notifier := &fakeNotifier{}
	w, db := newTestWorker(t, notifier)
	reminder := seedReminder(t, db, model.Employee{
		EmployeeID: "emp-003", Name: "Alex", Email: "alex@corp.test",
	}, model.ChannelWhatsApp)

	err := w.deliver(reminder)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no phone number")
	assert.Empty(t, notifier.messages)
	assert.Equal(t, model.ReminderStatusPending, reminderStatus(t, db, reminder.ID))
}

// With both channels requested, one successful send is enough to mark the
// reminder sent.
func TestDeliver_BothChannelsPartialSuccess(t *testing.T) {
	notifier := &fakeNotifier{emailErr: errors.New("smtp down")}
	w, db := newTestWorker(t, notifier)
	reminder := seedReminder(t, db, model.Employee{
		EmployeeID: "emp-004", Name: "Kim", Email: "kim@corp.test", Phone: "+15550100",
	}, model.ChannelBoth)

	require.NoError(t, w.deliver(reminder))

	assert.Empty(t, notifier.emails)
	assert.Equal(t, []string{"+15550100"}, notifier.messages)
	assert.Equal(t, model.ReminderStatusSent, reminderStatus(t, db, reminder.ID))
}

func TestDeliver_BothChannelsAllFail(t *testing.T) {
	notifier := &fakeNotifier{
		emailErr: errors.New("smtp down"),
		msgErr:   errors.New("twilio down"),
	}
	w, db := newTestWorker(t, notifier)
	reminder := seedReminder(t, db, model.Employee{
		EmployeeID: "emp-005", Name: "Lee", Email: "lee@corp.test", Phone: "+15550101",
	}, model.ChannelBoth)

	assert.Error(t, w.deliver(reminder))
	assert.Equal(t, model.ReminderStatusPending, reminderStatus(t, db, reminder.ID))
}

func TestDeliver_UnknownEmployee(t *testing.T) {
	notifier := &fakeNotifier{}
	w, _ := newTestWorker(t, notifier)

	err := w.deliver(model.Reminder{EmployeeID: "nobody", Channel: model.ChannelEmail})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	assert.Empty(t, notifier.emails)
}

func TestDeliver_UnknownChannel(t *testing.T) {
	notifier := &fakeNotifier{}
	w, db := newTestWorker(t, notifier)
	reminder := seedReminder(t, db, model.Employee{
		EmployeeID: "emp-006", Name: "Pat", Email: "pat@corp.test",
	}, "carrier-pigeon")

	err := w.deliver(reminder)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown channel")
	assert.Equal(t, model.ReminderStatusPending, reminderStatus(t, db, reminder.ID))
}

func TestRenderEmail_PerType(t *testing.T) {
	subject, body := renderEmail(model.ReminderTypeWelcome, "Jordan", "Your plan is ready.")
	assert.Equal(t, "Welcome to the Company!", subject)
	assert.Contains(t, body, "Hello Jordan,")
	assert.Contains(t, body, "Your plan is ready.")

	subject, body = renderEmail(model.ReminderTypeTask, "Jordan", "Finish setup.")
	assert.Equal(t, "Onboarding Task Reminder", subject)
	assert.Contains(t, body, "onboarding portal")

	subject, _ = renderEmail(model.ReminderTypeGeneric, "Jordan", "msg")
	assert.Equal(t, "Onboarding Reminder", subject)

	subject, _ = renderEmail("something-else", "Jordan", "msg")
	assert.Equal(t, "Onboarding Reminder", subject)
}
