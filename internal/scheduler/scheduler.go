// Package scheduler owns the periodic background sweeps: dispatching due
// reminders to the delivery queue and repairing drifted document statuses.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"onboardhub/internal/model"
	"onboardhub/internal/repository"
)

const welcomeMessage = "Welcome to the company! Your personalized onboarding plan is ready. Please check your onboarding portal to get started."

var ErrInvalidReminder = errors.New("invalid reminder")

// Deliverer hands one due reminder off for delivery; in production this is
// the rabbitmq publisher.
type Deliverer interface {
	Publish(ctx context.Context, reminder model.Reminder) error
}

// Reconciler repairs advisory state on a slower cadence than the reminder
// sweep.
type Reconciler interface {
	Reconcile(ctx context.Context) (int, error)
}

type Scheduler struct {
	reminderRepo      *repository.ReminderRepository
	progressRepo      *repository.ProgressRepository
	deliverer         Deliverer
	reconciler        Reconciler
	sweepInterval     time.Duration
	reconcileInterval time.Duration
	log               *zap.SugaredLogger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func New(
	reminderRepo *repository.ReminderRepository,
	progressRepo *repository.ProgressRepository,
	deliverer Deliverer,
	reconciler Reconciler,
	sweepInterval, reconcileInterval time.Duration,
	log *zap.SugaredLogger,
) *Scheduler {
	if sweepInterval <= 0 {
		sweepInterval = time.Minute
	}
	if reconcileInterval <= 0 {
		reconcileInterval = 10 * time.Minute
	}
	return &Scheduler{
		reminderRepo:      reminderRepo,
		progressRepo:      progressRepo,
		deliverer:         deliverer,
		reconciler:        reconciler,
		sweepInterval:     sweepInterval,
		reconcileInterval: reconcileInterval,
		log:               log,
	}
}

// Start runs the sweep loop on its own goroutine. Starting twice is a no-op.
func (s *Scheduler) Start(ctx context.Context) {
	if s.cancel != nil {
		return
	}

	loopCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		sweepTicker := time.NewTicker(s.sweepInterval)
		defer sweepTicker.Stop()
		reconcileTicker := time.NewTicker(s.reconcileInterval)
		defer reconcileTicker.Stop()

		for {
			select {
			case <-loopCtx.Done():
				return
			case <-sweepTicker.C:
				s.sweep(loopCtx)
			case <-reconcileTicker.C:
				s.reconcile(loopCtx)
			}
		}
	}()

	s.log.Infow("reminder scheduler started", "sweep_interval", s.sweepInterval)
}

// Close stops the loop and waits for the in-flight sweep with a bounded
// join.
func (s *Scheduler) Close() {
	if s.cancel == nil {
		return
	}
	s.cancel()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		s.log.Warnw("scheduler shutdown timed out")
	}
}

// sweep dispatches every pending reminder due by now. Each reminder gets at
// most one delivery attempt per sweep; status only flips to sent when a
// delivery succeeds, so failures surface again on the next sweep.
func (s *Scheduler) sweep(ctx context.Context) {
	due, err := s.reminderRepo.ListPendingDue(time.Now())
	if err != nil {
		s.log.Errorw("query due reminders failed", "error", err)
		return
	}

	for _, reminder := range due {
		if ctx.Err() != nil {
			return
		}
		if err := s.deliverer.Publish(ctx, reminder); err != nil {
			s.log.Warnw("dispatch reminder failed", "reminder_id", reminder.ID, "error", err)
		}
	}
}

func (s *Scheduler) reconcile(ctx context.Context) {
	if s.reconciler == nil {
		return
	}
	repaired, err := s.reconciler.Reconcile(ctx)
	if err != nil {
		s.log.Warnw("document reconcile failed", "error", err)
		return
	}
	if repaired > 0 {
		s.log.Infow("document statuses repaired", "count", repaired)
	}
}

// Schedule stores a reminder for a later sweep to pick up.
func (s *Scheduler) Schedule(employeeID, reminderType, message string, at time.Time, channel string) (uint, error) {
	if strings.TrimSpace(employeeID) == "" || strings.TrimSpace(message) == "" {
		return 0, ErrInvalidReminder
	}
	switch channel {
	case model.ChannelEmail, model.ChannelWhatsApp, model.ChannelBoth:
	case "":
		channel = model.ChannelEmail
	default:
		return 0, fmt.Errorf("%w: unknown channel %q", ErrInvalidReminder, channel)
	}
	switch reminderType {
	case model.ReminderTypeWelcome, model.ReminderTypeTask, model.ReminderTypeGeneric:
	case "":
		reminderType = model.ReminderTypeGeneric
	default:
		return 0, fmt.Errorf("%w: unknown type %q", ErrInvalidReminder, reminderType)
	}

	reminder := &model.Reminder{
		EmployeeID:    employeeID,
		ReminderType:  reminderType,
		Message:       message,
		ScheduledTime: at,
		Status:        model.ReminderStatusPending,
		Channel:       channel,
	}
	if err := s.reminderRepo.Create(reminder); err != nil {
		return 0, err
	}
	return reminder.ID, nil
}

// ScheduleWelcome queues the first-day welcome message for a new employee.
func (s *Scheduler) ScheduleWelcome(employeeID string, startDate time.Time) error {
	_, err := s.Schedule(employeeID, model.ReminderTypeWelcome, welcomeMessage, startDate, model.ChannelEmail)
	return err
}

// ScheduleTaskReminders queues a day-before nudge for each still-pending
// task with a due date.
func (s *Scheduler) ScheduleTaskReminders(employeeID string, dueDates map[string]time.Time) error {
	tasks, err := s.progressRepo.ListByEmployeeID(employeeID)
	if err != nil {
		return err
	}

	byTaskID := make(map[string]model.ProgressTask, len(tasks))
	for _, task := range tasks {
		byTaskID[task.TaskID] = task
	}

	for taskID, due := range dueDates {
		task, ok := byTaskID[taskID]
		if !ok || task.Status != model.TaskStatusPending {
			continue
		}
		message := fmt.Sprintf("Reminder: Don't forget to complete '%s' by %s.", task.TaskName, due.Format("2006-01-02"))
		if _, err := s.Schedule(employeeID, model.ReminderTypeTask, message, due.Add(-24*time.Hour), model.ChannelEmail); err != nil {
			return err
		}
	}
	return nil
}
