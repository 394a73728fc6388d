package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"onboardhub/internal/model"
	"onboardhub/internal/notify"
	"onboardhub/internal/platform/rabbitmq"
	"onboardhub/internal/repository"
)

// ReminderDeliveryWorker consumes due reminders off the delivery queue,
// renders the channel-specific message and sends it. A reminder is marked
// sent only after a successful send; failed deliveries are nacked and the
// reminder stays pending for a later sweep.
type ReminderDeliveryWorker struct {
	conn         *amqp.Connection
	reminderRepo *repository.ReminderRepository
	employeeRepo *repository.EmployeeRepository
	notifier     notify.Notifier
	queueName    string
	log          *zap.SugaredLogger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewReminderDeliveryWorker(
	conn *amqp.Connection,
	reminderRepo *repository.ReminderRepository,
	employeeRepo *repository.EmployeeRepository,
	notifier notify.Notifier,
	queueName string,
	log *zap.SugaredLogger,
) *ReminderDeliveryWorker {
	return &ReminderDeliveryWorker{
		conn:         conn,
		reminderRepo: reminderRepo,
		employeeRepo: employeeRepo,
		notifier:     notifier,
		queueName:    queueName,
		log:          log,
	}
}

func (w *ReminderDeliveryWorker) Start(ctx context.Context) error {
	if w.cancel != nil {
		return nil
	}

	workerCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	ch, err := w.conn.Channel()
	if err != nil {
		cancel()
		return fmt.Errorf("open worker channel failed: %w", err)
	}

	_, err = ch.QueueDeclare(
		w.queueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("declare worker queue failed: %w", err)
	}

	deliveries, err := ch.Consume(
		w.queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("consume queue failed: %w", err)
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer ch.Close()

		for {
			select {
			case <-workerCtx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					return
				}

				var msg rabbitmq.DeliveryMessage
				if err := json.Unmarshal(d.Body, &msg); err != nil {
					w.log.Errorw("decode delivery message failed", "error", err)
					_ = d.Nack(false, false)
					continue
				}

				if err := w.deliver(msg.Reminder); err != nil {
					w.log.Warnw("reminder delivery failed",
						"message_id", msg.MessageID,
						"reminder_id", msg.Reminder.ID,
						"employee_id", msg.Reminder.EmployeeID,
						"error", err)
					_ = d.Nack(false, false)
					continue
				}

				_ = d.Ack(false)
			}
		}
	}()

	return nil
}

func (w *ReminderDeliveryWorker) deliver(reminder model.Reminder) error {
	employee, err := w.employeeRepo.GetByEmployeeID(reminder.EmployeeID)
	if err != nil {
		return err
	}
	if employee == nil {
		return fmt.Errorf("employee %s not found", reminder.EmployeeID)
	}

	subject, body := renderEmail(reminder.ReminderType, employee.Name, reminder.Message)

	var sent bool
	switch reminder.Channel {
	case model.ChannelEmail:
		sent = w.trySendEmail(employee.Email, subject, body)
	case model.ChannelWhatsApp:
		if employee.Phone == "" {
			return fmt.Errorf("employee %s has no phone number", reminder.EmployeeID)
		}
		sent = w.trySendMessage(employee.Phone, reminder.Message)
	case model.ChannelBoth:
		sent = w.trySendEmail(employee.Email, subject, body)
		if employee.Phone != "" {
			sent = w.trySendMessage(employee.Phone, reminder.Message) || sent
		}
	default:
		return fmt.Errorf("unknown channel %q", reminder.Channel)
	}

	if !sent {
		return fmt.Errorf("no channel accepted the message")
	}
	return w.reminderRepo.MarkSent(reminder.ID)
}

func (w *ReminderDeliveryWorker) trySendEmail(to, subject, body string) bool {
	if err := w.notifier.SendEmail(to, subject, body); err != nil {
		w.log.Warnw("email send failed", "error", err)
		return false
	}
	return true
}

func (w *ReminderDeliveryWorker) trySendMessage(to, body string) bool {
	if err := w.notifier.SendMessage(to, body); err != nil {
		w.log.Warnw("whatsapp send failed", "error", err)
		return false
	}
	return true
}

func renderEmail(reminderType, name, message string) (subject, body string) {
	switch reminderType {
	case model.ReminderTypeTask:
		subject = "Onboarding Task Reminder"
		body = fmt.Sprintf(`<html><body>
<h2>Onboarding Task Reminder</h2>
<p>Hello %s,</p>
<p>%s</p>
<p>Please log in to your onboarding portal to complete this task.</p>
<p>Best regards,<br>Onboarding Assistant</p>
</body></html>`, name, message)
	case model.ReminderTypeWelcome:
		subject = "Welcome to the Company!"
		body = fmt.Sprintf(`<html><body>
<h2>Welcome to the Company!</h2>
<p>Hello %s,</p>
<p>%s</p>
<p>We're excited to have you on board!</p>
<p>Best regards,<br>Onboarding Assistant</p>
</body></html>`, name, message)
	default:
		subject = "Onboarding Reminder"
		body = fmt.Sprintf(`<html><body>
<h2>Onboarding Reminder</h2>
<p>Hello %s,</p>
<p>%s</p>
<p>Best regards,<br>Onboarding Assistant</p>
</body></html>`, name, message)
	}
	return subject, body
}

func (w *ReminderDeliveryWorker) Close() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}
