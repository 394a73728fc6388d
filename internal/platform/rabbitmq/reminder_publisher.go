package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"onboardhub/internal/model"
)

// DeliveryMessage is the wire payload for one reminder delivery attempt.
type DeliveryMessage struct {
	MessageID string         `json:"message_id"`
	Reminder  model.Reminder `json:"reminder"`
}

type ReminderPublisher struct {
	conn      *amqp.Connection
	queueName string
}

func NewReminderPublisher(conn *amqp.Connection, queueName string) *ReminderPublisher {
	return &ReminderPublisher{
		conn:      conn,
		queueName: queueName,
	}
}

func (p *ReminderPublisher) Publish(ctx context.Context, reminder model.Reminder) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("open rabbitmq channel failed: %w", err)
	}
	defer ch.Close()

	_, err = ch.QueueDeclare(
		p.queueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("declare queue failed: %w", err)
	}

	payload, err := json.Marshal(DeliveryMessage{
		MessageID: uuid.NewString(),
		Reminder:  reminder,
	})
	if err != nil {
		return fmt.Errorf("marshal delivery payload failed: %w", err)
	}

	if err := ch.PublishWithContext(
		ctx,
		"",
		p.queueName,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         payload,
			DeliveryMode: amqp.Persistent,
		},
	); err != nil {
		return fmt.Errorf("publish delivery message failed: %w", err)
	}
	return nil
}
