package messaging

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/medora-health/portal-access-service/internal/core/ports"
)

var _ ports.PortalEventPublisher = (*RabbitMQBroker)(nil)

func (rmq *RabbitMQBroker) PublishUserRegistered(ctx context.Context, evt ports.UserRegisteredEvent) error {
	return rmq.publish(ctx, ports.EventUserRegistered, evt)
}

func (rmq *RabbitMQBroker) PublishAppointmentBooked(ctx context.Context, evt ports.AppointmentBookedEvent) error {
	return rmq.publish(ctx, ports.EventAppointmentBooked, evt)
}

type envelope struct {
	EventType string      `json:"event_type"`
	Payload   interface{} `json:"payload"`
}

func (rmq *RabbitMQBroker) publish(ctx context.Context, eventType string, payload interface{}) error {
	body, err := json.Marshal(envelope{EventType: eventType, Payload: payload})
	if err != nil {
		return err
	}

	// Respect context deadline
	if deadline, ok := ctx.Deadline(); ok {
		if time.Until(deadline) <= 0 {
			return ctx.Err()
		}
	}

	_, err = rmq.cb.Execute(func() (interface{}, error) {
		err := rmq.ch.PublishWithContext(
			ctx,
			"",            // exchange (default)
			rmq.queueName, // routing key == queue name
			false,         // mandatory
			false,         // immediate
			amqp.Publishing{
				ContentType:  "application/json",
				DeliveryMode: amqp.Persistent,
				Body:         body,
			},
		)
		return nil, err
	})
	return err
}
