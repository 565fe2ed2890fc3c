// Package amqp publishes order lifecycle events to RabbitMQ. Publishing is
// best effort: it happens after the owning transaction commits, and a failed
// publish never rolls business state back.
package amqp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"mealdrop/internal/core/domain/model/order"

	"github.com/streadway/amqp"
)

const orderEventsQueue = "order_events"

// statusChangedEvent is the wire format of an order status announcement.
type statusChangedEvent struct {
	OrderID       string    `json:"order_id"`
	CustomerID    string    `json:"customer_id"`
	MerchantID    string    `json:"merchant_id"`
	ShipperID     *string   `json:"shipper_id,omitempty"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	TotalAmount   string    `json:"total_amount"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// Publisher sends order events to a durable RabbitMQ queue.
type Publisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

// NewPublisher connects to RabbitMQ and declares the order events queue.
func NewPublisher(url string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	_, err = channel.QueueDeclare(orderEventsQueue, true, false, false, false, nil)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("declare queue %s: %w", orderEventsQueue, err)
	}

	return &Publisher{conn: conn, channel: channel}, nil
}

// PublishStatusChanged announces that the order reached a new status.
func (p *Publisher) PublishStatusChanged(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	event := statusChangedEvent{
		OrderID:       aggregate.ID().String(),
		CustomerID:    aggregate.CustomerID().String(),
		MerchantID:    aggregate.MerchantID().String(),
		Status:        aggregate.Status().String(),
		PaymentStatus: string(aggregate.PaymentStatus()),
		TotalAmount:   aggregate.TotalAmount().String(),
		OccurredAt:    time.Now().UTC(),
	}
	if shipperID := aggregate.ShipperID(); shipperID != nil {
		s := shipperID.String()
		event.ShipperID = &s
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal status event: %w", err)
	}

	err = p.channel.Publish("", orderEventsQueue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    event.OccurredAt,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish status event: %w", err)
	}

	return nil
}

// Close releases the channel and the connection.
func (p *Publisher) Close() error {
	var errs []error
	if p.channel != nil {
		errs = append(errs, p.channel.Close())
	}
	if p.conn != nil {
		errs = append(errs, p.conn.Close())
	}
	return errors.Join(errs...)
}
