// Package queue carries match runs to the worker pool and run status
// updates back out, over RabbitMQ.
package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/streadway/amqp"
)

const (
	// RunQueue is the durable queue the serve side publishes match runs
	// to and the worker pool consumes.
	RunQueue = "match_runs"

	// UpdateExchange is the topic exchange run status updates fan out
	// on, routing key "match.<run_id>".
	UpdateExchange = "match_updates"
)

// RunMessage asks the worker pool to execute one match run.
type RunMessage struct {
	RunID uuid.UUID `json:"run_id"`
	JobID uuid.UUID `json:"job_id"`
}

// StatusUpdate reports a run's progress to anyone bound to the update
// exchange.
type StatusUpdate struct {
	RunID     uuid.UUID `json:"run_id"`
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// UpdateKey is the routing key updates for a run publish under.
func UpdateKey(runID uuid.UUID) string {
	return fmt.Sprintf("match.%s", runID)
}

// DeclareRunQueue declares the durable run queue on ch. Both ends
// declare it so whichever starts first creates it.
func DeclareRunQueue(ch *amqp.Channel) error {
	_, err := ch.QueueDeclare(
		RunQueue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	)
	return err
}

// Broker is one AMQP connection shared by a process. Channels are
// opened per operation because amqp channels are not safe for
// concurrent use.
type Broker struct {
	conn *amqp.Connection
}

func Dial(url string) (*Broker, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dialing rabbitmq: %w", err)
	}
	return &Broker{conn: conn}, nil
}

func (b *Broker) Close() error {
	return b.conn.Close()
}

// PublishRun enqueues one match run. Messages are persistent so queued
// runs survive a broker restart alongside the durable queue.
func (b *Broker) PublishRun(msg RunMessage) error {
	ch, err := b.conn.Channel()
	if err != nil {
		return fmt.Errorf("opening channel: %w", err)
	}
	defer ch.Close()

	if err := DeclareRunQueue(ch); err != nil {
		return fmt.Errorf("declaring queue: %w", err)
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshalling run message: %w", err)
	}

	return ch.Publish(
		"", // default exchange
		RunQueue,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}

// PublishUpdate emits one status update on the topic exchange. Updates
// are advisory; senders treat failures as log-worthy, not fatal.
func (b *Broker) PublishUpdate(update StatusUpdate) error {
	ch, err := b.conn.Channel()
	if err != nil {
		return fmt.Errorf("opening channel: %w", err)
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(
		UpdateExchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		return fmt.Errorf("declaring exchange: %w", err)
	}

	body, err := json.Marshal(update)
	if err != nil {
		return fmt.Errorf("marshalling update: %w", err)
	}

	return ch.Publish(
		UpdateExchange,
		UpdateKey(update.RunID),
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}
