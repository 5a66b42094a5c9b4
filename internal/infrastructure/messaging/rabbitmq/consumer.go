package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

const (
	QueueName      = "volunteer-service.event-changes"
	RetryQueueName = "volunteer-service.event-changes.retry"
	DLQName        = "volunteer-service.event-changes.dlq"
	DLXName        = "volunteer.dlx"

	maxRetries   = 3
	retryDelayMS = 5000
)

// RoutingKeys are the upstream changes that make a cached event graph stale.
var RoutingKeys = []string{
	"signup.created",
	"signup.canceled",
	"task.assigned",
	"task.unassigned",
	"event.updated",
}

// Outcomes reported to the Observer.
const (
	OutcomeInvalidated = "invalidated"
	OutcomeIgnored     = "ignored"
	OutcomeRetry       = "retry"
	OutcomeDeadLetter  = "dead_letter"
)

// EventChangedMessage is published by the signup and event services.
type EventChangedMessage struct {
	EventID int    `json:"event_id"`
	UserID  string `json:"user_id,omitempty"`
	TraceID string `json:"trace_id,omitempty"`
}

// Invalidator drops whatever is cached for an event.
type Invalidator interface {
	InvalidateEvent(ctx context.Context, eventID int) error
}

// Observer is notified once per handled delivery. Optional.
type Observer interface {
	MessageConsumed(routingKey, outcome string)
}

type retryPublisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// Consumer listens for signup/task/event changes and invalidates the cache.
type Consumer struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	pub      retryPublisher
	queue    string
	exchange string
	target   Invalidator
	obs      Observer
}

// NewConsumer dials RabbitMQ and declares the queue topology.
func NewConsumer(rabbitURL, exchange string, target Invalidator) (*Consumer, error) {
	conn, err := amqp.Dial(rabbitURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := declareTopology(ch, exchange); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	return &Consumer{
		conn:     conn,
		channel:  ch,
		pub:      ch,
		queue:    QueueName,
		exchange: exchange,
		target:   target,
	}, nil
}

func declareTopology(ch *amqp.Channel, exchange string) error {
	// 1. Main Exchange (Topic)
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare exchange: %w", err)
	}

	// 2. DLX (Fanout) + DLQ
	if err := ch.ExchangeDeclare(DLXName, "fanout", true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare dlx: %w", err)
	}
	if _, err := ch.QueueDeclare(DLQName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare dlq: %w", err)
	}
	if err := ch.QueueBind(DLQName, "", DLXName, false, nil); err != nil {
		return fmt.Errorf("failed to bind dlq: %w", err)
	}

	// 3. Main Queue, rejected messages go to the DLX
	mainArgs := amqp.Table{"x-dead-letter-exchange": DLXName}
	if _, err := ch.QueueDeclare(QueueName, true, false, false, false, mainArgs); err != nil {
		return fmt.Errorf("failed to declare main queue: %w", err)
	}

	// 4. Retry Queue, expired messages return to the Main Queue
	retryArgs := amqp.Table{
		"x-dead-letter-exchange":    "",
		"x-dead-letter-routing-key": QueueName,
		"x-message-ttl":             retryDelayMS,
	}
	if _, err := ch.QueueDeclare(RetryQueueName, true, false, false, false, retryArgs); err != nil {
		return fmt.Errorf("failed to declare retry queue: %w", err)
	}

	for _, key := range RoutingKeys {
		if err := ch.QueueBind(QueueName, key, exchange, false, nil); err != nil {
			return fmt.Errorf("failed to bind queue to %s: %w", key, err)
		}
	}
	return nil
}

// WithObserver attaches per-message reporting (metrics).
func (c *Consumer) WithObserver(o Observer) *Consumer {
	c.obs = o
	return c
}

// Start begins consuming messages until ctx is canceled.
func (c *Consumer) Start(ctx context.Context) {
	go c.consume(ctx)
	log.Info().
		Str("queue", c.queue).
		Str("exchange", c.exchange).
		Msg("event change consumer started")
}

func (c *Consumer) consume(ctx context.Context) {
	msgs, err := c.channel.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		log.Error().Err(err).Msg("failed to start consuming")
		return
	}

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("consumer shutting down")
			return
		case msg, ok := <-msgs:
			if !ok {
				log.Warn().Msg("consumer channel closed")
				return
			}
			c.handleMessage(ctx, msg)
		}
	}
}

func (c *Consumer) handleMessage(ctx context.Context, msg amqp.Delivery) {
	routingKey := msg.RoutingKey
	if val, ok := msg.Headers["x-original-routing-key"].(string); ok {
		routingKey = val
	}

	log.Debug().
		Str("routing_key", routingKey).
		Str("message_id", msg.MessageId).
		Msg("received event change")

	if !knownRoutingKey(routingKey) {
		log.Warn().Str("routing_key", routingKey).Msg("unknown routing key")
		c.done(routingKey, OutcomeIgnored)
		_ = msg.Ack(false)
		return
	}

	var body EventChangedMessage
	if err := json.Unmarshal(msg.Body, &body); err != nil {
		log.Error().Err(err).Msg("failed to unmarshal event change")
		c.done(routingKey, OutcomeDeadLetter)
		_ = msg.Nack(false, false)
		return
	}
	if body.EventID <= 0 {
		log.Error().Int("event_id", body.EventID).Msg("invalid event_id")
		c.done(routingKey, OutcomeDeadLetter)
		_ = msg.Nack(false, false)
		return
	}

	opCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := c.target.InvalidateEvent(opCtx, body.EventID)
	if err == nil {
		log.Info().
			Int("event_id", body.EventID).
			Str("routing_key", routingKey).
			Str("trace_id", body.TraceID).
			Msg("event graph invalidated")
		c.done(routingKey, OutcomeInvalidated)
		_ = msg.Ack(false)
		return
	}

	retryCount := 0
	if val, ok := msg.Headers["x-retry-count"].(int32); ok {
		retryCount = int(val)
	}

	if retryCount >= maxRetries {
		log.Error().
			Err(err).
			Int("event_id", body.EventID).
			Msg("max retries reached, sending to DLQ")
		c.done(routingKey, OutcomeDeadLetter)
		_ = msg.Nack(false, false)
		return
	}

	log.Warn().
		Err(err).
		Int("retry_count", retryCount).
		Msg("processing failed, scheduling retry")

	headers := make(amqp.Table, len(msg.Headers)+2)
	for k, v := range msg.Headers {
		headers[k] = v
	}
	headers["x-retry-count"] = int32(retryCount + 1)
	headers["x-original-routing-key"] = routingKey

	pubErr := c.pub.PublishWithContext(opCtx, "", RetryQueueName, false, false, amqp.Publishing{
		ContentType: msg.ContentType,
		Body:        msg.Body,
		Headers:     headers,
		MessageId:   msg.MessageId,
	})
	if pubErr != nil {
		log.Error().Err(pubErr).Msg("failed to publish to retry queue")
		c.done(routingKey, OutcomeDeadLetter)
		_ = msg.Nack(false, false)
		return
	}
	c.done(routingKey, OutcomeRetry)
	_ = msg.Ack(false)
}

func (c *Consumer) done(routingKey, outcome string) {
	if c.obs != nil {
		c.obs.MessageConsumed(routingKey, outcome)
	}
}

func knownRoutingKey(key string) bool {
	for _, k := range RoutingKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Close closes the consumer connection.
func (c *Consumer) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
