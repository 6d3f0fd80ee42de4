package rabbitmq

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"inventory/internal/models"

	amqp "github.com/streadway/amqp"
	"go.uber.org/zap"
)

// Queue names.
const (
	ProductEventsQueue    = "product_events"
	StockAdjustmentsQueue = "stock_adjustments"
)

// Channel is the subset of *amqp.Channel the client uses.
type Channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
	Close() error
}

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel Channel
	// amqp channels are not safe for concurrent publishing
	mu sync.Mutex
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL string
}

// NewClient connects to RabbitMQ, opens a channel and declares the queues.
func NewClient(cfg Config) (*Client, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	client, err := NewClientWithChannel(ch)
	if err != nil {
		conn.Close()
		return nil, err
	}
	client.conn = conn
	return client, nil
}

// NewClientWithChannel wraps an already opened channel and declares the queues.
func NewClientWithChannel(ch Channel) (*Client, error) {
	for _, name := range []string{ProductEventsQueue, StockAdjustmentsQueue} {
		if err := declareQueue(ch, name); err != nil {
			ch.Close()
			return nil, err
		}
	}
	zap.L().Info("RabbitMQ client ready",
		zap.Strings("queues", []string{ProductEventsQueue, StockAdjustmentsQueue}))
	return &Client{channel: ch}, nil
}

func declareQueue(ch Channel, name string) error {
	_, err := ch.QueueDeclare(
		name,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to declare %s: %w", name, err)
	}
	return nil
}

// Close releases the channel, then the connection. Both are attempted; the
// returned error joins whatever failed so callers can match amqp errors.
func (c *Client) Close() error {
	var chanErr, connErr error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			chanErr = fmt.Errorf("failed to close channel: %w", err)
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			connErr = fmt.Errorf("failed to close connection: %w", err)
		}
	}
	return errors.Join(chanErr, connErr)
}

// PublishProductEvent publishes a product change to the product_events queue.
func (c *Client) PublishProductEvent(event models.ProductEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal product event: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available")
	}
	err = c.channel.Publish(
		"",                 // default exchange
		ProductEventsQueue, // routing key: the queue name
		false,              // mandatory
		false,              // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			MessageId:    event.ID,
			Type:         event.Type,
			Timestamp:    event.OccurredAt,
		})
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}
	return nil
}

// StockAdjustmentHandler applies one stock adjustment. Returning a
// PermanentError drops the message; any other error requeues it.
type StockAdjustmentHandler func(adj models.StockAdjustment) error

// PermanentError marks a message that can never be processed successfully.
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string { return e.Err.Error() }
func (e *PermanentError) Unwrap() error { return e.Err }

// ConsumeStockAdjustments starts a goroutine delivering stock adjustment
// commands to handler until the channel closes.
func (c *Client) ConsumeStockAdjustments(handler StockAdjustmentHandler) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available for consumption")
	}

	msgs, err := c.channel.Consume(
		StockAdjustmentsQueue,
		"",    // consumer tag
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	zap.L().Info("waiting for stock adjustments", zap.String("queue", StockAdjustmentsQueue))
	go func() {
		for msg := range msgs {
			HandleDelivery(msg, handler)
		}
	}()
	return nil
}

// HandleDelivery decodes one delivery, runs handler and acknowledges it.
// Undecodable messages and permanent failures are acked and dropped; other
// failures are nacked for redelivery.
func HandleDelivery(msg amqp.Delivery, handler StockAdjustmentHandler) {
	log := zap.L().With(zap.Uint64("delivery_tag", msg.DeliveryTag))

	var adj models.StockAdjustment
	if err := json.Unmarshal(msg.Body, &adj); err != nil {
		log.Warn("dropping malformed stock adjustment", zap.Error(err))
		ack(msg, log)
		return
	}

	err := handler(adj)
	var permanent *PermanentError
	switch {
	case err == nil:
		log.Info("applied stock adjustment", zap.Uint("product_id", adj.ProductID))
		ack(msg, log)
	case errors.As(err, &permanent):
		log.Warn("dropping stock adjustment", zap.Uint("product_id", adj.ProductID), zap.Error(err))
		ack(msg, log)
	default:
		log.Error("stock adjustment failed, requeueing", zap.Uint("product_id", adj.ProductID), zap.Error(err))
		if nackErr := msg.Nack(false, true); nackErr != nil {
			log.Error("error nacking message", zap.Error(nackErr))
		}
	}
}

func ack(msg amqp.Delivery, log *zap.Logger) {
	if err := msg.Ack(false); err != nil {
		log.Error("error acking message", zap.Error(err))
	}
}
