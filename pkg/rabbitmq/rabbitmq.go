package rabbitmq

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"orderdesk/internal/models"

	amqp "github.com/streadway/amqp"
)

// DefaultQueue is the queue order events go to when none is configured.
const DefaultQueue = "orders.created"

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL   string
	Queue string
}

// OrderCreated is the message published for every stored order.
type OrderCreated struct {
	OrderID   string    `json:"orderId"`
	OrderCode string    `json:"orderCode"`
	Email     string    `json:"email"`
	Total     float64   `json:"total"`
	Items     int       `json:"items"`
	Timestamp time.Time `json:"timestamp"`
}

// NewOrderCreated builds the event for order.
func NewOrderCreated(order models.Order) OrderCreated {
	return OrderCreated{
		OrderID:   order.ID,
		OrderCode: order.OrderCode,
		Email:     order.Email,
		Total:     order.Total,
		Items:     order.ItemCount(),
		Timestamp: order.Timestamp,
	}
}

// NewClient connects to RabbitMQ and declares the order queue.
func NewClient(cfg Config) (*Client, error) {
	if cfg.Queue == "" {
		cfg.Queue = DefaultQueue
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	_, err = ch.QueueDeclare(
		cfg.Queue, // name
		true,      // durable
		false,     // delete when unused
		false,     // exclusive
		false,     // no-wait
		nil,       // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare %s: %w", cfg.Queue, err)
	}

	log.Printf("RabbitMQ client connected and %s declared.", cfg.Queue)

	return &Client{
		conn:    conn,
		channel: ch,
		queue:   cfg.Queue,
	}, nil
}

// Close closes the RabbitMQ connection and channel.
func (c *Client) Close() error {
	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred during RabbitMQ client close: %v", errs)
	}
	return nil
}

// PublishOrderCreated publishes the creation event for order as persistent JSON.
func (c *Client) PublishOrderCreated(order models.Order) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available")
	}

	body, err := json.Marshal(NewOrderCreated(order))
	if err != nil {
		return fmt.Errorf("failed to marshal order event to JSON: %w", err)
	}

	err = c.channel.Publish(
		"",      // default exchange
		c.queue, // routing key
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		})
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	log.Printf(" [x] Sent order event: %s", body)
	return nil
}
