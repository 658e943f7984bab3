package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/medrelay-dev/medrelay/internal/logger"
	"github.com/medrelay-dev/medrelay/internal/services"
	"github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

const (
	dialAttempts = 5
	dialDelay    = 2 * time.Second
	maxDialDelay = 60 * time.Second
)

// Consumer drains the notification queue and hands each event to the
// matching service processor.
type Consumer struct {
	conn    *amqp091.Connection
	ch      *amqp091.Channel
	queue   string
	service *services.NotificationService
	done    chan struct{}
}

// DialWithRetry connects to RabbitMQ with exponential backoff, respecting
// context cancellation for shutdown.
func DialWithRetry(ctx context.Context, url string) (*amqp091.Connection, error) {
	var lastErr error

	for i := 1; i <= dialAttempts; i++ {
		conn, err := amqp091.Dial(url)
		if err == nil {
			if i > 1 {
				logger.Log.WithField("attempt", i).Info("rabbit connected")
			}
			return conn, nil
		}
		lastErr = err

		sleep := dialDelay * time.Duration(math.Pow(2, float64(i-1)))
		if sleep > maxDialDelay {
			sleep = maxDialDelay
		}

		logger.Log.WithFields(logrus.Fields{
			"attempt": i,
			"sleep":   sleep.String(),
			"error":   err.Error(),
		}).Warn("rabbit dial failed")

		timer := time.NewTimer(sleep)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, errors.New("dial cancelled: " + ctx.Err().Error())
		case <-timer.C:
		}
	}

	return nil, fmt.Errorf("failed to connect to RabbitMQ after %d attempts: %w", dialAttempts, lastErr)
}

func New(ctx context.Context, url, queue string, service *services.NotificationService) (*Consumer, error) {
	conn, err := DialWithRetry(ctx, url)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		conn.Close()
		return nil, err
	}

	return &Consumer{
		conn:    conn,
		ch:      ch,
		queue:   queue,
		service: service,
		done:    make(chan struct{}),
	}, nil
}

// Start consumes until Close is called. Unknown event types and malformed
// payloads are logged and dropped; processing failures are requeued.
func (c *Consumer) Start() error {
	if err := c.ch.Qos(10, 0, false); err != nil {
		return err
	}

	deliveries, err := c.ch.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		return err
	}

	go c.consume(deliveries)

	logger.Log.WithField("queue", c.queue).Info("consumer started")
	return nil
}

// consume drains deliveries until Close is called or the channel closes.
func (c *Consumer) consume(deliveries <-chan amqp091.Delivery) {
	for {
		select {
		case <-c.done:
			return
		case msg, ok := <-deliveries:
			if !ok {
				return
			}
			c.handle(msg)
		}
	}
}

func (c *Consumer) handle(msg amqp091.Delivery) {
	var event services.NotificationEvent

	if err := json.Unmarshal(msg.Body, &event); err != nil {
		logger.Log.WithError(err).Warn("dropping malformed notification event")
		_ = msg.Ack(false)
		return
	}

	var err error
	switch event.Type {
	case "CHAT":
		err = c.service.ProcessChatEvent(event)
	case "CONSENT":
		err = c.service.ProcessConsentEvent(event)
	case "ONE_WAY":
		err = c.service.ProcessOneWayEvent(event)
	default:
		logger.Log.WithField("type", event.Type).Warn("dropping notification event of unknown type")
		_ = msg.Ack(false)
		return
	}

	if err != nil {
		logger.Log.WithError(err).WithField("type", event.Type).Error("failed to process notification event")
		_ = msg.Nack(false, true)
		return
	}

	_ = msg.Ack(false)
}

// Close stops the delivery loop and tears down the channel and
// connection. In-flight unacked messages are redelivered by the broker.
func (c *Consumer) Close() error {
	close(c.done)

	if c.ch != nil {
		_ = c.ch.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
