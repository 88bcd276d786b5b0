package queue

import (
	"context"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// ErrRequeue marks a handler failure worth another delivery, such as the
// database being unreachable.  Any other error drops the message.
var ErrRequeue = errors.New("requeue")

// Handler processes one message body.
type Handler func(ctx context.Context, body []byte) error

// Binding declares where a consumer reads from.
type Binding struct {
	Exchange string
	Queue    string
	Keys     []string
	Prefetch int
}

// Consumer reads a durable queue bound to a topic exchange and feeds each
// delivery to a Handler.  It reconnects with exponential backoff until
// its context is cancelled.
type Consumer struct {
	url     string
	binding Binding
	handle  Handler
	log     *zap.Logger

	// requeueDelay slows down redelivery of failing messages.
	requeueDelay time.Duration
}

// NewConsumer returns a consumer for binding on the broker at url.
func NewConsumer(url string, binding Binding, handle Handler, log *zap.Logger) *Consumer {
	if log == nil {
		log = zap.NewNop()
	}
	if binding.Prefetch <= 0 {
		binding.Prefetch = 50
	}
	return &Consumer{
		url:          url,
		binding:      binding,
		handle:       handle,
		log:          log.Named("consumer").With(zap.String("queue", binding.Queue)),
		requeueDelay: time.Second,
	}
}

// Run consumes until ctx is cancelled and then returns ctx.Err().  Broker
// failures are logged and retried; they never end the loop.
func (c *Consumer) Run(ctx context.Context) error {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(c.url)
		if err != nil {
			c.log.Warn("dial broker failed", zap.Duration("retry_in", backoff), zap.Error(err))
			if !sleep(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		err = c.consumeLoop(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.log.Warn("consume loop ended, reconnecting", zap.Error(err))
		if !sleep(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func (c *Consumer) consumeLoop(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(c.binding.Prefetch, 0, false); err != nil {
		c.log.Warn("set QoS failed", zap.Error(err))
	}
	if err := declare(ch, c.binding); err != nil {
		return err
	}
	msgs, err := ch.ConsumeWithContext(ctx, c.binding.Queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			c.dispatch(ctx, d)
		}
	}
}

// dispatch runs the handler and settles the delivery.
func (c *Consumer) dispatch(ctx context.Context, d amqp.Delivery) {
	err := c.handle(ctx, d.Body)
	switch {
	case err == nil:
		_ = d.Ack(false)
	case errors.Is(err, ErrRequeue):
		c.log.Warn("handler failed, requeueing", zap.String("routing_key", d.RoutingKey), zap.Error(err))
		sleep(ctx, c.requeueDelay)
		_ = d.Nack(false, true)
	default:
		// reject without requeue to avoid tight loops on poison messages
		c.log.Error("handler failed, dropping message", zap.String("routing_key", d.RoutingKey), zap.Error(err))
		_ = d.Nack(false, false)
	}
}

func declare(ch *amqp.Channel, b Binding) error {
	if err := ch.ExchangeDeclare(b.Exchange, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange %s: %w", b.Exchange, err)
	}
	q, err := ch.QueueDeclare(b.Queue, true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	for _, key := range b.Keys {
		if err := ch.QueueBind(q.Name, key, b.Exchange, false, nil); err != nil {
			return fmt.Errorf("bind %s to %s: %w", key, b.Exchange, err)
		}
	}
	return nil
}

// sleep waits for d or until ctx is done; it reports whether d elapsed.
func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
