package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/iliyamo/court-reservation/internal/model"
)

// ErrReconnecting is returned by Publish while another call is dialing the
// broker.  Callers drop the event instead of queueing behind the dial.
var ErrReconnecting = errors.New("rabbitmq reconnect in progress")

// DefaultDialTimeout bounds the TCP connect and AMQP handshake of one
// reconnect attempt.
const DefaultDialTimeout = 5 * time.Second

// Publisher sends booking events to a durable topic exchange, using the
// event type as routing key.  The connection is opened lazily and dropped
// after a failed publish so the next call redials.  Publish is safe for
// concurrent use and never waits longer than its context allows: the dial
// runs in the background and at most one dial is in flight.
type Publisher struct {
	url         string
	exchange    string
	log         *zap.Logger
	dialTimeout time.Duration

	mu      sync.Mutex
	conn    *amqp.Connection
	ch      *amqp.Channel
	dialing bool
	closed  bool
}

// NewPublisher returns a Publisher for exchange on the broker at url.  No
// connection is made until the first Publish.
func NewPublisher(url, exchange string, log *zap.Logger) *Publisher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Publisher{url: url, exchange: exchange, log: log.Named("publisher"), dialTimeout: DefaultDialTimeout}
}

// Publish sends ev as a persistent JSON message.  Errors are returned so
// the caller can log them; nothing is retried here.
func (p *Publisher) Publish(ctx context.Context, ev model.BookingEvent) error {
	msg, err := encodeEvent(ev, time.Now())
	if err != nil {
		return err
	}
	ch, err := p.channel(ctx)
	if err != nil {
		return err
	}
	if err := ch.PublishWithContext(ctx, p.exchange, string(ev.Type), false, false, msg); err != nil {
		p.log.Warn("publish failed, dropping connection", zap.String("routing_key", string(ev.Type)), zap.Error(err))
		p.drop(ch)
		return fmt.Errorf("publish %s: %w", ev.Type, err)
	}
	return nil
}

type dialResult struct {
	ch  *amqp.Channel
	err error
}

// channel returns the open channel or starts a dial.  The dial outlives
// an impatient caller and installs the connection for the next Publish.
func (p *Publisher) channel(ctx context.Context) (*amqp.Channel, error) {
	p.mu.Lock()
	switch {
	case p.closed:
		p.mu.Unlock()
		return nil, amqp.ErrClosed
	case p.ch != nil && !p.ch.IsClosed():
		ch := p.ch
		p.mu.Unlock()
		return ch, nil
	case p.dialing:
		p.mu.Unlock()
		return nil, ErrReconnecting
	}
	p.dialing = true
	p.resetLocked()
	p.mu.Unlock()

	done := make(chan dialResult, 1)
	go func() {
		conn, ch, err := p.open()
		p.mu.Lock()
		p.dialing = false
		if err == nil && p.closed {
			_ = conn.Close()
			ch, err = nil, amqp.ErrClosed
		} else if err == nil {
			p.conn, p.ch = conn, ch
		}
		p.mu.Unlock()
		done <- dialResult{ch: ch, err: err}
	}()

	select {
	case r := <-done:
		return r.ch, r.err
	case <-ctx.Done():
		return nil, fmt.Errorf("dial rabbitmq: %w", ctx.Err())
	}
}

// open dials the broker and declares the exchange.
func (p *Publisher) open() (*amqp.Connection, *amqp.Channel, error) {
	conn, err := amqp.DialConfig(p.url, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial:      amqp.DefaultDial(p.dialTimeout),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(p.exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, nil, fmt.Errorf("declare exchange: %w", err)
	}
	return conn, ch, nil
}

// drop forgets ch if it is still the current channel.
func (p *Publisher) drop(ch *amqp.Channel) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ch == ch {
		p.resetLocked()
	}
}

// resetLocked closes the current connection.  p.mu must be held.
func (p *Publisher) resetLocked() {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
	p.conn, p.ch = nil, nil
}

// Close releases the broker connection.  A dial still in flight closes
// its connection when it completes.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	p.resetLocked()
	return nil
}

func encodeEvent(ev model.BookingEvent, now time.Time) (amqp.Publishing, error) {
	body, err := json.Marshal(ev)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("marshal event: %w", err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    ev.ID,
		Type:         string(ev.Type),
		Timestamp:    now.UTC(),
		Body:         body,
	}, nil
}
