// Package service publishes domain events to RabbitMQ.  Publishing is
// best effort: callers log failures and carry on, since the upstream write
// the event describes has already succeeded.
package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	q "github.com/iliyamo/frontdesk/internal/queue"
)

// Publisher sends events to the broker.
type Publisher interface {
	Publish(ctx context.Context, ev q.Event) error
}

// AMQPPublisher keeps one connection and channel open and redials on the
// next publish after a failure.  Messages are persistent and routed
// through the default exchange to the events queue.
type AMQPPublisher struct {
	url string
	log *zap.Logger

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewAMQPPublisher(url string, log *zap.Logger) *AMQPPublisher {
	return &AMQPPublisher{url: url, log: log}
}

func (p *AMQPPublisher) channel() (*amqp.Channel, error) {
	if p.ch != nil && !p.ch.IsClosed() {
		return p.ch, nil
	}
	p.closeLocked()
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	// Idempotent; durable so events survive broker restarts.
	if _, err := ch.QueueDeclare(q.QueueName, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	p.conn, p.ch = conn, ch
	return ch, nil
}

// Publish sends ev.  Errors are logged and returned.
func (p *AMQPPublisher) Publish(ctx context.Context, ev q.Event) error {
	body, err := json.Marshal(ev)
	if err != nil {
		p.log.Error("rabbitmq: marshal event failed", zap.Error(err))
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	ch, err := p.channel()
	if err != nil {
		p.log.Warn("rabbitmq: channel unavailable", zap.Error(err))
		return err
	}
	err = ch.PublishWithContext(ctx, "", q.QueueName, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    ev.ID,
		Type:         ev.Type,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
	if err != nil {
		p.log.Warn("rabbitmq: publish failed", zap.String("type", ev.Type), zap.Error(err))
		p.closeLocked()
		return err
	}
	p.log.Debug("event published", zap.String("type", ev.Type), zap.String("id", ev.ID))
	return nil
}

// Close releases the connection.
func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closeLocked()
	return nil
}

func (p *AMQPPublisher) closeLocked() {
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}

// NopPublisher drops events.  It is used when no broker is configured.
type NopPublisher struct{ Log *zap.Logger }

func (n NopPublisher) Publish(_ context.Context, ev q.Event) error {
	if n.Log != nil {
		n.Log.Debug("event dropped, no broker configured", zap.String("type", ev.Type))
	}
	return nil
}

// Emit builds and publishes an event, logging instead of returning
// failures.
func Emit(ctx context.Context, p Publisher, log *zap.Logger, typ, actor string, data any) {
	ev, err := q.NewEvent(typ, actor, data)
	if err != nil {
		log.Error("build event failed", zap.String("type", typ), zap.Error(err))
		return
	}
	if err := p.Publish(ctx, ev); err != nil {
		log.Warn("event not published", zap.String("type", typ), zap.Error(err))
	}
}
