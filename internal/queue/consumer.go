package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// StartAuditConsumer connects to RabbitMQ, declares the events queue and
// appends one line per event to path.  It reconnects with backoff until
// ctx is cancelled, then returns ctx.Err().  Messages that cannot be
// handled are rejected without requeue so a bad payload cannot loop.
func StartAuditConsumer(ctx context.Context, url, path string, log *zap.Logger) error {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(url)
		if err != nil {
			log.Warn("audit consumer: dial failed", zap.Error(err), zap.Duration("retry_in", backoff))
			if !sleep(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = consumeLoop(ctx, conn, path, log)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Warn("audit consumer: consume loop ended, reconnecting", zap.Error(err))
		if !sleep(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

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

func consumeLoop(ctx context.Context, conn *amqp.Connection, path string, log *zap.Logger) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		log.Warn("audit consumer: set QoS failed", zap.Error(err))
	}
	if _, err := ch.QueueDeclare(QueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	msgs, err := ch.Consume(QueueName, "", false, false, false, false, nil)
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
			if err := handleMessage(path, d.Body); err != nil {
				log.Error("audit consumer: handle message failed", zap.Error(err))
				_ = d.Nack(false, false)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

func handleMessage(path string, body []byte) error {
	var ev Event
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir logs: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()
	if _, err := f.WriteString(formatLine(ev)); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}

// formatLine renders an event as a single human-friendly line.
func formatLine(ev Event) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s | id=%s | by=%s", ev.OccurredAt.UTC().Format(time.RFC3339), ev.Type, ev.ID, ev.Actor)

	switch ev.Type {
	case TypeBookingCreated:
		var p BookingCreated
		if json.Unmarshal(ev.Data, &p) == nil {
			fmt.Fprintf(&b, " | guest=%q | stay=%s..%s | rooms=[%s]", p.Guest, p.Arrival, p.Departure, strings.Join(p.Rooms, ","))
		}
	case TypeBookingUpdated:
		var p BookingUpdated
		if json.Unmarshal(ev.Data, &p) == nil {
			fmt.Fprintf(&b, " | booking_id=%d | fields=[%s]", p.BookingID, strings.Join(p.Fields, ","))
		}
	case TypeRoomStatusUpdated:
		var p RoomStatusUpdated
		if json.Unmarshal(ev.Data, &p) == nil {
			fmt.Fprintf(&b, " | room=%s | unit=%s | status=%s", p.Room, p.Unit, p.Status)
		}
	case TypeTaskCreated, TypeTaskUpdated:
		var p TaskChanged
		if json.Unmarshal(ev.Data, &p) == nil {
			fmt.Fprintf(&b, " | task=%s | room=%s | type=%s | status=%s", p.TaskID, p.Room, p.Type, p.Status)
		}
	default:
		fmt.Fprintf(&b, " | data=%s", ev.Data)
	}
	b.WriteByte('\n')
	return b.String()
}
