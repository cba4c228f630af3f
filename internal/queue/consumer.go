package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// AuditConsumer listens to the layout.saved queue and appends one line per
// event to <Dir>/layouts.log.
type AuditConsumer struct {
	URL string
	Dir string
}

// NewAuditConsumer returns a consumer writing to logs/layouts.log.
func NewAuditConsumer(url string) *AuditConsumer {
	return &AuditConsumer{URL: url, Dir: "logs"}
}

// Run dials the broker and consumes until ctx is done, reconnecting with
// exponential backoff.  Malformed messages are rejected without requeue so
// the loop keeps going.
func (a *AuditConsumer) Run(ctx context.Context) error {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(a.URL)
		if err != nil {
			log.Printf("layout-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
			if !sleepCtx(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = a.consumeLoop(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Printf("layout-consumer: consume loop ended: %v; reconnecting", err)
		if !sleepCtx(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func (a *AuditConsumer) consumeLoop(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		log.Printf("layout-consumer: set QoS failed: %v", err)
	}
	if _, err := ch.QueueDeclare(LayoutSavedQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	msgs, err := ch.ConsumeWithContext(ctx, LayoutSavedQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for d := range msgs {
		if err := a.handleMessage(d.Body); err != nil {
			log.Printf("layout-consumer: handle message failed: %v", err)
			_ = d.Nack(false, false)
			continue
		}
		_ = d.Ack(false)
	}
	return errors.New("deliveries channel closed")
}

func (a *AuditConsumer) handleMessage(body []byte) error {
	var ev LayoutSavedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if ev.LayoutID == "" {
		return errors.New("event without layout_id")
	}
	if err := os.MkdirAll(a.Dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", a.Dir, err)
	}
	f, err := os.OpenFile(filepath.Join(a.Dir, "layouts.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(formatEvent(ev)); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}

func formatEvent(ev LayoutSavedEvent) string {
	tiers := make([]string, 0, len(ev.TierCounts))
	for t, n := range ev.TierCounts {
		tiers = append(tiers, fmt.Sprintf("%s=%d", t, n))
	}
	sort.Strings(tiers)
	return fmt.Sprintf("[%s] Layout saved | layout_id=%s | name=%q | cells=%d | capacity=%d | grid=%dx%d | revenue=%.2f | tiers=[%s]\n",
		ev.SavedAt, ev.LayoutID, ev.Name, ev.OccupiedCells, ev.Capacity, ev.RowCount, ev.ColumnCount, ev.TotalRevenue, strings.Join(tiers, ","))
}
