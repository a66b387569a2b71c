package feed

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/redis/go-redis/v9"
)

// Channel carries every report lifecycle event.
const Channel = "billboard_reports"

// Event types published on the channel.
const (
	EventInsert = "INSERT"
	EventUpdate = "UPDATE"
)

// Event is one report change broadcast to dashboard subscribers.
type Event struct {
	Event    string    `json:"event"`
	ReportID uint      `json:"report_id"`
	PublicID string    `json:"public_id"`
	Status   string    `json:"status"`
	Priority string    `json:"priority"`
	At       time.Time `json:"at"`
}

// Publisher pushes report change events into Redis pub/sub.
type Publisher struct {
	client *redis.Client
}

// NewPublisher creates a publisher on the given Redis client.
func NewPublisher(client *redis.Client) *Publisher {
	return &Publisher{client: client}
}

// Publish broadcasts the event. Failures are logged, never fatal - a
// lost dashboard update must not fail the request that caused it.
func (p *Publisher) Publish(ctx context.Context, event Event) {
	if p == nil || p.client == nil {
		return
	}
	if event.At.IsZero() {
		event.At = time.Now().UTC()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		log.Errorf("Failed to encode feed event: %v", err)
		return
	}
	if err := p.client.Publish(ctx, Channel, payload).Err(); err != nil {
		log.Errorf("Failed to publish feed event: %v", err)
	}
}

// Subscribe opens a subscription on the report channel and returns a Go
// channel of decoded events. The subscription closes when ctx is done.
func Subscribe(ctx context.Context, client *redis.Client) <-chan Event {
	events := make(chan Event, 16)
	sub := client.Subscribe(ctx, Channel)

	go func() {
		defer close(events)
		defer sub.Close()

		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var event Event
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					log.Errorf("Failed to decode feed event: %v", err)
					continue
				}
				select {
				case events <- event:
				default:
					// slow consumer, drop rather than block the reader
				}
			}
		}
	}()

	return events
}
