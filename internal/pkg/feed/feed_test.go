package feed

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventRoundTrip(t *testing.T) {
	event := Event{
		Event:    EventUpdate,
		ReportID: 42,
		PublicID: "BM123ABC",
		Status:   "investigating",
		Priority: "high",
		At:       time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC),
	}

	payload, err := json.Marshal(event)
	require.NoError(t, err)

	var decoded Event
	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.Equal(t, event, decoded)
}

func TestPublisherNilClientIsNoop(t *testing.T) {
	var p *Publisher
	// must not panic
	p.Publish(context.Background(), Event{Event: EventInsert})

	p = NewPublisher(nil)
	p.Publish(context.Background(), Event{Event: EventInsert})
}
