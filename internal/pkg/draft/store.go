package draft

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultTTL bounds how long an abandoned draft is kept. The browser
// original kept drafts in localStorage forever; server-side storage
// needs an upper bound.
const DefaultTTL = 7 * 24 * time.Hour

const keyPrefix = "report_draft:"

// Store persists one draft per user in Redis, last write wins.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore creates a draft store on top of the shared Redis client.
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{client: client, ttl: ttl}
}

func draftKey(userID uint) string {
	return fmt.Sprintf("%s%d", keyPrefix, userID)
}

// Save overwrites the user's draft. The TTL restarts on every write, so
// an actively edited draft never expires.
func (s *Store) Save(ctx context.Context, userID uint, d *Draft) error {
	d.UpdatedAt = time.Now()
	payload, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}
	if err := s.client.Set(ctx, draftKey(userID), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}
	return nil
}

// Load returns the user's saved draft, or nil when none exists.
func (s *Store) Load(ctx context.Context, userID uint) (*Draft, error) {
	payload, err := s.client.Get(ctx, draftKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load draft: %w", err)
	}

	var d Draft
	if err := json.Unmarshal(payload, &d); err != nil {
		return nil, fmt.Errorf("failed to decode draft: %w", err)
	}
	return &d, nil
}

// Delete removes the user's draft. Called only after a confirmed
// successful submission.
func (s *Store) Delete(ctx context.Context, userID uint) error {
	return s.client.Del(ctx, draftKey(userID)).Err()
}
