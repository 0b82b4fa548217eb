// Package realtime implements the cross-process transaction change feed
// on Redis pub/sub, plus the broadcaster that fans writes out to every
// notification channel.
package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/finsight/backend/config"
	"github.com/finsight/backend/internal/application/adapter"
)

const channelPrefix = "finsight:transactions:"

// NewRedisClient connects to Redis and verifies the connection.
func NewRedisClient(cfg *config.RedisConfig) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}
	if cfg.DB != 0 {
		opts.DB = cfg.DB
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	slog.Info("Redis connection established")
	return client, nil
}

// RedisFeed implements adapter.ChangeFeed on Redis pub/sub. Each owner
// has a dedicated channel so subscribers only see their own events.
type RedisFeed struct {
	client *redis.Client
}

func NewRedisFeed(client *redis.Client) *RedisFeed {
	return &RedisFeed{client: client}
}

// Publish sends a change event to the owner's channel.
func (f *RedisFeed) Publish(ctx context.Context, event adapter.ChangeEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal change event: %w", err)
	}
	if err := f.client.Publish(ctx, channelFor(event.OwnerID), payload).Err(); err != nil {
		return fmt.Errorf("failed to publish change event: %w", err)
	}
	return nil
}

// Subscribe listens on the owner's channel and decodes events. Undecodable
// payloads are logged and skipped.
func (f *RedisFeed) Subscribe(ctx context.Context, ownerID uuid.UUID) (<-chan adapter.ChangeEvent, func(), error) {
	sub := f.client.Subscribe(ctx, channelFor(ownerID))

	// Confirm the subscription before handing out the channel.
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, nil, fmt.Errorf("failed to subscribe to change feed: %w", err)
	}

	out := make(chan adapter.ChangeEvent)
	go func() {
		defer close(out)
		for msg := range sub.Channel() {
			var event adapter.ChangeEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				slog.Warn("Discarding malformed change feed message",
					"channel", msg.Channel,
					"error", err,
				)
				continue
			}
			select {
			case out <- event:
			case <-ctx.Done():
				return
			}
		}
	}()

	cancel := func() {
		_ = sub.Close()
	}
	return out, cancel, nil
}

func channelFor(ownerID uuid.UUID) string {
	return channelPrefix + ownerID.String()
}
