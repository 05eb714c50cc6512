package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	domainauth "github.com/workvortex/vortex-api/internal/domain/auth"
	"github.com/workvortex/vortex-api/internal/ports"
)

// DefaultEventChannel is the pub/sub channel session events are published on.
const DefaultEventChannel = "vortex:session-events"

// EventBus carries session events between API processes over Redis pub/sub.
// Delivery is at-most-once; subscribers that are offline miss events.
type EventBus struct {
	client  redis.UniversalClient
	channel string
	logger  *slog.Logger
}

// EventBusOptions configures an EventBus.
type EventBusOptions struct {
	Channel string
	Logger  *slog.Logger
}

var _ ports.EventBus = (*EventBus)(nil)

// NewEventBus creates an EventBus.
func NewEventBus(client redis.UniversalClient, opts EventBusOptions) *EventBus {
	ch := opts.Channel
	if ch == "" {
		ch = DefaultEventChannel
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &EventBus{client: client, channel: ch, logger: logger.With("component", "session_event_bus")}
}

// Publish sends ev to every listener.
func (b *EventBus) Publish(ctx context.Context, ev domainauth.SessionEvent) error {
	if !ev.Kind.Valid() {
		return fmt.Errorf("invalid session event kind %q", ev.Kind)
	}
	// bearer tokens never leave the issuing process
	ev.Session.Token = ""
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal session event: %w", err)
	}
	if err := b.client.Publish(ctx, b.channel, data).Err(); err != nil {
		return fmt.Errorf("redis publish: %w", err)
	}
	return nil
}

// Listen delivers events to fn until ctx is done. Malformed payloads are logged and skipped.
func (b *EventBus) Listen(ctx context.Context, fn func(domainauth.SessionEvent)) error {
	sub := b.client.Subscribe(ctx, b.channel)
	defer func() {
		if err := sub.Close(); err != nil {
			b.logger.DebugContext(ctx, "close subscription", "error", err)
		}
	}()

	// Wait for the subscription to be confirmed so publishes after Listen returns control are seen.
	if _, err := sub.Receive(ctx); err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			return nil
		}
		return fmt.Errorf("redis subscribe: %w", err)
	}

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			var ev domainauth.SessionEvent
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil || !ev.Kind.Valid() {
				b.logger.WarnContext(ctx, "dropping malformed session event", "error", err)
				continue
			}
			fn(ev)
		}
	}
}
