package realtime

import (
	"context"
	"log/slog"

	"github.com/finsight/backend/internal/application/adapter"
	"github.com/finsight/backend/internal/infra/bus"
)

// Broadcaster fans a change event out to the in-process bus and, when
// configured, the cross-process feed. Feed failures are logged, not
// returned: the write already committed and local consumers were told.
type Broadcaster struct {
	bus  *bus.Bus
	feed adapter.ChangeFeed
}

func NewBroadcaster(eventBus *bus.Bus, feed adapter.ChangeFeed) *Broadcaster {
	return &Broadcaster{
		bus:  eventBus,
		feed: feed,
	}
}

func (b *Broadcaster) Broadcast(ctx context.Context, event adapter.ChangeEvent) {
	b.bus.Publish(bus.Event{
		OwnerID: event.OwnerID,
		Kind:    bus.KindTransactionsChanged,
		At:      event.At,
	})

	if b.feed == nil {
		return
	}
	if err := b.feed.Publish(ctx, event); err != nil {
		slog.Warn("Failed to publish change event to feed",
			"owner_id", event.OwnerID,
			"op", event.Op,
			"error", err,
		)
	}
}
