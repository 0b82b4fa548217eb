// Package bus provides an in-process publish/subscribe channel for data
// change announcements, scoped by owner. Producers (anything that mutates
// transactions) and consumers (summary sessions) are decoupled: neither
// knows the other exists.
package bus

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Kind identifies the type of a bus event.
type Kind string

const (
	// KindTransactionsChanged announces that an owner's transaction set changed.
	KindTransactionsChanged Kind = "transactions.changed"

	// KindSummaryUpdated announces that a fresh summary was published for an owner.
	KindSummaryUpdated Kind = "summary.updated"
)

// Event is a broadcast message for one owner.
type Event struct {
	OwnerID uuid.UUID
	Kind    Kind
	At      time.Time
}

// subscriber holds one subscription's delivery channel.
type subscriber struct {
	ch chan Event
}

// Bus is an owner-scoped in-process event bus. Publishing never blocks: a
// subscriber whose buffer is full misses the event, which is acceptable
// because consumers coalesce triggers and re-read full state.
type Bus struct {
	mu     sync.RWMutex
	subs   map[uuid.UUID]map[int]*subscriber
	nextID int
	closed bool
}

// New creates a new Bus.
func New() *Bus {
	return &Bus{
		subs: make(map[uuid.UUID]map[int]*subscriber),
	}
}

// Subscribe registers a subscription for one owner's events. The returned
// cancel function releases the subscription and closes the channel; it is
// safe to call more than once.
func (b *Bus) Subscribe(ownerID uuid.UUID, buffer int) (<-chan Event, func()) {
	if buffer <= 0 {
		buffer = 1
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	sub := &subscriber{ch: make(chan Event, buffer)}

	if b.closed {
		close(sub.ch)
		return sub.ch, func() {}
	}

	id := b.nextID
	b.nextID++

	if b.subs[ownerID] == nil {
		b.subs[ownerID] = make(map[int]*subscriber)
	}
	b.subs[ownerID][id] = sub

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if owners, ok := b.subs[ownerID]; ok {
				if _, ok := owners[id]; ok {
					delete(owners, id)
					if len(owners) == 0 {
						delete(b.subs, ownerID)
					}
					close(sub.ch)
				}
			}
		})
	}

	return sub.ch, cancel
}

// Publish delivers an event to every subscriber of the event's owner.
func (b *Bus) Publish(event Event) {
	if event.At.IsZero() {
		event.At = time.Now().UTC()
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}

	for _, sub := range b.subs[event.OwnerID] {
		select {
		case sub.ch <- event:
		default:
			slog.Debug("Bus subscriber buffer full, event skipped",
				"owner_id", event.OwnerID.String(),
				"kind", string(event.Kind),
			)
		}
	}
}

// Close releases all subscriptions. Subsequent publishes are no-ops and
// subsequent subscriptions receive a closed channel.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true

	for ownerID, owners := range b.subs {
		for id, sub := range owners {
			close(sub.ch)
			delete(owners, id)
		}
		delete(b.subs, ownerID)
	}
}
