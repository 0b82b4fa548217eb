package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ChangeOp identifies the kind of mutation that produced a change event.
type ChangeOp string

const (
	ChangeOpCreated ChangeOp = "created"
	ChangeOpUpdated ChangeOp = "updated"
	ChangeOpDeleted ChangeOp = "deleted"
)

// ChangeEvent describes a mutation of an owner's transaction set. Events
// carry no row data: consumers always re-read the full set.
type ChangeEvent struct {
	OwnerID       uuid.UUID `json:"owner_id"`
	TransactionID uuid.UUID `json:"transaction_id"`
	Op            ChangeOp  `json:"op"`
	At            time.Time `json:"at"`
}

// ChangeFeed is the cross-process push-notification channel for transaction
// changes, scoped by owner.
type ChangeFeed interface {
	// Publish sends a change event to all subscribers for the event's owner.
	Publish(ctx context.Context, event ChangeEvent) error

	// Subscribe returns a channel of change events for one owner plus a
	// cancel function that releases the subscription. The channel is closed
	// after cancel is called or the context ends.
	Subscribe(ctx context.Context, ownerID uuid.UUID) (<-chan ChangeEvent, func(), error)
}

// ChangeBroadcaster fans a change event out to every notification channel
// (in-process bus and cross-process feed), decoupling producers from
// consumers.
type ChangeBroadcaster interface {
	Broadcast(ctx context.Context, event ChangeEvent)
}
