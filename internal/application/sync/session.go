// Package sync maintains one live financial summary per active owner and
// keeps it consistent with the transaction store through event-driven
// refreshes. Recomputation is always "fetch the full set, then reduce":
// nothing is patched incrementally, so a missed event can never leave the
// summary permanently skewed.
package sync

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/finsight/backend/internal/application/adapter"
	"github.com/finsight/backend/internal/application/usecase/summary"
	"github.com/finsight/backend/internal/domain/entity"
	"github.com/finsight/backend/internal/infra/bus"
)

// State represents the lifecycle state of a session.
type State string

const (
	// StateLoading means the first fetch has not completed yet.
	StateLoading State = "loading"
	// StateReady means a summary has been computed and published.
	StateReady State = "ready"
	// StateDisposed means the session released its subscriptions.
	StateDisposed State = "disposed"
)

// Session owns the live summary for a single owner. The summary is owned
// exclusively by the session; callers must treat returned pointers as
// read-only.
type Session struct {
	ownerID      uuid.UUID
	repo         adapter.TransactionRepository
	eventBus     *bus.Bus
	feed         adapter.ChangeFeed
	now          func() time.Time
	fetchTimeout time.Duration

	// kick coalesces trigger bursts: a buffered slot of one guarantees a
	// trailing refresh after the in-flight one without duplicate storms.
	kick      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
	ready     chan struct{}
	readyOnce sync.Once

	mu         sync.RWMutex
	state      State
	current    *entity.FinancialSummary
	generation uint64
	subs       map[int]chan *entity.FinancialSummary
	nextSubID  int
}

// newSession creates a session and starts its refresh loop.
func newSession(
	ctx context.Context,
	ownerID uuid.UUID,
	repo adapter.TransactionRepository,
	eventBus *bus.Bus,
	feed adapter.ChangeFeed,
	now func() time.Time,
	fetchTimeout time.Duration,
	eventBuffer int,
) *Session {
	s := &Session{
		ownerID:      ownerID,
		repo:         repo,
		eventBus:     eventBus,
		feed:         feed,
		now:          now,
		fetchTimeout: fetchTimeout,
		kick:         make(chan struct{}, 1),
		done:         make(chan struct{}),
		ready:        make(chan struct{}),
		state:        StateLoading,
		subs:         make(map[int]chan *entity.FinancialSummary),
	}

	busCh, busCancel := eventBus.Subscribe(ownerID, eventBuffer)

	var feedCh <-chan adapter.ChangeEvent
	feedCancel := func() {}
	if feed != nil {
		ch, cancel, err := feed.Subscribe(ctx, ownerID)
		if err != nil {
			slog.Warn("Change feed subscription failed, continuing with in-process events only",
				"owner_id", ownerID.String(),
				"error", err,
			)
		} else {
			feedCh = ch
			feedCancel = cancel
		}
	}

	go s.forward(ctx, busCh, busCancel, feedCh, feedCancel)
	go s.run(ctx)

	return s
}

// OwnerID returns the owner this session belongs to.
func (s *Session) OwnerID() uuid.UUID {
	return s.ownerID
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Summary returns the latest published summary. Before the first successful
// computation it returns an all-zero summary rather than nil, so callers
// always have a consistent read.
func (s *Session) Summary() *entity.FinancialSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return entity.EmptySummary(s.now())
	}
	return s.current
}

// Trigger requests a recomputation. Triggers arriving while a fetch is in
// flight collapse into exactly one trailing run; none are silently lost.
func (s *Session) Trigger() {
	select {
	case s.kick <- struct{}{}:
	default:
		// A refresh is already queued; this burst is covered by it.
	}
}

// Subscribe registers a listener for published summaries. Delivery is
// latest-wins: a slow listener observes the newest summary, not every
// intermediate one. The cancel function releases the subscription.
func (s *Session) Subscribe() (<-chan *entity.FinancialSummary, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan *entity.FinancialSummary, 1)

	if s.state == StateDisposed {
		close(ch)
		return ch, func() {}
	}

	id := s.nextSubID
	s.nextSubID++
	s.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if _, ok := s.subs[id]; ok {
				delete(s.subs, id)
				close(ch)
			}
		})
	}

	return ch, cancel
}

// WaitReady blocks until the first refresh attempt has completed or the
// context ends. A failed first fetch still counts as an attempt: the
// session stays usable and retries on the next trigger.
func (s *Session) WaitReady(ctx context.Context) error {
	select {
	case <-s.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close disposes the session: subscriptions are released and no further
// recomputation runs. Safe to call more than once.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.state = StateDisposed
		for id, ch := range s.subs {
			delete(s.subs, id)
			close(ch)
		}
		s.mu.Unlock()

		close(s.done)
		s.readyOnce.Do(func() { close(s.ready) })
	})
}

// forward converts bus and change-feed events into refresh triggers.
func (s *Session) forward(
	ctx context.Context,
	busCh <-chan bus.Event,
	busCancel func(),
	feedCh <-chan adapter.ChangeEvent,
	feedCancel func(),
) {
	defer busCancel()
	defer feedCancel()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.done:
			return
		case evt, ok := <-busCh:
			if !ok {
				busCh = nil
				continue
			}
			if evt.Kind == bus.KindTransactionsChanged {
				s.Trigger()
			}
		case _, ok := <-feedCh:
			if !ok {
				feedCh = nil
				continue
			}
			s.Trigger()
		}
	}
}

// run performs the initial load and then serves triggers serially, so at
// most one fetch+recompute is ever in flight.
func (s *Session) run(ctx context.Context) {
	s.refresh(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.done:
			return
		case <-s.kick:
			s.refresh(ctx)
		}
	}
}

// refresh fetches the owner's full transaction set and publishes a freshly
// reduced summary. A fetch failure is logged and the previous summary is
// retained; the session does not enter a blocking error state.
func (s *Session) refresh(ctx context.Context) {
	defer s.readyOnce.Do(func() { close(s.ready) })

	s.mu.Lock()
	if s.state == StateDisposed {
		s.mu.Unlock()
		return
	}
	s.generation++
	gen := s.generation
	s.mu.Unlock()

	fetchCtx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	records, err := s.repo.FindByOwner(fetchCtx, s.ownerID)
	cancel()

	if err != nil {
		slog.Error("Summary refresh fetch failed, retaining previous summary",
			"owner_id", s.ownerID.String(),
			"error", err,
		)
		return
	}

	computed := summary.Aggregate(records, s.now())

	s.mu.Lock()
	// A newer fetch has started since this one; its result wins.
	if gen != s.generation || s.state == StateDisposed {
		s.mu.Unlock()
		return
	}
	s.current = computed
	s.state = StateReady
	// Delivery happens under the lock: sends never block (latest-wins)
	// and this keeps them ordered against subscription teardown.
	for _, ch := range s.subs {
		publishLatest(ch, computed)
	}
	s.mu.Unlock()

	// Announce the update so components without a subscription channel
	// still learn that this owner's data settled.
	s.eventBus.Publish(bus.Event{OwnerID: s.ownerID, Kind: bus.KindSummaryUpdated})
}

// publishLatest replaces any undelivered summary with the newest one.
func publishLatest(ch chan *entity.FinancialSummary, s *entity.FinancialSummary) {
	for {
		select {
		case ch <- s:
			return
		default:
			select {
			case <-ch:
			default:
			}
		}
	}
}
