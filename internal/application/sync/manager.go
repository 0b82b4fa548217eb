package sync

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/finsight/backend/internal/application/adapter"
	"github.com/finsight/backend/internal/domain/entity"
	"github.com/finsight/backend/internal/infra/bus"
)

const (
	// defaultFetchTimeout bounds a single full-set fetch.
	defaultFetchTimeout = 10 * time.Second
	// defaultEventBuffer is the per-session bus subscription buffer.
	defaultEventBuffer = 8
)

// Config holds manager configuration.
type Config struct {
	FetchTimeout time.Duration
	EventBuffer  int
	// Clock overrides the reference instant used for aggregation.
	// Defaults to time.Now in UTC; tests pin it.
	Clock func() time.Time
}

// Manager owns the summary sessions, one per active owner. Sessions start
// lazily on first use and stop on owner teardown or manager close.
type Manager struct {
	repo     adapter.TransactionRepository
	feed     adapter.ChangeFeed
	eventBus *bus.Bus
	cfg      Config

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
	closed   bool
}

// NewManager creates a new session manager. feed may be nil, in which case
// sessions refresh on in-process events only.
func NewManager(
	repo adapter.TransactionRepository,
	feed adapter.ChangeFeed,
	eventBus *bus.Bus,
	cfg Config,
) *Manager {
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = defaultFetchTimeout
	}
	if cfg.EventBuffer <= 0 {
		cfg.EventBuffer = defaultEventBuffer
	}
	if cfg.Clock == nil {
		cfg.Clock = func() time.Time { return time.Now().UTC() }
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Manager{
		repo:     repo,
		feed:     feed,
		eventBus: eventBus,
		cfg:      cfg,
		ctx:      ctx,
		cancel:   cancel,
		sessions: make(map[uuid.UUID]*Session),
	}
}

// Session returns the owner's session, starting one if needed. Returns nil
// after the manager is closed.
func (m *Manager) Session(ownerID uuid.UUID) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}

	if s, ok := m.sessions[ownerID]; ok {
		return s
	}

	s := newSession(
		m.ctx,
		ownerID,
		m.repo,
		m.eventBus,
		m.feed,
		m.cfg.Clock,
		m.cfg.FetchTimeout,
		m.cfg.EventBuffer,
	)
	m.sessions[ownerID] = s

	slog.Info("Summary session started", "owner_id", ownerID.String())

	return s
}

// Summary returns the owner's current summary, waiting for the session's
// first refresh attempt to settle.
func (m *Manager) Summary(ctx context.Context, ownerID uuid.UUID) (*entity.FinancialSummary, error) {
	s := m.Session(ownerID)
	if s == nil {
		return entity.EmptySummary(m.cfg.Clock()), nil
	}

	if err := s.WaitReady(ctx); err != nil {
		return nil, err
	}

	return s.Summary(), nil
}

// StopOwner tears down the owner's session (logout). A later request for
// the same owner starts a fresh session.
func (m *Manager) StopOwner(ownerID uuid.UUID) {
	m.mu.Lock()
	s, ok := m.sessions[ownerID]
	if ok {
		delete(m.sessions, ownerID)
	}
	m.mu.Unlock()

	if ok {
		s.Close()
		slog.Info("Summary session stopped", "owner_id", ownerID.String())
	}
}

// Close disposes every session and stops the manager.
func (m *Manager) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	sessions := make([]*Session, 0, len(m.sessions))
	for ownerID, s := range m.sessions {
		sessions = append(sessions, s)
		delete(m.sessions, ownerID)
	}
	m.mu.Unlock()

	for _, s := range sessions {
		s.Close()
	}
	m.cancel()
}
