package sync

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finsight/backend/internal/domain/entity"
	"github.com/finsight/backend/internal/infra/bus"
)

// fakeRepo is a controllable TransactionRepository: fetches can be gated to
// simulate slow reads and switched to failure mid-test.
type fakeRepo struct {
	mu      sync.Mutex
	records []*entity.Transaction
	err     error
	fetches int

	started chan struct{} // receives one token per fetch start, if set
	gate    chan struct{} // each fetch waits for one token, if set
}

func (r *fakeRepo) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Transaction, error) {
	r.mu.Lock()
	r.fetches++
	records := make([]*entity.Transaction, len(r.records))
	copy(records, r.records)
	err := r.err
	started := r.started
	gate := r.gate
	r.mu.Unlock()

	if started != nil {
		started <- struct{}{}
	}
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *fakeRepo) Create(ctx context.Context, tx *entity.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, tx)
	return nil
}

func (r *fakeRepo) Update(ctx context.Context, tx *entity.Transaction) error { return nil }
func (r *fakeRepo) Delete(ctx context.Context, id uuid.UUID) error           { return nil }
func (r *fakeRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	return nil, errors.New("not implemented")
}

func (r *fakeRepo) fetchCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.fetches
}

func (r *fakeRepo) setErr(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

func fixedClock() time.Time {
	return time.Date(2024, 1, 31, 12, 0, 0, 0, time.UTC)
}

func testTransaction(owner uuid.UUID, amount string, txType entity.TransactionType, date time.Time) *entity.Transaction {
	return &entity.Transaction{
		ID:      uuid.New(),
		OwnerID: owner,
		Date:    date,
		Amount:  decimal.RequireFromString(amount),
		Type:    txType,
	}
}

func newTestManager(repo *fakeRepo) (*Manager, *bus.Bus) {
	eventBus := bus.New()
	m := NewManager(repo, nil, eventBus, Config{
		FetchTimeout: 2 * time.Second,
		EventBuffer:  4,
		Clock:        fixedClock,
	})
	return m, eventBus
}

func TestSessionInitialLoad(t *testing.T) {
	owner := uuid.New()
	repo := &fakeRepo{
		records: []*entity.Transaction{
			testTransaction(owner, "1000", entity.TransactionTypeIncome, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)),
			testTransaction(owner, "300", entity.TransactionTypeExpense, time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)),
		},
	}
	m, _ := newTestManager(repo)
	defer m.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	got, err := m.Summary(ctx, owner)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !got.TotalBalance.Equal(decimal.RequireFromString("700")) {
		t.Errorf("total_balance: expected 700, got %s", got.TotalBalance)
	}
	if got.TotalTransactions != 2 {
		t.Errorf("total_transactions: expected 2, got %d", got.TotalTransactions)
	}
	if m.Session(owner).State() != StateReady {
		t.Errorf("expected session state %s, got %s", StateReady, m.Session(owner).State())
	}
}

func TestSessionCoalescesTriggerBurst(t *testing.T) {
	owner := uuid.New()
	repo := &fakeRepo{
		started: make(chan struct{}, 16),
		gate:    make(chan struct{}, 16),
	}
	m, _ := newTestManager(repo)
	defer m.Close()

	s := m.Session(owner)

	// Wait for the initial fetch to start, then keep it in flight.
	waitToken(t, repo.started, "initial fetch start")

	// A burst of triggers while the fetch is in flight must coalesce.
	s.Trigger()
	s.Trigger()
	s.Trigger()

	// Release the in-flight fetch; exactly one trailing fetch follows.
	repo.gate <- struct{}{}
	waitToken(t, repo.started, "trailing fetch start")
	repo.gate <- struct{}{}

	// Let the trailing refresh settle, then confirm nothing extra runs.
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.WaitReady(ctx); err != nil {
		t.Fatalf("session never became ready: %v", err)
	}

	select {
	case <-repo.started:
		t.Fatal("unexpected extra fetch after coalesced burst")
	case <-time.After(100 * time.Millisecond):
	}

	if got := repo.fetchCount(); got != 2 {
		t.Errorf("expected 2 fetches (initial + one trailing), got %d", got)
	}
}

func TestSessionRetainsSummaryOnFetchFailure(t *testing.T) {
	owner := uuid.New()
	repo := &fakeRepo{
		records: []*entity.Transaction{
			testTransaction(owner, "500", entity.TransactionTypeIncome, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)),
		},
	}
	m, _ := newTestManager(repo)
	defer m.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	before, err := m.Summary(ctx, owner)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	repo.setErr(errors.New("connection refused"))

	s := m.Session(owner)
	fetchesBefore := repo.fetchCount()
	s.Trigger()

	waitFor(t, func() bool { return repo.fetchCount() > fetchesBefore }, "failing fetch to run")
	time.Sleep(50 * time.Millisecond)

	after := s.Summary()
	if !after.TotalBalance.Equal(before.TotalBalance) {
		t.Errorf("summary changed after failed fetch: %s != %s", after.TotalBalance, before.TotalBalance)
	}
	if s.State() != StateReady {
		t.Errorf("failed fetch must not block the session, state = %s", s.State())
	}

	// The next trigger retries and succeeds.
	repo.setErr(nil)
	repo.mu.Lock()
	repo.records = append(repo.records, testTransaction(owner, "100", entity.TransactionTypeIncome, time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC)))
	repo.mu.Unlock()

	updates, cancelSub := s.Subscribe()
	defer cancelSub()
	s.Trigger()

	select {
	case got := <-updates:
		if !got.TotalBalance.Equal(decimal.RequireFromString("600")) {
			t.Errorf("expected balance 600 after retry, got %s", got.TotalBalance)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for retried refresh")
	}
}

func TestSessionRefreshesOnBusEvent(t *testing.T) {
	owner := uuid.New()
	repo := &fakeRepo{}
	m, eventBus := newTestManager(repo)
	defer m.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if _, err := m.Summary(ctx, owner); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s := m.Session(owner)
	updates, cancelSub := s.Subscribe()
	defer cancelSub()

	// A producer mutates the store and announces it on the bus.
	repo.mu.Lock()
	repo.records = append(repo.records, testTransaction(owner, "250", entity.TransactionTypeExpense, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)))
	repo.mu.Unlock()
	eventBus.Publish(bus.Event{OwnerID: owner, Kind: bus.KindTransactionsChanged})

	select {
	case got := <-updates:
		if !got.TotalBalance.Equal(decimal.RequireFromString("-250")) {
			t.Errorf("expected balance -250, got %s", got.TotalBalance)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for bus-driven refresh")
	}
}

func TestSessionPublishesSummaryUpdatedEvent(t *testing.T) {
	owner := uuid.New()
	repo := &fakeRepo{}
	m, eventBus := newTestManager(repo)
	defer m.Close()

	announcements, cancelSub := eventBus.Subscribe(owner, 4)
	defer cancelSub()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := m.Summary(ctx, owner); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt := <-announcements:
			if evt.Kind == bus.KindSummaryUpdated {
				return
			}
		case <-deadline:
			t.Fatal("no summary.updated announcement observed")
		}
	}
}

func TestStopOwnerDisposesSession(t *testing.T) {
	owner := uuid.New()
	repo := &fakeRepo{}
	m, _ := newTestManager(repo)
	defer m.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := m.Summary(ctx, owner); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s := m.Session(owner)
	updates, cancelSub := s.Subscribe()
	defer cancelSub()

	m.StopOwner(owner)

	if s.State() != StateDisposed {
		t.Errorf("expected state %s, got %s", StateDisposed, s.State())
	}
	if _, ok := <-updates; ok {
		t.Error("expected subscriber channel closed on dispose")
	}

	fetches := repo.fetchCount()
	s.Trigger()
	time.Sleep(50 * time.Millisecond)
	if repo.fetchCount() != fetches {
		t.Error("disposed session must not recompute")
	}

	// A new request starts a fresh session for the same owner.
	if fresh := m.Session(owner); fresh == s {
		t.Error("expected a fresh session after teardown")
	}
}

func waitToken(t *testing.T, ch <-chan struct{}, what string) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for %s", what)
	}
}

func waitFor(t *testing.T, cond func() bool, what string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}
