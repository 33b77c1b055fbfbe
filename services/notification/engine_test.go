package notification

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"servana/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeFeed struct {
	mu          sync.Mutex
	snapshot    []models.Booking
	snapshotErr error
	events      chan models.Booking
	// watchGate, when set, blocks WatchInserts until closed.
	watchGate chan struct{}
	calls     []string
	cancelled bool
}

func newFakeFeed(snapshot ...models.Booking) *fakeFeed {
	return &fakeFeed{snapshot: snapshot, events: make(chan models.Booking)}
}

func (f *fakeFeed) GetRecentByCompany(companyID string, limit int64) ([]models.Booking, error) {
	f.mu.Lock()
	f.calls = append(f.calls, "snapshot")
	f.mu.Unlock()
	if f.snapshotErr != nil {
		return nil, f.snapshotErr
	}
	return f.snapshot, nil
}

func (f *fakeFeed) WatchInserts(ctx context.Context, companyID string) (<-chan models.Booking, func(), error) {
	f.mu.Lock()
	f.calls = append(f.calls, "watch")
	gate := f.watchGate
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
	return f.events, func() {
		f.mu.Lock()
		f.cancelled = true
		f.mu.Unlock()
	}, nil
}

func (f *fakeFeed) wasCancelled() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cancelled
}

func (f *fakeFeed) callOrder() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	copy(out, f.calls)
	return out
}

type memStore struct {
	mu    sync.Mutex
	saved map[string][]models.Notification
}

func newMemStore() *memStore {
	return &memStore{saved: make(map[string][]models.Notification)}
}

func (s *memStore) Load(companyID string) ([]models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saved[companyID], nil
}

func (s *memStore) Save(companyID string, notifications []models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved[companyID] = notifications
	return nil
}

func (s *memStore) Clear(companyID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.saved, companyID)
	return nil
}

type fakePusher struct {
	mu     sync.Mutex
	pushed []string
	err    error
}

func (p *fakePusher) Push(ctx context.Context, companyID, title, body string, data map[string]string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.pushed = append(p.pushed, body)
	return nil
}

// evictRecorder captures scheduled evictions so tests can run them on demand.
type evictRecorder struct {
	delays []time.Duration
	funcs  []func()
}

func (r *evictRecorder) schedule(d time.Duration, f func()) {
	r.delays = append(r.delays, d)
	r.funcs = append(r.funcs, f)
}

func (r *evictRecorder) runAll() {
	for _, f := range r.funcs {
		f()
	}
	r.funcs = nil
}

func newTestEngine(feed BookingFeed, store *memStore, pusher *fakePusher) (*Engine, *evictRecorder) {
	e := NewEngine("c1", feed, store, pusher, zap.NewNop())
	rec := &evictRecorder{}
	e.evictAfter = rec.schedule
	return e, rec
}

func TestSnapshotNeverAlerts(t *testing.T) {
	feed := newFakeFeed(
		models.Booking{ID: "b1", CompanyID: "c1", CustomerName: "Meera"},
		models.Booking{ID: "b2", CompanyID: "c1", CustomerName: "Arjun"},
	)
	pusher := &fakePusher{}
	e, _ := newTestEngine(feed, newMemStore(), pusher)
	require.NoError(t, e.Start(context.Background()))

	// Replays of snapshot bookings are already seen.
	e.HandleInsert(models.Booking{ID: "b1", CompanyID: "c1", CustomerName: "Meera"})
	e.HandleInsert(models.Booking{ID: "b2", CompanyID: "c1", CustomerName: "Arjun"})
	assert.Empty(t, e.Active())
	assert.Empty(t, pusher.pushed)
}

func TestEachUnseenInsertAlertsExactlyOnce(t *testing.T) {
	feed := newFakeFeed()
	pusher := &fakePusher{}
	e, _ := newTestEngine(feed, newMemStore(), pusher)
	require.NoError(t, e.Start(context.Background()))

	b := models.Booking{ID: "b9", CompanyID: "c1", WorkName: "Tap Repair", CustomerName: "Sana"}
	e.HandleInsert(b)
	e.HandleInsert(b)
	e.HandleInsert(b)

	assert.Len(t, e.Active(), 1)
	assert.Len(t, e.Stored(), 1)
	assert.Len(t, pusher.pushed, 1)
}

func TestActiveQueueIsCappedStoredIsNot(t *testing.T) {
	e, _ := newTestEngine(newFakeFeed(), newMemStore(), &fakePusher{})
	require.NoError(t, e.Start(context.Background()))

	for i := 0; i < MaxActive+3; i++ {
		e.HandleInsert(models.Booking{ID: fmt.Sprintf("b%d", i), CompanyID: "c1", CustomerName: "X"})
	}

	active := e.Active()
	require.Len(t, active, MaxActive)
	// Newest first.
	assert.Equal(t, "b7", active[0].Data["bookingId"])
	assert.Len(t, e.Stored(), MaxActive+3)
}

func TestEvictionDelaysDifferByOrigin(t *testing.T) {
	e, rec := newTestEngine(newFakeFeed(), newMemStore(), &fakePusher{})
	require.NoError(t, e.Start(context.Background()))

	e.HandleInsert(models.Booking{ID: "b1", CompanyID: "c1", CustomerName: "X"})
	e.Notify(models.NotificationTypeDefault, "manual ping")

	require.Len(t, rec.delays, 2)
	assert.Equal(t, AutoEvictDelay, rec.delays[0])
	assert.Equal(t, ManualEvictDelay, rec.delays[1])
}

func TestEvictionLeavesStoredUntouched(t *testing.T) {
	e, rec := newTestEngine(newFakeFeed(), newMemStore(), &fakePusher{})
	require.NoError(t, e.Start(context.Background()))

	e.HandleInsert(models.Booking{ID: "b1", CompanyID: "c1", CustomerName: "X"})
	require.Len(t, e.Active(), 1)

	rec.runAll()
	assert.Empty(t, e.Active())
	assert.Len(t, e.Stored(), 1)
}

func TestStoredHistorySurvivesRestart(t *testing.T) {
	store := newMemStore()
	e, _ := newTestEngine(newFakeFeed(), store, &fakePusher{})
	require.NoError(t, e.Start(context.Background()))
	e.HandleInsert(models.Booking{ID: "b1", CompanyID: "c1", CustomerName: "X"})
	e.Reset()

	// A fresh session rehydrates the history from the durable store.
	e2, _ := newTestEngine(newFakeFeed(), store, &fakePusher{})
	require.NoError(t, e2.Start(context.Background()))
	assert.Len(t, e2.Stored(), 1)
	assert.Empty(t, e2.Active())
}

func TestDismissStoredRemovesOneEntry(t *testing.T) {
	store := newMemStore()
	e, _ := newTestEngine(newFakeFeed(), store, &fakePusher{})
	require.NoError(t, e.Start(context.Background()))
	e.HandleInsert(models.Booking{ID: "b1", CompanyID: "c1", CustomerName: "X"})
	e.HandleInsert(models.Booking{ID: "b2", CompanyID: "c1", CustomerName: "Y"})

	stored := e.Stored()
	require.Len(t, stored, 2)
	e.DismissStored(stored[0].ID)

	remaining := e.Stored()
	require.Len(t, remaining, 1)
	assert.Equal(t, stored[1].ID, remaining[0].ID)
	// Persisted immediately.
	saved, _ := store.Load("c1")
	assert.Len(t, saved, 1)
}

func TestClearStoredDropsEverything(t *testing.T) {
	store := newMemStore()
	e, _ := newTestEngine(newFakeFeed(), store, &fakePusher{})
	require.NoError(t, e.Start(context.Background()))
	e.HandleInsert(models.Booking{ID: "b1", CompanyID: "c1", CustomerName: "X"})

	e.ClearStored()
	assert.Empty(t, e.Stored())
	saved, _ := store.Load("c1")
	assert.Empty(t, saved)
}

func TestResetDropsTrackingButKeepsStored(t *testing.T) {
	feed := newFakeFeed()
	e, _ := newTestEngine(feed, newMemStore(), &fakePusher{})
	require.NoError(t, e.Start(context.Background()))
	e.HandleInsert(models.Booking{ID: "b1", CompanyID: "c1", CustomerName: "X"})

	e.Reset()
	assert.Empty(t, e.Active())
	assert.Len(t, e.Stored(), 1)
	assert.True(t, feed.wasCancelled(), "reset must tear the subscription down")
}

func TestInsertDuringStartupIsNotLost(t *testing.T) {
	overlap := models.Booking{ID: "b1", CompanyID: "c1", CustomerName: "Meera"}
	feed := newFakeFeed(overlap)
	e, _ := newTestEngine(feed, newMemStore(), &fakePusher{})
	require.NoError(t, e.Start(context.Background()))
	require.Equal(t, []string{"watch", "snapshot"}, feed.callOrder(),
		"the stream must open before the snapshot is read")

	// b1 raced the startup and arrives on both the snapshot and the stream;
	// b2 arrives stream-only. Only b2 alerts.
	feed.events <- overlap
	feed.events <- models.Booking{ID: "b2", CompanyID: "c1", CustomerName: "Ravi"}

	assert.Eventually(t, func() bool {
		stored := e.Stored()
		return len(stored) == 1 && stored[0].Data["bookingId"] == "b2"
	}, time.Second, 5*time.Millisecond)
	assert.Len(t, e.Active(), 1)
}

func TestSnapshotFailureTearsDownSubscription(t *testing.T) {
	feed := newFakeFeed()
	feed.snapshotErr = errors.New("primary unavailable")
	e, _ := newTestEngine(feed, newMemStore(), &fakePusher{})

	require.Error(t, e.Start(context.Background()))
	assert.True(t, feed.wasCancelled(), "a failed start must not leave the stream open")
}

func TestPushFailureDegradesToInAppOnly(t *testing.T) {
	pusher := &fakePusher{err: errors.New("permission denied")}
	e, _ := newTestEngine(newFakeFeed(), newMemStore(), pusher)
	require.NoError(t, e.Start(context.Background()))

	e.HandleInsert(models.Booking{ID: "b1", CompanyID: "c1", CustomerName: "X"})
	assert.Len(t, e.Active(), 1, "in-app alert is unaffected by push failure")
	assert.Len(t, e.Stored(), 1)
}

func TestManualNotifySharesQueues(t *testing.T) {
	e, _ := newTestEngine(newFakeFeed(), newMemStore(), &fakePusher{})
	require.NoError(t, e.Start(context.Background()))

	n := e.Notify(models.NotificationTypePayment, "Payout processed")
	assert.Equal(t, TitlePayment, n.Title)
	assert.Len(t, e.Active(), 1)
	assert.Len(t, e.Stored(), 1)
}
