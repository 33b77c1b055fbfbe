package notification

import (
	"context"
	"fmt"
	"sync"
	"time"

	notificationRepo "servana/database/repository/notification"
	"servana/models"

	"go.uber.org/zap"
)

// Engine detects newly created bookings for one company in real time and
// surfaces them as transient and durable alerts. It keys de-duplication on
// booking id, so it tolerates out-of-order delivery, and it never re-alerts
// for bookings that were already present when the session started.
//
// The engine is single-owner, per-session state: the seen set and the active
// queue live only in memory and are discarded by Reset. The stored history is
// additionally mirrored to the durable store on every change, last-write-wins.
type Engine struct {
	CompanyID string
	Feed      BookingFeed
	Store     notificationRepo.StoreRepository
	Pusher    Pusher
	Logger    *zap.Logger

	// Now is the clock; tests override it.
	Now func() time.Time
	// evictAfter schedules an active-queue eviction; tests override it to run
	// synchronously.
	evictAfter func(d time.Duration, f func())

	mu      sync.Mutex
	seen    map[string]struct{}
	active  []models.Notification
	stored  []models.Notification
	cancel  func()
	running bool
}

// NewEngine constructs an engine for one company session.
func NewEngine(companyID string, feed BookingFeed, store notificationRepo.StoreRepository, pusher Pusher, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.L()
	}
	return &Engine{
		CompanyID: companyID,
		Feed:      feed,
		Store:     store,
		Pusher:    pusher,
		Logger:    logger,
		Now:       time.Now,
		evictAfter: func(d time.Duration, f func()) {
			time.AfterFunc(d, f)
		},
		seen: make(map[string]struct{}),
	}
}

// Start rehydrates the stored history, opens the insert stream, then takes
// the initial snapshot, recording every returned id without emitting alerts.
// A subscription that cannot be established is returned as an error; the
// caller decides when to retry.
func (e *Engine) Start(ctx context.Context) error {
	e.Reset()

	if e.Store != nil {
		stored, err := e.Store.Load(e.CompanyID)
		if err != nil {
			e.Logger.Error("failed to rehydrate stored notifications",
				zap.String("companyId", e.CompanyID), zap.Error(err))
		} else {
			e.mu.Lock()
			e.stored = stored
			e.mu.Unlock()
		}
	}

	// Subscribe before reading the snapshot: the stream does not replay
	// inserts from before it opened, and the seen set absorbs the overlap.
	events, cancel, err := e.Feed.WatchInserts(ctx, e.CompanyID)
	if err != nil {
		return fmt.Errorf("failed to subscribe to bookings for company %s: %w", e.CompanyID, err)
	}

	snapshot, err := e.Feed.GetRecentByCompany(e.CompanyID, SnapshotLimit)
	if err != nil {
		cancel()
		return fmt.Errorf("failed to load booking snapshot for company %s: %w", e.CompanyID, err)
	}

	e.mu.Lock()
	for _, b := range snapshot {
		e.seen[b.ID] = struct{}{}
	}
	e.cancel = cancel
	e.running = true
	e.mu.Unlock()

	go e.consume(events)
	return nil
}

func (e *Engine) consume(events <-chan models.Booking) {
	for b := range events {
		e.HandleInsert(b)
	}

	// Closed channel: either a deliberate stop or a stream error. Either way
	// the tracking state is stale; drop it and wait for a resubscribe.
	e.mu.Lock()
	wasRunning := e.running
	e.mu.Unlock()
	if wasRunning {
		e.Logger.Warn("booking subscription ended; resetting tracking state",
			zap.String("companyId", e.CompanyID))
		e.Reset()
	}
}

// HandleInsert processes one insert event. Ids already in the seen set are
// ignored; each unseen id produces exactly one alert.
func (e *Engine) HandleInsert(b models.Booking) {
	e.mu.Lock()
	if _, ok := e.seen[b.ID]; ok {
		e.mu.Unlock()
		return
	}
	e.seen[b.ID] = struct{}{}
	n := FromBooking(b, e.Now())
	e.enqueueLocked(n, AutoEvictDelay)
	e.mu.Unlock()

	e.deliver(n)
}

// Notify surfaces a manually triggered alert (shorter eviction delay). It
// shares the active/stored queues with auto-detected alerts.
func (e *Engine) Notify(notificationType, message string) models.Notification {
	n := models.Notification{
		ID:        newID(e.Now()),
		Type:      notificationType,
		Title:     TitleFor(notificationType),
		Message:   message,
		Timestamp: e.Now(),
	}

	e.mu.Lock()
	e.enqueueLocked(n, ManualEvictDelay)
	e.mu.Unlock()

	e.deliver(n)
	return n
}

// enqueueLocked appends to both queues and persists the stored history.
// Callers hold e.mu.
func (e *Engine) enqueueLocked(n models.Notification, evictIn time.Duration) {
	e.active = append([]models.Notification{n}, e.active...)
	if len(e.active) > MaxActive {
		e.active = e.active[:MaxActive]
	}
	e.stored = append([]models.Notification{n}, e.stored...)
	e.persistStoredLocked()

	e.evictAfter(evictIn, func() { e.removeActive(n.ID) })
}

// deliver fires the best-effort side effects outside the lock.
func (e *Engine) deliver(n models.Notification) {
	if e.Pusher == nil {
		return
	}
	data := map[string]string{"type": n.Type, "sound": "default"}
	for k, v := range n.Data {
		data[k] = v
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := e.Pusher.Push(ctx, e.CompanyID, n.Title, n.Message, data); err != nil {
		// Missing permission or delivery failure degrades to in-app only.
		e.Logger.Warn("push delivery failed",
			zap.String("companyId", e.CompanyID), zap.Error(err))
	}
}

// removeActive evicts one alert from the active queue. The stored history is
// untouched.
func (e *Engine) removeActive(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, n := range e.active {
		if n.ID == id {
			e.active = append(e.active[:i], e.active[i+1:]...)
			return
		}
	}
}

// Active returns a copy of the active queue, newest first.
func (e *Engine) Active() []models.Notification {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]models.Notification, len(e.active))
	copy(out, e.active)
	return out
}

// Stored returns a copy of the durable history, newest first.
func (e *Engine) Stored() []models.Notification {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]models.Notification, len(e.stored))
	copy(out, e.stored)
	return out
}

// DismissStored removes one entry from the durable history. The active queue
// is untouched.
func (e *Engine) DismissStored(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, n := range e.stored {
		if n.ID == id {
			e.stored = append(e.stored[:i], e.stored[i+1:]...)
			e.persistStoredLocked()
			return
		}
	}
}

// ClearStored drops the whole durable history.
func (e *Engine) ClearStored() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stored = nil
	e.persistStoredLocked()
}

// persistStoredLocked mirrors the stored history to the durable store.
// Callers hold e.mu. Failures are logged, never surfaced.
func (e *Engine) persistStoredLocked() {
	if e.Store == nil {
		return
	}
	snapshot := make([]models.Notification, len(e.stored))
	copy(snapshot, e.stored)
	if err := e.Store.Save(e.CompanyID, snapshot); err != nil {
		e.Logger.Error("failed to persist stored notifications",
			zap.String("companyId", e.CompanyID), zap.Error(err))
	}
}

// Reset discards the seen set, the active queue and the subscription,
// returning the engine to its uninitialized state. The stored history
// survives a reset.
func (e *Engine) Reset() {
	e.mu.Lock()
	cancel := e.cancel
	e.cancel = nil
	e.running = false
	e.seen = make(map[string]struct{})
	e.active = nil
	e.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}
