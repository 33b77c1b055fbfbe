package notification

import (
	"context"
	"sync"
	"time"

	notificationRepo "servana/database/repository/notification"

	"go.uber.org/zap"
)

// DefaultResubscribeDelay spaces the engine start away from the sign-in
// write, avoiding a race with query authorization.
const DefaultResubscribeDelay = 1500 * time.Millisecond

// Manager owns one Engine per signed-in company session. It reacts to
// identity transitions: sign-in starts an engine after a short delay,
// sign-out tears it down.
type Manager struct {
	Feed   BookingFeed
	Store  notificationRepo.StoreRepository
	Pusher Pusher
	Logger *zap.Logger

	// ResubscribeDelay defaults to DefaultResubscribeDelay when zero.
	ResubscribeDelay time.Duration

	mu      sync.Mutex
	engines map[string]*Engine
}

// NewManager constructs a session manager.
func NewManager(feed BookingFeed, store notificationRepo.StoreRepository, pusher Pusher, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.L()
	}
	return &Manager{
		Feed:    feed,
		Store:   store,
		Pusher:  pusher,
		Logger:  logger,
		engines: make(map[string]*Engine),
	}
}

// EngineFor returns the running engine for a company, or nil when no session
// is active.
func (m *Manager) EngineFor(companyID string) *Engine {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.engines[companyID]
}

// OnSignIn establishes a session for the company and starts its engine after
// the resubscribe delay.
func (m *Manager) OnSignIn(companyID string) {
	m.mu.Lock()
	if _, exists := m.engines[companyID]; exists {
		m.mu.Unlock()
		return
	}
	engine := NewEngine(companyID, m.Feed, m.Store, m.Pusher, m.Logger)
	m.engines[companyID] = engine
	m.mu.Unlock()

	delay := m.ResubscribeDelay
	if delay == 0 {
		delay = DefaultResubscribeDelay
	}
	time.AfterFunc(delay, func() {
		if m.EngineFor(companyID) != engine {
			return // signed out while waiting
		}
		if err := engine.Start(context.Background()); err != nil {
			m.Logger.Error("failed to start notification engine",
				zap.String("companyId", companyID), zap.Error(err))
			return
		}
		// A sign-out may have raced the start; an engine no longer registered
		// must not keep its subscription.
		if m.EngineFor(companyID) != engine {
			engine.Reset()
		}
	})
}

// OnSignOut discards the company's session and its tracking state.
func (m *Manager) OnSignOut(companyID string) {
	m.mu.Lock()
	engine := m.engines[companyID]
	delete(m.engines, companyID)
	m.mu.Unlock()

	if engine != nil {
		engine.Reset()
	}
}
