// Package identity is the boundary to the authentication provider: it tells
// the rest of the server who is signed in and broadcasts sign-in/sign-out
// transitions to interested subscribers (notably the notification session
// manager).
package identity

import "sync"

// Event types delivered to auth-state listeners.
const (
	EventSignIn  = "signin"
	EventSignOut = "signout"
)

// Event describes one auth-state transition.
type Event struct {
	Type      string
	CompanyID string
}

// Listener receives auth-state events.
type Listener func(Event)

// Provider tracks signed-in company sessions and fans out transitions.
type Provider struct {
	mu        sync.Mutex
	sessions  map[string]bool
	listeners map[int]Listener
	nextID    int
}

// NewProvider constructs an identity provider.
func NewProvider() *Provider {
	return &Provider{
		sessions:  make(map[string]bool),
		listeners: make(map[int]Listener),
	}
}

// OnAuthStateChange registers a listener and returns its unsubscribe handle.
func (p *Provider) OnAuthStateChange(l Listener) func() {
	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.listeners[id] = l
	p.mu.Unlock()

	return func() {
		p.mu.Lock()
		delete(p.listeners, id)
		p.mu.Unlock()
	}
}

// SignIn records a company session and notifies listeners. Repeated sign-ins
// for an already-active session are ignored.
func (p *Provider) SignIn(companyID string) {
	p.mu.Lock()
	if p.sessions[companyID] {
		p.mu.Unlock()
		return
	}
	p.sessions[companyID] = true
	listeners := p.snapshotLocked()
	p.mu.Unlock()

	for _, l := range listeners {
		l(Event{Type: EventSignIn, CompanyID: companyID})
	}
}

// SignOut drops a company session and notifies listeners.
func (p *Provider) SignOut(companyID string) {
	p.mu.Lock()
	if !p.sessions[companyID] {
		p.mu.Unlock()
		return
	}
	delete(p.sessions, companyID)
	listeners := p.snapshotLocked()
	p.mu.Unlock()

	for _, l := range listeners {
		l(Event{Type: EventSignOut, CompanyID: companyID})
	}
}

// IsSignedIn reports whether the company currently has a session.
func (p *Provider) IsSignedIn(companyID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.sessions[companyID]
}

func (p *Provider) snapshotLocked() []Listener {
	out := make([]Listener, 0, len(p.listeners))
	for _, l := range p.listeners {
		out = append(out, l)
	}
	return out
}
