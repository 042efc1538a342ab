package session

import (
	"sync"

	"github.com/modelverse-dev/modelverse/internal/cli/credstore"
	"github.com/modelverse-dev/modelverse/internal/models"
)

// State is an immutable snapshot of the client's belief about who is logged
// in. Invariants: Authenticated is true exactly when the credential store
// holds a token; User != nil implies Authenticated (the converse can be
// false briefly between login and the profile fetch).
type State struct {
	Authenticated bool
	User          *models.UserProfile
	Loading       bool
	Err           string
}

// IsAdmin reports whether the cached profile carries the admin flag.
// Advisory only; the server enforces authorization independently.
func (s State) IsAdmin() bool {
	return s.User != nil && s.User.IsAdmin
}

// Context holds the current session state for the process. It is constructed
// once at bootstrap and injected into the request pipeline and the router;
// there is no package-level singleton. The authentication gateway is the
// only component that may call Set.
type Context struct {
	mu      sync.RWMutex
	state   State
	subs    map[int]func(State)
	nextSub int
}

// NewContext returns a logged-out session context.
func NewContext() *Context {
	return &Context{subs: make(map[int]func(State))}
}

// Current returns the current state snapshot.
func (c *Context) Current() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Set replaces the state and notifies subscribers. Reserved for the
// authentication gateway; other components are readers.
func (c *Context) Set(next State) {
	c.mu.Lock()
	c.state = next
	subs := make([]func(State), 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}
	c.mu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
}

// Subscribe registers fn to run after every state change and returns a
// cancel function.
func (c *Context) Subscribe(fn func(State)) func() {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

// Hydrate rebuilds the state from the credential store at process start, so
// a restart with a stored token does not silently log the user out. Store
// read failures leave the session logged out.
func (c *Context) Hydrate(store credstore.Store) State {
	next := State{}
	if token, err := store.Token(); err == nil && token != "" {
		next.Authenticated = true
		if profile, err := store.Profile(); err == nil {
			next.User = profile
		}
	}
	c.Set(next)
	return next
}
