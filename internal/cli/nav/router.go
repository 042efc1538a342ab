package nav

import (
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/modelverse-dev/modelverse/internal/cli/session"
)

// Router tracks the client's current location and runs the guard on every
// transition. The request pipeline uses it to land on the login view after
// a forced logout.
type Router struct {
	mu       sync.Mutex
	session  *session.Context
	location string
	log      zerolog.Logger
}

// NewRouter returns a router positioned at the home view.
func NewRouter(sess *session.Context, log zerolog.Logger) *Router {
	return &Router{
		session:  sess,
		location: HomePath,
		log:      log,
	}
}

// Location returns the current location.
func (r *Router) Location() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.location
}

// Navigate runs the guard for path and moves to either path or the guard's
// redirect target. It returns the resulting location.
func (r *Router) Navigate(path string) string {
	decision := Decide(path, PolicyFor(path), r.session.Current())

	r.mu.Lock()
	defer r.mu.Unlock()
	if decision.Allow {
		r.location = path
	} else {
		r.log.Debug().Str("from", path).Str("to", decision.RedirectTo).Msg("Navigation redirected")
		r.location = decision.RedirectTo
	}
	return r.location
}

// ForceLogin moves straight to the login view unless already there. This is
// the session-expiry path, so there is no error banner and no redirect
// parameter; it is not treated as an application fault. Already-there is
// judged on the path alone, so a pending ?redirect parameter survives.
func (r *Router) ForceLogin() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if pathOnly(r.location) == LoginPath {
		return
	}
	r.log.Debug().Str("from", r.location).Msg("Session ended, returning to login")
	r.location = LoginPath
}

// pathOnly strips any query string from a location.
func pathOnly(location string) string {
	if i := strings.IndexByte(location, '?'); i >= 0 {
		return location[:i]
	}
	return location
}
