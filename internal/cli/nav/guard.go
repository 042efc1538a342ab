package nav

import (
	"net/url"
	"strings"

	"github.com/modelverse-dev/modelverse/internal/cli/session"
)

const (
	// LoginPath is where unauthenticated navigation and forced logouts land
	LoginPath = "/login"
	// HomePath is where denied authenticated navigation lands
	HomePath = "/"
)

// Policy is the access requirement declared on a route. The three tags are
// mutually exclusive; RequiresAdmin implies RequiresAuth. The zero value is
// a publicly reachable route.
type Policy struct {
	RequiresAuth  bool
	RequiresAdmin bool
	Guest         bool
}

// Decision is the guard's verdict for one navigation attempt.
type Decision struct {
	Allow      bool
	RedirectTo string
}

// Routes maps each navigable path to its access policy. The table is owned
// by the view layer; the guard treats it as read-only configuration.
var Routes = map[string]Policy{
	HomePath:      {RequiresAuth: true},
	LoginPath:     {Guest: true},
	"/register":   {Guest: true},
	"/profile":    {RequiresAuth: true},
	"/resources":  {RequiresAuth: true},
	"/training":   {RequiresAuth: true},
	"/inference":  {RequiresAuth: true},
	"/chat":       {RequiresAuth: true},
	"/evaluation": {RequiresAuth: true},
	"/admin":      {RequiresAuth: true, RequiresAdmin: true},
	"/shared":     {},
	"/privacy":    {},
	"/about":      {},
}

// PolicyFor returns the access policy for path. Detail pages inherit the
// policy of their first segment ("/training/42" uses "/training"); unknown
// paths are public, matching the catch-all not-found route.
func PolicyFor(path string) Policy {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if policy, ok := Routes[path]; ok {
		return policy
	}
	trimmed := strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(trimmed, '/'); i >= 0 {
		if policy, ok := Routes["/"+trimmed[:i]]; ok {
			return policy
		}
	}
	return Policy{}
}

// Decide compares a route's policy against the session state. It reads only
// the in-memory state, never the network, so a stale authenticated flag can
// let navigation through to a view whose API calls then 401 and force a
// logout. That window is accepted behavior.
func Decide(path string, policy Policy, state session.State) Decision {
	switch {
	case policy.RequiresAuth || policy.RequiresAdmin:
		if !state.Authenticated {
			// Preserve the intended destination for the post-login redirect
			return Decision{RedirectTo: LoginPath + "?redirect=" + url.QueryEscape(path)}
		}
		if policy.RequiresAdmin && !state.IsAdmin() {
			return Decision{RedirectTo: HomePath}
		}
		return Decision{Allow: true}
	case policy.Guest:
		if state.Authenticated {
			return Decision{RedirectTo: HomePath}
		}
		return Decision{Allow: true}
	default:
		return Decision{Allow: true}
	}
}
