package pipeline

import (
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/modelverse-dev/modelverse/internal/cli/credstore"
)

const apiPrefix = "/api"

// unprefixedPaths live outside the API namespace by server convention;
// token issuance notably does.
var unprefixedPaths = map[string]bool{
	"/token":  true,
	"/health": true,
}

// anonymousPaths never carry a credential, keyed by their final (prefixed)
// form.
var anonymousPaths = map[string]bool{
	"/token":              true,
	"/health":             true,
	"/api/captcha":        true,
	"/api/register":       true,
	"/api/resources/scan": true,
	"/api/shared":         true,
}

// Gateway is the slice of the authentication gateway the pipeline needs.
// The dependency is strictly one-way, pipeline to gateway.
type Gateway interface {
	Logout()
}

// Navigator lands the client on the login view after a forced logout. The
// implementation is responsible for not re-redirecting when already there.
type Navigator interface {
	ForceLogin()
}

// Transport intercepts every outbound API call to attach the stored bearer
// credential and normalize the path prefix, and every response to end the
// session on an authorization failure. Application code behind it never
// sees a 401 without the logout side effect having already happened.
type Transport struct {
	base    http.RoundTripper
	store   credstore.Store
	gateway Gateway
	router  Navigator
	log     zerolog.Logger
}

// NewTransport wires the pipeline in front of base (http.DefaultTransport
// when nil).
func NewTransport(base http.RoundTripper, store credstore.Store, gateway Gateway, router Navigator, log zerolog.Logger) *Transport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &Transport{
		base:    base,
		store:   store,
		gateway: gateway,
		router:  router,
		log:     log,
	}
}

// NewHTTPClient returns the shared HTTP client for API calls. The generous
// timeout accommodates resource-download endpoints that respond slowly.
func NewHTTPClient(transport *Transport) *http.Client {
	return &http.Client{
		Timeout:   60 * time.Second,
		Transport: transport,
	}
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTrippers must not mutate the caller's request
	out := req.Clone(req.Context())

	path := out.URL.Path
	if path != apiPrefix && !strings.HasPrefix(path, apiPrefix+"/") && !unprefixedPaths[path] {
		out.URL.Path = apiPrefix + path
	}

	if !anonymous(out.URL.Path) {
		// The store is read here, immediately before the call leaves the
		// pipeline, never cached across an earlier suspension point.
		token, err := t.store.Token()
		if err != nil {
			t.log.Warn().Err(err).Msg("Failed to read credential store")
		} else if token != "" {
			out.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := t.base.RoundTrip(out)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		// The session ends before the caller sees the response, whichever
		// endpoint produced the failure.
		t.log.Debug().Str("path", out.URL.Path).Msg("Authorization failure, forcing logout")
		t.gateway.Logout()
		if t.router != nil {
			t.router.ForceLogin()
		}
	}

	return resp, nil
}

// anonymous reports whether the (normalized) path is exempt from credential
// attachment. Individual shared chats are public like the listing.
func anonymous(path string) bool {
	if anonymousPaths[path] {
		return true
	}
	return strings.HasPrefix(path, "/api/shared/")
}
