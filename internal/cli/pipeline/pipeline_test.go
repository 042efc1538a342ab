package pipeline

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modelverse-dev/modelverse/internal/cli/auth"
	"github.com/modelverse-dev/modelverse/internal/cli/nav"
	"github.com/modelverse-dev/modelverse/internal/cli/session"
	"github.com/modelverse-dev/modelverse/internal/models"
)

// memStore is an in-memory credential store for testing
type memStore struct {
	token   string
	profile *models.UserProfile
}

func (m *memStore) Token() (string, error) { return m.token, nil }
func (m *memStore) SetToken(token string) error {
	m.token = token
	return nil
}
func (m *memStore) Profile() (*models.UserProfile, error) { return m.profile, nil }
func (m *memStore) SetProfile(p *models.UserProfile) error {
	m.profile = p
	return nil
}
func (m *memStore) Clear() error {
	m.token = ""
	m.profile = nil
	return nil
}

// countingGateway records logout invocations
type countingGateway struct {
	logouts int
}

func (g *countingGateway) Logout() { g.logouts++ }

// recorded is what the test server saw for the last request
type recorded struct {
	path          string
	authorization string
}

func newRecordingServer(status int) (*httptest.Server, *recorded) {
	rec := &recorded{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.path = r.URL.Path
		rec.authorization = r.Header.Get("Authorization")
		w.WriteHeader(status)
	}))
	return server, rec
}

func doGet(t *testing.T, transport *Transport, serverURL, path string) *http.Response {
	t.Helper()
	client := &http.Client{Transport: transport}
	resp, err := client.Get(serverURL + path)
	require.NoError(t, err)
	resp.Body.Close()
	return resp
}

func TestTransport_AttachesBearerCredential(t *testing.T) {
	server, rec := newRecordingServer(http.StatusOK)
	defer server.Close()

	transport := NewTransport(nil, &memStore{token: "tok-1"}, &countingGateway{}, nil, zerolog.Nop())
	doGet(t, transport, server.URL, "/training/tasks")

	assert.Equal(t, "Bearer tok-1", rec.authorization)
}

func TestTransport_NoCredentialWhenLoggedOut(t *testing.T) {
	server, rec := newRecordingServer(http.StatusOK)
	defer server.Close()

	transport := NewTransport(nil, &memStore{}, &countingGateway{}, nil, zerolog.Nop())
	doGet(t, transport, server.URL, "/training/tasks")

	assert.Empty(t, rec.authorization)
}

func TestTransport_PrefixNormalization(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{"relative path gets prefixed", "/training/tasks", "/api/training/tasks"},
		{"already prefixed path untouched", "/api/users/me", "/api/users/me"},
		{"token endpoint stays unprefixed", "/token", "/token"},
		{"health endpoint stays unprefixed", "/health", "/health"},
		{"register gets prefixed", "/register", "/api/register"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, rec := newRecordingServer(http.StatusOK)
			defer server.Close()

			transport := NewTransport(nil, &memStore{token: "tok-1"}, &countingGateway{}, nil, zerolog.Nop())
			doGet(t, transport, server.URL, tt.path)

			assert.Equal(t, tt.want, rec.path)
		})
	}
}

func TestTransport_AnonymousEndpointsSkipCredential(t *testing.T) {
	for _, path := range []string{"/token", "/health", "/register", "/captcha", "/resources/scan", "/shared", "/shared/3"} {
		t.Run(path, func(t *testing.T) {
			server, rec := newRecordingServer(http.StatusOK)
			defer server.Close()

			transport := NewTransport(nil, &memStore{token: "tok-1"}, &countingGateway{}, nil, zerolog.Nop())
			doGet(t, transport, server.URL, path)

			assert.Empty(t, rec.authorization, "anonymous endpoint must not carry the credential")
		})
	}
}

func TestTransport_DoesNotMutateCallerRequest(t *testing.T) {
	server, _ := newRecordingServer(http.StatusOK)
	defer server.Close()

	transport := NewTransport(nil, &memStore{token: "tok-1"}, &countingGateway{}, nil, zerolog.Nop())

	req, err := http.NewRequest(http.MethodGet, server.URL+"/training/tasks", nil)
	require.NoError(t, err)

	resp, err := transport.RoundTrip(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "/training/tasks", req.URL.Path)
	assert.Empty(t, req.Header.Get("Authorization"))
}

func TestTransport_AuthorizationFailureForcesLogout(t *testing.T) {
	// Full wiring: real gateway, store, session and router. Any 401 must
	// clear the store, reset the session and land the router on /login.
	server, _ := newRecordingServer(http.StatusUnauthorized)
	defer server.Close()

	store := &memStore{token: "tok-1", profile: &models.UserProfile{ID: 1, Username: "alice"}}
	sess := session.NewContext()
	sess.Hydrate(store)
	gateway := auth.New(server.URL, store, sess, zerolog.Nop())
	router := nav.NewRouter(sess, zerolog.Nop())
	router.Navigate("/training")

	transport := NewTransport(nil, store, gateway, router, zerolog.Nop())
	resp := doGet(t, transport, server.URL, "/training/tasks")

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "the response still reaches the caller")
	assert.Empty(t, store.token, "credential store must be cleared")
	assert.False(t, sess.Current().Authenticated)
	assert.Equal(t, nav.LoginPath, router.Location())
}

func TestTransport_LogoutHappensExactlyOncePerFailure(t *testing.T) {
	server, _ := newRecordingServer(http.StatusUnauthorized)
	defer server.Close()

	gateway := &countingGateway{}
	transport := NewTransport(nil, &memStore{token: "tok-1"}, gateway, nil, zerolog.Nop())

	doGet(t, transport, server.URL, "/training/tasks")
	assert.Equal(t, 1, gateway.logouts)
}

func TestTransport_OtherErrorsPassThrough(t *testing.T) {
	server, _ := newRecordingServer(http.StatusForbidden)
	defer server.Close()

	gateway := &countingGateway{}
	transport := NewTransport(nil, &memStore{token: "tok-1"}, gateway, nil, zerolog.Nop())

	resp := doGet(t, transport, server.URL, "/training/tasks")

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Zero(t, gateway.logouts, "only authorization failures end the session")
}
