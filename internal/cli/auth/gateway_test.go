package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

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

// mockServer serves POST /token and GET /api/users/me the way the platform
// does. profileStatus lets tests break the profile fetch independently.
func mockServer(t *testing.T, profileStatus int) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if err := r.ParseForm(); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if r.PostFormValue("username") != "alice" || r.PostFormValue("password") != "pw" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"detail": "Incorrect username or password"})
			return
		}
		json.NewEncoder(w).Encode(map[string]string{
			"access_token": "tok-1",
			"token_type":   "bearer",
		})
	})
	mux.HandleFunc("/api/users/me", func(w http.ResponseWriter, r *http.Request) {
		if profileStatus != http.StatusOK {
			w.WriteHeader(profileStatus)
			return
		}
		if r.Header.Get("Authorization") != "Bearer tok-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(models.UserProfile{
			ID:       1,
			Username: "alice",
			Email:    "alice@example.com",
			IsAdmin:  false,
		})
	})

	return httptest.NewServer(mux)
}

func newTestGateway(serverURL string) (*Gateway, *memStore, *session.Context) {
	store := &memStore{}
	sess := session.NewContext()
	return New(serverURL, store, sess, zerolog.Nop()), store, sess
}

func TestGateway_LoginSuccess(t *testing.T) {
	server := mockServer(t, http.StatusOK)
	defer server.Close()
	gw, store, sess := newTestGateway(server.URL)

	profile, err := gw.Login(context.Background(), "alice", "pw")
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, int64(1), profile.ID)
	assert.Equal(t, "alice", profile.Username)
	assert.False(t, profile.IsAdmin)

	token, _ := store.Token()
	assert.Equal(t, "tok-1", token)

	cached, _ := store.Profile()
	require.NotNil(t, cached)
	assert.Equal(t, "alice", cached.Username)

	state := sess.Current()
	assert.True(t, state.Authenticated)
	require.NotNil(t, state.User)
	assert.Equal(t, "alice", state.User.Username)
	assert.False(t, state.Loading)
}

func TestGateway_LoginRejected(t *testing.T) {
	server := mockServer(t, http.StatusOK)
	defer server.Close()
	gw, store, sess := newTestGateway(server.URL)

	_, err := gw.Login(context.Background(), "alice", "wrong")
	require.Error(t, err)

	var authErr *AuthenticationError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "Incorrect username or password", authErr.Message)

	token, _ := store.Token()
	assert.Empty(t, token, "rejected login must not store a token")

	state := sess.Current()
	assert.False(t, state.Authenticated)
	assert.Equal(t, "Incorrect username or password", state.Err)
}

func TestGateway_LoginRejectedWithoutDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()
	gw, _, _ := newTestGateway(server.URL)

	_, err := gw.Login(context.Background(), "alice", "pw")

	var authErr *AuthenticationError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, defaultLoginMessage, authErr.Message)
}

func TestGateway_LoginResponseWithoutTokenIsRejected(t *testing.T) {
	// A 200 whose body carries no access_token must not produce a
	// half-authenticated session around an empty stored token.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"token_type": "bearer"})
	}))
	defer server.Close()
	gw, store, sess := newTestGateway(server.URL)

	profile, err := gw.Login(context.Background(), "alice", "pw")
	require.Error(t, err)
	assert.Nil(t, profile)

	token, _ := store.Token()
	assert.Empty(t, token)

	state := sess.Current()
	assert.False(t, state.Authenticated)
	assert.False(t, state.Loading)
	assert.Equal(t, defaultLoginMessage, state.Err)
}

func TestGateway_LoginRollsBackOnProfileFailure(t *testing.T) {
	server := mockServer(t, http.StatusInternalServerError)
	defer server.Close()
	gw, store, sess := newTestGateway(server.URL)

	_, err := gw.Login(context.Background(), "alice", "pw")
	require.Error(t, err)

	token, _ := store.Token()
	assert.Empty(t, token, "failed profile fetch must clear the stored token")

	state := sess.Current()
	assert.False(t, state.Authenticated, "login is not durable until the profile is fetched")
	assert.Nil(t, state.User)
}

func TestGateway_LoginNetworkFailureLeavesPriorState(t *testing.T) {
	server := mockServer(t, http.StatusOK)
	server.Close() // unreachable from the start
	gw, store, sess := newTestGateway(server.URL)

	_, err := gw.Login(context.Background(), "alice", "pw")
	require.Error(t, err)

	var authErr *AuthenticationError
	assert.False(t, errors.As(err, &authErr), "a network failure is not an authentication error")

	token, _ := store.Token()
	assert.Empty(t, token)

	state := sess.Current()
	assert.False(t, state.Authenticated)
	assert.Equal(t, unreachableMessage, state.Err, "an unreachable server must not read as bad credentials")
}

func TestGateway_FetchProfileWithoutTokenIsNoop(t *testing.T) {
	server := mockServer(t, http.StatusOK)
	defer server.Close()
	gw, _, sess := newTestGateway(server.URL)

	profile, err := gw.FetchProfile(context.Background())
	require.NoError(t, err)
	assert.Nil(t, profile)
	assert.False(t, sess.Current().Authenticated)
}

func TestGateway_FetchProfileFailureLogsOut(t *testing.T) {
	server := mockServer(t, http.StatusOK)
	defer server.Close()
	gw, store, sess := newTestGateway(server.URL)

	// Simulate a stale credential left over from an earlier session
	store.token = "stale-token"
	sess.Set(session.State{Authenticated: true})

	_, err := gw.FetchProfile(context.Background())
	require.Error(t, err)

	token, _ := store.Token()
	assert.Empty(t, token, "invalid credential must not remain cached")
	assert.False(t, sess.Current().Authenticated)
}

func TestGateway_LogoutIsIdempotent(t *testing.T) {
	server := mockServer(t, http.StatusOK)
	defer server.Close()
	gw, store, sess := newTestGateway(server.URL)

	_, err := gw.Login(context.Background(), "alice", "pw")
	require.NoError(t, err)

	gw.Logout()
	once := sess.Current()
	tokenOnce, _ := store.Token()

	gw.Logout()
	twice := sess.Current()
	tokenTwice, _ := store.Token()

	assert.Equal(t, once, twice)
	assert.Equal(t, tokenOnce, tokenTwice)
	assert.False(t, twice.Authenticated)
	assert.Empty(t, tokenTwice)
}

func TestGateway_IsAdmin(t *testing.T) {
	server := mockServer(t, http.StatusOK)
	defer server.Close()
	gw, _, sess := newTestGateway(server.URL)

	assert.False(t, gw.IsAdmin(), "logged out is never admin")

	sess.Set(session.State{Authenticated: true})
	assert.False(t, gw.IsAdmin(), "no profile yet means not admin")

	sess.Set(session.State{
		Authenticated: true,
		User:          &models.UserProfile{ID: 2, Username: "root", IsAdmin: true},
	})
	assert.True(t, gw.IsAdmin())
}
