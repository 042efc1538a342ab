package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/modelverse-dev/modelverse/internal/cli/credstore"
	"github.com/modelverse-dev/modelverse/internal/cli/session"
	"github.com/modelverse-dev/modelverse/internal/models"
)

// tokenResponse is the body of a successful POST /token
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// errorResponse is the shape of server error payloads
type errorResponse struct {
	Detail string `json:"detail"`
}

// Gateway performs login, logout and profile fetches. It is the only
// component that writes the credential store and the session context.
//
// Gateway requests use a bare HTTP client rather than the request pipeline:
// /token is unprefixed and carries no credential by definition, and a 401
// during a profile fetch must not re-enter the pipeline's forced-logout
// path while the gateway itself is mutating session state.
type Gateway struct {
	baseURL    string
	httpClient *http.Client
	store      credstore.Store
	session    *session.Context
	log        zerolog.Logger
}

// New creates a gateway talking to the server at baseURL.
func New(baseURL string, store credstore.Store, sess *session.Context, log zerolog.Logger) *Gateway {
	return &Gateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		store:   store,
		session: sess,
		log:     log,
	}
}

// SetHTTPClient sets a custom HTTP client
func (g *Gateway) SetHTTPClient(httpClient *http.Client) {
	g.httpClient = httpClient
}

// Login submits the credentials form-encoded to the unprefixed /token
// endpoint, stores the returned bearer token and then fetches the profile.
// Login is durable only once the profile fetch succeeds; a failed fetch
// rolls the session back to logged-out. A rejected login leaves any prior
// session untouched and returns an AuthenticationError whose message comes
// from the server's error payload.
func (g *Gateway) Login(ctx context.Context, username, password string) (*models.UserProfile, error) {
	prior := g.session.Current()
	g.session.Set(session.State{Authenticated: prior.Authenticated, User: prior.User, Loading: true})

	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		g.baseURL+"/token", strings.NewReader(form.Encode()))
	if err != nil {
		g.session.Set(prior)
		return nil, fmt.Errorf("failed to create login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		g.session.Set(session.State{Authenticated: prior.Authenticated, User: prior.User, Err: unreachableMessage})
		return nil, fmt.Errorf("failed to send login request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		message := extractDetail(resp.Body)
		g.log.Debug().Int("status", resp.StatusCode).Msg("Login rejected")
		g.session.Set(session.State{Authenticated: prior.Authenticated, User: prior.User, Err: message})
		return nil, &AuthenticationError{Message: message}
	}

	var token tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		g.session.Set(session.State{Authenticated: prior.Authenticated, User: prior.User, Err: defaultLoginMessage})
		return nil, fmt.Errorf("failed to decode login response: %w", err)
	}
	if token.AccessToken == "" {
		// A 200 without a token is a malformed response. Storing "" would
		// leave the session authenticated with nothing in the store.
		g.session.Set(session.State{Authenticated: prior.Authenticated, User: prior.User, Err: defaultLoginMessage})
		return nil, fmt.Errorf("login response carried no access token")
	}

	if err := g.store.SetToken(token.AccessToken); err != nil {
		g.session.Set(prior)
		return nil, err
	}
	g.session.Set(session.State{Authenticated: true, Loading: true})

	// Login is not durable until the profile lands; FetchProfile logs the
	// session back out on failure.
	profile, err := g.FetchProfile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile after login: %w", err)
	}
	return profile, nil
}

// FetchProfile refreshes the cached user profile. Without a stored token it
// is a no-op. Any failure logs the session out: an invalid credential must
// not remain cached as authenticated.
func (g *Gateway) FetchProfile(ctx context.Context) (*models.UserProfile, error) {
	token, err := g.store.Token()
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/api/users/me", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		g.Logout()
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		g.log.Debug().Int("status", resp.StatusCode).Msg("Profile fetch rejected, logging out")
		g.Logout()
		return nil, fmt.Errorf("failed to fetch profile (status %d): %s", resp.StatusCode, string(body))
	}

	var profile models.UserProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		g.Logout()
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}

	if err := g.store.SetProfile(&profile); err != nil {
		g.log.Warn().Err(err).Msg("Failed to cache user profile")
	}
	g.session.Set(session.State{Authenticated: true, User: &profile})

	return &profile, nil
}

// Logout clears the credential store and resets the session. Idempotent,
// never fails.
func (g *Gateway) Logout() {
	if err := g.store.Clear(); err != nil {
		g.log.Warn().Err(err).Msg("Failed to clear credential store")
	}
	g.session.Set(session.State{})
}

// IsAdmin reports whether the cached profile carries the admin flag. False
// when not authenticated or before the profile has been fetched.
func (g *Gateway) IsAdmin() bool {
	return g.session.Current().IsAdmin()
}

// extractDetail pulls the human-readable message out of a server error
// payload, falling back to a generic one.
func extractDetail(body io.Reader) string {
	var payload errorResponse
	if err := json.NewDecoder(body).Decode(&payload); err != nil || payload.Detail == "" {
		return defaultLoginMessage
	}
	return payload.Detail
}
