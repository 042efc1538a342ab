package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/modelverse-dev/modelverse/internal/models"
)

// Client is the typed HTTP client for the ModelVerse API. Paths are given
// unprefixed; the request pipeline installed in httpClient normalizes the
// /api prefix and attaches the bearer credential, so the bodies here are
// plain request/response plumbing.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new API client. httpClient should carry the request
// pipeline transport.
func New(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// do issues one API call, optionally marshaling body and decoding into out.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("request to %s failed (status %d): %s", path, resp.StatusCode, string(respBody))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// Health checks server status. Anonymous endpoint.
func (c *Client) Health(ctx context.Context) (*models.HealthStatus, error) {
	var status models.HealthStatus
	if err := c.get(ctx, "/health", &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// RegisterRequest is the body of POST /register
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a new account. Anonymous endpoint.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := c.post(ctx, "/register", req, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// CurrentUser fetches the authenticated user's profile
func (c *Client) CurrentUser(ctx context.Context) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := c.get(ctx, "/users/me", &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfileRequest is the body of PUT /users/me/profile
type UpdateProfileRequest struct {
	Email string `json:"email,omitempty"`
}

// UpdateProfile updates the authenticated user's profile
func (c *Client) UpdateProfile(ctx context.Context, req UpdateProfileRequest) error {
	return c.put(ctx, "/users/me/profile", req, nil)
}

// ChangePassword updates the authenticated user's password
func (c *Client) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	body := map[string]string{
		"old_password": oldPassword,
		"new_password": newPassword,
	}
	return c.put(ctx, "/users/me/password", body, nil)
}

// ListUsers returns all users. Admin only; the server enforces it.
func (c *Client) ListUsers(ctx context.Context) ([]models.UserProfile, error) {
	var users []models.UserProfile
	if err := c.get(ctx, "/users", &users); err != nil {
		return nil, err
	}
	return users, nil
}
