package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// HealthMarker is the text the backend health endpoint answers with.
const HealthMarker = "API is running"

// Credentials are the login form fields.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned by POST /auth/login.
type LoginResponse struct {
	Token          string `json:"token"`
	SessionExpires string `json:"sessionExpires"`
	Username       string `json:"username"`
	IsAdmin        bool   `json:"isAdmin"`
	CanApprove     bool   `json:"canApprove"`
}

// Profile is the logged-in user as returned by GET /auth/profile.
type Profile struct {
	ID         string `json:"_id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	IsAdmin    bool   `json:"isAdmin"`
	CanApprove bool   `json:"canApprove"`
}

// Registration creates a dashboard user.
type Registration struct {
	Username   string `json:"username"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	IsAdmin    bool   `json:"isAdmin"`
	CanApprove bool   `json:"canApprove"`
}

// Login exchanges credentials for a token and session expiry.
func (c *Client) Login(ctx context.Context, creds Credentials) (*LoginResponse, error) {
	var out LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, creds, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout invalidates the current token on the backend.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil, nil)
}

// Profile returns the logged-in user.
func (c *Client) Profile(ctx context.Context) (*Profile, error) {
	var out Profile
	if err := c.do(ctx, http.MethodGet, "/auth/profile", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates a user account.
func (c *Client) Register(ctx context.Context, r Registration) error {
	return c.do(ctx, http.MethodPost, "/auth/register", nil, r, nil)
}

// Health probes healthURL and reports whether the backend answered with
// the running marker.
func (c *Client) Health(ctx context.Context, healthURL string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, healthURL, nil)
	if err != nil {
		return false, fmt.Errorf("creating request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return false, err
	}
	return resp.StatusCode == http.StatusOK && strings.Contains(string(body), HealthMarker), nil
}
