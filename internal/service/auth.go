package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/xolan/otdash/internal/api"
	"github.com/xolan/otdash/internal/session"
)

// logoutTimeout bounds the best-effort backend logout.
const logoutTimeout = 5 * time.Second

// AuthService logs users in and out and owns the session keys of the store.
type AuthService struct {
	client  *api.Client
	store   session.Store
	manager *session.Manager
	logger  *slog.Logger
}

// NewAuthService creates a new AuthService. Writes go through store, which
// should be the Observed store the session manager listens to.
func NewAuthService(client *api.Client, store session.Store, logger *slog.Logger) *AuthService {
	return &AuthService{client: client, store: store, logger: logger}
}

// Login exchanges credentials for a session and persists it. The expiry is
// written before the token so observers never see a token without its
// expiry.
func (s *AuthService) Login(ctx context.Context, username, password string) (*api.LoginResponse, error) {
	resp, err := s.client.Login(ctx, api.Credentials{Username: username, Password: password})
	if err != nil {
		return nil, err
	}

	expires := resp.SessionExpires
	if expires == "" {
		exp, err := session.TokenExpiry(resp.Token)
		if err != nil {
			return nil, ErrNoSessionExpiry
		}
		expires = exp.UTC().Format(time.RFC3339)
	}
	if _, err := session.ParseExpiry(expires); err != nil {
		return nil, ErrNoSessionExpiry
	}

	name := resp.Username
	if name == "" {
		name = username
	}

	if err := s.store.Set(session.KeySessionExpires, expires); err != nil {
		return nil, err
	}
	if err := s.store.Set(session.KeyToken, resp.Token); err != nil {
		return nil, err
	}
	if err := s.store.Set(session.KeyUsername, name); err != nil {
		return nil, err
	}

	s.logger.Info("logged in", "username", name, "expires", expires)
	return resp, nil
}

// Logout is the user-initiated logout: timers are cancelled, the backend is
// told on a best-effort basis and the local session is cleared.
func (s *AuthService) Logout(ctx context.Context) error {
	if s.manager != nil {
		s.manager.Cancel()
	}
	if s.LoggedIn() {
		if err := s.client.Logout(ctx); err != nil {
			s.logger.Warn("backend logout failed", "error", err)
		}
	}
	if err := s.store.Clear(); err != nil {
		return err
	}
	s.logger.Info("logged out")
	return nil
}

// ForcedLogout is the session manager's logout hook.
func (s *AuthService) ForcedLogout(reason string) {
	ctx, cancel := context.WithTimeout(context.Background(), logoutTimeout)
	defer cancel()

	if s.LoggedIn() {
		if err := s.client.Logout(ctx); err != nil {
			s.logger.Warn("backend logout failed", "error", err)
		}
	}
	if err := s.store.Clear(); err != nil {
		s.logger.Error("clearing session failed", "error", err)
	}
	s.logger.Info("session ended", "reason", reason)
}

// Profile returns the logged-in user.
func (s *AuthService) Profile(ctx context.Context) (*api.Profile, error) {
	if !s.LoggedIn() {
		return nil, ErrNotLoggedIn
	}
	return s.client.Profile(ctx)
}

// Boot validates a stored session against the backend. When the profile
// cannot be fetched the token and expiry are removed.
func (s *AuthService) Boot(ctx context.Context) (*api.Profile, error) {
	if !s.LoggedIn() {
		return nil, ErrNotLoggedIn
	}
	profile, err := s.client.Profile(ctx)
	if err != nil {
		s.logger.Warn("stored session rejected", "error", err)
		if rmErr := s.store.Remove(session.KeyToken); rmErr != nil {
			return nil, rmErr
		}
		if rmErr := s.store.Remove(session.KeySessionExpires); rmErr != nil {
			return nil, rmErr
		}
		return nil, err
	}
	return profile, nil
}

// Register creates a dashboard user.
func (s *AuthService) Register(ctx context.Context, r api.Registration) error {
	var missing []string
	if r.Username == "" {
		missing = append(missing, "username")
	}
	if r.Email == "" {
		missing = append(missing, "email")
	}
	if r.Password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return &MissingFieldsError{Fields: missing}
	}
	return s.client.Register(ctx, r)
}

// LoggedIn reports whether a token is stored.
func (s *AuthService) LoggedIn() bool {
	token, err := s.store.Get(session.KeyToken)
	return err == nil && token != ""
}

// Username returns the stored username, falling back to the token's
// username claim.
func (s *AuthService) Username() string {
	if name, err := s.store.Get(session.KeyUsername); err == nil && name != "" {
		return name
	}
	token, err := s.store.Get(session.KeyToken)
	if err != nil || token == "" {
		return ""
	}
	claims, err := session.ParseToken(token)
	if err != nil {
		return ""
	}
	return claims.Username
}

// Expiry returns the stored session expiry, zero when none or unreadable.
func (s *AuthService) Expiry() time.Time {
	value, err := session.ExpiryValue(s.store)
	if err != nil || value == "" {
		return time.Time{}
	}
	t, err := session.ParseExpiry(value)
	if err != nil {
		return time.Time{}
	}
	return t
}

// requireUser returns the acting username for audited writes.
func (s *AuthService) requireUser() (string, error) {
	name := s.Username()
	if name == "" {
		return "", ErrNotLoggedIn
	}
	return name, nil
}

// IsUnauthorized reports whether err means the session is no longer valid.
func IsUnauthorized(err error) bool {
	return errors.Is(err, api.ErrUnauthorized) || errors.Is(err, ErrNotLoggedIn)
}
