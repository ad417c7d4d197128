package service

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/xolan/otdash/internal/api"
	"github.com/xolan/otdash/internal/session"
)

// NotificationService polls the pending-approval feed for approvers
type NotificationService struct {
	client   *api.Client
	interval time.Duration
	logger   *slog.Logger

	mu        sync.Mutex
	lastKey   string
	seen      bool
	lastCount int
}

// NewNotificationService creates a new NotificationService polling every
// interval (the session poll default when not positive).
func NewNotificationService(client *api.Client, interval time.Duration, logger *slog.Logger) *NotificationService {
	if interval <= 0 {
		interval = session.DefaultPollInterval
	}
	return &NotificationService{client: client, interval: interval, logger: logger}
}

// Enabled reports whether profile should receive pending notifications.
func (s *NotificationService) Enabled(profile *api.Profile) bool {
	return profile != nil && profile.CanApprove
}

// Check fetches the pending feed. changed is false when the set of pending
// ids is the same as at the previous change.
func (s *NotificationService) Check(ctx context.Context) (n Notification, changed bool, err error) {
	pending, err := s.client.PendingOvertime(ctx)
	if err != nil {
		return Notification{}, false, err
	}

	ids := make([]string, 0, len(pending))
	for _, e := range pending {
		ids = append(ids, e.ID)
	}
	sort.Strings(ids)
	key := strings.Join(ids, ",")

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seen && key == s.lastKey {
		return Notification{Pending: pending}, false, nil
	}
	n = Notification{Pending: pending, New: len(pending) > s.lastCount}
	s.seen = true
	s.lastKey = key
	s.lastCount = len(pending)
	return n, true, nil
}

// Watch checks immediately and then every interval until ctx is done,
// calling fn on each change. Failed polls are logged and skipped.
func (s *NotificationService) Watch(ctx context.Context, fn func(Notification)) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		n, changed, err := s.Check(ctx)
		switch {
		case err != nil:
			if ctx.Err() != nil {
				return
			}
			s.logger.Warn("pending overtime poll failed", "error", err)
		case changed:
			fn(n)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
