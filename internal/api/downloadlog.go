package api

import (
	"context"
	"errors"
	"net/http"
	"time"
)

// DownloadLog records one export download.
type DownloadLog struct {
	ID           string    `json:"_id,omitempty"`
	UserID       string    `json:"userId,omitempty"`
	User         *LogUser  `json:"user,omitempty"`
	StartDate    string    `json:"startDate"`
	EndDate      string    `json:"endDate"`
	DownloadedAt time.Time `json:"downloadedAt"`
}

// LogUser is the populated user of a download log.
type LogUser struct {
	Username string `json:"username"`
}

// Username returns the downloading user's name, or "" when not populated.
func (l DownloadLog) Username() string {
	if l.User == nil {
		return ""
	}
	return l.User.Username
}

func (c *Client) AddDownloadLog(ctx context.Context, l DownloadLog) error {
	return c.do(ctx, http.MethodPost, "/downloadLog", nil, l, nil)
}

func (c *Client) ListDownloadLogs(ctx context.Context) ([]DownloadLog, error) {
	var out []DownloadLog
	err := c.do(ctx, http.MethodGet, "/downloadLog", nil, nil, &out)
	return out, err
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
