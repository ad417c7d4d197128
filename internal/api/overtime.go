package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/xolan/otdash/internal/overtime"
)

// AuditAction is the kind of change recorded in an overtime audit log.
type AuditAction string

const (
	AuditCreate  AuditAction = "CREATE"
	AuditUpdate  AuditAction = "UPDATE"
	AuditDelete  AuditAction = "DELETE"
	AuditApprove AuditAction = "APPROVE"
	AuditReject  AuditAction = "REJECT"
)

// AuditLog is one overtime change as recorded by the backend. Details is
// action dependent and kept raw.
type AuditLog struct {
	ID          string          `json:"_id"`
	Action      AuditAction     `json:"action"`
	PerformedBy string          `json:"performedBy"`
	Details     json.RawMessage `json:"details,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// Decision is the body of approve and reject calls.
type Decision struct {
	ApprovedOT *float64 `json:"approvedot,omitempty"`
	Reason     string   `json:"reason,omitempty"`
}

// performed attaches the acting username to an overtime write.
type performed struct {
	overtime.Entry
	PerformedBy string `json:"performedBy"`
}

type performedDecision struct {
	Decision
	PerformedBy string `json:"performedBy"`
}

type performedOnly struct {
	PerformedBy string `json:"performedBy"`
}

type pendingResponse struct {
	Pending []overtime.Entry `json:"pending"`
}

func overtimePath(id string) string {
	return "/overtime/" + url.PathEscape(id)
}

func (c *Client) ListOvertime(ctx context.Context) ([]overtime.Entry, error) {
	var out []overtime.Entry
	err := c.do(ctx, http.MethodGet, "/overtime", nil, nil, &out)
	return out, err
}

// CreateOvertime posts a new entry on behalf of performedBy.
func (c *Client) CreateOvertime(ctx context.Context, e overtime.Entry, performedBy string) (*overtime.Entry, error) {
	var out overtime.Entry
	if err := c.do(ctx, http.MethodPost, "/overtime", nil, performed{e, performedBy}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateOvertime replaces entry id on behalf of performedBy.
func (c *Client) UpdateOvertime(ctx context.Context, id string, e overtime.Entry, performedBy string) (*overtime.Entry, error) {
	var out overtime.Entry
	if err := c.do(ctx, http.MethodPut, overtimePath(id), nil, performed{e, performedBy}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteOvertime(ctx context.Context, id, performedBy string) error {
	return c.do(ctx, http.MethodDelete, overtimePath(id), nil, performedOnly{performedBy}, nil)
}

func (c *Client) ApproveOvertime(ctx context.Context, id string, d Decision, performedBy string) error {
	return c.do(ctx, http.MethodPut, overtimePath(id)+"/approve", nil, performedDecision{d, performedBy}, nil)
}

func (c *Client) RejectOvertime(ctx context.Context, id string, d Decision, performedBy string) error {
	d.ApprovedOT = nil
	return c.do(ctx, http.MethodPut, overtimePath(id)+"/reject", nil, performedDecision{d, performedBy}, nil)
}

// PendingOvertime returns the entries awaiting approval.
func (c *Client) PendingOvertime(ctx context.Context) ([]overtime.Entry, error) {
	var out pendingResponse
	if err := c.do(ctx, http.MethodGet, "/overtime/pending", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Pending, nil
}

// ExportOvertime downloads the backend-generated workbook for [start, end].
func (c *Client) ExportOvertime(ctx context.Context, start, end time.Time) ([]byte, error) {
	q := url.Values{}
	q.Set("startDate", start.Format(overtime.DateLayout))
	q.Set("endDate", end.Format(overtime.DateLayout))
	return c.download(ctx, "/overtime/export", q)
}

func (c *Client) OvertimeAuditLogs(ctx context.Context) ([]AuditLog, error) {
	var out []AuditLog
	err := c.do(ctx, http.MethodGet, "/overtime/audit-logs", nil, nil, &out)
	return out, err
}
