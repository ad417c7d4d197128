package api

import (
	"context"
	"net/http"
	"net/url"
)

// OTSettings are the shift tables stored on the backend.
type OTSettings struct {
	WeekdayOTStart     map[string]float64 `json:"weekdayOTStart"`
	SaturdayShiftHours map[string]float64 `json:"saturdayShiftHours"`
}

// Reason is a selectable overtime reason.
type Reason struct {
	ID     string `json:"_id,omitempty"`
	Option string `json:"option"`
}

// OTSettings returns the stored shift tables. A 404 means none are stored
// and yields an empty value.
func (c *Client) OTSettings(ctx context.Context) (*OTSettings, error) {
	var out OTSettings
	err := c.do(ctx, http.MethodGet, "/settings/overtime-configs/all", nil, nil, &out)
	if err != nil {
		if isNotFound(err) {
			return &OTSettings{}, nil
		}
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateOTSettings(ctx context.Context, s OTSettings) error {
	return c.do(ctx, http.MethodPost, "/settings/overtime-configs/create", nil, s, nil)
}

func (c *Client) UpdateOTSettings(ctx context.Context, s OTSettings) error {
	return c.do(ctx, http.MethodPut, "/settings/overtime-configs/update", nil, s, nil)
}

func (c *Client) DeleteOTSettings(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/settings/overtime-configs/delete", nil, nil, nil)
}

func (c *Client) ListReasons(ctx context.Context) ([]Reason, error) {
	var out []Reason
	err := c.do(ctx, http.MethodGet, "/settings/overtime-reasons", nil, nil, &out)
	return out, err
}

func (c *Client) AddReason(ctx context.Context, option string) (*Reason, error) {
	var out Reason
	if err := c.do(ctx, http.MethodPost, "/settings/overtime-reasons", nil, Reason{Option: option}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteReason(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/settings/overtime-reasons/"+url.PathEscape(id), nil, nil, nil)
}
