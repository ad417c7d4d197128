package api

import (
	"context"
	"net/http"
	"net/url"
)

// TripleOTDate is a public holiday on which every OT minute is triple.
type TripleOTDate struct {
	ID          string `json:"_id,omitempty"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

func (c *Client) ListTripleOT(ctx context.Context) ([]TripleOTDate, error) {
	var out []TripleOTDate
	err := c.do(ctx, http.MethodGet, "/tripleot", nil, nil, &out)
	return out, err
}

func (c *Client) CreateTripleOT(ctx context.Context, d TripleOTDate) (*TripleOTDate, error) {
	var out TripleOTDate
	if err := c.do(ctx, http.MethodPost, "/tripleot", nil, d, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateTripleOT(ctx context.Context, id string, d TripleOTDate) (*TripleOTDate, error) {
	var out TripleOTDate
	if err := c.do(ctx, http.MethodPut, "/tripleot/"+url.PathEscape(id), nil, d, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteTripleOT(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/tripleot/"+url.PathEscape(id), nil, nil, nil)
}
