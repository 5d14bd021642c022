// Package api implements the client for the events REST service. It is the
// data layer the controller talks to; the server owns all storage and the
// action history.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const basePath = "/api/v1"

// Client wraps the HTTP calls to the events service. Failures are returned
// as single wrapped errors with no status-code-specific handling; the
// caller logs them and tells the user the attempted action failed. There
// are no timeouts or retries anywhere in this layer.
type Client struct {
	base string
	http *http.Client
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{},
	}
}

// ListEvents fetches all events matching the given status filter
// (StatusAll returns everything).
func (c *Client) ListEvents(ctx context.Context, status string) ([]Event, error) {
	events := []Event{}

	path := "/events?status=" + url.QueryEscape(status)
	if err := c.do(ctx, http.MethodGet, path, nil, &events); err != nil {
		return nil, err
	}

	return events, nil
}

// GetEvent fetches a single event by id.
func (c *Client) GetEvent(ctx context.Context, id int64) (*Event, error) {
	var event Event

	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/events/%d", id), nil, &event); err != nil {
		return nil, err
	}

	return &event, nil
}

// ListActions fetches the complete/reopen history for an event, newest
// first as the server orders it.
func (c *Client) ListActions(ctx context.Context, id int64) ([]Action, error) {
	actions := []Action{}

	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/events/%d/actions", id), nil, &actions); err != nil {
		return nil, err
	}

	return actions, nil
}

// CreateEvent creates a new event and returns it as the server stored it.
func (c *Client) CreateEvent(ctx context.Context, input EventInput) (*Event, error) {
	var event Event

	if err := c.do(ctx, http.MethodPost, "/events", input, &event); err != nil {
		return nil, err
	}

	return &event, nil
}

// UpdateEvent updates an existing event and returns the stored result.
func (c *Client) UpdateEvent(ctx context.Context, id int64, input EventInput) (*Event, error) {
	var event Event

	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/events/%d", id), input, &event); err != nil {
		return nil, err
	}

	return &event, nil
}

// CompleteEvent marks an active event completed. The comment lands in the
// action history ("make-up" completions of overdue events pass one).
func (c *Client) CompleteEvent(ctx context.Context, id int64, comment string) (*Event, error) {
	var event Event

	body := map[string]string{"comment": comment}
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/events/%d/complete", id), body, &event); err != nil {
		return nil, err
	}

	return &event, nil
}

// ReopenEvent moves a completed event back to active.
func (c *Client) ReopenEvent(ctx context.Context, id int64) (*Event, error) {
	var event Event

	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/events/%d/reopen", id), struct{}{}, &event); err != nil {
		return nil, err
	}

	return &event, nil
}

// DeleteEvent deletes an event. Any 2xx response counts as success and the
// body is ignored.
func (c *Client) DeleteEvent(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/events/%d", id), nil, nil)
}

// GetLine fetches the filler line shown when an empty calendar day is
// selected. Purely cosmetic.
func (c *Client) GetLine(ctx context.Context) (string, error) {
	var line struct {
		Text string `json:"text"`
	}

	if err := c.do(ctx, http.MethodGet, "/getLine", nil, &line); err != nil {
		return "", err
	}

	return line.Text, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader *bytes.Reader

	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("error encoding %s %s body: %w", method, path, err)
		}

		reader = bytes.NewReader(encoded)
	}

	endpoint := c.base + basePath + path

	var req *http.Request

	var err error

	if reader != nil {
		req, err = http.NewRequestWithContext(ctx, method, endpoint, reader)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, endpoint, nil)
	}

	if err != nil {
		return fmt.Errorf("error building %s %s request: %w", method, path, err)
	}

	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("error calling %s %s: %w", method, path, err)
	}

	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("%s %s returned status %d", method, path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("error decoding %s %s response: %w", method, path, err)
	}

	return nil
}
