package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"mini-time-tracker/internal/domain"
	"mini-time-tracker/internal/ports"
)

// Client implements ports.EntriesAPI against the tracker HTTP API.
type Client struct {
	baseURL string
	http    *http.Client
	log     *slog.Logger
}

// APIError is a non-2xx response. Message is the server's explanation, or a
// generic fallback when the body carried none.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string { return e.Message }

func NewClient(baseURL string, log *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = "http://localhost:4000"
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: log,
	}
}

// ListEntries fetches every entry in server order.
// GET /api/entries
func (c *Client) ListEntries(ctx context.Context) ([]domain.TimeEntry, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/entries", nil)
	if err != nil {
		return nil, err
	}
	var out []domain.TimeEntry
	if err := c.do(req, http.StatusOK, "Failed to load entries", &out); err != nil {
		return nil, err
	}
	c.log.Debug("entries loaded", slog.Int("count", len(out)))
	return out, nil
}

// CreateEntry submits e and returns the stored entry.
// POST /api/entries
func (c *Client) CreateEntry(ctx context.Context, e domain.NewEntry) (domain.TimeEntry, error) {
	body, err := json.Marshal(e)
	if err != nil {
		return domain.TimeEntry{}, err
	}
	req, err := c.newRequest(ctx, http.MethodPost, "/api/entries", bytes.NewReader(body))
	if err != nil {
		return domain.TimeEntry{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	var out domain.TimeEntry
	if err := c.do(req, http.StatusCreated, "Failed to create entry", &out); err != nil {
		return domain.TimeEntry{}, err
	}
	c.log.Debug("entry created", slog.Int64("id", out.ID))
	return out, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, err
	}
	u.Path = strings.TrimRight(u.Path, "/") + path
	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func (c *Client) do(req *http.Request, want int, fallback string, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", fallback, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		var msg struct {
			Message string `json:"message"`
		}
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: fallback}
		if json.Unmarshal(body, &msg) == nil && msg.Message != "" {
			apiErr.Message = msg.Message
		}
		return apiErr
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decoding response: %w", fallback, err)
	}
	return nil
}

// IsRejection reports whether err is a 4xx answer from the server, i.e. the
// input needs changing rather than the request retrying.
func IsRejection(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode >= 400 && apiErr.StatusCode < 500
}

var _ ports.EntriesAPI = (*Client)(nil)
