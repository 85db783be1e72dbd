package demoscans

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/okian/mindscan/internal/domain/types"
)

// maxErrorBody caps how much of an error reply is quoted back.
const maxErrorBody = 256

// Client is a small JSON client for the MindScan API.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a client for baseURL with a per-request timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Get decodes the JSON reply of GET path into out.
func (c *Client) Get(ctx context.Context, path string, out any) (int, error) {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// Post sends body as JSON and decodes the reply into out.
func (c *Client) Post(ctx context.Context, path string, body, out any) (int, error) {
	return c.do(ctx, http.MethodPost, path, body, out)
}

// Put sends body as JSON and decodes the reply into out.
func (c *Client) Put(ctx context.Context, path string, body, out any) (int, error) {
	return c.do(ctx, http.MethodPut, path, body, out)
}

// do returns the status code alongside any error. Non-2xx replies are
// decoded as types.ErrorResponse and reported as ErrUnexpectedStatus.
func (c *Client) do(ctx context.Context, method, path string, body, out any) (int, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		var apiErr types.ErrorResponse
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Code != "" {
			return resp.StatusCode, fmt.Errorf("%w: %s %s: %d %s: %s", ErrUnexpectedStatus, method, path, resp.StatusCode, apiErr.Code, apiErr.Message)
		}
		return resp.StatusCode, fmt.Errorf("%w: %s %s: %d", ErrUnexpectedStatus, method, path, resp.StatusCode)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp.StatusCode, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return resp.StatusCode, nil
}
