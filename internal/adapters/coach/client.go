// Package coach talks to the external wellness-coach chat endpoint and keeps
// the conversation for one device.
package coach

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/okian/mindscan/internal/domain/model"
)

// DefaultTimeout bounds one coaching call.
const DefaultTimeout = 15 * time.Second

// maxErrorBody caps how much of an error body is kept for logging.
const maxErrorBody = 512

// Roles used in the chat history.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of the conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request is the body posted to the coaching endpoint.
type Request struct {
	Question    string              `json:"question"`
	ChatHistory []Message           `json:"chatHistory"`
	LatestScan  *model.HistoryEntry `json:"latestScan"`
	Profile     *model.Profile      `json:"profile"`
}

// Response is the endpoint's reply.
type Response struct {
	Answer string `json:"answer"`
}

// Client asks the coaching endpoint a question.
type Client interface {
	Ask(ctx context.Context, req Request) (Response, error)
}

// HTTPClient posts JSON to a fixed URL.
type HTTPClient struct {
	url    string
	client *http.Client
}

// NewHTTPClient builds a client for url. A non-positive timeout uses
// DefaultTimeout.
func NewHTTPClient(url string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPClient{
		url:    strings.TrimSpace(url),
		client: &http.Client{Timeout: timeout},
	}
}

// Ask posts req and decodes {"answer": "..."}. Non-2xx statuses and
// undecodable bodies are errors; an empty answer is not.
func (c *HTTPClient) Ask(ctx context.Context, req Request) (Response, error) {
	if c.url == "" {
		return Response{}, ErrNotConfigured
	}
	if req.ChatHistory == nil {
		req.ChatHistory = []Message{}
	}
	body, err := json.Marshal(req)
	if err != nil {
		return Response{}, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return Response{}, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return Response{}, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if len(respBody) > maxErrorBody {
			respBody = respBody[:maxErrorBody]
		}
		return Response{}, fmt.Errorf("%w: status=%d body=%q", ErrStatus, resp.StatusCode, respBody)
	}

	var out Response
	if err := json.Unmarshal(respBody, &out); err != nil {
		return Response{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return out, nil
}
