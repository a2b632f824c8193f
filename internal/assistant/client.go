package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// CannedReply is returned to clients whenever the upstream assistant is
// unreachable or misconfigured.
const CannedReply = "The campus assistant is unavailable right now. Please try again in a bit."

var ErrUnavailable = errors.New("assistant unavailable")

// Client is a thin wrapper over the external text-in/text-out assistant
// service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs a Client. An empty baseURL yields a client that
// always reports ErrUnavailable.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type askRequest struct {
	Prompt  string `json:"prompt"`
	Context string `json:"context,omitempty"`
}

type askResponse struct {
	Reply string `json:"reply"`
}

// Ask forwards a prompt and optional context, returning the assistant's
// free-text reply.
func (c *Client) Ask(ctx context.Context, prompt, promptContext string) (string, error) {
	if c.baseURL == "" {
		return "", ErrUnavailable
	}

	body, err := json.Marshal(askRequest{Prompt: prompt, Context: promptContext})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var decoded askResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return decoded.Reply, nil
}
