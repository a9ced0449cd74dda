// Package completion wraps a remote chat-completion endpoint behind a
// single-method capability. Every failure mode surfaces as ErrRemoteService
// so callers have exactly one condition to recover from.
package completion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrRemoteService marks any failure of the remote completion service.
var ErrRemoteService = errors.New("remote completion service failed")

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client produces a completion for an ordered list of chat messages.
type Client interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}

type request struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

type response struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type httpClient struct {
	url    string
	apiKey string
	model  string
	client *http.Client
}

// NewHTTPClient returns a Client that speaks the OpenRouter-style chat
// completions wire format. The timeout bounds the whole call.
func NewHTTPClient(url, apiKey, model string, timeout time.Duration) Client {
	return &httpClient{
		url:    url,
		apiKey: apiKey,
		model:  model,
		client: &http.Client{Timeout: timeout},
	}
}

func (c *httpClient) Complete(ctx context.Context, messages []Message) (string, error) {
	body, err := json.Marshal(request{Model: c.model, Messages: messages})
	if err != nil {
		return "", fmt.Errorf("%w: marshal request: %v", ErrRemoteService, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: build request: %v", ErrRemoteService, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRemoteService, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: status %d", ErrRemoteService, resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("%w: read body: %v", ErrRemoteService, err)
	}

	var parsed response
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("%w: decode body: %v", ErrRemoteService, err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("%w: response has no choices", ErrRemoteService)
	}

	return parsed.Choices[0].Message.Content, nil
}
