package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	anthropicBaseURL   = "https://api.anthropic.com"
	anthropicVersion   = "2023-06-01"
	anthropicMaxTokens = 4096
)

// AnthropicOption configures an AnthropicAgent.
type AnthropicOption func(*AnthropicAgent)

// AnthropicAgent answers prompts through the Anthropic messages
// API.
type AnthropicAgent struct {
	baseURL    string
	model      string
	apiKey     string
	httpClient *http.Client
}

// NewAnthropicAgent creates an agent for the given model using
// the supplied API key.
func NewAnthropicAgent(
	model, apiKey string, opts ...AnthropicOption,
) *AnthropicAgent {
	a := &AnthropicAgent{
		baseURL: anthropicBaseURL,
		model:   model,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// WithAnthropicBaseURL overrides the API base URL.
func WithAnthropicBaseURL(url string) AnthropicOption {
	return func(a *AnthropicAgent) {
		a.baseURL = strings.TrimRight(url, "/")
	}
}

// WithAnthropicHTTPClient replaces the underlying HTTP client.
func WithAnthropicHTTPClient(c *http.Client) AnthropicOption {
	return func(a *AnthropicAgent) { a.httpClient = c }
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// Complete sends a system+user prompt pair and returns the text
// of the first content block.
func (a *AnthropicAgent) Complete(
	ctx context.Context, system, user string,
) (string, error) {
	text, err := a.complete(ctx, system, user)
	if err != nil {
		return "", &InvocationError{
			Provider: ProviderAnthropic,
			Model:    a.model,
			Err:      err,
		}
	}
	return text, nil
}

func (a *AnthropicAgent) complete(
	ctx context.Context, system, user string,
) (string, error) {
	body, err := json.Marshal(anthropicRequest{
		Model:     a.model,
		MaxTokens: anthropicMaxTokens,
		System:    system,
		Messages: []anthropicMessage{
			{Role: "user", Content: user},
		},
	})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost,
		a.baseURL+"/v1/messages",
		bytes.NewReader(body),
	)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", a.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf(
			"API returned HTTP %d: %s",
			resp.StatusCode, strings.TrimSpace(string(data)),
		)
	}

	var parsed anthropicResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}
	if len(parsed.Content) == 0 {
		return "", fmt.Errorf("response has no content blocks")
	}

	return parsed.Content[0].Text, nil
}
