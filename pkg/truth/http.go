package truth

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

// EngineOption configures an HTTPEngine via functional options.
type EngineOption func(*HTTPEngine)

// HTTPEngine talks to a Truth Engine service over HTTP. Defaults
// match the engine's standard deployment so callers can use
// NewHTTPEngine(url) with zero options.
type HTTPEngine struct {
	baseURL    string
	expandPath string
	httpClient *http.Client
}

// NewHTTPEngine creates an engine client targeting the given
// base URL. Pass EngineOption values to override defaults.
func NewHTTPEngine(
	baseURL string, opts ...EngineOption,
) *HTTPEngine {
	e := &HTTPEngine{
		baseURL:    strings.TrimRight(baseURL, "/"),
		expandPath: "/api/v1/expand",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// WithExpandPath overrides the default expansion endpoint path.
func WithExpandPath(path string) EngineOption {
	return func(e *HTTPEngine) { e.expandPath = path }
}

// WithTimeout overrides the default HTTP client timeout.
func WithTimeout(d time.Duration) EngineOption {
	return func(e *HTTPEngine) { e.httpClient.Timeout = d }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(c *http.Client) EngineOption {
	return func(e *HTTPEngine) { e.httpClient = c }
}

// Expand posts the rule parameters to the engine and decodes the
// ordered occurrence list from the response.
func (e *HTTPEngine) Expand(
	ctx context.Context, req ExpandRequest,
) ([]Occurrence, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode expand request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(
		ctx, http.MethodPost,
		e.baseURL+e.expandPath,
		bytes.NewReader(body),
	)
	if err != nil {
		return nil, fmt.Errorf("create expand request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := e.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("expand request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read expand response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf(
			"engine returned HTTP %d: %s",
			resp.StatusCode, strings.TrimSpace(string(data)),
		)
	}

	var occurrences []Occurrence
	if err := json.Unmarshal(data, &occurrences); err != nil {
		return nil, fmt.Errorf(
			"parse expand response: %w", err,
		)
	}

	return occurrences, nil
}
