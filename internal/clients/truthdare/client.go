// Package truthdare is the HTTP client for the public truth-or-dare
// question API (https://api.truthordarebot.xyz).
package truthdare

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mcoot/truthdare-go/internal/services/question"
)

const (
	// DefaultBaseURL is the public API root
	DefaultBaseURL = "https://api.truthordarebot.xyz/v1"

	// maxResponseBytes caps how much of a response body is read
	maxResponseBytes = 256 * 1024
)

// ErrDisabled is returned by Disabled for every fetch
var ErrDisabled = errors.New("question provider disabled")

// Config holds client settings
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// DefaultConfig returns the public API with a 5 second timeout
func DefaultConfig() Config {
	return Config{
		BaseURL: DefaultBaseURL,
		Timeout: question.DefaultProviderTimeout,
	}
}

// QuestionResponse is the API's question payload
type QuestionResponse struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Type     string `json:"type"`
	Rating   string `json:"rating"`
}

// Client fetches questions over HTTP
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

var _ question.Provider = (*Client)(nil)

// New creates a Client
func New(cfg Config, logger *slog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = question.DefaultProviderTimeout
	}
	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger.With(slog.String("component", "truthdare-client")),
	}
}

// Fetch returns the text of one question of the given kind
func (c *Client) Fetch(ctx context.Context, kind string) (string, error) {
	switch kind {
	case question.KindTruth, question.KindDare, question.KindRandom:
	default:
		return "", fmt.Errorf("unknown question kind %q", kind)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+kind, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed QuestionResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	text := strings.TrimSpace(parsed.Question)
	if text == "" {
		return "", question.ErrEmptyQuestion
	}

	c.logger.DebugContext(ctx, "fetched question",
		slog.String("kind", kind),
		slog.String("question_id", parsed.ID),
	)
	return text, nil
}

// Disabled is a provider that never returns a question, so every draw
// uses the fallback pool
type Disabled struct{}

var _ question.Provider = Disabled{}

func (Disabled) Fetch(ctx context.Context, kind string) (string, error) {
	return "", ErrDisabled
}
