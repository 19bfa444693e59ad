package feedback

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"

	"speech-feedback-service/internal/observability/logging"
	"speech-feedback-service/internal/observability/metrics"
)

// Errors returned by RemoteClient.Fetch.
var (
	ErrNotConfigured     = errors.New("remote feedback endpoint not configured")
	ErrUnexpectedStatus  = errors.New("remote feedback unexpected status")
	ErrMalformedResponse = errors.New("remote feedback malformed response")
	ErrCircuitOpen       = errors.New("remote feedback circuit open")
)

// BreakerConfig controls the circuit breaker in front of the remote endpoint.
type BreakerConfig struct {
	Enabled     bool
	MaxFailures uint32        // consecutive failures before opening
	Cooldown    time.Duration // time spent open before a probe is allowed
}

// RemoteConfig configures the remote feedback client.
type RemoteConfig struct {
	URL     string
	Timeout time.Duration
	Breaker BreakerConfig
}

// DefaultRemoteConfig returns the client defaults; URL must still be set.
func DefaultRemoteConfig() RemoteConfig {
	return RemoteConfig{
		Timeout: 10 * time.Second,
		Breaker: BreakerConfig{
			Enabled:     true,
			MaxFailures: 5,
			Cooldown:    30 * time.Second,
		},
	}
}

// RemoteClient calls the external feedback generator. Each Fetch makes at
// most one HTTP request; there is no retry.
type RemoteClient struct {
	url        string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	logger     zerolog.Logger
}

// NewRemoteClient creates a remote feedback client.
func NewRemoteClient(cfg RemoteConfig) *RemoteClient {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultRemoteConfig().Timeout
	}

	c := &RemoteClient{
		url:        cfg.URL,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logging.WithComponent("remote-feedback"),
	}

	if cfg.Breaker.Enabled {
		maxFailures := cfg.Breaker.MaxFailures
		if maxFailures == 0 {
			maxFailures = DefaultRemoteConfig().Breaker.MaxFailures
		}
		c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "remote-feedback",
			MaxRequests: 1,
			Timeout:     cfg.Breaker.Cooldown,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= maxFailures
			},
			OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
				c.logger.Warn().
					Str("breaker", name).
					Str("from", from.String()).
					Str("to", to.String()).
					Msg("Circuit breaker state changed")
				metrics.DefaultMetrics.SetBreakerState(int(to))
			},
		})
	}

	return c
}

type remoteRequest struct {
	OriginalText string   `json:"originalText"`
	SpokenText   string   `json:"spokenText"`
	Score        int      `json:"score"`
	MissedWords  []string `json:"missedWords"`
	ExtraWords   []string `json:"extraWords"`
}

type remoteResponse struct {
	Feedback *string `json:"feedback"`
}

// Fetch asks the remote generator for feedback and returns its feedback
// field verbatim. The request is detached from ctx cancellation so a caller
// that stops waiting does not abort the call; the client timeout bounds it.
func (c *RemoteClient) Fetch(ctx context.Context, req Request) (string, error) {
	if c.url == "" {
		return "", ErrNotConfigured
	}

	body, err := json.Marshal(remoteRequest{
		OriginalText: req.OriginalText,
		SpokenText:   req.SpokenText,
		Score:        req.Score,
		MissedWords:  nonNil(req.MissedWords),
		ExtraWords:   nonNil(req.ExtraWords),
	})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	ctx = context.WithoutCancel(ctx)
	if c.breaker == nil {
		return c.do(ctx, body)
	}

	out, err := c.breaker.Execute(func() (interface{}, error) {
		return c.do(ctx, body)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return "", fmt.Errorf("%w: %v", ErrCircuitOpen, err)
	}
	if err != nil {
		return "", err
	}
	return out.(string), nil
}

func (c *RemoteClient) do(ctx context.Context, body []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("%w: %d: %s", ErrUnexpectedStatus, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var out remoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if out.Feedback == nil || strings.TrimSpace(*out.Feedback) == "" {
		return "", fmt.Errorf("%w: missing feedback field", ErrMalformedResponse)
	}
	return *out.Feedback, nil
}

// FailureReason classifies a Fetch error into a short label for metrics and events.
func FailureReason(err error) string {
	var netErr net.Error
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotConfigured):
		return "not_configured"
	case errors.Is(err, ErrCircuitOpen):
		return "circuit_open"
	case errors.Is(err, ErrUnexpectedStatus):
		return "status"
	case errors.Is(err, ErrMalformedResponse):
		return "malformed"
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr) && netErr.Timeout():
		return "timeout"
	default:
		return "transport"
	}
}

func nonNil(words []string) []string {
	if words == nil {
		return []string{}
	}
	return words
}
