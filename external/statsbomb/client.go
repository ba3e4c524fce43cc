package statsbomb

import (
	"context"
	"fmt"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/fasthttp"

	"github.com/pitchsight/pitchsight/internal/domain/artifact"
	"github.com/pitchsight/pitchsight/internal/domain/event"
	"github.com/pitchsight/pitchsight/internal/platform/logging"
	"github.com/pitchsight/pitchsight/internal/platform/resilience"
	"github.com/pitchsight/pitchsight/internal/usecase"
)

const (
	defaultBaseURL     = "https://raw.githubusercontent.com/statsbomb/open-data/master/data"
	defaultTimeout     = 20 * time.Second
	maxResponseBytes   = 32 << 20
	abbreviateBodySize = 256
)

var errStatsBombTransient = crerr.New("statsbomb transient failure")

type ClientConfig struct {
	HTTPClient     *fasthttp.Client
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client reads the StatsBomb open-data feeds. The event payloads are large
// static JSON files served off a CDN, so the client is a plain GET path
// with retries for transient failures, a circuit breaker and single-flight
// deduplication of concurrent fetches for the same match.
type Client struct {
	httpClient     *fasthttp.Client
	baseURL        string
	timeout        time.Duration
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &fasthttp.Client{
			MaxResponseBodySize: maxResponseBytes,
		}
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		timeout:        timeout,
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// MatchEvents fetches one match's raw event feed and flattens it into
// domain events, preserving the feed's chronological order.
func (c *Client) MatchEvents(ctx context.Context, matchID int64) ([]event.Event, error) {
	if matchID <= 0 {
		return nil, fmt.Errorf("match id must be greater than zero")
	}

	var rows []rawEvent
	if err := c.doJSON(ctx, fmt.Sprintf("/events/%d.json", matchID), &rows); err != nil {
		return nil, fmt.Errorf("fetch events match_id=%d: %w", matchID, err)
	}

	events := make([]event.Event, 0, len(rows))
	for i, row := range rows {
		mapped, err := flattenEvent(row)
		if err != nil {
			return nil, fmt.Errorf("flatten event %d of match %d: %w", i, matchID, err)
		}
		events = append(events, mapped)
	}
	return events, nil
}

// CompetitionMatches fetches a season's match list for the worklist.
func (c *Client) CompetitionMatches(ctx context.Context, competitionID, seasonID int64) ([]artifact.Match, error) {
	if competitionID <= 0 || seasonID <= 0 {
		return nil, fmt.Errorf("competition id and season id must be greater than zero")
	}

	var rows []rawMatch
	if err := c.doJSON(ctx, fmt.Sprintf("/matches/%d/%d.json", competitionID, seasonID), &rows); err != nil {
		return nil, fmt.Errorf("fetch matches competition_id=%d season_id=%d: %w", competitionID, seasonID, err)
	}

	matches := make([]artifact.Match, 0, len(rows))
	for _, row := range rows {
		matches = append(matches, row.toDomain(competitionID, seasonID))
	}
	return matches, nil
}

func (c *Client) doJSON(ctx context.Context, path string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "statsbomb circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: event data provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	fullURL := c.baseURL + path
	out, err, _ := c.flight.Do(path, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && crerr.Is(reqErr, errStatsBombTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode provider payload: %w", err)
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		raw, err := c.fetchOnce(fullURL)
		if err == nil {
			return raw, nil
		}
		lastErr = err
		if !crerr.Is(err, errStatsBombTransient) {
			return nil, err
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	c.logger.WarnContext(ctx, "statsbomb request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func (c *Client) fetchOnce(fullURL string) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(fullURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set(fasthttp.HeaderAccept, "application/json")

	if err := c.httpClient.DoTimeout(req, resp, c.timeout); err != nil {
		return nil, fmt.Errorf("%w: send request: %v", errStatsBombTransient, err)
	}

	status := resp.StatusCode()
	body := resp.Body()
	if status >= 200 && status < 300 {
		raw := make([]byte, len(body))
		copy(raw, body)
		return raw, nil
	}
	if isRetryableStatus(status) {
		return nil, fmt.Errorf("%w: provider status=%d body=%s", errStatsBombTransient, status, abbreviateBody(body))
	}
	return nil, fmt.Errorf("provider status=%d body=%s", status, abbreviateBody(body))
}

func isRetryableStatus(status int) bool {
	return status == fasthttp.StatusTooManyRequests || status >= 500
}

func abbreviateBody(raw []byte) string {
	body := strings.TrimSpace(string(raw))
	if len(body) > abbreviateBodySize {
		return body[:abbreviateBodySize] + "..."
	}
	return body
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
