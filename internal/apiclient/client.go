// Package apiclient is the resilient request layer between the panel and
// the backend. A live call is retried on server-class failures and
// degrades to synthetic fixture data when the backend is unreachable, so
// total outage never reaches the caller as a hard error. Only
// client-class failures (4xx, malformed input) propagate.
package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/kayacantekin/aidpanel/internal/domain"
	"github.com/kayacantekin/aidpanel/internal/fixture"
	"github.com/kayacantekin/aidpanel/internal/observability"
	"github.com/kayacantekin/aidpanel/internal/tokenstore"
	"go.uber.org/zap"
)

const (
	defaultTimeout       = 10 * time.Second
	defaultRetryAttempts = 3
	defaultRetryDelay    = time.Second
)

// Response is the normalized result of a request, whether it came from
// the live backend or from the synthetic provider.
type Response struct {
	StatusCode int
	Body       []byte
	Synthetic  bool
}

func (r *Response) DecodeRecord() (domain.Record, error) {
	var rec domain.Record
	if err := json.Unmarshal(r.Body, &rec); err != nil {
		return nil, fmt.Errorf("failed to decode record: %w", err)
	}
	return rec, nil
}

func (r *Response) DecodeList() ([]domain.Record, error) {
	var records []domain.Record
	if err := json.Unmarshal(r.Body, &records); err != nil {
		return nil, fmt.Errorf("failed to decode record list: %w", err)
	}
	return records, nil
}

// ClientConfig collects the wiring for a Client.
type ClientConfig struct {
	// BaseURL of the live backend; empty means synthetic mode.
	BaseURL string
	// ForceSynthetic routes every call to fixtures even with a BaseURL.
	ForceSynthetic bool
	Timeout        time.Duration
	RetryAttempts  int
	RetryDelay     time.Duration
	Fixtures       *fixture.Provider
	Tokens         tokenstore.Store
	Logger         *zap.Logger
	Metrics        *observability.Metrics
	// HTTPClient overrides the default resty client, used in tests.
	HTTPClient *resty.Client
}

// Client wraps outbound calls with auth-header injection, bounded retry,
// and fixture fallback. The synthetic flag is read once at construction
// and immutable afterwards.
type Client struct {
	http      *resty.Client
	baseURL   string
	synthetic bool
	attempts  int
	delay     time.Duration
	fixtures  *fixture.Provider
	tokens    tokenstore.Store
	logger    *zap.Logger
	metrics   *observability.Metrics
	sleep     func(ctx context.Context, d time.Duration) error
}

func New(cfg ClientConfig) (*Client, error) {
	if cfg.Fixtures == nil {
		return nil, fmt.Errorf("fixture provider is required")
	}
	if cfg.Tokens == nil {
		return nil, fmt.Errorf("token store is required")
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	synthetic := cfg.ForceSynthetic || baseURL == ""
	if !synthetic {
		if _, err := url.ParseRequestURI(baseURL); err != nil {
			return nil, fmt.Errorf("invalid base url: %w", err)
		}
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.RetryAttempts <= 0 {
		cfg.RetryAttempts = defaultRetryAttempts
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = defaultRetryDelay
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = resty.New()
	}
	httpClient.SetTimeout(cfg.Timeout)
	// The retry loop below owns the budget; resty must not add its own.
	httpClient.SetRetryCount(0)

	return &Client{
		http:      httpClient,
		baseURL:   baseURL,
		synthetic: synthetic,
		attempts:  cfg.RetryAttempts,
		delay:     cfg.RetryDelay,
		fixtures:  cfg.Fixtures,
		tokens:    cfg.Tokens,
		logger:    cfg.Logger,
		metrics:   cfg.Metrics,
		sleep:     sleepWithContext,
	}, nil
}

// Synthetic reports whether the client serves every call from fixtures.
func (c *Client) Synthetic() bool { return c.synthetic }

func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Request(ctx, http.MethodGet, path, nil, query)
}

func (c *Client) Post(ctx context.Context, path string, body domain.Record) (*Response, error) {
	return c.Request(ctx, http.MethodPost, path, body, nil)
}

func (c *Client) Put(ctx context.Context, path string, body domain.Record) (*Response, error) {
	return c.Request(ctx, http.MethodPut, path, body, nil)
}

func (c *Client) Patch(ctx context.Context, path string, body domain.Record) (*Response, error) {
	return c.Request(ctx, http.MethodPatch, path, body, nil)
}

func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Request(ctx, http.MethodDelete, path, nil, nil)
}

// Request performs one logical call: auth injection, bounded retry on
// server-class failures, fixture fallback on network failures or an
// exhausted retry budget. Client-class failures propagate; a 401
// additionally clears the stored token.
func (c *Client) Request(ctx context.Context, method, path string, body domain.Record, query url.Values) (*Response, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("%w: request path is required", domain.ErrValidation)
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	if c.synthetic {
		c.metrics.IncAPIRequest(endpointLabel(path), "synthetic")
		return c.fromFixtures(method, path, body, query), nil
	}

	for attempt := 1; ; attempt++ {
		resp, apiErr := c.attempt(ctx, method, path, body, query)
		if apiErr == nil {
			c.metrics.IncAPIRequest(endpointLabel(path), "live")
			return resp, nil
		}

		switch decide(apiErr, attempt, c.attempts) {
		case decideRetry:
			c.metrics.IncAPIRetry(endpointLabel(path))
			c.logger.Warn("backend attempt failed, retrying",
				zap.String("method", method),
				zap.String("path", path),
				zap.Int("attempt", attempt),
				zap.Int("status", apiErr.StatusCode),
			)
			if err := c.sleep(ctx, c.delay); err != nil {
				return nil, apiErr
			}

		case decideFallback:
			c.metrics.IncAPIRequest(endpointLabel(path), "fallback")
			c.metrics.IncAPIFallback(endpointLabel(path), apiErr.Kind.String()+"_error")
			observability.WithContextLogger(c.logger, ctx).Warn("backend unreachable, serving synthetic data",
				zap.String("method", method),
				zap.String("path", path),
				zap.Int("attempts", attempt),
				zap.Error(apiErr),
			)
			return c.fromFixtures(method, path, body, query), nil

		default:
			c.metrics.IncAPIRequest(endpointLabel(path), "client_error")
			if apiErr.StatusCode == http.StatusUnauthorized {
				if err := c.tokens.Clear(); err != nil {
					c.logger.Error("failed to clear token after 401", zap.Error(err))
				} else {
					c.logger.Info("cleared stored token after 401", zap.String("path", path))
				}
			}
			return nil, apiErr
		}
	}
}

// attempt runs exactly one transport call and classifies its outcome.
func (c *Client) attempt(ctx context.Context, method, path string, body domain.Record, query url.Values) (*Response, *APIError) {
	req := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json")

	token, err := c.tokens.Token()
	if err != nil {
		// A broken credential store must not block the call; the
		// backend will answer 401 if auth was actually needed.
		c.logger.Debug("token read failed, sending unauthenticated", zap.Error(err))
	} else if token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}

	if body != nil {
		req.SetBody(body)
	}
	if len(query) > 0 {
		req.SetQueryParamsFromValues(query)
	}

	resp, err := req.Execute(strings.ToUpper(method), c.baseURL+path)
	if err != nil {
		return nil, &APIError{
			Kind:    KindNetwork,
			Message: "request failed",
			Cause:   err,
		}
	}

	statusCode := resp.StatusCode()
	if statusCode >= http.StatusOK && statusCode < http.StatusBadRequest {
		return &Response{StatusCode: statusCode, Body: resp.Body()}, nil
	}

	return nil, &APIError{
		Kind:       classifyStatus(statusCode),
		StatusCode: statusCode,
		Body:       resp.Body(),
		Message:    statusErrorMessage(statusCode, resp.Body()),
	}
}

func (c *Client) fromFixtures(method, path string, body domain.Record, query url.Values) *Response {
	payload := c.fixtures.Payload(method, path, body, query)
	data, err := json.Marshal(payload)
	if err != nil {
		// Fixture payloads are plain maps and slices; this cannot fail
		// for defined resources, but the fail-soft contract holds anyway.
		c.logger.Error("failed to marshal fixture payload", zap.String("path", path), zap.Error(err))
		data = []byte("{}")
	}

	return &Response{StatusCode: http.StatusOK, Body: data, Synthetic: true}
}

type decision int

const (
	decideRetry decision = iota
	decideFallback
	decidePropagate
)

// decide chooses retry vs. fallback vs. propagate for a classified
// failure. Server-class failures consume the retry budget and then fall
// back; network-class failures fall back immediately; everything else
// propagates.
func decide(apiErr *APIError, attempt, budget int) decision {
	switch apiErr.Kind {
	case KindServer:
		if attempt < budget {
			return decideRetry
		}
		return decideFallback
	case KindNetwork:
		return decideFallback
	default:
		return decidePropagate
	}
}

func endpointLabel(path string) string {
	trimmed := strings.Trim(path, "/")
	if i := strings.IndexByte(trimmed, '/'); i >= 0 {
		trimmed = trimmed[:i]
	}
	if trimmed == "" {
		return "unknown"
	}
	return trimmed
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
