// Package coinbase implements the authenticated access to the Coinbase Exchange
// REST API.
package coinbase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/etnz/coinfolio"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// Defaults of the exchange client.
const (
	DefaultBaseURL    = "https://api.exchange.coinbase.com"
	DefaultTimeout    = 10 * time.Second
	DefaultRateLimit  = 5 // requests per second
	DefaultMaxRetries = 3
)

// RetryConfig defines the retry of transient failures.
type RetryConfig struct {
	MaxRetries      int           // 0 disables retries
	InitialInterval time.Duration // first wait
	MaxInterval     time.Duration // cap on a single wait
}

// Client is an authenticated exchange client. It implements coinfolio.Fetcher.
type Client struct {
	baseURL   string
	timeout   time.Duration
	rateLimit float64
	retry     RetryConfig
	transport http.RoundTripper
	now       func() time.Time
	log       zerolog.Logger

	http *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL sets the API root, e.g "https://api-public.sandbox.exchange.coinbase.com".
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) { c.baseURL = strings.TrimSuffix(baseURL, "/") }
}

// WithTimeout sets the timeout of a single request attempt.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) { c.timeout = timeout }
}

// WithRateLimit caps the request rate, in requests per second. 0 disables it.
func WithRateLimit(perSecond float64) ClientOption {
	return func(c *Client) { c.rateLimit = perSecond }
}

// WithRetryConfig sets the retry of transient failures.
func WithRetryConfig(config RetryConfig) ClientOption {
	return func(c *Client) { c.retry = config }
}

// WithTransport sets the underlying http transport.
func WithTransport(rt http.RoundTripper) ClientOption {
	return func(c *Client) { c.transport = rt }
}

// WithClock sets the clock used for request timestamps.
func WithClock(now func() time.Time) ClientOption {
	return func(c *Client) { c.now = now }
}

// WithLogger sets the client logger.
func WithLogger(log zerolog.Logger) ClientOption {
	return func(c *Client) { c.log = log }
}

// NewClient creates a client authenticating with credentials.
//
// Malformed credentials are reported here, as a configuration error, before
// any request is sent.
func NewClient(credentials Credentials, opts ...ClientOption) (*Client, error) {
	signer, err := NewSigner(credentials)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:   DefaultBaseURL,
		timeout:   DefaultTimeout,
		rateLimit: DefaultRateLimit,
		retry: RetryConfig{
			MaxRetries:      DefaultMaxRetries,
			InitialInterval: 500 * time.Millisecond,
			MaxInterval:     10 * time.Second,
		},
		now: time.Now,
		log: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With().Str("component", "coinbase").Logger()

	var limiter *rate.Limiter
	if c.rateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(c.rateLimit), 1)
	}
	c.http = newHTTPClient(c.transport, signer, limiter, c.now, c.log)
	return c, nil
}

// Get fetches endpoint (relative to the API root) and decodes the JSON
// response into v. Transient failures are retried with an exponential backoff.
func (c *Client) Get(ctx context.Context, endpoint string, v any) error {
	op := "GET " + endpoint

	var body []byte
	attempt := func() error {
		var err error
		body, err = c.get(ctx, endpoint)
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return backoff.Permanent(ctx.Err())
		}
		if !coinfolio.IsKind(err, coinfolio.KindTransient) {
			return backoff.Permanent(err)
		}
		return err
	}
	notify := func(err error, wait time.Duration) {
		c.log.Warn().Err(err).Dur("retry_in", wait).Msg("transient failure")
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.retry.InitialInterval
	b.MaxInterval = c.retry.MaxInterval
	b.MaxElapsedTime = 0 // bounded by MaxRetries instead
	policy := backoff.WithContext(backoff.WithMaxRetries(b, uint64(max(c.retry.MaxRetries, 0))), ctx)

	if err := backoff.RetryNotify(attempt, policy, notify); err != nil {
		return err
	}

	// Numbers decoded into interfaces keep their text, and so their precision.
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return coinfolio.E(coinfolio.KindDataShape, op, fmt.Errorf("cannot decode response: %w", err))
	}
	return nil
}

// get performs a single attempt, bounded by the client timeout.
func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	op := "GET " + endpoint
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	uri := c.baseURL + "/" + strings.TrimPrefix(endpoint, "/")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, coinfolio.E(coinfolio.KindConfiguration, op, fmt.Errorf("cannot create http request %q: %w", uri, err))
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, coinfolio.E(coinfolio.KindTransient, op, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, coinfolio.E(coinfolio.KindTransient, op, fmt.Errorf("cannot read response body: %w", err))
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return body, nil
	}

	msg := apiMessage(body)
	c.log.Error().
		Int("status_code", resp.StatusCode).
		Str("endpoint", endpoint).
		Str("message", msg).
		Msg("API returned non-2xx status")
	cause := fmt.Errorf("%s: %s", resp.Status, msg)

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, coinfolio.E(coinfolio.KindAuthentication, op, cause)
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, coinfolio.E(coinfolio.KindTransient, op, cause)
	default:
		return nil, coinfolio.E(coinfolio.KindDataShape, op, cause)
	}
}

// apiMessage extracts the error message of an API error response.
func apiMessage(body []byte) string {
	var apiErr struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Message != "" {
		return apiErr.Message
	}
	s := strings.TrimSpace(string(body))
	if len(s) > 200 {
		s = s[:200] + "..."
	}
	return s
}

var _ coinfolio.Fetcher = (*Client)(nil)
