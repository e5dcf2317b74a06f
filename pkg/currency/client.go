package currency

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/iwvelando/omnicalc/pkg/constants"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var (
	// ErrRateLimited is returned when no cached rates exist and the fetch
	// budget is exhausted.
	ErrRateLimited = errors.New("exchange rate fetch rate limited")
	// ErrUpstream is returned when the exchange rate API fails or returns
	// an unusable document.
	ErrUpstream = errors.New("exchange rate service unavailable")
)

// Fetch outcomes reported to the observer.
const (
	OutcomeFetched     = "fetched"
	OutcomeCached      = "cached"
	OutcomeStale       = "stale"
	OutcomeError       = "error"
	OutcomeRateLimited = "rate_limited"
)

// ClientConfig controls how live rates are fetched and cached.
type ClientConfig struct {
	Endpoint          string
	Timeout           time.Duration
	CacheTTL          time.Duration
	RequestsPerMinute int
}

// DefaultClientConfig returns the public exchange rate API settings.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		Endpoint:          constants.DefaultRatesEndpoint,
		Timeout:           constants.DefaultRatesTimeoutSeconds * time.Second,
		CacheTTL:          constants.DefaultRatesCacheSeconds * time.Second,
		RequestsPerMinute: constants.DefaultRatesPerMinute,
	}
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client used for fetches.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithObserver registers a callback invoked with the outcome of every Latest call.
func WithObserver(fn func(outcome string)) Option {
	return func(c *Client) { c.observe = fn }
}

// WithClock overrides the time source used for cache expiry.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// Client fetches USD based rates and serves them from memory while fresh.
// It is safe for concurrent use.
type Client struct {
	endpoint string
	ttl      time.Duration
	http     *http.Client
	limiter  *rate.Limiter
	logger   *zap.Logger
	observe  func(string)
	now      func() time.Time

	mu     sync.Mutex
	cached *Rates
}

// NewClient creates a client from cfg, filling unset fields with defaults.
func NewClient(cfg ClientConfig, logger *zap.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	defaults := DefaultClientConfig()
	if cfg.Endpoint == "" {
		cfg.Endpoint = defaults.Endpoint
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaults.Timeout
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = defaults.CacheTTL
	}
	if cfg.RequestsPerMinute <= 0 {
		cfg.RequestsPerMinute = defaults.RequestsPerMinute
	}

	c := &Client{
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		ttl:      cfg.CacheTTL,
		http:     &http.Client{Timeout: cfg.Timeout},
		limiter:  rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RequestsPerMinute)), 1),
		logger:   logger,
		observe:  func(string) {},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Latest returns the current rate table. Fresh cached rates are returned
// without a request. When a fetch fails or is rate limited, previously
// fetched rates are returned marked stale.
func (c *Client) Latest(ctx context.Context) (*Rates, error) {
	// mu is held across the fetch so concurrent callers wait for a single
	// refresh instead of each hitting the upstream.
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cached != nil && c.now().Sub(c.cached.FetchedAt) < c.ttl {
		c.observe(OutcomeCached)
		return c.copyCached(false), nil
	}

	if !c.limiter.Allow() {
		if c.cached != nil {
			c.observe(OutcomeStale)
			return c.copyCached(true), nil
		}
		c.observe(OutcomeRateLimited)
		return nil, ErrRateLimited
	}

	rates, err := c.fetch(ctx)
	if err != nil {
		c.logger.Warn("exchange rate fetch failed",
			zap.String("op", "currency.Latest"),
			zap.String("endpoint", c.endpoint),
			zap.Error(err),
		)
		if c.cached != nil {
			c.observe(OutcomeStale)
			return c.copyCached(true), nil
		}
		c.observe(OutcomeError)
		return nil, err
	}

	c.logger.Debug(fmt.Sprintf("fetched %d exchange rates dated %s", len(rates.Rates), rates.Date),
		zap.String("op", "currency.Latest"),
	)
	c.cached = rates
	c.observe(OutcomeFetched)
	return c.copyCached(false), nil
}

type latestResponse struct {
	Base  string             `json:"base"`
	Date  string             `json:"date"`
	Rates map[string]float64 `json:"rates"`
}

func (c *Client) fetch(ctx context.Context) (*Rates, error) {
	url := c.endpoint + "/latest/" + constants.BaseCurrency
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", url, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: %s returned %s", ErrUpstream, url, resp.Status)
	}

	var body latestResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %v", ErrUpstream, url, err)
	}
	if len(body.Rates) == 0 {
		return nil, fmt.Errorf("%w: %s returned no rates", ErrUpstream, url)
	}
	if body.Base == "" {
		body.Base = constants.BaseCurrency
	}

	return &Rates{
		Base:      strings.ToUpper(body.Base),
		Date:      body.Date,
		Rates:     body.Rates,
		FetchedAt: c.now(),
	}, nil
}

// copyCached returns a copy so callers cannot mutate the cache. Callers hold mu.
func (c *Client) copyCached(stale bool) *Rates {
	out := *c.cached
	out.Rates = maps.Clone(c.cached.Rates)
	out.Stale = stale
	return &out
}
