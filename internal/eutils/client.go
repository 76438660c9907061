// Package eutils is a client for the NCBI Entrez E-utilities: esearch,
// efetch, esummary, epost, elink, einfo, egquery, espell and ecitmatch.
//
// The client rate-limits itself to the service's published allowance,
// keeps Entrez history state across calls, and can serve repeated
// requests from a local response cache.
package eutils

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/amdshrif/ncbi-client/internal/cache"
	"github.com/charmbracelet/log"
)

// DefaultBaseURL is the public E-utilities endpoint.
const DefaultBaseURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/"

var (
	// ErrRateLimit is returned when the service keeps answering 429
	// after backoff.
	ErrRateLimit = errors.New("rate limit exceeded")

	// ErrAPI is returned for service-side failures: non-success HTTP
	// statuses and embedded <ERROR> responses.
	ErrAPI = errors.New("E-utilities error")
)

const requestAttempts = 3

// Cache is the read-through response cache hook. A nil cache disables
// caching; *cache.Store satisfies it.
type Cache interface {
	Get(key string) (string, bool)
	Set(key, payload string) error
}

// Client talks to the E-utilities endpoints. Construct it with New; the
// zero value is not usable.
type Client struct {
	base    string
	apiKey  string
	email   string
	tool    string
	http    *http.Client
	limiter *limiter
	cache   Cache
	log     *log.Logger

	// History carries Entrez WebEnv/QueryKey state between calls.
	History *History

	backoff func(attempt int)
}

// Option configures a Client.
type Option func(*Client)

// WithAPIKey sets the API key, raising the rate allowance to 10 requests
// per second.
func WithAPIKey(key string) Option { return func(c *Client) { c.apiKey = key } }

// WithEmail identifies the caller to the service, as NCBI recommends.
func WithEmail(email string) Option { return func(c *Client) { c.email = email } }

// WithTool overrides the tool identifier sent with every request.
func WithTool(tool string) Option { return func(c *Client) { c.tool = tool } }

// WithRateLimit overrides the requests-per-second allowance.
func WithRateLimit(perSecond int) Option {
	return func(c *Client) { c.limiter = newLimiter(perSecond, time.Second) }
}

// WithHTTPClient replaces the underlying HTTP client; tests use this to
// inject a transport.
func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.http = h } }

// WithCache attaches a response cache.
func WithCache(cache Cache) Option { return func(c *Client) { c.cache = cache } }

// WithBaseURL points the client at a different endpoint.
func WithBaseURL(base string) Option { return func(c *Client) { c.base = base } }

// WithLogger replaces the default logger.
func WithLogger(logger *log.Logger) Option { return func(c *Client) { c.log = logger } }

// New builds a client. Without an explicit key the NCBI_API_KEY
// environment variable is consulted; the rate allowance defaults to 10
// requests per second with a key and 3 without.
func New(opts ...Option) *Client {
	c := &Client{
		base:    DefaultBaseURL,
		apiKey:  os.Getenv("NCBI_API_KEY"),
		tool:    "ncbi-client",
		http:    &http.Client{Timeout: 30 * time.Second},
		log:     log.New(io.Discard),
		History: &History{},
		backoff: func(attempt int) {
			time.Sleep(time.Duration(attempt) * 500 * time.Millisecond)
		},
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.limiter == nil {
		perSecond := 3
		if c.apiKey != "" {
			perSecond = 10
		}
		c.limiter = newLimiter(perSecond, time.Second)
	}

	return c
}

// cacheKey derives the response cache key for a request from its full URL
// and flattened parameters, via the cache package's key scheme.
func (c *Client) cacheKey(endpoint string, params url.Values) string {
	flat := make(map[string]string, len(params))
	for name, values := range params {
		flat[name] = strings.Join(values, ",")
	}
	return cache.Key(c.base+endpoint, flat)
}

// get performs a GET request against endpoint, serving from the cache
// when possible.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values) (string, error) {
	return c.do(ctx, endpoint, params, false)
}

// post performs a form POST against endpoint. POSTs are never cached.
func (c *Client) post(ctx context.Context, endpoint string, params url.Values) (string, error) {
	return c.do(ctx, endpoint, params, true)
}

func (c *Client) do(ctx context.Context, endpoint string, params url.Values, asPost bool) (string, error) {
	merged := url.Values{}
	for name, values := range params {
		merged[name] = values
	}
	merged.Set("tool", c.tool)
	if c.email != "" {
		merged.Set("email", c.email)
	}
	if c.apiKey != "" {
		merged.Set("api_key", c.apiKey)
	}

	encoded := merged.Encode()
	cacheKey := c.cacheKey(endpoint, merged)

	if c.cache != nil && !asPost {
		if payload, ok := c.cache.Get(cacheKey); ok {
			c.log.Debug("cache hit", "endpoint", endpoint)
			return payload, nil
		}
	}

	var lastErr error
	for attempt := 1; attempt <= requestAttempts; attempt++ {
		c.limiter.wait()

		var req *http.Request
		var err error
		if asPost {
			req, err = http.NewRequestWithContext(ctx, http.MethodPost,
				c.base+endpoint, strings.NewReader(encoded))
			if req != nil {
				req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			}
		} else {
			req, err = http.NewRequestWithContext(ctx, http.MethodGet,
				c.base+endpoint+"?"+encoded, nil)
		}
		if err != nil {
			return "", fmt.Errorf("failed to build %s request: %w", endpoint, err)
		}
		req.Header.Set("User-Agent", fmt.Sprintf("ncbi-client/%s (%s)", c.tool, c.email))

		c.log.Debug("request", "endpoint", endpoint, "attempt", attempt)

		resp, err := c.http.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("request to %s failed: %w", endpoint, err)
			c.backoff(attempt)
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusOK:
			if readErr != nil {
				return "", fmt.Errorf("failed to read %s response: %w", endpoint, readErr)
			}
			payload := string(body)
			if c.cache != nil && !asPost {
				if err := c.cache.Set(cacheKey, payload); err != nil {
					c.log.Warn("cache write failed", "err", err)
				}
			}
			return payload, nil

		case resp.StatusCode == http.StatusTooManyRequests:
			lastErr = fmt.Errorf("%w: %s answered HTTP 429", ErrRateLimit, endpoint)
			c.backoff(attempt)

		case resp.StatusCode == http.StatusUnauthorized:
			return "", fmt.Errorf("%w: invalid API key", ErrAPI)

		default:
			return "", fmt.Errorf("%w: %s answered HTTP %d", ErrAPI, endpoint, resp.StatusCode)
		}
	}

	return "", lastErr
}
