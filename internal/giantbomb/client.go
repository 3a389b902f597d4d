// Package giantbomb implements the client for the Giant Bomb metadata API.
package giantbomb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/gamevault/gamevault/internal/errors"
	"github.com/gamevault/gamevault/internal/logging"
	"github.com/gamevault/gamevault/internal/observability"
)

// Package-level logger specific to the giantbomb service
var (
	logger          *slog.Logger
	serviceLevelVar = new(slog.LevelVar) // Dynamic level control
	closeLogger     func() error
)

func init() {
	var err error
	logFilePath := filepath.Join("logs", "giantbomb.log")
	serviceLevelVar.Set(slog.LevelDebug)

	logger, closeLogger, err = logging.NewFileLogger(logFilePath, "giantbomb", serviceLevelVar)
	if err != nil {
		log.Printf("FATAL: Failed to initialize giantbomb file logger at %s: %v. Service logging disabled.", logFilePath, err)
		fbHandler := slog.NewJSONHandler(io.Discard, &slog.HandlerOptions{Level: serviceLevelVar})
		logger = slog.New(fbHandler).With("service", "giantbomb")
		closeLogger = func() error { return nil }
	}
}

// Client provides methods for interacting with the Giant Bomb API.
// Requests are strictly sequential; every request waits out the configured
// inter-request delay to respect the provider's rate limit.
type Client struct {
	config      Config
	httpClient  *http.Client
	detailCache *cache.Cache
	metrics     *observability.PopulateMetrics

	mu          sync.Mutex
	lastRequest time.Time

	debug bool
}

// SetMetrics attaches pipeline metrics so retried requests are counted.
// Safe to leave unset; metric recording is a no-op without it.
func (c *Client) SetMetrics(metrics *observability.PopulateMetrics) {
	c.metrics = metrics
}

// NewClient creates a new Giant Bomb API client
func NewClient(config Config, debug bool) (*Client, error) {
	if config.APIKey == "" {
		return nil, errors.Newf("Giant Bomb API key is required").
			Category(errors.CategoryConfiguration).
			Component("giantbomb").
			Build()
	}

	// Use defaults for missing config values
	defaults := DefaultConfig()
	if config.BaseURL == "" {
		config.BaseURL = defaults.BaseURL
	}
	if config.Timeout == 0 {
		config.Timeout = defaults.Timeout
	}
	if config.MaxRetries == 0 {
		config.MaxRetries = defaults.MaxRetries
	}
	if config.CacheTTL == 0 {
		config.CacheTTL = defaults.CacheTTL
	}

	client := &Client{
		config:      config,
		httpClient:  &http.Client{Timeout: config.Timeout},
		detailCache: cache.New(config.CacheTTL, config.CacheTTL*2),
		debug:       debug,
	}

	logger.Info("Giant Bomb client initialized",
		"base_url", config.BaseURL,
		"request_delay", config.RequestDelay,
		"max_retries", config.MaxRetries,
		"api_key_configured", config.APIKey != "")

	return client, nil
}

// Close cleans up client resources
func (c *Client) Close() {
	logger.Info("Closing Giant Bomb client")
	if closeLogger != nil {
		if err := closeLogger(); err != nil {
			log.Printf("Error closing giantbomb logger: %v", err)
		}
	}
}

// FetchPage retrieves one page of a paginated list resource.
func (c *Client) FetchPage(ctx context.Context, resource string, offset, limit int) (*Page, error) {
	reqCtx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	u := fmt.Sprintf("%s/%s/?%s", c.config.BaseURL, resource, c.listQuery(offset, limit))

	var page Page
	if err := c.doRequestWithRetry(reqCtx, u, resource, &page); err != nil {
		return nil, err
	}

	if page.StatusCode != statusOK {
		return nil, errors.Newf("Giant Bomb API error: %s", page.Error).
			Category(errors.CategoryHTTP).
			Context("resource", resource).
			Context("api_status_code", page.StatusCode).
			Component("giantbomb").
			Build()
	}

	return &page, nil
}

// FetchDetail retrieves a single detailed record by its guid and decodes it
// into out. Detail records are cached per guid for the configured TTL.
func (c *Client) FetchDetail(ctx context.Context, resource, guid string, out any) error {
	cacheKey := fmt.Sprintf("%s:%s", resource, guid)
	if cached, found := c.detailCache.Get(cacheKey); found {
		if raw, ok := cached.(json.RawMessage); ok {
			logger.Debug("detail cache hit", "cache_key", cacheKey)
			return json.Unmarshal(raw, out)
		}
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	u := fmt.Sprintf("%s/%s/%s/?%s", c.config.BaseURL, resource, url.PathEscape(guid), c.detailQuery())

	var envelope detailEnvelope
	if err := c.doRequestWithRetry(reqCtx, u, resource, &envelope); err != nil {
		return err
	}

	if envelope.StatusCode != statusOK {
		return errors.Newf("Giant Bomb API error: %s", envelope.Error).
			Category(errors.CategoryHTTP).
			Context("resource", resource).
			Context("guid", guid).
			Context("api_status_code", envelope.StatusCode).
			Component("giantbomb").
			Build()
	}

	c.detailCache.Set(cacheKey, envelope.Results, cache.DefaultExpiration)

	return json.Unmarshal(envelope.Results, out)
}

func (c *Client) listQuery(offset, limit int) string {
	q := url.Values{}
	q.Set("api_key", c.config.APIKey)
	q.Set("format", "json")
	q.Set("offset", strconv.Itoa(offset))
	q.Set("limit", strconv.Itoa(limit))
	return q.Encode()
}

func (c *Client) detailQuery() string {
	q := url.Values{}
	q.Set("api_key", c.config.APIKey)
	q.Set("format", "json")
	return q.Encode()
}

// waitForRateLimit blocks until the configured inter-request delay since the
// previous request has elapsed. This is a cooperative scheduling point, the
// client does no other work while waiting.
func (c *Client) waitForRateLimit(ctx context.Context) error {
	c.mu.Lock()
	elapsed := time.Since(c.lastRequest)
	remaining := c.config.RequestDelay - elapsed
	c.mu.Unlock()

	if remaining > 0 {
		select {
		case <-time.After(remaining):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	c.mu.Lock()
	c.lastRequest = time.Now()
	c.mu.Unlock()
	return nil
}

// doRequest performs a single GET request and decodes the JSON response.
func (c *Client) doRequest(ctx context.Context, u string, result any) error {
	if err := c.waitForRateLimit(ctx); err != nil {
		return err
	}

	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return errors.Newf("failed to create HTTP request: %w", err).
			Category(errors.CategoryNetwork).
			Context("url", sanitizeURL(u)).
			Component("giantbomb").
			Build()
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "gamevault")

	if c.debug {
		logger.Debug("Giant Bomb API request", "url", sanitizeURL(u))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error("Giant Bomb API request failed",
			"error", err,
			"url", sanitizeURL(u))
		return errors.Newf("HTTP request failed: %w", err).
			Category(errors.CategoryNetwork).
			Context("url", sanitizeURL(u)).
			Component("giantbomb").
			Build()
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Newf("failed to read response body: %w", err).
			Category(errors.CategoryNetwork).
			Context("url", sanitizeURL(u)).
			Context("status_code", resp.StatusCode).
			Component("giantbomb").
			Build()
	}

	if resp.StatusCode >= 400 {
		// Authentication failures are configuration problems, not transient ones
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			logger.Error("Giant Bomb API authentication failed",
				"status_code", resp.StatusCode,
				"url", sanitizeURL(u),
				"message", "Check your Giant Bomb API key in the configuration")
			return errors.Newf("Giant Bomb API authentication failed (status %d)", resp.StatusCode).
				Category(errors.CategoryConfiguration).
				Context("status_code", resp.StatusCode).
				Component("giantbomb").
				Build()
		}

		logger.Warn("Giant Bomb API error response",
			"status_code", resp.StatusCode,
			"url", sanitizeURL(u))
		return errors.Newf("Giant Bomb API error (status %d)", resp.StatusCode).
			Category(getErrorCategory(resp.StatusCode)).
			Context("status_code", resp.StatusCode).
			Context("url", sanitizeURL(u)).
			Component("giantbomb").
			Build()
	}

	if result != nil {
		if err := json.Unmarshal(bodyBytes, result); err != nil {
			responsePreview := string(bodyBytes)
			if len(responsePreview) > 500 {
				responsePreview = responsePreview[:500] + "..."
			}
			logger.Error("Failed to parse Giant Bomb API response",
				"error", err,
				"url", sanitizeURL(u),
				"response_size", len(bodyBytes),
				"response_preview", responsePreview)
			return errors.Newf("failed to parse response: %w", err).
				Category(errors.CategoryFileParsing).
				Context("url", sanitizeURL(u)).
				Context("response_size", len(bodyBytes)).
				Component("giantbomb").
				Build()
		}
	}

	if c.debug {
		logger.Debug("Giant Bomb API response",
			"status_code", resp.StatusCode,
			"url", sanitizeURL(u),
			"duration_ms", time.Since(start).Milliseconds(),
			"response_size", len(bodyBytes))
	}

	return nil
}

// doRequestWithRetry wraps doRequest with bounded retry. Exhausting all
// attempts surfaces a fetch failure identifying the resource, the attempt
// count and the last underlying error.
func (c *Client) doRequestWithRetry(ctx context.Context, u, resource string, result any) error {
	maxRetries := c.config.MaxRetries
	var lastErr error

	for attempt := 1; attempt <= maxRetries; attempt++ {
		err := c.doRequest(ctx, u, result)
		if err == nil {
			return nil
		}

		// Don't retry configuration or client errors, only transient ones
		var enhancedErr *errors.EnhancedError
		if errors.As(err, &enhancedErr) {
			if enhancedErr.Category == errors.CategoryConfiguration ||
				enhancedErr.Category == errors.CategoryNotFound ||
				enhancedErr.Category == errors.CategoryValidation {
				return err
			}
			if statusCode, ok := enhancedErr.Context["status_code"].(int); ok {
				if statusCode >= 400 && statusCode < 500 && statusCode != http.StatusTooManyRequests {
					return err
				}
			}
		}

		lastErr = err

		if ctx.Err() != nil {
			return lastErr
		}

		if attempt < maxRetries {
			c.metrics.RecordRetry(resource)
			logger.Warn("Giant Bomb API request failed, retrying",
				"attempt", attempt,
				"max_retries", maxRetries,
				"resource", resource,
				"error", err.Error())

			select {
			case <-time.After(c.config.RequestDelay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}

	return errors.Newf("fetch failed for %s after %d attempts: %w", resource, maxRetries, lastErr).
		Category(errors.CategoryNetwork).
		Context("resource", resource).
		Context("attempts", maxRetries).
		Component("giantbomb").
		Build()
}

// ClearCache clears all cached detail records
func (c *Client) ClearCache() {
	c.detailCache.Flush()
	logger.Info("Giant Bomb detail cache cleared")
}

// sanitizeURL strips the api_key query parameter before logging.
func sanitizeURL(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	q := parsed.Query()
	if q.Has("api_key") {
		q.Set("api_key", "REDACTED")
		parsed.RawQuery = q.Encode()
	}
	return parsed.String()
}

// getErrorCategory determines the appropriate error category based on HTTP status code
func getErrorCategory(statusCode int) errors.ErrorCategory {
	switch statusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return errors.CategoryConfiguration
	case http.StatusTooManyRequests:
		return errors.CategoryLimit
	case http.StatusNotFound:
		return errors.CategoryNotFound
	default:
		return errors.CategoryNetwork
	}
}

// SplitAliases splits the provider's newline-delimited alias string into an
// ordered slice. Absent or blank input yields nil, distinguishing "no data"
// from an empty list.
func SplitAliases(aliases *string) []string {
	if aliases == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*aliases)
	if trimmed == "" {
		return nil
	}
	parts := strings.Split(strings.ReplaceAll(trimmed, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
