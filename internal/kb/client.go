// Package kb is a stateless client for the Wikidata action API and the
// Wikipedia extracts API. Every operation is a pure function of its
// arguments plus the remote service's current state; caching, rate
// limiting, and retries are transport concerns layered underneath.
package kb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ppiankov/wikichat/internal/cache"
	"github.com/ppiankov/wikichat/internal/model"
	"github.com/ppiankov/wikichat/internal/util"
	"github.com/ppiankov/wikichat/internal/worker"
)

const (
	defaultWikidataAPI = "https://www.wikidata.org/w/api.php"
	defaultMaxRetries  = 2
)

// retrySleep is the sleep function used between retries (injectable for tests)
var retrySleep = time.Sleep

// Client queries Wikidata and Wikipedia over HTTP
type Client struct {
	httpClient    *http.Client
	wikidataAPI   string
	wikipediaAPI  string
	wikipediaBase string
	language      string
	userAgent     string
	maxBytes      int64
	maxRetries    int
	store         cache.Cache // nil disables caching
	cacheTTL      time.Duration
	limiter       *worker.Limiter
	robots        *util.RobotsChecker // nil disables robots.txt checks
}

// NewClient creates a knowledge-base client from configuration.
// store may be nil to disable response caching.
func NewClient(cfg *model.Config, store cache.Cache) *Client {
	lang := cfg.Knowledge.Language
	if lang == "" {
		lang = "en"
	}

	var robots *util.RobotsChecker
	if cfg.HTTP.RespectRobots {
		robots = util.NewRobotsChecker(cfg.HTTP.UserAgent, cfg.HTTP.Timeout)
	}

	maxRetries := cfg.HTTP.MaxRetries
	if maxRetries < 0 {
		maxRetries = defaultMaxRetries
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.HTTP.Timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(cfg.HTTP.HTTPProxy, cfg.HTTP.HTTPSProxy, cfg.HTTP.NoProxy),
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		wikidataAPI:   defaultWikidataAPI,
		wikipediaAPI:  fmt.Sprintf("https://%s.wikipedia.org/w/api.php", lang),
		wikipediaBase: fmt.Sprintf("https://%s.wikipedia.org", lang),
		language:      lang,
		userAgent:     cfg.HTTP.UserAgent,
		maxBytes:      cfg.HTTP.MaxBodyBytes,
		maxRetries:    maxRetries,
		store:         store,
		cacheTTL:      cfg.Cache.TTL,
		limiter:       worker.NewLimiter(cfg.HTTP.RateLimit, cfg.HTTP.RateBurst),
		robots:        robots,
	}
}

// getJSON fetches rawURL and decodes the JSON response into out
func (c *Client) getJSON(ctx context.Context, rawURL string, out interface{}) error {
	body, err := c.getBody(ctx, rawURL)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	return nil
}

// getBody fetches rawURL honoring the cache, robots.txt, and the per-host
// rate limit. Network and 5xx failures are retried with linear backoff.
func (c *Client) getBody(ctx context.Context, rawURL string) ([]byte, error) {
	key := cache.Key(rawURL)
	if c.store != nil {
		if body, found := c.store.Get(key); found {
			return body, nil
		}
	}

	if c.robots != nil && !c.robots.IsAllowed(ctx, rawURL) {
		return nil, fmt.Errorf("robots.txt disallows fetching %s", rawURL)
	}

	if err := c.limiter.Wait(ctx, rawURL); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	body, err := c.fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	if c.store != nil {
		_ = c.store.Set(key, body, c.cacheTTL)
	}

	return body, nil
}

func (c *Client) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
			retrySleep(time.Duration(attempt) * 250 * time.Millisecond)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("fetch: %w", err)
			continue
		}

		body, readErr := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes))
		_ = resp.Body.Close()

		if resp.StatusCode >= 500 {
			lastErr = fmt.Errorf("server error: %d %s", resp.StatusCode, resp.Status)
			continue
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
		}
		if readErr != nil {
			lastErr = fmt.Errorf("read body: %w", readErr)
			continue
		}

		return body, nil
	}

	return nil, lastErr
}
