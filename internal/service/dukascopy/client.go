package dukascopy

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"FxPulse/internal/domain/models"
	"FxPulse/pkg/cache"
	xhttp "FxPulse/pkg/http"
)

// jsonpPattern extracts the JSON payload from the calendar feed's JSONP
// wrapper, e.g. `jsonp([...])`.
var jsonpPattern = regexp.MustCompile(`(?s)jsonp\((.*)\)`)

// browserHeaders makes the upstream treat us like the website it serves;
// without them the feed answers 403.
var browserHeaders = map[string]string{
	"User-Agent":      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
	"Accept":          "application/json, text/javascript, */*; q=0.01",
	"Accept-Language": "en-US,en;q=0.9",
	"Referer":         "https://www.dukascopy.com/",
	"Origin":          "https://www.dukascopy.com",
	"Connection":      "keep-alive",
}

// Client talks to the Dukascopy quote and economic-calendar feeds. Every
// fetch degrades to static fallback data instead of failing: the returned
// Source tells live from fallback apart, and a non-nil error alongside
// fallback data describes what went wrong upstream.
type Client struct {
	quotesURL   string
	calendarURL string
	http        *xhttp.Client
	cache       cache.Service
	cacheTTL    time.Duration
}

// Option configures Client.
type Option func(*Client)

// WithCache caches live payloads for ttl, so the 1s poll and the proxy
// endpoints don't hammer the vendor with identical requests.
func WithCache(c cache.Service, ttl time.Duration) Option {
	return func(cl *Client) {
		cl.cache = c
		cl.cacheTTL = ttl
	}
}

// WithTimeout sets the upstream request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(cl *Client) {
		cl.http = xhttp.NewClient(xhttp.WithTimeout(timeout))
	}
}

// New creates a Dukascopy feed client.
func New(quotesURL, calendarURL string, opts ...Option) *Client {
	c := &Client{
		quotesURL:   quotesURL,
		calendarURL: calendarURL,
		http:        xhttp.NewClient(xhttp.WithTimeout(10 * time.Second)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchPairs returns the current quote list, filtered to majors and minors.
func (c *Client) FetchPairs(ctx context.Context) ([]models.CurrencyPair, models.Source, error) {
	if body, ok := c.cacheGet(ctx, "pairs"); ok {
		var pairs []models.CurrencyPair
		if err := json.Unmarshal(body, &pairs); err == nil {
			return pairs, models.SourceLive, nil
		}
	}

	body, err := c.fetchText(ctx, c.quotesURL, nil)
	if err != nil {
		return FallbackPairs(), models.SourceFallback, fmt.Errorf("quotes fetch: %w", err)
	}

	// The feed rate-limits with a plain-text body and a 200 status.
	if strings.HasPrefix(body, "Too Many Requests") {
		return FallbackPairs(), models.SourceFallback, fmt.Errorf("quotes fetch: upstream rate limited")
	}

	var pairs []models.CurrencyPair
	if err := json.Unmarshal([]byte(body), &pairs); err != nil {
		return FallbackPairs(), models.SourceFallback, fmt.Errorf("quotes parse: %w", err)
	}

	filtered := make([]models.CurrencyPair, 0, len(pairs))
	for _, p := range pairs {
		if p.Group == "majors" || p.Group == "minors" {
			filtered = append(filtered, p)
		}
	}

	c.cachePut(ctx, "pairs", filtered)
	return filtered, models.SourceLive, nil
}

// FetchEvents returns economic events for the [since, until) window. The
// vendor speaks epoch milliseconds and wraps the reply in JSONP.
func (c *Client) FetchEvents(ctx context.Context, since, until time.Time) ([]models.EconomicEvent, models.Source, error) {
	key := cache.Key("events", since.UnixMilli(), until.UnixMilli())
	if body, ok := c.cacheGet(ctx, key); ok {
		var events []models.EconomicEvent
		if err := json.Unmarshal(body, &events); err == nil {
			return events, models.SourceLive, nil
		}
	}

	params := map[string][]string{
		"since": {strconv.FormatInt(since.UnixMilli(), 10)},
		"until": {strconv.FormatInt(until.UnixMilli(), 10)},
	}
	body, err := c.fetchText(ctx, c.calendarURL, params)
	if err != nil {
		return FallbackEvents(), models.SourceFallback, fmt.Errorf("calendar fetch: %w", err)
	}

	match := jsonpPattern.FindStringSubmatch(body)
	if len(match) < 2 || match[1] == "" {
		return FallbackEvents(), models.SourceFallback, fmt.Errorf("calendar fetch: invalid JSONP response")
	}

	var events []models.EconomicEvent
	if err := json.Unmarshal([]byte(match[1]), &events); err != nil {
		return FallbackEvents(), models.SourceFallback, fmt.Errorf("calendar parse: %w", err)
	}

	c.cachePut(ctx, key, events)
	return events, models.SourceLive, nil
}

func (c *Client) fetchText(ctx context.Context, url string, params map[string][]string) (string, error) {
	resp, err := c.http.SendRequest(ctx, &xhttp.RequestOptions{
		Method:      xhttp.MethodGet,
		URL:         url,
		Headers:     browserHeaders,
		QueryParams: params,
	})
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("upstream returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	return string(body), nil
}

func (c *Client) cacheGet(ctx context.Context, key string) ([]byte, bool) {
	if c.cache == nil {
		return nil, false
	}
	body, err := c.cache.Get(ctx, key)
	if err != nil {
		return nil, false
	}
	return body, true
}

func (c *Client) cachePut(ctx context.Context, key string, v interface{}) {
	if c.cache == nil {
		return
	}
	body, err := json.Marshal(v)
	if err != nil {
		return
	}
	_ = c.cache.Set(ctx, key, body, c.cacheTTL)
}
