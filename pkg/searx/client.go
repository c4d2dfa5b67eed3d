// Package searx provides an authenticated client for a self-hosted SearXNG
// meta-search instance, with focus-mode query rewriting, result caching and
// token management.
package searx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	defaultTimeout  = 30 * time.Second
	defaultCacheTTL = 5 * time.Minute

	// userAgent mimics a browser so engine-side heuristics treat the
	// request like an interactive search.
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"
)

// Client performs focus-aware searches against the backend.
type Client interface {
	Search(ctx context.Context, query string, opts SearchOptions, mode *FocusMode) (*Response, error)
}

// SearchOptions tunes an individual search request.
type SearchOptions struct {
	Language   string `json:"language,omitempty"`
	Page       int    `json:"page,omitempty"`
	Categories string `json:"categories,omitempty"`
	Engines    string `json:"engines,omitempty"`
}

// Result is a single mapped search result.
type Result struct {
	Title         string  `json:"title"`
	URL           string  `json:"url"`
	Content       string  `json:"content"`
	Engine        string  `json:"engine"`
	Score         float64 `json:"score"`
	PublishedDate string  `json:"published_date,omitempty"`
	Category      string  `json:"category,omitempty"`
}

// SearchInfo carries backend-reported metadata about a search.
type SearchInfo struct {
	Engines     []string `json:"engines,omitempty"`
	SearchTime  float64  `json:"search_time,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// Response is a completed search, cacheable and immutable once returned.
type Response struct {
	Query        string     `json:"query"`
	TotalResults int        `json:"total_results"`
	Success      bool       `json:"success"`
	Results      []Result   `json:"results"`
	SearchInfo   SearchInfo `json:"search_info"`
	FocusMode    string     `json:"focus_mode"`
	FocusApplied string     `json:"focus_applied,omitempty"`
	Cached       bool       `json:"cached"`
}

// rawResponse mirrors the backend's JSON shape.
type rawResponse struct {
	Results []struct {
		Title         string  `json:"title"`
		URL           string  `json:"url"`
		Content       string  `json:"content"`
		Engine        string  `json:"engine"`
		Score         float64 `json:"score"`
		PublishedDate string  `json:"publishedDate"`
		Category      string  `json:"category"`
	} `json:"results"`
	Engines     []string `json:"engines"`
	SearchTime  float64  `json:"search_time"`
	Suggestions []string `json:"suggestions"`
}

// Option configures the client.
type Option func(*httpClient)

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) { c.http = hc }
}

// WithTimeout overrides the per-search deadline.
func WithTimeout(d time.Duration) Option {
	return func(c *httpClient) { c.timeout = d }
}

// WithCacheTTL overrides the result cache TTL.
func WithCacheTTL(d time.Duration) Option {
	return func(c *httpClient) { c.cache = newTTLCache[*Response](d) }
}

// WithRateLimit throttles outbound searches.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *httpClient) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), max(burst, 1))
	}
}

type httpClient struct {
	baseURL string
	tokens  *TokenProvider
	http    *http.Client
	timeout time.Duration
	limiter *rate.Limiter
	cache   *ttlCache[*Response]
	stats   *Stats

	// cfgErr is checked once at construction and remembered; a
	// misconfigured client fails every call the same way.
	cfgErr error
}

// NewClient creates a search client. Missing base URL or credentials make
// every Search return ErrNotConfigured rather than panicking at startup,
// so a host can still serve its health endpoint.
func NewClient(baseURL string, tokens *TokenProvider, stats *Stats, opts ...Option) Client {
	c := &httpClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		stats:   stats,
		timeout: defaultTimeout,
		http:    &http.Client{},
		limiter: rate.NewLimiter(5, 10),
		cache:   newTTLCache[*Response](defaultCacheTTL),
	}
	for _, o := range opts {
		o(c)
	}
	if c.baseURL == "" {
		c.cfgErr = eris.Wrap(ErrNotConfigured, "missing base URL")
	} else if tokens == nil || tokens.creds.ClientID == "" || tokens.creds.ClientSecret == "" {
		c.cfgErr = eris.Wrap(ErrNotConfigured, "missing OAuth credentials")
	}
	return c
}

// Search runs a focus-aware search. A nil mode is inferred from the query
// text. Fresh cached responses are returned without a backend call.
func (c *httpClient) Search(ctx context.Context, query string, opts SearchOptions, mode *FocusMode) (*Response, error) {
	if c.cfgErr != nil {
		return nil, c.cfgErr
	}

	if mode == nil {
		mode = DetectOptimalFocus(query)
	}

	rewritten, engines, categories := ApplyFocus(query, mode)
	if opts.Engines != "" {
		engines = opts.Engines
	}
	if opts.Categories != "" {
		categories = opts.Categories
	}

	key := cacheKey(rewritten, opts, mode.Name)
	if hit, ok := c.cache.get(key); ok {
		c.stats.RecordCached()
		out := *hit
		out.Cached = true
		out.FocusApplied = mode.Description
		return &out, nil
	}

	resp, err := c.doSearch(ctx, rewritten, engines, categories, opts)
	if err != nil {
		c.stats.RecordFailure(query, mode.Name, err)
		return nil, err
	}

	resp.Query = query
	resp.FocusMode = mode.Name
	resp.FocusApplied = mode.Description
	c.cache.put(key, resp)
	c.stats.RecordSuccess()

	zap.L().Debug("search complete",
		zap.String("query", query),
		zap.String("focus_mode", mode.Name),
		zap.Int("results", resp.TotalResults),
	)

	return resp, nil
}

func (c *httpClient) doSearch(ctx context.Context, query, engines, categories string, opts SearchOptions) (*Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "searx: rate limit")
	}

	token, err := c.tokens.AccessToken(ctx)
	if err != nil {
		return nil, err
	}

	lang := opts.Language
	if lang == "" {
		lang = "en"
	}
	page := opts.Page
	if page <= 0 {
		page = 1
	}

	params := url.Values{
		"q":      {query},
		"format": {"json"},
		"lang":   {lang},
		"pageno": {fmt.Sprintf("%d", page)},
	}
	if categories != "" {
		params.Set("categories", categories)
	}
	if engines != "" {
		params.Set("engines", engines)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, eris.Wrap(err, "searx: create request")
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, &TimeoutError{Query: query, Elapsed: c.timeout.String()}
		}
		return nil, &BackendError{Err: err}
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &BackendError{Err: eris.Wrap(err, "read response")}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &BackendError{Status: resp.StatusCode, Body: string(body)}
	}

	raw, err := parsePayload(body)
	if err != nil {
		return nil, err
	}

	out := &Response{
		Success:      true,
		TotalResults: len(raw.Results),
		Results:      make([]Result, 0, len(raw.Results)),
		SearchInfo: SearchInfo{
			Engines:     raw.Engines,
			SearchTime:  raw.SearchTime,
			Suggestions: raw.Suggestions,
		},
	}
	for _, r := range raw.Results {
		item := Result{
			Title:         r.Title,
			URL:           r.URL,
			Content:       r.Content,
			Engine:        r.Engine,
			Score:         r.Score,
			PublishedDate: r.PublishedDate,
			Category:      r.Category,
		}
		if item.Title == "" {
			item.Title = "Untitled result"
		}
		if item.Engine == "" {
			item.Engine = "unknown"
		}
		out.Results = append(out.Results, item)
	}

	return out, nil
}

// parsePayload decodes the backend JSON, attempting repair when the body
// looks like a truncated object (engines occasionally cut off streamed
// responses mid-document).
func parsePayload(body []byte) (*rawResponse, error) {
	var raw rawResponse
	if err := json.Unmarshal(body, &raw); err == nil {
		return &raw, nil
	}

	text := strings.TrimSpace(string(body))
	if !strings.Contains(text, `"results":`) || strings.HasSuffix(text, "}") {
		return nil, &BackendError{Err: eris.New("unparseable payload"), Body: text}
	}

	repaired, err := jsonrepair.RepairJSON(text)
	if err != nil {
		return nil, &BackendError{Err: eris.Wrap(err, "repair truncated payload"), Body: text}
	}
	if err := json.Unmarshal([]byte(repaired), &raw); err != nil {
		return nil, &BackendError{Err: eris.Wrap(err, "parse repaired payload"), Body: text}
	}

	zap.L().Warn("repaired truncated search payload", zap.Int("bytes", len(body)))
	return &raw, nil
}

func cacheKey(query string, opts SearchOptions, mode string) string {
	norm := strings.ToLower(strings.TrimSpace(query))
	return fmt.Sprintf("%s|%s|%d|%s|%s|%s", norm, opts.Language, opts.Page, opts.Categories, opts.Engines, mode)
}
