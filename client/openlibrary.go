package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL   = "https://openlibrary.org"
	DefaultCoversURL = "https://covers.openlibrary.org"
	DefaultUserAgent = "bookfind/1.0 (+https://github.com/hsbacot/bookfind)"
	DefaultTimeout   = 30 * time.Second

	searchPath = "/search.json"
)

// Book represents a single search hit from openlibrary.org
type Book struct {
	Key              string   `json:"key"`
	Title            string   `json:"title"`
	Authors          []string `json:"author_name,omitempty"`
	FirstPublishYear int      `json:"first_publish_year,omitempty"`
	CoverID          int      `json:"cover_i,omitempty"`
	Subjects         []string `json:"subject,omitempty"`
}

// SearchResponse represents the API response from the search endpoint.
// Docs is kept raw so a non-array value can be treated as an empty result.
type SearchResponse struct {
	NumFound int             `json:"numFound"`
	Docs     json.RawMessage `json:"docs"`
}

// WorkResponse is the subset of a work/edition record we read
type WorkResponse struct {
	Title       string          `json:"title"`
	Description json.RawMessage `json:"description"`
}

// Client is an HTTP client for openlibrary.org
type Client struct {
	httpClient *http.Client
	baseURL    string
	coversURL  string
	userAgent  string
	limiter    *rate.Limiter
	logger     *log.Logger
}

// Option configures a Client
type Option func(*Client)

// WithBaseURL overrides the API base URL (search and detail endpoints)
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimSuffix(u, "/")
		}
	}
}

// WithCoversURL overrides the cover image host
func WithCoversURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.coversURL = strings.TrimSuffix(u, "/")
		}
	}
}

// WithUserAgent sets the User-Agent header sent with every request
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithTimeout sets the per-request HTTP timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithRateLimit paces outgoing requests. rps <= 0 means unlimited.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger attaches a logger for request tracing
func WithLogger(l *log.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient creates a new Open Library API client
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		baseURL:   DefaultBaseURL,
		coversURL: DefaultCoversURL,
		userAgent: DefaultUserAgent,
		limiter:   rate.NewLimiter(rate.Inf, 0),
		logger:    log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SearchBooks searches for books whose title matches the query. A response
// that is not an object, or whose docs is not an array, yields no books.
func (c *Client) SearchBooks(ctx context.Context, title string) ([]Book, error) {
	searchURL := fmt.Sprintf("%s%s?title=%s", c.baseURL, searchPath, url.QueryEscape(title))

	var body json.RawMessage
	if err := c.get(ctx, searchURL, &body); err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}

	if !isJSONObject(body) {
		c.logger.Debug("Search response is not an object", "title", title)
		return []Book{}, nil
	}

	// A mistyped numFound must not hide the docs.
	var searchResp SearchResponse
	_ = json.Unmarshal(body, &searchResp)

	var docs []json.RawMessage
	if !isJSONArray(searchResp.Docs) || json.Unmarshal(searchResp.Docs, &docs) != nil {
		c.logger.Debug("Search response has no docs array", "title", title)
		return []Book{}, nil
	}

	books := make([]Book, 0, len(docs))
	for i, doc := range docs {
		if !isJSONObject(doc) {
			c.logger.Debug("Skipping search doc", "index", i)
			continue
		}
		// Mistyped fields are left zero; the rest of the doc still decodes.
		var b Book
		if err := json.Unmarshal(doc, &b); err != nil {
			c.logger.Debug("Search doc partially decoded", "index", i, "error", err)
		}
		books = append(books, b)
	}

	c.logger.Debug("Search completed", "title", title, "numFound", searchResp.NumFound, "docs", len(books))
	return books, nil
}

func isJSONObject(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '{'
}

func isJSONArray(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '['
}

// FetchDescription fetches the detail record for a book key and returns its
// description text. An empty string with a nil error means the record has none.
func (c *Client) FetchDescription(ctx context.Context, bookKey string) (string, error) {
	detailURL := c.DetailURL(bookKey)

	var work WorkResponse
	if err := c.get(ctx, detailURL, &work); err != nil {
		return "", fmt.Errorf("description request failed: %w", err)
	}

	desc := sanitizeDescription(extractDescription(work.Description))
	c.logger.Debug("Description fetched", "key", bookKey, "bytes", len(desc))
	return desc, nil
}

// DetailURL returns the JSON record URL for a book key such as "/works/OL82563W"
func (c *Client) DetailURL(bookKey string) string {
	if !strings.HasPrefix(bookKey, "/") {
		bookKey = "/" + bookKey
	}
	return fmt.Sprintf("%s%s.json", c.baseURL, bookKey)
}

// CoverURL returns the medium cover image URL, or "" when coverID is unset
func (c *Client) CoverURL(coverID int) string {
	if coverID == 0 {
		return ""
	}
	return fmt.Sprintf("%s/b/id/%d-M.jpg", c.coversURL, coverID)
}

func (c *Client) get(ctx context.Context, rawURL string, target interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("GET", "url", rawURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	return nil
}
