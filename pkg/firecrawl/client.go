// Package firecrawl wraps the Firecrawl site-mapping and scraping API.
package firecrawl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"
)

const defaultBaseURL = "https://api.firecrawl.dev/v1"

// Format selects a scrape output format.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// Client calls the Firecrawl API.
type Client struct {
	apiKey       string
	baseURL      string
	httpClient   *http.Client
	mapLimit     int
	pollInterval time.Duration
	waitTimeout  time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithAPIKey sets the API key (alternative to the FIRECRAWL_API_KEY env var).
func WithAPIKey(key string) Option {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithBaseURL overrides the API endpoint. Used by tests.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithMapLimit caps how many URLs a site map request may return.
func WithMapLimit(limit int) Option {
	return func(c *Client) {
		c.mapLimit = limit
	}
}

// WithBatchPolling sets the poll interval and overall wait timeout for
// batch scrape jobs.
func WithBatchPolling(interval, timeout time.Duration) Option {
	return func(c *Client) {
		c.pollInterval = interval
		c.waitTimeout = timeout
	}
}

// NewClient creates a Firecrawl client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		apiKey:  os.Getenv("FIRECRAWL_API_KEY"),
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		mapLimit:     5000,
		pollInterval: 2 * time.Second,
		waitTimeout:  120 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Available returns true if the API key is configured.
func (c *Client) Available() bool {
	return c.apiKey != ""
}

// MapResult lists the discoverable URLs of a domain.
type MapResult struct {
	URLs      []string
	TotalURLs int
}

// PageMetadata carries scrape metadata for one page.
type PageMetadata struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	SourceURL   string `json:"sourceURL"`
	StatusCode  int    `json:"statusCode"`
}

// Page is the scraped content of one URL.
type Page struct {
	Markdown string       `json:"markdown"`
	HTML     string       `json:"html"`
	Metadata PageMetadata `json:"metadata"`
}

// BatchResult reports a completed batch scrape: per-URL content for the
// pages that scraped and per-URL errors for the ones that did not.
type BatchResult struct {
	Status    string
	Completed int
	Total     int
	Pages     map[string]Page
	Failures  map[string]string
}

type mapRequest struct {
	URL   string `json:"url"`
	Limit int    `json:"limit,omitempty"`
}

type mapResponse struct {
	Success bool     `json:"success"`
	Links   []string `json:"links"`
	Error   string   `json:"error"`
}

type scrapeRequest struct {
	URL     string   `json:"url"`
	Formats []Format `json:"formats"`
}

type scrapeResponse struct {
	Success bool   `json:"success"`
	Data    Page   `json:"data"`
	Error   string `json:"error"`
}

type batchRequest struct {
	URLs    []string `json:"urls"`
	Formats []Format `json:"formats"`
}

type batchStartResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
	Error   string `json:"error"`
}

type batchStatusResponse struct {
	Status    string `json:"status"`
	Completed int    `json:"completed"`
	Total     int    `json:"total"`
	Data      []Page `json:"data"`
	Error     string `json:"error"`
}

// MapSite returns the discoverable URLs under a root domain.
func (c *Client) MapSite(ctx context.Context, domain string) (*MapResult, error) {
	var resp mapResponse
	if err := c.post(ctx, "/map", mapRequest{URL: domain, Limit: c.mapLimit}, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, fmt.Errorf("firecrawl map failed: %s", orUnknown(resp.Error))
	}
	return &MapResult{URLs: resp.Links, TotalURLs: len(resp.Links)}, nil
}

// ScrapePage returns one page's content in the requested formats.
func (c *Client) ScrapePage(ctx context.Context, url string, formats ...Format) (*Page, error) {
	if len(formats) == 0 {
		formats = []Format{FormatMarkdown}
	}
	var resp scrapeResponse
	if err := c.post(ctx, "/scrape", scrapeRequest{URL: url, Formats: formats}, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, fmt.Errorf("firecrawl scrape failed: %s", orUnknown(resp.Error))
	}
	return &resp.Data, nil
}

// BatchScrape submits a batch job and polls it to completion. URLs the
// provider could not scrape are reported in Failures rather than
// failing the whole batch.
func (c *Client) BatchScrape(ctx context.Context, urls []string, formats ...Format) (*BatchResult, error) {
	if len(urls) == 0 {
		return &BatchResult{Status: "completed", Pages: map[string]Page{}, Failures: map[string]string{}}, nil
	}
	if len(formats) == 0 {
		formats = []Format{FormatMarkdown}
	}

	var start batchStartResponse
	if err := c.post(ctx, "/batch/scrape", batchRequest{URLs: urls, Formats: formats}, &start); err != nil {
		return nil, err
	}
	if !start.Success || start.ID == "" {
		return nil, fmt.Errorf("firecrawl batch scrape failed to start: %s", orUnknown(start.Error))
	}

	deadline := time.Now().Add(c.waitTimeout)
	for {
		var status batchStatusResponse
		if err := c.get(ctx, "/batch/scrape/"+start.ID, &status); err != nil {
			return nil, err
		}
		if status.Status == "failed" {
			return nil, fmt.Errorf("firecrawl batch job failed: %s", orUnknown(status.Error))
		}
		if status.Status == "completed" {
			return collectBatch(urls, &status), nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("firecrawl batch job timed out after %s (%d/%d pages)",
				c.waitTimeout, status.Completed, status.Total)
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.pollInterval):
		}
	}
}

func collectBatch(requested []string, status *batchStatusResponse) *BatchResult {
	result := &BatchResult{
		Status:    status.Status,
		Completed: status.Completed,
		Total:     status.Total,
		Pages:     make(map[string]Page, len(status.Data)),
		Failures:  make(map[string]string),
	}
	for _, page := range status.Data {
		if page.Metadata.SourceURL == "" {
			continue
		}
		if page.Metadata.StatusCode >= 400 {
			result.Failures[page.Metadata.SourceURL] = fmt.Sprintf("scrape returned status %d", page.Metadata.StatusCode)
			continue
		}
		result.Pages[page.Metadata.SourceURL] = page
	}
	for _, url := range requested {
		if _, ok := result.Pages[url]; ok {
			continue
		}
		if _, ok := result.Failures[url]; ok {
			continue
		}
		result.Failures[url] = "no content returned"
	}
	return result
}

func (c *Client) post(ctx context.Context, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	return c.do(req, out)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	if !c.Available() {
		return fmt.Errorf("firecrawl API key not configured")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("firecrawl request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("firecrawl API error: status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode firecrawl response: %w", err)
	}
	return nil
}

func orUnknown(msg string) string {
	if msg == "" {
		return "unknown error"
	}
	return msg
}
