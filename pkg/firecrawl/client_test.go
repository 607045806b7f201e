package firecrawl

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(
		WithAPIKey("test-key"),
		WithBaseURL(server.URL),
		WithBatchPolling(time.Millisecond, time.Second),
	)
}

func TestClientAvailable(t *testing.T) {
	t.Setenv("FIRECRAWL_API_KEY", "")

	if NewClient().Available() {
		t.Error("Available() should be false without an API key")
	}
	if !NewClient(WithAPIKey("k")).Available() {
		t.Error("Available() should be true with an API key")
	}
}

func TestClientUnavailableFailsFast(t *testing.T) {
	t.Setenv("FIRECRAWL_API_KEY", "")

	c := NewClient(WithBaseURL("http://127.0.0.1:0"))
	_, err := c.MapSite(context.Background(), "https://example.com")
	if err == nil || !strings.Contains(err.Error(), "not configured") {
		t.Errorf("MapSite without key = %v, want configuration error", err)
	}
}

func TestMapSite(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/map" || r.Method != "POST" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q", got)
		}

		var req map[string]any
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req["url"] != "https://example.com" {
			t.Errorf("url = %v", req["url"])
		}

		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"links":   []string{"https://example.com/", "https://example.com/about"},
		})
	}))

	result, err := c.MapSite(context.Background(), "https://example.com")
	if err != nil {
		t.Fatalf("MapSite: %v", err)
	}
	if result.TotalURLs != 2 || len(result.URLs) != 2 {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestMapSiteAPIFailure(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"success": false, "error": "invalid url"})
	}))

	_, err := c.MapSite(context.Background(), "https://bad.example")
	if err == nil || !strings.Contains(err.Error(), "invalid url") {
		t.Errorf("MapSite = %v, want the provider's error", err)
	}
}

func TestScrapePage(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/scrape" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}

		var req scrapeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if len(req.Formats) != 2 || req.Formats[0] != FormatMarkdown || req.Formats[1] != FormatHTML {
			t.Errorf("formats = %v", req.Formats)
		}

		json.NewEncoder(w).Encode(scrapeResponse{
			Success: true,
			Data: Page{
				Markdown: "# Home",
				HTML:     "<h1>Home</h1>",
				Metadata: PageMetadata{Title: "Home", SourceURL: "https://example.com", StatusCode: 200},
			},
		})
	}))

	page, err := c.ScrapePage(context.Background(), "https://example.com", FormatMarkdown, FormatHTML)
	if err != nil {
		t.Fatalf("ScrapePage: %v", err)
	}
	if page.Markdown != "# Home" || page.Metadata.Title != "Home" {
		t.Errorf("unexpected page: %+v", page)
	}
}

func TestScrapePageHTTPError(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))

	_, err := c.ScrapePage(context.Background(), "https://example.com")
	if err == nil || !strings.Contains(err.Error(), "429") {
		t.Errorf("ScrapePage = %v, want status error", err)
	}
}

func TestBatchScrapePollsToCompletion(t *testing.T) {
	polls := 0
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == "POST" && r.URL.Path == "/batch/scrape":
			json.NewEncoder(w).Encode(batchStartResponse{Success: true, ID: "job-1"})
		case r.Method == "GET" && r.URL.Path == "/batch/scrape/job-1":
			polls++
			if polls < 3 {
				json.NewEncoder(w).Encode(batchStatusResponse{Status: "scraping", Completed: polls, Total: 3})
				return
			}
			json.NewEncoder(w).Encode(batchStatusResponse{
				Status:    "completed",
				Completed: 3,
				Total:     3,
				Data: []Page{
					{Markdown: "about", Metadata: PageMetadata{SourceURL: "https://v.example/about", StatusCode: 200}},
					{Markdown: "pricing", Metadata: PageMetadata{SourceURL: "https://v.example/pricing", StatusCode: 200}},
					{Metadata: PageMetadata{SourceURL: "https://v.example/gone", StatusCode: 404}},
				},
			})
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
	}))

	urls := []string{
		"https://v.example/about",
		"https://v.example/pricing",
		"https://v.example/gone",
		"https://v.example/missing",
	}
	result, err := c.BatchScrape(context.Background(), urls)
	if err != nil {
		t.Fatalf("BatchScrape: %v", err)
	}

	if polls < 3 {
		t.Errorf("expected at least 3 polls, got %d", polls)
	}
	if len(result.Pages) != 2 {
		t.Errorf("Pages = %v, want 2 entries", result.Pages)
	}
	if result.Pages["https://v.example/about"].Markdown != "about" {
		t.Errorf("about page = %+v", result.Pages["https://v.example/about"])
	}

	// A 404 page and a never-returned page both land in Failures.
	if len(result.Failures) != 2 {
		t.Errorf("Failures = %v, want 2 entries", result.Failures)
	}
	if msg := result.Failures["https://v.example/gone"]; !strings.Contains(msg, "404") {
		t.Errorf("gone failure = %q", msg)
	}
	if msg := result.Failures["https://v.example/missing"]; msg != "no content returned" {
		t.Errorf("missing failure = %q", msg)
	}
}

func TestBatchScrapeJobFailure(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == "POST" {
			json.NewEncoder(w).Encode(batchStartResponse{Success: true, ID: "job-2"})
			return
		}
		json.NewEncoder(w).Encode(batchStatusResponse{Status: "failed", Error: "quota exceeded"})
	}))

	_, err := c.BatchScrape(context.Background(), []string{"https://v.example"})
	if err == nil || !strings.Contains(err.Error(), "quota exceeded") {
		t.Errorf("BatchScrape = %v, want job failure", err)
	}
}

func TestBatchScrapeEmptyList(t *testing.T) {
	c := NewClient(WithAPIKey("k"), WithBaseURL("http://127.0.0.1:0"))

	result, err := c.BatchScrape(context.Background(), nil)
	if err != nil {
		t.Fatalf("BatchScrape with no urls: %v", err)
	}
	if result.Status != "completed" || len(result.Pages) != 0 {
		t.Errorf("unexpected result: %+v", result)
	}
}
