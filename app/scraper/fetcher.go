package scraper

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"time"
)

const (
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "Mozilla/5.0 (compatible; RecipeBox/1.0)"
	// MaxPageSize caps how much of a response body is read.
	MaxPageSize = 10 << 20
)

// PageFetcher downloads a page for the strategies to work on.
type PageFetcher interface {
	Fetch(ctx context.Context, rawURL string) (*Page, error)
}

type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
}

func NewFetcher(timeout time.Duration, userAgent string) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &Fetcher{
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  userAgent,
		maxBytes:   MaxPageSize,
	}
}

// Fetch downloads rawURL once. Every failure wraps ErrFetch.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %w", ErrFetch, err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: HTTP error: %s", ErrFetch, resp.Status)
	}

	if contentType := resp.Header.Get("Content-Type"); contentType != "" {
		mediaType, _, err := mime.ParseMediaType(contentType)
		if err != nil || (mediaType != "text/html" && mediaType != "application/xhtml+xml") {
			return nil, fmt.Errorf("%w: unexpected content type %q", ErrFetch, contentType)
		}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %w", ErrFetch, err)
	}
	if int64(len(data)) > f.maxBytes {
		return nil, fmt.Errorf("%w: response larger than %d bytes", ErrFetch, f.maxBytes)
	}

	slog.Debug("Page fetched", "url", rawURL, "status", resp.StatusCode, "bytes", len(data))

	// Redirects may have moved us to another host; site matching uses the final URL.
	return NewPage(resp.Request.URL.String(), data)
}
