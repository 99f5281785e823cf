package fetcher

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"Website_Analysis/internal/models"
	"Website_Analysis/internal/ratelimit"

	"golang.org/x/net/html/charset"
)

// maxBodySize caps how much of a page body is read
const maxBodySize = 5 * 1024 * 1024

// browser-like headers reduce trivial bot blocking
var defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// PageFetcher implements Service using the connection pool and the outbound
// fetch limiter
type PageFetcher struct {
	pool    *ConnectionPool
	limiter ratelimit.FetchService
}

// NewPageFetcher creates a new page fetcher
func NewPageFetcher(pool *ConnectionPool, limiter ratelimit.FetchService) Service {
	return &PageFetcher{
		pool:    pool,
		limiter: limiter,
	}
}

// Fetch retrieves a page for the given domain. A domain that already
// carries a scheme is tried as-is; bare domains try https:// then http://.
// Any HTTP status counts as success; only transport-level failures advance
// to the next candidate URL. Never returns a Go error.
func (f *PageFetcher) Fetch(ctx context.Context, domain string, timeout time.Duration) *models.FetchResult {
	var candidates []string
	if strings.HasPrefix(domain, "http://") || strings.HasPrefix(domain, "https://") {
		candidates = []string{domain}
	} else {
		candidates = []string{"https://" + domain, "http://" + domain}
	}

	var lastErr string
	for _, url := range candidates {
		result, err := f.tryURL(ctx, url, timeout)
		if err == nil {
			return result
		}
		lastErr = fmt.Sprintf("failed to fetch %s: %v", url, err)
	}

	if lastErr == "" {
		lastErr = fmt.Sprintf("failed to access %s with any protocol", domain)
	}
	return &models.FetchResult{
		Error:      lastErr,
		StatusCode: http.StatusInternalServerError,
	}
}

// FetchURL retrieves a single explicit URL with no fallback
func (f *PageFetcher) FetchURL(ctx context.Context, url string, timeout time.Duration) *models.FetchResult {
	result, err := f.tryURL(ctx, url, timeout)
	if err != nil {
		return &models.FetchResult{
			Error:      fmt.Sprintf("failed to fetch %s: %v", url, err),
			StatusCode: http.StatusInternalServerError,
		}
	}
	return result
}

// tryURL performs one rate-limited fetch attempt
func (f *PageFetcher) tryURL(ctx context.Context, url string, timeout time.Duration) (*models.FetchResult, error) {
	if err := f.limiter.Acquire(ctx); err != nil {
		return nil, err
	}
	defer f.limiter.Release()

	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	setBrowserHeaders(req)

	resp, err := f.pool.GetClient().Do(req)
	if err != nil {
		if attemptCtx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("%w: %v", models.ErrFetchTimeout, err)
		}
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		// A partially read body is still useful; decode what arrived
		body = append([]byte(nil), body...)
	}

	finalURL := url
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	return &models.FetchResult{
		Content:    decodeBody(body, resp.Header.Get("Content-Type")),
		StatusCode: resp.StatusCode,
		Headers:    flattenHeaders(resp.Header),
		FinalURL:   finalURL,
		IsHTTPS:    strings.HasPrefix(finalURL, "https://"),
	}, nil
}

// setBrowserHeaders applies realistic browser request headers
func setBrowserHeaders(req *http.Request) {
	req.Header.Set("User-Agent", defaultUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	req.Header.Set("DNT", "1")
	req.Header.Set("Upgrade-Insecure-Requests", "1")
	req.Header.Set("Cache-Control", "no-cache")
}

// decodeBody turns response bytes into text with a fallback chain:
// strict UTF-8, then a charset-aware reader driven by the Content-Type,
// then invalid-byte substitution as last resort.
func decodeBody(body []byte, contentType string) string {
	if len(body) == 0 {
		return ""
	}
	if utf8.Valid(body) {
		return string(body)
	}

	if reader, err := charset.NewReader(bytes.NewReader(body), contentType); err == nil {
		if decoded, err := io.ReadAll(reader); err == nil {
			return string(decoded)
		}
	}

	return strings.ToValidUTF8(string(body), "")
}

// flattenHeaders lowercases header names and keeps the first value of each,
// so downstream checks can do case-insensitive lookups
func flattenHeaders(h http.Header) map[string]string {
	flat := make(map[string]string, len(h))
	for name, values := range h {
		if len(values) > 0 {
			flat[strings.ToLower(name)] = values[0]
		}
	}
	return flat
}
