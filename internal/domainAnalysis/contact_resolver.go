package domainAnalysis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"Website_Analysis/internal/extractor"
	"Website_Analysis/internal/fetcher"
	"Website_Analysis/internal/models"
)

// Well-known contact page paths, tried after any links discovered on the
// homepage itself
var guessPaths = []string{
	"/contact",
	"/contact/",
	"/contact-us",
	"/contact-us/",
	"/get-in-touch",
	"/reach-out",
	"/about/contact",
	"/pages/contact",
}

// ContactPageResolver finds emails on a site's contact pages when the
// homepage has none
type ContactPageResolver struct {
	fetcher fetcher.Service
	emails  *extractor.EmailExtractor
}

// NewContactPageResolver creates a new contact page resolver
func NewContactPageResolver(pageFetcher fetcher.Service, emails *extractor.EmailExtractor) *ContactPageResolver {
	return &ContactPageResolver{
		fetcher: pageFetcher,
		emails:  emails,
	}
}

// Resolve fetches candidate contact pages sequentially and returns the
// emails from the first page that yields any. Discovered links take
// precedence over guessed paths. Fetch failures are ignored.
func (c *ContactPageResolver) Resolve(ctx context.Context, domain string, timeout time.Duration, discovered []models.ContactPage, priority []string) []string {
	for _, candidate := range c.candidateURLs(domain, discovered) {
		if ctx.Err() != nil {
			return nil
		}

		result := c.fetcher.FetchURL(ctx, candidate, timeout)
		if result.Failed() || result.StatusCode != 200 {
			continue
		}

		if emails := c.emails.Extract(result.Content, priority); len(emails) > 0 {
			return emails
		}
	}

	return nil
}

// candidateURLs builds the ordered, deduplicated URL list to probe
func (c *ContactPageResolver) candidateURLs(domain string, discovered []models.ContactPage) []string {
	seen := make(map[string]struct{})
	candidates := make([]string, 0, len(discovered)+len(guessPaths)*2)

	add := func(url string) {
		key := strings.ToLower(url)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		candidates = append(candidates, url)
	}

	for _, page := range discovered {
		add(page.URL)
	}

	for _, scheme := range []string{"https", "http"} {
		for _, path := range guessPaths {
			add(fmt.Sprintf("%s://%s%s", scheme, domain, path))
		}
	}

	return candidates
}
