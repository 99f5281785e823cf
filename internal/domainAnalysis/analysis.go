package domainAnalysis

import (
	"context"
	"fmt"
	"sync"
	"time"

	"Website_Analysis/internal/cache/resultCache"
	"Website_Analysis/internal/extractor"
	"Website_Analysis/internal/fetcher"
	"Website_Analysis/internal/logger"
	"Website_Analysis/internal/models"
)

// Service implements the AnalysisService interface
type Service struct {
	fetcher       fetcher.Service
	emails        *extractor.EmailExtractor
	resolver      *ContactPageResolver
	resultCache   resultCache.Service
	logger        logger.Service
	maxPhones     int
	maxParallel   int
	maxSequential int
	defaultBatch  int
	defaultTimeout time.Duration
}

// NewService creates a new analysis service
func NewService(
	pageFetcher fetcher.Service,
	emails *extractor.EmailExtractor,
	resultCache resultCache.Service,
	appLogger logger.Service,
	maxPhones, maxParallel, maxSequential, defaultBatch int,
	defaultTimeout time.Duration,
) AnalysisService {
	return &Service{
		fetcher:        pageFetcher,
		emails:         emails,
		resolver:       NewContactPageResolver(pageFetcher, emails),
		resultCache:    resultCache,
		logger:         appLogger,
		maxPhones:      maxPhones,
		maxParallel:    maxParallel,
		maxSequential:  maxSequential,
		defaultBatch:   defaultBatch,
		defaultTimeout: defaultTimeout,
	}
}

// AnalyzeDomain analyzes one domain end to end. It never returns a Go
// error and never panics outward: every failure path is converted into a
// result with an error status.
func (s *Service) AnalyzeDomain(ctx context.Context, domain string, opts Options) (result *models.AnalysisResult) {
	start := time.Now()
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = s.defaultTimeout
	}

	defer func() {
		if r := recover(); r != nil {
			s.logger.LogError(ctx, logger.OpDomainAnalysis, domain, "Panic during domain analysis",
				fmt.Errorf("panic: %v", r), models.LogSeverityHigh, nil)
			result = errorResult(domain, models.StatusAnalysisFailed, fmt.Sprintf("panic: %v", r))
		}
	}()

	// Serve from cache when a fresh analysis exists
	if cached, err := s.resultCache.Get(ctx, domain); err == nil {
		s.logger.LogSuccess(ctx, logger.OpCacheHit, domain, "Served analysis from cache", map[string]interface{}{
			"duration_ms": time.Since(start).Milliseconds(),
		})
		copied := *cached
		copied.Cached = true
		return &copied
	}

	s.logger.LogInfo(ctx, logger.OpCacheMiss, fmt.Sprintf("Cache miss for domain: %s", domain), map[string]interface{}{
		"domain": domain,
	})

	fetchResult := s.fetcher.Fetch(ctx, domain, timeout)
	if fetchResult.Failed() {
		s.logger.LogError(ctx, logger.OpFetchPage, domain, "Failed to fetch page",
			fmt.Errorf("%s", fetchResult.Error), models.LogSeverityMedium, map[string]interface{}{
				"duration_ms": time.Since(start).Milliseconds(),
			})
		return errorResult(domain, models.StatusError, fetchResult.Error)
	}

	result = s.buildResult(ctx, domain, fetchResult, timeout, opts.EmailPriority)

	if result.Status == models.StatusActive {
		if err := s.resultCache.Set(ctx, domain, result, 0); err != nil {
			// A failed cache write never fails the analysis
			s.logger.LogError(ctx, "cache_set", domain, "Failed to cache analysis result", err, models.LogSeverityLow, nil)
		}
	}

	s.logger.LogSuccess(ctx, logger.OpDomainAnalysis, domain, "Completed domain analysis", map[string]interface{}{
		"status":      result.Status,
		"email_count": result.EmailCount,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return result
}

// buildResult runs every extractor over a successful fetch
func (s *Service) buildResult(ctx context.Context, domain string, fetch *models.FetchResult, timeout time.Duration, priority []string) *models.AnalysisResult {
	html := fetch.Content

	seo := extractor.AnalyzeSEO(html)
	seoScore, seoGrade := seo.Score()

	emails := s.emails.Extract(html, priority)
	phones := extractor.ExtractPhones(html, s.maxPhones)
	contactPages := extractor.ExtractContactPages(html, fetch.FinalURL)

	// Contact-page fallback only when the homepage yields nothing
	if len(emails) == 0 {
		s.logger.LogInfo(ctx, logger.OpContactFallback,
			fmt.Sprintf("No emails on homepage of %s, trying contact pages", domain), nil)
		emails = append(emails, s.resolver.Resolve(ctx, domain, timeout, contactPages, priority)...)
	}

	socialLinks := extractor.ExtractSocialLinks(html)
	totalSocial := 0
	for _, links := range socialLinks {
		totalSocial += len(links)
	}

	status := models.StatusActive
	if fetch.StatusCode != 200 {
		status = fmt.Sprintf("Not Accessible (%d)", fetch.StatusCode)
	}

	return &models.AnalysisResult{
		Domain:             domain,
		Platform:           extractor.DetectPlatform(html),
		Purpose:            "General",
		IsHTTPS:            yesNo(fetch.IsHTTPS),
		HasHSTS:            yesNo(hasHeader(fetch.Headers, "strict-transport-security")),
		HasCSP:             yesNo(hasHeader(fetch.Headers, "content-security-policy")),
		HasXFrameOptions:   yesNo(hasHeader(fetch.Headers, "x-frame-options")),
		HasTitle:           yesNo(seo.HasTitle),
		TitleLength:        seo.TitleLength,
		TitleOptimal:       yesNo(seo.TitleOptimal),
		HasDescription:     yesNo(seo.HasDescription),
		DescriptionLength:  seo.DescriptionLength,
		DescriptionOptimal: yesNo(seo.DescriptionOptimal),
		HasH1:              yesNo(seo.HasH1),
		H1Count:            seo.H1Count,
		HasH2:              yesNo(seo.HasH2),
		HasViewport:        yesNo(seo.HasViewport),
		HasCanonical:       yesNo(seo.HasCanonical),
		HasRobots:          yesNo(seo.HasRobots),
		HasStructuredData:  yesNo(seo.HasStructuredData),
		HasOpenGraph:       yesNo(seo.HasOpenGraph),
		HasTwitterCard:     yesNo(seo.HasTwitterCard),
		HasLazyLoading:     yesNo(seo.HasLazyLoading),
		HasPreload:         yesNo(seo.HasPreload),
		HasAltTags:         yesNo(seo.HasAltTags),
		HasLang:            yesNo(seo.HasLang),
		Emails:             emails,
		EmailCount:         len(emails),
		Phones:             phones,
		PhoneCount:         len(phones),
		ContactPages:       contactPages,
		ContactPageCount:   len(contactPages),
		HasContactPage:     yesNo(len(contactPages) > 0),
		SocialLinks:        socialLinks,
		TotalSocialLinks:   totalSocial,
		HasFacebook:        yesNo(len(socialLinks["facebook"]) > 0),
		HasTwitter:         yesNo(len(socialLinks["twitter"]) > 0),
		HasLinkedin:        yesNo(len(socialLinks["linkedin"]) > 0),
		HasInstagram:       yesNo(len(socialLinks["instagram"]) > 0),
		HasYoutube:         yesNo(len(socialLinks["youtube"]) > 0),
		HasPinterest:       yesNo(len(socialLinks["pinterest"]) > 0),
		HasTiktok:          yesNo(len(socialLinks["tiktok"]) > 0),
		HasWhatsapp:        yesNo(len(socialLinks["whatsapp"]) > 0),
		SEOScore:           seoScore,
		SEOGrade:           seoGrade,
		Status:             status,
		AnalyzedAt:         time.Now().UTC(),
	}
}

// AnalyzeDomains analyzes multiple domains concurrently. Result order is
// completion order, not submission order.
func (s *Service) AnalyzeDomains(ctx context.Context, domains []string, opts Options) []*models.AnalysisResult {
	batchSize := clampBatch(opts.BatchSize, s.defaultBatch, s.maxParallel)

	s.logger.LogInfo(ctx, logger.OpBatchAnalysis,
		fmt.Sprintf("Starting parallel analysis of %d domains", len(domains)), map[string]interface{}{
			"domains_count": len(domains),
			"batch_size":    batchSize,
		})

	if len(domains) == 0 {
		return []*models.AnalysisResult{}
	}

	resultsChan := make(chan *models.AnalysisResult, len(domains))
	sem := make(chan struct{}, batchSize)
	var wg sync.WaitGroup

	for _, domain := range domains {
		wg.Add(1)
		go func(dom string) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			resultsChan <- s.AnalyzeDomain(ctx, dom, opts)
		}(domain)
	}

	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	results := make([]*models.AnalysisResult, 0, len(domains))
	for result := range resultsChan {
		results = append(results, result)
	}

	return results
}

// AnalyzeDomainsSequential processes domains in fixed-size batches with a
// short pause between batches
func (s *Service) AnalyzeDomainsSequential(ctx context.Context, domains []string, opts Options) []*models.AnalysisResult {
	batchSize := clampBatch(opts.BatchSize, s.defaultBatch, s.maxSequential)
	batchOpts := opts
	batchOpts.BatchSize = batchSize

	results := make([]*models.AnalysisResult, 0, len(domains))
	for i := 0; i < len(domains); i += batchSize {
		end := i + batchSize
		if end > len(domains) {
			end = len(domains)
		}

		results = append(results, s.AnalyzeDomains(ctx, domains[i:end], batchOpts)...)

		if end < len(domains) {
			select {
			case <-ctx.Done():
				// Remaining domains become cancellation results
				for _, dom := range domains[end:] {
					results = append(results, errorResult(dom, models.StatusError, "request cancelled"))
				}
				return results
			case <-time.After(200 * time.Millisecond):
			}
		}
	}

	return results
}

// errorResult builds a fully-populated result for a failed analysis
func errorResult(domain, status, errMsg string) *models.AnalysisResult {
	return &models.AnalysisResult{
		Domain:             domain,
		Platform:           "Error",
		Purpose:            "Error",
		IsHTTPS:            "No",
		HasHSTS:            "No",
		HasCSP:             "No",
		HasXFrameOptions:   "No",
		HasTitle:           "No",
		TitleOptimal:       "No",
		HasDescription:     "No",
		DescriptionOptimal: "No",
		HasH1:              "No",
		HasH2:              "No",
		HasViewport:        "No",
		HasCanonical:       "No",
		HasRobots:          "No",
		HasStructuredData:  "No",
		HasOpenGraph:       "No",
		HasTwitterCard:     "No",
		HasLazyLoading:     "No",
		HasPreload:         "No",
		HasAltTags:         "No",
		HasLang:            "No",
		Emails:             []string{},
		Phones:             []string{},
		ContactPages:       []models.ContactPage{},
		HasContactPage:     "No",
		SocialLinks:        map[string][]string{},
		HasFacebook:        "No",
		HasTwitter:         "No",
		HasLinkedin:        "No",
		HasInstagram:       "No",
		HasYoutube:         "No",
		HasPinterest:       "No",
		HasTiktok:          "No",
		HasWhatsapp:        "No",
		SEOGrade:           "F",
		Status:             status,
		AnalyzedAt:         time.Now().UTC(),
		Error:              errMsg,
	}
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

func hasHeader(headers map[string]string, name string) bool {
	_, ok := headers[name]
	return ok
}

func clampBatch(requested, fallback, max int) int {
	if requested <= 0 {
		requested = fallback
	}
	if requested > max {
		return max
	}
	return requested
}
