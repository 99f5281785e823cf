package extractor

import (
	"regexp"
	"strings"
)

var (
	titleTag       = regexp.MustCompile(`(?i)<title[^>]*>([^<]*)</title>`)
	metaDesc       = regexp.MustCompile(`(?i)<meta[^>]*name=["']description["'][^>]*content=["']([^"']*)["']`)
	h1Tag          = regexp.MustCompile(`(?i)<h1[^>]*>`)
	h2Tag          = regexp.MustCompile(`(?i)<h2[^>]*>`)
	viewportMeta   = regexp.MustCompile(`(?i)name=["']viewport["']`)
	canonicalRel   = regexp.MustCompile(`(?i)rel=["']canonical["']`)
	robotsMeta     = regexp.MustCompile(`(?i)name=["']robots["']`)
	structuredData = regexp.MustCompile(`(?i)application/ld\+json|schema\.org`)
	openGraphProp  = regexp.MustCompile(`(?i)property=["']og:`)
	twitterMeta    = regexp.MustCompile(`(?i)name=["']twitter:`)
	lazyLoading    = regexp.MustCompile(`(?i)loading=["']lazy["']`)
	preloadRel     = regexp.MustCompile(`(?i)rel=["']preload["']`)
	altAttr        = regexp.MustCompile(`(?i)alt=`)
	langAttr       = regexp.MustCompile(`(?i)lang=`)
)

// SEOReport holds lightweight on-page SEO signals
type SEOReport struct {
	HasTitle           bool
	TitleLength        int
	TitleOptimal       bool
	HasDescription     bool
	DescriptionLength  int
	DescriptionOptimal bool
	HasH1              bool
	H1Count            int
	HasH2              bool
	HasViewport        bool
	HasCanonical       bool
	HasRobots          bool
	HasStructuredData  bool
	HasOpenGraph       bool
	HasTwitterCard     bool
	HasLazyLoading     bool
	HasPreload         bool
	HasAltTags         bool
	HasLang            bool
}

// AnalyzeSEO runs presence checks against raw markup
func AnalyzeSEO(pageHTML string) SEOReport {
	var report SEOReport

	if m := titleTag.FindStringSubmatch(pageHTML); m != nil {
		report.HasTitle = true
		report.TitleLength = len(strings.TrimSpace(m[1]))
		report.TitleOptimal = report.TitleLength >= 30 && report.TitleLength <= 60
	}

	if m := metaDesc.FindStringSubmatch(pageHTML); m != nil {
		report.HasDescription = true
		report.DescriptionLength = len(strings.TrimSpace(m[1]))
		report.DescriptionOptimal = report.DescriptionLength >= 120 && report.DescriptionLength <= 160
	}

	report.H1Count = len(h1Tag.FindAllString(pageHTML, -1))
	report.HasH1 = report.H1Count > 0
	report.HasH2 = h2Tag.MatchString(pageHTML)

	report.HasViewport = viewportMeta.MatchString(pageHTML)
	report.HasCanonical = canonicalRel.MatchString(pageHTML)
	report.HasRobots = robotsMeta.MatchString(pageHTML)
	report.HasStructuredData = structuredData.MatchString(pageHTML)

	report.HasOpenGraph = openGraphProp.MatchString(pageHTML)
	report.HasTwitterCard = twitterMeta.MatchString(pageHTML)

	report.HasLazyLoading = lazyLoading.MatchString(pageHTML)
	report.HasPreload = preloadRel.MatchString(pageHTML)

	report.HasAltTags = altAttr.MatchString(pageHTML)
	report.HasLang = langAttr.MatchString(pageHTML)

	return report
}

// Score weighs the signals into a 0-100 score and a letter grade
func (r SEOReport) Score() (int, string) {
	score := 0

	if r.HasTitle {
		score += 15
	}
	if r.TitleOptimal {
		score += 10
	}
	if r.HasDescription {
		score += 15
	}
	if r.DescriptionOptimal {
		score += 10
	}
	if r.HasH1 {
		score += 10
	}
	if r.H1Count == 1 {
		score += 5
	}
	if r.HasH2 {
		score += 5
	}
	if r.HasCanonical {
		score += 5
	}
	if r.HasOpenGraph {
		score += 10
	}
	if r.HasTwitterCard {
		score += 5
	}
	if r.HasStructuredData {
		score += 10
	}

	switch {
	case score >= 80:
		return score, "A"
	case score >= 60:
		return score, "B"
	case score >= 40:
		return score, "C"
	default:
		return score, "D"
	}
}
