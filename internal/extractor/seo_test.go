package extractor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzeSEO_FullPage(t *testing.T) {
	html := `<html lang="en"><head>
		<title>` + strings.Repeat("t", 40) + `</title>
		<meta name="description" content="` + strings.Repeat("d", 130) + `">
		<meta name="viewport" content="width=device-width">
		<meta name="robots" content="index,follow">
		<link rel="canonical" href="https://acmecorp.com/">
		<meta property="og:title" content="Acme">
		<meta name="twitter:card" content="summary">
		<script type="application/ld+json">{}</script>
	</head><body>
		<h1>Heading</h1>
		<h2>Subheading</h2>
		<img src="a.png" alt="logo" loading="lazy">
	</body></html>`

	report := AnalyzeSEO(html)

	assert.True(t, report.HasTitle)
	assert.Equal(t, 40, report.TitleLength)
	assert.True(t, report.TitleOptimal)
	assert.True(t, report.HasDescription)
	assert.Equal(t, 130, report.DescriptionLength)
	assert.True(t, report.DescriptionOptimal)
	assert.True(t, report.HasH1)
	assert.Equal(t, 1, report.H1Count)
	assert.True(t, report.HasH2)
	assert.True(t, report.HasViewport)
	assert.True(t, report.HasCanonical)
	assert.True(t, report.HasRobots)
	assert.True(t, report.HasStructuredData)
	assert.True(t, report.HasOpenGraph)
	assert.True(t, report.HasTwitterCard)
	assert.True(t, report.HasLazyLoading)
	assert.True(t, report.HasAltTags)
	assert.True(t, report.HasLang)

	score, grade := report.Score()
	assert.Equal(t, 100, score)
	assert.Equal(t, "A", grade)
}

func TestAnalyzeSEO_EmptyPage(t *testing.T) {
	report := AnalyzeSEO("<html><body>hi</body></html>")

	assert.False(t, report.HasTitle)
	assert.False(t, report.HasH1)
	assert.Equal(t, 0, report.H1Count)

	score, grade := report.Score()
	assert.Equal(t, 0, score)
	assert.Equal(t, "D", grade)
}

func TestSEOReport_ScoreGrades(t *testing.T) {
	tests := []struct {
		name   string
		report SEOReport
		score  int
		grade  string
	}{
		{
			"title and description only",
			SEOReport{HasTitle: true, HasDescription: true},
			30, "D",
		},
		{
			"mid page",
			SEOReport{HasTitle: true, TitleOptimal: true, HasDescription: true, HasH1: true, H1Count: 1, HasH2: true},
			60, "B",
		},
		{
			"multiple h1 loses the single-h1 bonus",
			SEOReport{HasTitle: true, TitleOptimal: true, HasDescription: true, HasH1: true, H1Count: 3, HasH2: true},
			55, "C",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, grade := tt.report.Score()
			assert.Equal(t, tt.score, score)
			assert.Equal(t, tt.grade, grade)
		})
	}
}

func TestDetectPlatform(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{"wordpress", `<link href="/wp-content/themes/x/style.css">`, "WordPress"},
		{"shopify", `<script src="https://cdn.shopify.com/app.js"></script>`, "Shopify"},
		{"wix", `<meta name="generator" content="Wix.com Website Builder">`, "Wix"},
		{"nextjs", `<script src="/_next/static/chunks/main.js"></script>`, "React/Next.js"},
		{"drupal", `<meta name="Generator" content="Drupal 10">`, "Drupal"},
		{"unknown", `<html><body>plain page</body></html>`, "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectPlatform(tt.html))
		})
	}
}

func TestDetectPlatform_FirstSignatureWins(t *testing.T) {
	// WordPress is checked before Shopify
	html := `<link href="/wp-content/style.css"><script src="https://cdn.shopify.com/x.js"></script>`

	assert.Equal(t, "WordPress", DetectPlatform(html))
}
