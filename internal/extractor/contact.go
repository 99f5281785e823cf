package extractor

import (
	"strings"

	"Website_Analysis/internal/models"

	"github.com/PuerkitoBio/goquery"
)

// contactKeywords mark a link text as contact-related
var contactKeywords = []string{
	"contact", "contact us", "contact-us", "get in touch", "reach out",
	"connect", "inquiry", "support", "help",
}

// skipHrefFragments exclude non-navigable or non-page links
var skipHrefFragments = []string{"mailto:", "tel:", "javascript:", "#"}

// ExtractContactPages discovers contact-like links in page anchors.
// Relative hrefs are made absolute against baseURL; duplicates are
// collapsed on the trailing-slash-normalized URL, discovery order kept.
func ExtractContactPages(pageHTML, baseURL string) []models.ContactPage {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return nil
	}

	seen := make(map[string]bool)
	var pages []models.ContactPage

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		text := strings.TrimSpace(sel.Text())

		if href == "" || !isContactLink(href, text) {
			return
		}
		for _, fragment := range skipHrefFragments {
			if strings.Contains(href, fragment) {
				return
			}
		}

		fullURL := absolutize(href, baseURL)
		normalized := strings.TrimRight(fullURL, "/")
		if seen[normalized] {
			return
		}
		seen[normalized] = true

		pages = append(pages, models.ContactPage{URL: fullURL, LinkText: text})
	})

	return pages
}

// isContactLink checks the href and the link text for contact signals
func isContactLink(href, text string) bool {
	if strings.Contains(strings.ToLower(href), "contact") {
		return true
	}
	textLower := strings.ToLower(text)
	for _, keyword := range contactKeywords {
		if strings.Contains(textLower, keyword) {
			return true
		}
	}
	return false
}

// absolutize resolves a possibly-relative href against the page base URL
func absolutize(href, baseURL string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	base := strings.TrimRight(baseURL, "/")
	if strings.HasPrefix(href, "/") {
		return base + href
	}
	return base + "/" + href
}
