package extractor

import (
	"regexp"
	"strings"
)

var (
	unicodeEscapeRemnant = regexp.MustCompile(`u[0-9a-fA-F]{4}`)
	markupTag            = regexp.MustCompile(`<[^>]+>`)
)

// noiseTokens are leading/trailing fragments that glue themselves to
// addresses in scraped markup
var noiseTokens = []string{
	"mailto:", "email:", "contact:", "send:", "write:",
	"u003e", "u003c", "%3e", "%3c",
	">", "<", "]", "[", ")", "(",
}

// quoteEntities are entity spellings of quote characters
var quoteEntities = []string{"&lt;", "&gt;", "&quot;", "&#34;", "&apos;", "&#39;"}

// CleanEmail strips markup remnants and noise tokens from a candidate and
// re-extracts the first email-shaped substring. Returns "" when nothing
// email-shaped remains.
func CleanEmail(email string) string {
	if email == "" || !strings.Contains(email, "@") {
		return ""
	}

	email = strings.TrimSpace(email)

	// Unicode escape remnants like u003e left by JS string literals
	email = unicodeEscapeRemnant.ReplaceAllString(email, "")

	email = markupTag.ReplaceAllString(email, "")
	for _, entity := range quoteEntities {
		email = strings.ReplaceAll(email, entity, "")
	}

	email = strings.Trim(email, `'"`)

	for _, token := range noiseTokens {
		lower := strings.ToLower(email)
		if strings.HasPrefix(lower, token) {
			email = strings.TrimSpace(email[len(token):])
			lower = strings.ToLower(email)
		}
		if strings.HasSuffix(lower, token) {
			email = strings.TrimSpace(email[:len(email)-len(token)])
		}
	}

	// Discard any leftover non-email text glued to the address
	match := emailPattern.FindString(email)
	if match == "" {
		return ""
	}

	return strings.TrimSpace(match)
}
