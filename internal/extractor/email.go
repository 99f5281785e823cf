package extractor

import (
	"html"
	"regexp"
	"sort"
	"strings"
)

// emailPattern matches email-shaped substrings: alphanumeric local part
// with interior ._%- (must start/end alphanumeric), domain with interior
// .- and a final label of 2+ letters.
var emailPattern = regexp.MustCompile(`\b[a-zA-Z0-9](?:[a-zA-Z0-9._%-]*[a-zA-Z0-9])?@[a-zA-Z0-9](?:[a-zA-Z0-9.-]*[a-zA-Z0-9])?\.[a-zA-Z]{2,}\b`)

// strictEmailPattern is the whole-string variant used by validation
var strictEmailPattern = regexp.MustCompile(`^[a-zA-Z0-9](?:[a-zA-Z0-9._%-]*[a-zA-Z0-9])?@[a-zA-Z0-9](?:[a-zA-Z0-9.-]*[a-zA-Z0-9])?\.[a-zA-Z]{2,}$`)

var (
	atMarker     = regexp.MustCompile(`(?i)(\[at\]|\(at\))`)
	dotMarker    = regexp.MustCompile(`(?i)(\[dot\]|\(dot\))`)
	spacedAt     = regexp.MustCompile(`(\w+)\s{1,2}@\s{1,2}(\w+(?:\.\w+)*)`)
	spacedDot    = regexp.MustCompile(`(\w+@\w+)\s{1,2}\.\s{1,2}(\w+)`)
	tagSplit     = regexp.MustCompile(`([a-zA-Z0-9._%-]+)</[^>]+>@<[^>]+>([a-zA-Z0-9.-]+\.[a-zA-Z]{2,})`)
	nestedTags   = regexp.MustCompile(`<[^>]*>([a-zA-Z0-9._%-]*)</[^>]*>([&#@.]*)<[^>]*>([a-zA-Z0-9._%-]*)</[^>]*>([&#@.]*)<[^>]*>([a-zA-Z0-9._%-]*)</[^>]*>`)
	jsConcat     = regexp.MustCompile(`"([a-zA-Z0-9._%-]+)"\s*\+\s*"@"\s*\+\s*"([a-zA-Z0-9.-]+\.[a-zA-Z]{2,})"`)
	mailtoPrefix = regexp.MustCompile(`^mailto:`)
	wrapperChars = regexp.MustCompile(`[<>"']`)
)

// attrPatterns are attribute-style hiding spots whose captured value is
// appended to the working text when it contains an @
var attrPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)placeholder=["']([^"']*@[^"']*)["']`),
	regexp.MustCompile(`(?i)value=["']([^"']*@[^"']*)["']`),
	regexp.MustCompile(`(?i)data-email=["']([^"']*@[^"']*)["']`),
	regexp.MustCompile(`(?i)data-contact=["']([^"']*@[^"']*)["']`),
}

// jsonPatterns cover JSON-LD structured data and JavaScript object literals
var jsonPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)"email"\s*:\s*"([^"]*@[^"]*)"`),
	regexp.MustCompile(`(?i)"contactPoint"\s*:.*?"email"\s*:\s*"([^"]*@[^"]*)"`),
	regexp.MustCompile(`(?i)email\s*=\s*["']([^"']*@[^"']*)["']`),
}

// EmailExtractor normalizes obfuscated markup and pulls out candidate
// emails: deduplicated, cleaned, validated, scored and ranked.
type EmailExtractor struct {
	maxEmails int
}

// NewEmailExtractor creates an extractor returning at most maxEmails results
func NewEmailExtractor(maxEmails int) *EmailExtractor {
	return &EmailExtractor{maxEmails: maxEmails}
}

// scoredEmail pairs a candidate with its rank score during sorting
type scoredEmail struct {
	email string
	score int
}

// Extract runs the full pipeline over raw page markup and returns the top
// candidates, highest score first. priority may be nil for the default
// rule list.
func (e *EmailExtractor) Extract(pageHTML string, priority []string) []string {
	text := normalizeObfuscation(pageHTML)

	candidates := dedupeCandidates(emailPattern.FindAllString(text, -1))

	valid := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		cleaned := CleanEmail(candidate)
		if cleaned == "" {
			continue
		}
		if IsValidBusinessEmail(cleaned) {
			valid = append(valid, cleaned)
		}
	}

	scored := make([]scoredEmail, len(valid))
	for i, email := range valid {
		scored[i] = scoredEmail{email: email, score: ScoreEmail(email, priority)}
	}
	// Stable: earlier-found email wins score ties
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	limit := e.maxEmails
	if limit > len(scored) {
		limit = len(scored)
	}
	result := make([]string, 0, limit)
	for _, s := range scored[:limit] {
		result = append(result, s.email)
	}
	return result
}

// normalizeObfuscation composes the text-rewriting transforms in their
// fixed order. Each step is a pure string->string function; later steps
// see the output of earlier ones.
func normalizeObfuscation(text string) string {
	text = decodeEntities(text)
	text = replaceObfuscationMarkers(text)
	text = collapseSpacedEmails(text)
	text = reassembleSplitEmails(text)
	text = appendConcatenatedEmails(text)
	text = appendAttributeEmails(text)
	text = appendCloudflareEmails(text)
	return text
}

// decodeEntities resolves named and numeric HTML/XML character entities
func decodeEntities(text string) string {
	text = html.UnescapeString(text)
	// Non-standard entities some templates emit
	text = strings.ReplaceAll(text, "&at;", "@")
	text = strings.ReplaceAll(text, "&dot;", ".")
	return text
}

// replaceObfuscationMarkers rewrites [at]/(at) and [dot]/(dot)
func replaceObfuscationMarkers(text string) string {
	text = atMarker.ReplaceAllString(text, "@")
	text = dotMarker.ReplaceAllString(text, ".")
	return text
}

// collapseSpacedEmails squashes "user @ domain . com" style spacing
func collapseSpacedEmails(text string) string {
	text = spacedAt.ReplaceAllString(text, "$1@$2")
	text = spacedDot.ReplaceAllString(text, "$1.$2")
	return text
}

// reassembleSplitEmails joins emails split across inline markup, e.g.
// <span>user</span>@<span>domain.com</span>, and collapses the 3-segment
// nested-tag form into its text segments
func reassembleSplitEmails(text string) string {
	text = tagSplit.ReplaceAllString(text, "$1@$2")
	text = nestedTags.ReplaceAllString(text, "$1$2$3$4$5")
	return text
}

// appendConcatenatedEmails reconstructs "local" + "@" + "domain" string
// concatenation and appends the result; the original text is kept
func appendConcatenatedEmails(text string) string {
	var extra strings.Builder
	for _, m := range jsConcat.FindAllStringSubmatch(text, -1) {
		extra.WriteString(" " + m[1] + "@" + m[2] + " ")
	}
	return text + extra.String()
}

// appendAttributeEmails mines attribute values and JSON-style email fields
// and appends any @-containing capture
func appendAttributeEmails(text string) string {
	var extra strings.Builder
	for _, pattern := range attrPatterns {
		for _, m := range pattern.FindAllStringSubmatch(text, -1) {
			extra.WriteString(" " + m[1] + " ")
		}
	}
	for _, pattern := range jsonPatterns {
		for _, m := range pattern.FindAllStringSubmatch(text, -1) {
			extra.WriteString(" " + m[1] + " ")
		}
	}
	return text + extra.String()
}

// appendCloudflareEmails appends every decodable data-cfemail address
func appendCloudflareEmails(text string) string {
	var extra strings.Builder
	for _, email := range DecodeCloudflareEmails(text) {
		extra.WriteString(" " + email + " ")
	}
	return text + extra.String()
}

// dedupeCandidates removes case-insensitive duplicates after stripping a
// mailto: prefix and wrapper characters, preserving first-seen casing and
// order
func dedupeCandidates(matches []string) []string {
	seen := make(map[string]bool, len(matches))
	unique := make([]string, 0, len(matches))
	for _, email := range matches {
		normalized := strings.ToLower(strings.TrimSpace(email))
		normalized = mailtoPrefix.ReplaceAllString(normalized, "")
		normalized = wrapperChars.ReplaceAllString(normalized, "")
		if normalized == "" || seen[normalized] {
			continue
		}
		seen[normalized] = true
		unique = append(unique, email)
	}
	return unique
}
