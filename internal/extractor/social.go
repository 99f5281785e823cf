package extractor

import "regexp"

// socialPatterns maps platform name to its profile-URL shape
var socialPatterns = map[string]*regexp.Regexp{
	"facebook":  regexp.MustCompile(`(?i)https?://(?:www\.)?(?:facebook\.com|fb\.com)/[a-zA-Z0-9._-]+`),
	"twitter":   regexp.MustCompile(`(?i)https?://(?:www\.)?(?:twitter\.com|x\.com)/[a-zA-Z0-9._-]+`),
	"linkedin":  regexp.MustCompile(`(?i)https?://(?:www\.)?linkedin\.com/(?:in|company)/[a-zA-Z0-9._-]+`),
	"instagram": regexp.MustCompile(`(?i)https?://(?:www\.)?instagram\.com/[a-zA-Z0-9._-]+`),
	"youtube":   regexp.MustCompile(`(?i)https?://(?:www\.)?(?:youtube\.com/(?:channel/|user/|c/)?|youtu\.be/)[a-zA-Z0-9._-]+`),
	"pinterest": regexp.MustCompile(`(?i)https?://(?:www\.)?pinterest\.com/[a-zA-Z0-9._-]+`),
	"tiktok":    regexp.MustCompile(`(?i)https?://(?:www\.)?tiktok\.com/@[a-zA-Z0-9._-]+`),
	"whatsapp":  regexp.MustCompile(`(?i)https?://(?:wa\.me|api\.whatsapp\.com)/[0-9]+`),
}

// ExtractSocialLinks finds social profile URLs per platform, deduplicated
// in first-seen order. Every known platform gets a key, possibly empty.
func ExtractSocialLinks(pageHTML string) map[string][]string {
	links := make(map[string][]string, len(socialPatterns))

	for platform, pattern := range socialPatterns {
		seen := make(map[string]bool)
		var urls []string
		for _, match := range pattern.FindAllString(pageHTML, -1) {
			if !seen[match] {
				seen[match] = true
				urls = append(urls, match)
			}
		}
		links[platform] = urls
	}

	return links
}
