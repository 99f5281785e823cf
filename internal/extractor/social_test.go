package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractSocialLinks(t *testing.T) {
	html := `
		<a href="https://facebook.com/acmecorp">Facebook</a>
		<a href="https://www.twitter.com/acmecorp">Twitter</a>
		<a href="https://linkedin.com/company/acmecorp">LinkedIn</a>
		<a href="https://www.instagram.com/acmecorp">Instagram</a>
		<a href="https://tiktok.com/@acmecorp">TikTok</a>
	`

	links := ExtractSocialLinks(html)

	// Every platform has a key, matched or not
	assert.Len(t, links, len(socialPatterns))

	assert.Equal(t, []string{"https://facebook.com/acmecorp"}, links["facebook"])
	assert.Equal(t, []string{"https://www.twitter.com/acmecorp"}, links["twitter"])
	assert.Equal(t, []string{"https://linkedin.com/company/acmecorp"}, links["linkedin"])
	assert.Equal(t, []string{"https://www.instagram.com/acmecorp"}, links["instagram"])
	assert.Equal(t, []string{"https://tiktok.com/@acmecorp"}, links["tiktok"])
	assert.Empty(t, links["youtube"])
	assert.Empty(t, links["pinterest"])
	assert.Empty(t, links["whatsapp"])
}

func TestExtractSocialLinks_Deduplication(t *testing.T) {
	html := `
		<a href="https://facebook.com/acmecorp">header</a>
		<a href="https://facebook.com/acmecorp">footer</a>
	`

	links := ExtractSocialLinks(html)

	assert.Equal(t, []string{"https://facebook.com/acmecorp"}, links["facebook"])
}

func TestExtractSocialLinks_TikTokRequiresHandle(t *testing.T) {
	links := ExtractSocialLinks(`<a href="https://tiktok.com/trending">not a profile</a>`)

	assert.Empty(t, links["tiktok"])
}
