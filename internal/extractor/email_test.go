package extractor

import (
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmailExtractor_PlainEmails(t *testing.T) {
	extractor := NewEmailExtractor(5)

	emails := extractor.Extract("Contact us at info@realcompany.com or tracking@sentry.io", nil)

	assert.Equal(t, []string{"info@realcompany.com"}, emails)
}

func TestEmailExtractor_MaxResults(t *testing.T) {
	extractor := NewEmailExtractor(5)

	html := "alice@acmecorp.com bob@acmecorp.com carol@acmecorp.com dave@acmecorp.com " +
		"erin@acmecorp.com frank@acmecorp.com grace@acmecorp.com"

	emails := extractor.Extract(html, nil)

	assert.Len(t, emails, 5)
}

func TestEmailExtractor_Deduplication(t *testing.T) {
	extractor := NewEmailExtractor(5)

	emails := extractor.Extract("Write to Info@X.com or info@x.com today", nil)

	require.Len(t, emails, 1)
	assert.True(t, strings.EqualFold("info@x.com", emails[0]))
}

func TestEmailExtractor_ObfuscationMarkers(t *testing.T) {
	extractor := NewEmailExtractor(5)

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bracket markers", "sales[at]acmecorp[dot]com", "sales@acmecorp.com"},
		{"paren markers", "sales(at)acmecorp(dot)com", "sales@acmecorp.com"},
		{"mixed case markers", "sales[AT]acmecorp[DOT]com", "sales@acmecorp.com"},
		{"spaced address", "reach us: sales @ acmecorp.com", "sales@acmecorp.com"},
		{"entity encoded", "sales&#64;acmecorp.com", "sales@acmecorp.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			emails := extractor.Extract(tt.input, nil)
			assert.Equal(t, []string{tt.want}, emails)
		})
	}
}

func TestEmailExtractor_SplitAcrossTags(t *testing.T) {
	extractor := NewEmailExtractor(5)

	emails := extractor.Extract(`<p><span>hello</span>@<span>acmewidgets.com</span></p>`, nil)

	assert.Equal(t, []string{"hello@acmewidgets.com"}, emails)
}

func TestEmailExtractor_SplitAcrossTags_BlacklistedDomain(t *testing.T) {
	extractor := NewEmailExtractor(5)

	emails := extractor.Extract(`<span>info</span>@<span>example.org</span>`, nil)

	assert.Empty(t, emails)
}

func TestEmailExtractor_JSConcatenation(t *testing.T) {
	extractor := NewEmailExtractor(5)

	emails := extractor.Extract(`var e = "owner" + "@" + "acmewidgets.com";`, nil)

	assert.Equal(t, []string{"owner@acmewidgets.com"}, emails)
}

func TestEmailExtractor_MailtoLink(t *testing.T) {
	extractor := NewEmailExtractor(5)

	emails := extractor.Extract(`<a href="mailto:support@acmewidgets.com">Email us</a>`, nil)

	assert.Equal(t, []string{"support@acmewidgets.com"}, emails)
}

func TestEmailExtractor_AttributeValues(t *testing.T) {
	extractor := NewEmailExtractor(5)

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"placeholder attribute", `<input placeholder="hello@acmewidgets.com">`, "hello@acmewidgets.com"},
		{"data-email attribute", `<div data-email="hello@acmewidgets.com"></div>`, "hello@acmewidgets.com"},
		{"json-ld email field", `{"email": "hello@acmewidgets.com"}`, "hello@acmewidgets.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			emails := extractor.Extract(tt.input, nil)
			assert.Equal(t, []string{tt.want}, emails)
		})
	}
}

func TestEmailExtractor_CloudflareRoundTrip(t *testing.T) {
	extractor := NewEmailExtractor(5)

	for _, key := range []byte{0x23, 0x5a, 0xab} {
		t.Run(fmt.Sprintf("key_%02x", key), func(t *testing.T) {
			payload := cfEncode("contact@acmewidgets.com", key)
			html := fmt.Sprintf(`<a href="/cdn-cgi/l/email-protection" data-cfemail="%s"></a>`, payload)

			emails := extractor.Extract(html, nil)

			assert.Equal(t, []string{"contact@acmewidgets.com"}, emails)
		})
	}
}

func TestEmailExtractor_PriorityOrdering(t *testing.T) {
	extractor := NewEmailExtractor(5)

	// Default rules prefer sales@ over an unmatched local part
	emails := extractor.Extract("bob@acmecorp.com sales@acmecorp.com", nil)

	require.Len(t, emails, 2)
	assert.Equal(t, "sales@acmecorp.com", emails[0])
}

func TestEmailExtractor_CustomPriorityRules(t *testing.T) {
	extractor := NewEmailExtractor(5)

	emails := extractor.Extract("sales@acmecorp.com bob@acmecorp.com", []string{"bob@"})

	require.Len(t, emails, 2)
	assert.Equal(t, "bob@acmecorp.com", emails[0])
}

func TestEmailExtractor_Idempotence(t *testing.T) {
	extractor := NewEmailExtractor(5)

	html := `Contact sales[at]acmecorp[dot]com, <span>hello</span>@<span>acmewidgets.com</span>,
		or john.doe@acmecorp.com directly.`

	first := extractor.Extract(html, nil)
	require.NotEmpty(t, first)

	second := extractor.Extract(strings.Join(first, " "), nil)

	sortedFirst := append([]string(nil), first...)
	sortedSecond := append([]string(nil), second...)
	sort.Strings(sortedFirst)
	sort.Strings(sortedSecond)

	assert.Equal(t, sortedFirst, sortedSecond)
}

func TestEmailExtractor_NoEmails(t *testing.T) {
	extractor := NewEmailExtractor(5)

	emails := extractor.Extract("<html><body>Just a page with no contacts.</body></html>", nil)

	assert.Empty(t, emails)
}

// cfEncode builds a data-cfemail payload: key byte in hex, then each
// address byte XORed with the key
func cfEncode(email string, key byte) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%02x", key)
	for i := 0; i < len(email); i++ {
		fmt.Fprintf(&b, "%02x", email[i]^key)
	}
	return b.String()
}
