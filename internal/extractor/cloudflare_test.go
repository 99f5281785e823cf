package extractor

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeCloudflareEmails_RoundTrip(t *testing.T) {
	payload := cfEncode("hello@acmewidgets.com", 0x7f)
	html := fmt.Sprintf(`<a data-cfemail="%s">[email protected]</a>`, payload)

	emails := DecodeCloudflareEmails(html)

	require.Len(t, emails, 1)
	assert.Equal(t, "hello@acmewidgets.com", emails[0])
}

func TestDecodeCloudflareEmails_MultipleAttributes(t *testing.T) {
	html := fmt.Sprintf(`<span data-cfemail="%s"></span><span data-cfemail="%s"></span>`,
		cfEncode("one@acmecorp.com", 0x11), cfEncode("two@acmecorp.com", 0x42))

	emails := DecodeCloudflareEmails(html)

	assert.Equal(t, []string{"one@acmecorp.com", "two@acmecorp.com"}, emails)
}

func TestDecodeCloudflareEmails_MalformedPayloads(t *testing.T) {
	tests := []struct {
		name string
		html string
	}{
		{"odd length payload", `<a data-cfemail="5a123"></a>`},
		{"key only", `<a data-cfemail="5a"></a>`},
		{"single char", `<a data-cfemail="5"></a>`},
		{"decodes to non-email", fmt.Sprintf(`<a data-cfemail="%s"></a>`, cfEncode("notanemail", 0x33))},
		{"no attribute", `<a href="mailto:x@y.com"></a>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, DecodeCloudflareEmails(tt.html))
		})
	}
}

func TestDecodeCloudflareEmails_SkipsBadKeepsGood(t *testing.T) {
	// A malformed payload never aborts the scan
	html := fmt.Sprintf(`<a data-cfemail="abc"></a><a data-cfemail="%s"></a>`,
		cfEncode("ok@acmecorp.com", 0x2e))

	emails := DecodeCloudflareEmails(html)

	assert.Equal(t, []string{"ok@acmecorp.com"}, emails)
}
