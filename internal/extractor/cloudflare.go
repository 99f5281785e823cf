package extractor

import (
	"regexp"
	"strconv"
	"strings"
)

var cfEmailAttr = regexp.MustCompile(`(?i)data-cfemail="([a-f0-9]+)"`)

// DecodeCloudflareEmails decodes CloudFlare email-protection markup. The
// first hex byte is an XOR key; every following hex pair is XORed with it.
// Only printable ASCII survives, and a decode is kept only when it still
// looks like an address. Malformed candidates are skipped, never fatal.
func DecodeCloudflareEmails(pageHTML string) []string {
	var emails []string

	for _, m := range cfEmailAttr.FindAllStringSubmatch(pageHTML, -1) {
		if decoded, ok := decodeCfPayload(m[1]); ok {
			emails = append(emails, decoded)
		}
	}

	return emails
}

// decodeCfPayload decodes a single data-cfemail hex payload
func decodeCfPayload(encrypted string) (string, bool) {
	if len(encrypted) < 2 {
		return "", false
	}

	key, err := strconv.ParseUint(encrypted[:2], 16, 8)
	if err != nil {
		return "", false
	}

	payload := encrypted[2:]
	if len(payload)%2 != 0 {
		return "", false
	}

	var decoded strings.Builder
	for i := 0; i < len(payload); i += 2 {
		b, err := strconv.ParseUint(payload[i:i+2], 16, 8)
		if err != nil {
			return "", false
		}
		ch := byte(b) ^ byte(key)
		if ch >= 32 && ch <= 126 {
			decoded.WriteByte(ch)
		}
	}

	email := decoded.String()
	if !strings.Contains(email, "@") || !strings.Contains(email, ".") {
		return "", false
	}
	return email, true
}
