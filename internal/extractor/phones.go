package extractor

import (
	"regexp"
	"strings"
)

var (
	phonePattern    = regexp.MustCompile(`(?:\+?1[-.\s]?)?\(?([0-9]{3})\)?[-.\s]?([0-9]{3})[-.\s]?([0-9]{4})|(?:\+[1-9]\d{0,3}[-.\s]?)?(?:\([0-9]{1,4}\)[-.\s]?)?[0-9]{1,4}[-.\s]?[0-9]{1,9}`)
	nonPhoneChars   = regexp.MustCompile(`[^\d+]`)
	sequentialRun   = "1234567890"
)

// ExtractPhones pulls phone numbers out of raw markup and returns at most
// maxPhones of them, digit-joined, first seen first.
func ExtractPhones(pageHTML string, maxPhones int) []string {
	seen := make(map[string]bool)
	var phones []string

	for _, m := range phonePattern.FindAllStringSubmatch(pageHTML, -1) {
		phone := m[1] + m[2] + m[3]
		if phone == "" {
			continue
		}

		clean := nonPhoneChars.ReplaceAllString(phone, "")
		if len(clean) < 10 || len(clean) > 15 {
			continue
		}
		if strings.Contains(clean, sequentialRun) || allSameDigit(clean) {
			continue
		}

		if !seen[phone] {
			seen[phone] = true
			phones = append(phones, phone)
		}
		if len(phones) >= maxPhones {
			break
		}
	}

	return phones
}

// allSameDigit reports whether every digit in the string is identical
func allSameDigit(digits string) bool {
	if len(digits) < 2 {
		return false
	}
	first := digits[0]
	for i := 1; i < len(digits); i++ {
		if digits[i] != first {
			return false
		}
	}
	return true
}
