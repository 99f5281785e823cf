package extractor

import (
	"strings"
)

// IsValidBusinessEmail reports whether a cleaned candidate looks like a
// real business mailbox rather than a placeholder, tracking artifact, or
// templated address. Checks run on a lower-cased copy; callers keep the
// original casing.
func IsValidBusinessEmail(email string) bool {
	if email == "" || !strings.Contains(email, "@") {
		return false
	}

	lower := strings.ToLower(strings.TrimSpace(email))

	if len(lower) < 5 || len(lower) > 100 {
		return false
	}

	if !strictEmailPattern.MatchString(lower) {
		return false
	}

	username, domain, _ := strings.Cut(lower, "@")

	for _, pattern := range invalidUsernamePatterns {
		if pattern.MatchString(username) {
			return false
		}
	}

	if trackingCompoundPattern.MatchString(lower) {
		return false
	}

	if invalidDomains[domain] {
		return false
	}

	for _, pattern := range invalidDomainPatterns {
		if pattern.MatchString(domain) {
			return false
		}
	}

	if invalidUsernames[username] {
		return false
	}

	for _, pattern := range suspiciousFullPatterns {
		if pattern.MatchString(lower) {
			return false
		}
	}

	return true
}
