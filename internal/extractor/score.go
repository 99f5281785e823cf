package extractor

import (
	"regexp"
	"strings"
)

var (
	trailingDigits = regexp.MustCompile(`\d{3,}$`)
	firstDotLast   = regexp.MustCompile(`^[a-z]+\.[a-z]+$`)
)

// ScoreEmail rates a validated candidate. The caller-supplied priority
// rules are consulted first: a rule ending in "@" matches the local part
// by prefix, a rule starting with "@" matches the domain by suffix, and
// anything else matches as a substring of the full address. Only the
// first matching rule counts, earlier rules paying more.
func ScoreEmail(email string, priority []string) int {
	if priority == nil {
		priority = DefaultEmailPriority
	}

	score := 100
	lower := strings.ToLower(email)
	username, domain, _ := strings.Cut(lower, "@")

	priorityBonus := 0
	for i, rule := range priority {
		switch {
		case strings.HasPrefix(rule, "@"):
			suffix := rule[1:]
			if domain == suffix || strings.HasSuffix(domain, rule) {
				priorityBonus = 100 - i*10
			}
		case strings.HasSuffix(rule, "@"):
			prefix := rule[:len(rule)-1]
			if username == prefix || strings.HasPrefix(username, prefix) {
				priorityBonus = 100 - i*10
			}
		default:
			if strings.Contains(lower, rule) {
				priorityBonus = 100 - i*10
			}
		}
		if priorityBonus != 0 {
			break
		}
	}
	score += priorityBonus

	if genericUsernames[username] {
		score -= 20
	}

	if trailingDigits.MatchString(username) {
		score -= 10
	}

	// firstname.lastname shapes are usually a real person
	if firstDotLast.MatchString(username) && len(username) > 3 {
		score += 30
	}

	if !genericProviders[domain] {
		score += 25
	}

	if priorityBonus == 0 {
		for _, token := range businessLocalTokens {
			if strings.Contains(username, token) {
				score += 15
				break
			}
		}
	}

	return score
}
