package extractor

import "regexp"

// Blacklist and pattern tables used by email validation and scoring. They
// are data, not logic: extend the tables, not the matching engine.

// invalidUsernamePatterns reject local parts that look like artifacts of
// markup, tracking ids, or placeholders rather than mailboxes. The
// file-extension check appears both here (against the local part) and in
// invalidDomainPatterns (against the domain); the redundancy is kept on
// purpose, removing either changes observed filtering.
var invalidUsernamePatterns = []*regexp.Regexp{
	// File extensions in the local part
	regexp.MustCompile(`\.(png|jpg|jpeg|gif|svg|webp|ico|css|js|json|xml|pdf|doc|docx|xls|xlsx|zip|rar)$`),
	// Placeholder-word prefixes
	regexp.MustCompile(`^(example|test|demo|sample|placeholder|dummy|fake|mock|temp|temporary)`),
	// Numbers-only local part (4+ digits)
	regexp.MustCompile(`^[0-9]{4,}$`),
	// Very long number sequences (8+ consecutive digits)
	regexp.MustCompile(`[0-9]{8,}`),
	// Hash-like runs (tracking ids); the fixed lengths overlap the open
	// 16+ run and are kept as separate entries
	regexp.MustCompile(`^[a-f0-9]{16,}`),
	regexp.MustCompile(`^[a-f0-9]{24}`),
	regexp.MustCompile(`^[a-f0-9]{32}`),
	regexp.MustCompile(`^[a-f0-9]{40}`),
	// UUID shape
	regexp.MustCompile(`^[a-f0-9]{8}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{12}`),
	// Base64-like long runs
	regexp.MustCompile(`^[A-Za-z0-9+/]{20,}$`),
}

// trackingCompoundPattern spans the @ and is checked against the full
// lower-cased address
var trackingCompoundPattern = regexp.MustCompile(`^(tracking|monitor|analytics|metric|log|debug|error|crash|report).*@.*\.(sentry|bugsnag|rollbar|airbrake)`)

// invalidDomains are rejected by exact match
var invalidDomains = map[string]bool{
	// Placeholder domains
	"example.com": true, "example.org": true, "example.net": true,
	"test.com": true, "test.org": true, "test.net": true,
	"domain.com": true, "website.com": true, "site.com": true,
	"email.com": true, "mail.com": true, "mysite.com": true,
	"yoursite.com": true, "yourdomain.com": true, "mydomain.com": true,
	"company.com": true, "business.com": true, "sample.com": true,

	// System/tracking domains
	"localhost": true, "127.0.0.1": true, "local.com": true,
	"sentry.io": true, "tracking.com": true, "analytics.com": true,
	"google-analytics.com": true, "googletagmanager.com": true,
	"facebook.com": true, "twitter.com": true, "instagram.com": true,

	// Error-tracking vendors
	"sentry-next.wixpress.com": true, "sentry.wixpress.com": true,
	"bugsnag.com": true, "rollbar.com": true, "airbrake.io": true,
	"honeybadger.io": true, "raygun.com": true, "crashlytics.com": true,

	// No-reply style
	"noreply.com": true, "donotreply.com": true, "no-reply.com": true,

	// File-like domains
	"png.com": true, "jpg.com": true, "gif.com": true, "webp.com": true,
}

// invalidDomainPatterns are rejected by regex search against the domain
var invalidDomainPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\.(png|jpg|jpeg|gif|svg|webp|ico)$`),
	regexp.MustCompile(`^(example|test|demo|sample|placeholder|dummy|fake)`),
	regexp.MustCompile(`(localhost|127\.0\.0\.1)`),
	regexp.MustCompile(`sentry.*\.wixpress\.com$`),
	regexp.MustCompile(`.*\.sentry\.io$`),
	regexp.MustCompile(`.*\.(bugsnag|rollbar|airbrake|honeybadger|raygun|crashlytics)\.com$`),
}

// invalidUsernames reject local parts by exact match. Legitimate business
// mailboxes like support, info, and contact are deliberately absent.
var invalidUsernames = map[string]bool{
	"example": true, "test": true, "demo": true, "sample": true,
	"placeholder": true, "dummy": true, "fake": true,
	"user": true, "admin": true, "root": true, "guest": true,
	"anonymous": true, "unknown": true,
	"domain": true, "website": true, "site": true, "email": true, "mail": true,
	"noreply": true, "no-reply": true, "donotreply": true, "do-not-reply": true,
	"mailer-daemon": true, "postmaster": true, "bounce": true, "return": true,

	// System accounts
	"system": true, "daemon": true, "nobody": true, "www": true, "ftp": true,
	"apache": true, "nginx": true,
	"mysql": true, "postgres": true, "redis": true, "mongodb": true,

	// Marketing/tracking accounts
	"tracking": true, "analytics": true, "pixel": true, "tag": true, "monitor": true,
	"newsletter": true, "marketing": true,
	"promotion": true, "promo": true, "deals": true, "offer": true, "discount": true,
}

// suspiciousFullPatterns reject whole addresses that look templated
var suspiciousFullPatterns = []*regexp.Regexp{
	regexp.MustCompile(`@domain\.com$`),
	regexp.MustCompile(`@email\.com$`),
	regexp.MustCompile(`email@domain`),
	regexp.MustCompile(`user@domain`),
	regexp.MustCompile(`^[^@]+@[^@]+@`),
	regexp.MustCompile(`\.{2,}`),
	regexp.MustCompile(`[<>"\\\[\]]`),
}

// genericUsernames carry a scoring penalty but remain valid
var genericUsernames = map[string]bool{
	"info": true, "admin": true, "support": true, "contact": true,
	"help": true, "sales": true, "service": true,
	"team": true, "hello": true, "mail": true, "email": true,
	"newsletter": true, "webmaster": true,
}

// genericProviders are consumer mail domains; company domains score higher
var genericProviders = map[string]bool{
	"gmail.com": true, "yahoo.com": true, "hotmail.com": true, "outlook.com": true,
}

// businessLocalTokens add a score bonus when no priority rule matched
var businessLocalTokens = []string{"contact", "info", "sales", "support", "hello"}

// DefaultEmailPriority is the priority-rule list used when the caller
// supplies none
var DefaultEmailPriority = []string{"info@", "sales@", "@gmail.com"}
