package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanEmail(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"already clean", "info@acmecorp.com", "info@acmecorp.com"},
		{"mailto prefix", "mailto:info@acmecorp.com", "info@acmecorp.com"},
		{"markup remnants", "<b>info@acmecorp.com</b>", "info@acmecorp.com"},
		{"quote entities", "&quot;info@acmecorp.com&quot;", "info@acmecorp.com"},
		{"unicode escape remnants", "u003einfo@acmecorp.com", "info@acmecorp.com"},
		{"trailing bracket", "info@acmecorp.com]", "info@acmecorp.com"},
		{"wrapped in parens", "(info@acmecorp.com)", "info@acmecorp.com"},
		{"label prefix", "email: info@acmecorp.com", "info@acmecorp.com"},
		{"surrounding quotes", `"info@acmecorp.com"`, "info@acmecorp.com"},
		{"casing preserved", "Info@AcmeCorp.com", "Info@AcmeCorp.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanEmail(tt.input))
		})
	}
}

func TestCleanEmail_NothingEmailShaped(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"no at sign", "acmecorp.com"},
		{"at sign only", "@"},
		{"missing tld", "info@acmecorp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, "", CleanEmail(tt.input))
		})
	}
}
