package extractor

import "strings"

// platformSignature pairs a platform name with markup fragments that give
// it away; checked in order, first hit wins
type platformSignature struct {
	name    string
	markers []string
}

var platformSignatures = []platformSignature{
	{"WordPress", []string{"wp-content", "wordpress", "/wp-json/"}},
	{"Shopify", []string{"shopify", "cdn.shopify.com"}},
	{"Wix", []string{"wix.com", "_wix"}},
	{"Squarespace", []string{"squarespace", "squarespace.com"}},
	{"Webflow", []string{"webflow", "webflow.com"}},
	{"React/Next.js", []string{"react", "next.js", "_next/"}},
	{"Drupal", []string{"drupal"}},
	{"Joomla", []string{"joomla"}},
	{"Magento", []string{"magento", "mage/"}},
}

// DetectPlatform guesses the site platform from markup fragments
func DetectPlatform(pageHTML string) string {
	lower := strings.ToLower(pageHTML)

	for _, sig := range platformSignatures {
		for _, marker := range sig.markers {
			if strings.Contains(lower, marker) {
				return sig.name
			}
		}
	}

	return "Unknown"
}
