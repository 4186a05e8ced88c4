package handlers

import (
	"fmt"
	"net/url"
	"unicode/utf8"
)

// fieldLimit caps the length of one submitted field.
type fieldLimit struct {
	key   string
	label string
	max   int
}

// Checked in order; the first violation is reported.
var (
	casinoLimits = []fieldLimit{
		{"name", "Name", 200},
		{"slug", "Slug", 200},
		{"logo", "Logo", 2_048},
		{"affiliateLink", "Affiliate link", 2_048},
		{"bonus", "Bonus", 1_000},
		{"paymentMethods", "Payment methods", 2_000},
		{"pros", "Pros", 10_000},
		{"cons", "Cons", 10_000},
		{"review", "Review", 100_000},
		{"seo", "SEO data", 10_000},
	}
	pageLimits = []fieldLimit{
		{"title", "Title", 300},
		{"slug", "Slug", 200},
		{"seo", "SEO data", 10_000},
		{"sections", "Sections", 1_000_000},
	}
)

// validateLengths returns the first over-long field message, or "".
func validateLengths(form url.Values, limits []fieldLimit) string {
	for _, l := range limits {
		if n := utf8.RuneCountInString(form.Get(l.key)); n > l.max {
			return fmt.Sprintf("%s is too long (max %s characters)", l.label, groupThousands(l.max))
		}
	}
	return ""
}

// groupThousands formats n with comma separators.
func groupThousands(n int) string {
	s := fmt.Sprint(n)
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	return s
}
