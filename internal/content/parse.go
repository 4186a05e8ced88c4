package content

import (
	"encoding/json"
	"math"
	"net/url"
	"strconv"
	"strings"

	"casinoreviews/internal/models"
)

// formField returns a pointer to the first value of key, or nil when the
// form does not carry the key at all.
func formField(form url.Values, key string) *string {
	vals, ok := form[key]
	if !ok {
		return nil
	}
	v := ""
	if len(vals) > 0 {
		v = vals[0]
	}
	return &v
}

// parseNumber parses a decimal form value. Unparsable, NaN, and infinite
// values become 0.
func parseNumber(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// parseDeposit parses a minimum deposit, which is never negative.
func parseDeposit(s string) float64 {
	return math.Max(parseNumber(s), 0)
}

func parseRating(s string) float64 {
	return models.ClampRating(parseNumber(s))
}

// parseBool accepts the values HTML checkboxes and JSON clients send.
func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "on", "1", "yes":
		return true
	}
	return false
}

// splitList splits s on sep, trims every item, and drops empty ones.
func splitList(s, sep string) []string {
	out := []string{}
	for _, item := range strings.Split(s, sep) {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// parseSEO decodes an embedded SEO JSON object. Blank input yields an empty
// value.
func parseSEO(raw string) (*models.SEOMetadata, error) {
	seo := &models.SEOMetadata{}
	if strings.TrimSpace(raw) == "" {
		return seo, nil
	}
	if err := json.Unmarshal([]byte(raw), seo); err != nil {
		return nil, invalid("Invalid SEO data")
	}
	return seo, nil
}

// parseSections decodes an embedded sections JSON array. Blank input yields
// no sections.
func parseSections(raw string) (models.Sections, error) {
	if strings.TrimSpace(raw) == "" {
		return models.Sections{}, nil
	}
	var sections models.Sections
	if err := json.Unmarshal([]byte(raw), &sections); err != nil {
		return nil, invalid("Invalid sections data")
	}
	if sections == nil {
		sections = models.Sections{}
	}
	return sections, nil
}

func trimmed(p *string) string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(*p)
}

func ptr[T any](v T) *T { return &v }
