// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

const (
	// MinRating and MaxRating bound the star rating of a casino.
	MinRating = 0
	MaxRating = 5
)

// Casino is a single review subject. The full record lives in
// casinos/<id>.json; a summary is kept in casinos/index.json.
type Casino struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	Slug           string       `json:"slug,omitempty"`
	Logo           string       `json:"logo,omitempty"`
	MinimumDeposit float64      `json:"minimumDeposit"`
	Rating         float64      `json:"rating"`
	AffiliateLink  string       `json:"affiliateLink"`
	Bonus          string       `json:"bonus"`
	PaymentMethods []string     `json:"paymentMethods"`
	Pros           []string     `json:"pros"`
	Cons           []string     `json:"cons"`
	Review         string       `json:"review,omitempty"`
	SEO            *SEOMetadata `json:"seo,omitempty"`
}

// CasinoSummary is the denormalized subset of a Casino stored in the index.
type CasinoSummary struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Slug           string  `json:"slug,omitempty"`
	Logo           string  `json:"logo,omitempty"`
	MinimumDeposit float64 `json:"minimumDeposit"`
	Rating         float64 `json:"rating"`
	AffiliateLink  string  `json:"affiliateLink"`
}

// Summary returns the index entry for the casino.
func (c *Casino) Summary() CasinoSummary {
	return CasinoSummary{
		ID:             c.ID,
		Name:           c.Name,
		Slug:           c.Slug,
		Logo:           c.Logo,
		MinimumDeposit: c.MinimumDeposit,
		Rating:         c.Rating,
		AffiliateLink:  c.AffiliateLink,
	}
}

// ClampRating limits a rating to [MinRating, MaxRating].
func ClampRating(r float64) float64 {
	switch {
	case r != r: // NaN
		return MinRating
	case r < MinRating:
		return MinRating
	case r > MaxRating:
		return MaxRating
	default:
		return r
	}
}
