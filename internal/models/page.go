// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// HomeSlug is the slug of the synthetic homepage written when the
// pages index does not exist yet.
const HomeSlug = "home"

// Page is a composable content page. The full record lives in
// pages/<slug>.json; a summary is kept in pages/index.json.
type Page struct {
	ID         string       `json:"id"`
	Title      string       `json:"title"`
	Slug       string       `json:"slug"`
	IsHomepage bool         `json:"isHomepage"`
	Sections   Sections     `json:"sections"`
	SEO        *SEOMetadata `json:"seo,omitempty"`
}

// PageSummary is the denormalized subset of a Page stored in the index.
type PageSummary struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Slug       string `json:"slug"`
	IsHomepage bool   `json:"isHomepage"`
}

// Summary returns the index entry for the page.
func (p *Page) Summary() PageSummary {
	return PageSummary{
		ID:         p.ID,
		Title:      p.Title,
		Slug:       p.Slug,
		IsHomepage: p.IsHomepage,
	}
}

// PageFromSummary builds a section-less page from an index entry. Used when
// the index references a page whose file is missing.
func PageFromSummary(s PageSummary) *Page {
	return &Page{
		ID:         s.ID,
		Title:      s.Title,
		Slug:       s.Slug,
		IsHomepage: s.IsHomepage,
		Sections:   Sections{},
	}
}

// DefaultPageIndex is written when pages/index.json is missing.
func DefaultPageIndex() []PageSummary {
	return []PageSummary{{ID: HomeSlug, Title: "Home", Slug: HomeSlug, IsHomepage: true}}
}

// DefaultHomePage is written when the homepage file is missing.
func DefaultHomePage() *Page {
	return &Page{
		ID:         HomeSlug,
		Title:      "Home",
		Slug:       HomeSlug,
		IsHomepage: true,
		Sections: Sections{
			&TextSection{
				Title:   "Welcome to Casino Reviews",
				Content: "<p>Find the best online casinos with detailed reviews, ratings, and comparisons.</p>",
			},
		},
	}
}
