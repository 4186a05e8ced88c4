// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package content

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"strings"

	"casinoreviews/internal/models"
	"casinoreviews/internal/slug"
	"casinoreviews/internal/store"
)

const msgTitleRequired = "Title is required"

// PageInput holds raw page form values. A nil field was not submitted.
type PageInput struct {
	Title      *string
	Slug       *string
	IsHomepage *string
	Sections   *string // JSON array of sections
	SEO        *string // JSON object
}

// PageInputFromForm collects the page fields present in form.
func PageInputFromForm(form url.Values) PageInput {
	return PageInput{
		Title:      formField(form, "title"),
		Slug:       formField(form, "slug"),
		IsHomepage: formField(form, "isHomepage"),
		Sections:   formField(form, "sections"),
		SEO:        formField(form, "seo"),
	}
}

// newPage validates a create request and builds the page with a fresh ID.
func newPage(in PageInput) (*models.Page, error) {
	title := trimmed(in.Title)
	if title == "" {
		return nil, invalid(msgTitleRequired)
	}

	p := &models.Page{
		ID:         slug.MintID("page", title),
		Title:      title,
		IsHomepage: in.IsHomepage != nil && parseBool(*in.IsHomepage),
		Sections:   models.Sections{},
	}

	if in.Sections != nil {
		sections, err := parseSections(*in.Sections)
		if err != nil {
			return nil, err
		}
		p.Sections = sections
	}
	if in.SEO != nil {
		seo, err := parseSEO(*in.SEO)
		if err != nil {
			return nil, err
		}
		if !seo.IsZero() {
			p.SEO = seo
		}
	}

	p.Slug = pageSlug(trimmed(in.Slug), title)
	if p.Slug == "" {
		p.Slug = p.ID
	}
	return p, nil
}

// pageSlug derives a slug from the submitted slug, falling back to the title.
func pageSlug(raw, title string) string {
	if s := slug.Generate(raw); s != "" {
		return s
	}
	return slug.Generate(title)
}

// pagePatch validates an update request against the stored page.
func pagePatch(in PageInput, existing *models.Page) (store.PagePatch, error) {
	var p store.PagePatch

	title := existing.Title
	if in.Title != nil {
		title = strings.TrimSpace(*in.Title)
		if title == "" {
			return p, invalid(msgTitleRequired)
		}
		p.Title = &title
	}
	if in.Sections != nil {
		sections, err := parseSections(*in.Sections)
		if err != nil {
			return p, err
		}
		p.Sections = &sections
	}
	if in.SEO != nil {
		seo, err := parseSEO(*in.SEO)
		if err != nil {
			return p, err
		}
		p.SEO = seo
	}
	if in.IsHomepage != nil {
		p.IsHomepage = ptr(parseBool(*in.IsHomepage))
	}
	if in.Slug != nil {
		if s := pageSlug(*in.Slug, title); s != "" {
			p.Slug = &s
		}
	}
	return p, nil
}

// CreatePage validates in and persists a new page. A homepage flag moves the
// homepage to the new page.
func (s *Service) CreatePage(ctx context.Context, in PageInput) Result {
	p, err := newPage(in)
	if err != nil {
		return validationResult(err)
	}

	if err := s.pages.Create(p); err != nil {
		slog.Error("failed to create page", "title", p.Title, "error", err)
		return failed(StatusFailed, "Failed to create page")
	}

	slog.Info("page created", "id", p.ID, "slug", p.Slug, "homepage", p.IsHomepage)
	routes := append([]string{"/admin", "/"}, pageKeys(p.ID, p.Slug)...)
	if p.IsHomepage {
		routes = append(routes, s.pageRoutes()...)
	}
	s.invalidate(ctx, routes...)
	return succeeded("Page created successfully", p.ID)
}

// UpdatePage merges the submitted fields into an existing page. A changed
// slug renames the page file.
func (s *Service) UpdatePage(ctx context.Context, id string, in PageInput) Result {
	existing, err := s.pages.GetByID(id)
	if err != nil {
		slog.Error("failed to read page for update", "id", id, "error", err)
		return failed(StatusFailed, "Failed to update page")
	}
	if existing == nil {
		return failed(StatusNotFound, "Page not found")
	}
	oldSlug := existing.Slug

	patch, err := pagePatch(in, existing)
	if err != nil {
		return validationResult(err)
	}

	updated, err := s.pages.Update(id, patch)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return failed(StatusNotFound, "Page not found")
	case errors.Is(err, store.ErrSlugConflict):
		return failed(StatusConflict, "A page with this slug already exists")
	case err != nil:
		slog.Error("failed to update page", "id", id, "error", err)
		return failed(StatusFailed, "Failed to update page")
	}

	slog.Info("page updated", "id", id, "slug", updated.Slug, "homepage", updated.IsHomepage)
	routes := append([]string{"/admin", "/"}, pageKeys(id, updated.Slug)...)
	if oldSlug != updated.Slug {
		routes = append(routes, "/pages/"+oldSlug)
	}
	if updated.IsHomepage {
		routes = append(routes, s.pageRoutes()...)
	}
	s.invalidate(ctx, routes...)
	return succeeded("Page updated successfully", id)
}

// DeletePage removes a page. The homepage cannot be deleted.
func (s *Service) DeletePage(ctx context.Context, id string) Result {
	deleted, err := s.pages.Delete(id)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return failed(StatusNotFound, "Page not found")
	case errors.Is(err, store.ErrHomepageDelete):
		return failed(StatusConflict, "Cannot delete the homepage. Set another page as homepage first.")
	case err != nil:
		slog.Error("failed to delete page", "id", id, "error", err)
		return failed(StatusFailed, "Failed to delete page")
	}

	slog.Info("page deleted", "id", id, "slug", deleted.Slug)
	s.invalidate(ctx, append([]string{"/admin", "/"}, pageKeys(deleted.ID, deleted.Slug)...)...)
	return succeeded("Page deleted successfully", id)
}

// pageRoutes lists the routes of every indexed page. A homepage change flips
// the flag on other pages, so all of them are stale.
func (s *Service) pageRoutes() []string {
	index := s.ListPages()
	routes := make([]string, 0, 2*len(index))
	for _, entry := range index {
		routes = append(routes, pageKeys(entry.ID, entry.Slug)...)
	}
	return routes
}

// pageKeys returns the routes a page is reachable under. Pages resolve by
// slug and, as a fallback, by ID.
func pageKeys(id, pageSlug string) []string {
	routes := []string{"/pages/" + pageSlug}
	if id != "" && id != pageSlug {
		routes = append(routes, "/pages/"+id)
	}
	return routes
}
