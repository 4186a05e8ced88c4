// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"casinoreviews/internal/models"
)

// PagePatch carries the fields of a partial page update. Nil fields are left
// unchanged.
type PagePatch struct {
	Title      *string
	Slug       *string
	IsHomepage *bool
	Sections   *models.Sections
	SEO        *models.SEOMetadata
}

// Apply merges the patch into p.
func (pp PagePatch) Apply(p *models.Page) {
	if pp.Title != nil {
		p.Title = *pp.Title
	}
	if pp.Slug != nil {
		p.Slug = *pp.Slug
	}
	if pp.IsHomepage != nil {
		p.IsHomepage = *pp.IsHomepage
	}
	if pp.Sections != nil {
		p.Sections = *pp.Sections
	}
	if pp.SEO != nil {
		if pp.SEO.IsZero() {
			p.SEO = nil
		} else {
			seo := *pp.SEO
			p.SEO = &seo
		}
	}
}

// PageStore persists pages as pages/<slug>.json plus pages/index.json. At
// most one page carries the homepage flag.
type PageStore struct {
	dir *Dir
}

// NewPageStore creates a page store over the given layout.
func NewPageStore(dir *Dir) *PageStore {
	return &PageStore{dir: dir}
}

// ListIndex returns the page summaries in file order. A missing index is
// created with the synthetic home entry.
func (s *PageStore) ListIndex() ([]models.PageSummary, error) {
	s.dir.Lock()
	defer s.dir.Unlock()
	return s.listIndex()
}

// Get loads a page by slug. If no file has that name, the index is searched
// for a page with that ID. Returns (nil, nil) if nothing matches.
func (s *PageStore) Get(key string) (*models.Page, error) {
	s.dir.Lock()
	defer s.dir.Unlock()

	if !ValidKey(key) {
		return nil, nil
	}
	p, err := s.read(key)
	if err != nil || p != nil {
		return p, err
	}

	index, err := s.listIndex()
	if err != nil {
		return nil, err
	}
	for _, entry := range index {
		if entry.ID == key && ValidKey(entry.Slug) {
			return s.read(entry.Slug)
		}
	}
	return nil, nil
}

// GetByID resolves a page through the index. When the index entry exists but
// its file is missing or unreadable, a section-less page is built from the
// entry.
func (s *PageStore) GetByID(id string) (*models.Page, error) {
	s.dir.Lock()
	defer s.dir.Unlock()

	index, err := s.listIndex()
	if err != nil {
		return nil, err
	}
	for _, entry := range index {
		if entry.ID == id {
			return s.loadForRead(entry), nil
		}
	}
	return nil, nil
}

// Homepage returns the page flagged as homepage, or nil if none is.
func (s *PageStore) Homepage() (*models.Page, error) {
	s.dir.Lock()
	defer s.dir.Unlock()

	index, err := s.listIndex()
	if err != nil {
		return nil, err
	}
	for _, entry := range index {
		if entry.IsHomepage {
			return s.loadForRead(entry), nil
		}
	}
	return nil, nil
}

// Create writes a new page and records it in the index, replacing any entry
// that already uses the same slug. If the page is the homepage, every other
// page loses the flag.
func (s *PageStore) Create(p *models.Page) error {
	s.dir.Lock()
	defer s.dir.Unlock()

	if !ValidKey(p.Slug) {
		return fmt.Errorf("create page: invalid slug %q", p.Slug)
	}
	index, err := s.listIndex()
	if err != nil {
		return fmt.Errorf("create page: %w", err)
	}

	if err := WriteJSON(s.dir.PagePath(p.Slug), p); err != nil {
		return fmt.Errorf("create page: %w", err)
	}
	if p.IsHomepage {
		s.demoteOthers(index, p)
	}

	kept := make([]models.PageSummary, 0, len(index)+1)
	for _, entry := range index {
		if entry.Slug != p.Slug {
			kept = append(kept, entry)
		}
	}
	kept = append(kept, p.Summary())
	if err := WriteJSON(s.dir.PageIndexPath(), kept); err != nil {
		return fmt.Errorf("create page index: %w", err)
	}
	return nil
}

// Update merges patch into the page with the given ID. A slug change writes
// the new file and removes the old one. Returns ErrNotFound if the ID is not
// indexed and ErrSlugConflict if the new slug belongs to another page.
func (s *PageStore) Update(id string, patch PagePatch) (*models.Page, error) {
	s.dir.Lock()
	defer s.dir.Unlock()

	index, err := s.listIndex()
	if err != nil {
		return nil, fmt.Errorf("update page: %w", err)
	}
	pos := -1
	for i, entry := range index {
		if entry.ID == id {
			pos = i
			break
		}
	}
	if pos < 0 {
		return nil, ErrNotFound
	}

	existing, err := s.load(index[pos])
	if err != nil {
		return nil, fmt.Errorf("update page: %w", err)
	}
	oldSlug := existing.Slug

	patch.Apply(existing)
	existing.ID = id
	if !ValidKey(existing.Slug) {
		return nil, fmt.Errorf("update page: invalid slug %q", existing.Slug)
	}
	if existing.Slug != oldSlug {
		for _, entry := range index {
			if entry.ID != id && entry.Slug == existing.Slug {
				return nil, ErrSlugConflict
			}
		}
	}

	if err := WriteJSON(s.dir.PagePath(existing.Slug), existing); err != nil {
		return nil, fmt.Errorf("update page: %w", err)
	}
	if existing.IsHomepage {
		s.demoteOthers(index, existing)
	}
	if existing.Slug != oldSlug && ValidKey(oldSlug) {
		if err := os.Remove(s.dir.PagePath(oldSlug)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			slog.Warn("failed to remove renamed page file", "slug", oldSlug, "error", err)
		}
	}

	index[pos] = existing.Summary()
	if err := WriteJSON(s.dir.PageIndexPath(), index); err != nil {
		return nil, fmt.Errorf("update page index: %w", err)
	}
	return existing, nil
}

// Delete removes a page file and its index entry, returning the deleted
// page. The homepage cannot be deleted.
func (s *PageStore) Delete(id string) (*models.Page, error) {
	s.dir.Lock()
	defer s.dir.Unlock()

	index, err := s.listIndex()
	if err != nil {
		return nil, fmt.Errorf("delete page: %w", err)
	}
	var target *models.PageSummary
	for i := range index {
		if index[i].ID == id {
			target = &index[i]
			break
		}
	}
	if target == nil {
		return nil, ErrNotFound
	}
	if target.IsHomepage {
		return nil, ErrHomepageDelete
	}

	deleted, err := s.load(*target)
	if err != nil {
		slog.Warn("failed to read page before delete", "id", id, "error", err)
		deleted = models.PageFromSummary(*target)
	}

	if ValidKey(target.Slug) {
		if err := os.Remove(s.dir.PagePath(target.Slug)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			slog.Warn("failed to remove page file", "slug", target.Slug, "error", err)
		}
	}

	kept := make([]models.PageSummary, 0, len(index))
	for _, entry := range index {
		if entry.ID != id {
			kept = append(kept, entry)
		}
	}
	if err := WriteJSON(s.dir.PageIndexPath(), kept); err != nil {
		return nil, fmt.Errorf("delete page index: %w", err)
	}
	return deleted, nil
}

// demoteOthers clears the homepage flag on every page except keep, in the
// index slice and in each page file. It runs after keep's file is written;
// an entry sharing keep's slug is about to be replaced, so its file is left
// alone. File failures are logged; the index slice is always updated so the
// caller's index rewrite stays consistent.
func (s *PageStore) demoteOthers(index []models.PageSummary, keep *models.Page) {
	for i := range index {
		if index[i].ID == keep.ID || !index[i].IsHomepage {
			continue
		}
		index[i].IsHomepage = false

		if index[i].Slug == keep.Slug || !ValidKey(index[i].Slug) {
			continue
		}
		p, err := s.read(index[i].Slug)
		if err != nil {
			slog.Warn("failed to read page for homepage demotion", "slug", index[i].Slug, "error", err)
			continue
		}
		if p == nil {
			continue
		}
		p.IsHomepage = false
		if err := WriteJSON(s.dir.PagePath(p.Slug), p); err != nil {
			slog.Warn("failed to demote homepage", "slug", p.Slug, "error", err)
		}
	}
}

func (s *PageStore) listIndex() ([]models.PageSummary, error) {
	path := s.dir.PageIndexPath()
	if !Exists(path) {
		index := models.DefaultPageIndex()
		if err := WriteJSON(path, index); err != nil {
			return nil, fmt.Errorf("init page index: %w", err)
		}
		return index, nil
	}

	var index []models.PageSummary
	if err := ReadJSON(path, &index); err != nil {
		return nil, err
	}
	if index == nil {
		index = []models.PageSummary{}
	}
	return index, nil
}

// load reads the file behind an index entry, falling back to the entry
// itself when the file is missing.
func (s *PageStore) load(entry models.PageSummary) (*models.Page, error) {
	if ValidKey(entry.Slug) {
		p, err := s.read(entry.Slug)
		if err != nil {
			return nil, err
		}
		if p != nil {
			return p, nil
		}
	}
	return models.PageFromSummary(entry), nil
}

// loadForRead is load for read-only callers: a file that cannot be read or
// decoded is logged and the index entry is served instead.
func (s *PageStore) loadForRead(entry models.PageSummary) *models.Page {
	p, err := s.load(entry)
	if err != nil {
		slog.Error("failed to read page file, serving index entry", "slug", entry.Slug, "id", entry.ID, "error", err)
		return models.PageFromSummary(entry)
	}
	return p
}

// read loads pages/<slug>.json, returning (nil, nil) when it does not exist.
func (s *PageStore) read(slug string) (*models.Page, error) {
	var p models.Page
	if err := ReadJSON(s.dir.PagePath(slug), &p); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	if p.Sections == nil {
		p.Sections = models.Sections{}
	}
	return &p, nil
}
