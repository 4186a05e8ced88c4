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

// CasinoPatch carries the fields of a partial casino update. Nil fields are
// left unchanged.
type CasinoPatch struct {
	Name           *string
	Slug           *string
	Logo           *string
	MinimumDeposit *float64
	Rating         *float64
	AffiliateLink  *string
	Bonus          *string
	PaymentMethods *[]string
	Pros           *[]string
	Cons           *[]string
	Review         *string
	SEO            *models.SEOMetadata
}

// Apply merges the patch into c.
func (p CasinoPatch) Apply(c *models.Casino) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Slug != nil {
		c.Slug = *p.Slug
	}
	if p.Logo != nil {
		c.Logo = *p.Logo
	}
	if p.MinimumDeposit != nil {
		c.MinimumDeposit = *p.MinimumDeposit
	}
	if p.Rating != nil {
		c.Rating = models.ClampRating(*p.Rating)
	}
	if p.AffiliateLink != nil {
		c.AffiliateLink = *p.AffiliateLink
	}
	if p.Bonus != nil {
		c.Bonus = *p.Bonus
	}
	if p.PaymentMethods != nil {
		c.PaymentMethods = *p.PaymentMethods
	}
	if p.Pros != nil {
		c.Pros = *p.Pros
	}
	if p.Cons != nil {
		c.Cons = *p.Cons
	}
	if p.Review != nil {
		c.Review = *p.Review
	}
	if p.SEO != nil {
		if p.SEO.IsZero() {
			c.SEO = nil
		} else {
			seo := *p.SEO
			c.SEO = &seo
		}
	}
}

// CasinoStore persists casinos as casinos/<id>.json plus casinos/index.json.
type CasinoStore struct {
	dir *Dir
}

// NewCasinoStore creates a casino store over the given layout.
func NewCasinoStore(dir *Dir) *CasinoStore {
	return &CasinoStore{dir: dir}
}

// ListIndex returns the casino summaries in file order. A missing index is
// created empty.
func (s *CasinoStore) ListIndex() ([]models.CasinoSummary, error) {
	s.dir.Lock()
	defer s.dir.Unlock()
	return s.listIndex()
}

// Get loads a casino by ID, falling back to a slug lookup through the index.
// Returns (nil, nil) if nothing matches.
func (s *CasinoStore) Get(key string) (*models.Casino, error) {
	s.dir.Lock()
	defer s.dir.Unlock()

	if !ValidKey(key) {
		return nil, nil
	}
	c, err := s.read(key)
	if err != nil || c != nil {
		return c, err
	}

	index, err := s.listIndex()
	if err != nil {
		return nil, err
	}
	for _, entry := range index {
		if entry.Slug == key && ValidKey(entry.ID) {
			return s.read(entry.ID)
		}
	}
	return nil, nil
}

// Create writes a new casino file and appends its summary to the index.
func (s *CasinoStore) Create(c *models.Casino) error {
	s.dir.Lock()
	defer s.dir.Unlock()

	if !ValidKey(c.ID) {
		return fmt.Errorf("create casino: invalid id %q", c.ID)
	}
	// Read the index first so a corrupt index fails before any file is written.
	index, err := s.listIndex()
	if err != nil {
		return fmt.Errorf("create casino: %w", err)
	}

	if err := WriteJSON(s.dir.CasinoPath(c.ID), c); err != nil {
		return fmt.Errorf("create casino: %w", err)
	}

	index = append(index, c.Summary())
	if err := WriteJSON(s.dir.CasinoIndexPath(), index); err != nil {
		return fmt.Errorf("create casino index: %w", err)
	}
	return nil
}

// Update merges patch into the stored casino and rewrites its file and index
// entry. Returns ErrNotFound if the casino file does not exist.
func (s *CasinoStore) Update(id string, patch CasinoPatch) (*models.Casino, error) {
	s.dir.Lock()
	defer s.dir.Unlock()

	if !ValidKey(id) {
		return nil, ErrNotFound
	}
	existing, err := s.read(id)
	if err != nil {
		return nil, fmt.Errorf("update casino: %w", err)
	}
	if existing == nil {
		return nil, ErrNotFound
	}
	index, err := s.listIndex()
	if err != nil {
		return nil, fmt.Errorf("update casino: %w", err)
	}

	patch.Apply(existing)
	existing.ID = id

	if err := WriteJSON(s.dir.CasinoPath(id), existing); err != nil {
		return nil, fmt.Errorf("update casino: %w", err)
	}

	found := false
	for i := range index {
		if index[i].ID == id {
			index[i] = existing.Summary()
			found = true
		}
	}
	if !found {
		index = append(index, existing.Summary())
	}
	if err := WriteJSON(s.dir.CasinoIndexPath(), index); err != nil {
		return nil, fmt.Errorf("update casino index: %w", err)
	}
	return existing, nil
}

// Delete removes a casino file and its index entry, returning the deleted
// casino. Returns ErrNotFound if the casino file does not exist; in that case
// nothing on disk is touched.
func (s *CasinoStore) Delete(id string) (*models.Casino, error) {
	s.dir.Lock()
	defer s.dir.Unlock()

	if !ValidKey(id) {
		return nil, ErrNotFound
	}
	existing, err := s.read(id)
	if err != nil {
		return nil, fmt.Errorf("delete casino: %w", err)
	}
	if existing == nil {
		return nil, ErrNotFound
	}
	index, err := s.listIndex()
	if err != nil {
		return nil, fmt.Errorf("delete casino: %w", err)
	}

	if err := os.Remove(s.dir.CasinoPath(id)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to remove casino file", "id", id, "error", err)
	}

	kept := make([]models.CasinoSummary, 0, len(index))
	for _, entry := range index {
		if entry.ID != id {
			kept = append(kept, entry)
		}
	}
	if err := WriteJSON(s.dir.CasinoIndexPath(), kept); err != nil {
		return nil, fmt.Errorf("delete casino index: %w", err)
	}
	return existing, nil
}

func (s *CasinoStore) listIndex() ([]models.CasinoSummary, error) {
	path := s.dir.CasinoIndexPath()
	if !Exists(path) {
		index := []models.CasinoSummary{}
		if err := WriteJSON(path, index); err != nil {
			return nil, fmt.Errorf("init casino index: %w", err)
		}
		return index, nil
	}

	var index []models.CasinoSummary
	if err := ReadJSON(path, &index); err != nil {
		return nil, err
	}
	if index == nil {
		index = []models.CasinoSummary{}
	}
	return index, nil
}

// read loads casinos/<id>.json, returning (nil, nil) when it does not exist.
func (s *CasinoStore) read(id string) (*models.Casino, error) {
	var c models.Casino
	if err := ReadJSON(s.dir.CasinoPath(id), &c); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}
