package content

import (
	"log/slog"

	"casinoreviews/internal/models"
)

// ListCasinos returns the casino index in file order.
func (s *Service) ListCasinos() []models.CasinoSummary {
	index, err := s.casinos.ListIndex()
	if err != nil {
		slog.Error("failed to list casinos", "error", err)
		return []models.CasinoSummary{}
	}
	return index
}

// GetCasino resolves a casino by ID or slug.
func (s *Service) GetCasino(idOrSlug string) *models.Casino {
	c, err := s.casinos.Get(idOrSlug)
	if err != nil {
		slog.Error("failed to read casino", "key", idOrSlug, "error", err)
		return nil
	}
	if c == nil {
		slog.Debug("casino not found", "key", idOrSlug)
	}
	return c
}

// ListCasinosByIDs loads the given casinos in the requested order, skipping
// IDs that do not resolve.
func (s *Service) ListCasinosByIDs(ids []string) []*models.Casino {
	out := make([]*models.Casino, 0, len(ids))
	for _, id := range ids {
		if c := s.GetCasino(id); c != nil {
			out = append(out, c)
		}
	}
	return out
}

// ListPages returns the page index in file order.
func (s *Service) ListPages() []models.PageSummary {
	index, err := s.pages.ListIndex()
	if err != nil {
		slog.Error("failed to list pages", "error", err)
		return []models.PageSummary{}
	}
	return index
}

// GetPage resolves a page by slug.
func (s *Service) GetPage(slug string) *models.Page {
	p, err := s.pages.Get(slug)
	if err != nil {
		slog.Error("failed to read page", "slug", slug, "error", err)
		return nil
	}
	if p == nil {
		slog.Debug("page not found", "slug", slug)
	}
	return p
}

// GetPageByID resolves a page through the index by its ID.
func (s *Service) GetPageByID(id string) *models.Page {
	p, err := s.pages.GetByID(id)
	if err != nil {
		slog.Error("failed to read page", "id", id, "error", err)
		return nil
	}
	return p
}

// GetHomePage returns the page flagged as homepage. If its file is missing
// or corrupt the page is rebuilt from the index entry without sections.
func (s *Service) GetHomePage() *models.Page {
	p, err := s.pages.Homepage()
	if err != nil {
		slog.Error("failed to read homepage", "error", err)
		return nil
	}
	return p
}

// ListImages returns the registered images whose files still exist.
func (s *Service) ListImages() []models.MediaImage {
	images, err := s.media.List()
	if err != nil {
		slog.Error("failed to list images", "error", err)
		return []models.MediaImage{}
	}
	return images
}
