package store

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"casinoreviews/internal/models"
)

// MediaStore tracks uploaded images in media-registry.json. Image bytes live
// under the public images directory.
type MediaStore struct {
	dir *Dir
}

// NewMediaStore creates a media registry store over the given layout.
func NewMediaStore(dir *Dir) *MediaStore {
	return &MediaStore{dir: dir}
}

// ImagePath returns where an image with the given file name is stored.
func (s *MediaStore) ImagePath(name string) string {
	return filepath.Join(s.dir.ImagesDir(), name)
}

// List returns the registered images, dropping and persisting the removal of
// entries whose file no longer exists.
func (s *MediaStore) List() ([]models.MediaImage, error) {
	s.dir.Lock()
	defer s.dir.Unlock()

	reg, err := s.load()
	if err != nil {
		return nil, err
	}

	kept := make([]models.MediaImage, 0, len(reg.Images))
	for _, img := range reg.Images {
		if ValidKey(img.Name) && IsFile(s.ImagePath(img.Name)) {
			kept = append(kept, img)
		}
	}
	if len(kept) != len(reg.Images) {
		slog.Info("pruned media registry", "removed", len(reg.Images)-len(kept))
		if err := WriteJSON(s.dir.MediaRegistryPath(), models.MediaRegistry{Images: kept}); err != nil {
			return nil, fmt.Errorf("prune media registry: %w", err)
		}
	}
	return kept, nil
}

// Add appends an image to the registry.
func (s *MediaStore) Add(img models.MediaImage) error {
	s.dir.Lock()
	defer s.dir.Unlock()

	reg, err := s.load()
	if err != nil {
		return fmt.Errorf("add media: %w", err)
	}
	reg.Images = append(reg.Images, img)
	if err := WriteJSON(s.dir.MediaRegistryPath(), reg); err != nil {
		return fmt.Errorf("add media: %w", err)
	}
	return nil
}

// Remove drops every registry entry with the given name. Removing a name that
// is not registered is not an error.
func (s *MediaStore) Remove(name string) error {
	s.dir.Lock()
	defer s.dir.Unlock()

	reg, err := s.load()
	if err != nil {
		return fmt.Errorf("remove media: %w", err)
	}
	kept := make([]models.MediaImage, 0, len(reg.Images))
	for _, img := range reg.Images {
		if img.Name != name {
			kept = append(kept, img)
		}
	}
	if len(kept) == len(reg.Images) {
		return nil
	}
	if err := WriteJSON(s.dir.MediaRegistryPath(), models.MediaRegistry{Images: kept}); err != nil {
		return fmt.Errorf("remove media: %w", err)
	}
	return nil
}

func (s *MediaStore) load() (*models.MediaRegistry, error) {
	path := s.dir.MediaRegistryPath()
	if !Exists(path) {
		reg := &models.MediaRegistry{Images: []models.MediaImage{}}
		if err := WriteJSON(path, reg); err != nil {
			return nil, fmt.Errorf("init media registry: %w", err)
		}
		return reg, nil
	}

	var reg models.MediaRegistry
	if err := ReadJSON(path, &reg); err != nil {
		return nil, err
	}
	if reg.Images == nil {
		reg.Images = []models.MediaImage{}
	}
	return &reg, nil
}
