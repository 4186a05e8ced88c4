package diagnostics

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"casinoreviews/internal/imaging"
	"casinoreviews/internal/models"
	"casinoreviews/internal/store"
)

// probeBytes is how much of an image file is read to decode its header.
const probeBytes = 1 << 20

// SyncMedia makes media-registry.json match public/images: image files that
// are not registered are added, and entries whose file is gone are dropped.
// Files that do not decode as images are left alone.
func (t *Tool) SyncMedia() *Result {
	t.dir.Lock()
	defer t.dir.Unlock()

	res := newResult()
	path := t.dir.MediaRegistryPath()

	reg := models.MediaRegistry{Images: []models.MediaImage{}}
	if store.Exists(path) {
		if err := decodeFile(path, &reg); err != nil {
			res.fail("Invalid JSON in media-registry.json: %v", err)
			return res
		}
	}

	changed := !store.Exists(path)
	kept := reg.Images[:0]
	registered := map[string]bool{}
	for _, img := range reg.Images {
		if store.ValidKey(img.Name) && store.IsFile(filepath.Join(t.dir.ImagesDir(), img.Name)) {
			kept = append(kept, img)
			registered[img.Name] = true
			continue
		}
		changed = true
		res.ok("Removed missing image %s from registry", img.Name)
	}
	reg.Images = kept

	entries, err := os.ReadDir(t.dir.ImagesDir())
	if err != nil && !os.IsNotExist(err) {
		res.fail("Cannot list images directory: %v", err)
		return res
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for _, e := range entries {
		name := e.Name()
		if registered[name] || strings.HasPrefix(name, ".") || !e.Type().IsRegular() {
			continue
		}
		img, err := probeImage(filepath.Join(t.dir.ImagesDir(), name))
		if err != nil {
			slog.Debug("skipping non-image file", "file", name, "error", err)
			continue
		}
		reg.Images = append(reg.Images, *img)
		changed = true
		res.ok("Registered image %s", name)
	}

	if changed {
		if err := store.WriteJSON(path, reg); err != nil {
			res.fail("Failed to write media-registry.json: %v", err)
		}
	}

	slog.Info("media registry synced", "actions", len(res.Actions), "success", res.Success)
	return res
}

func probeImage(path string) (*models.MediaImage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	head, err := io.ReadAll(io.LimitReader(f, probeBytes))
	if err != nil {
		return nil, err
	}
	if _, err := imaging.Probe(head); err != nil {
		return nil, err
	}

	name := filepath.Base(path)
	return &models.MediaImage{
		Name:      name,
		URL:       "/images/" + name,
		Size:      info.Size(),
		CreatedAt: info.ModTime().UTC().Format(time.RFC3339),
	}, nil
}
