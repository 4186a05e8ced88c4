package content

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"casinoreviews/internal/imaging"
	"casinoreviews/internal/models"
	"casinoreviews/internal/slug"
	"casinoreviews/internal/store"
)

// MaxImageSize is the largest accepted upload (5 MB).
const MaxImageSize = 5 << 20

var safeExt = regexp.MustCompile(`^\.[a-z0-9]{1,5}$`)

// UploadImage validates an uploaded image, stores it under a unique name in
// the public images directory, and registers it.
func (s *Service) UploadImage(ctx context.Context, filename string, r io.Reader) Result {
	if r == nil {
		return failed(StatusInvalid, "No file provided")
	}
	data, err := io.ReadAll(io.LimitReader(r, MaxImageSize+1))
	if err != nil {
		slog.Error("failed to read upload", "filename", filename, "error", err)
		return failed(StatusFailed, "Failed to upload image")
	}
	if len(data) == 0 {
		return failed(StatusInvalid, "No file provided")
	}
	if len(data) > MaxImageSize {
		return failed(StatusInvalid, "File size must be less than 5MB")
	}

	info, err := imaging.Probe(data)
	if err != nil {
		slog.Debug("rejected upload", "filename", filename, "error", err)
		return failed(StatusInvalid, "File must be an image")
	}

	now := s.now()
	name := uniqueFilename(filename, info.Format, now)
	path := s.media.ImagePath(name)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		slog.Error("failed to create images directory", "error", err)
		return failed(StatusFailed, "Failed to upload image")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		slog.Error("failed to write image", "path", path, "error", err)
		return failed(StatusFailed, "Failed to upload image")
	}

	img := models.MediaImage{
		Name:      name,
		URL:       "/images/" + name,
		Size:      int64(len(data)),
		CreatedAt: now.UTC().Format(time.RFC3339Nano),
	}
	if err := s.media.Add(img); err != nil {
		slog.Error("failed to register image", "name", name, "error", err)
		os.Remove(path)
		return failed(StatusFailed, "Failed to upload image")
	}

	if s.mirror != nil {
		if err := s.mirror.Upload(ctx, name, info.ContentType, bytes.NewReader(data), img.Size); err != nil {
			slog.Warn("image mirror upload failed", "name", name, "error", err)
		}
	}

	slog.Info("image uploaded", "name", name, "size", img.Size, "format", info.Format)
	s.invalidate(ctx, "/admin", "/admin/media")
	res := succeeded("Image uploaded successfully", name)
	res.ImagePath = img.URL
	return res
}

// DeleteImage removes an image file and its registry entry. A registry entry
// whose file is already gone is still removed.
func (s *Service) DeleteImage(ctx context.Context, name string) Result {
	if name == "" || strings.Contains(name, "..") || strings.ContainsAny(name, `/\`) {
		return failed(StatusInvalid, "Invalid filename")
	}

	path := s.media.ImagePath(name)
	if !store.IsFile(path) {
		if err := s.media.Remove(name); err != nil {
			slog.Error("failed to unregister image", "name", name, "error", err)
		}
		return failed(StatusNotFound, "File not found")
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Error("failed to delete image", "path", path, "error", err)
		return failed(StatusFailed, "Failed to delete image")
	}
	if err := s.media.Remove(name); err != nil {
		slog.Error("failed to unregister image", "name", name, "error", err)
	}

	if s.mirror != nil {
		if err := s.mirror.Delete(ctx, name); err != nil {
			slog.Warn("image mirror delete failed", "name", name, "error", err)
		}
	}

	slog.Info("image deleted", "name", name)
	s.invalidate(ctx, "/admin/media")
	return succeeded("Image deleted successfully", name)
}

// uniqueFilename builds "{base}-{millis}-{rand6}{ext}" in lower case. The
// base is slugified; an unusable extension is replaced by one derived from
// the decoded format.
func uniqueFilename(original, format string, now time.Time) string {
	original = strings.ReplaceAll(original, `\`, "/")
	base := filepath.Base(original)
	ext := strings.ToLower(filepath.Ext(base))
	base = slug.Generate(strings.TrimSuffix(base, filepath.Ext(base)))
	if base == "" {
		base = "image"
	}
	if !safeExt.MatchString(ext) {
		ext = "." + format
		if format == "jpeg" {
			ext = ".jpg"
		}
	}
	random := strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
	return strings.ToLower(fmt.Sprintf("%s-%d-%s%s", base, now.UnixMilli(), random, ext))
}
