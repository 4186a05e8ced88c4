// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package imaging validates uploaded files by decoding their image header.
// A file is only accepted as an image when one of the registered decoders
// (GIF, JPEG, PNG, WebP, BMP, TIFF) can read its dimensions.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"net/http"
	"strings"

	// Registered decoders.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrNotImage is returned when data cannot be decoded as a supported image.
var ErrNotImage = errors.New("not a supported image")

// MaxPixels bounds the decoded dimensions of an accepted image.
const MaxPixels = 50_000_000

// Info describes a probed image.
type Info struct {
	Format      string // decoder name, e.g. "png", "webp"
	Width       int
	Height      int
	ContentType string
}

// Probe reads the image header in data and reports its format and size.
// Only the header is decoded.
func Probe(data []byte) (*Info, error) {
	if len(data) == 0 {
		return nil, ErrNotImage
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotImage, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: empty dimensions", ErrNotImage)
	}
	if cfg.Width*cfg.Height > MaxPixels {
		return nil, fmt.Errorf("%w: %dx%d exceeds pixel limit", ErrNotImage, cfg.Width, cfg.Height)
	}

	ct := http.DetectContentType(data)
	if !strings.HasPrefix(ct, "image/") {
		ct = "image/" + format
	}

	return &Info{Format: format, Width: cfg.Width, Height: cfg.Height, ContentType: ct}, nil
}
