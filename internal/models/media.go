// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "fmt"

// MediaImage is one entry of media-registry.json, describing an uploaded
// file under public/images.
type MediaImage struct {
	Name      string `json:"name"`
	URL       string `json:"url"`
	Size      int64  `json:"size"`
	CreatedAt string `json:"createdAt"` // RFC 3339
}

// MediaRegistry is the on-disk shape of media-registry.json.
type MediaRegistry struct {
	Images []MediaImage `json:"images"`
}

// HumanSize returns a human-readable file size string.
func (m *MediaImage) HumanSize() string {
	const (
		kb = 1024
		mb = 1024 * kb
	)
	switch {
	case m.Size >= mb:
		return fmt.Sprintf("%.1f MB", float64(m.Size)/float64(mb))
	case m.Size >= kb:
		return fmt.Sprintf("%.0f KB", float64(m.Size)/float64(kb))
	default:
		return fmt.Sprintf("%d B", m.Size)
	}
}
