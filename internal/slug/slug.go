// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug generation from arbitrary strings
// and mints entity IDs that embed a slug.
package slug

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var (
	// nonWord matches anything that isn't a word character, whitespace, or hyphen.
	nonWord = regexp.MustCompile(`[^\w\s-]`)
	// separators collapses runs of whitespace, underscores, and hyphens.
	separators = regexp.MustCompile(`[\s_-]+`)
)

// Generate creates a URL-friendly slug from the given string.
// Example: "Hello, World! 2026" → "hello-world-2026"
func Generate(s string) string {
	result := strings.ToLower(s)
	result = nonWord.ReplaceAllString(result, "")
	result = separators.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}

// MintID builds an entity ID of the form "{kind}-{slug}-{suffix}", where the
// suffix is the last 12 hex digits of a random UUID.
// Example: MintID("casino", "Lucky Star") → "casino-lucky-star-3f9a0c12be47"
func MintID(kind, name string) string {
	id := uuid.New().String()
	suffix := id[len(id)-12:]

	parts := []string{kind}
	if s := Generate(name); s != "" {
		parts = append(parts, s)
	}
	parts = append(parts, suffix)
	return strings.Join(parts, "-")
}
