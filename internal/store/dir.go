// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store persists casinos, pages, and the media registry as JSON
// files under a content directory. Every entity kind keeps one file per
// entity plus an index.json summary array that must be kept in lockstep.
package store

import (
	"errors"
	"path/filepath"
	"sync"
)

var (
	// ErrNotFound is returned when an ID or slug has no backing entity.
	ErrNotFound = errors.New("not found")

	// ErrHomepageDelete is returned when deleting the current homepage.
	ErrHomepageDelete = errors.New("cannot delete the homepage")

	// ErrSlugConflict is returned when a page slug is already used by another page.
	ErrSlugConflict = errors.New("slug already in use")
)

// IndexFile is the name of the summary file in each entity directory.
const IndexFile = "index.json"

// Dir describes the on-disk layout shared by all stores:
//
//	<content>/casinos/index.json, <content>/casinos/<id>.json
//	<content>/pages/index.json,   <content>/pages/<slug>.json
//	<content>/media-registry.json
//	<public>/images/<name>
//
// Its mutex serializes every read-modify-write cycle so that two requests
// cannot interleave their index rewrites.
type Dir struct {
	ContentDir string
	PublicDir  string

	mu sync.Mutex
}

// NewDir creates a layout rooted at the given content and public directories.
func NewDir(contentDir, publicDir string) *Dir {
	return &Dir{ContentDir: contentDir, PublicDir: publicDir}
}

// Lock acquires the content write lock. Diagnostics take it while repairing.
func (d *Dir) Lock() { d.mu.Lock() }

// Unlock releases the content write lock.
func (d *Dir) Unlock() { d.mu.Unlock() }

// CasinosDir returns the directory holding casino files.
func (d *Dir) CasinosDir() string { return filepath.Join(d.ContentDir, "casinos") }

// PagesDir returns the directory holding page files.
func (d *Dir) PagesDir() string { return filepath.Join(d.ContentDir, "pages") }

// ImagesDir returns the directory holding uploaded images.
func (d *Dir) ImagesDir() string { return filepath.Join(d.PublicDir, "images") }

// CasinoIndexPath returns the path of casinos/index.json.
func (d *Dir) CasinoIndexPath() string { return filepath.Join(d.CasinosDir(), IndexFile) }

// PageIndexPath returns the path of pages/index.json.
func (d *Dir) PageIndexPath() string { return filepath.Join(d.PagesDir(), IndexFile) }

// MediaRegistryPath returns the path of media-registry.json.
func (d *Dir) MediaRegistryPath() string {
	return filepath.Join(d.ContentDir, "media-registry.json")
}

// CasinoPath returns the file path for a casino ID.
func (d *Dir) CasinoPath(id string) string { return filepath.Join(d.CasinosDir(), id+".json") }

// PagePath returns the file path for a page slug.
func (d *Dir) PagePath(slug string) string { return filepath.Join(d.PagesDir(), slug+".json") }
