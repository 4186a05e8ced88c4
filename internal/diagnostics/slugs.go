// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package diagnostics

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"casinoreviews/internal/models"
	"casinoreviews/internal/slug"
	"casinoreviews/internal/store"
)

// FixPageSlugs reconciles pages/index.json with the page files on disk. The
// file name is the source of truth for a page's slug; the index is the source
// of truth for its ID and homepage flag.
//
//   - an entry whose file is missing adopts a file carrying its ID (matched by
//     content first, then by file name) or gets a new empty page file
//   - a file whose slug, ID, or homepage flag disagrees with its entry is
//     rewritten
//   - a file with no entry is added to the index, unless its ID already
//     belongs to an indexed page, in which case it is moved to .bak
//   - only files that are not valid JSON are backed up as corrupted; a page
//     that parses but cannot be decoded is reported and left in place
//   - only one page keeps the homepage flag
//
// The index is rewritten only when it changed.
func (t *Tool) FixPageSlugs() *Result {
	t.dir.Lock()
	defer t.dir.Unlock()

	res := newResult()
	r := &reconciler{dir: t.dir, res: res}

	if !store.IsDir(t.dir.PagesDir()) {
		t.ensureDir(res, t.dir.PagesDir())
		if !res.Success {
			return res
		}
	}

	index, ok := r.loadIndex()
	if !ok {
		return res
	}
	before, _ := json.Marshal(index)

	index = r.dedupeHomepages(index)
	for i := range index {
		r.reconcileEntry(index, i)
	}
	index = r.adoptOrphans(index)

	after, _ := json.Marshal(index)
	if !bytes.Equal(before, after) || !store.IsFile(t.dir.PageIndexPath()) {
		if err := store.WriteJSON(t.dir.PageIndexPath(), index); err != nil {
			res.fail("Failed to write pages/index.json: %v", err)
		} else {
			res.ok("Updated index file with all changes")
		}
	}

	slog.Info("page slugs reconciled", "actions", len(res.Actions), "success", res.Success)
	return res
}

type reconciler struct {
	dir *store.Dir
	res *Result
}

// loadIndex reads the pages index, replacing a missing or corrupted one with
// the default. ok is false if the index could not be made usable.
func (r *reconciler) loadIndex() ([]models.PageSummary, bool) {
	path := r.dir.PageIndexPath()

	if store.Exists(path) && !store.IsFile(path) {
		bak, err := backup(path)
		if err != nil {
			r.res.fail("Failed to move directory %s out of the way: %v", path, err)
			return nil, false
		}
		r.res.ok("Moved directory %s to %s", path, bak)
	}

	if store.IsFile(path) {
		var index []models.PageSummary
		err := decodeFile(path, &index)
		if err == nil {
			if index == nil {
				index = []models.PageSummary{}
			}
			return index, true
		}
		bak, berr := backup(path)
		if berr != nil {
			r.res.fail("Failed to back up corrupted pages/index.json: %v", berr)
			return nil, false
		}
		r.res.ok("Backed up corrupted index to %s (%v)", filepath.Base(bak), err)
	}

	index := models.DefaultPageIndex()
	if err := store.WriteJSON(path, index); err != nil {
		r.res.fail("Failed to create pages/index.json: %v", err)
		return nil, false
	}
	r.res.ok("Created default pages/index.json")
	return index, true
}

func (r *reconciler) dedupeHomepages(index []models.PageSummary) []models.PageSummary {
	seen := false
	for i := range index {
		if !index[i].IsHomepage {
			continue
		}
		if seen {
			index[i].IsHomepage = false
			r.res.ok("Cleared duplicate homepage flag on page %q (ID: %s)", index[i].Slug, index[i].ID)
		}
		seen = true
	}
	return index
}

// reconcileEntry makes index[i] point at a file that agrees with it.
func (r *reconciler) reconcileEntry(index []models.PageSummary, i int) {
	entry := &index[i]

	if !store.ValidKey(entry.Slug) {
		fixed := slug.Generate(entry.Title)
		if !store.ValidKey(fixed) || slugTaken(index, fixed, i) {
			fixed = slug.MintID("page", entry.Title)
		}
		r.res.ok("Replaced invalid slug %q with %q (ID: %s)", entry.Slug, fixed, entry.ID)
		entry.Slug = fixed
	}

	path := r.dir.PagePath(entry.Slug)
	if store.Exists(path) && !store.IsFile(path) {
		bak, err := backup(path)
		if err != nil {
			r.res.fail("Failed to move %s out of the way: %v", path, err)
			return
		}
		r.res.ok("Moved %s to %s", path, bak)
	}

	if store.IsFile(path) {
		var p models.Page
		err := decodeFile(path, &p)
		if err == nil {
			r.alignFile(&p, *entry, entry.Slug+".json")
			return
		}
		if !unparsable(err) {
			r.res.fail("Left %s.json untouched: cannot read page data (%v)", entry.Slug, err)
			return
		}
		bak, berr := backup(path)
		if berr != nil {
			r.res.fail("Failed to back up corrupted %s.json: %v", entry.Slug, berr)
			return
		}
		r.res.ok("Backed up corrupted %s.json to %s (%v)", entry.Slug, filepath.Base(bak), err)
	}

	if name, p := r.findByID(index, entry.ID); p != nil {
		p.ID = entry.ID
		p.Slug = entry.Slug
		p.IsHomepage = entry.IsHomepage
		if err := store.WriteJSON(path, p); err != nil {
			r.res.fail("Failed to write %s.json: %v", entry.Slug, err)
			return
		}
		if err := os.Remove(filepath.Join(r.dir.PagesDir(), name)); err != nil {
			r.res.fail("Wrote %s.json but failed to remove %s: %v", entry.Slug, name, err)
			return
		}
		r.res.ok("Renamed file %s to %s.json and updated slug", name, entry.Slug)
		return
	}

	p := models.PageFromSummary(*entry)
	if err := store.WriteJSON(path, p); err != nil {
		r.res.fail("Failed to create file for page %q (ID: %s): %v", entry.Slug, entry.ID, err)
		return
	}
	r.res.ok("Created missing file for page %q (ID: %s)", entry.Slug, entry.ID)
}

// alignFile rewrites a page file whose slug, ID, or homepage flag disagrees
// with its index entry.
func (r *reconciler) alignFile(p *models.Page, entry models.PageSummary, name string) {
	var changes []string
	if p.Slug != entry.Slug {
		p.Slug = entry.Slug
		changes = append(changes, "slug")
	}
	if p.ID != entry.ID {
		p.ID = entry.ID
		changes = append(changes, "id")
	}
	if p.IsHomepage != entry.IsHomepage {
		p.IsHomepage = entry.IsHomepage
		changes = append(changes, "homepage flag")
	}
	if len(changes) == 0 {
		return
	}
	if err := store.WriteJSON(r.dir.PagePath(entry.Slug), p); err != nil {
		r.res.fail("Failed to update %s: %v", name, err)
		return
	}
	r.res.ok("Updated %s in %s to match index", strings.Join(changes, " and "), name)
}

// findByID looks for an unindexed page file carrying id: first by the id
// stored in the file, then by a file name containing it.
func (r *reconciler) findByID(index []models.PageSummary, id string) (string, *models.Page) {
	if id == "" {
		return "", nil
	}
	files, err := entityFiles(r.dir.PagesDir())
	if err != nil {
		r.res.fail("Cannot list pages directory: %v", err)
		return "", nil
	}

	var candidates []string
	for _, name := range files {
		if !slugTaken(index, strings.TrimSuffix(name, ".json"), -1) {
			candidates = append(candidates, name)
		}
	}

	for _, name := range candidates {
		var p models.Page
		if decodeFile(filepath.Join(r.dir.PagesDir(), name), &p) == nil && p.ID == id {
			return name, &p
		}
	}
	for _, name := range candidates {
		if !strings.Contains(name, id) {
			continue
		}
		var p models.Page
		if decodeFile(filepath.Join(r.dir.PagesDir(), name), &p) == nil {
			return name, &p
		}
	}
	return "", nil
}

// adoptOrphans adds every page file without an index entry to the index.
func (r *reconciler) adoptOrphans(index []models.PageSummary) []models.PageSummary {
	files, err := entityFiles(r.dir.PagesDir())
	if err != nil {
		r.res.fail("Cannot list pages directory: %v", err)
		return index
	}

	for _, name := range files {
		fileSlug := strings.TrimSuffix(name, ".json")
		if slugTaken(index, fileSlug, -1) {
			continue
		}
		path := filepath.Join(r.dir.PagesDir(), name)
		if !store.ValidKey(fileSlug) {
			slog.Debug("skipping page file with unusable name", "file", name)
			continue
		}

		var p models.Page
		if err := decodeFile(path, &p); err != nil {
			if !unparsable(err) {
				r.res.fail("Left %s out of the index: cannot read page data (%v)", name, err)
				continue
			}
			if bak, berr := backup(path); berr != nil {
				r.res.fail("Failed to back up unreadable %s: %v", name, berr)
			} else {
				r.res.ok("Backed up unreadable %s to %s (%v)", name, filepath.Base(bak), err)
			}
			continue
		}

		if p.ID != "" && idTaken(index, p.ID) {
			if bak, err := backup(path); err != nil {
				r.res.fail("Failed to quarantine %s: %v", name, err)
			} else {
				r.res.ok("Moved %s to %s: ID %s already belongs to an indexed page", name, filepath.Base(bak), p.ID)
			}
			continue
		}

		changed := false
		if p.ID == "" {
			p.ID = slug.MintID("page", fileSlug)
			changed = true
		}
		if p.Title == "" {
			p.Title = fileSlug
			changed = true
		}
		if p.Slug != fileSlug {
			p.Slug = fileSlug
			changed = true
		}
		if p.IsHomepage && hasHomepage(index) {
			p.IsHomepage = false
			changed = true
			r.res.ok("Cleared duplicate homepage flag on page %q (ID: %s)", fileSlug, p.ID)
		}
		if p.Sections == nil {
			p.Sections = models.Sections{}
		}

		if changed {
			if err := store.WriteJSON(path, &p); err != nil {
				r.res.fail("Failed to update %s: %v", name, err)
				continue
			}
			r.res.ok("Updated %s to match filename", name)
		}

		index = append(index, p.Summary())
		r.res.ok("Added missing page %q to index", fileSlug)
	}
	return index
}

// slugTaken reports whether an entry other than skip uses s.
func slugTaken(index []models.PageSummary, s string, skip int) bool {
	for i, entry := range index {
		if i != skip && entry.Slug == s {
			return true
		}
	}
	return false
}

func idTaken(index []models.PageSummary, id string) bool {
	for _, entry := range index {
		if entry.ID == id {
			return true
		}
	}
	return false
}

func hasHomepage(index []models.PageSummary) bool {
	for _, entry := range index {
		if entry.IsHomepage {
			return true
		}
	}
	return false
}
