package diagnostics

import (
	"log/slog"
	"os"
	"path/filepath"

	"casinoreviews/internal/models"
	"casinoreviews/internal/store"
)

// FixDirectories restores the skeleton of the content tree: missing
// directories, missing or unreadable index and registry files, and the home
// page file. A second run on a repaired tree records no actions.
func (t *Tool) FixDirectories() *Result {
	t.dir.Lock()
	defer t.dir.Unlock()

	res := newResult()

	for _, d := range t.directories() {
		t.ensureDir(res, d.path)
	}

	pagesIndexCreated := false
	for _, f := range t.indexFiles() {
		created := t.ensureIndexFile(res, f)
		if f.path == t.dir.PageIndexPath() {
			pagesIndexCreated = created
		}
	}

	t.ensureHomePage(res, pagesIndexCreated)

	slog.Info("content directories repaired", "actions", len(res.Actions), "success", res.Success)
	return res
}

// ensureDir creates a missing directory. A file in its place is moved aside.
func (t *Tool) ensureDir(res *Result, path string) {
	if store.IsDir(path) {
		return
	}
	if store.Exists(path) {
		bak, err := backup(path)
		if err != nil {
			res.fail("Failed to move %s out of the way: %v", path, err)
			return
		}
		res.ok("Moved file %s to %s", path, bak)
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		res.fail("Failed to create directory %s: %v", path, err)
		return
	}
	res.ok("Created directory: %s", path)
}

// ensureIndexFile makes f a parsable regular file. It reports whether the
// file was (re)written with default content.
func (t *Tool) ensureIndexFile(res *Result, f indexFile) bool {
	if store.Exists(f.path) && !store.IsFile(f.path) {
		bak, err := backup(f.path)
		if err != nil {
			res.fail("Failed to move directory %s out of the way: %v", f.path, err)
			return false
		}
		res.ok("Moved directory %s to %s", f.path, bak)
	}

	if store.IsFile(f.path) {
		err := decodeFile(f.path, f.decodeInto())
		if err == nil {
			return false
		}
		bak, berr := backup(f.path)
		if berr != nil {
			res.fail("Failed to back up corrupted %s: %v", f.name, berr)
			return false
		}
		res.ok("Backed up corrupted %s to %s (%v)", f.name, filepath.Base(bak), err)
	}

	if err := store.WriteJSON(f.path, f.defaultValue()); err != nil {
		res.fail("Failed to create %s: %v", f.name, err)
		return false
	}
	res.ok("Created %s", f.name)
	return true
}

// ensureHomePage writes pages/home.json when the pages index was just
// created or when the index refers to a home page whose file is missing.
func (t *Tool) ensureHomePage(res *Result, indexCreated bool) {
	path := t.dir.PagePath(models.HomeSlug)
	if store.IsFile(path) {
		return
	}

	home := models.DefaultHomePage()
	if !indexCreated {
		var index []models.PageSummary
		if err := decodeFile(t.dir.PageIndexPath(), &index); err != nil {
			return
		}
		found := false
		for _, entry := range index {
			if entry.Slug == models.HomeSlug {
				home.ID = entry.ID
				home.Title = entry.Title
				home.IsHomepage = entry.IsHomepage
				found = true
				break
			}
		}
		if !found {
			return
		}
	}

	if store.Exists(path) {
		bak, err := backup(path)
		if err != nil {
			res.fail("Failed to move %s out of the way: %v", path, err)
			return
		}
		res.ok("Moved %s to %s", path, bak)
	}
	if err := store.WriteJSON(path, home); err != nil {
		res.fail("Failed to create home.json: %v", err)
		return
	}
	res.ok("Created home.json")
}
