// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package diagnostics inspects and repairs the on-disk content tree. Run is
// read-only; the Fix and Sync operations apply best-effort repairs, record
// one Action per change, and keep going when a single step fails.
package diagnostics

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"casinoreviews/internal/models"
	"casinoreviews/internal/store"
)

// DirStatus describes one expected directory.
type DirStatus struct {
	Path        string `json:"path"`
	Exists      bool   `json:"exists"`
	IsDirectory bool   `json:"isDirectory"`
}

// FileStatus describes one expected index or registry file.
type FileStatus struct {
	Path   string `json:"path"`
	Exists bool   `json:"exists"`
	IsFile bool   `json:"isFile"`
}

// Report is the outcome of a read-only diagnostics pass.
type Report struct {
	Directories map[string]DirStatus  `json:"directories"`
	Files       map[string]FileStatus `json:"files"`
	Issues      []string              `json:"issues"`
}

// Healthy reports whether the pass found no issues.
func (r *Report) Healthy() bool { return len(r.Issues) == 0 }

// Action is one repair step.
type Action struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Result aggregates the steps of a repair. Success is false if any step
// failed. A repair that found nothing to do has no actions.
type Result struct {
	Actions []Action `json:"actions"`
	Success bool     `json:"success"`
}

func newResult() *Result {
	return &Result{Actions: []Action{}, Success: true}
}

func (r *Result) ok(format string, args ...any) {
	r.Actions = append(r.Actions, Action{Success: true, Message: fmt.Sprintf(format, args...)})
}

func (r *Result) fail(format string, args ...any) {
	r.Actions = append(r.Actions, Action{Success: false, Message: fmt.Sprintf(format, args...)})
	r.Success = false
}

// String summarizes a result for CLI output.
func (r *Result) String() string {
	var b strings.Builder
	for _, a := range r.Actions {
		mark := "ok  "
		if !a.Success {
			mark = "FAIL"
		}
		fmt.Fprintf(&b, "[%s] %s\n", mark, a.Message)
	}
	if len(r.Actions) == 0 {
		b.WriteString("nothing to do\n")
	}
	return b.String()
}

// Tool runs diagnostics and repairs over one content tree. Every operation
// holds the content lock, so repairs never interleave with store writes.
type Tool struct {
	dir *store.Dir
}

// New creates a diagnostics tool for the given layout.
func New(dir *store.Dir) *Tool {
	return &Tool{dir: dir}
}

type namedPath struct {
	name string
	path string
}

func (t *Tool) directories() []namedPath {
	return []namedPath{
		{"content", t.dir.ContentDir},
		{"pages", t.dir.PagesDir()},
		{"casinos", t.dir.CasinosDir()},
		{"public", t.dir.PublicDir},
		{"images", t.dir.ImagesDir()},
	}
}

// indexFile is an index or registry file with its default content and the
// type it must decode into.
type indexFile struct {
	namedPath
	defaultValue func() any
	decodeInto   func() any
}

func (t *Tool) indexFiles() []indexFile {
	return []indexFile{
		{
			namedPath:    namedPath{"pages/index.json", t.dir.PageIndexPath()},
			defaultValue: func() any { return models.DefaultPageIndex() },
			decodeInto:   func() any { return &[]models.PageSummary{} },
		},
		{
			namedPath:    namedPath{"casinos/index.json", t.dir.CasinoIndexPath()},
			defaultValue: func() any { return []models.CasinoSummary{} },
			decodeInto:   func() any { return &[]models.CasinoSummary{} },
		},
		{
			namedPath:    namedPath{"media-registry.json", t.dir.MediaRegistryPath()},
			defaultValue: func() any { return models.MediaRegistry{Images: []models.MediaImage{}} },
			decodeInto:   func() any { return &models.MediaRegistry{} },
		},
	}
}

// Run inspects the content tree and reports every structural problem. It
// never modifies anything.
func (t *Tool) Run() *Report {
	t.dir.Lock()
	defer t.dir.Unlock()

	r := &Report{
		Directories: map[string]DirStatus{},
		Files:       map[string]FileStatus{},
		Issues:      []string{},
	}

	for _, d := range t.directories() {
		st := DirStatus{Path: d.path, Exists: store.Exists(d.path), IsDirectory: store.IsDir(d.path)}
		r.Directories[d.name] = st
		switch {
		case !st.Exists:
			r.Issues = append(r.Issues, "Directory does not exist: "+d.path)
		case !st.IsDirectory:
			r.Issues = append(r.Issues, "Path exists but is not a directory: "+d.path)
		}
	}

	for _, f := range t.indexFiles() {
		st := FileStatus{Path: f.path, Exists: store.Exists(f.path), IsFile: store.IsFile(f.path)}
		r.Files[f.name] = st
		switch {
		case !st.Exists:
			r.Issues = append(r.Issues, "File does not exist: "+f.path)
		case !st.IsFile:
			r.Issues = append(r.Issues, "Path exists but is not a file: "+f.path)
		}
	}

	if r.Directories["pages"].IsDirectory && r.Files["pages/index.json"].IsFile {
		r.Issues = append(r.Issues, t.pageIssues()...)
	}
	if r.Directories["casinos"].IsDirectory && r.Files["casinos/index.json"].IsFile {
		r.Issues = append(r.Issues, t.casinoIssues()...)
	}
	if r.Files["media-registry.json"].IsFile {
		var reg models.MediaRegistry
		if err := decodeFile(t.dir.MediaRegistryPath(), &reg); err != nil {
			r.Issues = append(r.Issues, "Invalid JSON in media-registry.json: "+err.Error())
		}
	}
	return r
}

func (t *Tool) pageIssues() []string {
	var issues []string

	var index []models.PageSummary
	if err := decodeFile(t.dir.PageIndexPath(), &index); err != nil {
		return []string{"Invalid JSON in pages/index.json: " + err.Error()}
	}

	indexed := map[string]bool{}
	var homepages []string
	for _, entry := range index {
		indexed[entry.Slug] = true
		if entry.IsHomepage {
			homepages = append(homepages, entry.ID)
		}
		if !store.ValidKey(entry.Slug) {
			issues = append(issues, fmt.Sprintf("Invalid slug %q in pages/index.json (ID: %s)", entry.Slug, entry.ID))
			continue
		}

		path := t.dir.PagePath(entry.Slug)
		if !store.Exists(path) {
			issues = append(issues, fmt.Sprintf("Page file missing for slug %q (ID: %s)", entry.Slug, entry.ID))
			continue
		}
		if !store.IsFile(path) {
			issues = append(issues, fmt.Sprintf("Page path exists but is not a file for slug %q (ID: %s)", entry.Slug, entry.ID))
			continue
		}

		var p models.Page
		if err := decodeFile(path, &p); err != nil {
			kind := "Invalid JSON"
			if !unparsable(err) {
				kind = "Unreadable page data"
			}
			issues = append(issues, fmt.Sprintf("%s in pages/%s.json: %v", kind, entry.Slug, err))
			continue
		}
		if p.Slug != entry.Slug {
			issues = append(issues, fmt.Sprintf("Slug mismatch in pages/%s.json: file has %q", entry.Slug, p.Slug))
		}
		if p.ID != entry.ID {
			issues = append(issues, fmt.Sprintf("ID mismatch in pages/%s.json: index has %q, file has %q", entry.Slug, entry.ID, p.ID))
		}
	}
	if len(homepages) > 1 {
		issues = append(issues, "Multiple homepages in pages/index.json: "+strings.Join(homepages, ", "))
	}

	files, err := entityFiles(t.dir.PagesDir())
	if err != nil {
		return append(issues, "Cannot list pages directory: "+err.Error())
	}
	for _, name := range files {
		if !indexed[strings.TrimSuffix(name, ".json")] {
			issues = append(issues, "Page file not in index: pages/"+name)
		}
	}
	return issues
}

func (t *Tool) casinoIssues() []string {
	var issues []string

	var index []models.CasinoSummary
	if err := decodeFile(t.dir.CasinoIndexPath(), &index); err != nil {
		return []string{"Invalid JSON in casinos/index.json: " + err.Error()}
	}

	indexed := map[string]bool{}
	for _, entry := range index {
		indexed[entry.ID] = true
		if !store.ValidKey(entry.ID) {
			issues = append(issues, fmt.Sprintf("Invalid ID %q in casinos/index.json", entry.ID))
			continue
		}

		path := t.dir.CasinoPath(entry.ID)
		if !store.IsFile(path) {
			issues = append(issues, fmt.Sprintf("Casino file missing for ID %q (slug: %s)", entry.ID, entry.Slug))
			continue
		}
		var c models.Casino
		if err := decodeFile(path, &c); err != nil {
			issues = append(issues, fmt.Sprintf("Invalid JSON in casinos/%s.json: %v", entry.ID, err))
			continue
		}
		if c.ID != entry.ID {
			issues = append(issues, fmt.Sprintf("ID mismatch in casinos/%s.json: file has %q", entry.ID, c.ID))
		}
	}

	files, err := entityFiles(t.dir.CasinosDir())
	if err != nil {
		return append(issues, "Cannot list casinos directory: "+err.Error())
	}
	for _, name := range files {
		if !indexed[strings.TrimSuffix(name, ".json")] {
			issues = append(issues, "Casino file not in index: casinos/"+name)
		}
	}
	return issues
}

// decodeFile parses a JSON file, reporting only the decode error text.
func decodeFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// unparsable reports whether err means the file is not valid JSON, as
// opposed to valid JSON that does not decode into the expected shape.
func unparsable(err error) bool {
	var syntax *json.SyntaxError
	return errors.As(err, &syntax)
}

// entityFiles lists the regular *.json files in dir other than the index,
// sorted by name.
func entityFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		name := e.Name()
		if !strings.HasSuffix(name, ".json") || name == store.IndexFile || strings.HasPrefix(name, ".") {
			continue
		}
		if store.IsFile(filepath.Join(dir, name)) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// backup renames path to the first free "<path>.bak[.N]" name.
func backup(path string) (string, error) {
	target := path + ".bak"
	for n := 1; store.Exists(target); n++ {
		target = fmt.Sprintf("%s.bak.%d", path, n)
	}
	if err := os.Rename(path, target); err != nil {
		return "", err
	}
	return target, nil
}
