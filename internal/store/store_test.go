package store

import (
	"os"
	"path/filepath"
	"testing"
)

func testDir(t *testing.T) *Dir {
	t.Helper()
	root := t.TempDir()
	return NewDir(filepath.Join(root, "content"), filepath.Join(root, "public"))
}

// checkExists fails the test unless path's existence matches want.
func checkExists(t *testing.T, path string, want bool) {
	t.Helper()
	if got := Exists(path); got != want {
		t.Errorf("%s exists: got %v, want %v", path, got, want)
	}
}

func TestWriteJSONIndentsAndReplaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "x.json")

	if err := WriteJSON(path, map[string]int{"a": 1}); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if err := WriteJSON(path, []string{"<b>"}); err != nil {
		t.Fatalf("second write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if want := "[\n  \"<b>\"\n]\n"; string(data) != want {
		t.Errorf("content: got %q, want %q", data, want)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("temp files must not be left behind, found %d entries", len(entries))
	}
}

func TestValidKey(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"casino-lucky-abc", true},
		{"home", true},
		{"", false},
		{"index", false},
		{"../etc/passwd", false},
		{"a/b", false},
		{`a\b`, false},
		{".hidden", false},
	}
	for _, tt := range tests {
		if got := ValidKey(tt.key); got != tt.want {
			t.Errorf("ValidKey(%q): got %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestIsFileAndIsDir(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if !IsFile(file) || IsDir(file) {
		t.Errorf("%s should be a file only", file)
	}
	if !IsDir(dir) || IsFile(dir) {
		t.Errorf("%s should be a directory only", dir)
	}
	checkExists(t, filepath.Join(dir, "missing"), false)
}
