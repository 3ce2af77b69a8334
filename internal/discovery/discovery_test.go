package discovery

import (
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}
}

func TestIndexRecursesAndSorts(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "b.jpg"))
	touch(t, filepath.Join(root, "a.jpg"))
	touch(t, filepath.Join(root, "sub", "c.mp4"))
	touch(t, filepath.Join(root, "notes.txt")) // not media, skipped

	items, err := Index(root)
	if err != nil {
		t.Fatalf("Index() error: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("len(items) = %d, want 3: %+v", len(items), items)
	}

	var names []string
	for _, it := range items {
		names = append(names, filepath.Base(it.SourcePath))
	}
	want := []string{"a.jpg", "b.jpg", "c.mp4"}
	for i, n := range want {
		if names[i] != n {
			t.Errorf("names[%d] = %q, want %q (full order %v)", i, names[i], n, names)
		}
	}
}

func TestIndexSkipsSentinels(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "Animal", "skip.jpg"))
	touch(t, filepath.Join(root, "result.json"))
	touch(t, filepath.Join(root, ".hidden.jpg"))
	touch(t, filepath.Join(root, "keep.jpg"))

	items, err := Index(root)
	if err != nil {
		t.Fatalf("Index() error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("len(items) = %d, want 1: %+v", len(items), items)
	}
	if filepath.Base(items[0].SourcePath) != "keep.jpg" {
		t.Errorf("unexpected survivor: %+v", items[0])
	}
}

func TestIndexStagedPathDefaultsToSourcePath(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "a.jpg"))

	items, err := Index(root)
	if err != nil {
		t.Fatalf("Index() error: %v", err)
	}
	if items[0].Path() != items[0].SourcePath {
		t.Errorf("Path() = %q, want %q before staging", items[0].Path(), items[0].SourcePath)
	}
}

func TestIndexOnMissingRoot(t *testing.T) {
	if _, err := Index(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatal("Index() on missing root returned nil error")
	}
}
