package util

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestEnsureDirectoryWritableRejectsMissingAndFile(t *testing.T) {
	dir := t.TempDir()

	if err := EnsureDirectoryWritable(filepath.Join(dir, "missing")); err == nil {
		t.Error("expected error for a missing directory")
	}

	file := filepath.Join(dir, "not-a-dir")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	if err := EnsureDirectoryWritable(file); err == nil {
		t.Error("expected error when path is a regular file, not a directory")
	}

	if err := EnsureDirectoryWritable(dir); err != nil {
		t.Errorf("EnsureDirectoryWritable(%q) error: %v", dir, err)
	}
}

func TestCreateTempFilePathAllocatesUnderDirWithPrefixAndExtension(t *testing.T) {
	dir := t.TempDir()

	path, err := CreateTempFilePath(dir, "stage", "jpg")
	if err != nil {
		t.Fatalf("CreateTempFilePath() error: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Errorf("path %q not under %q", path, dir)
	}
	if filepath.Ext(path) != ".jpg" {
		t.Errorf("path %q does not have .jpg extension", path)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("CreateTempFilePath should not create the file itself")
	}
}

func TestCheckDiskSpaceDoesNotLogWhenSpaceSufficient(t *testing.T) {
	dir := t.TempDir()

	var msgs []string
	logger := func(format string, args ...any) {
		msgs = append(msgs, format)
	}

	// A normal test filesystem has more than MinTempSpaceMB free, so the
	// low-space logger should never fire.
	ok := CheckDiskSpace(dir, logger)
	if !ok {
		t.Error("CheckDiskSpace() = false on a normal filesystem with ample space")
	}
	if len(msgs) != 0 {
		t.Errorf("unexpected low-space log on a normal filesystem: %v", msgs)
	}
}

func TestCleanupStaleTempFilesRemovesOnlyOldMatchingPrefix(t *testing.T) {
	dir := t.TempDir()

	stale := filepath.Join(dir, "stage_old.jpg")
	fresh := filepath.Join(dir, "stage_new.jpg")
	other := filepath.Join(dir, "other_old.jpg")
	for _, p := range []string{stale, fresh, other} {
		if err := os.WriteFile(p, []byte("x"), 0644); err != nil {
			t.Fatalf("WriteFile(%q) error: %v", p, err)
		}
	}

	old := time.Now().Add(-48 * time.Hour)
	if err := os.Chtimes(stale, old, old); err != nil {
		t.Fatalf("Chtimes() error: %v", err)
	}
	if err := os.Chtimes(other, old, old); err != nil {
		t.Fatalf("Chtimes() error: %v", err)
	}

	n, err := CleanupStaleTempFiles(dir, "stage", 24)
	if err != nil {
		t.Fatalf("CleanupStaleTempFiles() error: %v", err)
	}
	if n != 1 {
		t.Errorf("cleaned %d files, want 1", n)
	}

	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Error("stale staged file was not removed")
	}
	if _, err := os.Stat(fresh); err != nil {
		t.Error("fresh staged file should not have been removed")
	}
	if _, err := os.Stat(other); err != nil {
		t.Error("file with a non-matching prefix should not have been removed")
	}
}

func TestCleanupStaleTempFilesOnMissingDirIsNoop(t *testing.T) {
	n, err := CleanupStaleTempFiles(filepath.Join(t.TempDir(), "missing"), "stage", 24)
	if err != nil || n != 0 {
		t.Errorf("CleanupStaleTempFiles(missing dir) = %d, %v, want 0, nil", n, err)
	}
}
