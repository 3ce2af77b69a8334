// Package discovery implements the file indexer: a deterministic,
// recursive walk of the input root that classifies media files and
// assigns stable (folder, file) identifiers.
package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/wildlens/camtrap/internal/model"
	"github.com/wildlens/camtrap/internal/util"
)

// Index walks root and returns every recognized media file in
// deterministic order: directories and files are visited sorted by
// name at each level. folder_id counts directories entered so far,
// file_id counts files emitted so far, both starting at 0.
func Index(root string) ([]model.FileItem, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("input path does not exist: %s", root)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}

	idx := &indexer{}
	if err := idx.walk(root); err != nil {
		return nil, err
	}
	return idx.items, nil
}

type indexer struct {
	folderID int
	fileID   int
	items    []model.FileItem
}

func (idx *indexer) walk(dir string) error {
	thisFolder := idx.folderID
	idx.folderID++

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("cannot read directory %s: %w", dir, err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	var subdirs []string
	for _, entry := range entries {
		name := entry.Name()
		if util.IsSentinel(name) {
			continue
		}

		full := filepath.Join(dir, name)

		if entry.IsDir() {
			subdirs = append(subdirs, full)
			continue
		}

		if !entry.Type().IsRegular() {
			continue
		}

		ext := util.Ext(name)
		if !util.IsMedia(ext) {
			continue
		}

		idx.items = append(idx.items, model.FileItem{
			FolderID:   thisFolder,
			FileID:     idx.fileID,
			SourcePath: full,
			StagedPath: full,
		})
		idx.fileID++
	}

	for _, sub := range subdirs {
		if err := idx.walk(sub); err != nil {
			return err
		}
	}
	return nil
}
