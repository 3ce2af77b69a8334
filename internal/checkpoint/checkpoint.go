// Package checkpoint implements the resume reader: it loads a prior
// export artifact and reduces a work-set to only the files that remain
// incomplete, using the same done-set bookkeeping idiom resumable
// batch jobs rely on elsewhere in this codebase.
package checkpoint

import (
	"github.com/wildlens/camtrap/internal/export"
	"github.com/wildlens/camtrap/internal/model"
)

// Result is the outcome of reading a prior checkpoint: the seed records
// to prepend to the exporter accumulator, and the set of source paths
// that are already complete and should be dropped from the work-set.
type Result struct {
	Seed     []model.ExportFrame
	Complete map[string]bool
}

// Load parses the artifact at path and computes which source files are
// already fully processed: a file is complete when the number of
// records observed for it equals the total_frames value those records
// report.
func Load(path string) (*Result, error) {
	records, err := export.Parse(path)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	totals := make(map[string]int)
	for _, r := range records {
		counts[r.File]++
		if r.TotalFrames > totals[r.File] {
			totals[r.File] = r.TotalFrames
		}
	}

	complete := make(map[string]bool)
	for file, count := range counts {
		if count == totals[file] {
			complete[file] = true
		}
	}

	return &Result{Seed: records, Complete: complete}, nil
}

// Reduce returns the subset of items whose source path is not marked
// complete in r.
func (r *Result) Reduce(items []model.FileItem) []model.FileItem {
	out := make([]model.FileItem, 0, len(items))
	for _, item := range items {
		if r.Complete[item.SourcePath] {
			continue
		}
		out = append(out, item)
	}
	return out
}
