// Package staging implements the staging I/O worker (component D): a
// single-threaded copier that moves files from source storage into a
// local buffer directory ahead of decode, bounded by a channel of
// capacity buffer_size so on-disk staging footprint stays bounded.
package staging

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/wildlens/camtrap/internal/model"
	"github.com/wildlens/camtrap/internal/util"
)

// Worker copies each incoming FileItem's source into Dir, one file at
// a time, and emits the FileItem with StagedPath populated.
type Worker struct {
	Dir string
}

// Run copies every item in items into w.Dir in order, sending the
// staged FileItem to out. A copy failure is reported on errOut as a
// StagingError-tagged ErrFile, surfaced rather than silently dropped,
// and that item is not forwarded to out. Run closes out when items is
// exhausted or ctx is cancelled.
func (w *Worker) Run(ctx context.Context, items []model.FileItem, out chan<- model.FileItem, errOut chan<- model.ErrFile) {
	defer close(out)

	for _, item := range items {
		select {
		case <-ctx.Done():
			return
		default:
		}

		staged, err := w.copyOne(item)
		if err != nil {
			select {
			case errOut <- model.ErrFile{File: item, Diagnostic: fmt.Sprintf("staging: %v", err)}:
			case <-ctx.Done():
				return
			}
			continue
		}

		select {
		case out <- staged:
		case <-ctx.Done():
			return
		}
	}
}

func (w *Worker) copyOne(item model.FileItem) (model.FileItem, error) {
	ext := util.Ext(item.SourcePath)
	dest, err := util.CreateTempFilePath(w.Dir, "stage", ext)
	if err != nil {
		return model.FileItem{}, fmt.Errorf("allocate staged path: %w", err)
	}

	if err := copyFile(item.SourcePath, dest); err != nil {
		return model.FileItem{}, err
	}

	item.StagedPath = dest
	return item, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create staged file: %w", err)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("copy: %w", err)
	}
	return out.Close()
}

// Cleanup removes the staging directory in its entirety, invoked on
// every exit path of the run.
func Cleanup(dir string) error {
	if dir == "" {
		return nil
	}
	return os.RemoveAll(dir)
}
