// Package export implements the checkpointing exporter: it accumulates
// ExportFrame records and periodically rewrites the artifact on disk.
package export

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/wildlens/camtrap/internal/model"
)

// Format selects the on-disk artifact encoding.
type Format int

const (
	FormatJSON Format = iota
	FormatCSV
)

// ParseFormat maps a CLI export flag value to a Format.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "json", "":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	default:
		return 0, fmt.Errorf("unrecognized export format %q", s)
	}
}

func (f Format) filename() string {
	if f == FormatCSV {
		return "result.csv"
	}
	return "result.json"
}

// Exporter reads ExportFrame records from In, checkpointing the full
// accumulator to disk every CheckpointEvery frames and performing one
// final write when In closes.
type Exporter struct {
	In              <-chan model.ExportFrame
	OutputDir       string
	Format          Format
	CheckpointEvery int
	Logf            func(format string, args ...any)

	path        string
	accumulator []model.ExportFrame
}

// Seed pre-populates the accumulator with records recovered from a
// prior checkpoint (used by the resume reader, component E).
func (e *Exporter) Seed(records []model.ExportFrame) {
	e.accumulator = append(e.accumulator, records...)
}

// Run drains In until it closes, writing a checkpoint every
// CheckpointEvery records and a final deduplicated artifact at the end.
// Run never returns an error for a failed write: write failures are
// logged and the run continues, per the exporter's fault-tolerance
// contract.
func (e *Exporter) Run(ctx context.Context) {
	e.path = filepath.Join(e.OutputDir, e.Format.filename())

	sinceCheckpoint := 0
	checkpointEvery := e.CheckpointEvery
	if checkpointEvery <= 0 {
		checkpointEvery = 1
	}

	for {
		select {
		case frame, ok := <-e.In:
			if !ok {
				e.finalize()
				return
			}
			e.accumulator = append(e.accumulator, frame)
			sinceCheckpoint++
			if sinceCheckpoint >= checkpointEvery {
				sinceCheckpoint = 0
				e.checkpoint()
			}
		case <-ctx.Done():
			// Drain remaining buffered frames so the last checkpoint
			// reflects everything already produced, then stop.
			e.drainRemaining()
			e.finalize()
			return
		}
	}
}

func (e *Exporter) drainRemaining() {
	for {
		select {
		case frame, ok := <-e.In:
			if !ok {
				return
			}
			e.accumulator = append(e.accumulator, frame)
		default:
			return
		}
	}
}

func (e *Exporter) checkpoint() {
	if err := writeArtifact(e.path, e.Format, e.accumulator); err != nil {
		e.log("checkpoint write failed: %v", err)
	}
}

// finalize deduplicates the accumulator by (file, frame_index) before
// the last write, keeping the first occurrence in arrival order so a
// resumed record wins over any reprocessed duplicate.
func (e *Exporter) finalize() {
	e.accumulator = dedupe(e.accumulator)
	if err := writeArtifact(e.path, e.Format, e.accumulator); err != nil {
		e.log("final write failed: %v", err)
	}
}

func (e *Exporter) log(format string, args ...any) {
	if e.Logf != nil {
		e.Logf(format, args...)
	}
}

func dedupe(frames []model.ExportFrame) []model.ExportFrame {
	type key struct {
		file  string
		index int
	}
	seen := make(map[key]bool, len(frames))
	out := make([]model.ExportFrame, 0, len(frames))
	for _, f := range frames {
		k := key{f.File, f.FrameIndex}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, f)
	}
	return out
}

func writeArtifact(path string, format Format, frames []model.ExportFrame) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create temp artifact: %w", err)
	}

	var writeErr error
	switch format {
	case FormatCSV:
		writeErr = writeCSV(f, frames)
	default:
		writeErr = writeJSON(f, frames)
	}

	if closeErr := f.Close(); writeErr == nil {
		writeErr = closeErr
	}
	if writeErr != nil {
		_ = os.Remove(tmp)
		return writeErr
	}

	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename temp artifact: %w", err)
	}
	return nil
}

func writeJSON(f *os.File, frames []model.ExportFrame) error {
	if frames == nil {
		frames = []model.ExportFrame{}
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(frames)
}

var csvHeader = []string{"file", "frame_index", "shoot_time", "total_frames", "bboxes", "label", "error"}

func writeCSV(f *os.File, frames []model.ExportFrame) error {
	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return err
	}
	for _, frame := range frames {
		row, err := csvRow(frame)
		if err != nil {
			return err
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func csvRow(frame model.ExportFrame) ([]string, error) {
	shootTime := ""
	if frame.ShootTime != nil {
		shootTime = *frame.ShootTime
	}
	label := ""
	if frame.Label != nil {
		label = *frame.Label
	}
	errStr := ""
	if frame.Error != nil {
		errStr = *frame.Error
	}
	bboxes := ""
	if len(frame.Bboxes) > 0 {
		b, err := json.Marshal(frame.Bboxes)
		if err != nil {
			return nil, fmt.Errorf("encode bboxes: %w", err)
		}
		bboxes = string(b)
	}
	return []string{
		frame.File,
		fmt.Sprintf("%d", frame.FrameIndex),
		shootTime,
		fmt.Sprintf("%d", frame.TotalFrames),
		bboxes,
		label,
		errStr,
	}, nil
}
