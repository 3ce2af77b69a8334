package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/wildlens/camtrap/internal/model"
)

// FormatFromExtension maps a file extension (with or without leading
// dot) to a Format, or an error if unrecognized.
func FormatFromExtension(ext string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	default:
		return 0, fmt.Errorf("unrecognized checkpoint extension %q", ext)
	}
}

// Parse reads a prior export artifact (JSON or CSV, chosen by the file
// extension) and returns its ExportFrame records in file order.
func Parse(path string) ([]model.ExportFrame, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("checkpoint path does not exist: %s", path)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("checkpoint path is not a regular file: %s", path)
	}

	format, err := FormatFromExtension(filepath.Ext(path))
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open checkpoint %s: %w", path, err)
	}
	defer f.Close()

	if format == FormatCSV {
		return parseCSV(f)
	}
	return parseJSON(f)
}

func parseJSON(r io.Reader) ([]model.ExportFrame, error) {
	var frames []model.ExportFrame
	if err := json.NewDecoder(r).Decode(&frames); err != nil {
		return nil, fmt.Errorf("decode json checkpoint: %w", err)
	}
	return frames, nil
}

func parseCSV(r io.Reader) ([]model.ExportFrame, error) {
	cr := csv.NewReader(r)
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("decode csv checkpoint: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	frames := make([]model.ExportFrame, 0, len(rows)-1)
	for _, row := range rows[1:] { // skip header
		if len(row) != len(csvHeader) {
			return nil, fmt.Errorf("malformed checkpoint row: expected %d fields, got %d", len(csvHeader), len(row))
		}
		frame, err := rowToFrame(row)
		if err != nil {
			return nil, err
		}
		frames = append(frames, frame)
	}
	return frames, nil
}

func rowToFrame(row []string) (model.ExportFrame, error) {
	frameIndex, err := strconv.Atoi(row[1])
	if err != nil {
		return model.ExportFrame{}, fmt.Errorf("parse frame_index: %w", err)
	}
	totalFrames, err := strconv.Atoi(row[3])
	if err != nil {
		return model.ExportFrame{}, fmt.Errorf("parse total_frames: %w", err)
	}

	frame := model.ExportFrame{
		File:        row[0],
		FrameIndex:  frameIndex,
		TotalFrames: totalFrames,
	}
	if row[2] != "" {
		shootTime := row[2]
		frame.ShootTime = &shootTime
	}
	if row[4] != "" {
		if err := json.Unmarshal([]byte(row[4]), &frame.Bboxes); err != nil {
			return model.ExportFrame{}, fmt.Errorf("parse bboxes: %w", err)
		}
	}
	if row[5] != "" {
		label := row[5]
		frame.Label = &label
	}
	if row[6] != "" {
		errStr := row[6]
		frame.Error = &errStr
	}
	return frame, nil
}
