// Package model holds the data types shared across the pipeline stages.
package model

import "time"

// FileItem identifies one discovered media file. Identity is the full
// tuple: within one run of the indexer no two files share the same
// (FolderID, FileID) pair. The IDs are walk-order counters, so a later
// run over a changed tree can assign them differently.
type FileItem struct {
	FolderID   int
	FileID     int
	SourcePath string
	StagedPath string // equals SourcePath until staging populates it
}

// Path returns the path the media worker should read from: the staged
// copy if staging populated one, otherwise the original source.
func (f FileItem) Path() string {
	if f.StagedPath != "" {
		return f.StagedPath
	}
	return f.SourcePath
}

// Bbox is a normalized detection rectangle as returned by the detector.
type Bbox struct {
	X1    float32 `json:"x1"`
	Y1    float32 `json:"y1"`
	X2    float32 `json:"x2"`
	Y2    float32 `json:"y2"`
	Class int32   `json:"class"`
	Score float32 `json:"score"`
}

// Frame is a successfully decoded and re-encoded image ready to send.
type Frame struct {
	File        FileItem
	Image       []byte // opaque lossy-codec payload
	Width       int
	Height      int
	FrameIndex  int // 0 for stills; sampled i-frame index for video
	TotalFrames int // 1 for stills; count of sampled frames for video
	ShootTime   *time.Time
}

// ErrFile is a file that failed decode or encode.
type ErrFile struct {
	File       FileItem
	Diagnostic string
}

// ExportFrame is the persisted per-frame record written to the export
// artifact. Exactly one of Bboxes or Error is populated once finalized.
type ExportFrame struct {
	File        string  `json:"file"`
	FrameIndex  int     `json:"frame_index"`
	ShootTime   *string `json:"shoot_time"`
	TotalFrames int     `json:"total_frames"`
	Bboxes      []Bbox  `json:"bboxes"`
	Label       *string `json:"label"`
	Error       *string `json:"error"`
}

// Key returns the (file, frame_index) identity of a record. The
// exporter deduplicates on the same pair at finalize, using its own
// key type rather than this method.
func (e ExportFrame) Key() [2]any {
	return [2]any{e.File, e.FrameIndex}
}
