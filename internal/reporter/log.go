package reporter

import (
	"fmt"
	"io"
)

// LogReporter writes one plain-text line per event to an io.Writer,
// typically the run's log file.
type LogReporter struct {
	w io.Writer
}

// NewLogReporter returns a LogReporter writing to w.
func NewLogReporter(w io.Writer) *LogReporter {
	return &LogReporter{w: w}
}

func (l *LogReporter) line(format string, args ...any) {
	fmt.Fprintf(l.w, format+"\n", args...)
}

func (l *LogReporter) Started(info RunInfo) {
	l.line("started: folder=%s url=%s", info.Folder, info.URL)
}

func (l *LogReporter) FileProcessed(result FileResult) {
	if result.Err != "" {
		l.line("file failed: %s: %s", result.Path, result.Err)
		return
	}
	l.line("file processed: %s frames=%d", result.Path, result.FrameCount)
}

func (l *LogReporter) Checkpoint(summary CheckpointSummary) {
	l.line("checkpoint: records=%d path=%s", summary.RecordCount, summary.Path)
}

func (l *LogReporter) TransportEvent(message string) {
	l.line("transport: %s", message)
}

func (l *LogReporter) Warning(message string) {
	l.line("warning: %s", message)
}

func (l *LogReporter) Done(summary RunSummary) {
	l.line("done: total=%d succeeded=%d failed=%d records=%d artifact=%s",
		summary.TotalFiles, summary.SucceededFiles, summary.FailedFiles, summary.RecordCount, summary.ExportPath)
}
