package reporter

import (
	"bytes"
	"strings"
	"testing"
)

type recordingReporter struct {
	calls []string
}

func (r *recordingReporter) Started(RunInfo)              { r.calls = append(r.calls, "started") }
func (r *recordingReporter) FileProcessed(FileResult)     { r.calls = append(r.calls, "file") }
func (r *recordingReporter) Checkpoint(CheckpointSummary) { r.calls = append(r.calls, "checkpoint") }
func (r *recordingReporter) TransportEvent(string)        { r.calls = append(r.calls, "transport") }
func (r *recordingReporter) Warning(string)               { r.calls = append(r.calls, "warning") }
func (r *recordingReporter) Done(RunSummary)              { r.calls = append(r.calls, "done") }

func TestCompositeFansOutToAllReporters(t *testing.T) {
	a, b := &recordingReporter{}, &recordingReporter{}
	c := NewComposite(a, b)

	c.Started(RunInfo{})
	c.FileProcessed(FileResult{})
	c.Checkpoint(CheckpointSummary{})
	c.TransportEvent("x")
	c.Warning("y")
	c.Done(RunSummary{})

	want := []string{"started", "file", "checkpoint", "transport", "warning", "done"}
	for _, r := range []*recordingReporter{a, b} {
		if strings.Join(r.calls, ",") != strings.Join(want, ",") {
			t.Errorf("calls = %v, want %v", r.calls, want)
		}
	}
}

func TestNullReporterDoesNotPanic(t *testing.T) {
	var n NullReporter
	n.Started(RunInfo{})
	n.FileProcessed(FileResult{})
	n.Checkpoint(CheckpointSummary{})
	n.TransportEvent("x")
	n.Warning("y")
	n.Done(RunSummary{})
}

func TestLogReporterFormatsOneLinePerEvent(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogReporter(&buf)

	l.FileProcessed(FileResult{Path: "a.jpg", Err: "decode failed"})
	l.FileProcessed(FileResult{Path: "b.jpg", FrameCount: 3})
	l.Done(RunSummary{TotalFiles: 2, SucceededFiles: 1, FailedFiles: 1, RecordCount: 2, ExportPath: "result.json"})

	out := buf.String()
	if !strings.Contains(out, "file failed: a.jpg: decode failed") {
		t.Errorf("missing failed-file line: %q", out)
	}
	if !strings.Contains(out, "file processed: b.jpg frames=3") {
		t.Errorf("missing processed-file line: %q", out)
	}
	if !strings.Contains(out, "done: total=2 succeeded=1 failed=1") {
		t.Errorf("missing done line: %q", out)
	}
}
