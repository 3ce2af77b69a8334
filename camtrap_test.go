package camtrap

import "testing"

func TestNewAppliesOptions(t *testing.T) {
	run, err := New("/data", "detector:443", "tok",
		WithMaxFrames(7),
		WithThresholds(0.5, 0.3),
		WithQuality(85),
		WithExportFormat("csv"),
	)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if run.config.MaxFrames != 7 {
		t.Errorf("MaxFrames = %d, want 7", run.config.MaxFrames)
	}
	if run.config.IOU != 0.5 || run.config.Conf != 0.3 {
		t.Errorf("IOU/Conf = %v/%v, want 0.5/0.3", run.config.IOU, run.config.Conf)
	}
	if run.config.Quality != 85 {
		t.Errorf("Quality = %d, want 85", run.config.Quality)
	}
	if run.config.Export != "csv" {
		t.Errorf("Export = %q, want csv", run.config.Export)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	if _, err := New("", "detector:443", "tok"); err == nil {
		t.Fatal("New() with empty folder returned nil error")
	}
}

func TestWithStagingSetsBufferFields(t *testing.T) {
	run, err := New("/data", "detector:443", "tok", WithStaging("/buf", 42))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if run.config.BufferPath != "/buf" || run.config.BufferSize != 42 {
		t.Errorf("BufferPath/BufferSize = %q/%d, want /buf/42", run.config.BufferPath, run.config.BufferSize)
	}
}

func TestEventHandlerReceivesDoneEvent(t *testing.T) {
	var events []Event
	handler := func(e Event) error {
		events = append(events, e)
		return nil
	}
	rep := newEventReporter(handler)
	rep.Done(RunSummary{TotalFiles: 3, SucceededFiles: 2, FailedFiles: 1})

	if len(events) != 1 {
		t.Fatalf("len(events) = %d, want 1", len(events))
	}
	done, ok := events[0].(DoneEvent)
	if !ok {
		t.Fatalf("event type = %T, want DoneEvent", events[0])
	}
	if done.TotalFiles != 3 || done.SucceededFiles != 2 || done.FailedFiles != 1 {
		t.Errorf("unexpected DoneEvent: %+v", done)
	}
	if done.Type() != EventTypeDone {
		t.Errorf("Type() = %q, want %q", done.Type(), EventTypeDone)
	}
}
