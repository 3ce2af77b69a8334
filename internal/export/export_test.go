package export

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/wildlens/camtrap/internal/model"
)

func strPtr(s string) *string { return &s }

func TestParseFormat(t *testing.T) {
	cases := map[string]Format{"json": FormatJSON, "": FormatJSON, "csv": FormatCSV}
	for in, want := range cases {
		got, err := ParseFormat(in)
		if err != nil {
			t.Fatalf("ParseFormat(%q) error: %v", in, err)
		}
		if got != want {
			t.Errorf("ParseFormat(%q) = %v, want %v", in, got, want)
		}
	}

	if _, err := ParseFormat("xml"); err == nil {
		t.Fatal("ParseFormat(\"xml\") returned nil error, want error")
	}
}

func TestDedupeKeepsFirstOccurrence(t *testing.T) {
	frames := []model.ExportFrame{
		{File: "a.jpg", FrameIndex: 0, Label: strPtr("Animal")},
		{File: "b.jpg", FrameIndex: 0, Label: strPtr("Blank")},
		{File: "a.jpg", FrameIndex: 0, Label: strPtr("Person")}, // duplicate, dropped
		{File: "a.jpg", FrameIndex: 1, Label: strPtr("Vehicle")},
	}

	out := dedupe(frames)
	if len(out) != 3 {
		t.Fatalf("len(out) = %d, want 3", len(out))
	}
	if *out[0].Label != "Animal" {
		t.Errorf("out[0].Label = %q, want Animal (first occurrence wins)", *out[0].Label)
	}
}

func TestExporterRunWritesJSONAndFinalizesDeduped(t *testing.T) {
	dir := t.TempDir()
	in := make(chan model.ExportFrame)

	exp := &Exporter{
		In:              in,
		OutputDir:       dir,
		Format:          FormatJSON,
		CheckpointEvery: 100,
	}
	exp.Seed([]model.ExportFrame{{File: "resumed.jpg", FrameIndex: 0, Label: strPtr("Animal")}})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		exp.Run(ctx)
		close(done)
	}()

	in <- model.ExportFrame{File: "resumed.jpg", FrameIndex: 0, Label: strPtr("Person")} // duplicate of seed
	in <- model.ExportFrame{File: "new.jpg", FrameIndex: 0, Label: strPtr("Blank")}
	cancel()
	<-done

	frames, err := Parse(filepath.Join(dir, "result.json"))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(frames) != 2 {
		t.Fatalf("len(frames) = %d, want 2 (deduped)", len(frames))
	}

	byFile := map[string]model.ExportFrame{}
	for _, f := range frames {
		byFile[f.File] = f
	}
	if got := byFile["resumed.jpg"].Label; got == nil || *got != "Animal" {
		t.Errorf("resumed.jpg label = %v, want Animal (seed wins over duplicate)", got)
	}
	if _, ok := byFile["new.jpg"]; !ok {
		t.Error("new.jpg missing from finalized export")
	}
}

func TestExporterRunWritesCSVRoundTrip(t *testing.T) {
	dir := t.TempDir()
	in := make(chan model.ExportFrame)

	exp := &Exporter{In: in, OutputDir: dir, Format: FormatCSV, CheckpointEvery: 1}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		exp.Run(ctx)
		close(done)
	}()

	in <- model.ExportFrame{
		File:        "vid.mp4",
		FrameIndex:  2,
		TotalFrames: 3,
		Bboxes:      []model.Bbox{{X1: 0.1, Y1: 0.2, X2: 0.3, Y2: 0.4, Class: 1, Score: 0.9}},
		Label:       strPtr("Animal"),
	}
	cancel()
	<-done

	frames, err := Parse(filepath.Join(dir, "result.csv"))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(frames) != 1 {
		t.Fatalf("len(frames) = %d, want 1", len(frames))
	}
	f := frames[0]
	if f.File != "vid.mp4" || f.FrameIndex != 2 || f.TotalFrames != 3 {
		t.Errorf("unexpected round-tripped frame: %+v", f)
	}
	if len(f.Bboxes) != 1 || f.Bboxes[0].Class != 1 {
		t.Errorf("bboxes did not round-trip: %+v", f.Bboxes)
	}
}

func TestWriteArtifactIsAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "result.json")

	if err := writeArtifact(path, FormatJSON, []model.ExportFrame{{File: "a.jpg"}}); err != nil {
		t.Fatalf("writeArtifact() error: %v", err)
	}

	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file left behind after successful write")
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("final artifact missing: %v", err)
	}
}
