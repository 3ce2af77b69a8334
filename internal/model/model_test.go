package model

import "testing"

func TestFileItemPathPrefersStagedPath(t *testing.T) {
	f := FileItem{SourcePath: "/src/a.jpg"}
	if got := f.Path(); got != "/src/a.jpg" {
		t.Errorf("Path() = %q, want source path when no staged path set", got)
	}

	f.StagedPath = "/staging/a.jpg"
	if got := f.Path(); got != "/staging/a.jpg" {
		t.Errorf("Path() = %q, want staged path once populated", got)
	}
}

func TestExportFrameKeyDistinguishesFrameIndex(t *testing.T) {
	a := ExportFrame{File: "a.mp4", FrameIndex: 0}
	b := ExportFrame{File: "a.mp4", FrameIndex: 1}
	c := ExportFrame{File: "a.mp4", FrameIndex: 0}

	if a.Key() == b.Key() {
		t.Error("records with different FrameIndex produced the same Key")
	}
	if a.Key() != c.Key() {
		t.Error("records with identical File+FrameIndex produced different Keys")
	}
}
