package util

import "testing"

func TestExt(t *testing.T) {
	cases := map[string]string{
		"photo.JPG":        "jpg",
		"clip.mp4":         "mp4",
		"no-extension":     "",
		"dir/nested.MOV":   "mov",
		"archive.tar.gz":   "gz",
	}
	for path, want := range cases {
		if got := Ext(path); got != want {
			t.Errorf("Ext(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestIsImageIsVideoIsMedia(t *testing.T) {
	if !IsImage("jpg") || !IsImage("jpeg") || !IsImage("png") {
		t.Error("expected jpg/jpeg/png to be images")
	}
	if IsImage("mp4") {
		t.Error("mp4 should not be classified as an image")
	}
	if !IsVideo("mp4") || !IsVideo("mkv") || !IsVideo("avi") || !IsVideo("mov") {
		t.Error("expected mp4/mkv/avi/mov to be videos")
	}
	if !IsMedia("jpg") || !IsMedia("mp4") {
		t.Error("IsMedia should accept both image and video extensions")
	}
	if IsMedia("txt") {
		t.Error("txt should not be classified as media")
	}
}

func TestIsSentinel(t *testing.T) {
	for _, name := range []string{"Animal", "Person", "Vehicle", "Blank", "result.csv", "result.json", ".hidden"} {
		if !IsSentinel(name) {
			t.Errorf("IsSentinel(%q) = false, want true", name)
		}
	}
	for _, name := range []string{"animal", "photo.jpg", "subdir"} {
		if IsSentinel(name) {
			t.Errorf("IsSentinel(%q) = true, want false", name)
		}
	}
}

func TestEvenCeil(t *testing.T) {
	cases := map[int]int{0: 0, 1: 2, 2: 2, 3: 4, 1280: 1280, 1281: 1282}
	for in, want := range cases {
		if got := EvenCeil(in); got != want {
			t.Errorf("EvenCeil(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestFormatBytesReadable(t *testing.T) {
	cases := map[uint64]string{
		0:       "0 B",
		1023:    "1023 B",
		1024:    "1.0 KiB",
		1 << 20: "1.0 MiB",
	}
	for in, want := range cases {
		if got := FormatBytesReadable(in); got != want {
			t.Errorf("FormatBytesReadable(%d) = %q, want %q", in, got, want)
		}
	}
}
