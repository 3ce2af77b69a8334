// Package util provides small helpers shared across the pipeline stages.
package util

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// imageExtensions and videoExtensions are the media kinds the indexer
// and media worker recognize, keyed by lowercased extension without dot.
var (
	imageExtensions = map[string]bool{"jpg": true, "jpeg": true, "png": true}
	videoExtensions = map[string]bool{"mp4": true, "avi": true, "mkv": true, "mov": true}
)

// SentinelNames are directory or file basenames the indexer refuses to
// walk into: the exporter's own output class subtrees plus its artifacts.
var SentinelNames = map[string]bool{
	"Animal":      true,
	"Person":      true,
	"Vehicle":     true,
	"Blank":       true,
	"result.csv":  true,
	"result.json": true,
}

// Ext returns the lowercased extension of path without the leading dot.
func Ext(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

// IsImage reports whether ext (lowercased, no dot) names a still-image format.
func IsImage(ext string) bool {
	return imageExtensions[ext]
}

// IsVideo reports whether ext (lowercased, no dot) names a video container.
func IsVideo(ext string) bool {
	return videoExtensions[ext]
}

// IsMedia reports whether ext is a recognized still or video format.
func IsMedia(ext string) bool {
	return IsImage(ext) || IsVideo(ext)
}

// IsSentinel reports whether basename should stop the indexer from
// descending into or emitting a path.
func IsSentinel(basename string) bool {
	if strings.HasPrefix(basename, ".") {
		return true
	}
	return SentinelNames[basename]
}

// EnsureDirectory creates path (and parents) if it does not already exist.
func EnsureDirectory(path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", path, err)
	}
	return nil
}

// EvenCeil rounds v up to the next even integer.
func EvenCeil(v int) int {
	if v%2 != 0 {
		return v + 1
	}
	return v
}

// FormatBytesReadable formats a byte count as a human-readable string.
func FormatBytesReadable(bytes uint64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := uint64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
