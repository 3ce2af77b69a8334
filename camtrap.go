// Package camtrap provides a Go library for running a camera-trap media
// inference pipeline: walk a folder of photos and videos, decode and
// resize each frame, stream it to a detector over gRPC, and export the
// correlated detections as JSON or CSV.
//
// Basic usage:
//
//	run, err := camtrap.New("/data/site-12", "detector.local:9443", token,
//	    camtrap.WithMaxFrames(5),
//	    camtrap.WithQuality(80),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	summary, err := run.Process(ctx, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("processed %d/%d files\n", summary.SucceededFiles, summary.TotalFiles)
package camtrap

import (
	"context"

	"github.com/wildlens/camtrap/internal/config"
	"github.com/wildlens/camtrap/internal/pipeline"
	"github.com/wildlens/camtrap/internal/reporter"
)

// Run is the main entry point for a single pipeline invocation.
type Run struct {
	config *config.Config
}

// Summary reports the outcome of a finished run.
type Summary struct {
	TotalFiles     int
	SucceededFiles int
	FailedFiles    int
	RecordCount    int
	ExportPath     string
}

// Option configures a Run.
type Option func(*config.Config)

// New returns a Run over folder, dialing url with token for authentication.
func New(folder, url, token string, opts ...Option) (*Run, error) {
	cfg := config.New(folder, url, token)

	for _, opt := range opts {
		opt(cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Run{config: cfg}, nil
}

// WithMaxFrames sets the number of frames sampled per video.
func WithMaxFrames(n int) Option {
	return func(c *config.Config) { c.MaxFrames = n }
}

// WithIFrameOnly toggles key-frame-only video decoding.
func WithIFrameOnly(iframeOnly bool) Option {
	return func(c *config.Config) { c.IFrameOnly = iframeOnly }
}

// WithThresholds sets the NMS IoU and detection confidence thresholds
// forwarded with every detect request.
func WithThresholds(iou, conf float32) Option {
	return func(c *config.Config) {
		c.IOU = iou
		c.Conf = conf
	}
}

// WithQuality sets the re-encode quality (0-100) used when staging
// still images and sampled video frames for transport.
func WithQuality(quality int) Option {
	return func(c *config.Config) { c.Quality = quality }
}

// WithImgSize sets the longer-side resize target in pixels.
func WithImgSize(imgsz int) Option {
	return func(c *config.Config) { c.ImgSize = imgsz }
}

// WithExportFormat sets the export artifact format: "json" or "csv".
func WithExportFormat(format string) Option {
	return func(c *config.Config) { c.Export = format }
}

// WithCheckpoint sets how many records accumulate between checkpoint writes.
func WithCheckpoint(n int) Option {
	return func(c *config.Config) { c.Checkpoint = n }
}

// WithResumeFrom points Process at a prior export artifact to resume from.
func WithResumeFrom(path string) Option {
	return func(c *config.Config) { c.ResumeFrom = path }
}

// WithStaging enables copy-to-staging-directory mode with the given
// directory and channel capacity.
func WithStaging(dir string, bufferSize int) Option {
	return func(c *config.Config) {
		c.BufferPath = dir
		c.BufferSize = bufferSize
	}
}

// Process runs the pipeline to completion. If handler is non-nil, it
// receives a JSON-serializable Event stream for the run's reporter
// callbacks; a nil handler discards them.
func (r *Run) Process(ctx context.Context, handler EventHandler) (*Summary, error) {
	var rep reporter.Reporter = reporter.NullReporter{}
	if handler != nil {
		rep = newEventReporter(handler)
	}

	collector := &summaryReporter{inner: rep}
	driver := pipeline.New(r.config, collector, nil)
	if err := driver.Run(ctx); err != nil {
		return nil, err
	}

	return &collector.summary, nil
}

// summaryReporter wraps another Reporter and captures the terminal
// RunSummary so Process can return it directly to the caller.
type summaryReporter struct {
	inner   reporter.Reporter
	summary Summary
}

func (s *summaryReporter) Started(info reporter.RunInfo)           { s.inner.Started(info) }
func (s *summaryReporter) FileProcessed(fr reporter.FileResult)     { s.inner.FileProcessed(fr) }
func (s *summaryReporter) Checkpoint(cs reporter.CheckpointSummary) { s.inner.Checkpoint(cs) }
func (s *summaryReporter) TransportEvent(message string)            { s.inner.TransportEvent(message) }
func (s *summaryReporter) Warning(message string)                   { s.inner.Warning(message) }

func (s *summaryReporter) Done(rs reporter.RunSummary) {
	s.summary = Summary{
		TotalFiles:     rs.TotalFiles,
		SucceededFiles: rs.SucceededFiles,
		FailedFiles:    rs.FailedFiles,
		RecordCount:    rs.RecordCount,
		ExportPath:     rs.ExportPath,
	}
	s.inner.Done(rs)
}
