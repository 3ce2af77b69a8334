// Package reporter implements progress reporting for a pipeline run:
// terminal output, log-file output, or both, adapted from the
// teacher's event-driven Reporter interface to the camera-trap
// pipeline's own events.
package reporter

// Reporter receives progress events during a pipeline run. Every
// method is called synchronously from pipeline goroutines, so
// implementations must be safe for concurrent use.
type Reporter interface {
	// Started announces the run's input root and detector endpoint.
	Started(info RunInfo)

	// FileProcessed is called once per completed FileItem, whether it
	// produced frames or an ErrFile.
	FileProcessed(result FileResult)

	// Checkpoint receives a summary of an artifact rewrite. The
	// pipeline driver does not emit this event: the exporter's
	// checkpoint writes are not reported to the Reporter.
	Checkpoint(summary CheckpointSummary)

	// TransportEvent reports a distinguished RPC stream termination
	// (Unauthenticated, ResourceExhausted, or any other status).
	TransportEvent(message string)

	// Warning reports a non-fatal condition. The pipeline driver does
	// not emit this event; tolerated decoder warnings and staging
	// failures are not reported through it.
	Warning(message string)

	// Done announces the final outcome of the run.
	Done(summary RunSummary)
}

// RunInfo describes a run as it begins.
type RunInfo struct {
	Folder string
	URL    string
}

// FileResult reports the outcome for one source file.
type FileResult struct {
	Path       string
	FrameCount int
	Err        string // empty on success
}

// CheckpointSummary reports the state of the artifact at a checkpoint.
type CheckpointSummary struct {
	RecordCount int
	Path        string
}

// RunSummary reports the final state of a completed or aborted run.
type RunSummary struct {
	TotalFiles     int
	SucceededFiles int
	FailedFiles    int
	RecordCount    int
	ExportPath     string
}
