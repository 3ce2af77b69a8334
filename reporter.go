// Package camtrap re-exports the internal Reporter interface and its
// supporting types so callers can implement their own reporter without
// importing an internal package.

package camtrap

import "github.com/wildlens/camtrap/internal/reporter"

// Reporter receives progress callbacks during a Run.
type Reporter = reporter.Reporter

// NullReporter is a no-op Reporter.
type NullReporter = reporter.NullReporter

// RunInfo describes the folder and detector endpoint for a starting run.
type RunInfo = reporter.RunInfo

// FileResult reports one file's processing outcome.
type FileResult = reporter.FileResult

// CheckpointSummary reports a periodic export checkpoint.
type CheckpointSummary = reporter.CheckpointSummary

// RunSummary reports the terminal state of a finished run.
type RunSummary = reporter.RunSummary
