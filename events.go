package camtrap

import "time"

// Event types for external integration, carrying pipeline-domain
// payloads over a JSON event stream.
const (
	EventTypeStarted        = "started"
	EventTypeFileProcessed  = "file_processed"
	EventTypeCheckpoint     = "checkpoint"
	EventTypeTransportEvent = "transport_event"
	EventTypeWarning        = "warning"
	EventTypeDone           = "done"
)

// Event is the interface for all camtrap events.
type Event interface {
	Type() string
	Timestamp() int64
}

// BaseEvent contains common fields for all events.
type BaseEvent struct {
	EventType string `json:"type"`
	Time      int64  `json:"timestamp"`
}

func (e BaseEvent) Type() string     { return e.EventType }
func (e BaseEvent) Timestamp() int64 { return e.Time }

// StartedEvent announces the folder and detector endpoint for a run.
type StartedEvent struct {
	BaseEvent
	Folder string `json:"folder"`
	URL    string `json:"url"`
}

// FileProcessedEvent reports one file's outcome.
type FileProcessedEvent struct {
	BaseEvent
	Path       string `json:"path"`
	FrameCount int    `json:"frame_count"`
	Err        string `json:"error,omitempty"`
}

// CheckpointEvent reports a periodic export checkpoint write.
type CheckpointEvent struct {
	BaseEvent
	RecordCount int    `json:"record_count"`
	Path        string `json:"path"`
}

// TransportEventEvent reports a detector-stream lifecycle message.
type TransportEventEvent struct {
	BaseEvent
	Message string `json:"message"`
}

// WarningEvent represents a non-fatal warning.
type WarningEvent struct {
	BaseEvent
	Message string `json:"message"`
}

// DoneEvent represents the terminal summary of a finished run.
type DoneEvent struct {
	BaseEvent
	TotalFiles     int    `json:"total_files"`
	SucceededFiles int    `json:"succeeded_files"`
	FailedFiles    int    `json:"failed_files"`
	RecordCount    int    `json:"record_count"`
	ExportPath     string `json:"export_path"`
}

// EventHandler is called with events during a run.
type EventHandler func(Event) error

// NewTimestamp returns the current Unix timestamp.
func NewTimestamp() int64 {
	return time.Now().Unix()
}

// eventReporter adapts EventHandler to the Reporter interface.
type eventReporter struct {
	handler EventHandler
}

func newEventReporter(handler EventHandler) *eventReporter {
	return &eventReporter{handler: handler}
}

func (r *eventReporter) Started(info RunInfo) {
	_ = r.handler(StartedEvent{
		BaseEvent: BaseEvent{EventType: EventTypeStarted, Time: NewTimestamp()},
		Folder:    info.Folder,
		URL:       info.URL,
	})
}

func (r *eventReporter) FileProcessed(fr FileResult) {
	_ = r.handler(FileProcessedEvent{
		BaseEvent:  BaseEvent{EventType: EventTypeFileProcessed, Time: NewTimestamp()},
		Path:       fr.Path,
		FrameCount: fr.FrameCount,
		Err:        fr.Err,
	})
}

func (r *eventReporter) Checkpoint(cs CheckpointSummary) {
	_ = r.handler(CheckpointEvent{
		BaseEvent:   BaseEvent{EventType: EventTypeCheckpoint, Time: NewTimestamp()},
		RecordCount: cs.RecordCount,
		Path:        cs.Path,
	})
}

func (r *eventReporter) TransportEvent(message string) {
	_ = r.handler(TransportEventEvent{
		BaseEvent: BaseEvent{EventType: EventTypeTransportEvent, Time: NewTimestamp()},
		Message:   message,
	})
}

func (r *eventReporter) Warning(message string) {
	_ = r.handler(WarningEvent{
		BaseEvent: BaseEvent{EventType: EventTypeWarning, Time: NewTimestamp()},
		Message:   message,
	})
}

func (r *eventReporter) Done(rs RunSummary) {
	_ = r.handler(DoneEvent{
		BaseEvent:      BaseEvent{EventType: EventTypeDone, Time: NewTimestamp()},
		TotalFiles:     rs.TotalFiles,
		SucceededFiles: rs.SucceededFiles,
		FailedFiles:    rs.FailedFiles,
		RecordCount:    rs.RecordCount,
		ExportPath:     rs.ExportPath,
	})
}
