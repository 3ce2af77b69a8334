package reporter

// NullReporter discards every event.
type NullReporter struct{}

func (NullReporter) Started(RunInfo)                   {}
func (NullReporter) FileProcessed(FileResult)           {}
func (NullReporter) Checkpoint(CheckpointSummary)       {}
func (NullReporter) TransportEvent(string)              {}
func (NullReporter) Warning(string)                     {}
func (NullReporter) Done(RunSummary)                    {}

// Composite fans an event out to every Reporter in Reporters.
type Composite struct {
	Reporters []Reporter
}

// NewComposite returns a Composite over reporters.
func NewComposite(reporters ...Reporter) *Composite {
	return &Composite{Reporters: reporters}
}

func (c *Composite) Started(info RunInfo) {
	for _, r := range c.Reporters {
		r.Started(info)
	}
}

func (c *Composite) FileProcessed(result FileResult) {
	for _, r := range c.Reporters {
		r.FileProcessed(result)
	}
}

func (c *Composite) Checkpoint(summary CheckpointSummary) {
	for _, r := range c.Reporters {
		r.Checkpoint(summary)
	}
}

func (c *Composite) TransportEvent(message string) {
	for _, r := range c.Reporters {
		r.TransportEvent(message)
	}
}

func (c *Composite) Warning(message string) {
	for _, r := range c.Reporters {
		r.Warning(message)
	}
}

func (c *Composite) Done(summary RunSummary) {
	for _, r := range c.Reporters {
		r.Done(summary)
	}
}
