package reporter

import (
	"fmt"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
)

// TerminalReporter prints human-friendly progress to the terminal
// using a colorized progress bar.
type TerminalReporter struct {
	mu       sync.Mutex
	progress *progressbar.ProgressBar
	verbose  bool
	cyan     *color.Color
	green    *color.Color
	yellow   *color.Color
	red      *color.Color
	bold     *color.Color
}

// NewTerminalReporter returns a TerminalReporter; verbose enables
// per-file logging in addition to the progress bar.
func NewTerminalReporter(verbose bool) *TerminalReporter {
	return &TerminalReporter{
		verbose: verbose,
		cyan:    color.New(color.FgCyan, color.Bold),
		green:   color.New(color.FgGreen),
		yellow:  color.New(color.FgYellow, color.Bold),
		red:     color.New(color.FgRed, color.Bold),
		bold:    color.New(color.Bold),
	}
}

func (r *TerminalReporter) Started(info RunInfo) {
	fmt.Println()
	_, _ = r.cyan.Println("CAMTRAP")
	fmt.Printf("  Folder: %s\n", info.Folder)
	fmt.Printf("  Detector: %s\n", info.URL)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.progress = progressbar.NewOptions(-1,
		progressbar.OptionSetDescription("processing"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}

func (r *TerminalReporter) FileProcessed(result FileResult) {
	r.mu.Lock()
	if r.progress != nil {
		_ = r.progress.Add(1)
	}
	r.mu.Unlock()

	if result.Err != "" {
		_, _ = r.red.Printf("\n  x %s: %s\n", result.Path, result.Err)
		return
	}
	if r.verbose {
		fmt.Printf("\n  %s %s (%d frame(s))\n", r.green.Sprint("ok"), result.Path, result.FrameCount)
	}
}

func (r *TerminalReporter) Checkpoint(summary CheckpointSummary) {
	if r.verbose {
		fmt.Printf("\n  checkpoint: %d records -> %s\n", summary.RecordCount, summary.Path)
	}
}

func (r *TerminalReporter) TransportEvent(message string) {
	fmt.Println()
	_, _ = r.yellow.Printf("TRANSPORT: %s\n", message)
}

func (r *TerminalReporter) Warning(message string) {
	fmt.Println()
	_, _ = r.yellow.Printf("WARN: %s\n", message)
}

func (r *TerminalReporter) Done(summary RunSummary) {
	r.mu.Lock()
	if r.progress != nil {
		_ = r.progress.Finish()
	}
	r.mu.Unlock()

	fmt.Println()
	_, _ = r.cyan.Println("SUMMARY")
	fmt.Printf("  %s\n", r.bold.Sprintf("%d of %d files succeeded", summary.SucceededFiles, summary.TotalFiles))
	fmt.Printf("  Records exported: %d\n", summary.RecordCount)
	fmt.Printf("  Artifact: %s\n", r.green.Sprint(summary.ExportPath))
}
