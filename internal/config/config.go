// Package config provides configuration types and defaults for the
// pipeline's CLI surface.
package config

import "fmt"

// Default constants.
const (
	DefaultMaxFrames  int     = 3
	DefaultIFrameOnly bool    = true
	DefaultIOU        float32 = 0.45
	DefaultConf       float32 = 0.2
	DefaultQuality    int     = 70
	DefaultImgSize    int     = 1280
	DefaultCheckpoint int     = 100
	DefaultBufferSize int     = 20
	DefaultExport     string  = "json"
	DefaultLogLevel   string  = "info"
)

// Config holds all run configuration for the pipeline.
type Config struct {
	Folder     string // input root
	URL        string // detector endpoint
	Token      string // auth token
	MaxFrames  int
	IFrameOnly bool
	IOU        float32
	Conf       float32
	Quality    int
	ImgSize    int
	Export     string // "json" or "csv"
	LogLevel   string
	LogFile    string
	Checkpoint int
	ResumeFrom string // path to a prior export artifact, optional
	BufferPath string // staging directory, optional; empty disables staging
	BufferSize int

	Verbose bool
}

// New returns a Config populated with documented defaults.
func New(folder, url, token string) *Config {
	return &Config{
		Folder:     folder,
		URL:        url,
		Token:      token,
		MaxFrames:  DefaultMaxFrames,
		IFrameOnly: DefaultIFrameOnly,
		IOU:        DefaultIOU,
		Conf:       DefaultConf,
		Quality:    DefaultQuality,
		ImgSize:    DefaultImgSize,
		Export:     DefaultExport,
		LogLevel:   DefaultLogLevel,
		Checkpoint: DefaultCheckpoint,
		BufferSize: DefaultBufferSize,
	}
}

// Validate checks the configuration for fatal misconfiguration: an
// empty folder or URL, checkpoint <= 0, buffer_size <= 0, or an export
// format other than "json" or "csv". The URL is only checked for being
// non-empty.
func (c *Config) Validate() error {
	if c.Folder == "" {
		return fmt.Errorf("folder is required")
	}
	if c.URL == "" {
		return fmt.Errorf("url is required")
	}
	if c.Checkpoint <= 0 {
		return fmt.Errorf("checkpoint must be positive, got %d", c.Checkpoint)
	}
	if c.BufferSize <= 0 {
		return fmt.Errorf("buffer_size must be positive, got %d", c.BufferSize)
	}
	if c.Export != "json" && c.Export != "csv" {
		return fmt.Errorf("export must be \"json\" or \"csv\", got %q", c.Export)
	}
	return nil
}
