// Package main provides the CLI entry point for camtrap.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/wildlens/camtrap/internal/config"
	"github.com/wildlens/camtrap/internal/logging"
	"github.com/wildlens/camtrap/internal/pipeline"
	"github.com/wildlens/camtrap/internal/reporter"
)

const (
	appName    = "camtrap"
	appVersion = "0.1.0"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "run":
		if err := runPipeline(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "version", "--version", "-v":
		fmt.Printf("%s version %s\n", appName, appVersion)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf(`%s - camera-trap media inference pipeline

Usage:
  %s <command> [options]

Commands:
  run       Process a folder of camera-trap media against a detector
  version   Print version information
  help      Show this help message

Run '%s run --help' for run command options.
`, appName, appName, appName)
}

// runArgs holds the parsed arguments for the run command.
type runArgs struct {
	folder     string
	url        string
	token      string
	maxFrames  int
	iframeOnly bool
	iou        float64
	conf       float64
	quality    int
	imgsz      int
	exportFmt  string
	logLevel   string
	logFile    string
	checkpoint int
	resumeFrom string
	bufferPath string
	bufferSize int
	verbose    bool
}

func runPipeline(args []string) error {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Process a folder of camera-trap media against a detector.

Usage:
  %s run [options]

Required:
  -folder <PATH>       Input directory tree to walk
  -url <ADDR>          Detector gRPC endpoint
  -token <TOKEN>       Authentication token

Detection Settings:
  -max-frames <N>      Frames sampled per video. Default: %d
  -iframe-only         Decode key frames only. Default: %v
  -iou <F>             NMS IoU threshold. Default: %.2f
  -conf <F>            Detection confidence threshold. Default: %.2f
  -quality <N>         Re-encode quality (0-100). Default: %d
  -imgsz <N>           Longer-side resize target. Default: %d

Checkpoint/Resume:
  -export <json|csv>   Export format. Default: %s
  -checkpoint <N>      Frames between checkpoint writes. Default: %d
  -resume-from <PATH>  Prior export artifact to resume from

Staging:
  -buffer-path <PATH>  Staging directory; empty disables staging
  -buffer-size <N>     Staging channel capacity. Default: %d

Output:
  -log-level <LEVEL>   debug|info|warn|error. Default: %s
  -log-file <PATH>     Explicit log file path (defaults under XDG state dir)
  -verbose             Enable verbose terminal output
`, appName, config.DefaultMaxFrames, config.DefaultIFrameOnly, config.DefaultIOU, config.DefaultConf,
			config.DefaultQuality, config.DefaultImgSize, config.DefaultExport, config.DefaultCheckpoint,
			config.DefaultBufferSize, config.DefaultLogLevel)
	}

	var ra runArgs
	fs.StringVar(&ra.folder, "folder", "", "Input directory tree to walk")
	fs.StringVar(&ra.url, "url", "", "Detector gRPC endpoint")
	fs.StringVar(&ra.token, "token", "", "Authentication token")
	fs.IntVar(&ra.maxFrames, "max-frames", config.DefaultMaxFrames, "Frames sampled per video")
	fs.BoolVar(&ra.iframeOnly, "iframe-only", config.DefaultIFrameOnly, "Decode key frames only")
	fs.Float64Var(&ra.iou, "iou", float64(config.DefaultIOU), "NMS IoU threshold")
	fs.Float64Var(&ra.conf, "conf", float64(config.DefaultConf), "Detection confidence threshold")
	fs.IntVar(&ra.quality, "quality", config.DefaultQuality, "Re-encode quality")
	fs.IntVar(&ra.imgsz, "imgsz", config.DefaultImgSize, "Longer-side resize target")
	fs.StringVar(&ra.exportFmt, "export", config.DefaultExport, "Export format: json or csv")
	fs.StringVar(&ra.logLevel, "log-level", config.DefaultLogLevel, "Log level")
	fs.StringVar(&ra.logFile, "log-file", "", "Explicit log file path")
	fs.IntVar(&ra.checkpoint, "checkpoint", config.DefaultCheckpoint, "Frames between checkpoint writes")
	fs.StringVar(&ra.resumeFrom, "resume-from", "", "Prior export artifact to resume from")
	fs.StringVar(&ra.bufferPath, "buffer-path", "", "Staging directory")
	fs.IntVar(&ra.bufferSize, "buffer-size", config.DefaultBufferSize, "Staging channel capacity")
	fs.BoolVar(&ra.verbose, "verbose", false, "Enable verbose terminal output")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if ra.folder == "" {
		return fmt.Errorf("-folder is required")
	}
	if ra.url == "" {
		return fmt.Errorf("-url is required")
	}

	return executeRun(ra)
}

func executeRun(ra runArgs) error {
	folder, err := filepath.Abs(ra.folder)
	if err != nil {
		return fmt.Errorf("invalid folder path: %w", err)
	}

	logDir := logging.DefaultLogDir()
	logger, err := logging.Setup(logDir, ra.logFile, ra.logLevel, os.Args)
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	if logger != nil {
		defer func() { _ = logger.Close() }()
	}

	cfg := config.New(folder, ra.url, ra.token)
	cfg.MaxFrames = ra.maxFrames
	cfg.IFrameOnly = ra.iframeOnly
	cfg.IOU = float32(ra.iou)
	cfg.Conf = float32(ra.conf)
	cfg.Quality = ra.quality
	cfg.ImgSize = ra.imgsz
	cfg.Export = ra.exportFmt
	cfg.LogLevel = ra.logLevel
	cfg.LogFile = ra.logFile
	cfg.Checkpoint = ra.checkpoint
	cfg.ResumeFrom = ra.resumeFrom
	cfg.BufferPath = ra.bufferPath
	cfg.BufferSize = ra.bufferSize
	cfg.Verbose = ra.verbose

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	termRep := reporter.NewTerminalReporter(ra.verbose)
	var rep reporter.Reporter = termRep
	if logger != nil {
		logRep := reporter.NewLogReporter(logger.Writer())
		rep = reporter.NewComposite(termRep, logRep)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	logf := func(format string, args ...any) {
		if logger != nil {
			logger.Info(format, args...)
		}
	}

	driver := pipeline.New(cfg, rep, logf)
	return driver.Run(ctx)
}
