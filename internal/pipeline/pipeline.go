// Package pipeline implements the pipeline driver (component I): it
// wires the file indexer, optional staging, the media worker pool, the
// RPC bridge, and the exporter into one run, owning every channel and
// the shutdown ordering between them.
package pipeline

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/wildlens/camtrap/internal/checkpoint"
	"github.com/wildlens/camtrap/internal/config"
	"github.com/wildlens/camtrap/internal/correlation"
	"github.com/wildlens/camtrap/internal/detectpb"
	"github.com/wildlens/camtrap/internal/discovery"
	"github.com/wildlens/camtrap/internal/export"
	"github.com/wildlens/camtrap/internal/media"
	"github.com/wildlens/camtrap/internal/model"
	"github.com/wildlens/camtrap/internal/reporter"
	"github.com/wildlens/camtrap/internal/rpc"
	"github.com/wildlens/camtrap/internal/staging"
	"github.com/wildlens/camtrap/internal/util"
	"github.com/wildlens/camtrap/internal/workerpool"
)

// mediaChanCapacity is the bounded capacity of the channel carrying
// encoded Frame items from the media workers to the RPC bridge.
const mediaChanCapacity = 8

// staleStageFileMaxAgeHours bounds how long an orphaned staged file
// from a killed prior run is kept before Run's startup sweep removes it.
const staleStageFileMaxAgeHours = 24

// Driver owns one pipeline run.
type Driver struct {
	Config   *config.Config
	Reporter reporter.Reporter
	Logf     func(format string, args ...any)
}

// New returns a Driver, defaulting Reporter to a no-op and Logf to a
// discarding function when left nil.
func New(cfg *config.Config, rep reporter.Reporter, logf func(string, ...any)) *Driver {
	if rep == nil {
		rep = reporter.NullReporter{}
	}
	if logf == nil {
		logf = func(string, ...any) {}
	}
	return &Driver{Config: cfg, Reporter: rep, Logf: logf}
}

// Run executes one full pipeline: discovery, optional resume, optional
// staging, decode/encode, RPC detection, and export. It returns a
// non-nil error only for the fatal classes (ConfigError, AuthError,
// CheckpointError); a TransportError or any per-file
// MediaError/StagingError is absorbed and reflected in the final
// export artifact, and Run returns nil.
func (d *Driver) Run(ctx context.Context) error {
	cfg := d.Config
	if err := cfg.Validate(); err != nil {
		return wrap(KindConfig, err)
	}

	d.Reporter.Started(reporter.RunInfo{Folder: cfg.Folder, URL: cfg.URL})

	items, err := discovery.Index(cfg.Folder)
	if err != nil {
		return wrap(KindConfig, err)
	}

	var seed []model.ExportFrame
	if cfg.ResumeFrom != "" {
		result, err := checkpoint.Load(cfg.ResumeFrom)
		if err != nil {
			return wrap(KindCheckpoint, err)
		}
		items = result.Reduce(items)
		seed = result.Seed
	}

	format, err := export.ParseFormat(cfg.Export)
	if err != nil {
		return wrap(KindConfig, err)
	}

	exportIn, exportOut := newUnboundedChan[model.ExportFrame]()
	exp := &export.Exporter{
		In:              exportOut,
		OutputDir:       cfg.Folder,
		Format:          format,
		CheckpointEvery: cfg.Checkpoint,
		Logf:            d.Logf,
	}
	exp.Seed(seed)

	var expWg sync.WaitGroup
	expWg.Add(1)
	go func() {
		defer expWg.Done()
		exp.Run(ctx)
	}()

	conn, err := grpc.NewClient(cfg.URL,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype("json")),
	)
	if err != nil {
		close(exportIn)
		expWg.Wait()
		return wrap(KindConfig, fmt.Errorf("dial detector: %w", err))
	}
	defer conn.Close()

	corr := correlation.New()
	bridge := rpc.New(detectpb.NewDetectorClient(conn), corr, rpc.Options{IOU: cfg.IOU, Score: cfg.Conf}, d.Logf)

	if err := bridge.Authenticate(ctx, cfg.Token); err != nil {
		close(exportIn)
		expWg.Wait()
		return wrap(KindAuth, err)
	}

	stagingDir := ""
	var mediaInput chan model.FileItem
	var stagingWg sync.WaitGroup
	if cfg.BufferPath != "" {
		if err := util.EnsureDirectory(cfg.BufferPath); err != nil {
			close(exportIn)
			expWg.Wait()
			return wrap(KindConfig, err)
		}
		stagingDir = cfg.BufferPath

		if n, err := util.CleanupStaleTempFiles(stagingDir, "stage", staleStageFileMaxAgeHours); err != nil {
			d.Logf("stale staging cleanup failed: %v", err)
		} else if n > 0 {
			d.Logf("removed %d stale staged file(s) from a prior run", n)
		}
		util.CheckDiskSpace(stagingDir, d.Logf)

		mediaInput = make(chan model.FileItem, cfg.BufferSize)
		stagingErrs := make(chan model.ErrFile)
		stagingWg.Add(2)
		go func() {
			defer stagingWg.Done()
			defer close(stagingErrs)
			w := &staging.Worker{Dir: stagingDir}
			w.Run(ctx, items, mediaInput, stagingErrs)
		}()
		go func() {
			defer stagingWg.Done()
			for ef := range stagingErrs {
				select {
				case exportIn <- mediaErrorFrame(ef):
				case <-ctx.Done():
				}
			}
		}()
	} else {
		mediaInput = make(chan model.FileItem, len(items))
		for _, item := range items {
			mediaInput <- item
		}
		close(mediaInput)
	}
	defer func() { _ = staging.Cleanup(stagingDir) }()

	mediaOut := make(chan model.Frame, mediaChanCapacity)
	workers := workerpool.DefaultWorkers()
	worker := media.NewWorker(media.Config{
		ImgSize:    cfg.ImgSize,
		Quality:    cfg.Quality,
		MaxFrames:  cfg.MaxFrames,
		IFrameOnly: cfg.IFrameOnly,
	})

	var succeeded, failed int
	var countMu sync.Mutex

	workerGroup, workerCtx := errgroup.WithContext(ctx)
	for i := 0; i < workers; i++ {
		workerGroup.Go(func() error {
			for item := range mediaInput {
				frames, errFile := worker.Process(workerCtx, item)
				if errFile != nil {
					countMu.Lock()
					failed++
					countMu.Unlock()
					d.Reporter.FileProcessed(reporter.FileResult{Path: errFile.File.SourcePath, Err: errFile.Diagnostic})
					select {
					case exportIn <- mediaErrorFrame(*errFile):
					case <-ctx.Done():
					}
					continue
				}
				countMu.Lock()
				succeeded++
				countMu.Unlock()
				d.Reporter.FileProcessed(reporter.FileResult{Path: item.SourcePath, FrameCount: len(frames)})
				for _, f := range frames {
					select {
					case mediaOut <- f:
					case <-ctx.Done():
						return nil
					}
				}
			}
			return nil
		})
	}

	go func() {
		_ = workerGroup.Wait()
		close(mediaOut)
	}()

	runErr := bridge.Run(ctx, mediaOut, exportIn)
	if runErr != nil {
		d.Reporter.TransportEvent(runErr.Error())
	}

	// After a transport error the bridge stops reading mediaOut; drain
	// it so every media worker (also an exportIn writer) has returned
	// before exportIn is closed. mediaOut closes once the workers finish.
	for range mediaOut {
	}

	stagingWg.Wait()
	close(exportIn)
	expWg.Wait()

	d.Reporter.Done(reporter.RunSummary{
		TotalFiles:     len(items),
		SucceededFiles: succeeded,
		FailedFiles:    failed,
		RecordCount:    succeeded + failed,
		ExportPath:     exportPath(cfg),
	})

	return nil
}

func exportPath(cfg *config.Config) string {
	if cfg.Export == "csv" {
		return cfg.Folder + "/result.csv"
	}
	return cfg.Folder + "/result.json"
}

// mediaErrorFrame converts a MediaError ErrFile into its finalized
// ExportFrame shape: frame_index=0, total_frames=0, error set.
func mediaErrorFrame(ef model.ErrFile) model.ExportFrame {
	msg := ef.Diagnostic
	return model.ExportFrame{
		File:        ef.File.SourcePath,
		FrameIndex:  0,
		TotalFrames: 0,
		Error:       &msg,
	}
}
