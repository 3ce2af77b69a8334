package media

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/wildlens/camtrap/internal/model"
	"github.com/wildlens/camtrap/internal/sampler"
	"github.com/wildlens/camtrap/internal/util"
)

// Config parameterizes the decode/resize/re-encode pipeline.
type Config struct {
	ImgSize    int // longer-side target in pixels, default 1280
	Quality    int // webp quality, default 70
	MaxFrames  int // video sampling target, default 3
	IFrameOnly bool
}

// DefaultConfig returns the documented CLI defaults.
func DefaultConfig() Config {
	return Config{ImgSize: 1280, Quality: 70, MaxFrames: 3, IFrameOnly: true}
}

// Worker processes one FileItem at a time, dispatched by extension.
type Worker struct {
	cfg          Config
	stillDecoder Decoder
	videoDecoder Decoder
	fileTime     util.FileTimeProvider
}

// NewWorker returns a Worker using the default govips/ffmpeg decoder
// backends. Tests substitute stillDecoder/videoDecoder with a mock
// satisfying the Decoder interface.
func NewWorker(cfg Config) *Worker {
	return &Worker{
		cfg:          cfg,
		stillDecoder: vipsDecoder{},
		videoDecoder: ffmpegDecoder{},
		fileTime:     util.DefaultFileTimeProvider,
	}
}

// WithDecoders overrides the still/video decoder backends, for tests.
func (w *Worker) WithDecoders(still, video Decoder) *Worker {
	w.stillDecoder = still
	w.videoDecoder = video
	return w
}

// Process decodes, resizes, and re-encodes item, returning the frames
// produced on success or a single ErrFile diagnostic on failure.
// Exactly one of the two return values is non-nil/non-empty.
func (w *Worker) Process(ctx context.Context, item model.FileItem) ([]model.Frame, *model.ErrFile) {
	defer w.cleanupStaged(item)

	ext := util.Ext(item.Path())
	switch {
	case util.IsImage(ext):
		frame, err := w.processImage(item)
		if err != nil {
			return nil, &model.ErrFile{File: item, Diagnostic: err.Error()}
		}
		return []model.Frame{frame}, nil
	case util.IsVideo(ext):
		frames, err := w.processVideo(ctx, item)
		if err != nil {
			return nil, &model.ErrFile{File: item, Diagnostic: err.Error()}
		}
		return frames, nil
	default:
		return nil, &model.ErrFile{File: item, Diagnostic: fmt.Sprintf("unrecognized extension %q", ext)}
	}
}

func (w *Worker) processImage(item model.FileItem) (model.Frame, error) {
	decoded, err := w.stillDecoder.DecodeStill(item.Path())
	if err != nil {
		return model.Frame{}, fmt.Errorf("image decode: %w", err)
	}

	encoded, width, height, err := encodeRGB(decoded.Pixels, decoded.Width, decoded.Height, w.cfg.ImgSize, w.cfg.Quality)
	if err != nil {
		return model.Frame{}, fmt.Errorf("webp encode: %w", err)
	}

	return model.Frame{
		File:        item,
		Image:       encoded,
		Width:       width,
		Height:      height,
		FrameIndex:  0,
		TotalFrames: 1,
		ShootTime:   decoded.ShootTime,
	}, nil
}

func (w *Worker) processVideo(ctx context.Context, item model.FileItem) ([]model.Frame, error) {
	decoded, vidWidth, vidHeight, err := w.videoDecoder.DecodeVideoFrames(ctx, item.Path(), w.cfg.ImgSize, w.cfg.IFrameOnly)
	if err != nil {
		return nil, fmt.Errorf("video decode: %w", err)
	}

	sampled, _ := sampler.SampleEvenly(decoded, w.cfg.MaxFrames)
	if len(sampled) == 0 {
		return nil, fmt.Errorf("video decode: no frames extracted")
	}

	shootTime := w.videoShootTime(item.Path())

	frames := make([]model.Frame, 0, len(sampled))
	for _, df := range sampled {
		encoded, width, height, err := encodeRGB(df.Pixels, vidWidth, vidHeight, w.cfg.ImgSize, w.cfg.Quality)
		if err != nil {
			return nil, fmt.Errorf("webp encode frame %d: %w", df.Index, err)
		}
		frames = append(frames, model.Frame{
			File:        item,
			Image:       encoded,
			Width:       width,
			Height:      height,
			FrameIndex:  df.Index,
			TotalFrames: len(sampled),
			ShootTime:   shootTime,
		})
	}
	return frames, nil
}

func (w *Worker) videoShootTime(path string) *time.Time {
	t, err := w.fileTime.ShootTime(path)
	if err != nil {
		return nil
	}
	return &t
}

// cleanupStaged removes a staged copy with up to 3 retries, 1s apart.
// A no-op when staging produced no separate copy.
func (w *Worker) cleanupStaged(item model.FileItem) {
	if item.StagedPath == "" || item.StagedPath == item.SourcePath {
		return
	}
	for attempt := 0; attempt < 3; attempt++ {
		if err := os.Remove(item.StagedPath); err == nil || os.IsNotExist(err) {
			return
		}
		time.Sleep(time.Second)
	}
}
