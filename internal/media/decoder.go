// Package media implements the media worker (component C): per-file
// decode, resize, and re-encode dispatch across still images and
// video containers, plus frame sampling for video.
package media

import (
	"context"
	"time"
)

// DecodedImage is one decoded still, prior to resize/re-encode.
type DecodedImage struct {
	Pixels    []byte // interleaved RGB8
	Width     int
	Height    int
	ShootTime *time.Time
}

// DecodedVideoFrame is one raw decoded video frame at its original
// sampled index within the full i-frame sequence.
type DecodedVideoFrame struct {
	Index  int
	Pixels []byte // interleaved RGB8, Width x Height
}

// Decoder is the decoder-capability abstraction the pipeline depends
// on: the choice of backend (govips for stills, an ffmpeg child
// process for video) is orthogonal to the pipeline, and a mock
// satisfying this interface is how corrupt-file and sampling scenarios
// are driven in tests.
type Decoder interface {
	// DecodeStill decodes path (jpg/jpeg/png) to interleaved RGB8,
	// retrying with a JPEG-specific decoder on initial failure.
	DecodeStill(path string) (DecodedImage, error)

	// DecodeVideoFrames decodes path, returning every i-frame (or
	// every frame, if iframeOnly is false) as raw RGB8 scaled so the
	// longer side equals imgsz, along with the frame width/height
	// actually produced.
	DecodeVideoFrames(ctx context.Context, path string, imgsz int, iframeOnly bool) ([]DecodedVideoFrame, int, int, error)
}
