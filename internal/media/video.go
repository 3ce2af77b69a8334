package media

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"

	"github.com/wildlens/camtrap/internal/util"
)

// ffmpegDecoder is the default Decoder backend for video, dispatching
// to an ffmpeg child process, reading frames from its stdout pipe and
// decoder messages from its stderr pipe.
type ffmpegDecoder struct{}

// tolerated decoder warning substrings: skipped rather than treated as
// a fatal decode error. Skipped lines are not logged.
var toleratedWarnings = []string{
	"decode_slice_header error",
	"Frame num change",
	"error while decoding MB",
}

// DecodeVideoFrames scales the video to fit imgsz on its longer side,
// drops audio, and reads raw RGB24 frames at variable frame rate; when
// iframeOnly is set it asks ffmpeg to skip non-key frames.
func (ffmpegDecoder) DecodeVideoFrames(ctx context.Context, path string, imgsz int, iframeOnly bool) ([]DecodedVideoFrame, int, int, error) {
	width, height, err := probeDimensions(ctx, path)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("probe %s: %w", path, err)
	}

	outWidth, outHeight := fitDimensions(width, height, imgsz)

	args := createFFmpegArgs(path, outWidth, outHeight, iframeOnly)
	cmd := exec.CommandContext(ctx, "ffmpeg", args...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, 0, 0, fmt.Errorf("ffmpeg stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, 0, 0, fmt.Errorf("ffmpeg stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, 0, 0, fmt.Errorf("start ffmpeg: %w", err)
	}

	warnErrCh := make(chan error, 1)
	go func() {
		warnErrCh <- scanStderr(stderr)
	}()

	frames, err := readRawFrames(stdout, outWidth, outHeight)

	waitErr := cmd.Wait()
	warnErr := <-warnErrCh

	if err != nil {
		return nil, 0, 0, fmt.Errorf("read ffmpeg output: %w", err)
	}
	if warnErr != nil {
		return nil, 0, 0, warnErr
	}
	if waitErr != nil {
		return nil, 0, 0, fmt.Errorf("ffmpeg exited with error: %w", waitErr)
	}

	return frames, outWidth, outHeight, nil
}

func createFFmpegArgs(path string, width, height int, iframeOnly bool) []string {
	args := []string{"-i", path}
	if iframeOnly {
		args = append(args, "-skip_frame", "nokey")
	}
	args = append(args,
		"-an",
		"-vf", fmt.Sprintf("scale=%d:%d", width, height),
		"-f", "rawvideo",
		"-pix_fmt", "rgb24",
		"-vsync", "vfr",
		"pipe:1",
	)
	return args
}

func readRawFrames(r io.Reader, width, height int) ([]DecodedVideoFrame, error) {
	frameSize := width * height * 3
	var frames []DecodedVideoFrame

	buf := make([]byte, frameSize)
	for idx := 0; ; idx++ {
		if _, err := io.ReadFull(r, buf); err != nil {
			if err == io.ErrUnexpectedEOF || err == io.EOF {
				break
			}
			return nil, err
		}
		pixels := make([]byte, frameSize)
		copy(pixels, buf)
		frames = append(frames, DecodedVideoFrame{Index: idx, Pixels: pixels})
	}
	return frames, nil
}

// scanStderr tolerates the warning substrings listed in
// toleratedWarnings; any other non-empty stderr line that looks like
// an error aborts the file.
func scanStderr(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if isTolerated(line) {
			continue
		}
		if strings.Contains(strings.ToLower(line), "error") {
			return fmt.Errorf("ffmpeg decode error: %s", line)
		}
	}
	return scanner.Err()
}

func isTolerated(line string) bool {
	for _, w := range toleratedWarnings {
		if strings.Contains(line, w) {
			return true
		}
	}
	return false
}

// probeDimensions uses ffprobe to read the source video's width/height.
func probeDimensions(ctx context.Context, path string) (width, height int, err error) {
	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=width,height",
		"-of", "csv=s=x:p=0",
		path,
	)
	out, err := cmd.Output()
	if err != nil {
		return 0, 0, fmt.Errorf("ffprobe: %w", err)
	}
	parts := strings.Split(strings.TrimSpace(string(out)), "x")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("unexpected ffprobe output: %q", out)
	}
	width, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("parse width: %w", err)
	}
	height, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("parse height: %w", err)
	}
	return width, height, nil
}

// fitDimensions scales width/height so the longer side equals imgsz,
// rounding the shorter side up to the next even integer.
func fitDimensions(width, height, imgsz int) (int, int) {
	if width >= height {
		scale := float64(imgsz) / float64(width)
		return imgsz, util.EvenCeil(int(float64(height) * scale))
	}
	scale := float64(imgsz) / float64(height)
	return util.EvenCeil(int(float64(width) * scale)), imgsz
}
