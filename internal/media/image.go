package media

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/davidbyttow/govips/v2/vips"
	"github.com/rwcarlsen/goexif/exif"

	"github.com/wildlens/camtrap/internal/util"
)

// vipsDecoder is the default Decoder backend for still images, built on
// libvips bindings; the retrieval pack's image-processing reference
// repo (Skryldev/image-processor) reaches for govips for the same
// decode/resize/re-encode concern.
type vipsDecoder struct{}

// DecodeStill loads path into interleaved RGB8 pixels. On a decode
// failure it retries once using govips' relaxed-JPEG import path
// before giving up.
func (vipsDecoder) DecodeStill(path string) (DecodedImage, error) {
	img, err := vips.NewImageFromFile(path)
	if err != nil {
		img, err = loadRelaxedJPEG(path)
		if err != nil {
			return DecodedImage{}, fmt.Errorf("decode image %s: %w", path, err)
		}
	}
	defer img.Close()

	pixels, width, height, err := exportRGB8(img)
	if err != nil {
		return DecodedImage{}, fmt.Errorf("export pixels %s: %w", path, err)
	}

	return DecodedImage{
		Pixels:    pixels,
		Width:     width,
		Height:    height,
		ShootTime: readEXIFTime(path),
	}, nil
}

func loadRelaxedJPEG(path string) (*vips.ImageRef, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	params := vips.NewImportParams()
	params.FailOnError.Set(false)
	return vips.LoadImageFromBuffer(data, params)
}

// exportRGB8 forces img to 3-band sRGB and returns its raw interleaved
// pixel memory (not an encoded container) alongside its dimensions.
func exportRGB8(img *vips.ImageRef) ([]byte, int, int, error) {
	if err := img.ToColorSpace(vips.InterpretationSRGB); err != nil {
		return nil, 0, 0, fmt.Errorf("convert colorspace: %w", err)
	}
	if img.Bands() == 4 {
		if err := img.Flatten(&vips.Color{R: 255, G: 255, B: 255}); err != nil {
			return nil, 0, 0, fmt.Errorf("flatten alpha: %w", err)
		}
	}
	buf, err := img.ToBytes()
	if err != nil {
		return nil, 0, 0, fmt.Errorf("export pixels: %w", err)
	}
	return buf, img.Width(), img.Height(), nil
}

// Resize resizes img in place so the longer side equals imgsz while
// preserving aspect ratio, rounding the shorter side up to the next
// even integer, then re-encodes as webp at quality.
func Resize(img *vips.ImageRef, imgsz, quality int) ([]byte, int, int, error) {
	width, height := img.Width(), img.Height()

	var scale float64
	if width >= height {
		scale = float64(imgsz) / float64(width)
	} else {
		scale = float64(imgsz) / float64(height)
	}

	newWidth := int(float64(width) * scale)
	newHeight := int(float64(height) * scale)
	if width >= height {
		newWidth = imgsz
		newHeight = util.EvenCeil(newHeight)
	} else {
		newHeight = imgsz
		newWidth = util.EvenCeil(newWidth)
	}

	if err := img.Thumbnail(newWidth, newHeight, vips.InterestingNone); err != nil {
		return nil, 0, 0, fmt.Errorf("resize: %w", err)
	}

	params := vips.NewWebpExportParams()
	params.Quality = quality
	buf, _, err := img.ExportWebp(params)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("encode webp: %w", err)
	}
	return buf, img.Width(), img.Height(), nil
}

// readEXIFTime extracts DateTimeOriginal, falling back to ModifyDate,
// returning nil when neither tag is present or the file carries no
// EXIF data at all.
func readEXIFTime(path string) *time.Time {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return nil
	}

	if t, err := x.DateTime(); err == nil {
		return &t
	}

	if tag, err := x.Get(exif.FieldName("ModifyDate")); err == nil {
		if s, err := tag.StringVal(); err == nil {
			if t, err := time.Parse("2006:01:02 15:04:05", s); err == nil {
				return &t
			}
		}
	}
	return nil
}

// newImageFromRGB wraps ffmpeg's raw frame output so it can run through
// the same resize/re-encode path a decoded still image uses.
func newImageFromRGB(pixels []byte, width, height int) (*vips.ImageRef, error) {
	img, err := vips.NewImageFromMemory(bytes.NewBuffer(pixels).Bytes(), width, height, 3, vips.BandFormatUchar)
	if err != nil {
		return nil, fmt.Errorf("wrap raw frame: %w", err)
	}
	return img, nil
}

// encodeRGB resizes raw interleaved RGB8 pixels to fit imgsz and
// re-encodes as webp at quality, used by both the still-image path
// (after conversion to RGB8) and the sampled-video-frame path.
func encodeRGB(pixels []byte, width, height, imgsz, quality int) ([]byte, int, int, error) {
	img, err := newImageFromRGB(pixels, width, height)
	if err != nil {
		return nil, 0, 0, err
	}
	defer img.Close()
	return Resize(img, imgsz, quality)
}
