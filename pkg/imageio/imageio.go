// Package imageio turns accumulated radiance into image files: tone-mapped
// 8-bit PPM and PNG, and linear PFM optionally compressed with zstd.
package imageio

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"os"
	"strings"

	"github.com/df07/go-volpath/pkg/core"
)

// ErrUnknownFormat is returned for an output format that has no writer
var ErrUnknownFormat = errors.New("imageio: unknown format")

// Radiance is an image of accumulated samples. Row 0 is the top of the image.
type Radiance interface {
	Size() (width, height int)
	// Sum returns the radiance summed over the samples of a pixel and the sample count
	Sum(x, y int) (core.Vec3, int)
}

// Format names an output encoding
type Format string

const (
	FormatPPM     Format = "ppm"
	FormatPNG     Format = "png"
	FormatPFM     Format = "pfm"
	FormatPFMZstd Format = "pfm.zst"
)

// Formats lists every supported format
var Formats = []Format{FormatPPM, FormatPNG, FormatPFM, FormatPFMZstd}

// ParseFormat validates a format name
func ParseFormat(name string) (Format, error) {
	for _, f := range Formats {
		if string(f) == strings.ToLower(name) {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w %q", ErrUnknownFormat, name)
}

// FormatFromPath picks the format from a file name's extension
func FormatFromPath(path string) (Format, error) {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".pfm.zst"):
		return FormatPFMZstd, nil
	case strings.HasSuffix(lower, ".pfm"):
		return FormatPFM, nil
	case strings.HasSuffix(lower, ".png"):
		return FormatPNG, nil
	case strings.HasSuffix(lower, ".ppm"):
		return FormatPPM, nil
	}
	return "", fmt.Errorf("%w: cannot tell from %q", ErrUnknownFormat, path)
}

// ToneMap averages a pixel's samples, applies gamma 2 and quantizes to 8 bits
func ToneMap(sum core.Vec3, samples int) color.RGBA {
	if samples <= 0 {
		return color.RGBA{A: 255}
	}
	v := sum.Divide(float64(samples))
	return color.RGBA{
		R: quantize(v.X),
		G: quantize(v.Y),
		B: quantize(v.Z),
		A: 255,
	}
}

func quantize(v float64) uint8 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	return uint8(256 * core.Clamp(math.Sqrt(v), 0, 0.999))
}

// ToRGBA tone maps the whole image
func ToRGBA(src Radiance) *image.RGBA {
	width, height := src.Size()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, ToneMap(src.Sum(x, y)))
		}
	}
	return img
}

// Save writes src to path in the given format
func Save(path string, format Format, src Radiance) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("imageio: creating %s: %w", path, err)
	}

	switch format {
	case FormatPPM:
		err = WritePPM(file, src)
	case FormatPNG:
		err = WritePNG(file, src)
	case FormatPFM:
		err = WritePFM(file, src)
	case FormatPFMZstd:
		err = WritePFMZstd(file, src)
	default:
		err = fmt.Errorf("%w %q", ErrUnknownFormat, format)
	}

	if closeErr := file.Close(); err == nil && closeErr != nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("imageio: writing %s: %w", path, err)
	}
	return nil
}
