// Package imageio turns image files into intensity fields and paints
// computed paths back onto images.
//
// Supported inputs: PNG, JPEG, GIF, BMP, TIFF and WebP. Colour images are
// reduced to 8-bit intensity with the ITU-R BT.601 luma weights
// (0.299 R + 0.587 G + 0.114 B), the same conversion OpenCV uses for
// BGR→GRAY, or with a plain channel average.
package imageio

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io"
	"os"
	"strings"

	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder

	"github.com/katalvlaran/scissors/gridgraph"
)

var (
	// ErrTooLarge indicates an image with more pixels than allowed.
	ErrTooLarge = errors.New("imageio: image exceeds pixel limit")
	// ErrUnknownLuma indicates an unsupported grayscale conversion name.
	ErrUnknownLuma = errors.New("imageio: unknown luma mode")
)

// Luma selects how colour pixels become intensities.
type Luma int

const (
	// LumaBT601 weights channels 0.299/0.587/0.114.
	LumaBT601 Luma = iota
	// LumaAverage takes the mean of R, G and B.
	LumaAverage
)

// String returns the config name of the mode.
func (l Luma) String() string {
	switch l {
	case LumaAverage:
		return "average"
	default:
		return "bt601"
	}
}

// ParseLuma maps "bt601" or "average" (case-insensitive) to a Luma.
func ParseLuma(s string) (Luma, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bt601", "":
		return LumaBT601, nil
	case "average":
		return LumaAverage, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownLuma, s)
	}
}

// Decode reads any registered image format from r.
// It returns the image and the format name.
func Decode(r io.Reader) (image.Image, string, error) {
	img, format, err := image.Decode(bufio.NewReader(r))
	if err != nil {
		return nil, "", fmt.Errorf("imageio: decode: %w", err)
	}
	return img, format, nil
}

// LoadField opens path, decodes it and converts it to an intensity field.
// maxPixels ≤ 0 disables the size guard; the guard is checked against the
// header before the pixel data is decoded.
// The decoded image is returned too so callers can draw on it.
func LoadField(path string, luma Luma, maxPixels int) (*gridgraph.GridGraph, image.Image, error) {
	if maxPixels > 0 {
		if err := checkSize(path, maxPixels); err != nil {
			return nil, nil, err
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("imageio: %w", err)
	}
	defer f.Close()

	img, _, err := Decode(f)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	g, err := FieldFromImage(img, luma)
	if err != nil {
		return nil, nil, err
	}
	return g, img, nil
}

func checkSize(path string, maxPixels int) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("imageio: %w", err)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(bufio.NewReader(f))
	if err != nil {
		return fmt.Errorf("imageio: %s: decode header: %w", path, err)
	}
	if cfg.Width*cfg.Height > maxPixels {
		return fmt.Errorf("%w: %dx%d > %d pixels", ErrTooLarge, cfg.Width, cfg.Height, maxPixels)
	}
	return nil
}

// FieldFromImage converts img into an H×W field of 8-bit intensities,
// row r and column c mapping to pixel (Min.X+c, Min.Y+r).
func FieldFromImage(img image.Image, luma Luma) (*gridgraph.GridGraph, error) {
	b := img.Bounds()
	h, w := b.Dy(), b.Dx()
	if h <= 0 || w <= 0 {
		return nil, gridgraph.ErrEmptyGrid
	}
	values := make([]int, 0, h*w)

	// Grayscale input needs no conversion.
	if gray, ok := img.(*image.Gray); ok {
		for y := b.Min.Y; y < b.Max.Y; y++ {
			off := gray.PixOffset(b.Min.X, y)
			for _, p := range gray.Pix[off : off+w] {
				values = append(values, int(p))
			}
		}
		return gridgraph.NewGridGraphFlat(h, w, values)
	}

	// Alpha is dropped without premultiplying, as OpenCV's grayscale load does.
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			values = append(values, intensity(uint32(c.R), uint32(c.G), uint32(c.B), luma))
		}
	}
	return gridgraph.NewGridGraphFlat(h, w, values)
}

// intensity reduces 8-bit channels to one 8-bit value, rounding to nearest.
func intensity(r, g, b uint32, luma Luma) int {
	if luma == LumaAverage {
		return int((r + g + b + 1) / 3)
	}
	return int((299*r + 587*g + 114*b + 500) / 1000)
}
