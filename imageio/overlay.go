package imageio

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	"golang.org/x/image/draw"

	"github.com/katalvlaran/scissors/gridgraph"
)

// OverlayOptions configures DrawPath.
type OverlayOptions struct {
	PathColor  color.Color
	StartColor color.Color
	EndColor   color.Color
	MarkerSize int // Radius of the start/end discs in pixels
}

// DefaultOverlayOptions returns red path pixels with a green start disc and
// a blue end disc of radius 4.
func DefaultOverlayOptions() OverlayOptions {
	return OverlayOptions{
		PathColor:  color.RGBA{R: 255, A: 255},
		StartColor: color.RGBA{G: 255, A: 255},
		EndColor:   color.RGBA{B: 255, A: 255},
		MarkerSize: 4,
	}
}

// DrawPath copies src into a new RGBA image and paints path on it. Row and
// column of each cell are offsets from src.Bounds().Min. The source is not
// modified. An empty path returns an unmarked copy.
func DrawPath(src image.Image, path []gridgraph.Cell, opts OverlayOptions) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(b)
	draw.Draw(dst, b, src, b.Min, draw.Src)
	if len(path) == 0 {
		return dst
	}

	for _, c := range path {
		p := image.Pt(b.Min.X+c.Col, b.Min.Y+c.Row)
		if p.In(b) {
			dst.Set(p.X, p.Y, opts.PathColor)
		}
	}
	disc(dst, path[0], opts.MarkerSize, opts.StartColor)
	disc(dst, path[len(path)-1], opts.MarkerSize, opts.EndColor)

	return dst
}

// disc fills a circle of radius r around c, clipped to dst.
func disc(dst *image.RGBA, c gridgraph.Cell, r int, col color.Color) {
	b := dst.Bounds()
	cx, cy := b.Min.X+c.Col, b.Min.Y+c.Row
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy > r*r {
				continue
			}
			p := image.Pt(cx+dx, cy+dy)
			if p.In(b) {
				dst.Set(p.X, p.Y, col)
			}
		}
	}
}

// EncodePNG writes img to w as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("imageio: encode png: %w", err)
	}
	return nil
}

// SavePNG writes img to path as PNG, replacing any existing file.
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("imageio: %w", err)
	}
	if err := EncodePNG(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
