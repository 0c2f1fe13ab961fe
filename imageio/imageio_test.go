package imageio

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"

	"github.com/katalvlaran/scissors/gridgraph"
)

// testImage returns a 3×2 RGBA image with distinct colours.
func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.Set(0, 0, color.RGBA{255, 255, 255, 255})
	img.Set(1, 0, color.RGBA{255, 0, 0, 255})
	img.Set(2, 0, color.RGBA{0, 255, 0, 255})
	img.Set(0, 1, color.RGBA{0, 0, 255, 255})
	img.Set(1, 1, color.RGBA{0, 0, 0, 255})
	img.Set(2, 1, color.RGBA{90, 120, 30, 255})
	return img
}

func writeFile(t *testing.T, name string, encode func(*bytes.Buffer) error) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, encode(&buf))
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func TestFieldFromImage_BT601(t *testing.T) {
	g, err := FieldFromImage(testImage(), LumaBT601)
	require.NoError(t, err)
	assert.Equal(t, 2, g.Height())
	assert.Equal(t, 3, g.Width())
	assert.Equal(t, [][]int{
		{255, 76, 150},
		{29, 0, 101},
	}, g.Values())
}

func TestFieldFromImage_Average(t *testing.T) {
	g, err := FieldFromImage(testImage(), LumaAverage)
	require.NoError(t, err)
	assert.Equal(t, [][]int{
		{255, 85, 85},
		{85, 0, 80},
	}, g.Values())
}

func TestFieldFromImage_GrayFastPath(t *testing.T) {
	gray := image.NewGray(image.Rect(10, 20, 12, 22))
	gray.SetGray(10, 20, color.Gray{Y: 7})
	gray.SetGray(11, 21, color.Gray{Y: 200})

	g, err := FieldFromImage(gray, LumaBT601)
	require.NoError(t, err)
	assert.Equal(t, [][]int{{7, 0}, {0, 200}}, g.Values())
}

func TestFieldFromImage_SubImageOffset(t *testing.T) {
	sub := testImage().SubImage(image.Rect(1, 1, 3, 2))
	g, err := FieldFromImage(sub, LumaBT601)
	require.NoError(t, err)
	assert.Equal(t, [][]int{{0, 101}}, g.Values())
}

func TestFieldFromImage_IgnoresAlpha(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 200, G: 100, B: 50, A: 128})
	img.SetNRGBA(1, 0, color.NRGBA{R: 200, G: 100, B: 50, A: 255})
	img.SetNRGBA(2, 0, color.NRGBA{R: 255, G: 255, B: 255, A: 0})

	g, err := FieldFromImage(img, LumaBT601)
	require.NoError(t, err)
	// Fully transparent pixels carry no colour once converted.
	assert.Equal(t, [][]int{{124, 124, 0}}, g.Values())

	g, err = FieldFromImage(img, LumaAverage)
	require.NoError(t, err)
	assert.Equal(t, [][]int{{117, 117, 0}}, g.Values())
}

func TestFieldFromImage_Empty(t *testing.T) {
	_, err := FieldFromImage(image.NewRGBA(image.Rect(0, 0, 0, 0)), LumaBT601)
	assert.ErrorIs(t, err, gridgraph.ErrEmptyGrid)
}

func TestLoadField_PNGAndBMP(t *testing.T) {
	src := testImage()
	pngPath := writeFile(t, "in.png", func(b *bytes.Buffer) error { return png.Encode(b, src) })
	bmpPath := writeFile(t, "in.bmp", func(b *bytes.Buffer) error { return bmp.Encode(b, src) })

	want, err := FieldFromImage(src, LumaBT601)
	require.NoError(t, err)

	for _, p := range []string{pngPath, bmpPath} {
		g, img, err := LoadField(p, LumaBT601, 0)
		require.NoError(t, err, p)
		assert.Equal(t, want.Values(), g.Values(), p)
		assert.Equal(t, src.Bounds(), img.Bounds())
	}
}

func TestLoadField_TooLarge(t *testing.T) {
	path := writeFile(t, "big.png", func(b *bytes.Buffer) error { return png.Encode(b, testImage()) })
	_, _, err := LoadField(path, LumaBT601, 5)
	assert.ErrorIs(t, err, ErrTooLarge)

	_, _, err = LoadField(path, LumaBT601, 6)
	assert.NoError(t, err)
}

func TestLoadField_Errors(t *testing.T) {
	_, _, err := LoadField(filepath.Join(t.TempDir(), "missing.png"), LumaBT601, 0)
	assert.Error(t, err)

	junk := writeFile(t, "junk.png", func(b *bytes.Buffer) error { _, err := b.WriteString("not an image"); return err })
	_, _, err = LoadField(junk, LumaBT601, 0)
	assert.Error(t, err)
}

func TestParseLuma(t *testing.T) {
	l, err := ParseLuma("BT601")
	require.NoError(t, err)
	assert.Equal(t, LumaBT601, l)

	l, err = ParseLuma("average")
	require.NoError(t, err)
	assert.Equal(t, LumaAverage, l)
	assert.Equal(t, "average", l.String())

	_, err = ParseLuma("hsv")
	assert.ErrorIs(t, err, ErrUnknownLuma)
}

func TestDrawPath(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 20, 20))
	path := []gridgraph.Cell{{Row: 10, Col: 2}, {Row: 10, Col: 3}, {Row: 10, Col: 4}, {Row: 11, Col: 4},
		{Row: 11, Col: 5}, {Row: 11, Col: 6}, {Row: 11, Col: 7}, {Row: 11, Col: 8}, {Row: 11, Col: 9},
		{Row: 11, Col: 10}, {Row: 11, Col: 11}, {Row: 11, Col: 12}, {Row: 11, Col: 13}, {Row: 11, Col: 14}}
	opts := DefaultOverlayOptions()

	out := DrawPath(src, path, opts)
	require.Equal(t, src.Bounds(), out.Bounds())

	assert.Equal(t, color.RGBA{R: 255, A: 255}, out.RGBAAt(8, 11), "path pixel")
	assert.Equal(t, color.RGBA{G: 255, A: 255}, out.RGBAAt(2, 10), "start marker")
	assert.Equal(t, color.RGBA{G: 255, A: 255}, out.RGBAAt(2, 6), "start marker radius")
	assert.Equal(t, color.RGBA{B: 255, A: 255}, out.RGBAAt(14, 11), "end marker")
	assert.Equal(t, color.RGBA{A: 255}, out.RGBAAt(0, 0), "untouched background")
	// Source is unchanged.
	assert.Equal(t, color.Gray{}, src.GrayAt(8, 11))
}

func TestDrawPath_EmptyAndClipped(t *testing.T) {
	src := testImage()
	out := DrawPath(src, nil, DefaultOverlayOptions())
	assert.Equal(t, src.Pix, out.Pix)

	// Markers near the border are clipped instead of panicking. On an image
	// this small the end disc, drawn last, covers every pixel.
	out = DrawPath(src, []gridgraph.Cell{{Row: 0, Col: 0}, {Row: 1, Col: 2}}, DefaultOverlayOptions())
	assert.Equal(t, color.RGBA{B: 255, A: 255}, out.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{B: 255, A: 255}, out.RGBAAt(2, 1))
}

func TestSavePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	require.NoError(t, SavePNG(path, testImage()))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, format, err := Decode(f)
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, testImage().Bounds(), img.Bounds())
}
