package imaging

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeKeepsOpaqueImages(t *testing.T) {
	ycc := image.NewYCbCr(image.Rect(0, 0, 4, 4), image.YCbCrSubsampleRatio420)
	assert.Same(t, ycc, Normalize(ycc))

	gray := image.NewGray(image.Rect(0, 0, 4, 4))
	assert.Same(t, gray, Normalize(gray))

	opaque := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			opaque.Set(x, y, color.NRGBA{R: 10, G: 20, B: 30, A: 0xff})
		}
	}
	assert.False(t, NeedsFlatten(opaque))
}

func TestNormalizeFlattensAlphaOntoWhite(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	src.Set(0, 0, color.NRGBA{A: 0})
	src.Set(1, 0, color.NRGBA{R: 0xff, A: 0xff})

	out := Normalize(src)
	rgba, ok := out.(*image.RGBA)
	require.True(t, ok)
	assert.True(t, rgba.Opaque())

	assert.Equal(t, color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, rgba.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{R: 0xff, A: 0xff}, rgba.RGBAAt(1, 0))
}

func TestNormalizeConvertsCMYK(t *testing.T) {
	src := image.NewCMYK(image.Rect(0, 0, 3, 3))
	out := Normalize(src)
	_, ok := out.(*image.RGBA)
	assert.True(t, ok)
	assert.Equal(t, 3, out.Bounds().Dx())
}

func TestScale(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 300, 200))
	out := Scale(src, 192, 128)
	assert.Equal(t, 192, out.Bounds().Dx())
	assert.Equal(t, 128, out.Bounds().Dy())
}
