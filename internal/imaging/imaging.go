// Package imaging holds the in-memory pixel transforms applied before an
// image is re-encoded as JPEG.
package imaging

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/gift"
	"github.com/nfnt/resize"
)

// Background is the color alpha is flattened onto.
var Background color.Color = color.White

// NeedsFlatten reports whether img must be converted to a three-channel
// model before it can be written as JPEG.
func NeedsFlatten(img image.Image) bool {
	switch src := img.(type) {
	case *image.YCbCr, *image.Gray:
		return false
	case *image.CMYK:
		return true
	case interface{ Opaque() bool }:
		return !src.Opaque()
	default:
		return true
	}
}

// Normalize flattens alpha (and converts CMYK) onto Background. Images that
// are already three-channel or grayscale are returned as is.
func Normalize(img image.Image) image.Image {
	if !NeedsFlatten(img) {
		return img
	}

	bounds := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(Background), image.Point{}, draw.Src)
	gift.New().DrawAt(dst, img, dst.Bounds().Min, gift.OverOperator)
	return dst
}

// Scale resamples img to exactly width x height.
func Scale(img image.Image, width, height int) image.Image {
	return resize.Resize(uint(width), uint(height), img, resize.Bicubic)
}
