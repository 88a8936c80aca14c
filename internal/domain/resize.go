package domain

import "math"

const (
	MaxWidth  = 1920
	MaxHeight = 1080

	JPEGQuality = 85
)

// EncodeOptions controls how an image is written back to disk.
type EncodeOptions struct {
	Quality     int
	Progressive bool
	Optimize    bool
}

func DefaultEncodeOptions() EncodeOptions {
	return EncodeOptions{
		Quality:     JPEGQuality,
		Progressive: true,
		Optimize:    true,
	}
}

// NeedsResize reports whether either raw dimension exceeds the FHD bound.
func NeedsResize(width, height int) bool {
	return width > MaxWidth || height > MaxHeight
}

// FitFHD computes the downscaled dimensions for an image that exceeds the
// FHD bound. Wide images are pinned to MaxWidth, all others to MaxHeight.
// The returned bool is false when no resize is needed; the input
// dimensions are then returned unchanged.
func FitFHD(width, height int) (int, int, bool) {
	if width <= 0 || height <= 0 || !NeedsResize(width, height) {
		return width, height, false
	}

	aspect := float64(width) / float64(height)
	var targetWidth, targetHeight int
	if aspect > 1 {
		targetWidth = MaxWidth
		targetHeight = int(math.Round(MaxWidth / aspect))
	} else {
		targetHeight = MaxHeight
		targetWidth = int(math.Round(MaxHeight * aspect))
	}

	if targetWidth < 1 {
		targetWidth = 1
	}
	if targetHeight < 1 {
		targetHeight = 1
	}
	return targetWidth, targetHeight, true
}
