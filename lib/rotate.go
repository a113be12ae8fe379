package spanpaperlib

import (
	"image"

	"github.com/disintegration/imaging"
)

func normalizeRotation(rotation int) int {
	r := rotation % 360
	if r < 0 {
		r += 360
	}
	return r
}

// rotatedSize is the pixel size of a w by h image after orienting.
func rotatedSize(w, h, rotation int) (int, int) {
	if normalizeRotation(rotation)%180 == 90 {
		return h, w
	}
	return w, h
}

// orient returns the pixels as displayed, rotated clockwise. Once a source
// has been oriented, crops against it are plain scaling with no per-angle
// special cases. imaging's Rotate functions are counter-clockwise, hence
// the inverted mapping.
func orient(img image.Image, rotation int) *image.NRGBA {
	switch normalizeRotation(rotation) {
	case 90:
		return imaging.Rotate270(img)
	case 180:
		return imaging.Rotate180(img)
	case 270:
		return imaging.Rotate90(img)
	}
	return imaging.Clone(img)
}
