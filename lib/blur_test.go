package spanpaperlib

import (
	"image"
	"image/color"
	"testing"
)

func TestExtendEdges(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 5, 5))

	red := color.NRGBA{R: 0xff, A: 0xff}
	blue := color.NRGBA{B: 0xff, A: 0xff}
	img.SetNRGBA(1, 1, red)
	img.SetNRGBA(3, 1, blue)
	img.SetNRGBA(1, 3, blue)
	img.SetNRGBA(3, 3, red)

	extendEdges(img, PixelRect{X: 1, Y: 1, W: 3, H: 3})

	tests := []struct {
		x, y int
		want color.NRGBA
	}{
		// Corners replicate the nearest inner corner.
		{0, 0, red},
		{4, 0, blue},
		{0, 4, blue},
		{4, 4, red},
		// Edges replicate straight outward.
		{1, 0, red},
		{3, 0, blue},
		{0, 1, red},
		{0, 3, blue},
		// Interior pixels are untouched.
		{2, 2, color.NRGBA{}},
		{1, 1, red},
	}

	for _, tt := range tests {
		if got := img.NRGBAAt(tt.x, tt.y); got != tt.want {
			t.Errorf("Pixel (%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestExtendEdgesFullCanvas(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	img.SetNRGBA(0, 0, color.NRGBA{R: 0xff, A: 0xff})

	// The image already covers everything, nothing to extend.
	extendEdges(img, PixelRect{X: 0, Y: 0, W: 4, H: 4})

	if got := img.NRGBAAt(1, 1); got != (color.NRGBA{}) {
		t.Errorf("Pixel (1, 1) = %v, want untouched", got)
	}
}

func TestExtendEdgesDegenerate(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))

	// Rects entirely off canvas or empty must not panic.
	extendEdges(img, PixelRect{X: 10, Y: 10, W: 2, H: 2})
	extendEdges(img, PixelRect{})
}
