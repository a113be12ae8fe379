package spanpaperlib

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestNewImageCanvasBounds(t *testing.T) {
	if _, err := newImageCanvas(0, 100); err == nil {
		t.Error("newImageCanvas(0, 100) did not fail")
	}
	if _, err := newImageCanvas(100, -1); err == nil {
		t.Error("newImageCanvas(100, -1) did not fail")
	}

	_, err := newImageCanvas(1<<15, 1<<15)
	if !errors.Is(err, ErrOutputTooLarge) {
		t.Errorf("newImageCanvas(32768, 32768) error = %v, want ErrOutputTooLarge", err)
	}

	c, err := newImageCanvas(64, 32)
	if err != nil {
		t.Fatal(err)
	}
	if w, h := c.Size(); w != 64 || h != 32 {
		t.Errorf("Size() = %dx%d, want 64x32", w, h)
	}
}

func TestCanvasFill(t *testing.T) {
	c, err := newImageCanvas(4, 4)
	if err != nil {
		t.Fatal(err)
	}

	red := color.NRGBA{R: 0xff, A: 0xff}
	c.Fill(image.Rect(1, 1, 3, 3), red)

	img := c.Image()
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			inside := x >= 1 && x < 3 && y >= 1 && y < 3
			got := img.NRGBAAt(x, y)
			if inside && got != red {
				t.Errorf("Pixel (%d, %d) = %v, want %v", x, y, got, red)
			}
			if !inside && got != (color.NRGBA{}) {
				t.Errorf("Pixel (%d, %d) = %v, want untouched", x, y, got)
			}
		}
	}

	// Fills clip to the canvas instead of panicking.
	c.Fill(image.Rect(-5, -5, 100, 100), red)
}

// An unscaled draw at whole pixel offsets is an exact copy.
func TestDrawRegionFastPath(t *testing.T) {
	c, err := newImageCanvas(4, 4)
	if err != nil {
		t.Fatal(err)
	}

	src := quadImage()
	c.DrawRegion(src,
		PixelRect{X: 0, Y: 0, W: 2, H: 2},
		PixelRect{X: 1, Y: 2, W: 2, H: 2})

	img := c.Image()
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			if got := img.NRGBAAt(x+1, y+2); got != src.NRGBAAt(x, y) {
				t.Errorf("Pixel (%d, %d) = %v, want %v",
					x+1, y+2, got, src.NRGBAAt(x, y))
			}
		}
	}
	if got := img.NRGBAAt(0, 0); got != (color.NRGBA{}) {
		t.Errorf("Pixel (0, 0) = %v, want untouched", got)
	}
}

func TestDrawRegionScaled(t *testing.T) {
	c, err := newImageCanvas(8, 8)
	if err != nil {
		t.Fatal(err)
	}

	red := color.NRGBA{R: 0xff, A: 0xff}
	c.DrawRegion(solidImage(2, 2, red),
		PixelRect{X: 0, Y: 0, W: 2, H: 2},
		PixelRect{X: 0, Y: 0, W: 8, H: 8})

	img := c.Image()
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if got := img.NRGBAAt(x, y); got != red {
				t.Errorf("Pixel (%d, %d) = %v, want %v", x, y, got, red)
			}
		}
	}
}

// The resampling kernel must not write outside the destination rect, the
// neighboring strip might already be drawn.
func TestDrawRegionClipped(t *testing.T) {
	c, err := newImageCanvas(8, 4)
	if err != nil {
		t.Fatal(err)
	}

	red := color.NRGBA{R: 0xff, A: 0xff}
	c.DrawRegion(solidImage(4, 4, red),
		PixelRect{X: 0, Y: 0, W: 2, H: 4},
		PixelRect{X: 0, Y: 0, W: 4, H: 4})

	img := c.Image()
	for y := 0; y < 4; y++ {
		for x := 4; x < 8; x++ {
			if got := img.NRGBAAt(x, y); got != (color.NRGBA{}) {
				t.Errorf("Pixel (%d, %d) = %v, want untouched", x, y, got)
			}
		}
	}
}

func TestDrawRegionDegenerate(t *testing.T) {
	c, err := newImageCanvas(4, 4)
	if err != nil {
		t.Fatal(err)
	}

	src := quadImage()
	// None of these may panic or draw anything.
	c.DrawRegion(src, PixelRect{}, PixelRect{X: 0, Y: 0, W: 2, H: 2})
	c.DrawRegion(src, PixelRect{W: 2, H: 2}, PixelRect{})
	c.DrawRegion(src, PixelRect{W: 2, H: 2}, PixelRect{X: 100, Y: 100, W: 2, H: 2})

	img := c.Image()
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if got := img.NRGBAAt(x, y); got != (color.NRGBA{}) {
				t.Fatalf("Pixel (%d, %d) = %v, want untouched", x, y, got)
			}
		}
	}
}

func TestNullCanvas(t *testing.T) {
	c, err := NullCanvas(3840, 1080)
	if err != nil {
		t.Fatal(err)
	}

	if w, h := c.Size(); w != 3840 || h != 1080 {
		t.Errorf("Size() = %dx%d, want 3840x1080", w, h)
	}
	if c.Image() != nil {
		t.Error("NullCanvas Image() != nil")
	}

	// Draw calls are no-ops, not panics.
	c.Fill(image.Rect(0, 0, 10, 10), color.NRGBA{A: 0xff})
	c.DrawRegion(quadImage(), PixelRect{W: 2, H: 2}, PixelRect{W: 2, H: 2})

	if _, err = NullCanvas(1<<15, 1<<15); !errors.Is(err, ErrOutputTooLarge) {
		t.Errorf("NullCanvas(32768, 32768) error = %v, want ErrOutputTooLarge", err)
	}
}
