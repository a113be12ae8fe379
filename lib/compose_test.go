package spanpaperlib

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
)

// countingCanvas wraps the real canvas and counts draw calls.
type countingCanvas struct {
	Canvas
	draws int
}

func (cc *countingCanvas) DrawRegion(src image.Image, sr, dr PixelRect) {
	cc.draws++
	cc.Canvas.DrawRegion(src, sr, dr)
}

func solidImage(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestComposeSideBySide(t *testing.T) {
	monitors := []*Monitor{
		testMonitor("left", 1920, 1080, 96, 0, 0),
		testMonitor("right", 1920, 1080, 96, 20, 0),
	}
	placements := []Placement{
		{Monitor: "left", PixelX: 0, PixelY: 0},
		{Monitor: "right", PixelX: 1920, PixelY: 0},
	}

	comp, err := ComposeWallpaper(ComposeOptions{
		Monitors:   monitors,
		Placements: placements,
		NewCanvas:  NullCanvas,
	})
	if err != nil {
		t.Fatal(err)
	}
	if comp == nil {
		t.Fatal("ComposeWallpaper() = nil")
	}

	if comp.Width != 3840 || comp.Height != 1080 {
		t.Errorf("Output %dx%d, want 3840x1080", comp.Width, comp.Height)
	}
	if comp.HasGaps {
		t.Error("HasGaps = true for perfectly tiled monitors")
	}

	want := []Strip{
		{Monitor: "left", X: 0, Y: 0, Width: 1920, Height: 1080},
		{Monitor: "right", X: 1920, Y: 0, Width: 1920, Height: 1080},
	}
	if len(comp.Strips) != len(want) {
		t.Fatalf("Got %d strips, want %d", len(comp.Strips), len(want))
	}
	for i, s := range comp.Strips {
		if s != want[i] {
			t.Errorf("Strip %d = %+v, want %+v", i, s, want[i])
		}
	}
}

func TestComposeVerticalOffsetGap(t *testing.T) {
	monitors := []*Monitor{
		testMonitor("left", 1920, 1080, 96, 0, 0),
		testMonitor("right", 1920, 1080, 96, 20, 2),
	}
	placements := []Placement{
		{Monitor: "left", PixelX: 0, PixelY: 0},
		{Monitor: "right", PixelX: 1920, PixelY: 200},
	}

	comp, err := ComposeWallpaper(ComposeOptions{
		Monitors:   monitors,
		Placements: placements,
		NewCanvas:  NullCanvas,
	})
	if err != nil {
		t.Fatal(err)
	}

	if comp.Width != 3840 || comp.Height != 1280 {
		t.Errorf("Output %dx%d, want 3840x1280", comp.Width, comp.Height)
	}
	if !comp.HasGaps {
		t.Error("HasGaps = false for vertically offset monitors")
	}
}

// Negative virtual positions are normal, the OS anchors the primary
// monitor at the origin and others can sit above or left of it.
func TestComposeNegativeOrigin(t *testing.T) {
	monitors := []*Monitor{
		testMonitor("a", 1080, 1920, 96, 0, 0),
		testMonitor("b", 1920, 1080, 96, 12, 0),
	}
	placements := []Placement{
		{Monitor: "a", PixelX: -1080, PixelY: -500},
		{Monitor: "b", PixelX: 0, PixelY: 0},
	}

	comp, err := ComposeWallpaper(ComposeOptions{
		Monitors:   monitors,
		Placements: placements,
		NewCanvas:  NullCanvas,
	})
	if err != nil {
		t.Fatal(err)
	}

	if comp.Width != 3000 || comp.Height != 1920 {
		t.Errorf("Output %dx%d, want 3000x1920", comp.Width, comp.Height)
	}
	if comp.Strips[0].X != 0 || comp.Strips[0].Y != 0 {
		t.Errorf("Strip a at +%d+%d, want +0+0", comp.Strips[0].X, comp.Strips[0].Y)
	}
	if comp.Strips[1].X != 1080 || comp.Strips[1].Y != 500 {
		t.Errorf("Strip b at +%d+%d, want +1080+500",
			comp.Strips[1].X, comp.Strips[1].Y)
	}
	if !comp.HasGaps {
		t.Error("HasGaps = false for a ragged arrangement")
	}
}

func TestComposeNothingToRender(t *testing.T) {
	tests := []struct {
		name string
		opts ComposeOptions
	}{
		{"no monitors", ComposeOptions{}},
		{
			"no placements",
			ComposeOptions{
				Monitors: []*Monitor{testMonitor("m", 1920, 1080, 96, 0, 0)},
			},
		},
		{
			"only unknown placements",
			ComposeOptions{
				Monitors:   []*Monitor{testMonitor("m", 1920, 1080, 96, 0, 0)},
				Placements: []Placement{{Monitor: "ghost"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			comp, err := ComposeWallpaper(tt.opts)
			if err != nil {
				t.Fatalf("ComposeWallpaper() error = %v", err)
			}
			if comp != nil {
				t.Errorf("ComposeWallpaper() = %+v, want nil", comp)
			}
		})
	}
}

func TestComposeDropsUnknownPlacements(t *testing.T) {
	monitors := []*Monitor{testMonitor("m", 400, 300, 100, 0, 0)}
	placements := []Placement{
		{Monitor: "removed", PixelX: 10000, PixelY: 10000},
		{Monitor: "m", PixelX: 0, PixelY: 0},
	}

	comp, err := ComposeWallpaper(ComposeOptions{
		Monitors:   monitors,
		Placements: placements,
		NewCanvas:  NullCanvas,
	})
	if err != nil {
		t.Fatal(err)
	}

	if comp.Width != 400 || comp.Height != 300 {
		t.Errorf("Output %dx%d, want 400x300", comp.Width, comp.Height)
	}
	if len(comp.Strips) != 1 || comp.Strips[0].Monitor != "m" {
		t.Errorf("Strips = %+v, want only [m]", comp.Strips)
	}
}

func TestComposeSolidFillNoImage(t *testing.T) {
	monitors := []*Monitor{
		testMonitor("a", 40, 30, 10, 0, 0),
		testMonitor("b", 40, 30, 10, 4, 0),
	}
	placements := []Placement{
		{Monitor: "a", PixelX: 0, PixelY: 0},
		{Monitor: "b", PixelX: 40, PixelY: 0},
	}

	var cc *countingCanvas
	comp, err := ComposeWallpaper(ComposeOptions{
		Monitors:   monitors,
		Placements: placements,
		Fill:       FillOptions{Mode: FillSolid, Color: "#112233"},
		NewCanvas: func(w, h int) (Canvas, error) {
			c, err := newImageCanvas(w, h)
			if err != nil {
				return nil, err
			}
			cc = &countingCanvas{Canvas: c}
			return cc, nil
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	want := color.NRGBA{R: 0x11, G: 0x22, B: 0x33, A: 0xff}
	for y := 0; y < comp.Height; y++ {
		for x := 0; x < comp.Width; x++ {
			if got := comp.Image.NRGBAAt(x, y); got != want {
				t.Fatalf("Pixel (%d, %d) = %v, want %v", x, y, got, want)
			}
		}
	}

	if cc.draws != 0 {
		t.Errorf("DrawRegion called %d times with no image", cc.draws)
	}
}

func TestComposeTransparentFill(t *testing.T) {
	comp, err := ComposeWallpaper(ComposeOptions{
		Monitors:   []*Monitor{testMonitor("m", 40, 30, 10, 0, 0)},
		Placements: []Placement{{Monitor: "m"}},
		Fill:       FillOptions{Mode: FillTransparent},
	})
	if err != nil {
		t.Fatal(err)
	}

	for y := 0; y < comp.Height; y++ {
		for x := 0; x < comp.Width; x++ {
			if got := comp.Image.NRGBAAt(x, y); got != (color.NRGBA{}) {
				t.Fatalf("Pixel (%d, %d) = %v, want transparent", x, y, got)
			}
		}
	}
}

// An image exactly covering the monitor leaves no fill visible anywhere in
// its strip.
func TestComposeCropIdentityCoversStrip(t *testing.T) {
	m := testMonitor("m", 40, 30, 10, 0, 0)
	red := color.NRGBA{R: 0xff, A: 0xff}

	si := NewSourceImage(solidImage(8, 6, red))
	si.X, si.Y = 0, 0
	si.Width, si.Height = 4, 3

	comp, err := ComposeWallpaper(ComposeOptions{
		Monitors:   []*Monitor{m},
		Image:      si,
		Placements: []Placement{{Monitor: "m"}},
		Fill:       FillOptions{Mode: FillSolid, Color: "#112233"},
	})
	if err != nil {
		t.Fatal(err)
	}

	for y := 0; y < comp.Height; y++ {
		for x := 0; x < comp.Width; x++ {
			if got := comp.Image.NRGBAAt(x, y); got != red {
				t.Fatalf("Pixel (%d, %d) = %v, want %v", x, y, got, red)
			}
		}
	}
}

// A uniform image under the blur backdrop stays uniform, edge extension
// and a normalized blur kernel can't invent new colors.
func TestComposeBlurBackdropUniform(t *testing.T) {
	monitors := []*Monitor{
		testMonitor("a", 40, 30, 10, 0, 0),
		testMonitor("b", 40, 30, 10, 4, 1),
	}
	placements := []Placement{
		{Monitor: "a", PixelX: 0, PixelY: 0},
		{Monitor: "b", PixelX: 40, PixelY: 10},
	}

	red := color.NRGBA{R: 0xff, A: 0xff}
	si := NewSourceImage(solidImage(8, 6, red))
	si.X, si.Y = 1, 0.5
	si.Width, si.Height = 4, 3

	comp, err := ComposeWallpaper(ComposeOptions{
		Monitors:   monitors,
		Image:      si,
		Placements: placements,
		Fill:       FillOptions{Mode: FillBlur, Color: "#000000"},
	})
	if err != nil {
		t.Fatal(err)
	}

	for y := 0; y < comp.Height; y++ {
		for x := 0; x < comp.Width; x++ {
			got := comp.Image.NRGBAAt(x, y)
			// Resampling rounds, allow a little slack.
			if got.R < 0xfd || got.G > 2 || got.B > 2 || got.A != 0xff {
				t.Fatalf("Pixel (%d, %d) = %v, want ~%v", x, y, got, red)
			}
		}
	}
}

func TestComposeBlurWithoutImage(t *testing.T) {
	comp, err := ComposeWallpaper(ComposeOptions{
		Monitors:   []*Monitor{testMonitor("m", 40, 30, 10, 0, 0)},
		Placements: []Placement{{Monitor: "m"}},
		Fill:       FillOptions{Mode: FillBlur, Color: "#112233"},
	})
	if err != nil {
		t.Fatal(err)
	}

	want := color.NRGBA{R: 0x11, G: 0x22, B: 0x33, A: 0xff}
	for y := 0; y < comp.Height; y++ {
		for x := 0; x < comp.Width; x++ {
			if got := comp.Image.NRGBAAt(x, y); got != want {
				t.Fatalf("Pixel (%d, %d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestComposeIdempotent(t *testing.T) {
	monitors := []*Monitor{
		testMonitor("a", 40, 30, 10, 0, 0),
		testMonitor("b", 30, 40, 10, 4, 0),
	}
	placements := []Placement{
		{Monitor: "a", PixelX: 0, PixelY: 0},
		{Monitor: "b", PixelX: 40, PixelY: 5},
	}

	si := NewSourceImage(imaging.New(16, 10, color.NRGBA{R: 0x80, G: 0x40, A: 0xff}))
	si.X, si.Y = 0.5, 0.25
	si.Width, si.Height = 6, 3.5
	si.Rotation = 90

	opts := ComposeOptions{
		Monitors:   monitors,
		Image:      si,
		Placements: placements,
		Fill:       FillOptions{Mode: FillBlur, Color: "#223344"},
	}

	a, err := ComposeWallpaper(opts)
	if err != nil {
		t.Fatal(err)
	}
	b, err := ComposeWallpaper(opts)
	if err != nil {
		t.Fatal(err)
	}

	if a.Width != b.Width || a.Height != b.Height {
		t.Fatalf("Dimensions differ: %dx%d vs %dx%d",
			a.Width, a.Height, b.Width, b.Height)
	}
	if len(a.Strips) != len(b.Strips) {
		t.Fatalf("Strip counts differ: %d vs %d", len(a.Strips), len(b.Strips))
	}
	for i := range a.Strips {
		if a.Strips[i] != b.Strips[i] {
			t.Errorf("Strip %d differs: %+v vs %+v", i, a.Strips[i], b.Strips[i])
		}
	}
	if !bytes.Equal(a.Image.Pix, b.Image.Pix) {
		t.Error("Pixels differ between identical invocations")
	}
}

func TestComposeInvalidMonitor(t *testing.T) {
	bad := testMonitor("m", 1920, 1080, 96, 0, 0)
	bad.Diagonal = -1

	_, err := ComposeWallpaper(ComposeOptions{
		Monitors:   []*Monitor{bad},
		Placements: []Placement{{Monitor: "m"}},
	})
	if !errors.Is(err, ErrInvalidGeometry) {
		t.Errorf("ComposeWallpaper() error = %v, want ErrInvalidGeometry", err)
	}
}

func TestComposeOutputTooLarge(t *testing.T) {
	monitors := []*Monitor{testMonitor("m", 20000, 20000, 96, 0, 0)}

	_, err := ComposeWallpaper(ComposeOptions{
		Monitors:   monitors,
		Placements: []Placement{{Monitor: "m"}},
	})
	if !errors.Is(err, ErrOutputTooLarge) {
		t.Errorf("ComposeWallpaper() error = %v, want ErrOutputTooLarge", err)
	}
}

func TestComposeUnknownFillMode(t *testing.T) {
	_, err := ComposeWallpaper(ComposeOptions{
		Monitors:   []*Monitor{testMonitor("m", 40, 30, 10, 0, 0)},
		Placements: []Placement{{Monitor: "m"}},
		Fill:       FillOptions{Mode: "plaid"},
	})
	if err == nil {
		t.Error("ComposeWallpaper() accepted an unknown fill mode")
	}
}
