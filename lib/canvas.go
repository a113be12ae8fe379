package spanpaperlib

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// Output surfaces past this many pixels fail recoverably instead of
// attempting the allocation.
const maxOutputPixels = 1 << 28

var ErrOutputTooLarge = errors.New(
	"Output dimensions are too large to render")

// Canvas is the minimal surface the compositor draws on. The software
// implementation is the only real one, tests substitute counting canvases
// and the coverage report uses one that never allocates pixels.
type Canvas interface {
	Size() (int, int)
	Fill(r image.Rectangle, c color.NRGBA)
	DrawRegion(src image.Image, sr, dr PixelRect)
	Image() *image.NRGBA
}

type imageCanvas struct {
	img *image.NRGBA
}

func newImageCanvas(w, h int) (Canvas, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("Canvas dimensions %dx%d are not positive", w, h)
	}
	if int64(w)*int64(h) > maxOutputPixels {
		return nil, ErrOutputTooLarge
	}

	return &imageCanvas{img: image.NewNRGBA(image.Rect(0, 0, w, h))}, nil
}

func (ic *imageCanvas) Size() (int, int) {
	b := ic.img.Bounds()
	return b.Dx(), b.Dy()
}

func (ic *imageCanvas) Fill(r image.Rectangle, c color.NRGBA) {
	draw.Draw(
		ic.img, r.Intersect(ic.img.Bounds()),
		image.NewUniform(c), image.Point{}, draw.Src)
}

func (ic *imageCanvas) Image() *image.NRGBA {
	return ic.img
}

func integral(f float64) bool {
	return f == math.Trunc(f)
}

func outerRect(r PixelRect) image.Rectangle {
	return image.Rect(
		int(math.Floor(r.X)), int(math.Floor(r.Y)),
		int(math.Ceil(r.X+r.W)), int(math.Ceil(r.Y+r.H)))
}

// DrawRegion draws sr from src into dr with Catmull-Rom resampling, on top
// of whatever is already there. Fractional rects are honored through the
// affine transform. A plain unscaled copy at whole pixel offsets skips the
// kernel entirely.
func (ic *imageCanvas) DrawRegion(src image.Image, sr, dr PixelRect) {
	if sr.Empty() || dr.Empty() {
		return
	}

	clip := outerRect(dr).Intersect(ic.img.Bounds())
	if clip.Empty() {
		return
	}
	// Writes land only inside the destination rect, the resampling kernel
	// must not repaint neighboring strips.
	dst := ic.img.SubImage(clip).(*image.NRGBA)

	sx := dr.W / sr.W
	sy := dr.H / sr.H

	if sx == 1 && sy == 1 &&
		integral(sr.X) && integral(sr.Y) && integral(dr.X) && integral(dr.Y) {
		sp := image.Pt(
			int(sr.X)+clip.Min.X-int(dr.X),
			int(sr.Y)+clip.Min.Y-int(dr.Y))
		draw.Draw(dst, clip, src, sp, draw.Over)
		return
	}

	srcClip := outerRect(sr).Intersect(src.Bounds())
	if srcClip.Empty() {
		return
	}

	m := f64.Aff3{
		sx, 0, dr.X - sr.X*sx,
		0, sy, dr.Y - sr.Y*sy,
	}
	xdraw.CatmullRom.Transform(dst, m, src, srcClip, xdraw.Over, nil)
}

// nullCanvas reports a size but never holds pixels. Composing onto it
// produces just the coverage report.
type nullCanvas struct {
	w int
	h int
}

func NullCanvas(w, h int) (Canvas, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("Canvas dimensions %dx%d are not positive", w, h)
	}
	if int64(w)*int64(h) > maxOutputPixels {
		return nil, ErrOutputTooLarge
	}

	return &nullCanvas{w: w, h: h}, nil
}

func (nc *nullCanvas) Size() (int, int) {
	return nc.w, nc.h
}

func (nc *nullCanvas) Fill(r image.Rectangle, c color.NRGBA) {}

func (nc *nullCanvas) DrawRegion(src image.Image, sr, dr PixelRect) {}

func (nc *nullCanvas) Image() *image.NRGBA {
	return nil
}
