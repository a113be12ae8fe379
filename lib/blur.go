package spanpaperlib

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// Size cap for the working canvas of the blur pass. Blurring at full
// wallpaper resolution costs seconds and looks no different after the
// upscale.
const blurWorkSize = 512

// Blur sigma as a fraction of the working canvas's larger dimension, which
// keeps the apparent blur the same across output resolutions.
const blurSigmaFraction = 0.02

// drawBlurBackdrop paints a blurred, edge extended copy of the image across
// the whole canvas, beneath the sharp strips. The image's virtual position
// comes from converting its physical placement at the mean monitor density,
// anchored at the first placed monitor.
func drawBlurBackdrop(
	canvas Canvas, si *SourceImage,
	byName map[string]*Monitor, placements []Placement,
	minX, minY float64) {

	outW, outH := canvas.Size()

	scale := 0.0
	for _, p := range placements {
		scale += byName[p.Monitor].PPI()
	}
	scale /= float64(len(placements))

	anchorP := placements[0]
	anchor := byName[anchorP.Monitor]
	imgVX := (anchorP.PixelX - minX) + (si.X-anchor.X)*scale
	imgVY := (anchorP.PixelY - minY) + (si.Y-anchor.Y)*scale
	imgVW := si.Width * scale
	imgVH := si.Height * scale
	if imgVW <= 0 || imgVH <= 0 {
		return
	}

	factor := 1.0
	larger := outW
	if outH > larger {
		larger = outH
	}
	if larger > blurWorkSize {
		factor = blurWorkSize / float64(larger)
	}
	workW := int(math.Round(float64(outW) * factor))
	workH := int(math.Round(float64(outH) * factor))
	if workW < 1 {
		workW = 1
	}
	if workH < 1 {
		workH = 1
	}

	work := image.NewNRGBA(image.Rect(0, 0, workW, workH))
	wc := &imageCanvas{img: work}

	oriented := si.oriented()
	ob := oriented.Bounds()
	dst := PixelRect{
		X: imgVX * factor,
		Y: imgVY * factor,
		W: imgVW * factor,
		H: imgVH * factor,
	}
	wc.DrawRegion(oriented, PixelRect{
		W: float64(ob.Dx()),
		H: float64(ob.Dy()),
	}, dst)
	extendEdges(work, dst)

	sigma := blurSigmaFraction * float64(workW)
	if workH > workW {
		sigma = blurSigmaFraction * float64(workH)
	}
	blurred := imaging.Blur(work, sigma)
	up := imaging.Resize(blurred, outW, outH, imaging.Lanczos)

	full := PixelRect{W: float64(outW), H: float64(outH)}
	canvas.DrawRegion(up, full, full)
}

// extendEdges replicates the border pixels of r out to the canvas edges,
// the clamp to edge treatment the blur then smears inward. Without it the
// blur would pull in the background color and halo the image border.
func extendEdges(img *image.NRGBA, r PixelRect) {
	b := img.Bounds()
	ir := outerRect(r).Intersect(b)
	if ir.Empty() || ir == b {
		return
	}

	for y := b.Min.Y; y < b.Max.Y; y++ {
		cy := clampInt(y, ir.Min.Y, ir.Max.Y-1)
		for x := b.Min.X; x < b.Max.X; x++ {
			if x >= ir.Min.X && x < ir.Max.X && y >= ir.Min.Y && y < ir.Max.Y {
				continue
			}
			cx := clampInt(x, ir.Min.X, ir.Max.X-1)
			img.SetNRGBA(x, y, img.NRGBAAt(cx, cy))
		}
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
