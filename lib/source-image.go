package spanpaperlib

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	// imaging only registers decoders for the formats it can write.
	_ "golang.org/x/image/webp"
)

// SourceImage is a decoded image plus its placement on the physical plane.
// The pixels and natural dimensions are fixed at load time, the placement
// and rotation are freely adjustable afterwards.
type SourceImage struct {
	Path AbsolutePath

	// Placement in inches.
	X      float64
	Y      float64
	Width  float64
	Height float64
	// Display rotation, clockwise. One of 0, 90, 180 or 270.
	Rotation int

	pixels *image.NRGBA
	natW   int
	natH   int
}

func LoadSourceImage(path AbsolutePath) (*SourceImage, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("Failed to open image [%s]: %s", path, err)
	}

	si := NewSourceImage(img)
	si.Path = path
	return si, nil
}

func NewSourceImage(img image.Image) *SourceImage {
	px := imaging.Clone(img)
	b := px.Bounds()

	return &SourceImage{
		pixels: px,
		natW:   b.Dx(),
		natH:   b.Dy(),
	}
}

func (si *SourceImage) NaturalWidth() int {
	return si.natW
}

func (si *SourceImage) NaturalHeight() int {
	return si.natH
}

// Aspect is the width to height ratio as displayed, so a portrait photo
// rotated onto its side reports a landscape aspect.
func (si *SourceImage) Aspect() float64 {
	w, h := rotatedSize(si.natW, si.natH, si.Rotation)
	return float64(w) / float64(h)
}

func (si *SourceImage) PhysicalRect() PhysicalRect {
	return PhysicalRect{
		Left:   si.X,
		Top:    si.Y,
		Right:  si.X + si.Width,
		Bottom: si.Y + si.Height,
	}
}

// Rotate turns the displayed image a quarter turn clockwise. The placement
// is left alone, callers that want the image to keep covering the desk
// should follow up with CoverPhysicalRect.
func (si *SourceImage) Rotate() {
	si.Rotation = normalizeRotation(si.Rotation + 90)
}

// CoverPhysicalRect places the image as the smallest rect of its displayed
// aspect that fully covers b, centered on it. This is the default placement
// for a freshly loaded image.
func (si *SourceImage) CoverPhysicalRect(b PhysicalRect) {
	if b.Empty() {
		return
	}

	aspect := si.Aspect()
	w := b.Width()
	h := w / aspect
	if h < b.Height() {
		h = b.Height()
		w = h * aspect
	}

	si.Width = w
	si.Height = h
	si.X = b.Left - (w-b.Width())/2
	si.Y = b.Top - (h-b.Height())/2
}

func (si *SourceImage) validate() error {
	if si.Width <= 0 || si.Height <= 0 {
		return fmt.Errorf(
			"%w: image [%s] needs a positive physical size, got %vx%v",
			ErrInvalidGeometry, si.Path, si.Width, si.Height)
	}
	return nil
}

// oriented returns the pixels rotated for display.
func (si *SourceImage) oriented() *image.NRGBA {
	return orient(si.pixels, si.Rotation)
}
