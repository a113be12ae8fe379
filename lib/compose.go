package spanpaperlib

import (
	"fmt"
	"image"
	"image/color"
	"math"
)

type FillMode string

const (
	FillSolid       FillMode = "solid"
	FillBlur        FillMode = "blur"
	FillTransparent FillMode = "transparent"
)

// FillOptions controls what shows anywhere the image doesn't reach: gaps
// between monitors and monitors the image doesn't cover.
type FillOptions struct {
	Mode  FillMode
	Color string
}

func DefaultFill() FillOptions {
	return FillOptions{Mode: FillSolid, Color: "#000000"}
}

// Placement pins a monitor to its top left position in the OS virtual
// desktop, in pixels.
type Placement struct {
	Monitor string
	PixelX  float64
	PixelY  float64
}

// Strip records where one monitor's pixels landed in the output.
type Strip struct {
	Monitor string
	X       int
	Y       int
	Width   int
	Height  int
}

// Composite is a rendered spanned wallpaper plus its coverage report.
// Image is nil when the canvas doesn't keep pixels.
type Composite struct {
	Image   *image.NRGBA
	Width   int
	Height  int
	Strips  []Strip
	HasGaps bool
}

type ComposeOptions struct {
	Monitors []*Monitor
	// Image may be nil to render only the fill.
	Image      *SourceImage
	Placements []Placement
	Fill       FillOptions
	// NewCanvas overrides the output surface. Defaults to the software
	// canvas.
	NewCanvas func(w, h int) (Canvas, error)
}

// ComposeWallpaper renders the spanned wallpaper for a set of monitors.
// Placements naming monitors that no longer exist are dropped, monitors
// without a placement are left out of the output entirely. When nothing
// usable remains there is nothing to render and the result is nil with no
// error. Identical inputs always produce identical pixels.
func ComposeWallpaper(co ComposeOptions) (*Composite, error) {
	byName := map[string]*Monitor{}
	for _, m := range co.Monitors {
		if err := m.Validate(); err != nil {
			return nil, err
		}
		byName[m.Name] = m
	}

	if co.Image != nil {
		if err := co.Image.validate(); err != nil {
			return nil, err
		}
	}

	usable := make([]Placement, 0, len(co.Placements))
	for _, p := range co.Placements {
		if _, ok := byName[p.Monitor]; ok {
			usable = append(usable, p)
		}
	}
	if len(usable) == 0 {
		return nil, nil
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range usable {
		m := byName[p.Monitor]
		minX = math.Min(minX, p.PixelX)
		minY = math.Min(minY, p.PixelY)
		maxX = math.Max(maxX, p.PixelX+float64(m.StripWidth()))
		maxY = math.Max(maxY, p.PixelY+float64(m.StripHeight()))
	}

	outW := int(math.Round(maxX - minX))
	outH := int(math.Round(maxY - minY))

	newCanvas := co.NewCanvas
	if newCanvas == nil {
		newCanvas = newImageCanvas
	}
	canvas, err := newCanvas(outW, outH)
	if err != nil {
		return nil, err
	}

	fill := co.Fill
	if fill.Mode == "" {
		fill.Mode = DefaultFill().Mode
	}
	fillColor := color.NRGBA{A: 0xff}
	if fill.Color != "" {
		fillColor, err = parseHexColor(fill.Color)
		if err != nil {
			return nil, err
		}
	}

	bounds := image.Rect(0, 0, outW, outH)
	switch fill.Mode {
	case FillSolid:
		canvas.Fill(bounds, fillColor)
	case FillTransparent:
		canvas.Fill(bounds, color.NRGBA{})
	case FillBlur:
		// The blurred backdrop goes over the solid color, anything it
		// doesn't reach still shows the color.
		canvas.Fill(bounds, fillColor)
		if co.Image != nil {
			drawBlurBackdrop(canvas, co.Image, byName, usable, minX, minY)
		}
	default:
		return nil, fmt.Errorf("Unknown fill mode [%s]", fill.Mode)
	}

	var oriented *image.NRGBA
	if co.Image != nil {
		oriented = co.Image.oriented()
	}

	strips := make([]Strip, 0, len(usable))
	var covered int64
	for _, p := range usable {
		m := byName[p.Monitor]

		strip := Strip{
			Monitor: m.Name,
			X:       int(math.Round(p.PixelX - minX)),
			Y:       int(math.Round(p.PixelY - minY)),
			Width:   m.StripWidth(),
			Height:  m.StripHeight(),
		}
		strips = append(strips, strip)
		covered += int64(strip.Width) * int64(strip.Height)

		if oriented == nil {
			continue
		}
		crop, ok := cropForMonitor(m, co.Image)
		if !ok {
			continue
		}

		// The sharp crop always lands on top of the fill and backdrop.
		dst := crop.dst
		dst.X += float64(strip.X)
		dst.Y += float64(strip.Y)
		canvas.DrawRegion(oriented, crop.src, dst)
	}

	return &Composite{
		Image:   canvas.Image(),
		Width:   outW,
		Height:  outH,
		Strips:  strips,
		HasGaps: covered < int64(outW)*int64(outH),
	}, nil
}
