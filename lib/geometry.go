package spanpaperlib

import "math"

// PhysicalRect is a rectangle on the plane of the desk, measured in inches.
// Kept as its own type so physical math can't silently mix with pixel math.
type PhysicalRect struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

func (r PhysicalRect) Width() float64 {
	return r.Right - r.Left
}

func (r PhysicalRect) Height() float64 {
	return r.Bottom - r.Top
}

func (r PhysicalRect) Empty() bool {
	return r.Right <= r.Left || r.Bottom <= r.Top
}

// Intersect returns the overlapping region, or the zero rect when the two
// don't overlap. Rects that only share an edge do not overlap.
func (r PhysicalRect) Intersect(o PhysicalRect) PhysicalRect {
	out := PhysicalRect{
		Left:   math.Max(r.Left, o.Left),
		Top:    math.Max(r.Top, o.Top),
		Right:  math.Min(r.Right, o.Right),
		Bottom: math.Min(r.Bottom, o.Bottom),
	}
	if out.Empty() {
		return PhysicalRect{}
	}
	return out
}

func (r PhysicalRect) Union(o PhysicalRect) PhysicalRect {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	return PhysicalRect{
		Left:   math.Min(r.Left, o.Left),
		Top:    math.Min(r.Top, o.Top),
		Right:  math.Max(r.Right, o.Right),
		Bottom: math.Max(r.Bottom, o.Bottom),
	}
}

// PixelRect is a rectangle in pixel space. Fractional positions and sizes
// are meaningful, any rounding is the drawing layer's problem.
type PixelRect struct {
	X float64
	Y float64
	W float64
	H float64
}

func (r PixelRect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// PhysicalBounds is the bounding box of every monitor's physical rect.
func PhysicalBounds(monitors []*Monitor) PhysicalRect {
	out := PhysicalRect{}
	for _, m := range monitors {
		out = out.Union(m.PhysicalRect())
	}
	return out
}
