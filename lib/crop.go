package spanpaperlib

// monitorCrop describes which pixels of the oriented source a monitor
// displays and where they land within the monitor's strip.
type monitorCrop struct {
	src PixelRect
	dst PixelRect
}

// cropForMonitor maps the physical overlap between a monitor and a placed
// image into pixel rects. ok is false when they don't overlap at all, which
// just means that monitor shows nothing but fill.
func cropForMonitor(m *Monitor, si *SourceImage) (monitorCrop, bool) {
	imgRect := si.PhysicalRect()
	overlap := m.PhysicalRect().Intersect(imgRect)
	if overlap.Empty() {
		return monitorCrop{}, false
	}

	// Position of the overlap within the image, normalized to [0, 1].
	u1 := (overlap.Left - imgRect.Left) / imgRect.Width()
	u2 := (overlap.Right - imgRect.Left) / imgRect.Width()
	v1 := (overlap.Top - imgRect.Top) / imgRect.Height()
	v2 := (overlap.Bottom - imgRect.Top) / imgRect.Height()

	// The source was oriented before drawing, so the normalized rect maps
	// straight onto it regardless of the rotation angle.
	sw, sh := rotatedSize(si.natW, si.natH, si.Rotation)
	src := PixelRect{
		X: u1 * float64(sw),
		Y: v1 * float64(sh),
		W: (u2 - u1) * float64(sw),
		H: (v2 - v1) * float64(sh),
	}

	// Inch to pixel scale for this monitor, per axis.
	sx := float64(m.StripWidth()) / m.PhysicalWidth()
	sy := float64(m.StripHeight()) / m.PhysicalHeight()
	dst := PixelRect{
		X: (overlap.Left - m.X) * sx,
		Y: (overlap.Top - m.Y) * sy,
		W: overlap.Width() * sx,
		H: overlap.Height() * sy,
	}

	return monitorCrop{src: src, dst: dst}, true
}
