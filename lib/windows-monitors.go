// +build windows

package spanpaperlib

import (
	"fmt"
	"math"

	"github.com/kbinani/screenshot"
)

// DetectLayout builds a starter layout from the active displays. Windows
// doesn't hand over physical panel sizes here, so every monitor is assumed
// to sit at 96 ppi until the user corrects the diagonals.
func DetectLayout() (*Layout, error) {
	n := screenshot.NumActiveDisplays()

	monitors := []*Monitor{}
	placements := []Placement{}

	for i := 0; i < n; i++ {
		b := screenshot.GetDisplayBounds(i)
		w, h := b.Dx(), b.Dy()
		if w <= 0 || h <= 0 {
			continue
		}

		m := &Monitor{
			Name:     fmt.Sprintf("DISPLAY%d", i+1),
			ResX:     w,
			ResY:     h,
			Diagonal: math.Sqrt(float64(w*w+h*h)) / assumedPPI,
			X:        float64(b.Min.X) / assumedPPI,
			Y:        float64(b.Min.Y) / assumedPPI,
		}
		m.AspectX, m.AspectY = aspectRatio(w, h)

		monitors = append(monitors, m)
		placements = append(placements, Placement{
			Monitor: m.Name,
			PixelX:  float64(b.Min.X),
			PixelY:  float64(b.Min.Y),
		})
	}

	return &Layout{Monitor: monitors, Placement: placements}, nil
}
