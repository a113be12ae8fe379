package spanpaperlib

import (
	"errors"
	"fmt"
	"math"
)

// Monitors with nonsensical dimensions fail here rather than producing NaN
// geometry somewhere deep in the compositor.
var ErrInvalidGeometry = errors.New("Invalid monitor geometry")

// Used when a display can't report its physical dimensions.
const assumedPPI = 96.0

// Bezels are informational only, they never affect derived geometry.
type Bezels struct {
	Top    float64
	Bottom float64
	Left   float64
	Right  float64
}

// Monitor is one physical panel. X and Y are the top left corner of the
// visible area in inches on the physical plane, ResX and ResY are the
// panel's native resolution in its unrotated orientation.
type Monitor struct {
	Name     string
	Diagonal float64
	AspectX  int
	AspectY  int
	ResX     int
	ResY     int
	X        float64
	Y        float64
	// Rotation is clockwise. Only 0 and 90 make sense on a desk.
	Rotation int
	Bezels   Bezels
}

func (m *Monitor) Validate() error {
	if m.Diagonal <= 0 || math.IsNaN(m.Diagonal) {
		return fmt.Errorf(
			"%w: monitor [%s] needs a positive diagonal, got %v",
			ErrInvalidGeometry, m.Name, m.Diagonal)
	}
	if m.ResX <= 0 || m.ResY <= 0 {
		return fmt.Errorf(
			"%w: monitor [%s] needs a positive resolution, got %dx%d",
			ErrInvalidGeometry, m.Name, m.ResX, m.ResY)
	}
	if m.AspectX <= 0 || m.AspectY <= 0 {
		return fmt.Errorf(
			"%w: monitor [%s] needs a positive aspect ratio, got %d:%d",
			ErrInvalidGeometry, m.Name, m.AspectX, m.AspectY)
	}
	if m.Rotation != 0 && m.Rotation != 90 {
		return fmt.Errorf(
			"%w: monitor [%s] rotation must be 0 or 90, got %d",
			ErrInvalidGeometry, m.Name, m.Rotation)
	}
	return nil
}

// PPI is derived from the diagonal and the native resolution and never
// stored, so it can't go stale when a monitor is edited.
func (m *Monitor) PPI() float64 {
	return math.Sqrt(float64(m.ResX*m.ResX+m.ResY*m.ResY)) / m.Diagonal
}

func (m *Monitor) rotated() bool {
	return m.Rotation == 90
}

// StripWidth and StripHeight are the pixel dimensions of this monitor's
// region of the composited output.
func (m *Monitor) StripWidth() int {
	if m.rotated() {
		return m.ResY
	}
	return m.ResX
}

func (m *Monitor) StripHeight() int {
	if m.rotated() {
		return m.ResX
	}
	return m.ResY
}

// PhysicalWidth of the visible area as placed on the desk, in inches.
func (m *Monitor) PhysicalWidth() float64 {
	return float64(m.StripWidth()) / m.PPI()
}

func (m *Monitor) PhysicalHeight() float64 {
	return float64(m.StripHeight()) / m.PPI()
}

func (m *Monitor) PhysicalRect() PhysicalRect {
	return PhysicalRect{
		Left:   m.X,
		Top:    m.Y,
		Right:  m.X + m.PhysicalWidth(),
		Bottom: m.Y + m.PhysicalHeight(),
	}
}

// Rotate toggles the panel between landscape and portrait around its top
// left corner.
func (m *Monitor) Rotate() {
	if m.Rotation == 0 {
		m.Rotation = 90
	} else {
		m.Rotation = 0
	}
}

func aspectRatio(x, y int) (int, int) {
	a, b := x, y

	for b != 0 {
		a, b = b, a%b
	}

	return x / a, y / a
}
