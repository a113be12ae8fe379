package spanpaperlib

import (
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// Layout is the on-disk description of the desk: the monitors, the image
// spanned across them, how the OS arranges the monitors in pixels, and the
// fill. Only Monitor is required, everything else has usable defaults.
type Layout struct {
	Monitor   []*Monitor
	Image     *ImageConfig
	Placement []Placement
	Fill      *FillOptions
}

// ImageConfig is the layout file's description of the source image. A zero
// Width and Height means cover all monitors, Width alone keeps the image's
// aspect.
type ImageConfig struct {
	Path     string
	X        float64
	Y        float64
	Width    float64
	Height   float64
	Rotation int
}

func LoadLayout(path AbsolutePath) (*Layout, error) {
	l := &Layout{}
	_, err := toml.DecodeFile(path, l)
	if err != nil {
		return nil, fmt.Errorf("Failed to parse layout [%s]: %s", path, err)
	}

	if err = l.validate(); err != nil {
		return nil, fmt.Errorf("Invalid layout [%s]: %s", path, err)
	}
	return l, nil
}

func (l *Layout) validate() error {
	seen := map[string]bool{}
	for i, m := range l.Monitor {
		if m.Name == "" {
			return fmt.Errorf("Monitor %d missing Name", i)
		}
		if seen[m.Name] {
			return fmt.Errorf("Duplicate monitor name [%s]", m.Name)
		}
		seen[m.Name] = true

		if m.AspectX == 0 && m.AspectY == 0 && m.ResX > 0 && m.ResY > 0 {
			m.AspectX, m.AspectY = aspectRatio(m.ResX, m.ResY)
		}
		if err := m.Validate(); err != nil {
			return err
		}
	}

	if l.Image != nil && l.Image.Rotation%90 != 0 {
		return fmt.Errorf(
			"Image rotation must be a multiple of 90, got %d", l.Image.Rotation)
	}

	if l.Fill != nil {
		switch l.Fill.Mode {
		case "", FillSolid, FillBlur, FillTransparent:
		default:
			return fmt.Errorf("Unknown fill mode [%s]", l.Fill.Mode)
		}
		if l.Fill.Color != "" {
			if _, err := parseHexColor(l.Fill.Color); err != nil {
				return err
			}
		}
	}

	return nil
}

// FillOptions resolves the layout's fill with defaults applied.
func (l *Layout) FillOptions() FillOptions {
	out := DefaultFill()
	if l.Fill != nil {
		if l.Fill.Mode != "" {
			out.Mode = l.Fill.Mode
		}
		if l.Fill.Color != "" {
			out.Color = l.Fill.Color
		}
	}
	return out
}

// Arrangement returns the virtual arrangement, falling back to the default
// packing when the layout doesn't pin one.
func (l *Layout) Arrangement() []Placement {
	names := map[string]bool{}
	for _, m := range l.Monitor {
		names[m.Name] = true
	}

	usable := make([]Placement, 0, len(l.Placement))
	for _, p := range l.Placement {
		if names[p.Monitor] {
			usable = append(usable, p)
		}
	}
	if len(usable) > 0 {
		return usable
	}
	return AutoArrange(l.Monitor)
}

// AutoArrange produces a left to right, top aligned arrangement matching
// the physical ordering of the monitors. It's what most OSes do when
// monitors are plugged in for the first time.
func AutoArrange(monitors []*Monitor) []Placement {
	sorted := append([]*Monitor(nil), monitors...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].X != sorted[j].X {
			return sorted[i].X < sorted[j].X
		}
		return sorted[i].Y < sorted[j].Y
	})

	out := make([]Placement, 0, len(sorted))
	x := 0.0
	for _, m := range sorted {
		out = append(out, Placement{Monitor: m.Name, PixelX: x})
		x += float64(m.StripWidth())
	}
	return out
}

// SourceImage loads the layout's image with its placement applied. A
// layout without an image returns nil.
func (l *Layout) SourceImage() (*SourceImage, error) {
	if l.Image == nil || l.Image.Path == "" {
		return nil, nil
	}

	si, err := LoadSourceImage(l.Image.Path)
	if err != nil {
		return nil, err
	}
	si.Rotation = normalizeRotation(l.Image.Rotation)

	switch {
	case l.Image.Width > 0 && l.Image.Height > 0:
		si.X, si.Y = l.Image.X, l.Image.Y
		si.Width, si.Height = l.Image.Width, l.Image.Height
	case l.Image.Width > 0:
		si.X, si.Y = l.Image.X, l.Image.Y
		si.Width = l.Image.Width
		si.Height = l.Image.Width / si.Aspect()
	default:
		si.CoverPhysicalRect(PhysicalBounds(l.Monitor))
	}

	return si, nil
}

// Just have to make everything as difficult as possible
func tomlDouble(f float64) string {
	s := fmt.Sprintf("%g", f)
	if !strings.ContainsRune(s, '.') && !strings.ContainsRune(s, 'e') {
		s = s + ".0"
	}
	return s
}

// TOML renders the layout in the shape LoadLayout reads. Written by hand
// rather than through an encoder so zero valued optional fields stay out
// of the file and the field order stays stable.
func (l *Layout) TOML() string {
	var b strings.Builder

	for _, m := range l.Monitor {
		b.WriteString("[[Monitor]]\n")
		fmt.Fprintf(&b, "Name = '%s'\n", m.Name)
		fmt.Fprintf(&b, "Diagonal = %s\n", tomlDouble(m.Diagonal))
		fmt.Fprintf(&b, "AspectX = %d\n", m.AspectX)
		fmt.Fprintf(&b, "AspectY = %d\n", m.AspectY)
		fmt.Fprintf(&b, "ResX = %d\n", m.ResX)
		fmt.Fprintf(&b, "ResY = %d\n", m.ResY)
		fmt.Fprintf(&b, "X = %s\n", tomlDouble(m.X))
		fmt.Fprintf(&b, "Y = %s\n", tomlDouble(m.Y))
		if m.Rotation != 0 {
			fmt.Fprintf(&b, "Rotation = %d\n", m.Rotation)
		}
		if m.Bezels != (Bezels{}) {
			fmt.Fprintf(
				&b,
				"Bezels = { Top = %s, Bottom = %s, Left = %s, Right = %s }\n",
				tomlDouble(m.Bezels.Top), tomlDouble(m.Bezels.Bottom),
				tomlDouble(m.Bezels.Left), tomlDouble(m.Bezels.Right))
		}
		b.WriteString("\n")
	}

	if l.Image != nil && l.Image.Path != "" {
		b.WriteString("[Image]\n")
		fmt.Fprintf(&b, "Path = '%s'\n", l.Image.Path)
		if l.Image.Width > 0 {
			fmt.Fprintf(&b, "X = %s\n", tomlDouble(l.Image.X))
			fmt.Fprintf(&b, "Y = %s\n", tomlDouble(l.Image.Y))
			fmt.Fprintf(&b, "Width = %s\n", tomlDouble(l.Image.Width))
		}
		if l.Image.Height > 0 {
			fmt.Fprintf(&b, "Height = %s\n", tomlDouble(l.Image.Height))
		}
		if l.Image.Rotation != 0 {
			fmt.Fprintf(&b, "Rotation = %d\n", l.Image.Rotation)
		}
		b.WriteString("\n")
	}

	for _, p := range l.Placement {
		b.WriteString("[[Placement]]\n")
		fmt.Fprintf(&b, "Monitor = '%s'\n", p.Monitor)
		fmt.Fprintf(&b, "PixelX = %s\n", tomlDouble(p.PixelX))
		fmt.Fprintf(&b, "PixelY = %s\n", tomlDouble(p.PixelY))
		b.WriteString("\n")
	}

	if l.Fill != nil && (l.Fill.Mode != "" || l.Fill.Color != "") {
		b.WriteString("[Fill]\n")
		if l.Fill.Mode != "" {
			fmt.Fprintf(&b, "Mode = '%s'\n", l.Fill.Mode)
		}
		if l.Fill.Color != "" {
			fmt.Fprintf(&b, "Color = '%s'\n", l.Fill.Color)
		}
	}

	return b.String()
}
