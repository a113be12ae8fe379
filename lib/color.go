package spanpaperlib

import (
	"fmt"
	"image/color"
	"strings"
)

// parseHexColor accepts #RGB, #RRGGBB and #RRGGBBAA, with or without the
// leading #.
func parseHexColor(s string) (color.NRGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	c := color.NRGBA{A: 0xff}
	var err error

	switch len(h) {
	case 3:
		var r, g, b uint8
		_, err = fmt.Sscanf(h, "%1x%1x%1x", &r, &g, &b)
		c.R, c.G, c.B = r*0x11, g*0x11, b*0x11
	case 6:
		_, err = fmt.Sscanf(h, "%02x%02x%02x", &c.R, &c.G, &c.B)
	case 8:
		_, err = fmt.Sscanf(h, "%02x%02x%02x%02x", &c.R, &c.G, &c.B, &c.A)
	default:
		return color.NRGBA{A: 0xff}, fmt.Errorf("Invalid color [%s]", s)
	}

	if err != nil {
		return color.NRGBA{A: 0xff}, fmt.Errorf("Invalid color [%s]", s)
	}
	return c, nil
}
