package spanpaperlib

import (
	"image/color"
	"testing"
)

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
		ok   bool
	}{
		{"#112233", color.NRGBA{R: 0x11, G: 0x22, B: 0x33, A: 0xff}, true},
		{"112233", color.NRGBA{R: 0x11, G: 0x22, B: 0x33, A: 0xff}, true},
		{"#abc", color.NRGBA{R: 0xaa, G: 0xbb, B: 0xcc, A: 0xff}, true},
		{"#ffffff", color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, true},
		{"#000000", color.NRGBA{A: 0xff}, true},
		{"#11223380", color.NRGBA{R: 0x11, G: 0x22, B: 0x33, A: 0x80}, true},
		{" #112233 ", color.NRGBA{R: 0x11, G: 0x22, B: 0x33, A: 0xff}, true},
		{"", color.NRGBA{}, false},
		{"#12345", color.NRGBA{}, false},
		{"#1122zz", color.NRGBA{}, false},
		{"not a color", color.NRGBA{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseHexColor(tt.in)
			if tt.ok {
				if err != nil {
					t.Fatalf("parseHexColor(%q) error = %v", tt.in, err)
				}
				if got != tt.want {
					t.Errorf("parseHexColor(%q) = %v, want %v", tt.in, got, tt.want)
				}
			} else if err == nil {
				t.Errorf("parseHexColor(%q) = %v, want error", tt.in, got)
			}
		})
	}
}
