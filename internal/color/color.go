// Package color derives stable display colours for placeholder artwork.
package color

import (
	"fmt"
	"hash/fnv"
)

// Swatch is a background colour with a readable foreground for text on it.
type Swatch struct {
	Background string // "#RRGGBB"
	Foreground string // "#RRGGBB"
}

// ForName returns a deterministic swatch for a label, so the same title
// always gets the same placeholder colour. Hues are spread around the wheel
// with fixed saturation and a dark lightness that suits the UI theme.
func ForName(name string) Swatch {
	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	hue := float64(h.Sum32() % 360)

	r, g, b := hslToRGB(hue, 0.45, 0.32)
	return Swatch{
		Background: hex(r, g, b),
		Foreground: "#F5F5F5",
	}
}

// Accent is the theme red used for highlights (#DC143C, crimson).
const Accent = "#DC143C"

func hex(r, g, b uint8) string {
	return fmt.Sprintf("#%02X%02X%02X", r, g, b)
}

// hslToRGB converts HSL to RGB.
// h: hue (0-360), s: saturation (0-1), l: lightness (0-1).
func hslToRGB(h, s, l float64) (r, g, b uint8) {
	h /= 360.0

	var r1, g1, b1 float64
	if s == 0 {
		r1, g1, b1 = l, l, l
	} else {
		var q float64
		if l < 0.5 {
			q = l * (1 + s)
		} else {
			q = l + s - l*s
		}
		p := 2*l - q

		r1 = hueToRGB(p, q, h+1.0/3.0)
		g1 = hueToRGB(p, q, h)
		b1 = hueToRGB(p, q, h-1.0/3.0)
	}

	return uint8(r1*255 + 0.5), uint8(g1*255 + 0.5), uint8(b1*255 + 0.5)
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6.0:
		return p + (q-p)*6*t
	case t < 1.0/2.0:
		return q
	case t < 2.0/3.0:
		return p + (q-p)*(2.0/3.0-t)*6
	}
	return p
}
