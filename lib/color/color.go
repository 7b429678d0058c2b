package color

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/mazznoer/csscolorparser"
)

// RelativeLuminance implements the WCAG 2.x definition over linearized sRGB.
// https://www.w3.org/WAI/GL/wiki/Relative_luminance
func RelativeLuminance(colorString string) (float64, error) {
	c, err := csscolorparser.Parse(colorString)
	if err != nil {
		return 0, err
	}
	r, g, b := colorful.Color{R: c.R, G: c.G, B: c.B}.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b, nil
}

// ContrastRatio returns the WCAG contrast ratio between two colors, in [1, 21].
// Unparseable colors yield the maximum ratio so that scoring never penalizes
// colors it cannot understand.
func ContrastRatio(a, b string) float64 {
	la, err := RelativeLuminance(a)
	if err != nil {
		return 21
	}
	lb, err := RelativeLuminance(b)
	if err != nil {
		return 21
	}
	lighter := math.Max(la, lb)
	darker := math.Min(la, lb)
	return (lighter + 0.05) / (darker + 0.05)
}

func Darken(colorString string) (string, error) {
	c, err := csscolorparser.Parse(colorString)
	if err != nil {
		return "", err
	}
	h, s, l := colorful.Color{R: c.R, G: c.G, B: c.B}.Hsl()
	// decrease luminance by 10%
	return colorful.Hsl(h, s, l-.1).Clamped().Hex(), nil
}
