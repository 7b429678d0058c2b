// Package textwidth estimates rendered text dimensions from rune counts.
//
// Exact metrics come from the font engine upstream; layout only needs a
// conservative lower bound to detect declared sizes that cannot possibly fit
// their label.
package textwidth

import (
	"math"
	"strings"

	"golang.org/x/text/width"
)

const (
	// average glyph advance as a fraction of font size for latin scripts
	CharWidthRatio  = 0.6
	LineHeightRatio = 1.4
)

// Units returns the width of s in character cells. East Asian wide and
// fullwidth runes occupy two cells.
func Units(s string) float64 {
	var units float64
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			units += 2
		default:
			units++
		}
	}
	return units
}

// EstimateSize returns a lower-bound (width, height) for s rendered at
// fontSize, honoring embedded newlines.
func EstimateSize(s string, fontSize float64) (float64, float64) {
	if s == "" {
		return 0, 0
	}
	var maxUnits float64
	lines := strings.Split(s, "\n")
	for _, line := range lines {
		maxUnits = math.Max(maxUnits, Units(line))
	}
	w := maxUnits * fontSize * CharWidthRatio
	h := float64(len(lines)) * fontSize * LineHeightRatio
	return w, h
}

// WrappedHeight returns the height of s wrapped to maxWidth at fontSize.
// Used to reserve title bands on subgraph frames.
func WrappedHeight(s string, fontSize, maxWidth float64) float64 {
	if s == "" {
		return 0
	}
	lineUnits := maxWidth / (fontSize * CharWidthRatio)
	if lineUnits < 1 {
		lineUnits = 1
	}
	var lines float64
	for _, line := range strings.Split(s, "\n") {
		lines += math.Max(1, math.Ceil(Units(line)/lineUnits))
	}
	return lines * fontSize * LineHeightRatio
}
