package domain

import (
	"fmt"
	"math"
)

// ColorSet is the denormalized display colors for one palette slot.
type ColorSet struct {
	Background string `json:"background"`
	Text       string `json:"text"`
	Border     string `json:"border"`
}

type hsl struct {
	h, s, l float64
}

type paletteSlot struct {
	hue                      float64
	background, text, border hsl
}

// The 12 fixed palette slots. Light variants tune saturation and lightness per
// hue; dark variants are derived uniformly from the hue.
var paletteSlots = []paletteSlot{
	{120, hsl{120, 60, 95}, hsl{120, 60, 25}, hsl{120, 60, 35}},    // green
	{210, hsl{210, 100, 95}, hsl{210, 100, 30}, hsl{210, 83, 45}},  // blue
	{30, hsl{30, 100, 95}, hsl{30, 100, 30}, hsl{30, 100, 45}},     // orange
	{280, hsl{280, 100, 95}, hsl{280, 100, 30}, hsl{280, 67, 45}},  // purple
	{0, hsl{0, 100, 95}, hsl{0, 100, 30}, hsl{0, 100, 40}},         // red
	{180, hsl{180, 100, 95}, hsl{180, 100, 20}, hsl{180, 100, 30}}, // cyan
	{45, hsl{45, 100, 95}, hsl{45, 100, 30}, hsl{45, 100, 40}},     // amber
	{90, hsl{90, 100, 95}, hsl{90, 100, 25}, hsl{90, 100, 35}},     // light green
	{240, hsl{240, 100, 95}, hsl{240, 100, 25}, hsl{240, 100, 40}}, // indigo
	{330, hsl{330, 100, 95}, hsl{330, 100, 30}, hsl{330, 100, 40}}, // pink
	{20, hsl{20, 20, 95}, hsl{20, 20, 25}, hsl{20, 20, 35}},        // brown
	{165, hsl{165, 100, 95}, hsl{165, 100, 25}, hsl{165, 100, 30}}, // teal
}

// PaletteSize is the number of color slots available to activities.
var PaletteSize = len(paletteSlots)

var (
	lightPalette = buildPalette(false)
	darkPalette  = buildPalette(true)
)

func buildPalette(dark bool) []ColorSet {
	out := make([]ColorSet, len(paletteSlots))
	for i, slot := range paletteSlots {
		if dark {
			out[i] = ColorSet{
				Background: hslToHex(hsl{slot.hue, 70, 25}),
				Text:       hslToHex(hsl{slot.hue, 70, 90}),
				Border:     hslToHex(hsl{slot.hue, 70, 40}),
			}
		} else {
			out[i] = ColorSet{
				Background: hslToHex(slot.background),
				Text:       hslToHex(slot.text),
				Border:     hslToHex(slot.border),
			}
		}
	}
	return out
}

func hslToHex(c hsl) string {
	l := c.l / 100
	a := c.s * math.Min(l, 1-l) / 100
	f := func(n float64) int {
		k := math.Mod(n+c.h/30, 12)
		color := l - a*math.Max(math.Min(math.Min(k-3, 9-k), 1), -1)
		return int(math.Round(255 * color))
	}
	return fmt.Sprintf("#%02x%02x%02x", f(0), f(8), f(4))
}

// ColorAt resolves a stored slot index to its ColorSet for the given theme.
// Out-of-range indices fall back to slot 0.
func ColorAt(index int, dark bool) ColorSet {
	if index < 0 || index >= PaletteSize {
		index = 0
	}
	if dark {
		return darkPalette[index]
	}
	return lightPalette[index]
}

// NextAvailableIndex picks the color slot for a new activity given the slots
// already assigned. It returns the smallest unused index; when every slot is
// taken it returns the least-used one, ties broken by lowest index.
// Out-of-range values in assigned are ignored.
func NextAvailableIndex(assigned []int) int {
	counts := make([]int, PaletteSize)
	for _, idx := range assigned {
		if idx < 0 || idx >= PaletteSize {
			continue
		}
		counts[idx]++
	}

	for i, n := range counts {
		if n == 0 {
			return i
		}
	}

	best := 0
	for i, n := range counts {
		if n < counts[best] {
			best = i
		}
	}
	return best
}
