package config

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGB converts the colour with the hue wrapped into [0, 1).
func (c HSL) RGB() (r, g, b float32) {
	h := math.Mod(c.H, 1)
	if h < 0 {
		h++
	}
	col := colorful.Hsl(h*360, clamp01(c.S), clamp01(c.L)).Clamped()
	return float32(col.R), float32(col.G), float32(col.B)
}

// WithHue keeps saturation and lightness.
func (c HSL) WithHue(h float64) HSL {
	c.H = h
	return c
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
