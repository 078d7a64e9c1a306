package chart

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
)

// HSL is a color in the hue/saturation/lightness model. H is in degrees,
// S and L are percentages.
type HSL struct {
	H, S, L float64
}

// HueAt spaces n hues equally around the color wheel.
func HueAt(i, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(i*360) / float64(n)
}

// WheelColor returns the bar color for element i of n.
func WheelColor(i, n int) HSL {
	return HSL{H: HueAt(i, n), S: 70, L: 60}
}

func (c HSL) String() string {
	return fmt.Sprintf("hsl(%s, %s%%, %s%%)", formatNumber(c.H), formatNumber(c.S), formatNumber(c.L))
}

// NRGBA converts the color to 8-bit sRGB.
func (c HSL) NRGBA() color.NRGBA {
	h := math.Mod(c.H, 360)
	if h < 0 {
		h += 360
	}
	s := clamp01(c.S / 100)
	l := clamp01(c.L / 100)

	chroma := (1 - math.Abs(2*l-1)) * s
	x := chroma * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := l - chroma/2

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = chroma, x, 0
	case h < 120:
		r, g, b = x, chroma, 0
	case h < 180:
		r, g, b = 0, chroma, x
	case h < 240:
		r, g, b = 0, x, chroma
	case h < 300:
		r, g, b = x, 0, chroma
	default:
		r, g, b = chroma, 0, x
	}
	return color.NRGBA{
		R: uint8(math.Round((r + m) * 255)),
		G: uint8(math.Round((g + m) * 255)),
		B: uint8(math.Round((b + m) * 255)),
		A: 255,
	}
}

// RGBA implements color.Color.
func (c HSL) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

// CSS formats a color for the web charting library.
func CSS(c color.Color) string {
	switch v := c.(type) {
	case HSL:
		return v.String()
	case color.NRGBA:
		if v.A == 255 {
			return fmt.Sprintf("rgb(%d, %d, %d)", v.R, v.G, v.B)
		}
		return fmt.Sprintf("rgba(%d, %d, %d, %s)", v.R, v.G, v.B, formatNumber(math.Round(float64(v.A)/255*100)/100))
	}
	return CSS(color.NRGBAModel.Convert(c).(color.NRGBA))
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
