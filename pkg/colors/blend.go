package colors

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// HLS is a hue/lightness/saturation triple with every component in
// [0,1]; hue wraps. The LED brightness math is written against this
// component order.
type HLS struct {
	H, L, S float64
}

// And filters a through b channel by channel, the way a tinted bulb
// filters the light of the diode behind it.
func And(a, b RGB) RGB {
	return RGB{a.R & b.R, a.G & b.G, a.B & b.B}
}

func ToHLS(c RGB) HLS {
	h, s, l := toColorful(c).Hsl()
	return HLS{H: h / 360, L: l, S: s}
}

func FromHLS(h HLS) RGB {
	hue := math.Mod(h.H, 1)
	if hue < 0 {
		hue++
	}
	return fromColorful(colorful.Hsl(hue*360, clamp01(h.S), clamp01(h.L)))
}

// WithLuminosity keeps hue and saturation and replaces lightness.
func WithLuminosity(c RGB, l float64) RGB {
	h := ToHLS(c)
	h.L = l
	return FromHLS(h)
}

// Lerp interpolates channel-wise between a and b; t is clamped to [0,1].
func Lerp(a, b RGB, t float64) RGB {
	t = clamp01(t)
	return RGB{
		R: lerp16(a.R, b.R, t),
		G: lerp16(a.G, b.G, t),
		B: lerp16(a.B, b.B, t),
	}
}

func lerp16(a, b uint16, t float64) uint16 {
	return uint16(math.Round(float64(a) + (float64(b)-float64(a))*t))
}

func toColorful(c RGB) colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 0xFFFF,
		G: float64(c.G) / 0xFFFF,
		B: float64(c.B) / 0xFFFF,
	}
}

func fromColorful(c colorful.Color) RGB {
	return RGB{
		R: uint16(math.Round(clamp01(c.R) * 0xFFFF)),
		G: uint16(math.Round(clamp01(c.G) * 0xFFFF)),
		B: uint16(math.Round(clamp01(c.B) * 0xFFFF)),
	}
}

func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}
