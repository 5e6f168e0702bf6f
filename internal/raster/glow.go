package raster

import "math"

// Precomputed sRGB-to-linear lookup table (256 entries).
var srgbToLinear [256]float64

func init() {
	for i := 0; i < 256; i++ {
		srgbToLinear[i] = math.Pow(float64(i)/255.0, 2.2)
	}
}

// ACESTonemap applies ACES Filmic tone mapping to a linear value.
func ACESTonemap(x float64) float64 {
	return (x * (2.51*x + 0.03)) / (x*(2.43*x+0.59) + 0.14)
}

// Shade is the per-line fragment state: tint in linear light and the light
// saber threshold.
type Shade struct {
	R, G, B, A float64
	// Texels with alpha above Core render as white-hot core instead of
	// tinted glow.
	Core float64
}

// NewShade derives the fragment state from a linear tint and a light saber
// factor in [0,1]. A factor of 0 disables the core; 1 makes the whole line core.
func NewShade(r, g, b, a, lightSaber float64) Shade {
	return Shade{R: r, G: g, B: b, A: a, Core: 1 - lightSaber}
}

// Fragment returns the premultiplied additive contribution of one texel.
func (s *Shade) Fragment(tr, tg, tb, ta uint8) (r, g, b, a float64) {
	alpha := float64(ta) / 255
	if alpha <= 0 {
		return 0, 0, 0, 0
	}
	if alpha > s.Core {
		return alpha, alpha, alpha, alpha
	}
	a = alpha * s.A
	return srgbToLinear[tr] * s.R * a, srgbToLinear[tg] * s.G * a, srgbToLinear[tb] * s.B * a, a
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
