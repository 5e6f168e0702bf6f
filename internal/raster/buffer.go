package raster

import (
	"image"
	"math"
)

// FrameBuffer accumulates additive glow in linear light as flat slices for
// cache locality.
type FrameBuffer struct {
	Width  int
	Height int
	Accum  []float64 // linear RGB interleaved, len = W*H*3
	Alpha  []float64 // coverage per pixel, len = W*H
}

// NewFrameBuffer allocates a black, transparent buffer.
func NewFrameBuffer(w, h int) *FrameBuffer {
	n := w * h
	return &FrameBuffer{
		Width:  w,
		Height: h,
		Accum:  make([]float64, n*3),
		Alpha:  make([]float64, n),
	}
}

// Add blends one fragment additively.
func (fb *FrameBuffer) Add(x, y int, r, g, b, a float64) {
	i := y*fb.Width + x
	fb.Accum[i*3] += r
	fb.Accum[i*3+1] += g
	fb.Accum[i*3+2] += b
	fb.Alpha[i] = math.Min(1, fb.Alpha[i]+a)
}

// Resolve converts the accumulated light to an sRGB NRGBA image.
// With toneMap set, ACES compresses highlights where glows overlap;
// otherwise values are clamped.
func (fb *FrameBuffer) Resolve(toneMap bool, invGamma float64) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for i, a := range fb.Alpha {
		if a <= 0 {
			continue
		}
		for c := 0; c < 3; c++ {
			v := fb.Accum[i*3+c]
			if toneMap {
				v = ACESTonemap(v)
			}
			img.Pix[i*4+c] = clamp255(math.Pow(math.Max(v, 0), invGamma) * 255)
		}
		img.Pix[i*4+3] = clamp255(a * 255)
	}
	return img
}
