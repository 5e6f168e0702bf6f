package raster

import (
	"image"
	"math"
)

// Vertex is an expanded, screen-space billboard corner.
type Vertex struct {
	X, Y float64
	U, V float64
}

// RasterizeTriangleAdditive renders a triangle with additive blending.
// No depth test: glow accumulates regardless of draw order. UVs are
// interpolated affinely in screen space.
//
// This is the hot path; the pixel loop does not allocate.
func RasterizeTriangleAdditive(fb *FrameBuffer, v0, v1, v2 Vertex, tex *image.NRGBA, sh *Shade) {
	x0, y0 := v0.X, v0.Y
	x1, y1 := v1.X, v1.Y
	x2, y2 := v2.X, v2.Y

	// Bounding box
	minX := int(math.Floor(math.Min(math.Min(x0, x1), x2)))
	maxX := int(math.Ceil(math.Max(math.Max(x0, x1), x2)))
	minY := int(math.Floor(math.Min(math.Min(y0, y1), y2)))
	maxY := int(math.Ceil(math.Max(math.Max(y0, y1), y2)))

	if minX < 0 {
		minX = 0
	}
	if maxX >= fb.Width {
		maxX = fb.Width - 1
	}
	if minY < 0 {
		minY = 0
	}
	if maxY >= fb.Height {
		maxY = fb.Height - 1
	}
	if minX > maxX || minY > maxY {
		return
	}

	// Barycentric setup; degenerate (collapsed cap) triangles are skipped.
	det := (y1-y2)*(x0-x2) + (x2-x1)*(y0-y2)
	if det > -1e-8 && det < 1e-8 {
		return
	}
	invDet := 1.0 / det

	dy12 := y1 - y2
	dx21 := x2 - x1
	dy20 := y2 - y0
	dx02 := x0 - x2

	for sy := minY; sy <= maxY; sy++ {
		dsy := float64(sy) + 0.5 - y2
		for sx := minX; sx <= maxX; sx++ {
			dsx := float64(sx) + 0.5 - x2
			w0 := (dy12*dsx + dx21*dsy) * invDet
			w1 := (dy20*dsx + dx02*dsy) * invDet
			w2 := 1.0 - w0 - w1

			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}

			u := w0*v0.U + w1*v1.U + w2*v2.U
			v := w0*v0.V + w1*v1.V + w2*v2.V
			tr, tg, tb, ta := SampleTexture(tex, u, v)

			r, g, b, a := sh.Fragment(tr, tg, tb, ta)
			if a <= 0 {
				continue
			}
			fb.Add(sx, sy, r, g, b, a)
		}
	}
}
