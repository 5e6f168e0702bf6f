package raster

import (
	"image"

	"volumetric-lines/internal/mathutil"
)

// Render draws every layer into a new image.
func (p *Preview) Render() *image.NRGBA {
	if p.Width <= 0 || p.Height <= 0 {
		return image.NewNRGBA(image.Rect(0, 0, 0, 0))
	}
	fb := NewFrameBuffer(p.Width, p.Height)

	vp := p.Camera.ViewProjection(float64(p.Width) / float64(p.Height))
	focal := p.Camera.Focal()
	fov := p.fovFactor()

	for _, l := range p.layers {
		p.drawLayer(fb, l, vp, focal, fov)
	}
	return fb.Resolve(p.ToneMap, 1/2.2)
}

func (p *Preview) drawLayer(fb *FrameBuffer, l *Layer, vp mathutil.Mat4, focal, fov float64) {
	m := l.mesh
	if m == nil || m.Validate() != nil {
		return
	}
	tex := l.texture
	if tex == nil {
		tex = p.Texture
	}
	if tex == nil || tex.Rect.Empty() {
		return
	}
	prm := l.params
	if prm.Width <= 0 {
		return
	}

	verts, vis := expandMesh(m, expandParams{
		MVP:       mathutil.Mat4Mul(vp, l.model),
		Width:     p.Width,
		Height:    p.Height,
		Focal:     focal,
		HalfWidth: prm.Width * prm.Scale * fov * 0.5,
	})

	c := prm.Color
	sh := NewShade(c.R, c.G, c.B, c.A, prm.LightSaber)
	for i := 0; i+2 < len(m.Indices); i += 3 {
		a, b, cIdx := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		if !vis[a] || !vis[b] || !vis[cIdx] {
			continue
		}
		RasterizeTriangleAdditive(fb, verts[a], verts[b], verts[cIdx], tex, &sh)
	}
}
