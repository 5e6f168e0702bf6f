package raster

import (
	"volumetric-lines/internal/linemesh"
	"volumetric-lines/internal/mathutil"
	"volumetric-lines/internal/viewmatrix"
)

// expandParams carries the per-line constants of the billboard expansion.
type expandParams struct {
	MVP    mathutil.Mat4
	Width  int
	Height int
	Focal  float64
	// HalfWidth is the world-space half width: width × line scale × FOV
	// factor / 2.
	HalfWidth float64
}

// expandMesh moves every vertex of m off the line axis in screen space.
//
// The axis at a vertex runs from prev to next. Where the two collapse (the
// strip ends) it runs from prev to the vertex itself, pointing outwards; a
// segment uses the opposite endpoint the same way. Offset x extends along
// the axis, offset y across it. The second result reports per-vertex
// visibility.
func expandMesh(m *linemesh.Mesh, p expandParams) ([]Vertex, []bool) {
	n := len(m.Positions)
	out := make([]Vertex, n)
	vis := make([]bool, n)
	for k := 0; k < n; k++ {
		pos := viewmatrix.Project(p.MVP, m.Positions[k], p.Width, p.Height)
		if !pos.Visible {
			continue
		}
		vis[k] = true

		var from, to viewmatrix.ScreenPoint
		switch {
		case m.Kind == linemesh.KindSegment:
			from, to = viewmatrix.Project(p.MVP, m.Prev[k], p.Width, p.Height), pos
		case m.Prev[k] == m.Next[k].XYZ():
			from, to = viewmatrix.Project(p.MVP, m.Prev[k], p.Width, p.Height), pos
		default:
			from = viewmatrix.Project(p.MVP, m.Prev[k], p.Width, p.Height)
			to = viewmatrix.Project(p.MVP, m.Next[k].XYZ(), p.Width, p.Height)
		}

		axis := mathutil.Vec2{to.X, to.Y}.Sub(mathutil.Vec2{from.X, from.Y}).Normalize()
		// Pixels per world unit at this depth.
		px := p.HalfWidth * p.Focal / pos.W * float64(p.Height) * 0.5
		off := m.Offsets[k]
		d := axis.Scale(off[0]).Add(axis.Perp().Scale(off[1])).Scale(px)

		uv := m.UV[k]
		out[k] = Vertex{X: pos.X + d[0], Y: pos.Y + d[1], U: uv[0], V: uv[1]}
	}
	return out, vis
}
