package linemesh

import "volumetric-lines/internal/mathutil"

// Head, interior and tail attribute patterns for strips. The shader reads
// these verbatim; changing any entry corrupts rendering without an error.
var (
	stripHeadUV = [4]mathutil.Vec2{{1, 0}, {1, 1}, {0.5, 0}, {0.5, 1}}
	stripBodyUV = [2]mathutil.Vec2{{0.5, 0}, {0.5, 1}}
	stripTailUV = [4]mathutil.Vec2{{0.5, 0}, {0.5, 1}, {0, 0}, {0, 1}}

	stripHeadOffsets = [4]mathutil.Vec2{{1, -1}, {1, 1}, {0, -1}, {0, 1}}
	stripBodyOffsets = [2]mathutil.Vec2{{0, 1}, {0, -1}}
	stripTailOffsets = [4]mathutil.Vec2{{0, 1}, {0, -1}, {1, 1}, {1, -1}}
)

// StripVertexCount returns the number of vertices for an n-point strip.
func StripVertexCount(n int) int {
	return 2*n + 4
}

// StripIndexCount returns the number of triangle indices for an n-point strip.
func StripIndexCount(n int) int {
	return (2*n + 2) * 3
}

// BuildStrip builds the mesh for a polyline of at least three points.
//
// Every point is emitted twice (one vertex per side of the billboard) and the
// first and last points are emitted twice more as end caps, giving 2n+4
// vertices and 2n+2 triangles.
func BuildStrip(points []mathutil.Vec3) (*Mesh, error) {
	n := len(points)
	if n < 3 {
		return nil, &ValidationError{Got: n, Min: 3}
	}
	nv := StripVertexCount(n)

	m := &Mesh{
		Kind:      KindStrip,
		Positions: make([]mathutil.Vec3, nv),
		Prev:      make([]mathutil.Vec3, nv),
		Next:      make([]mathutil.Vec4, nv),
		UV:        make([]mathutil.Vec2, 0, nv),
		Offsets:   make([]mathutil.Vec2, 0, nv),
		Indices:   make([]int, 0, StripIndexCount(n)),
	}
	writeStripPositions(m.Positions, points)
	writeStripAdjacency(m.Prev, m.Next, points)

	// One joint per emitted pair after the leading cap, plus the trailing cap.
	for v := 4; v <= nv; v += 2 {
		m.Indices = appendJoint(m.Indices, v)
	}

	m.UV = append(m.UV, stripHeadUV[:]...)
	m.Offsets = append(m.Offsets, stripHeadOffsets[:]...)
	for i := 1; i < n-1; i++ {
		m.UV = append(m.UV, stripBodyUV[:]...)
		m.Offsets = append(m.Offsets, stripBodyOffsets[:]...)
	}
	m.UV = append(m.UV, stripTailUV[:]...)
	m.Offsets = append(m.Offsets, stripTailOffsets[:]...)

	return m, nil
}

// UpdateStripPositions rewrites positions and adjacency of m in place.
// Indices, UVs and offsets are untouched. If points does not match the
// point count m was built from, m is left unchanged.
func UpdateStripPositions(m *Mesh, points []mathutil.Vec3) error {
	if len(points) < 3 {
		return &ValidationError{Got: len(points), Min: 3}
	}
	if m == nil || m.Kind != KindStrip || m.PointCount() != len(points) {
		return ErrPointCountChanged
	}
	writeStripPositions(m.Positions, points)
	writeStripAdjacency(m.Prev, m.Next, points)
	return nil
}

func writeStripPositions(dst []mathutil.Vec3, points []mathutil.Vec3) {
	n := len(points)
	dst[0], dst[1] = points[0], points[0]
	for i, p := range points {
		dst[2+2*i], dst[3+2*i] = p, p
	}
	dst[2*n+2], dst[2*n+3] = points[n-1], points[n-1]
}

// writeStripAdjacency fills prev/next. Both ends collapse onto the second
// (resp. second-to-last) point so the cap tip has a zero-length miter.
func writeStripAdjacency(prev []mathutil.Vec3, next []mathutil.Vec4, points []mathutil.Vec3) {
	n := len(points)
	head, tail := points[1], points[n-2]
	for k := 0; k < 4; k++ {
		prev[k], next[k] = head, head.Vec4(0)
		prev[2*n+k], next[2*n+k] = tail, tail.Vec4(0)
	}
	for i := 1; i < n-1; i++ {
		k := 2 + 2*i
		p, nx := points[i-1], points[i+1].Vec4(0)
		prev[k], prev[k+1] = p, p
		next[k], next[k+1] = nx, nx
	}
}
