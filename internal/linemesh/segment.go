package linemesh

import "volumetric-lines/internal/mathutil"

// Fixed single-segment topology: vertices 0-3 sit on the start point and
// 4-7 on the end point. The triangle list follows the same joint winding as
// strips, giving a start cap, a body quad and an end cap.
var (
	segmentUV = [8]mathutil.Vec2{
		{1, 1}, {1, 0}, {0.5, 1}, {0.5, 0},
		{0.5, 0}, {0.5, 1}, {0, 0}, {0, 1},
	}
	segmentOffsets = [8]mathutil.Vec2{
		{1, 1}, {1, -1}, {0, 1}, {0, -1},
		{0, 1}, {0, -1}, {1, 1}, {1, -1},
	}
	segmentIndices = [18]int{
		2, 1, 0,
		3, 2, 1,
		4, 3, 2,
		5, 4, 3,
		6, 5, 4,
		7, 6, 5,
	}
)

// BuildSegment builds the 8-vertex, 18-index mesh for a single line segment.
func BuildSegment(start, end mathutil.Vec3) *Mesh {
	m := &Mesh{
		Kind:      KindSegment,
		Positions: make([]mathutil.Vec3, 8),
		Prev:      make([]mathutil.Vec3, 8),
		UV:        append([]mathutil.Vec2(nil), segmentUV[:]...),
		Offsets:   append([]mathutil.Vec2(nil), segmentOffsets[:]...),
		Indices:   append([]int(nil), segmentIndices[:]...),
	}
	writeSegment(m, start, end)
	return m
}

// Restyle moves the endpoints of a segment mesh in place. Only positions and
// the opposite-end references change; meshes of another kind are ignored.
func Restyle(m *Mesh, start, end mathutil.Vec3) {
	if m == nil || m.Kind != KindSegment || len(m.Positions) != 8 {
		return
	}
	writeSegment(m, start, end)
}

func writeSegment(m *Mesh, start, end mathutil.Vec3) {
	for k := 0; k < 4; k++ {
		m.Positions[k], m.Prev[k] = start, end
		m.Positions[4+k], m.Prev[4+k] = end, start
	}
}

// BuildSegments builds one independent segment mesh per consecutive pair of
// points, in polyline order.
func BuildSegments(points []mathutil.Vec3) ([]*Mesh, error) {
	if len(points) < 2 {
		return nil, &ValidationError{Got: len(points), Min: 2}
	}
	meshes := make([]*Mesh, len(points)-1)
	for i := range meshes {
		meshes[i] = BuildSegment(points[i], points[i+1])
	}
	return meshes, nil
}

// RestyleSegments moves every segment of a multi-line in place.
func RestyleSegments(meshes []*Mesh, points []mathutil.Vec3) error {
	if len(points) < 2 {
		return &ValidationError{Got: len(points), Min: 2}
	}
	if len(points) != len(meshes)+1 {
		return ErrPointCountChanged
	}
	for i, m := range meshes {
		Restyle(m, points[i], points[i+1])
	}
	return nil
}
