// Package linemesh generates the procedural meshes consumed by the volumetric
// line shader.
//
// Vertices are never welded across segments: every joint carries its own
// per-side attributes. The normal slot holds the previous (or, for a single
// segment, the opposite) point and the tangent slot holds the next point, so
// the shader can orient each quad towards the camera.
package linemesh

import (
	"fmt"
	"math"

	"volumetric-lines/internal/mathutil"
)

// Kind tells a host how to read the adjacency slots of a Mesh.
type Kind int

const (
	// KindSegment meshes store the opposite endpoint in Prev and leave Next empty.
	KindSegment Kind = iota
	// KindStrip meshes store the previous and next polyline points.
	KindStrip
)

func (k Kind) String() string {
	switch k {
	case KindSegment:
		return "segment"
	case KindStrip:
		return "strip"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Mesh holds the generated buffers. All per-vertex slices share one length.
type Mesh struct {
	Kind      Kind
	Positions []mathutil.Vec3
	Prev      []mathutil.Vec3 // normal slot
	Next      []mathutil.Vec4 // tangent slot, w unused; empty for segments
	UV        []mathutil.Vec2 // uv0
	Offsets   []mathutil.Vec2 // uv1, side offset
	Indices   []int           // triangle list
}

// VertexCount returns the number of emitted vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Positions)
}

// PointCount returns the number of control points the mesh was built from.
func (m *Mesh) PointCount() int {
	if m.Kind == KindSegment {
		return 2
	}
	return (len(m.Positions) - 4) / 2
}

// Validate checks that the buffers are length-consistent and every index
// addresses an existing vertex.
func (m *Mesh) Validate() error {
	n := len(m.Positions)
	if len(m.Prev) != n || len(m.UV) != n || len(m.Offsets) != n {
		return fmt.Errorf("linemesh: attribute length mismatch: pos=%d prev=%d uv=%d offset=%d",
			n, len(m.Prev), len(m.UV), len(m.Offsets))
	}
	if m.Kind == KindStrip && len(m.Next) != n {
		return fmt.Errorf("linemesh: next length %d, want %d", len(m.Next), n)
	}
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("linemesh: index count %d is not a multiple of 3", len(m.Indices))
	}
	for i, idx := range m.Indices {
		if idx < 0 || idx >= n {
			return fmt.Errorf("linemesh: index %d at %d out of range [0,%d)", idx, i, n)
		}
	}
	return nil
}

// Bounds returns the axis-aligned bounding box of the positions.
// An empty mesh yields two zero vectors.
func (m *Mesh) Bounds() (min, max mathutil.Vec3) {
	if len(m.Positions) == 0 {
		return
	}
	min = mathutil.Vec3{math.Inf(1), math.Inf(1), math.Inf(1)}
	max = mathutil.Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for _, p := range m.Positions {
		for k := 0; k < 3; k++ {
			if p[k] < min[k] {
				min[k] = p[k]
			}
			if p[k] > max[k] {
				max[k] = p[k]
			}
		}
	}
	return min, max
}

// Host receives finished meshes for upload. SetMesh is handed the complete
// buffer set in one call; the host recomputes bounds itself.
type Host interface {
	SetMesh(m *Mesh)
}

// Install hands m to h. A nil host or mesh is a no-op and reports false.
func Install(h Host, m *Mesh) bool {
	if h == nil || m == nil {
		return false
	}
	h.SetMesh(m)
	return true
}

// appendJoint appends the two triangles closing the quad formed by the last
// four emitted vertices. v is the running vertex count.
func appendJoint(idx []int, v int) []int {
	return append(idx,
		v-2, v-3, v-4,
		v-1, v-2, v-3,
	)
}
