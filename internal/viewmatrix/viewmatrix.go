// Package viewmatrix builds camera matrices and projects mesh vertices into
// screen space.
package viewmatrix

import (
	"math"

	"volumetric-lines/internal/mathutil"
)

// DefaultFOV is the vertical field of view used when a camera leaves it unset.
const DefaultFOV = 60.0

// Camera is a perspective pin-hole camera. FOV is vertical, in degrees.
type Camera struct {
	Position mathutil.Vec3
	Target   mathutil.Vec3
	Up       mathutil.Vec3
	FOV      float64
	Near     float64
	Far      float64
}

// WithDefaults fills zero fields with usable values.
func (c Camera) WithDefaults() Camera {
	if c.FOV <= 0 || c.FOV >= 180 {
		c.FOV = DefaultFOV
	}
	if c.Near <= 0 {
		c.Near = 0.1
	}
	if c.Far <= c.Near {
		c.Far = c.Near * 10000
	}
	if c.Up == (mathutil.Vec3{}) {
		c.Up = mathutil.Vec3{0, 1, 0}
	}
	if c.Position == c.Target {
		c.Position = c.Target.Add(mathutil.Vec3{0, 0, 10})
	}
	return c
}

// View returns the world-to-camera matrix.
func (c Camera) View() mathutil.Mat4 {
	return mathutil.LookAt(c.Position, c.Target, c.Up)
}

// Projection returns the camera-to-clip matrix for the given aspect ratio.
func (c Camera) Projection(aspect float64) mathutil.Mat4 {
	return mathutil.Perspective(mathutil.Deg2Rad(c.FOV), aspect, c.Near, c.Far)
}

// ViewProjection returns Projection · View.
func (c Camera) ViewProjection(aspect float64) mathutil.Mat4 {
	return mathutil.Mat4Mul(c.Projection(aspect), c.View())
}

// Focal returns the vertical focal length 1/tan(fov/2) of the projection.
func (c Camera) Focal() float64 {
	return 1 / math.Tan(mathutil.Deg2Rad(c.FOV)/2)
}

// ScreenPoint is a projected vertex: pixel coordinates, clip w and a
// visibility flag (false when the vertex is behind the near plane).
type ScreenPoint struct {
	X, Y    float64
	W       float64
	Visible bool
}

// Project maps a world point through mvp into a width×height viewport.
func Project(mvp mathutil.Mat4, p mathutil.Vec3, width, height int) ScreenPoint {
	clip := mvp.MulClip(p)
	if clip[3] < 1e-6 {
		return ScreenPoint{W: clip[3]}
	}
	inv := 1 / clip[3]
	return ScreenPoint{
		X:       (clip[0]*inv + 1) * 0.5 * float64(width),
		Y:       (1 - clip[1]*inv) * 0.5 * float64(height),
		W:       clip[3],
		Visible: true,
	}
}

// ProjectVertices projects every point, in order.
func ProjectVertices(points []mathutil.Vec3, mvp mathutil.Mat4, width, height int) []ScreenPoint {
	out := make([]ScreenPoint, len(points))
	for i, p := range points {
		out[i] = Project(mvp, p, width, height)
	}
	return out
}
