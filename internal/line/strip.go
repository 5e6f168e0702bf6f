package line

import (
	"errors"
	"log/slog"

	"volumetric-lines/internal/linemesh"
	"volumetric-lines/internal/material"
	"volumetric-lines/internal/mathutil"
)

// Strip renders a polyline of at least three points as one mesh.
type Strip struct {
	Material *material.Material

	host   linemesh.Host
	mesh   *linemesh.Mesh
	points []mathutil.Vec3
}

// NewStrip returns a strip that installs its mesh on host.
func NewStrip(points []mathutil.Vec3, mat *material.Material, host linemesh.Host) *Strip {
	return &Strip{Material: mat, host: host, points: points}
}

// Init builds the mesh from the initial points and instantiates the material.
func (s *Strip) Init() {
	_ = s.UpdateLineVertices(s.points)
	if s.Material != nil {
		s.Material.Instantiate()
	}
}

// Mesh returns the installed mesh, or nil if none was ever built.
func (s *Strip) Mesh() *linemesh.Mesh { return s.mesh }

// LineVertices returns the current control points.
func (s *Strip) LineVertices() []mathutil.Vec3 { return s.points }

// UpdateLineVertices rebuilds the mesh from scratch. This allocates every
// buffer; use MovePoints when only positions change.
//
// A nil slice is ignored. Fewer than three points is logged and returned;
// the previous points and mesh stay in place.
func (s *Strip) UpdateLineVertices(points []mathutil.Vec3) error {
	if points == nil {
		return nil
	}
	m, err := linemesh.BuildStrip(points)
	if err != nil {
		Logger().Error("line strip needs at least 3 vertices", slog.Int("points", len(points)), slog.Any("err", err))
		return err
	}
	s.points = points
	s.mesh = m
	linemesh.Install(s.host, m)
	return nil
}

// MovePoints updates positions without re-triangulating when the point
// count is unchanged, and falls back to a full rebuild otherwise.
func (s *Strip) MovePoints(points []mathutil.Vec3) error {
	if s.mesh == nil {
		return s.UpdateLineVertices(points)
	}
	err := linemesh.UpdateStripPositions(s.mesh, points)
	switch {
	case err == nil:
		s.points = points
		linemesh.Install(s.host, s.mesh)
		return nil
	case errors.Is(err, linemesh.ErrPointCountChanged):
		return s.UpdateLineVertices(points)
	default:
		Logger().Error("line strip edit rejected", slog.Int("points", len(points)), slog.Any("err", err))
		return err
	}
}

// Refresh rebuilds the mesh from the stored points and re-pushes every
// material property.
func (s *Strip) Refresh() {
	_ = s.UpdateLineVertices(s.points)
	if s.Material != nil {
		s.Material.Refresh()
	}
}

func (s *Strip) SetLineColor(c material.Color) {
	if s.Material != nil {
		s.Material.SetColor(c)
	}
}

func (s *Strip) SetLineWidth(w float64) {
	if s.Material != nil {
		s.Material.SetWidth(w)
	}
}

func (s *Strip) SetLightSaberFactor(f float64) {
	if s.Material != nil {
		s.Material.SetLightSaber(f)
	}
}

// SetTransformScale forwards the line scale derived from a world scale.
func (s *Strip) SetTransformScale(worldScale mathutil.Vec3) {
	if s.Material != nil {
		s.Material.SetLineScale(linemesh.LineScale(worldScale))
	}
}

// Destroy releases the private material copy.
func (s *Strip) Destroy() {
	if s.Material != nil {
		s.Material.Destroy()
	}
}
