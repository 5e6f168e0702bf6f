// Package line holds the stateful line behaviours: a single segment, a
// strip and a multi-line made of independent segments. Each behaviour owns
// its control points, its derived mesh and its material, and keeps them in
// sync with a mesh host and a material host.
//
// Behaviours are not safe for concurrent use.
package line

import (
	"volumetric-lines/internal/linemesh"
	"volumetric-lines/internal/material"
	"volumetric-lines/internal/mathutil"
)

// Segment renders one volumetric line between two points.
type Segment struct {
	Material *material.Material

	host  linemesh.Host
	mesh  *linemesh.Mesh
	start mathutil.Vec3
	end   mathutil.Vec3
}

// NewSegment returns a segment that installs its mesh on host.
// Nothing is built until Init.
func NewSegment(start, end mathutil.Vec3, mat *material.Material, host linemesh.Host) *Segment {
	return &Segment{Material: mat, host: host, start: start, end: end}
}

// Init builds the mesh once and instantiates the material.
func (s *Segment) Init() {
	s.mesh = linemesh.BuildSegment(s.start, s.end)
	linemesh.Install(s.host, s.mesh)
	if s.Material != nil {
		s.Material.Instantiate()
	}
}

// Mesh returns the installed mesh, or nil before Init.
func (s *Segment) Mesh() *linemesh.Mesh { return s.mesh }

func (s *Segment) StartPos() mathutil.Vec3 { return s.start }
func (s *Segment) EndPos() mathutil.Vec3   { return s.end }

// SetStart moves the start point.
func (s *Segment) SetStart(p mathutil.Vec3) { s.SetStartAndEnd(p, s.end) }

// SetEnd moves the end point.
func (s *Segment) SetEnd(p mathutil.Vec3) { s.SetStartAndEnd(s.start, p) }

// SetStartAndEnd moves both endpoints. The existing mesh is updated in place
// and handed to the host again so it can recompute bounds.
func (s *Segment) SetStartAndEnd(start, end mathutil.Vec3) {
	s.start, s.end = start, end
	if s.mesh == nil {
		return
	}
	linemesh.Restyle(s.mesh, start, end)
	linemesh.Install(s.host, s.mesh)
}

// Refresh re-pushes the geometry and every material property.
func (s *Segment) Refresh() {
	s.SetStartAndEnd(s.start, s.end)
	if s.Material != nil {
		s.Material.Refresh()
	}
}

func (s *Segment) SetLineColor(c material.Color) {
	if s.Material != nil {
		s.Material.SetColor(c)
	}
}

func (s *Segment) SetLineWidth(w float64) {
	if s.Material != nil {
		s.Material.SetWidth(w)
	}
}

func (s *Segment) SetLightSaberFactor(f float64) {
	if s.Material != nil {
		s.Material.SetLightSaber(f)
	}
}

// SetTransformScale forwards the line scale derived from a world scale.
func (s *Segment) SetTransformScale(worldScale mathutil.Vec3) {
	if s.Material != nil {
		s.Material.SetLineScale(linemesh.LineScale(worldScale))
	}
}

// Destroy releases the private material copy.
func (s *Segment) Destroy() {
	if s.Material != nil {
		s.Material.Destroy()
	}
}
