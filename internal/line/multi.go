package line

import (
	"log/slog"

	"volumetric-lines/internal/linemesh"
	"volumetric-lines/internal/material"
	"volumetric-lines/internal/mathutil"
)

// SegmentFactory supplies the material and mesh host for the i-th segment of
// a multi-line.
type SegmentFactory func(i int) (*material.Material, linemesh.Host)

// Multi renders a polyline as independent segments whose endpoints touch.
type Multi struct {
	points   []mathutil.Vec3
	segments []*Segment
}

// NewMulti creates one segment per consecutive pair of points.
func NewMulti(points []mathutil.Vec3, factory SegmentFactory) (*Multi, error) {
	if len(points) < 2 {
		return nil, &linemesh.ValidationError{Got: len(points), Min: 2}
	}
	ml := &Multi{points: points, segments: make([]*Segment, len(points)-1)}
	for i := range ml.segments {
		mat, host := factory(i)
		ml.segments[i] = NewSegment(points[i], points[i+1], mat, host)
	}
	return ml, nil
}

// Init builds every segment.
func (ml *Multi) Init() {
	for _, s := range ml.segments {
		s.Init()
	}
}

// Segments returns the segments in polyline order.
func (ml *Multi) Segments() []*Segment { return ml.segments }

// LineVertices returns the current control points.
func (ml *Multi) LineVertices() []mathutil.Vec3 { return ml.points }

// LineColor returns the color of the first segment, or the zero color when
// it has no material.
func (ml *Multi) LineColor() material.Color {
	return ml.firstParams().Color
}

// LineWidth returns the width of the first segment, or 0 when it has no
// material.
func (ml *Multi) LineWidth() float64 {
	return ml.firstParams().Width
}

func (ml *Multi) firstParams() material.Params {
	if m := ml.segments[0].Material; m != nil {
		return m.Params()
	}
	return material.Params{}
}

func (ml *Multi) SetLineColor(c material.Color) {
	for _, s := range ml.segments {
		s.SetLineColor(c)
	}
}

func (ml *Multi) SetLineWidth(w float64) {
	for _, s := range ml.segments {
		s.SetLineWidth(w)
	}
}

func (ml *Multi) SetLightSaberFactor(f float64) {
	for _, s := range ml.segments {
		s.SetLightSaberFactor(f)
	}
}

func (ml *Multi) SetTransformScale(worldScale mathutil.Vec3) {
	for _, s := range ml.segments {
		s.SetTransformScale(worldScale)
	}
}

// UpdateLineVertices moves every segment in place. The number of points
// must match the one the multi-line was created with.
func (ml *Multi) UpdateLineVertices(points []mathutil.Vec3) error {
	if len(points) != len(ml.segments)+1 {
		err := linemesh.ErrPointCountChanged
		Logger().Error("multi-line edit rejected",
			slog.Int("points", len(points)), slog.Int("segments", len(ml.segments)), slog.Any("err", err))
		return err
	}
	ml.points = points
	for i, s := range ml.segments {
		s.SetStartAndEnd(points[i], points[i+1])
	}
	return nil
}

// Destroy releases every segment's material.
func (ml *Multi) Destroy() {
	for _, s := range ml.segments {
		s.Destroy()
	}
}
