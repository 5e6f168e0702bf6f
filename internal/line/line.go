package line

import (
	"volumetric-lines/internal/material"
	"volumetric-lines/internal/mathutil"
)

// Behaviour is the common surface of Segment, Strip and Multi.
type Behaviour interface {
	Init()
	SetLineColor(c material.Color)
	SetLineWidth(w float64)
	SetLightSaberFactor(f float64)
	SetTransformScale(worldScale mathutil.Vec3)
	Destroy()
}

var (
	_ Behaviour = (*Segment)(nil)
	_ Behaviour = (*Strip)(nil)
	_ Behaviour = (*Multi)(nil)
)
