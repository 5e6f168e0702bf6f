package linemesh

import "volumetric-lines/internal/mathutil"

// LineScale returns the width compensation for a transform's world scale.
// Meant for uniform scales; non-uniform scales are averaged.
func LineScale(worldScale mathutil.Vec3) float64 {
	return worldScale.Mean()
}
