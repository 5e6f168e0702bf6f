package material

import "math"

// ReferenceFOV is the vertical field of view, in degrees, at which FOV
// scaling leaves the line width unchanged.
const ReferenceFOV = 60.0

// GlobalHost receives process-wide shader state.
type GlobalHost interface {
	SetKeyword(name string, enabled bool)
	SetGlobalFloat(name string, v float64)
}

// Settings is the process-wide rendering configuration. It is read once at
// startup.
type Settings struct {
	DisableFOVScaling bool
}

// Keyword returns the shader keyword these settings enable, or "".
func (s Settings) Keyword() string {
	if s.DisableFOVScaling {
		return KeywordFOVScaleOff
	}
	return ""
}

// Apply toggles the FOV keyword on h.
func (s Settings) Apply(h GlobalHost) {
	if h == nil {
		return
	}
	h.SetKeyword(KeywordFOVScaleOff, s.DisableFOVScaling)
}

// FOVFactor is the width multiplier a consumer applies for a camera with the
// given vertical FOV in degrees. It cancels the projection's dependence on
// FOV so lines keep their apparent width under zoom.
func (s Settings) FOVFactor(cameraFOV float64) float64 {
	if s.DisableFOVScaling || cameraFOV <= 0 || cameraFOV >= 180 {
		return 1
	}
	return math.Tan(cameraFOV*math.Pi/360) / math.Tan(ReferenceFOV*math.Pi/360)
}

// PublishFOV announces a camera's field of view to the shader globals.
func PublishFOV(h GlobalHost, fov float64) {
	if h == nil {
		return
	}
	h.SetKeyword(KeywordFOVScalingOn, true)
	h.SetGlobalFloat(GlobalCameraFOV, fov)
}
