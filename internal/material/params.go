// Package material forwards line parameters to the shader that draws
// volumetric line meshes.
package material

// Shader property names.
const (
	PropColor           = "_Color"
	PropLineWidth       = "_LineWidth"
	PropLightSaber      = "_LightSaberFactor"
	PropLineScale       = "_LineScale"
	GlobalCameraFOV     = "_CAMERA_FOV"
	KeywordFOVScalingOn = "FOV_SCALING_ON"
	KeywordFOVScaleOff  = "FOV_SCALING_OFF"
)

// Params are the per-line shader inputs. They are orthogonal to geometry.
type Params struct {
	Color      Color
	Width      float64
	LightSaber float64 // [0,1]
	Scale      float64
}

// Clamped returns p with the width non-negative and the light saber factor
// inside [0,1].
func (p Params) Clamped() Params {
	if p.Width < 0 {
		p.Width = 0
	}
	switch {
	case p.LightSaber < 0:
		p.LightSaber = 0
	case p.LightSaber > 1:
		p.LightSaber = 1
	}
	return p
}

// Host receives named shader properties for one line.
type Host interface {
	SetColor(name string, c Color)
	SetFloat(name string, v float64)
}

// Apply pushes every parameter to h.
func Apply(h Host, p Params) {
	if h == nil {
		return
	}
	h.SetColor(PropColor, p.Color)
	h.SetFloat(PropLineWidth, p.Width)
	h.SetFloat(PropLightSaber, p.LightSaber)
	h.SetFloat(PropLineScale, p.Scale)
}
