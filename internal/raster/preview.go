package raster

import (
	"image"

	"volumetric-lines/internal/linemesh"
	"volumetric-lines/internal/material"
	"volumetric-lines/internal/mathutil"
	"volumetric-lines/internal/viewmatrix"
)

// Preview is a software stand-in for the GPU: it collects line meshes and
// material properties through the host interfaces and renders them to an
// image following the volumetric line attribute contract.
type Preview struct {
	Width   int
	Height  int
	Camera  viewmatrix.Camera
	Texture *image.NRGBA // default glow texture
	ToneMap bool

	keywords map[string]bool
	globals  map[string]float64
	layers   []*Layer
}

// NewPreview creates a preview of the given size. tex is the glow texture
// shared by every layer that does not set its own.
func NewPreview(width, height int, cam viewmatrix.Camera, tex *image.NRGBA) *Preview {
	return &Preview{
		Width:    width,
		Height:   height,
		Camera:   cam.WithDefaults(),
		Texture:  tex,
		ToneMap:  true,
		keywords: make(map[string]bool),
		globals:  make(map[string]float64),
	}
}

// SetKeyword implements material.GlobalHost.
func (p *Preview) SetKeyword(name string, enabled bool) { p.keywords[name] = enabled }

// SetGlobalFloat implements material.GlobalHost.
func (p *Preview) SetGlobalFloat(name string, v float64) { p.globals[name] = v }

// Keyword reports whether a shader keyword is enabled.
func (p *Preview) Keyword(name string) bool { return p.keywords[name] }

// NewLayer adds an empty line layer. Layers draw in creation order.
func (p *Preview) NewLayer() *Layer {
	l := &Layer{model: mathutil.Mat4Identity()}
	p.layers = append(p.layers, l)
	return l
}

// Layers returns the layers in draw order.
func (p *Preview) Layers() []*Layer { return p.layers }

// fovFactor mirrors the shader: scaling applies only once a camera published
// its FOV and no one switched it off.
func (p *Preview) fovFactor() float64 {
	if !p.keywords[material.KeywordFOVScalingOn] {
		return 1
	}
	fov, ok := p.globals[material.GlobalCameraFOV]
	if !ok {
		fov = p.Camera.FOV
	}
	s := material.Settings{DisableFOVScaling: p.keywords[material.KeywordFOVScaleOff]}
	return s.FOVFactor(fov)
}

// Layer is the mesh host and material host of one line.
type Layer struct {
	mesh     *linemesh.Mesh
	min, max mathutil.Vec3
	params   material.Params
	model    mathutil.Mat4
	texture  *image.NRGBA
}

var (
	_ linemesh.Host = (*Layer)(nil)
	_ material.Host = (*Layer)(nil)
)

// SetMesh implements linemesh.Host and recomputes bounds.
func (l *Layer) SetMesh(m *linemesh.Mesh) {
	l.mesh = m
	l.min, l.max = m.Bounds()
}

// SetColor implements material.Host.
func (l *Layer) SetColor(name string, c material.Color) {
	if name == material.PropColor {
		l.params.Color = c
	}
}

// SetFloat implements material.Host.
func (l *Layer) SetFloat(name string, v float64) {
	switch name {
	case material.PropLineWidth:
		l.params.Width = v
	case material.PropLightSaber:
		l.params.LightSaber = v
	case material.PropLineScale:
		l.params.Scale = v
	}
}

// SetTransform places the layer's mesh in the world.
func (l *Layer) SetTransform(m mathutil.Mat4) { l.model = m }

// SetTexture overrides the preview's glow texture for this layer.
func (l *Layer) SetTexture(tex *image.NRGBA) { l.texture = tex }

// Mesh returns the installed mesh.
func (l *Layer) Mesh() *linemesh.Mesh { return l.mesh }

// Params returns the material properties received so far.
func (l *Layer) Params() material.Params { return l.params }

// Bounds returns the mesh bounds computed on the last install.
func (l *Layer) Bounds() (min, max mathutil.Vec3) { return l.min, l.max }
