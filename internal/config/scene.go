package config

import (
	"fmt"
	"path/filepath"

	"volumetric-lines/internal/linemesh"
	"volumetric-lines/internal/material"
	"volumetric-lines/internal/mathutil"
	"volumetric-lines/internal/viewmatrix"
)

// Line kinds accepted in scene files.
const (
	KindSegment = "segment"
	KindStrip   = "strip"
	KindMulti   = "multi"
)

// Scene describes one preview: a camera, global settings, material
// templates and the lines to draw.
type Scene struct {
	Name      string         `json:"name" yaml:"name"`
	Camera    CameraSpec     `json:"camera" yaml:"camera"`
	Settings  SettingsSpec   `json:"settings" yaml:"settings"`
	Texture   string         `json:"texture" yaml:"texture"`
	Templates []TemplateSpec `json:"templates" yaml:"templates"`
	Lines     []LineSpec     `json:"lines" yaml:"lines"`
}

type CameraSpec struct {
	Position [3]float64 `json:"position" yaml:"position"`
	Target   [3]float64 `json:"target" yaml:"target"`
	FOV      float64    `json:"fov" yaml:"fov"`
	// PublishFOV enables FOV scaling by announcing the camera FOV to the
	// shader globals.
	PublishFOV bool `json:"publish_fov" yaml:"publish_fov"`
}

type SettingsSpec struct {
	DisableFOVScaling bool `json:"disable_fov_scaling" yaml:"disable_fov_scaling"`
}

type TemplateSpec struct {
	Name       string  `json:"name" yaml:"name"`
	Texture    string  `json:"texture" yaml:"texture"`
	Color      string  `json:"color" yaml:"color"`
	Width      float64 `json:"width" yaml:"width"`
	LightSaber float64 `json:"light_saber" yaml:"light_saber"`
}

// LineSpec is one line. Template defaults to the first template; when
// KeepTemplate is set the template's color, width and light saber factor
// win over the values given here. Unset color, width and light saber take
// the template's values; an explicit zero is kept.
type LineSpec struct {
	Name         string       `json:"name" yaml:"name"`
	Kind         string       `json:"kind" yaml:"kind"`
	Points       [][3]float64 `json:"points" yaml:"points"`
	Color        string       `json:"color" yaml:"color"`
	Width        *float64     `json:"width" yaml:"width"`
	LightSaber   *float64     `json:"light_saber" yaml:"light_saber"`
	Template     string       `json:"template" yaml:"template"`
	KeepTemplate bool         `json:"keep_template" yaml:"keep_template"`
	Position     [3]float64   `json:"position" yaml:"position"`
	Rotation     [3]float64   `json:"rotation" yaml:"rotation"`
	Scale        *[3]float64  `json:"scale" yaml:"scale"`
}

// LoadScene reads a JSON or YAML scene file and validates it. An unnamed
// scene takes the file's base name.
func LoadScene(path string) (*Scene, error) {
	var sc Scene
	if err := decodeFile(path, &sc); err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	if sc.Name == "" {
		base := filepath.Base(path)
		sc.Name = base[:len(base)-len(filepath.Ext(base))]
	}
	if err := sc.Validate(); err != nil {
		return nil, fmt.Errorf("scene %s: %w", path, err)
	}
	return &sc, nil
}

// Validate checks kinds, point counts, colors and template references.
func (sc *Scene) Validate() error {
	names := make(map[string]bool, len(sc.Templates))
	for i, t := range sc.Templates {
		if t.Name == "" {
			return fmt.Errorf("template %d: missing name", i)
		}
		if t.Color != "" {
			if _, err := material.ParseHex(t.Color); err != nil {
				return fmt.Errorf("template %s: %w", t.Name, err)
			}
		}
		names[t.Name] = true
	}
	for i, l := range sc.Lines {
		need := 0
		switch l.Kind {
		case KindSegment:
			if len(l.Points) != 2 {
				return fmt.Errorf("line %d: segment needs exactly 2 points, got %d", i, len(l.Points))
			}
		case KindStrip:
			need = 3
		case KindMulti, "":
			need = 2
		default:
			return fmt.Errorf("line %d: unknown kind %q", i, l.Kind)
		}
		if len(l.Points) < need {
			return fmt.Errorf("line %d: %w", i, &linemesh.ValidationError{Got: len(l.Points), Min: need})
		}
		if l.Color != "" {
			if _, err := material.ParseHex(l.Color); err != nil {
				return fmt.Errorf("line %d: %w", i, err)
			}
		}
		if l.Template != "" && !names[l.Template] {
			return fmt.Errorf("line %d: unknown template %q", i, l.Template)
		}
	}
	return nil
}

// CameraValue returns the camera with defaults applied.
func (c CameraSpec) CameraValue() viewmatrix.Camera {
	return viewmatrix.Camera{
		Position: mathutil.Vec3(c.Position),
		Target:   mathutil.Vec3(c.Target),
		FOV:      c.FOV,
	}.WithDefaults()
}

// TemplateValue returns the material template.
func (t TemplateSpec) TemplateValue() *material.Template {
	c := material.White
	if t.Color != "" {
		c, _ = material.ParseHex(t.Color)
	}
	return &material.Template{
		Name:    t.Name,
		Texture: t.Texture,
		Params:  material.Params{Color: c, Width: t.Width, LightSaber: t.LightSaber}.Clamped(),
	}
}

// KindOrDefault returns the line kind, inferring segment or strip when unset.
func (l LineSpec) KindOrDefault() string {
	if l.Kind != "" {
		return l.Kind
	}
	if len(l.Points) == 2 {
		return KindSegment
	}
	return KindStrip
}

// PointValues converts the control points.
func (l LineSpec) PointValues() []mathutil.Vec3 {
	pts := make([]mathutil.Vec3, len(l.Points))
	for i, p := range l.Points {
		pts[i] = mathutil.Vec3(p)
	}
	return pts
}

// ParamsOver returns the line's material values, taking base for every
// value the line leaves unset.
func (l LineSpec) ParamsOver(base material.Params) material.Params {
	p := base
	p.Scale = 1
	if l.Color != "" {
		p.Color, _ = material.ParseHex(l.Color)
	}
	if l.Width != nil {
		p.Width = *l.Width
	}
	if l.LightSaber != nil {
		p.LightSaber = *l.LightSaber
	}
	return p.Clamped()
}

// TransformValue returns the line's placement. A missing scale is unit scale.
func (l LineSpec) TransformValue() mathutil.Transform {
	t := mathutil.IdentityTransform()
	t.Position = mathutil.Vec3(l.Position)
	t.Rotation = mathutil.Vec3(l.Rotation)
	if l.Scale != nil {
		t.Scale = mathutil.Vec3(*l.Scale)
	}
	return t
}
