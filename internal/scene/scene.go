// Package scene turns a scene file into live line behaviours drawn by a
// software preview, and applies later edits of the same file to them.
package scene

import (
	"errors"
	"fmt"
	"image"
	"slices"

	"volumetric-lines/internal/config"
	"volumetric-lines/internal/line"
	"volumetric-lines/internal/linemesh"
	"volumetric-lines/internal/material"
	"volumetric-lines/internal/raster"
	"volumetric-lines/internal/texture"
)

// ErrTopologyChanged is returned by Apply when an edit adds, removes or
// re-kinds lines, changes a multi-line's point count, or changes what the
// materials are made from: the templates, the scene texture, or a line's
// template or keep_template flag. Such edits need a fresh Build.
var ErrTopologyChanged = errors.New("scene: topology changed")

// DefaultTemplate is used by lines when the scene declares no templates.
var DefaultTemplate = &material.Template{
	Name:   "default",
	Params: material.Params{Color: material.White, Width: 1, Scale: 1},
}

// Options controls how a scene is built.
type Options struct {
	Width    int
	Height   int
	Textures texture.Resolver // nil uses the generated glow texture
	ToneMap  bool
}

// Scene is a built scene.
type Scene struct {
	Name    string
	Preview *raster.Preview

	opts      Options
	specs     []config.TemplateSpec
	texture   string
	templates map[string]*material.Template
	first     *material.Template
	lines     []*Line
}

// Line is one scene line with the layers it draws into.
type Line struct {
	Kind   string
	Layers []*raster.Layer

	template string
	keep     bool
	segment *line.Segment
	strip   *line.Strip
	multi   *line.Multi
}

// Behaviour returns the behaviour driving the line.
func (l *Line) Behaviour() line.Behaviour {
	switch {
	case l.segment != nil:
		return l.segment
	case l.strip != nil:
		return l.strip
	default:
		return l.multi
	}
}

// Vertices returns the number of mesh vertices currently installed.
func (l *Line) Vertices() int {
	n := 0
	for _, ly := range l.Layers {
		if m := ly.Mesh(); m != nil {
			n += m.VertexCount()
		}
	}
	return n
}

// Build creates the preview, the materials and every line behaviour.
func Build(sc *config.Scene, opts Options) (*Scene, error) {
	if err := sc.Validate(); err != nil {
		return nil, fmt.Errorf("scene %s: %w", sc.Name, err)
	}
	s := &Scene{
		Name:      sc.Name,
		opts:      opts,
		specs:     slices.Clone(sc.Templates),
		texture:   sc.Texture,
		templates: make(map[string]*material.Template, len(sc.Templates)),
	}
	s.Preview = raster.NewPreview(opts.Width, opts.Height, sc.Camera.CameraValue(), s.resolve(sc.Texture))
	s.Preview.ToneMap = opts.ToneMap
	s.applyCamera(sc)

	for _, ts := range sc.Templates {
		t := ts.TemplateValue()
		s.templates[t.Name] = t
		if s.first == nil {
			s.first = t
		}
	}
	if s.first == nil {
		s.first = DefaultTemplate
	}

	for i, ls := range sc.Lines {
		l, err := s.buildLine(ls)
		if err != nil {
			return nil, fmt.Errorf("scene %s: line %d: %w", sc.Name, i, err)
		}
		s.lines = append(s.lines, l)
	}
	return s, nil
}

func (s *Scene) resolve(name string) *image.NRGBA {
	if s.opts.Textures != nil {
		if img := s.opts.Textures.Resolve(name); img != nil {
			return img
		}
	}
	return texture.DefaultGlow(64)
}

func (s *Scene) applyCamera(sc *config.Scene) {
	s.Preview.Camera = sc.Camera.CameraValue()
	material.Settings{DisableFOVScaling: sc.Settings.DisableFOVScaling}.Apply(s.Preview)
	if sc.Camera.PublishFOV {
		material.PublishFOV(s.Preview, s.Preview.Camera.FOV)
	} else {
		s.Preview.SetKeyword(material.KeywordFOVScalingOn, false)
	}
}

func (s *Scene) template(name string) *material.Template {
	if t, ok := s.templates[name]; ok {
		return t
	}
	return s.first
}

func (s *Scene) newLayer(ls config.LineSpec, tmpl *material.Template) (*material.Material, *raster.Layer) {
	ly := s.Preview.NewLayer()
	ly.SetTransform(ls.TransformValue().Matrix())
	if tmpl.Texture != "" {
		ly.SetTexture(s.resolve(tmpl.Texture))
	}
	return material.New(tmpl, ly, ls.ParamsOver(tmpl.Params), ls.KeepTemplate), ly
}

func (s *Scene) buildLine(ls config.LineSpec) (*Line, error) {
	tmpl := s.template(ls.Template)
	pts := ls.PointValues()
	l := &Line{Kind: ls.KindOrDefault(), template: ls.Template, keep: ls.KeepTemplate}

	switch l.Kind {
	case config.KindSegment:
		mat, ly := s.newLayer(ls, tmpl)
		l.Layers = []*raster.Layer{ly}
		l.segment = line.NewSegment(pts[0], pts[1], mat, ly)
	case config.KindStrip:
		mat, ly := s.newLayer(ls, tmpl)
		l.Layers = []*raster.Layer{ly}
		l.strip = line.NewStrip(pts, mat, ly)
	case config.KindMulti:
		ml, err := line.NewMulti(pts, func(int) (*material.Material, linemesh.Host) {
			mat, ly := s.newLayer(ls, tmpl)
			l.Layers = append(l.Layers, ly)
			return mat, ly
		})
		if err != nil {
			return nil, err
		}
		l.multi = ml
	default:
		return nil, fmt.Errorf("unknown kind %q", l.Kind)
	}

	b := l.Behaviour()
	b.Init()
	if l.strip != nil && l.strip.Mesh() == nil {
		return nil, &linemesh.ValidationError{Got: len(pts), Min: 3}
	}
	b.SetTransformScale(ls.TransformValue().Scale)
	return l, nil
}

// Lines returns the lines in scene order.
func (s *Scene) Lines() []*Line { return s.lines }

// Vertices returns the total number of installed mesh vertices.
func (s *Scene) Vertices() int {
	n := 0
	for _, l := range s.lines {
		n += l.Vertices()
	}
	return n
}

// Apply pushes an edited version of the scene into the live behaviours.
// Control points move through the in-place paths; material values go
// through the setters. Edits that change the set of lines, their kinds or
// their materials' templates return ErrTopologyChanged and leave the scene
// untouched.
func (s *Scene) Apply(sc *config.Scene) error {
	if err := sc.Validate(); err != nil {
		return fmt.Errorf("scene %s: %w", sc.Name, err)
	}
	if len(sc.Lines) != len(s.lines) || sc.Texture != s.texture || !slices.Equal(sc.Templates, s.specs) {
		return ErrTopologyChanged
	}
	for i, ls := range sc.Lines {
		l := s.lines[i]
		if ls.KindOrDefault() != l.Kind || ls.Template != l.template || ls.KeepTemplate != l.keep {
			return ErrTopologyChanged
		}
		if l.multi != nil && len(ls.Points) != len(l.multi.LineVertices()) {
			return ErrTopologyChanged
		}
	}

	s.Name = sc.Name
	s.applyCamera(sc)
	for i, ls := range sc.Lines {
		if err := s.applyLine(s.lines[i], ls); err != nil {
			return fmt.Errorf("scene %s: line %d: %w", sc.Name, i, err)
		}
	}
	return nil
}

func (s *Scene) applyLine(l *Line, ls config.LineSpec) error {
	pts := ls.PointValues()
	switch {
	case l.segment != nil:
		l.segment.SetStartAndEnd(pts[0], pts[1])
	case l.strip != nil:
		if err := l.strip.MovePoints(pts); err != nil {
			return err
		}
	case l.multi != nil:
		if err := l.multi.UpdateLineVertices(pts); err != nil {
			return err
		}
	}

	tr := ls.TransformValue()
	for _, ly := range l.Layers {
		ly.SetTransform(tr.Matrix())
	}
	b := l.Behaviour()
	b.SetTransformScale(tr.Scale)
	if !ls.KeepTemplate {
		p := ls.ParamsOver(s.template(ls.Template).Params)
		b.SetLineColor(p.Color)
		b.SetLineWidth(p.Width)
		b.SetLightSaberFactor(p.LightSaber)
	}
	return nil
}

// Render draws the scene at the size it was built with.
func (s *Scene) Render() *image.NRGBA {
	return s.Preview.Render()
}

// Destroy releases every line's material.
func (s *Scene) Destroy() {
	for _, l := range s.lines {
		l.Behaviour().Destroy()
	}
}
