package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"volumetric-lines/internal/linemesh"
	"volumetric-lines/internal/material"
	"volumetric-lines/internal/mathutil"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigFormats(t *testing.T) {
	dir := t.TempDir()
	cases := []struct {
		name string
		body string
	}{
		{"render.json", `{"output_dir": "out", "width": 128, "workers": 3}`},
		{"render.yaml", "output_dir: out\nwidth: 128\nworkers: 3\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg, err := Load(writeFile(t, dir, c.name, c.body))
			if err != nil {
				t.Fatal(err)
			}
			if cfg.OutputDir != "out" || cfg.Width != 128 || cfg.Workers != 3 {
				t.Errorf("cfg = %+v", cfg)
			}
		})
	}

	if _, err := Load(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("missing file accepted")
	}
	if _, err := Load(writeFile(t, dir, "bad.json", "{")); err == nil {
		t.Error("malformed json accepted")
	}
}

func TestResolve(t *testing.T) {
	cfg := Config{OutputDir: "renders", TextureDir: "tex", Width: 100}
	cfg.Resolve(Flags{SceneDir: "/scenes", Workers: 2})

	if cfg.OutputDir != filepath.Join("/scenes", "renders") {
		t.Errorf("output dir = %q", cfg.OutputDir)
	}
	if cfg.TextureDir != filepath.Join("/scenes", "tex") {
		t.Errorf("texture dir = %q", cfg.TextureDir)
	}
	if cfg.Width != 100 || cfg.Height != 100 || cfg.Supersample != 2 || cfg.Workers != 2 {
		t.Errorf("cfg = %+v", cfg)
	}

	var def Config
	def.Resolve(Flags{Size: 64})
	if def.SceneDir != "." || def.Width != 64 || def.Height != 64 || def.Workers != runtime.NumCPU() {
		t.Errorf("defaults = %+v", def)
	}
}

const sceneYAML = `
camera:
  position: [0, 0, 10]
  fov: 45
  publish_fov: true
settings:
  disable_fov_scaling: true
templates:
  - name: laser
    color: "#ff0000"
    width: 2
    light_saber: 0.5
lines:
  - kind: segment
    points: [[0, 0, 0], [0, 0, 10]]
    template: laser
  - kind: strip
    points: [[0, 0, 0], [1, 0, 0], [2, 1, 0]]
    color: "#00ff00"
    width: 1.5
    scale: [2, 2, 2]
  - points: [[0, 0, 0], [1, 1, 1], [2, 2, 2], [3, 3, 3]]
`

func TestLoadScene(t *testing.T) {
	dir := t.TempDir()
	sc, err := LoadScene(writeFile(t, dir, "beams.yaml", sceneYAML))
	if err != nil {
		t.Fatal(err)
	}
	if sc.Name != "beams" {
		t.Errorf("name = %q", sc.Name)
	}
	if !sc.Settings.DisableFOVScaling || !sc.Camera.PublishFOV || sc.Camera.FOV != 45 {
		t.Errorf("camera/settings = %+v %+v", sc.Camera, sc.Settings)
	}
	if len(sc.Lines) != 3 {
		t.Fatalf("lines = %d", len(sc.Lines))
	}

	tmpl := sc.Templates[0].TemplateValue()
	if tmpl.Params.Color != (material.Color{R: 1, A: 1}) || tmpl.Params.Width != 2 {
		t.Errorf("template = %+v", tmpl)
	}

	strip := sc.Lines[1]
	if strip.KindOrDefault() != KindStrip || strip.ParamsOver(material.Params{}).Width != 1.5 {
		t.Errorf("strip = %+v", strip)
	}
	if got := strip.TransformValue().Scale; got != (mathutil.Vec3{2, 2, 2}) {
		t.Errorf("scale = %v", got)
	}
	if got := sc.Lines[0].TransformValue().Scale; got != (mathutil.Vec3{1, 1, 1}) {
		t.Errorf("default scale = %v", got)
	}
	if sc.Lines[2].KindOrDefault() != KindStrip {
		t.Errorf("inferred kind = %q", sc.Lines[2].KindOrDefault())
	}
	if pts := strip.PointValues(); len(pts) != 3 || pts[2] != (mathutil.Vec3{2, 1, 0}) {
		t.Errorf("points = %v", pts)
	}
	laser := sc.Lines[0].ParamsOver(tmpl.Params)
	if laser.Width != 2 || laser.LightSaber != 0.5 || laser.Color != tmpl.Params.Color {
		t.Errorf("template fallback = %+v", laser)
	}
	if cam := sc.Camera.CameraValue(); cam.Position != (mathutil.Vec3{0, 0, 10}) || cam.FOV != 45 {
		t.Errorf("camera = %+v", cam)
	}
}

func TestLoadSceneJSON(t *testing.T) {
	dir := t.TempDir()
	body := `{"name": "one", "lines": [{"kind": "multi", "points": [[0,0,0],[1,0,0]], "width": 1}]}`
	sc, err := LoadScene(writeFile(t, dir, "scene.json", body))
	if err != nil {
		t.Fatal(err)
	}
	if sc.Name != "one" || sc.Lines[0].Kind != KindMulti {
		t.Errorf("scene = %+v", sc)
	}
}

func TestSceneValidate(t *testing.T) {
	cases := []struct {
		name  string
		scene Scene
		short bool
	}{
		{"short strip", Scene{Lines: []LineSpec{{Kind: KindStrip, Points: make([][3]float64, 2)}}}, true},
		{"short multi", Scene{Lines: []LineSpec{{Kind: KindMulti, Points: make([][3]float64, 1)}}}, true},
		{"segment with three points", Scene{Lines: []LineSpec{{Kind: KindSegment, Points: make([][3]float64, 3)}}}, false},
		{"unknown kind", Scene{Lines: []LineSpec{{Kind: "spline", Points: make([][3]float64, 3)}}}, false},
		{"bad color", Scene{Lines: []LineSpec{{Kind: KindMulti, Points: make([][3]float64, 2), Color: "red"}}}, false},
		{"unknown template", Scene{Lines: []LineSpec{{Points: make([][3]float64, 2), Template: "nope"}}}, false},
		{"unnamed template", Scene{Templates: []TemplateSpec{{Color: "#fff"}}}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.scene.Validate()
			if err == nil {
				t.Fatal("expected an error")
			}
			if got := errors.Is(err, linemesh.ErrTooFewPoints); got != c.short {
				t.Errorf("errors.Is(ErrTooFewPoints) = %v, err = %v", got, err)
			}
		})
	}
}

func TestParamsOverExplicitZero(t *testing.T) {
	dir := t.TempDir()
	body := `
templates:
  - name: saber
    color: "#ffffff"
    width: 2
    light_saber: 0.8
lines:
  - points: [[0, 0, 0], [1, 0, 0]]
    light_saber: 0
  - points: [[0, 0, 0], [1, 0, 0]]
    width: 0
  - points: [[0, 0, 0], [1, 0, 0]]
`
	sc, err := LoadScene(writeFile(t, dir, "zero.yaml", body))
	if err != nil {
		t.Fatal(err)
	}
	base := sc.Templates[0].TemplateValue().Params
	cases := []struct {
		name       string
		line       LineSpec
		width, lsf float64
	}{
		{"light saber zero", sc.Lines[0], 2, 0},
		{"width zero", sc.Lines[1], 0, 0.8},
		{"unset", sc.Lines[2], 2, 0.8},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := c.line.ParamsOver(base)
			if p.Width != c.width || p.LightSaber != c.lsf {
				t.Errorf("params = %+v, want width %v light saber %v", p, c.width, c.lsf)
			}
		})
	}
}
