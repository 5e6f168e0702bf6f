package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"volumetric-lines/internal/config"
	"volumetric-lines/internal/linemesh"
	"volumetric-lines/internal/mathutil"
)

// meshDump is the JSON shape of one generated mesh.
type meshDump struct {
	Kind      string        `json:"kind"`
	Vertices  int           `json:"vertices"`
	Positions [][3]float64  `json:"positions"`
	Prev      [][3]float64  `json:"prev"`
	Next      [][4]float64  `json:"next,omitempty"`
	UV        [][2]float64  `json:"uv"`
	Offsets   [][2]float64  `json:"offsets"`
	Indices   []int         `json:"indices"`
	Bounds    [2][3]float64 `json:"bounds"`
}

func main() {
	kind := flag.String("kind", "", "Line kind: segment, strip or multi (default: by point count)")
	points := flag.String("points", "", `Control points, e.g. "0,0,0 1,0,0 2,1,0"`)
	sceneFile := flag.String("scene", "", "Read the points of a line from this scene file")
	lineIdx := flag.Int("line", 0, "Line index within -scene")
	flag.Parse()

	var pts []mathutil.Vec3
	switch {
	case *sceneFile != "":
		sc, err := config.LoadScene(*sceneFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if *lineIdx < 0 || *lineIdx >= len(sc.Lines) {
			fmt.Fprintf(os.Stderr, "Error: scene has %d lines\n", len(sc.Lines))
			os.Exit(1)
		}
		l := sc.Lines[*lineIdx]
		pts = l.PointValues()
		if *kind == "" {
			*kind = l.KindOrDefault()
		}
	case *points != "":
		var err error
		pts, err = parsePoints(*points)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintln(os.Stderr, "Usage: vldump -points \"x,y,z x,y,z ...\" | -scene file.yaml [-line N]")
		os.Exit(2)
	}
	if *kind == "" {
		*kind = config.KindStrip
		if len(pts) == 2 {
			*kind = config.KindSegment
		}
	}

	meshes, err := build(*kind, pts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	dumps := make([]meshDump, len(meshes))
	for i, m := range meshes {
		dumps[i] = dump(m)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(dumps); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func build(kind string, pts []mathutil.Vec3) ([]*linemesh.Mesh, error) {
	switch kind {
	case config.KindSegment:
		if len(pts) != 2 {
			return nil, fmt.Errorf("segment needs exactly 2 points, got %d", len(pts))
		}
		return []*linemesh.Mesh{linemesh.BuildSegment(pts[0], pts[1])}, nil
	case config.KindStrip:
		m, err := linemesh.BuildStrip(pts)
		if err != nil {
			return nil, err
		}
		return []*linemesh.Mesh{m}, nil
	case config.KindMulti:
		return linemesh.BuildSegments(pts)
	}
	return nil, fmt.Errorf("unknown kind %q", kind)
}

// parsePoints reads whitespace-separated "x,y,z" triples.
func parsePoints(s string) ([]mathutil.Vec3, error) {
	var pts []mathutil.Vec3
	for _, field := range strings.Fields(s) {
		parts := strings.Split(field, ",")
		if len(parts) != 3 {
			return nil, fmt.Errorf("bad point %q", field)
		}
		var p mathutil.Vec3
		for i, part := range parts {
			v, err := strconv.ParseFloat(part, 64)
			if err != nil {
				return nil, fmt.Errorf("bad point %q: %w", field, err)
			}
			p[i] = v
		}
		pts = append(pts, p)
	}
	return pts, nil
}

func dump(m *linemesh.Mesh) meshDump {
	d := meshDump{
		Kind:     m.Kind.String(),
		Vertices: m.VertexCount(),
		Indices:  m.Indices,
	}
	for _, p := range m.Positions {
		d.Positions = append(d.Positions, [3]float64(p))
	}
	for _, p := range m.Prev {
		d.Prev = append(d.Prev, [3]float64(p))
	}
	for _, n := range m.Next {
		d.Next = append(d.Next, [4]float64(n))
	}
	for _, uv := range m.UV {
		d.UV = append(d.UV, [2]float64(uv))
	}
	for _, o := range m.Offsets {
		d.Offsets = append(d.Offsets, [2]float64(o))
	}
	lo, hi := m.Bounds()
	d.Bounds = [2][3]float64{[3]float64(lo), [3]float64(hi)}
	return d
}
