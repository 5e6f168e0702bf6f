package linemesh

import (
	"errors"
	"reflect"
	"testing"

	"volumetric-lines/internal/mathutil"
)

func polyline(n int) []mathutil.Vec3 {
	pts := make([]mathutil.Vec3, n)
	for i := range pts {
		pts[i] = mathutil.Vec3{float64(i), float64(i * i % 7), float64(-i)}
	}
	return pts
}

func TestBuildStripLengths(t *testing.T) {
	for _, n := range []int{3, 4, 5, 8, 33} {
		m, err := BuildStrip(polyline(n))
		if err != nil {
			t.Fatalf("n=%d: unexpected error: %v", n, err)
		}
		want := 2*n + 4
		for name, got := range map[string]int{
			"positions": len(m.Positions),
			"prev":      len(m.Prev),
			"next":      len(m.Next),
			"uv":        len(m.UV),
			"offsets":   len(m.Offsets),
		} {
			if got != want {
				t.Errorf("n=%d: len(%s) = %d, want %d", n, name, got, want)
			}
		}
		if got, want := len(m.Indices), (2*n+2)*3; got != want {
			t.Errorf("n=%d: len(indices) = %d, want %d", n, got, want)
		}
		if m.PointCount() != n {
			t.Errorf("n=%d: PointCount() = %d", n, m.PointCount())
		}
		if err := m.Validate(); err != nil {
			t.Errorf("n=%d: Validate: %v", n, err)
		}
	}
}

func TestBuildStripIndexRange(t *testing.T) {
	for n := 3; n < 20; n++ {
		m, err := BuildStrip(polyline(n))
		if err != nil {
			t.Fatal(err)
		}
		for i, idx := range m.Indices {
			if idx < 0 || idx > 2*n+3 {
				t.Fatalf("n=%d: index[%d] = %d out of [0,%d]", n, i, idx, 2*n+3)
			}
		}
	}
}

func TestBuildStripAdjacencyEnds(t *testing.T) {
	pts := polyline(6)
	m, err := BuildStrip(pts)
	if err != nil {
		t.Fatal(err)
	}
	last := len(m.Positions) - 1
	for _, k := range []int{0, 1} {
		if m.Prev[k] != pts[1] || m.Next[k].XYZ() != pts[1] {
			t.Errorf("vertex %d: prev=%v next=%v, want %v", k, m.Prev[k], m.Next[k], pts[1])
		}
	}
	for _, k := range []int{last - 1, last} {
		if m.Prev[k] != pts[4] || m.Next[k].XYZ() != pts[4] {
			t.Errorf("vertex %d: prev=%v next=%v, want %v", k, m.Prev[k], m.Next[k], pts[4])
		}
	}
	// interior point i sits at 2+2i and 3+2i
	for i := 1; i < len(pts)-1; i++ {
		for _, k := range []int{2 + 2*i, 3 + 2*i} {
			if m.Prev[k] != pts[i-1] {
				t.Errorf("vertex %d: prev=%v, want %v", k, m.Prev[k], pts[i-1])
			}
			if m.Next[k].XYZ() != pts[i+1] {
				t.Errorf("vertex %d: next=%v, want %v", k, m.Next[k], pts[i+1])
			}
			if m.Next[k][3] != 0 {
				t.Errorf("vertex %d: next.w = %v, want 0", k, m.Next[k][3])
			}
		}
	}
}

func TestBuildStripThreePoints(t *testing.T) {
	pts := []mathutil.Vec3{{0, 0, 0}, {1, 0, 0}, {2, 0, 0}}
	m, err := BuildStrip(pts)
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Positions) != 10 {
		t.Fatalf("len(positions) = %d, want 10", len(m.Positions))
	}
	if m.Positions[0] != pts[0] || m.Positions[1] != pts[0] {
		t.Errorf("leading positions = %v %v", m.Positions[0], m.Positions[1])
	}
	if m.Positions[8] != pts[2] || m.Positions[9] != pts[2] {
		t.Errorf("trailing positions = %v %v", m.Positions[8], m.Positions[9])
	}
	if len(m.Indices) != 24 {
		t.Fatalf("len(indices) = %d, want 24", len(m.Indices))
	}
	if got := m.Indices[:3]; !reflect.DeepEqual(got, []int{2, 1, 0}) {
		t.Errorf("first triangle = %v, want [2 1 0]", got)
	}
	wantIdx := []int{
		2, 1, 0, 3, 2, 1,
		4, 3, 2, 5, 4, 3,
		6, 5, 4, 7, 6, 5,
		8, 7, 6, 9, 8, 7,
	}
	if !reflect.DeepEqual(m.Indices, wantIdx) {
		t.Errorf("indices = %v, want %v", m.Indices, wantIdx)
	}
	wantUV := []mathutil.Vec2{
		{1, 0}, {1, 1}, {0.5, 0}, {0.5, 1},
		{0.5, 0}, {0.5, 1},
		{0.5, 0}, {0.5, 1}, {0, 0}, {0, 1},
	}
	if !reflect.DeepEqual(m.UV, wantUV) {
		t.Errorf("uv = %v, want %v", m.UV, wantUV)
	}
	wantOff := []mathutil.Vec2{
		{1, -1}, {1, 1}, {0, -1}, {0, 1},
		{0, 1}, {0, -1},
		{0, 1}, {0, -1}, {1, 1}, {1, -1},
	}
	if !reflect.DeepEqual(m.Offsets, wantOff) {
		t.Errorf("offsets = %v, want %v", m.Offsets, wantOff)
	}
}

func TestBuildStripAttributeDomain(t *testing.T) {
	uvs := map[mathutil.Vec2]bool{{0, 0}: true, {0, 1}: true, {0.5, 0}: true, {0.5, 1}: true, {1, 0}: true, {1, 1}: true}
	m, err := BuildStrip(polyline(9))
	if err != nil {
		t.Fatal(err)
	}
	for i, uv := range m.UV {
		if !uvs[uv] {
			t.Errorf("uv[%d] = %v outside the shader table", i, uv)
		}
	}
	for i, o := range m.Offsets {
		if (o[0] != -1 && o[0] != 0 && o[0] != 1) || (o[1] != -1 && o[1] != 1) {
			t.Errorf("offset[%d] = %v outside {-1,0,1}x{-1,1}", i, o)
		}
	}
}

func TestBuildStripDeterministic(t *testing.T) {
	pts := polyline(12)
	a, err := BuildStrip(pts)
	if err != nil {
		t.Fatal(err)
	}
	b, err := BuildStrip(pts)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("two builds of the same polyline differ")
	}
}

func TestBuildStripTooShort(t *testing.T) {
	cases := []struct {
		name string
		pts  []mathutil.Vec3
	}{
		{"nil", nil},
		{"one", polyline(1)},
		{"two", polyline(2)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			m, err := BuildStrip(c.pts)
			if m != nil {
				t.Errorf("expected nil mesh, got %d vertices", len(m.Positions))
			}
			if !errors.Is(err, ErrTooFewPoints) {
				t.Fatalf("err = %v, want ErrTooFewPoints", err)
			}
			var ve *ValidationError
			if !errors.As(err, &ve) || ve.Got != len(c.pts) || ve.Min != 3 {
				t.Errorf("ValidationError = %+v", ve)
			}
		})
	}
}

func TestUpdateStripPositions(t *testing.T) {
	m, err := BuildStrip(polyline(5))
	if err != nil {
		t.Fatal(err)
	}
	idx := append([]int(nil), m.Indices...)
	uv := append([]mathutil.Vec2(nil), m.UV...)
	off := append([]mathutil.Vec2(nil), m.Offsets...)

	moved := polyline(5)
	for i := range moved {
		moved[i] = moved[i].Add(mathutil.Vec3{10, 20, 30})
	}
	if err := UpdateStripPositions(m, moved); err != nil {
		t.Fatal(err)
	}
	want, _ := BuildStrip(moved)
	if !reflect.DeepEqual(m, want) {
		t.Error("in-place update differs from a fresh build")
	}
	if !reflect.DeepEqual(m.Indices, idx) || !reflect.DeepEqual(m.UV, uv) || !reflect.DeepEqual(m.Offsets, off) {
		t.Error("in-place update changed topology buffers")
	}
}

func TestUpdateStripPositionsCountChanged(t *testing.T) {
	m, err := BuildStrip(polyline(5))
	if err != nil {
		t.Fatal(err)
	}
	before, _ := BuildStrip(polyline(5))

	if err := UpdateStripPositions(m, polyline(6)); !errors.Is(err, ErrPointCountChanged) {
		t.Errorf("err = %v, want ErrPointCountChanged", err)
	}
	if err := UpdateStripPositions(m, polyline(2)); !errors.Is(err, ErrTooFewPoints) {
		t.Errorf("err = %v, want ErrTooFewPoints", err)
	}
	if !reflect.DeepEqual(m, before) {
		t.Error("rejected update modified the mesh")
	}
}
