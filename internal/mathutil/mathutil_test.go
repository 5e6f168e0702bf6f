package mathutil

import (
	"math"
	"testing"
)

func nearVec(a, b Vec3) bool {
	return a.Sub(b).Len() < 1e-9
}

func TestTransformMatrix(t *testing.T) {
	cases := []struct {
		name string
		tr   Transform
		in   Vec3
		want Vec3
	}{
		{"identity", IdentityTransform(), Vec3{1, 2, 3}, Vec3{1, 2, 3}},
		{"translate", Transform{Position: Vec3{1, 0, -1}, Scale: Vec3{1, 1, 1}}, Vec3{1, 1, 1}, Vec3{2, 1, 0}},
		{"scale", Transform{Scale: Vec3{2, 3, 4}}, Vec3{1, 1, 1}, Vec3{2, 3, 4}},
		{"rotate z", Transform{Rotation: Vec3{0, 0, 90}, Scale: Vec3{1, 1, 1}}, Vec3{1, 0, 0}, Vec3{0, 1, 0}},
		{"rotate x", Transform{Rotation: Vec3{90, 0, 0}, Scale: Vec3{1, 1, 1}}, Vec3{0, 1, 0}, Vec3{0, 0, 1}},
		{"scale before rotate", Transform{Rotation: Vec3{0, 0, 90}, Scale: Vec3{2, 1, 1}}, Vec3{1, 0, 0}, Vec3{0, 2, 0}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.tr.Matrix().MulPoint(c.in); !nearVec(got, c.want) {
				t.Errorf("got %v, want %v", got, c.want)
			}
		})
	}
}

func TestEulerOrder(t *testing.T) {
	// Rx first, then Ry: +y -> +z -> +x.
	got := EulerZYX(Vec3{90, 90, 0}).MulVec3(Vec3{0, 1, 0})
	if !nearVec(got, Vec3{1, 0, 0}) {
		t.Errorf("got %v", got)
	}
}

func TestMat4MulIdentity(t *testing.T) {
	m := Transform{Position: Vec3{1, 2, 3}, Rotation: Vec3{10, 20, 30}, Scale: Vec3{1, 2, 1}}.Matrix()
	if Mat4Mul(Mat4Identity(), m) != m || Mat4Mul(m, Mat4Identity()) != m {
		t.Error("identity is not neutral")
	}
}

func TestLookAt(t *testing.T) {
	v := LookAt(Vec3{0, 0, 10}, Vec3{}, Vec3{0, 1, 0})
	if got := v.MulPoint(Vec3{}); !nearVec(got, Vec3{0, 0, -10}) {
		t.Errorf("target in view space = %v", got)
	}
	if got := v.MulPoint(Vec3{1, 0, 0}); !nearVec(got, Vec3{1, 0, -10}) {
		t.Errorf("+x in view space = %v", got)
	}
}

func TestPerspective(t *testing.T) {
	p := Perspective(math.Pi/2, 1, 1, 100)
	near := p.MulClip(Vec3{0, 0, -1})
	far := p.MulClip(Vec3{0, 0, -100})
	if math.Abs(near[2]/near[3]+1) > 1e-9 || math.Abs(far[2]/far[3]-1) > 1e-9 {
		t.Errorf("depth range: near %v far %v", near, far)
	}
	edge := p.MulClip(Vec3{0, 1, -1})
	if math.Abs(edge[1]/edge[3]-1) > 1e-9 {
		t.Errorf("top edge = %v", edge)
	}
}

func TestVec2(t *testing.T) {
	v := Vec2{3, 4}
	if v.Len() != 5 {
		t.Errorf("len = %v", v.Len())
	}
	if p := v.Perp(); p.Len() != 5 || p[0]*v[0]+p[1]*v[1] != 0 {
		t.Errorf("perp = %v", p)
	}
	if (Vec2{}).Normalize() != (Vec2{}) {
		t.Error("zero vector normalized to non-zero")
	}
}

func TestMean(t *testing.T) {
	if got := (Vec3{1, 2, 6}).Mean(); got != 3 {
		t.Errorf("mean = %v", got)
	}
}
