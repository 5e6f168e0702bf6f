package mathutil

// Transform is a TRS placement of a line in the scene.
// Rotation is Euler degrees applied as Rz · Ry · Rx.
type Transform struct {
	Position Vec3
	Rotation Vec3
	Scale    Vec3
}

// IdentityTransform has unit scale and no rotation or translation.
func IdentityTransform() Transform {
	return Transform{Scale: Vec3{1, 1, 1}}
}

// Matrix returns the local-to-world matrix T · R · S.
func (t Transform) Matrix() Mat4 {
	rs := Mat3Mul(EulerZYX(t.Rotation), Mat3Diag(t.Scale[0], t.Scale[1], t.Scale[2]))
	return FromMat3Translation(rs, t.Position)
}
