package math3d

import "errors"

// ErrSingular is returned when an affine map cannot be solved or inverted.
var ErrSingular = errors.New("math3d: singular affine map")

// Affine2 is a 2D affine transform in canvas order:
//
//	x' = A*x + C*y + E
//	y' = B*x + D*y + F
type Affine2 struct {
	A, B, C, D, E, F float64
}

// IdentityAffine2 returns the identity transform.
func IdentityAffine2() Affine2 {
	return Affine2{A: 1, D: 1}
}

// Apply maps p through the transform.
func (m Affine2) Apply(p Vec2) Vec2 {
	return Vec2{
		m.A*p.X + m.C*p.Y + m.E,
		m.B*p.X + m.D*p.Y + m.F,
	}
}

// Det returns the determinant of the linear part.
func (m Affine2) Det() float64 {
	return m.A*m.D - m.B*m.C
}

// Inverse returns the inverse transform.
func (m Affine2) Inverse() (Affine2, error) {
	det := m.Det()
	if det == 0 {
		return Affine2{}, ErrSingular
	}
	inv := 1 / det
	return Affine2{
		A: m.D * inv,
		B: -m.B * inv,
		C: -m.C * inv,
		D: m.A * inv,
		E: (m.C*m.F - m.D*m.E) * inv,
		F: (m.B*m.E - m.A*m.F) * inv,
	}, nil
}

// SolveAffine2 returns the transform mapping each src[i] onto dst[i].
// It fails with ErrSingular when the source triangle has zero area.
func SolveAffine2(src, dst [3]Vec2) (Affine2, error) {
	u0, v0 := src[0].X, src[0].Y
	du1, dv1 := src[1].X-u0, src[1].Y-v0
	du2, dv2 := src[2].X-u0, src[2].Y-v0

	det := du1*dv2 - du2*dv1
	if det == 0 {
		return Affine2{}, ErrSingular
	}

	dx1, dy1 := dst[1].X-dst[0].X, dst[1].Y-dst[0].Y
	dx2, dy2 := dst[2].X-dst[0].X, dst[2].Y-dst[0].Y

	m := Affine2{
		A: (dx1*dv2 - dx2*dv1) / det,
		B: (dy1*dv2 - dy2*dv1) / det,
		C: (dx2*du1 - dx1*du2) / det,
		D: (dy2*du1 - dy1*du2) / det,
	}
	m.E = dst[0].X - m.A*u0 - m.C*v0
	m.F = dst[0].Y - m.B*u0 - m.D*v0
	return m, nil
}
