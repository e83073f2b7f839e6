package render

import (
	"math"
	"testing"

	"github.com/taigrr/tumble/pkg/math3d"
)

func tri(a, b, c math3d.Vec3) Triangle {
	return Triangle{
		{Pos: a, UV: math3d.V2(0, 0)},
		{Pos: b, UV: math3d.V2(1, 0)},
		{Pos: c, UV: math3d.V2(0, 1)},
	}
}

func triNormal(t Triangle) math3d.Vec3 {
	return t[1].Pos.Sub(t[0].Pos).Cross(t[2].Pos.Sub(t[0].Pos))
}

// sameWinding reports whether two coplanar triangles face the same way.
func sameWinding(a, b Triangle) bool {
	return triNormal(a).Dot(triNormal(b)) > 0
}

func TestClipTriangleCases(t *testing.T) {
	tests := []struct {
		name string
		in   Triangle
		want int
	}{
		{"all inside", tri(math3d.V3(0, 0, 1), math3d.V3(1, 0, 1), math3d.V3(0, 1, 2)), 1},
		{"all behind", tri(math3d.V3(0, 0, -1), math3d.V3(1, 0, 0), math3d.V3(0, 1, 0.05)), 0},
		{"one inside", tri(math3d.V3(0, 0, 2), math3d.V3(1, 0, -1), math3d.V3(0, 1, -1)), 1},
		{"two inside", tri(math3d.V3(0, 0, -1), math3d.V3(1, 0, 2), math3d.V3(0, 1, 2)), 2},
		{"on the plane", tri(math3d.V3(0, 0, DefaultNear), math3d.V3(1, 0, DefaultNear), math3d.V3(0, 1, DefaultNear)), 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out := ClipTriangle(tc.in, DefaultNear, nil)
			if len(out) != tc.want {
				t.Fatalf("got %d triangles, want %d", len(out), tc.want)
			}
			for _, tr := range out {
				for _, v := range tr {
					if v.Pos.Z < DefaultNear-1e-12 {
						t.Errorf("vertex %v in front of near plane", v.Pos)
					}
				}
			}
		})
	}
}

func TestClipTriangleFullyVisibleUnchanged(t *testing.T) {
	in := tri(math3d.V3(-1, 0, 3), math3d.V3(1, 0, 3), math3d.V3(0, 2, 4))
	out := ClipTriangle(in, DefaultNear, nil)
	if len(out) != 1 || out[0] != in {
		t.Errorf("ClipTriangle = %v, want input unchanged", out)
	}
}

func TestClipTriangleOneInside(t *testing.T) {
	// Camera-space z = {2, -1, -1}
	in := tri(math3d.V3(0, 0, 2), math3d.V3(1, 0, -1), math3d.V3(0, 1, -1))
	out := ClipTriangle(in, DefaultNear, nil)
	if len(out) != 1 {
		t.Fatalf("got %d triangles, want 1", len(out))
	}
	got := out[0]
	if got[0] != in[0] {
		t.Errorf("first vertex should be the inside one, got %v", got[0])
	}
	// t = (0.1 - 2) / (-1 - 2)
	tt := (DefaultNear - 2) / (-1 - 2.0)
	wantUV := math3d.V2(0, 0).Lerp(math3d.V2(1, 0), tt)
	if math.Abs(got[1].UV.X-wantUV.X) > eps || math.Abs(got[1].Pos.Z-DefaultNear) > eps {
		t.Errorf("clip vertex = %+v, want uv %v at near", got[1], wantUV)
	}
	if !sameWinding(got, in) {
		t.Error("clipping changed winding")
	}
}

func TestClipTriangleTwoInside(t *testing.T) {
	// Camera-space z = {-1, 2, 2}
	in := tri(math3d.V3(0, 0, -1), math3d.V3(1, 0, 2), math3d.V3(0, 1, 2))
	out := ClipTriangle(in, DefaultNear, nil)
	if len(out) != 2 {
		t.Fatalf("got %d triangles, want 2", len(out))
	}
	a, b := in[1], in[2]
	if out[0][0] != a || out[0][1] != b {
		t.Errorf("first triangle should start with the inside vertices, got %v", out[0])
	}
	if out[1][0] != b || out[1][2] != out[0][2] {
		t.Errorf("second triangle should be (b, c2, c1), got %v", out[1])
	}
	for _, tr := range out {
		if !sameWinding(tr, in) {
			t.Errorf("clipping changed winding of %v", tr)
		}
	}
}

func TestClipTriangleAppends(t *testing.T) {
	buf := make([]Triangle, 0, 4)
	in := tri(math3d.V3(0, 0, 1), math3d.V3(1, 0, 1), math3d.V3(0, 1, 1))
	buf = ClipTriangle(in, DefaultNear, buf)
	buf = ClipTriangle(in, DefaultNear, buf)
	if len(buf) != 2 {
		t.Errorf("len = %d, want 2", len(buf))
	}
}

func TestClipSegment(t *testing.T) {
	a, b, ok := clipSegment(math3d.V3(0, 0, -1), math3d.V3(0, 0, 1), 0.5)
	if !ok || a.Z != 0.5 || b.Z != 1 {
		t.Errorf("clipSegment = %v %v %v", a, b, ok)
	}
	if _, _, ok := clipSegment(math3d.V3(0, 0, -1), math3d.V3(0, 0, 0), 0.5); ok {
		t.Error("segment behind the plane should be rejected")
	}
}

func BenchmarkClipTriangle(b *testing.B) {
	in := tri(math3d.V3(0, 0, -1), math3d.V3(1, 0, 2), math3d.V3(0, 1, 2))
	buf := make([]Triangle, 0, 2)
	for b.Loop() {
		buf = ClipTriangle(in, DefaultNear, buf[:0])
	}
}
