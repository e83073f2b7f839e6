package render

import (
	"errors"
	"math"
	"testing"

	"github.com/taigrr/tumble/pkg/math3d"
)

func TestFaceNormalFacesCamera(t *testing.T) {
	// Same triangle in both windings: the normal must point back toward
	// the eye (negative z) either way.
	a, b, c := math3d.V3(0, 0, 2), math3d.V3(1, 0, 2), math3d.V3(0, 1, 2)
	for _, order := range [][3]math3d.Vec3{{a, b, c}, {a, c, b}} {
		n, ok := FaceNormal(order[0], order[1], order[2])
		if !ok {
			t.Fatal("FaceNormal reported degenerate triangle")
		}
		if !vecNear(n, math3d.V3(0, 0, -1), eps) {
			t.Errorf("normal = %v, want (0,0,-1)", n)
		}
	}
}

func TestFaceNormalDegenerate(t *testing.T) {
	p := math3d.V3(0, 0, 1)
	if _, ok := FaceNormal(p, p, math3d.V3(1, 0, 1)); ok {
		t.Error("collinear triangle should be degenerate")
	}
}

func TestIntensity(t *testing.T) {
	n := math3d.V3(0, 0, -1)
	tests := []struct {
		name     string
		light    math3d.Vec3
		lighting bool
		want     float64
	}{
		{"facing light", math3d.V3(0, 0, -1), true, 1},
		{"facing away", math3d.V3(0, 0, 1), true, AmbientLight},
		{"grazing", math3d.V3(1, 0, 0), true, AmbientLight},
		{"half", math3d.V3(0, math.Sqrt(3)/2, -0.5), true, AmbientLight + (1-AmbientLight)*0.5},
		{"lighting off", math3d.V3(0, 0, 1), false, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Intensity(n, tc.light, tc.lighting); math.Abs(got-tc.want) > eps {
				t.Errorf("Intensity = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestShadeOverlay(t *testing.T) {
	if got := ShadeOverlay(1); got.A != 0 {
		t.Errorf("full intensity overlay alpha = %d, want 0", got.A)
	}
	if got := ShadeOverlay(AmbientLight); got.A != 204 {
		t.Errorf("ambient overlay alpha = %d, want 204", got.A)
	}
	if got := ShadeOverlay(0.5); got.R != 0 || got.G != 0 || got.B != 0 {
		t.Errorf("overlay should be black, got %v", got)
	}
}

func TestTextureMapCorners(t *testing.T) {
	uv := [3]math3d.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}
	screen := [3]math3d.Vec2{{X: 10, Y: 20}, {X: 110, Y: 30}, {X: 5, Y: 80}}
	m, err := TextureMap(uv, screen, 64, 32)
	if err != nil {
		t.Fatalf("TextureMap: %v", err)
	}
	for i, p := range uv {
		got := m.Apply(math3d.V2(p.X*64, p.Y*32))
		if math.Abs(got.X-screen[i].X) > 1e-9 || math.Abs(got.Y-screen[i].Y) > 1e-9 {
			t.Errorf("corner %d maps to %v, want %v", i, got, screen[i])
		}
	}
}

func TestTextureMapDegenerate(t *testing.T) {
	uv := [3]math3d.Vec2{{X: 0, Y: 0}, {X: 0.5, Y: 0.5}, {X: 1, Y: 1}}
	screen := [3]math3d.Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 0, Y: 10}}
	if _, err := TextureMap(uv, screen, 16, 16); !errors.Is(err, ErrDegenerateUV) {
		t.Errorf("err = %v, want ErrDegenerateUV", err)
	}
}

func TestSortDrawablesFarthestFirst(t *testing.T) {
	ds := []Drawable{
		{Depth: 2, Color: ColorWhite},
		{Depth: 5, Color: ColorYellow},
		{Depth: 3.5, Color: ColorGray},
	}
	SortDrawables(ds)
	want := []float64{5, 3.5, 2}
	for i, d := range ds {
		if d.Depth != want[i] {
			t.Errorf("ds[%d].Depth = %v, want %v", i, d.Depth, want[i])
		}
	}
}

func TestSortDrawablesStable(t *testing.T) {
	ds := []Drawable{{Depth: 1, Intensity: 1}, {Depth: 1, Intensity: 2}, {Depth: 1, Intensity: 3}}
	SortDrawables(ds)
	for i, d := range ds {
		if d.Intensity != float64(i+1) {
			t.Fatalf("equal depths reordered: %v", ds)
		}
	}
}

func TestDepthKey(t *testing.T) {
	got := DepthKey(math3d.V3(0, 0, 1), math3d.V3(5, 5, 2), math3d.V3(-1, 3, 6))
	if math.Abs(got-3) > eps {
		t.Errorf("DepthKey = %v, want 3", got)
	}
	if DepthKey() != 0 {
		t.Error("DepthKey of nothing should be 0")
	}
}

func square(x, y, s float64) []math3d.Vec2 {
	return []math3d.Vec2{{X: x, Y: y}, {X: x + s, Y: y}, {X: x + s, Y: y + s}}
}

func TestDrawDispatch(t *testing.T) {
	tex := NewCheckerTexture(4, 4, 1, ColorWhite, ColorBlack)
	ds := []Drawable{
		{Points: square(0, 0, 10), Depth: 5, Color: ColorWhite, Intensity: 0.5},
		{Points: square(20, 0, 10), Depth: 2, Texture: tex, Intensity: 0.5,
			UV: [3]math3d.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}}},
		{Points: square(40, 0, 10), Depth: 1, Texture: tex, Intensity: 1,
			UV: [3]math3d.Vec2{{X: 0, Y: 0}, {X: 0, Y: 0}, {X: 1, Y: 1}}},
	}

	t.Run("textures and lines", func(t *testing.T) {
		var rec Recorder
		res := Draw(&rec, ds, DrawOptions{Textures: true, Lines: true, LineColor: ColorForeground})
		if res.Filled != 1 || res.Textured != 1 || res.Degenerate != 1 {
			t.Errorf("result = %+v", res)
		}
		kinds := []CallKind{CallFill, CallStroke, CallWarp, CallFill, CallStroke}
		if len(rec.Calls) != len(kinds) {
			t.Fatalf("got %d calls, want %d: %v", len(rec.Calls), len(kinds), rec.Calls)
		}
		for i, k := range kinds {
			if rec.Calls[i].Kind != k {
				t.Errorf("call %d = %v, want %v", i, rec.Calls[i].Kind, k)
			}
		}
		if got := rec.Calls[0].Color; got != RGB(127, 127, 127) {
			t.Errorf("flat fill = %v, want half-lit white", got)
		}
		if got := rec.Calls[3].Color.A; got != 128 {
			t.Errorf("overlay alpha = %d, want 128", got)
		}
	})

	t.Run("textures off", func(t *testing.T) {
		var rec Recorder
		res := Draw(&rec, ds, DrawOptions{})
		if res.Filled != 3 || rec.Count(CallWarp) != 0 || rec.Count(CallStroke) != 0 {
			t.Errorf("result = %+v, calls = %v", res, rec.Calls)
		}
	})
}
