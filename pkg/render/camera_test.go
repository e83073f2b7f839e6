package render

import (
	"math"
	"testing"

	"github.com/taigrr/tumble/pkg/math3d"
)

const eps = 1e-9

func vecNear(a, b math3d.Vec3, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol && math.Abs(a.Z-b.Z) <= tol
}

func TestNewCameraDefaults(t *testing.T) {
	c := NewCamera()
	if c.Position != math3d.V3(0, 0, -3) {
		t.Errorf("Position = %v, want (0,0,-3)", c.Position)
	}
	if c.Yaw != 0 || c.Pitch != 0 {
		t.Errorf("rotation = (%v, %v), want zero", c.Yaw, c.Pitch)
	}
	if c.Sensitivity != DefaultSensitivity || c.MoveSpeed != DefaultMoveSpeed {
		t.Errorf("Sensitivity/MoveSpeed = %v/%v", c.Sensitivity, c.MoveSpeed)
	}
}

func TestWorldToCameraIdentityPose(t *testing.T) {
	c := NewCamera()
	got := c.WorldToCamera(math3d.V3(1, 2, 0))
	if !vecNear(got, math3d.V3(1, 2, 3), eps) {
		t.Errorf("WorldToCamera = %v, want (1,2,3)", got)
	}
}

func TestProjectionRoundTrip(t *testing.T) {
	cams := []*Camera{
		{Position: math3d.V3(0, 0, -3)},
		{Position: math3d.V3(1, -2, 0.5), Yaw: 0.7, Pitch: -0.3},
		{Position: math3d.V3(-4, 1, 2), Yaw: -2.9, Pitch: 1.2},
	}
	points := []math3d.Vec3{
		{X: 0, Y: 0, Z: 1},
		{X: 0.3, Y: -0.2, Z: 2.5},
		{X: -5, Y: 4, Z: 10},
	}
	vp := NewViewport(800, 600, false)

	for _, c := range cams {
		for _, p := range points {
			back := c.WorldToCamera(c.CameraToWorld(p))
			if !vecNear(back, p, 1e-9) {
				t.Fatalf("camera round trip %v -> %v", p, back)
			}
			want, ok := vp.ProjectToScreen(p)
			if !ok {
				t.Fatalf("point %v should project", p)
			}
			got, _ := vp.ProjectToScreen(back)
			if math.Abs(got.X-want.X) > 1e-6 || math.Abs(got.Y-want.Y) > 1e-6 {
				t.Errorf("screen %v, want %v", got, want)
			}
		}
	}
}

func TestRotatePitchClamp(t *testing.T) {
	c := NewCamera()
	c.Rotate(0, -1e6)
	if want := math.Pi/2 - PitchEpsilon; math.Abs(c.Pitch-want) > eps {
		t.Errorf("Pitch = %v, want %v", c.Pitch, want)
	}
	c.Rotate(0, 1e6)
	if want := -(math.Pi/2 - PitchEpsilon); math.Abs(c.Pitch-want) > eps {
		t.Errorf("Pitch = %v, want %v", c.Pitch, want)
	}
}

func TestRotateDragDirection(t *testing.T) {
	c := NewCamera()
	c.Rotate(100, 0)
	if want := -100 * DefaultSensitivity; math.Abs(c.Yaw-want) > eps {
		t.Errorf("Yaw = %v, want %v", c.Yaw, want)
	}
	c.Rotate(0, 10)
	if want := -10 * DefaultSensitivity; math.Abs(c.Pitch-want) > eps {
		t.Errorf("Pitch = %v, want %v", c.Pitch, want)
	}
}

func TestMoveIsCameraRelative(t *testing.T) {
	tests := []struct {
		name string
		yaw  float64
		step math3d.Vec3
		want math3d.Vec3
	}{
		{"forward", 0, math3d.V3(0, 0, 1), math3d.V3(0, 0, DefaultMoveSpeed)},
		{"strafe", 0, math3d.V3(1, 0, 0), math3d.V3(DefaultMoveSpeed, 0, 0)},
		{"up", 0, math3d.V3(0, 1, 0), math3d.V3(0, DefaultMoveSpeed, 0)},
		{"forward turned", math.Pi / 2, math3d.V3(0, 0, 1), math3d.V3(-DefaultMoveSpeed, 0, 0)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := NewCamera()
			c.Position = math3d.Vec3{}
			c.Yaw = tc.yaw
			c.Move(tc.step)
			if !vecNear(c.Position, tc.want, 1e-12) {
				t.Errorf("Position = %v, want %v", c.Position, tc.want)
			}
		})
	}
}

func TestForwardMatchesWorldToCamera(t *testing.T) {
	c := &Camera{Position: math3d.V3(1, 2, 3), Yaw: 0.4, Pitch: -0.6}
	ahead := c.Position.Add(c.Forward().Scale(5))
	got := c.WorldToCamera(ahead)
	if !vecNear(got, math3d.V3(0, 0, 5), 1e-9) {
		t.Errorf("point ahead maps to %v, want (0,0,5)", got)
	}
}

func TestLookAt(t *testing.T) {
	c := NewCamera()
	target := math3d.V3(2, 1, 4)
	c.LookAt(target)
	got := c.WorldToCamera(target)
	if math.Abs(got.X) > 1e-9 || math.Abs(got.Y) > 1e-9 || got.Z <= 0 {
		t.Errorf("target in camera space = %v, want on +Z axis", got)
	}
}

func TestRotateDirectionIgnoresPosition(t *testing.T) {
	c := &Camera{Position: math3d.V3(10, 10, 10), Yaw: 0.3, Pitch: 0.2}
	d := math3d.V3(0, 1, 0)
	a := c.RotateDirection(d)
	c.Position = math3d.Vec3{}
	b := c.WorldToCamera(d)
	if !vecNear(a, b, eps) {
		t.Errorf("RotateDirection = %v, want %v", a, b)
	}
}

func TestViewportMap(t *testing.T) {
	tests := []struct {
		name string
		vp   Viewport
		ndc  math3d.Vec2
		want math3d.Vec2
	}{
		{"center", NewViewport(800, 800, false), math3d.V2(0, 0), math3d.V2(400, 400)},
		{"top left", NewViewport(800, 600, false), math3d.V2(-1, 1), math3d.V2(0, 0)},
		{"bottom right", NewViewport(800, 600, false), math3d.V2(1, -1), math3d.V2(800, 600)},
		{"square top left", NewViewport(800, 600, true), math3d.V2(-1, 1), math3d.V2(100, 0)},
		{"square bottom right", NewViewport(800, 600, true), math3d.V2(1, -1), math3d.V2(700, 600)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.vp.Map(tc.ndc)
			if math.Abs(got.X-tc.want.X) > eps || math.Abs(got.Y-tc.want.Y) > eps {
				t.Errorf("Map(%v) = %v, want %v", tc.ndc, got, tc.want)
			}
			back := tc.vp.Unmap(got)
			if math.Abs(back.X-tc.ndc.X) > eps || math.Abs(back.Y-tc.ndc.Y) > eps {
				t.Errorf("Unmap = %v, want %v", back, tc.ndc)
			}
		})
	}
}

func TestProjectRejectsBehindCamera(t *testing.T) {
	for _, z := range []float64{0, -1} {
		if _, ok := Project(math3d.V3(1, 1, z)); ok {
			t.Errorf("Project with z=%v should fail", z)
		}
	}
	got, ok := Project(math3d.V3(2, -4, 2))
	if !ok || got != math3d.V2(1, -2) {
		t.Errorf("Project = %v, %v", got, ok)
	}
}
