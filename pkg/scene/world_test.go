package scene

import (
	"math"
	"testing"
	"time"

	"github.com/taigrr/tumble/pkg/math3d"
	"github.com/taigrr/tumble/pkg/models"
	"github.com/taigrr/tumble/pkg/render"
)

// newTestWorld returns a seeded world with one box in front of the default
// camera and the light marker off, so recorded calls are polygons only.
func newTestWorld(t *testing.T) (*World, *Figure) {
	t.Helper()
	flags := DefaultFlags()
	flags.LightMarker = false
	w := NewWorld(WithSeed(1), WithFlags(flags), WithViewport(render.NewViewport(200, 200, true)))
	f := NewFigure("box", models.NewBox(0.25), math3d.V3(0, 0, 2))
	w.AddFigure(f)
	return w, f
}

func TestRenderBackgroundFirst(t *testing.T) {
	w, _ := newTestWorld(t)
	var rec render.Recorder
	w.Render(&rec)

	if len(rec.Calls) == 0 {
		t.Fatal("no calls recorded")
	}
	if rec.Calls[0].Kind != render.CallBackground || rec.Calls[0].Color != w.Background {
		t.Errorf("first call = %v %v, want background %v", rec.Calls[0].Kind, rec.Calls[0].Color, w.Background)
	}
	if n := rec.Count(render.CallBackground); n != 1 {
		t.Errorf("background calls = %d, want 1", n)
	}
}

func TestRenderStats(t *testing.T) {
	w, _ := newTestWorld(t)
	var rec render.Recorder
	st := w.Render(&rec)

	if st.Figures != 1 || st.Faces != 12 {
		t.Errorf("figures/faces = %d/%d, want 1/12", st.Figures, st.Faces)
	}
	if st.Behind != 0 || st.Clipped != 0 || st.Degenerate != 0 {
		t.Errorf("behind/clipped/degenerate = %d/%d/%d, want 0/0/0", st.Behind, st.Clipped, st.Degenerate)
	}
	if st.Drawables != 12 || st.Filled != 12 {
		t.Errorf("drawables/filled = %d/%d, want 12/12", st.Drawables, st.Filled)
	}
	if got := rec.Count(render.CallFill); got != 12 {
		t.Errorf("fills = %d, want 12", got)
	}
	if w.Stats() != st {
		t.Error("Stats() differs from Render result")
	}
}

func TestRenderSortsFarthestFirst(t *testing.T) {
	w, _ := newTestWorld(t)
	w.AddFigure(NewFigure("far", models.NewBox(0.25), math3d.V3(0, 0, 6)))
	var rec render.Recorder
	w.Render(&rec)

	for i := 1; i < len(w.drawables); i++ {
		if w.drawables[i].Depth > w.drawables[i-1].Depth {
			t.Fatalf("drawable %d depth %v after %v", i, w.drawables[i].Depth, w.drawables[i-1].Depth)
		}
	}
	// The far box's faces come out before any face of the near box.
	first := rec.Calls[1].Points
	for _, p := range first {
		if math.Abs(p.X-100) > 20 {
			t.Errorf("first polygon point %v is not from the far box", p)
		}
	}
}

func TestRenderBehindCamera(t *testing.T) {
	w := NewWorld(WithSeed(1))
	w.AddFigure(NewFigure("box", models.NewBox(0.25), math3d.V3(0, 0, -10)))
	var rec render.Recorder
	st := w.Render(&rec)

	if st.Behind != 12 || st.Drawables != 0 {
		t.Errorf("behind/drawables = %d/%d, want 12/0", st.Behind, st.Drawables)
	}
	if rec.Count(render.CallFill) != 0 {
		t.Error("faces behind the camera were drawn")
	}
}

func TestRenderClipsAtNearPlane(t *testing.T) {
	w, _ := newTestWorld(t)
	w.Camera.SetPosition(math3d.V3(0, 0, 1.8))
	var rec render.Recorder
	st := w.Render(&rec)

	if st.Clipped == 0 {
		t.Error("no faces clipped with the camera inside the box")
	}
	for _, d := range w.drawables {
		if len(d.Points) != 3 {
			t.Fatalf("drawable has %d points", len(d.Points))
		}
	}
}

func TestRenderTextures(t *testing.T) {
	w, f := newTestWorld(t)
	var rec render.Recorder

	// Pending textures draw flat.
	f.Texture = TextureSlot{Name: "checker", State: TexturePending}
	w.Render(&rec)
	if n := rec.Count(render.CallWarp); n != 0 {
		t.Errorf("warps with pending texture = %d, want 0", n)
	}

	f.Texture = TextureSlot{Name: "checker", State: TextureReady, Texture: render.NewCheckerTexture(8, 8, 2, render.ColorWhite, render.ColorBlack)}
	rec.Reset()
	st := w.Render(&rec)
	if st.Textured != 12 || rec.Count(render.CallWarp) != 12 {
		t.Errorf("textured = %d, warps = %d, want 12", st.Textured, rec.Count(render.CallWarp))
	}

	w.Toggle(ControlTextures)
	rec.Reset()
	w.Render(&rec)
	if n := rec.Count(render.CallWarp); n != 0 {
		t.Errorf("warps with textures off = %d, want 0", n)
	}
}

func TestRenderLines(t *testing.T) {
	w, _ := newTestWorld(t)
	var rec render.Recorder
	w.Render(&rec)
	if n := rec.Count(render.CallStroke); n != 0 {
		t.Errorf("strokes with lines off = %d, want 0", n)
	}

	if !w.Toggle(ControlLines) {
		t.Fatal("Toggle(lines) = false, want true")
	}
	rec.Reset()
	w.Render(&rec)
	if n := rec.Count(render.CallStroke); n != 12 {
		t.Errorf("strokes = %d, want 12", n)
	}
	for _, c := range rec.Calls {
		if c.Kind == render.CallStroke && c.Color != w.LineColor {
			t.Errorf("stroke color = %v, want %v", c.Color, w.LineColor)
		}
	}
}

func TestRenderLighting(t *testing.T) {
	w, f := newTestWorld(t)
	var rec render.Recorder

	w.Toggle(ControlLighting)
	w.Render(&rec)
	for _, c := range rec.Calls {
		if c.Kind == render.CallFill && c.Color != f.Color {
			t.Fatalf("unlit fill = %v, want %v", c.Color, f.Color)
		}
	}

	w.Toggle(ControlLighting)
	rec.Reset()
	w.Render(&rec)
	darker := 0
	for _, c := range rec.Calls {
		if c.Kind == render.CallFill && c.Color != f.Color {
			darker++
		}
	}
	if darker == 0 {
		t.Error("lighting on but every face is fully lit")
	}
}

func TestRenderLightMarker(t *testing.T) {
	w := NewWorld(WithSeed(1))
	var rec render.Recorder
	st := w.Render(&rec)
	if !st.MarkerVisible {
		t.Fatal("light marker not visible from the default camera")
	}
	if rec.Count(render.CallFill) != 1 || rec.Count(render.CallStroke) != 1 {
		t.Errorf("fills/strokes = %d/%d, want 1/1", rec.Count(render.CallFill), rec.Count(render.CallStroke))
	}

	w.Toggle(ControlLightMarker)
	rec.Reset()
	if st := w.Render(&rec); st.MarkerVisible || len(rec.Calls) != 1 {
		t.Errorf("marker drawn while disabled: %d calls", len(rec.Calls))
	}
}

func TestUpdateDragClampsPitch(t *testing.T) {
	w, _ := newTestWorld(t)
	w.Input.AddDrag(0, -1e6)
	w.Update()
	if want := math.Pi/2 - render.PitchEpsilon; math.Abs(w.Camera.Pitch-want) > eps {
		t.Errorf("pitch = %v, want %v", w.Camera.Pitch, want)
	}

	w.Input.AddDrag(0, 2e6)
	w.Update()
	if want := -math.Pi/2 + render.PitchEpsilon; math.Abs(w.Camera.Pitch-want) > eps {
		t.Errorf("pitch = %v, want %v", w.Camera.Pitch, want)
	}
}

func TestUpdateMovesCamera(t *testing.T) {
	w, _ := newTestWorld(t)
	start := w.Camera.Position
	w.Input.SetKey(KeyForward, true)
	w.Update()
	want := start.Add(math3d.V3(0, 0, w.Camera.MoveSpeed))
	if !vecNear(w.Camera.Position, want, eps) {
		t.Errorf("position = %v, want %v", w.Camera.Position, want)
	}
}

func TestUpdatePhysicsToggle(t *testing.T) {
	w, f := newTestWorld(t)
	w.Toggle(ControlPhysics)
	for range 10 {
		w.Update()
	}
	if f.Center != f.OriginalCenter {
		t.Errorf("figure moved with physics off: %v", f.Center)
	}

	w.Toggle(ControlPhysics)
	w.Update()
	if f.Center.Y >= f.OriginalCenter.Y {
		t.Errorf("figure did not fall: %v", f.Center)
	}
	if w.Ticks() != 11 {
		t.Errorf("Ticks() = %d, want 11", w.Ticks())
	}
}

func TestUpdateInstallsTextures(t *testing.T) {
	w, f := newTestWorld(t)
	w.RequestTexture(t.Context(), f, "checker")
	w.assets.Wait()
	w.Update()
	if _, ok := f.Texture.Ready(); !ok {
		t.Errorf("texture state after Update = %v, want ready", f.Texture.State)
	}
}

func TestWaitForAssetsManyFigures(t *testing.T) {
	w, _ := newTestWorld(t)
	var figs []*Figure
	for i := range resultQueue + 16 {
		f := NewFigure("box", models.NewBox(0.1), math3d.V3(float64(i%8)*0.3, 0, 3))
		w.AddFigure(f)
		w.RequestTexture(t.Context(), f, "checker")
		figs = append(figs, f)
	}

	done := make(chan struct{})
	go func() {
		w.WaitForAssets()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatalf("WaitForAssets() did not return with %d pending textures", len(figs))
	}
	for i, f := range figs {
		if _, ok := f.Texture.Ready(); !ok {
			t.Errorf("figure %d state = %v, want ready", i, f.Texture.State)
		}
	}
}

func TestLookSmoothingEasesRotation(t *testing.T) {
	w := NewWorld(WithSeed(1), WithLookSmoothing())
	w.Input.AddDrag(-100, 0)
	w.Update()
	target := 100 * w.Camera.Sensitivity
	if w.Camera.Yaw <= 0 || w.Camera.Yaw >= target {
		t.Errorf("yaw after one tick = %v, want between 0 and %v", w.Camera.Yaw, target)
	}
	for range 300 {
		w.Update()
	}
	if math.Abs(w.Camera.Yaw-target) > 1e-3 {
		t.Errorf("yaw = %v, want %v", w.Camera.Yaw, target)
	}
}

func vecNear(a, b math3d.Vec3, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol && math.Abs(a.Z-b.Z) <= tol
}

func BenchmarkTick(b *testing.B) {
	w := NewWorld(WithSeed(1))
	for _, spec := range []FigureSpec{
		{Shape: "box", Center: math3d.V3(-0.7, 0, 2)},
		{Shape: "sphere", Center: math3d.V3(0, 1, 2.5)},
		{Shape: "ground", Center: math3d.V3(0, -0.8, 2)},
	} {
		f, err := BuildFigure(spec)
		if err != nil {
			b.Fatal(err)
		}
		w.AddFigure(f)
	}
	var rec render.Recorder
	for b.Loop() {
		rec.Reset()
		w.Tick(&rec)
	}
}
