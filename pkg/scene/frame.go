package scene

import (
	"github.com/taigrr/tumble/pkg/math3d"
	"github.com/taigrr/tumble/pkg/render"
)

// Update advances the world by one tick: finished texture loads are
// installed, input moves the camera, and physics and animations step.
func (w *World) Update() {
	w.ticks++
	w.stats = FrameStats{Tick: w.ticks}

	w.assets.Poll()

	if dx, dy := w.Input.TakeDrag(); dx != 0 || dy != 0 || w.look != nil {
		if w.look != nil {
			s := w.Camera.Sensitivity
			w.look.Add(-dx*s, -dy*s)
			w.Camera.SetRotation(w.look.Update())
		} else {
			w.Camera.Rotate(dx, dy)
		}
	}
	if mv := w.Input.MoveVector(); mv != (math3d.Vec3{}) {
		w.Camera.Move(mv)
	}
	w.Input.Advance()

	if w.Flags.Physics {
		w.stats.Contacts = w.Physics.StepAll(w.figures)
	}
	w.Light.Update(1 / float32(w.fps))
}

// Render draws the current state onto b: background, then every visible
// face farthest first, then the light marker.
func (w *World) Render(b render.Backend) FrameStats {
	w.stats = FrameStats{Tick: w.ticks, Contacts: w.stats.Contacts, Figures: len(w.figures)}
	st := &w.stats

	b.FillBackground(w.Background)

	lightCam := w.Light.CameraDirection(w.Camera)
	w.drawables = w.drawables[:0]
	w.points = w.points[:0]

	// Two clipped triangles per face at most; sizing the slab up front
	// keeps the drawables' Points from being split across reallocations.
	faces := 0
	for _, f := range w.figures {
		faces += len(f.Mesh.Faces)
	}
	if need := faces * 6; cap(w.points) < need {
		w.points = make([]math3d.Vec2, 0, need)
	}

	for _, f := range w.figures {
		w.collect(f, lightCam, st)
	}

	render.SortDrawables(w.drawables)
	res := render.Draw(b, w.drawables, render.DrawOptions{
		Textures:  w.Flags.Textures,
		Lines:     w.Flags.Lines,
		LineColor: w.LineColor,
	})
	st.Drawables = len(w.drawables)
	st.Filled = res.Filled
	st.Textured = res.Textured
	st.Degenerate += res.Degenerate

	if w.Flags.LightMarker {
		wf := render.NewWireframe(w.Camera, w.Viewport, b, w.Near)
		st.MarkerVisible = w.Light.Draw(wf)
	}

	w.logStats(*st)
	return *st
}

// collect transforms, shades and clips one figure's faces into drawables.
func (w *World) collect(f *Figure, lightCam math3d.Vec3, st *FrameStats) {
	if cap(f.camVerts) < len(f.Mesh.Vertices) {
		f.camVerts = make([]math3d.Vec3, len(f.Mesh.Vertices))
	}
	f.camVerts = f.camVerts[:len(f.Mesh.Vertices)]
	for i, v := range f.Mesh.Vertices {
		f.camVerts[i] = w.Camera.WorldToCamera(f.LocalToWorld(v))
	}

	tex, hasTex := f.Texture.Ready()

	for _, face := range f.Mesh.Faces {
		st.Faces++
		v0, v1, v2 := f.camVerts[face.V[0]], f.camVerts[face.V[1]], f.camVerts[face.V[2]]

		n, ok := render.FaceNormal(v0, v1, v2)
		if !ok {
			st.Degenerate++
			continue
		}
		intensity := render.Intensity(n, lightCam, w.Flags.Lighting)

		tri := render.Triangle{
			{Pos: v0, UV: face.UV[0]},
			{Pos: v1, UV: face.UV[1]},
			{Pos: v2, UV: face.UV[2]},
		}
		w.clipped = render.ClipTriangle(tri, w.Near, w.clipped[:0])
		switch {
		case len(w.clipped) == 0:
			st.Behind++
			continue
		case len(w.clipped) > 1 || w.clipped[0] != tri:
			st.Clipped++
		}

		for _, ct := range w.clipped {
			start := len(w.points)
			for _, cv := range ct {
				p, _ := w.Viewport.ProjectToScreen(cv.Pos)
				w.points = append(w.points, p)
			}
			d := render.Drawable{
				Points:    w.points[start:len(w.points):len(w.points)],
				Depth:     render.DepthKey(ct[0].Pos, ct[1].Pos, ct[2].Pos),
				UV:        [3]math3d.Vec2{ct[0].UV, ct[1].UV, ct[2].UV},
				Intensity: intensity,
				Color:     f.Color,
			}
			if hasTex {
				d.Texture = tex
			}
			w.drawables = append(w.drawables, d)
		}
	}
}

// Tick runs Update and then Render.
func (w *World) Tick(b render.Backend) FrameStats {
	w.Update()
	return w.Render(b)
}
