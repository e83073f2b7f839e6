package main

import (
	"fmt"
	"time"

	"github.com/taigrr/tumble/pkg/scene"
)

// HUD renders an overlay with frame statistics and toggle states.
type HUD struct {
	Visible bool

	fps       float64
	fpsFrames int
	fpsTime   time.Time
}

// NewHUD creates a hidden HUD.
func NewHUD() *HUD {
	return &HUD{fpsTime: time.Now()}
}

// UpdateFPS updates the FPS counter (call once per frame)
func (h *HUD) UpdateFPS() {
	h.fpsFrames++
	elapsed := time.Since(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = time.Now()
	}
}

func check(on bool) string {
	if on {
		return "[✓]"
	}
	return "[ ]"
}

// Render draws the HUD directly to the terminal, after the frame.
func (h *HUD) Render(width, height int, flags scene.Flags, st scene.FrameStats) {
	const (
		reset     = "\x1b[0m"
		bold      = "\x1b[1m"
		bgBlack   = "\x1b[40m"
		fgWhite   = "\x1b[97m"
		fgGreen   = "\x1b[92m"
		fgCyan    = "\x1b[96m"
		clearLine = "\x1b[2K"
	)
	moveTo := func(row, col int) string {
		return fmt.Sprintf("\x1b[%d;%dH", row, col)
	}

	// Always clear the HUD rows so hiding it works.
	fmt.Print(moveTo(1, 1) + clearLine)
	fmt.Print(moveTo(height, 1) + clearLine)
	if !h.Visible {
		return
	}

	fmt.Printf("%s%s%s %.0f FPS %s", moveTo(1, 1), bgBlack, fgGreen, h.fps, reset)

	counts := fmt.Sprintf("%d figs %d polys %d clipped", st.Figures, st.Drawables, st.Clipped)
	fmt.Print(moveTo(1, max(width-len(counts)-1, 1)) + bgBlack + fgCyan + bold + counts + reset)

	modes := fmt.Sprintf("%s%s %s Lines %s Tex %s Light %s Physics %s Marker %s",
		bgBlack, fgWhite,
		check(flags.Lines), check(flags.Textures), check(flags.Lighting),
		check(flags.Physics), check(flags.LightMarker), reset)
	fmt.Print(moveTo(height, 1) + modes)
}
