package scene

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/taigrr/tumble/pkg/render"
)

// ErrUnknownAsset is returned for texture names that are neither built in
// nor present in the asset directory.
var ErrUnknownAsset = errors.New("scene: unknown asset")

// Built-in procedural textures, addressable by name.
var builtinTextures = map[string]func() *render.Texture{
	"checker": func() *render.Texture {
		return render.NewCheckerTexture(64, 64, 8, render.RGB(0xE0, 0xE0, 0xE0), render.RGB(0x30, 0x60, 0x30))
	},
	"gradient": func() *render.Texture {
		return render.NewGradientTexture(64, 64, render.RGB(0x50, 0xFF, 0x50), render.RGB(0x20, 0x40, 0xA0))
	},
}

// assetResult is a finished load on its way to the tick goroutine.
type assetResult struct {
	fig  *Figure
	name string
	tex  *render.Texture
	err  error
}

// resultQueue is the number of finished loads that can wait in the channel
// before loader goroutines block.
const resultQueue = 64

// AssetLoader decodes textures in the background. Finished loads queue up
// until the tick goroutine installs them with Poll, so figures are never
// written from another goroutine.
type AssetLoader struct {
	dir     string
	log     *zap.Logger
	results chan assetResult
	drained []assetResult // taken off results by Wait, not yet installed
	wg      sync.WaitGroup
}

// NewAssetLoader creates a loader that resolves file names against dir.
func NewAssetLoader(dir string, log *zap.Logger) *AssetLoader {
	if log == nil {
		log = zap.NewNop()
	}
	return &AssetLoader{
		dir:     dir,
		log:     log,
		results: make(chan assetResult, resultQueue),
	}
}

// Resolve returns the file path for a texture name.
func (l *AssetLoader) Resolve(name string) string {
	if filepath.IsAbs(name) || l.dir == "" {
		return name
	}
	return filepath.Join(l.dir, name)
}

// Load decodes a texture synchronously.
func (l *AssetLoader) Load(ctx context.Context, name string) (*render.Texture, error) {
	if gen, ok := builtinTextures[name]; ok {
		return gen(), nil
	}
	path := l.Resolve(name)
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAsset, name)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return render.LoadTexture(path)
}

// Request marks the figure's texture slot pending and starts loading name.
// Must be called from the tick goroutine.
func (l *AssetLoader) Request(ctx context.Context, f *Figure, name string) {
	f.Texture = TextureSlot{Name: name, State: TexturePending}
	l.log.Debug("texture requested", zap.String("figure", f.Name), zap.String("texture", name))

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		tex, err := l.Load(ctx, name)
		select {
		case l.results <- assetResult{fig: f, name: name, tex: tex, err: err}:
		case <-ctx.Done():
		}
	}()
}

// Poll installs every finished load without blocking and returns how many
// were installed. A result for a slot that has since been pointed at a
// different texture is dropped.
func (l *AssetLoader) Poll() int {
	n := 0
	for _, r := range l.drained {
		if l.install(r) {
			n++
		}
	}
	clear(l.drained)
	l.drained = l.drained[:0]
	for {
		select {
		case r := <-l.results:
			if l.install(r) {
				n++
			}
		default:
			return n
		}
	}
}

func (l *AssetLoader) install(r assetResult) bool {
	slot := &r.fig.Texture
	if slot.Name != r.name || slot.State != TexturePending {
		return false
	}
	if r.err != nil {
		slot.State = TextureFailed
		l.log.Warn("texture load failed", zap.String("figure", r.fig.Name), zap.String("texture", r.name), zap.Error(r.err))
		return true
	}
	slot.Texture = r.tex
	slot.State = TextureReady
	l.log.Info("texture loaded",
		zap.String("figure", r.fig.Name),
		zap.String("texture", r.name),
		zap.Int("width", r.tex.Width),
		zap.Int("height", r.tex.Height))
	return true
}

// Wait blocks until every requested load has finished decoding. Results
// still need Poll to be installed. Finished loads are moved off the channel
// while waiting so loaders never block on a full queue. Must be called from
// the tick goroutine.
func (l *AssetLoader) Wait() {
	done := make(chan struct{})
	go func() {
		l.wg.Wait()
		close(done)
	}()
	for {
		select {
		case r := <-l.results:
			l.drained = append(l.drained, r)
		case <-done:
			return
		}
	}
}
