package render

import (
	"errors"

	"github.com/taigrr/tumble/pkg/math3d"
)

// ErrDegenerateUV is returned when a triangle's texture coordinates have no
// area, so no image placement can satisfy them.
var ErrDegenerateUV = errors.New("render: degenerate UV triangle")

// TextureMap solves the affine transform taking texture pixel coordinates
// to screen coordinates for one triangle. uv is in [0,1] texture space and
// is scaled by the texture size; screen holds the projected corners in the
// same order.
func TextureMap(uv, screen [3]math3d.Vec2, texWidth, texHeight int) (math3d.Affine2, error) {
	w, h := float64(texWidth), float64(texHeight)
	var src [3]math3d.Vec2
	for i, p := range uv {
		src[i] = math3d.V2(p.X*w, p.Y*h)
	}
	m, err := math3d.SolveAffine2(src, screen)
	if err != nil {
		return math3d.Affine2{}, ErrDegenerateUV
	}
	return m, nil
}
