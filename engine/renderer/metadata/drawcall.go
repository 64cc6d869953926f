package metadata

import (
	"github.com/spaghettifunk/anima-soft/engine/math"
)

/**
 * @brief Everything needed to rasterize one mesh. Mesh is borrowed: it must
 * outlive the draw and stay unmodified until the draw returns.
 */
type DrawCall struct {
	Mesh      *Mesh
	Transform math.Mat4
	Mode      CullMode
	DepthMode DepthTestMode
	/** @brief Store the depth of pixels that pass the depth test. */
	WriteDepth bool
	/** @brief Replace the interpolated color by a checkerboard derived from it. */
	DebugCheckerboard bool
}

// NewDrawCall culls counter-clockwise triangles, keeps the nearest fragment
// and writes depth.
func NewDrawCall(mesh *Mesh, transform math.Mat4) DrawCall {
	return DrawCall{
		Mesh:       mesh,
		Transform:  transform,
		Mode:       CullModeCCW,
		DepthMode:  DepthTestLess,
		WriteDepth: true,
	}
}
