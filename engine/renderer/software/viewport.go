package software

import (
	"github.com/spaghettifunk/anima-soft/engine/math"
)

// Viewport is the pixel rectangle NDC is mapped onto. Max bounds are
// exclusive. It is immutable once built.
type Viewport struct {
	xMin, xMax int32
	yMin, yMax int32
}

func NewViewport(xMin, xMax, yMin, yMax int32) Viewport {
	return Viewport{xMin: xMin, xMax: xMax, yMin: yMin, yMax: yMax}
}

// NewFullViewport covers a whole width x height target.
func NewFullViewport(width, height int) Viewport {
	return NewViewport(0, int32(width), 0, int32(height))
}

func (vp Viewport) XMin() int32 { return vp.xMin }
func (vp Viewport) XMax() int32 { return vp.xMax }
func (vp Viewport) YMin() int32 { return vp.yMin }
func (vp Viewport) YMax() int32 { return vp.yMax }

func (vp Viewport) Width() int32  { return vp.xMax - vp.xMin }
func (vp Viewport) Height() int32 { return vp.yMax - vp.yMin }

// NdcToViewport maps x from [-1,1] to [xMin,xMax] and y from [-1,1] to
// [yMax,yMin], since screen y grows downward.
func (vp Viewport) NdcToViewport(ndc math.Vec4) math.Vec2 {
	return math.Vec2{
		X: float32(vp.xMin) + float32(vp.xMax-vp.xMin)*(0.5+0.5*ndc.X),
		Y: float32(vp.yMin) + float32(vp.yMax-vp.yMin)*(0.5-0.5*ndc.Y),
	}
}
