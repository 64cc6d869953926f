package software

import (
	"github.com/spaghettifunk/anima-soft/engine/math"
	"github.com/spaghettifunk/anima-soft/engine/renderer/metadata"
)

// Triangles with a smaller absolute screen space area are dropped.
const degenerateEpsilon = 1e-6

// checkerboardBins is how many cells each of red and green is split into.
const checkerboardBins = 8

var (
	checkerWhite = math.NewVec4(1, 1, 1, 1)
	checkerBlack = math.NewVec4(0, 0, 0, 1)
)

// Rasterize fills the pixels of a clip space triangle, already clipped
// against the near and far planes, into fb. It may run concurrently with
// other calls on the same frame buffer.
func Rasterize(tri metadata.Triangle, vp Viewport, fb *FrameBuffer, dc *metadata.DrawCall) {
	var (
		screen [3]math.Vec2
		z      [3]float32
		color  [3]math.Vec4
	)
	for i := range tri {
		w := tri[i].Position.W
		if w == 0 {
			return
		}
		ndc := tri[i].Position.MulScalar(1 / w)
		screen[i] = vp.NdcToViewport(ndc)
		z[i] = ndc.Z
		color[i] = tri[i].Color
		// a w close to zero overflows the divide
		if !math.IsFinite(screen[i].X) || !math.IsFinite(screen[i].Y) || !math.IsFinite(z[i]) {
			return
		}
	}

	det012 := screen[1].Sub(screen[0]).Cross(screen[2].Sub(screen[0]))
	if !math.IsFinite(det012) || math.Abs(det012) < degenerateEpsilon {
		return
	}

	ccw := det012 > 0
	switch dc.Mode {
	case metadata.CullModeCCW:
		if ccw {
			return
		}
	case metadata.CullModeCW:
		if !ccw {
			return
		}
	}
	if !ccw {
		screen[1], screen[2] = screen[2], screen[1]
		z[1], z[2] = z[2], z[1]
		color[1], color[2] = color[2], color[1]
		det012 = -det012
	}

	xMin, xMax, ok := span(math.Min3(screen[0].X, screen[1].X, screen[2].X),
		math.Max3(screen[0].X, screen[1].X, screen[2].X),
		max(0, int(vp.XMin())), min(fb.Width(), int(vp.XMax())))
	if !ok {
		return
	}
	yMin, yMax, ok := span(math.Min3(screen[0].Y, screen[1].Y, screen[2].Y),
		math.Max3(screen[0].Y, screen[1].Y, screen[2].Y),
		max(0, int(vp.YMin())), min(fb.Height(), int(vp.YMax())))
	if !ok {
		return
	}

	edge0 := screen[2].Sub(screen[1])
	edge1 := screen[0].Sub(screen[2])
	edge2 := screen[1].Sub(screen[0])
	invDet := 1 / det012

	colorTarget := fb.Color()
	depthTarget := fb.Depth()
	stripes := fb.Stripes()

	for y := yMin; y < yMax; y++ {
		for x := xMin; x < xMax; x++ {
			p := math.NewVec2(float32(x)+0.5, float32(y)+0.5)

			e0 := edge0.Cross(p.Sub(screen[1]))
			e1 := edge1.Cross(p.Sub(screen[2]))
			e2 := edge2.Cross(p.Sub(screen[0]))
			if e0 < 0 || e1 < 0 || e2 < 0 {
				continue
			}

			pz := math.Clamp((e0*z[0]+e1*z[1]+e2*z[2])*invDet, -1, 1)
			depth := depthFromNdc(pz)
			pixel := interpolateColor(color, e0*invDet, e1*invDet, e2*invDet)
			if dc.DebugCheckerboard {
				pixel = checkerboard(pixel)
			}

			index := colorTarget.PixelIndex(x, y)
			lock := stripes.Stripe(index)
			lock.Lock()
			if !DepthTest(dc.DepthMode, depth, depthTarget.At(index)) {
				lock.Unlock()
				continue
			}
			if dc.WriteDepth {
				depthTarget.Set(index, depth)
			}
			colorTarget.Set(index, pixel)
			lock.Unlock()
		}
	}
}

// span turns the float extent [lo, hi] into the half-open pixel range whose
// centers it may contain, limited to [limitLo, limitHi).
func span(lo, hi float32, limitLo, limitHi int) (int, int, bool) {
	if limitLo >= limitHi {
		return 0, 0, false
	}
	first := int(math.Clamp(math.Floor(lo), float32(limitLo), float32(limitHi)))
	last := int(math.Clamp(math.Ceil(hi), float32(limitLo), float32(limitHi)))
	return first, last, first < last
}

func interpolateColor(c [3]math.Vec4, b0, b1, b2 float32) math.Vec4 {
	sum := b0 + b1 + b2
	if sum != 0 {
		b0, b1, b2 = b0/sum, b1/sum, b2/sum
	}
	return c[0].MulScalar(b0).Add(c[1].MulScalar(b1)).Add(c[2].MulScalar(b2))
}

func checkerboard(c math.Vec4) math.Vec4 {
	cx := int(math.Floor(c.X * checkerboardBins))
	cy := int(math.Floor(c.Y * checkerboardBins))
	if (cx+cy)&1 == 0 {
		return checkerWhite
	}
	return checkerBlack
}
