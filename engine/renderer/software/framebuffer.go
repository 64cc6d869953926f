package software

import (
	stdmath "math"

	"github.com/spaghettifunk/anima-soft/engine/math"
)

// DepthFar is the depth of a pixel nothing has been drawn to.
const DepthFar uint32 = stdmath.MaxUint32

// DefaultClearColor is opaque black.
var DefaultClearColor = math.NewVec4(0, 0, 0, 1)

// FrameBuffer pairs a color and a depth target of the same size with the
// locks that serialize depth updates. Its size never changes.
type FrameBuffer struct {
	width, height int
	color         *RenderTarget[math.Vec4]
	depth         *RenderTarget[uint32]
	stripes       *StripeLocks
}

type FrameBufferOption func(*frameBufferOptions)

type frameBufferOptions struct {
	stripes int
}

// WithDepthStripes sets how many locks guard the depth buffer.
func WithDepthStripes(n int) FrameBufferOption {
	return func(o *frameBufferOptions) {
		o.stripes = n
	}
}

func NewFrameBuffer(width, height int, opts ...FrameBufferOption) *FrameBuffer {
	o := frameBufferOptions{stripes: DefaultDepthStripes}
	for _, opt := range opts {
		opt(&o)
	}
	width = max(width, 0)
	height = max(height, 0)
	return &FrameBuffer{
		width:   width,
		height:  height,
		color:   NewRenderTarget(width, height, DefaultClearColor),
		depth:   NewRenderTarget(width, height, DepthFar),
		stripes: NewStripeLocks(o.stripes),
	}
}

// Clear must not run concurrently with a draw into the same frame buffer.
func (fb *FrameBuffer) Clear(color math.Vec4, depth uint32) {
	fb.color.Clear(color)
	fb.depth.Clear(depth)
}

func (fb *FrameBuffer) Width() int  { return fb.width }
func (fb *FrameBuffer) Height() int { return fb.height }

func (fb *FrameBuffer) Color() *RenderTarget[math.Vec4] { return fb.color }
func (fb *FrameBuffer) Depth() *RenderTarget[uint32]    { return fb.depth }
func (fb *FrameBuffer) Stripes() *StripeLocks           { return fb.stripes }
