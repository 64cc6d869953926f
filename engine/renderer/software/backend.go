package software

import (
	"github.com/pkg/errors"

	"github.com/spaghettifunk/anima-soft/engine/core"
	"github.com/spaghettifunk/anima-soft/engine/math"
	"github.com/spaghettifunk/anima-soft/engine/renderer/metadata"
)

var (
	ErrInvalidSize     = errors.New("frame buffer size must be positive")
	ErrFrameInProgress = errors.New("a frame is in progress")
	ErrNoFrame         = errors.New("no frame in progress")
)

// SoftwareRenderer draws frames into a FrameBuffer on the CPU.
type SoftwareRenderer struct {
	FrameNumber uint64

	jobs        JobQueue
	stripes     int
	frameBuffer *FrameBuffer
	viewport    Viewport
	inFrame     bool
}

// New returns a renderer that fans triangles out to jobs, which may be nil.
// stripes <= 0 selects DefaultDepthStripes.
func New(jobs JobQueue, stripes int) *SoftwareRenderer {
	if stripes <= 0 {
		stripes = DefaultDepthStripes
	}
	return &SoftwareRenderer{
		jobs:    jobs,
		stripes: stripes,
	}
}

func (sr *SoftwareRenderer) Initialize(appName string, appWidth, appHeight uint32) error {
	if err := sr.allocate(appWidth, appHeight); err != nil {
		return err
	}
	core.LogInfo("software renderer for %s initialized at %dx%d with %d depth stripes", appName, appWidth, appHeight, sr.stripes)
	return nil
}

func (sr *SoftwareRenderer) allocate(width, height uint32) error {
	if width == 0 || height == 0 {
		return errors.Wrapf(ErrInvalidSize, "%dx%d", width, height)
	}
	sr.frameBuffer = NewFrameBuffer(int(width), int(height), WithDepthStripes(sr.stripes))
	sr.viewport = NewFullViewport(int(width), int(height))
	return nil
}

func (sr *SoftwareRenderer) Shutdown() error {
	sr.frameBuffer = nil
	return nil
}

// Resized replaces the frame buffer. The previous content is lost.
func (sr *SoftwareRenderer) Resized(width, height uint32) error {
	if sr.inFrame {
		return ErrFrameInProgress
	}
	return sr.allocate(width, height)
}

// BeginFrame clears color to clearColor and depth to DepthFar.
func (sr *SoftwareRenderer) BeginFrame(deltaTime float64, clearColor math.Vec4) error {
	if sr.frameBuffer == nil {
		return core.ErrNotInitialized
	}
	if sr.inFrame {
		return ErrFrameInProgress
	}
	sr.frameBuffer.Clear(clearColor, DepthFar)
	sr.inFrame = true
	return nil
}

func (sr *SoftwareRenderer) Draw(dc metadata.DrawCall) error {
	if !sr.inFrame {
		return ErrNoFrame
	}
	return Draw(sr.viewport, sr.frameBuffer, dc, sr.jobs)
}

func (sr *SoftwareRenderer) EndFrame(deltaTime float64) error {
	if !sr.inFrame {
		return ErrNoFrame
	}
	sr.inFrame = false
	sr.FrameNumber++
	return nil
}

func (sr *SoftwareRenderer) FrameBuffer() *FrameBuffer {
	return sr.frameBuffer
}

func (sr *SoftwareRenderer) Viewport() Viewport {
	return sr.viewport
}
