package renderer

import (
	"github.com/spaghettifunk/anima-soft/engine/math"
	"github.com/spaghettifunk/anima-soft/engine/renderer/metadata"
	"github.com/spaghettifunk/anima-soft/engine/renderer/software"
)

type RendererBackend interface {
	Initialize(appName string, appWidth, appHeight uint32) error
	Shutdown() error
	Resized(width, height uint32) error
	BeginFrame(deltaTime float64, clearColor math.Vec4) error
	Draw(dc metadata.DrawCall) error
	EndFrame(deltaTime float64) error
	FrameBuffer() *software.FrameBuffer
}

var _ RendererBackend = (*software.SoftwareRenderer)(nil)
