package renderer

import (
	"github.com/pkg/errors"

	"github.com/spaghettifunk/anima-soft/engine/core"
	"github.com/spaghettifunk/anima-soft/engine/renderer/metadata"
	"github.com/spaghettifunk/anima-soft/engine/renderer/software"
	"github.com/spaghettifunk/anima-soft/engine/renderer/views"
)

type RendererType uint8

const (
	Software RendererType = iota
)

// Renderer runs frames through a backend and presents the result on an
// optional image view.
type Renderer struct {
	backend RendererBackend
	view    *views.ImageView
}

func New(backend RendererBackend, view *views.ImageView) *Renderer {
	return &Renderer{backend: backend, view: view}
}

// NewSoftware builds a renderer on the CPU backend.
func NewSoftware(jobs software.JobQueue, depthStripes int, view *views.ImageView) *Renderer {
	return New(software.New(jobs, depthStripes), view)
}

func (r *Renderer) Initialize(appName string, appWidth, appHeight uint32) error {
	return r.backend.Initialize(appName, appWidth, appHeight)
}

func (r *Renderer) Shutdown() error {
	return r.backend.Shutdown()
}

func (r *Renderer) OnResize(width, height uint32) error {
	return r.backend.Resized(width, height)
}

// SetView replaces the presentation target, nil disables presentation.
func (r *Renderer) SetView(view *views.ImageView) {
	r.view = view
}

func (r *Renderer) View() *views.ImageView {
	return r.view
}

func (r *Renderer) FrameBuffer() *software.FrameBuffer {
	return r.backend.FrameBuffer()
}

// DrawFrame clears the frame, issues every draw call of the packet in order
// and presents the result. A failing draw call is logged and skipped.
func (r *Renderer) DrawFrame(renderPacket *metadata.RenderPacket) error {
	if err := r.backend.BeginFrame(renderPacket.DeltaTime, renderPacket.ClearColor); err != nil {
		core.LogError(err.Error())
		return errors.Wrap(err, "begin frame")
	}
	for i, dc := range renderPacket.DrawCalls {
		if err := r.backend.Draw(dc); err != nil {
			core.LogError("draw call %d failed: %s", i, err)
		}
	}
	if err := r.backend.EndFrame(renderPacket.DeltaTime); err != nil {
		core.LogError("RendererEndFrame failed. Application shutting down...")
		return errors.Wrap(err, "end frame")
	}
	if r.view != nil {
		r.view.CopyFrameBuffer(r.backend.FrameBuffer())
	}
	return nil
}
