package metadata

import (
	"github.com/spaghettifunk/anima-soft/engine/math"
)

/** @brief Everything drawn during one frame, in submission order. */
type RenderPacket struct {
	DeltaTime float64
	/** The color the frame is cleared to before any draw call. */
	ClearColor math.Vec4
	DrawCalls  []DrawCall
}

func (p *RenderPacket) Add(dc DrawCall) {
	p.DrawCalls = append(p.DrawCalls, dc)
}

func (p *RenderPacket) Reset() {
	p.DeltaTime = 0
	p.DrawCalls = p.DrawCalls[:0]
}
