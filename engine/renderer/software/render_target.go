package software

import (
	"github.com/spaghettifunk/anima-soft/engine/core"
)

// RenderTarget is a row-major width x height grid of T.
type RenderTarget[T any] struct {
	width  int
	height int
	pixels []T
}

func NewRenderTarget[T any](width, height int, value T) *RenderTarget[T] {
	width = max(width, 0)
	height = max(height, 0)
	rt := &RenderTarget[T]{
		width:  width,
		height: height,
		pixels: make([]T, width*height),
	}
	rt.Clear(value)
	return rt
}

func (rt *RenderTarget[T]) Width() int  { return rt.width }
func (rt *RenderTarget[T]) Height() int { return rt.height }

// Clear sets every pixel to value.
func (rt *RenderTarget[T]) Clear(value T) {
	for i := range rt.pixels {
		rt.pixels[i] = value
	}
}

func (rt *RenderTarget[T]) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < rt.width && y < rt.height
}

func (rt *RenderTarget[T]) PixelIndex(x, y int) int {
	return y*rt.width + x
}

// GetPixel returns the zero value for coordinates outside the target.
func (rt *RenderTarget[T]) GetPixel(x, y int) T {
	if !rt.InBounds(x, y) {
		core.LogWarn("tried to read invalid pixel (%d, %d) of a %dx%d target", x, y, rt.width, rt.height)
		var zero T
		return zero
	}
	return rt.pixels[rt.PixelIndex(x, y)]
}

// SetPixel ignores coordinates outside the target.
func (rt *RenderTarget[T]) SetPixel(x, y int, value T) {
	if !rt.InBounds(x, y) {
		core.LogWarn("tried to assign invalid pixel (%d, %d) of a %dx%d target", x, y, rt.width, rt.height)
		return
	}
	rt.pixels[rt.PixelIndex(x, y)] = value
}

// At and Set skip the bounds check. index must come from PixelIndex of an
// in-bounds pixel.
func (rt *RenderTarget[T]) At(index int) T {
	return rt.pixels[index]
}

func (rt *RenderTarget[T]) Set(index int, value T) {
	rt.pixels[index] = value
}

// Pixels exposes the backing slice, row by row.
func (rt *RenderTarget[T]) Pixels() []T {
	return rt.pixels
}
