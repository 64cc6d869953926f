package metadata

import (
	"github.com/spaghettifunk/anima-soft/engine/math"
)

/**
 * @brief A single corner of a triangle. Position is homogeneous: object space
 * while it sits in a mesh, clip space once the draw call transform is applied.
 * Color is linear and unpremultiplied.
 */
type Vertex struct {
	Position math.Vec4
	Color    math.Vec4
}

func NewVertex(position, color math.Vec4) Vertex {
	return Vertex{Position: position, Color: color}
}

// Lerp interpolates position and color towards other with the same t.
func (v Vertex) Lerp(other Vertex, t float32) Vertex {
	return Vertex{
		Position: v.Position.Lerp(other.Position, t),
		Color:    v.Color.Lerp(other.Color, t),
	}
}

/** @brief Three ordered vertices. The winding is derived once projected. */
type Triangle [3]Vertex
