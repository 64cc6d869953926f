package metadata

import (
	"github.com/google/uuid"
)

/**
 * @brief Indexed triangle geometry. Every three consecutive indices form a
 * triangle, vertices may be shared between triangles. A mesh is owned by
 * its creator and read concurrently while a draw call renders it, so it must
 * not be modified until that draw returns.
 */
type Mesh struct {
	ID       uuid.UUID
	Name     string
	Vertices []Vertex
	Indices  []uint32
}

// NewMesh copies nothing: the slices are referenced as they are.
func NewMesh(name string, vertices []Vertex, indices []uint32) *Mesh {
	return &Mesh{
		ID:       uuid.New(),
		Name:     name,
		Vertices: vertices,
		Indices:  indices,
	}
}

// TriangleCount is the number of complete index triples.
func (m *Mesh) TriangleCount() int {
	if m == nil {
		return 0
	}
	return len(m.Indices) / 3
}
