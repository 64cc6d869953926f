package software

import (
	"github.com/spaghettifunk/anima-soft/engine/renderer/metadata"
)

// MaxClippedTriangles bounds the output of clipping one triangle against
// the near and far planes.
const MaxClippedTriangles = 12

// ClippedTriangleList is an append-only list stored inline, so clipping
// never allocates.
type ClippedTriangleList struct {
	items [MaxClippedTriangles]metadata.Triangle
	n     int
}

// Push reports false and leaves the list untouched when it is full.
func (l *ClippedTriangleList) Push(tri metadata.Triangle) bool {
	if l.n == len(l.items) {
		return false
	}
	l.items[l.n] = tri
	l.n++
	return true
}

func (l *ClippedTriangleList) Len() int {
	return l.n
}

func (l *ClippedTriangleList) At(i int) metadata.Triangle {
	return l.items[i]
}

// Triangles returns a view of the stored triangles, valid until the next Push.
func (l *ClippedTriangleList) Triangles() []metadata.Triangle {
	return l.items[:l.n]
}

func (l *ClippedTriangleList) Reset() {
	l.n = 0
}
