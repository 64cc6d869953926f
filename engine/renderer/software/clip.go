package software

import (
	"github.com/spaghettifunk/anima-soft/engine/core"
	"github.com/spaghettifunk/anima-soft/engine/math"
	"github.com/spaghettifunk/anima-soft/engine/renderer/metadata"
)

var (
	// NearPlane keeps points with z >= -w.
	NearPlane = math.NewVec4(0, 0, 1, 1)
	// FarPlane keeps points with z <= w.
	FarPlane = math.NewVec4(0, 0, -1, 1)
)

// ClipIntersectEdge returns the point where the edge v0-v1 crosses the plane,
// given the signed distances of both ends. Color follows the same t.
func ClipIntersectEdge(v0, v1 metadata.Vertex, value0, value1 float32) metadata.Vertex {
	t := value0 / (value0 - value1)
	return v0.Lerp(v1, t)
}

// clipCase re-triangulates the part of tri inside the plane. Bit i of the
// table index is set when vertex i is outside.
type clipCase func(tri *metadata.Triangle, d *[3]float32, out *ClippedTriangleList)

var clipCases = [8]clipCase{
	0b000: clipInside,
	0b001: clipOut0,
	0b010: clipOut1,
	0b011: clipOut01,
	0b100: clipOut2,
	0b101: clipOut02,
	0b110: clipOut12,
	0b111: clipOutside,
}

// edge returns the crossing point on the edge going from vertex a to b.
func edge(tri *metadata.Triangle, d *[3]float32, a, b int) metadata.Vertex {
	return ClipIntersectEdge(tri[a], tri[b], d[a], d[b])
}

func push(out *ClippedTriangleList, tri metadata.Triangle) {
	if !out.Push(tri) {
		core.LogError("clipped triangle list overflow, dropping triangle")
	}
}

func clipInside(tri *metadata.Triangle, _ *[3]float32, out *ClippedTriangleList) {
	push(out, *tri)
}

func clipOutside(*metadata.Triangle, *[3]float32, *ClippedTriangleList) {}

func clipOut0(tri *metadata.Triangle, d *[3]float32, out *ClippedTriangleList) {
	v01 := edge(tri, d, 0, 1)
	v02 := edge(tri, d, 0, 2)
	push(out, metadata.Triangle{v01, tri[1], tri[2]})
	push(out, metadata.Triangle{v01, tri[2], v02})
}

func clipOut1(tri *metadata.Triangle, d *[3]float32, out *ClippedTriangleList) {
	v10 := edge(tri, d, 1, 0)
	v12 := edge(tri, d, 1, 2)
	push(out, metadata.Triangle{tri[0], v10, tri[2]})
	push(out, metadata.Triangle{tri[2], v10, v12})
}

func clipOut01(tri *metadata.Triangle, d *[3]float32, out *ClippedTriangleList) {
	v02 := edge(tri, d, 0, 2)
	v12 := edge(tri, d, 1, 2)
	push(out, metadata.Triangle{v02, v12, tri[2]})
}

func clipOut2(tri *metadata.Triangle, d *[3]float32, out *ClippedTriangleList) {
	v20 := edge(tri, d, 2, 0)
	v21 := edge(tri, d, 2, 1)
	push(out, metadata.Triangle{tri[0], tri[1], v20})
	push(out, metadata.Triangle{v20, tri[1], v21})
}

func clipOut02(tri *metadata.Triangle, d *[3]float32, out *ClippedTriangleList) {
	v01 := edge(tri, d, 0, 1)
	v21 := edge(tri, d, 2, 1)
	push(out, metadata.Triangle{v01, tri[1], v21})
}

func clipOut12(tri *metadata.Triangle, d *[3]float32, out *ClippedTriangleList) {
	v10 := edge(tri, d, 1, 0)
	v20 := edge(tri, d, 2, 0)
	push(out, metadata.Triangle{tri[0], v10, v20})
}

// ClipTriangleAgainst appends to out the part of tri with
// dot(position, plane) >= 0, keeping the winding of tri.
func ClipTriangleAgainst(tri metadata.Triangle, plane math.Vec4, out *ClippedTriangleList) {
	var d [3]float32
	var mask uint8
	for i := range tri {
		d[i] = tri[i].Position.Dot(plane)
		if d[i] < 0 {
			mask |= 1 << i
		}
	}
	clipCases[mask](&tri, &d, out)
}

// ClipTriangle clips tri against the near plane, then every resulting
// triangle against the far plane.
func ClipTriangle(tri metadata.Triangle) ClippedTriangleList {
	var near, result ClippedTriangleList
	ClipTriangleAgainst(tri, NearPlane, &near)
	for _, t := range near.Triangles() {
		ClipTriangleAgainst(t, FarPlane, &result)
	}
	return result
}
