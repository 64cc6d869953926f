package systems

import (
	"errors"
	"slices"
	"testing"

	"github.com/google/uuid"

	"github.com/spaghettifunk/anima-soft/engine/math"
	"github.com/spaghettifunk/anima-soft/engine/renderer/metadata"
)

func TestMeshSystemBuiltins(t *testing.T) {
	ms, err := NewMeshSystem()
	if err != nil {
		t.Fatal(err)
	}
	if got := ms.Names(); !slices.Equal(got, []string{CubeMeshName, RectMeshName}) {
		t.Errorf("Names = %v", got)
	}

	cube, err := ms.Acquire(CubeMeshName)
	if err != nil {
		t.Fatal(err)
	}
	if len(cube.Vertices) != 24 || cube.TriangleCount() != 12 {
		t.Errorf("cube has %d vertices and %d triangles", len(cube.Vertices), cube.TriangleCount())
	}
	if cube.ID == uuid.Nil {
		t.Error("cube should have an id")
	}
	byID, err := ms.AcquireByID(cube.ID)
	if err != nil || byID != cube {
		t.Errorf("AcquireByID = %v, %v", byID, err)
	}
}

// faceNormal is the object space normal implied by the winding of triangle i.
func faceNormal(m *metadata.Mesh, i int) (math.Vec3, math.Vec3) {
	p0 := m.Vertices[m.Indices[i*3]].Position.ToVec3()
	p1 := m.Vertices[m.Indices[i*3+1]].Position.ToVec3()
	p2 := m.Vertices[m.Indices[i*3+2]].Position.ToVec3()
	centroid := p0.Add(p1).Add(p2).MulScalar(1.0 / 3)
	return p1.Sub(p0).Cross(p2.Sub(p0)), centroid
}

func TestCubeWindsOutward(t *testing.T) {
	cube := NewCubeMesh()
	for i := 0; i < cube.TriangleCount(); i++ {
		n, c := faceNormal(cube, i)
		if n.Dot(c) <= 0 {
			t.Errorf("triangle %d faces inward (normal %v, centroid %v)", i, n, c)
		}
	}
}

func TestRectFacesPositiveZ(t *testing.T) {
	rect := NewRectMesh()
	for i := 0; i < rect.TriangleCount(); i++ {
		if n, _ := faceNormal(rect, i); n.Z <= 0 {
			t.Errorf("triangle %d normal %v, want +z", i, n)
		}
	}
}

func TestMeshSystemRegister(t *testing.T) {
	ms, _ := NewMeshSystem()

	tri := metadata.NewMesh("tri", []metadata.Vertex{
		vertex(0, 0, 0, math.NewVec4One()),
		vertex(1, 0, 0, math.NewVec4One()),
		vertex(0, 1, 0, math.NewVec4One()),
	}, []uint32{0, 1, 2})
	if err := ms.Register(tri); err != nil {
		t.Fatal(err)
	}
	if err := ms.Register(tri); !errors.Is(err, ErrMeshExists) {
		t.Errorf("duplicate Register = %v, want ErrMeshExists", err)
	}
	if _, err := ms.Acquire("missing"); !errors.Is(err, ErrMeshNotFound) {
		t.Errorf("Acquire(missing) = %v, want ErrMeshNotFound", err)
	}

	if err := ms.Shutdown(); err != nil {
		t.Fatal(err)
	}
	if len(ms.Names()) != 0 {
		t.Error("Shutdown should drop every mesh")
	}
}

func TestValidateMesh(t *testing.T) {
	v := []metadata.Vertex{vertex(0, 0, 0, math.NewVec4One())}
	tests := []struct {
		name string
		mesh *metadata.Mesh
	}{
		{"nil", nil},
		{"unnamed", &metadata.Mesh{Vertices: v, Indices: []uint32{0, 0, 0}}},
		{"partial triangle", metadata.NewMesh("partial", v, []uint32{0, 0})},
		{"index out of range", metadata.NewMesh("range", v, []uint32{0, 0, 1})},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := ValidateMesh(tc.mesh); !errors.Is(err, ErrInvalidMesh) {
				t.Errorf("ValidateMesh = %v, want ErrInvalidMesh", err)
			}
		})
	}
}
