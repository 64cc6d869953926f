package systems

import (
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/spaghettifunk/anima-soft/engine/core"
	"github.com/spaghettifunk/anima-soft/engine/math"
	"github.com/spaghettifunk/anima-soft/engine/renderer/metadata"
)

const (
	RectMeshName = "rect"
	CubeMeshName = "cube"
)

var (
	ErrMeshNotFound = errors.New("mesh not found")
	ErrMeshExists   = errors.New("mesh already registered")
	ErrInvalidMesh  = errors.New("invalid mesh")
)

// MeshSystem is the registry of meshes available to the scene, by name.
// Meshes handed out are shared and must be treated as read-only.
type MeshSystem struct {
	mu     sync.RWMutex
	byName map[string]*metadata.Mesh
	byID   map[uuid.UUID]*metadata.Mesh
}

// NewMeshSystem returns a registry holding the built-in rect and cube.
func NewMeshSystem() (*MeshSystem, error) {
	ms := &MeshSystem{
		byName: make(map[string]*metadata.Mesh),
		byID:   make(map[uuid.UUID]*metadata.Mesh),
	}
	for _, m := range []*metadata.Mesh{NewRectMesh(), NewCubeMesh()} {
		if err := ms.Register(m); err != nil {
			return nil, err
		}
	}
	return ms, nil
}

// Register validates mesh and makes it available under its name.
func (ms *MeshSystem) Register(mesh *metadata.Mesh) error {
	if err := ValidateMesh(mesh); err != nil {
		return err
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()
	if _, ok := ms.byName[mesh.Name]; ok {
		return errors.Wrapf(ErrMeshExists, "mesh %q", mesh.Name)
	}
	if mesh.ID == uuid.Nil {
		mesh.ID = uuid.New()
	}
	ms.byName[mesh.Name] = mesh
	ms.byID[mesh.ID] = mesh
	core.LogDebug("registered mesh '%s' (%s) with %d triangles", mesh.Name, mesh.ID, mesh.TriangleCount())
	return nil
}

func (ms *MeshSystem) Acquire(name string) (*metadata.Mesh, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	m, ok := ms.byName[name]
	if !ok {
		return nil, errors.Wrapf(ErrMeshNotFound, "mesh %q", name)
	}
	return m, nil
}

func (ms *MeshSystem) AcquireByID(id uuid.UUID) (*metadata.Mesh, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	m, ok := ms.byID[id]
	if !ok {
		return nil, errors.Wrapf(ErrMeshNotFound, "mesh %s", id)
	}
	return m, nil
}

// Names lists the registered meshes alphabetically.
func (ms *MeshSystem) Names() []string {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	names := make([]string, 0, len(ms.byName))
	for name := range ms.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (ms *MeshSystem) Shutdown() error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	clear(ms.byName)
	clear(ms.byID)
	return nil
}

// ValidateMesh checks the index buffer forms whole triangles within the
// vertex list.
func ValidateMesh(mesh *metadata.Mesh) error {
	if mesh == nil {
		return errors.Wrap(ErrInvalidMesh, "nil mesh")
	}
	if mesh.Name == "" {
		return errors.Wrap(ErrInvalidMesh, "mesh has no name")
	}
	if len(mesh.Indices)%3 != 0 {
		return errors.Wrapf(ErrInvalidMesh, "mesh %q has %d indices, not a multiple of 3", mesh.Name, len(mesh.Indices))
	}
	for i, index := range mesh.Indices {
		if int(index) >= len(mesh.Vertices) {
			return errors.Wrapf(ErrInvalidMesh, "mesh %q index %d points at vertex %d of %d", mesh.Name, i, index, len(mesh.Vertices))
		}
	}
	return nil
}

func vertex(x, y, z float32, color math.Vec4) metadata.Vertex {
	return metadata.NewVertex(math.NewVec4(x, y, z, 1), color)
}

// NewRectMesh is a unit square in the xy plane facing +z, one color per corner.
func NewRectMesh() *metadata.Mesh {
	return metadata.NewMesh(RectMeshName, []metadata.Vertex{
		vertex(-0.5, -0.5, 0, math.NewVec4(1, 0, 0, 1)),
		vertex(-0.5, 0.5, 0, math.NewVec4(0, 1, 0, 1)),
		vertex(0.5, -0.5, 0, math.NewVec4(0, 0, 1, 1)),
		vertex(0.5, 0.5, 0, math.NewVec4(0, 0, 0, 1)),
	}, []uint32{
		0, 2, 1,
		2, 3, 1,
	})
}

// NewCubeMesh is a cube spanning [-1,1] on every axis with one flat color
// per face. Faces wind counter-clockwise seen from outside.
func NewCubeMesh() *metadata.Mesh {
	var (
		cyan    = math.NewVec4(0, 1, 1, 1)
		red     = math.NewVec4(1, 0, 0, 1)
		magenta = math.NewVec4(1, 0, 1, 1)
		green   = math.NewVec4(0, 1, 0, 1)
		yellow  = math.NewVec4(1, 1, 0, 1)
		blue    = math.NewVec4(0, 0, 1, 1)
	)
	vertices := []metadata.Vertex{
		// -X face
		vertex(-1, -1, -1, cyan),
		vertex(-1, -1, 1, cyan),
		vertex(-1, 1, 1, cyan),
		vertex(-1, 1, -1, cyan),

		// +X face
		vertex(1, -1, 1, red),
		vertex(1, -1, -1, red),
		vertex(1, 1, -1, red),
		vertex(1, 1, 1, red),

		// -Y face
		vertex(-1, -1, -1, magenta),
		vertex(1, -1, -1, magenta),
		vertex(1, -1, 1, magenta),
		vertex(-1, -1, 1, magenta),

		// +Y face
		vertex(-1, 1, 1, green),
		vertex(1, 1, 1, green),
		vertex(1, 1, -1, green),
		vertex(-1, 1, -1, green),

		// -Z face
		vertex(1, -1, -1, yellow),
		vertex(-1, -1, -1, yellow),
		vertex(-1, 1, -1, yellow),
		vertex(1, 1, -1, yellow),

		// +Z face
		vertex(-1, -1, 1, blue),
		vertex(1, -1, 1, blue),
		vertex(1, 1, 1, blue),
		vertex(-1, 1, 1, blue),
	}

	indices := make([]uint32, 0, 36)
	for face := uint32(0); face < 6; face++ {
		base := face * 4
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}
	return metadata.NewMesh(CubeMeshName, vertices, indices)
}
