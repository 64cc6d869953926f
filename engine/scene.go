package engine

import (
	"github.com/pkg/errors"

	"github.com/spaghettifunk/anima-soft/engine/math"
	"github.com/spaghettifunk/anima-soft/engine/renderer/metadata"
	"github.com/spaghettifunk/anima-soft/engine/systems"
)

type SceneObject struct {
	Name      string
	Mesh      *metadata.Mesh
	Transform *math.Transform
	// Spin in radians per second around x, y and z.
	Spin   math.Vec3
	config ObjectConfig
}

// Scene is the list of objects built from the configuration, drawn in order.
type Scene struct {
	Objects []*SceneObject
}

// NewScene resolves every object mesh by name through the mesh system.
func NewScene(objects []ObjectConfig, meshes *systems.MeshSystem) (*Scene, error) {
	scene := &Scene{Objects: make([]*SceneObject, 0, len(objects))}
	for i, oc := range objects {
		mesh, err := meshes.Acquire(oc.Mesh)
		if err != nil {
			return nil, errors.Wrapf(err, "object %d (%s)", i, oc.Name)
		}
		rotation := math.NewQuatFromEuler(
			math.DegToRad(oc.Rotation[0]),
			math.DegToRad(oc.Rotation[1]),
			math.DegToRad(oc.Rotation[2]),
		)
		scene.Objects = append(scene.Objects, &SceneObject{
			Name: oc.Name,
			Mesh: mesh,
			Transform: math.TransformFromPositionRotationScale(
				math.NewVec3(oc.Position[0], oc.Position[1], oc.Position[2]),
				rotation,
				math.NewVec3(oc.Scale[0], oc.Scale[1], oc.Scale[2]),
			),
			Spin: math.NewVec3(
				math.DegToRad(oc.Spin[0]),
				math.DegToRad(oc.Spin[1]),
				math.DegToRad(oc.Spin[2]),
			),
			config: oc,
		})
	}
	return scene, nil
}

// Update advances the spin of every object by deltaTime seconds.
func (s *Scene) Update(deltaTime float64) {
	dt := float32(deltaTime)
	for _, obj := range s.Objects {
		if obj.Spin == math.NewVec3Zero() {
			continue
		}
		obj.Transform.Rotate(math.NewQuatFromEuler(obj.Spin.X*dt, obj.Spin.Y*dt, obj.Spin.Z*dt))
	}
}

// Render adds one draw call per object, projected by viewProjection.
func (s *Scene) Render(packet *metadata.RenderPacket, viewProjection math.Mat4) {
	for _, obj := range s.Objects {
		model := obj.Transform.GetWorld()
		packet.Add(obj.config.DrawCall(obj.Mesh, model.Mul(viewProjection)))
	}
}

func (s *Scene) Find(name string) *SceneObject {
	for _, obj := range s.Objects {
		if obj.Name == name {
			return obj
		}
	}
	return nil
}
