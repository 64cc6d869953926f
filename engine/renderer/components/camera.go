package components

import (
	"github.com/spaghettifunk/anima-soft/engine/math"
)

/**
 * @brief A perspective camera looking from Position at Target. The view and
 * projection matrices are rebuilt lazily whenever a setter marks them dirty.
 */
type Camera struct {
	/**
	 * @brief The position of this camera.
	 * NOTE: Do not set this directly, use SetPosition() instead
	 * so the view matrix is recalculated when needed.
	 */
	Position math.Vec3
	/** @brief The point the camera looks at. */
	Target math.Vec3
	Up     math.Vec3

	FovRadians  float32
	AspectRatio float32
	NearClip    float32
	FarClip     float32

	/** @brief Internal flag used to determine when the view matrix needs to be rebuilt. */
	IsDirty           bool
	isProjectionDirty bool

	viewMatrix       math.Mat4
	projectionMatrix math.Mat4
}

/** @brief The name of the default camera. */
const DEFAULT_CAMERA_NAME string = "default"

const (
	DefaultFovDegrees = 60.0
	DefaultNearClip   = 0.1
	DefaultFarClip    = 100.0
)

func NewCamera() *Camera {
	camera := &Camera{}
	camera.Reset()
	return camera
}

// Reset places the camera at (0,0,5) looking at the origin.
func (c *Camera) Reset() {
	c.Position = math.NewVec3(0, 0, 5)
	c.Target = math.NewVec3Zero()
	c.Up = math.NewVec3Up()
	c.FovRadians = math.DegToRad(DefaultFovDegrees)
	c.AspectRatio = 1
	c.NearClip = DefaultNearClip
	c.FarClip = DefaultFarClip
	c.IsDirty = true
	c.isProjectionDirty = true
}

func (c *Camera) GetPosition() math.Vec3 {
	return c.Position
}

func (c *Camera) SetPosition(position math.Vec3) {
	c.Position = position
	c.IsDirty = true
}

func (c *Camera) SetTarget(target math.Vec3) {
	c.Target = target
	c.IsDirty = true
}

func (c *Camera) SetPerspective(fovRadians, aspectRatio, nearClip, farClip float32) {
	c.FovRadians = fovRadians
	c.AspectRatio = aspectRatio
	c.NearClip = nearClip
	c.FarClip = farClip
	c.isProjectionDirty = true
}

func (c *Camera) SetAspectRatio(aspectRatio float32) {
	c.AspectRatio = aspectRatio
	c.isProjectionDirty = true
}

func (c *Camera) GetView() math.Mat4 {
	if c.IsDirty {
		c.viewMatrix = math.NewMat4LookAt(c.Position, c.Target, c.Up)
		c.IsDirty = false
	}
	return c.viewMatrix
}

func (c *Camera) GetProjection() math.Mat4 {
	if c.isProjectionDirty {
		c.projectionMatrix = math.NewMat4Perspective(c.FovRadians, c.AspectRatio, c.NearClip, c.FarClip)
		c.isProjectionDirty = false
	}
	return c.projectionMatrix
}

// ViewProjection takes world space points to clip space.
func (c *Camera) ViewProjection() math.Mat4 {
	return c.GetView().Mul(c.GetProjection())
}

func (c *Camera) Forward() math.Vec3 {
	return c.Target.Sub(c.Position).Normalized()
}

func (c *Camera) Right() math.Vec3 {
	return c.Forward().Cross(c.Up).Normalized()
}

// MoveForward moves both the camera and its target.
func (c *Camera) MoveForward(amount float32) {
	c.translate(c.Forward().MulScalar(amount))
}

func (c *Camera) MoveRight(amount float32) {
	c.translate(c.Right().MulScalar(amount))
}

func (c *Camera) MoveUp(amount float32) {
	c.translate(math.NewVec3Up().MulScalar(amount))
}

func (c *Camera) translate(offset math.Vec3) {
	c.Position = c.Position.Add(offset)
	c.Target = c.Target.Add(offset)
	c.IsDirty = true
}

// Orbit rotates the camera position around the target about the world y axis.
func (c *Camera) Orbit(angleRadians float32) {
	offset := c.Position.Sub(c.Target).Transform(math.NewMat4EulerY(angleRadians))
	c.Position = c.Target.Add(offset)
	c.IsDirty = true
}
