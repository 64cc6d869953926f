package engine

import (
	"github.com/spaghettifunk/anima-soft/engine/math"
	"github.com/spaghettifunk/anima-soft/engine/renderer/metadata"
)

type ApplicationConfig struct {
	// The application name, used in logs and as the output image base name.
	Name string `toml:"name" yaml:"name"`
	// Frame buffer width in pixels.
	Width uint32 `toml:"width" yaml:"width"`
	// Frame buffer height in pixels.
	Height   uint32 `toml:"height" yaml:"height"`
	LogLevel string `toml:"log_level" yaml:"log_level"`

	Renderer RendererConfig `toml:"renderer" yaml:"renderer"`
	Run      RunConfig      `toml:"run" yaml:"run"`
	Output   OutputConfig   `toml:"output" yaml:"output"`
	Camera   CameraConfig   `toml:"camera" yaml:"camera"`
	Objects  []ObjectConfig `toml:"objects" yaml:"objects"`
}

type RendererConfig struct {
	// Number of rasterizer workers. Zero draws every triangle on the frame goroutine.
	Workers   int `toml:"workers" yaml:"workers"`
	QueueSize int `toml:"queue_size" yaml:"queue_size"`
	// Number of depth buffer locks, zero picks the default.
	DepthStripes int        `toml:"depth_stripes" yaml:"depth_stripes"`
	ClearColor   [4]float32 `toml:"clear_color" yaml:"clear_color"`
}

type RunConfig struct {
	// Frames to render before stopping. Zero runs until cancelled.
	Frames    int     `toml:"frames" yaml:"frames"`
	TargetFPS float64 `toml:"target_fps" yaml:"target_fps"`
	// Reload the configuration file when it changes on disk.
	Watch bool `toml:"watch" yaml:"watch"`
}

type OutputConfig struct {
	// Image written after the last frame. Empty disables saving.
	Path  string `toml:"path" yaml:"path"`
	Scale int    `toml:"scale" yaml:"scale"`
	// Also save every N frames, numbering the files. Zero saves only at the end.
	Every int `toml:"every" yaml:"every"`
}

type CameraConfig struct {
	Position   [3]float32 `toml:"position" yaml:"position"`
	Target     [3]float32 `toml:"target" yaml:"target"`
	FovDegrees float32    `toml:"fov" yaml:"fov"`
	Near       float32    `toml:"near" yaml:"near"`
	Far        float32    `toml:"far" yaml:"far"`
	// Orbit speed around the world Y axis, in degrees per second.
	OrbitSpeed float32 `toml:"orbit_speed" yaml:"orbit_speed"`
}

// ObjectConfig places one registered mesh in the scene. Rotation and Spin are
// in degrees and degrees per second.
type ObjectConfig struct {
	Name         string                  `toml:"name" yaml:"name"`
	Mesh         string                  `toml:"mesh" yaml:"mesh"`
	Position     [3]float32              `toml:"position" yaml:"position"`
	Rotation     [3]float32              `toml:"rotation" yaml:"rotation"`
	Scale        [3]float32              `toml:"scale" yaml:"scale"`
	Spin         [3]float32              `toml:"spin" yaml:"spin"`
	Cull         *metadata.CullMode      `toml:"cull" yaml:"cull"`
	Depth        *metadata.DepthTestMode `toml:"depth" yaml:"depth"`
	WriteDepth   *bool                   `toml:"write_depth" yaml:"write_depth"`
	Checkerboard bool                    `toml:"checkerboard" yaml:"checkerboard"`
}

// DrawCall returns the draw call defaults overridden by the object settings.
func (oc ObjectConfig) DrawCall(mesh *metadata.Mesh, transform math.Mat4) metadata.DrawCall {
	dc := metadata.NewDrawCall(mesh, transform)
	if oc.Cull != nil {
		dc.Mode = *oc.Cull
	}
	if oc.Depth != nil {
		dc.DepthMode = *oc.Depth
	}
	if oc.WriteDepth != nil {
		dc.WriteDepth = *oc.WriteDepth
	}
	dc.DebugCheckerboard = oc.Checkerboard
	return dc
}

func (cc CameraConfig) PositionVec() math.Vec3 {
	return math.NewVec3(cc.Position[0], cc.Position[1], cc.Position[2])
}

func (cc CameraConfig) TargetVec() math.Vec3 {
	return math.NewVec3(cc.Target[0], cc.Target[1], cc.Target[2])
}

func (rc RendererConfig) ClearColorVec() math.Vec4 {
	return math.NewVec4(rc.ClearColor[0], rc.ClearColor[1], rc.ClearColor[2], rc.ClearColor[3])
}
