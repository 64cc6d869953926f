package engine

import (
	"github.com/spaghettifunk/anima-soft/engine/renderer/components"
	"github.com/spaghettifunk/anima-soft/engine/renderer/metadata"
	"github.com/spaghettifunk/anima-soft/engine/systems"
)

// Game hooks into the engine loop. Every callback is optional.
type Game struct {
	ApplicationConfig *ApplicationConfig
	// Filled in by the engine before FnInitialize runs.
	Systems      *Systems
	State        interface{}
	FnInitialize Initialize
	FnUpdate     Update
	FnRender     Render
	FnOnResize   OnResize
	FnOnReload   OnReload
	FnShutdown   Shutdown
}

// Systems are the engine services a game may use.
type Systems struct {
	Meshes *systems.MeshSystem
	// Nil when the renderer draws on the frame goroutine.
	Jobs   *systems.JobSystem
	Camera *components.Camera
	Scene  *Scene
}

type Initialize func() error
type Update func(deltaTime float64) error
type Render func(packet *metadata.RenderPacket, deltaTime float64) error
type OnResize func(width uint32, height uint32) error
type OnReload func(config *ApplicationConfig) error
type Shutdown func() error
