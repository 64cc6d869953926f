package testbed

import (
	"github.com/spaghettifunk/anima-soft/engine"
	"github.com/spaghettifunk/anima-soft/engine/core"
	"github.com/spaghettifunk/anima-soft/engine/math"
	"github.com/spaghettifunk/anima-soft/engine/renderer/components"
	"github.com/spaghettifunk/anima-soft/engine/renderer/metadata"
	"github.com/spaghettifunk/anima-soft/engine/systems"
)

type TestGame struct {
	*engine.Game
}

type gameState struct {
	WorldCamera *components.Camera

	width  uint32
	height uint32

	// checkerboard floor under the configured scene
	floorMesh      *metadata.Mesh
	floorTransform *math.Transform
	showFloor      bool

	frames uint64
}

func NewTestGame(config *engine.ApplicationConfig) (*TestGame, error) {
	if config == nil {
		config = engine.DefaultConfig()
	}
	tg := &TestGame{
		Game: &engine.Game{
			ApplicationConfig: config,
			State: &gameState{
				showFloor: true,
			},
		},
	}

	tg.FnInitialize = tg.Initialize
	tg.FnUpdate = tg.Update
	tg.FnRender = tg.Render
	tg.FnOnResize = tg.OnResize
	tg.FnOnReload = tg.OnReload
	tg.FnShutdown = tg.Shutdown

	return tg, nil
}

func (g *TestGame) Initialize() error {
	core.LogDebug("initializing testbed...")
	state := g.State.(*gameState)

	state.WorldCamera = g.Systems.Camera

	floor, err := g.Systems.Meshes.Acquire(systems.RectMeshName)
	if err != nil {
		return err
	}
	state.floorMesh = floor
	// The rect faces +z, lay it flat facing up.
	state.floorTransform = math.TransformFromPositionRotationScale(
		math.NewVec3(0, -1, 0),
		math.NewQuatFromAxisAngle(math.NewVec3(1, 0, 0), -math.K_HALF_PI, true),
		math.NewVec3(6, 6, 1),
	)
	return nil
}

func (g *TestGame) Update(deltaTime float64) error {
	state := g.State.(*gameState)
	state.frames++

	speed := g.ApplicationConfig.Camera.OrbitSpeed
	if speed != 0 {
		state.WorldCamera.Orbit(math.DegToRad(speed) * float32(deltaTime))
	}
	return nil
}

func (g *TestGame) Render(packet *metadata.RenderPacket, deltaTime float64) error {
	state := g.State.(*gameState)
	if !state.showFloor {
		return nil
	}

	dc := metadata.NewDrawCall(state.floorMesh, state.floorTransform.GetWorld().Mul(state.WorldCamera.ViewProjection()))
	dc.DebugCheckerboard = true
	packet.Add(dc)
	return nil
}

func (g *TestGame) OnResize(width uint32, height uint32) error {
	state := g.State.(*gameState)
	state.width = width
	state.height = height
	core.LogDebug("testbed frame size %dx%d", width, height)
	return nil
}

func (g *TestGame) OnReload(config *engine.ApplicationConfig) error {
	core.LogInfo("testbed reloaded with %d objects", len(config.Objects))
	return nil
}

func (g *TestGame) Shutdown() error {
	state := g.State.(*gameState)
	core.LogInfo("testbed rendered %d frames", state.frames)
	return nil
}
