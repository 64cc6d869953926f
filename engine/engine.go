package engine

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/spaghettifunk/anima-soft/engine/assets"
	"github.com/spaghettifunk/anima-soft/engine/core"
	"github.com/spaghettifunk/anima-soft/engine/math"
	"github.com/spaghettifunk/anima-soft/engine/renderer"
	"github.com/spaghettifunk/anima-soft/engine/renderer/components"
	"github.com/spaghettifunk/anima-soft/engine/renderer/metadata"
	"github.com/spaghettifunk/anima-soft/engine/renderer/software"
	"github.com/spaghettifunk/anima-soft/engine/renderer/views"
	"github.com/spaghettifunk/anima-soft/engine/systems"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

type Engine struct {
	currentStage Stage
	gameInstance *Game
	config       *ApplicationConfig
	configPath   string
	runID        uuid.UUID

	jobSystem  *systems.JobSystem
	meshSystem *systems.MeshSystem
	renderer   *renderer.Renderer
	camera     *components.Camera
	scene      *Scene
	watcher    *assets.Watcher
	reloads    chan *ApplicationConfig

	clock  *core.Clock
	frames *core.FrameCounter
}

// New prepares an engine for g. configPath is only used to watch for
// changes and may be empty.
func New(g *Game, configPath string) (*Engine, error) {
	if g == nil {
		return nil, errors.New("engine needs a game instance")
	}
	if g.ApplicationConfig == nil {
		g.ApplicationConfig = DefaultConfig()
	}
	if err := g.ApplicationConfig.Validate(); err != nil {
		core.LogError(err.Error())
		return nil, err
	}
	return &Engine{
		currentStage: EngineStageUninitialized,
		gameInstance: g,
		config:       g.ApplicationConfig,
		configPath:   configPath,
		runID:        uuid.New(),
		reloads:      make(chan *ApplicationConfig, 1),
		clock:        core.NewClock(),
		frames:       core.NewFrameCounter(),
	}, nil
}

func (e *Engine) Initialize() error {
	if e.currentStage != EngineStageUninitialized {
		return core.ErrAlreadyInitialized
	}
	e.currentStage = EngineStageInitializing
	cfg := e.config

	level, _ := core.ParseLogLevel(cfg.LogLevel)
	core.SetLogLevel(level)
	core.LogInfo("starting %s, run %s", cfg.Name, e.runID)

	var jobs software.JobQueue
	if cfg.Renderer.Workers > 0 {
		js, err := systems.NewJobSystem(cfg.Renderer.Workers, cfg.Renderer.QueueSize)
		if err != nil {
			return errors.Wrap(err, "job system")
		}
		if err := js.Start(); err != nil {
			return errors.Wrap(err, "job system")
		}
		e.jobSystem = js
		jobs = js
	}

	ms, err := systems.NewMeshSystem()
	if err != nil {
		return errors.Wrap(err, "mesh system")
	}
	e.meshSystem = ms

	view, err := views.NewImageViewRGBA(int(cfg.Width), int(cfg.Height))
	if err != nil {
		return errors.Wrap(err, "image view")
	}
	e.renderer = renderer.NewSoftware(jobs, cfg.Renderer.DepthStripes, view)
	if err := e.renderer.Initialize(cfg.Name, cfg.Width, cfg.Height); err != nil {
		return errors.Wrap(err, "renderer")
	}

	e.camera = components.NewCamera()
	configureCamera(e.camera, cfg)

	scene, err := NewScene(cfg.Objects, e.meshSystem)
	if err != nil {
		return errors.Wrap(err, "scene")
	}
	e.scene = scene

	if cfg.Run.Watch && e.configPath != "" {
		w, err := assets.NewWatcher(e.onConfigChanged, assets.DefaultDebounce)
		if err != nil {
			return err
		}
		if err := w.Add(e.configPath); err != nil {
			w.Close()
			return err
		}
		e.watcher = w
		core.LogInfo("watching %s for changes", e.configPath)
	}

	e.gameInstance.Systems = &Systems{
		Meshes: e.meshSystem,
		Jobs:   e.jobSystem,
		Camera: e.camera,
		Scene:  e.scene,
	}
	if fn := e.gameInstance.FnInitialize; fn != nil {
		if err := fn(); err != nil {
			return err
		}
	}
	if fn := e.gameInstance.FnOnResize; fn != nil {
		if err := fn(cfg.Width, cfg.Height); err != nil {
			return err
		}
	}

	e.currentStage = EngineStageInitialized
	return nil
}

// Run renders frames until the configured frame count is reached or ctx is
// cancelled, then saves the output image.
func (e *Engine) Run(ctx context.Context) error {
	if e.currentStage != EngineStageInitialized {
		return core.ErrNotInitialized
	}
	e.currentStage = EngineStageRunning
	defer func() { e.currentStage = EngineStageInitialized }()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(runCtx)
	if e.watcher != nil {
		g.Go(func() error {
			return e.watcher.Run(gctx)
		})
	}
	g.Go(func() error {
		// the watcher stops with the frame loop
		defer cancel()
		return e.loop(gctx)
	})
	return g.Wait()
}

func (e *Engine) loop(ctx context.Context) error {
	e.clock.Start()
	e.clock.Update()
	lastTime := e.clock.Elapsed()

	packet := &metadata.RenderPacket{}
	for frame := 1; e.config.Run.Frames == 0 || frame <= e.config.Run.Frames; frame++ {
		select {
		case <-ctx.Done():
			core.LogInfo("run cancelled after %d frames", frame-1)
			return e.finish()
		case cfg := <-e.reloads:
			if err := e.applyConfig(cfg); err != nil {
				core.LogError("config reload failed, keeping the current one: %s", err)
			}
		default:
		}

		e.clock.Update()
		currentTime := e.clock.Elapsed()
		delta := (currentTime - lastTime).Seconds()
		lastTime = currentTime

		frameStart := time.Now()
		if err := e.frame(packet, delta); err != nil {
			return err
		}
		frameTime := time.Since(frameStart)
		e.frames.Update(frameTime)

		if every := e.config.Output.Every; every > 0 && frame%every == 0 {
			if err := e.save(numberedPath(e.config.Output.Path, frame)); err != nil {
				core.LogError(err.Error())
			}
		}

		if !e.waitForNextFrame(ctx, frameTime) {
			core.LogInfo("run cancelled after %d frames", frame)
			return e.finish()
		}
	}
	return e.finish()
}

func (e *Engine) frame(packet *metadata.RenderPacket, delta float64) error {
	e.scene.Update(delta)
	if fn := e.gameInstance.FnUpdate; fn != nil {
		if err := fn(delta); err != nil {
			core.LogError("Game update failed, shutting down.")
			return errors.Wrap(err, "game update")
		}
	}

	packet.Reset()
	packet.DeltaTime = delta
	packet.ClearColor = e.config.Renderer.ClearColorVec()
	e.scene.Render(packet, e.camera.ViewProjection())
	if fn := e.gameInstance.FnRender; fn != nil {
		if err := fn(packet, delta); err != nil {
			core.LogError("Game render failed, shutting down.")
			return errors.Wrap(err, "game render")
		}
	}
	return e.renderer.DrawFrame(packet)
}

// waitForNextFrame sleeps out the rest of the frame budget. It returns false
// when ctx is done first.
func (e *Engine) waitForNextFrame(ctx context.Context, frameTime time.Duration) bool {
	if e.config.Run.TargetFPS <= 0 {
		return true
	}
	targetFrameTime := time.Duration(float64(time.Second) / e.config.Run.TargetFPS)
	remaining := targetFrameTime - frameTime
	if remaining <= 0 {
		return true
	}
	select {
	case <-ctx.Done():
		return false
	case <-time.After(remaining):
		return true
	}
}

func (e *Engine) finish() error {
	core.LogInfo("%d frames, average frame time %s, %.1f fps",
		e.frames.Frames(), e.frames.Average(), e.frames.FPS())
	if e.frames.Frames() == 0 {
		return nil
	}
	return e.save(e.config.Output.Path)
}

func (e *Engine) save(path string) error {
	if path == "" {
		return nil
	}
	view := e.renderer.View()
	if view == nil {
		return nil
	}
	if err := view.Save(path, e.config.Output.Scale); err != nil {
		return errors.Wrap(err, "saving frame")
	}
	core.LogInfo("frame saved to %s", path)
	return nil
}

// onConfigChanged runs on the watcher goroutine. Only the newest valid
// configuration is kept for the frame loop.
func (e *Engine) onConfigChanged(path string) {
	cfg, err := LoadConfig(path)
	if err != nil {
		core.LogError("ignoring config change: %s", err)
		return
	}
	select {
	case e.reloads <- cfg:
	default:
		select {
		case <-e.reloads:
		default:
		}
		e.reloads <- cfg
	}
}

// applyConfig switches to cfg between two frames. The worker pool keeps the
// size it was started with.
func (e *Engine) applyConfig(cfg *ApplicationConfig) error {
	scene, err := NewScene(cfg.Objects, e.meshSystem)
	if err != nil {
		return err
	}

	if cfg.Renderer.Workers != e.config.Renderer.Workers ||
		cfg.Renderer.QueueSize != e.config.Renderer.QueueSize ||
		cfg.Renderer.DepthStripes != e.config.Renderer.DepthStripes {
		core.LogWarn("renderer worker settings only apply on restart")
	}

	if cfg.Width != e.config.Width || cfg.Height != e.config.Height {
		if err := e.resize(cfg.Width, cfg.Height); err != nil {
			return err
		}
	}

	level, _ := core.ParseLogLevel(cfg.LogLevel)
	core.SetLogLevel(level)
	configureCamera(e.camera, cfg)

	e.scene = scene
	e.config = cfg
	e.gameInstance.ApplicationConfig = cfg
	e.gameInstance.Systems.Scene = scene
	core.LogInfo("configuration reloaded, %d objects", len(scene.Objects))

	if fn := e.gameInstance.FnOnReload; fn != nil {
		return fn(cfg)
	}
	return nil
}

func (e *Engine) resize(width, height uint32) error {
	view, err := views.NewImageViewRGBA(int(width), int(height))
	if err != nil {
		return err
	}
	if err := e.renderer.OnResize(width, height); err != nil {
		return err
	}
	e.renderer.SetView(view)
	core.LogDebug("frame resize: %d, %d", width, height)
	if fn := e.gameInstance.FnOnResize; fn != nil {
		return fn(width, height)
	}
	return nil
}

func (e *Engine) Shutdown() error {
	if e.currentStage == EngineStageUninitialized || e.currentStage == EngineStageShuttingDown {
		return nil
	}
	e.currentStage = EngineStageShuttingDown

	var errs []error
	if e.watcher != nil {
		errs = append(errs, e.watcher.Close())
	}
	if fn := e.gameInstance.FnShutdown; fn != nil {
		errs = append(errs, fn())
	}
	if e.renderer != nil {
		errs = append(errs, e.renderer.Shutdown())
	}
	if e.jobSystem != nil {
		errs = append(errs, e.jobSystem.Stop())
	}
	if e.meshSystem != nil {
		errs = append(errs, e.meshSystem.Shutdown())
	}
	e.currentStage = EngineStageUninitialized

	for _, err := range errs {
		if err != nil {
			core.LogError(err.Error())
			return err
		}
	}
	core.LogInfo("engine shut down")
	return nil
}

func (e *Engine) Stage() Stage { return e.currentStage }
func (e *Engine) Config() *ApplicationConfig { return e.config }
func (e *Engine) RunID() uuid.UUID { return e.runID }
func (e *Engine) Scene() *Scene { return e.scene }
func (e *Engine) Camera() *components.Camera { return e.camera }
func (e *Engine) Renderer() *renderer.Renderer { return e.renderer }
func (e *Engine) FrameCounter() *core.FrameCounter { return e.frames }
func (e *Engine) GetFramebufferSize() (uint32, uint32) { return e.config.Width, e.config.Height }

func configureCamera(c *components.Camera, cfg *ApplicationConfig) {
	c.SetPosition(cfg.Camera.PositionVec())
	c.SetTarget(cfg.Camera.TargetVec())
	c.SetPerspective(
		math.DegToRad(cfg.Camera.FovDegrees),
		float32(cfg.Width)/float32(cfg.Height),
		cfg.Camera.Near,
		cfg.Camera.Far,
	)
}

// numberedPath turns out/frame.png into out/frame_0012.png.
func numberedPath(path string, frame int) string {
	if path == "" {
		return ""
	}
	ext := filepath.Ext(path)
	return fmt.Sprintf("%s_%04d%s", strings.TrimSuffix(path, ext), frame, ext)
}
