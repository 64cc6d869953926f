package engine

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"

	"github.com/spaghettifunk/anima-soft/engine/core"
	"github.com/spaghettifunk/anima-soft/engine/renderer/metadata"
	"github.com/spaghettifunk/anima-soft/engine/renderer/software"
)

func testConfig(t *testing.T) *ApplicationConfig {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Width = 48
	cfg.Height = 32
	cfg.LogLevel = "error"
	cfg.Renderer.Workers = 2
	cfg.Renderer.QueueSize = 8
	cfg.Run.Frames = 3
	cfg.Output.Path = filepath.Join(t.TempDir(), "frame.png")
	return cfg
}

func startEngine(t *testing.T, g *Game) *Engine {
	t.Helper()
	e, err := New(g, "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := e.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	t.Cleanup(func() {
		if err := e.Shutdown(); err != nil {
			t.Errorf("Shutdown: %v", err)
		}
	})
	return e
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 0
	if _, err := New(&Game{ApplicationConfig: cfg}, ""); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("New = %v, want ErrInvalidConfig", err)
	}
	if _, err := New(nil, ""); err == nil {
		t.Error("New without a game should fail")
	}
}

func TestRunBeforeInitialize(t *testing.T) {
	e, err := New(&Game{ApplicationConfig: testConfig(t)}, "")
	if err != nil {
		t.Fatal(err)
	}
	if err := e.Run(context.Background()); !errors.Is(err, core.ErrNotInitialized) {
		t.Errorf("Run = %v, want ErrNotInitialized", err)
	}
}

func TestRunRendersFrames(t *testing.T) {
	cfg := testConfig(t)
	cfg.Output.Every = 2

	var updates, renders, resizes int32
	g := &Game{
		ApplicationConfig: cfg,
		FnUpdate: func(float64) error {
			atomic.AddInt32(&updates, 1)
			return nil
		},
		FnRender: func(packet *metadata.RenderPacket, _ float64) error {
			atomic.AddInt32(&renders, 1)
			if len(packet.DrawCalls) != len(cfg.Objects) {
				t.Errorf("packet has %d draw calls, want %d", len(packet.DrawCalls), len(cfg.Objects))
			}
			return nil
		},
		FnOnResize: func(w, h uint32) error {
			atomic.AddInt32(&resizes, 1)
			return nil
		},
	}
	e := startEngine(t, g)

	if g.Systems == nil || g.Systems.Meshes == nil || g.Systems.Jobs == nil || g.Systems.Scene == nil {
		t.Fatalf("systems not handed to the game: %+v", g.Systems)
	}
	if err := e.Initialize(); !errors.Is(err, core.ErrAlreadyInitialized) {
		t.Errorf("second Initialize = %v, want ErrAlreadyInitialized", err)
	}

	if err := e.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if updates != 3 || renders != 3 || resizes != 1 {
		t.Errorf("callbacks: update %d, render %d, resize %d", updates, renders, resizes)
	}
	if got := e.FrameCounter().Frames(); got != 3 {
		t.Errorf("frames = %d, want 3", got)
	}

	for _, path := range []string{cfg.Output.Path, numberedPath(cfg.Output.Path, 2)} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("missing output %s: %v", path, err)
		}
	}

	// The cube sits in the middle of the frame.
	fb := e.Renderer().FrameBuffer()
	if fb.Depth().GetPixel(24, 16) == software.DepthFar {
		t.Error("center pixel has no depth")
	}
}

func TestRunInline(t *testing.T) {
	cfg := testConfig(t)
	cfg.Renderer.Workers = 0
	cfg.Output.Path = ""
	g := &Game{ApplicationConfig: cfg}
	e := startEngine(t, g)

	if g.Systems.Jobs != nil {
		t.Error("no job system expected without workers")
	}
	if err := e.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := e.FrameCounter().Frames(); got != 3 {
		t.Errorf("frames = %d, want 3", got)
	}
}

func TestRunUntilCancelled(t *testing.T) {
	cfg := testConfig(t)
	cfg.Run.Frames = 0
	cfg.Run.TargetFPS = 200
	e := startEngine(t, &Game{ApplicationConfig: cfg})

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	if err := e.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if e.FrameCounter().Frames() == 0 {
		t.Error("no frame rendered before cancellation")
	}
	if _, err := os.Stat(cfg.Output.Path); err != nil {
		t.Errorf("output not saved on cancellation: %v", err)
	}
}

func TestGameErrorStopsRun(t *testing.T) {
	boom := errors.New("boom")
	g := &Game{
		ApplicationConfig: testConfig(t),
		FnUpdate:          func(float64) error { return boom },
	}
	e := startEngine(t, g)
	if err := e.Run(context.Background()); !errors.Is(err, boom) {
		t.Errorf("Run = %v, want the update error", err)
	}
}

func TestApplyConfig(t *testing.T) {
	var reloaded *ApplicationConfig
	var resized [2]uint32
	g := &Game{
		ApplicationConfig: testConfig(t),
		FnOnReload: func(cfg *ApplicationConfig) error {
			reloaded = cfg
			return nil
		},
		FnOnResize: func(w, h uint32) error {
			resized = [2]uint32{w, h}
			return nil
		},
	}
	e := startEngine(t, g)

	next := testConfig(t)
	next.Width = 20
	next.Height = 10
	next.Objects = next.Objects[:1]
	if err := e.applyConfig(next); err != nil {
		t.Fatalf("applyConfig: %v", err)
	}

	if reloaded != next || e.Config() != next || g.ApplicationConfig != next {
		t.Error("new configuration not propagated")
	}
	if resized != [2]uint32{20, 10} {
		t.Errorf("resize = %v, want [20 10]", resized)
	}
	if fb := e.Renderer().FrameBuffer(); fb.Width() != 20 || fb.Height() != 10 {
		t.Errorf("frame buffer = %dx%d, want 20x10", fb.Width(), fb.Height())
	}
	if v := e.Renderer().View(); v.Width() != 20 || v.Height() != 10 {
		t.Errorf("view = %dx%d, want 20x10", v.Width(), v.Height())
	}
	if len(e.Scene().Objects) != 1 || g.Systems.Scene != e.Scene() {
		t.Errorf("scene not rebuilt: %d objects", len(e.Scene().Objects))
	}
	if got := e.Camera().AspectRatio; got != 2 {
		t.Errorf("aspect ratio = %v, want 2", got)
	}

	bad := testConfig(t)
	bad.Objects = []ObjectConfig{{Name: "x", Mesh: "teapot"}}
	if err := e.applyConfig(bad); err == nil {
		t.Error("unknown mesh should reject the reload")
	}
	if e.Config() != next {
		t.Error("failed reload replaced the configuration")
	}
}

func TestConfigReloadFromDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.toml")
	if err := os.WriteFile(path, []byte("width = 40\nheight = 20\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	cfg.LogLevel = "error"
	cfg.Run.Frames = 0
	cfg.Run.TargetFPS = 100
	cfg.Run.Watch = true
	cfg.Output.Path = ""

	reloads := make(chan *ApplicationConfig, 1)
	g := &Game{
		ApplicationConfig: cfg,
		FnOnReload: func(c *ApplicationConfig) error {
			select {
			case reloads <- c:
			default:
			}
			return nil
		},
	}
	e, err := New(g, path)
	if err != nil {
		t.Fatal(err)
	}
	if err := e.Initialize(); err != nil {
		t.Fatal(err)
	}
	defer e.Shutdown()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- e.Run(ctx) }()

	if err := os.WriteFile(path, []byte("width = 24\nheight = 12\nlog_level = \"error\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case c := <-reloads:
		if c.Width != 24 || c.Height != 12 {
			t.Errorf("reloaded size = %dx%d, want 24x12", c.Width, c.Height)
		}
	case <-time.After(5 * time.Second):
		t.Error("configuration was not reloaded")
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Run: %v", err)
	}
}

func TestNumberedPath(t *testing.T) {
	tests := []struct {
		path  string
		frame int
		want  string
	}{
		{"out/frame.png", 12, "out/frame_0012.png"},
		{"render.bmp", 3, "render_0003.bmp"},
		{"", 1, ""},
	}
	for _, tc := range tests {
		if got := numberedPath(tc.path, tc.frame); got != tc.want {
			t.Errorf("numberedPath(%q, %d) = %q, want %q", tc.path, tc.frame, got, tc.want)
		}
	}
}
