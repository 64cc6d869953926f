package testbed

import (
	"context"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/spaghettifunk/anima-soft/engine"
)

func TestTestbedRendersFloor(t *testing.T) {
	cfg := engine.DefaultConfig()
	cfg.Width = 64
	cfg.Height = 48
	cfg.LogLevel = "error"
	cfg.Run.Frames = 2
	cfg.Camera.OrbitSpeed = 90
	cfg.Output.Path = filepath.Join(t.TempDir(), "testbed.png")
	cfg.Output.Scale = 2
	// only the floor is drawn
	cfg.Objects = []engine.ObjectConfig{{Name: "tiny", Mesh: "cube", Position: [3]float32{0, 50, 0}, Scale: [3]float32{0.01, 0.01, 0.01}}}

	game, err := NewTestGame(cfg)
	if err != nil {
		t.Fatal(err)
	}
	e, err := engine.New(game.Game, "")
	if err != nil {
		t.Fatal(err)
	}
	if err := e.Initialize(); err != nil {
		t.Fatal(err)
	}
	defer e.Shutdown()

	start := e.Camera().GetPosition()
	if err := e.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if e.Camera().GetPosition() == start {
		t.Error("camera did not orbit")
	}

	// Below the horizon the floor covers the bottom center of the frame.
	img := e.Renderer().View().Image()
	got := color.NRGBAModel.Convert(img.At(32, 44)).(color.NRGBA)
	white := color.NRGBA{255, 255, 255, 255}
	black := color.NRGBA{0, 0, 0, 255}
	if got != white && got != black {
		t.Errorf("floor pixel = %v, want a checkerboard color", got)
	}

	info, err := os.Stat(cfg.Output.Path)
	if err != nil || info.Size() == 0 {
		t.Errorf("output image missing: %v", err)
	}
}
