/*
Renders the scene described by a TOML or YAML configuration with the
software rasterizer and writes the final frame to an image file.
*/
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/anima-soft/engine"
	"github.com/spaghettifunk/anima-soft/engine/core"
	"github.com/spaghettifunk/anima-soft/testbed"
)

func main() {
	configPath := flag.String("config", "", "scene configuration (.toml, .yaml or .yml)")
	watch := flag.Bool("watch", false, "render until interrupted and reload the configuration on change")
	frames := flag.Int("frames", -1, "number of frames to render, 0 runs until interrupted")
	output := flag.String("out", "", "output image path (.png, .bmp, .tif)")
	flag.Parse()

	config := engine.DefaultConfig()
	if *configPath != "" {
		c, err := engine.LoadConfig(*configPath)
		if err != nil {
			core.LogFatal("%s", err)
		}
		config = c
	}
	if *watch {
		config.Run.Watch = true
		config.Run.Frames = 0
	}
	if *frames >= 0 {
		config.Run.Frames = *frames
	}
	if *output != "" {
		config.Output.Path = *output
	}

	tb, err := testbed.NewTestGame(config)
	if err != nil {
		core.LogFatal("%s", err)
	}

	e, err := engine.New(tb.Game, *configPath)
	if err != nil {
		core.LogFatal("%s", err)
	}

	if err := e.Initialize(); err != nil {
		core.LogFatal("%s", err)
	}

	// cancel the run on system calls
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	runErr := e.Run(ctx)
	if err := e.Shutdown(); err != nil {
		core.LogError(err.Error())
	}
	if runErr != nil {
		core.LogError(runErr.Error())
		os.Exit(1)
	}
}
