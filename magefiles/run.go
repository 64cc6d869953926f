//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Renders the scene described by $ANIMA_CONFIG (default config/scene.toml).
func (Run) Engine() error {
	fmt.Println("Run engine...")
	if _, err := executeCmd("go", withArgs("run", ".", "-config", configPath()), withStream()); err != nil {
		return err
	}
	return nil
}

// Renders until interrupted, reloading the scene whenever its file changes.
func (Run) Watch() error {
	if _, err := executeCmd("go", withArgs("run", ".", "-config", configPath(), "-watch"), withStream()); err != nil {
		return err
	}
	return nil
}
