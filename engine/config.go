package engine

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/spaghettifunk/anima-soft/engine/core"
	"github.com/spaghettifunk/anima-soft/engine/math"
	"github.com/spaghettifunk/anima-soft/engine/systems"
)

var (
	ErrInvalidConfig     = errors.New("invalid configuration")
	ErrUnsupportedConfig = errors.New("unsupported configuration format")
)

type ConfigFormat uint8

const (
	ConfigFormatTOML ConfigFormat = iota
	ConfigFormatYAML
)

func DefaultConfig() *ApplicationConfig {
	return &ApplicationConfig{
		Name:     "anima-soft",
		Width:    640,
		Height:   480,
		LogLevel: "info",
		Renderer: RendererConfig{
			Workers:    4,
			QueueSize:  256,
			ClearColor: [4]float32{0.05, 0.05, 0.08, 1},
		},
		Run: RunConfig{
			Frames: 1,
		},
		Output: OutputConfig{
			Path:  "output/frame.png",
			Scale: 1,
		},
		Camera: CameraConfig{
			Position:   [3]float32{2, 1.5, 4},
			Target:     [3]float32{0, 0, 0},
			FovDegrees: 60,
			Near:       0.1,
			Far:        100,
		},
		Objects: DefaultObjects(),
	}
}

// DefaultObjects is a spinning cube in front of a large backdrop rect.
func DefaultObjects() []ObjectConfig {
	return []ObjectConfig{
		{
			Name:     "backdrop",
			Mesh:     systems.RectMeshName,
			Position: [3]float32{0, 0, -3},
			Scale:    [3]float32{8, 8, 1},
		},
		{
			Name:  "cube",
			Mesh:  systems.CubeMeshName,
			Scale: [3]float32{1, 1, 1},
			Spin:  [3]float32{15, 45, 0},
		},
	}
}

// FormatFromPath picks the decoder from the file extension.
func FormatFromPath(path string) (ConfigFormat, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return ConfigFormatTOML, nil
	case ".yaml", ".yml":
		return ConfigFormatYAML, nil
	default:
		return 0, errors.Wrapf(ErrUnsupportedConfig, "%q", path)
	}
}

// LoadConfig reads the file at path over DefaultConfig and validates it.
func LoadConfig(path string) (*ApplicationConfig, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config %s", path)
	}
	cfg, err := DecodeConfig(data, format)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load config %s", path)
	}
	return cfg, nil
}

// DecodeConfig decodes data over DefaultConfig. Unknown keys are rejected and
// an empty object list keeps the default scene.
func DecodeConfig(data []byte, format ConfigFormat) (*ApplicationConfig, error) {
	cfg := DefaultConfig()
	cfg.Objects = nil

	switch format {
	case ConfigFormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(cfg); err != nil {
			return nil, errors.Wrap(err, "toml")
		}
	case ConfigFormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		// An empty document leaves the defaults untouched.
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, errors.Wrap(err, "yaml")
		}
	default:
		return nil, ErrUnsupportedConfig
	}

	if len(cfg.Objects) == 0 {
		cfg.Objects = DefaultObjects()
	}
	for i := range cfg.Objects {
		if cfg.Objects[i].Scale == [3]float32{} {
			cfg.Objects[i].Scale = [3]float32{1, 1, 1}
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *ApplicationConfig) Validate() error {
	if c.Width == 0 || c.Height == 0 {
		return errors.Wrapf(ErrInvalidConfig, "frame size %dx%d", c.Width, c.Height)
	}
	if _, err := core.ParseLogLevel(c.LogLevel); err != nil {
		return errors.Wrapf(ErrInvalidConfig, "log level %q", c.LogLevel)
	}
	if c.Renderer.Workers < 0 || c.Renderer.QueueSize < 0 || c.Renderer.DepthStripes < 0 {
		return errors.Wrap(ErrInvalidConfig, "renderer settings must not be negative")
	}
	if c.Run.Frames < 0 || c.Run.TargetFPS < 0 {
		return errors.Wrap(ErrInvalidConfig, "run settings must not be negative")
	}
	if c.Output.Scale < 1 {
		return errors.Wrapf(ErrInvalidConfig, "output scale %d", c.Output.Scale)
	}
	if c.Output.Every < 0 {
		return errors.Wrapf(ErrInvalidConfig, "output every %d", c.Output.Every)
	}
	if c.Camera.FovDegrees <= 0 || c.Camera.FovDegrees >= 180 {
		return errors.Wrapf(ErrInvalidConfig, "camera fov %v", c.Camera.FovDegrees)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return errors.Wrapf(ErrInvalidConfig, "camera clip range [%v, %v]", c.Camera.Near, c.Camera.Far)
	}
	if c.Camera.Position == c.Camera.Target {
		return errors.Wrap(ErrInvalidConfig, "camera position equals its target")
	}
	// The view matrix is built around the world up axis.
	dir := c.Camera.TargetVec().Sub(c.Camera.PositionVec())
	if dir.Cross(math.NewVec3Up()).LengthSquared() <= 1e-6*dir.LengthSquared() {
		return errors.Wrap(ErrInvalidConfig, "camera looks straight along the up axis")
	}
	for i, obj := range c.Objects {
		if obj.Mesh == "" {
			return errors.Wrapf(ErrInvalidConfig, "object %d has no mesh", i)
		}
		if obj.Cull != nil {
			if _, err := obj.Cull.MarshalText(); err != nil {
				return errors.Wrapf(ErrInvalidConfig, "object %d: %s", i, err)
			}
		}
		if obj.Depth != nil {
			if _, err := obj.Depth.MarshalText(); err != nil {
				return errors.Wrapf(ErrInvalidConfig, "object %d: %s", i, err)
			}
		}
	}
	return nil
}
