package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// EnvPath names the environment variable consulted when no path is given.
const EnvPath = "WORLDCRAFT_CONFIG"

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config is the root of the YAML configuration file.
type Config struct {
	World   WorldConfig   `yaml:"world"`
	Terrain TerrainConfig `yaml:"terrain"`
	Atlas   AtlasConfig   `yaml:"atlas"`
	Mesh    MeshConfig    `yaml:"mesh"`
	Metrics MetricsConfig `yaml:"metrics"`
	Viewer  ViewerConfig  `yaml:"viewer"`
}

// WorldConfig sets the chunk grid layout.
type WorldConfig struct {
	ChunkWidth  int `yaml:"chunk_width"`
	ChunkDepth  int `yaml:"chunk_depth"`
	ChunkHeight int `yaml:"chunk_height"`
	ChunksX     int `yaml:"chunks_x"`
	ChunksY     int `yaml:"chunks_y"`
	ChunksZ     int `yaml:"chunks_z"`
	SeaLevel    int `yaml:"sea_level"` // negative disables water
}

// TerrainConfig selects and shapes the height field.
type TerrainConfig struct {
	Generator   string  `yaml:"generator"` // perlin, value or flat
	Seed        int64   `yaml:"seed"`
	Scale       float64 `yaml:"scale"`
	Octaves     int     `yaml:"octaves"`
	Persistence float64 `yaml:"persistence"`
	Lacunarity  float64 `yaml:"lacunarity"`
	Base        int     `yaml:"base"`
	Amplitude   float64 `yaml:"amplitude"`
	FlatHeight  int     `yaml:"flat_height"`
}

type AtlasConfig struct {
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
}

type MeshConfig struct {
	Workers       int  `yaml:"workers"` // 0 uses every CPU
	VerifyPatches bool `yaml:"verify_patches"`
}

type MetricsConfig struct {
	Addr string `yaml:"addr"` // empty disables /metrics
}

type ViewerConfig struct {
	Width          int     `yaml:"width"`
	Height         int     `yaml:"height"`
	FOV            float32 `yaml:"fov"`
	RenderDistance int     `yaml:"render_distance"` // in chunks
	MoveSpeed      float32 `yaml:"move_speed"`
	MouseSens      float32 `yaml:"mouse_sensitivity"`
	ReachDistance  float32 `yaml:"reach_distance"`
	FPSLimit       int     `yaml:"fps_limit"` // 0 uncaps
}

// Default returns the configuration used when no file is supplied.
func Default() Config {
	return Config{
		World: WorldConfig{
			ChunkWidth:  16,
			ChunkDepth:  16,
			ChunkHeight: 64,
			ChunksX:     8,
			ChunksY:     1,
			ChunksZ:     8,
			SeaLevel:    14,
		},
		Terrain: TerrainConfig{
			Generator:   "perlin",
			Seed:        1337,
			Scale:       0.02,
			Octaves:     4,
			Persistence: 0.5,
			Lacunarity:  2,
			Base:        4,
			Amplitude:   32,
			FlatHeight:  16,
		},
		Atlas: AtlasConfig{Rows: 3, Cols: 2},
		Mesh:  MeshConfig{VerifyPatches: false},
		Viewer: ViewerConfig{
			Width:          1280,
			Height:         720,
			FOV:            70,
			RenderDistance: 8,
			MoveSpeed:      10,
			MouseSens:      0.1,
			ReachDistance:  8,
			FPSLimit:       120,
		},
	}
}

// Load reads a YAML file over the defaults. An empty path falls back to
// $WORLDCRAFT_CONFIG; if that is unset too the defaults are returned.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv(EnvPath)
		if path == "" {
			return cfg, nil
		}
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports the first setting that cannot produce a working world.
func (c Config) Validate() error {
	w := c.World
	switch {
	case w.ChunkWidth <= 0 || w.ChunkDepth <= 0 || w.ChunkHeight <= 0:
		return fmt.Errorf("%w: chunk size %dx%dx%d", ErrInvalid, w.ChunkWidth, w.ChunkDepth, w.ChunkHeight)
	case w.ChunksX <= 0 || w.ChunksY <= 0 || w.ChunksZ <= 0:
		return fmt.Errorf("%w: world size %dx%dx%d chunks", ErrInvalid, w.ChunksX, w.ChunksY, w.ChunksZ)
	}

	t := c.Terrain
	switch t.Generator {
	case "perlin", "value":
		if t.Scale <= 0 {
			return fmt.Errorf("%w: terrain scale must be positive", ErrInvalid)
		}
		if t.Octaves <= 0 {
			return fmt.Errorf("%w: terrain octaves must be positive", ErrInvalid)
		}
	case "flat":
	default:
		return fmt.Errorf("%w: unknown terrain generator %q", ErrInvalid, t.Generator)
	}

	if c.Atlas.Rows <= 0 || c.Atlas.Cols <= 0 {
		return fmt.Errorf("%w: atlas %dx%d", ErrInvalid, c.Atlas.Rows, c.Atlas.Cols)
	}
	if c.Mesh.Workers < 0 {
		return fmt.Errorf("%w: mesh workers %d", ErrInvalid, c.Mesh.Workers)
	}
	if c.Viewer.Width <= 0 || c.Viewer.Height <= 0 {
		return fmt.Errorf("%w: viewer size %dx%d", ErrInvalid, c.Viewer.Width, c.Viewer.Height)
	}
	return nil
}

// WorldHeight returns the world height in cells.
func (c Config) WorldHeight() int {
	return c.World.ChunkHeight * c.World.ChunksY
}
