package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"runtime"
	"time"

	"github.com/xlab/closer"

	"worldcraft/internal/config"
	"worldcraft/internal/meshing"
	"worldcraft/internal/profiling"
	"worldcraft/internal/world"
)

func init() { runtime.LockOSThread() }

func main() {
	configPath := flag.String("config", "", "path to a YAML config (default $"+config.EnvPath+")")
	headless := flag.Bool("headless", false, "generate, run scripted edits and exit without a window")
	edits := flag.Int("edits", 500, "number of scripted edits in headless mode")
	hold := flag.Bool("hold", false, "in headless mode keep serving metrics until interrupted")
	flag.Parse()

	defer closer.Close()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	config.SetRenderDistance(cfg.Viewer.RenderDistance)
	config.SetFPSLimit(cfg.Viewer.FPSLimit)

	ctx, cancel := context.WithCancel(context.Background())
	closer.Bind(cancel)

	if cfg.Metrics.Addr != "" {
		srv := serveMetrics(cfg.Metrics.Addr)
		closer.Bind(func() {
			shutdownCtx, done := context.WithTimeout(context.Background(), 2*time.Second)
			defer done()
			_ = srv.Shutdown(shutdownCtx)
		})
	}

	w, err := buildWorld(ctx, cfg)
	if err != nil {
		closer.Fatalln("world:", err)
	}

	if *headless {
		if err := runHeadless(w, *edits, cfg.Terrain.Seed); err != nil {
			closer.Fatalln("headless:", err)
		}
		if *hold && cfg.Metrics.Addr != "" {
			closer.Hold()
		}
		return
	}

	if err := runViewer(w, cfg); err != nil {
		closer.Fatalln("viewer:", err)
	}
}

// heightsFor maps the terrain section onto a height provider.
func heightsFor(cfg config.Config) world.HeightProvider {
	t := cfg.Terrain
	p := world.NoiseParams{
		Seed:        t.Seed,
		Scale:       t.Scale,
		Octaves:     t.Octaves,
		Persistence: t.Persistence,
		Lacunarity:  t.Lacunarity,
		Base:        t.Base,
		Amplitude:   t.Amplitude,
		Max:         cfg.WorldHeight() - 1,
	}
	switch t.Generator {
	case "value":
		return world.NewValueNoiseHeights(p)
	case "flat":
		return world.FlatHeights(t.FlatHeight)
	default:
		return world.NewPerlinHeights(p)
	}
}

func worldConfig(cfg config.Config) world.Config {
	return world.Config{
		Chunk: world.Dimensions{
			Width:  cfg.World.ChunkWidth,
			Depth:  cfg.World.ChunkDepth,
			Height: cfg.World.ChunkHeight,
		},
		ChunksX:  cfg.World.ChunksX,
		ChunksY:  cfg.World.ChunksY,
		ChunksZ:  cfg.World.ChunksZ,
		SeaLevel: cfg.World.SeaLevel,
	}
}

// buildWorld creates, generates and meshes the world.
func buildWorld(ctx context.Context, cfg config.Config, opts ...world.Option) (*world.World, error) {
	mesher := meshing.New(
		meshing.WithAtlas(world.Atlas{Rows: cfg.Atlas.Rows, Cols: cfg.Atlas.Cols}),
		meshing.WithWorkers(cfg.Mesh.Workers),
		meshing.WithVerify(cfg.Mesh.VerifyPatches),
	)
	opts = append([]world.Option{world.WithMesher(mesher)}, opts...)

	w, err := world.New(worldConfig(cfg), heightsFor(cfg), opts...)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	if err := w.Generate(ctx); err != nil {
		return nil, err
	}
	s := w.Stats()
	log.Printf("generated %d chunks in %v: %d faces (%d solid, %d liquid vertices)",
		s.Chunks, time.Since(start).Round(time.Millisecond), s.Faces(), s.SolidVertices, s.LiquidVertices)
	return w, nil
}

func serveMetrics(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", profiling.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		log.Printf("metrics listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("metrics server: %v", err)
		}
	}()
	return srv
}
