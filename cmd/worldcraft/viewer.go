package main

import (
	"fmt"
	"log"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"

	"worldcraft/internal/camera"
	"worldcraft/internal/config"
	"worldcraft/internal/frustum"
	"worldcraft/internal/input"
	"worldcraft/internal/physics"
	"worldcraft/internal/profiling"
	"worldcraft/internal/render"
	"worldcraft/internal/world"
)

const sprintFactor = 3

func setupWindow(width, height int) (*glfw.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	window, err := glfw.CreateWindow(width, height, "worldcraft", nil, nil)
	if err != nil {
		return nil, err
	}
	window.MakeContextCurrent()

	glfw.SwapInterval(0)
	window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	return window, nil
}

// viewer owns the interactive session state.
type viewer struct {
	cfg    config.Config
	world  *world.World
	window *glfw.Window
	cam    *camera.Camera
	input  *input.Manager
	r      *render.Renderer
	hl     *render.Highlight
	limit  *frameLimiter
	paused bool
	place  world.BlockType
	target physics.RaycastResult
}

func runViewer(w *world.World, cfg config.Config) error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("init glfw: %w", err)
	}
	defer glfw.Terminate()

	window, err := setupWindow(cfg.Viewer.Width, cfg.Viewer.Height)
	if err != nil {
		return err
	}

	r, err := render.New(world.Atlas{Rows: cfg.Atlas.Rows, Cols: cfg.Atlas.Cols})
	if err != nil {
		return err
	}
	defer r.Delete()

	hl, err := render.NewHighlight()
	if err != nil {
		return err
	}
	defer hl.Delete()

	cam := camera.New(cfg.Viewer.Width, cfg.Viewer.Height)
	cam.FOV = cfg.Viewer.FOV
	cam.Speed = cfg.Viewer.MoveSpeed
	cam.Sensitivity = float64(cfg.Viewer.MouseSens)
	wx, _, wz := w.Extent()
	cam.SpawnAbove(w, float32(wx)/2, float32(wz)/2)

	v := &viewer{
		cfg:    cfg,
		world:  w,
		window: window,
		cam:    cam,
		input:  input.New(),
		r:      r,
		hl:     hl,
		limit:  newFrameLimiter(),
		place:  world.BlockTypeDirt,
	}
	v.attach()
	v.loop()
	return nil
}

func (v *viewer) attach() {
	v.input.Attach(v.window)
	v.window.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		if !v.paused {
			v.cam.HandleMouseMovement(x, y)
		}
	})
	v.window.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		v.r.Resize(width, height)
		v.cam.SetViewport(width, height)
	})
	v.window.SetScrollCallback(func(_ *glfw.Window, _, dy float64) {
		v.cycleBlock(dy)
	})
}

// cycleBlock steps through the placeable block types.
func (v *viewer) cycleBlock(dy float64) {
	types := world.BlockTypes()[1:]
	i := 0
	for j, t := range types {
		if t == v.place {
			i = j
		}
	}
	switch {
	case dy > 0:
		i = (i + 1) % len(types)
	case dy < 0:
		i = (i + len(types) - 1) % len(types)
	}
	v.place = types[i]
}

func (v *viewer) loop() {
	frames, fps := 0, 0
	lastFPS := time.Now()
	last := time.Now()

	for !v.window.ShouldClose() {
		profiling.ResetFrame()
		now := time.Now()
		dt := now.Sub(last).Seconds()
		last = now

		v.handleToggles()
		if !v.paused {
			v.move(dt)
			v.target = physics.Raycast(v.cam.Eye(), v.cam.Front(), physics.MinReachDistance, v.cfg.Viewer.ReachDistance, v.world)
			v.interact()
		}

		v.cam.FarPlane = config.GetFarPlane(v.cfg.World.ChunkWidth)
		view := v.cam.ViewMatrix()
		proj := v.cam.ProjectionMatrix()

		v.world.Update(frustum.FromMatrix(proj.Mul4(view)))
		func() {
			defer profiling.Track("render.Frame")()
			v.r.Begin(view, proj, v.cam.FarPlane, config.GetWireframe())
			v.world.Draw(v.r)
			v.r.End()
			if v.target.Hit && !v.paused {
				v.hl.Draw(v.target.HitPosition, view, proj)
			}
		}()

		v.input.EndFrame()
		func() { defer profiling.Track("glfw.SwapBuffers")(); v.window.SwapBuffers() }()
		func() { defer profiling.Track("glfw.PollEvents")(); glfw.PollEvents() }()
		v.limit.Wait(v.paused)

		frames++
		if time.Since(lastFPS) >= time.Second {
			fps, frames = frames, 0
			lastFPS = time.Now()
			if config.GetShowDebug() {
				v.window.SetTitle(v.debugLine(fps))
			}
		}
	}
}

func (v *viewer) handleToggles() {
	if v.input.JustPressed(input.ActionPause) {
		v.paused = !v.paused
		if v.paused {
			v.window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
		} else {
			v.window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
			v.cam.ResetMouse()
		}
	}
	if v.input.JustPressed(input.ActionToggleWireframe) {
		config.ToggleWireframe()
	}
	if v.input.JustPressed(input.ActionToggleDebug) {
		config.SetShowDebug(!config.GetShowDebug())
		if !config.GetShowDebug() {
			v.window.SetTitle("worldcraft")
		}
	}
	if v.input.JustPressed(input.ActionToggleNoClip) {
		v.cam.NoClip = !v.cam.NoClip
	}
}

func (v *viewer) move(dt float64) {
	speed := v.cfg.Viewer.MoveSpeed
	if v.input.IsActive(input.ActionSprint) {
		speed *= sprintFactor
	}
	v.cam.Speed = speed
	v.cam.Move(dt,
		v.input.Axis(input.ActionMoveForward, input.ActionMoveBackward),
		v.input.Axis(input.ActionMoveRight, input.ActionMoveLeft),
		v.input.Axis(input.ActionMoveUp, input.ActionMoveDown),
		v.world,
	)
}

// interact removes the targeted block on left click and places the selected
// type against it on right click. The target is re-cast after each edit.
func (v *viewer) interact() {
	remove := v.input.JustPressed(input.ActionMouseLeft)
	place := v.input.JustPressed(input.ActionMouseRight)
	if !remove && !place {
		return
	}

	hit := v.target
	if !hit.Hit {
		return
	}

	var err error
	switch {
	case remove:
		p := hit.HitPosition
		err = v.world.SetBlock(p[0], p[1], p[2], world.Air)
	case place:
		p := hit.AdjacentPosition
		b := world.NewBlock(v.place)
		if b.IsSolid() && !v.cam.NoClip && v.world.Cursor(p[0], p[1], p[2]).BoundingBox().Intersects(v.cam.Box()) {
			return
		}
		err = v.world.SetBlock(p[0], p[1], p[2], b)
	}
	if err != nil {
		log.Printf("edit: %v", err)
		return
	}
	v.target = physics.Raycast(v.cam.Eye(), v.cam.Front(), physics.MinReachDistance, v.cfg.Viewer.ReachDistance, v.world)
}

func (v *viewer) debugLine(fps int) string {
	s := v.world.Stats()
	drawn, uploads := v.r.Stats()
	p := v.cam.Position
	return fmt.Sprintf("worldcraft | %d fps | pos %.1f %.1f %.1f | %s | chunks %d/%d (%d uploads) | %d faces | %s",
		fps, p.X(), p.Y(), p.Z(), v.place, drawn, s.Chunks, uploads, s.Faces(), profiling.TopN(3))
}
