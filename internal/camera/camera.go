// Package camera is the fly camera of the viewer: mouse look, collision
// aware movement and the matrices fed to the renderer and frustum.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"worldcraft/internal/physics"
	"worldcraft/internal/profiling"
	"worldcraft/internal/world"
)

const (
	halfWidth = 0.3
	height    = 1.8
	eyeHeight = 1.62
)

// Camera handles the view and projection matrices
type Camera struct {
	Position mgl32.Vec3 // feet
	Yaw      float64
	Pitch    float64

	AspectRatio float32
	FOV         float32
	NearPlane   float32
	FarPlane    float32

	Sensitivity float64
	Speed       float32
	NoClip      bool

	lastMouseX, lastMouseY float64
	firstMouse             bool
}

func New(width, height int) *Camera {
	return &Camera{
		Yaw:         -90,
		AspectRatio: float32(width) / float32(height),
		FOV:         60.0,
		NearPlane:   0.1,
		FarPlane:    1000.0,
		Sensitivity: 0.1,
		Speed:       10,
		firstMouse:  true,
	}
}

// SetViewport updates the aspect ratio after a resize.
func (c *Camera) SetViewport(width, height int) {
	if height > 0 {
		c.AspectRatio = float32(width) / float32(height)
	}
}

func (c *Camera) HandleMouseMovement(xpos, ypos float64) {
	if c.firstMouse {
		c.lastMouseX = xpos
		c.lastMouseY = ypos
		c.firstMouse = false
		return
	}

	xoffset := (xpos - c.lastMouseX) * c.Sensitivity
	yoffset := (c.lastMouseY - ypos) * c.Sensitivity
	c.lastMouseX = xpos
	c.lastMouseY = ypos

	c.Yaw += xoffset
	c.Pitch += yoffset

	// Constrain pitch
	if c.Pitch > 89.0 {
		c.Pitch = 89.0
	}
	if c.Pitch < -89.0 {
		c.Pitch = -89.0
	}
}

// ResetMouse makes the next mouse event a reference point instead of a jump.
func (c *Camera) ResetMouse() {
	c.firstMouse = true
}

func (c *Camera) Front() mgl32.Vec3 {
	y := mgl32.DegToRad(float32(c.Yaw))
	pt := mgl32.DegToRad(float32(c.Pitch))
	fx := float32(math.Cos(float64(y)) * math.Cos(float64(pt)))
	fy := float32(math.Sin(float64(pt)))
	fz := float32(math.Sin(float64(y)) * math.Cos(float64(pt)))
	return mgl32.Vec3{fx, fy, fz}.Normalize()
}

func (c *Camera) Eye() mgl32.Vec3 {
	return c.Position.Add(mgl32.Vec3{0, eyeHeight, 0})
}

func (c *Camera) ViewMatrix() mgl32.Mat4 {
	eye := c.Eye()
	return mgl32.LookAtV(eye, eye.Add(c.Front()), mgl32.Vec3{0, 1, 0})
}

func (c *Camera) ProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), c.AspectRatio, c.NearPlane, c.FarPlane)
}

// Box is the collision box around the camera.
func (c *Camera) Box() world.AABB {
	return physics.BoxAt(c.Position, halfWidth, height)
}

// Move flies the camera. forward, strafe and up are in [-1,1]; horizontal
// motion follows the yaw only. Each axis is resolved separately so the
// camera slides along walls.
func (c *Camera) Move(dt float64, forward, strafe, up float32, w *world.World) {
	defer profiling.Track("camera.Move")()

	front := c.Front()
	flat := mgl32.Vec3{front.X(), 0, front.Z()}
	if flat.Len() > 0 {
		flat = flat.Normalize()
	}
	right := flat.Cross(mgl32.Vec3{0, 1, 0})

	delta := flat.Mul(forward).Add(right.Mul(strafe)).Add(mgl32.Vec3{0, up, 0})
	if delta.Len() == 0 {
		return
	}
	if delta.Len() > 1 {
		delta = delta.Normalize()
	}
	delta = delta.Mul(c.Speed * float32(dt))

	for axis := 0; axis < 3; axis++ {
		if delta[axis] == 0 {
			continue
		}
		next := c.Position
		next[axis] += delta[axis]
		if !c.NoClip && w != nil && physics.Collides(w, physics.BoxAt(next, halfWidth, height)) {
			continue
		}
		c.Position = next
	}
}

// SpawnAbove places the camera on the ground of column (x,z).
func (c *Camera) SpawnAbove(w *world.World, x, z float32) {
	_, wy, _ := w.Extent()
	top, ok := physics.FindGroundLevel(w, x, z, wy-1)
	if !ok {
		top = float32(wy)
	}
	c.Position = mgl32.Vec3{x, top, z}
}
