package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Camera is a perspective camera on the +z axis looking at the origin.
type Camera struct {
	FOV           float32 // vertical, degrees
	Z             float32
	Near, Far     float32
	Width, Height int
}

func New(fov, z float32) *Camera {
	return &Camera{FOV: fov, Z: z, Near: 0.1, Far: 5000, Width: 1, Height: 1}
}

func (c *Camera) Resize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	c.Width = width
	c.Height = height
}

func (c *Camera) Aspect() float32 {
	return float32(c.Width) / float32(c.Height)
}

func (c *Camera) Projection() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), c.Aspect(), c.Near, c.Far)
}

func (c *Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(mgl32.Vec3{0, 0, c.Z}, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 1, 0})
}

func (c *Camera) halfTan() float32 {
	return float32(math.Tan(float64(mgl32.DegToRad(c.FOV)) / 2))
}

// PointerToWorld casts a ray from the camera through the NDC point and
// returns where it crosses the plane z = depth.
func (c *Camera) PointerToWorld(ndcX, ndcY, depth float32) mgl32.Vec3 {
	ht := c.halfTan()
	dir := mgl32.Vec3{ndcX * ht * c.Aspect(), ndcY * ht, -1}
	t := c.Z - depth
	return mgl32.Vec3{0, 0, c.Z}.Add(dir.Mul(t))
}

// VisibleHeightAt is the world height of the viewport at plane z = depth.
func (c *Camera) VisibleHeightAt(depth float32) float32 {
	return 2 * c.halfTan() * (c.Z - depth)
}

// WorldToNDC projects a world point; ok is false behind the camera.
func (c *Camera) WorldToNDC(p mgl32.Vec3) (x, y float32, ok bool) {
	clip := c.Projection().Mul4(c.View()).Mul4x1(p.Vec4(1))
	if clip.W() <= 0 {
		return 0, 0, false
	}
	return clip.X() / clip.W(), clip.Y() / clip.W(), true
}

func (c *Camera) WorldToScreen(p mgl32.Vec3) (sx, sy float64, ok bool) {
	x, y, ok := c.WorldToNDC(p)
	if !ok {
		return 0, 0, false
	}
	sx = float64((x + 1) / 2 * float32(c.Width))
	sy = float64((1 - y) / 2 * float32(c.Height))
	return sx, sy, true
}

// Depth is the distance along the view axis, used for point size attenuation.
func (c *Camera) Depth(p mgl32.Vec3) float32 {
	return c.Z - p.Z()
}
