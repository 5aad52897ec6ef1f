package viz

import (
	"math"

	"github.com/charmbracelet/harmonica"

	"github.com/san-kum/oscillo/internal/dynamo"
)

// Camera orbits the origin. Zoom eases toward its target with a critically
// damped spring so +/- do not jump.
type Camera struct {
	Distance         float64
	RotX, RotY, RotZ float64
	Zoom             float64
	Scale            float64

	zoomTarget float64
	zoomVel    float64
	spring     harmonica.Spring
}

func NewCamera(fps int) *Camera {
	return &Camera{
		Distance:   300,
		RotX:       -0.5,
		RotY:       0.7,
		Zoom:       1,
		Scale:      1.0 / 120,
		zoomTarget: 1,
		spring:     harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0),
	}
}

func (c *Camera) RotateX(a float64) { c.RotX += a }
func (c *Camera) RotateY(a float64) { c.RotY += a }
func (c *Camera) RotateZ(a float64) { c.RotZ += a }
func (c *Camera) ZoomIn()           { c.zoomTarget = math.Min(10, c.zoomTarget*1.25) }
func (c *Camera) ZoomOut()          { c.zoomTarget = math.Max(0.1, c.zoomTarget/1.25) }
func (c *Camera) ZoomTarget() float64 {
	return c.zoomTarget
}

// Update advances the zoom spring by one frame.
func (c *Camera) Update() {
	c.Zoom, c.zoomVel = c.spring.Update(c.Zoom, c.zoomVel, c.zoomTarget)
}

// RotatePoint rotates a point around the camera's axes.
func (c *Camera) RotatePoint(p dynamo.Vec3) dynamo.Vec3 {
	cx, sx := math.Cos(c.RotX), math.Sin(c.RotX)
	p.Y, p.Z = p.Y*cx-p.Z*sx, p.Y*sx+p.Z*cx
	cy, sy := math.Cos(c.RotY), math.Sin(c.RotY)
	p.X, p.Z = p.X*cy+p.Z*sy, -p.X*sy+p.Z*cy
	cz, sz := math.Cos(c.RotZ), math.Sin(c.RotZ)
	p.X, p.Y = p.X*cz-p.Y*sz, p.X*sz+p.Y*cz
	return p
}

// Project maps world coordinates onto a sw×sh sub-pixel screen. It returns
// the screen point, depth and whether the point is in front of the camera.
func (c *Camera) Project(p dynamo.Vec3, sw, sh int) (int, int, float64, bool) {
	rot := c.RotatePoint(p).Scale(c.Zoom)
	if rot.Z >= c.Distance-1 {
		return 0, 0, 0, false
	}
	persp := c.Distance / (c.Distance - rot.Z)
	pScale := float64(min(sw, sh)) * c.Scale
	x := int(rot.X*persp*pScale) + sw/2
	y := int(-rot.Y*persp*pScale) + sh/2
	return x, y, rot.Z, true
}

type Edge struct {
	Start, End dynamo.Vec3
	Layer      int
}

// AxesEdges returns the three coordinate axes of length l.
func AxesEdges(l float64, layers [3]int) []Edge {
	o := dynamo.Vec3{}
	return []Edge{
		{o, dynamo.Vec3{X: l}, layers[dynamo.X]},
		{o, dynamo.Vec3{Y: l}, layers[dynamo.Y]},
		{o, dynamo.Vec3{Z: l}, layers[dynamo.Z]},
	}
}

func DrawEdges(c *Canvas, cam *Camera, edges []Edge) {
	sw, sh := c.Width*2, c.Height*4
	for _, e := range edges {
		x1, y1, _, ok1 := cam.Project(e.Start, sw, sh)
		x2, y2, _, ok2 := cam.Project(e.End, sw, sh)
		if ok1 && ok2 {
			c.DrawLine(x1, y1, x2, y2, e.Layer)
		}
	}
}
