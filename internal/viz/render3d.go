package viz

import (
	"math"

	"github.com/san-kum/solarsim/internal/dynamo"
)

// AU is one astronomical unit in metres.
const AU = 1.496e11

// displayScale maps metres to display units: one AU is two units.
const displayScale = 2 / AU

// Camera projects world positions orthographically onto the canvas, looking
// down the z axis after applying its rotations. Positions are only read.
type Camera struct {
	Center           dynamo.Vec3
	RotX, RotY, RotZ float64
	Zoom             float64
}

func NewCamera(zoom float64) *Camera {
	if zoom <= 0 {
		zoom = 1
	}
	return &Camera{Zoom: zoom}
}

func (c *Camera) RotateX(a float64) { c.RotX += a }
func (c *Camera) RotateY(a float64) { c.RotY += a }
func (c *Camera) RotateZ(a float64) { c.RotZ += a }
func (c *Camera) ZoomIn()           { c.Zoom = math.Min(1000, c.Zoom*1.2) }
func (c *Camera) ZoomOut()          { c.Zoom = math.Max(0.001, c.Zoom/1.2) }

// Reset returns to the top-down (x, y) view.
func (c *Camera) Reset() { c.RotX, c.RotY, c.RotZ = 0, 0, 0 }

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

// Project converts a world position in metres to sub-pixel coordinates on
// an sw x sh canvas. One display unit spans an eighth of the shorter side.
func (c *Camera) Project(p dynamo.Vec3, sw, sh int) (int, int, bool) {
	rot := c.RotatePoint(p.Sub(c.Center)).Scale(displayScale * c.Zoom)
	unit := float64(min(sw, sh)) / 8
	fx := rot.X*unit + float64(sw)/2
	fy := -rot.Y*unit + float64(sh)/2
	if math.IsNaN(fx) || math.IsNaN(fy) || math.Abs(fx) > 1e9 || math.Abs(fy) > 1e9 {
		return 0, 0, false
	}
	sx, sy := int(math.Round(fx)), int(math.Round(fy))
	return sx, sy, sx >= 0 && sx < sw && sy >= 0 && sy < sh
}
