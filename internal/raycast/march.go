package raycast

import (
	"math"

	"github.com/vovakirdan/sortie/internal/core"
)

// Hit is the result of a ray march.
type Hit struct {
	Dist   float64
	Point  core.Vec
	Wall   bool // False when the march reached max depth
	CellX  int
	CellY  int
	Facing Side
}

// Side is the approximate wall face a ray struck, used for shading.
type Side uint8

const (
	SideNone Side = iota
	SideX         // A vertical face (ray crossed an x boundary)
	SideY         // A horizontal face (ray crossed a y boundary)
)

// March steps a ray from (ox, oy) along angle in increments of step until
// it enters a wall cell or reaches maxDepth. A non-positive step uses a
// small default.
func (g *Grid) March(ox, oy, angle, maxDepth, step float64) Hit {
	if step <= 0 {
		step = defaultStep
	}
	dx, dy := math.Cos(angle), math.Sin(angle)

	prevX, prevY := int(math.Floor(ox)), int(math.Floor(oy))
	if g.IsWall(prevX, prevY) {
		return Hit{Dist: 0, Point: core.Vec{X: ox, Y: oy}, Wall: true, CellX: prevX, CellY: prevY}
	}

	for d := step; d < maxDepth; d += step {
		px, py := ox+dx*d, oy+dy*d
		cx, cy := int(math.Floor(px)), int(math.Floor(py))
		if g.IsWall(cx, cy) {
			side := SideY
			if cx != prevX {
				side = SideX
			}
			return Hit{
				Dist:   d,
				Point:  core.Vec{X: px, Y: py},
				Wall:   true,
				CellX:  cx,
				CellY:  cy,
				Facing: side,
			}
		}
		prevX, prevY = cx, cy
	}

	return Hit{
		Dist:  maxDepth,
		Point: core.Vec{X: ox + dx*maxDepth, Y: oy + dy*maxDepth},
	}
}

// LineOfSight reports whether no wall lies between from and to.
func (g *Grid) LineOfSight(from, to core.Vec, step float64) bool {
	d := to.Sub(from)
	dist := d.Len()
	if dist < minimumDepth {
		return !g.SolidAt(from.X, from.Y)
	}
	hit := g.March(from.X, from.Y, math.Atan2(d.Y, d.X), dist, step)
	return !hit.Wall
}

// Column is one screen column of depth data handed to a renderer.
type Column struct {
	Depth float64 // Fisheye-corrected distance
	Wall  bool
	Side  Side
}

// Columns marches n rays across fov centred on angle and returns their
// depths corrected by the cosine of the offset from the view direction.
func (g *Grid) Columns(pos core.Vec, angle, fov float64, n int, maxDepth, step float64) []Column {
	if n <= 0 {
		return nil
	}
	out := make([]Column, n)
	for i := range n {
		offset := -fov/2 + fov*(float64(i)+0.5)/float64(n)
		hit := g.March(pos.X, pos.Y, angle+offset, maxDepth, step)
		depth := hit.Dist * math.Cos(offset)
		out[i] = Column{
			Depth: math.Max(depth, minimumDepth),
			Wall:  hit.Wall,
			Side:  hit.Facing,
		}
	}
	return out
}
