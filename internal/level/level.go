package level

import (
	"math"

	"github.com/skirmishgame/skirmish/internal/geom"
)

// TileSize is the edge length of one map tile in world units.
const TileSize = 64.0

// TileEmpty is the only walkable tile id; everything else is solid.
const TileEmpty = 0

// Level is the static tile geometry of a map: a row-major grid of tile
// ids. It knows nothing about entities; movers query it for pushes and
// lines of sight.
type Level struct {
	Name   string
	Width  int
	Height int
	Tiles  []int
}

// TileAt returns the tile id at grid coordinates, or TileEmpty outside
// the grid.
func (l *Level) TileAt(x, z int) int {
	if x < 0 || x >= l.Width || z < 0 || z >= l.Height {
		return TileEmpty
	}
	return l.Tiles[z*l.Width+x]
}

func (l *Level) solid(x, z int) bool {
	if x < 0 || x >= l.Width || z < 0 || z >= l.Height {
		return false
	}
	return l.Tiles[z*l.Width+x] != TileEmpty
}

func tileRect(x, z int) geom.Rect {
	cx := float64(x) * TileSize
	cz := float64(z) * TileSize
	return geom.Rect{
		Start: geom.Vec2{X: cx, Y: cz},
		End:   geom.Vec2{X: cx + TileSize, Y: cz + TileSize},
	}
}

// CheckCollision tests a circle of the given size against the solid
// tiles around pos. It returns the largest separating push over the
// neighbouring tiles and true, or a zero vector and false when clear.
// The caller decides how much of the push to apply.
func (l *Level) CheckCollision(pos geom.Vec3, size float64) (geom.Vec3, bool) {
	centerX := int(math.Floor(pos.X / TileSize))
	centerZ := int(math.Floor(pos.Z / TileSize))
	p := pos.XZ()

	var res geom.Vec2
	for z := centerZ - 1; z <= centerZ+1; z++ {
		for x := centerX - 1; x <= centerX+1; x++ {
			if !l.solid(x, z) {
				continue
			}

			corners := tileRect(x, z).Corners()
			nearest := geom.NearestPolyPoint(corners[:], p)
			dist := math.Max(1e-20, p.Sub(nearest).Norm())
			inside := geom.InsidePoly(corners[:], p)
			if dist >= size && !inside {
				continue
			}

			var push geom.Vec2
			if inside {
				push = nearest.Sub(p).Scale((dist + size) / dist)
			} else {
				push = p.Sub(nearest).Scale((size - dist) / dist)
			}
			if push.Norm() > res.Norm() {
				res = push
			}
		}
	}
	if res.Norm() > 0 {
		return geom.FromXZ(res), true
	}
	return geom.Vec3{}, false
}

// CheckSegment reports whether a segment crosses any solid tile, with
// each tile inflated by margin on all sides. Used for line-of-sight
// checks.
func (l *Level) CheckSegment(start, end geom.Vec2, margin float64) bool {
	startX := int(math.Floor(start.X / TileSize))
	startZ := int(math.Floor(start.Y / TileSize))
	endX := int(math.Floor(end.X / TileSize))
	endZ := int(math.Floor(end.Y / TileSize))

	if startX > endX {
		startX, endX = endX, startX
	}
	if startZ > endZ {
		startZ, endZ = endZ, startZ
	}

	// One extra row and column each side: a margin-inflated tile can
	// reach into the segment's row without containing either endpoint.
	for z := startZ - 1; z <= endZ+1; z++ {
		for x := startX - 1; x <= endX+1; x++ {
			if !l.solid(x, z) {
				continue
			}

			cx := float64(x) * TileSize
			cz := float64(z) * TileSize
			rect := geom.Rect{
				Start: geom.Vec2{X: cx - margin, Y: cz - margin},
				End:   geom.Vec2{X: cx + margin + TileSize, Y: cz + margin + TileSize},
			}
			if rect.IntersectsSegment(start, end) {
				return true
			}
		}
	}
	return false
}
