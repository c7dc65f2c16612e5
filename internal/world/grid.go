package world

import (
	"slices"

	"github.com/skirmishgame/skirmish/internal/core/ecs"
	"github.com/skirmishgame/skirmish/internal/geom"
)

// Entry is one AABB in the spatial grid with its entity payload.
type Entry struct {
	Rect geom.Rect
	ID   ecs.EntityID
	Pos  geom.Vec3
}

// SpatialGrid is a uniform cell grid over the level bounds used for
// broad-phase pair finding, sense-range queries and line-of-sight
// blocking checks. It is rebuilt in full every tick from current
// positions; entity counts are modest enough that incremental updates
// are not worth their bookkeeping.
type SpatialGrid struct {
	entries []Entry
	cells   [][]int

	width, height int
	cellW, cellH  float64
}

// NewSpatialGrid creates a grid of width×height cells of the given cell
// size in world units.
func NewSpatialGrid(width, height int, cellW, cellH float64) *SpatialGrid {
	return &SpatialGrid{
		cells:  make([][]int, width*height),
		width:  width,
		height: height,
		cellW:  cellW,
		cellH:  cellH,
	}
}

// cellIndex maps a point to cell coordinates, clamped to the grid
// bounds: points outside the grid snap to the nearest border cell.
func (g *SpatialGrid) cellIndex(p geom.Vec2) (int, int) {
	i := int(p.X / g.cellW)
	j := int(p.Y / g.cellH)
	if p.X < 0 {
		i = 0
	} else if i > g.width-1 {
		i = g.width - 1
	}
	if p.Y < 0 {
		j = 0
	} else if j > g.height-1 {
		j = g.height - 1
	}
	return i, j
}

// Push inserts an entry into every cell its AABB overlaps.
func (g *SpatialGrid) Push(rect geom.Rect, id ecs.EntityID, pos geom.Vec3) {
	idx := len(g.entries)
	g.entries = append(g.entries, Entry{Rect: rect, ID: id, Pos: pos})

	si, sj := g.cellIndex(rect.Start)
	ei, ej := g.cellIndex(rect.End)
	for j := sj; j <= ej; j++ {
		for i := si; i <= ei; i++ {
			c := i + j*g.width
			g.cells[c] = append(g.cells[c], idx)
		}
	}
}

// AllPairs returns every unordered pair of entries whose AABBs overlap
// and for which pred holds. Pairs found through multiple shared cells
// are reported once, in canonical order by insertion index.
func (g *SpatialGrid) AllPairs(pred func(a, b *Entry) bool) [][2]*Entry {
	var ids [][2]int
	for id1 := range g.entries {
		e1 := &g.entries[id1]
		si, sj := g.cellIndex(e1.Rect.Start)
		ei, ej := g.cellIndex(e1.Rect.End)
		for j := sj; j <= ej; j++ {
			for i := si; i <= ei; i++ {
				for _, id2 := range g.cells[i+j*g.width] {
					if id1 == id2 {
						continue
					}
					if !e1.Rect.Intersects(g.entries[id2].Rect) {
						continue
					}
					lo, hi := id1, id2
					if lo > hi {
						lo, hi = hi, lo
					}
					ids = append(ids, [2]int{lo, hi})
				}
			}
		}
	}

	slices.SortFunc(ids, func(a, b [2]int) int {
		if a[0] != b[0] {
			return a[0] - b[0]
		}
		return a[1] - b[1]
	})
	ids = slices.Compact(ids)

	var res [][2]*Entry
	for _, p := range ids {
		a, b := &g.entries[p[0]], &g.entries[p[1]]
		if pred(a, b) {
			res = append(res, [2]*Entry{a, b})
		}
	}
	return res
}

// QueryRect returns the deduplicated entries whose AABB intersects the
// query rect and satisfy pred.
func (g *SpatialGrid) QueryRect(start, end geom.Vec2, pred func(*Entry) bool) []*Entry {
	query := geom.Rect{Start: start, End: end}
	return g.collect(start, end, func(e *Entry) bool {
		return e.Rect.Intersects(query) && pred(e)
	})
}

// QuerySegment returns the deduplicated entries whose AABB the segment
// passes through, filtered by pred. Used for line-of-sight checks.
func (g *SpatialGrid) QuerySegment(start, end geom.Vec2, pred func(*Entry) bool) []*Entry {
	lo := geom.Vec2{X: min(start.X, end.X), Y: min(start.Y, end.Y)}
	hi := geom.Vec2{X: max(start.X, end.X), Y: max(start.Y, end.Y)}
	return g.collect(lo, hi, func(e *Entry) bool {
		return e.Rect.IntersectsSegment(start, end) && pred(e)
	})
}

func (g *SpatialGrid) collect(start, end geom.Vec2, keep func(*Entry) bool) []*Entry {
	si, sj := g.cellIndex(start)
	ei, ej := g.cellIndex(end)

	var ids []int
	for j := sj; j <= ej; j++ {
		for i := si; i <= ei; i++ {
			ids = append(ids, g.cells[i+j*g.width]...)
		}
	}
	slices.Sort(ids)
	ids = slices.Compact(ids)

	var res []*Entry
	for _, id := range ids {
		if e := &g.entries[id]; keep(e) {
			res = append(res, e)
		}
	}
	return res
}
