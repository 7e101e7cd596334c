package engine

import (
	"errors"
	"iter"
	"math"

	"github.com/lixenwraith/broadphase/collision"
	"github.com/lixenwraith/broadphase/core"
)

// ErrInvalidScale is returned by NewCacheGrid for a scale that is not finite and positive
var ErrInvalidScale = errors.New("cache grid scale must be finite and positive")

// EntitySet is an unordered set of entities
type EntitySet map[core.Entity]struct{}

// Has reports membership
func (s EntitySet) Has(e core.Entity) bool {
	_, ok := s[e]
	return ok
}

type cellKey struct {
	x, y int
}

// gridAxis is a half-open cell interval [near, far) on one axis
type gridAxis struct {
	near, far int
}

// axisOf scales p into cell units, flooring near and ceiling far
// Non-finite bounds yield an empty axis
func axisOf(p collision.Projection, scale float64) gridAxis {
	near := math.Floor(p.Near() * scale)
	far := math.Ceil(p.Far() * scale)
	if math.IsNaN(near) || math.IsNaN(far) || math.IsInf(near, 0) || math.IsInf(far, 0) {
		return gridAxis{}
	}
	return gridAxis{near: int(near), far: int(far)}
}

// gridRange is the rectangle of cells an AABB occupies
type gridRange struct {
	x, y gridAxis
}

func rangeOf(x, y collision.Projection, scale float64) gridRange {
	return gridRange{x: axisOf(x, scale), y: axisOf(y, scale)}
}

// cells iterates every cell key in the half-open rectangle
func (r gridRange) cells() iter.Seq[cellKey] {
	return func(yield func(cellKey) bool) {
		for x := r.x.near; x < r.x.far; x++ {
			for y := r.y.near; y < r.y.far; y++ {
				if !yield(cellKey{x, y}) {
					return
				}
			}
		}
	}
}

// CellRange is the half-open cell rectangle [MinX, MaxX) × [MinY, MaxY)
type CellRange struct {
	MinX, MinY int
	MaxX, MaxY int
}

// Empty reports whether the range covers no cells
func (r CellRange) Empty() bool {
	return r.MaxX <= r.MinX || r.MaxY <= r.MinY
}

// Contains reports whether cell (x, y) lies in the range
func (r CellRange) Contains(x, y int) bool {
	return x >= r.MinX && x < r.MaxX && y >= r.MinY && y < r.MaxY
}

// CacheGrid is a uniform spatial hash from cell coordinates to entity sets
// Entities are indexed by the cells their AABB overlaps; updates are incremental
// and emptied cell sets are pooled for reuse. Not safe for concurrent use,
// including queries
type CacheGrid struct {
	scale    float64
	entities map[core.Entity]gridRange
	cells    map[cellKey]EntitySet
	freelist []EntitySet
}

// NewCacheGrid creates a grid; scale is cells per world unit
func NewCacheGrid(scale float64) (*CacheGrid, error) {
	if !(scale > 0) || math.IsInf(scale, 0) {
		return nil, ErrInvalidScale
	}
	return &CacheGrid{
		scale:    scale,
		entities: make(map[core.Entity]gridRange),
		cells:    make(map[cellKey]EntitySet),
	}, nil
}

// Scale returns cells per world unit
func (g *CacheGrid) Scale() float64 { return g.scale }

// Len returns the number of indexed entities
func (g *CacheGrid) Len() int { return len(g.entities) }

// CellCount returns the number of populated cells
func (g *CacheGrid) CellCount() int { return len(g.cells) }

// FreeCount returns the number of pooled empty sets
func (g *CacheGrid) FreeCount() int { return len(g.freelist) }

// Query returns a new set with every entity in any populated cell of the range
// Candidates may be false positives at cell granularity
func (g *CacheGrid) Query(x, y collision.Projection) EntitySet {
	result := make(EntitySet)
	g.QueryInto(result, x, y)
	return result
}

// QueryInto adds the query result to dst without clearing it
func (g *CacheGrid) QueryInto(dst EntitySet, x, y collision.Projection) {
	for key := range rangeOf(x, y, g.scale).cells() {
		for e := range g.cells[key] {
			dst[e] = struct{}{}
		}
	}
}

// Update indexes e by the AABB of shape
// No-op when the cell range is unchanged
func (g *CacheGrid) Update(e core.Entity, shape collision.Shape) {
	x, y := shape.ProjectAligned()
	next := rangeOf(x, y, g.scale)

	if prev, ok := g.entities[e]; ok {
		if prev == next {
			return
		}
		g.Remove(e)
	}

	g.entities[e] = next
	for key := range next.cells() {
		set, ok := g.cells[key]
		if !ok {
			set = g.acquire()
			g.cells[key] = set
		}
		set[e] = struct{}{}
	}
}

// Remove drops e from the index; no-op when absent
func (g *CacheGrid) Remove(e core.Entity) {
	r, ok := g.entities[e]
	if !ok {
		return
	}
	delete(g.entities, e)

	for key := range r.cells() {
		set, ok := g.cells[key]
		if !ok {
			continue
		}
		delete(set, e)
		if len(set) == 0 {
			delete(g.cells, key)
			g.freelist = append(g.freelist, set)
		}
	}
}

// acquire pops a pooled set or allocates one
func (g *CacheGrid) acquire() EntitySet {
	if n := len(g.freelist); n > 0 {
		set := g.freelist[n-1]
		g.freelist[n-1] = nil
		g.freelist = g.freelist[:n-1]
		return set
	}
	Logger().Debug("cache grid cell allocated", "cells", len(g.cells))
	return make(EntitySet)
}

// Occupied returns the cell range recorded for e
func (g *CacheGrid) Occupied(e core.Entity) (CellRange, bool) {
	r, ok := g.entities[e]
	if !ok {
		return CellRange{}, false
	}
	return CellRange{MinX: r.x.near, MinY: r.y.near, MaxX: r.x.far, MaxY: r.y.far}, true
}

// EachCell calls fn for every populated cell until fn returns false
// The set is grid-owned and must not be retained or modified
func (g *CacheGrid) EachCell(fn func(x, y int, set EntitySet) bool) {
	for key, set := range g.cells {
		if !fn(key.x, key.y, set) {
			return
		}
	}
}
