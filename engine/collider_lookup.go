package engine

import (
	"iter"

	"github.com/lixenwraith/broadphase/collision"
	"github.com/lixenwraith/broadphase/component"
	"github.com/lixenwraith/broadphase/core"
	"github.com/lixenwraith/broadphase/vmath"
)

// ColliderChanges reports collider changes since the previous synchronization
type ColliderChanges interface {
	Added() iter.Seq2[core.Entity, collision.Shape]
	Changed() iter.Seq2[core.Entity, collision.Shape]
	Removed() iter.Seq[core.Entity]
}

// PriorityColliderLookup runs after motion so the index sees this tick's positions
const PriorityColliderLookup = 20

// ColliderLookup keeps a CacheGrid in sync with a change source and answers
// broad-phase queries. Not safe for concurrent use
type ColliderLookup struct {
	grid   *CacheGrid
	source ColliderChanges
}

// NewColliderLookup creates a lookup over a fresh grid of the given scale
func NewColliderLookup(scale float64, source ColliderChanges) (*ColliderLookup, error) {
	grid, err := NewCacheGrid(scale)
	if err != nil {
		return nil, err
	}
	return &ColliderLookup{grid: grid, source: source}, nil
}

// Update applies added and changed colliders, then removals
func (l *ColliderLookup) Update() {
	l.Sync(l.source)
}

// Sync applies one batch of changes from an arbitrary source
func (l *ColliderLookup) Sync(changes ColliderChanges) {
	var added, changed, removed int
	for e, shape := range changes.Added() {
		l.grid.Update(e, shape)
		added++
	}
	for e, shape := range changes.Changed() {
		l.grid.Update(e, shape)
		changed++
	}
	for e := range changes.Removed() {
		l.grid.Remove(e)
		removed++
	}

	Logger().Debug("collider lookup synced",
		"added", added, "changed", changed, "removed", removed,
		"entities", l.grid.Len(), "cells", l.grid.CellCount(), "free", l.grid.FreeCount())
}

// Priority implements System
func (l *ColliderLookup) Priority() int {
	return PriorityColliderLookup
}

// Query returns candidates whose cells overlap the AABB of shape
func (l *ColliderLookup) Query(shape collision.Shape) EntitySet {
	x, y := shape.ProjectAligned()
	return l.grid.Query(x, y)
}

// QueryMotion returns candidates for shape swept by motion over one step
// The AABB is smeared one-sided per axis, an over-approximation of the sweep
func (l *ColliderLookup) QueryMotion(shape collision.Shape, motion vmath.Vec2) EntitySet {
	x, y := shape.ProjectAligned()
	return l.grid.Query(collision.Smear(x, motion.X), collision.Smear(y, motion.Y))
}

// QueryMotionInto is QueryMotion reusing dst
func (l *ColliderLookup) QueryMotionInto(dst EntitySet, shape collision.Shape, motion vmath.Vec2) {
	x, y := shape.ProjectAligned()
	l.grid.QueryInto(dst, collision.Smear(x, motion.X), collision.Smear(y, motion.Y))
}

// Grid exposes the underlying index for introspection
func (l *ColliderLookup) Grid() *CacheGrid {
	return l.grid
}

// colliderSource adapts a collider store to ColliderChanges
type colliderSource struct {
	store *Store[component.ColliderComponent]
}

// ColliderSource exposes the change tracking of a collider store as shape streams
func ColliderSource(store *Store[component.ColliderComponent]) ColliderChanges {
	return colliderSource{store: store}
}

func (c colliderSource) Added() iter.Seq2[core.Entity, collision.Shape] {
	return shapes(c.store.Added())
}

func (c colliderSource) Changed() iter.Seq2[core.Entity, collision.Shape] {
	return shapes(c.store.Changed())
}

func (c colliderSource) Removed() iter.Seq[core.Entity] {
	return c.store.Removed()
}

func shapes(seq iter.Seq2[core.Entity, component.ColliderComponent]) iter.Seq2[core.Entity, collision.Shape] {
	return func(yield func(core.Entity, collision.Shape) bool) {
		for e, c := range seq {
			if !yield(e, c.Shape) {
				return
			}
		}
	}
}
