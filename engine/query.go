package engine

import (
	"slices"

	"github.com/lixenwraith/broadphase/core"
)

// QueryBuilder finds entities present in every listed store
//
//	moving := world.Query().
//	    With(world.Colliders).
//	    With(world.Kinetics).
//	    Execute()
type QueryBuilder struct {
	stores   []QueryableStore
	executed bool
	results  []core.Entity
}

// Query starts an intersection query over component stores
func (w *World) Query() *QueryBuilder {
	return &QueryBuilder{
		stores: make([]QueryableStore, 0, 4),
	}
}

// With adds a store to the intersection; panics after Execute
func (qb *QueryBuilder) With(store QueryableStore) *QueryBuilder {
	if qb.executed {
		panic("query already executed - cannot modify after Execute()")
	}
	qb.stores = append(qb.stores, store)
	return qb
}

// Execute returns entities found in all stores, smallest store first
// Repeated calls return the cached result
func (qb *QueryBuilder) Execute() []core.Entity {
	if qb.executed {
		return qb.results
	}
	qb.executed = true

	if len(qb.stores) == 0 {
		qb.results = make([]core.Entity, 0)
		return qb.results
	}

	slices.SortFunc(qb.stores, func(a, b QueryableStore) int {
		return a.CountEntities() - b.CountEntities()
	})

	candidates := qb.stores[0].GetAllEntities()
	for _, store := range qb.stores[1:] {
		filtered := candidates[:0]
		for _, e := range candidates {
			if store.HasEntity(e) {
				filtered = append(filtered, e)
			}
		}
		candidates = filtered
		if len(candidates) == 0 {
			break
		}
	}

	// Swap-remove leaves store order arbitrary; sort for stable iteration
	slices.Sort(candidates)
	qb.results = candidates
	return qb.results
}
