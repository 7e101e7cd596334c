package engine

import (
	"github.com/lixenwraith/broadphase/core"
)

// AnyStore is the type-erased view World uses for entity lifecycle and tick bookkeeping
type AnyStore interface {
	RemoveEntity(e core.Entity)
	HasEntity(e core.Entity) bool
	CountEntities() int
	ClearAllComponents()

	// ClearChanges ends the current change-tracking window
	ClearChanges()
}

// QueryableStore adds the enumeration QueryBuilder intersects on
type QueryableStore interface {
	AnyStore
	GetAllEntities() []core.Entity
}
