package engine

import (
	"iter"
	"sync"

	"github.com/lixenwraith/broadphase/core"
)

// Store is a generic container for a specific component type T
// Tracks entities added, changed and removed since the last ClearChanges
type Store[T any] struct {
	mu         sync.RWMutex
	components map[core.Entity]T
	entities   []core.Entity // Array of entities that have this component

	added   map[core.Entity]struct{}
	changed map[core.Entity]struct{}
	removed map[core.Entity]struct{}
}

// NewStore creates a new component store for type T
func NewStore[T any]() *Store[T] {
	return &Store[T]{
		components: make(map[core.Entity]T),
		entities:   make([]core.Entity, 0, 64),
		added:      make(map[core.Entity]struct{}),
		changed:    make(map[core.Entity]struct{}),
		removed:    make(map[core.Entity]struct{}),
	}
}

// SetComponent inserts or updates a component for an entity
// A new entity is recorded as added, an existing one as changed
func (s *Store[T]) SetComponent(e core.Entity, val T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.components[e]; !exists {
		s.entities = append(s.entities, e)
		if _, wasRemoved := s.removed[e]; wasRemoved {
			// Removed and re-added within one pass reads as a change
			delete(s.removed, e)
			s.changed[e] = struct{}{}
		} else {
			s.added[e] = struct{}{}
		}
	} else if _, isNew := s.added[e]; !isNew {
		s.changed[e] = struct{}{}
	}
	s.components[e] = val
}

// GetComponent retrieves a component for an entity
func (s *Store[T]) GetComponent(e core.Entity) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.components[e]
	return val, ok
}

// RemoveEntity deletes a component from an entity
// Pending add is cancelled outright; anything else is recorded as removed
func (s *Store[T]) RemoveEntity(e core.Entity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(e)
}

func (s *Store[T]) removeLocked(e core.Entity) {
	if _, exists := s.components[e]; !exists {
		return
	}
	delete(s.components, e)
	for i, entity := range s.entities {
		if entity == e {
			s.entities[i] = s.entities[len(s.entities)-1]
			s.entities = s.entities[:len(s.entities)-1]
			break
		}
	}

	if _, isNew := s.added[e]; isNew {
		delete(s.added, e)
		return
	}
	delete(s.changed, e)
	s.removed[e] = struct{}{}
}

// HasEntity checks if entity has this component
func (s *Store[T]) HasEntity(e core.Entity) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.components[e]
	return ok
}

// GetAllEntities returns all entities with this component type
func (s *Store[T]) GetAllEntities() []core.Entity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]core.Entity, len(s.entities))
	copy(result, s.entities)
	return result
}

// CountEntities returns number of entities with this component
func (s *Store[T]) CountEntities() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entities)
}

// ClearAllComponents removes every component, recording each as removed
func (s *Store[T]) ClearAllComponents() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for len(s.entities) > 0 {
		s.removeLocked(s.entities[len(s.entities)-1])
	}
}

// RemoveBatch deletes multiple entities under one lock
func (s *Store[T]) RemoveBatch(entities []core.Entity) {
	if len(entities) == 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range entities {
		s.removeLocked(e)
	}
}

// ClearChanges forgets all tracked changes, called once per tick after consumers ran
func (s *Store[T]) ClearChanges() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.added)
	clear(s.changed)
	clear(s.removed)
}

// Added iterates entities whose component was added since the last ClearChanges
// Holds the read lock while iterating; the loop body must not write to the store
func (s *Store[T]) Added() iter.Seq2[core.Entity, T] {
	return s.tracked(s.added)
}

// Changed iterates entities whose existing component was set since the last ClearChanges
func (s *Store[T]) Changed() iter.Seq2[core.Entity, T] {
	return s.tracked(s.changed)
}

// Removed iterates entities whose component was removed since the last ClearChanges
func (s *Store[T]) Removed() iter.Seq[core.Entity] {
	return func(yield func(core.Entity) bool) {
		s.mu.RLock()
		defer s.mu.RUnlock()
		for e := range s.removed {
			if !yield(e) {
				return
			}
		}
	}
}

func (s *Store[T]) tracked(set map[core.Entity]struct{}) iter.Seq2[core.Entity, T] {
	return func(yield func(core.Entity, T) bool) {
		s.mu.RLock()
		defer s.mu.RUnlock()
		for e := range set {
			if !yield(e, s.components[e]) {
				return
			}
		}
	}
}
