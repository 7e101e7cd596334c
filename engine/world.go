package engine

import (
	"sync"

	"github.com/lixenwraith/broadphase/component"
	"github.com/lixenwraith/broadphase/core"
)

// World contains all entities and their components using typed stores
type World struct {
	mu           sync.RWMutex
	nextEntityID core.Entity

	Colliders *Store[component.ColliderComponent]
	Kinetics  *Store[component.KineticComponent]
	Flashes   *Store[component.FlashComponent]

	stores      []AnyStore
	systems     []System
	updateMutex sync.Mutex
}

// NewWorld creates an empty world; entity ids start at 1
func NewWorld() *World {
	w := &World{
		nextEntityID: 1,
		Colliders:    NewStore[component.ColliderComponent](),
		Kinetics:     NewStore[component.KineticComponent](),
		Flashes:      NewStore[component.FlashComponent](),
		systems:      make([]System, 0),
	}
	w.stores = []AnyStore{w.Colliders, w.Kinetics, w.Flashes}
	return w
}

// CreateEntity reserves a new entity ID
func (w *World) CreateEntity() core.Entity {
	w.mu.Lock()
	defer w.mu.Unlock()

	id := w.nextEntityID
	w.nextEntityID++
	return id
}

// DestroyEntity removes all components associated with an entity
func (w *World) DestroyEntity(e core.Entity) {
	for _, s := range w.stores {
		s.RemoveEntity(e)
	}
}

// Clear removes all entities and components from the world
// Removals stay tracked so systems observe them on the next Update
func (w *World) Clear() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.nextEntityID = 1
	for _, s := range w.stores {
		s.ClearAllComponents()
	}
}

// AddSystem adds a system to the world and sorts by priority
func (w *World) AddSystem(system System) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.systems = append(w.systems, system)

	// Sort by priority (bubble sort, small N)
	for i := 0; i < len(w.systems)-1; i++ {
		for j := 0; j < len(w.systems)-i-1; j++ {
			if w.systems[j].Priority() > w.systems[j+1].Priority() {
				w.systems[j], w.systems[j+1] = w.systems[j+1], w.systems[j]
			}
		}
	}
}

// Systems returns a copy of all registered systems
func (w *World) Systems() []System {
	w.mu.RLock()
	defer w.mu.RUnlock()
	result := make([]System, len(w.systems))
	copy(result, w.systems)
	return result
}

// RunSafe executes a function while holding the world's update lock
func (w *World) RunSafe(fn func()) {
	w.updateMutex.Lock()
	defer w.updateMutex.Unlock()
	fn()
}

// Update runs all systems in priority order, then clears change tracking
func (w *World) Update() {
	w.RunSafe(w.updateLocked)
}

func (w *World) updateLocked() {
	for _, system := range w.Systems() {
		system.Update()
	}

	for _, s := range w.stores {
		s.ClearChanges()
	}
}
