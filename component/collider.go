package component

import "github.com/lixenwraith/broadphase/collision"

// ColliderComponent is the collision shape of an entity in world units
// Indexed by the broad-phase lookup; every Set is reported as a change
type ColliderComponent struct {
	Shape collision.Shape
}
