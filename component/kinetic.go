package component

import "github.com/lixenwraith/broadphase/vmath"

// KineticComponent holds linear velocity in world units per second
type KineticComponent struct {
	Velocity vmath.Vec2
}
