package physics

import (
	"time"

	"github.com/lixenwraith/broadphase/component"
	"github.com/lixenwraith/broadphase/core"
	"github.com/lixenwraith/broadphase/engine"
	"github.com/lixenwraith/broadphase/vmath"
)

// System priorities around engine.PriorityColliderLookup
const (
	PriorityMotion  = 10
	PriorityContact = 30
)

// MotionSystem integrates kinetic colliders and bounces them off the arena walls
type MotionSystem struct {
	world         *engine.World
	dt            time.Duration
	width, height float64

	// OnBounce is called for each body reflected off a wall
	OnBounce func(e core.Entity)
}

// NewMotionSystem creates a motion system with a fixed step and arena size
func NewMotionSystem(world *engine.World, dt time.Duration, width, height float64) *MotionSystem {
	return &MotionSystem{world: world, dt: dt, width: width, height: height}
}

func (s *MotionSystem) Priority() int { return PriorityMotion }

// Update steps every body with non-zero velocity
// Stationary bodies are not written back so they produce no collider change
func (s *MotionSystem) Update() {
	w := s.world
	for _, e := range w.Query().With(w.Colliders).With(w.Kinetics).Execute() {
		col, _ := w.Colliders.GetComponent(e)
		kin, _ := w.Kinetics.GetComponent(e)
		if kin.Velocity == vmath.V2Zero {
			continue
		}

		body := Body{Shape: col.Shape, Velocity: kin.Velocity}
		body.Step(s.dt)
		if body.ReflectBounds(s.width, s.height) && s.OnBounce != nil {
			s.OnBounce(e)
		}

		w.Colliders.SetComponent(e, component.ColliderComponent{Shape: body.Shape})
		w.Kinetics.SetComponent(e, component.KineticComponent{Velocity: body.Velocity})
	}
}

type pairKey struct {
	a, b core.Entity
}

func pairOf(a, b core.Entity) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{a, b}
}

// ContactSystem resolves contacts for moving bodies against broad-phase candidates
// Runs after the lookup synced; bodies it pushes apart are re-indexed directly
type ContactSystem struct {
	world  *engine.World
	lookup *engine.ColliderLookup
	dt     time.Duration
	flash  time.Duration

	// OnContact is called once per resolved pair with the contact for a
	OnContact func(a, b core.Entity, c Contact)

	candidates engine.EntitySet
	seen       map[pairKey]struct{}
	contacts   int
}

// NewContactSystem creates a contact system; flash is how long contacts stay marked
func NewContactSystem(world *engine.World, lookup *engine.ColliderLookup, dt, flash time.Duration) *ContactSystem {
	return &ContactSystem{
		world:      world,
		lookup:     lookup,
		dt:         dt,
		flash:      flash,
		candidates: make(engine.EntitySet),
		seen:       make(map[pairKey]struct{}),
	}
}

func (s *ContactSystem) Priority() int { return PriorityContact }

// Contacts returns the number of pairs resolved in the last Update
func (s *ContactSystem) Contacts() int { return s.contacts }

func (s *ContactSystem) Update() {
	w := s.world
	s.decayFlashes()

	s.contacts = 0
	clear(s.seen)

	for _, e := range w.Query().With(w.Colliders).With(w.Kinetics).Execute() {
		col, _ := w.Colliders.GetComponent(e)
		kin, _ := w.Kinetics.GetComponent(e)
		if kin.Velocity == vmath.V2Zero {
			continue
		}
		body := Body{Shape: col.Shape, Velocity: kin.Velocity}

		hit := false
		clear(s.candidates)
		s.lookup.QueryMotionInto(s.candidates, body.Shape, body.Motion(s.dt))

		for other := range s.candidates {
			if other == e {
				continue
			}
			key := pairOf(e, other)
			if _, done := s.seen[key]; done {
				continue
			}
			s.seen[key] = struct{}{}

			otherCol, ok := w.Colliders.GetComponent(other)
			if !ok {
				continue
			}
			c, ok := Resolve(body.Shape, otherCol.Shape)
			if !ok {
				continue
			}
			s.contacts++
			hit = true

			if otherKin, moving := w.Kinetics.GetComponent(other); moving && otherKin.Velocity != vmath.V2Zero {
				half := vmath.V2Scale(c.Translation(), 0.5)
				body.Separate(half)
				otherBody := Body{Shape: otherCol.Shape, Velocity: otherKin.Velocity}
				otherBody.Separate(vmath.V2Neg(half))
				s.store(other, otherBody)
			} else {
				body.Separate(c.Translation())
			}

			s.mark(e)
			s.mark(other)
			if s.OnContact != nil {
				s.OnContact(e, other, c)
			}
		}
		if hit {
			s.store(e, body)
		}
	}
}

// store writes a body back and keeps the index current within this tick
func (s *ContactSystem) store(e core.Entity, body Body) {
	s.world.Colliders.SetComponent(e, component.ColliderComponent{Shape: body.Shape})
	s.world.Kinetics.SetComponent(e, component.KineticComponent{Velocity: body.Velocity})
	s.lookup.Grid().Update(e, body.Shape)
}

func (s *ContactSystem) mark(e core.Entity) {
	s.world.Flashes.SetComponent(e, component.FlashComponent{Remaining: s.flash, Duration: s.flash})
}

func (s *ContactSystem) decayFlashes() {
	flashes := s.world.Flashes
	for _, e := range flashes.GetAllEntities() {
		f, _ := flashes.GetComponent(e)
		f.Remaining -= s.dt
		if f.Remaining <= 0 {
			flashes.RemoveEntity(e)
			continue
		}
		flashes.SetComponent(e, f)
	}
}
