package main

import (
	"fmt"
	"io"
	"time"

	"github.com/lixenwraith/broadphase/audio"
	"github.com/lixenwraith/broadphase/collision"
	"github.com/lixenwraith/broadphase/component"
	"github.com/lixenwraith/broadphase/core"
	"github.com/lixenwraith/broadphase/engine"
	"github.com/lixenwraith/broadphase/journal"
	"github.com/lixenwraith/broadphase/physics"
	"github.com/lixenwraith/broadphase/render"
	"github.com/lixenwraith/broadphase/scene"
	"github.com/lixenwraith/broadphase/vmath"
)

const (
	flashTicks = 8 // Contact highlight length in ticks
	maxSpeed   = 12.0
	spawnSeed  = 0x9e3779b97f4a7c15
)

// Sandbox owns the world, its systems and the interactive state
type Sandbox struct {
	scene    scene.Scene
	world    *engine.World
	lookup   *engine.ColliderLookup
	contacts *physics.ContactSystem
	recorder *journal.Recorder
	sound    *audio.SoundManager
	rng      *vmath.FastRand

	frame  uint64
	paused bool
	hits   int
}

// newSandbox builds the world from sc; record and sound may be nil
func newSandbox(sc scene.Scene, record io.Writer, sound *audio.SoundManager) (*Sandbox, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}

	world := engine.NewWorld()
	lookup, err := engine.NewColliderLookup(sc.Scale, engine.ColliderSource(world.Colliders))
	if err != nil {
		return nil, err
	}

	dt := sc.TickDuration()
	motion := physics.NewMotionSystem(world, dt, sc.Width, sc.Height)
	contacts := physics.NewContactSystem(world, lookup, dt, flashTicks*dt)

	s := &Sandbox{
		scene:    sc,
		world:    world,
		lookup:   lookup,
		contacts: contacts,
		sound:    sound,
		rng:      vmath.NewFastRand(spawnSeed),
	}

	contacts.OnContact = func(a, b core.Entity, c physics.Contact) {
		s.hits++
		if s.sound != nil {
			s.sound.PlayContact(c.Depth())
		}
	}
	motion.OnBounce = func(core.Entity) {
		if s.sound != nil {
			s.sound.PlayWall()
		}
	}

	world.AddSystem(motion)
	world.AddSystem(lookup)
	world.AddSystem(contacts)

	if record != nil {
		header := journal.Header{Scale: sc.Scale, Created: time.Now()}
		s.recorder, err = journal.NewRecorder(journal.NewWriter(record), engine.ColliderSource(world.Colliders), header)
		if err != nil {
			return nil, fmt.Errorf("journal: %w", err)
		}
		world.AddSystem(s.recorder)
	}

	for i, spec := range sc.Bodies {
		shape, err := spec.Shape()
		if err != nil {
			return nil, fmt.Errorf("body %d: %w", i, err)
		}
		s.add(shape, spec.VelocityVec())
	}
	return s, nil
}

func (s *Sandbox) add(shape collision.Shape, velocity vmath.Vec2) core.Entity {
	e := s.world.CreateEntity()
	s.world.Colliders.SetComponent(e, component.ColliderComponent{Shape: shape})
	s.world.Kinetics.SetComponent(e, component.KineticComponent{Velocity: velocity})
	return e
}

// Step advances one tick unless paused
func (s *Sandbox) Step() {
	if s.paused {
		return
	}
	s.world.Update()
	s.frame++
}

// TogglePause flips the pause state and returns it
func (s *Sandbox) TogglePause() bool {
	s.paused = !s.paused
	return s.paused
}

// Spawn adds a random body inside the arena
func (s *Sandbox) Spawn() core.Entity {
	size := vmath.V2(s.rng.Range(0.5, 4), s.rng.Range(0.5, 4))
	lo := size
	hi := vmath.V2Sub(vmath.V2(s.scene.Width, s.scene.Height), size)
	origin := vmath.V2Scale(vmath.V2(s.scene.Width, s.scene.Height), 0.5)
	if hi.X > lo.X && hi.Y > lo.Y {
		origin = s.rng.V2In(lo, hi)
	}

	var shape collision.Shape
	switch s.rng.Intn(4) {
	case 0:
		shape = collision.NewCircle(origin, size.X)
	case 1:
		shape = collision.NewEllipse(origin, size)
	case 2:
		shape = collision.NewRectangle(origin, size)
	default:
		shape = collision.NewTriangle(origin, size, s.rng.Intn(2) == 0, s.rng.Intn(2) == 0)
	}
	velocity := vmath.V2(s.rng.Range(-maxSpeed, maxSpeed), s.rng.Range(-maxSpeed, maxSpeed))
	return s.add(shape, velocity)
}

// Despawn removes the newest body; false when the arena is empty
func (s *Sandbox) Despawn() bool {
	entities := s.world.Colliders.GetAllEntities()
	if len(entities) == 0 {
		return false
	}
	newest := entities[0]
	for _, e := range entities[1:] {
		newest = max(newest, e)
	}
	s.world.DestroyEntity(newest)
	return true
}

// Frame assembles the render input for the current state
func (s *Sandbox) Frame() render.Frame {
	return render.Frame{
		Grid:   s.lookup.Grid(),
		Bodies: render.Collect(s.world),
		Width:  s.scene.Width,
		Height: s.scene.Height,
		Status: s.Status(),
	}
}

// Status is the one-line summary shown under the arena
func (s *Sandbox) Status() string {
	g := s.lookup.Grid()
	state := ""
	if s.paused {
		state = " [paused]"
	}
	if s.recorder != nil {
		state += " [rec]"
	}
	return fmt.Sprintf("frame %d  bodies %d  cells %d  free %d  contacts %d/%d  scale %g%s",
		s.frame, g.Len(), g.CellCount(), g.FreeCount(), s.contacts.Contacts(), s.hits, g.Scale(), state)
}

// WriteSnapshot rasterises the current state to a PNG file
func (s *Sandbox) WriteSnapshot(path string, ppu float64) error {
	img, err := render.Snapshot(s.lookup.Grid(), render.Collect(s.world), render.SnapshotOptions{
		PixelsPerUnit: ppu,
		Width:         s.scene.Width,
		Height:        s.scene.Height,
		Grid:          true,
		Labels:        true,
	})
	if err != nil {
		return err
	}
	return render.WritePNG(path, img)
}

// Close flushes the journal, if recording
func (s *Sandbox) Close() error {
	if s.recorder == nil {
		return nil
	}
	return s.recorder.Flush()
}
