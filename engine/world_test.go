package engine

import (
	"bytes"
	"context"
	"log/slog"
	"slices"
	"strings"
	"testing"

	"github.com/lixenwraith/broadphase/collision"
	"github.com/lixenwraith/broadphase/component"
	"github.com/lixenwraith/broadphase/core"
	"github.com/lixenwraith/broadphase/vmath"
)

type recordingSystem struct {
	name     string
	priority int
	log      *[]string
}

func (s *recordingSystem) Update()       { *s.log = append(*s.log, s.name) }
func (s *recordingSystem) Priority() int { return s.priority }

func TestWorldEntityIDs(t *testing.T) {
	w := NewWorld()
	a := w.CreateEntity()
	b := w.CreateEntity()
	if a == 0 || b != a+1 {
		t.Errorf("Expected sequential non-zero ids, got %d %d", a, b)
	}

	w.Clear()
	if e := w.CreateEntity(); e != 1 {
		t.Errorf("Expected id 1 after Clear, got %d", e)
	}
}

func TestWorldSystemPriority(t *testing.T) {
	w := NewWorld()
	var order []string
	w.AddSystem(&recordingSystem{"late", 30, &order})
	w.AddSystem(&recordingSystem{"early", 10, &order})
	w.AddSystem(&recordingSystem{"mid", 20, &order})

	w.Update()
	if !slices.Equal(order, []string{"early", "mid", "late"}) {
		t.Errorf("Expected priority order, got %v", order)
	}
	if len(w.Systems()) != 3 {
		t.Errorf("Expected 3 systems, got %d", len(w.Systems()))
	}
}

func TestWorldUpdateClearsChanges(t *testing.T) {
	w := NewWorld()
	e := w.CreateEntity()
	w.Kinetics.SetComponent(e, component.KineticComponent{Velocity: vmath.V2(1, 0)})

	w.Update()
	for range w.Kinetics.Added() {
		t.Fatal("Expected change tracking cleared after Update")
	}
}

func TestWorldDestroyEntity(t *testing.T) {
	w := NewWorld()
	e := w.CreateEntity()
	w.Colliders.SetComponent(e, component.ColliderComponent{Shape: collision.NewPoint(vmath.V2Zero)})
	w.Kinetics.SetComponent(e, component.KineticComponent{})
	w.Flashes.SetComponent(e, component.FlashComponent{})

	w.DestroyEntity(e)
	if w.Colliders.HasEntity(e) || w.Kinetics.HasEntity(e) || w.Flashes.HasEntity(e) {
		t.Error("Expected entity removed from all stores")
	}
}

func TestWorldQuery(t *testing.T) {
	w := NewWorld()
	still := w.CreateEntity()
	moving := w.CreateEntity()
	ghost := w.CreateEntity()

	w.Colliders.SetComponent(still, component.ColliderComponent{})
	w.Colliders.SetComponent(moving, component.ColliderComponent{})
	w.Kinetics.SetComponent(moving, component.KineticComponent{})
	w.Kinetics.SetComponent(ghost, component.KineticComponent{})

	got := w.Query().With(w.Colliders).With(w.Kinetics).Execute()
	if !slices.Equal(got, []core.Entity{moving}) {
		t.Errorf("Expected [%d], got %v", moving, got)
	}

	all := w.Query().With(w.Colliders).Execute()
	if !slices.Equal(all, []core.Entity{still, moving}) {
		t.Errorf("Expected sorted [%d %d], got %v", still, moving, all)
	}

	if empty := w.Query().Execute(); len(empty) != 0 {
		t.Errorf("Expected empty result, got %v", empty)
	}

	qb := w.Query().With(w.Colliders)
	qb.Execute()
	defer func() {
		if recover() == nil {
			t.Error("Expected panic on With after Execute")
		}
	}()
	qb.With(w.Kinetics)
}

func TestLoggerDefaultSilent(t *testing.T) {
	if Logger().Enabled(context.Background(), slog.LevelDebug) {
		t.Error("Expected default logger disabled")
	}
}

func TestSetLoggerCapturesSync(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	lookup, _ := NewColliderLookup(1, batch{})
	lookup.Sync(batch{added: []shapeEntry{{1, collision.NewCircle(vmath.V2Zero, 1)}}})

	out := buf.String()
	if !strings.Contains(out, "collider lookup synced") || !strings.Contains(out, "added=1") {
		t.Errorf("Expected sync diagnostics, got %q", out)
	}

	SetLogger(nil)
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("Expected nil to restore the silent logger")
	}
}
