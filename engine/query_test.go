package engine

import (
	"slices"
	"testing"

	"github.com/lixenwraith/broadphase/collision"
	"github.com/lixenwraith/broadphase/component"
	"github.com/lixenwraith/broadphase/core"
	"github.com/lixenwraith/broadphase/vmath"
)

// TestQueryBuilder verifies intersection across stores
func TestQueryBuilder(t *testing.T) {
	w := NewWorld()

	e1 := w.CreateEntity()
	w.Colliders.SetComponent(e1, component.ColliderComponent{Shape: collision.NewPoint(vmath.V2Zero)})
	w.Kinetics.SetComponent(e1, component.KineticComponent{Velocity: vmath.V2One})

	e2 := w.CreateEntity()
	w.Colliders.SetComponent(e2, component.ColliderComponent{Shape: collision.NewPoint(vmath.V2One)})

	e3 := w.CreateEntity()
	w.Kinetics.SetComponent(e3, component.KineticComponent{})

	results := w.Query().
		With(w.Colliders).
		With(w.Kinetics).
		Execute()

	if len(results) != 1 || results[0] != e1 {
		t.Errorf("Expected [%d], got %v", e1, results)
	}

	all := w.Query().With(w.Colliders).Execute()
	if !slices.Equal(all, []core.Entity{e1, e2}) {
		t.Errorf("Expected sorted [%d %d], got %v", e1, e2, all)
	}
}

func TestQueryBuilderEmpty(t *testing.T) {
	w := NewWorld()
	if got := w.Query().Execute(); len(got) != 0 {
		t.Errorf("Expected no results without stores, got %v", got)
	}
	if got := w.Query().With(w.Flashes).With(w.Colliders).Execute(); len(got) != 0 {
		t.Errorf("Expected no results from empty stores, got %v", got)
	}
}

func TestQueryBuilderSortedAfterRemoval(t *testing.T) {
	w := NewWorld()
	var ids []core.Entity
	for range 5 {
		e := w.CreateEntity()
		w.Colliders.SetComponent(e, component.ColliderComponent{})
		ids = append(ids, e)
	}
	// Swap-remove moves the last entity into slot 1
	w.Colliders.RemoveEntity(ids[1])

	got := w.Query().With(w.Colliders).Execute()
	if !slices.IsSorted(got) || len(got) != 4 {
		t.Errorf("Expected 4 sorted entities, got %v", got)
	}
}

func TestQueryBuilderModifyAfterExecute(t *testing.T) {
	w := NewWorld()
	qb := w.Query().With(w.Colliders)
	first := qb.Execute()
	if again := qb.Execute(); len(again) != len(first) {
		t.Error("Expected cached result on repeated Execute")
	}

	defer func() {
		if recover() == nil {
			t.Error("Expected panic when adding a store after Execute")
		}
	}()
	qb.With(w.Kinetics)
}
