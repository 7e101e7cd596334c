package engine

import (
	"maps"
	"slices"
	"testing"

	"github.com/lixenwraith/broadphase/core"
)

type mockComponent struct {
	Value int
}

func addedOf(s *Store[mockComponent]) map[core.Entity]mockComponent {
	return maps.Collect(s.Added())
}

func changedOf(s *Store[mockComponent]) map[core.Entity]mockComponent {
	return maps.Collect(s.Changed())
}

func removedOf(s *Store[mockComponent]) []core.Entity {
	return slices.Sorted(s.Removed())
}

func TestStoreBasics(t *testing.T) {
	s := NewStore[mockComponent]()
	s.SetComponent(1, mockComponent{Value: 10})
	s.SetComponent(2, mockComponent{Value: 20})

	if v, ok := s.GetComponent(1); !ok || v.Value != 10 {
		t.Errorf("Expected 10, got %v ok=%v", v, ok)
	}
	if !s.HasEntity(2) || s.HasEntity(3) {
		t.Error("Unexpected HasEntity result")
	}
	if s.CountEntities() != 2 {
		t.Errorf("Expected 2 entities, got %d", s.CountEntities())
	}

	s.RemoveBatch([]core.Entity{1, 3})
	if got := s.GetAllEntities(); len(got) != 1 || got[0] != 2 {
		t.Errorf("Expected [2], got %v", got)
	}
}

func TestStoreChangeTracking(t *testing.T) {
	s := NewStore[mockComponent]()

	s.SetComponent(1, mockComponent{Value: 1})
	s.SetComponent(1, mockComponent{Value: 2})
	s.SetComponent(2, mockComponent{Value: 5})

	added := addedOf(s)
	if len(added) != 2 || added[1].Value != 2 {
		t.Errorf("Expected both new entities added with latest value, got %v", added)
	}
	if len(changedOf(s)) != 0 {
		t.Error("Expected a set on a pending add not to count as change")
	}

	s.ClearChanges()
	if len(addedOf(s)) != 0 || len(changedOf(s)) != 0 || len(removedOf(s)) != 0 {
		t.Fatal("Expected no changes after ClearChanges")
	}

	s.SetComponent(1, mockComponent{Value: 3})
	s.RemoveEntity(2)

	if changed := changedOf(s); len(changed) != 1 || changed[1].Value != 3 {
		t.Errorf("Expected entity 1 changed, got %v", changed)
	}
	if removed := removedOf(s); !slices.Equal(removed, []core.Entity{2}) {
		t.Errorf("Expected [2] removed, got %v", removed)
	}

	// Change then remove reports only the removal
	s.RemoveEntity(1)
	if len(changedOf(s)) != 0 {
		t.Error("Expected removal to cancel pending change")
	}
	if removed := removedOf(s); !slices.Equal(removed, []core.Entity{1, 2}) {
		t.Errorf("Expected [1 2] removed, got %v", removed)
	}
}

func TestStoreAddRemoveSameTick(t *testing.T) {
	s := NewStore[mockComponent]()
	s.SetComponent(7, mockComponent{})
	s.RemoveEntity(7)

	if len(addedOf(s)) != 0 || len(removedOf(s)) != 0 {
		t.Error("Expected transient entity to leave no trace")
	}
}

func TestStoreRemoveReAdd(t *testing.T) {
	s := NewStore[mockComponent]()
	s.SetComponent(4, mockComponent{Value: 1})
	s.ClearChanges()

	s.RemoveEntity(4)
	s.SetComponent(4, mockComponent{Value: 2})

	if len(removedOf(s)) != 0 || len(addedOf(s)) != 0 {
		t.Error("Expected re-add within a tick to read as change only")
	}
	if changed := changedOf(s); changed[4].Value != 2 {
		t.Errorf("Expected change with value 2, got %v", changed)
	}
}

func TestStoreClearAllComponents(t *testing.T) {
	s := NewStore[mockComponent]()
	s.SetComponent(1, mockComponent{})
	s.SetComponent(2, mockComponent{})
	s.ClearChanges()
	s.SetComponent(3, mockComponent{})

	s.ClearAllComponents()
	if s.CountEntities() != 0 {
		t.Errorf("Expected empty store, got %d", s.CountEntities())
	}
	if removed := removedOf(s); !slices.Equal(removed, []core.Entity{1, 2}) {
		t.Errorf("Expected [1 2] removed, got %v", removed)
	}
}

func TestStoreIteratorEarlyStop(t *testing.T) {
	s := NewStore[mockComponent]()
	for e := core.Entity(1); e <= 5; e++ {
		s.SetComponent(e, mockComponent{})
	}
	n := 0
	for range s.Added() {
		n++
		break
	}
	if n != 1 {
		t.Errorf("Expected one iteration, got %d", n)
	}
	// Lock released after early break
	s.SetComponent(6, mockComponent{})
}
