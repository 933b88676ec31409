package world

import "testing"

func TestEntityStoreInsertGetRemove(t *testing.T) {
	s := NewEntityStore(1000)
	e := &Entity{Type: TypeBullet, Body: NewPhysicsBody(10, 10, 3, 1, 0)}
	id := s.Insert(e)
	if id == EntityIDInvalid {
		t.Fatal("expected non-zero id")
	}
	got, ok := s.Get(id)
	if !ok || got != e {
		t.Fatal("expected to retrieve inserted entity")
	}
	if s.Len() != 1 {
		t.Fatalf("expected len 1, got %d", s.Len())
	}
	s.Remove(id)
	if _, ok := s.Get(id); ok {
		t.Fatal("expected entity gone after remove")
	}
	if s.Len() != 0 {
		t.Fatalf("expected len 0 after remove, got %d", s.Len())
	}
}

func TestNeighborPairsFindsNearbyOnly(t *testing.T) {
	s := NewEntityStore(1600) // 16 buckets of 100 units each
	near1 := &Entity{Type: TypeBullet, Body: NewPhysicsBody(10, 10, 3, 1, 0)}
	near2 := &Entity{Type: TypeBullet, Body: NewPhysicsBody(15, 15, 3, 1, 0)}
	far := &Entity{Type: TypeBullet, Body: NewPhysicsBody(1500, 1500, 3, 1, 0)}
	s.Insert(near1)
	s.Insert(near2)
	s.Insert(far)
	s.RebuildZones()

	pairs := 0
	s.NeighborPairs(func(a, b *Entity) {
		pairs++
		if (a == far) || (b == far) {
			t.Fatal("far entity must not pair with near entities")
		}
	})
	if pairs != 1 {
		t.Fatalf("expected exactly 1 near pair, got %d", pairs)
	}
}

// TestRebuildZonesReflectsMovement guards against zone buckets going stale:
// an entity that travels across the grid after insertion must be pruned
// against its new neighbors, not whichever bucket it happened to spawn in
// (spec §4.2's bucketing runs fresh "each tick", not once at placement).
func TestRebuildZonesReflectsMovement(t *testing.T) {
	s := NewEntityStore(1600)
	mover := &Entity{Type: TypeBullet, Body: NewPhysicsBody(10, 10, 3, 1, 0)}
	stationary := &Entity{Type: TypeBullet, Body: NewPhysicsBody(1500, 1500, 3, 1, 0)}
	s.Insert(mover)
	s.Insert(stationary)
	s.RebuildZones()

	pairs := 0
	s.NeighborPairs(func(a, b *Entity) { pairs++ })
	if pairs != 0 {
		t.Fatalf("expected no pairs before the mover travels, got %d", pairs)
	}

	mover.Body.Shape.X, mover.Body.Shape.Y = 1500, 1500
	s.RebuildZones()

	pairs = 0
	s.NeighborPairs(func(a, b *Entity) { pairs++ })
	if pairs != 1 {
		t.Fatalf("expected mover to pair with stationary after traveling to its bucket, got %d", pairs)
	}
}

func TestAllPreservesInsertionOrder(t *testing.T) {
	s := NewEntityStore(1000)
	ids := make([]EntityID, 0, 3)
	for i := 0; i < 3; i++ {
		e := &Entity{Type: TypeBullet, Body: NewPhysicsBody(float32(i), 0, 1, 1, 0)}
		ids = append(ids, s.Insert(e))
	}
	all := s.All()
	if len(all) != 3 {
		t.Fatalf("expected 3 entities, got %d", len(all))
	}
	for i, e := range all {
		if e.ID != ids[i] {
			t.Fatalf("expected order to match insertion, index %d: got %d want %d", i, e.ID, ids[i])
		}
	}
}
