package placement

import (
	"testing"

	"github.com/brineforge/arena-server/internal/world"
)

func TestWithinCastleRequiresNearbyCastle(t *testing.T) {
	w := world.NewWorld(5000, 1)
	banner := w.Banners.Create("tester")
	castle := &world.Entity{Type: world.TypeCastle, Banner: banner.ID, Body: world.NewPhysicsBody(100, 100, 60, 60, 0), Health: world.NewHealth(1000)}
	w.Entities.Insert(castle)

	if !Legal(w, banner.ID, WithinCastle, 110, 110, 12, 8) {
		t.Fatal("expected placement near own castle to be legal")
	}
	if Legal(w, banner.ID, WithinCastle, 4000, 4000, 12, 8) {
		t.Fatal("expected placement far from castle to be illegal")
	}
}

func TestAwayFromThingsRejectsOverlap(t *testing.T) {
	w := world.NewWorld(5000, 1)
	banner := w.Banners.Create("tester")
	wall := &world.Entity{Type: world.TypeWallV1, Banner: banner.ID, Body: world.NewPhysicsBody(200, 200, 16, 16, 0), Health: world.NewHealth(40)}
	w.Entities.Insert(wall)

	if Legal(w, banner.ID, AwayFromThings, 201, 201, 16, 16) {
		t.Fatal("expected placement on top of an existing wall to be illegal")
	}
	if !Legal(w, banner.ID, AwayFromThings, 4000, 4000, 16, 16) {
		t.Fatal("expected placement far from everything to be legal")
	}
}

func TestWallTrackerEnforcesPerTurnCap(t *testing.T) {
	wt := NewWallTracker()
	wt.Reset() // enter turn 1, where the first-turn bonus applies
	banner := world.BannerID(1)
	firstTurnCap := WallCapPerTurn + WallCapFirstTurnBonus
	for i := 0; i < firstTurnCap; i++ {
		if !wt.TryPlaceWall(banner) {
			t.Fatalf("expected wall %d to be within first-turn cap", i)
		}
	}
	if wt.TryPlaceWall(banner) {
		t.Fatal("expected wall beyond first-turn cap to be rejected")
	}

	wt.Reset() // enter turn 2, bonus no longer applies
	for i := 0; i < WallCapPerTurn; i++ {
		if !wt.TryPlaceWall(banner) {
			t.Fatalf("expected wall %d to be within cap", i)
		}
	}
	if wt.TryPlaceWall(banner) {
		t.Fatal("expected wall beyond cap to be rejected")
	}

	wt.BumpCap(banner)
	wt.Reset()
	if !wt.TryPlaceWall(banner) || !wt.TryPlaceWall(banner) || !wt.TryPlaceWall(banner) || !wt.TryPlaceWall(banner) {
		t.Fatal("expected bumped cap to allow 4 walls")
	}
	if wt.TryPlaceWall(banner) {
		t.Fatal("expected wall beyond bumped cap to be rejected")
	}
}
