package engine

import (
	"math"
	"math/rand"

	"github.com/brineforge/arena-server/internal/behavior"
	"github.com/brineforge/arena-server/internal/world"
)

// rubbleSpawnInterval is how often, in ticks, one random piece of rubble
// appears during Play (spec §4.5 step 6).
const rubbleSpawnInterval = world.FPS * 8

// scatterRubble is the Waiting->Strategy start sequence (spec §4.5): scatter
// min(floor(gamesize^2/1e6), 300) pieces of rubble across the map.
func scatterRubble(h *Hub) {
	count := int(h.World.GameSize * h.World.GameSize / 1e6)
	if count > 300 {
		count = 300
	}
	for i := 0; i < count; i++ {
		spawnRandomRubble(h)
	}
}

func spawnRandomRubble(h *Hub) {
	x := rand.Float32() * h.World.GameSize
	y := rand.Float32() * h.World.GameSize
	angle := rand.Float32() * 2 * math.Pi

	kind := world.TypeWallV1
	switch rand.Intn(4) {
	case 1:
		kind = world.TypeWallV2
	case 2:
		kind = world.TypeChest
	case 3:
		kind = world.TypeGreenThumb
	}
	e := behavior.New(kind, world.SystemBanner, x, y, float32(angle))
	h.World.Entities.Insert(e)

	if h.PermitNPCs {
		spawnRandomNPC(h)
	}
}

// npcKinds are the four hostile/neutral filler kinds the original source's
// place_random_npc drops alongside rubble (spec §4.5 step 6's "optionally
// one NPC"), weighted the same way: Red and White twice as likely as
// Black or Target.
var npcKinds = [6]world.EntityType{
	world.TypeNPCRed, world.TypeNPCRed,
	world.TypeNPCWhite, world.TypeNPCWhite,
	world.TypeNPCBlack, world.TypeNPCTarget,
}

// spawnRandomNPC drops one hostile filler entity at a random map point, a
// safe distance from any living castle, matching the original's
// place_random_npc (it only runs when there are living players and the
// match is not an all-RTF continuous-combat lobby, spec §4.5 step 2).
func spawnRandomNPC(h *Hub) {
	if h.World.LivingPlayers() == 0 || h.World.NonRTFCastles() == 0 {
		return
	}
	for attempt := 0; attempt < 8; attempt++ {
		x := rand.Float32() * h.World.GameSize
		y := rand.Float32() * h.World.GameSize
		if tooCloseToACastle(h, x, y) {
			continue
		}
		kind := npcKinds[rand.Intn(len(npcKinds))]
		angle := rand.Float32() * 2 * math.Pi
		e := behavior.New(kind, world.SystemBanner, x, y, float32(angle))
		h.World.Entities.Insert(e)
		return
	}
}

func tooCloseToACastle(h *Hub, x, y float32) bool {
	for _, e := range h.World.Entities.All() {
		if e.Type != world.TypeCastle && e.Type != world.TypeRTFCastle {
			continue
		}
		center := e.Body.Shape.Center()
		if abs32(center.X-x) < 400 && abs32(center.Y-y) < 400 {
			return true
		}
	}
	return false
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
