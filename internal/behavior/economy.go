package behavior

import (
	"math/rand"

	"github.com/brineforge/arena-server/internal/world"
)

// greenThumb is a passive, fixed farmer: every plantInterval ticks it drops
// a Seed at a random nearby point, which itself matures into a Chest once
// its TTL elapses (glossary: "Green thumb: passive farmer; periodically
// plants Seeds that grow into Chests"). Its planting cadence is tracked in
// a sidecar map keyed by entity id, the same pattern nexus.go uses for its
// own per-instance place_counter, since Entity has no generic per-kind
// cooldown field to spare.
type greenThumb struct{}

var greenThumbTimers = map[world.EntityID]int{}

const plantInterval = world.FPS * 6
const plantScatterRadius = 120
const seedGrowSeconds = 20

// SeedGrowTicks is a seed's full maturation time; the engine derives the
// SeedCompletion progress fraction from it when broadcasting.
const SeedGrowTicks = world.Ticks(seedGrowSeconds * world.FPS)

func (greenThumb) Tick(ctx *Context) {
	id := ctx.Entity.ID
	t, ok := greenThumbTimers[id]
	if !ok {
		t = plantInterval
	}
	t--
	if t > 0 {
		greenThumbTimers[id] = t
		return
	}
	greenThumbTimers[id] = plantInterval
	plantSeed(ctx)
}

func plantSeed(ctx *Context) {
	center := ctx.Entity.Body.Shape.Center()
	dx := (rand.Float32()*2 - 1) * plantScatterRadius
	dy := (rand.Float32()*2 - 1) * plantScatterRadius
	data := world.DataFor(world.TypeSeed)
	body := world.NewPhysicsBody(center.X+dx, center.Y+dy, data.Width, data.Height, 0)
	e := &world.Entity{
		Type:   world.TypeSeed,
		Banner: world.SystemBanner,
		Body:   body,
		Health: world.NewHealth(data.MaxHealth),
		TTL:    world.SecondsToTicks(seedGrowSeconds),
	}
	ctx.Spawn(e)
}

// seed sits still until its TTL elapses, at which point it matures into a
// Chest rather than simply despawning.
type seed struct{}

func (seed) Tick(ctx *Context) {
	if ctx.Entity.TTL == 1 {
		matureIntoChest(ctx)
		ctx.Kill(ctx.Entity.ID)
	}
}

func matureIntoChest(ctx *Context) {
	data := world.DataFor(world.TypeChest)
	body := world.NewPhysicsBody(ctx.Entity.Body.Shape.X, ctx.Entity.Body.Shape.Y, data.Width, data.Height, 0)
	body.Fixed = true
	e := &world.Entity{
		Type:   world.TypeChest,
		Banner: world.SystemBanner,
		Body:   body,
		Health: world.NewHealth(data.MaxHealth),
	}
	ctx.Spawn(e)
}

// goldBar is a pure pickup: it despawns the instant anything touches it,
// via the collision resolver's capture step, crediting the toucher's score.
type goldBar struct{}

func (goldBar) Tick(ctx *Context) {
	if ctx.Entity.TTL == 1 {
		ctx.Kill(ctx.Entity.ID)
	}
}

func (goldBar) Capture(ctx *Context, other *world.Entity) {
	if b, ok := ctx.World.Banners.Get(other.Banner); ok {
		b.Score += goldBarBounty
	}
	ctx.Kill(ctx.Entity.ID)
}

const goldBarBounty = 100

func init() {
	Register(world.TypeSeed, seed{})
	Register(world.TypeGreenThumb, greenThumb{})
	Register(world.TypeGoldBar, goldBar{})
}
