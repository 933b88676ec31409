package behavior

import "github.com/brineforge/arena-server/internal/world"

// missileLauncher is a fixed emplacement that spawns guided missiles rather
// than firing bullets directly; the spawned missile entity picks up its own
// targeting vector on subsequent ticks via the world's targeting system.
type missileLauncher struct{}

func (missileLauncher) Tick(ctx *Context) {
	e := ctx.Entity
	if e.Targeting == nil || !e.Targeting.Valid || e.Shooter == nil {
		return
	}
	if !e.Shooter.TryFire() {
		return
	}
	angle := e.Targeting.VectorTo.Angle()
	spawnMissile(ctx, angle)
}

func spawnMissile(ctx *Context, angle float32) {
	data := world.DataFor(world.TypeMissile)
	origin := ctx.Entity.Body.Shape.Center()
	body := world.NewPhysicsBody(origin.X, origin.Y, data.Width, data.Height, angle)
	m := &world.Entity{
		Type:      world.TypeMissile,
		Banner:    ctx.Entity.Banner,
		Team:      ctx.Entity.Team,
		Body:      body,
		Health:    world.NewHealth(data.MaxHealth),
		TTL:       world.SecondsToTicks(8),
		Targeting: &world.Targeting{Mode: world.TargetingNearest, Filter: world.FilterRealTimeFighter, MaxRange: 1000},
	}
	ctx.Spawn(m)
}

func init() {
	Register(world.TypeMissileLauncher, missileLauncher{})
}
