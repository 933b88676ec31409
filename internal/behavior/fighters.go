package behavior

import (
	"github.com/brineforge/arena-server/internal/geom"
	"github.com/brineforge/arena-server/internal/world"
)

// fighter implements the shared accelerate-toward-goal pattern used by all
// three fighter variants, mirroring the original source's fighters.rs where
// BasicFighter/TieFighter/Sniper differ only in acceleration, friction, and
// weapon parameters (set via the static EntityData/Shooter rows, not here).
// Near the goal the fighter parks: it snaps its heading to the goal pose's
// angle and lets friction bleed off the remaining speed.
type fighter struct {
	accel    float32
	friction float32
}

const fighterArriveDistance = 10

func (f *fighter) Tick(ctx *Context) {
	e := ctx.Entity
	if e.Carried.IsCarried {
		return
	}

	if e.Goal.Valid {
		toGoal := e.Goal.Position.Sub(e.Body.Shape.Center())
		if toGoal.Magnitude() < fighterArriveDistance {
			e.Body.Shape.A = float32(e.Goal.Angle)
		} else {
			e.Body.Velocity = e.Body.Velocity.AddScaled(toGoal.Unit(), f.accel)
			e.Body.Shape.A = e.Body.Velocity.Angle()
		}
	}
	e.Body.Velocity = e.Body.Velocity.Scale(f.friction)

	if e.Shooter != nil {
		fire(ctx)
	}
}

// fire spawns one projectile per muzzle when the shooter's reload allows it
// this tick, aimed along the body angle adjusted by the muzzle's relative
// angle.
func fire(ctx *Context) {
	s := ctx.Entity.Shooter
	if !s.TryFire() {
		return
	}
	bodyAngle := ctx.Entity.Body.Shape.A
	for _, muzzle := range s.MuzzleAngles {
		spawnProjectile(ctx, s.Bullet, bodyAngle+float32(muzzle))
	}
}

func spawnProjectile(ctx *Context, kind world.BulletKind, angle float32) {
	t := world.TypeBullet
	switch kind {
	case world.BulletKindAntiRTF:
		t = world.TypeAntiRTFBullet
	case world.BulletKindLaser:
		t = world.TypeLaser
	case world.BulletKindMortar:
		t = world.TypeMortarShell
	}
	s := ctx.Entity.Shooter
	data := world.DataFor(t)
	origin := ctx.Entity.Body.Shape.Center().Add(geom.FromPolar(ctx.Entity.Body.Shape.W/2+data.Width, angle))
	body := world.NewPhysicsBody(origin.X, origin.Y, data.Width, data.Height, angle)
	body.Velocity = geom.FromPolar(projectileSpeed(t, s), angle)
	e := &world.Entity{
		Type:   t,
		Banner: ctx.Entity.Banner,
		Team:   ctx.Entity.Team,
		Body:   body,
		Health: world.NewHealth(data.MaxHealth),
		TTL:    projectileTTL(t, s),
	}
	if t == world.TypeAntiRTFBullet {
		e.Targeting = &world.Targeting{Mode: world.TargetingNearest, Filter: world.FilterRealTimeFighter, MaxRange: 2000}
	}
	if t == world.TypeLaser && s != nil {
		e.ContactDamage = s.LaserIntensity
	}
	ctx.Spawn(e)
}

const laserSpeed = 90

// projectileTTL derives a round's lifetime from its shooter: a laser flies
// until it covers its configured range, everything else lives its
// shooter's range in ticks, falling back to a flat couple of seconds.
func projectileTTL(t world.EntityType, s *world.Shooter) world.Ticks {
	if t == world.TypeLaser && s != nil && s.LaserRange > 0 {
		return world.Ticks(s.LaserRange / laserSpeed)
	}
	if s != nil && s.Range > 0 {
		return world.Ticks(s.Range)
	}
	return world.SecondsToTicks(2)
}

func projectileSpeed(t world.EntityType, s *world.Shooter) float32 {
	switch t {
	case world.TypeLaser:
		return laserSpeed
	case world.TypeMortarShell:
		if s != nil && s.MortarSpeed > 0 {
			return s.MortarSpeed / world.FPS * 3
		}
		return 60
	default:
		return 30
	}
}

func (f *fighter) DoesGrantA2A() bool {
	return true
}

// OnUpgrade applies the "laser" refit: the fighter's gun becomes a
// continuous-fire laser emitter.
func (f *fighter) OnUpgrade(ctx *Context) {
	e := ctx.Entity
	if e.Shooter == nil || !e.HasUpgrade("laser") {
		return
	}
	e.Shooter.Bullet = world.BulletKindLaser
	e.Shooter.LaserIntensity = 0.3
	e.Shooter.LaserRange = 50000
	e.Shooter.Reload = 1
}

func init() {
	Register(world.TypeBasicFighter, &fighter{accel: 0.25, friction: 0.95})
	Register(world.TypeTieFighter, &fighter{accel: 0.35, friction: 0.95})
	Register(world.TypeSniper, &fighter{accel: 1.2, friction: 0.9})
}
