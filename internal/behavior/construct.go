package behavior

import (
	"math/rand"

	"github.com/brineforge/arena-server/internal/world"
)

// New builds the default Entity record for a placeable EntityType at
// (x, y, a), wiring up the kind-specific component defaults the spec's
// §4.3 behavior table calls out (reload period, muzzle layout, targeting
// filter/range, carrier capacity, ...). Ported from the teacher's
// per-ship-type spawn constructors, generalized into one switch over
// EntityType since this domain's "ship classes" are a much larger, more
// heterogeneous set of buildable kinds.
func New(t world.EntityType, banner world.BannerID, x, y, a float32) *world.Entity {
	data := world.DataFor(t)
	body := world.NewPhysicsBody(x, y, data.Width, data.Height, a)
	body.Solid = data.Solid
	body.Fixed = data.Fixed

	e := &world.Entity{
		Type:   t,
		Banner: banner,
		Body:   body,
		Health: world.NewHealth(data.MaxHealth),
	}

	switch t {
	case world.TypeCastle:
		e.Shooter = &world.Shooter{Enabled: true, Reload: 30, MuzzleAngles: []world.Angle{0}, Bullet: world.BulletKindBullet}
		e.Health.PassiveHealPerTick = 0.1
	case world.TypeRTFCastle:
		e.Shooter = &world.Shooter{Enabled: true, Reload: 30, MuzzleAngles: []world.Angle{-world.Pi / 2}, Bullet: world.BulletKindBullet}
		e.Health.PassiveHealPerTick = 0.002
		e.Body.PortalWrap = true
		e.Body.SpeedCap = 20
		e.Pilot = &world.PilotState{}
	case world.TypeBasicFighter:
		e.Shooter = &world.Shooter{Enabled: true, Reload: 30, MuzzleAngles: []world.Angle{0}, Bullet: world.BulletKindBullet}
		e.Goal = world.GoalPose{Valid: true, Position: body.Shape.Center(), Angle: world.ToAngle(a)}
	case world.TypeTieFighter:
		e.Shooter = &world.Shooter{
			Enabled: true, Reload: 40, MuzzleAngles: []world.Angle{0}, Bullet: world.BulletKindBullet,
			Repeater: world.RepeaterState{Max: 1, RepeatCooldown: 3},
		}
		e.Goal = world.GoalPose{Valid: true, Position: body.Shape.Center(), Angle: world.ToAngle(a)}
	case world.TypeSniper:
		e.Shooter = &world.Shooter{Enabled: true, Reload: 80, MuzzleAngles: []world.Angle{0}, Range: 90, Bullet: world.BulletKindBullet}
		e.Goal = world.GoalPose{Valid: true, Position: body.Shape.Center(), Angle: world.ToAngle(a)}
	case world.TypeArtillery:
		e.Targeting = &world.Targeting{Mode: world.TargetingNearest, Filter: world.FilterAny, MaxRange: 400}
		e.Shooter = &world.Shooter{
			Enabled: true, Reload: 100, MuzzleAngles: []world.Angle{0}, Range: 120, Bullet: world.BulletKindMortar,
			MortarRange: 200, MortarArc: 0, MortarSpeed: 600,
		}
	case world.TypeTurret:
		e.Targeting = &world.Targeting{Mode: world.TargetingNearest, Filter: world.FilterFighters, MinRange: 0, MaxRange: 500}
		e.Shooter = &world.Shooter{Enabled: true, Reload: 30, MuzzleAngles: []world.Angle{0}, Bullet: world.BulletKindBullet}
	case world.TypeMissileLauncher:
		e.Targeting = &world.Targeting{Mode: world.TargetingNearest, Filter: world.FilterRealTimeFighter, MinRange: 0, MaxRange: 1000}
		e.Shooter = &world.Shooter{Enabled: true, Reload: 150, Range: 1000, Bullet: world.BulletKindAntiRTF}
	case world.TypeCarrier:
		e.Carrier = &world.Carrier{
			Capacity: 10,
			AcceptedKinds: map[byte]bool{
				'f': true, 'h': true, 's': true, 't': true, 'T': true, 'n': true, 'm': true,
			},
			// Carried turrets keep tracking and shooting from the deck.
			CanUpdateCarried: true,
		}
		e.Health.PassiveHealPerTick = 0.02
		e.Health.FriendlyFireProof = true
		e.Body.SpeedCap = 12
	case world.TypeNuke:
		e.Goal = world.GoalPose{Valid: true, Position: body.Shape.Center(), Angle: world.ToAngle(a)}
		e.TTL = world.Ticks(500)
	case world.TypeNexus:
		e.Health.FriendlyFireProof = true
	case world.TypeWallV1, world.TypeWallV2:
		e.TTL = world.Ticks(1800 + rand.Intn(601))
	case world.TypeChest:
		e.TTL = world.Ticks(4800)
	case world.TypeAir2Air:
		e.Targeting = &world.Targeting{Mode: world.TargetingNone, Filter: world.FilterRealTimeFighter, MaxRange: 2000}
		e.TTL = world.Ticks(300)
	case world.TypeNPCRed:
		e.Targeting = &world.Targeting{Mode: world.TargetingNearest, Filter: world.FilterAny, MaxRange: 600}
		e.Shooter = &world.Shooter{Enabled: true, Reload: 50, MuzzleAngles: []world.Angle{0}, Bullet: world.BulletKindBullet}
	case world.TypeNPCWhite:
		e.Goal = world.GoalPose{Valid: true, Position: body.Shape.Center(), Angle: world.ToAngle(a)}
	case world.TypeNPCBlack:
		e.Targeting = &world.Targeting{Mode: world.TargetingNearest, Filter: world.FilterAny, MaxRange: 450}
		e.Shooter = &world.Shooter{Enabled: true, Reload: 70, MuzzleAngles: []world.Angle{0}, Bullet: world.BulletKindBullet}
	}

	return e
}
