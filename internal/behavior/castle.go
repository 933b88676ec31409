package behavior

import "github.com/brineforge/arena-server/internal/world"

// castle is a banner's home base. The plain variant is immovable and the
// primary win-condition target; the real-time-fighter variant flies under
// direct player input (PilotState), wraps at the world edge, and shares the
// same upgrade tree.
type castle struct {
	rtf bool
}

const (
	rtfThrust       = 0.6
	rtfTurnRate     = 0.1
	rtfTurnRateFast = 0.16
	rtfBrake        = 0.9
)

func (c *castle) Tick(ctx *Context) {
	e := ctx.Entity
	if !c.rtf || e.Pilot == nil {
		return
	}
	turn := float32(rtfTurnRate)
	if e.HasUpgrade("f3") {
		turn = rtfTurnRateFast
	}
	if e.Pilot.Left {
		e.Body.Shape.A -= turn
	}
	if e.Pilot.Right {
		e.Body.Shape.A += turn
	}
	if e.Pilot.Thrust {
		e.Body.Thrust(rtfThrust)
	}
	if e.Pilot.Brake {
		e.Body.Velocity = e.Body.Velocity.Scale(rtfBrake)
	}
	if e.Shooter != nil {
		e.Shooter.Suppress = !e.Pilot.Shoot
		if e.Pilot.Shoot {
			fire(ctx)
		}
	}
}

func (c *castle) OnDie(ctx *Context) {
	if b, ok := ctx.World.Banners.Get(ctx.Entity.Banner); ok {
		b.Alive = false
	}
}

// upgradeBranches maps a branch prefix to its tier chain; repeated shop
// buys of the same prefix step down the chain, and buying past the last
// tier is a no-op.
var upgradeBranches = map[string][]string{
	"b": {"b", "b2", "b3", "b4"},
	"f": {"f", "f2", "f3"},
	"h": {"h", "h2", "h3", "h4"},
}

// NextUpgradeTier returns the next unapplied tag in branch's chain for e,
// or false when the branch is unknown or already maxed out.
func NextUpgradeTier(e *world.Entity, branch string) (string, bool) {
	chain, ok := upgradeBranches[branch]
	if !ok {
		return "", false
	}
	for _, tag := range chain {
		if !e.HasUpgrade(tag) {
			return tag, true
		}
	}
	return "", false
}

// OnUpgrade applies the effect of the most recently appended upgrade tag.
// Each tier's effect is cumulative with the ones before it in the chain.
func (c *castle) OnUpgrade(ctx *Context) {
	e := ctx.Entity
	if len(e.Upgrades) == 0 {
		return
	}
	switch e.Upgrades[len(e.Upgrades)-1] {
	case "b":
		if e.Shooter != nil {
			e.Shooter.Reload = 12
		}
	case "b2":
		if e.Shooter != nil {
			e.Shooter.Repeater = world.RepeaterState{Max: 1, RepeatCooldown: 1}
		}
	case "b3":
		if e.Shooter != nil {
			e.Shooter.Range = 80
		}
	case "b4":
		if e.Shooter != nil {
			e.Shooter.Bullet = world.BulletKindLaser
			e.Shooter.LaserIntensity = 3.0
			e.Shooter.LaserRange = 5000
			e.Shooter.Reload = 10
		}
	case "f":
		e.Body.SpeedCap = 30
	case "f2":
		e.Body.SpeedCap = 50
	case "f3":
		// Turn-rate bump read live by Tick via HasUpgrade.
	case "h":
		e.Health.PassiveHealPerTick = 0.005
	case "h2":
		scaleMaxHealth(e, 5)
	case "h3":
		e.Health.PassiveHealPerTick = 0.01
	case "h4":
		scaleMaxHealth(e, 8)
	}
}

// scaleMaxHealth re-bases max health to factor x the static catalog value,
// preserving the current damage fraction.
func scaleMaxHealth(e *world.Entity, factor float32) {
	base := world.DataFor(e.Type).MaxHealth
	frac := e.Health.Percent()
	e.Health.Max = base * factor
	e.Health.Current = e.Health.Max * frac
}

func init() {
	Register(world.TypeCastle, &castle{})
	Register(world.TypeRTFCastle, &castle{rtf: true})
}
