package world

import "github.com/brineforge/arena-server/internal/geom"

// PhysicsBody is the movement/shape component shared by every entity
// (spec §3, ported from the teacher's world.PhysicsObject/Transform split
// and the original Rust PhysicsObject).
type PhysicsBody struct {
	Shape    geom.Box
	OldShape geom.Box

	Velocity        geom.Vector2
	AngularVelocity float32

	Mass        float32
	Solid       bool
	Fixed       bool
	Restitution float32
	PortalWrap  bool
	SpeedCap    float32 // 0 means uncapped
}

// NewPhysicsBody builds a body with mass defaulted to w*h, matching
// PhysicsObject::new in the original source.
func NewPhysicsBody(x, y, w, h, a float32) PhysicsBody {
	shape := geom.Box{X: x, Y: y, W: w, H: h, A: a}
	return PhysicsBody{
		Shape:       shape,
		OldShape:    shape,
		Mass:        w * h,
		Restitution: 0.5,
	}
}

// Translated/Rotated/Resized are the dirty bits computed from old vs current
// shape, used to decide whether a MoveObjectFull frame needs sending.
func (p *PhysicsBody) Translated() bool {
	return p.OldShape.X != p.Shape.X || p.OldShape.Y != p.Shape.Y
}

func (p *PhysicsBody) Rotated() bool {
	return p.OldShape.A != p.Shape.A
}

func (p *PhysicsBody) Resized() bool {
	return p.OldShape.W != p.Shape.W || p.OldShape.H != p.Shape.H
}

func (p *PhysicsBody) Dirty() bool {
	return p.Translated() || p.Rotated() || p.Resized()
}

// CommitTick snapshots the current shape as the "old" shape for next tick's
// dirty-bit computation. Must run once per entity per tick, after all
// movement and collision correction for that tick is finished.
func (p *PhysicsBody) CommitTick() {
	p.OldShape = p.Shape
}

func (p *PhysicsBody) Thrust(amount float32) {
	p.Velocity = p.Velocity.AddScaled(geom.FromPolar(1, p.Shape.A), amount)
}

// Step integrates one tick of motion: speed cap, then velocity into
// position and angular velocity into rotation. A portal-wrapping body
// (the RTF castle) re-enters on the opposite edge of the world; everything
// else is free to leave the play area and is cleaned up by TTL or distance
// rules, not the integrator. Fixed bodies never move.
func (p *PhysicsBody) Step(gameSize float32) {
	if p.Fixed {
		return
	}
	if p.SpeedCap > 0 {
		speed := p.Velocity.Magnitude()
		if speed > p.SpeedCap {
			p.Velocity = p.Velocity.Scale(p.SpeedCap / speed)
		}
	}
	p.Shape.X += p.Velocity.X
	p.Shape.Y += p.Velocity.Y
	p.Shape.A += p.AngularVelocity
	if p.PortalWrap && gameSize > 0 {
		p.Shape.X = wrapCoord(p.Shape.X, gameSize)
		p.Shape.Y = wrapCoord(p.Shape.Y, gameSize)
	}
}

func wrapCoord(v, size float32) float32 {
	for v < 0 {
		v += size
	}
	for v >= size {
		v -= size
	}
	return v
}

// Health tracks an entity's hit points and passive regeneration.
type Health struct {
	Max                float32
	Current            float32
	PassiveHealPerTick float32
	FriendlyFireProof  bool
}

func NewHealth(max float32) Health {
	return Health{Max: max, Current: max}
}

// Damage applies d points of damage and reports whether the entity died
// (current <= 0). Current is clamped to [0, Max] (spec invariant #1).
func (h *Health) Damage(d float32) bool {
	h.Current -= d
	if h.Current < 0 {
		h.Current = 0
	}
	return h.Current <= 0
}

func (h *Health) Heal(amount float32) {
	h.Current += amount
	if h.Current > h.Max {
		h.Current = h.Max
	}
}

func (h *Health) Tick() {
	if h.PassiveHealPerTick != 0 {
		h.Heal(h.PassiveHealPerTick)
	}
}

func (h Health) Percent() float32 {
	if h.Max <= 0 {
		return 0
	}
	return h.Current / h.Max
}

// BulletKind is the projectile behavior a Shooter fires.
type BulletKind int

const (
	BulletKindBullet BulletKind = iota
	BulletKindAntiRTF
	BulletKindLaser
	BulletKindMortar
)

// RepeaterState realizes burst-fire: after the first shot, Remaining further
// shots fire every RepeatCooldown ticks without waiting for the full Reload.
type RepeaterState struct {
	Remaining      int
	Max            int
	RepeatCooldown Ticks
	cooldown       Ticks
}

// Shooter is the weapon-mount component.
type Shooter struct {
	Enabled       bool
	ReloadCounter Ticks
	Reload        Ticks
	MuzzleAngles  []Angle // relative to body angle
	Range         float32 // projectile lifetime in ticks; 0 means default
	Suppress      bool
	Bullet        BulletKind

	LaserIntensity float32
	LaserRange     float32
	MortarRange    float32
	MortarArc      float32
	MortarSpeed    float32

	Repeater RepeaterState
}

// TryFire advances reload counters and reports whether the shooter can fire
// this tick (and, if so, consumes the shot).
func (s *Shooter) TryFire() bool {
	if !s.Enabled || s.Suppress {
		return false
	}
	if s.Repeater.Remaining > 0 {
		if s.Repeater.cooldown > 0 {
			s.Repeater.cooldown--
			return false
		}
		s.Repeater.Remaining--
		s.Repeater.cooldown = s.Repeater.RepeatCooldown
		return true
	}
	if s.ReloadCounter > 0 {
		s.ReloadCounter--
		return false
	}
	s.ReloadCounter = s.Reload
	if s.Repeater.Max > 0 {
		s.Repeater.Remaining = s.Repeater.Max
		s.Repeater.cooldown = s.Repeater.RepeatCooldown
	}
	return true
}

// TargetingMode selects how a Targeting component chooses its target.
type TargetingMode int

const (
	TargetingNone TargetingMode = iota
	TargetingNearest
	TargetingID
)

// TargetingFilter restricts which entities are eligible targets.
type TargetingFilter int

const (
	FilterAny TargetingFilter = iota
	FilterFighters
	FilterCastles
	FilterRealTimeFighter
	FilterFarmer
)

type Targeting struct {
	Mode     TargetingMode
	TargetID EntityID // valid when Mode == TargetingID
	Filter   TargetingFilter
	MinRange float32
	MaxRange float32

	// VectorTo is the computed world-space vector from self to the best
	// target this tick, or the zero value with Valid=false if none qualify
	// (spec invariant: nil unless an entity with TargetID exists and passes
	// the filter, for TargetingMode == TargetingID).
	VectorTo geom.Vector2
	Valid    bool
}

// Carried describes an entity's relationship to the carrier holding it.
type Carried struct {
	IsCarried bool
	CarrierID EntityID
	Berth     int
}

// Carrier is the component granting an entity the ability to hold others.
type Carrier struct {
	Capacity         int
	Carried          []EntityID
	AcceptedKinds    map[byte]bool
	CanUpdateCarried bool
}

func (c *Carrier) Accepts(kind byte) bool {
	if c.Capacity <= len(c.Carried) {
		return false
	}
	return c.AcceptedKinds[kind]
}

// ExplosionMode describes one ring of a radiation-style explosion an entity
// leaves behind on death. Halflife is in ticks.
type ExplosionMode struct {
	Radius   float32
	Halflife float32
	Strength float32
}

// PilotState is the direct-flight input set a real-time-fighter castle's
// owner streams in over PilotRTF frames; held between frames so the same
// inputs keep applying every tick until the next frame arrives.
type PilotState struct {
	Thrust bool
	Left   bool
	Right  bool
	Brake  bool
	Shoot  bool
}
