// Package behavior dispatches per-tick logic for each entity kind, keyed by
// world.EntityType rather than the wire-visible EntityKind (which can
// collide, as with AntiRTFBullet and Air2Air both tagging 'a'). Generalized
// from the teacher's per-entity-type switch in server/world/update.go into a
// registry of small interfaces, the way the spec's design notes (§9) permit.
package behavior

import "github.com/brineforge/arena-server/internal/world"

// Context is everything a behavior needs to act on one entity for one tick,
// without behaviors reaching back into engine internals directly.
type Context struct {
	World  *world.World
	Entity *world.Entity
	Spawn  func(e *world.Entity) world.EntityID
	Kill   func(id world.EntityID)
}

// Behavior is the mandatory per-tick hook every registered EntityType must
// implement.
type Behavior interface {
	Tick(ctx *Context)
}

// Optional hooks. A behavior implements whichever of these apply to its
// kind; dispatch uses a type assertion to check, mirroring how io.Closer
// etc. are optionally implemented in idiomatic Go rather than forcing every
// behavior to stub out every hook.

type DeathHandler interface {
	OnDie(ctx *Context)
}

// Collidable reports whether this entity currently participates in
// collision at all (e.g. a radiation field does not; it damages by
// streaming instead).
type Collidable interface {
	DoesCollide(ctx *Context) bool
}

// KindCollider refines the pair test per opposing kind tag: a behavior
// implementing it can opt out of contact with specific tags (e.g. walls
// ignoring castles) without opting out of collision entirely.
type KindCollider interface {
	CollidesWithKind(kind byte) bool
}

// Costed reports the placement cost of a buildable entity type.
type Costed interface {
	Cost() int
}

// Capturer lets an entity act on another on contact (e.g. a chest or a
// gold bar crediting the toucher's banner with score).
type Capturer interface {
	Capture(ctx *Context, other *world.Entity)
}

type Upgradeable interface {
	OnUpgrade(ctx *Context)
}

// CarrierBehavior handles taking custody of another entity, iterating
// currently-carried entities, and releasing one back into the world.
type CarrierBehavior interface {
	OnCarry(ctx *Context, cargo *world.Entity) bool
	CarryIter(ctx *Context, fn func(cargo *world.Entity))
	DropCarry(ctx *Context, cargoID world.EntityID)
}

// A2AGranter marks entity types whose destruction grants the killer's
// banner one air-to-air round.
type A2AGranter interface {
	DoesGrantA2A() bool
}

// HealthStreamer marks entity types (e.g. radiation fields) that apply
// damage/healing continuously to everything in range rather than only on
// contact.
type HealthStreamer interface {
	DoStreamHealth(ctx *Context)
}

// Resurrector lets a kind intercept what would otherwise be a lethal
// health-zero event and handle its own revival in place of the normal
// remove-from-store death path — the nexus's "never permanently destroyed"
// objective (spec §4.3) rather than a Fort-style rescue, which only
// restores health without an occupant side effect.
type Resurrector interface {
	Resurrect(ctx *Context)
}

// SubscribedDeathHandler runs when an entity this one subscribed to (see
// world.Entity.DeathSubscribers) dies, e.g. a nexus crediting its
// occupants when one of its spawned enemies is destroyed.
type SubscribedDeathHandler interface {
	OnSubscribedDeath(ctx *Context, dead world.EntityID)
}

var registry [world.EntityTypeCount]Behavior


// Register binds a Behavior implementation to an EntityType. Called from
// each behavior file's init().
func Register(t world.EntityType, b Behavior) {
	registry[t] = b
}

func For(t world.EntityType) Behavior {
	return registry[t]
}

// Tick dispatches the per-tick behavior for one entity, if one is
// registered for its type.
func Tick(ctx *Context) {
	if b := registry[ctx.Entity.Type]; b != nil {
		b.Tick(ctx)
	}
}

// Die runs the death hook for one entity, if its behavior implements
// DeathHandler.
func Die(ctx *Context) {
	if b := registry[ctx.Entity.Type]; b != nil {
		if dh, ok := b.(DeathHandler); ok {
			dh.OnDie(ctx)
		}
	}
}

func DoesCollide(ctx *Context) bool {
	b := registry[ctx.Entity.Type]
	if b == nil {
		return true
	}
	if c, ok := b.(Collidable); ok {
		return c.DoesCollide(ctx)
	}
	return true
}

// KindsCollide applies both sides' per-tag collision filters (spec §4.4
// step 2): the pair is skipped only when a side explicitly refuses the
// other's tag.
func KindsCollide(a, b world.EntityType) bool {
	if kc, ok := registry[a].(KindCollider); ok && !kc.CollidesWithKind(byte(world.DataFor(b).Kind)) {
		return false
	}
	if kc, ok := registry[b].(KindCollider); ok && !kc.CollidesWithKind(byte(world.DataFor(a).Kind)) {
		return false
	}
	return true
}

func CostOf(t world.EntityType) int {
	b := registry[t]
	if b == nil {
		return world.DataFor(t).Cost
	}
	if c, ok := b.(Costed); ok {
		return c.Cost()
	}
	return world.DataFor(t).Cost
}
