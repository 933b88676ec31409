package world

import "github.com/brineforge/arena-server/internal/geom"

// EntityKind is the single-byte wire tag sent to clients (spec §6). Several
// EntityTypes intentionally share a tag (e.g. AntiRTFBullet and Air2Air both
// serialize as 'a'); kind alone is therefore not enough to dispatch
// behavior, which is what EntityType is for.
type EntityKind byte

// EntityType is the internal discriminator used for the behavior registry
// and the static data catalog. It never collides, unlike EntityKind.
type EntityType int

const (
	TypeCastle EntityType = iota
	TypeRTFCastle
	TypeBasicFighter
	TypeTieFighter
	TypeSniper
	TypeMissile
	TypeArtillery
	TypeMortarShell
	TypeBullet
	TypeLaser
	TypeTurret
	TypeMissileLauncher
	TypeAntiRTFBullet
	TypeAir2Air
	TypeCarrier
	TypeWallV1
	TypeWallV2
	TypeChest
	TypeSeed
	TypeGreenThumb
	TypeGoldBar
	TypeNuke
	TypeRadiation
	TypeFort
	TypeBlock
	TypeNexus
	TypeNexusEnemy
	TypeNPCRed
	TypeNPCWhite
	TypeNPCBlack
	TypeNPCTarget
	EntityTypeCount
)

// EntityData is the static, immutable-per-type property row, generalizing
// the teacher's entity_data.go table: one row per EntityType, looked up by
// index rather than by map.
type EntityData struct {
	Type      EntityType
	Kind      EntityKind
	Name      string
	Width     float32
	Height    float32
	MaxHealth float32
	Mass      float32
	Cost      int
	Solid     bool
	Fixed     bool

	// Damage is the flat amount subtracted from the other party's health on
	// contact (spec §4.4 step 4: each side subtracts the other's collision
	// damage). Zero means contact with this kind hurts nobody.
	Damage float32

	// Editable marks kinds whose owner may re-issue Move commands after
	// placement (sent in the New frame so clients enable the drag handle).
	Editable bool
}

var entityDataTable [EntityTypeCount]EntityData

func registerEntityData(d EntityData) {
	entityDataTable[d.Type] = d
}

func init() {
	registerEntityData(EntityData{Type: TypeCastle, Kind: 'c', Name: "castle", Width: 60, Height: 60, MaxHealth: 1000, Mass: 3600, Fixed: true, Damage: 1})
	registerEntityData(EntityData{Type: TypeRTFCastle, Kind: 'R', Name: "rtf_castle", Width: 60, Height: 60, MaxHealth: 1500, Mass: 3600, Damage: 1})
	registerEntityData(EntityData{Type: TypeBasicFighter, Kind: 'f', Name: "basic_fighter", Width: 48, Height: 36, MaxHealth: 20, Mass: 1728, Cost: 10, Damage: 1, Editable: true})
	registerEntityData(EntityData{Type: TypeTieFighter, Kind: 't', Name: "tie_fighter", Width: 32, Height: 36, MaxHealth: 35, Mass: 1152, Cost: 20, Damage: 1, Editable: true})
	registerEntityData(EntityData{Type: TypeSniper, Kind: 's', Name: "sniper", Width: 72, Height: 20, MaxHealth: 15, Mass: 1440, Cost: 30, Damage: 1, Editable: true})
	registerEntityData(EntityData{Type: TypeMissile, Kind: 'h', Name: "missile", Width: 48, Height: 20, MaxHealth: 0.5, Mass: 960, Cost: 5, Damage: 0.5, Editable: true})
	registerEntityData(EntityData{Type: TypeArtillery, Kind: 'A', Name: "artillery", Width: 20, Height: 50, MaxHealth: 60, Mass: 1000, Cost: 50, Fixed: true})
	registerEntityData(EntityData{Type: TypeMortarShell, Kind: 'b', Name: "mortar_shell", Width: 4, Height: 4, MaxHealth: 1, Mass: 16, Damage: 3})
	registerEntityData(EntityData{Type: TypeBullet, Kind: 'b', Name: "bullet", Width: 3, Height: 1, MaxHealth: 1, Mass: 3, Damage: 1})
	registerEntityData(EntityData{Type: TypeLaser, Kind: 'b', Name: "laser", Width: 1, Height: 1, MaxHealth: 1, Mass: 1})
	registerEntityData(EntityData{Type: TypeTurret, Kind: 'T', Name: "turret", Width: 48, Height: 22, MaxHealth: 80, Mass: 1056, Cost: 35, Fixed: true})
	registerEntityData(EntityData{Type: TypeMissileLauncher, Kind: 'm', Name: "missile_launcher", Width: 48, Height: 22, MaxHealth: 70, Mass: 1056, Cost: 50, Fixed: true})
	registerEntityData(EntityData{Type: TypeAntiRTFBullet, Kind: 'a', Name: "anti_rtf_bullet", Width: 3, Height: 1, MaxHealth: 1, Mass: 3, Damage: 80})
	registerEntityData(EntityData{Type: TypeAir2Air, Kind: 'a', Name: "air_2_air", Width: 4, Height: 1, MaxHealth: 1, Mass: 4, Damage: 80})
	registerEntityData(EntityData{Type: TypeCarrier, Kind: 'K', Name: "carrier", Width: 400, Height: 160, MaxHealth: 400, Mass: 64000, Cost: 150, Damage: 2, Editable: true})
	registerEntityData(EntityData{Type: TypeWallV1, Kind: 'w', Name: "wall_v1", Width: 30, Height: 30, MaxHealth: 5, Mass: 900, Cost: 5, Fixed: true, Damage: 1})
	registerEntityData(EntityData{Type: TypeWallV2, Kind: 'w', Name: "wall_v2", Width: 60, Height: 60, MaxHealth: 5, Mass: 3600, Cost: 10, Fixed: true, Damage: 1})
	registerEntityData(EntityData{Type: TypeChest, Kind: 'C', Name: "chest", Width: 30, Height: 30, MaxHealth: 5, Mass: 900, Cost: 50, Fixed: true})
	registerEntityData(EntityData{Type: TypeSeed, Kind: 'S', Name: "seed", Width: 4, Height: 4, MaxHealth: 1, Mass: 4})
	registerEntityData(EntityData{Type: TypeGreenThumb, Kind: 'G', Name: "green_thumb", Width: 8, Height: 8, MaxHealth: 3, Mass: 64, Fixed: true})
	registerEntityData(EntityData{Type: TypeGoldBar, Kind: 'g', Name: "gold_bar", Width: 6, Height: 3, MaxHealth: 1, Mass: 18, Cost: 100})
	registerEntityData(EntityData{Type: TypeNuke, Kind: 'n', Name: "nuke", Width: 10, Height: 10, MaxHealth: 10, Mass: 100, Cost: 300, Damage: 2, Editable: true})
	registerEntityData(EntityData{Type: TypeRadiation, Kind: 'r', Name: "radiation", Width: 0, Height: 0, MaxHealth: 1, Mass: 0})
	registerEntityData(EntityData{Type: TypeFort, Kind: 'F', Name: "fort", Width: 24, Height: 24, MaxHealth: 120, Mass: 576, Cost: 60, Fixed: true})
	// Block is the only solid kind: positional pushback only runs for pairs
	// with a solid member, everything else overlaps freely.
	registerEntityData(EntityData{Type: TypeBlock, Kind: 'B', Name: "block", Width: 20, Height: 20, MaxHealth: 1e9, Mass: 1e9, Solid: true, Fixed: true, Damage: 2})
	registerEntityData(EntityData{Type: TypeNexus, Kind: 'N', Name: "nexus", Width: 60, Height: 60, MaxHealth: 3, Mass: 3600, Fixed: true})
	registerEntityData(EntityData{Type: TypeNexusEnemy, Kind: '&', Name: "nexus_enemy", Width: 10, Height: 6, MaxHealth: 25, Mass: 60, Cost: 20, Damage: 1})

	// NPCs (spec §2 item 4's "random rubble/NPC spawning", gated by the
	// config file's permit_npcs, glossary: self-spawned hostiles named
	// Red/White/Black/Target in the original source).
	registerEntityData(EntityData{Type: TypeNPCRed, Kind: 'd', Name: "npc_red", Width: 40, Height: 28, MaxHealth: 15, Mass: 1120, Cost: 15, Damage: 1})
	registerEntityData(EntityData{Type: TypeNPCWhite, Kind: 'e', Name: "npc_white", Width: 36, Height: 24, MaxHealth: 8, Mass: 864, Cost: 8})
	registerEntityData(EntityData{Type: TypeNPCBlack, Kind: 'i', Name: "npc_black", Width: 44, Height: 32, MaxHealth: 30, Mass: 1408, Cost: 25, Damage: 1})
	registerEntityData(EntityData{Type: TypeNPCTarget, Kind: 'j', Name: "npc_target", Width: 24, Height: 24, MaxHealth: 50, Mass: 576, Cost: 40, Fixed: true})
}

// TypeForKind resolves a wire kind tag plus placement variant (spec §6's
// Place(x, y, kind:u8, variant:u32)) to the internal EntityType. Variant
// currently only disambiguates the two wall sizes; every other kind
// ignores it. The second return is false for tags that are not placeable
// from the wire at all (projectiles, radiation, NPCs, nexus enemies).
func TypeForKind(kind byte, variant uint32) (EntityType, bool) {
	switch kind {
	case 'c':
		return TypeCastle, true
	case 'R':
		return TypeRTFCastle, true
	case 'f':
		return TypeBasicFighter, true
	case 't':
		return TypeTieFighter, true
	case 's':
		return TypeSniper, true
	case 'h':
		return TypeMissile, true
	case 'A':
		return TypeArtillery, true
	case 'T':
		return TypeTurret, true
	case 'm':
		return TypeMissileLauncher, true
	case 'K':
		return TypeCarrier, true
	case 'w':
		if variant == 1 {
			return TypeWallV1, true
		}
		return TypeWallV2, true
	case 'n':
		return TypeNuke, true
	case 'F':
		return TypeFort, true
	case 'B':
		return TypeBlock, true
	default:
		return TypeBullet, false
	}
}

func DataFor(t EntityType) EntityData {
	return entityDataTable[t]
}

// Entity is the per-instance record: identity plus the component set. Not
// every field is meaningful for every EntityType; behaviors consult only
// the components their kind actually uses, mirroring the teacher's sparse
// EntityExtra union.
type Entity struct {
	ID     EntityID
	Type   EntityType
	Banner BannerID
	Team   TeamID

	Body   PhysicsBody
	Health Health

	Shooter   *Shooter
	Targeting *Targeting
	Carrier   *Carrier
	Carried   Carried

	TTL        Ticks // ticks remaining before auto-despawn; 0 means no limit
	Explosions []ExplosionMode

	// Upgrades is the ordered list of upgrade tags applied so far ("b",
	// "b2", "f", ...); repeated shop buys append the next tier of a branch.
	Upgrades []string

	Goal GoalPose

	// Pilot is the live RTF flight input set, nil for anything that is not a
	// player-piloted castle.
	Pilot *PilotState

	// ContactDamage, when non-zero, overrides the static per-type Damage
	// for this one entity — a laser round carries its shooter's configured
	// intensity rather than a catalog constant.
	ContactDamage float32

	// Forts lists fort entity ids granting this entity an extra life, oldest
	// first; each is consumed in turn by ConsumeFort as the entity would
	// otherwise die (spec glossary: Fort).
	Forts []EntityID

	DeathSubscribers []EntityID

	// EffectRadius is a per-instance radius of influence, used by kinds
	// whose area of effect is configured at placement time rather than
	// fixed by EntityData (spec §6 ext: "{t:\"nexus\", x, y, effect_radius}"
	// — distinct nexus placements in the same match can have different
	// radii, so this cannot live on the shared per-EntityType behavior).
	EffectRadius float32

	// RadiationDecay is the per-tick multiplier applied to Health.Current
	// for a radiation-field entity, derived from its ExplosionMode's
	// Halflife at spawn (spec §4 "exploder/Radiation recipes": strength
	// halves every Halflife ticks). Zero for every non-radiation kind.
	RadiationDecay float32

	removed bool
}

// ConsumeFort pops the oldest still-live fort in e.Forts, if any, restoring
// e's health to max and teleporting it to the fort's position in place of
// dying, consuming the fort in the process. Reports whether a fort rescued
// e this time.
func (e *Entity) ConsumeFort(store *EntityStore) bool {
	for len(e.Forts) > 0 {
		id := e.Forts[0]
		e.Forts = e.Forts[1:]
		fort, ok := store.Get(id)
		if !ok {
			continue
		}
		e.Health.Current = e.Health.Max
		e.Body.Shape.X = fort.Body.Shape.X
		e.Body.Shape.Y = fort.Body.Shape.Y
		fort.MarkRemoved()
		store.Remove(id)
		return true
	}
	return false
}

// GoalPose is the exposed target pose steering behaviors push entities
// toward (spec §3's "exposed goal pose"): e.g. a fighter's patrol waypoint,
// or a missile's intercept aim point.
type GoalPose struct {
	Valid    bool
	Position geom.Vector2
	Angle    Angle
}

func (e *Entity) Kind() EntityKind {
	return DataFor(e.Type).Kind
}

// HasUpgrade reports whether tag has already been applied to e.
func (e *Entity) HasUpgrade(tag string) bool {
	for _, u := range e.Upgrades {
		if u == tag {
			return true
		}
	}
	return false
}

// CollisionDamage is the amount this entity deals to whatever it touches.
func (e *Entity) CollisionDamage() float32 {
	if e.ContactDamage > 0 {
		return e.ContactDamage
	}
	return DataFor(e.Type).Damage
}

func (e *Entity) Dead() bool {
	return e.removed
}

func (e *Entity) MarkRemoved() {
	e.removed = true
}
