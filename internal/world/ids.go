package world

// EntityID is the stable, externally-visible handle for an entity. It is
// unique for the lifetime of a match and is never reused, even after the
// entity it named is removed. 0 is reserved as EntityIDInvalid.
type EntityID uint32

const EntityIDInvalid = EntityID(0)

// EntityIDAllocator hands out monotonically increasing EntityIDs.
type EntityIDAllocator struct {
	next EntityID
}

func (a *EntityIDAllocator) Next() EntityID {
	a.next++
	return a.next
}

// BannerID identifies a player's persistent identity for the duration of a
// match. 0 is the reserved system banner and is never allocated to a player.
type BannerID uint32

const SystemBanner = BannerID(0)

type BannerIDAllocator struct {
	next BannerID
}

func (a *BannerIDAllocator) Next() BannerID {
	a.next++
	return a.next
}

// TeamID identifies a team.
type TeamID uint32

const TeamIDInvalid = TeamID(0)

type TeamIDAllocator struct {
	next TeamID
}

func (a *TeamIDAllocator) Next() TeamID {
	a.next++
	return a.next
}
