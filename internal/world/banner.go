package world

import "strings"

// Banner is a player's persistent identity within a match: name, score,
// team affiliation, and the set of entities currently under their control.
// Generalized from the teacher's Player, which played the equivalent role
// for a single ship.
type Banner struct {
	ID       BannerID
	Name     string
	Team     TeamID
	Score    int
	Alive    bool
	A2A      int
	Entities []EntityID
}

// BannerTable owns banner allocation and lookup. Banner 0 (SystemBanner) is
// reserved and never cleared or reassigned (spec invariant).
type BannerTable struct {
	alloc   BannerIDAllocator
	banners map[BannerID]*Banner
	byName  map[string]BannerID
}

func NewBannerTable() *BannerTable {
	return &BannerTable{
		banners: map[BannerID]*Banner{SystemBanner: {ID: SystemBanner, Name: "system"}},
		byName:  map[string]BannerID{"system": SystemBanner},
	}
}

// Create allocates a new banner. If the requested name collides with an
// existing one (case-insensitively, matching ByName's lookup), a ".copy"
// suffix is appended (repeated as needed) rather than rejecting the
// request outright.
func (t *BannerTable) Create(name string) *Banner {
	unique := name
	for {
		if _, taken := t.byName[strings.ToLower(unique)]; !taken {
			break
		}
		unique += ".copy"
	}
	id := t.alloc.Next()
	b := &Banner{ID: id, Name: unique}
	t.banners[id] = b
	t.byName[strings.ToLower(unique)] = id
	return b
}

func (t *BannerTable) Get(id BannerID) (*Banner, bool) {
	b, ok := t.banners[id]
	return b, ok
}

func (t *BannerTable) ByName(name string) (*Banner, bool) {
	id, ok := t.byName[strings.ToLower(name)]
	if !ok {
		return nil, false
	}
	return t.Get(id)
}

// Remove deletes a banner other than the reserved system banner.
func (t *BannerTable) Remove(id BannerID) {
	if id == SystemBanner {
		return
	}
	if b, ok := t.banners[id]; ok {
		delete(t.byName, strings.ToLower(b.Name))
		delete(t.banners, id)
	}
}

func (t *BannerTable) All() []*Banner {
	out := make([]*Banner, 0, len(t.banners))
	for _, b := range t.banners {
		out = append(out, b)
	}
	return out
}
