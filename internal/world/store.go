package world

// defaultZoneGridSize is the uniform N×N bucket grid used to prune
// collision pairs (spec §4.2, invariant #8) when the config file's "zones"
// field doesn't override it. N=1 collapses the grid to one global bucket,
// disabling pruning.
const defaultZoneGridSize = 16

type zoneKey struct {
	x, y int
}

// EntityStore is the flat, indexable collection of live entities (spec
// §4.2), replacing the teacher's pluggable World backends (map/sector/tree)
// with the single representation the spec calls for at this scale.
type EntityStore struct {
	alloc    EntityIDAllocator
	entities map[EntityID]*Entity
	order    []EntityID // stable iteration order; index changes on removal

	gameSize float32
	zoneGrid int
	zones    map[zoneKey][]EntityID
}

func NewEntityStore(gameSize float32) *EntityStore {
	return &EntityStore{
		entities: make(map[EntityID]*Entity),
		gameSize: gameSize,
		zoneGrid: defaultZoneGridSize,
		zones:    make(map[zoneKey][]EntityID),
	}
}

// SetZoneGrid overrides the grid side length (the config file's "zones").
// Values below 1 are clamped to 1, a single global bucket.
func (s *EntityStore) SetZoneGrid(n int) {
	if n < 1 {
		n = 1
	}
	s.zoneGrid = n
}

// Insert allocates an ID for e (overwriting any existing one) and files it
// into the store. Zone buckets are rebuilt wholesale once per tick (see
// RebuildZones) rather than maintained incrementally, so Insert does not
// touch them directly.
func (s *EntityStore) Insert(e *Entity) EntityID {
	id := s.alloc.Next()
	e.ID = id
	s.entities[id] = e
	s.order = append(s.order, id)
	return id
}

func (s *EntityStore) Get(id EntityID) (*Entity, bool) {
	e, ok := s.entities[id]
	return e, ok
}

// Remove deletes an entity from the store. It does not notify death
// subscribers; callers handle that separately (see internal/behavior's
// OnDie dispatch).
func (s *EntityStore) Remove(id EntityID) {
	if _, ok := s.entities[id]; !ok {
		return
	}
	delete(s.entities, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func (s *EntityStore) Len() int {
	return len(s.entities)
}

// All returns every live entity in stable insertion order. Callers must not
// mutate the returned slice's backing storage by inserting/removing during
// iteration; collect IDs to remove and call Remove after the loop instead.
func (s *EntityStore) All() []*Entity {
	out := make([]*Entity, 0, len(s.order))
	for _, id := range s.order {
		if e, ok := s.entities[id]; ok {
			out = append(out, e)
		}
	}
	return out
}

// cellRange returns the inclusive range of zone cells e's (axis-aligned,
// rotation-accounting) bounding box overlaps, so an entity straddling a
// cell boundary is filed into every cell it actually touches (spec §4.2:
// "every entity is assigned to every cell whose AABB its shape
// intersects").
func (s *EntityStore) cellRange(e *Entity) (minX, maxX, minY, maxY int) {
	cellSize := s.gameSize / float32(s.zoneGrid)
	if cellSize <= 0 {
		return 0, 0, 0, 0
	}
	box := e.Body.Shape.TightAABB()
	minX = int((box.X - box.W/2) / cellSize)
	maxX = int((box.X + box.W/2) / cellSize)
	minY = int((box.Y - box.H/2) / cellSize)
	maxY = int((box.Y + box.H/2) / cellSize)
	return
}

// RebuildZones re-partitions every live, non-carried entity into the zone
// grid based on its current shape. Must run once per tick before any
// pairwise collision check (spec §4.2); entities move during behavior
// dispatch, so last tick's bucket assignment cannot be trusted. A carried
// entity is left out entirely — it never participates in collision pair
// checks while docked (spec §3 invariant), so it has no business pruning
// or being pruned by the grid.
func (s *EntityStore) RebuildZones() {
	s.zones = make(map[zoneKey][]EntityID, len(s.zones))
	for _, id := range s.order {
		e, ok := s.entities[id]
		if !ok || e.Carried.IsCarried {
			continue
		}
		minX, maxX, minY, maxY := s.cellRange(e)
		for x := minX; x <= maxX; x++ {
			for y := minY; y <= maxY; y++ {
				k := zoneKey{x, y}
				s.zones[k] = append(s.zones[k], id)
			}
		}
	}
}

// NeighborPairs invokes fn once for every unordered pair of entities that
// share or occupy adjacent zone buckets, with a<b enforced on EntityID to
// dedupe pairs seen from both sides, mirroring the teacher's collision
// broad-phase loop.
func (s *EntityStore) NeighborPairs(fn func(a, b *Entity)) {
	seen := make(map[[2]EntityID]bool)
	for k, bucket := range s.zones {
		for dx := -1; dx <= 1; dx++ {
			for dy := -1; dy <= 1; dy++ {
				nk := zoneKey{k.x + dx, k.y + dy}
				neighbor, ok := s.zones[nk]
				if !ok {
					continue
				}
				for _, ida := range bucket {
					for _, idb := range neighbor {
						if ida == idb {
							continue
						}
						lo, hi := ida, idb
						if lo > hi {
							lo, hi = hi, lo
						}
						key := [2]EntityID{lo, hi}
						if seen[key] {
							continue
						}
						seen[key] = true
						ea, oka := s.entities[lo]
						eb, okb := s.entities[hi]
						if oka && okb {
							fn(ea, eb)
						}
					}
				}
			}
		}
	}
}
