package engine

import (
	"github.com/brineforge/arena-server/internal/behavior"
	"github.com/brineforge/arena-server/internal/geom"
	"github.com/brineforge/arena-server/internal/session"
	"github.com/brineforge/arena-server/internal/transport"
	"github.com/brineforge/arena-server/internal/world"
)

// knownEntity is the per-entity snapshot the hub keeps between ticks to
// diff against: it drives New/Delete, HealthUpdate, Carry/UnCarry, and the
// YouLose notification without behaviors having to emit events themselves.
type knownEntity struct {
	Type      world.EntityType
	Banner    world.BannerID
	Health    float32
	CarrierID world.EntityID
	IsCarried bool
}

// Broadcast fans out one tick's worth of world deltas to every connected
// client (spec §4.5 steps 4-5, §4.6's ClientCommand direction): New frames
// for entities that appeared, MoveObjectFull for shapes that dirtied,
// HealthUpdate/Radiate/SeedCompletion streams, Carry/UnCarry transitions,
// Delete for removals, then the Tick heartbeat and any score changes.
func Broadcast(h *Hub) {
	seen := make(map[world.EntityID]knownEntity, h.World.Entities.Len())
	for _, e := range h.World.Entities.All() {
		prev, existed := h.known[e.ID]
		if !existed {
			h.Clients.Broadcast(newFrame(e))
		} else if e.Body.Dirty() {
			h.Clients.Broadcast(transport.MoveObjectFull{
				ID: e.ID,
				X:  e.Body.Shape.X, Y: e.Body.Shape.Y, A: e.Body.Shape.A,
				W: e.Body.Shape.W, H: e.Body.Shape.H,
			})
		}

		switch e.Type {
		case world.TypeRadiation:
			h.Clients.Broadcast(transport.Radiate{ID: e.ID, Strength: e.Health.Current})
		case world.TypeSeed:
			pct := 1 - float32(e.TTL)/float32(behavior.SeedGrowTicks)
			if pct < 0 {
				pct = 0
			}
			h.Clients.Broadcast(transport.SeedCompletion{ID: e.ID, Pct: pct})
		default:
			if existed && e.Health.Current != prev.Health {
				h.Clients.Broadcast(transport.HealthUpdate{ID: e.ID, Fraction: e.Health.Percent()})
			}
		}

		if e.Carried.IsCarried && (!existed || !prev.IsCarried) {
			h.Clients.Broadcast(transport.Carry{Carrier: e.Carried.CarrierID, Carried: e.ID})
		} else if !e.Carried.IsCarried && existed && prev.IsCarried {
			h.Clients.Broadcast(transport.UnCarry{ID: e.ID})
		}

		seen[e.ID] = knownEntity{
			Type:      e.Type,
			Banner:    e.Banner,
			Health:    e.Health.Current,
			CarrierID: e.Carried.CarrierID,
			IsCarried: e.Carried.IsCarried,
		}
	}

	for id, prev := range h.known {
		if _, alive := seen[id]; alive {
			continue
		}
		h.Clients.Broadcast(transport.Delete{ID: id})
		if prev.Type == world.TypeCastle || prev.Type == world.TypeRTFCastle {
			SendTo(h, prev.Banner, transport.YouLose{})
		}
	}
	h.known = seen

	h.Clients.Broadcast(transport.Tick{
		Counter: uint32(h.World.Mode.Countdown),
		Mode:    h.World.Mode.Mode.WireByte(),
	})

	for _, dirty := range h.dirtyScores {
		if b, ok := h.World.Banners.Get(dirty); ok {
			SendTo(h, b.ID, transport.SetScore{Score: int32(b.Score)})
		}
	}
	h.dirtyScores = h.dirtyScores[:0]
}

// newFrame is the full wire projection of a fresh entity.
func newFrame(e *world.Entity) transport.New {
	data := world.DataFor(e.Type)
	return transport.New{
		ID:       e.ID,
		Kind:     uint8(data.Kind),
		X:        e.Body.Shape.X,
		Y:        e.Body.Shape.Y,
		A:        e.Body.Shape.A,
		Editable: data.Editable,
		Banner:   e.Banner,
		W:        e.Body.Shape.W,
		H:        e.Body.Shape.H,
	}
}

// SendTo delivers msg only to the client(s) controlling banner, mirroring
// the spec's ClientCommand::SendTo.
func SendTo(h *Hub, banner world.BannerID, msg interface{}) {
	for c := h.Clients.First; c != nil; c = c.Data().Next {
		if c.Data().Banner == banner {
			c.Send(msg)
		}
	}
}

func geomVec(x, y float32) geom.Vector2 {
	return geom.Vector2{X: x, Y: y}
}

var _ session.Client = (*transport.SocketClient)(nil)
