// Package engine runs the authoritative match loop: a single Hub goroutine
// owns the world.World, drains registrations/commands over channels, ticks
// the simulation at world.FPS, and fans out deltas. Ported from the
// teacher's server.Hub select loop, replacing its client-statistics/cloud
// plumbing with this domain's mode machine and broadcast logic.
package engine

import (
	"log"
	"time"

	"github.com/brineforge/arena-server/internal/collision"
	"github.com/brineforge/arena-server/internal/placement"
	"github.com/brineforge/arena-server/internal/session"
	"github.com/brineforge/arena-server/internal/transport"
	"github.com/brineforge/arena-server/internal/world"
)

// Hub owns the world and every connected client.
type Hub struct {
	World   *world.World
	Clients session.ClientList
	Walls   *placement.WallTracker

	// PermitNPCs mirrors the config file's permit_npcs (spec §6); when set,
	// the tick's rubble-spawn step (spec §4.5 step 6) also drops one hostile
	// filler NPC alongside the usual wall/chest.
	PermitNPCs bool

	inbound    chan transport.SignedInbound
	register   chan session.Client
	unregister chan session.Client
	admin      chan func(*Hub)

	updateTicker *time.Ticker

	// known is the per-entity snapshot as of the last broadcast, diffed each
	// tick to produce New/Delete/HealthUpdate/Carry/UnCarry frames (spec
	// §4.5 steps 4-5).
	known map[world.EntityID]knownEntity
	// dirtyScores accumulates banners whose score changed this tick, so
	// Broadcast can emit SetScore only for what actually moved.
	dirtyScores []world.BannerID
	rubbleTimer int
}

func NewHub(w *world.World) *Hub {
	return &Hub{
		World:        w,
		Walls:        placement.NewWallTracker(),
		inbound:      make(chan transport.SignedInbound, 64),
		register:     make(chan session.Client, 16),
		unregister:   make(chan session.Client, 16),
		admin:        make(chan func(*Hub), 16),
		updateTicker: time.NewTicker(world.TickPeriod),
		known:        make(map[world.EntityID]knownEntity),
		rubbleTimer:  rubbleSpawnInterval,
	}
}

// DirtyScore flags banner's score as changed this tick, so Broadcast sends
// a SetScore frame for it. Command handlers call this after crediting
// or debiting a banner rather than broadcasting inline, keeping all
// outbound traffic funneled through the one per-tick Broadcast call.
func (h *Hub) DirtyScore(id world.BannerID) {
	h.dirtyScores = append(h.dirtyScores, id)
}

// Register queues a newly connected client for the hub goroutine to adopt.
func (h *Hub) Register(c session.Client) {
	h.register <- c
}

// Unregister queues a disconnected client for removal.
func (h *Hub) Unregister(c session.Client) {
	h.unregister <- c
}

// Inbound returns the channel socket clients push decoded commands onto.
func (h *Hub) Inbound() chan<- transport.SignedInbound {
	return h.inbound
}

// RunOnHub queues fn to run synchronously on the hub goroutine, the same
// serialization point every client command and simulation tick passes
// through. The admin console (cmd/server/console.go) runs on its own
// goroutine reading stdin, so every verb it executes must be funneled
// through here rather than touching h.World or h.Clients directly.
func (h *Hub) RunOnHub(fn func(*Hub)) {
	h.admin <- fn
}

// Run drives the hub for as long as the process lives; call it in its own
// goroutine.
func (h *Hub) Run() {
	defer func() {
		if r := recover(); r != nil {
			log.Println("hub panic:", r)
		}
	}()

	for {
		select {
		case client := <-h.register:
			h.Clients.Add(client)
			client.Send(transport.SetPasswordless{Passwordless: h.World.Passwordless})
		case client := <-h.unregister:
			h.dropClient(client)
		case in := <-h.inbound:
			Handle(h, in)
		case fn := <-h.admin:
			fn(h)
		case <-h.updateTicker.C:
			h.tick()
		}
	}
}

// tick runs one fixed-timestep simulation step (spec §4.5): win check,
// then — only in Play — entity update, collision resolution, and random
// rubble spawning, then the per-tick broadcast.
func (h *Hub) tick() {
	if checkWinCondition(h) {
		Broadcast(h)
		return
	}

	if h.World.Mode.Mode == world.ModePlay {
		RunBehaviors(h.World)
		collision.Resolve(h.World, collision.Hooks{Spawn: h.spawn, Kill: h.kill})

		h.rubbleTimer--
		if h.rubbleTimer <= 0 {
			spawnRandomRubble(h)
			h.rubbleTimer = rubbleSpawnInterval
		}
	}

	prevMode := h.World.Mode.Mode
	transitioned := h.World.Advance()
	if transitioned && h.World.Mode.Mode == world.ModeStrategy {
		h.Walls.Reset()
		if prevMode == world.ModeWaiting {
			scatterRubble(h)
		}
	}

	Broadcast(h)
}

// refreshReadiness recomputes World.AllReady from every authenticated
// client's ReadyState flag, and skips the lobby countdown entirely when the
// whole room has flagged ready.
func (h *Hub) refreshReadiness() {
	any := false
	all := true
	for c := h.Clients.First; c != nil; c = c.Data().Next {
		if !c.Data().Auth.CanCommand() {
			continue
		}
		any = true
		if !c.Data().Ready {
			all = false
		}
	}
	h.World.AllReady = any && all
	if h.World.AllReady && h.World.LivingPlayers() >= 2 {
		h.World.Mode.ForceStart()
	}
}

// ResetMatch clears the whole world back to an empty Waiting lobby; every
// connected session keeps its socket but loses its banner and castle, as
// after an End/Tie broadcast.
func (h *Hub) ResetMatch() {
	h.World.Reset()
	h.known = make(map[world.EntityID]knownEntity)
	h.Walls = placement.NewWallTracker()
	for c := h.Clients.First; c != nil; c = c.Data().Next {
		data := c.Data()
		data.Banner = world.SystemBanner
		data.CastleID = world.EntityIDInvalid
		data.Ready = false
	}
}

// NukeBanner clears every entity a banner owns and marks it dead — the
// GodNuke command and the console's "nuke" verb.
func (h *Hub) NukeBanner(banner world.BannerID) {
	for _, e := range h.World.Entities.All() {
		if e.Banner == banner {
			h.World.Entities.Remove(e.ID)
		}
	}
	if b, ok := h.World.Banners.Get(banner); ok {
		b.Alive = false
	}
}

// CloseBanner tears down every session attached to banner (GodDisconnect).
func (h *Hub) CloseBanner(banner world.BannerID) {
	for c := h.Clients.First; c != nil; {
		next := c.Data().Next
		if c.Data().Banner == banner {
			h.dropClient(c)
		}
		c = next
	}
}

// dropClient removes a session from the list (if present) and runs its
// disconnect path; safe to call from inside command dispatch.
func (h *Hub) dropClient(c session.Client) {
	if c.Data().Previous != nil || c.Data().Next != nil || h.Clients.First == c {
		h.Clients.Remove(c)
	}
	h.disconnect(c)
	c.Close()
	h.refreshReadiness()
}

// terrainGridResolution is the side length of the coarse cosmetic terrain
// grid sent once per connection; fine enough for a background tint, far
// coarser than anything a physics or placement check would need.
const terrainGridResolution = 16

// sampleTerrainGrid renders the match's Perlin seed down to a small byte
// grid a client can stretch over its background, the cosmetic-only use
// DESIGN.md documents for internal/world/terrain.go.
func sampleTerrainGrid(w *world.World) [][]byte {
	grid := make([][]byte, terrainGridResolution)
	step := w.GameSize / float32(terrainGridResolution)
	for row := 0; row < terrainGridResolution; row++ {
		grid[row] = make([]byte, terrainGridResolution)
		for col := 0; col < terrainGridResolution; col++ {
			grid[row][col] = w.Terrain.SampleByte(float32(col)*step, float32(row)*step)
		}
	}
	return grid
}

func (h *Hub) spawn(e *world.Entity) world.EntityID {
	return h.World.Entities.Insert(e)
}

func (h *Hub) kill(id world.EntityID) {
	h.World.Entities.Remove(id)
}

// disconnect runs the spec §4.6/§5 cancellation path: if the match hasn't
// started yet (still Waiting) or is running in io-mode, a disconnecting
// banner's entities are cleared immediately rather than left to decay on
// their own, since there is no match in progress to preserve them for.
func (h *Hub) disconnect(client session.Client) {
	banner := client.Data().Banner
	if banner == world.SystemBanner {
		return
	}
	if h.World.Mode.Mode != world.ModeWaiting && !h.World.Mode.IOMode {
		return
	}
	for _, e := range h.World.Entities.All() {
		if e.Banner == banner {
			h.World.Entities.Remove(e.ID)
		}
	}
	if b, ok := h.World.Banners.Get(banner); ok {
		b.Alive = false
	}
}
