package engine

import (
	"github.com/brineforge/arena-server/internal/behavior"
	"github.com/brineforge/arena-server/internal/placement"
	"github.com/brineforge/arena-server/internal/session"
	"github.com/brineforge/arena-server/internal/transport"
	"github.com/brineforge/arena-server/internal/world"
)

// Shop prices (spec §4.7): the four upgrade branches plus the two
// non-entity rows.
const (
	upgradeBCost    = 30
	upgradeSCost    = 40
	upgradeFCost    = 70
	upgradeHCost    = 150
	wallCapShopCost = 30
	grantA2ACost    = 100
)

// castlePlacementCredit is the starting stipend granted alongside a castle.
const castlePlacementCredit = 100

// escortOffset is how far from a new castle its free escorts spawn.
const escortOffset = 200

// a2aMaxLaunchRange bounds LaunchA2A (glossary: "up to 1500 units").
const a2aMaxLaunchRange = 1500

// Handle applies one decoded inbound frame to the world. It is the world
// task's sole entrypoint for client-originated mutation (spec §4.6's
// ServerCommand direction): runs on the hub goroutine, applies
// synchronously, and never blocks. Ported from the teacher's
// Hub.process_command match, generalized over this domain's larger command
// set and its placement/economy gating.
func Handle(h *Hub, in transport.SignedInbound) {
	c := in.Client
	data := c.Data()

	switch msg := in.Message.(type) {
	case *transport.Ping:
		c.Send(transport.Pong{})
	case *transport.Connect:
		handleConnect(h, c, msg)
	case *transport.Place:
		if data.Auth.CanCommand() {
			handlePlace(h, c, msg)
		}
	case *transport.Cost:
		if data.Auth.CanCommand() {
			handleCost(h, c, msg)
		}
	case *transport.Move:
		if data.Auth.CanCommand() {
			handleMove(h, c, msg)
		}
	case *transport.LaunchA2A:
		if data.Auth.CanCommand() {
			handleLaunchA2A(h, c, msg)
		}
	case *transport.PilotRTF:
		if data.Auth.CanCommand() {
			handlePilotRTF(h, c, msg)
		}
	case *transport.Chat:
		handleChat(h, c, msg)
	case *transport.UpgradeThing:
		// Deprecated (spec §6): Shop is the only supported upgrade path.
	case *transport.Shop:
		if data.Auth.CanCommand() {
			handleShop(h, c, msg)
		}
	case *transport.ReadyState:
		if data.Auth.CanCommand() {
			data.Ready = msg.Ready
			h.refreshReadiness()
		}
	case *transport.GodDelete:
		if data.Auth.IsAdmin() {
			h.World.Entities.Remove(msg.ID)
		}
	case *transport.GodReset:
		if data.Auth.IsAdmin() {
			h.ResetMatch()
		}
	case *transport.GodDisconnect:
		if data.Auth.IsAdmin() {
			h.CloseBanner(msg.Banner)
		}
	case *transport.GodNuke:
		if data.Auth.IsAdmin() {
			h.NukeBanner(msg.Banner)
		}
	case *transport.GodFlip:
		if data.Auth.IsAdmin() {
			h.World.Mode.Flip()
		}
	}

	if data.KillSelf {
		h.dropClient(c)
	}
}

// handleConnect is the authentication handshake (spec §4.6's auth states):
// the presented password selects god, team, single, or spectator tier, the
// name claims (or resumes) a banner, and the full current world state is
// replayed so the client can render before its first delta.
func handleConnect(h *Hub, c session.Client, msg *transport.Connect) {
	data := c.Data()
	data.Mode = session.ClientModeFor(msg.Mode)

	switch {
	case h.World.AdminPassword != "" && msg.Password == h.World.AdminPassword:
		data.Auth = session.AuthGod
		data.Superuser = true
		c.Send(transport.YouAreGod{})
	case data.Mode == session.ModeSpectator:
		data.Auth = session.AuthSpectator
		c.Send(transport.YouAreSpectating{})
	default:
		if team, ok := h.World.Teams.ByPassword(msg.Password); ok {
			data.Auth = session.AuthTeam
			attachBanner(h, c, msg.Name)
			leader := len(team.Members) == 0
			team.Join(data.Banner, msg.Password)
			if b, ok := h.World.Banners.Get(data.Banner); ok {
				b.Team = team.ID
			}
			h.Clients.Broadcast(transport.BannerAddToTeam{Member: data.Banner, Team: team.ID})
			if leader {
				c.Send(transport.YouAreTeamLeader{})
			}
		} else if h.World.Passwordless || (h.World.MainPassword != "" && msg.Password == h.World.MainPassword) {
			data.Auth = session.AuthSingle
			attachBanner(h, c, msg.Name)
		} else if msg.Password == "" {
			data.Auth = session.AuthSpectator
			c.Send(transport.YouAreSpectating{})
		} else {
			// AuthFailure policy (spec §7): reply BadPassword, downgrade to
			// spectator, keep the connection.
			data.Auth = session.AuthSpectator
			c.Send(transport.BadPassword{})
		}
	}

	if data.Auth.CanCommand() {
		c.Send(transport.Welcome{})
	}
	c.Send(transport.SetPasswordless{Passwordless: h.World.Passwordless})
	c.Send(transport.Metadata{WorldSize: h.World.GameSize, Banner: data.Banner, Terrain: sampleTerrainGrid(h.World)})
	replayState(h, c)
}

// attachBanner resumes the banner already registered under name, or mints a
// fresh one, and announces the binding to everyone.
func attachBanner(h *Hub, c session.Client, name string) {
	b, ok := h.World.Banners.ByName(name)
	if !ok {
		b = h.World.Banners.Create(name)
		h.Clients.Broadcast(transport.BannerAdd{ID: b.ID, Text: b.Name})
	}
	c.Data().Banner = b.ID
	c.Send(transport.SetScore{Score: int32(b.Score)})
}

// replayState sends a fresh connection everything already in the world:
// banner bindings, team memberships, and one New frame per live entity.
func replayState(h *Hub, c session.Client) {
	for _, b := range h.World.Banners.All() {
		if b.ID == world.SystemBanner {
			continue
		}
		c.Send(transport.BannerAdd{ID: b.ID, Text: b.Name})
		if b.Team != world.TeamIDInvalid {
			c.Send(transport.BannerAddToTeam{Member: b.ID, Team: b.Team})
		}
	}
	for _, e := range h.World.Entities.All() {
		c.Send(newFrame(e))
	}
}

func handlePlace(h *Hub, c session.Client, msg *transport.Place) {
	data := c.Data()
	isGod := data.Auth.IsAdmin() || data.Superuser

	t, placeable := world.TypeForKind(msg.Kind, msg.Variant)
	if !placeable {
		// ProtocolViolation policy (spec §7): unplaceable kind tags mark
		// the session for teardown, with no retaliation frame.
		data.KillSelf = true
		return
	}
	if msg.Kind == 'c' && data.Mode == session.ModeRealTimeFighter {
		t = world.TypeRTFCastle
	}
	isCastle := t == world.TypeCastle || t == world.TypeRTFCastle

	if t == world.TypeBlock && !isGod {
		return
	}
	if h.World.Mode.Mode == world.ModePlay && !isCastle && !isGod && !h.World.Mode.IOMode {
		return
	}

	banner, ok := h.World.Banners.Get(data.Banner)
	if !ok {
		return
	}

	item, known := placement.Lookup(t)
	cost := 0
	if known {
		cost = item.Cost
	}
	width, height := world.DataFor(t).Width, world.DataFor(t).Height

	if !isGod {
		if banner.Score < cost {
			return
		}
		if known && !placement.Legal(h.World, data.Banner, item.Zone, msg.X, msg.Y, width, height) {
			return
		}
		if t == world.TypeWallV1 || t == world.TypeWallV2 {
			if !h.Walls.TryPlaceWall(data.Banner) {
				return
			}
		}
	}

	if isCastle {
		if data.CastleID != world.EntityIDInvalid {
			return
		}
		if h.World.Mode.Mode != world.ModeWaiting && !h.World.Mode.IOMode && !isGod {
			return
		}
	}

	e := behavior.New(t, data.Banner, msg.X, msg.Y, 0)
	id := h.World.Entities.Insert(e)
	c.Send(transport.Add{ID: id})

	if isCastle {
		data.CastleID = id
		banner.Alive = true
		banner.Score += castlePlacementCredit
		placeEscorts(h, data, msg.X, msg.Y)
		h.DirtyScore(banner.ID)
	}

	if t == world.TypeFort {
		if owner, ok := h.World.Entities.Get(data.CastleID); ok {
			owner.Forts = append(owner.Forts, id)
		}
	}

	if cost > 0 && !isGod {
		banner.Score -= cost
		h.DirtyScore(banner.ID)
	}
}

// placeEscorts drops the free starting units around a fresh castle: four
// fighters in Normal mode (spec S1), a turret pair plus two fighters for a
// defender, nothing for an RTF pilot.
func placeEscorts(h *Hub, data *session.ClientData, x, y float32) {
	if data.Mode == session.ModeRealTimeFighter {
		return
	}
	offsets := [4][2]float32{{escortOffset, 0}, {-escortOffset, 0}, {0, escortOffset}, {0, -escortOffset}}
	for i, off := range offsets {
		t := world.TypeBasicFighter
		if data.Mode == session.ModeDefense && i >= 2 {
			t = world.TypeTurret
		}
		e := behavior.New(t, data.Banner, x+off[0], y+off[1], 0)
		h.World.Entities.Insert(e)
	}
}

// handleCost debits an amount the client agreed to pay (the client half of
// the AttachToBanner price handshake). Unaffordable or negative amounts
// are ignored rather than bounced.
func handleCost(h *Hub, c session.Client, msg *transport.Cost) {
	banner, ok := h.World.Banners.Get(c.Data().Banner)
	if !ok || msg.Amount < 0 || banner.Score < int(msg.Amount) {
		return
	}
	banner.Score -= int(msg.Amount)
	h.DirtyScore(banner.ID)
}

func handleMove(h *Hub, c session.Client, msg *transport.Move) {
	data := c.Data()
	e, ok := h.World.Entities.Get(msg.ID)
	if !ok || (e.Banner != data.Banner && !data.Auth.IsAdmin()) {
		return
	}
	if !world.DataFor(e.Type).Editable && !data.Auth.IsAdmin() {
		return
	}
	e.Goal = world.GoalPose{
		Valid:    true,
		Position: geomVec(msg.X, msg.Y),
		Angle:    world.ToAngle(msg.A),
	}
}

func handlePilotRTF(h *Hub, c session.Client, msg *transport.PilotRTF) {
	data := c.Data()
	e, ok := h.World.Entities.Get(data.CastleID)
	if !ok || e.Type != world.TypeRTFCastle || e.Pilot == nil {
		return
	}
	e.Pilot.Thrust = msg.Thrust
	e.Pilot.Left = msg.Left
	e.Pilot.Right = msg.Right
	e.Pilot.Brake = msg.Brake
	e.Pilot.Shoot = msg.Shoot
}

func handleShop(h *Hub, c session.Client, msg *transport.Shop) {
	data := c.Data()
	banner, ok := h.World.Banners.Get(data.Banner)
	if !ok {
		return
	}
	switch msg.Thing {
	case 'w':
		if banner.Score < wallCapShopCost {
			return
		}
		banner.Score -= wallCapShopCost
		h.Walls.BumpCap(data.Banner)
	case 'a':
		if banner.Score < grantA2ACost {
			return
		}
		banner.Score -= grantA2ACost
		banner.A2A++
		c.Send(transport.A2A{Count: uint32(banner.A2A)})
	case 'b', 'f', 'h':
		price := upgradeBCost
		switch msg.Thing {
		case 'f':
			price = upgradeFCost
		case 'h':
			price = upgradeHCost
		}
		castle, ok := h.World.Entities.Get(data.CastleID)
		if !ok || banner.Score < price {
			return
		}
		tag, ok := behavior.NextUpgradeTier(castle, string(rune(msg.Thing)))
		if !ok {
			return
		}
		banner.Score -= price
		applyUpgrade(h, castle, tag)
	case 's':
		// The 's' row refits one of the banner's fighters with the laser
		// upgrade (spec §4.3's BasicFighter "laser").
		if banner.Score < upgradeSCost {
			return
		}
		for _, e := range h.World.Entities.All() {
			if e.Banner != data.Banner || e.Type != world.TypeBasicFighter || e.HasUpgrade("laser") {
				continue
			}
			banner.Score -= upgradeSCost
			applyUpgrade(h, e, "laser")
			break
		}
	default:
		return
	}
	h.DirtyScore(banner.ID)
}

// applyUpgrade appends tag to e's upgrade list, runs its behavior's
// OnUpgrade hook, and announces the change.
func applyUpgrade(h *Hub, e *world.Entity, tag string) {
	e.Upgrades = append(e.Upgrades, tag)
	ctx := &behavior.Context{World: h.World, Entity: e, Spawn: spawnInto(h.World), Kill: killFrom(h.World)}
	if up, ok := behavior.For(e.Type).(behavior.Upgradeable); ok {
		up.OnUpgrade(ctx)
	}
	h.Clients.Broadcast(transport.UpgradeApplied{ID: e.ID, Tag: tag})
}

func handleLaunchA2A(h *Hub, c session.Client, msg *transport.LaunchA2A) {
	data := c.Data()
	banner, ok := h.World.Banners.Get(data.Banner)
	if !ok || banner.A2A <= 0 {
		return
	}
	target, ok := h.World.Entities.Get(msg.Target)
	if !ok {
		return
	}
	origin, ok := h.World.Entities.Get(data.CastleID)
	if !ok {
		return
	}

	toTarget := target.Body.Shape.Center().Sub(origin.Body.Shape.Center())
	if toTarget.Magnitude() > a2aMaxLaunchRange {
		return
	}
	round := behavior.New(world.TypeAir2Air, data.Banner, origin.Body.Shape.X, origin.Body.Shape.Y, toTarget.Angle())
	round.Targeting.Mode = world.TargetingID
	round.Targeting.TargetID = target.ID
	round.Targeting.Filter = world.FilterAny
	h.World.Entities.Insert(round)

	banner.A2A--
	c.Send(transport.A2A{Count: uint32(banner.A2A)})
}

func handleChat(h *Hub, c session.Client, msg *transport.Chat) {
	data := c.Data()
	if !data.Auth.CanCommand() {
		return
	}
	banner, ok := h.World.Banners.Get(data.Banner)
	if !ok {
		return
	}
	text := session.Moderate(msg.Message)
	out := transport.ChatRelay{Text: text, Sender: banner.Name, Banner: banner.ID}

	if !msg.Broadcast && banner.Team != world.TeamIDInvalid {
		for cl := h.Clients.First; cl != nil; cl = cl.Data().Next {
			if peer, ok := h.World.Banners.Get(cl.Data().Banner); ok && peer.Team == banner.Team {
				cl.Send(out)
			}
		}
		return
	}
	h.Clients.Broadcast(out)
}
