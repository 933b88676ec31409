// Package transport defines the wire protocol frame types (spec §6) and
// the reflect-based message-type registry used to tag them on the way out
// and dispatch them on the way in, ported from the teacher's
// server/message.go registerInbound/registerOutbound pattern.
package transport

import (
	"reflect"
	"strings"

	"github.com/brineforge/arena-server/internal/world"
)

type MessageType string

var (
	inboundMessageTypes  = make(map[MessageType]reflect.Type)
	outboundMessageTypes = make(map[reflect.Type]MessageType)
)

// wireNamed lets a frame type override the wire tag derived from its Go
// type name; used where the protocol reuses one tag in both directions
// (chat, upgradeThing) but Go needs two distinct types.
type wireNamed interface {
	WireName() MessageType
}

func uncapitalize(s string) string {
	return strings.ToLower(s[0:1]) + s[1:]
}

func nameFor(m interface{}) MessageType {
	if n, ok := m.(wireNamed); ok {
		return n.WireName()
	}
	val := reflect.ValueOf(m)
	return MessageType(uncapitalize(reflect.Indirect(val).Type().Name()))
}

// RegisterInbound records the client->server message types a codec may
// decode. Call once per type from an init().
func RegisterInbound(messages ...interface{}) {
	for _, m := range messages {
		inboundMessageTypes[nameFor(m)] = reflect.ValueOf(m).Type()
	}
}

// RegisterOutbound records the server->client message types a codec may
// encode.
func RegisterOutbound(messages ...interface{}) {
	for _, m := range messages {
		outboundMessageTypes[reflect.ValueOf(m).Type()] = nameFor(m)
	}
}

// InboundTypeFor resolves a wire MessageType tag to the concrete Go type it
// should be decoded into.
func InboundTypeFor(t MessageType) (reflect.Type, bool) {
	typ, ok := inboundMessageTypes[t]
	return typ, ok
}

// OutboundTypeFor resolves a Go value's concrete type to its wire tag.
func OutboundTypeFor(v interface{}) (MessageType, bool) {
	t, ok := outboundMessageTypes[reflect.TypeOf(v)]
	return t, ok
}

// --- Client -> server frames (spec §6) ---

type (
	// Ping is the keepalive probe; the server answers Pong.
	Ping struct{}

	// Connect is the authentication handshake: the password decides the
	// session's auth tier (empty -> spectator, main -> single, team ->
	// team member, admin -> god), Name becomes the session's banner, and
	// Mode is one of "normal", "defender", "rtf", "spectator".
	Connect struct {
		Password string `json:"password"`
		Name     string `json:"name"`
		Mode     string `json:"mode"`
	}

	// Place requests spawning a new entity of the given kind tag at (X, Y),
	// charged against the sender's banner score. Variant disambiguates
	// sub-kinds sharing one tag (the two wall sizes).
	Place struct {
		X       float32 `json:"x"`
		Y       float32 `json:"y"`
		Kind    uint8   `json:"kind"`
		Variant uint32  `json:"variant"`
	}

	// Cost acknowledges a price the client agreed to pay out of its score.
	Cost struct {
		Amount int32 `json:"amount"`
	}

	// Move sets an owned entity's goal pose.
	Move struct {
		ID world.EntityID `json:"id"`
		X  float32        `json:"x"`
		Y  float32        `json:"y"`
		A  float32        `json:"a"`
	}

	// LaunchA2A spends one stockpiled air-to-air round against Target.
	LaunchA2A struct {
		Target world.EntityID `json:"target"`
	}

	// PilotRTF streams the sender's real-time-fighter flight inputs.
	PilotRTF struct {
		Thrust bool `json:"thrust"`
		Left   bool `json:"left"`
		Right  bool `json:"right"`
		Brake  bool `json:"brake"`
		Shoot  bool `json:"shoot"`
	}

	// Chat posts a message; Broadcast selects all-hands delivery instead of
	// the sender's team.
	Chat struct {
		Message   string `json:"message"`
		Broadcast bool   `json:"broadcast"`
	}

	// UpgradeThing is the deprecated direct-upgrade command; the server
	// rejects it outright (Shop is the supported path).
	UpgradeThing struct {
		ID  world.EntityID `json:"id"`
		Tag string         `json:"tag"`
	}

	// Shop buys a non-placement item for the sender's banner: an upgrade
	// branch tier ('b', 's', 'f', 'h'), a wall-cap bump ('w'), or one
	// air-to-air round ('a').
	Shop struct {
		Thing uint8 `json:"thing"`
	}

	// ReadyState flags the sender as (not) ready to start during Waiting.
	ReadyState struct {
		Ready bool `json:"ready"`
	}

	// God* verbs require god auth and bypass every ownership check.
	GodDelete struct {
		ID world.EntityID `json:"id"`
	}
	GodReset      struct{}
	GodDisconnect struct {
		Banner world.BannerID `json:"banner"`
	}
	GodNuke struct {
		Banner world.BannerID `json:"banner"`
	}
	GodFlip struct{}
)

func init() {
	RegisterInbound(
		Ping{},
		Connect{},
		Place{},
		Cost{},
		Move{},
		LaunchA2A{},
		PilotRTF{},
		Chat{},
		UpgradeThing{},
		Shop{},
		ReadyState{},
		GodDelete{},
		GodReset{},
		GodDisconnect{},
		GodNuke{},
		GodFlip{},
	)
}

// --- Server -> client frames (spec §6) ---

type (
	// Pong answers a Ping.
	Pong struct{}

	// Tick is the per-tick heartbeat: the stage countdown and the current
	// mode (0 = Play, 1 = Strategy, 2 = Waiting).
	Tick struct {
		Counter uint32 `json:"counter"`
		Mode    uint8  `json:"mode"`
	}

	// HealthUpdate reports an entity's new health fraction.
	HealthUpdate struct {
		ID       world.EntityID `json:"id"`
		Fraction float32        `json:"fraction"`
	}

	// SetPasswordless tells a connecting client whether the server accepts
	// empty main passwords.
	SetPasswordless struct {
		Passwordless bool `json:"passwordless"`
	}

	// BannerAdd announces a banner id -> display text binding.
	BannerAdd struct {
		ID   world.BannerID `json:"id"`
		Text string         `json:"text"`
	}

	// BannerAddToTeam announces a banner joining a team.
	BannerAddToTeam struct {
		Member world.BannerID `json:"member"`
		Team   world.TeamID   `json:"team"`
	}

	// End announces the match winner's banner, followed by a reset.
	End struct {
		Banner world.BannerID `json:"banner"`
	}

	// Metadata is sent once after authentication: the world's side length,
	// the session's own banner, and a coarse cosmetic terrain byte grid
	// sampled from the match's Perlin seed (decorative only — never
	// consulted by collision or placement).
	Metadata struct {
		WorldSize float32        `json:"worldsize"`
		Banner    world.BannerID `json:"banner"`
		Terrain   [][]byte       `json:"terrain,omitempty"`
	}

	// SetScore reports the session's new score after any credit or debit.
	SetScore struct {
		Score int32 `json:"score"`
	}

	// ChatRelay delivers a chat line; its wire tag is "chat", shared with
	// the inbound frame of the same tag.
	ChatRelay struct {
		Text     string         `json:"text"`
		Sender   string         `json:"sender"`
		Banner   world.BannerID `json:"bannerid"`
		Priority int            `json:"priority"`
	}

	// BadPassword reports an authentication failure; the connection stays
	// open as a spectator.
	BadPassword struct{}

	// Welcome confirms a successful non-spectator authentication.
	Welcome struct{}

	// YouAreSpectating confirms a spectator-tier connection.
	YouAreSpectating struct{}

	// YouAreTeamLeader tells the first joiner of a team it holds the lead.
	YouAreTeamLeader struct{}

	// A2A reports the session's stockpiled air-to-air round count.
	A2A struct {
		Count uint32 `json:"count"`
	}

	// UpgradeApplied announces an upgrade tag landing on an entity; its
	// wire tag is "upgradeThing", shared with the deprecated inbound frame.
	UpgradeApplied struct {
		ID  world.EntityID `json:"id"`
		Tag string         `json:"tag"`
	}

	// YouLose tells a session its castle is gone for good.
	YouLose struct{}

	// Add confirms a placement the session paid for.
	Add struct {
		ID world.EntityID `json:"id"`
	}

	// Radiate reports a radiation field's current strength, every tick.
	Radiate struct {
		ID       world.EntityID `json:"id"`
		Strength float32        `json:"strength"`
	}

	// New announces an entity entering the world.
	New struct {
		ID       world.EntityID `json:"id"`
		Kind     uint8          `json:"kind"`
		X        float32        `json:"x"`
		Y        float32        `json:"y"`
		A        float32        `json:"a"`
		Editable bool           `json:"editable"`
		Banner   world.BannerID `json:"banner"`
		W        float32        `json:"w"`
		H        float32        `json:"h"`
	}

	// MoveObjectFull reports an entity's new full pose and size, sent
	// whenever its shape dirtied this tick.
	MoveObjectFull struct {
		ID world.EntityID `json:"id"`
		X  float32        `json:"x"`
		Y  float32        `json:"y"`
		A  float32        `json:"a"`
		W  float32        `json:"w"`
		H  float32        `json:"h"`
	}

	// Delete announces an entity leaving the world.
	Delete struct {
		ID world.EntityID `json:"id"`
	}

	// Tie announces a match ending with no survivors, followed by a reset.
	Tie struct{}

	// SeedCompletion reports a seed's growth progress toward chest-hood.
	SeedCompletion struct {
		ID  world.EntityID `json:"id"`
		Pct float32        `json:"pct"`
	}

	// Carry announces a carrier taking custody of an entity.
	Carry struct {
		Carrier world.EntityID `json:"carrier"`
		Carried world.EntityID `json:"carried"`
	}

	// UnCarry announces a carried entity's release back into free flight.
	UnCarry struct {
		ID world.EntityID `json:"id"`
	}

	// YouAreGod confirms admin-password authentication.
	YouAreGod struct{}
)

// WireName collapses the two chat frame types onto the protocol's single
// "chat" tag, and likewise for "upgradeThing".
func (ChatRelay) WireName() MessageType      { return "chat" }
func (UpgradeApplied) WireName() MessageType { return "upgradeThing" }

func init() {
	RegisterOutbound(
		Pong{},
		Tick{},
		HealthUpdate{},
		SetPasswordless{},
		BannerAdd{},
		BannerAddToTeam{},
		End{},
		Metadata{},
		SetScore{},
		ChatRelay{},
		BadPassword{},
		Welcome{},
		YouAreSpectating{},
		YouAreTeamLeader{},
		A2A{},
		UpgradeApplied{},
		YouLose{},
		Add{},
		Radiate{},
		New{},
		MoveObjectFull{},
		Delete{},
		Tie{},
		SeedCompletion{},
		Carry{},
		UnCarry{},
		YouAreGod{},
	)
}
