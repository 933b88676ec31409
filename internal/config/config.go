// Package config loads the JSON server configuration file, field-for-field
// ported from the original source's ServerConfigFile (config.rs), using
// encoding/json the way the teacher's own JSON config loading does (server
// config here has no counterpart in the teacher, which took all its
// settings from flags, but jsoniter/encoding/json is consistent with the
// rest of the stack's JSON handling).
package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
)

type objectDef struct {
	X float32  `json:"x"`
	Y float32  `json:"y"`
	W float32  `json:"w"`
	H float32  `json:"h"`
	A *float32 `json:"a"`
}

type AutonomousDef struct {
	MinPlayers uint32 `json:"min_players"`
	MaxPlayers uint32 `json:"max_players"`
	Timeout    uint32 `json:"timeout"`
}

type TeamDef struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type ExtObjectDef struct {
	Type         string   `json:"t"`
	X            float32  `json:"x"`
	Y            float32  `json:"y"`
	EffectRadius *float32 `json:"effect_radius"`
}

// File is the on-disk JSON shape; all fields but WorldSize and Map are
// optional, matching the original's liberal use of Option<T>.
type File struct {
	Password       *string        `json:"password"`
	WorldSize      float32        `json:"world_size"`
	IOMode         *bool          `json:"io_mode"`
	PromptPassword *bool          `json:"prompt_password"`
	Map            []objectDef    `json:"map"`
	Autonomous     *AutonomousDef `json:"autonomous"`
	Teams          []TeamDef      `json:"teams"`
	StrategySecs   *float32       `json:"strat_secs"`
	PlaySecs       *float32       `json:"play_secs"`
	Headless       *bool          `json:"headless"`
	PermitNPCs     *bool          `json:"permit_npcs"`
	Port           *uint16        `json:"port"`
	MapAnchor      *string        `json:"map_anchor"`
	Zones          *int           `json:"zones"`
	Ext            []ExtObjectDef `json:"ext"`
}

// Load reads and parses the config file at path.
func Load(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: opening %s: %w", path, err)
	}
	defer f.Close()

	var file File
	if err := json.NewDecoder(f).Decode(&file); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return &file, nil
}

// Block is a placed map obstacle, already converted from the file's
// possibly-top-left-anchored coordinates into center coordinates and
// radians.
type Block struct {
	X, Y, W, H, Angle float32
}

// Blocks converts the file's map defs into center-anchored Blocks, honoring
// MapAnchor == "topleft" the same way the original's load_into did.
func (f *File) Blocks() []Block {
	topLeft := f.MapAnchor != nil && *f.MapAnchor == "topleft"
	out := make([]Block, 0, len(f.Map))
	for _, def := range f.Map {
		x, y := def.X, def.Y
		angle := float32(0)
		if def.A != nil {
			angle = *def.A * math.Pi / 180
		}
		if topLeft {
			x += def.W / 2
			y += def.H / 2
		}
		out = append(out, Block{X: x, Y: y, W: def.W, H: def.H, Angle: angle})
	}
	return out
}

// NexusExt is a nexus placement drawn from the config's "ext" list, the
// only ext type the original recognizes.
type NexusExt struct {
	X, Y, EffectRadius float32
}

// Nexuses extracts every "nexus" entry from Ext, panicking on an unknown
// ext type the same way the original does (a malformed config file is a
// startup-time operator error, not a recoverable runtime condition).
func (f *File) Nexuses() []NexusExt {
	out := make([]NexusExt, 0, len(f.Ext))
	for _, def := range f.Ext {
		switch def.Type {
		case "nexus":
			radius := float32(300)
			if def.EffectRadius != nil {
				radius = *def.EffectRadius
			}
			out = append(out, NexusExt{X: def.X, Y: def.Y, EffectRadius: radius})
		default:
			panic(fmt.Sprintf("config: unknown ext type %q", def.Type))
		}
	}
	return out
}

func (f *File) PortOrDefault() uint16 {
	if f.Port != nil {
		return *f.Port
	}
	return 3000
}

func (f *File) IsHeadless() bool {
	return f.Headless != nil && *f.Headless
}

func (f *File) IsIOMode() bool {
	return f.IOMode != nil && *f.IOMode
}

func (f *File) PermitsNPCs() bool {
	return f.PermitNPCs == nil || *f.PermitNPCs
}
