package behavior

import "github.com/brineforge/arena-server/internal/world"

// block is an indestructible, immovable map obstacle (effectively infinite
// health per its EntityData row); it never ticks and is never placed by
// players.
type block struct{}

func (block) Tick(ctx *Context) {}

func init() {
	Register(world.TypeBlock, block{})
}
