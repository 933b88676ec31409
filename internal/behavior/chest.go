package behavior

import "github.com/brineforge/arena-server/internal/world"

// chest sits idle until something collides with it, at which point the
// collision resolver's capture step awards the colliding banner its
// capture value and removes the chest.
type chest struct{}

func (chest) Tick(ctx *Context) {
	if ctx.Entity.TTL == 1 {
		ctx.Kill(ctx.Entity.ID)
	}
}

func (chest) Capture(ctx *Context, other *world.Entity) {
	if b, ok := ctx.World.Banners.Get(other.Banner); ok {
		b.Score += chestBounty
	}
	ctx.Kill(ctx.Entity.ID)
}

const chestBounty = 50

func init() {
	Register(world.TypeChest, chest{})
}
