package behavior

import "github.com/brineforge/arena-server/internal/world"

// fort grants its banner's castle one extra life: on a fort's own death it
// does nothing further, but while alive the collision resolver consults it
// as a valid WithinCastleOrFort placement anchor (internal/placement).
type fort struct{}

func (fort) Tick(ctx *Context) {}

func init() {
	Register(world.TypeFort, fort{})
}
