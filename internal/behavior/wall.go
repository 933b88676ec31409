package behavior

import "github.com/brineforge/arena-server/internal/world"

// wall is an expiring, fixed barrier: v2 is the big 60x60 tier, v1 the old
// 30x30 one. Walls ignore contact with anything static enough that mutual
// blocking would be meaningless (castles, forts, blocks, nexuses, and each
// other) and grant their destroyer one air-to-air round.
type wall struct{}

func (wall) Tick(ctx *Context) {
	if ctx.Entity.TTL == 1 {
		ctx.Kill(ctx.Entity.ID)
	}
}

// CollidesWithKind filters the pair loop: a wall never trades contact with
// the static kinds below, only with units and projectiles.
func (wall) CollidesWithKind(kind byte) bool {
	switch kind {
	case 'c', 'R', 'F', 'B', 'N', 'w':
		return false
	}
	return true
}

// DoesGrantA2A reports true: destroying a wall grants its killer one A2A.
func (wall) DoesGrantA2A() bool { return true }

func init() {
	Register(world.TypeWallV1, wall{})
	Register(world.TypeWallV2, wall{})
}
