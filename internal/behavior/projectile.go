package behavior

import "github.com/brineforge/arena-server/internal/world"

// projectile covers plain ballistic bullets and lasers: both travel in a
// straight line (velocity set at spawn) and despawn on TTL expiry or on
// their first contact with another entity (handled by the collision
// resolver).
type projectile struct{}

func (projectile) Tick(ctx *Context) {
	if ctx.Entity.TTL == 1 {
		ctx.Kill(ctx.Entity.ID)
	}
}

func (projectile) DoesCollide(ctx *Context) bool {
	return true
}

func init() {
	Register(world.TypeBullet, projectile{})
	Register(world.TypeLaser, projectile{})
}
