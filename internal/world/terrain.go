package world

import "github.com/aquilax/go-perlin"

// TerrainSampler produces a purely cosmetic background texture value for
// the client's renderer. Nothing in internal/behavior, internal/collision,
// or internal/placement ever reads from it: gameplay, physics, and
// placement validity are decided entirely from entity shapes and the data
// catalog, never from terrain height. Ported from the teacher's
// terrain/noise.Generator, trimmed to the single-octave sample the spec's
// cosmetic backdrop needs instead of the teacher's full land/zone/depth
// heightmap blend.
type TerrainSampler struct {
	noise *perlin.Perlin
}

func NewTerrainSampler(seed int64) *TerrainSampler {
	return &TerrainSampler{noise: perlin.NewPerlin(2.0, 2.0, 3, seed)}
}

const terrainFrequency = 0.0015

// SampleByte returns a cosmetic height value in [0, 255] for a world
// position. Clients may use it to tint the background; the server never
// consults it when deciding collisions, placement legality, or damage.
func (t *TerrainSampler) SampleByte(x, y float32) byte {
	v := t.noise.Noise2D(float64(x)*terrainFrequency, float64(y)*terrainFrequency)
	v = (v + 1) * 127.5
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v)
}
