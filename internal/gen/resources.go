// Resource assignment: an ordered priority chain per land cell.
// Rare ore wins over common ore, ore over fishing grounds, and the
// biome-default resource comes last.
package gen

import (
	"github.com/aquilax/go-perlin"

	"github.com/talgya/cartograph/internal/world"
)

// biomeDefaultResource is the fixed biome → resource fallback table.
var biomeDefaultResource = [world.BiomeCount]world.Resource{
	world.BiomeDeepOcean:           world.ResourceNone,
	world.BiomeOcean:               world.ResourceNone,
	world.BiomeShore:               world.ResourceNone,
	world.BiomeMountain:            world.ResourceStone,
	world.BiomeAlpine:              world.ResourceStone,
	world.BiomeHighland:            world.ResourceStone,
	world.BiomeGlacier:             world.ResourceNone,
	world.BiomePolarDesert:         world.ResourceNone,
	world.BiomeTundra:              world.ResourceFurs,
	world.BiomeTaiga:               world.ResourceFurs,
	world.BiomeBorealForest:        world.ResourceTimber,
	world.BiomeColdSteppe:          world.ResourceFertileSoil,
	world.BiomeMoor:                world.ResourceFurs,
	world.BiomeTemperateRainforest: world.ResourceTimber,
	world.BiomeTemperateForest:     world.ResourceTimber,
	world.BiomeGrassland:           world.ResourceFertileSoil,
	world.BiomeShrubland:           world.ResourceStone,
	world.BiomeMarsh:               world.ResourceFertileSoil,
	world.BiomeSteppe:              world.ResourceFertileSoil,
	world.BiomeTropicalRainforest:  world.ResourceTimber,
	world.BiomeMonsoonForest:       world.ResourceTimber,
	world.BiomeSavanna:             world.ResourceFertileSoil,
	world.BiomeDesert:              world.ResourceStone,
	world.BiomeBadlands:            world.ResourceStone,
	world.BiomeSwamp:               world.ResourceTimber,
	world.BiomeMangrove:            world.ResourceTimber,
}

// assignResources fills the resource and density layers.
func assignResources(m *world.Map, cfg Config) {
	rc := cfg.Resources
	ore := perlin.NewPerlin(2, 2, 3, cfg.Seed+seedOre)
	density := newFractal(cfg.Seed+seedDensity, NoiseLayerConfig{
		Scale: rc.DensityScale, Octaves: 2, Persistence: 0.5, Lacunarity: 2.0,
	})

	parallelRows(m.Height, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < m.Width; x++ {
				idx := m.Index(x, y)
				if m.IsWater(idx) {
					continue
				}
				res, dens := resourceFor(m, cfg, x, y, ore, density)
				m.Resource[idx] = uint8(res)
				m.Density[idx] = dens
			}
		}
	})
}

// resourceFor evaluates the priority chain for one land cell and
// returns the first match with its density.
func resourceFor(m *world.Map, cfg Config, x, y int, ore *perlin.Perlin, density fractal) (world.Resource, uint8) {
	rc := cfg.Resources
	idx := m.Index(x, y)
	biome := world.Biome(m.Biome[idx])

	oreVal := (ore.Noise2D(float64(x)*rc.OreScale, float64(y)*rc.OreScale) + 1) * 0.5
	d := density.at(float64(x), float64(y))

	// Rare ore: mountain country near a river, above the rarity gate.
	if (biome == world.BiomeMountain || biome == world.BiomeHighland) &&
		oreVal > rc.GoldThreshold &&
		nearRiver(m, x, y, rc.GoldRiverRadius) {
		return world.ResourceGold, scaleDensity(d, 180, 75)
	}

	// Common ore.
	if (biome == world.BiomeMountain || biome == world.BiomeHighland || biome == world.BiomeBadlands) &&
		oreVal > rc.IronThreshold {
		return world.ResourceIron, scaleDensity(d, 120, 100)
	}

	// Fishing grounds: land touching water, outside the frozen biomes.
	if biome != world.BiomeGlacier && biome != world.BiomePolarDesert && touchesWater(m, x, y) {
		return world.ResourceFish, scaleDensity(d, 100, 100)
	}

	// Biome default, gated by minimum density.
	def := biomeDefaultResource[biome]
	if def == world.ResourceNone {
		return world.ResourceNone, 0
	}
	amount := d
	if def == world.ResourceFertileSoil {
		// Fertile soil yield tracks local humidity.
		amount *= 0.5 + 0.5*float64(m.Humidity[idx])
	}
	dens := scaleDensity(amount, 40, 215)
	if int(dens) < rc.MinDensity {
		return world.ResourceNone, 0
	}
	return def, dens
}

// scaleDensity rescales a [0,1] noise value into [offset, offset+span],
// clamped to a byte.
func scaleDensity(v float64, offset, span float64) uint8 {
	d := offset + clamp01(v)*span
	if d > 255 {
		d = 255
	}
	if d < 0 {
		d = 0
	}
	return uint8(d)
}

// nearRiver reports whether any river cell lies within a square radius.
func nearRiver(m *world.Map, x, y, radius int) bool {
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			nx, ny := x+dx, y+dy
			if m.InBounds(nx, ny) && m.River[m.Index(nx, ny)] {
				return true
			}
		}
	}
	return false
}

// touchesWater reports whether any of the four orthogonal neighbours is
// a water cell.
func touchesWater(m *world.Map, x, y int) bool {
	for _, d := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
		nx, ny := x+d[0], y+d[1]
		if m.InBounds(nx, ny) && m.IsWater(m.Index(nx, ny)) {
			return true
		}
	}
	return false
}
