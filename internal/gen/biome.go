// Biome classification: a pure decision tree over elevation,
// temperature and humidity. The comparison order per branch is fixed;
// swapping < for <= moves cells between biomes at exact threshold
// values, so every gate uses strict <.
package gen

import "github.com/talgya/cartograph/internal/world"

// Classify maps one cell's field values to a biome id. Jitter in [0,1]
// perturbs temperature and humidity before classification to soften
// biome boundaries.
func Classify(elev, temp, hum, jitter, seaLevel float64, cfg BiomeConfig) world.Biome {
	j := (jitter - 0.5) * cfg.JitterMagnitude
	t := clamp01(temp + j)
	h := clamp01(hum + j)

	// Water gates first, by depth below sea level.
	if !(elev > seaLevel) {
		if elev < seaLevel-cfg.DeepBand {
			return world.BiomeDeepOcean
		}
		if elev < seaLevel-cfg.OceanBand {
			return world.BiomeOcean
		}
		return world.BiomeShore
	}

	// High-elevation gates.
	if !(elev < cfg.MountainLevel) {
		if t < cfg.AlpineMaxTemp {
			return world.BiomeAlpine
		}
		return world.BiomeMountain
	}
	if !(elev < cfg.HighlandLevel) {
		return world.BiomeHighland
	}

	// Temperature bands, subdivided by humidity.
	switch {
	case t < 0.15: // polar
		if t < 0.06 {
			return world.BiomeGlacier
		}
		if h < 0.30 {
			return world.BiomePolarDesert
		}
		return world.BiomeTundra

	case t < 0.40: // cool
		if h < 0.25 {
			return world.BiomeColdSteppe
		}
		if h < 0.55 {
			return world.BiomeTaiga
		}
		if h < 0.80 {
			return world.BiomeBorealForest
		}
		return world.BiomeMoor

	case t < 0.70: // temperate
		if h < 0.20 {
			return world.BiomeShrubland
		}
		if h < 0.45 {
			return world.BiomeGrassland
		}
		if h < 0.75 {
			return world.BiomeTemperateForest
		}
		if h < 0.90 {
			return world.BiomeTemperateRainforest
		}
		return world.BiomeMarsh

	default: // tropical
		if h < 0.15 {
			return world.BiomeDesert
		}
		if h < 0.30 {
			return world.BiomeBadlands
		}
		if h < 0.50 {
			return world.BiomeSavanna
		}
		if h < 0.65 {
			return world.BiomeSteppe
		}
		if h < 0.80 {
			return world.BiomeMonsoonForest
		}
		if h < 0.95 {
			return world.BiomeTropicalRainforest
		}
		// The wettest tropical lowland right at the waterline grows
		// mangrove; elsewhere it is swamp.
		if elev < seaLevel+0.08 {
			return world.BiomeMangrove
		}
		return world.BiomeSwamp
	}
}

// classifyBiomes runs the classifier over every cell.
func classifyBiomes(m *world.Map, cfg Config, jitter []float32) {
	sea := float64(m.SeaLevel)
	parallelRows(m.Height, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < m.Width; x++ {
				idx := m.Index(x, y)
				b := Classify(
					float64(m.Elevation[idx]),
					float64(m.Temperature[idx]),
					float64(m.Humidity[idx]),
					float64(jitter[idx]),
					sea,
					cfg.Biomes,
				)
				m.Biome[idx] = uint8(b)
			}
		}
	})
}
