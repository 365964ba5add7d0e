// River carving via domain-warped noise zero crossings.
// A land cell becomes river where the warped noise magnitude falls
// under a threshold, tapered near the coast and cut off in mountains.
package gen

import (
	"math"

	"github.com/talgya/cartograph/internal/world"
)

// carveRivers marks river cells on the river layer and then boosts
// humidity around them.
func carveRivers(m *world.Map, cfg Config, waterDist []float32) {
	markRiverCells(m, cfg, waterDist)
	removeSpeckles(m)
	boostRiverHumidity(m, cfg)
}

// markRiverCells runs the raw zero-crossing carve without cleanup.
func markRiverCells(m *world.Map, cfg Config, waterDist []float32) {
	rc := cfg.Rivers
	primary := newFractal(cfg.Seed+seedRiverPrimary, NoiseLayerConfig{
		Scale: rc.PrimaryScale, Octaves: 3, Persistence: 0.5, Lacunarity: 2.0,
	})
	secondary := newFractal(cfg.Seed+seedRiverSecondary, NoiseLayerConfig{
		Scale: rc.SecondaryScale, Octaves: 3, Persistence: 0.5, Lacunarity: 2.0,
	})
	warpX := newFractal(cfg.Seed+seedRiverWarpX, NoiseLayerConfig{
		Scale: rc.WarpScale, Octaves: 2, Persistence: 0.5, Lacunarity: 2.0,
	})
	warpY := newFractal(cfg.Seed+seedRiverWarpY, NoiseLayerConfig{
		Scale: rc.WarpScale, Octaves: 2, Persistence: 0.5, Lacunarity: 2.0,
	})
	widthNoise := newFractal(cfg.Seed+seedRiverWidth, NoiseLayerConfig{
		Scale: rc.WidthScale, Octaves: 2, Persistence: 0.5, Lacunarity: 2.0,
	})

	parallelRows(m.Height, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < m.Width; x++ {
				idx := m.Index(x, y)
				if m.IsWater(idx) {
					continue
				}

				fade := riverFade(float64(waterDist[idx]), float64(m.Elevation[idx]), rc)
				if fade <= 0 {
					continue
				}

				fx, fy := float64(x), float64(y)
				wx := fx + warpX.signedAt(fx, fy)*rc.WarpStrength
				wy := fy + warpY.signedAt(fx, fy)*rc.WarpStrength

				// Width noise widens or narrows the zero-crossing band;
				// cells nearer the crossing form the channel core.
				width := 0.6 + 0.8*widthNoise.at(fx, fy)

				if math.Abs(primary.signedAt(wx, wy)) < rc.PrimaryThreshold*fade*width {
					m.River[idx] = true
					continue
				}
				if math.Abs(secondary.signedAt(wx, wy)) < rc.SecondaryThreshold*fade*width {
					m.River[idx] = true
				}
			}
		}
	})
}

// riverFade combines the shore taper and the mountain cutoff. Zero
// means no river can form at this cell.
func riverFade(waterDist, elev float64, rc RiverConfig) float64 {
	shore := 1.0
	if rc.ShoreTaper > 0 {
		shore = waterDist / rc.ShoreTaper
		if shore > 1 {
			shore = 1
		}
	}

	mountain := (rc.MountainCutoff - elev) * 10
	if mountain <= 0 {
		return 0
	}
	if mountain > 1 {
		mountain = 1
	}

	return shore * mountain
}

// removeSpeckles clears river cells with fewer than 2 orthogonal river
// neighbours. Counting runs against a snapshot of the layer so removal
// order cannot cascade within the pass.
func removeSpeckles(m *world.Map) {
	before := make([]bool, len(m.River))
	copy(before, m.River)

	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			idx := m.Index(x, y)
			if !before[idx] {
				continue
			}
			neighbours := 0
			for _, d := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
				nx, ny := x+d[0], y+d[1]
				if m.InBounds(nx, ny) && before[m.Index(nx, ny)] {
					neighbours++
				}
			}
			if neighbours < 2 {
				m.River[idx] = false
			}
		}
	}
}

// boostRiverHumidity raises humidity around river cells. Each cell
// takes the maximum boost from any nearby river cell, decaying linearly
// with distance, so overlapping rivers do not stack.
func boostRiverHumidity(m *world.Map, cfg Config) {
	radius := cfg.Rivers.HumidityRadius
	if radius <= 0 || cfg.Rivers.HumidityBoost <= 0 {
		return
	}

	boost := make([]float32, m.CellCount())
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if !m.River[m.Index(x, y)] {
				continue
			}
			for dy := -radius; dy <= radius; dy++ {
				for dx := -radius; dx <= radius; dx++ {
					nx, ny := x+dx, y+dy
					if !m.InBounds(nx, ny) {
						continue
					}
					d := math.Sqrt(float64(dx*dx + dy*dy))
					if d > float64(radius) {
						continue
					}
					b := float32(cfg.Rivers.HumidityBoost * (1.0 - d/float64(radius)))
					nidx := m.Index(nx, ny)
					if b > boost[nidx] {
						boost[nidx] = b
					}
				}
			}
		}
	}

	for i, b := range boost {
		if b > 0 {
			m.Humidity[i] = float32(clamp01(float64(m.Humidity[i] + b)))
		}
	}
}
