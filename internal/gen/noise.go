// Noise field synthesis using layered simplex noise.
// Each field gets an independently seeded sampler; the same seed and
// coordinates always produce the same value.
package gen

import (
	"math"
	"runtime"
	"sync"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/cartograph/internal/world"
)

// Fixed seed offsets per sampler, so every layer draws from its own
// noise space. Changing these changes every world.
const (
	seedElevation = iota
	seedContinent
	seedOceanCarve
	seedTemperature
	seedHumidity
	seedJitter
	seedRiverPrimary
	seedRiverSecondary
	seedRiverWarpX
	seedRiverWarpY
	seedRiverWidth
	seedOre
	seedDensity
)

// fractal is a seeded multi-octave noise sampler.
type fractal struct {
	noise opensimplex.Noise
	cfg   NoiseLayerConfig
}

func newFractal(seed int64, cfg NoiseLayerConfig) fractal {
	return fractal{noise: opensimplex.New(seed), cfg: cfg}
}

// at samples fractal noise at (x, y), normalised to [0,1].
func (f fractal) at(x, y float64) float64 {
	freq := f.cfg.Scale
	amplitude := 1.0
	total := 0.0
	maxVal := 0.0

	for i := 0; i < f.cfg.Octaves; i++ {
		s := f.noise.Eval2(x*freq, y*freq)
		total += (s*0.5 + 0.5) * amplitude
		maxVal += amplitude
		amplitude *= f.cfg.Persistence
		freq *= f.cfg.Lacunarity
	}

	return total / maxVal
}

// signedAt samples fractal noise at (x, y) in [-1,1], preserving the
// sign so callers can find zero crossings.
func (f fractal) signedAt(x, y float64) float64 {
	freq := f.cfg.Scale
	amplitude := 1.0
	total := 0.0
	maxVal := 0.0

	for i := 0; i < f.cfg.Octaves; i++ {
		total += f.noise.Eval2(x*freq, y*freq) * amplitude
		maxVal += amplitude
		amplitude *= f.cfg.Persistence
		freq *= f.cfg.Lacunarity
	}

	return total / maxVal
}

// parallelRows splits [0, height) into contiguous bands and runs fn on
// each band concurrently. Per-cell work inside a stage has no cross-cell
// dependency, so banding by row is safe.
func parallelRows(height int, fn func(y0, y1 int)) {
	workers := runtime.NumCPU()
	if workers > height {
		workers = height
	}
	if workers <= 1 {
		fn(0, height)
		return
	}

	var wg sync.WaitGroup
	band := (height + workers - 1) / workers
	for y0 := 0; y0 < height; y0 += band {
		y1 := y0 + band
		if y1 > height {
			y1 = height
		}
		wg.Add(1)
		go func(a, b int) {
			defer wg.Done()
			fn(a, b)
		}(y0, y1)
	}
	wg.Wait()
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// generateElevation fills the elevation layer: fine detail blended with
// a continent bias, minus an ocean carve, then power-curve
// redistribution and (in island mode) a radial falloff.
func generateElevation(m *world.Map, cfg Config) {
	detail := newFractal(cfg.Seed+seedElevation, cfg.Elevation.NoiseLayerConfig)
	continent := newFractal(cfg.Seed+seedContinent, NoiseLayerConfig{
		Scale: cfg.Elevation.ContinentScale, Octaves: 2, Persistence: 0.5, Lacunarity: 2.0,
	})
	carve := newFractal(cfg.Seed+seedOceanCarve, NoiseLayerConfig{
		Scale: cfg.Elevation.OceanScale, Octaves: 2, Persistence: 0.5, Lacunarity: 2.0,
	})

	detailWeight := 1.0 - cfg.Elevation.ContinentWeight
	cx := float64(m.Width) / 2
	cy := float64(m.Height) / 2

	parallelRows(m.Height, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < m.Width; x++ {
				fx, fy := float64(x), float64(y)

				e := detail.at(fx, fy)*detailWeight +
					continent.at(fx, fy)*cfg.Elevation.ContinentWeight -
					carve.at(fx, fy)*cfg.Elevation.OceanWeight
				e = clamp01(e)
				e = math.Pow(e, cfg.Elevation.Redistribution)

				if cfg.IslandMode {
					// Elliptical falloff: 1 at centre, 0 at the edge.
					nx := (fx - cx) / cx
					ny := (fy - cy) / cy
					d := math.Sqrt(nx*nx + ny*ny)
					fall := 1.0 - d*d
					if fall < 0 {
						fall = 0
					}
					e *= fall
				}

				m.Elevation[m.Index(x, y)] = float32(clamp01(e))
			}
		}
	})
}

// generateTemperature fills the temperature layer from a latitude
// gradient blended with noise, cooled by elevation. waterDist amplifies
// the cooling inland (continentality).
func generateTemperature(m *world.Map, cfg Config, waterDist []float32) {
	noise := newFractal(cfg.Seed+seedTemperature, cfg.Temperature.NoiseLayerConfig)
	latWeight := 1.0 - cfg.Temperature.NoiseWeight
	equator := float64(m.Height) / 2
	sea := float64(m.SeaLevel)

	parallelRows(m.Height, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			// 1 at the equator row, 0 at the poles.
			lat := 1.0 - math.Abs(float64(y)-equator)/equator
			for x := 0; x < m.Width; x++ {
				idx := m.Index(x, y)
				t := lat*latWeight + noise.at(float64(x), float64(y))*cfg.Temperature.NoiseWeight

				above := float64(m.Elevation[idx]) - sea
				if above > 0 {
					cooling := above * cfg.Temperature.ElevationCooling
					cooling *= 1.0 + cfg.Temperature.Continentality*float64(waterDist[idx])
					t -= cooling
				}

				m.Temperature[idx] = float32(clamp01(t))
			}
		}
	})
}

// generateHumidity fills the humidity layer from coastal proximity
// blended with noise, dried by elevation.
func generateHumidity(m *world.Map, cfg Config, waterDist []float32) {
	noise := newFractal(cfg.Seed+seedHumidity, cfg.Humidity.NoiseLayerConfig)
	coastWeight := 1.0 - cfg.Humidity.NoiseWeight
	sea := float64(m.SeaLevel)

	parallelRows(m.Height, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < m.Width; x++ {
				idx := m.Index(x, y)
				coastal := 1.0 - float64(waterDist[idx])
				h := coastal*coastWeight + noise.at(float64(x), float64(y))*cfg.Humidity.NoiseWeight

				above := float64(m.Elevation[idx]) - sea
				if above > 0 {
					h -= above * cfg.Humidity.ElevationDrying
				}

				m.Humidity[idx] = float32(clamp01(h))
			}
		}
	})
}

// generateJitter fills a scratch field used to soften biome boundaries.
func generateJitter(m *world.Map, cfg Config) []float32 {
	noise := newFractal(cfg.Seed+seedJitter, cfg.Jitter)
	jitter := make([]float32, m.CellCount())

	parallelRows(m.Height, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < m.Width; x++ {
				jitter[m.Index(x, y)] = float32(noise.at(float64(x), float64(y)))
			}
		}
	})
	return jitter
}
