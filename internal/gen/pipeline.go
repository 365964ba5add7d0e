// Pipeline orchestration: runs the generation stages in dependency
// order over one shared grid. A run either completes and publishes a
// full result, or fails and publishes nothing.
package gen

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/talgya/cartograph/internal/world"
)

// Result is the published output of one generation run.
type Result struct {
	Seed       int64
	Map        *world.Map
	Points     []world.StrategicPoint
	PointIndex *world.PointIndex
	Nations    []world.Nation
}

// Generate runs the full pipeline for the given configuration. The
// returned result is complete: every layer is populated and read-only
// from the caller's point of view.
func Generate(cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("world config: %w", err)
	}

	start := time.Now()
	m := world.NewMap(cfg.Width, cfg.Height, float32(cfg.SeaLevel))

	stage := func(name string, fn func()) {
		t := time.Now()
		fn()
		slog.Debug("stage complete", "stage", name, "elapsed", time.Since(t))
	}

	stage("elevation", func() { generateElevation(m, cfg) })

	// Degenerate seeds can drown the map; lower the sea until enough
	// land shows, floored at the configured minimum.
	adjustSeaLevel(m, &cfg)

	var waterDist []float32
	stage("water distance", func() { waterDist = waterDistance(m) })
	stage("temperature", func() { generateTemperature(m, cfg, waterDist) })
	stage("humidity", func() { generateHumidity(m, cfg, waterDist) })

	var jitter []float32
	stage("jitter", func() { jitter = generateJitter(m, cfg) })
	stage("rivers", func() { carveRivers(m, cfg, waterDist) })
	stage("biomes", func() { classifyBiomes(m, cfg, jitter) })
	stage("resources", func() { assignResources(m, cfg) })

	var points []world.StrategicPoint
	stage("strategic points", func() { points = detectStrategicPoints(m, cfg) })

	nations, err := spawnNations(m, cfg)
	if err != nil {
		return nil, err
	}

	slog.Info("world generated",
		"seed", cfg.Seed,
		"size", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height),
		"sea_level", fmt.Sprintf("%.2f", m.SeaLevel),
		"strategic_points", len(points),
		"nations", len(nations),
		"elapsed", time.Since(start),
	)

	return &Result{
		Seed:       cfg.Seed,
		Map:        m,
		Points:     points,
		PointIndex: world.NewPointIndex(m.Width, m.Height, points),
		Nations:    nations,
	}, nil
}

// seaLevelSamples bounds the elevation subset used for the land
// fraction estimate; a full sort over millions of cells is not worth
// it for a policy decision.
const seaLevelSamples = 10000

// adjustSeaLevel estimates the land fraction from a sampled subset of
// elevations and lowers the sea level in steps until the minimum land
// fraction is met or the safety floor is reached.
func adjustSeaLevel(m *world.Map, cfg *Config) {
	if cfg.MinLandFraction <= 0 {
		return
	}

	n := m.CellCount()
	step := n / seaLevelSamples
	if step < 1 {
		step = 1
	}
	samples := make([]float32, 0, n/step+1)
	for i := 0; i < n; i += step {
		samples = append(samples, m.Elevation[i])
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i] < samples[j] })

	landFraction := func(sea float32) float64 {
		// First sampled elevation strictly above sea, via binary search.
		lo := sort.Search(len(samples), func(i int) bool { return samples[i] > sea })
		return float64(len(samples)-lo) / float64(len(samples))
	}

	sea := m.SeaLevel
	for landFraction(sea) < cfg.MinLandFraction && float64(sea) > cfg.MinSeaLevel {
		sea -= 0.02
	}
	if float64(sea) < cfg.MinSeaLevel {
		sea = float32(cfg.MinSeaLevel)
	}

	if sea != m.SeaLevel {
		slog.Info("sea level lowered for land fraction",
			"from", fmt.Sprintf("%.2f", m.SeaLevel),
			"to", fmt.Sprintf("%.2f", sea),
			"land_fraction", fmt.Sprintf("%.2f", landFraction(sea)),
		)
		m.SeaLevel = sea
		cfg.SeaLevel = float64(sea)
	}
}
