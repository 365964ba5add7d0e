// Nation spawning: spaced capital placement on desirable land, square
// territory claims, and procedural identity.
package gen

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/talgya/cartograph/internal/nation"
	"github.com/talgya/cartograph/internal/world"
)

// biomeDesirability scores spawn sites. Zero or negative means a biome
// never hosts a capital.
var biomeDesirability = [world.BiomeCount]float64{
	world.BiomeGrassland:           5.0,
	world.BiomeTemperateForest:     4.0,
	world.BiomeSavanna:             3.5,
	world.BiomeSteppe:              3.0,
	world.BiomeShrubland:           2.5,
	world.BiomeTemperateRainforest: 2.5,
	world.BiomeMonsoonForest:       2.5,
	world.BiomeColdSteppe:          2.0,
	world.BiomeBorealForest:        2.0,
	world.BiomeTropicalRainforest:  1.5,
	world.BiomeTaiga:               1.5,
	world.BiomeMarsh:               1.0,
	world.BiomeHighland:            1.0,
	world.BiomeMoor:                1.0,
	world.BiomeSwamp:               0.5,
	world.BiomeMangrove:            0.5,
	world.BiomeTundra:              0.5,
	// Everything else stays at 0: water, ice, bare rock and desert do
	// not host capitals.
}

type spawnCandidate struct {
	idx   int
	score float64
}

// spawnNations places capitals, claims territory and generates
// identities. Returns an error when no habitable spawn candidate
// exists.
func spawnNations(m *world.Map, cfg Config) ([]world.Nation, error) {
	nc := cfg.Nations
	if nc.Count == 0 {
		return nil, nil
	}

	candidates := collectSpawnCandidates(m, nc)
	if len(candidates) == 0 {
		return nil, fmt.Errorf("nation spawn: no habitable candidate cells (%d nations requested)", nc.Count)
	}

	// Seeded shuffle, then stable score sort: equal scores keep their
	// shuffled order, so the pick is deterministic but not biased
	// toward scan order.
	rng := rand.New(rand.NewSource(cfg.Seed + 200))
	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	// Greedy selection with minimum spacing.
	minSpacing2 := nc.MinSpacing * nc.MinSpacing
	var spawns []int
	for _, c := range candidates {
		if len(spawns) >= nc.Count {
			break
		}
		if tooClose(m, c.idx, spawns, minSpacing2) {
			continue
		}
		spawns = append(spawns, c.idx)
	}

	idGen := nation.NewGenerator(cfg.Seed)
	nations := make([]world.Nation, 0, len(spawns))
	for i, capital := range spawns {
		n := idGen.Next(int16(i), capital)
		n.Provinces = claimTerritory(m, int16(i), capital, nc.ClaimRadius)
		nations = append(nations, n)
	}
	return nations, nil
}

// collectSpawnCandidates samples every Nth cell and keeps habitable
// land with positive desirability, with a flat bonus for river
// adjacency. Candidates are pre-thinned through the same best-per-
// bucket reducer the strategic detectors use, so dense good regions do
// not flood the pool.
func collectSpawnCandidates(m *world.Map, nc NationConfig) []spawnCandidate {
	bucket := int(nc.MinSpacing / 2)
	if bucket < 1 {
		bucket = 1
	}
	g := newBucketGrid(m.Width, m.Height, bucket)

	for y := 0; y < m.Height; y += nc.SampleStep {
		for x := 0; x < m.Width; x += nc.SampleStep {
			idx := m.Index(x, y)
			if m.IsWater(idx) {
				continue
			}
			score := biomeDesirability[m.Biome[idx]]
			if score <= 0 {
				continue
			}
			if nearRiver(m, x, y, 2) {
				score += nc.RiverBonus
			}
			g.offer(x, y, idx, score)
		}
	}

	var candidates []spawnCandidate
	for b, idx := range g.idx {
		if idx < 0 {
			continue
		}
		candidates = append(candidates, spawnCandidate{idx: idx, score: g.score[b]})
	}
	return candidates
}

// tooClose reports whether idx is within the squared spacing of any
// accepted spawn.
func tooClose(m *world.Map, idx int, accepted []int, minSpacing2 float64) bool {
	x, y := m.Coords(idx)
	for _, a := range accepted {
		ax, ay := m.Coords(a)
		dx := float64(x - ax)
		dy := float64(y - ay)
		if dx*dx+dy*dy < minSpacing2 {
			return true
		}
	}
	return false
}

// claimTerritory writes the nation index into every habitable,
// unclaimed land cell within the square claim radius of the capital and
// returns the claimed cell indices.
func claimTerritory(m *world.Map, index int16, capital, radius int) []int {
	cx, cy := m.Coords(capital)
	var provinces []int

	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			x, y := cx+dx, cy+dy
			if !m.InBounds(x, y) {
				continue
			}
			idx := m.Index(x, y)
			if m.IsWater(idx) || m.Owner[idx] != world.OwnerNone {
				continue
			}
			if !world.Biome(m.Biome[idx]).Habitable() {
				continue
			}
			m.Owner[idx] = index
			provinces = append(provinces, idx)
		}
	}
	return provinces
}
